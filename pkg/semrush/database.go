package semrush

// Database selects a regional search index
type Database string

const (
	DatabaseGoogleUS Database = "us"
	DatabaseGoogleCA Database = "ca"
	DatabaseGoogleMX Database = "mx"
	DatabaseGoogleUK Database = "uk"
	DatabaseGoogleFR Database = "fr"
	DatabaseGoogleIT Database = "it"
	DatabaseGoogleDE Database = "de"
	DatabaseGoogleES Database = "es"
	DatabaseGoogleIE Database = "ie"
	DatabaseGoogleRU Database = "ru"
	DatabaseGoogleIN Database = "in"
	DatabaseGoogleHK Database = "hk"
	DatabaseGoogleAU Database = "au"
	DatabaseGoogleBE Database = "be"
	DatabaseGoogleBR Database = "br"
)

var knownDatabases = map[Database]struct{}{
	DatabaseGoogleUS: {}, DatabaseGoogleCA: {}, DatabaseGoogleMX: {},
	DatabaseGoogleUK: {}, DatabaseGoogleFR: {}, DatabaseGoogleIT: {},
	DatabaseGoogleDE: {}, DatabaseGoogleES: {}, DatabaseGoogleIE: {},
	DatabaseGoogleRU: {}, DatabaseGoogleIN: {}, DatabaseGoogleHK: {},
	DatabaseGoogleAU: {}, DatabaseGoogleBE: {}, DatabaseGoogleBR: {},
}

// Valid reports whether d is a database this client knows about
func (d Database) Valid() bool {
	_, ok := knownDatabases[d]
	return ok
}
