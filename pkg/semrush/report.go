package semrush

// ReportType is the provider's "type" request parameter
type ReportType string

const (
	ReportDomainRanks         ReportType = "domain_ranks"
	ReportDomainOrganic       ReportType = "domain_organic"
	ReportDomainAdwords       ReportType = "domain_adwords"
	ReportDomainShopping      ReportType = "domain_shopping"
	ReportPhraseKDI           ReportType = "phrase_kdi"
	ReportBacklinksOverview   ReportType = "backlinks_overview"
	ReportBacklinks           ReportType = "backlinks"
	ReportBacklinksRefDomains ReportType = "backlinks_refdomains"
	ReportBacklinksRefIPs     ReportType = "backlinks_refips"
	ReportBacklinksPages      ReportType = "backlinks_pages"
)

func (r ReportType) isBacklinks() bool {
	switch r {
	case ReportBacklinksOverview, ReportBacklinks, ReportBacklinksRefDomains,
		ReportBacklinksRefIPs, ReportBacklinksPages:
		return true
	}
	return false
}

// targetParam names the query parameter carrying the report subject
func (r ReportType) targetParam() string {
	switch {
	case r == ReportPhraseKDI:
		return "phrase"
	case r.isBacklinks():
		return "target"
	default:
		return "domain"
	}
}

func (r ReportType) requiresDatabase() bool {
	switch r {
	case ReportDomainOrganic, ReportDomainAdwords, ReportDomainShopping, ReportPhraseKDI:
		return true
	}
	return false
}

// offsetted reports accept display_offset; backlinks_pages takes a limit only
func (r ReportType) offsetted() bool {
	return r.paginated() && r != ReportBacklinksPages
}

func (r ReportType) paginated() bool {
	switch r {
	case ReportDomainRanks, ReportPhraseKDI, ReportBacklinksOverview:
		return false
	}
	return true
}
