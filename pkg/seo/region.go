package seo

import (
	"errors"
	"fmt"
	"sort"

	"semrush-go/pkg/semrush"
)

// DefaultRegion is used when a request leaves Region empty
const DefaultRegion = "en-us"

// ErrUnknownRegion is returned for region codes missing from the table
var ErrUnknownRegion = errors.New("seo: unknown region")

// Regions maps locale codes to provider databases
type Regions map[string]semrush.Database

var defaultRegions = Regions{
	"en-us":    semrush.DatabaseGoogleUS,
	"en-ca":    semrush.DatabaseGoogleCA,
	"es-mx":    semrush.DatabaseGoogleMX,
	"en-uk":    semrush.DatabaseGoogleUK,
	"fr-fr":    semrush.DatabaseGoogleFR,
	"it-it":    semrush.DatabaseGoogleIT,
	"de-de":    semrush.DatabaseGoogleDE,
	"es-es":    semrush.DatabaseGoogleES,
	"ga-ie":    semrush.DatabaseGoogleIE,
	"ru-ru":    semrush.DatabaseGoogleRU,
	"hi-in":    semrush.DatabaseGoogleIN,
	"zh-hk-hk": semrush.DatabaseGoogleHK,
	"en-au":    semrush.DatabaseGoogleAU,
	"nl-be":    semrush.DatabaseGoogleBE,
	"pt-br":    semrush.DatabaseGoogleBR,
}

// DefaultRegions returns a copy of the built-in region table
func DefaultRegions() Regions {
	regions := make(Regions, len(defaultRegions))
	for k, v := range defaultRegions {
		regions[k] = v
	}
	return regions
}

// Resolve looks up the database for region. Lookups are exact; there is no fallback.
func (r Regions) Resolve(region string) (semrush.Database, error) {
	db, ok := r[region]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}
	return db, nil
}

// Codes returns the region codes in sorted order
func (r Regions) Codes() []string {
	codes := make([]string, 0, len(r))
	for code := range r {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
