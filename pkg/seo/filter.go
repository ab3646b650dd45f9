package seo

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	filterSeparator = "|"

	// organicPositionFilter drops rows ranked beyond the second page
	organicPositionFilter = "-|Po|Gt|20"
)

// Filter is one clause of the provider's display filter syntax
type Filter struct {
	Sign     string `json:"sign"`
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// String renders the clause as sign|field|operator|value
func (f Filter) String() string {
	return strings.Join([]string{f.Sign, f.Field, f.Operator, f.Value}, filterSeparator)
}

// BrandExclusionFilter builds one "phrase does not contain brand" clause per
// brand, lowercased and joined with the clause separator. Empty brands are skipped;
// whitespace is kept as given.
func BrandExclusionFilter(brands []string) string {
	lower := cases.Lower(language.Und)

	clauses := make([]string, 0, len(brands))
	for _, brand := range brands {
		if brand == "" {
			continue
		}
		clauses = append(clauses, Filter{
			Sign:     "-",
			Field:    "Ph",
			Operator: "Co",
			Value:    lower.String(brand),
		}.String())
	}
	return strings.Join(clauses, filterSeparator)
}

// BuildDisplayFilter appends the caller's filters, in order, to the brand
// exclusion clauses. Filters with an empty value are skipped.
func BuildDisplayFilter(brands []string, filters []Filter) string {
	clauses := []string{BrandExclusionFilter(brands)}
	for _, f := range filters {
		if f.Value == "" {
			continue
		}
		clauses = append(clauses, f.String())
	}
	return joinClauses(clauses...)
}

func organicDisplayFilter(brands []string, filters []Filter) string {
	return joinClauses(organicPositionFilter, BuildDisplayFilter(brands, filters))
}

func joinClauses(clauses ...string) string {
	nonEmpty := clauses[:0:0]
	for _, c := range clauses {
		if c != "" {
			nonEmpty = append(nonEmpty, c)
		}
	}
	return strings.Join(nonEmpty, filterSeparator)
}
