package seo

import "testing"

func TestBrandExclusionFilter(t *testing.T) {
	tests := []struct {
		name   string
		brands []string
		want   string
	}{
		{"no brands", nil, ""},
		{"single brand", []string{"Acme"}, "-|Ph|Co|acme"},
		{"multiple brands", []string{"Acme", "WIDGETCO"}, "-|Ph|Co|acme|-|Ph|Co|widgetco"},
		{"empty brands skipped", []string{"", "Acme", ""}, "-|Ph|Co|acme"},
		{"whitespace kept", []string{"Big Co", " Acme"}, "-|Ph|Co|big co|-|Ph|Co| acme"},
		{"unicode lowercased", []string{"ÉCOLE"}, "-|Ph|Co|école"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BrandExclusionFilter(tt.brands); got != tt.want {
				t.Errorf("BrandExclusionFilter(%v) = %q, want %q", tt.brands, got, tt.want)
			}
		})
	}
}

func TestBuildDisplayFilter(t *testing.T) {
	filters := []Filter{
		{Sign: "+", Field: "Nq", Operator: "Gt", Value: "100"},
		{Sign: "-", Field: "Ph", Operator: "Eq", Value: ""},
		{Sign: "+", Field: "Cp", Operator: "Lt", Value: "2.5"},
	}

	tests := []struct {
		name    string
		brands  []string
		filters []Filter
		want    string
	}{
		{"empty", nil, nil, ""},
		{"brands only", []string{"Acme"}, nil, "-|Ph|Co|acme"},
		{"filters only", nil, filters, "+|Nq|Gt|100|+|Cp|Lt|2.5"},
		{"brands then filters", []string{"Acme", "Foo"}, filters, "-|Ph|Co|acme|-|Ph|Co|foo|+|Nq|Gt|100|+|Cp|Lt|2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildDisplayFilter(tt.brands, tt.filters); got != tt.want {
				t.Errorf("BuildDisplayFilter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOrganicDisplayFilter(t *testing.T) {
	tests := []struct {
		brands  []string
		filters []Filter
		want    string
	}{
		{nil, nil, "-|Po|Gt|20"},
		{[]string{"Acme"}, nil, "-|Po|Gt|20|-|Ph|Co|acme"},
		{nil, []Filter{{Sign: "+", Field: "Nq", Operator: "Gt", Value: "10"}}, "-|Po|Gt|20|+|Nq|Gt|10"},
	}

	for _, tt := range tests {
		if got := organicDisplayFilter(tt.brands, tt.filters); got != tt.want {
			t.Errorf("organicDisplayFilter(%v, %v) = %q, want %q", tt.brands, tt.filters, got, tt.want)
		}
	}
}

func TestFilterString(t *testing.T) {
	f := Filter{Sign: "+", Field: "Po", Operator: "Lt", Value: "4"}
	if got := f.String(); got != "+|Po|Lt|4" {
		t.Errorf("Filter.String() = %q", got)
	}
}
