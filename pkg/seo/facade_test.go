package seo

import (
	"context"
	"errors"
	"testing"

	"semrush-go/pkg/logger"
	"semrush-go/pkg/semrush"
)

type call struct {
	method string
	target string
	opts   semrush.Options
}

// mockClient records every call and replays a canned result or error
type mockClient struct {
	calls  []call
	result semrush.Result
	err    error
}

func (m *mockClient) record(method, target string, opts semrush.Options) (semrush.Result, error) {
	m.calls = append(m.calls, call{method: method, target: target, opts: opts})
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockClient) GetDomainRanks(_ context.Context, domain string, opts semrush.Options) (semrush.Result, error) {
	return m.record("GetDomainRanks", domain, opts)
}

func (m *mockClient) GetDomainOrganic(_ context.Context, domain string, opts semrush.Options) (semrush.Result, error) {
	return m.record("GetDomainOrganic", domain, opts)
}

func (m *mockClient) GetDomainAdwords(_ context.Context, domain string, opts semrush.Options) (semrush.Result, error) {
	return m.record("GetDomainAdwords", domain, opts)
}

func (m *mockClient) GetDomainPlaSearchKeywords(_ context.Context, domain string, opts semrush.Options) (semrush.Result, error) {
	return m.record("GetDomainPlaSearchKeywords", domain, opts)
}

func (m *mockClient) GetKeywordDifficulty(_ context.Context, phrase string, opts semrush.Options) (semrush.Result, error) {
	return m.record("GetKeywordDifficulty", phrase, opts)
}

func (m *mockClient) GetBacklinksOverview(_ context.Context, target string, opts semrush.Options) (semrush.Result, error) {
	return m.record("GetBacklinksOverview", target, opts)
}

func (m *mockClient) GetBacklinks(_ context.Context, target string, opts semrush.Options) (semrush.Result, error) {
	return m.record("GetBacklinks", target, opts)
}

func (m *mockClient) GetBacklinksReferringDomains(_ context.Context, target string, opts semrush.Options) (semrush.Result, error) {
	return m.record("GetBacklinksReferringDomains", target, opts)
}

func (m *mockClient) GetBacklinksReferringIPs(_ context.Context, target string, opts semrush.Options) (semrush.Result, error) {
	return m.record("GetBacklinksReferringIPs", target, opts)
}

func (m *mockClient) GetBacklinksIndexedPages(_ context.Context, target string, opts semrush.Options) (semrush.Result, error) {
	return m.record("GetBacklinksIndexedPages", target, opts)
}

func (m *mockClient) lastCall(t *testing.T) call {
	t.Helper()
	if len(m.calls) == 0 {
		t.Fatal("Expected a client call, got none")
	}
	return m.calls[len(m.calls)-1]
}

func newTestFacade(client ReportClient, opts ...Option) *Facade {
	return NewWithClient(client, append([]Option{WithLogger(logger.Nop())}, opts...)...)
}

func TestCollectDomainOrganic_Request(t *testing.T) {
	mock := &mockClient{}
	f := newTestFacade(mock)

	if _, err := f.CollectDomainOrganic(context.Background(), "example.com", []string{"Acme"}, 5, 0, "en-us", nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	c := mock.lastCall(t)
	if c.method != "GetDomainOrganic" || c.target != "example.com" {
		t.Errorf("Unexpected call %s(%s)", c.method, c.target)
	}
	if c.opts.DisplayFilter != "-|Po|Gt|20|-|Ph|Co|acme" {
		t.Errorf("Unexpected display filter %q", c.opts.DisplayFilter)
	}
	if c.opts.DisplayLimit != 5 || c.opts.DisplayOffset != 0 {
		t.Errorf("Unexpected pagination limit=%d offset=%d", c.opts.DisplayLimit, c.opts.DisplayOffset)
	}
	if c.opts.Database != semrush.DatabaseGoogleUS || c.opts.DisplaySort != "nq_desc" {
		t.Errorf("Unexpected options %+v", c.opts)
	}
	if len(c.opts.ExportColumns) != 12 {
		t.Errorf("Expected 12 export columns, got %d", len(c.opts.ExportColumns))
	}
}

func TestCollectDomainOrganic_Mapping(t *testing.T) {
	mock := &mockClient{result: semrush.Result{
		semrush.NewRow(map[semrush.Column]string{
			semrush.ColumnKeyword:            "seo tools",
			semrush.ColumnPosition:           "3",
			semrush.ColumnPreviousPosition:   "5",
			semrush.ColumnPositionDifference: "-2",
			semrush.ColumnSearchVolume:       "1300",
			semrush.ColumnCPC:                "4.12",
			semrush.ColumnTargetURL:          "https://example.com/tools",
			semrush.ColumnTrafficPercentage:  "0.35",
			semrush.ColumnTrafficCost:        "12.5",
			semrush.ColumnCompetition:        "0.8",
			semrush.ColumnNumberOfResults:    "125000000",
			semrush.ColumnTrends:             "0.81,1.00,0.81",
		}),
	}}
	f := newTestFacade(mock)

	keywords, err := f.CollectDomainOrganic(context.Background(), "example.com", nil, 5, 0, "", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got, ok := keywords["seo tools"]
	if !ok {
		t.Fatalf("Expected keyword in %v", keywords)
	}
	want := OrganicKeyword{
		Position:           3,
		PreviousPosition:   5,
		PositionDifference: -2,
		SearchVolume:       1300,
		CPC:                4.12,
		URL:                "https://example.com/tools",
		Traffic:            0.35,
		TrafficCost:        12.5,
		Competition:        0.8,
		NumberOfResults:    125000000,
		Trends:             "0.81,1.00,0.81",
	}
	if got != want {
		t.Errorf("Mapped keyword = %+v, want %+v", got, want)
	}
}

func TestKeywordPagination(t *testing.T) {
	tests := []struct {
		name          string
		limit, offset int
		wantLimit     int
		wantOffset    int
	}{
		{"first page", 5, 0, 5, 0},
		{"second page", 5, 5, 10, 5},
		{"zero limit", 0, 3, 3, 3},
		{"zero limit and offset", 0, 0, 0, 0},
		{"large offset", 100, 400, 500, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockClient{}
			f := newTestFacade(mock)
			ctx := context.Background()

			f.CollectDomainOrganic(ctx, "example.com", nil, tt.limit, tt.offset, "en-us", nil)
			f.CollectDomainPaid(ctx, "example.com", nil, tt.limit, tt.offset, "en-us", nil)
			f.CollectDomainPlaSearchKeywords(ctx, "example.com", nil, tt.limit, tt.offset, "en-us", nil)
			f.Backlinks(ctx, "example.com", "", tt.limit, tt.offset, "")
			f.ReferringDomains(ctx, "example.com", "", tt.limit, tt.offset)
			f.ReferringIPs(ctx, "example.com", "", tt.limit, tt.offset)

			if len(mock.calls) != 6 {
				t.Fatalf("Expected 6 calls, got %d", len(mock.calls))
			}
			for _, c := range mock.calls {
				if c.opts.DisplayLimit != tt.wantLimit || c.opts.DisplayOffset != tt.wantOffset {
					t.Errorf("%s: limit=%d offset=%d, want %d/%d",
						c.method, c.opts.DisplayLimit, c.opts.DisplayOffset, tt.wantLimit, tt.wantOffset)
				}
			}
		})
	}
}

func TestKeywordFilters(t *testing.T) {
	mock := &mockClient{}
	f := newTestFacade(mock)
	ctx := context.Background()
	filters := []Filter{
		{Sign: "+", Field: "Nq", Operator: "Gt", Value: "100"},
		{Sign: "+", Field: "Cp", Operator: "Gt", Value: ""},
	}

	f.CollectDomainPaid(ctx, "example.com", []string{"Acme", "Bolt"}, 5, 0, "en-us", filters)
	if got := mock.lastCall(t).opts.DisplayFilter; got != "-|Ph|Co|acme|-|Ph|Co|bolt|+|Nq|Gt|100" {
		t.Errorf("Paid display filter = %q", got)
	}

	f.CollectDomainPlaSearchKeywords(ctx, "example.com", nil, 5, 0, "en-us", filters)
	if got := mock.lastCall(t).opts.DisplayFilter; got != "+|Nq|Gt|100" {
		t.Errorf("PLA display filter = %q", got)
	}

	f.CollectDomainOrganic(ctx, "example.com", nil, 5, 0, "en-us", filters)
	if got := mock.lastCall(t).opts.DisplayFilter; got != "-|Po|Gt|20|+|Nq|Gt|100" {
		t.Errorf("Organic display filter = %q", got)
	}
}

func TestErrorPolicy(t *testing.T) {
	upstream := &semrush.APIError{Code: semrush.CodeWrongKey, Message: "WRONG KEY - ID PAIR"}
	ctx := context.Background()

	t.Run("tolerant swallows keyword failures", func(t *testing.T) {
		f := newTestFacade(&mockClient{err: upstream})

		organic, err := f.CollectDomainOrganic(ctx, "example.com", nil, 5, 0, "en-us", nil)
		if err != nil || organic == nil || len(organic) != 0 {
			t.Errorf("Organic: expected empty map and nil error, got %v, %v", organic, err)
		}
		paid, err := f.CollectDomainPaid(ctx, "example.com", nil, 5, 0, "en-us", nil)
		if err != nil || paid == nil || len(paid) != 0 {
			t.Errorf("Paid: expected empty map and nil error, got %v, %v", paid, err)
		}
		pla, err := f.CollectDomainPlaSearchKeywords(ctx, "example.com", nil, 5, 0, "en-us", nil)
		if err != nil || pla == nil || len(pla) != 0 {
			t.Errorf("PLA: expected empty map and nil error, got %v, %v", pla, err)
		}
	})

	t.Run("tolerant still surfaces other reports", func(t *testing.T) {
		f := newTestFacade(&mockClient{err: upstream})
		var apiErr *semrush.APIError

		if _, err := f.DomainOverview(ctx, "example.com", "en-us"); !errors.As(err, &apiErr) {
			t.Errorf("DomainOverview: expected APIError, got %v", err)
		}
		if _, err := f.CollectKeywordDifficulty(ctx, "seo", "en-us"); !errors.As(err, &apiErr) {
			t.Errorf("CollectKeywordDifficulty: expected APIError, got %v", err)
		}
		if _, err := f.Backlinks(ctx, "example.com", "", 5, 0, ""); !errors.As(err, &apiErr) {
			t.Errorf("Backlinks: expected APIError, got %v", err)
		}
	})

	t.Run("strict returns keyword failures", func(t *testing.T) {
		f := newTestFacade(&mockClient{err: upstream}, WithErrorPolicy(ErrorPolicyStrict))
		var apiErr *semrush.APIError

		if _, err := f.CollectDomainOrganic(ctx, "example.com", nil, 5, 0, "en-us", nil); !errors.As(err, &apiErr) {
			t.Errorf("Organic: expected APIError, got %v", err)
		}
		if _, err := f.CollectDomainPaid(ctx, "example.com", nil, 5, 0, "en-us", nil); !errors.As(err, &apiErr) {
			t.Errorf("Paid: expected APIError, got %v", err)
		}
		if _, err := f.CollectDomainPlaSearchKeywords(ctx, "example.com", nil, 5, 0, "en-us", nil); !errors.As(err, &apiErr) {
			t.Errorf("PLA: expected APIError, got %v", err)
		}
	})

	t.Run("unknown region is never swallowed", func(t *testing.T) {
		mock := &mockClient{}
		f := newTestFacade(mock)

		if _, err := f.CollectDomainOrganic(ctx, "example.com", nil, 5, 0, "xx-xx", nil); !errors.Is(err, ErrUnknownRegion) {
			t.Errorf("Expected ErrUnknownRegion, got %v", err)
		}
		if _, err := f.DomainOverview(ctx, "example.com", "xx-xx"); !errors.Is(err, ErrUnknownRegion) {
			t.Errorf("Expected ErrUnknownRegion, got %v", err)
		}
		if len(mock.calls) != 0 {
			t.Errorf("Expected no client calls, got %d", len(mock.calls))
		}
	})

	t.Run("negative pagination is rejected", func(t *testing.T) {
		f := newTestFacade(&mockClient{})
		if _, err := f.CollectDomainPaid(ctx, "example.com", nil, -1, 0, "en-us", nil); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("Expected ErrInvalidRequest, got %v", err)
		}
		if _, err := f.IndexedPages(ctx, "example.com", "", -5, ""); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("Expected ErrInvalidRequest, got %v", err)
		}
	})
}

func TestDomainOverview(t *testing.T) {
	mock := &mockClient{result: semrush.Result{
		semrush.NewRow(map[semrush.Column]string{
			semrush.ColumnOverviewDatabase:        "fr",
			semrush.ColumnOverviewDomain:          "example.com",
			semrush.ColumnOverviewRank:            "1520",
			semrush.ColumnOverviewOrganicKeywords: "3400",
			semrush.ColumnOverviewOrganicTraffic:  "12000",
			semrush.ColumnOverviewOrganicBudget:   "8700",
			semrush.ColumnOverviewAdwordsKeywords: "12",
			semrush.ColumnOverviewAdwordsTraffic:  "40",
			semrush.ColumnOverviewAdwordsBudget:   "95",
			semrush.ColumnOverviewPLAUniques:      "0",
			semrush.ColumnOverviewPLAKeywords:     "3",
		}),
	}}
	f := newTestFacade(mock)

	overview, err := f.DomainOverview(context.Background(), "example.com", "fr-fr")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if mock.lastCall(t).opts.Database != semrush.DatabaseGoogleFR {
		t.Errorf("Expected database fr, got %q", mock.lastCall(t).opts.Database)
	}

	want := DomainOverview{
		Database:        "fr",
		Domain:          "example.com",
		Rank:            1520,
		OrganicKeywords: 3400,
		OrganicTraffic:  12000,
		OrganicCost:     8700,
		AdwordsKeywords: 12,
		AdwordsTraffic:  40,
		AdwordsCost:     95,
		PLAUniques:      0,
		PLAKeywords:     3,
	}
	if *overview != want {
		t.Errorf("Overview = %+v, want %+v", *overview, want)
	}
}

func TestSingleRecordReportsRequireData(t *testing.T) {
	f := newTestFacade(&mockClient{result: semrush.Result{}})
	ctx := context.Background()

	if _, err := f.DomainOverview(ctx, "example.com", "en-us"); !errors.Is(err, ErrNoData) {
		t.Errorf("DomainOverview: expected ErrNoData, got %v", err)
	}
	if _, err := f.BacklinksOverview(ctx, "example.com", semrush.TargetRootDomain); !errors.Is(err, ErrNoData) {
		t.Errorf("BacklinksOverview: expected ErrNoData, got %v", err)
	}
}

func TestCollectKeywordDifficulty(t *testing.T) {
	mock := &mockClient{result: semrush.Result{
		semrush.NewRow(map[semrush.Column]string{semrush.ColumnKeyword: "seo", semrush.ColumnKeywordDifficulty: "87.45"}),
		semrush.NewRow(map[semrush.Column]string{semrush.ColumnKeyword: "seo tools", semrush.ColumnKeywordDifficulty: "79.10"}),
	}}
	f := newTestFacade(mock)

	difficulty, err := f.CollectKeywordDifficulty(context.Background(), "seo;seo tools", "de-de")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if difficulty["seo"] != "87.45" || difficulty["seo tools"] != "79.10" {
		t.Errorf("Unexpected difficulty map %v", difficulty)
	}

	c := mock.lastCall(t)
	if c.target != "seo;seo tools" || c.opts.Database != semrush.DatabaseGoogleDE {
		t.Errorf("Unexpected call %+v", c)
	}
	if c.opts.DisplayLimit != 0 || c.opts.DisplayOffset != 0 {
		t.Errorf("Difficulty must not paginate, got %+v", c.opts)
	}
}

func TestBacklinks(t *testing.T) {
	mock := &mockClient{result: semrush.Result{
		semrush.NewRow(map[semrush.Column]string{
			semrush.ColumnPageScore:      "12",
			semrush.ColumnResponseCode:   "200",
			semrush.ColumnSourceURL:      "https://blog.test/post",
			semrush.ColumnBacklinkTarget: "https://example.com/",
			semrush.ColumnAnchor:         "example",
			semrush.ColumnFirstSeen:      "1600000000",
			semrush.ColumnLastSeen:       "1700000000",
			semrush.ColumnNofollow:       "false",
		}),
	}}
	f := newTestFacade(mock)

	links, err := f.Backlinks(context.Background(), "example.com", semrush.TargetURL, 10, 20, "+|nofollow||false")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("Expected 1 backlink, got %d", len(links))
	}

	link := links[0]
	if link.PageScore != 12 || link.ResponseCode != 200 || link.FirstSeen != 1600000000 || link.LastSeen != 1700000000 {
		t.Errorf("Unexpected numeric fields %+v", link)
	}
	if link.SourceURL != "https://blog.test/post" || link.TargetURL != "https://example.com/" || link.Nofollow != "false" {
		t.Errorf("Unexpected string fields %+v", link)
	}

	c := mock.lastCall(t)
	if c.opts.TargetType != semrush.TargetURL || c.opts.DisplayFilter != "+|nofollow||false" {
		t.Errorf("Unexpected options %+v", c.opts)
	}
	if c.opts.DisplayLimit != 30 || c.opts.DisplayOffset != 20 {
		t.Errorf("Unexpected pagination %+v", c.opts)
	}
	if len(c.opts.ExportColumns) != 23 {
		t.Errorf("Expected 23 export columns, got %d", len(c.opts.ExportColumns))
	}
}

func TestBacklinkDefaults(t *testing.T) {
	mock := &mockClient{}
	f := newTestFacade(mock)
	ctx := context.Background()

	f.ReferringDomains(ctx, "example.com", "", 5, 0)
	if got := mock.lastCall(t).opts.TargetType; got != semrush.TargetDomain {
		t.Errorf("Expected default target type domain, got %q", got)
	}

	f.IndexedPages(ctx, "example.com", "", 0, "")
	c := mock.lastCall(t)
	if c.opts.DisplaySort != "domains_num_desc" || c.opts.DisplayLimit != 0 || c.opts.DisplayOffset != 0 {
		t.Errorf("Unexpected indexed pages options %+v", c.opts)
	}

	if _, err := f.ReferringIPs(ctx, "example.com", "subdomain", 5, 0); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("Expected ErrInvalidRequest for bad target type, got %v", err)
	}
}

func TestReferringAndIndexedMapping(t *testing.T) {
	ctx := context.Background()

	domains, err := newTestFacade(&mockClient{result: semrush.Result{
		semrush.NewRow(map[semrush.Column]string{
			semrush.ColumnDomainScore:  "55",
			semrush.ColumnDomain:       "blog.test",
			semrush.ColumnBacklinksNum: "17",
			semrush.ColumnIP:           "10.0.0.1",
			semrush.ColumnCountry:      "us",
		}),
	}}).ReferringDomains(ctx, "example.com", "", 5, 0)
	if err != nil || len(domains) != 1 {
		t.Fatalf("ReferringDomains: %v, %v", domains, err)
	}
	if domains[0].DomainScore != 55 || domains[0].BacklinksNum != 17 || domains[0].Domain != "blog.test" {
		t.Errorf("Unexpected referring domain %+v", domains[0])
	}

	ips, err := newTestFacade(&mockClient{result: semrush.Result{
		semrush.NewRow(map[semrush.Column]string{
			semrush.ColumnIP:         "10.0.0.1",
			semrush.ColumnDomainsNum: "3",
		}),
	}}).ReferringIPs(ctx, "example.com", "", 5, 0)
	if err != nil || len(ips) != 1 || ips[0].DomainsNum != 3 || ips[0].IP != "10.0.0.1" {
		t.Errorf("ReferringIPs: %+v, %v", ips, err)
	}

	pages, err := newTestFacade(&mockClient{result: semrush.Result{
		semrush.NewRow(map[semrush.Column]string{
			semrush.ColumnResponseCode: "301",
			semrush.ColumnSourceURL:    "https://example.com/old",
		}),
	}}).IndexedPages(ctx, "example.com", "", 5, "backlinks_num_desc")
	if err != nil || len(pages) != 1 || pages[0].ResponseCode != 301 {
		t.Errorf("IndexedPages: %+v, %v", pages, err)
	}
}

func TestParseErrorPolicy(t *testing.T) {
	for in, want := range map[string]ErrorPolicy{"": ErrorPolicyTolerant, "Tolerant": ErrorPolicyTolerant, "strict": ErrorPolicyStrict} {
		got, err := ParseErrorPolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseErrorPolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseErrorPolicy("lenient"); err == nil {
		t.Error("Expected error for unknown policy")
	}
	if ErrorPolicyStrict.String() != "strict" {
		t.Errorf("Unexpected String() %q", ErrorPolicyStrict.String())
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(DefaultConfig("")); !errors.Is(err, semrush.ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}
}
