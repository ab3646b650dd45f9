package seo

import (
	"context"
	"fmt"

	"semrush-go/pkg/semrush"
)

var (
	overviewColumns = []semrush.Column{
		semrush.ColumnOverviewDatabase,
		semrush.ColumnOverviewDomain,
		semrush.ColumnOverviewRank,
		semrush.ColumnOverviewOrganicKeywords,
		semrush.ColumnOverviewOrganicTraffic,
		semrush.ColumnOverviewOrganicBudget,
		semrush.ColumnOverviewAdwordsKeywords,
		semrush.ColumnOverviewAdwordsTraffic,
		semrush.ColumnOverviewAdwordsBudget,
		semrush.ColumnOverviewPLAUniques,
		semrush.ColumnOverviewPLAKeywords,
	}

	organicColumns = []semrush.Column{
		semrush.ColumnKeyword,
		semrush.ColumnPosition,
		semrush.ColumnPreviousPosition,
		semrush.ColumnPositionDifference,
		semrush.ColumnSearchVolume,
		semrush.ColumnCPC,
		semrush.ColumnTargetURL,
		semrush.ColumnTrafficPercentage,
		semrush.ColumnTrafficCost,
		semrush.ColumnCompetition,
		semrush.ColumnNumberOfResults,
		semrush.ColumnTrends,
	}

	paidColumns = []semrush.Column{
		semrush.ColumnKeyword,
		semrush.ColumnPosition,
		semrush.ColumnPreviousPosition,
		semrush.ColumnPositionDifference,
		semrush.ColumnAdwordPosition,
		semrush.ColumnSearchVolume,
		semrush.ColumnCPC,
		semrush.ColumnTrafficPercentage,
		semrush.ColumnTrafficCost,
		semrush.ColumnCompetition,
		semrush.ColumnNumberOfResults,
		semrush.ColumnTrends,
		semrush.ColumnAdTitle,
		semrush.ColumnAdText,
		semrush.ColumnVisibleURL,
		semrush.ColumnTargetURL,
	}

	plaColumns = []semrush.Column{
		semrush.ColumnKeyword,
		semrush.ColumnPosition,
		semrush.ColumnPreviousPosition,
		semrush.ColumnPositionDifference,
		semrush.ColumnSearchVolume,
		semrush.ColumnShopName,
		semrush.ColumnTargetURL,
		semrush.ColumnAdTitle,
		semrush.ColumnProductPrice,
		semrush.ColumnTimestamp,
	}

	difficultyColumns = []semrush.Column{
		semrush.ColumnKeyword,
		semrush.ColumnKeywordDifficulty,
	}
)

// DomainOverview returns the domain_ranks summary of url in region
func (f *Facade) DomainOverview(ctx context.Context, url, region string) (*DomainOverview, error) {
	db, err := f.database(region)
	if err != nil {
		return nil, err
	}

	result, err := f.client.GetDomainRanks(ctx, url, semrush.Options{
		Database:      db,
		ExportColumns: overviewColumns,
	})
	if err != nil {
		return nil, fmt.Errorf("domain overview for %s: %w", url, err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("domain overview for %s: %w", url, ErrNoData)
	}

	row := result[0]
	return &DomainOverview{
		Database:        row.Value(semrush.ColumnOverviewDatabase),
		Domain:          row.Value(semrush.ColumnOverviewDomain),
		Rank:            toInt(row.Value(semrush.ColumnOverviewRank)),
		OrganicKeywords: toInt(row.Value(semrush.ColumnOverviewOrganicKeywords)),
		OrganicTraffic:  toInt(row.Value(semrush.ColumnOverviewOrganicTraffic)),
		OrganicCost:     toInt(row.Value(semrush.ColumnOverviewOrganicBudget)),
		AdwordsKeywords: toInt(row.Value(semrush.ColumnOverviewAdwordsKeywords)),
		AdwordsTraffic:  toInt(row.Value(semrush.ColumnOverviewAdwordsTraffic)),
		AdwordsCost:     toInt(row.Value(semrush.ColumnOverviewAdwordsBudget)),
		PLAUniques:      toInt(row.Value(semrush.ColumnOverviewPLAUniques)),
		PLAKeywords:     toInt(row.Value(semrush.ColumnOverviewPLAKeywords)),
	}, nil
}

// CollectDomainOrganic returns the organic keywords of url ranked within the
// top 20, excluding phrases that mention any of brands
func (f *Facade) CollectDomainOrganic(ctx context.Context, url string, brands []string, limit, offset int, region string, filters []Filter) (map[string]OrganicKeyword, error) {
	result, err := f.collect(ctx, f.client.GetDomainOrganic, url, organicColumns, limit, offset, region, organicDisplayFilter(brands, filters))
	if err != nil {
		if f.tolerate("collect_domain_organic", url, err) {
			return map[string]OrganicKeyword{}, nil
		}
		return nil, fmt.Errorf("organic keywords for %s: %w", url, err)
	}

	keywords := make(map[string]OrganicKeyword, len(result))
	for _, row := range result {
		keywords[row.Value(semrush.ColumnKeyword)] = organicKeyword(row)
	}
	return keywords, nil
}

// CollectDomainPaid returns the paid search keywords of url
func (f *Facade) CollectDomainPaid(ctx context.Context, url string, brands []string, limit, offset int, region string, filters []Filter) (map[string]PaidKeyword, error) {
	result, err := f.collect(ctx, f.client.GetDomainAdwords, url, paidColumns, limit, offset, region, BuildDisplayFilter(brands, filters))
	if err != nil {
		if f.tolerate("collect_domain_paid", url, err) {
			return map[string]PaidKeyword{}, nil
		}
		return nil, fmt.Errorf("paid keywords for %s: %w", url, err)
	}

	keywords := make(map[string]PaidKeyword, len(result))
	for _, row := range result {
		keywords[row.Value(semrush.ColumnKeyword)] = PaidKeyword{
			OrganicKeyword: organicKeyword(row),
			AdwordPosition: row.Value(semrush.ColumnAdwordPosition),
			Title:          row.Value(semrush.ColumnAdTitle),
			Description:    row.Value(semrush.ColumnAdText),
			VisibleURL:     row.Value(semrush.ColumnVisibleURL),
		}
	}
	return keywords, nil
}

// CollectDomainPlaSearchKeywords returns the product listing ad keywords of url
func (f *Facade) CollectDomainPlaSearchKeywords(ctx context.Context, url string, brands []string, limit, offset int, region string, filters []Filter) (map[string]PLAKeyword, error) {
	result, err := f.collect(ctx, f.client.GetDomainPlaSearchKeywords, url, plaColumns, limit, offset, region, BuildDisplayFilter(brands, filters))
	if err != nil {
		if f.tolerate("collect_domain_pla", url, err) {
			return map[string]PLAKeyword{}, nil
		}
		return nil, fmt.Errorf("pla keywords for %s: %w", url, err)
	}

	keywords := make(map[string]PLAKeyword, len(result))
	for _, row := range result {
		keywords[row.Value(semrush.ColumnKeyword)] = PLAKeyword{
			Position:           toInt(row.Value(semrush.ColumnPosition)),
			PreviousPosition:   toInt(row.Value(semrush.ColumnPreviousPosition)),
			PositionDifference: toInt(row.Value(semrush.ColumnPositionDifference)),
			SearchVolume:       toInt(row.Value(semrush.ColumnSearchVolume)),
			ShopName:           row.Value(semrush.ColumnShopName),
			URL:                row.Value(semrush.ColumnTargetURL),
			Title:              row.Value(semrush.ColumnAdTitle),
			ProductPrice:       toFloat(row.Value(semrush.ColumnProductPrice)),
			Timestamp:          toInt64(row.Value(semrush.ColumnTimestamp)),
		}
	}
	return keywords, nil
}

type reportFunc func(ctx context.Context, target string, opts semrush.Options) (semrush.Result, error)

// collect runs one of the domain keyword reports, sorted by search volume
func (f *Facade) collect(ctx context.Context, get reportFunc, url string, columns []semrush.Column, limit, offset int, region, filter string) (semrush.Result, error) {
	db, err := f.database(region)
	if err != nil {
		return nil, err
	}
	displayLimit, displayOffset, err := pagination(limit, offset)
	if err != nil {
		return nil, err
	}
	return get(ctx, url, semrush.Options{
		Database:      db,
		ExportColumns: columns,
		DisplayLimit:  displayLimit,
		DisplayOffset: displayOffset,
		DisplaySort:   keywordSort,
		DisplayFilter: filter,
	})
}

// CollectKeywordDifficulty returns the raw difficulty index per keyword of phrase
func (f *Facade) CollectKeywordDifficulty(ctx context.Context, phrase, region string) (map[string]string, error) {
	db, err := f.database(region)
	if err != nil {
		return nil, err
	}

	result, err := f.client.GetKeywordDifficulty(ctx, phrase, semrush.Options{
		Database:      db,
		ExportColumns: difficultyColumns,
	})
	if err != nil {
		return nil, fmt.Errorf("keyword difficulty for %q: %w", phrase, err)
	}

	difficulty := make(map[string]string, len(result))
	for _, row := range result {
		difficulty[row.Value(semrush.ColumnKeyword)] = row.Value(semrush.ColumnKeywordDifficulty)
	}
	return difficulty, nil
}

func organicKeyword(row semrush.Row) OrganicKeyword {
	return OrganicKeyword{
		Position:           toInt(row.Value(semrush.ColumnPosition)),
		PreviousPosition:   toInt(row.Value(semrush.ColumnPreviousPosition)),
		PositionDifference: toInt(row.Value(semrush.ColumnPositionDifference)),
		SearchVolume:       toInt(row.Value(semrush.ColumnSearchVolume)),
		CPC:                toFloat(row.Value(semrush.ColumnCPC)),
		URL:                row.Value(semrush.ColumnTargetURL),
		Traffic:            toFloat(row.Value(semrush.ColumnTrafficPercentage)),
		TrafficCost:        toFloat(row.Value(semrush.ColumnTrafficCost)),
		Competition:        toFloat(row.Value(semrush.ColumnCompetition)),
		NumberOfResults:    toInt(row.Value(semrush.ColumnNumberOfResults)),
		Trends:             row.Value(semrush.ColumnTrends),
	}
}
