package seo

import (
	"context"
	"fmt"

	"semrush-go/pkg/semrush"
)

var (
	backlinksOverviewColumns = []semrush.Column{
		semrush.ColumnTotal,
		semrush.ColumnDomainsNum,
		semrush.ColumnURLsNum,
		semrush.ColumnIPsNum,
		semrush.ColumnIPClassCNum,
		semrush.ColumnTextsNum,
		semrush.ColumnFollowsNum,
		semrush.ColumnFormsNum,
		semrush.ColumnNofollowsNum,
		semrush.ColumnFramesNum,
		semrush.ColumnImagesNum,
		semrush.ColumnScore,
		semrush.ColumnTrustScore,
	}

	backlinkColumns = []semrush.Column{
		semrush.ColumnPageScore,
		semrush.ColumnPageTrustScore,
		semrush.ColumnResponseCode,
		semrush.ColumnSourceSize,
		semrush.ColumnExternalNum,
		semrush.ColumnInternalNum,
		semrush.ColumnRedirectURL,
		semrush.ColumnSourceURL,
		semrush.ColumnSourceTitle,
		semrush.ColumnImageURL,
		semrush.ColumnBacklinkTarget,
		semrush.ColumnTargetTitle,
		semrush.ColumnAnchor,
		semrush.ColumnImageAlt,
		semrush.ColumnLastSeen,
		semrush.ColumnFirstSeen,
		semrush.ColumnNofollow,
		semrush.ColumnForm,
		semrush.ColumnFrame,
		semrush.ColumnImage,
		semrush.ColumnSitewide,
		semrush.ColumnNewlink,
		semrush.ColumnLostlink,
	}

	referringDomainColumns = []semrush.Column{
		semrush.ColumnDomainScore,
		semrush.ColumnDomainTrustScore,
		semrush.ColumnDomain,
		semrush.ColumnBacklinksNum,
		semrush.ColumnIP,
		semrush.ColumnCountry,
		semrush.ColumnFirstSeen,
		semrush.ColumnLastSeen,
	}

	referringIPColumns = []semrush.Column{
		semrush.ColumnIP,
		semrush.ColumnCountry,
		semrush.ColumnDomainsNum,
		semrush.ColumnBacklinksNum,
		semrush.ColumnFirstSeen,
		semrush.ColumnLastSeen,
	}

	indexedPageColumns = []semrush.Column{
		semrush.ColumnResponseCode,
		semrush.ColumnBacklinksNum,
		semrush.ColumnDomainsNum,
		semrush.ColumnLastSeen,
		semrush.ColumnExternalNum,
		semrush.ColumnInternalNum,
		semrush.ColumnSourceURL,
		semrush.ColumnSourceTitle,
	}
)

func targetType(t semrush.TargetType) (semrush.TargetType, error) {
	if t == "" {
		return DefaultTargetType, nil
	}
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown target type %q", ErrInvalidRequest, t)
	}
	return t, nil
}

// backlinkOptions builds options for a paginated backlinks report
func backlinkOptions(t semrush.TargetType, columns []semrush.Column, limit, offset int) (semrush.Options, error) {
	tt, err := targetType(t)
	if err != nil {
		return semrush.Options{}, err
	}
	displayLimit, displayOffset, err := pagination(limit, offset)
	if err != nil {
		return semrush.Options{}, err
	}
	return semrush.Options{
		TargetType:    tt,
		ExportColumns: columns,
		DisplayLimit:  displayLimit,
		DisplayOffset: displayOffset,
	}, nil
}

// BacklinksOverview returns the backlink profile summary of domain
func (f *Facade) BacklinksOverview(ctx context.Context, domain string, t semrush.TargetType) (*BacklinksOverview, error) {
	tt, err := targetType(t)
	if err != nil {
		return nil, err
	}

	result, err := f.client.GetBacklinksOverview(ctx, domain, semrush.Options{
		TargetType:    tt,
		ExportColumns: backlinksOverviewColumns,
	})
	if err != nil {
		return nil, fmt.Errorf("backlinks overview for %s: %w", domain, err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("backlinks overview for %s: %w", domain, ErrNoData)
	}

	row := result[0]
	return &BacklinksOverview{
		Total:        toInt(row.Value(semrush.ColumnTotal)),
		DomainsNum:   toInt(row.Value(semrush.ColumnDomainsNum)),
		URLsNum:      toInt(row.Value(semrush.ColumnURLsNum)),
		IPsNum:       toInt(row.Value(semrush.ColumnIPsNum)),
		IPClassCNum:  toInt(row.Value(semrush.ColumnIPClassCNum)),
		TextsNum:     toInt(row.Value(semrush.ColumnTextsNum)),
		FollowsNum:   toInt(row.Value(semrush.ColumnFollowsNum)),
		FormsNum:     toInt(row.Value(semrush.ColumnFormsNum)),
		NofollowsNum: toInt(row.Value(semrush.ColumnNofollowsNum)),
		FramesNum:    toInt(row.Value(semrush.ColumnFramesNum)),
		ImagesNum:    toInt(row.Value(semrush.ColumnImagesNum)),
		Score:        toInt(row.Value(semrush.ColumnScore)),
		TrustScore:   toInt(row.Value(semrush.ColumnTrustScore)),
	}, nil
}

// Backlinks lists inbound links of domain. filter is passed to the provider verbatim.
func (f *Facade) Backlinks(ctx context.Context, domain string, t semrush.TargetType, limit, offset int, filter string) ([]Backlink, error) {
	opts, err := backlinkOptions(t, backlinkColumns, limit, offset)
	if err != nil {
		return nil, err
	}
	opts.DisplayFilter = filter

	result, err := f.client.GetBacklinks(ctx, domain, opts)
	if err != nil {
		return nil, fmt.Errorf("backlinks for %s: %w", domain, err)
	}

	links := make([]Backlink, 0, len(result))
	for _, row := range result {
		links = append(links, Backlink{
			PageScore:      toInt(row.Value(semrush.ColumnPageScore)),
			PageTrustScore: toInt(row.Value(semrush.ColumnPageTrustScore)),
			ResponseCode:   toInt(row.Value(semrush.ColumnResponseCode)),
			SourceSize:     toInt(row.Value(semrush.ColumnSourceSize)),
			ExternalNum:    toInt(row.Value(semrush.ColumnExternalNum)),
			InternalNum:    toInt(row.Value(semrush.ColumnInternalNum)),
			RedirectURL:    row.Value(semrush.ColumnRedirectURL),
			SourceURL:      row.Value(semrush.ColumnSourceURL),
			SourceTitle:    row.Value(semrush.ColumnSourceTitle),
			ImageURL:       row.Value(semrush.ColumnImageURL),
			TargetURL:      row.Value(semrush.ColumnBacklinkTarget),
			TargetTitle:    row.Value(semrush.ColumnTargetTitle),
			Anchor:         row.Value(semrush.ColumnAnchor),
			ImageAlt:       row.Value(semrush.ColumnImageAlt),
			LastSeen:       toInt64(row.Value(semrush.ColumnLastSeen)),
			FirstSeen:      toInt64(row.Value(semrush.ColumnFirstSeen)),
			Nofollow:       row.Value(semrush.ColumnNofollow),
			Form:           row.Value(semrush.ColumnForm),
			Frame:          row.Value(semrush.ColumnFrame),
			Image:          row.Value(semrush.ColumnImage),
			Sitewide:       row.Value(semrush.ColumnSitewide),
			Newlink:        row.Value(semrush.ColumnNewlink),
			Lostlink:       row.Value(semrush.ColumnLostlink),
		})
	}
	return links, nil
}

// ReferringDomains lists domains linking to domain
func (f *Facade) ReferringDomains(ctx context.Context, domain string, t semrush.TargetType, limit, offset int) ([]ReferringDomain, error) {
	opts, err := backlinkOptions(t, referringDomainColumns, limit, offset)
	if err != nil {
		return nil, err
	}

	result, err := f.client.GetBacklinksReferringDomains(ctx, domain, opts)
	if err != nil {
		return nil, fmt.Errorf("referring domains for %s: %w", domain, err)
	}

	domains := make([]ReferringDomain, 0, len(result))
	for _, row := range result {
		domains = append(domains, ReferringDomain{
			DomainScore:      toInt(row.Value(semrush.ColumnDomainScore)),
			DomainTrustScore: toInt(row.Value(semrush.ColumnDomainTrustScore)),
			Domain:           row.Value(semrush.ColumnDomain),
			BacklinksNum:     toInt(row.Value(semrush.ColumnBacklinksNum)),
			IP:               row.Value(semrush.ColumnIP),
			Country:          row.Value(semrush.ColumnCountry),
			FirstSeen:        toInt64(row.Value(semrush.ColumnFirstSeen)),
			LastSeen:         toInt64(row.Value(semrush.ColumnLastSeen)),
		})
	}
	return domains, nil
}

// ReferringIPs lists IP addresses hosting links to domain
func (f *Facade) ReferringIPs(ctx context.Context, domain string, t semrush.TargetType, limit, offset int) ([]ReferringIP, error) {
	opts, err := backlinkOptions(t, referringIPColumns, limit, offset)
	if err != nil {
		return nil, err
	}

	result, err := f.client.GetBacklinksReferringIPs(ctx, domain, opts)
	if err != nil {
		return nil, fmt.Errorf("referring ips for %s: %w", domain, err)
	}

	ips := make([]ReferringIP, 0, len(result))
	for _, row := range result {
		ips = append(ips, ReferringIP{
			IP:           row.Value(semrush.ColumnIP),
			Country:      row.Value(semrush.ColumnCountry),
			DomainsNum:   toInt(row.Value(semrush.ColumnDomainsNum)),
			BacklinksNum: toInt(row.Value(semrush.ColumnBacklinksNum)),
			FirstSeen:    toInt64(row.Value(semrush.ColumnFirstSeen)),
			LastSeen:     toInt64(row.Value(semrush.ColumnLastSeen)),
		})
	}
	return ips, nil
}

// IndexedPages lists pages of domain known to the backlinks index.
// Only limit is sent, as given; an empty sort means domains_num_desc.
func (f *Facade) IndexedPages(ctx context.Context, domain string, t semrush.TargetType, limit int, sort string) ([]IndexedPage, error) {
	tt, err := targetType(t)
	if err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: negative limit %d", ErrInvalidRequest, limit)
	}
	if sort == "" {
		sort = DefaultIndexedSort
	}

	result, err := f.client.GetBacklinksIndexedPages(ctx, domain, semrush.Options{
		TargetType:    tt,
		ExportColumns: indexedPageColumns,
		DisplayLimit:  limit,
		DisplaySort:   sort,
	})
	if err != nil {
		return nil, fmt.Errorf("indexed pages for %s: %w", domain, err)
	}

	pages := make([]IndexedPage, 0, len(result))
	for _, row := range result {
		pages = append(pages, IndexedPage{
			ResponseCode: toInt(row.Value(semrush.ColumnResponseCode)),
			BacklinksNum: toInt(row.Value(semrush.ColumnBacklinksNum)),
			DomainsNum:   toInt(row.Value(semrush.ColumnDomainsNum)),
			LastSeen:     toInt64(row.Value(semrush.ColumnLastSeen)),
			ExternalNum:  toInt(row.Value(semrush.ColumnExternalNum)),
			InternalNum:  toInt(row.Value(semrush.ColumnInternalNum)),
			SourceURL:    row.Value(semrush.ColumnSourceURL),
			SourceTitle:  row.Value(semrush.ColumnSourceTitle),
		})
	}
	return pages, nil
}
