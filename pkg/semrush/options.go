package semrush

import (
	"fmt"
	"net/url"
	"strconv"
)

// TargetType selects how a backlinks target is interpreted
type TargetType string

const (
	TargetRootDomain TargetType = "root_domain"
	TargetDomain     TargetType = "domain"
	TargetURL        TargetType = "url"
)

// Valid reports whether t is a supported target type
func (t TargetType) Valid() bool {
	switch t {
	case TargetRootDomain, TargetDomain, TargetURL:
		return true
	}
	return false
}

// Options are the per-request parameters shared by all reports.
// Zero values are omitted from the request, so a zero DisplayLimit leaves the
// page size to the provider. display_offset accompanies any display_limit on
// reports that accept an offset.
type Options struct {
	Database      Database
	ExportColumns []Column
	DisplayLimit  int
	DisplayOffset int
	DisplaySort   string
	DisplayFilter string
	TargetType    TargetType
}

func (o Options) validate(report ReportType) error {
	if len(o.ExportColumns) == 0 {
		return fmt.Errorf("%w: %s requires export columns", ErrInvalidOptions, report)
	}
	if report.requiresDatabase() && o.Database == "" {
		return fmt.Errorf("%w: %s requires a database", ErrInvalidOptions, report)
	}
	if o.Database != "" && !o.Database.Valid() {
		return fmt.Errorf("%w: unknown database %q", ErrInvalidOptions, o.Database)
	}
	if o.DisplayLimit < 0 || o.DisplayOffset < 0 {
		return fmt.Errorf("%w: negative pagination (limit=%d offset=%d)", ErrInvalidOptions, o.DisplayLimit, o.DisplayOffset)
	}
	if !report.paginated() && (o.DisplayLimit > 0 || o.DisplayOffset > 0) {
		return fmt.Errorf("%w: %s does not support pagination", ErrInvalidOptions, report)
	}
	if !report.offsetted() && o.DisplayOffset > 0 {
		return fmt.Errorf("%w: %s does not support display_offset", ErrInvalidOptions, report)
	}
	if report.isBacklinks() {
		if o.TargetType != "" && !o.TargetType.Valid() {
			return fmt.Errorf("%w: unknown target type %q", ErrInvalidOptions, o.TargetType)
		}
	} else if o.TargetType != "" {
		return fmt.Errorf("%w: %s does not accept a target type", ErrInvalidOptions, report)
	}
	return nil
}

// params renders the options for report without the API key
func (o Options) params(report ReportType, target string) url.Values {
	params := url.Values{}
	params.Set("type", string(report))
	params.Set(report.targetParam(), target)
	params.Set("export_columns", joinColumns(o.ExportColumns))

	if o.Database != "" {
		params.Set("database", string(o.Database))
	}
	if o.TargetType != "" {
		params.Set("target_type", string(o.TargetType))
	}
	if o.DisplayLimit > 0 {
		params.Set("display_limit", strconv.Itoa(o.DisplayLimit))
	}
	if report.offsetted() && (o.DisplayLimit > 0 || o.DisplayOffset > 0) {
		params.Set("display_offset", strconv.Itoa(o.DisplayOffset))
	}
	if o.DisplaySort != "" {
		params.Set("display_sort", o.DisplaySort)
	}
	if o.DisplayFilter != "" {
		params.Set("display_filter", o.DisplayFilter)
	}
	return params
}
