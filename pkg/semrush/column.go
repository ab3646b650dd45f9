package semrush

import "strings"

// Column is an export column code understood by the provider
type Column string

// Domain overview (domain_ranks)
const (
	ColumnOverviewDatabase        Column = "Db"
	ColumnOverviewDomain          Column = "Dn"
	ColumnOverviewRank            Column = "Rk"
	ColumnOverviewOrganicKeywords Column = "Or"
	ColumnOverviewOrganicTraffic  Column = "Ot"
	ColumnOverviewOrganicBudget   Column = "Oc"
	ColumnOverviewAdwordsKeywords Column = "Ad"
	ColumnOverviewAdwordsTraffic  Column = "At"
	ColumnOverviewAdwordsBudget   Column = "Ac"
	ColumnOverviewPLAKeywords     Column = "Sh"
	ColumnOverviewPLAUniques      Column = "Sv"
)

// Domain keyword reports (domain_organic, domain_adwords, domain_shopping, phrase_kdi)
const (
	ColumnKeyword            Column = "Ph"
	ColumnPosition           Column = "Po"
	ColumnPreviousPosition   Column = "Pp"
	ColumnPositionDifference Column = "Pd"
	ColumnAdwordPosition     Column = "Ab"
	ColumnSearchVolume       Column = "Nq"
	ColumnCPC                Column = "Cp"
	ColumnTargetURL          Column = "Ur"
	ColumnTrafficPercentage  Column = "Tr"
	ColumnTrafficCost        Column = "Tc"
	ColumnCompetition        Column = "Co"
	ColumnNumberOfResults    Column = "Nr"
	ColumnTrends             Column = "Td"
	ColumnAdTitle            Column = "Tt"
	ColumnAdText             Column = "Ds"
	ColumnVisibleURL         Column = "Vu"
	ColumnShopName           Column = "Sn"
	ColumnProductPrice       Column = "Pr"
	ColumnTimestamp          Column = "Ts"
	ColumnKeywordDifficulty  Column = "Kd"
)

// Backlinks reports
const (
	ColumnTotal            Column = "total"
	ColumnDomainsNum       Column = "domains_num"
	ColumnURLsNum          Column = "urls_num"
	ColumnIPsNum           Column = "ips_num"
	ColumnIPClassCNum      Column = "ipclassc_num"
	ColumnTextsNum         Column = "texts_num"
	ColumnFollowsNum       Column = "follows_num"
	ColumnFormsNum         Column = "forms_num"
	ColumnNofollowsNum     Column = "nofollows_num"
	ColumnFramesNum        Column = "frames_num"
	ColumnImagesNum        Column = "images_num"
	ColumnScore            Column = "score"
	ColumnTrustScore       Column = "trust_score"
	ColumnPageScore        Column = "page_score"
	ColumnPageTrustScore   Column = "page_trust_score"
	ColumnResponseCode     Column = "response_code"
	ColumnSourceSize       Column = "source_size"
	ColumnExternalNum      Column = "external_num"
	ColumnInternalNum      Column = "internal_num"
	ColumnRedirectURL      Column = "redirect_url"
	ColumnSourceURL        Column = "source_url"
	ColumnSourceTitle      Column = "source_title"
	ColumnImageURL         Column = "image_url"
	ColumnBacklinkTarget   Column = "target_url"
	ColumnTargetTitle      Column = "target_title"
	ColumnAnchor           Column = "anchor"
	ColumnImageAlt         Column = "image_alt"
	ColumnLastSeen         Column = "last_seen"
	ColumnFirstSeen        Column = "first_seen"
	ColumnNofollow         Column = "nofollow"
	ColumnForm             Column = "form"
	ColumnFrame            Column = "frame"
	ColumnImage            Column = "image"
	ColumnSitewide         Column = "sitewide"
	ColumnNewlink          Column = "newlink"
	ColumnLostlink         Column = "lostlink"
	ColumnDomainScore      Column = "domain_score"
	ColumnDomainTrustScore Column = "domain_trust_score"
	ColumnDomain           Column = "domain"
	ColumnBacklinksNum     Column = "backlinks_num"
	ColumnIP               Column = "ip"
	ColumnCountry          Column = "country"
)

func joinColumns(columns []Column) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}
