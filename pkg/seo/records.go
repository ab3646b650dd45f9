package seo

// DomainOverview is the domain_ranks summary for one database
type DomainOverview struct {
	Database        string `json:"database"`
	Domain          string `json:"domain"`
	Rank            int    `json:"rank"`
	OrganicKeywords int    `json:"organic_keywords"`
	OrganicTraffic  int    `json:"organic_traffic"`
	OrganicCost     int    `json:"organic_cost"`
	AdwordsKeywords int    `json:"adwords_keywords"`
	AdwordsTraffic  int    `json:"adwords_traffic"`
	AdwordsCost     int    `json:"adwords_cost"`
	PLAUniques      int    `json:"pla_uniques"`
	PLAKeywords     int    `json:"pla_keywords"`
}

// OrganicKeyword is one organic search keyword of a domain
type OrganicKeyword struct {
	Position           int     `json:"position"`
	PreviousPosition   int     `json:"previous_position"`
	PositionDifference int     `json:"position_difference"`
	SearchVolume       int     `json:"search_volume"`
	CPC                float64 `json:"cpc"`
	URL                string  `json:"url"`
	Traffic            float64 `json:"traffic"`
	TrafficCost        float64 `json:"traffic_cost"`
	Competition        float64 `json:"competition"`
	NumberOfResults    int     `json:"number_of_results"`
	Trends             string  `json:"trends"`
}

// PaidKeyword is one paid search keyword of a domain
type PaidKeyword struct {
	OrganicKeyword
	AdwordPosition string `json:"adword_position"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	VisibleURL     string `json:"visible_url"`
}

// PLAKeyword is one product listing ad keyword of a domain
type PLAKeyword struct {
	Position           int     `json:"position"`
	PreviousPosition   int     `json:"previous_position"`
	PositionDifference int     `json:"position_difference"`
	SearchVolume       int     `json:"search_volume"`
	ShopName           string  `json:"shop_name"`
	URL                string  `json:"url"`
	Title              string  `json:"title"`
	ProductPrice       float64 `json:"product_price"`
	Timestamp          int64   `json:"timestamp"`
}

// BacklinksOverview aggregates the backlink profile of a target
type BacklinksOverview struct {
	Total        int `json:"total"`
	DomainsNum   int `json:"domains_num"`
	URLsNum      int `json:"urls_num"`
	IPsNum       int `json:"ips_num"`
	IPClassCNum  int `json:"ipclassc_num"`
	TextsNum     int `json:"texts_num"`
	FollowsNum   int `json:"follows_num"`
	FormsNum     int `json:"forms_num"`
	NofollowsNum int `json:"nofollows_num"`
	FramesNum    int `json:"frames_num"`
	ImagesNum    int `json:"images_num"`
	Score        int `json:"score"`
	TrustScore   int `json:"trust_score"`
}

// Backlink is a single inbound link. Flags are passed through as returned.
type Backlink struct {
	PageScore      int    `json:"page_score"`
	PageTrustScore int    `json:"page_trust_score"`
	ResponseCode   int    `json:"response_code"`
	SourceSize     int    `json:"source_size"`
	ExternalNum    int    `json:"external_num"`
	InternalNum    int    `json:"internal_num"`
	RedirectURL    string `json:"redirect_url"`
	SourceURL      string `json:"source_url"`
	SourceTitle    string `json:"source_title"`
	ImageURL       string `json:"image_url"`
	TargetURL      string `json:"target_url"`
	TargetTitle    string `json:"target_title"`
	Anchor         string `json:"anchor"`
	ImageAlt       string `json:"image_alt"`
	LastSeen       int64  `json:"last_seen"`
	FirstSeen      int64  `json:"first_seen"`
	Nofollow       string `json:"nofollow"`
	Form           string `json:"form"`
	Frame          string `json:"frame"`
	Image          string `json:"image"`
	Sitewide       string `json:"sitewide"`
	Newlink        string `json:"newlink"`
	Lostlink       string `json:"lostlink"`
}

// ReferringDomain is a domain linking to the target
type ReferringDomain struct {
	DomainScore      int    `json:"domain_score"`
	DomainTrustScore int    `json:"domain_trust_score"`
	Domain           string `json:"domain"`
	BacklinksNum     int    `json:"backlinks_num"`
	IP               string `json:"ip"`
	Country          string `json:"country"`
	FirstSeen        int64  `json:"first_seen"`
	LastSeen         int64  `json:"last_seen"`
}

// ReferringIP is an IP address hosting links to the target
type ReferringIP struct {
	IP           string `json:"ip"`
	Country      string `json:"country"`
	DomainsNum   int    `json:"domains_num"`
	BacklinksNum int    `json:"backlinks_num"`
	FirstSeen    int64  `json:"first_seen"`
	LastSeen     int64  `json:"last_seen"`
}

// IndexedPage is a page of the target known to the backlinks index
type IndexedPage struct {
	ResponseCode int    `json:"response_code"`
	BacklinksNum int    `json:"backlinks_num"`
	DomainsNum   int    `json:"domains_num"`
	LastSeen     int64  `json:"last_seen"`
	ExternalNum  int    `json:"external_num"`
	InternalNum  int    `json:"internal_num"`
	SourceURL    string `json:"source_url"`
	SourceTitle  string `json:"source_title"`
}
