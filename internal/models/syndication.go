package models

// SiteDetail is the per-site entry of a syndication report.
type SiteDetail struct {
	Found       bool   `json:"found"`
	URL         string `json:"url"`
	LastChecked string `json:"last_checked"`
}

// SyndicationReport is the coverage report across the fixed site catalog.
// Every catalog site appears in exactly one of SitesFound/SitesNotFound and
// has exactly one SiteDetails entry.
type SyndicationReport struct {
	TotalSitesChecked  int                   `json:"total_sites_checked"`
	TotalSitesFound    int                   `json:"total_sites_found"`
	TotalSitesNotFound int                   `json:"total_sites_not_found"`
	TopSitesFoundCount int                   `json:"top_6_found_count"`
	TopSitesStatus     map[string]bool       `json:"top_6_sites_status"`
	SitesFound         []string              `json:"sites_found"`
	SitesNotFound      []string              `json:"sites_not_found"`
	SiteDetails        map[string]SiteDetail `json:"site_details"`
	CoveragePercentage float64               `json:"coverage_percentage"`
	Note               string                `json:"note"`
}

// ManualCheck is the response of the manual site verification helper.
type ManualCheck struct {
	Site         string `json:"site"`
	URL          string `json:"url"`
	Message      string `json:"message"`
	Instructions string `json:"instructions"`
}
