package models

// SEOAnalysis is the result of the AI SEO recommendation pass. Tip and score
// maps are keyed by the priority site names. On failure the analyzer returns a
// neutral fallback instead of an error.
type SEOAnalysis struct {
	Success             bool                `json:"success"`
	Error               string              `json:"error,omitempty"`
	OverallSEOScore     int                 `json:"overall_seo_score"`
	QuickWins           []string            `json:"quick_wins"`
	HighPriorityActions []string            `json:"high_priority_actions"`
	SiteSpecificTips    map[string][]string `json:"site_specific_tips"`
	SiteScores          map[string]int      `json:"site_scores"`
}
