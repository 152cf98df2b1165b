package models

// Showing is the canonical appointment record normalized from the leasing
// CRM's report export. Pointer fields stay null when the upstream omits them.
type Showing struct {
	ShowingID       string  `json:"showing_id"`
	PropertyID      *string `json:"property_id"`
	PropertyAddress *string `json:"property_address"`
	ProspectName    *string `json:"prospect_name"`
	ProspectEmail   *string `json:"prospect_email"`
	ProspectPhone   *string `json:"prospect_phone"`
	ShowingDate     *string `json:"showing_date"`
	ShowingTime     *string `json:"showing_time"`
	Status          *string `json:"status"`
	Confirmed       bool    `json:"confirmed"`
	Attended        *bool   `json:"attended"`
	Cancelled       bool    `json:"cancelled"`
	Notes           *string `json:"notes"`
	CreatedAt       *string `json:"created_at"`
	UpdatedAt       *string `json:"updated_at"`
}

// ShowingsResult is the tagged result of a showing sync call.
type ShowingsResult struct {
	Success       bool      `json:"success"`
	Error         string    `json:"error,omitempty"`
	SyncTimestamp string    `json:"sync_timestamp,omitempty"`
	StartDate     string    `json:"start_date,omitempty"`
	EndDate       string    `json:"end_date,omitempty"`
	Showings      []Showing `json:"showings"`
}
