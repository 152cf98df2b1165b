package models

import "encoding/json"

// MarketAnalysisRequest is the inbound body for the market analysis operation.
type MarketAnalysisRequest struct {
	ListingID     string  `json:"listing_id" binding:"required"`
	Address       string  `json:"address" binding:"required"`
	City          string  `json:"city" binding:"required"`
	State         string  `json:"state" binding:"required"`
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     float64 `json:"bathrooms"`
	SquareFootage int     `json:"square_footage"`
	CurrentRent   int     `json:"current_rent"`
	DaysOnMarket  int     `json:"days_on_market"`
	PropertyType  string  `json:"property_type"`
	Radius        float64 `json:"radius"`
}

// SyndicationCheckRequest is the inbound body for the syndication check
// operation.
type SyndicationCheckRequest struct {
	ListingID     string   `json:"listing_id" binding:"required"`
	Address       string   `json:"address" binding:"required"`
	City          string   `json:"city" binding:"required"`
	State         string   `json:"state" binding:"required"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         int      `json:"price"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     float64  `json:"bathrooms"`
	SquareFootage int      `json:"square_footage"`
	Amenities     []string `json:"amenities"`
	PhotosCount   int      `json:"photos_count"`
}

// ShowingsRequest is the inbound body for the showing sync operation.
type ShowingsRequest struct {
	DaysBack   int     `json:"days_back"`
	PropertyID *string `json:"property_id"`
}

// Comparable is a nearby rental listing returned by the valuation API. It is
// never mutated, only aggregated.
type Comparable struct {
	Address       string  `json:"address"`
	Price         int     `json:"price"`
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     float64 `json:"bathrooms"`
	SquareFootage int     `json:"squareFootage"`
	DaysOnMarket  int     `json:"daysOnMarket"`
	Status        string  `json:"status"`
	Distance      float64 `json:"distance"`
}

// MarketStats is a derived snapshot computed from a set of comparables. Every
// field is zero when the input set is empty.
type MarketStats struct {
	MarketAvgRent        int     `json:"market_avg_rent"`
	MarketMedianRent     int     `json:"market_median_rent"`
	MarketRentRangeLow   int     `json:"market_rent_range_low"`
	MarketRentRangeHigh  int     `json:"market_rent_range_high"`
	MarketAvgRentPerSqft float64 `json:"market_avg_rent_per_sqft"`
	MarketAvgDOM         int     `json:"market_avg_dom"`
	MarketMedianDOM      int     `json:"market_median_dom"`
	TotalSimilarListings int     `json:"total_similar_listings"`
	ActiveListingsCount  int     `json:"active_listings_count"`
	RentedListingsCount  int     `json:"rented_listings_count"`
	AvgRentActive        int     `json:"avg_rent_active"`
	AvgRentRented        int     `json:"avg_rent_rented"`
	AvgRentPerSqftActive float64 `json:"avg_rent_per_sqft_active"`
	AvgRentPerSqftRented float64 `json:"avg_rent_per_sqft_rented"`
	AvgDOMActive         int     `json:"avg_dom_active"`
	AvgDOMRented         int     `json:"avg_dom_rented"`
}

// MarketData is the tagged result of a full market data fetch. RentEstimate is
// the valuation API's estimate payload passed through untouched; it is nil
// when the estimate call failed.
type MarketData struct {
	Success      bool            `json:"success"`
	Error        string          `json:"error,omitempty"`
	RentEstimate json.RawMessage `json:"rent_estimate,omitempty"`
	Comparables  []Comparable    `json:"comparables"`
	MarketStats  MarketStats     `json:"market_stats"`
	Radius       float64         `json:"radius"`
}
