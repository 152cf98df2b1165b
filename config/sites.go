package config

import (
	"fmt"
	"strings"
)

// TopSites is the priority subset tracked separately in every syndication
// report.
var TopSites = []string{"Zillow", "Zumper", "HotPads", "Realtor.com", "Redfin", "Trulia"}

// SyndicationSites is the fixed catalog of rental sites checked for coverage.
// The first six entries are the priority sites.
var SyndicationSites = []string{
	"Zillow", "Zumper", "HotPads", "Realtor.com", "Redfin", "Trulia",
	"Apartments.com", "Rent.com", "Rentable", "ApartmentAdvisor",
	"ApartmentPicks", "Call It Home", "ClaZ.org", "College House",
	"CollegePads", "Diggz", "Domu", "Listanza", "Locanto",
	"Mapliv", "Mitula", "RentalAds.com", "Rental Beast",
	"Rentals.com", "RentalSource", "RentDigs", "RentHop",
}

// IsTopSite reports whether a site belongs to the priority subset.
func IsTopSite(name string) bool {
	for _, site := range TopSites {
		if site == name {
			return true
		}
	}
	return false
}

// SiteURL builds the public search URL for a site. Sites without a dedicated
// template get a generated homepage URL.
func SiteURL(site, address, city, state string) string {
	citySlug := strings.ReplaceAll(strings.ToLower(city), " ", "-")
	stateSlug := strings.ToLower(state)

	switch site {
	case "Zillow":
		return fmt.Sprintf("https://www.zillow.com/homes/%s-%s", citySlug, stateSlug)
	case "Zumper":
		return fmt.Sprintf("https://www.zumper.com/apartments-for-rent/%s-%s", citySlug, stateSlug)
	case "HotPads":
		return fmt.Sprintf("https://hotpads.com/%s-%s/apartments-for-rent", citySlug, stateSlug)
	case "Realtor.com":
		return fmt.Sprintf("https://www.realtor.com/realestateandhomes-search/%s_%s", citySlug, stateSlug)
	case "Redfin":
		return fmt.Sprintf("https://www.redfin.com/%s/%s", stateSlug, citySlug)
	case "Trulia":
		return fmt.Sprintf("https://www.trulia.com/%s/%s/", stateSlug, citySlug)
	case "Apartments.com":
		return fmt.Sprintf("https://www.apartments.com/%s-%s/", citySlug, stateSlug)
	case "Rent.com":
		return fmt.Sprintf("https://www.rent.com/%s/%s", stateSlug, citySlug)
	case "Rentable":
		return fmt.Sprintf("https://www.rentable.co/%s/%s", stateSlug, citySlug)
	default:
		return fmt.Sprintf("https://www.%s.com", strings.ReplaceAll(strings.ToLower(site), " ", ""))
	}
}
