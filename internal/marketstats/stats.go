// Package marketstats computes descriptive market statistics from comparable
// rental listings.
package marketstats

import (
	"math"
	"sort"

	"leaseintel/server/internal/models"
)

func isActive(status string) bool {
	return status == "Active" || status == "For Rent"
}

func isRented(status string) bool {
	return status == "Rented" || status == "Leased"
}

// Calculate aggregates a set of comparables into a MarketStats snapshot.
// Listings with a zero or missing price/DOM are excluded from the respective
// averages. An empty input produces the all-zero snapshot.
func Calculate(comparables []models.Comparable, listingSqft int) models.MarketStats {
	if len(comparables) == 0 {
		return models.MarketStats{}
	}

	var active, rented []models.Comparable
	for _, c := range comparables {
		switch {
		case isActive(c.Status):
			active = append(active, c)
		case isRented(c.Status):
			rented = append(rented, c)
		}
	}

	allRents := nonZeroPrices(comparables)
	allDOMs := nonZeroDOMs(comparables)
	activeRents := nonZeroPrices(active)
	rentedRents := nonZeroPrices(rented)
	activeDOMs := nonZeroDOMs(active)
	rentedDOMs := nonZeroDOMs(rented)

	stats := models.MarketStats{
		MarketAvgRent:        average(allRents),
		MarketMedianRent:     median(allRents),
		MarketRentRangeLow:   minimum(allRents),
		MarketRentRangeHigh:  maximum(allRents),
		MarketAvgDOM:         average(allDOMs),
		MarketMedianDOM:      median(allDOMs),
		TotalSimilarListings: len(comparables),
		ActiveListingsCount:  len(active),
		RentedListingsCount:  len(rented),
		AvgRentActive:        average(activeRents),
		AvgRentRented:        average(rentedRents),
		AvgDOMActive:         average(activeDOMs),
		AvgDOMRented:         average(rentedDOMs),
	}

	if listingSqft > 0 {
		stats.MarketAvgRentPerSqft = round2(float64(stats.MarketAvgRent) / float64(listingSqft))
		if stats.AvgRentActive > 0 {
			stats.AvgRentPerSqftActive = round2(float64(stats.AvgRentActive) / float64(listingSqft))
		}
		if stats.AvgRentRented > 0 {
			stats.AvgRentPerSqftRented = round2(float64(stats.AvgRentRented) / float64(listingSqft))
		}
	}

	return stats
}

func nonZeroPrices(comparables []models.Comparable) []int {
	var values []int
	for _, c := range comparables {
		if c.Price != 0 {
			values = append(values, c.Price)
		}
	}
	return values
}

func nonZeroDOMs(comparables []models.Comparable) []int {
	var values []int
	for _, c := range comparables {
		if c.DaysOnMarket != 0 {
			values = append(values, c.DaysOnMarket)
		}
	}
	return values
}

// average is the floor of the mean, matching integer division upstream.
func average(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return sum / len(values)
}

// median takes the upper-middle element of the ascending-sorted values. For
// even-length input this is not the interpolated median; the tie-break is kept
// for compatibility with the downstream consumer.
func median(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)
	return sorted[len(sorted)/2]
}

func minimum(values []int) int {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maximum(values []int) int {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
