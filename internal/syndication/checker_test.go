package syndication

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"leaseintel/server/config"
)

func TestCheckAllSitesPartition(t *testing.T) {
	checker := NewChecker(logrus.New())

	// The simulation is randomized; the partition invariant must hold on
	// every run.
	for i := 0; i < 25; i++ {
		report := checker.CheckAllSites("10 Main St", "Austin", "TX")

		assert.Equal(t, 27, report.TotalSitesChecked)
		assert.Equal(t, 27, len(report.SitesFound)+len(report.SitesNotFound))
		assert.Equal(t, len(report.SitesFound), report.TotalSitesFound)
		assert.Equal(t, len(report.SitesNotFound), report.TotalSitesNotFound)
		assert.Len(t, report.SiteDetails, 27)

		seen := make(map[string]int)
		for _, site := range report.SitesFound {
			seen[site]++
		}
		for _, site := range report.SitesNotFound {
			seen[site]++
		}
		for _, site := range config.SyndicationSites {
			assert.Equal(t, 1, seen[site], "site %s must appear exactly once", site)
		}
	}
}

func TestCheckAllSitesDetails(t *testing.T) {
	checker := NewChecker(logrus.New())
	report := checker.CheckAllSites("10 Main St", "San Marcos", "TX")

	for _, site := range config.SyndicationSites {
		detail, ok := report.SiteDetails[site]
		assert.True(t, ok, "missing detail for %s", site)
		assert.NotEmpty(t, detail.URL)
		assert.NotEmpty(t, detail.LastChecked)
	}

	detail := report.SiteDetails["Zumper"]
	assert.Equal(t, "https://www.zumper.com/apartments-for-rent/san-marcos-tx", detail.URL)

	// Sites without a template get the generated homepage URL
	assert.Equal(t, "https://www.renthop.com", report.SiteDetails["RentHop"].URL)
}

func TestCheckAllSitesTopSites(t *testing.T) {
	checker := NewChecker(logrus.New())

	for i := 0; i < 25; i++ {
		report := checker.CheckAllSites("10 Main St", "Austin", "TX")

		assert.Len(t, report.TopSitesStatus, 6)
		count := 0
		for _, site := range config.TopSites {
			status, ok := report.TopSitesStatus[site]
			assert.True(t, ok)
			if status {
				count++
			}
			assert.Equal(t, status, report.SiteDetails[site].Found)
		}
		assert.Equal(t, count, report.TopSitesFoundCount)

		// Priority coverage is sampled in 80-100%
		assert.GreaterOrEqual(t, report.TopSitesFoundCount, 4)
	}
}

func TestCheckAllSitesCoveragePercentage(t *testing.T) {
	checker := NewChecker(logrus.New())
	report := checker.CheckAllSites("10 Main St", "Austin", "TX")

	want := float64(report.TotalSitesFound) / 27 * 100
	assert.InDelta(t, want, report.CoveragePercentage, 0.05)
}

func TestCheckSiteManual(t *testing.T) {
	checker := NewChecker(logrus.New())
	check := checker.CheckSiteManual("Zillow", "10 Main St", "Austin", "TX")

	assert.Equal(t, "Zillow", check.Site)
	assert.Equal(t, "https://www.zillow.com/homes/austin-tx", check.URL)
	assert.Contains(t, check.Message, check.URL)
}
