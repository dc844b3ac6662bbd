package analysis

import (
	"github.com/kapu/creator-pulse-go/internal/constants"
	"github.com/kapu/creator-pulse-go/internal/domain"
)

// ValidateCoverage compares the fetched subset against the platform-reported
// totals. Below the warning threshold the result is flagged partial and the
// caller must surface it; partial data is never presented as complete.
func ValidateCoverage(fetchedCount int, platformTotal, fetchedViews, platformViews int64) domain.Coverage {
	cov := domain.Coverage{
		FetchedCount:  fetchedCount,
		PlatformTotal: platformTotal,
		FetchedViews:  fetchedViews,
		PlatformViews: platformViews,
	}

	if platformTotal > 0 {
		cov.CountPercentage = float64(fetchedCount) / float64(platformTotal) * 100
	} else {
		cov.CountPercentage = 100.0
	}

	if platformViews > 0 {
		cov.ViewsPercentage = float64(fetchedViews) / float64(platformViews) * 100
	}

	cov.Partial = cov.CountPercentage < constants.CoverageConfig.WarnThreshold*100

	return cov
}
