package service

import "github.com/cleantube/cleantube-go/internal/model"

// Risk thresholds, strict lower bounds evaluated high to low. A ratio
// of exactly 0.3 or 0.1 lands in the lower band.
const (
	riskHighThreshold   = 0.3
	riskMediumThreshold = 0.1
)

// ClassifyRisk maps the suspicious-to-total ratio to a discrete label.
// Pure and deterministic. A batch with no comments has no ratio, so it
// classifies as unknown rather than dividing by zero.
func ClassifyRisk(suspiciousCount, totalComments int) model.RiskLevel {
	if totalComments <= 0 {
		return model.RiskUnknown
	}

	ratio := float64(suspiciousCount) / float64(totalComments)
	switch {
	case ratio > riskHighThreshold:
		return model.RiskHigh
	case ratio > riskMediumThreshold:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}
