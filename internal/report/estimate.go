package report

import (
	"context"
	"fmt"

	"github.com/bunshodo/leakscope/internal/models"
)

// CostEstimator produces a fix estimation from a report. Implemented by
// the AI client.
type CostEstimator interface {
	Estimate(ctx context.Context, report *models.StructuredReport) (*models.FixEstimation, error)
}

// Estimator is the one-shot cost estimation service. No retry; a failure
// surfaces as an error carrying a user-facing message.
type Estimator struct {
	estimator CostEstimator
}

func NewEstimator(estimator CostEstimator) *Estimator {
	return &Estimator{estimator: estimator}
}

// Estimate turns a finished report into the three-plan cost estimate.
func (e *Estimator) Estimate(ctx context.Context, rep *models.StructuredReport) (*models.FixEstimation, error) {
	estimation, err := e.estimator.Estimate(ctx, rep)
	if err != nil {
		return nil, fmt.Errorf("the AI estimation could not be generated: %w", err)
	}
	return estimation, nil
}
