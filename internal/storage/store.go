package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/bunshodo/leakscope/internal/models"
)

// ErrNotFound is returned by lookups for missing records.
var ErrNotFound = errString("not found")

type errString string

func (e errString) Error() string { return string(e) }

// Store is the data-source abstraction behind the dashboard: one
// implementation talks to hosted Postgres, the other serves the fixed
// demo dataset. The implementation is selected once per session and
// injected into callers.
//
// Read methods never fail: storage errors degrade to empty collections
// and are only logged. Write methods report their errors.
type Store interface {
	Cases(ctx context.Context) []models.Case
	CaseByID(ctx context.Context, id int64) (*models.Case, error)
	AddCase(ctx context.Context, c models.Case) (*models.Case, error)

	Traces(ctx context.Context) []models.Trace
	LlmProviderRisks(ctx context.Context) []models.LlmProviderRisk

	Reports(ctx context.Context) []models.GeneratedReport
	AddReport(ctx context.Context, r models.GeneratedReport) (*models.GeneratedReport, error)
}

// nextReportID produces dashboard report IDs like REP-2026-003.
func nextReportID(seq int) string {
	return fmt.Sprintf("REP-%d-%03d", time.Now().UTC().Year(), seq)
}
