package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/bunshodo/leakscope/internal/models"
)

// PostgresStore is the live Store implementation over the hosted database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect opens a pgx pool against the given URL and verifies it.
func Connect(ctx context.Context, url string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 10
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() { s.pool.Close() }

func (s *PostgresStore) Cases(ctx context.Context) []models.Case {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, author, journal, risk_score, phase, status,
		       last_detection_date, COALESCE(llm_provider, ''), created_at::text
		FROM cases ORDER BY id
	`)
	if err != nil {
		logrus.Errorf("could not fetch cases, returning empty list: %v", err)
		return []models.Case{}
	}
	defer rows.Close()

	cases := []models.Case{}
	for rows.Next() {
		var c models.Case
		if err := rows.Scan(&c.ID, &c.Title, &c.Author, &c.Journal, &c.RiskScore,
			&c.Phase, &c.Status, &c.LastDetectionDate, &c.LlmProvider, &c.CreatedAt); err != nil {
			logrus.Errorf("could not scan case row: %v", err)
			return []models.Case{}
		}
		cases = append(cases, c)
	}
	if rows.Err() != nil {
		logrus.Errorf("could not fetch cases, returning empty list: %v", rows.Err())
		return []models.Case{}
	}
	return cases
}

func (s *PostgresStore) CaseByID(ctx context.Context, id int64) (*models.Case, error) {
	var c models.Case
	err := s.pool.QueryRow(ctx, `
		SELECT id, title, author, journal, risk_score, phase, status,
		       last_detection_date, COALESCE(llm_provider, ''), created_at::text
		FROM cases WHERE id = $1
	`, id).Scan(&c.ID, &c.Title, &c.Author, &c.Journal, &c.RiskScore,
		&c.Phase, &c.Status, &c.LastDetectionDate, &c.LlmProvider, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logrus.Errorf("could not fetch case id=%d: %v", id, err)
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *PostgresStore) AddCase(ctx context.Context, c models.Case) (*models.Case, error) {
	if c.LastDetectionDate == "" {
		c.LastDetectionDate = time.Now().UTC().Format("2006-01-02")
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO cases (title, author, journal, risk_score, phase, status,
		                   last_detection_date, llm_provider)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at::text
	`, c.Title, c.Author, c.Journal, c.RiskScore, c.Phase, c.Status,
		c.LastDetectionDate, c.LlmProvider).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresStore) Traces(ctx context.Context) []models.Trace {
	rows, err := s.pool.Query(ctx, `
		SELECT id, target, fingerprint_similarity, structural_dependency,
		       paraphrase_score, llm_provider
		FROM traces ORDER BY id
	`)
	if err != nil {
		logrus.Errorf("could not fetch traces, returning empty list: %v", err)
		return []models.Trace{}
	}
	defer rows.Close()

	traces := []models.Trace{}
	for rows.Next() {
		var t models.Trace
		if err := rows.Scan(&t.ID, &t.Target, &t.FingerprintSimilarity,
			&t.StructuralDependency, &t.ParaphraseScore, &t.LlmProvider); err != nil {
			logrus.Errorf("could not scan trace row: %v", err)
			return []models.Trace{}
		}
		traces = append(traces, t)
	}
	if rows.Err() != nil {
		logrus.Errorf("could not fetch traces, returning empty list: %v", rows.Err())
		return []models.Trace{}
	}
	return traces
}

func (s *PostgresStore) LlmProviderRisks(ctx context.Context) []models.LlmProviderRisk {
	rows, err := s.pool.Query(ctx, `
		SELECT name, trace_count, cumulative_sda, highest_risk, confidence_score
		FROM llm_provider_risks ORDER BY trace_count DESC
	`)
	if err != nil {
		logrus.Errorf("could not fetch llm_provider_risks, returning empty list: %v", err)
		return []models.LlmProviderRisk{}
	}
	defer rows.Close()

	risks := []models.LlmProviderRisk{}
	for rows.Next() {
		var r models.LlmProviderRisk
		if err := rows.Scan(&r.Name, &r.TraceCount, &r.CumulativeSda,
			&r.HighestRisk, &r.ConfidenceScore); err != nil {
			logrus.Errorf("could not scan llm_provider_risk row: %v", err)
			return []models.LlmProviderRisk{}
		}
		risks = append(risks, r)
	}
	if rows.Err() != nil {
		logrus.Errorf("could not fetch llm_provider_risks, returning empty list: %v", rows.Err())
		return []models.LlmProviderRisk{}
	}
	return risks
}

func (s *PostgresStore) Reports(ctx context.Context) []models.GeneratedReport {
	rows, err := s.pool.Query(ctx, `
		SELECT id, case_id, case_title, risk_score, llm_providers,
		       generated_at, format, status, version
		FROM reports ORDER BY generated_at DESC
	`)
	if err != nil {
		logrus.Errorf("could not fetch reports, returning empty list: %v", err)
		return []models.GeneratedReport{}
	}
	defer rows.Close()

	reports := []models.GeneratedReport{}
	for rows.Next() {
		var r models.GeneratedReport
		if err := rows.Scan(&r.ID, &r.CaseID, &r.CaseTitle, &r.RiskScore,
			&r.LlmProviders, &r.GeneratedAt, &r.Format, &r.Status, &r.Version); err != nil {
			logrus.Errorf("could not scan report row: %v", err)
			return []models.GeneratedReport{}
		}
		reports = append(reports, r)
	}
	if rows.Err() != nil {
		logrus.Errorf("could not fetch reports, returning empty list: %v", rows.Err())
		return []models.GeneratedReport{}
	}
	return reports
}

func (s *PostgresStore) AddReport(ctx context.Context, r models.GeneratedReport) (*models.GeneratedReport, error) {
	if r.GeneratedAt == "" {
		r.GeneratedAt = time.Now().UTC().Format("2006-01-02 15:04")
	}
	if r.ID == "" {
		r.ID = nextReportID(len(s.Reports(ctx)) + 1)
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO reports (id, case_id, case_title, risk_score, llm_providers,
		                     generated_at, format, status, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.ID, r.CaseID, r.CaseTitle, r.RiskScore, r.LlmProviders,
		r.GeneratedAt, r.Format, r.Status, r.Version)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
