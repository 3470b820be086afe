package storage

import (
	"context"
	"sync"
	"time"

	"github.com/bunshodo/leakscope/internal/models"
)

// FixtureStore serves the fixed demo dataset. Reads always return the
// same six cases in the same order so the demo dashboard is stable;
// writes mutate the in-memory copy for the lifetime of the process.
type FixtureStore struct {
	mu      sync.RWMutex
	cases   []models.Case
	traces  []models.Trace
	risks   []models.LlmProviderRisk
	reports []models.GeneratedReport
	nextID  int64
}

func NewFixtureStore() *FixtureStore {
	s := &FixtureStore{
		cases:   make([]models.Case, len(demoCases)),
		traces:  make([]models.Trace, len(demoTraces)),
		risks:   make([]models.LlmProviderRisk, len(demoProviderRisks)),
		reports: make([]models.GeneratedReport, len(demoReports)),
		nextID:  int64(len(demoCases)) + 1,
	}
	copy(s.cases, demoCases)
	copy(s.traces, demoTraces)
	copy(s.risks, demoProviderRisks)
	copy(s.reports, demoReports)
	return s
}

var demoCases = []models.Case{
	{ID: 1, Title: "Improving Protein Structure Prediction Accuracy with Deep Learning", Author: "Satoshi Tanaka", Journal: "Journal of Artificial Intelligence Research", RiskScore: 92, Phase: "III", Status: models.StatusPublished, LastDetectionDate: "2024-07-21", LlmProvider: "GPT-4"},
	{ID: 2, Title: "Emergent Cooperative Behavior in Multi-Agent Reinforcement Learning", Author: "Kenichi Sato", Journal: "Journal of Applied Physics", RiskScore: 85, Phase: "II", Status: models.StatusInReview, LastDetectionDate: "2024-07-19", LlmProvider: "Claude 3"},
	{ID: 3, Title: "Fast Solutions to Optimization Problems via Quantum Annealing", Author: "Yuko Suzuki", Journal: "Annual Meeting of Molecular Biology", RiskScore: 75, Phase: "IV", Status: models.StatusPublished, LastDetectionDate: "2024-06-30", LlmProvider: "Gemini Advanced"},
	{ID: 4, Title: "Stochastic Models of Intracellular Signal Transduction", Author: "Ayumi Ito", Journal: "Biophysical Society Journal", RiskScore: 68, Phase: "I", Status: models.StatusAcceptedUnpublished, LastDetectionDate: "2024-07-22", LlmProvider: "N/A"},
	{ID: 5, Title: "On the Interpretability of Transformer Models", Author: "Yudai Watanabe", Journal: "Journal of Artificial Intelligence Research", RiskScore: 55, Phase: "II", Status: models.StatusPublished, LastDetectionDate: "2024-07-15", LlmProvider: "GPT-4"},
	{ID: 6, Title: "Predicting Off-Target Effects of CRISPR/Cas9 Genome Editing", Author: "Misaki Nakamura", Journal: "Annual Meeting of Molecular Biology", RiskScore: 45, Phase: "I", Status: models.StatusUnpublished, LastDetectionDate: "2024-07-20", LlmProvider: "N/A"},
}

var demoProviderRisks = []models.LlmProviderRisk{
	{Name: "Google Search Index", TraceCount: 150, CumulativeSda: 0, HighestRisk: "High", ConfidenceScore: 99},
	{Name: "GPT-4", TraceCount: 48, CumulativeSda: 85.2, HighestRisk: "High", ConfidenceScore: 95},
	{Name: "Claude 3", TraceCount: 32, CumulativeSda: 79.8, HighestRisk: "High", ConfidenceScore: 92},
	{Name: "Gemini Advanced", TraceCount: 25, CumulativeSda: 75.1, HighestRisk: "Medium", ConfidenceScore: 88},
	{Name: "Llama 3", TraceCount: 15, CumulativeSda: 68.4, HighestRisk: "Medium", ConfidenceScore: 85},
	{Name: "Command R+", TraceCount: 8, CumulativeSda: 62.5, HighestRisk: "Low", ConfidenceScore: 80},
}

var demoTraces = []models.Trace{
	{ID: 1, Target: "Protein structure prediction model", FingerprintSimilarity: 88, StructuralDependency: 92, ParaphraseScore: 75, LlmProvider: "GPT-4"},
	{ID: 2, Target: "Reinforcement learning reward function", FingerprintSimilarity: 82, StructuralDependency: 85, ParaphraseScore: 68, LlmProvider: "Claude 3"},
	{ID: 3, Target: "Quantum annealing algorithm", FingerprintSimilarity: 70, StructuralDependency: 75, ParaphraseScore: 80, LlmProvider: "Gemini Advanced"},
}

var demoReports = []models.GeneratedReport{
	{ID: "REP-2024-001", CaseID: 1, CaseTitle: "Improving Protein Structure Prediction Accuracy with Deep Learning", RiskScore: 92, LlmProviders: []string{"GPT-4", "Claude 3"}, GeneratedAt: "2024-07-22 14:30", Format: "PDF", Status: "Archived", Version: 2},
	{ID: "REP-2024-002", CaseID: 10, CaseTitle: "Applying Graph Neural Networks to Molecular Design", RiskScore: 95, LlmProviders: []string{"Gemini Advanced"}, GeneratedAt: "2024-07-23 10:15", Format: "PDF", Status: "Archived", Version: 1},
}

func (s *FixtureStore) Cases(ctx context.Context) []models.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Case, len(s.cases))
	copy(out, s.cases)
	return out
}

func (s *FixtureStore) CaseByID(ctx context.Context, id int64) (*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cases {
		if c.ID == id {
			cc := c
			return &cc, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FixtureStore) AddCase(ctx context.Context, c models.Case) (*models.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextID
	s.nextID++
	if c.LastDetectionDate == "" {
		c.LastDetectionDate = time.Now().UTC().Format("2006-01-02")
	}
	s.cases = append(s.cases, c)
	return &c, nil
}

func (s *FixtureStore) Traces(ctx context.Context) []models.Trace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Trace, len(s.traces))
	copy(out, s.traces)
	return out
}

func (s *FixtureStore) LlmProviderRisks(ctx context.Context) []models.LlmProviderRisk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.LlmProviderRisk, len(s.risks))
	copy(out, s.risks)
	return out
}

func (s *FixtureStore) Reports(ctx context.Context) []models.GeneratedReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.GeneratedReport, len(s.reports))
	copy(out, s.reports)
	return out
}

func (s *FixtureStore) AddReport(ctx context.Context, r models.GeneratedReport) (*models.GeneratedReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = nextReportID(len(s.reports) + 1)
	}
	if r.GeneratedAt == "" {
		r.GeneratedAt = time.Now().UTC().Format("2006-01-02 15:04")
	}
	s.reports = append(s.reports, r)
	return &r, nil
}
