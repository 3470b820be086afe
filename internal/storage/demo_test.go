package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bunshodo/leakscope/internal/models"
)

func TestFixtureStoreStableCases(t *testing.T) {
	s := NewFixtureStore()
	ctx := context.Background()

	first := s.Cases(ctx)
	second := s.Cases(ctx)

	require.Len(t, first, 6)
	assert.Equal(t, first, second, "demo cases must be stable across reads")

	wantScores := []int{92, 85, 75, 68, 55, 45}
	for i, c := range first {
		assert.Equal(t, int64(i+1), c.ID)
		assert.Equal(t, wantScores[i], c.RiskScore)
	}
}

func TestFixtureStoreCaseByID(t *testing.T) {
	s := NewFixtureStore()
	ctx := context.Background()

	c, err := s.CaseByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "IV", c.Phase)

	_, err = s.CaseByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFixtureStoreAddCase(t *testing.T) {
	s := NewFixtureStore()
	ctx := context.Background()

	created, err := s.AddCase(ctx, models.Case{Title: "New work", Status: models.StatusInReview})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.NotEmpty(t, created.LastDetectionDate)

	assert.Len(t, s.Cases(ctx), 7)

	// Mutation of a returned slice must not leak into the store.
	cases := s.Cases(ctx)
	cases[0].Title = "tampered"
	assert.NotEqual(t, "tampered", s.Cases(ctx)[0].Title)
}

func TestFixtureStoreReferentialConsistency(t *testing.T) {
	s := NewFixtureStore()
	ctx := context.Background()

	providers := map[string]bool{}
	for _, r := range s.LlmProviderRisks(ctx) {
		providers[r.Name] = true
	}
	for _, tr := range s.Traces(ctx) {
		assert.True(t, providers[tr.LlmProvider], "trace provider %q missing from risk list", tr.LlmProvider)
	}
}

func TestFixtureStoreAddReport(t *testing.T) {
	s := NewFixtureStore()
	ctx := context.Background()

	require.Len(t, s.Reports(ctx), 2)

	created, err := s.AddReport(ctx, models.GeneratedReport{CaseID: 1, CaseTitle: "X", Format: "PDF"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.GeneratedAt)
	assert.Len(t, s.Reports(ctx), 3)
}
