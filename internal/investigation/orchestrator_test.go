package investigation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bunshodo/leakscope/internal/llm"
	"github.com/bunshodo/leakscope/internal/models"
)

type stubTraces struct {
	findings []models.LlmTraceFinding
	err      error
}

func (s *stubTraces) AnalyzeTraces(ctx context.Context, target models.InvestigationTarget) ([]models.LlmTraceFinding, error) {
	return s.findings, s.err
}

type stubScanner struct {
	findings []models.DomainVulnerabilityFinding
	err      error
	calls    int
}

func (s *stubScanner) ScanDomain(ctx context.Context, domain string) ([]models.DomainVulnerabilityFinding, error) {
	s.calls++
	return s.findings, s.err
}

// stubSearcher answers queries by kind and records them. The generic
// search runs on its own goroutine, so access is locked.
type stubSearcher struct {
	mu      sync.Mutex
	generic []models.SearchHit
	direct  []models.SearchHit
	broad   []models.SearchHit
	queries []string
}

func (s *stubSearcher) Search(ctx context.Context, query string) ([]models.SearchHit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	switch {
	case strings.Contains(query, "filetype:pdf"):
		return s.direct, nil
	case strings.Contains(query, "whitepaper"):
		return s.broad, nil
	default:
		return s.generic, nil
	}
}

func (s *stubSearcher) broadenedIssued() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.queries {
		if strings.Contains(q, "whitepaper") {
			return true
		}
	}
	return false
}

type stubSynth struct {
	report *models.StructuredReport
	err    error
	gotReq *llm.SynthesisRequest
}

func (s *stubSynth) Synthesize(ctx context.Context, req *llm.SynthesisRequest) (*models.StructuredReport, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	rep := *s.report
	return &rep, nil
}

func baseReport() *models.StructuredReport {
	return &models.StructuredReport{
		Title:       "Security Investigation Report",
		OverallRisk: models.RiskMedium,
		RiskScoring: []models.RiskScore{
			{Parameter: "Content exposure", Score: 40},
			{Parameter: "LLM training-data contamination", Score: 50},
			{Parameter: "Domain security", Score: 30},
		},
	}
}

func hits(urls ...string) []models.SearchHit {
	out := make([]models.SearchHit, 0, len(urls))
	for _, u := range urls {
		out = append(out, models.SearchHit{Title: u, URL: u})
	}
	return out
}

func TestRunDocumentOnlySkipsDomainScan(t *testing.T) {
	scanner := &stubScanner{}
	synth := &stubSynth{report: baseReport()}
	r := New(&stubTraces{}, scanner, &stubSearcher{}, synth)

	target := models.InvestigationTarget{DocumentName: "thesis_draft.pdf", DocumentText: "some content"}
	report, err := r.Run(context.Background(), target, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, scanner.calls, "domain scan must not run for document-only targets")
	assert.Nil(t, report.InvestigationResults.DomainVulnerabilityAnalysis)
	assert.False(t, synth.gotReq.DomainScanned)
}

func TestRunEnoughDirectHitsSkipsBroadenedSearch(t *testing.T) {
	searcher := &stubSearcher{
		direct: hits("https://a.example/1.pdf", "https://a.example/2.pdf", "https://a.example/3.pdf",
			"https://a.example/4.pdf", "https://a.example/5.pdf"),
	}
	r := New(&stubTraces{}, &stubScanner{}, searcher, &stubSynth{report: baseReport()})

	_, err := r.Run(context.Background(), models.InvestigationTarget{Domain: "a.example"}, nil)
	require.NoError(t, err)
	assert.False(t, searcher.broadenedIssued())
}

func TestRunBroadenedSearchMergedWithoutDuplicates(t *testing.T) {
	searcher := &stubSearcher{
		direct: hits("https://a.example/1.pdf", "https://a.example/2.pdf"),
		broad:  hits("https://a.example/2.pdf", "https://a.example/3.pdf"),
	}
	synth := &stubSynth{report: baseReport()}
	r := New(&stubTraces{}, &stubScanner{}, searcher, synth)

	report, err := r.Run(context.Background(), models.InvestigationTarget{Domain: "a.example"}, nil)
	require.NoError(t, err)
	assert.True(t, searcher.broadenedIssued())

	var urls []string
	for _, pdf := range report.InvestigationResults.FoundPdfs {
		urls = append(urls, pdf.URL)
	}
	assert.Equal(t, []string{
		"https://a.example/1.pdf",
		"https://a.example/2.pdf",
		"https://a.example/3.pdf",
	}, urls, "merge must dedup by URL and keep first-seen order")
}

func TestRunFoundPdfsForceHighRisk(t *testing.T) {
	searcher := &stubSearcher{direct: hits("https://a.example/leak.pdf")}
	// The model says medium; the discovered PDF must override it.
	r := New(&stubTraces{}, &stubScanner{}, searcher, &stubSynth{report: baseReport()})

	report, err := r.Run(context.Background(), models.InvestigationTarget{Domain: "a.example"}, nil)
	require.NoError(t, err)

	assert.Equal(t, models.RiskHigh, report.OverallRisk)
	for _, score := range report.RiskScoring {
		if score.Parameter == "Content exposure" {
			assert.GreaterOrEqual(t, score.Score, 80)
		}
	}
}

func TestRunNoPdfsKeepsModelRisk(t *testing.T) {
	r := New(&stubTraces{}, &stubScanner{}, &stubSearcher{}, &stubSynth{report: baseReport()})

	report, err := r.Run(context.Background(), models.InvestigationTarget{Domain: "a.example"}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.RiskMedium, report.OverallRisk)
}

func TestRunTraceFailureDegradesToSentinel(t *testing.T) {
	synth := &stubSynth{report: baseReport()}
	r := New(&stubTraces{err: errors.New("model unavailable")}, &stubScanner{}, &stubSearcher{}, synth)

	report, err := r.Run(context.Background(), models.InvestigationTarget{Domain: "a.example"}, nil)
	require.NoError(t, err, "a trace stage failure must not abort the run")

	findings := report.InvestigationResults.LlmTraceAnalysis
	require.Len(t, findings, 1)
	assert.Equal(t, "analysis error", findings[0].Provider)
	assert.Equal(t, models.RiskUnknown, findings[0].Risk)
}

func TestRunVulnFailureDegradesToSentinel(t *testing.T) {
	r := New(&stubTraces{}, &stubScanner{err: errors.New("scan failed")}, &stubSearcher{}, &stubSynth{report: baseReport()})

	report, err := r.Run(context.Background(), models.InvestigationTarget{Domain: "a.example"}, nil)
	require.NoError(t, err)

	vulns := report.InvestigationResults.DomainVulnerabilityAnalysis
	require.Len(t, vulns, 1)
	assert.Equal(t, "analysis error", vulns[0].Vulnerability)
	assert.Equal(t, models.SeverityUnknown, vulns[0].Severity)
}

func TestRunSynthesisFailureIsTerminal(t *testing.T) {
	r := New(&stubTraces{}, &stubScanner{}, &stubSearcher{}, &stubSynth{err: errors.New("synthesis blew up")})

	var events []models.ProgressEvent
	_, err := r.Run(context.Background(), models.InvestigationTarget{Domain: "a.example"}, func(ev models.ProgressEvent) {
		events = append(events, ev)
	})
	require.Error(t, err)

	last := events[len(events)-1]
	assert.Equal(t, models.ProgressError, last.Kind)
}

func TestRunEmptyTarget(t *testing.T) {
	r := New(&stubTraces{}, &stubScanner{}, &stubSearcher{}, &stubSynth{report: baseReport()})
	_, err := r.Run(context.Background(), models.InvestigationTarget{}, nil)
	assert.Error(t, err)
}

func TestRunProgressOrdering(t *testing.T) {
	searcher := &stubSearcher{direct: hits("https://a.example/1.pdf")}
	r := New(&stubTraces{}, &stubScanner{}, searcher, &stubSynth{report: baseReport()})

	var events []models.ProgressEvent
	_, err := r.Run(context.Background(), models.InvestigationTarget{Domain: "a.example"}, func(ev models.ProgressEvent) {
		events = append(events, ev)
	})
	require.NoError(t, err)

	require.NotEmpty(t, events)
	assert.Equal(t, models.ProgressStatus, events[0].Kind)
	assert.Contains(t, events[0].Message, "Starting investigation")
	assert.Equal(t, models.ProgressSuccess, events[len(events)-1].Kind)

	// llm-result must precede vuln-result, which precedes the search stage.
	indexOf := func(kind models.ProgressKind) int {
		for i, ev := range events {
			if ev.Kind == kind {
				return i
			}
		}
		return -1
	}
	assert.Less(t, indexOf(models.ProgressLlmResult), indexOf(models.ProgressVulnResult))
}

func TestRunEndToEndDomain(t *testing.T) {
	searcher := &stubSearcher{
		generic: hits("https://example.co.jp/about"),
		direct: hits(
			"https://example.co.jp/a.pdf", "https://example.co.jp/b.pdf",
			"https://example.co.jp/c.pdf", "https://example.co.jp/d.pdf",
			"https://example.co.jp/e.pdf", "https://example.co.jp/f.pdf",
		),
	}
	traces := &stubTraces{findings: []models.LlmTraceFinding{
		{Provider: "OpenAI", Risk: models.RiskHigh, Evidence: "verbatim passages reproduced"},
	}}
	scanner := &stubScanner{findings: []models.DomainVulnerabilityFinding{
		{Vulnerability: "Outdated CMS version", Severity: models.SeverityMedium, Description: "generator meta tag reveals an old release"},
	}}
	synth := &stubSynth{report: baseReport()}
	r := New(traces, scanner, searcher, synth)

	report, err := r.Run(context.Background(), models.InvestigationTarget{Domain: "example.co.jp"}, nil)
	require.NoError(t, err)

	assert.False(t, searcher.broadenedIssued())
	assert.Equal(t, models.RiskHigh, report.OverallRisk)
	assert.Len(t, report.InvestigationResults.FoundPdfs, 6)
	assert.Equal(t, 1, scanner.calls)
	require.NotNil(t, synth.gotReq)
	assert.True(t, synth.gotReq.DomainScanned)
	assert.Len(t, report.EvidenceTrail, 4)
	assert.Equal(t, "EV-001", report.EvidenceTrail[0].EvidenceID)
}

func TestMergeHits(t *testing.T) {
	merged := mergeHits(hits("u1", "u2"), hits("u2", "u3", "u1", "u4"))
	var urls []string
	for _, h := range merged {
		urls = append(urls, h.URL)
	}
	assert.Equal(t, []string{"u1", "u2", "u3", "u4"}, urls)
}
