package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bunshodo/leakscope/internal/config"
	"github.com/bunshodo/leakscope/internal/models"
	"github.com/bunshodo/leakscope/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(storage.NewFixtureStore(), nil, config.EmailConfig{Sender: "Reports <reports@example.com>"})
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, ts *httptest.Server, path string, out any) int {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, ts *httptest.Server, path, body string, out any) int {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	var body map[string]string
	assert.Equal(t, http.StatusOK, getJSON(t, ts, "/healthz", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestListCases(t *testing.T) {
	ts := newTestServer(t)
	var cases []models.Case
	assert.Equal(t, http.StatusOK, getJSON(t, ts, "/api/cases", &cases))
	assert.Len(t, cases, 6)
}

func TestGetCase(t *testing.T) {
	ts := newTestServer(t)

	var c models.Case
	assert.Equal(t, http.StatusOK, getJSON(t, ts, "/api/cases/1", &c))
	assert.Equal(t, 92, c.RiskScore)

	assert.Equal(t, http.StatusNotFound, getJSON(t, ts, "/api/cases/999", nil))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, ts, "/api/cases/abc", nil))
}

func TestCreateCase(t *testing.T) {
	ts := newTestServer(t)

	var created models.Case
	status := postJSON(t, ts, "/api/cases", `{"title":"New paper","status":"in_review"}`, &created)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, int64(7), created.ID)

	assert.Equal(t, http.StatusBadRequest, postJSON(t, ts, "/api/cases", `{"author":"no title"}`, nil))
	assert.Equal(t, http.StatusBadRequest, postJSON(t, ts, "/api/cases", `{broken`, nil))
}

func TestListTracesAndRisks(t *testing.T) {
	ts := newTestServer(t)

	var traces []models.Trace
	assert.Equal(t, http.StatusOK, getJSON(t, ts, "/api/traces", &traces))
	assert.Len(t, traces, 3)

	var risks []models.LlmProviderRisk
	assert.Equal(t, http.StatusOK, getJSON(t, ts, "/api/llm-risks", &risks))
	assert.Len(t, risks, 6)
	assert.Equal(t, "Google Search Index", risks[0].Name)
}

func TestReports(t *testing.T) {
	ts := newTestServer(t)

	var reports []models.GeneratedReport
	assert.Equal(t, http.StatusOK, getJSON(t, ts, "/api/reports", &reports))
	assert.Len(t, reports, 2)

	var created models.GeneratedReport
	status := postJSON(t, ts, "/api/reports", `{"caseId":1,"caseTitle":"X","format":"PDF"}`, &created)
	assert.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, created.ID)
}

func TestInvestigateValidation(t *testing.T) {
	ts := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, postJSON(t, ts, "/api/investigations", `{}`, nil))
	assert.Equal(t, http.StatusBadRequest, postJSON(t, ts, "/api/investigations", `{"domain":"not a domain"}`, nil))
}

func TestNavigationFlow(t *testing.T) {
	ts := newTestServer(t)

	var sess sessionResponse
	assert.Equal(t, http.StatusOK, getJSON(t, ts, "/api/session", &sess))
	assert.Equal(t, "landing", string(sess.View))

	assert.Equal(t, http.StatusConflict, postJSON(t, ts, "/api/navigate", `{"event":"open-dashboard"}`, nil))

	assert.Equal(t, http.StatusOK, postJSON(t, ts, "/api/navigate", `{"event":"start-demo"}`, &sess))
	assert.Equal(t, "dashboard", string(sess.View))
	assert.True(t, sess.DemoMode)

	assert.Equal(t, http.StatusConflict, postJSON(t, ts, "/api/navigate", `{"event":"open-evaluation"}`, nil))
	assert.Equal(t, http.StatusOK, postJSON(t, ts, "/api/navigate", `{"event":"open-evaluation","caseId":2}`, &sess))
	assert.Equal(t, "evaluation", string(sess.View))
}

func TestSettings(t *testing.T) {
	ts := newTestServer(t)

	var settings settingsResponse
	assert.Equal(t, http.StatusOK, getJSON(t, ts, "/api/settings", &settings))
	assert.False(t, settings.APIKeyConfigured)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/settings", strings.NewReader(`{"sender":"Audit <audit@example.com>","apiKey":"re_123"}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&settings))

	assert.Equal(t, "Audit <audit@example.com>", settings.Sender)
	assert.True(t, settings.APIKeyConfigured)
}

func TestSendReportWithoutKey(t *testing.T) {
	ts := newTestServer(t)

	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	status := postJSON(t, ts, "/api/reports/send", `{"to":"client@example.com","html":"<p>r</p>"}`, &result)
	assert.Equal(t, http.StatusOK, status, "delivery failures are typed results, not HTTP errors")
	assert.False(t, result.Success)
}

func TestOnboarding(t *testing.T) {
	ts := newTestServer(t)

	var steps []models.OnboardingStep
	assert.Equal(t, http.StatusOK, getJSON(t, ts, "/api/onboarding", &steps))
	assert.Len(t, steps, 12)
	assert.NotEmpty(t, steps[0].Title)
}
