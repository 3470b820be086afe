package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/bunshodo/leakscope/internal/extract"
	"github.com/bunshodo/leakscope/internal/investigation"
	"github.com/bunshodo/leakscope/internal/mailer"
	"github.com/bunshodo/leakscope/internal/models"
	"github.com/bunshodo/leakscope/internal/nav"
	"github.com/bunshodo/leakscope/internal/storage"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListCases(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Cases(r.Context()))
}

func (s *Server) handleGetCase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid case id")
		return
	}
	c, err := s.store.CaseByID(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "case not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleCreateCase(w http.ResponseWriter, r *http.Request) {
	var c models.Case
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if c.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	created, err := s.store.AddCase(r.Context(), c)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListTraces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Traces(r.Context()))
}

func (s *Server) handleListLlmRisks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.LlmProviderRisks(r.Context()))
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Reports(r.Context()))
}

func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	var rep models.GeneratedReport
	if err := json.NewDecoder(r.Body).Decode(&rep); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if rep.CaseTitle == "" {
		writeError(w, http.StatusBadRequest, "caseTitle is required")
		return
	}
	created, err := s.store.AddReport(r.Context(), rep)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type investigateRequest struct {
	Domain          string `json:"domain"`
	DocumentName    string `json:"documentName"`
	DocumentContent string `json:"documentContent"`
}

func (s *Server) handleInvestigate(w http.ResponseWriter, r *http.Request) {
	var req investigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	target := models.InvestigationTarget{}
	if req.Domain != "" {
		domain, err := investigation.NormalizeDomain(req.Domain)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		target.Domain = domain
	}
	if req.DocumentContent != "" {
		target.DocumentName = req.DocumentName
		target.DocumentText = extract.DocumentText(req.DocumentName, req.DocumentContent)
	}
	if target.IsEmpty() {
		writeError(w, http.StatusBadRequest, "a domain or a document is required")
		return
	}

	if !s.busy.CompareAndSwap(false, true) {
		writeError(w, http.StatusConflict, "an investigation is already running")
		return
	}
	defer s.busy.Store(false)

	rep, err := s.runner.Run(r.Context(), target, s.hub.Publish)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

type quickLookRequest struct {
	Target string `json:"target"`
}

type quickLookResponse struct {
	Summary string `json:"summary"`
}

func (s *Server) handleQuickLook(w http.ResponseWriter, r *http.Request) {
	var req quickLookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Target == "" {
		writeError(w, http.StatusBadRequest, "target is required")
		return
	}
	summary, err := s.ai.QuickLookSummary(r.Context(), req.Target)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, quickLookResponse{Summary: summary})
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var rep models.StructuredReport
	if err := json.NewDecoder(r.Body).Decode(&rep); err != nil {
		writeError(w, http.StatusBadRequest, "invalid report payload")
		return
	}
	est, err := s.estimator.Estimate(r.Context(), &rep)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, est)
}

type reportHTMLRequest struct {
	Report    models.StructuredReport `json:"report"`
	Recipient string                  `json:"recipient"`
}

type reportHTMLResponse struct {
	HTML string `json:"html"`
}

func (s *Server) handleReportHTML(w http.ResponseWriter, r *http.Request) {
	var req reportHTMLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	html := s.html.Render(r.Context(), &req.Report, req.Recipient)
	writeJSON(w, http.StatusOK, reportHTMLResponse{HTML: html})
}

type sendReportRequest struct {
	To             string `json:"to"`
	Subject        string `json:"subject"`
	HTML           string `json:"html"`
	AttachmentName string `json:"attachmentName"`
	AttachmentB64  string `json:"attachmentB64"`
}

func (s *Server) handleSendReport(w http.ResponseWriter, r *http.Request) {
	var req sendReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.To == "" {
		writeError(w, http.StatusBadRequest, "recipient is required")
		return
	}
	if req.Subject == "" {
		req.Subject = "Your Security Investigation Report"
	}

	var attachments []mailer.Attachment
	if req.AttachmentB64 != "" {
		name := req.AttachmentName
		if name == "" {
			name = "report.pdf"
		}
		attachments = append(attachments, mailer.Attachment{Filename: name, Content: req.AttachmentB64})
	}

	result := s.mailer().Send(r.Context(), req.To, req.Subject, req.HTML, attachments)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid case id")
		return
	}
	c, err := s.store.CaseByID(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "case not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	events, err := s.ai.GenerateAuditTrail(r.Context(), *c)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleLegalSummary(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid case id")
		return
	}
	c, err := s.store.CaseByID(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "case not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	summary, err := s.ai.LegalSummary(r.Context(), *c, s.store.Traces(r.Context()))
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, onboardingSteps)
}

type sessionResponse struct {
	View         nav.View `json:"view"`
	DemoMode     bool     `json:"demoMode"`
	SelectedCase int64    `json:"selectedCase,omitempty"`
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionResponse{
		View:         s.session.View(),
		DemoMode:     s.session.DemoMode(),
		SelectedCase: s.session.SelectedCase(),
	})
}

type navigateRequest struct {
	Event  nav.Event `json:"event"`
	CaseID int64     `json:"caseId,omitempty"`
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Event == "" {
		writeError(w, http.StatusBadRequest, "event is required")
		return
	}
	if req.CaseID > 0 {
		s.session.SelectCase(req.CaseID)
	}
	view, err := s.session.Navigate(req.Event)
	var guard *nav.ErrGuard
	if errors.As(err, &guard) {
		writeError(w, http.StatusConflict, guard.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		View:         view,
		DemoMode:     s.session.DemoMode(),
		SelectedCase: s.session.SelectedCase(),
	})
}

type settingsResponse struct {
	Sender           string `json:"sender"`
	APIKeyConfigured bool   `json:"apiKeyConfigured"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, settingsResponse{
		Sender:           s.emailCfg.Sender,
		APIKeyConfigured: s.emailCfg.APIKey != "",
	})
}

type settingsRequest struct {
	Sender string `json:"sender"`
	APIKey string `json:"apiKey"`
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.mu.Lock()
	if req.Sender != "" {
		s.emailCfg.Sender = req.Sender
	}
	if req.APIKey != "" {
		s.emailCfg.APIKey = req.APIKey
	}
	sender := s.emailCfg.Sender
	configured := s.emailCfg.APIKey != ""
	s.mu.Unlock()

	logrus.Info("email settings updated")
	writeJSON(w, http.StatusOK, settingsResponse{Sender: sender, APIKeyConfigured: configured})
}
