package nav

import (
	"fmt"
	"sync"
)

// View is one screen of the dashboard.
type View string

const (
	ViewLanding            View = "landing"
	ViewDashboard          View = "dashboard"
	ViewDetection          View = "detection"
	ViewEvaluation         View = "evaluation"
	ViewReports            View = "reports"
	ViewLegal              View = "legal"
	ViewSettings           View = "settings"
	ViewQuickInvestigation View = "quick-investigation"
	ViewInquiry            View = "inquiry"
)

// Event is a named navigation request.
type Event string

const (
	EventLogin          Event = "login"
	EventStartDemo      Event = "start-demo"
	EventLogout         Event = "logout"
	EventOpenDashboard  Event = "open-dashboard"
	EventOpenDetection  Event = "open-detection"
	EventOpenEvaluation Event = "open-evaluation"
	EventOpenReports    Event = "open-reports"
	EventOpenLegal      Event = "open-legal"
	EventOpenSettings   Event = "open-settings"
	EventOpenQuickLook  Event = "open-quick-look"
	EventOpenInquiry    Event = "open-inquiry"
	EventBackToLanding  Event = "back-to-landing"
)

// ErrGuard reports a transition refused by a guard condition.
type ErrGuard struct {
	Event  Event
	Reason string
}

func (e *ErrGuard) Error() string {
	return fmt.Sprintf("navigation %q refused: %s", e.Event, e.Reason)
}

// Session is one user's navigation state. Transitions go through
// Navigate, which enforces the guard conditions; views never change
// implicitly.
type Session struct {
	mu             sync.Mutex
	view           View
	authenticated  bool
	demo           bool
	selectedCaseID int64
}

func NewSession() *Session {
	return &Session{view: ViewLanding}
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func (s *Session) DemoMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.demo
}

// SelectCase records the case under evaluation. Zero clears it.
func (s *Session) SelectCase(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedCaseID = id
}

func (s *Session) SelectedCase() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedCaseID
}

// eventTargets maps each navigation event to its destination view.
var eventTargets = map[Event]View{
	EventLogin:          ViewDashboard,
	EventStartDemo:      ViewDashboard,
	EventOpenDashboard:  ViewDashboard,
	EventOpenDetection:  ViewDetection,
	EventOpenEvaluation: ViewEvaluation,
	EventOpenReports:    ViewReports,
	EventOpenLegal:      ViewLegal,
	EventOpenSettings:   ViewSettings,
	EventOpenQuickLook:  ViewQuickInvestigation,
	EventOpenInquiry:    ViewInquiry,
	EventLogout:         ViewLanding,
	EventBackToLanding:  ViewLanding,
}

// authenticatedViews require a login or demo session.
var authenticatedViews = map[View]bool{
	ViewDashboard:  true,
	ViewDetection:  true,
	ViewEvaluation: true,
	ViewReports:    true,
	ViewLegal:      true,
	ViewSettings:   true,
}

// Navigate applies one navigation event. It returns the new view, or
// ErrGuard when a guard refuses the transition; the session is left
// unchanged on refusal.
func (s *Session) Navigate(ev Event) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := eventTargets[ev]
	if !ok {
		return s.view, &ErrGuard{Event: ev, Reason: "unknown navigation event"}
	}

	switch ev {
	case EventLogin:
		s.authenticated = true
		s.demo = false
	case EventStartDemo:
		s.authenticated = true
		s.demo = true
	case EventLogout, EventBackToLanding:
		s.authenticated = false
		s.demo = false
		s.selectedCaseID = 0
	default:
		if authenticatedViews[target] && !s.authenticated {
			return s.view, &ErrGuard{Event: ev, Reason: "requires a login or demo session"}
		}
		if target == ViewEvaluation && s.selectedCaseID == 0 {
			return s.view, &ErrGuard{Event: ev, Reason: "requires a selected case"}
		}
	}

	s.view = target
	return s.view, nil
}
