package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStartsAtLanding(t *testing.T) {
	s := NewSession()
	assert.Equal(t, ViewLanding, s.View())
}

func TestGuardedViewsRequireSession(t *testing.T) {
	s := NewSession()

	for _, ev := range []Event{EventOpenDashboard, EventOpenDetection, EventOpenReports, EventOpenSettings} {
		_, err := s.Navigate(ev)
		var guard *ErrGuard
		require.ErrorAs(t, err, &guard, "event %q must be refused without a session", ev)
		assert.Equal(t, ViewLanding, s.View(), "refused transition must not change the view")
	}
}

func TestLoginOpensDashboard(t *testing.T) {
	s := NewSession()

	view, err := s.Navigate(EventLogin)
	require.NoError(t, err)
	assert.Equal(t, ViewDashboard, view)
	assert.False(t, s.DemoMode())

	view, err = s.Navigate(EventOpenDetection)
	require.NoError(t, err)
	assert.Equal(t, ViewDetection, view)
}

func TestDemoSessionOpensDashboard(t *testing.T) {
	s := NewSession()

	view, err := s.Navigate(EventStartDemo)
	require.NoError(t, err)
	assert.Equal(t, ViewDashboard, view)
	assert.True(t, s.DemoMode())
}

func TestEvaluationRequiresSelectedCase(t *testing.T) {
	s := NewSession()
	_, err := s.Navigate(EventLogin)
	require.NoError(t, err)

	_, err = s.Navigate(EventOpenEvaluation)
	var guard *ErrGuard
	require.ErrorAs(t, err, &guard)

	s.SelectCase(2)
	view, err := s.Navigate(EventOpenEvaluation)
	require.NoError(t, err)
	assert.Equal(t, ViewEvaluation, view)
}

func TestLogoutResetsSession(t *testing.T) {
	s := NewSession()
	_, err := s.Navigate(EventLogin)
	require.NoError(t, err)
	s.SelectCase(4)

	view, err := s.Navigate(EventLogout)
	require.NoError(t, err)
	assert.Equal(t, ViewLanding, view)
	assert.Zero(t, s.SelectedCase())

	_, err = s.Navigate(EventOpenDashboard)
	assert.Error(t, err, "logged-out session must not reach the dashboard")
}

func TestUnknownEvent(t *testing.T) {
	s := NewSession()
	_, err := s.Navigate(Event("teleport"))
	assert.Error(t, err)
	assert.Equal(t, ViewLanding, s.View())
}

func TestInquiryOpenWithoutSession(t *testing.T) {
	s := NewSession()
	view, err := s.Navigate(EventOpenInquiry)
	require.NoError(t, err)
	assert.Equal(t, ViewInquiry, view)
}
