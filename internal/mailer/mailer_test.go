package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bunshodo/leakscope/internal/config"
)

func TestSendWithoutAPIKey(t *testing.T) {
	m := New(config.EmailConfig{Sender: "Reports <reports@example.com>"})

	result := m.Send(context.Background(), "client@example.com", "Your report", "<p>hi</p>", nil)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "API key")
}

func TestSendNeverRetries(t *testing.T) {
	m := New(config.EmailConfig{APIKey: "re_test"})
	assert.Equal(t, 0, m.client.RetryMax)
}
