package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/bunshodo/leakscope/internal/config"
)

const resendEndpoint = "https://api.resend.com/emails"

// SendResult is the typed outcome of a delivery attempt. Delivery
// failures are reported here, not as errors: callers surface the
// message to the user and move on.
type SendResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Attachment is a file carried inline with the report email. Content
// is base64 without the data-URI prefix, as the Resend API expects.
type Attachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type sendPayload struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	HTML        string       `json:"html"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Mailer delivers report emails through the Resend API.
type Mailer struct {
	apiKey string
	sender string
	client *retryablehttp.Client
}

func New(cfg config.EmailConfig) *Mailer {
	client := retryablehttp.NewClient()
	// A duplicate report email is worse than a failed one.
	client.RetryMax = 0
	client.HTTPClient.Timeout = 30 * time.Second
	client.Logger = nil
	return &Mailer{apiKey: cfg.APIKey, sender: cfg.Sender, client: client}
}

// Send posts the email to Resend. A missing API key is reported as a
// typed failure rather than an error so demo deployments stay usable.
func (m *Mailer) Send(ctx context.Context, to, subject, html string, attachments []Attachment) SendResult {
	if m.apiKey == "" {
		return SendResult{Success: false, Message: "Email API key is not configured. Set RESEND_API_KEY to enable delivery."}
	}

	payload := sendPayload{
		From:        m.sender,
		To:          []string{to},
		Subject:     subject,
		HTML:        html,
		Attachments: attachments,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return SendResult{Success: false, Message: fmt.Sprintf("could not encode email payload: %v", err)}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return SendResult{Success: false, Message: fmt.Sprintf("could not build email request: %v", err)}
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		logrus.Errorf("email delivery failed: %v", err)
		return SendResult{Success: false, Message: fmt.Sprintf("Email delivery failed: %v", err)}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		msg := gjson.GetBytes(raw, "message").String()
		if msg == "" {
			msg = resp.Status
		}
		logrus.Errorf("email rejected by provider: %s", msg)
		return SendResult{Success: false, Message: fmt.Sprintf("Email rejected: %s", msg)}
	}

	logrus.Infof("report email sent to %s (id=%s)", to, gjson.GetBytes(raw, "id").String())
	return SendResult{Success: true, Message: fmt.Sprintf("Report sent to %s.", to)}
}
