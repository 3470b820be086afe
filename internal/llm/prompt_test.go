package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bunshodo/leakscope/internal/models"
)

func TestBuildTracePromptDomainOnly(t *testing.T) {
	prompt := BuildTracePrompt(&TraceRequest{Topic: "example.co.jp"})

	assert.Contains(t, prompt, `general information regarding example.co.jp`)
	assert.Contains(t, prompt, "Do not fabricate quotations")
	assert.NotContains(t, prompt, "### Document text:")
}

func TestBuildTracePromptWithDocument(t *testing.T) {
	prompt := BuildTracePrompt(&TraceRequest{
		Topic:        "annual security review",
		DocumentText: "The quarterly figures were never published.",
	})

	assert.Contains(t, prompt, "quote the single most relevant sentence verbatim")
	assert.Contains(t, prompt, "The quarterly figures were never published.")
}

func TestBuildTracePromptTruncatesDocument(t *testing.T) {
	long := strings.Repeat("x", maxDocumentChars+500)
	prompt := BuildTracePrompt(&TraceRequest{Topic: "t", DocumentText: long})

	assert.NotContains(t, prompt, long)
	assert.Contains(t, prompt, strings.Repeat("x", maxDocumentChars)+"...")
}

func TestBuildSynthesisPromptVulnSection(t *testing.T) {
	req := &SynthesisRequest{
		TargetLabel:   "paper.pdf",
		DomainScanned: false,
		VulnFindings: []models.DomainVulnerabilityFinding{
			{Vulnerability: "should not appear"},
		},
	}
	prompt := BuildSynthesisPrompt(req)
	assert.Contains(t, prompt, "not applicable - no domain was supplied")
	assert.NotContains(t, prompt, "should not appear")

	req.DomainScanned = true
	prompt = BuildSynthesisPrompt(req)
	assert.Contains(t, prompt, "should not appear")
}

func TestBuildSynthesisPromptForbidsAllClear(t *testing.T) {
	prompt := BuildSynthesisPrompt(&SynthesisRequest{TargetLabel: "example.com", DomainScanned: true})
	assert.Contains(t, prompt, "strictly forbidden")
	assert.Contains(t, prompt, "conclusive evidence")
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<html></html>", "<html></html>"},
		{"```html\n<html></html>\n```", "<html></html>"},
		{"```\n<p>x</p>\n```", "<p>x</p>"},
		{"  ```html\n<div/>\n```  ", "<div/>"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripCodeFence(tt.in))
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abc...", TruncateString("abcdef", 3))
}
