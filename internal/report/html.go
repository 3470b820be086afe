package report

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bunshodo/leakscope/internal/models"
)

// HTMLRenderer produces the raw HTML rendition of a report. Implemented by
// the AI client; the returned string may be a fragment.
type HTMLRenderer interface {
	RenderReportHTML(ctx context.Context, report *models.StructuredReport, recipient string) (string, error)
}

// HTMLAdapter converts a finished report into a self-contained HTML
// document for the screenshot-to-PDF pipeline. It never fails: fragments
// are wrapped in a minimal skeleton and renderer errors produce an error
// document, so the caller always gets well-formed, non-empty HTML.
type HTMLAdapter struct {
	renderer HTMLRenderer
}

func NewHTMLAdapter(renderer HTMLRenderer) *HTMLAdapter {
	return &HTMLAdapter{renderer: renderer}
}

// Render returns a complete HTML document for the report, addressed to
// the recipient.
func (a *HTMLAdapter) Render(ctx context.Context, rep *models.StructuredReport, recipient string) string {
	raw, err := a.renderer.RenderReportHTML(ctx, rep, recipient)
	if err != nil {
		logrus.Errorf("report HTML generation failed: %v", err)
		return errorDocument(err)
	}
	return EnsureDocument(raw)
}

// EnsureDocument wraps a fragment in a minimal HTML skeleton when the
// model did not return a full document. Full documents pass through with
// a DOCTYPE prepended if missing.
func EnsureDocument(raw string) string {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)

	switch {
	case strings.HasPrefix(lower, "<!doctype html"):
		return trimmed
	case strings.HasPrefix(lower, "<html"):
		return "<!DOCTYPE html>\n" + trimmed
	default:
		return fmt.Sprintf(
			`<!DOCTYPE html><html><head><meta charset="UTF-8"><title>Report</title></head><body>%s</body></html>`,
			trimmed,
		)
	}
}

func errorDocument(err error) string {
	return fmt.Sprintf(
		`<!DOCTYPE html><html><head><meta charset="UTF-8"><title>Report</title></head><body><h1>Report generation error</h1><p>%s</p></body></html>`,
		html.EscapeString(err.Error()),
	)
}
