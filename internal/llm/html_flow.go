package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	genkitcore "github.com/firebase/genkit/go/core"
	"github.com/firebase/genkit/go/genkit"

	"github.com/bunshodo/leakscope/internal/models"
)

// ReportHTMLRequest is the input for the HTML rendition flow.
type ReportHTMLRequest struct {
	Report    *models.StructuredReport `json:"report"`
	Recipient string                   `json:"recipient"`
}

// ReportHTMLResponse carries the raw HTML text returned by the model.
type ReportHTMLResponse struct {
	HTML string `json:"html"`
}

// DefineReportHTMLFlow creates the flow producing the email/PDF rendition
// of a report. Free-text generation: the output is an HTML document, not
// JSON, so this uses genkit.Generate rather than GenerateData.
func DefineReportHTMLFlow(
	g *genkit.Genkit,
	modelName string,
) *genkitcore.Flow[*ReportHTMLRequest, *ReportHTMLResponse, struct{}] {
	return genkit.DefineFlow(
		g,
		"reportHTMLFlow",
		func(ctx context.Context, req *ReportHTMLRequest) (*ReportHTMLResponse, error) {
			prompt := BuildReportHTMLPrompt(req.Report, req.Recipient)

			resp, err := genkit.Generate(
				ctx,
				g,
				ai.WithModelName(modelName),
				ai.WithPrompt(prompt),
				ai.WithMiddleware(getMiddlewares()...),
			)
			if err != nil {
				return nil, fmt.Errorf("report HTML LLM failed: %w", err)
			}

			return &ReportHTMLResponse{HTML: stripCodeFence(resp.Text())}, nil
		},
	)
}

// stripCodeFence removes a surrounding markdown code fence if the model
// wrapped its output in one.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```html")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// BuildReportHTMLPrompt carries the layout constraint that keeps the
// downstream canvas rasterizer working: table-only layout, inline CSS,
// no flex or grid.
func BuildReportHTMLPrompt(report *models.StructuredReport, recipient string) string {
	reportJSON, _ := json.MarshalIndent(report, "", "  ")

	return fmt.Sprintf(
		`
You are an expert at producing professional client-facing reports. Generate
the official investigation report as an HTML document from the JSON data
below.

### Absolute constraints for reliable PDF conversion (mandatory):
1. The downstream PDF conversion (html2canvas) cannot interpret modern CSS.
   Flexbox and Grid layouts fail 100%% of the time.
2. Build the entire layout with <table> tags only, as if writing a 2007
   Outlook email. This is the single most important instruction.
3. CSS Flexbox and Grid are strictly forbidden. Avoid float and position.
4. Style exclusively via inline style attributes. No <style> tags, no
   images, no external links.
5. Produce a complete HTML document with <html>, <head> (including UTF-8
   charset) and <body>. Start with a cover page addressed to %s, followed
   by a clickable table of contents.

### Report data:
%s

Follow the rules above strictly and return only the HTML document.
`,
		recipient,
		string(reportJSON),
	)
}
