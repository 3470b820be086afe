package llm

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	genkitcore "github.com/firebase/genkit/go/core"
	"github.com/firebase/genkit/go/genkit"
	"github.com/sirupsen/logrus"

	"github.com/bunshodo/leakscope/internal/models"
)

// SynthesisRequest carries every prior stage output verbatim into the
// final report generation call.
type SynthesisRequest struct {
	TargetLabel    string                              `json:"target_label"`
	InvestigatedAt string                              `json:"investigated_at"`
	SearchResults  []models.SearchHit                  `json:"search_results"`
	FoundPdfs      []models.FoundPdf                   `json:"found_pdfs"`
	TraceFindings  []models.LlmTraceFinding            `json:"trace_findings"`
	VulnFindings   []models.DomainVulnerabilityFinding `json:"vuln_findings,omitempty"`
	// DomainScanned distinguishes "scan ran and found nothing" from
	// "scan was not applicable" (document-only target).
	DomainScanned bool `json:"domain_scanned"`
}

// DefineSynthesisFlow creates the genkit flow for the final report stage.
// Unlike the analysis stages, a failure here is terminal for the run.
func DefineSynthesisFlow(
	g *genkit.Genkit,
	modelName string,
) *genkitcore.Flow[*SynthesisRequest, *models.StructuredReport, struct{}] {
	return genkit.DefineFlow(
		g,
		"synthesisFlow",
		func(ctx context.Context, req *SynthesisRequest) (*models.StructuredReport, error) {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("context cancelled before synthesis: %w", err)
			}

			logrus.Debugf("synthesizing report for %s", req.TargetLabel)

			prompt := BuildSynthesisPrompt(req)

			result, _, err := genkit.GenerateData[models.StructuredReport](
				ctx,
				g,
				ai.WithModelName(modelName),
				ai.WithPrompt(prompt),
				ai.WithMiddleware(getMiddlewares()...),
			)
			if err != nil {
				return nil, fmt.Errorf("report synthesis LLM failed: %w", err)
			}

			logrus.Debugf("synthesis complete: overall risk %s", result.OverallRisk)
			return result, nil
		},
	)
}
