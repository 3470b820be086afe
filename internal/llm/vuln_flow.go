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

// VulnScanRequest is the input for the domain vulnerability scan flow.
type VulnScanRequest struct {
	Domain string `json:"domain"`
}

// VulnScanResponse wraps the vulnerability findings returned by the model.
type VulnScanResponse struct {
	Findings []models.DomainVulnerabilityFinding `json:"findings" jsonschema:"description=Security concerns derivable from public signals only"`
}

// DefineVulnScanFlow creates the genkit flow for the vulnerability stage.
func DefineVulnScanFlow(
	g *genkit.Genkit,
	modelName string,
) *genkitcore.Flow[*VulnScanRequest, *VulnScanResponse, struct{}] {
	return genkit.DefineFlow(
		g,
		"vulnScanFlow",
		func(ctx context.Context, req *VulnScanRequest) (*VulnScanResponse, error) {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("context cancelled before vulnerability scan: %w", err)
			}

			logrus.Debugf("vulnerability scan for %s", req.Domain)

			prompt := BuildVulnScanPrompt(req.Domain)

			result, _, err := genkit.GenerateData[VulnScanResponse](
				ctx,
				g,
				ai.WithModelName(modelName),
				ai.WithPrompt(prompt),
				ai.WithMiddleware(getMiddlewares()...),
			)
			if err != nil {
				return nil, fmt.Errorf("vulnerability scan LLM failed: %w", err)
			}

			logrus.Debugf("vulnerability scan complete: %d findings", len(result.Findings))
			return result, nil
		},
	)
}
