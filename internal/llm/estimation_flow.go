package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	genkitcore "github.com/firebase/genkit/go/core"
	"github.com/firebase/genkit/go/genkit"

	"github.com/bunshodo/leakscope/internal/models"
)

// EstimationRequest is the input for the one-shot cost estimation flow.
type EstimationRequest struct {
	Report *models.StructuredReport `json:"report"`
}

// DefineEstimationFlow creates the genkit flow turning a finished report
// into the fixed three-plan remediation estimate. One shot, no retry.
func DefineEstimationFlow(
	g *genkit.Genkit,
	modelName string,
) *genkitcore.Flow[*EstimationRequest, *models.FixEstimation, struct{}] {
	return genkit.DefineFlow(
		g,
		"estimationFlow",
		func(ctx context.Context, req *EstimationRequest) (*models.FixEstimation, error) {
			prompt := BuildEstimationPrompt(req.Report)

			result, _, err := genkit.GenerateData[models.FixEstimation](
				ctx,
				g,
				ai.WithModelName(modelName),
				ai.WithPrompt(prompt),
				ai.WithMiddleware(getMiddlewares()...),
			)
			if err != nil {
				return nil, fmt.Errorf("estimation LLM failed: %w", err)
			}
			return result, nil
		},
	)
}

// BuildEstimationPrompt embeds the report's risk profile and the fixed
// pricing rules for the three remediation plans.
func BuildEstimationPrompt(report *models.StructuredReport) string {
	traceJSON, _ := json.Marshal(report.InvestigationResults.LlmTraceAnalysis)
	vulnJSON, _ := json.Marshal(report.InvestigationResults.DomainVulnerabilityAnalysis)

	return fmt.Sprintf(
		`
You are a senior project manager at a company providing web security
consulting and development services to corporate clients. Based on the
security investigation report below, propose three remediation plans with
estimates.

### Estimation rules:
1. Exactly these three plans, by name:
   - "Standard Delivery": standard handling, cost-conscious, issues fixed
     in order.
   - "Rapid Response (24h)": prioritized handling with a guaranteed start
     within 24 hours; surcharge applies.
   - "Emergency Support": immediate top-priority response including expert
     consulting and recurrence prevention.
2. The base labor rate is 15,000 JPY per hour. Apply surcharge multipliers
   for the faster plans (rapid x1.5, emergency x2.5).
3. Give a realistic minimum and maximum cost per plan.
4. List the concrete services included in each plan as "features".

### Investigation report:
- Overall risk: %s
- Public PDFs found: %d
- LLM training-data contamination: %s
- Domain vulnerabilities: %s

Respond strictly as JSON conforming to the provided schema, with a summary
of 2-3 sentences stating the assumptions behind the estimate.
`,
		report.OverallRisk,
		len(report.InvestigationResults.FoundPdfs),
		string(traceJSON),
		string(vulnJSON),
	)
}
