package llm

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	genkitcore "github.com/firebase/genkit/go/core"
	"github.com/firebase/genkit/go/genkit"

	"github.com/bunshodo/leakscope/internal/models"
)

// AuditTrailRequest is the input for the case audit timeline flow.
type AuditTrailRequest struct {
	Case models.Case `json:"case"`
}

// AuditTrailResponse wraps the generated timeline entries.
type AuditTrailResponse struct {
	Events []models.AuditEvent `json:"events" jsonschema:"description=5-7 timeline entries in chronological order"`
}

// DefineAuditTrailFlow creates the flow generating the audit timeline
// shown in the legal view for a case.
func DefineAuditTrailFlow(
	g *genkit.Genkit,
	modelName string,
) *genkitcore.Flow[*AuditTrailRequest, *AuditTrailResponse, struct{}] {
	return genkit.DefineFlow(
		g,
		"auditTrailFlow",
		func(ctx context.Context, req *AuditTrailRequest) (*AuditTrailResponse, error) {
			prompt := fmt.Sprintf(
				`
You are a system logger producing a legally usable audit trail (timeline).
Generate 5-7 realistic trail entries for the case below.

Each entry needs: timestamp (ISO 8601), title, details, hash (a random
SHA256 hex string), icon (one of RegistrationIcon, DetectionIcon,
EvaluationIcon, PencilSquareIcon, ExclamationTriangleIcon) and color (one
of text-blue-400, text-purple-400, text-green-400, text-yellow-400,
text-red-400).

### Case data:
- Title: %s
- Author: %s
- Risk score: %d
- Status: %s

Respond strictly as JSON conforming to the provided schema.
`,
				req.Case.Title,
				req.Case.Author,
				req.Case.RiskScore,
				req.Case.Status,
			)

			result, _, err := genkit.GenerateData[AuditTrailResponse](
				ctx,
				g,
				ai.WithModelName(modelName),
				ai.WithPrompt(prompt),
				ai.WithMiddleware(getMiddlewares()...),
			)
			if err != nil {
				return nil, fmt.Errorf("audit trail LLM failed: %w", err)
			}
			return result, nil
		},
	)
}
