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

// LegalSummaryRequest is the input for the legal evaluation flow.
type LegalSummaryRequest struct {
	Case   models.Case    `json:"case"`
	Traces []models.Trace `json:"traces"`
}

// LegalSummaryResponse is the structured legal assessment of a case.
type LegalSummaryResponse struct {
	Summary               string `json:"summary" jsonschema:"description=Plain-language assessment of the infringement posture"`
	RelianceScore         int    `json:"relianceScore" jsonschema:"description=0-100 likelihood the LLM output relied on the protected work"`
	SimilarityScore       int    `json:"similarityScore" jsonschema:"description=0-100 substantial similarity of the reproduced content"`
	SettlementEstimateJpy int    `json:"settlementEstimateJpy" jsonschema:"description=Estimated settlement amount in JPY"`
	LitigationRisk        string `json:"litigationRisk" jsonschema:"enum=high,enum=medium,enum=low"`
}

// DefineLegalSummaryFlow creates the flow backing the legal evaluation
// view: reliance and similarity scoring plus a settlement estimate.
func DefineLegalSummaryFlow(
	g *genkit.Genkit,
	modelName string,
) *genkitcore.Flow[*LegalSummaryRequest, *LegalSummaryResponse, struct{}] {
	return genkit.DefineFlow(
		g,
		"legalSummaryFlow",
		func(ctx context.Context, req *LegalSummaryRequest) (*LegalSummaryResponse, error) {
			tracesJSON, _ := json.MarshalIndent(req.Traces, "", "  ")

			prompt := fmt.Sprintf(
				`
You are a legal analyst specialized in copyright disputes involving
generative AI. Assess the case below for infringement under the two
classic tests: reliance (did the model's output rely on the protected
work) and substantial similarity.

Score both tests 0-100 using the similarity traces as evidence, estimate
a realistic settlement amount in Japanese yen, and grade the litigation
risk. Stay factual; do not promise any legal outcome.

### Case data:
- Title: %s
- Author: %s
- Journal: %s
- Risk score: %d
- Status: %s

### Similarity traces:
%s

Respond strictly as JSON conforming to the provided schema.
`,
				req.Case.Title,
				req.Case.Author,
				req.Case.Journal,
				req.Case.RiskScore,
				req.Case.Status,
				string(tracesJSON),
			)

			result, _, err := genkit.GenerateData[LegalSummaryResponse](
				ctx,
				g,
				ai.WithModelName(modelName),
				ai.WithPrompt(prompt),
				ai.WithMiddleware(getMiddlewares()...),
			)
			if err != nil {
				return nil, fmt.Errorf("legal summary LLM failed: %w", err)
			}
			return result, nil
		},
	)
}
