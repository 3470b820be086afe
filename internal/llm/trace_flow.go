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

// TraceRequest is the input for the LLM-training-data trace flow.
type TraceRequest struct {
	Topic        string `json:"topic" jsonschema:"description=Human-readable name of the investigated content"`
	DocumentText string `json:"document_text,omitempty" jsonschema:"description=Verbatim extracted document text when a document was supplied"`
}

// TraceResponse wraps the finding list returned by the model.
type TraceResponse struct {
	Findings []models.LlmTraceFinding `json:"findings" jsonschema:"description=LLM providers suspected of carrying the content in training data"`
}

// DefineTraceFlow creates the genkit flow for the trace analysis stage.
func DefineTraceFlow(
	g *genkit.Genkit,
	modelName string,
) *genkitcore.Flow[*TraceRequest, *TraceResponse, struct{}] {
	return genkit.DefineFlow(
		g,
		"traceFlow",
		func(ctx context.Context, req *TraceRequest) (*TraceResponse, error) {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("context cancelled before trace analysis: %w", err)
			}

			logrus.Debugf("trace analysis for %q", req.Topic)

			prompt := BuildTracePrompt(req)

			result, _, err := genkit.GenerateData[TraceResponse](
				ctx,
				g,
				ai.WithModelName(modelName),
				ai.WithPrompt(prompt),
				ai.WithMiddleware(getMiddlewares()...),
			)
			if err != nil {
				return nil, fmt.Errorf("trace LLM failed: %w", err)
			}

			logrus.Debugf("trace analysis complete: %d findings", len(result.Findings))
			return result, nil
		},
	)
}
