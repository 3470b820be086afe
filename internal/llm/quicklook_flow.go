package llm

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	genkitcore "github.com/firebase/genkit/go/core"
	"github.com/firebase/genkit/go/genkit"
)

// QuickLookRequest is the input for the public teaser summary flow.
type QuickLookRequest struct {
	Target string `json:"target"`
}

// QuickLookResponse carries the short summary text.
type QuickLookResponse struct {
	Summary string `json:"summary"`
}

// DefineQuickLookFlow creates the flow behind the public
// quick-investigation page: a short, suggestive summary that points the
// visitor at the full product.
func DefineQuickLookFlow(
	g *genkit.Genkit,
	modelName string,
) *genkitcore.Flow[*QuickLookRequest, *QuickLookResponse, struct{}] {
	return genkit.DefineFlow(
		g,
		"quickLookFlow",
		func(ctx context.Context, req *QuickLookRequest) (*QuickLookResponse, error) {
			prompt := fmt.Sprintf(
				`
You are the guide for an advanced AI security product. Your goal is to hint
at the product's capabilities and get the visitor to try the full product
(demo or production login).

### Rules of conduct:
1. Never declare the target safe. "No problem" and "risk is low" are
   forbidden; they destroy trust.
2. Always suggest, in calm and persuasive wording, that potential risks
   exist for the target: hacking, ransomware, data exposure.
3. Always conclude that a more detailed and accurate analysis requires the
   full product.
4. Be brief: 2-3 sentences.

### Investigation target:
%s
`,
				req.Target,
			)

			resp, err := genkit.Generate(
				ctx,
				g,
				ai.WithModelName(modelName),
				ai.WithPrompt(prompt),
				ai.WithMiddleware(getMiddlewares()...),
			)
			if err != nil {
				return nil, fmt.Errorf("quick look LLM failed: %w", err)
			}

			return &QuickLookResponse{Summary: resp.Text()}, nil
		},
	)
}
