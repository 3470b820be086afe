package llm

import "fmt"

const maxDocumentChars = 20000

// BuildTracePrompt asks for a per-provider assessment of whether the
// target content is plausibly present in LLM training data. For
// domain-only targets the model must use a fixed generic evidence string
// instead of inventing quotes.
func BuildTracePrompt(req *TraceRequest) string {
	analysisTarget := fmt.Sprintf("the domain %q", req.Topic)
	evidenceInstruction := fmt.Sprintf(
		`No document text is available. For every finding the "evidence" field must be exactly: "general information regarding %s". Do not fabricate quotations.`,
		req.Topic,
	)
	if req.DocumentText != "" {
		analysisTarget = "the document text below"
		evidenceInstruction = `For every finding, quote the single most relevant sentence verbatim from the analyzed text as the "evidence" field.`
	}

	prompt := fmt.Sprintf(
		`
Analyze whether content substantially identical to the following material is
likely to be included in the training data of the major LLM providers
(OpenAI, Anthropic, Google and others).

Produce a list of providers where such inclusion is suspected. For each
provider give a risk rating (high, medium or low) and the supporting
evidence.

### Analysis target:
%s

### Evidence rules:
%s

Respond strictly as JSON conforming to the provided schema.
`,
		analysisTarget,
		evidenceInstruction,
	)

	if req.DocumentText != "" {
		prompt += fmt.Sprintf("\n### Document text:\n```\n%s\n```\n", TruncateString(req.DocumentText, maxDocumentChars))
	}

	return prompt
}
