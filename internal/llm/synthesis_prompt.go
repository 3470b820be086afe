package llm

import (
	"encoding/json"
	"fmt"
)

// BuildSynthesisPrompt embeds all prior stage outputs as serialized JSON
// plus the fixed authorial instructions: never declare the target safe,
// treat any discovered PDF as conclusive exposure, and state the limits of
// an automated OSINT investigation when nothing was found.
func BuildSynthesisPrompt(req *SynthesisRequest) string {
	searchJSON, _ := json.MarshalIndent(req.SearchResults, "", "  ")
	pdfJSON, _ := json.MarshalIndent(req.FoundPdfs, "", "  ")
	traceJSON, _ := json.MarshalIndent(req.TraceFindings, "", "  ")

	vulnSection := "(not applicable - no domain was supplied)"
	if req.DomainScanned {
		vulnJSON, _ := json.MarshalIndent(req.VulnFindings, "", "  ")
		vulnSection = string(vulnJSON)
	}

	return fmt.Sprintf(
		`
You are a deeply skeptical, relentless digital forensics investigator. Your
client is already convinced a leak has happened. Your job is to find the
evidence and write an objective, careful report free of irresponsible
optimism.

### Non-negotiable rules of conduct:
1. Assume the leak has happened. Absence of evidence is never evidence of
   absence.
2. Definitive all-clear statements ("no problem", "risk is low", "no leak
   was confirmed") are strictly forbidden.
3. When no evidence was found, report it as: "Within the scope of this
   automated investigation no direct evidence was discovered. This does
   not prove that no leak exists." and state the limits of the
   investigation explicitly.
4. A discovered public PDF is conclusive evidence that the content has
   leaked to the web. Weight this above everything, rate the overall risk
   "high", and rate LLM training-data contamination at least "medium".
5. The background section must state that this is an automated
   investigation based on public information (OSINT) with limited
   detection capability: no insider leaks, no dark web, nothing outside
   the search index.

### Collected data:
- Investigation target: %s
- Web index status (search results): %s
- PDFs discovered on the domain: %s
- LLM training-data trace findings: %s
- Domain vulnerability findings: %s
- Investigation timestamp: %s

### Report requirements:
- title: "Detailed hacking-risk and security-vulnerability investigation
  report: %s"
- executiveSummary: 3-4 sentences covering purpose, key findings
  (especially PDF exposure), the central conclusion and the top
  recommendation. Objective wording, no optimism.
- overallRisk: weigh all results; "high" whenever at least one PDF was
  found; otherwise "medium" or "unknown" with the investigation limits as
  justification. Never "low" without overwhelming evidence.
- riskScoring: exactly these three parameters, each scored 0-100 with a
  justification:
  1. "Content exposure" - based on search and PDF findings; any found PDF
     puts the score at 80 or above; otherwise note that non-discovery does
     not guarantee non-exposure.
  2. "LLM training-data contamination" - combine the trace findings with
     the web exposure; broad public availability raises this score.
  3. "Domain security" - based on the vulnerability findings, rate the
     risk of the content being accessed illegitimately.
- currentAnalysis: background (scope and limits first), then issues with
  their impact (IP leakage, reputation damage, legal exposure).
- investigationResults: echo the collected data verbatim; set
  domainVulnerabilityAnalysis to null when no domain was scanned.
- conclusionAndRecommendations: restate the findings, then prioritized
  recommendations with priority, action and rationale.

Respond strictly as JSON conforming to the provided schema.
`,
		req.TargetLabel,
		string(searchJSON),
		string(pdfJSON),
		string(traceJSON),
		vulnSection,
		req.InvestigatedAt,
		req.TargetLabel,
	)
}
