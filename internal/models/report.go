package models

// RiskLevel grades an individual finding or a whole report.
type RiskLevel string

const (
	RiskHigh    RiskLevel = "high"
	RiskMedium  RiskLevel = "medium"
	RiskLow     RiskLevel = "low"
	RiskUnknown RiskLevel = "unknown"
)

// Severity grades a domain vulnerability finding.
type Severity string

const (
	SeverityHigh          Severity = "high"
	SeverityMedium        Severity = "medium"
	SeverityLow           Severity = "low"
	SeverityInformational Severity = "informational"
	SeverityUnknown       Severity = "unknown"
)

// LlmTraceFinding is one provider suspected of carrying the target
// content in its training data.
type LlmTraceFinding struct {
	Provider string    `json:"provider" jsonschema:"description=LLM provider name (e.g. OpenAI)"`
	Risk     RiskLevel `json:"risk" jsonschema:"enum=high,enum=medium,enum=low,enum=unknown"`
	Evidence string    `json:"evidence" jsonschema:"description=Evidence text backing the assessment"`
}

// DomainVulnerabilityFinding is one concrete security concern derived
// from publicly observable signals of the target domain.
type DomainVulnerabilityFinding struct {
	Vulnerability string   `json:"vulnerability"`
	Severity      Severity `json:"severity" jsonschema:"enum=high,enum=medium,enum=low,enum=informational,enum=unknown"`
	Description   string   `json:"description" jsonschema:"description=Concrete risk plus the observable evidence it rests on"`
}

// SearchHit is one grounded web search citation. URL is the dedup key.
type SearchHit struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// FoundPdf is a publicly reachable PDF discovered during the search stage.
type FoundPdf struct {
	Title   string    `json:"title"`
	URL     string    `json:"url"`
	Risk    RiskLevel `json:"risk"`
	Summary string    `json:"summary"`
}

// RiskScore is one scored parameter of the report's risk model.
type RiskScore struct {
	Parameter     string `json:"parameter"`
	Score         int    `json:"score" jsonschema:"description=0-100"`
	Justification string `json:"justification"`
}

// ReportIssue is one identified problem and its business impact.
type ReportIssue struct {
	Issue  string `json:"issue"`
	Impact string `json:"impact"`
}

// CurrentAnalysis is the narrative part of the report. Background must
// state the scope and limits of an automated OSINT investigation.
type CurrentAnalysis struct {
	Background string        `json:"background"`
	Issues     []ReportIssue `json:"issues"`
}

// InvestigationResults carries the raw stage outputs embedded in the
// final report. DomainVulnerabilityAnalysis is nil for document-only runs.
type InvestigationResults struct {
	Steps                       []string                     `json:"steps"`
	SearchResults               []SearchHit                  `json:"searchResults"`
	FoundPdfs                   []FoundPdf                   `json:"foundPdfs"`
	LlmTraceAnalysis            []LlmTraceFinding            `json:"llmTraceAnalysis"`
	DomainVulnerabilityAnalysis []DomainVulnerabilityFinding `json:"domainVulnerabilityAnalysis"`
}

// EvidenceSource tags where an evidence trail entry came from.
type EvidenceSource string

const (
	SourceSearch     EvidenceSource = "Web Search"
	SourcePdf        EvidenceSource = "PDF Analysis"
	SourceLlmTrace   EvidenceSource = "LLM Trace"
	SourceDomainScan EvidenceSource = "Domain Scan"
)

// EvidenceEntry is one row of the report's audit-style evidence trail.
type EvidenceEntry struct {
	EvidenceID  string         `json:"evidenceId"`
	Description string         `json:"description"`
	Source      EvidenceSource `json:"source"`
	Timestamp   string         `json:"timestamp"`
}

// Recommendation is one prioritized remediation action.
type Recommendation struct {
	Priority  RiskLevel `json:"priority" jsonschema:"enum=high,enum=medium,enum=low"`
	Action    string    `json:"action"`
	Rationale string    `json:"rationale"`
}

// Conclusion closes the report with prioritized recommendations.
type Conclusion struct {
	Conclusion      string           `json:"conclusion"`
	Recommendations []Recommendation `json:"recommendations"`
}

// StructuredReport is the terminal artifact of one investigation run.
// Created once by the orchestrator, read-only afterwards.
type StructuredReport struct {
	Title                        string               `json:"title"`
	ExecutiveSummary             string               `json:"executiveSummary"`
	OverallRisk                  RiskLevel            `json:"overallRisk" jsonschema:"enum=high,enum=medium,enum=low,enum=unknown"`
	RiskScoring                  []RiskScore          `json:"riskScoring"`
	CurrentAnalysis              CurrentAnalysis      `json:"currentAnalysis"`
	InvestigationResults         InvestigationResults `json:"investigationResults"`
	EvidenceTrail                []EvidenceEntry      `json:"evidenceTrail"`
	ConclusionAndRecommendations Conclusion           `json:"conclusionAndRecommendations"`
}

// PlanCost is a price range for one remediation plan.
type PlanCost struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// FixEstimationPlan is one of the three fixed remediation offerings.
type FixEstimationPlan struct {
	PlanName     string   `json:"planName" jsonschema:"enum=Standard Delivery,enum=Rapid Response (24h),enum=Emergency Support"`
	DeliveryTime string   `json:"deliveryTime"`
	TotalCost    PlanCost `json:"totalCost"`
	Description  string   `json:"description"`
	Features     []string `json:"features"`
}

// FixEstimation is the cost estimate derived from a finished report.
type FixEstimation struct {
	Plans   []FixEstimationPlan `json:"plans"`
	Summary string              `json:"summary"`
}
