package models

// CaseStatus is the publication status of a registered work.
type CaseStatus string

const (
	StatusPublished           CaseStatus = "published"
	StatusInReview            CaseStatus = "in_review"
	StatusUnpublished         CaseStatus = "unpublished"
	StatusAcceptedUnpublished CaseStatus = "accepted_unpublished"
)

// Case is a registered work under plagiarism/exposure monitoring.
type Case struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Author            string     `json:"author"`
	Journal           string     `json:"journal"`
	RiskScore         int        `json:"riskScore"`
	Phase             string     `json:"phase"`
	Status            CaseStatus `json:"status"`
	LastDetectionDate string     `json:"lastDetectionDate"`
	LlmProvider       string     `json:"llmProvider,omitempty"`
	CreatedAt         string     `json:"createdAt,omitempty"`
}

// Trace is one similarity trace between a monitored work and LLM output.
type Trace struct {
	ID                    int64  `json:"id"`
	Target                string `json:"target"`
	FingerprintSimilarity int    `json:"fingerprintSimilarity"`
	StructuralDependency  int    `json:"structuralDependency"`
	ParaphraseScore       int    `json:"paraphraseScore"`
	LlmProvider           string `json:"llmProvider"`
}

// LlmProviderRisk aggregates trace risk per LLM provider.
type LlmProviderRisk struct {
	Name            string  `json:"name"`
	TraceCount      int     `json:"traceCount"`
	CumulativeSda   float64 `json:"cumulativeSda"`
	HighestRisk     string  `json:"highestRisk"`
	ConfidenceScore int     `json:"confidenceScore"`
}

// GeneratedReport is the persisted record of an exported report.
type GeneratedReport struct {
	ID           string   `json:"id"`
	CaseID       int64    `json:"caseId"`
	CaseTitle    string   `json:"caseTitle"`
	RiskScore    int      `json:"riskScore"`
	LlmProviders []string `json:"llmProviders"`
	GeneratedAt  string   `json:"generatedAt"`
	Format       string   `json:"format"`
	Status       string   `json:"status"`
	Version      int      `json:"version"`
}

// AuditEvent is one entry of an AI-generated case audit timeline.
type AuditEvent struct {
	Timestamp string `json:"timestamp"`
	Title     string `json:"title"`
	Details   string `json:"details"`
	Hash      string `json:"hash"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
}

// OnboardingStep is one step of the guided product tour.
type OnboardingStep struct {
	Selector   string `json:"selector,omitempty"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	NavigateTo string `json:"navigateTo,omitempty"`
}
