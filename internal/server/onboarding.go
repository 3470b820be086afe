package server

import (
	"github.com/bunshodo/leakscope/internal/models"
	"github.com/bunshodo/leakscope/internal/nav"
)

// onboardingSteps drives the guided product tour. Selectors reference
// data-tour-id attributes in the dashboard frontend.
var onboardingSteps = []models.OnboardingStep{
	{
		Title:   "Welcome to the AI Site Security Audit!",
		Content: "This tour walks through the main features for managing AI plagiarism risk and protecting your intellectual property.",
	},
	{
		Selector: `[data-tour-id="sidebar-nav"]`,
		Title:    "Main navigation",
		Content:  "The system's main features live here. From the dashboard you can reach detection, legal evaluation and more.",
	},
	{
		Selector: `[data-tour-id="stat-cards"]`,
		Title:    "Dashboard overview",
		Content:  "A one-glance view of the risk status across all registered works: totals, high-risk cases and pending actions.",
	},
	{
		Selector: `[data-tour-id="llm-risk-list"]`,
		Title:    "LLM risk ranking",
		Content:  "Risk for each monitored large language model, ranked. Select a provider to see its related analysis.",
	},
	{
		Selector: `[data-tour-id="high-risk-table"]`,
		Title:    "High-risk case list",
		Content:  "Cases that need particular attention are listed here. You can filter by publication status.",
	},
	{
		NavigateTo: string(nav.ViewDetection),
		Selector:   `[data-tour-id="new-investigation-panel"]`,
		Title:      "Detection: new investigation",
		Content:    "Start a new investigation here. Upload a PDF or enter a domain and the AI agent begins its analysis.",
	},
	{
		Selector: `[data-tour-id="agent-workspace"]`,
		Title:    "AI agent workspace",
		Content:  "Once an investigation starts, the agent's activity streams here in real time. The full report appears when it completes.",
	},
	{
		NavigateTo: string(nav.ViewEvaluation),
		Selector:   `[data-tour-id="risk-scoreboard"]`,
		Title:      "Legal evaluation",
		Content:    "Legal risk scores are derived from the analysis results, weighing reliance and similarity to assess infringement.",
	},
	{
		Selector: `[data-tour-id="damage-chart"]`,
		Title:    "Damage simulation",
		Content:  "Simulates the estimated settlement amount should infringement be found, and how a litigation claim would develop.",
	},
	{
		NavigateTo: string(nav.ViewReports),
		Selector:   `[data-tour-id="report-history"]`,
		Title:      "Report history",
		Content:    "Every generated report is listed here for re-download or review at any time.",
	},
	{
		NavigateTo: string(nav.ViewLegal),
		Selector:   `[data-tour-id="evidence-section"]`,
		Title:      "Evidence and legal action",
		Content:    "Review the audit trail for each case and download the evidence bundle for court submission.",
	},
	{
		Title:   "That's the tour",
		Content: "You now know the main features. Explore freely, and click the help button in the sidebar to see the tour again.",
	},
}
