package llm

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"google.golang.org/genai"

	"github.com/bunshodo/leakscope/internal/config"
	"github.com/bunshodo/leakscope/internal/models"

	genkitcore "github.com/firebase/genkit/go/core"
)

// Client is the typed boundary to the Gemini backend. Every analysis is a
// genkit flow with a schema-constrained response; grounded web search goes
// through the genai SDK directly because it needs the search tool and the
// grounding citations of the raw response.
type Client struct {
	g           *genkit.Genkit
	search      *genai.Client
	searchModel string

	traceFlow     *genkitcore.Flow[*TraceRequest, *TraceResponse, struct{}]
	vulnFlow      *genkitcore.Flow[*VulnScanRequest, *VulnScanResponse, struct{}]
	synthesisFlow *genkitcore.Flow[*SynthesisRequest, *models.StructuredReport, struct{}]
	estimateFlow  *genkitcore.Flow[*EstimationRequest, *models.FixEstimation, struct{}]
	htmlFlow      *genkitcore.Flow[*ReportHTMLRequest, *ReportHTMLResponse, struct{}]
	quickFlow     *genkitcore.Flow[*QuickLookRequest, *QuickLookResponse, struct{}]
	auditFlow     *genkitcore.Flow[*AuditTrailRequest, *AuditTrailResponse, struct{}]
	legalFlow     *genkitcore.Flow[*LegalSummaryRequest, *LegalSummaryResponse, struct{}]
}

// New initializes genkit with the GoogleAI plugin and registers all flows.
func New(ctx context.Context, cfg config.LLMConfig) (*Client, error) {
	g := genkit.Init(
		ctx,
		genkit.WithPlugins(
			&googlegenai.GoogleAI{
				APIKey: cfg.APIKey,
			},
		),
		genkit.WithDefaultModel(cfg.Model),
	)

	searchClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create search client: %w", err)
	}

	return &Client{
		g:             g,
		search:        searchClient,
		searchModel:   cfg.SearchModel,
		traceFlow:     DefineTraceFlow(g, cfg.Model),
		vulnFlow:      DefineVulnScanFlow(g, cfg.Model),
		synthesisFlow: DefineSynthesisFlow(g, cfg.Model),
		estimateFlow:  DefineEstimationFlow(g, cfg.Model),
		htmlFlow:      DefineReportHTMLFlow(g, cfg.Model),
		quickFlow:     DefineQuickLookFlow(g, cfg.Model),
		auditFlow:     DefineAuditTrailFlow(g, cfg.Model),
		legalFlow:     DefineLegalSummaryFlow(g, cfg.Model),
	}, nil
}

// AnalyzeTraces checks whether the target content plausibly appears in the
// training data of the major LLM providers.
func (c *Client) AnalyzeTraces(ctx context.Context, target models.InvestigationTarget) ([]models.LlmTraceFinding, error) {
	resp, err := c.traceFlow.Run(ctx, &TraceRequest{
		Topic:        target.Topic(),
		DocumentText: target.DocumentText,
	})
	if err != nil {
		return nil, err
	}
	return resp.Findings, nil
}

// ScanDomain reports publicly observable security concerns for a domain.
func (c *Client) ScanDomain(ctx context.Context, domain string) ([]models.DomainVulnerabilityFinding, error) {
	resp, err := c.vulnFlow.Run(ctx, &VulnScanRequest{Domain: domain})
	if err != nil {
		return nil, err
	}
	return resp.Findings, nil
}

// Synthesize merges all stage outputs into the final structured report.
func (c *Client) Synthesize(ctx context.Context, req *SynthesisRequest) (*models.StructuredReport, error) {
	return c.synthesisFlow.Run(ctx, req)
}

// Estimate turns a finished report into the three-plan cost estimate.
func (c *Client) Estimate(ctx context.Context, report *models.StructuredReport) (*models.FixEstimation, error) {
	return c.estimateFlow.Run(ctx, &EstimationRequest{Report: report})
}

// RenderReportHTML produces the rasterizer-safe HTML rendition of a report.
// The returned string may be a fragment; the report package wraps it.
func (c *Client) RenderReportHTML(ctx context.Context, report *models.StructuredReport, recipient string) (string, error) {
	resp, err := c.htmlFlow.Run(ctx, &ReportHTMLRequest{Report: report, Recipient: recipient})
	if err != nil {
		return "", err
	}
	return resp.HTML, nil
}

// QuickLookSummary generates the short teaser summary for the public
// quick-investigation page.
func (c *Client) QuickLookSummary(ctx context.Context, target string) (string, error) {
	resp, err := c.quickFlow.Run(ctx, &QuickLookRequest{Target: target})
	if err != nil {
		return "", err
	}
	return resp.Summary, nil
}

// LegalSummary produces the legal evaluation of a case from its record
// and similarity traces.
func (c *Client) LegalSummary(ctx context.Context, caseData models.Case, traces []models.Trace) (*LegalSummaryResponse, error) {
	return c.legalFlow.Run(ctx, &LegalSummaryRequest{Case: caseData, Traces: traces})
}

// GenerateAuditTrail produces the case audit timeline for the legal view.
func (c *Client) GenerateAuditTrail(ctx context.Context, caseData models.Case) ([]models.AuditEvent, error) {
	resp, err := c.auditFlow.Run(ctx, &AuditTrailRequest{Case: caseData})
	if err != nil {
		return nil, err
	}
	return resp.Events, nil
}
