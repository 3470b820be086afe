package models

import "time"

// ProgressKind classifies entries in the investigation activity log.
type ProgressKind string

const (
	ProgressStatus     ProgressKind = "status"
	ProgressSuccess    ProgressKind = "success"
	ProgressError      ProgressKind = "error"
	ProgressInfo       ProgressKind = "info"
	ProgressLlmResult  ProgressKind = "llm-result"
	ProgressVulnResult ProgressKind = "vuln-result"
)

// ProgressEvent is one entry in the append-only activity log of an
// investigation run. Payload carries stage results for the result kinds.
type ProgressEvent struct {
	Kind      ProgressKind `json:"kind"`
	Message   string       `json:"message"`
	Payload   any          `json:"payload,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// ProgressSink receives progress events synchronously, in emission order.
type ProgressSink func(ProgressEvent)
