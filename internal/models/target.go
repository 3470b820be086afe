package models

import "strings"

// InvestigationTarget identifies what a single investigation run looks at:
// a domain, an uploaded document, or both. Immutable once a run starts.
type InvestigationTarget struct {
	Domain       string `json:"domain,omitempty"`
	DocumentName string `json:"document_name,omitempty"`
	DocumentText string `json:"document_text,omitempty"`
}

func (t InvestigationTarget) HasDomain() bool   { return t.Domain != "" }
func (t InvestigationTarget) HasDocument() bool { return t.DocumentText != "" }

// IsEmpty reports whether neither variant is populated.
func (t InvestigationTarget) IsEmpty() bool { return !t.HasDomain() && !t.HasDocument() }

// Topic derives the human search topic for the target: the document name
// with its extension and underscores stripped, falling back to the domain.
func (t InvestigationTarget) Topic() string {
	if t.DocumentName != "" {
		topic := t.DocumentName
		if idx := strings.LastIndex(topic, "."); idx > 0 {
			topic = topic[:idx]
		}
		return strings.ReplaceAll(topic, "_", " ")
	}
	if t.Domain != "" {
		return t.Domain
	}
	return "the provided material"
}

// Label is the display name used in progress messages and report titles.
func (t InvestigationTarget) Label() string {
	switch {
	case t.HasDomain() && t.DocumentName != "":
		return t.Domain + " and " + t.DocumentName
	case t.HasDomain():
		return t.Domain
	case t.DocumentName != "":
		return t.DocumentName
	default:
		return "unnamed target"
	}
}
