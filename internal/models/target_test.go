package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetTopic(t *testing.T) {
	tests := []struct {
		name   string
		target InvestigationTarget
		want   string
	}{
		{
			name:   "document name drives the topic",
			target: InvestigationTarget{DocumentName: "annual_security_review.pdf", DocumentText: "x"},
			want:   "annual security review",
		},
		{
			name:   "document beats domain",
			target: InvestigationTarget{Domain: "example.com", DocumentName: "draft.txt", DocumentText: "x"},
			want:   "draft",
		},
		{
			name:   "domain fallback",
			target: InvestigationTarget{Domain: "example.co.jp"},
			want:   "example.co.jp",
		},
		{
			name:   "empty target",
			target: InvestigationTarget{},
			want:   "the provided material",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.target.Topic())
		})
	}
}

func TestTargetPredicates(t *testing.T) {
	assert.True(t, InvestigationTarget{}.IsEmpty())
	assert.False(t, InvestigationTarget{Domain: "example.com"}.IsEmpty())

	both := InvestigationTarget{Domain: "example.com", DocumentName: "a.pdf", DocumentText: "x"}
	assert.True(t, both.HasDomain())
	assert.True(t, both.HasDocument())
	assert.Equal(t, "example.com and a.pdf", both.Label())
}
