package investigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "bare domain", in: "example.co.jp", want: "example.co.jp"},
		{name: "uppercase", in: "Example.COM", want: "example.com"},
		{name: "with scheme", in: "https://example.com/path?q=1", want: "example.com"},
		{name: "with port", in: "example.com:8443", want: "example.com"},
		{name: "with path no scheme", in: "example.com/about", want: "example.com"},
		{name: "subdomain kept", in: "docs.research.example.co.jp", want: "docs.research.example.co.jp"},
		{name: "whitespace", in: "  example.com  ", want: "example.com"},
		{name: "empty", in: "", wantErr: true},
		{name: "no dot", in: "localhost", wantErr: true},
		{name: "garbage", in: "not a domain", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDomain(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
