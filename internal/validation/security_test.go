package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		expectErr bool
	}{
		{"relative file", "README.md", false},
		{"nested dir", "docs/pages", false},
		{"absolute", "/tmp/livedoc/dist", false},
		{"dots in name", "notes..md", false},
		{"empty", "", true},
		{"parent", "../dist", true},
		{"deep parent", "docs/../../etc", true},
		{"semicolon", "dist;rm", true},
		{"substitution", "pages$(id)", true},
		{"quote", "it's", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateOrigin(t *testing.T) {
	patterns := []string{"localhost:*", "docs.example.com"}

	tests := []struct {
		name      string
		origin    string
		host      string
		expectErr bool
	}{
		{"pattern port", "http://localhost:3000", "127.0.0.1:8080", false},
		{"exact pattern", "https://docs.example.com", "127.0.0.1:8080", false},
		{"same host", "http://10.0.0.5:8080", "10.0.0.5:8080", false},
		{"case insensitive", "http://LOCALHOST:3000", "x", false},
		{"other host", "http://evil.com", "localhost:8080", true},
		{"subdomain", "http://evil.docs.example.com", "localhost:8080", true},
		{"bad scheme", "ftp://localhost:8080", "localhost:8080", true},
		{"missing", "", "localhost:8080", true},
		{"null origin", "null", "localhost:8080", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOrigin(tt.origin, tt.host, patterns)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.Error(t, ValidateOrigin("http://localhost", "x", []string{"["}))
}
