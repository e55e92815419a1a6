package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// urlDangerousChars could break out of an argument handed to a browser
// launcher.
var urlDangerousChars = []string{";", "&", "|", "`", "$", "(", ")", "<", ">", "\"", "'", "\\", "\n", "\r"}

// ValidateURL accepts absolute http(s) URLs that are safe to pass to the
// system browser launcher or to print in a sitemap.
func ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: %s (only http/https allowed)", parsed.Scheme)
	}

	for _, char := range urlDangerousChars {
		if strings.Contains(rawURL, char) {
			return fmt.Errorf("URL contains dangerous character: %s", char)
		}
	}
	if strings.Contains(rawURL, " ") {
		return fmt.Errorf("URL contains spaces")
	}

	if parsed.Host == "" {
		return fmt.Errorf("URL must have a valid hostname")
	}

	return nil
}
