package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/conneroisu/livedoc/internal/logging"
)

// ValidationError represents a configuration validation error with suggestions
type ValidationError struct {
	Field       string
	Value       interface{}
	Message     string
	Suggestions []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the result of configuration validation
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// String returns a formatted string of all validation issues
func (vr *ValidationResult) String() string {
	var builder strings.Builder
	write := func(title string, issues []ValidationError) {
		if len(issues) == 0 {
			return
		}
		builder.WriteString(title + ":\n")
		for _, issue := range issues {
			builder.WriteString(fmt.Sprintf("  • %s: %s\n", issue.Field, issue.Message))
			for _, suggestion := range issue.Suggestions {
				builder.WriteString(fmt.Sprintf("    - %s\n", suggestion))
			}
		}
	}
	write("Validation errors", vr.Errors)
	write("Validation warnings", vr.Warnings)
	return builder.String()
}

func (vr *ValidationResult) addError(field string, value interface{}, msg string, suggestions ...string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Value: value, Message: msg, Suggestions: suggestions})
}

func (vr *ValidationResult) addWarning(field string, value interface{}, msg string, suggestions ...string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Value: value, Message: msg, Suggestions: suggestions})
}

// ValidateConfigWithDetails reports every problem of config, including
// warnings that do not stop livedoc from running.
func ValidateConfigWithDetails(config *Config) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	validateServerConfigDetails(&config.Server, result)
	validateSiteConfigDetails(&config.Site, result)
	validateBuildConfigDetails(&config.Build, result)
	validateLogConfigDetails(&config.Log, result)

	result.Valid = !result.HasErrors()
	return result
}

func validateServerConfigDetails(config *ServerConfig, result *ValidationResult) {
	if err := validateServerConfig(config); err != nil {
		result.addError("server", config, err.Error(),
			"Use a port between 1024-65535 for non-privileged access",
			"Use a plain host name or IP address such as localhost or 0.0.0.0",
		)
		return
	}
	if config.Port > 0 && config.Port < 1024 {
		result.addWarning("server.port", config.Port, "port below 1024 requires elevated privileges",
			"Common development ports: 3000, 8080, 8000")
	}
	if config.Host == "0.0.0.0" {
		result.addWarning("server.host", config.Host, "server is reachable from other machines")
	}
	if len(config.AllowedOrigins) == 0 {
		result.addWarning("server.allowed_origins", config.AllowedOrigins, "no origin may open the live reload socket",
			"Add localhost:* to allow local browsers")
	}
}

func validateSiteConfigDetails(config *SiteConfig, result *ValidationResult) {
	if err := validateSiteConfig(config); err != nil {
		result.addError("site", config, err.Error())
		return
	}
	if config.Readme != "" {
		if _, err := os.Stat(config.Readme); err != nil {
			result.addWarning("site.readme", config.Readme, "readme file not found",
				"Leave site.readme empty to use the built-in README")
		}
	}
	if config.SourceDir != "" {
		if info, err := os.Stat(config.SourceDir); err != nil || !info.IsDir() {
			result.addWarning("site.source_dir", config.SourceDir, "source directory not found; embedded page sources are used")
		}
	}
	if config.CodeStyle != "" && !knownStyle(config.CodeStyle) {
		result.addWarning("site.code_style", config.CodeStyle, "unknown code style, the fallback style is used",
			"Known styles include friendly, monokai, github and dracula")
	}
}

func validateBuildConfigDetails(config *BuildConfig, result *ValidationResult) {
	if err := validateBuildConfig(config); err != nil {
		result.addError("build", config, err.Error(),
			"Use a relative directory such as dist")
	}
}

func validateLogConfigDetails(config *LogConfig, result *ValidationResult) {
	if _, err := logging.ParseLevel(config.Level); err != nil {
		result.addError("log.level", config.Level, err.Error(), "Use debug, info, warn or error")
	}
	if config.Format != "" && config.Format != "text" && config.Format != "json" {
		result.addError("log.format", config.Format, "format must be text or json")
	}
}

func knownStyle(name string) bool {
	for _, n := range styles.Names() {
		if n == name {
			return true
		}
	}
	return false
}
