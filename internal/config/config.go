// Package config loads livedoc settings with Viper from a .livedoc.yml
// file, LIVEDOC_ environment variables and command-line flags.
//
// Precedence, highest first: flags bound to Viper keys, environment
// variables such as LIVEDOC_SERVER_PORT, the configuration file, defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	lderrors "github.com/conneroisu/livedoc/internal/errors"
	"github.com/conneroisu/livedoc/internal/validation"
)

// EnvPrefix prefixes every environment variable read by livedoc.
const EnvPrefix = "LIVEDOC"

// DefaultConfigName is the configuration file searched in the working
// directory, without extension.
const DefaultConfigName = ".livedoc"

type Config struct {
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Site        SiteConfig        `yaml:"site" mapstructure:"site"`
	Build       BuildConfig       `yaml:"build" mapstructure:"build"`
	Development DevelopmentConfig `yaml:"development" mapstructure:"development"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

type ServerConfig struct {
	Port int    `yaml:"port" mapstructure:"port"`
	Host string `yaml:"host" mapstructure:"host"`
	Open bool   `yaml:"open" mapstructure:"open"`
	// AllowedOrigins are host patterns accepted on the live reload socket.
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

type SiteConfig struct {
	Title string `yaml:"title" mapstructure:"title"`
	// Readme is shown on the home page; empty uses the built-in README.
	Readme string `yaml:"readme" mapstructure:"readme"`
	// SourceDir holds page sources read in place of the embedded copies.
	SourceDir  string `yaml:"source_dir" mapstructure:"source_dir"`
	ImportLine string `yaml:"import_line" mapstructure:"import_line"`
	CodeStyle  string `yaml:"code_style" mapstructure:"code_style"`
}

type BuildConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Clean     bool   `yaml:"clean" mapstructure:"clean"`
}

type DevelopmentConfig struct {
	HotReload    bool          `yaml:"hot_reload" mapstructure:"hot_reload"`
	ErrorOverlay bool          `yaml:"error_overlay" mapstructure:"error_overlay"`
	Debounce     time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// SetDefaults registers the default of every key, which also lets
// AutomaticEnv resolve the matching environment variables.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.open", false)
	v.SetDefault("server.allowed_origins", []string{"localhost:*", "127.0.0.1:*"})

	v.SetDefault("site.title", "livedoc")
	v.SetDefault("site.readme", "")
	v.SetDefault("site.source_dir", "")
	v.SetDefault("site.import_line", "")
	v.SetDefault("site.code_style", "friendly")

	v.SetDefault("build.output_dir", "dist")
	v.SetDefault("build.base_url", "")
	v.SetDefault("build.clean", false)

	v.SetDefault("development.hot_reload", true)
	v.SetDefault("development.error_overlay", true)
	v.SetDefault("development.debounce", 100*time.Millisecond)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Init points v at the configuration file and enables environment
// overrides. cfgFile wins over LIVEDOC_CONFIG_FILE, which wins over
// .livedoc.yml in the working directory. It returns the file used, or ""
// when none was read.
func Init(v *viper.Viper, cfgFile string) (string, error) {
	switch {
	case cfgFile != "":
		v.SetConfigFile(cfgFile)
	case os.Getenv(EnvPrefix+"_CONFIG_FILE") != "":
		v.SetConfigFile(os.Getenv(EnvPrefix + "_CONFIG_FILE"))
	default:
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(DefaultConfigName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		// An explicitly named file must exist and parse.
		return "", lderrors.WrapConfig(err, lderrors.ErrCodeConfigInvalid, "cannot read configuration file")
	}
	return v.ConfigFileUsed(), nil
}

// Load decodes and validates the configuration held by the global Viper
// instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom decodes and validates the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, lderrors.WrapConfig(err, lderrors.ErrCodeConfigInvalid, "cannot decode configuration")
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, lderrors.WrapConfig(err, lderrors.ErrCodeConfigInvalid, "invalid configuration")
	}
	return &cfg, nil
}

// Address is the host:port the server listens on.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// WatchPaths lists the files and directories whose changes trigger a
// rebuild in the dev server.
func (c *Config) WatchPaths() []string {
	var paths []string
	if c.Site.Readme != "" {
		paths = append(paths, c.Site.Readme)
	}
	if c.Site.SourceDir != "" {
		paths = append(paths, c.Site.SourceDir)
	}
	return paths
}

// validateConfig validates configuration values for security and correctness
func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := validateSiteConfig(&config.Site); err != nil {
		return fmt.Errorf("site config: %w", err)
	}
	if err := validateBuildConfig(&config.Build); err != nil {
		return fmt.Errorf("build config: %w", err)
	}
	if config.Development.Debounce < 0 {
		return fmt.Errorf("development config: negative debounce %s", config.Development.Debounce)
	}
	return nil
}

var hostDangerousChars = []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\"}

func validateServerConfig(config *ServerConfig) error {
	// Port 0 lets the system pick a port, which tests rely on.
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port %d is not in valid range 0-65535", config.Port)
	}
	if config.Host != "" {
		for _, char := range hostDangerousChars {
			if strings.Contains(config.Host, char) {
				return fmt.Errorf("host contains dangerous character: %s", char)
			}
		}
	}
	return nil
}

func validateSiteConfig(config *SiteConfig) error {
	if config.Readme != "" {
		if err := validatePath(config.Readme); err != nil {
			return fmt.Errorf("invalid readme '%s': %w", config.Readme, err)
		}
	}
	if config.SourceDir != "" {
		if err := validatePath(config.SourceDir); err != nil {
			return fmt.Errorf("invalid source_dir '%s': %w", config.SourceDir, err)
		}
	}
	if strings.ContainsAny(config.ImportLine, "\n\r") {
		return fmt.Errorf("import_line must be a single line")
	}
	return nil
}

func validateBuildConfig(config *BuildConfig) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output_dir is empty")
	}
	if err := validatePath(config.OutputDir); err != nil {
		return fmt.Errorf("invalid output_dir '%s': %w", config.OutputDir, err)
	}
	if config.BaseURL != "" {
		if err := validation.ValidateURL(config.BaseURL); err != nil {
			return fmt.Errorf("invalid base_url: %w", err)
		}
	}
	return nil
}

// validatePath validates a file path for security
func validatePath(path string) error {
	return validation.ValidatePath(path)
}
