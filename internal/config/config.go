package config

import (
	"os"
	"path/filepath"
	"time"

	"oncall-report/internal/pagerduty"
	"oncall-report/internal/stats"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	DefaultCredentialName = "pagerduty_api_token"
	DefaultTemplate       = "template.md"

	// PathEnvVar points at an alternative defaults file.
	PathEnvVar = "ONCALL_REPORT_CONFIG"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Path      string
	Report    ReportConfig
	PagerDuty pagerduty.Config
}

// ReportConfig is the effective report configuration after merging the
// defaults file, the environment and command-line flags. The keys match the
// ones historically used in oncall-tools.conf.yaml.
type ReportConfig struct {
	Timezone        string   `mapstructure:"timezone" yaml:"timezone,omitempty"`
	CutoverWeekday  int      `mapstructure:"cutover_weekday" yaml:"cutover_weekday"`
	CutoverTime     string   `mapstructure:"cutover_time" yaml:"cutover_time"`
	CredentialName  string   `mapstructure:"pd_api_token" yaml:"pd_api_token"`
	PagerDutyURL    string   `mapstructure:"pd_url" yaml:"pd_url"`
	AllowedServices []string `mapstructure:"allowed_services" yaml:"allowed_services,omitempty"`
	Template        string   `mapstructure:"template" yaml:"template"`
	OutputFile      string   `mapstructure:"output_filename" yaml:"output_filename,omitempty"`
	Edit            bool     `mapstructure:"edit" yaml:"edit"`
	Copy            bool     `mapstructure:"copy" yaml:"copy"`
	Open            bool     `mapstructure:"open" yaml:"open"`
	Summary         bool     `mapstructure:"summary" yaml:"summary"`
}

// FlagKeys maps command-line flag names to configuration keys.
var FlagKeys = map[string]string{
	"tz":               "timezone",
	"cutover-weekday":  "cutover_weekday",
	"cutover-time":     "cutover_time",
	"pd-api-token":     "pd_api_token",
	"pd-url":           "pd_url",
	"allowed-services": "allowed_services",
	"template":         "template",
	"output-file":      "output_filename",
	"edit":             "edit",
	"copy":             "copy",
	"open":             "open",
	"summary":          "summary",
}

// DefaultPath returns ~/.etc/oncall-tools.conf.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".etc", "oncall-tools.conf.yaml")
	}
	return filepath.Join(home, ".etc", "oncall-tools.conf.yaml")
}

// SetDefaults registers built-in defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("timezone", "")
	v.SetDefault("cutover_weekday", 0)
	v.SetDefault("cutover_time", stats.DefaultCutoverTime)
	v.SetDefault("pd_api_token", DefaultCredentialName)
	v.SetDefault("pd_url", pagerduty.DefaultBaseURL)
	v.SetDefault("allowed_services", []string{})
	v.SetDefault("template", DefaultTemplate)
	v.SetDefault("output_filename", "")
	v.SetDefault("edit", false)
	v.SetDefault("copy", false)
	v.SetDefault("open", false)
	v.SetDefault("summary", false)

	_ = v.BindEnv("pd_url", "PAGERDUTY_URL")
}

// Load merges .env, the YAML defaults file at path and whatever flags are
// already bound on v. A missing defaults file is not an error.
func Load(v *viper.Viper, path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables")
	}

	if path == "" {
		path = getEnv(PathEnvVar, DefaultPath())
	}

	SetDefaults(v)

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, goerr.Wrap(err, "failed to read configuration file", goerr.V("path", path))
		}
		log.Debug().Str("path", path).Msg("Loaded defaults file")
	} else if os.IsNotExist(err) {
		log.Debug().Str("path", path).Msg("No defaults file, using built-in defaults")
	} else {
		return nil, goerr.Wrap(err, "failed to stat configuration file", goerr.V("path", path))
	}

	var rc ReportConfig
	if err := v.Unmarshal(&rc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode configuration", goerr.V("path", path))
	}

	return &AppConfig{
		Path:   path,
		Report: rc,
		PagerDuty: pagerduty.Config{
			BaseURL: rc.PagerDutyURL,
		},
	}, nil
}

// Location resolves the report timezone; empty means the local zone.
func (c ReportConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, goerr.Wrap(err, "unknown timezone", goerr.V("timezone", c.Timezone))
	}
	return loc, nil
}

// Cutover returns the configured week boundary.
func (c ReportConfig) Cutover() stats.Cutover {
	return stats.Cutover{
		Weekday: c.CutoverWeekday,
		Time:    c.CutoverTime,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
