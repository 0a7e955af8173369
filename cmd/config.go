package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/statisticsnorway/dapla-republish/pkg/republish"
)

// Config holds all configuration for the CLI.
type Config struct {
	// LogLevel for the application-wide logger (e.g. "debug", "info", "warn", "error").
	LogLevel string `mapstructure:"log_level"`

	// ProjectID is the team's standard GCP project ID.
	ProjectID string `mapstructure:"project_id"`

	// CredentialsFile optionally points at a service account key file.
	CredentialsFile string `mapstructure:"credentials_file"`

	// Publisher holds settings for the batch publisher.
	Publisher struct {
		ResultTimeout time.Duration `mapstructure:"result_timeout"`
	} `mapstructure:"publisher"`
}

// LoadConfig resolves the CLI configuration: defaults first, then the
// optional YAML file named by the --config flag, then DAPLA_* environment
// variables, with explicitly set command-line flags winning over everything.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// --- 1. Set Defaults ---
	// Empty defaults also register the keys so environment overrides apply.
	v.SetDefault("log_level", "info")
	v.SetDefault("project_id", "")
	v.SetDefault("credentials_file", "")
	v.SetDefault("publisher.result_timeout", republish.DefaultResultTimeout)

	// --- 2. Read the optional config file ---
	if flags != nil {
		if configFile, err := flags.GetString("config"); err == nil && configFile != "" {
			v.SetConfigFile(configFile)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
			}
		}
	}

	// --- 3. Environment variable support ---
	// e.g. DAPLA_PROJECT_ID overrides project_id and
	// DAPLA_PUBLISHER_RESULT_TIMEOUT overrides publisher.result_timeout.
	v.SetEnvPrefix("DAPLA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// --- 4. Unmarshal, then apply flag overrides ---
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if flags != nil {
		applyFlagOverrides(&cfg, flags)
	}
	return &cfg, nil
}

// applyFlagOverrides maps the dashed flag names onto the config struct.
// Only flags the user actually set take effect, so file and environment
// values survive the flag defaults.
func applyFlagOverrides(cfg *Config, flags *pflag.FlagSet) {
	if f := flags.Lookup("project-id"); f != nil && f.Changed {
		cfg.ProjectID = f.Value.String()
	}
	if f := flags.Lookup("log-level"); f != nil && f.Changed {
		cfg.LogLevel = f.Value.String()
	}
	if f := flags.Lookup("credentials-file"); f != nil && f.Changed {
		cfg.CredentialsFile = f.Value.String()
	}
	if f := flags.Lookup("result-timeout"); f != nil && f.Changed {
		if d, err := time.ParseDuration(f.Value.String()); err == nil && d > 0 {
			cfg.Publisher.ResultTimeout = d
		}
	}
}
