package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is prepended to environment overrides, e.g. DOCMIGRATE_SITE_BASE_URL.
const EnvPrefix = "DOCMIGRATE"

// Manager loads configuration from defaults, a config file and the
// environment, in increasing order of precedence.
type Manager struct {
	v      *viper.Viper
	config *Config
}

// NewManager creates a config manager and loads the initial config.
// If cfgFile is empty, config.yaml is looked up in searchDirs; a missing
// config file is not an error.
func NewManager(cfgFile string, searchDirs ...string) (*Manager, error) {
	cm := &Manager{v: viper.New()}

	if err := cm.initViper(cfgFile, searchDirs); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile string, searchDirs []string) error {
	v := cm.v
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		// An explicit config file must exist.
		if _, err := os.Stat(cfgFile); err != nil {
			return fmt.Errorf("config file %s: %w", cfgFile, err)
		}
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, dir := range searchDirs {
			v.AddConfigPath(dir)
		}
	}

	// Try to read config file (not required)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// setDefaults registers every leaf key so env overrides and partial config
// files merge with the defaults.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("reconcile.delimiter", d.Reconcile.Delimiter)
	v.SetDefault("reconcile.separator", d.Reconcile.Separator)

	v.SetDefault("site.base_url", d.Site.BaseURL)
	v.SetDefault("site.data_url", d.Site.DataURL)
	v.SetDefault("site.format", d.Site.Format)
	v.SetDefault("site.html_selector", d.Site.HTMLSelector)

	v.SetDefault("fetch.timeout_seconds", d.Fetch.TimeoutSeconds)
	v.SetDefault("fetch.max_retries", d.Fetch.MaxRetries)
	v.SetDefault("fetch.retry_delay_ms", d.Fetch.RetryDelayMS)
	v.SetDefault("fetch.rate_limit", d.Fetch.RateLimit)

	replacements := make([]map[string]string, len(d.Rewrite.Replacements))
	for i, r := range d.Rewrite.Replacements {
		replacements[i] = map[string]string{"from": r.From, "to": r.To}
	}
	v.SetDefault("rewrite.extensions", d.Rewrite.Extensions)
	v.SetDefault("rewrite.replacements", replacements)

	v.SetDefault("emit.template", d.Emit.Template)
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := cm.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get returns the loaded configuration.
func (cm *Manager) Get() *Config {
	return cm.config
}

// ConfigFileUsed returns the config file that was read, if any.
func (cm *Manager) ConfigFileUsed() string {
	return cm.v.ConfigFileUsed()
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# docmigrate configuration
# Every key can be overridden with a DOCMIGRATE_ environment variable,
# e.g. DOCMIGRATE_SITE_DATA_URL or DOCMIGRATE_FETCH_RATE_LIMIT.

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
