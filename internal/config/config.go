// Package config resolves the session settings from flags, BANKCAT_*
// environment variables and an optional settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings are the resolved options of one import session.
type Settings struct {
	CataloguePath string
	Format        string
	LedgerPath    string // empty disables the ledger export
	LogLevel      string
	LogFormat     string
}

// Setting keys. Nested keys map to environment variables with dots
// replaced by underscores, e.g. BANKCAT_LOGGING_LEVEL.
const (
	KeyCatalogue = "catalogue"
	KeyFormat    = "format"
	KeyLedger    = "ledger"
	KeyLogLevel  = "logging.level"
	KeyLogFormat = "logging.format"
)

// EnvPrefix is prepended to environment variable names.
const EnvPrefix = "BANKCAT"

// DefaultCatalogueName is the catalogue file name in the home directory.
const DefaultCatalogueName = ".bank_statement_importer.yml"

const (
	defaultFormat    = "statement"
	defaultLogLevel  = "warn"
	defaultLogFormat = "console"
)

// Flag names.
const (
	FlagCatalogue = "catalogue"
	FlagFormat    = "format"
	FlagLedger    = "ledger"
	FlagSettings  = "settings"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
)

var flagKeys = map[string]string{
	FlagCatalogue: KeyCatalogue,
	FlagFormat:    KeyFormat,
	FlagLedger:    KeyLedger,
	FlagLogLevel:  KeyLogLevel,
	FlagLogFormat: KeyLogFormat,
}

// RegisterFlags defines the session flags on fs. Defaults are applied by
// Load so that environment and settings file values take precedence
// over them.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagCatalogue, "", "catalogue file (default: $HOME/"+DefaultCatalogueName+")")
	fs.String(FlagFormat, "", "statement format (default: "+defaultFormat+")")
	fs.String(FlagLedger, "", "append categorised entries to this CSV file")
	fs.String(FlagSettings, "", "settings file (YAML)")
	fs.String(FlagLogLevel, "", "log level (debug, info, warn, error) (default: "+defaultLogLevel+")")
	fs.String(FlagLogFormat, "", "log format (console, json) (default: "+defaultLogFormat+")")
}

// Load resolves the settings. Changed flags win over environment
// variables, which win over the settings file, which wins over defaults.
func Load(flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		return Settings{}, fmt.Errorf("failed to get home directory: %w", err)
	}
	v.SetDefault(KeyCatalogue, filepath.Join(home, DefaultCatalogueName))
	v.SetDefault(KeyFormat, defaultFormat)
	v.SetDefault(KeyLedger, "")
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyLogFormat, defaultLogFormat)

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Settings{}, fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := settingsPath(flags); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	return Settings{
		CataloguePath: v.GetString(KeyCatalogue),
		Format:        v.GetString(KeyFormat),
		LedgerPath:    v.GetString(KeyLedger),
		LogLevel:      v.GetString(KeyLogLevel),
		LogFormat:     v.GetString(KeyLogFormat),
	}, nil
}

func settingsPath(flags *pflag.FlagSet) string {
	if flags != nil {
		if f := flags.Lookup(FlagSettings); f != nil && f.Value.String() != "" {
			return f.Value.String()
		}
	}
	return os.Getenv(EnvPrefix + "_SETTINGS")
}
