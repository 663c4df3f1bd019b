package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matzehuels/cargo-abc/pkg/errors"
	"github.com/matzehuels/cargo-abc/pkg/manifest"
)

// Config keys. They double as flag names and, upper-cased with dashes
// replaced, as environment variable suffixes.
const (
	keyPath     = "path"
	keyTables   = "tables"
	keyExclude  = "exclude"
	keyCheck    = "check"
	keyDiff     = "diff"
	keyDryRun   = "dry-run"
	keyFailFast = "fail-fast"
)

// localConfigName is looked up in the scan root.
const localConfigName = ".cargo-abc.toml"

// config is the resolved configuration of one run.
type config struct {
	File     string // config file that was read, empty if none
	Path     string
	Tables   []string
	Exclude  []string
	Check    bool
	Diff     bool
	DryRun   bool
	FailFast bool
}

// loadConfig resolves the configuration. Precedence, highest first: flags set
// on the command line, CARGO_ABC_* environment variables, the config file,
// built-in defaults. An explicit configFile must exist; the implicit
// locations are optional.
func loadConfig(flags *pflag.FlagSet, configFile string) (*config, error) {
	v := viper.New()

	v.SetDefault(keyPath, ".")
	v.SetDefault(keyTables, manifest.DefaultTables())
	v.SetDefault(keyExclude, []string{})

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range []string{keyPath, keyTables, keyExclude, keyCheck, keyDiff, keyDryRun, keyFailFast} {
		if f := flags.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "bind flag --%s", key)
			}
		}
	}

	file := configFile
	if file == "" {
		file = findConfigFile(v.GetString(keyPath))
	} else if _, err := os.Stat(file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "config file not found: %s", file)
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to load config %s", file)
		}
	}

	return &config{
		File:     file,
		Path:     v.GetString(keyPath),
		Tables:   splitList(v.GetStringSlice(keyTables)),
		Exclude:  splitList(v.GetStringSlice(keyExclude)),
		Check:    v.GetBool(keyCheck),
		Diff:     v.GetBool(keyDiff),
		DryRun:   v.GetBool(keyDryRun),
		FailFast: v.GetBool(keyFailFast),
	}, nil
}

// findConfigFile returns the first existing implicit config file: one in the
// scan root, then the user config. It returns "" when neither exists.
func findConfigFile(root string) string {
	candidates := []string{filepath.Join(root, localConfigName)}
	if dir, err := configDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "config.toml"))
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// configDir returns the config directory using XDG standard (~/.config/cargo-abc/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// splitList flattens comma-separated items, as environment variables
// arrive as a single string, and drops empty entries.
func splitList(items []string) []string {
	out := []string{}
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
