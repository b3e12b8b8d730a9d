package app

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFlagName = "config"

func addConfigFlag(fs *pflag.FlagSet) {
	fs.StringP(configFlagName, "c", "", "Path to a YAML configuration file. Flags take precedence.")
}

// loadConfig merges an optional config file under the parsed flags and
// unmarshals the result back into opts. Keys in the file follow the flag
// names, with dots as nesting (queue.backend becomes queue: backend:).
func loadConfig(fs *pflag.FlagSet, opts CliOptions) error {
	v := viper.New()

	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	if path, _ := fs.GetString(configFlagName); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(opts); err != nil {
		return fmt.Errorf("failed to apply configuration: %w", err)
	}

	return nil
}
