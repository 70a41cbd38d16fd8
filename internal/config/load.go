package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by [Load].
const EnvPrefix = "MUXINFO"

// envKeys maps config keys to their environment variables.
var envKeys = map[string]string{
	KeyFFmpeg:     EnvPrefix + "_FFMPEG",
	KeyCatalog:    EnvPrefix + "_CATALOG",
	KeyLogLevel:   EnvPrefix + "_LOGLEVEL",
	KeyReportEnv:  EnvPrefix + "_REPORT",
	KeyHideBanner: EnvPrefix + "_HIDE_BANNER",
	KeyColorMode:  EnvPrefix + "_COLOR",
	KeyCPUFlags:   EnvPrefix + "_CPUFLAGS",
	KeyCPUCount:   EnvPrefix + "_CPUCOUNT",
}

// Load resolves the configuration. Precedence, lowest first: defaults, the
// config file, MUXINFO_* environment variables, flags set on fs.
//
// The config file is --config when given, otherwise muxinfo.yaml in the
// user config directory; a missing default file is not an error.
func Load(fs *pflag.FlagSet) (Config, error) {
	d := DefaultConfig()
	v := viper.New()

	v.SetDefault(KeyFFmpeg, d.FFmpegPath)
	v.SetDefault(KeyColorMode, string(d.ColorMode))
	v.SetDefault(KeyCPUCount, d.CPUCount)

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if err := readConfigFile(v); err != nil {
		return Config{}, err
	}

	cfg := Config{
		FFmpegPath:  v.GetString(KeyFFmpeg),
		CatalogFile: v.GetString(KeyCatalog),
		LogLevel:    v.GetString(KeyLogLevel),
		Report:      v.GetBool(KeyReport),
		ReportEnv:   v.GetString(KeyReportEnv),
		ColorMode:   ColorMode(v.GetString(KeyColorMode)),
		HideBanner:  v.GetBool(KeyHideBanner),
		CPUFlags:    v.GetString(KeyCPUFlags),
		CPUCount:    v.GetInt(KeyCPUCount),
		ConfigFile:  v.ConfigFileUsed(),
	}
	if fs != nil {
		applyNegatedFlags(fs, &cfg)
	}
	return cfg, nil
}

func readConfigFile(v *viper.Viper) error {
	if explicit := v.GetString(KeyConfig); explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file at %s: %w", explicit, err)
		}
		return nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	v.SetConfigName("muxinfo")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(dir, "muxinfo"))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file at %s: %w", v.ConfigFileUsed(), err)
	}
	return nil
}
