package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"

	codec "github.com/oy3o/foxcodec"
)

// FileName is the config file looked up in the config directory.
const FileName = "tppdump.cfg.json"

// ErrMultiByteEncoding is returned for a snippetEncoding that is not a single-byte code page.
var ErrMultiByteEncoding = errors.New("not a single-byte code page")

// Load sets default values, enables TPPDUMP_* environment overrides and reads
// FileName from configDir when it exists. An empty configDir or a missing
// file leaves the defaults in place.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("maxCount", codec.DefaultLimits.MaxCount)
	viper.SetDefault("snippetEncoding", "windows-1252")

	viper.SetEnvPrefix("TPPDUMP")
	viper.AutomaticEnv()

	if configDir == "" {
		return nil
	}
	path := filepath.Join(configDir, FileName)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	viper.SetConfigFile(path)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// LogLevel returns the configured zerolog level name.
func LogLevel() string {
	return viper.GetString("logLevel")
}

// Limits returns the decoder limits.
func Limits() codec.Limits {
	return codec.Limits{MaxCount: viper.GetUint32("maxCount")}
}

// SnippetEncoding resolves the configured route-event snippet code page.
// Only single-byte code pages can fill the fixed snippet buffer.
func SnippetEncoding() (encoding.Encoding, error) {
	name := viper.GetString("snippetEncoding")
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("snippetEncoding %q: %w", name, err)
	}
	if _, ok := enc.(*charmap.Charmap); !ok {
		return nil, fmt.Errorf("snippetEncoding %q: %w", name, ErrMultiByteEncoding)
	}
	return enc, nil
}
