package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(t.TempDir()))

	assert.Equal(t, "info", LogLevel())
	assert.Equal(t, uint32(1<<20), Limits().MaxCount)
	enc, err := SnippetEncoding()
	require.NoError(t, err)
	assert.Equal(t, charmap.Windows1252, enc)
}

func TestLoad_EmptyDir(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(""))
	assert.Equal(t, "info", LogLevel())
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"maxCount": 64,
		"snippetEncoding": "iso-8859-2"
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(cfg), 0644))

	require.NoError(t, Load(dir))

	assert.Equal(t, "debug", LogLevel())
	assert.Equal(t, uint32(64), Limits().MaxCount)
	enc, err := SnippetEncoding()
	require.NoError(t, err)
	assert.Equal(t, charmap.ISO8859_2, enc)
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"logLevel":`), 0644))

	err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("TPPDUMP_MAXCOUNT", "12")

	require.NoError(t, Load(t.TempDir()))
	assert.Equal(t, uint32(12), Limits().MaxCount)
}

func TestSnippetEncoding_Unknown(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("snippetEncoding", "klingon")

	_, err := SnippetEncoding()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "klingon")
}

func TestSnippetEncoding_MultiByteRejected(t *testing.T) {
	for _, name := range []string{"utf-8", "shift_jis", "gbk"} {
		t.Run(name, func(t *testing.T) {
			t.Cleanup(viper.Reset)
			viper.Set("snippetEncoding", name)

			_, err := SnippetEncoding()
			assert.ErrorIs(t, err, ErrMultiByteEncoding)
		})
	}
}
