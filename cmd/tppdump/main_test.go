package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	codec "github.com/oy3o/foxcodec"
	"github.com/oy3o/foxcodec/frt"
	"github.com/oy3o/foxcodec/lba"
)

func setup(t *testing.T) string {
	t.Helper()
	t.Setenv("TPPDUMP_CONFIG_DIR", t.TempDir())
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	set := lba.NewNamedSet([]lba.NamedLocator{
		{Position: codec.Vector4{X: 1, Y: 2, Z: 3, W: 1}, Rotation: codec.Quaternion{W: 1}, LocatorName: 7},
		{Position: codec.Vector4{X: 4, Y: 5, Z: 6, W: 1}, Rotation: codec.Quaternion{W: 1}, LocatorName: 8},
	})
	require.NoError(t, lba.WriteFile(filepath.Join(dir, "gimmick.lba"), set))

	rs := &frt.RouteSet{Routes: []frt.Route{{
		ID: 42,
		Nodes: []frt.RouteNode{
			{Position: codec.Vector3{X: 1}, Default: frt.RouteEvent{ID: 1, Snippet: "walk"}},
			{Position: codec.Vector3{X: 2}, Events: []frt.RouteEvent{{ID: 2, Snippet: "idle"}}},
		},
	}}}
	require.NoError(t, frt.WriteFile(filepath.Join(dir, "patrol.frt"), rs, nil))
	return dir
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestVerify(t *testing.T) {
	dir := setup(t)

	code, out, _ := runCLI("verify", filepath.Join(dir, "gimmick.lba"), filepath.Join(dir, "patrol.frt"))
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "gimmick.lba: ok, 104 B round-trips")
	assert.Contains(t, out, "patrol.frt: ok")
}

func TestVerifyReportsTrailingBytes(t *testing.T) {
	dir := setup(t)
	path := filepath.Join(dir, "gimmick.lba")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append(data, 0xAA), 0o644))

	code, out, _ := runCLI("verify", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "MISMATCH at offset 104")
}

func TestInspect(t *testing.T) {
	dir := setup(t)

	code, out, _ := runCLI("inspect", filepath.Join(dir, "gimmick.lba"), filepath.Join(dir, "patrol.frt"))
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Named locator set, 2 locators")
	assert.Contains(t, out, "1 routes, 2 nodes, 1 events")
}

func TestPositions(t *testing.T) {
	dir := setup(t)

	code, out, _ := runCLI("positions", filepath.Join(dir, "gimmick.lba"))
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"(1, 2, 3, 1)", "(4, 5, 6, 1)"}, strings.Split(strings.TrimSpace(out), "\n"))

	code, out, _ = runCLI("positions", filepath.Join(dir, "patrol.frt"))
	assert.Equal(t, 0, code)
	assert.Equal(t, "(1, 0, 0)\n(2, 0, 0)\n", out)
}

func TestJSON(t *testing.T) {
	dir := setup(t)

	code, out, _ := runCLI("json", filepath.Join(dir, "patrol.frt"))
	assert.Equal(t, 0, code)
	assert.Contains(t, out, `"snippet": "walk"`)
	assert.Contains(t, out, `"id": 42`)
}

func TestFailures(t *testing.T) {
	dir := setup(t)

	t.Run("Usage", func(t *testing.T) {
		code, _, errOut := runCLI("inspect")
		assert.Equal(t, 2, code)
		assert.Contains(t, errOut, "usage: tppdump")

		code, _, _ = runCLI("frobnicate", "x.lba")
		assert.Equal(t, 2, code)
	})

	t.Run("UnknownExtension", func(t *testing.T) {
		path := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("hi"), 0o644))

		code, _, errOut := runCLI("inspect", path)
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "unknown asset format")
	})

	t.Run("CorruptFile", func(t *testing.T) {
		path := filepath.Join(dir, "bad.lba")
		require.NoError(t, os.WriteFile(path, []byte{9, 0, 0, 0, 0, 0, 0, 0}, 0o644))

		code, _, errOut := runCLI("inspect", path)
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "unknown variant")
	})

	t.Run("LimitFromEnvironment", func(t *testing.T) {
		t.Setenv("TPPDUMP_MAXCOUNT", "1")
		code, _, errOut := runCLI("inspect", filepath.Join(dir, "gimmick.lba"))
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "exceeds limit 1")
	})
}
