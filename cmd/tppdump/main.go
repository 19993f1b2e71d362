package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	codec "github.com/oy3o/foxcodec"
	"github.com/oy3o/foxcodec/frt"
	"github.com/oy3o/foxcodec/internal/config"
	"github.com/oy3o/foxcodec/internal/logging"
	"github.com/oy3o/foxcodec/lba"
)

const usage = `usage: tppdump <command> <file>...

commands:
  inspect    print a one-line summary per file
  positions  print every locator or route node position
  json       dump the decoded file as JSON
  verify     decode, re-encode and compare against the original bytes

Files are recognised by extension (.lba, .frt). Set TPPDUMP_CONFIG_DIR to
read tppdump.cfg.json from that directory.`

var errUnknownFormat = errors.New("unknown asset format")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if err := config.Load(os.Getenv("TPPDUMP_CONFIG_DIR")); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	log := logging.New(stderr, config.LogLevel())

	if len(args) < 2 {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	enc, err := config.SnippetEncoding()
	if err != nil {
		log.Error().Err(err).Msg("Invalid configuration")
		return 1
	}
	d := &dumper{
		out:     stdout,
		log:     log,
		lbaOpts: &lba.Options{Limits: config.Limits()},
		frtOpts: &frt.Options{Limits: config.Limits(), Encoding: enc},
	}

	var command func(path string) error
	switch strings.ToLower(args[0]) {
	case "inspect":
		command = d.inspect
	case "positions":
		command = d.positions
	case "json":
		command = d.dumpJSON
	case "verify":
		command = d.verify
	default:
		fmt.Fprintln(stderr, usage)
		return 2
	}

	status := 0
	for _, path := range args[1:] {
		if err := command(path); err != nil {
			log.Error().Err(err).Str("file", path).Str("command", args[0]).Msg("Command failed")
			status = 1
		}
	}
	return status
}

type dumper struct {
	out     io.Writer
	log     zerolog.Logger
	lbaOpts *lba.Options
	frtOpts *frt.Options
}

func formatOf(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".lba", ".frt":
		return ext, nil
	default:
		return "", fmt.Errorf("%w: %q", errUnknownFormat, ext)
	}
}

// decode returns a *lba.LocatorSet or a *frt.RouteSet depending on the extension of path.
func (d *dumper) decode(path string, data []byte) (any, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	r, err := codec.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var decoded any
	if format == ".lba" {
		decoded, err = lba.Read(r, d.lbaOpts)
	} else {
		decoded, err = frt.Read(r, d.frtOpts)
	}
	if err != nil {
		return nil, err
	}
	d.log.Debug().Str("file", path).Int64("consumed", r.Count()).Int("size", len(data)).Msg("Decoded")
	return decoded, nil
}

func (d *dumper) load(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return d.decode(path, data)
}

func (d *dumper) inspect(path string) error {
	decoded, err := d.load(path)
	if err != nil {
		return err
	}
	switch v := decoded.(type) {
	case *lba.LocatorSet:
		fmt.Fprintf(d.out, "%s: %v locator set, %d locators, %s\n",
			path, v.Kind(), v.Len(), humanize.Bytes(uint64(v.Size())))
	case *frt.RouteSet:
		var nodes, events int
		for _, route := range v.Routes {
			nodes += len(route.Nodes)
			for _, node := range route.Nodes {
				events += len(node.Events)
			}
		}
		fmt.Fprintf(d.out, "%s: %d routes, %d nodes, %d events, %s\n",
			path, len(v.Routes), nodes, events, humanize.Bytes(uint64(v.Size())))
	}
	return nil
}

func (d *dumper) positions(path string) error {
	decoded, err := d.load(path)
	if err != nil {
		return err
	}
	switch v := decoded.(type) {
	case *lba.LocatorSet:
		for p := range v.Positions() {
			fmt.Fprintln(d.out, p)
		}
	case *frt.RouteSet:
		for p := range v.Positions() {
			fmt.Fprintln(d.out, p)
		}
	}
	return nil
}

func (d *dumper) dumpJSON(path string) error {
	decoded, err := d.load(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(d.out)
	enc.SetIndent("", "  ")
	return enc.Encode(decoded)
}

func (d *dumper) encode(decoded any) ([]byte, error) {
	var buf bytes.Buffer
	w, err := codec.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	switch v := decoded.(type) {
	case *lba.LocatorSet:
		err = lba.Write(w, v)
	case *frt.RouteSet:
		err = frt.Write(w, v, d.frtOpts)
	}
	if err != nil {
		return nil, err
	}
	if _, err := w.Result(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *dumper) verify(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	decoded, err := d.decode(path, data)
	if err != nil {
		return err
	}
	encoded, err := d.encode(decoded)
	if err != nil {
		return err
	}

	if !bytes.Equal(data, encoded) {
		offset := mismatch(data, encoded)
		fmt.Fprintf(d.out, "%s: MISMATCH at offset %d (original %s, re-encoded %s)\n",
			path, offset, humanize.Bytes(uint64(len(data))), humanize.Bytes(uint64(len(encoded))))
		return fmt.Errorf("round trip differs at offset %d", offset)
	}
	fmt.Fprintf(d.out, "%s: ok, %s round-trips\n", path, humanize.Bytes(uint64(len(data))))
	return nil
}

func mismatch(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
