// Command georegion converts multipolygons between formats and applies
// boolean operations to them.
package main

import (
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/bsm/georegion/geo"
	"github.com/bsm/georegion/internal/logger"
	"github.com/joho/godotenv"
)

type options struct {
	From, To  string
	In, Out   string
	ClipWith  string
	Op        string
	WithRoles bool
	Index     string
	Name      string
}

func main() {
	_ = godotenv.Load(".env")
	l := logger.Setup()

	var opts options
	flag.StringVar(&opts.From, "from", envOr("GEOREGION_FROM", formatWKT), "input format: wkt|compact|geojson|wkb")
	flag.StringVar(&opts.To, "to", envOr("GEOREGION_TO", formatInfo), "output format: wkt|compact|geojson|wkb|info")
	flag.StringVar(&opts.In, "in", "", "input file, defaults to stdin")
	flag.StringVar(&opts.Out, "out", "", "output file, defaults to stdout")
	flag.StringVar(&opts.ClipWith, "clip", "", "file to combine the input with, in the input format")
	flag.StringVar(&opts.Op, "op", geo.ClipUnion.String(), "clip operation: union|intersection|difference|xor")
	flag.BoolVar(&opts.WithRoles, "roles", false, "tag GeoJSON features with their roles")
	flag.StringVar(&opts.Index, "index", "", "also write the result to a lookup index, *.tab[.gz] or *.sst")
	flag.StringVar(&opts.Name, "name", "region", "region name in the lookup index")
	flag.Parse()

	if err := run(l, &opts); err != nil {
		l.Error("georegion_failed", "err", err)
		os.Exit(1)
	}
}

func run(l *slog.Logger, opts *options) error {
	m, err := readFile(opts.In, opts.From)
	if err != nil {
		return err
	}
	l.Debug("decoded", "format", opts.From, "outers", m.NumOuters(), "inners", m.NumInners())

	if opts.ClipWith != "" {
		clipping, err := readFile(opts.ClipWith, opts.From)
		if err != nil {
			return err
		}
		if m, err = combine(m, clipping, opts.Op); err != nil {
			return err
		}
		l.Debug("clipped", "op", opts.Op, "outers", m.NumOuters(), "inners", m.NumInners())
	}

	if opts.Index != "" {
		if err := writeIndex(opts.Index, opts.Name, m); err != nil {
			return err
		}
		l.Info("indexed", "file", opts.Index, "name", opts.Name)
	}

	data, err := encode(opts.To, m, opts.WithRoles)
	if err != nil {
		return err
	}

	if opts.Out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(opts.Out, data, 0o644)
}

func readFile(name, format string) (*geo.MultiPolygon, error) {
	var (
		data []byte
		err  error
	)
	if name == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, err
	}
	return decode(format, data)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
