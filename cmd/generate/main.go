package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	staticcatalog "scenariogen/internal/adapter/catalog/static"
	"scenariogen/internal/adapter/repo/memory"
	statictemplate "scenariogen/internal/adapter/template/static"
	"scenariogen/internal/app/generate"
	"scenariogen/internal/app/mapquery"
	"scenariogen/internal/domain/generation"
)

type options struct {
	template  string
	templates string
	catalog   string
	seed      uint64
	hasSeed   bool
	out       string
	debug     bool
	verify    bool
}

// dump is the JSON document written by the command.
type dump struct {
	Summary mapquery.SummaryResponse `json:"summary"`
	Tiles   json.RawMessage          `json:"tiles"`
	Objects []mapquery.Object        `json:"objects"`
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	w := io.Writer(os.Stdout)
	if opts.out != "" && opts.out != "-" {
		f, err := os.Create(opts.out)
		if err != nil {
			log.Fatalf("create output: %v", err)
		}
		defer f.Close()
		w = f
	}
	resp, err := run(context.Background(), opts, w)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
	log.Printf("generated map %s from %s with seed %d: %d objects, %d roads in %dms",
		resp.MapID, resp.Template, resp.Seed, resp.Objects, resp.Roads, resp.ElapsedMS)
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.StringVar(&opts.template, "template", "", "template name in -templates, or path to a template .json file")
	fs.StringVar(&opts.templates, "templates", "./templates", "template directory")
	fs.StringVar(&opts.catalog, "catalog", "", "catalog .json file (default: built-in catalog)")
	fs.Uint64Var(&opts.seed, "seed", 0, "random seed (default: derived from the map id)")
	fs.StringVar(&opts.out, "out", "-", "output file, - for stdout")
	fs.BoolVar(&opts.debug, "debug", false, "debug logging")
	fs.BoolVar(&opts.verify, "verify", false, "verify that every site, ruin and town entrance is reachable")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.hasSeed = true
		}
	})
	if strings.TrimSpace(opts.template) == "" {
		return options{}, fmt.Errorf("missing -template")
	}
	if strings.HasSuffix(opts.template, ".json") {
		opts.templates = filepath.Dir(opts.template)
		opts.template = strings.TrimSuffix(filepath.Base(opts.template), ".json")
	}
	return opts, nil
}

func run(ctx context.Context, opts options, w io.Writer) (generate.Response, error) {
	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}
	cfg := generation.DefaultConfig()
	cfg.VerifyAccess = opts.verify
	cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	store := memory.NewStore()
	maps := memory.NewMapRepo(store)
	uc := generate.UseCase{
		TxManager: memory.NewTxManager(store),
		Maps:      maps,
		Templates: statictemplate.Provider{Root: opts.templates},
		Catalog:   &staticcatalog.Provider{File: opts.catalog},
		Config:    cfg,
	}
	req := generate.Request{Template: opts.template}
	if opts.hasSeed {
		req.Seed = &opts.seed
	}
	resp, err := uc.Execute(ctx, req)
	if err != nil {
		return generate.Response{}, err
	}

	query := mapquery.UseCase{Maps: maps}
	summary, err := query.Summary(ctx, mapquery.Request{MapID: resp.MapID})
	if err != nil {
		return generate.Response{}, err
	}
	tiles, err := query.Tiles(ctx, mapquery.Request{MapID: resp.MapID})
	if err != nil {
		return generate.Response{}, err
	}
	objects, err := query.Objects(ctx, mapquery.ObjectsRequest{MapID: resp.MapID})
	if err != nil {
		return generate.Response{}, err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dump{Summary: summary, Tiles: tiles.Tiles, Objects: objects.Objects}); err != nil {
		return generate.Response{}, fmt.Errorf("write dump: %w", err)
	}
	return resp, nil
}
