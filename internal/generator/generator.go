// Package generator orchestrates the manifest generation pipeline:
// walk the photo tree, probe dimensions, reconcile variants, assemble
// the document, and write it atomically.
package generator

import (
	"context"
	"sync"

	"github.com/stillframe/stillframe-server/internal/domain"
	"github.com/stillframe/stillframe-server/internal/errors"
	"github.com/stillframe/stillframe-server/internal/logger"
	"github.com/stillframe/stillframe-server/internal/manifest"
	"github.com/stillframe/stillframe-server/internal/probe"
	"github.com/stillframe/stillframe-server/internal/scanner"
	"github.com/stillframe/stillframe-server/internal/validation"
)

// DefaultOutputName is the generated manifest file name. It is distinct
// from any hand-maintained manifest so a run never clobbers curated data.
const DefaultOutputName = "manifest.generated.json"

// defaultWorkers bounds concurrent dimension probes.
const defaultWorkers = 8

// Options configures a generation run.
type Options struct {
	PhotosDir        string
	OutputPath       string
	ThumbnailSuffix  string
	FullSuffix       string
	Metadata         manifest.Metadata
	StrictCollisions bool
	Workers          int
}

// Generator runs the manifest pipeline.
type Generator struct {
	opts      Options
	logger    *logger.Logger
	validator *validation.Validator
}

// New creates a generator. Zero-valued options fall back to defaults.
func New(opts Options, log *logger.Logger) *Generator {
	if opts.OutputPath == "" {
		opts.OutputPath = DefaultOutputName
	}
	if opts.ThumbnailSuffix == "" {
		opts.ThumbnailSuffix = scanner.DefaultThumbnailSuffix
	}
	if opts.FullSuffix == "" {
		opts.FullSuffix = scanner.DefaultFullSuffix
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	return &Generator{
		opts:      opts,
		logger:    log,
		validator: validation.New(),
	}
}

// Run executes one generation pass and returns the written manifest.
// A missing photo root fails before anything is written.
func (g *Generator) Run(ctx context.Context) (*domain.Manifest, error) {
	if err := scanner.CheckRoot(g.opts.PhotosDir); err != nil {
		return nil, errors.Wrapf(err, errors.CodeValidation, "photo root %q is not usable", g.opts.PhotosDir)
	}

	// Collect files in traversal order; merge order is part of the
	// reconciliation contract.
	walker := scanner.NewWalker(g.logger.Logger)
	var files []scanner.File
	for f := range walker.Walk(ctx, g.opts.PhotosDir) {
		files = append(files, f)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dims := g.probeAll(files)

	recOpts := []scanner.ReconcilerOption{
		scanner.WithSuffixes(g.opts.ThumbnailSuffix, g.opts.FullSuffix),
	}
	if g.opts.StrictCollisions {
		recOpts = append(recOpts, scanner.WithStrictCollisions())
	}
	rec := scanner.NewReconciler(g.logger.Logger, recOpts...)

	for _, f := range files {
		d, _ := dims.Load(f.RelPath)
		if err := rec.Add(f, d); err != nil {
			return nil, err
		}
	}

	photos := rec.Finalize()
	doc := manifest.Assemble(photos, g.opts.Metadata)

	if err := g.validator.Validate(doc); err != nil {
		return nil, err
	}

	if err := manifest.Write(g.opts.OutputPath, doc); err != nil {
		return nil, errors.Wrap(err, errors.CodeIO, "write manifest")
	}

	g.logger.Info("manifest written",
		"output", g.opts.OutputPath,
		"photos", len(photos),
		"files", len(files),
	)
	return doc, nil
}

// probeAll probes file dimensions with a bounded worker pool. Failures
// degrade to entries without dimensions; corrupt headers and unreadable
// files are logged and skipped, never fatal.
func (g *Generator) probeAll(files []scanner.File) *scanner.SyncMap[string, *probe.Dimensions] {
	results := scanner.NewSyncMap[string, *probe.Dimensions]()

	jobs := make(chan scanner.File)
	var wg sync.WaitGroup
	for i := 0; i < g.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range jobs {
				d, err := probe.FromFile(f.Path)
				if err != nil {
					g.logger.Warn("dimension probe failed, continuing without dimensions",
						"path", f.RelPath,
						"error", err,
					)
					continue
				}
				if d != nil {
					results.Store(f.RelPath, d)
				}
			}
		}()
	}

	for _, f := range files {
		jobs <- f
	}
	close(jobs)
	wg.Wait()

	return results
}
