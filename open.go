package silicate

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/klauspost/compress/zip"
	"github.com/sourcegraph/conc/pool"
	"howett.net/plist"

	"github.com/LeviSnoot/silicate/internal/tileloader"
	"github.com/LeviSnoot/silicate/nsarchive"
)

const documentArchiveMember = "Document.archive"

type options struct {
	logger  *slog.Logger
	workers int
}

func (o *options) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return slog.Default()
}

// OpenOption configures Open.
type OpenOption func(*options)

// WithLogger sets the logger used for internal diagnostics. Absent a
// supplied logger, components fall back to slog.Default().
func WithLogger(l *slog.Logger) OpenOption {
	return func(o *options) { o.logger = l }
}

// WithWorkers sets the size of the Pass-B worker pool. The default is
// runtime.GOMAXPROCS(0).
func WithWorkers(n int) OpenOption {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// Open runs Pass A (structural decode) then Pass B (parallel raster
// materialization) and returns the fully loaded document. A single leaf
// failure fails Open as a whole: there is no partial-success return.
func Open(path string, opts ...OpenOption) (*Document, error) {
	cfg := &options{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(cfg)
	}

	doc, err := openPassA(path, cfg)
	if err != nil {
		return nil, err
	}

	if err := loadPassB(path, doc, cfg); err != nil {
		return nil, err
	}

	return doc, nil
}

func openPassA(path string, cfg *options) (*Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", nsarchive.ErrIO, path, err)
	}
	defer zr.Close()

	var archiveFile *zip.File
	for _, f := range zr.File {
		if f.Name == documentArchiveMember {
			archiveFile = f
			break
		}
	}
	if archiveFile == nil {
		return nil, fmt.Errorf("%w: container has no %s member", nsarchive.ErrIO, documentArchiveMember)
	}

	rc, err := archiveFile.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", nsarchive.ErrIO, documentArchiveMember, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", nsarchive.ErrIO, documentArchiveMember, err)
	}

	var tree map[string]interface{}
	if err := plist.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("%w: %v", nsarchive.ErrPlist, err)
	}

	top, ok := tree["$top"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: missing $top dictionary", nsarchive.ErrPlist)
	}
	objectsRaw, ok := tree["$objects"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: missing $objects array", nsarchive.ErrPlist)
	}

	archive := nsarchive.New(top, objectsRaw)
	cfg.log().Debug("parsed keyed archive", "objects", len(objectsRaw))

	doc, err := decodeDocument(archive)
	if err != nil {
		return nil, err
	}
	cfg.log().Debug("decoded document tree", "columns", doc.Tiling.Columns, "rows", doc.Tiling.Rows)

	return doc, nil
}

// loadPassB fans tile loading out across every leaf via a bounded
// goroutine pool. Each task opens its own container reader; a leaf's
// Image slot is written by exactly one task, so no synchronization beyond
// the pool's join barrier is required. Failures are not first-wins: every
// leaf's error is collected and joined (see SPEC_FULL.md §10).
func loadPassB(path string, doc *Document, cfg *options) error {
	leaves := doc.leaves()
	errs := make([]error, len(leaves))

	p := pool.New().WithMaxGoroutines(cfg.workers)
	for i, leaf := range leaves {
		i, leaf := i, leaf
		p.Go(func() {
			canvas, err := tileloader.Load(path, tileloader.LeafSpec{
				UUID:   leaf.UUID,
				Width:  leaf.Width,
				Height: leaf.Height,
			}, doc.Tiling, cfg.logger)
			if err != nil {
				errs[i] = fmt.Errorf("leaf %s: %w", leaf.UUID, err)
				return
			}
			leaf.Image = canvas
		})
	}
	p.Wait()

	return errors.Join(errs...)
}
