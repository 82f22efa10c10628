// Package ingest implements the Input Enumerator: it walks the paths
// supplied to an analysis, classifies each one, and yields the raw bytes
// of every class file found, in stable input order.
package ingest

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"

	"github.com/cherrygraph/cherry/internal/diagnostic"
	"github.com/cherrygraph/cherry/internal/provenance"
)

const classSuffix = ".class"

var archiveSuffixes = []string{".jar", ".zip"}

// Unit is one class file's raw bytes (a loose file or an archive entry)
// plus where it came from.
// Fingerprint is a content hash used only for diagnostic messages (see
// DuplicateType warnings emitted by whatever loads Units into a
// hierarchy); it has no bearing on analysis semantics.
type Unit struct {
	Origin      string
	Data        []byte
	Fingerprint uint64
}

// Option configures an Enumerator.
type Option func(*Enumerator)

// WithFS overrides the afs.Service used for reads; tests can supply an
// in-memory implementation.
func WithFS(fs afs.Service) Option {
	return func(e *Enumerator) { e.fs = fs }
}

// WithVerbose enables workspace-provenance annotation of warnings.
func WithVerbose(verbose bool) Option {
	return func(e *Enumerator) { e.verbose = verbose }
}

// Enumerator is the Input Enumerator (spec.md §4.1).
type Enumerator struct {
	fs       afs.Service
	sink     diagnostic.Sink
	detector *provenance.Detector
	verbose  bool
}

// New returns an Enumerator reporting warnings to sink.
func New(sink diagnostic.Sink, opts ...Option) *Enumerator {
	if sink == nil {
		sink = diagnostic.Noop{}
	}
	e := &Enumerator{
		fs:       afs.New(),
		sink:     sink,
		detector: provenance.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enumerate walks every supplied path and returns the class-file units
// found, in stable order: input-argument order, then (for directories and
// archives) the order entries were encountered during the walk. Any path
// that doesn't exist, can't be read, or names a malformed archive yields
// an UnreadableInput warning and is skipped; Enumerate returns no error,
// since enumeration problems are never fatal (spec.md §7).
func (e *Enumerator) Enumerate(ctx context.Context, paths []string) []Unit {
	var units []Unit
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			e.warn(p, fmt.Sprintf("path does not exist or is unreadable: %v", err))
			continue
		}
		switch {
		case info.IsDir():
			units = append(units, e.enumerateDir(ctx, p)...)
		case hasAnySuffix(p, archiveSuffixes):
			units = append(units, e.enumerateArchive(p)...)
		case strings.HasSuffix(p, classSuffix):
			if u, ok := e.readLoose(ctx, p); ok {
				units = append(units, u)
			}
		default:
			e.warn(p, "unsupported input kind (not a directory, archive, or .class file)")
		}
	}
	return units
}

func (e *Enumerator) enumerateDir(ctx context.Context, root string) []Unit {
	var units []Unit
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			e.warn(path, fmt.Sprintf("unreadable while walking directory: %v", err))
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), classSuffix) {
			return nil
		}
		if u, ok := e.readLoose(ctx, path); ok {
			units = append(units, u)
		}
		return nil
	})
	if err != nil {
		e.warn(root, fmt.Sprintf("failed to walk directory: %v", err))
	}
	return units
}

func (e *Enumerator) readLoose(ctx context.Context, path string) (Unit, bool) {
	data, err := e.fs.DownloadWithURL(ctx, path)
	if err != nil {
		e.warn(path, fmt.Sprintf("failed to read class file: %v", err))
		return Unit{}, false
	}
	return Unit{Origin: path, Data: data, Fingerprint: fingerprint(data)}, true
}

// enumerateArchive opens path as a ZIP-like container and yields every
// entry ending in the class-file suffix. The archive is always closed
// before returning, on every exit path, per spec.md §5's file-handle
// discipline.
func (e *Enumerator) enumerateArchive(path string) []Unit {
	r, err := zip.OpenReader(path)
	if err != nil {
		e.warn(path, fmt.Sprintf("malformed archive: %v", err))
		return nil
	}
	defer r.Close()

	var units []Unit
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, classSuffix) {
			continue
		}
		origin := path + "!" + f.Name
		data, err := readZipEntry(f)
		if err != nil {
			e.warn(origin, fmt.Sprintf("unreadable archive entry: %v", err))
			continue
		}
		units = append(units, Unit{Origin: origin, Data: data, Fingerprint: fingerprint(data)})
	}
	return units
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (e *Enumerator) warn(origin, message string) {
	if e.verbose {
		if ws, ok := e.detector.Detect(origin); ok {
			message = fmt.Sprintf("%s (workspace root: %s, kind: %s)", message, ws.Root, ws.Kind)
		}
	}
	e.sink.Warn(diagnostic.Warning{Kind: diagnostic.UnreadableInput, Origin: origin, Message: message})
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}
