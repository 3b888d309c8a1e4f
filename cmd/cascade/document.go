package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/cascade"
	"github.com/yacobolo/cascade/internal/store"
)

var errNoDocument = errors.New("no document: pass --snapshot or --doc")

// addDocumentFlags registers the flags that name a document.
func addDocumentFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("snapshot", "", "Snapshot file (.json, .yaml)")
	f.String("doc", "", "Document title in the store")
	f.Int("revision", 0, "Store revision to load (0 = latest)")
	f.String("db", "", "SQLite store path")
}

// openStore opens the configured store, creating its directory.
func openStore(ctx context.Context, log *zap.Logger) (*store.SQLiteStore, error) {
	path := storePath()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	return store.Open(ctx, path, log)
}

// loadDocument reads the document named by --snapshot or --doc.
func loadDocument(ctx context.Context, log *zap.Logger) (*cascade.Document, error) {
	opts, err := buildOptions(log)
	if err != nil {
		return nil, err
	}

	if path := k.String("snapshot"); path != "" {
		log.Debug("Loading snapshot", zap.String("path", path))
		return cascade.LoadSnapshotFile(path, opts)
	}

	title := k.String("doc")
	if title == "" {
		return nil, errNoDocument
	}
	s, err := openStore(ctx, log)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	snap, rev, err := s.LoadRevision(ctx, title, k.Int("revision"))
	if err != nil {
		return nil, err
	}
	log.Debug("Loaded document",
		zap.String("document", rev.Document),
		zap.Int("revision", rev.Number))
	return cascade.FromSnapshot(snap, opts)
}

// saveDocument writes doc back to --snapshot and/or --doc. It reports
// whether anything was written.
func saveDocument(ctx context.Context, log *zap.Logger, doc *cascade.Document) (bool, error) {
	saved := false
	if path := k.String("snapshot"); path != "" {
		if err := cascade.SaveSnapshotFile(path, doc); err != nil {
			return saved, err
		}
		log.Info("Snapshot written", zap.String("path", path))
		saved = true
	}

	if title := k.String("doc"); title != "" {
		s, err := openStore(ctx, log)
		if err != nil {
			return saved, err
		}
		defer s.Close()
		rev, err := s.Save(ctx, title, doc.Snapshot())
		if err != nil {
			return saved, err
		}
		log.Info("Document saved",
			zap.String("document", rev.Document),
			zap.Int("revision", rev.Number))
		saved = true
	}
	return saved, nil
}

// quiet reports whether --quiet was given.
func quiet() bool {
	return getBoolWithFallback("quiet", "quiet", false)
}
