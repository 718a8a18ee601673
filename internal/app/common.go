package app

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/camusage/internal/hive"
	"github.com/blackwell-systems/camusage/internal/scanner"
	"github.com/blackwell-systems/camusage/internal/store"
)

// source describes where consent data is read from.
type source struct {
	open        hive.Opener
	description string
}

// resolveSource picks the backend for path: the live registry when path is
// empty, otherwise a YAML or SQLite hive file chosen by extension. The file
// is re-read on every open so a refresh always sees its current contents.
func resolveSource(path string) (source, error) {
	if path == "" {
		return source{
			open:        scanner.LiveOpener(),
			description: `registry HKCU\` + scanner.ConsentStorePath,
		}, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return source{
			open: func() (hive.Key, error) {
				return hive.LoadYAML(path)
			},
			description: "yaml hive " + path,
		}, nil
	case ".db", ".sqlite", ".sqlite3":
		return source{
			open: func() (hive.Key, error) {
				s, err := store.OpenReadOnly(path)
				if err != nil {
					return nil, err
				}
				root, err := s.Root()
				if err != nil {
					s.Close()
					return nil, err
				}
				return root, nil
			},
			description: "sqlite hive " + path,
		}, nil
	default:
		return source{}, fmt.Errorf("unsupported hive file %q (want .yaml, .yml or .db)", path)
	}
}

// newScanner builds a scanner for src using the command logger.
func newScanner(src source) *scanner.Scanner {
	return scanner.New(src.open, currentLogger().With("source", src.description))
}

func currentLogger() *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}

// currentOnlyFor resolves the current-only filter. An explicit --current
// flag, including --current=false, wins over the config default.
func currentOnlyFor(cmd *cobra.Command, configured, flag bool) bool {
	if cmd.Flags().Changed("current") {
		return flag
	}
	return configured
}
