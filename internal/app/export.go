package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/camusage/internal/hive"
	"github.com/blackwell-systems/camusage/internal/output"
	"github.com/blackwell-systems/camusage/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.yaml|file.db>",
	Short: "Capture the consent store to a hive file",
	Long: `Copy the camera consent store into an offline hive file.

The file format follows the extension: .yaml/.yml writes a readable YAML
tree, .db/.sqlite writes a SQLite database. Either can be read back on any
operating system with --hive.

Only the webcam consent key and its LastUsedTimeStart/LastUsedTimeStop
values are copied. The registry itself is never modified.`,
	Example: `  # Capture to YAML
  camusage export webcam.yaml

  # Capture to SQLite and inspect later
  camusage export webcam.db
  camusage list --hive webcam.db`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	dest := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	src, err := resolveSource(cfg.General.Hive)
	if err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(dest))
	switch ext {
	case ".yaml", ".yml", ".db", ".sqlite", ".sqlite3":
	default:
		return fmt.Errorf("unsupported export file %q (want .yaml, .yml or .db)", dest)
	}

	spinner := output.NewSpinner("Capturing consent store...")
	spinner.Start()
	tree, err := captureTree(src)
	spinner.Stop()
	if err != nil {
		return err
	}

	switch ext {
	case ".yaml", ".yml":
		err = writeYAMLFile(dest, tree)
	default:
		err = writeSQLiteFile(dest, tree)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Captured %d entries to %s\n", countEntries(tree), dest)
	return nil
}

func captureTree(src source) (*hive.Node, error) {
	root, err := src.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open consent store (%s): %w", src.description, err)
	}
	defer root.Close()

	tree, err := hive.Capture(root, "webcam")
	if err != nil {
		return nil, fmt.Errorf("failed to capture consent store: %w", err)
	}
	return tree, nil
}

func writeYAMLFile(path string, tree *hive.Node) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := hive.WriteYAML(f, tree); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeSQLiteFile(path string, tree *hive.Node) error {
	db, err := store.New(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.CreateSchema(); err != nil {
		return err
	}
	return db.SaveTree(tree)
}

// countEntries counts app entries: packaged keys plus NonPackaged children.
func countEntries(tree *hive.Node) int {
	n := 0
	for name, k := range tree.Keys {
		if strings.EqualFold(name, "NonPackaged") {
			n += len(k.Keys)
			continue
		}
		n++
	}
	return n
}
