package app

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestExport_YAMLToSQLiteRoundTrip(t *testing.T) {
	cfg := isolateConfig(t)
	fixture := writeFixtureHive(t)
	dbFile := filepath.Join(t.TempDir(), "webcam.db")

	out, err := executeCommand(t, "export", "--config", cfg, "--hive", fixture, dbFile)
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Captured 3 entries") {
		t.Errorf("unexpected export output:\n%s", out)
	}

	fromYAML, err := executeCommand(t, "list", "--config", cfg, "--hive", fixture, "--format", "csv")
	if err != nil {
		t.Fatalf("list yaml failed: %v", err)
	}
	fromDB, err := executeCommand(t, "list", "--config", cfg, "--hive", dbFile, "--format", "csv")
	if err != nil {
		t.Fatalf("list db failed: %v", err)
	}
	if fromYAML != fromDB {
		t.Errorf("sqlite capture differs from source:\nyaml:\n%s\ndb:\n%s", fromYAML, fromDB)
	}
}

func TestExport_SQLiteToYAML(t *testing.T) {
	cfg := isolateConfig(t)
	fixture := writeFixtureHive(t)
	dir := t.TempDir()
	dbFile := filepath.Join(dir, "webcam.db")
	yamlFile := filepath.Join(dir, "again.yml")

	if out, err := executeCommand(t, "export", "--config", cfg, "--hive", fixture, dbFile); err != nil {
		t.Fatalf("export to db failed: %v\n%s", err, out)
	}
	if out, err := executeCommand(t, "export", "--config", cfg, "--hive", dbFile, yamlFile); err != nil {
		t.Fatalf("export to yaml failed: %v\n%s", err, out)
	}

	out, err := executeCommand(t, "list", "--config", cfg, "--hive", yamlFile, "--current", "--format", "csv")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "Contoso.Camera") || strings.Contains(out, "obs64.exe") {
		t.Errorf("unexpected rows after double export:\n%s", out)
	}
}

func TestExport_Errors(t *testing.T) {
	cfg := isolateConfig(t)
	fixture := writeFixtureHive(t)

	if _, err := executeCommand(t, "export", "--config", cfg, "--hive", fixture, "out.txt"); err == nil {
		t.Error("expected error for unsupported export extension")
	}
	if _, err := executeCommand(t, "export", "--config", cfg, "--hive", fixture); err == nil {
		t.Error("expected error when destination is missing")
	}

	missing := filepath.Join(t.TempDir(), "absent.yaml")
	dest := filepath.Join(t.TempDir(), "out.yaml")
	if _, err := executeCommand(t, "export", "--config", cfg, "--hive", missing, dest); err == nil {
		t.Error("expected error when source store is missing")
	}
}
