package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--data-dir", dataDir}, args...))
	if err := root.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestCommandsShareOneDocument(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	if out := run(t, dir, "plan", "add", "--subject", "Geometry", "--hours", "2", "--difficulty", "easy"); !strings.Contains(out, "plan created") {
		t.Fatalf("unexpected plan add output: %s", out)
	}
	if out := run(t, dir, "session", "record", "--minutes", "45"); !strings.Contains(out, "45min") || !strings.Contains(out, "streak=1") {
		t.Fatalf("unexpected session output: %s", out)
	}
	status := run(t, dir, "status")
	for _, want := range []string{"streak: 1 days", "total: 0.75 hrs", "plans: 0/1 done", "sessions: 1"} {
		if !strings.Contains(status, want) {
			t.Fatalf("status missing %q:\n%s", want, status)
		}
	}
	if out := run(t, dir, "stats"); !strings.Contains(out, "average session: 45 min") {
		t.Fatalf("unexpected stats output: %s", out)
	}
}

func TestExportThenImportIntoFreshDir(t *testing.T) {
	t.Parallel()
	src := t.TempDir()
	run(t, src, "session", "record", "--minutes", "30")

	exportDir := filepath.Join(t.TempDir(), "exports")
	out := run(t, src, "export", "--dir", exportDir)
	path := strings.TrimSpace(strings.TrimPrefix(out, "exported:"))
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("export file missing at %q: %v", path, err)
	}

	dst := t.TempDir()
	if out := run(t, dst, "import", path); !strings.Contains(out, "sessions=1") {
		t.Fatalf("unexpected import output: %s", out)
	}
	if status := run(t, dst, "status"); !strings.Contains(status, "total: 0.50 hrs") {
		t.Fatalf("import did not carry totals:\n%s", status)
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--data-dir", dir, "import", bad})
	if err := root.Execute(); err == nil || !strings.Contains(err.Error(), "import failed") {
		t.Fatalf("expected import failure, got %v", err)
	}
}
