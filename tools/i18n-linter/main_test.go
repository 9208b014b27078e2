package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadKeysFromLocale_FlatAndNested(t *testing.T) {
	p := filepath.Join(t.TempDir(), "en.yaml")
	writeFile(t, p, "\"list.title\": \"Contacts\"\nform:\n  name: \"Name\"\n")

	keys, err := loadKeysFromLocale(p)
	if err != nil {
		t.Fatalf("loadKeysFromLocale: %v", err)
	}
	for _, k := range []string{"list.title", "form.name"} {
		if _, ok := keys[k]; !ok {
			t.Fatalf("missing key %s in %v", k, keys)
		}
	}
}

func TestLint(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ui", "a.go"), `package ui
func f() {
	_ = i18n.T("list.title")
	_ = i18n.T("list.missing", 1)
}`)
	// Sources in tests, tools and underscore dirs are not scanned.
	writeFile(t, filepath.Join(root, "ui", "a_test.go"), `_ = i18n.T("test.only")`)
	writeFile(t, filepath.Join(root, "_examples", "b.go"), `_ = i18n.T("example.only")`)

	locales := filepath.Join(root, "locales")
	writeFile(t, filepath.Join(locales, "en.yaml"), "\"list.title\": \"Contacts\"\n\"list.unused\": \"x\"\n")
	writeFile(t, filepath.Join(locales, "de.yaml"), "\"list.title\": \"Kontakte\"\n")

	r, err := lint(root, locales, "en.yaml")
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if _, ok := r.Undefined["list.missing"]; !ok || len(r.Undefined) != 1 {
		t.Fatalf("undefined = %v", r.Undefined)
	}
	if loc := r.Undefined["list.missing"]; loc.Line != 4 || !strings.HasSuffix(loc.Filepath, "a.go") {
		t.Fatalf("location = %+v", loc)
	}
	if got := r.Missing["de.yaml"]; len(got) != 1 || got[0] != "list.unused" {
		t.Fatalf("missing = %v", r.Missing)
	}
	if len(r.Orphaned) != 1 || r.Orphaned[0] != "list.unused" {
		t.Fatalf("orphaned = %v", r.Orphaned)
	}
	if !r.failed() {
		t.Fatalf("report should fail")
	}

	var b strings.Builder
	printReport(&b, r)
	if !strings.Contains(b.String(), "de.yaml: list.unused") {
		t.Fatalf("report output:\n%s", b.String())
	}
}
