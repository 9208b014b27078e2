// Copyright (c) 2025 ToeiRei
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the locale files against the i18n.T() calls in the Go
// sources: keys used but missing from the primary locale, keys missing from
// the other locales and keys nobody uses.
package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Location stores the file and line number of a found key.
type Location struct {
	Filepath string
	Line     int
}

// report is the result of one lint run.
type report struct {
	Undefined map[string]Location // used in code, absent from the primary locale
	Missing   map[string][]string // locale file -> keys absent from it
	Orphaned  []string            // in the primary locale, never used
}

func (r report) failed() bool {
	if len(r.Undefined) > 0 {
		return true
	}
	for _, keys := range r.Missing {
		if len(keys) > 0 {
			return true
		}
	}
	return false
}

var keyCallRe = regexp.MustCompile(`i18n\.T\("([^"]+)"`)

func main() {
	var (
		root    string
		locales string
		primary string
	)
	cmd := &cobra.Command{
		Use:          "i18n-linter",
		Short:        "Check translation keys against the Go sources",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := lint(root, locales, primary)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), r)
			if r.failed() {
				return fmt.Errorf("translation files are inconsistent")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", ".", "project root to scan")
	cmd.Flags().StringVar(&locales, "locales", "internal/i18n/locales", "directory holding <lang>.yaml files")
	cmd.Flags().StringVar(&primary, "primary", "en.yaml", "locale file every other locale is compared with")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func lint(root, localesDir, primary string) (report, error) {
	r := report{Undefined: map[string]Location{}, Missing: map[string][]string{}}

	used, err := findUsedKeys(root)
	if err != nil {
		return r, fmt.Errorf("scan sources: %w", err)
	}
	primaryKeys, err := loadKeysFromLocale(filepath.Join(localesDir, primary))
	if err != nil {
		return r, fmt.Errorf("load primary locale %s: %w", primary, err)
	}

	for key, loc := range used {
		if _, ok := primaryKeys[key]; !ok {
			r.Undefined[key] = loc
		}
	}
	for key := range primaryKeys {
		if _, ok := used[key]; !ok {
			r.Orphaned = append(r.Orphaned, key)
		}
	}
	sort.Strings(r.Orphaned)

	files, err := filepath.Glob(filepath.Join(localesDir, "*.yaml"))
	if err != nil {
		return r, err
	}
	for _, file := range files {
		if filepath.Base(file) == primary {
			continue
		}
		keys, err := loadKeysFromLocale(file)
		if err != nil {
			return r, fmt.Errorf("load %s: %w", file, err)
		}
		var missing []string
		for key := range primaryKeys {
			if _, ok := keys[key]; !ok {
				missing = append(missing, key)
			}
		}
		sort.Strings(missing)
		r.Missing[filepath.Base(file)] = missing
	}
	return r, nil
}

// findUsedKeys scans the non-test .go files under root for i18n.T("key")
// calls. Directories starting with "." or "_" and tools/ are skipped.
func findUsedKeys(root string) (map[string]Location, error) {
	keys := make(map[string]Location)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "tools" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for i, line := range strings.Split(string(content), "\n") {
			for _, m := range keyCallRe.FindAllStringSubmatch(line, -1) {
				if _, seen := keys[m[1]]; !seen {
					keys[m[1]] = Location{Filepath: path, Line: i + 1}
				}
			}
		}
		return nil
	})
	return keys, err
}

// loadKeysFromLocale reads a YAML file and returns a flat map of its keys.
// Both flat ("a.b": x) and nested (a: {b: x}) layouts yield "a.b".
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

func flattenYAML(prefix string, node any, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]any:
		for k, val := range v {
			next := k
			if prefix != "" {
				next = prefix + "." + k
			}
			flattenYAML(next, val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}

func printReport(w io.Writer, r report) {
	undefined := make([]string, 0, len(r.Undefined))
	for key := range r.Undefined {
		undefined = append(undefined, key)
	}
	sort.Strings(undefined)
	fmt.Fprintln(w, "--- Undefined keys (used in code, not in primary locale) ---")
	for _, key := range undefined {
		loc := r.Undefined[key]
		fmt.Fprintf(w, "  - %s (%s:%d)\n", key, loc.Filepath, loc.Line)
	}

	files := make([]string, 0, len(r.Missing))
	for f := range r.Missing {
		files = append(files, f)
	}
	sort.Strings(files)
	fmt.Fprintln(w, "--- Missing keys ---")
	for _, f := range files {
		for _, key := range r.Missing[f] {
			fmt.Fprintf(w, "  - %s: %s\n", f, key)
		}
	}

	fmt.Fprintln(w, "--- Orphaned keys ---")
	for _, key := range r.Orphaned {
		fmt.Fprintf(w, "  - %s\n", key)
	}
}
