// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.
package i18n

import (
	"testing"

	"gopkg.in/yaml.v3"
)

// localeMessages parses the embedded file for lang.
func localeMessages(t *testing.T, lang string) map[string]string {
	t.Helper()
	data, err := localeFS.ReadFile("locales/" + lang + ".yaml")
	if err != nil {
		t.Fatalf("read %s.yaml: %v", lang, err)
	}
	var m map[string]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatalf("parse %s.yaml: %v", lang, err)
	}
	return m
}
