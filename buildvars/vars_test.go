// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

package buildvars

import "testing"

func TestOrDefault(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })

	Version, Commit = "", ""
	if got := VersionOrDefault("dev"); got != "dev" {
		t.Fatalf("VersionOrDefault = %q, want dev", got)
	}
	if got := CommitOrDefault("none"); got != "none" {
		t.Fatalf("CommitOrDefault = %q, want none", got)
	}

	Version, Commit = "1.2.3", "abc123"
	if got := VersionOrDefault("dev"); got != "1.2.3" {
		t.Fatalf("VersionOrDefault = %q, want 1.2.3", got)
	}
	if got := CommitOrDefault("none"); got != "abc123" {
		t.Fatalf("CommitOrDefault = %q, want abc123", got)
	}
}
