// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

// Package buildvars contains variables injected at build time.
package buildvars

// Version, Commit and Date are set at link time, e.g.
// `-ldflags "-X github.com/toeirei/contactbook/buildvars.Version=1.2.3"`.
// They are empty for local or development builds.
var (
	Version string
	Commit  string
	Date    string
)

// VersionOrDefault returns `Version` if set, otherwise returns the provided default.
func VersionOrDefault(def string) string {
	return orDefault(Version, def)
}

// CommitOrDefault returns `Commit` if set, otherwise def.
func CommitOrDefault(def string) string {
	return orDefault(Commit, def)
}

func orDefault(v, def string) string {
	if len(v) > 0 {
		return v
	}
	return def
}
