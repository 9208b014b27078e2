// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

package core

// EnsureCursorInView computes the Y offset for a viewport such that the
// given cursor index is visible. It implements edge-scrolling: only when
// the cursor moves above the top or below the bottom of the visible area
// will the offset change.
func EnsureCursorInView(cursor, yOffset, height int) int {
	if height <= 0 {
		return 0
	}
	if cursor < yOffset {
		return cursor
	}
	if bottom := yOffset + height - 1; cursor > bottom {
		return cursor - height + 1
	}
	return yOffset
}

// ClampCursor keeps cursor inside a list of n entries; it is 0 for an
// empty list.
func ClampCursor(cursor, n int) int {
	return min(max(0, cursor), max(0, n-1))
}
