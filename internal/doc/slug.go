// SPDX-License-Identifier: MPL-2.0

package doc

import "strings"

// Slug derives an anchor identifier from header text: lower-cased, with
// runs of non-alphanumeric characters collapsed to single dashes.
func Slug(text string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
