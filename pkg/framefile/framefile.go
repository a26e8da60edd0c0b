// Package framefile holds the on-disk naming convention for extracted
// frames: a zero-padded frame index with a .jpg extension, optionally
// behind a prefix and an underscore.
package framefile

import (
	"fmt"
	"strings"
)

const (
	Ext        = ".jpg"
	IndexWidth = 5
	Separator  = "_"
)

// Name returns the basename for the frame at index.
func Name(prefix string, index int) string {
	if len(prefix) == 0 {
		return fmt.Sprintf("%0*d%s", IndexWidth, index, Ext)
	}
	return fmt.Sprintf("%s%s%0*d%s", prefix, Separator, IndexWidth, index, Ext)
}

// Pattern describes the naming scheme to an operator.
func Pattern(prefix string) string {
	return fmt.Sprintf("%s, %s, ...", Name(prefix, 0), Name(prefix, 1))
}

// Glob is the basename pattern matching prefixed frame files.
func Glob(prefix string) string {
	return prefix + Separator + "*" + Ext
}

// Strip derives the unprefixed basename. Every occurrence of the prefix
// and of the extension is removed before the extension is put back, so
// the index itself is never renumbered.
func Strip(name, prefix string) string {
	stem := strings.ReplaceAll(name, prefix+Separator, "")
	stem = strings.ReplaceAll(stem, Ext, "")
	return stem + Ext
}

// HasGlobMeta reports whether prefix holds characters Glob would treat
// as pattern syntax rather than literal text.
func HasGlobMeta(prefix string) bool {
	return strings.ContainsAny(prefix, `*?[\`)
}
