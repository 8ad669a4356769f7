// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package annotation finds @Deadline annotations in source documents and
// extracts the annotated declarations.
package annotation

import "strings"

// IsCommented reports whether the given character offset lies inside a
// comment. Block comments are tracked with a linear scan from the document
// start, toggling on each /* and */ pair; block comments do not nest, so
// the first */ always closes. If the offset is not inside a block comment,
// the current line is checked for a // marker before the offset.
//
// Known limitation: // and /* occurring inside string literals are treated
// as real comment markers.
func IsCommented(doc string, offset int) bool {
	if offset > len(doc) {
		offset = len(doc)
	}

	inBlock := false
	for i := 0; i+1 < offset; i++ {
		if !inBlock && doc[i] == '/' && doc[i+1] == '*' {
			inBlock = true
			i++
			continue
		}
		if inBlock && doc[i] == '*' && doc[i+1] == '/' {
			inBlock = false
			i++
		}
	}
	if inBlock {
		return true
	}

	lineStart := strings.LastIndexByte(doc[:offset], '\n') + 1
	return strings.Contains(doc[lineStart:offset], "//")
}
