// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package annotation

import (
	"regexp"
	"strings"
)

// DefaultMaxExcerptLines caps extracted excerpts when no limit is configured.
const DefaultMaxExcerptLines = 15

// truncationMarker is appended when an excerpt exceeds the line limit.
const truncationMarker = "... (truncated)"

// fallbackLines is the number of verbatim lines captured when no
// declaration pattern matches.
const fallbackLines = 5

// elementUnknown is the element name when classification failed entirely.
const elementUnknown = "unknown"

// Declaration patterns, tried in order; first match wins. The extractor is
// a best-effort structural scanner, not a parser: each pattern recognizes
// the head of one declaration kind and the body is captured by a
// depth-balanced scan, not by grammar.
var (
	classPattern     = regexp.MustCompile(`^(?:abstract\s+)?class\s+(\w+)`)
	mixinPattern     = regexp.MustCompile(`^mixin\s+(\w+)`)
	extensionPattern = regexp.MustCompile(`^extension(?:\s+(\w+))?\s+on\b`)
	enumPattern      = regexp.MustCompile(`^enum\s+(\w+)`)
	functionPattern  = regexp.MustCompile(`^(?:static\s+)?(?:[\w$<>\[\]?,. ]+?\s+)??(?:get\s+)?([A-Za-z_$]\w*)\s*\(`)
	getterPattern    = regexp.MustCompile(`^(?:static\s+)?(?:[\w$<>\[\]?]+\s+)?get\s+([A-Za-z_$]\w*)`)
	variablePattern  = regexp.MustCompile(`^(?:(?:static|final|const|var|late)\s+)*(?:[\w$<>\[\]?]+\s+)?([A-Za-z_$]\w*)\s*=[^=>]`)
	fallbackPattern  = regexp.MustCompile(`(?:class|mixin|enum|extension|void|get|final|const|var)\s+([A-Za-z_$]\w*)`)
)

// ExtractBlock classifies the declaration that follows an annotation and
// returns its minimal well-formed source excerpt plus a best-effort element
// name. Leading whitespace and newlines are skipped; stacked annotations
// are not. The excerpt is truncated to maxLines (DefaultMaxExcerptLines
// when maxLines <= 0) with a trailing marker.
func ExtractBlock(after string, maxLines int) (excerpt, element string) {
	if maxLines <= 0 {
		maxLines = DefaultMaxExcerptLines
	}
	text := strings.TrimLeft(after, " \t\r\n")

	excerpt, element = classify(text)
	return truncate(excerpt, maxLines), element
}

// classify runs the ordered pattern list against text and captures the
// matching declaration's span.
func classify(text string) (excerpt, element string) {
	if m := classPattern.FindStringSubmatch(text); m != nil {
		return braceBody(text, len(m[0])), m[1]
	}
	if m := mixinPattern.FindStringSubmatch(text); m != nil {
		return braceBody(text, len(m[0])), m[1]
	}
	if m := extensionPattern.FindStringSubmatch(text); m != nil {
		name := m[1]
		if name == "" {
			name = "anonymous extension"
		}
		return braceBody(text, len(m[0])), name
	}
	if m := enumPattern.FindStringSubmatch(text); m != nil {
		return braceBody(text, len(m[0])), m[1]
	}
	if m := functionPattern.FindStringSubmatch(text); m != nil {
		return functionBody(text, len(m[0])), m[1]
	}
	if m := getterPattern.FindStringSubmatch(text); m != nil {
		return functionBody(text, len(m[0])), m[1]
	}
	if m := variablePattern.FindStringSubmatch(text); m != nil {
		return initializerBody(text), m[1]
	}

	// No declaration pattern matched: take the first lines verbatim and
	// guess a name from a keyword-identifier pair.
	excerpt = firstLines(text, fallbackLines)
	element = elementUnknown
	if m := fallbackPattern.FindStringSubmatch(excerpt); m != nil {
		element = m[1]
	}
	return excerpt, element
}

// braceBody captures text through the balanced closing brace of the first
// { at or after from. A depth counter increments on { and decrements on };
// the span ends when the counter returns to zero after having opened.
// Braces inside string literals are counted too (documented limitation).
// An unbalanced body captures through the end of text.
func braceBody(text string, from int) string {
	open := strings.IndexByte(text[from:], '{')
	if open < 0 {
		return firstLines(text, fallbackLines)
	}

	depth := 0
	for i := from + open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return text
}

// functionBody decides between a brace body, an arrow body, and a bodyless
// declaration by whichever of {, =>, ; appears first after the signature.
// Arrow bodies run through the next semicolon found by a flat scan: arrow
// bodies are single expressions, so no nesting awareness is needed.
func functionBody(text string, from int) string {
	rest := text[from:]
	brace := strings.IndexByte(rest, '{')
	arrow := strings.Index(rest, "=>")
	semi := strings.IndexByte(rest, ';')

	if brace >= 0 && (arrow < 0 || brace < arrow) && (semi < 0 || brace < semi) {
		return braceBody(text, from)
	}
	if semi >= 0 {
		return text[:from+semi+1]
	}
	return text
}

// initializerBody captures a variable or constant declaration through the
// first semicolon at nesting depth zero, so semicolons inside literal
// collections and call arguments are skipped.
func initializerBody(text string) string {
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ';':
			if depth <= 0 {
				return text[:i+1]
			}
		}
	}
	return text
}

// firstLines returns the first n lines of text.
func firstLines(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= n {
		return text
	}
	return strings.Join(lines[:n], "\n")
}

// truncate keeps the leading maxLines lines and appends the truncation
// marker when the excerpt is longer.
func truncate(excerpt string, maxLines int) string {
	lines := strings.Split(excerpt, "\n")
	if len(lines) <= maxLines {
		return excerpt
	}
	return strings.Join(lines[:maxLines], "\n") + "\n" + truncationMarker
}
