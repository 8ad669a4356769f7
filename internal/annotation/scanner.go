// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package annotation

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/deadliner/pkg/types"
)

// annotationPattern matches the @Deadline marker and its parenthesized
// argument list. The argument span is the shortest run from ( to the next
// ), which assumes argument literals contain no unescaped parentheses.
// Line breaks inside the argument list are allowed.
var annotationPattern = regexp.MustCompile(`(?s)@Deadline\s*\((.*?)\)`)

// paramPatterns holds the three value patterns tried for one parameter
// name, in order: single-quoted string, double-quoted string, bare integer.
type paramPatterns struct {
	single, double, bare *regexp.Regexp
}

func newParamPatterns(name string) paramPatterns {
	return paramPatterns{
		single: regexp.MustCompile(`\b` + name + `\s*:\s*'([^']*)'`),
		double: regexp.MustCompile(`\b` + name + `\s*:\s*"([^"]*)"`),
		bare:   regexp.MustCompile(`\b` + name + `\s*:\s*(\d+)`),
	}
}

var (
	yearParam        = newParamPatterns("year")
	monthParam       = newParamPatterns("month")
	dayParam         = newParamPatterns("day")
	descriptionParam = newParamPatterns("description")
	mentionParam     = newParamPatterns("mention")
)

// value extracts the parameter value from the argument text. The first
// pattern that matches wins.
func (p paramPatterns) value(args string) (string, bool) {
	for _, re := range []*regexp.Regexp{p.single, p.double, p.bare} {
		if m := re.FindStringSubmatch(args); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// intValue extracts the parameter and converts it to an integer. Quoted
// values that are not integers fail the conversion.
func (p paramPatterns) intValue(args string) (int, error) {
	v, ok := p.value(args)
	if !ok {
		return 0, fmt.Errorf("missing")
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", v)
	}
	return n, nil
}

// Scan finds every @Deadline occurrence in doc and returns the parsed
// records and per-occurrence parse errors. Occurrences inside comments are
// skipped silently. A failed required parameter yields one error and no
// record; scanning continues with the next occurrence.
func Scan(path, doc string, cfg types.ScanConfig) types.ParseOutcome {
	var outcome types.ParseOutcome

	for _, m := range annotationPattern.FindAllStringSubmatchIndex(doc, -1) {
		start, end := m[0], m[1]
		args := doc[m[2]:m[3]]

		if IsCommented(doc, start) {
			continue
		}
		line := lineAt(doc, start)

		deadline, err := parseDeadline(args)
		if err != nil {
			outcome.Errors = append(outcome.Errors,
				fmt.Sprintf("%s:%d: invalid @Deadline: %v", path, line, err))
			continue
		}

		excerpt, element := ExtractBlock(doc[end:], cfg.MaxExcerptLines)

		rec := types.AnnotationRecord{
			SourcePath:  path,
			Line:        line,
			Deadline:    deadline,
			CodeExcerpt: excerpt,
			Element:     element,
		}
		if v, ok := descriptionParam.value(args); ok {
			rec.Description = v
		}
		if v, ok := mentionParam.value(args); ok {
			rec.Mention = v
		}
		outcome.Records = append(outcome.Records, rec)
	}

	return outcome
}

// parseDeadline parses the required year/month/day parameters.
func parseDeadline(args string) (types.Deadline, error) {
	year, err := yearParam.intValue(args)
	if err != nil {
		return types.Deadline{}, fmt.Errorf("year %v", err)
	}
	month, err := monthParam.intValue(args)
	if err != nil {
		return types.Deadline{}, fmt.Errorf("month %v", err)
	}
	day, err := dayParam.intValue(args)
	if err != nil {
		return types.Deadline{}, fmt.Errorf("day %v", err)
	}
	return types.Deadline{Year: year, Month: month, Day: day}, nil
}

// lineAt converts a character offset to a 1-based line number.
func lineAt(doc string, offset int) int {
	return strings.Count(doc[:offset], "\n") + 1
}

// ScanFile reads and scans one document. A read failure yields an outcome
// with zero records and one error; it never aborts sibling documents.
func ScanFile(path string, cfg types.ScanConfig) types.ParseOutcome {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ParseOutcome{
			Errors: []string{fmt.Sprintf("reading %s: %v", path, err)},
		}
	}
	return Scan(path, string(data), cfg)
}

// ScanSummary holds counts from a batch scan run.
type ScanSummary struct {
	Files   int
	Records int
	Failed  int
}

// HasFailures reports whether any document failed to read or parse cleanly.
func (s ScanSummary) HasFailures() bool {
	return s.Failed > 0
}

// ScanPaths scans every path and aggregates records and errors across
// documents. Per-document errors never drop records already parsed from
// other documents. Progress is written to w.
func ScanPaths(paths []string, cfg types.ScanConfig, w io.Writer) ([]types.AnnotationRecord, []string, ScanSummary) {
	var records []types.AnnotationRecord
	var errs []string
	summary := ScanSummary{Files: len(paths)}

	for _, path := range paths {
		outcome := ScanFile(path, cfg)
		if outcome.HasErrors() {
			summary.Failed++
			for _, e := range outcome.Errors {
				fmt.Fprintf(w, "warning: %s\n", e)
			}
			errs = append(errs, outcome.Errors...)
		}
		records = append(records, outcome.Records...)
	}

	summary.Records = len(records)
	return records, errs, summary
}
