package annotation

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/deadliner/pkg/types"
)

func scanDoc(t *testing.T, doc string) types.ParseOutcome {
	t.Helper()
	return Scan("lib/sample.dart", doc, types.ScanConfig{})
}

func TestScanSingleAnnotation(t *testing.T) {
	doc := `import 'dart:core';

@Deadline(year: 2024, month: 3, day: 5, description: 'drop after migration')
class Legacy {
  int x = 0;
}
`
	outcome := scanDoc(t, doc)
	if len(outcome.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", outcome.Errors)
	}
	if len(outcome.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(outcome.Records))
	}

	rec := outcome.Records[0]
	if rec.Line != 3 {
		t.Errorf("line = %d, want 3", rec.Line)
	}
	if rec.Deadline != (types.Deadline{Year: 2024, Month: 3, Day: 5}) {
		t.Errorf("deadline = %+v", rec.Deadline)
	}
	if rec.Description != "drop after migration" {
		t.Errorf("description = %q", rec.Description)
	}
	if rec.Element != "Legacy" {
		t.Errorf("element = %q, want Legacy", rec.Element)
	}
	if !strings.HasPrefix(rec.CodeExcerpt, "class Legacy {") {
		t.Errorf("excerpt = %q", rec.CodeExcerpt)
	}
	if rec.Attribution != nil {
		t.Error("attribution must be unset at scan time")
	}
}

func TestScanParameterForms(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		records int
		errors  int
	}{
		{
			name:    "bare integers",
			doc:     "@Deadline(year: 2025, month: 1, day: 2)\nvar a = 1;",
			records: 1,
		},
		{
			name:    "single-quoted integers",
			doc:     "@Deadline(year: '2025', month: '1', day: '2')\nvar a = 1;",
			records: 1,
		},
		{
			name:    "double-quoted integers",
			doc:     "@Deadline(year: \"2025\", month: \"1\", day: \"2\")\nvar a = 1;",
			records: 1,
		},
		{
			name:    "multiline argument list",
			doc:     "@Deadline(\n  year: 2025,\n  month: 6,\n  day: 30,\n  mention: '<@U42>',\n)\nenum E { a }",
			records: 1,
		},
		{
			name:   "missing year",
			doc:    "@Deadline(month: 1, day: 2)\nvar a = 1;",
			errors: 1,
		},
		{
			name:   "quoted non-integer month",
			doc:    "@Deadline(year: 2025, month: 'March', day: 2)\nvar a = 1;",
			errors: 1,
		},
		{
			name:    "error does not block later annotations",
			doc:     "@Deadline(year: 2025)\nvar a = 1;\n@Deadline(year: 2025, month: 2, day: 3)\nvar b = 2;",
			records: 1,
			errors:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := scanDoc(t, tt.doc)
			if len(outcome.Records) != tt.records {
				t.Errorf("records = %d, want %d (errors: %v)", len(outcome.Records), tt.records, outcome.Errors)
			}
			if len(outcome.Errors) != tt.errors {
				t.Errorf("errors = %v, want %d", outcome.Errors, tt.errors)
			}
		})
	}
}

func TestScanSkipsCommentedAnnotations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "line comment",
			doc:  "// @Deadline(year: 2024, month: 1, day: 1)\nvar a = 1;",
		},
		{
			name: "block comment",
			doc:  "/* @Deadline(year: 2024, month: 1, day: 1) */\nvar a = 1;",
		},
		{
			name: "block comment across lines",
			doc:  "/*\n@Deadline(year: 2024, month: 1, day: 1)\nclass Dead {}\n*/\nvar a = 1;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := scanDoc(t, tt.doc)
			if len(outcome.Records) != 0 || len(outcome.Errors) != 0 {
				t.Errorf("commented annotation produced records=%d errors=%v; want none",
					len(outcome.Records), outcome.Errors)
			}
		})
	}
}

func TestScanErrorCarriesLineNumber(t *testing.T) {
	doc := "var a = 1;\nvar b = 2;\n@Deadline(year: 2025)\nvar c = 3;"
	outcome := scanDoc(t, doc)
	if len(outcome.Errors) != 1 {
		t.Fatalf("errors = %v, want 1", outcome.Errors)
	}
	if !strings.Contains(outcome.Errors[0], "lib/sample.dart:3:") {
		t.Errorf("error %q should carry path and line 3", outcome.Errors[0])
	}
}

// Stacked annotations attach independently: the later annotation extracts
// the declaration, the earlier one sees the later annotation's text and
// falls into the verbatim-lines fallback. This pins the current behavior.
func TestScanStackedAnnotations(t *testing.T) {
	doc := "@Deadline(year: 2025, month: 1, day: 1)\n@Deadline(year: 2026, month: 2, day: 2)\nclass Both {\n}\n"
	outcome := scanDoc(t, doc)
	if len(outcome.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(outcome.Records))
	}

	first, second := outcome.Records[0], outcome.Records[1]
	if !strings.HasPrefix(first.CodeExcerpt, "@Deadline(") {
		t.Errorf("first excerpt = %q, want to start at the second annotation", first.CodeExcerpt)
	}
	if first.Element != "Both" {
		t.Errorf("first element = %q (fallback name scan), want Both", first.Element)
	}
	if !strings.HasPrefix(second.CodeExcerpt, "class Both {") {
		t.Errorf("second excerpt = %q", second.CodeExcerpt)
	}
}

func TestScanFile(t *testing.T) {
	t.Run("reads and scans a document", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "a.dart")
		content := "@Deadline(year: 2024, month: 12, day: 31)\nvoid gone() {\n}\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		outcome := ScanFile(path, types.ScanConfig{})
		if len(outcome.Records) != 1 {
			t.Fatalf("records = %d, want 1 (errors: %v)", len(outcome.Records), outcome.Errors)
		}
		if outcome.Records[0].SourcePath != path {
			t.Errorf("source path = %q, want %q", outcome.Records[0].SourcePath, path)
		}
	})

	t.Run("read failure yields one error and no records", func(t *testing.T) {
		outcome := ScanFile(filepath.Join(t.TempDir(), "missing.dart"), types.ScanConfig{})
		if len(outcome.Records) != 0 {
			t.Errorf("records = %d, want 0", len(outcome.Records))
		}
		if len(outcome.Errors) != 1 {
			t.Errorf("errors = %v, want exactly 1", outcome.Errors)
		}
	})
}

func TestScanPaths(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.dart")
	os.WriteFile(good, []byte("@Deadline(year: 2024, month: 1, day: 1)\nvar a = 1;\n"), 0o644)
	missing := filepath.Join(dir, "missing.dart")

	var buf bytes.Buffer
	records, errs, summary := ScanPaths([]string{good, missing}, types.ScanConfig{}, &buf)

	if len(records) != 1 {
		t.Errorf("records = %d, want 1", len(records))
	}
	if len(errs) != 1 {
		t.Errorf("errs = %v, want 1", errs)
	}
	if summary.Files != 2 || summary.Failed != 1 || summary.Records != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if !summary.HasFailures() {
		t.Error("summary should report failures")
	}
	if !strings.Contains(buf.String(), "warning:") {
		t.Errorf("progress output %q should carry the warning", buf.String())
	}
}
