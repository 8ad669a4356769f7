package annotation

import (
	"strings"
	"testing"
)

func TestExtractBlockDeclarations(t *testing.T) {
	tests := []struct {
		name        string
		after       string
		wantExcerpt string
		wantElement string
	}{
		{
			name:        "simple class",
			after:       "\nclass Legacy {\n  int x = 0;\n}\nclass Next {}",
			wantExcerpt: "class Legacy {\n  int x = 0;\n}",
			wantElement: "Legacy",
		},
		{
			name:        "abstract class",
			after:       "abstract class Shape {\n  void draw();\n}",
			wantExcerpt: "abstract class Shape {\n  void draw();\n}",
			wantElement: "Shape",
		},
		{
			name: "class with nested braces ends at outer brace",
			after: "class Outer {\n  void inner() {\n    if (true) { run(); }\n  }\n}\n" +
				"var after = 1;",
			wantExcerpt: "class Outer {\n  void inner() {\n    if (true) { run(); }\n  }\n}",
			wantElement: "Outer",
		},
		{
			name:        "mixin",
			after:       "mixin Walkable {\n  void walk() {}\n}",
			wantExcerpt: "mixin Walkable {\n  void walk() {}\n}",
			wantElement: "Walkable",
		},
		{
			name:        "named extension",
			after:       "extension StringX on String {\n  bool get blank => trim().isEmpty;\n}",
			wantExcerpt: "extension StringX on String {\n  bool get blank => trim().isEmpty;\n}",
			wantElement: "StringX",
		},
		{
			name:        "anonymous extension",
			after:       "extension on String {\n  int get len => length;\n}",
			wantExcerpt: "extension on String {\n  int get len => length;\n}",
			wantElement: "anonymous extension",
		},
		{
			name:        "enum",
			after:       "enum Color { red, green, blue }",
			wantExcerpt: "enum Color { red, green, blue }",
			wantElement: "Color",
		},
		{
			name:        "function with brace body",
			after:       "int add(int a, int b) {\n  return a + b;\n}",
			wantExcerpt: "int add(int a, int b) {\n  return a + b;\n}",
			wantElement: "add",
		},
		{
			name:        "static method",
			after:       "static String greet(String name) {\n  return 'hi $name';\n}",
			wantExcerpt: "static String greet(String name) {\n  return 'hi $name';\n}",
			wantElement: "greet",
		},
		{
			name:        "void function without return type token",
			after:       "main() {\n  run();\n}",
			wantExcerpt: "main() {\n  run();\n}",
			wantElement: "main",
		},
		{
			name:        "arrow function captures through semicolon",
			after:       "int twice(int n) => n * 2;\nint other() => 0;",
			wantExcerpt: "int twice(int n) => n * 2;",
			wantElement: "twice",
		},
		{
			name:        "bare getter with arrow body",
			after:       "String get label => 'legacy';\n",
			wantExcerpt: "String get label => 'legacy';",
			wantElement: "label",
		},
		{
			name:        "variable initializer",
			after:       "final repo = Repository();\nfinal other = 1;",
			wantExcerpt: "final repo = Repository();",
			wantElement: "repo",
		},
		{
			name:        "const with type annotation",
			after:       "static const int retries = 3;",
			wantExcerpt: "static const int retries = 3;",
			wantElement: "retries",
		},
		{
			name:        "initializer skips semicolons inside collection literal",
			after:       "final table = {\n  'a': f(1); // not real dart, still nested\n};\nnext;",
			wantExcerpt: "final table = {\n  'a': f(1); // not real dart, still nested\n};",
			wantElement: "table",
		},
		{
			name:        "late variable",
			after:       "late final Config config = load();",
			wantExcerpt: "late final Config config = load();",
			wantElement: "config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			excerpt, element := ExtractBlock(tt.after, 0)
			if excerpt != tt.wantExcerpt {
				t.Errorf("excerpt = %q, want %q", excerpt, tt.wantExcerpt)
			}
			if element != tt.wantElement {
				t.Errorf("element = %q, want %q", element, tt.wantElement)
			}
		})
	}
}

func TestExtractBlockFallback(t *testing.T) {
	t.Run("unclassifiable text takes five lines and unknown element", func(t *testing.T) {
		after := "1\n2\n3\n4\n5\n6\n7"
		excerpt, element := ExtractBlock(after, 0)
		if excerpt != "1\n2\n3\n4\n5" {
			t.Errorf("excerpt = %q, want first five lines", excerpt)
		}
		if element != elementUnknown {
			t.Errorf("element = %q, want %q", element, elementUnknown)
		}
	})

	t.Run("fallback still guesses a name from keyword-identifier", func(t *testing.T) {
		// Operator overloads defeat the signature patterns but the class
		// keyword inside the captured lines still names the element.
		after := "@override\nclass _Private {\n}"
		_, element := ExtractBlock(after, 0)
		if element != "_Private" {
			t.Errorf("element = %q, want %q", element, "_Private")
		}
	})
}

func TestExtractBlockTruncation(t *testing.T) {
	var b strings.Builder
	b.WriteString("class Big {\n")
	for i := 0; i < 30; i++ {
		b.WriteString("  int field = 0;\n")
	}
	b.WriteString("}")

	excerpt, element := ExtractBlock(b.String(), 15)
	if element != "Big" {
		t.Errorf("element = %q, want Big", element)
	}
	lines := strings.Split(excerpt, "\n")
	if len(lines) != 16 {
		t.Fatalf("truncated excerpt has %d lines, want 15 + marker", len(lines))
	}
	if lines[15] != truncationMarker {
		t.Errorf("last line = %q, want truncation marker", lines[15])
	}
}

func TestExtractBlockUnbalancedBody(t *testing.T) {
	after := "class Broken {\n  int x = 0;\n"
	excerpt, element := ExtractBlock(after, 0)
	if element != "Broken" {
		t.Errorf("element = %q, want Broken", element)
	}
	if excerpt != strings.TrimLeft(after, " \t\r\n") {
		t.Errorf("unbalanced body should capture through end of text, got %q", excerpt)
	}
}
