package detectors

import "testing"

func TestTrailingWhitespace(t *testing.T) {
	src := []byte("const a = 1;   \nconst b = 2;\n")
	fs := TrailingWhitespace("a.js", src)
	if len(fs) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(fs))
	}
	if fs[0].Line != 1 || fs[0].Fix.Replacement != "const a = 1;" {
		t.Fatalf("unexpected finding: %+v", fs[0])
	}
}

func TestConsoleLog(t *testing.T) {
	src := []byte("  console.log('debug', value);\nconsole.error('keep me')\n")
	fs := ConsoleLog("a.js", src)
	if len(fs) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(fs))
	}
	if fs[0].Fix.Replacement != "" {
		t.Fatalf("expected line removal, got %q", fs[0].Fix.Replacement)
	}
}

func TestVarDeclaration(t *testing.T) {
	src := []byte("var count = 0\nlet ok = true\n")
	fs := VarDeclaration("a.js", src)
	if len(fs) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(fs))
	}
	if fs[0].Confidence >= 0.9 {
		t.Fatalf("var rewrite must be a suggested fix, got %v", fs[0].Confidence)
	}
	if fs[0].Fix.Original != "var " || fs[0].Fix.Replacement != "let " {
		t.Fatalf("unexpected fix: %+v", fs[0].Fix)
	}
}
