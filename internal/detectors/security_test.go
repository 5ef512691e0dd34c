package detectors

import "testing"

func TestServiceRoleInClient(t *testing.T) {
	src := []byte("const key = import.meta.env.SUPABASE_SERVICE_ROLE_KEY")
	fs := ServiceRoleInClient("src/lib/supabase.js", src)
	if len(fs) != 1 {
		t.Fatalf("expected finding")
	}
	if fs[0].Fix != nil {
		t.Fatalf("security findings must be report-only")
	}
}

func TestHardcodedCredential(t *testing.T) {
	pos := []byte(`const key = "sk-abcdefghijklmnopqrstuvwxyz123456"`)
	if len(HardcodedCredential("a.js", pos)) == 0 {
		t.Fatalf("expected finding")
	}
	neg := []byte(`const key = import.meta.env.VITE_API_KEY`)
	if len(HardcodedCredential("a.js", neg)) != 0 {
		t.Fatalf("unexpected finding")
	}
}

func TestDangerousHTML(t *testing.T) {
	src := []byte(`<div dangerouslySetInnerHTML={{ __html: content }} />`)
	if len(DangerousHTML("a.jsx", src)) != 1 {
		t.Fatalf("expected finding")
	}
}

func TestEvalCall(t *testing.T) {
	if len(EvalCall("a.js", []byte("eval(input)"))) != 1 {
		t.Fatalf("expected finding")
	}
	if len(EvalCall("a.js", []byte("evaluate(input)"))) != 0 {
		t.Fatalf("unexpected finding")
	}
}
