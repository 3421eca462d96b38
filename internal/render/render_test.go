package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func resetRenderState() {
	globalVars = nil
	templateDir = ""
	embedTemplate = nil
}

func TestRenderHTMLEmbedded(t *testing.T) {
	resetRenderState()
	if err := Initialize(map[string]interface{}{"siteName": "Embedded"}, ""); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	out, err := RenderHTML("mail/welcome", map[string]interface{}{"fullName": "John"})
	if err != nil {
		t.Fatalf("RenderHTML returned error: %v", err)
	}
	if !strings.Contains(out, "John") {
		t.Fatalf("expected rendered output to contain the variable, got %q", out)
	}
	if !strings.Contains(out, "Embedded") {
		t.Fatalf("expected rendered output to contain the global siteName")
	}
}

func TestRenderHTMLEscapesVariables(t *testing.T) {
	resetRenderState()
	if err := Initialize(nil, ""); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	out, err := RenderHTML("mail/welcome", map[string]interface{}{"fullName": `<script>alert(1)</script>`})
	if err != nil {
		t.Fatalf("RenderHTML returned error: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("template output must escape HTML in variables")
	}
}

func TestRenderHTMLDirOverridesEmbedded(t *testing.T) {
	resetRenderState()
	tmpDir := t.TempDir()
	content := "OVERRIDE_ERROR_INTERNAL"
	if err := os.WriteFile(filepath.Join(tmpDir, "error-internal.html"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp template: %v", err)
	}

	if err := Initialize(map[string]interface{}{}, tmpDir); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	out, err := RenderHTML("error-internal", nil)
	if err != nil {
		t.Fatalf("RenderHTML returned error: %v", err)
	}
	if out != content {
		t.Fatalf("expected overridden content %q, got %q", content, out)
	}
}

func TestRenderHTMLFallbackOnDiskFailure(t *testing.T) {
	resetRenderState()
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "error-internal.html"), []byte("{{ ."), 0o644); err != nil {
		t.Fatalf("failed to write broken temp template: %v", err)
	}

	if err := Initialize(map[string]interface{}{}, tmpDir); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	out, err := RenderHTML("error-internal", nil)
	if err != nil {
		t.Fatalf("RenderHTML should have fallen back to embedded template, got error: %v", err)
	}
	if out == "" {
		t.Fatalf("expected non-empty HTML from embedded fallback")
	}
}
