package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoader_PlainText(t *testing.T) {
	l := NewLoader(0)
	path := writeFixture(t, "notice.txt", "Policy Number: POL-1234\n")

	text, err := l.Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if text != "Policy Number: POL-1234\n" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestLoader_UppercaseExtension(t *testing.T) {
	l := NewLoader(0)
	path := writeFixture(t, "notice.TXT", "Claimant: John Doe\n")

	text, err := l.Load(path)
	if err != nil {
		t.Fatalf("expected no error for uppercase extension, got %v", err)
	}
	if !strings.Contains(text, "Claimant: John Doe") {
		t.Errorf("unexpected text %q", text)
	}
}

func TestLoader_HTML(t *testing.T) {
	l := NewLoader(0)
	content := `<html>
<head>
	<script>var hidden = "Policy Number: SCRIPT-1";</script>
	<style>body { color: red; }</style>
</head>
<body>
	<p>Policy Number: POL-5678</p>
	<p>Claimant: John Doe</p>
</body>
</html>`
	path := writeFixture(t, "notice.html", content)

	text, err := l.Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.Contains(text, "Policy Number: POL-5678") {
		t.Errorf("expected label line to survive HTML extraction, got %q", text)
	}
	if !strings.Contains(text, "Claimant: John Doe") {
		t.Errorf("expected claimant line, got %q", text)
	}
	if strings.Contains(text, "SCRIPT-1") {
		t.Error("script content must not appear in extracted text")
	}
	if strings.Contains(text, "color: red") {
		t.Error("style content must not appear in extracted text")
	}

	// Block elements become line breaks so label matching works downstream
	if !strings.Contains(text, "\n") {
		t.Error("expected block boundaries preserved as newlines")
	}
}

func TestLoader_UnsupportedFormat(t *testing.T) {
	l := NewLoader(0)
	path := writeFixture(t, "notice.docx", "whatever")

	if _, err := l.Load(path); err == nil {
		t.Error("expected error for unsupported format, got nil")
	}
}

func TestLoader_MissingFile(t *testing.T) {
	l := NewLoader(0)
	if _, err := l.Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoader_ReadCap(t *testing.T) {
	l := NewLoader(10)
	path := writeFixture(t, "big.txt", strings.Repeat("x", 100))

	text, err := l.Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(text) != 10 {
		t.Errorf("expected read capped at 10 bytes, got %d", len(text))
	}
}

func TestLoader_InvalidPDF(t *testing.T) {
	l := NewLoader(0)
	path := writeFixture(t, "broken.pdf", "not a pdf at all")

	if _, err := l.Load(path); err == nil {
		t.Error("expected error for invalid PDF, got nil")
	}
}

func TestVisibleText_BlockBoundaries(t *testing.T) {
	text, err := visibleText("<div>Location: 123 Main St</div><div>Claim Type: auto</div>")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// The two labels must not run together on one line
	idx := strings.Index(text, "Claim Type")
	if idx < 0 {
		t.Fatalf("expected claim type label, got %q", text)
	}
	if !strings.Contains(text[:idx], "\n") || !strings.Contains(text, "Location: 123 Main St") {
		t.Errorf("expected newline between block elements, got %q", text)
	}
}

func TestWriteShownText(t *testing.T) {
	stream := []byte(`BT /F1 12 Tf (Policy Number: POL-9) Tj T* (Claimant: Jane Roe) Tj ET`)

	var buf strings.Builder
	writeShownText(&buf, stream)
	text := buf.String()

	if !strings.Contains(text, "Policy Number: POL-9") {
		t.Errorf("expected Tj operand in output, got %q", text)
	}
	if !strings.Contains(text, "Claimant: Jane Roe") {
		t.Errorf("expected second Tj operand, got %q", text)
	}
	if !strings.Contains(text, "Policy Number: POL-9\nClaimant") {
		t.Errorf("expected T* to produce a line break, got %q", text)
	}
}

func TestWriteShownText_TJArray(t *testing.T) {
	stream := []byte(`[(Estimated ) -20 (Damage: $4,500)] TJ`)

	var buf strings.Builder
	writeShownText(&buf, stream)
	text := buf.String()

	if !strings.Contains(text, "Estimated Damage: $4,500") {
		t.Errorf("expected TJ array strings concatenated, got %q", text)
	}
}

func TestUnescapePDFString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, "plain"},
		{`paren \( and \)`, "paren ( and )"},
		{`back\\slash`, `back\slash`},
		{`line\nbreak`, "line\nbreak"},
		{`tab\there`, "tab\there"},
		{`octal \101`, "octal A"},
	}
	for _, tt := range tests {
		if got := unescapePDFString(tt.in); got != tt.want {
			t.Errorf("unescapePDFString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
