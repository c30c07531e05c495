package extract

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		ext  string
		want bool
	}{
		{".pdf", true},
		{".docx", true},
		{".txt", true},
		{".md", true},
		{".PDF", true},
		{".exe", false},
		{".doc", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := Supported(tt.ext); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}

func TestExtractPlainText(t *testing.T) {
	got, err := NewExtractor().ExtractBytes([]byte("gizi seimbang untuk balita"), ".txt")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "gizi seimbang untuk balita" {
		t.Errorf("ExtractBytes = %q", got)
	}
}

func TestExtractPlainInvalidUTF8(t *testing.T) {
	got, err := NewExtractor().ExtractBytes([]byte{'g', 'i', 'z', 'i', 0xff, 0xfe}, ".txt")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if !strings.HasPrefix(got, "gizi") {
		t.Errorf("ExtractBytes = %q, lost valid prefix", got)
	}
	if !strings.Contains(got, "�") {
		t.Errorf("ExtractBytes = %q, invalid bytes not replaced", got)
	}
}

func TestExtractDOCX(t *testing.T) {
	documentXML := `<?xml version="1.0"?>
<w:document><w:body>
<w:p><w:r><w:t>Stunting adalah</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">gagal tumbuh kronis.</w:t></w:r></w:p>
</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	fw, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := fw.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	got, err := NewExtractor().ExtractBytes(buf.Bytes(), ".docx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if !strings.Contains(got, "Stunting adalah") || !strings.Contains(got, "gagal tumbuh kronis.") {
		t.Errorf("ExtractBytes = %q, missing document runs", got)
	}
}

func TestExtractDOCXNotAZip(t *testing.T) {
	if _, err := NewExtractor().ExtractBytes([]byte("not a zip"), ".docx"); err == nil {
		t.Error("expected error for malformed docx")
	}
}

func TestExtractFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catatan.md")
	if err := os.WriteFile(path, []byte("# Gizi\n\nkandungan protein harian"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := NewExtractor().Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(got, "kandungan protein harian") {
		t.Errorf("Extract = %q", got)
	}

	if _, err := NewExtractor().Extract(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
