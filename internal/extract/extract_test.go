package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Backend Engineer</w:t></w:r></w:p>
<w:p><w:r><w:t>Experience with Go, Kubernetes and PostgreSQL.</w:t></w:r></w:p>
</w:body>
</w:document>`

const documentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func buildDocx(t *testing.T) []byte {
	return buildZip(t, map[string]string{
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": documentRels,
	})
}

func TestTextDocx(t *testing.T) {
	got, err := Text(context.Background(), buildDocx(t), mimeDOCX, "jd.docx")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	want := "Backend Engineer\nExperience with Go, Kubernetes and PostgreSQL."
	if got != want {
		t.Fatalf("unexpected text:\n%q\nwant\n%q", got, want)
	}
}

func TestTextZipDocxNormalizes(t *testing.T) {
	if _, err := Text(context.Background(), buildDocx(t), "application/zip", "jd.docx"); err != nil {
		t.Fatalf("expected docx to extract from zip mime, got error: %v", err)
	}
}

func TestTextRealZipRejected(t *testing.T) {
	data := buildZip(t, map[string]string{"notes.txt": "hello"})

	_, err := Text(context.Background(), data, "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if !strings.Contains(err.Error(), "application/zip") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTextPlainFromExtension(t *testing.T) {
	got, err := Text(context.Background(), []byte("  We need React and AWS.\n"), "application/octet-stream", "jd.txt")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "We need React and AWS." {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestTextRejectsInvalidUTF8(t *testing.T) {
	_, err := Text(context.Background(), []byte{0xff, 0xfe, 0xfd}, "text/plain", "jd.txt")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestTextBrokenPDF(t *testing.T) {
	_, err := Text(context.Background(), []byte("not a pdf"), "application/pdf", "jd.pdf")
	if err == nil {
		t.Fatalf("expected error for broken pdf")
	}
	if errors.Is(err, ErrUnsupported) {
		t.Fatalf("broken pdf should not be reported as unsupported: %v", err)
	}
}

func TestTextHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Text(ctx, []byte("x"), "text/plain", "jd.txt"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
