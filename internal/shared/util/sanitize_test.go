package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	got, err := SanitizeFileName(" jd/backend.pdf ")
	if err != nil || got != "jd_backend.pdf" {
		t.Fatalf("unexpected: %q %v", got, err)
	}
	if _, err := SanitizeFileName("../etc/passwd"); err == nil {
		t.Fatalf("expected traversal rejection")
	}
	if _, err := SanitizeFileName("   "); err == nil {
		t.Fatalf("expected empty rejection")
	}
}

func TestFileExt(t *testing.T) {
	if got := FileExt("Role.DOCX"); got != ".docx" {
		t.Fatalf("expected .docx, got %q", got)
	}
	if got := FileExt("notes"); got != "" {
		t.Fatalf("expected empty ext, got %q", got)
	}
}

func TestAttachmentName(t *testing.T) {
	cases := map[string]string{
		"Acme Corp":                "Acme Corp",
		` Acme"; filename="x.exe `: "Acme__ filename__x.exe",
		"a/b\\c\r\nd":              "a_b_c__d",
		"Zoë-Labs_2":               "Zoë-Labs_2",
	}
	for in, want := range cases {
		if got := AttachmentName(in); got != want {
			t.Fatalf("AttachmentName(%q) = %q, want %q", in, got, want)
		}
	}
}
