package util

import "testing"

func TestHashOwner(t *testing.T) {
	id := "guest:12345"
	got := HashOwner(id)
	if got != HashOwner(id) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
	if HashOwner("guest:1") == HashOwner("user:1") {
		t.Fatalf("expected distinct hashes")
	}
}
