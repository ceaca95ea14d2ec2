package verify

import "testing"

func TestSHA256Hex(t *testing.T) {
	// sha256("") is a well-known constant.
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"[:64]
	if got := SHA256Hex(nil); got != want {
		t.Fatalf("SHA256Hex(nil) = %s, want %s", got, want)
	}
}

func TestVerifyMatch(t *testing.T) {
	data := []byte("the quick brown fox")
	hex := SHA256Hex(data)

	if err := Verify(data, hex); err != nil {
		t.Fatalf("Verify returned error for a matching digest: %v", err)
	}
}

func TestVerifyCaseInsensitive(t *testing.T) {
	data := []byte("the quick brown fox")
	hex := SHA256Hex(data)

	upper := make([]byte, len(hex))
	for i, c := range []byte(hex) {
		if c >= 'a' && c <= 'f' {
			upper[i] = c - 'a' + 'A'
		} else {
			upper[i] = c
		}
	}

	if err := Verify(data, string(upper)); err != nil {
		t.Fatalf("Verify should be case-insensitive, got error: %v", err)
	}
}

func TestVerifyMismatch(t *testing.T) {
	data := []byte("the quick brown fox")
	wrong := SHA256Hex([]byte("something else"))

	err := Verify(data, wrong)
	if err == nil {
		t.Fatal("expected a digest mismatch error")
	}
	mismatch, ok := err.(*DigestMismatchError)
	if !ok {
		t.Fatalf("error = %T, want *DigestMismatchError", err)
	}
	if mismatch.Expected != wrong {
		t.Errorf("Expected = %s, want %s", mismatch.Expected, wrong)
	}
	if mismatch.Actual != SHA256Hex(data) {
		t.Errorf("Actual = %s, want %s", mismatch.Actual, SHA256Hex(data))
	}
}
