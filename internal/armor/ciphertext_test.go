package armor

import "testing"

func TestEncodeDecodeCiphertextRoundTrip(t *testing.T) {
	header := []byte("fixed-size-header-bytes")
	ciphertext := []byte("the actual ciphertext bytes, arbitrary length")

	text := EncodeCiphertext("carol", header, ciphertext)

	ident, gotHeader, gotCiphertext, err := DecodeCiphertext(text)
	if err != nil {
		t.Fatalf("DecodeCiphertext: %v", err)
	}
	if ident != "carol" {
		t.Fatalf("ident = %q, want carol", ident)
	}
	if string(gotHeader) != string(header) {
		t.Fatalf("header mismatch: got %q, want %q", gotHeader, header)
	}
	if string(gotCiphertext) != string(ciphertext) {
		t.Fatalf("ciphertext mismatch: got %q, want %q", gotCiphertext, ciphertext)
	}
}

func TestDecodeCiphertextMissingMarkers(t *testing.T) {
	if _, _, _, err := DecodeCiphertext("not a ciphertext block"); err == nil {
		t.Fatal("expected error")
	}
}
