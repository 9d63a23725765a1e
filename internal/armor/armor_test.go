package armor

import (
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	body := []byte("some fixed-length binary record, not actually checked here")
	text := Encode("PUBLIC KEY", body, "alice")

	if !strings.HasPrefix(text, "-----BEGIN REOP PUBLIC KEY-----\n") {
		t.Fatalf("unexpected begin marker: %q", text[:40])
	}
	if !strings.Contains(text, "ident:alice\n") {
		t.Fatal("missing ident line")
	}

	ident, decoded, err := Decode(text, "PUBLIC KEY", len(body))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if ident != "alice" {
		t.Fatalf("ident = %q, want alice", ident)
	}
	if string(decoded) != string(body) {
		t.Fatalf("body mismatch: got %q, want %q", decoded, body)
	}
}

func TestDecodeWrongLabel(t *testing.T) {
	text := Encode("PUBLIC KEY", []byte("x"), "")
	if _, _, err := Decode(text, "SECRET KEY", 1); err == nil {
		t.Fatal("expected error for mismatched label")
	}
}

func TestDecodeWrongBodyLength(t *testing.T) {
	text := Encode("PUBLIC KEY", []byte("xx"), "")
	if _, _, err := Decode(text, "PUBLIC KEY", 1); err == nil {
		t.Fatal("expected error for wrong body length")
	}
}

func TestIdentTruncatedAtWhitespace(t *testing.T) {
	text := "-----BEGIN REOP PUBLIC KEY-----\nident:alice extra garbage\n" +
		EncodeToString([]byte("x")) + "\n-----END REOP PUBLIC KEY-----\n"
	ident, _, err := Decode(text, "PUBLIC KEY", 1)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if ident != "alice" {
		t.Fatalf("ident = %q, want alice", ident)
	}
}

func TestWrapAt76Columns(t *testing.T) {
	long := strings.Repeat("A", 200)
	wrapped := wrap(long)
	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > columnsPerLine {
			t.Fatalf("line too long: %d bytes", len(line))
		}
	}
}
