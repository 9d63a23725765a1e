package reop_test

import (
	"strings"
	"testing"

	"github.com/reop-go/reop/internal/reop"
)

func TestFindPublicKeyInRing(t *testing.T) {
	alicePub, _, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	bobPub, _, err := reop.Generate("bob")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	ring := strings.Join([]string{
		reop.EncodePublicKey(alicePub),
		reop.EncodePublicKey(bobPub),
	}, "\n")

	got, err := reop.FindPublicKeyInRing(ring, "bob")
	if err != nil {
		t.Fatalf("FindPublicKeyInRing: %v", err)
	}
	if got.RandomID != bobPub.RandomID {
		t.Fatal("returned the wrong key")
	}
}

func TestFindPublicKeyInRingLeadingBlankLine(t *testing.T) {
	alicePub, _, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	ring := "\n\n" + reop.EncodePublicKey(alicePub)

	got, err := reop.FindPublicKeyInRing(ring, "alice")
	if err != nil {
		t.Fatalf("FindPublicKeyInRing: %v", err)
	}
	if got.RandomID != alicePub.RandomID {
		t.Fatal("returned the wrong key")
	}
}

func TestFindPublicKeyInRingNotFound(t *testing.T) {
	alicePub, _, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	ring := reop.EncodePublicKey(alicePub)

	_, err = reop.FindPublicKeyInRing(ring, "nobody")
	rerr, ok := err.(*reop.Error)
	if !ok || rerr.Kind != reop.NotFound {
		t.Fatalf("err = %v, want *Error{Kind: NotFound}", err)
	}
}

func TestFindPublicKeyInRingCorrupt(t *testing.T) {
	_, err := reop.FindPublicKeyInRing("-----BEGIN REOP PUBLIC KEY-----\nnonsense\n-----END REOP PUBLIC KEY-----\n", "anyone")
	rerr, ok := err.(*reop.Error)
	if !ok || rerr.Kind != reop.KeyringCorrupt {
		t.Fatalf("err = %v, want *Error{Kind: KeyringCorrupt}", err)
	}
}
