package reop_test

import (
	"bytes"
	"testing"

	"github.com/reop-go/reop/internal/reop"
)

func TestGenerateProducesDistinctKeys(t *testing.T) {
	pub1, sec1, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	pub2, sec2, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if pub1.RandomID == pub2.RandomID {
		t.Fatal("two Generate calls produced the same random identifier")
	}
	if bytes.Equal(pub1.SigKey, pub2.SigKey) {
		t.Fatal("two Generate calls produced the same signing key")
	}
	if sec1.EncKey == sec2.EncKey {
		t.Fatal("two Generate calls produced the same encryption key")
	}
}

func TestPublicKeyEncodeParseRoundTrip(t *testing.T) {
	pub, _, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	text := reop.EncodePublicKey(pub)
	got, err := reop.ParsePublicKey(text)
	if err != nil {
		t.Fatalf("ParsePublicKey: %v", err)
	}
	if got.RandomID != pub.RandomID || !bytes.Equal(got.SigKey, pub.SigKey) || got.EncKey != pub.EncKey {
		t.Fatal("round trip mismatch")
	}
	if got.Ident != "alice" {
		t.Fatalf("Ident = %q, want alice", got.Ident)
	}
}

func TestWrapUnwrapSecretKeyWithPassphrase(t *testing.T) {
	_, sec, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	wrapped, err := reop.WrapSecretKey(sec, "correct horse battery staple")
	if err != nil {
		t.Fatalf("WrapSecretKey: %v", err)
	}

	got, err := reop.UnwrapSecretKey(wrapped, "correct horse battery staple")
	if err != nil {
		t.Fatalf("UnwrapSecretKey: %v", err)
	}
	if got.RandomID != sec.RandomID || !bytes.Equal(got.SigKey, sec.SigKey) || got.EncKey != sec.EncKey {
		t.Fatal("round trip mismatch")
	}
}

func TestWrapUnwrapSecretKeyNoPassphraseSentinel(t *testing.T) {
	_, sec, err := reop.Generate("")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	wrapped, err := reop.WrapSecretKey(sec, "")
	if err != nil {
		t.Fatalf("WrapSecretKey: %v", err)
	}
	if _, err := reop.UnwrapSecretKey(wrapped, ""); err != nil {
		t.Fatalf("UnwrapSecretKey with empty password: %v", err)
	}
}

func TestSecretKeyNeedsPassphrase(t *testing.T) {
	_, secNoPass, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	wrappedNoPass, err := reop.WrapSecretKey(secNoPass, "")
	if err != nil {
		t.Fatalf("WrapSecretKey: %v", err)
	}
	needs, err := reop.SecretKeyNeedsPassphrase(wrappedNoPass)
	if err != nil {
		t.Fatalf("SecretKeyNeedsPassphrase: %v", err)
	}
	if needs {
		t.Fatal("no-passphrase key reported as needing a passphrase")
	}

	_, secWithPass, err := reop.Generate("bob")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	wrappedWithPass, err := reop.WrapSecretKey(secWithPass, "hunter2")
	if err != nil {
		t.Fatalf("WrapSecretKey: %v", err)
	}
	needs, err = reop.SecretKeyNeedsPassphrase(wrappedWithPass)
	if err != nil {
		t.Fatalf("SecretKeyNeedsPassphrase: %v", err)
	}
	if !needs {
		t.Fatal("passphrase-protected key reported as not needing a passphrase")
	}
}

func TestUnwrapSecretKeyBadPassphrase(t *testing.T) {
	_, sec, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	wrapped, err := reop.WrapSecretKey(sec, "correct passphrase")
	if err != nil {
		t.Fatalf("WrapSecretKey: %v", err)
	}

	_, err = reop.UnwrapSecretKey(wrapped, "wrong passphrase")
	rerr, ok := err.(*reop.Error)
	if !ok || rerr.Kind != reop.BadPassphrase {
		t.Fatalf("err = %v, want *Error{Kind: BadPassphrase}", err)
	}
}
