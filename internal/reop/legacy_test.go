package reop_test

import (
	"bytes"
	"testing"

	"github.com/reop-go/reop/internal/reop"
)

func TestLegacyPubEncryptV1CompatRoundTrip(t *testing.T) {
	recipientPub, recipientSec, err := reop.Generate("bob")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	senderPub, senderSec, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	msg := []byte("attack at dawn")
	env, ciphertext, err := reop.PubEncryptV1Compat(recipientPub, senderSec, msg)
	if err != nil {
		t.Fatalf("PubEncryptV1Compat: %v", err)
	}

	got, err := reop.LegacyDecrypt(env, senderPub, recipientSec, ciphertext)
	if err != nil {
		t.Fatalf("LegacyDecrypt (forward orientation): %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Fatalf("got %q, want %q", got, msg)
	}

	// The reverse orientation of (pub, sec) against the same envelope is
	// also accepted, per the preserved duplicated-comparison behavior.
	got2, err := reop.LegacyDecrypt(env, recipientPub, senderSec, ciphertext)
	if err != nil {
		t.Fatalf("LegacyDecrypt (reverse orientation): %v", err)
	}
	if !bytes.Equal(got2, msg) {
		t.Fatalf("got %q, want %q", got2, msg)
	}
}

func TestLegacyDecryptRejectsUnrelatedKeys(t *testing.T) {
	recipientPub, _, err := reop.Generate("bob")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	_, senderSec, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	env, ciphertext, err := reop.PubEncryptV1Compat(recipientPub, senderSec, []byte("attack at dawn"))
	if err != nil {
		t.Fatalf("PubEncryptV1Compat: %v", err)
	}

	unrelatedPub, unrelatedSec, err := reop.Generate("mallory")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	_, err = reop.LegacyDecrypt(env, unrelatedPub, unrelatedSec, ciphertext)
	rerr, ok := err.(*reop.Error)
	if !ok || rerr.Kind != reop.Mismatch {
		t.Fatalf("err = %v, want *Error{Kind: Mismatch}", err)
	}
}
