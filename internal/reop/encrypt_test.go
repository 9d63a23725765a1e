package reop_test

import (
	"bytes"
	"testing"

	"github.com/reop-go/reop/internal/reop"
)

func TestSymEncryptDecryptRoundTrip(t *testing.T) {
	msg := []byte("a symmetric secret")
	env, ciphertext, err := reop.SymEncrypt(msg, "hunter2")
	if err != nil {
		t.Fatalf("SymEncrypt: %v", err)
	}
	got, err := reop.SymDecrypt(env, "hunter2", ciphertext)
	if err != nil {
		t.Fatalf("SymDecrypt: %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Fatalf("got %q, want %q", got, msg)
	}
}

func TestSymDecryptWrongPassword(t *testing.T) {
	env, ciphertext, err := reop.SymEncrypt([]byte("secret"), "hunter2")
	if err != nil {
		t.Fatalf("SymEncrypt: %v", err)
	}
	_, err = reop.SymDecrypt(env, "wrong", ciphertext)
	rerr, ok := err.(*reop.Error)
	if !ok || rerr.Kind != reop.BadPassphrase {
		t.Fatalf("err = %v, want *Error{Kind: BadPassphrase}", err)
	}
}

func TestSymEncryptFreshSaltAndNonce(t *testing.T) {
	env1, _, err := reop.SymEncrypt([]byte("same message"), "hunter2")
	if err != nil {
		t.Fatalf("SymEncrypt: %v", err)
	}
	env2, _, err := reop.SymEncrypt([]byte("same message"), "hunter2")
	if err != nil {
		t.Fatalf("SymEncrypt: %v", err)
	}
	if env1.Salt == env2.Salt {
		t.Fatal("two SymEncrypt calls produced the same salt")
	}
	if env1.Nonce == env2.Nonce {
		t.Fatal("two SymEncrypt calls produced the same nonce")
	}
}

func TestPubEncryptDecryptRoundTrip(t *testing.T) {
	recipientPub, recipientSec, err := reop.Generate("bob")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	senderPub, senderSec, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	msg := []byte("attack at dawn")
	env, ciphertext, err := reop.PubEncrypt(recipientPub, senderSec, msg)
	if err != nil {
		t.Fatalf("PubEncrypt: %v", err)
	}

	got, err := reop.PubDecrypt(env, senderPub, recipientSec, ciphertext)
	if err != nil {
		t.Fatalf("PubDecrypt: %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Fatalf("got %q, want %q", got, msg)
	}
}

func TestPubDecryptDetectsTamperedCiphertext(t *testing.T) {
	recipientPub, recipientSec, err := reop.Generate("bob")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	senderPub, senderSec, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	env, ciphertext, err := reop.PubEncrypt(recipientPub, senderSec, []byte("attack at dawn"))
	if err != nil {
		t.Fatalf("PubEncrypt: %v", err)
	}
	tampered := append([]byte(nil), ciphertext...)
	tampered[0] ^= 0xff

	_, err = reop.PubDecrypt(env, senderPub, recipientSec, tampered)
	rerr, ok := err.(*reop.Error)
	if !ok || rerr.Kind != reop.AuthFail {
		t.Fatalf("err = %v, want *Error{Kind: AuthFail}", err)
	}
}

func TestPubDecryptDetectsIdentifierMismatch(t *testing.T) {
	recipientPub, recipientSec, err := reop.Generate("bob")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	_, senderSec, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	impostorPub, _, err := reop.Generate("mallory")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	env, ciphertext, err := reop.PubEncrypt(recipientPub, senderSec, []byte("attack at dawn"))
	if err != nil {
		t.Fatalf("PubEncrypt: %v", err)
	}

	_, err = reop.PubDecrypt(env, impostorPub, recipientSec, ciphertext)
	rerr, ok := err.(*reop.Error)
	if !ok || rerr.Kind != reop.Mismatch {
		t.Fatalf("err = %v, want *Error{Kind: Mismatch}", err)
	}
}
