package reop_test

import (
	"bytes"
	"testing"

	"github.com/reop-go/reop"
)

func TestEndToEndSignAndEncrypt(t *testing.T) {
	recipientPub, recipientSec, err := reop.Generate("bob")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	senderPub, senderSec, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	defer recipientSec.Zero()
	defer senderSec.Zero()

	msg := []byte("the launch code is 00000000")

	sig := reop.Sign(senderSec, msg)
	if reop.Verify(senderPub, msg, sig) != reop.VerifyOK {
		t.Fatal("signature did not verify")
	}

	armored, err := reop.EncryptPubToArmor(recipientPub, senderSec, msg)
	if err != nil {
		t.Fatalf("EncryptPubToArmor: %v", err)
	}

	result, err := reop.Decrypt([]byte(armored), "", senderPub, recipientSec)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(result.Plaintext, msg) {
		t.Fatalf("got %q, want %q", result.Plaintext, msg)
	}
}

func TestWrapAndUnwrapKeypairFile(t *testing.T) {
	_, sec, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	wrapped, err := reop.WrapSecretKey(sec, "s3cr3t")
	if err != nil {
		t.Fatalf("WrapSecretKey: %v", err)
	}
	got, err := reop.UnwrapSecretKey(wrapped, "s3cr3t")
	if err != nil {
		t.Fatalf("UnwrapSecretKey: %v", err)
	}
	if got.RandomID != sec.RandomID {
		t.Fatal("random identifier mismatch after wrap/unwrap")
	}
}
