package reop_test

import (
	"testing"

	"github.com/reop-go/reop/internal/reop"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	pub, sec, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	msg := []byte("attack at dawn")
	sig := reop.Sign(sec, msg)

	if got := reop.Verify(pub, msg, sig); got != reop.VerifyOK {
		t.Fatalf("Verify = %v, want VerifyOK", got)
	}
}

func TestVerifyDetectsTamperedMessage(t *testing.T) {
	pub, sec, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	sig := reop.Sign(sec, []byte("attack at dawn"))
	if got := reop.Verify(pub, []byte("attack at dusk"), sig); got != reop.VerifyBad {
		t.Fatalf("Verify = %v, want VerifyBad", got)
	}
}

func TestVerifyDetectsKeyMismatchBeforeCrypto(t *testing.T) {
	_, sec1, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	pub2, _, err := reop.Generate("bob")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	sig := reop.Sign(sec1, []byte("attack at dawn"))
	if got := reop.Verify(pub2, []byte("attack at dawn"), sig); got != reop.VerifyMismatch {
		t.Fatalf("Verify = %v, want VerifyMismatch", got)
	}
}

func TestSignatureArmorRoundTrip(t *testing.T) {
	_, sec, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	sig := reop.Sign(sec, []byte("attack at dawn"))
	text := reop.EncodeSignature(sig)

	got, err := reop.ParseSignature(text)
	if err != nil {
		t.Fatalf("ParseSignature: %v", err)
	}
	if got.RandomID != sig.RandomID {
		t.Fatal("random identifier mismatch after round trip")
	}
}

func TestEmbeddedSignedMessageRoundTrip(t *testing.T) {
	pub, sec, err := reop.Generate("alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	msg := []byte("the whole message, verbatim\nwith a second line\n")
	sig := reop.Sign(sec, msg)
	text := reop.EncodeSignedMessage(sig, msg)

	gotMsg, gotSig, err := reop.ParseSignedMessage(text)
	if err != nil {
		t.Fatalf("ParseSignedMessage: %v", err)
	}
	if string(gotMsg) != string(msg) {
		t.Fatalf("message mismatch: got %q, want %q", gotMsg, msg)
	}
	if reop.Verify(pub, gotMsg, gotSig) != reop.VerifyOK {
		t.Fatal("recovered signature does not verify")
	}
}
