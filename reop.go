// Package reop implements the reop file-encryption and signing format: a
// small Ed25519/X25519 personal key toolkit in the style of signify, with
// sender-authenticated public-key encryption layered on top.
//
// This is a narrow public surface over internal/reop to let callers
// encrypt, decrypt, sign and verify as a library without reaching into
// the wire or armor packages directly.
package reop

import (
	"github.com/reop-go/reop/internal/reop"
	"github.com/reop-go/reop/internal/wire"
)

type (
	PublicKey  = reop.PublicKey
	SecretKey  = reop.SecretKey
	Signature  = reop.Signature
	Decrypted  = reop.Decrypted
	VerifyResult = reop.VerifyResult
	Kind       = reop.Kind
	Error      = reop.Error
)

const (
	VerifyOK      = reop.VerifyOK
	VerifyMismatch = reop.VerifyMismatch
	VerifyBad     = reop.VerifyBad
)

const (
	InvalidFormat  = reop.InvalidFormat
	UnsupportedKey = reop.UnsupportedKey
	UnsupportedKdf = reop.UnsupportedKdf
	BadPassphrase  = reop.BadPassphrase
	Mismatch       = reop.Mismatch
	AuthFail       = reop.AuthFail
	KeyringCorrupt = reop.KeyringCorrupt
	NotFound       = reop.NotFound
)

// HeaderKind re-exports the envelope kind a decrypted message actually
// came from, so callers can warn on legacy formats.
type HeaderKind = wire.HeaderKind

const (
	KindSym       = wire.KindSym
	KindEph       = wire.KindEph
	KindLegacyEnc = wire.KindLegacyEnc
	KindLegacyEph = wire.KindLegacyEph
)

func Init() { reop.Init() }

// Generate creates a fresh keypair under one random identifier, with
// ident truncated to the on-wire identifier field if necessary.
func Generate(ident string) (*PublicKey, *SecretKey, error) {
	return reop.Generate(ident)
}

func EncodePublicKey(pub *PublicKey) string         { return reop.EncodePublicKey(pub) }
func ParsePublicKey(text string) (*PublicKey, error) { return reop.ParsePublicKey(text) }

// WrapSecretKey and UnwrapSecretKey move a SecretKey to and from its
// armored, passphrase-sealed on-disk form. The empty password is the "no
// password" sentinel: resolving a real passphrase from the environment
// or a terminal prompt is the caller's responsibility.
func WrapSecretKey(sec *SecretKey, password string) (string, error) {
	return reop.WrapSecretKey(sec, password)
}

func UnwrapSecretKey(text string, password string) (*SecretKey, error) {
	return reop.UnwrapSecretKey(text, password)
}

// SecretKeyNeedsPassphrase reports whether a wrapped secret key will
// need a real passphrase to unwrap, so a caller can skip prompting for
// a key that was generated with no passphrase.
func SecretKeyNeedsPassphrase(text string) (bool, error) {
	return reop.SecretKeyNeedsPassphrase(text)
}

func Sign(sec *SecretKey, msg []byte) *Signature { return reop.Sign(sec, msg) }

func Verify(pub *PublicKey, msg []byte, sig *Signature) VerifyResult {
	return reop.Verify(pub, msg, sig)
}

func EncodeSignature(sig *Signature) string          { return reop.EncodeSignature(sig) }
func ParseSignature(text string) (*Signature, error) { return reop.ParseSignature(text) }

func EncodeSignedMessage(sig *Signature, msg []byte) string {
	return reop.EncodeSignedMessage(sig, msg)
}

func ParseSignedMessage(text string) ([]byte, *Signature, error) {
	return reop.ParseSignedMessage(text)
}

// EncryptSymToArmor and EncryptSymToBinary seal msg under a passphrase,
// rendering the result as armored text or as a binary frame respectively.
func EncryptSymToArmor(msg []byte, password string) (string, error) {
	return reop.EncryptSymToArmor(msg, password)
}

func EncryptSymToBinary(msg []byte, password string) ([]byte, error) {
	return reop.EncryptSymToBinary(msg, password)
}

// EncryptPubToArmor and EncryptPubToBinary seal msg from sec to pub,
// authenticated as coming from sec's holder.
func EncryptPubToArmor(pub *PublicKey, sec *SecretKey, msg []byte) (string, error) {
	return reop.EncryptPubToArmor(pub, sec, msg)
}

func EncryptPubToBinary(pub *PublicKey, sec *SecretKey, msg []byte) ([]byte, error) {
	return reop.EncryptPubToBinary(pub, sec, msg)
}

// Decrypt dispatches an arbitrary ciphertext message, textual or binary,
// symmetric or public-key (current or legacy), returning the recovered
// plaintext. pub may be nil if only symmetric decryption is wanted; sec
// may be nil if the caller only has a public key to attempt verification
// of sender identity elsewhere.
func Decrypt(data []byte, password string, pub *PublicKey, sec *SecretKey) (*Decrypted, error) {
	return reop.Decrypt(data, password, pub, sec)
}

// PeekKind identifies the envelope kind of a framed message without
// opening it. Callers can use this to gather only the key material a
// given kind actually needs (a passphrase for KindSym; a secret key
// for KindEph, KindLegacyEnc and KindLegacyEph) before calling Decrypt.
func PeekKind(data []byte) (HeaderKind, error) {
	return reop.PeekKind(data)
}

// PubEncryptV1Compat gives callers explicit access to the pre-ephemeral
// "CS" envelope format, for compatibility with older reop
// implementations. Decrypt dispatches legacy envelopes transparently;
// the legacy decrypt functions themselves are not re-exported here.
func PubEncryptV1Compat(pub *PublicKey, sec *SecretKey, msg []byte) (*reop.LegacyEnvelope, []byte, error) {
	return reop.PubEncryptV1Compat(pub, sec, msg)
}

// EncryptPubToArmorV1Compat and EncryptPubToBinaryV1Compat produce the
// legacy "CS" direct envelope, fully framed, for the explicit v1-compat
// encrypt mode.
func EncryptPubToArmorV1Compat(pub *PublicKey, sec *SecretKey, msg []byte) (string, error) {
	return reop.EncryptPubToArmorV1Compat(pub, sec, msg)
}

func EncryptPubToBinaryV1Compat(pub *PublicKey, sec *SecretKey, msg []byte) ([]byte, error) {
	return reop.EncryptPubToBinaryV1Compat(pub, sec, msg)
}

// FindPublicKeyInRing looks up a public key by identifier in a
// newline-joined keyring of armored public key blocks.
func FindPublicKeyInRing(ringText string, ident string) (*PublicKey, error) {
	return reop.FindPublicKeyInRing(ringText, ident)
}
