package reop

import (
	"crypto/rand"

	"golang.org/x/crypto/nacl/box"

	"github.com/reop-go/reop/internal/wire"
)

// SymEnvelope is the symmetric (passphrase) encryption envelope header.
type SymEnvelope struct {
	KdfRounds uint32
	Salt      [wire.SaltBytes]byte
	Nonce     [wire.SymNonceBytes]byte
	Tag       [wire.SymTagBytes]byte
}

func (e *SymEnvelope) toWire() *wire.SymMessage {
	w := &wire.SymMessage{KdfRounds: e.KdfRounds, Salt: e.Salt, Nonce: e.Nonce, Tag: e.Tag}
	copy(w.SymAlg[:], wire.AlgSym)
	copy(w.KdfAlg[:], wire.AlgKdf)
	return w
}

func symEnvelopeFromWire(w *wire.SymMessage) *SymEnvelope {
	return &SymEnvelope{KdfRounds: w.KdfRounds, Salt: w.Salt, Nonce: w.Nonce, Tag: w.Tag}
}

// SymEncrypt seals msg under a key derived from password (kdfrounds=42,
// a fresh salt). Resolving password is the caller's responsibility, as
// with WrapSecretKey.
func SymEncrypt(msg []byte, password string) (*SymEnvelope, []byte, error) {
	var salt [wire.SaltBytes]byte
	if b, err := randomBytes(wire.SaltBytes); err != nil {
		return nil, nil, err
	} else {
		copy(salt[:], b)
	}

	key := deriveKey(salt[:], kdfRounds, password, wire.SymKeyBytes)
	var symKey [wire.SymKeyBytes]byte
	copy(symKey[:], key)
	zeroBytes(key)
	defer zero32(&symKey)

	ciphertext, nonce, tag, err := secretboxSeal(msg, &symKey)
	if err != nil {
		return nil, nil, err
	}

	return &SymEnvelope{KdfRounds: kdfRounds, Salt: salt, Nonce: nonce, Tag: tag}, ciphertext, nil
}

// SymDecrypt opens a symmetric envelope produced by SymEncrypt (or by
// the decrypt dispatcher after recognizing the "SP" tag).
func SymDecrypt(env *SymEnvelope, password string, ciphertext []byte) ([]byte, error) {
	key := deriveKey(env.Salt[:], int(env.KdfRounds), password, wire.SymKeyBytes)
	var symKey [wire.SymKeyBytes]byte
	copy(symKey[:], key)
	zeroBytes(key)
	defer zero32(&symKey)

	plaintext, ok := secretboxOpen(ciphertext, env.Nonce, env.Tag, &symKey)
	if !ok {
		return nil, newErr(BadPassphrase)
	}
	return plaintext, nil
}

// PubEnvelope is the current (§4.5) ephemeral-wrapped authenticated
// public-key envelope.
type PubEnvelope struct {
	SecRandomID [wire.RandomIDLen]byte
	PubRandomID [wire.RandomIDLen]byte
	EphPubKey   [wire.EncPubBytes]byte
	EphNonce    [wire.EncNonceBytes]byte
	EphTag      [wire.EncTagBytes]byte
	Nonce       [wire.EncNonceBytes]byte
	Tag         [wire.EncTagBytes]byte
	Ident       string
}

func (e *PubEnvelope) toWire() *wire.EncMessage {
	w := &wire.EncMessage{
		SecRandomID: e.SecRandomID,
		PubRandomID: e.PubRandomID,
		EphPubKey:   e.EphPubKey,
		EphNonce:    e.EphNonce,
		EphTag:      e.EphTag,
		Nonce:       e.Nonce,
		Tag:         e.Tag,
		Ident:       e.Ident,
	}
	copy(w.EncAlg[:], wire.AlgEph)
	return w
}

func pubEnvelopeFromWire(w *wire.EncMessage, ident string) *PubEnvelope {
	return &PubEnvelope{
		SecRandomID: w.SecRandomID,
		PubRandomID: w.PubRandomID,
		EphPubKey:   w.EphPubKey,
		EphNonce:    w.EphNonce,
		EphTag:      w.EphTag,
		Nonce:       w.Nonce,
		Tag:         w.Tag,
		Ident:       ident,
	}
}

// PubEncrypt encrypts msg to pub, authenticated as having come from the
// holder of sec's secret key, using a fresh ephemeral encryption keypair
// whose public half is itself sealed to pub under sec's static key.
// The ephemeral secret key is zeroed before returning.
func PubEncrypt(pub *PublicKey, sec *SecretKey, msg []byte) (*PubEnvelope, []byte, error) {
	ephPub, ephSec, err := generateX25519()
	if err != nil {
		return nil, nil, err
	}
	defer zero32(ephSec)

	ciphertext, nonce, tag, err := boxSeal(msg, &pub.EncKey, ephSec)
	if err != nil {
		return nil, nil, err
	}

	ephPubBytes := append([]byte(nil), ephPub[:]...)
	ephCiphertext, ephNonce, ephTag, err := boxSeal(ephPubBytes, &pub.EncKey, &sec.EncKey)
	if err != nil {
		return nil, nil, err
	}

	env := &PubEnvelope{
		SecRandomID: sec.RandomID,
		PubRandomID: pub.RandomID,
		EphNonce:    ephNonce,
		EphTag:      ephTag,
		Nonce:       nonce,
		Tag:         tag,
		Ident:       sec.Ident,
	}
	copy(env.EphPubKey[:], ephCiphertext)
	return env, ciphertext, nil
}

// PubDecrypt reverses PubEncrypt. The caller supplies the sender's
// purported public key; identifiers are checked before any crypto runs.
func PubDecrypt(env *PubEnvelope, pub *PublicKey, sec *SecretKey, ciphertext []byte) ([]byte, error) {
	if env.PubRandomID != sec.RandomID || env.SecRandomID != pub.RandomID {
		return nil, newErr(Mismatch)
	}

	ephPubPlain, ok := boxOpen(env.EphPubKey[:], env.EphNonce, env.EphTag, &pub.EncKey, &sec.EncKey)
	if !ok {
		return nil, newErr(AuthFail)
	}
	var ephPub [wire.EncPubBytes]byte
	copy(ephPub[:], ephPubPlain)
	defer zero32(&ephPub)

	plaintext, ok := boxOpen(ciphertext, env.Nonce, env.Tag, &ephPub, &sec.EncKey)
	if !ok {
		return nil, newErr(AuthFail)
	}
	return plaintext, nil
}

func generateX25519() (*[wire.EncPubBytes]byte, *[wire.EncSecBytes]byte, error) {
	return box.GenerateKey(rand.Reader)
}
