package reop

import (
	"crypto/ed25519"
	"crypto/rand"

	"golang.org/x/crypto/nacl/box"

	"github.com/reop-go/reop/internal/armor"
	"github.com/reop-go/reop/internal/wire"
)

const maxIdentLen = 63

func truncateIdent(ident string) string {
	if len(ident) > maxIdentLen {
		return ident[:maxIdentLen]
	}
	return ident
}

// PublicKey is a parsed, ready-to-use public key: an Ed25519 verification
// key and an X25519 public key sharing one random identifier.
type PublicKey struct {
	RandomID [wire.RandomIDLen]byte
	SigKey   ed25519.PublicKey
	EncKey   [wire.EncPubBytes]byte
	Ident    string
}

// SecretKey is an unwrapped secret key: an Ed25519 signing key and an
// X25519 secret key sharing the same random identifier as their public
// counterpart. SigKey/EncKey are only meaningful while unwrapped.
type SecretKey struct {
	RandomID [wire.RandomIDLen]byte
	SigKey   ed25519.PrivateKey
	EncKey   [wire.EncPubBytes]byte
	Ident    string
}

// Zero overwrites the secret material with zeros. Callers must call this
// on every exit path once a SecretKey is no longer needed.
func (s *SecretKey) Zero() {
	for i := range s.SigKey {
		s.SigKey[i] = 0
	}
	for i := range s.EncKey {
		s.EncKey[i] = 0
	}
}

// Generate creates a fresh signing keypair and encryption keypair bound
// under one random identifier, and stamps both with the current
// algorithm tags.
func Generate(ident string) (*PublicKey, *SecretKey, error) {
	var randomID [wire.RandomIDLen]byte
	if _, err := rand.Read(randomID[:]); err != nil {
		return nil, nil, err
	}

	sigPub, sigSec, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}

	encPub, encSec, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}

	ident = truncateIdent(ident)

	pub := &PublicKey{RandomID: randomID, SigKey: sigPub, EncKey: *encPub, Ident: ident}
	sec := &SecretKey{RandomID: randomID, SigKey: sigSec, EncKey: *encSec, Ident: ident}
	return pub, sec, nil
}

func pubToWire(p *PublicKey) *wire.PublicKey {
	w := &wire.PublicKey{RandomID: p.RandomID, Ident: p.Ident}
	copy(w.SigAlg[:], wire.AlgSig)
	copy(w.EncAlg[:], wire.AlgEnc)
	copy(w.SigKey[:], p.SigKey)
	w.EncKey = p.EncKey
	return w
}

// EncodePublicKey renders pub as a "-----BEGIN REOP PUBLIC KEY-----" armor
// block.
func EncodePublicKey(pub *PublicKey) string {
	w := pubToWire(pub)
	return armor.Encode("PUBLIC KEY", w.Encode(), w.Ident)
}

// ParsePublicKey parses a public key armor block.
func ParsePublicKey(text string) (*PublicKey, error) {
	ident, body, err := armor.Decode(text, "PUBLIC KEY", wire.PublicKeySize)
	if err != nil {
		return nil, wrapErr(InvalidFormat, err)
	}
	var w wire.PublicKey
	if err := w.Decode(body); err != nil {
		return nil, wrapErr(InvalidFormat, err)
	}
	if !eqAlg2(w.SigAlg, wire.AlgSig) || !eqAlg2(w.EncAlg, wire.AlgEnc) {
		return nil, newErr(UnsupportedKey)
	}
	return &PublicKey{
		RandomID: w.RandomID,
		SigKey:   append(ed25519.PublicKey(nil), w.SigKey[:]...),
		EncKey:   w.EncKey,
		Ident:    ident,
	}, nil
}

func eqAlg2(b [2]byte, alg string) bool { return string(b[:]) == alg }

// WrapSecretKey derives a wrapping key from password (the empty string is
// the "no password" sentinel, kdfrounds=0, an all-zero wrapping key) and
// seals sigkey‖enckey with secretbox, producing an armored
// "-----BEGIN REOP SECRET KEY-----" block.
//
// Resolving password (reading $REOP_PASSPHRASE, prompting with
// confirmation) is the caller's job; passphrase prompting is an
// external collaborator, not a core responsibility.
func WrapSecretKey(sec *SecretKey, password string) (string, error) {
	rounds := kdfRounds
	if password == "" {
		rounds = 0
	}

	var salt [wire.SaltBytes]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return "", err
	}

	key := deriveKey(salt[:], rounds, password, wire.SymKeyBytes)
	var symKey [wire.SymKeyBytes]byte
	copy(symKey[:], key)
	for i := range key {
		key[i] = 0
	}
	defer zero32(&symKey)

	plaintext := make([]byte, 0, wire.SigSecBytes+wire.EncPubBytes)
	plaintext = append(plaintext, sec.SigKey...)
	plaintext = append(plaintext, sec.EncKey[:]...)
	defer zeroBytes(plaintext)

	ciphertext, nonce, tag, err := secretboxSeal(plaintext, &symKey)
	if err != nil {
		return "", err
	}

	w := &wire.SecretKey{RandomID: sec.RandomID, KdfRounds: uint32(rounds), Salt: salt, Nonce: nonce, Tag: tag, Ident: sec.Ident}
	copy(w.SigAlg[:], wire.AlgSig)
	copy(w.EncAlg[:], wire.AlgEnc)
	copy(w.SymAlg[:], wire.AlgSym)
	copy(w.KdfAlg[:], wire.AlgKdf)
	copy(w.SigKey[:], ciphertext[:wire.SigSecBytes])
	copy(w.EncKey[:], ciphertext[wire.SigSecBytes:])
	defer w.Zero()

	return armor.Encode("SECRET KEY", w.Encode(), w.Ident), nil
}

// UnwrapSecretKey parses a secret key armor block and decrypts it with
// password. kdfalg must be "BK"; any other value is UnsupportedKdf.
// Authentication failure (wrong passphrase) is BadPassphrase.
func UnwrapSecretKey(text string, password string) (*SecretKey, error) {
	ident, body, err := armor.Decode(text, "SECRET KEY", wire.SecretKeySize)
	if err != nil {
		return nil, wrapErr(InvalidFormat, err)
	}
	var w wire.SecretKey
	if err := w.Decode(body); err != nil {
		return nil, wrapErr(InvalidFormat, err)
	}
	w.Ident = ident
	defer w.Zero()

	if !eqAlg2(w.KdfAlg, wire.AlgKdf) {
		return nil, newErr(UnsupportedKdf)
	}

	key := deriveKey(w.Salt[:], int(w.KdfRounds), password, wire.SymKeyBytes)
	var symKey [wire.SymKeyBytes]byte
	copy(symKey[:], key)
	for i := range key {
		key[i] = 0
	}
	defer zero32(&symKey)

	ciphertext := make([]byte, 0, wire.SigSecBytes+wire.EncPubBytes)
	ciphertext = append(ciphertext, w.SigKey[:]...)
	ciphertext = append(ciphertext, w.EncKey[:]...)

	plaintext, ok := secretboxOpen(ciphertext, w.Nonce, w.Tag, &symKey)
	if !ok {
		return nil, newErr(BadPassphrase)
	}
	defer zeroBytes(plaintext)

	sec := &SecretKey{
		RandomID: w.RandomID,
		SigKey:   append(ed25519.PrivateKey(nil), plaintext[:wire.SigSecBytes]...),
		Ident:    w.Ident,
	}
	copy(sec.EncKey[:], plaintext[wire.SigSecBytes:])
	return sec, nil
}

// SecretKeyNeedsPassphrase parses a wrapped secret key armor block far
// enough to report whether UnwrapSecretKey will actually need a real
// passphrase, without decrypting it. A key generated with the "no
// password" sentinel has kdfrounds=0 and unwraps under any password
// value, so callers can skip prompting for it.
func SecretKeyNeedsPassphrase(text string) (bool, error) {
	_, body, err := armor.Decode(text, "SECRET KEY", wire.SecretKeySize)
	if err != nil {
		return false, wrapErr(InvalidFormat, err)
	}
	var w wire.SecretKey
	if err := w.Decode(body); err != nil {
		return false, wrapErr(InvalidFormat, err)
	}
	defer w.Zero()
	return w.KdfRounds != 0, nil
}

func zero32(b *[wire.SymKeyBytes]byte) {
	for i := range b {
		b[i] = 0
	}
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
