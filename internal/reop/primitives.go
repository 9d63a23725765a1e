// Package reop implements the cryptographic core of reop: key material
// layout, passphrase-derived key wrapping, the authenticated public-key
// envelope, the symmetric envelope, signing, and the framing that
// carries all of these.
package reop

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/ebfe/bcrypt_pbkdf"
	"golang.org/x/crypto/nacl/box"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/reop-go/reop/internal/wire"
)

// sign produces a detached Ed25519 signature over msg.
func sign(seckey ed25519.PrivateKey, msg []byte) []byte {
	return ed25519.Sign(seckey, msg)
}

// verify checks a detached Ed25519 signature.
func verify(pubkey ed25519.PublicKey, msg, sig []byte) bool {
	return ed25519.Verify(pubkey, msg, sig)
}

// secretboxSeal encrypts buf into a new ciphertext slice of the same
// length (buf itself is left unchanged) under key, sampling a fresh nonce, and returns the
// detached tag. This reproduces libsodium's crypto_secretbox_detached by
// slicing x/crypto/nacl/secretbox's combined-mode output (tag || cipher)
// into its two halves.
func secretboxSeal(buf []byte, key *[wire.SymKeyBytes]byte) (ciphertext []byte, nonce [wire.SymNonceBytes]byte, tag [wire.SymTagBytes]byte, err error) {
	if _, err = rand.Read(nonce[:]); err != nil {
		return nil, nonce, tag, err
	}
	combined := secretbox.Seal(nil, buf, &nonce, key)
	copy(tag[:], combined[:wire.SymTagBytes])
	ciphertext = combined[wire.SymTagBytes:]
	return ciphertext, nonce, tag, nil
}

// secretboxOpen reverses secretboxSeal. ok is false on authentication
// failure; the core never distinguishes why.
func secretboxOpen(ciphertext []byte, nonce [wire.SymNonceBytes]byte, tag [wire.SymTagBytes]byte, key *[wire.SymKeyBytes]byte) (plaintext []byte, ok bool) {
	combined := make([]byte, 0, wire.SymTagBytes+len(ciphertext))
	combined = append(combined, tag[:]...)
	combined = append(combined, ciphertext...)
	return secretbox.Open(nil, combined, &nonce, key)
}

// boxSeal is the public-key analogue of secretboxSeal, built on
// x/crypto/nacl/box's combined mode the same way.
func boxSeal(buf []byte, pub, sec *[wire.EncPubBytes]byte) (ciphertext []byte, nonce [wire.EncNonceBytes]byte, tag [wire.EncTagBytes]byte, err error) {
	if _, err = rand.Read(nonce[:]); err != nil {
		return nil, nonce, tag, err
	}
	combined := box.Seal(nil, buf, &nonce, pub, sec)
	copy(tag[:], combined[:wire.EncTagBytes])
	ciphertext = combined[wire.EncTagBytes:]
	return ciphertext, nonce, tag, nil
}

func boxOpen(ciphertext []byte, nonce [wire.EncNonceBytes]byte, tag [wire.EncTagBytes]byte, pub, sec *[wire.EncPubBytes]byte) (plaintext []byte, ok bool) {
	combined := make([]byte, 0, wire.EncTagBytes+len(ciphertext))
	combined = append(combined, tag[:]...)
	combined = append(combined, ciphertext...)
	return box.Open(nil, combined, &nonce, pub, sec)
}

// kdfRounds is the fixed bcrypt-pbkdf round count used whenever a real
// passphrase is in play. It is a deliberate fixed parameter, not
// negotiated.
const kdfRounds = 42

// deriveKey runs bcrypt_pbkdf, or returns an all-zero key when rounds is
// the "no password" sentinel.
func deriveKey(salt []byte, rounds int, password string, keyLen int) []byte {
	key := make([]byte, keyLen)
	if rounds == 0 {
		return key
	}
	derived := bcrypt_pbkdf.Key([]byte(password), salt, rounds, keyLen)
	copy(key, derived)
	return key
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Init is an idempotent one-time setup hook. Go's crypto/ed25519,
// crypto/rand and golang.org/x/crypto/nacl packages need no
// process-wide initialization, so this is a documented no-op.
func Init() {}
