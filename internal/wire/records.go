// Package wire implements the fixed-layout binary records that make up
// the reop protocol: public and secret keys, signatures, the symmetric
// envelope, and the three kinds of public-key encryption envelope
// (current and two legacy variants).
//
// All multi-byte integers are big-endian. Every record type provides
// Encode/Decode pairs that operate on exactly its fixed <Record>Size
// bytes (PublicKeySize, SecretKeySize, ...); callers that
// need base64/armor framing or the identifier line live in sibling
// packages.
package wire

import "encoding/binary"

const (
	RandomIDLen = 8
	IdentLen    = 64

	SigBytes    = 64 // crypto_sign_ed25519_BYTES
	SigSecBytes = 64 // ed25519 private key, seed+pub
	SigPubBytes = 32

	EncSecBytes   = 32
	EncPubBytes   = 32
	EncNonceBytes = 24
	EncTagBytes   = 16

	SymKeyBytes   = 32
	SymNonceBytes = 24
	SymTagBytes   = 16

	SaltBytes = 16
)

// Algorithm tags, exactly two ASCII bytes, case-sensitive.
const (
	AlgSig        = "Ed" // Ed25519 signing key material
	AlgEnc        = "CS" // Curve25519-Salsa20 encryption key material
	AlgEph        = "eC" // current ephemeral-wrapped public-key envelope
	AlgSym        = "SP" // Salsa20-Poly1305 symmetric envelope
	AlgKdf        = "BK" // bcrypt pbkdf
	AlgLegacyEnc  = "CS" // legacy direct public-key envelope (same tag as key material)
	AlgLegacyEph  = "eS" // legacy ephemeral-only envelope
)

func putAlg(dst []byte, alg string) { copy(dst, alg) }

func eqAlg(b []byte, alg string) bool { return len(b) == 2 && string(b) == alg }

// PublicKey is the on-wire public key record.
type PublicKey struct {
	SigAlg   [2]byte
	EncAlg   [2]byte
	RandomID [RandomIDLen]byte
	SigKey   [SigPubBytes]byte
	EncKey   [EncPubBytes]byte
	Ident    string // up to IdentLen-1 bytes; not part of the encoded record, carried on the armor ident line
}

const PublicKeySize = 2 + 2 + RandomIDLen + SigPubBytes + EncPubBytes

func (k *PublicKey) Encode() []byte {
	buf := make([]byte, PublicKeySize)
	b := buf
	copy(b, k.SigAlg[:])
	b = b[2:]
	copy(b, k.EncAlg[:])
	b = b[2:]
	copy(b, k.RandomID[:])
	b = b[RandomIDLen:]
	copy(b, k.SigKey[:])
	b = b[SigPubBytes:]
	copy(b, k.EncKey[:])
	return buf
}

func (k *PublicKey) Decode(buf []byte) error {
	if len(buf) != PublicKeySize {
		return ParseError("invalid public key length")
	}
	b := buf
	copy(k.SigAlg[:], b[:2])
	b = b[2:]
	copy(k.EncAlg[:], b[:2])
	b = b[2:]
	copy(k.RandomID[:], b[:RandomIDLen])
	b = b[RandomIDLen:]
	copy(k.SigKey[:], b[:SigPubBytes])
	b = b[SigPubBytes:]
	copy(k.EncKey[:], b[:EncPubBytes])
	return nil
}

// SecretKey is the on-wire (wrapped) secret key record. SigKey/EncKey are
// only meaningful plaintext after Unwrap; until then the first
// len(SigKey)+len(EncKey) bytes are secretbox ciphertext.
type SecretKey struct {
	SigAlg    [2]byte
	EncAlg    [2]byte
	SymAlg    [2]byte
	KdfAlg    [2]byte
	RandomID  [RandomIDLen]byte
	KdfRounds uint32
	Salt      [SaltBytes]byte
	Nonce     [SymNonceBytes]byte
	Tag       [SymTagBytes]byte
	SigKey    [SigSecBytes]byte
	EncKey    [EncSecBytes]byte
	Ident     string
}

const SecretKeySize = 2 + 2 + 2 + 2 + RandomIDLen + 4 + SaltBytes + SymNonceBytes + SymTagBytes + SigSecBytes + EncSecBytes

func (k *SecretKey) Encode() []byte {
	buf := make([]byte, SecretKeySize)
	b := buf
	copy(b, k.SigAlg[:])
	b = b[2:]
	copy(b, k.EncAlg[:])
	b = b[2:]
	copy(b, k.SymAlg[:])
	b = b[2:]
	copy(b, k.KdfAlg[:])
	b = b[2:]
	copy(b, k.RandomID[:])
	b = b[RandomIDLen:]
	binary.BigEndian.PutUint32(b, k.KdfRounds)
	b = b[4:]
	copy(b, k.Salt[:])
	b = b[SaltBytes:]
	copy(b, k.Nonce[:])
	b = b[SymNonceBytes:]
	copy(b, k.Tag[:])
	b = b[SymTagBytes:]
	copy(b, k.SigKey[:])
	b = b[SigSecBytes:]
	copy(b, k.EncKey[:])
	return buf
}

func (k *SecretKey) Decode(buf []byte) error {
	if len(buf) != SecretKeySize {
		return ParseError("invalid secret key length")
	}
	b := buf
	copy(k.SigAlg[:], b[:2])
	b = b[2:]
	copy(k.EncAlg[:], b[:2])
	b = b[2:]
	copy(k.SymAlg[:], b[:2])
	b = b[2:]
	copy(k.KdfAlg[:], b[:2])
	b = b[2:]
	copy(k.RandomID[:], b[:RandomIDLen])
	b = b[RandomIDLen:]
	k.KdfRounds = binary.BigEndian.Uint32(b)
	b = b[4:]
	copy(k.Salt[:], b[:SaltBytes])
	b = b[SaltBytes:]
	copy(k.Nonce[:], b[:SymNonceBytes])
	b = b[SymNonceBytes:]
	copy(k.Tag[:], b[:SymTagBytes])
	b = b[SymTagBytes:]
	copy(k.SigKey[:], b[:SigSecBytes])
	b = b[SigSecBytes:]
	copy(k.EncKey[:], b[:EncSecBytes])
	return nil
}

// Zero overwrites the secret-bearing fields with zeros.
func (k *SecretKey) Zero() {
	for i := range k.SigKey {
		k.SigKey[i] = 0
	}
	for i := range k.EncKey {
		k.EncKey[i] = 0
	}
	for i := range k.Salt {
		k.Salt[i] = 0
	}
	for i := range k.Nonce {
		k.Nonce[i] = 0
	}
	for i := range k.Tag {
		k.Tag[i] = 0
	}
}

// Signature is the on-wire detached signature record.
type Signature struct {
	SigAlg   [2]byte
	RandomID [RandomIDLen]byte
	Sig      [SigBytes]byte
	Ident    string
}

const SignatureSize = 2 + RandomIDLen + SigBytes

func (s *Signature) Encode() []byte {
	buf := make([]byte, SignatureSize)
	b := buf
	copy(b, s.SigAlg[:])
	b = b[2:]
	copy(b, s.RandomID[:])
	b = b[RandomIDLen:]
	copy(b, s.Sig[:])
	return buf
}

func (s *Signature) Decode(buf []byte) error {
	if len(buf) != SignatureSize {
		return ParseError("invalid signature length")
	}
	b := buf
	copy(s.SigAlg[:], b[:2])
	b = b[2:]
	copy(s.RandomID[:], b[:RandomIDLen])
	b = b[RandomIDLen:]
	copy(s.Sig[:], b[:SigBytes])
	return nil
}

// SymMessage is the symmetric (passphrase) encryption envelope header.
type SymMessage struct {
	SymAlg    [2]byte
	KdfAlg    [2]byte
	KdfRounds uint32
	Salt      [SaltBytes]byte
	Nonce     [SymNonceBytes]byte
	Tag       [SymTagBytes]byte
}

const SymMessageSize = 2 + 2 + 4 + SaltBytes + SymNonceBytes + SymTagBytes

func (m *SymMessage) Encode() []byte {
	buf := make([]byte, SymMessageSize)
	b := buf
	copy(b, m.SymAlg[:])
	b = b[2:]
	copy(b, m.KdfAlg[:])
	b = b[2:]
	binary.BigEndian.PutUint32(b, m.KdfRounds)
	b = b[4:]
	copy(b, m.Salt[:])
	b = b[SaltBytes:]
	copy(b, m.Nonce[:])
	b = b[SymNonceBytes:]
	copy(b, m.Tag[:])
	return buf
}

func (m *SymMessage) Decode(buf []byte) error {
	if len(buf) != SymMessageSize {
		return ParseError("invalid symmetric envelope length")
	}
	b := buf
	copy(m.SymAlg[:], b[:2])
	b = b[2:]
	copy(m.KdfAlg[:], b[:2])
	b = b[2:]
	m.KdfRounds = binary.BigEndian.Uint32(b)
	b = b[4:]
	copy(m.Salt[:], b[:SaltBytes])
	b = b[SaltBytes:]
	copy(m.Nonce[:], b[:SymNonceBytes])
	b = b[SymNonceBytes:]
	copy(m.Tag[:], b[:SymTagBytes])
	return nil
}

// EncMessage is the current (§4.5) ephemeral-wrapped public-key envelope.
type EncMessage struct {
	EncAlg       [2]byte
	SecRandomID  [RandomIDLen]byte
	PubRandomID  [RandomIDLen]byte
	EphPubKey    [EncPubBytes]byte
	EphNonce     [EncNonceBytes]byte
	EphTag       [EncTagBytes]byte
	Nonce        [EncNonceBytes]byte
	Tag          [EncTagBytes]byte
	Ident        string
}

const EncMessageSize = 2 + RandomIDLen + RandomIDLen + EncPubBytes + EncNonceBytes + EncTagBytes + EncNonceBytes + EncTagBytes

func (m *EncMessage) Encode() []byte {
	buf := make([]byte, EncMessageSize)
	b := buf
	copy(b, m.EncAlg[:])
	b = b[2:]
	copy(b, m.SecRandomID[:])
	b = b[RandomIDLen:]
	copy(b, m.PubRandomID[:])
	b = b[RandomIDLen:]
	copy(b, m.EphPubKey[:])
	b = b[EncPubBytes:]
	copy(b, m.EphNonce[:])
	b = b[EncNonceBytes:]
	copy(b, m.EphTag[:])
	b = b[EncTagBytes:]
	copy(b, m.Nonce[:])
	b = b[EncNonceBytes:]
	copy(b, m.Tag[:])
	return buf
}

func (m *EncMessage) Decode(buf []byte) error {
	if len(buf) != EncMessageSize {
		return ParseError("invalid public-key envelope length")
	}
	b := buf
	copy(m.EncAlg[:], b[:2])
	b = b[2:]
	copy(m.SecRandomID[:], b[:RandomIDLen])
	b = b[RandomIDLen:]
	copy(m.PubRandomID[:], b[:RandomIDLen])
	b = b[RandomIDLen:]
	copy(m.EphPubKey[:], b[:EncPubBytes])
	b = b[EncPubBytes:]
	copy(m.EphNonce[:], b[:EncNonceBytes])
	b = b[EncNonceBytes:]
	copy(m.EphTag[:], b[:EncTagBytes])
	b = b[EncTagBytes:]
	copy(m.Nonce[:], b[:EncNonceBytes])
	b = b[EncNonceBytes:]
	copy(m.Tag[:], b[:EncTagBytes])
	return nil
}

// OldEncMessage is the legacy "CS" direct (non-ephemeral) envelope,
// decrypt-only except under the explicit v1-compat flag.
type OldEncMessage struct {
	EncAlg      [2]byte
	SecRandomID [RandomIDLen]byte
	PubRandomID [RandomIDLen]byte
	Nonce       [EncNonceBytes]byte
	Tag         [EncTagBytes]byte
}

const OldEncMessageSize = 2 + RandomIDLen + RandomIDLen + EncNonceBytes + EncTagBytes

func (m *OldEncMessage) Encode() []byte {
	buf := make([]byte, OldEncMessageSize)
	b := buf
	copy(b, m.EncAlg[:])
	b = b[2:]
	copy(b, m.SecRandomID[:])
	b = b[RandomIDLen:]
	copy(b, m.PubRandomID[:])
	b = b[RandomIDLen:]
	copy(b, m.Nonce[:])
	b = b[EncNonceBytes:]
	copy(b, m.Tag[:])
	return buf
}

func (m *OldEncMessage) Decode(buf []byte) error {
	if len(buf) != OldEncMessageSize {
		return ParseError("invalid legacy envelope length")
	}
	b := buf
	copy(m.EncAlg[:], b[:2])
	b = b[2:]
	copy(m.SecRandomID[:], b[:RandomIDLen])
	b = b[RandomIDLen:]
	copy(m.PubRandomID[:], b[:RandomIDLen])
	b = b[RandomIDLen:]
	copy(m.Nonce[:], b[:EncNonceBytes])
	b = b[EncNonceBytes:]
	copy(m.Tag[:], b[:EncTagBytes])
	return nil
}

// OldEkcMessage is the legacy "eS" ephemeral-only envelope: the ephemeral
// public key travels in the clear and only the recipient is checked.
type OldEkcMessage struct {
	EkcAlg      [2]byte
	PubRandomID [RandomIDLen]byte
	PubKey      [EncPubBytes]byte
	Nonce       [EncNonceBytes]byte
	Tag         [EncTagBytes]byte
}

const OldEkcMessageSize = 2 + RandomIDLen + EncPubBytes + EncNonceBytes + EncTagBytes

func (m *OldEkcMessage) Encode() []byte {
	buf := make([]byte, OldEkcMessageSize)
	b := buf
	copy(b, m.EkcAlg[:])
	b = b[2:]
	copy(b, m.PubRandomID[:])
	b = b[RandomIDLen:]
	copy(b, m.PubKey[:])
	b = b[EncPubBytes:]
	copy(b, m.Nonce[:])
	b = b[EncNonceBytes:]
	copy(b, m.Tag[:])
	return buf
}

func (m *OldEkcMessage) Decode(buf []byte) error {
	if len(buf) != OldEkcMessageSize {
		return ParseError("invalid legacy ephemeral envelope length")
	}
	b := buf
	copy(m.EkcAlg[:], b[:2])
	b = b[2:]
	copy(m.PubRandomID[:], b[:RandomIDLen])
	b = b[RandomIDLen:]
	copy(m.PubKey[:], b[:EncPubBytes])
	b = b[EncPubBytes:]
	copy(m.Nonce[:], b[:EncNonceBytes])
	b = b[EncNonceBytes:]
	copy(m.Tag[:], b[:EncTagBytes])
	return nil
}

// ParseError distinguishes malformed wire data from other failures,
// the way internal/format.ParseError does for age's header parser.
type ParseError string

func (e ParseError) Error() string { return "reop: parsing wire data: " + string(e) }
