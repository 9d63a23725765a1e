package reop

import "github.com/reop-go/reop/internal/wire"

// LegacyEnvelope is the read-only-by-default "CS" direct (non-ephemeral)
// public-key envelope: box(recipient.pub, sender.sec) applied straight to
// the plaintext, with no ephemeral indirection. Encrypting this format
// is only ever done under an explicit v1-compat flag.
type LegacyEnvelope struct {
	SecRandomID [wire.RandomIDLen]byte
	PubRandomID [wire.RandomIDLen]byte
	Nonce       [wire.EncNonceBytes]byte
	Tag         [wire.EncTagBytes]byte
}

func (e *LegacyEnvelope) toWire() *wire.OldEncMessage {
	w := &wire.OldEncMessage{SecRandomID: e.SecRandomID, PubRandomID: e.PubRandomID, Nonce: e.Nonce, Tag: e.Tag}
	copy(w.EncAlg[:], wire.AlgLegacyEnc)
	return w
}

func legacyEnvelopeFromWire(w *wire.OldEncMessage) *LegacyEnvelope {
	return &LegacyEnvelope{SecRandomID: w.SecRandomID, PubRandomID: w.PubRandomID, Nonce: w.Nonce, Tag: w.Tag}
}

// PubEncryptV1Compat produces a legacy "CS" envelope directly, without
// an ephemeral wrapper. It exists purely as an explicit,
// caller-requested compatibility mode, never the default encrypt path.
func PubEncryptV1Compat(pub *PublicKey, sec *SecretKey, msg []byte) (*LegacyEnvelope, []byte, error) {
	ciphertext, nonce, tag, err := boxSeal(msg, &pub.EncKey, &sec.EncKey)
	if err != nil {
		return nil, nil, err
	}
	return &LegacyEnvelope{SecRandomID: sec.RandomID, PubRandomID: pub.RandomID, Nonce: nonce, Tag: tag}, ciphertext, nil
}

// LegacyDecrypt opens a "CS" envelope. Because static X25519 DH is
// symmetric in its arguments, this accepts either orientation of the
// (pubrandomid, secrandomid) pair against the supplied (pubkey, seckey),
// preserved deliberately rather than tightened to a single orientation.
func LegacyDecrypt(env *LegacyEnvelope, pub *PublicKey, sec *SecretKey, ciphertext []byte) ([]byte, error) {
	matchesForward := env.PubRandomID == sec.RandomID && env.SecRandomID == pub.RandomID
	matchesReverse := env.PubRandomID == pub.RandomID && env.SecRandomID == sec.RandomID
	if !matchesForward && !matchesReverse {
		return nil, newErr(Mismatch)
	}

	plaintext, ok := boxOpen(ciphertext, env.Nonce, env.Tag, &pub.EncKey, &sec.EncKey)
	if !ok {
		return nil, newErr(AuthFail)
	}
	return plaintext, nil
}

// LegacyEphemeralEnvelope is the "eS" legacy envelope: the ephemeral
// public key travels in the clear and only the recipient identifier is
// checked, with no sender authentication at all.
type LegacyEphemeralEnvelope struct {
	PubRandomID [wire.RandomIDLen]byte
	PubKey      [wire.EncPubBytes]byte
	Nonce       [wire.EncNonceBytes]byte
	Tag         [wire.EncTagBytes]byte
}

func legacyEphemeralFromWire(w *wire.OldEkcMessage) *LegacyEphemeralEnvelope {
	return &LegacyEphemeralEnvelope{PubRandomID: w.PubRandomID, PubKey: w.PubKey, Nonce: w.Nonce, Tag: w.Tag}
}

// LegacyEphemeralDecrypt opens an "eS" envelope directly against the
// clear-text ephemeral public key it carries.
func LegacyEphemeralDecrypt(env *LegacyEphemeralEnvelope, sec *SecretKey, ciphertext []byte) ([]byte, error) {
	if env.PubRandomID != sec.RandomID {
		return nil, newErr(Mismatch)
	}
	plaintext, ok := boxOpen(ciphertext, env.Nonce, env.Tag, &env.PubKey, &sec.EncKey)
	if !ok {
		return nil, newErr(AuthFail)
	}
	return plaintext, nil
}
