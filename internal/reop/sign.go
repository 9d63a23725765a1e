package reop

import (
	"github.com/reop-go/reop/internal/armor"
	"github.com/reop-go/reop/internal/wire"
)

// Signature is a detached Ed25519 signature tagged with the signer's
// random identifier.
type Signature struct {
	RandomID [wire.RandomIDLen]byte
	Sig      []byte
	Ident    string
}

// VerifyResult is the outcome of Verify.
type VerifyResult int

const (
	VerifyOK VerifyResult = iota
	VerifyMismatch
	VerifyBad
)

// Sign produces a detached signature over msg's exact bytes.
func Sign(sec *SecretKey, msg []byte) *Signature {
	return &Signature{
		RandomID: sec.RandomID,
		Sig:      sign(sec.SigKey, msg),
		Ident:    sec.Ident,
	}
}

// Verify compares pub's random identifier against sig's before touching
// the signature primitive at all; a mismatch never reaches the crypto
// check.
func Verify(pub *PublicKey, msg []byte, sig *Signature) VerifyResult {
	if pub.RandomID != sig.RandomID {
		return VerifyMismatch
	}
	if !verify(pub.SigKey, msg, sig.Sig) {
		return VerifyBad
	}
	return VerifyOK
}

func sigToWire(s *Signature) *wire.Signature {
	w := &wire.Signature{RandomID: s.RandomID, Ident: s.Ident}
	copy(w.SigAlg[:], wire.AlgSig)
	copy(w.Sig[:], s.Sig)
	return w
}

// EncodeSignature renders sig as a "-----BEGIN REOP SIGNATURE-----" armor
// block.
func EncodeSignature(sig *Signature) string {
	w := sigToWire(sig)
	return armor.Encode("SIGNATURE", w.Encode(), w.Ident)
}

// ParseSignature parses a detached signature armor block.
func ParseSignature(text string) (*Signature, error) {
	ident, body, err := armor.Decode(text, "SIGNATURE", wire.SignatureSize)
	if err != nil {
		return nil, wrapErr(InvalidFormat, err)
	}
	var w wire.Signature
	if err := w.Decode(body); err != nil {
		return nil, wrapErr(InvalidFormat, err)
	}
	if !eqAlg2(w.SigAlg, wire.AlgSig) {
		return nil, newErr(UnsupportedKey)
	}
	return &Signature{RandomID: w.RandomID, Sig: append([]byte(nil), w.Sig[:]...), Ident: ident}, nil
}

// EncodeSignedMessage produces the embedded-signature framing: the
// exact plaintext bytes followed by the signature's own armor block,
// under one enclosing marker pair.
func EncodeSignedMessage(sig *Signature, msg []byte) string {
	w := sigToWire(sig)
	return armor.EncodeSignedMessage(msg, w.Encode(), w.Ident)
}

// ParseSignedMessage splits an embedded signed message into its message
// bytes and parsed Signature. It uses the LAST signature marker in the
// text, so an attacker cannot smuggle a forged earlier block past a
// genuine trailing one.
func ParseSignedMessage(text string) ([]byte, *Signature, error) {
	msg, sigBlock, err := armor.ParseSignedMessage(text)
	if err != nil {
		return nil, nil, wrapErr(InvalidFormat, err)
	}
	ident, body, err := armor.DecodeSignatureBlock(sigBlock, wire.SignatureSize)
	if err != nil {
		return nil, nil, wrapErr(InvalidFormat, err)
	}
	var w wire.Signature
	if err := w.Decode(body); err != nil {
		return nil, nil, wrapErr(InvalidFormat, err)
	}
	if !eqAlg2(w.SigAlg, wire.AlgSig) {
		return nil, nil, newErr(UnsupportedKey)
	}
	return msg, &Signature{RandomID: w.RandomID, Sig: append([]byte(nil), w.Sig[:]...), Ident: ident}, nil
}
