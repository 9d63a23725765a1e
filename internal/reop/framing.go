package reop

import (
	"github.com/reop-go/reop/internal/armor"
	"github.com/reop-go/reop/internal/wire"
)

// EncryptSymToArmor seals msg under password and renders the result as the
// two-block textual ciphertext framing.
func EncryptSymToArmor(msg []byte, password string) (string, error) {
	env, ciphertext, err := SymEncrypt(msg, password)
	if err != nil {
		return "", err
	}
	return armor.EncodeCiphertext("", env.toWire().Encode(), ciphertext), nil
}

// EncryptPubToArmor seals msg from sec to pub and renders the result as
// the two-block textual ciphertext framing, carrying sec's identifier in
// the header block's ident line.
func EncryptPubToArmor(pub *PublicKey, sec *SecretKey, msg []byte) (string, error) {
	env, ciphertext, err := PubEncrypt(pub, sec, msg)
	if err != nil {
		return "", err
	}
	return armor.EncodeCiphertext(env.Ident, env.toWire().Encode(), ciphertext), nil
}

// EncryptSymToBinary seals msg under password and renders the result as
// the binary-framed ciphertext.
func EncryptSymToBinary(msg []byte, password string) ([]byte, error) {
	env, ciphertext, err := SymEncrypt(msg, password)
	if err != nil {
		return nil, err
	}
	return wire.EncodeBinaryFrame(env.toWire().Encode(), "", ciphertext), nil
}

// EncryptPubToBinary seals msg from sec to pub and renders the result as
// the binary-framed ciphertext.
func EncryptPubToBinary(pub *PublicKey, sec *SecretKey, msg []byte) ([]byte, error) {
	env, ciphertext, err := PubEncrypt(pub, sec, msg)
	if err != nil {
		return nil, err
	}
	return wire.EncodeBinaryFrame(env.toWire().Encode(), env.Ident, ciphertext), nil
}

// EncryptPubToArmorV1Compat and EncryptPubToBinaryV1Compat frame a legacy
// "CS" direct envelope, for the explicit v1-compat encrypt mode; the
// identifier is left empty (an empty "ident:" line in armor, a zero
// identifier length in binary framing).
func EncryptPubToArmorV1Compat(pub *PublicKey, sec *SecretKey, msg []byte) (string, error) {
	env, ciphertext, err := PubEncryptV1Compat(pub, sec, msg)
	if err != nil {
		return "", err
	}
	return armor.EncodeCiphertext("", env.toWire().Encode(), ciphertext), nil
}

func EncryptPubToBinaryV1Compat(pub *PublicKey, sec *SecretKey, msg []byte) ([]byte, error) {
	env, ciphertext, err := PubEncryptV1Compat(pub, sec, msg)
	if err != nil {
		return nil, err
	}
	return wire.EncodeBinaryFrame(env.toWire().Encode(), "", ciphertext), nil
}

// Decrypted is the outcome of dispatching an arbitrary ciphertext message
// through Decrypt: the recovered plaintext plus which envelope kind
// actually supplied it, so callers can warn on legacy formats the way the
// original CLI does.
type Decrypted struct {
	Plaintext []byte
	Kind      wire.HeaderKind
}

// Decrypt dispatches an arbitrary ciphertext message: it accepts
// either textual or binary framing, identifies the envelope kind from its
// algorithm tag, and opens it against whichever of password/pub/sec apply
// to that kind. pub may be nil when only symmetric decryption is
// possible; sec may be nil when only verifying a keyring lookup is
// desired elsewhere. The state progresses strictly forward — reading the
// frame, parsing its header, dispatching on algorithm, authenticating,
// then delivering plaintext — with no path that returns partial output
// after a failed authentication step.
func Decrypt(data []byte, password string, pub *PublicKey, sec *SecretKey) (*Decrypted, error) {
	kind, header, ident, ciphertext, err := identifyFramed(data)
	if err != nil {
		return nil, err
	}
	return dispatchDecoded(kind, header, ident, ciphertext, password, pub, sec)
}

// PeekKind identifies the envelope kind of a framed message without
// opening it, so a caller can decide what key material it needs to
// gather before attempting Decrypt. KindSym needs only a passphrase;
// KindEph, KindLegacyEnc and KindLegacyEph all need a secret key.
func PeekKind(data []byte) (wire.HeaderKind, error) {
	kind, _, _, _, err := identifyFramed(data)
	return kind, err
}

func identifyFramed(data []byte) (kind wire.HeaderKind, header []byte, ident string, ciphertext []byte, err error) {
	if wire.IsBinaryFrame(data) {
		frame, ferr := wire.DecodeBinaryFrame(data)
		if ferr != nil {
			return wire.KindUnknown, nil, "", nil, wrapErr(InvalidFormat, ferr)
		}
		return frame.Kind, frame.Header, frame.Ident, frame.Ciphertext, nil
	}

	ident, header, ciphertext, err = armor.DecodeCiphertext(string(data))
	if err != nil {
		return wire.KindUnknown, nil, "", nil, wrapErr(InvalidFormat, err)
	}
	if len(header) < 2 {
		return wire.KindUnknown, nil, "", nil, newErr(InvalidFormat)
	}
	kind, hdrSize := wire.IdentifyHeader(header[:2])
	if kind == wire.KindUnknown || len(header) != hdrSize {
		return wire.KindUnknown, nil, "", nil, newErr(InvalidFormat)
	}
	return kind, header, ident, ciphertext, nil
}

func dispatchDecoded(kind wire.HeaderKind, header []byte, ident string, ciphertext []byte, password string, pub *PublicKey, sec *SecretKey) (*Decrypted, error) {
	switch kind {
	case wire.KindSym:
		var w wire.SymMessage
		if err := w.Decode(header); err != nil {
			return nil, wrapErr(InvalidFormat, err)
		}
		plaintext, err := SymDecrypt(symEnvelopeFromWire(&w), password, ciphertext)
		if err != nil {
			return nil, err
		}
		return &Decrypted{Plaintext: plaintext, Kind: kind}, nil

	case wire.KindEph:
		if pub == nil || sec == nil {
			return nil, newErr(UnsupportedKey)
		}
		var w wire.EncMessage
		if err := w.Decode(header); err != nil {
			return nil, wrapErr(InvalidFormat, err)
		}
		plaintext, err := PubDecrypt(pubEnvelopeFromWire(&w, ident), pub, sec, ciphertext)
		if err != nil {
			return nil, err
		}
		return &Decrypted{Plaintext: plaintext, Kind: kind}, nil

	case wire.KindLegacyEnc:
		if pub == nil || sec == nil {
			return nil, newErr(UnsupportedKey)
		}
		var w wire.OldEncMessage
		if err := w.Decode(header); err != nil {
			return nil, wrapErr(InvalidFormat, err)
		}
		plaintext, err := LegacyDecrypt(legacyEnvelopeFromWire(&w), pub, sec, ciphertext)
		if err != nil {
			return nil, err
		}
		return &Decrypted{Plaintext: plaintext, Kind: kind}, nil

	case wire.KindLegacyEph:
		if sec == nil {
			return nil, newErr(UnsupportedKey)
		}
		var w wire.OldEkcMessage
		if err := w.Decode(header); err != nil {
			return nil, wrapErr(InvalidFormat, err)
		}
		plaintext, err := LegacyEphemeralDecrypt(legacyEphemeralFromWire(&w), sec, ciphertext)
		if err != nil {
			return nil, err
		}
		return &Decrypted{Plaintext: plaintext, Kind: kind}, nil

	default:
		return nil, newErr(InvalidFormat)
	}
}
