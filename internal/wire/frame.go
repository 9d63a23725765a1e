package wire

import "encoding/binary"

// BinaryMagic is the 4-byte magic that opens a binary-framed ciphertext:
// the ASCII letters 'R', 'B', 'F' followed by a NUL. The trailing NUL is
// preserved exactly since the format is a compatibility surface.
var BinaryMagic = [4]byte{'R', 'B', 'F', 0}

const binaryMagicLen = 4

// HeaderKind identifies which envelope/header type follows the magic in
// a binary frame, or precedes the data block in an armor frame.
type HeaderKind int

const (
	KindUnknown HeaderKind = iota
	KindSym
	KindEph
	KindLegacyEnc
	KindLegacyEph
)

// IdentifyHeader inspects the two-byte algorithm tag at the front of a
// decoded header buffer and returns which record it belongs to, along
// with that record's exact encoded size. An unrecognized tag is
// KindUnknown, which callers must treat as InvalidFormat.
func IdentifyHeader(tag []byte) (HeaderKind, int) {
	switch {
	case eqAlg(tag, AlgSym):
		return KindSym, SymMessageSize
	case eqAlg(tag, AlgEph):
		return KindEph, EncMessageSize
	case eqAlg(tag, AlgLegacyEnc):
		return KindLegacyEnc, OldEncMessageSize
	case eqAlg(tag, AlgLegacyEph):
		return KindLegacyEph, OldEkcMessageSize
	default:
		return KindUnknown, 0
	}
}

// EncodeBinaryFrame writes the magic, the fixed-size header record, the
// big-endian identifier length, the raw identifier bytes, and finally
// the ciphertext, in that order.
func EncodeBinaryFrame(header []byte, ident string, ciphertext []byte) []byte {
	identBytes := []byte(ident)
	out := make([]byte, 0, binaryMagicLen+len(header)+4+len(identBytes)+len(ciphertext))
	out = append(out, BinaryMagic[:]...)
	out = append(out, header...)
	var identLen [4]byte
	binary.BigEndian.PutUint32(identLen[:], uint32(len(identBytes)))
	out = append(out, identLen[:]...)
	out = append(out, identBytes...)
	out = append(out, ciphertext...)
	return out
}

// DecodedFrame is the result of splitting a binary frame into its parts,
// prior to dispatching on Kind.
type DecodedFrame struct {
	Kind       HeaderKind
	Header     []byte
	Ident      string
	Ciphertext []byte
}

// IsBinaryFrame reports whether buf opens with the binary magic.
func IsBinaryFrame(buf []byte) bool {
	return len(buf) >= binaryMagicLen && string(buf[:binaryMagicLen]) == string(BinaryMagic[:])
}

// DecodeBinaryFrame parses a binary-framed ciphertext produced by
// EncodeBinaryFrame. It requires the identifier length to be strictly
// less than IdentLen.
func DecodeBinaryFrame(buf []byte) (*DecodedFrame, error) {
	if !IsBinaryFrame(buf) {
		return nil, ParseError("missing binary magic")
	}
	ptr := buf[binaryMagicLen:]

	if len(ptr) < 2 {
		return nil, ParseError("truncated header")
	}
	kind, hdrSize := IdentifyHeader(ptr[:2])
	if kind == KindUnknown {
		return nil, ParseError("unrecognized algorithm tag")
	}
	if len(ptr) < hdrSize {
		return nil, ParseError("truncated header")
	}
	header := ptr[:hdrSize]
	ptr = ptr[hdrSize:]

	if len(ptr) < 4 {
		return nil, ParseError("truncated identifier length")
	}
	identLen := binary.BigEndian.Uint32(ptr[:4])
	ptr = ptr[4:]
	if identLen >= IdentLen {
		return nil, ParseError("identifier too long")
	}
	if uint64(len(ptr)) < uint64(identLen) {
		return nil, ParseError("truncated identifier")
	}
	ident := string(ptr[:identLen])
	ptr = ptr[identLen:]

	return &DecodedFrame{
		Kind:       kind,
		Header:     header,
		Ident:      ident,
		Ciphertext: ptr,
	}, nil
}
