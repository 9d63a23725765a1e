package armor

import "strings"

const (
	beginEncMessage  = "-----BEGIN REOP ENCRYPTED MESSAGE-----\n"
	beginEncData     = "-----BEGIN REOP ENCRYPTED MESSAGE DATA-----\n"
	endEncMessage    = "-----END REOP ENCRYPTED MESSAGE-----\n"
)

// EncodeCiphertext produces the two-block textual ciphertext framing:
// a header block (ident + base64 of the fixed-size envelope header)
// followed by a data block (base64 of the ciphertext).
func EncodeCiphertext(ident string, header, ciphertext []byte) string {
	var b strings.Builder
	b.WriteString(beginEncMessage)
	b.WriteString("ident:")
	b.WriteString(ident)
	b.WriteString("\n")
	b.WriteString(wrap(b64.EncodeToString(header)))
	b.WriteString("\n")
	b.WriteString(beginEncData)
	b.WriteString(wrap(b64.EncodeToString(ciphertext)))
	b.WriteString("\n")
	b.WriteString(endEncMessage)
	return b.String()
}

// DecodeCiphertext reverses EncodeCiphertext. It returns the raw
// (still-undispatched) header bytes; the caller inspects the first two
// bytes to decide which envelope type they belong to.
func DecodeCiphertext(text string) (ident string, header, ciphertext []byte, err error) {
	if !strings.HasPrefix(text, beginEncMessage) {
		return "", nil, nil, errorf("missing begin marker")
	}
	rest := text[len(beginEncMessage):]

	if !strings.HasPrefix(rest, "ident:") {
		return "", nil, nil, errorf("missing ident line")
	}
	nl := strings.IndexByte(rest, '\n')
	if nl < 0 {
		return "", nil, nil, errorf("invalid header")
	}
	ident = strings.TrimRight(strings.TrimPrefix(rest[:nl], "ident:"), "\r")
	rest = rest[nl+1:]

	dataIdx := strings.Index(rest, beginEncData)
	if dataIdx < 0 {
		return "", nil, nil, errorf("missing data marker")
	}
	headerB64 := rest[:dataIdx]
	rest = rest[dataIdx+len(beginEncData):]

	endIdx := strings.Index(rest, endEncMessage)
	if endIdx < 0 {
		return "", nil, nil, errorf("missing end marker")
	}
	dataB64 := rest[:endIdx]

	header, err = DecodeString(strings.TrimRight(headerB64, "\n"))
	if err != nil {
		return "", nil, nil, errorf("invalid base64 header: %v", err)
	}
	ciphertext, err = DecodeString(strings.TrimRight(dataB64, "\n"))
	if err != nil {
		return "", nil, nil, errorf("invalid base64 data: %v", err)
	}
	return ident, header, ciphertext, nil
}
