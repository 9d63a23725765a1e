package armor

import "strings"

const (
	beginSignedMessage = "-----BEGIN REOP SIGNED MESSAGE-----\n"
	beginSignature     = "-----BEGIN REOP SIGNATURE-----\n"
	endSignedMessage   = "-----END REOP SIGNED MESSAGE-----\n"
)

// EncodeSignedMessage produces the embedded-signature framing: the exact
// plaintext bytes, followed by the signature's own armor block, followed
// by a closing marker.
func EncodeSignedMessage(msg []byte, sigBody []byte, ident string) string {
	var b strings.Builder
	b.WriteString(beginSignedMessage)
	b.Write(msg)
	b.WriteString(beginSignature)
	b.WriteString("ident:")
	b.WriteString(ident)
	b.WriteString("\n")
	b.WriteString(wrap(EncodeRaw(sigBody)))
	b.WriteString("\n")
	b.WriteString(endSignedMessage)
	return b.String()
}

// EncodeRaw is the unwrapped base64 of data; exported for callers that
// wrap it themselves alongside other text (EncodeSignedMessage).
func EncodeRaw(data []byte) string { return b64.EncodeToString(data) }

// ParseSignedMessage locates the LAST "-----BEGIN REOP SIGNATURE-----"
// marker in text and splits it into the message bytes that precede it
// and the signature armor block (from that marker through EOF, or up to
// the closing "-----END REOP SIGNED MESSAGE-----" marker if present).
//
// Using the last marker rather than the first is a deliberate defense
// against a forged signature block prepended before the real one; it
// comes at the cost of tolerating trailing garbage after a second,
// earlier-placed forgery.
func ParseSignedMessage(text string) (msg []byte, sigBlock string, err error) {
	if !strings.HasPrefix(text, beginSignedMessage) {
		return nil, "", errorf("missing begin marker")
	}
	rest := text[len(beginSignedMessage):]

	first := strings.Index(rest, beginSignature)
	if first < 0 {
		return nil, "", errorf("no signature block found")
	}
	sigStart := first
	for {
		next := strings.Index(rest[sigStart+1:], beginSignature)
		if next < 0 {
			break
		}
		sigStart = sigStart + 1 + next
	}

	msg = []byte(rest[:sigStart])
	sigBlock = rest[sigStart:]
	if end := strings.Index(sigBlock, endSignedMessage); end >= 0 {
		sigBlock = sigBlock[:end]
	}
	return msg, sigBlock, nil
}

// DecodeSignatureBlock parses the "ident:" line and base64 body out of a
// signature block as returned by ParseSignedMessage (i.e. starting at
// "-----BEGIN REOP SIGNATURE-----\n", with no END marker of its own).
func DecodeSignatureBlock(block string, bodyLen int) (ident string, body []byte, err error) {
	if !strings.HasPrefix(block, beginSignature) {
		return "", nil, errorf("malformed signature block")
	}
	rest := block[len(beginSignature):]
	lines := strings.SplitN(rest, "\n", 2)
	if len(lines) < 1 || !strings.HasPrefix(lines[0], "ident:") {
		return "", nil, errorf("missing ident line in signature block")
	}
	ident = strings.TrimPrefix(lines[0], "ident:")
	if sp := strings.IndexAny(ident, " \t"); sp >= 0 {
		ident = ident[:sp]
	}
	b64Body := ""
	if len(lines) == 2 {
		b64Body = lines[1]
	}
	decoded, err := DecodeString(b64Body)
	if err != nil {
		return "", nil, errorf("invalid base64 signature body: %v", err)
	}
	if len(decoded) != bodyLen {
		return "", nil, errorf("wrong signature length: got %d, want %d", len(decoded), bodyLen)
	}
	return ident, decoded, nil
}
