// Package armor implements the textual framing reop uses for keys,
// signatures, and encrypted messages: a PEM-style
// "-----BEGIN REOP <LABEL>-----" / "-----END REOP <LABEL>-----" block
// carrying one "ident:<name>" line and a 76-column-wrapped base64 body.
//
// It plays the role internal/format plays for age's stanza format, but
// reop's blocks are simpler (one label, one ident line, one body) so the
// parser is a short line-oriented state machine rather than a recipient
// stanza grammar.
package armor

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
)

const columnsPerLine = 76

// ParseError distinguishes malformed armor from other failures.
type ParseError string

func (e ParseError) Error() string { return "reop: parsing armor: " + string(e) }

func errorf(format string, a ...interface{}) error {
	return ParseError(fmt.Sprintf(format, a...))
}

var b64 = base64.StdEncoding

// wrap inserts a newline every columnsPerLine bytes of s, matching the
// original C wraplines()/writeb64data() output exactly.
func wrap(s string) string {
	if len(s) <= columnsPerLine {
		return s
	}
	var b strings.Builder
	for len(s) > columnsPerLine {
		b.WriteString(s[:columnsPerLine])
		b.WriteByte('\n')
		s = s[columnsPerLine:]
	}
	b.WriteString(s)
	return b.String()
}

// Encode produces a single "-----BEGIN REOP <label>-----" block containing
// the ident line and the base64 of body, wrapped at 76 columns.
func Encode(label string, body []byte, ident string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "-----BEGIN REOP %s-----\n", label)
	fmt.Fprintf(&b, "ident:%s\n", ident)
	b.WriteString(wrap(b64.EncodeToString(body)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "-----END REOP %s-----\n", label)
	return b.String()
}

// Decode parses a single armor block produced by Encode, requiring the
// begin marker to match label exactly and the decoded body to be exactly
// bodyLen bytes.
func Decode(text string, label string, bodyLen int) (ident string, body []byte, err error) {
	beginLine := "-----BEGIN REOP " + label + "-----"
	endLine := "-----END REOP " + label + "-----"

	sc := bufio.NewScanner(strings.NewReader(text))
	buf := make([]byte, 0, 64*1024)
	sc.Buffer(buf, 1<<20)

	if !sc.Scan() {
		return "", nil, errorf("empty input")
	}
	if strings.TrimRight(sc.Text(), "\r") != beginLine {
		return "", nil, errorf("missing or mismatched begin marker, expected %q", beginLine)
	}

	if !sc.Scan() {
		return "", nil, errorf("missing ident line")
	}
	identLine := strings.TrimRight(sc.Text(), "\r")
	if !strings.HasPrefix(identLine, "ident:") {
		return "", nil, errorf("missing ident line")
	}
	ident = strings.TrimPrefix(identLine, "ident:")
	if sp := strings.IndexAny(ident, " \t"); sp >= 0 {
		ident = ident[:sp]
	}
	if len(ident) > 63 {
		ident = ident[:63]
	}

	var b64Body strings.Builder
	found := false
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == endLine {
			found = true
			break
		}
		b64Body.WriteString(line)
	}
	if !found {
		return "", nil, errorf("missing end marker, expected %q", endLine)
	}
	if err := sc.Err(); err != nil {
		return "", nil, errorf("reading armor: %v", err)
	}

	decoded, err := b64.DecodeString(b64Body.String())
	if err != nil {
		return "", nil, errorf("invalid base64 body: %v", err)
	}
	if len(decoded) != bodyLen {
		return "", nil, errorf("wrong body length: got %d, want %d", len(decoded), bodyLen)
	}
	return ident, decoded, nil
}

// EncodeToString and DecodeString expose the raw 76-column base64 codec
// for framing code that needs to wrap an arbitrary-length blob (header or
// ciphertext) without the surrounding BEGIN/END markers.
func EncodeToString(data []byte) string { return wrap(b64.EncodeToString(data)) }

func DecodeString(s string) ([]byte, error) {
	return b64.DecodeString(stripNewlines(s))
}

func stripNewlines(s string) string {
	if !strings.ContainsAny(s, "\n\r") {
		return s
	}
	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\n' && s[i] != '\r' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
