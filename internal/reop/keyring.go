package reop

import "strings"

// FindPublicKeyInRing scans ringText, a newline-joined sequence of public
// key armor blocks, for the first key whose Ident matches ident exactly.
// It is a flat keyring with no index, read end to end on every lookup.
func FindPublicKeyInRing(ringText string, ident string) (*PublicKey, error) {
	for _, block := range splitArmorBlocks(ringText) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		pub, err := ParsePublicKey(block)
		if err != nil {
			return nil, wrapErr(KeyringCorrupt, err)
		}
		if pub.Ident == ident {
			return pub, nil
		}
	}
	return nil, newErr(NotFound)
}

// splitArmorBlocks breaks a concatenation of "-----BEGIN...-----" /
// "-----END...-----" blocks back into individual block strings, each
// re-terminated with its own END marker.
func splitArmorBlocks(text string) []string {
	const marker = "-----END REOP PUBLIC KEY-----"
	var blocks []string
	rest := strings.TrimLeft(text, "\n")
	for {
		idx := strings.Index(rest, marker)
		if idx < 0 {
			break
		}
		end := idx + len(marker)
		blocks = append(blocks, rest[:end])
		rest = rest[end:]
		rest = strings.TrimLeft(rest, "\n")
	}
	return blocks
}
