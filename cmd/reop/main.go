package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/reop-go/reop"
)

const usage = `Usage:
    reop -G [-n] [-i ident] [-p pubkeyfile] [-s seckeyfile]
    reop -S [-e] [-x sigfile] -s seckeyfile -m msgfile
    reop -V [-e] [-x sigfile] -p pubkeyfile -m msgfile
    reop -E [-1] [-b] [-i ident] [-p pubkeyfile | -k ringfile] -s seckeyfile -m msgfile [-o outfile]
    reop -E [-b] -m msgfile [-o outfile]
    reop -D [-p pubkeyfile] [-s seckeyfile] -m msgfile [-o outfile]

Options:
    -G              Generate a new keypair.
    -S              Sign a message.
    -V              Verify a signed message.
    -E              Encrypt a message.
    -D              Decrypt a message.
    -n              When generating, use no passphrase on the secret key.
    -1              When encrypting, use the legacy v1-compatible envelope.
    -b              Use binary framing instead of the default armored text.
    -e              Embed the signature in the message instead of detaching it.
    -i ident        Attach ident as the key's identifier, or look it up in the keyring.
    -p pubkeyfile   Public key path (default ~/.reop/pubkey).
    -k ringfile     Public keyring path to resolve -i against (default ~/.reop/pubkeyring).
    -s seckeyfile   Secret key path (default ~/.reop/seckey).
    -m msgfile       Message path, "-" for standard input.
    -x sigfile      Detached signature path.
    -o outfile      Output path, "-" or omitted for standard output.
    -q              Suppress informational messages.
`

func main() {
	l.SetFlags(0)
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	var (
		genFlag, signFlag, verifyFlag, encryptFlag, decryptFlag bool
		noPassFlag, v1CompatFlag, binaryFlag, embeddedFlag, quietFlag bool
		identFlag, pubkeyFlag, seckeyFlag, ringFlag, msgFlag, sigFlag, outFlag string
	)
	flag.BoolVar(&genFlag, "G", false, "generate a keypair")
	flag.BoolVar(&signFlag, "S", false, "sign a message")
	flag.BoolVar(&verifyFlag, "V", false, "verify a signed message")
	flag.BoolVar(&encryptFlag, "E", false, "encrypt a message")
	flag.BoolVar(&decryptFlag, "D", false, "decrypt a message")
	flag.BoolVar(&noPassFlag, "n", false, "no passphrase")
	flag.BoolVar(&v1CompatFlag, "1", false, "legacy v1-compatible envelope")
	flag.BoolVar(&binaryFlag, "b", false, "binary framing")
	flag.BoolVar(&embeddedFlag, "e", false, "embedded signature")
	flag.BoolVar(&quietFlag, "q", false, "quiet")
	flag.StringVar(&identFlag, "i", "", "identifier")
	flag.StringVar(&pubkeyFlag, "p", "", "public key path")
	flag.StringVar(&ringFlag, "k", "", "public keyring path")
	flag.StringVar(&seckeyFlag, "s", "", "secret key path")
	flag.StringVar(&msgFlag, "m", "", "message path")
	flag.StringVar(&sigFlag, "x", "", "signature path")
	flag.StringVar(&outFlag, "o", "", "output path")
	flag.Parse()

	if pubkeyFlag == "" {
		pubkeyFlag = defaultPublicKeyPath()
	}
	if seckeyFlag == "" {
		seckeyFlag = defaultSecretKeyPath()
	}
	if ringFlag == "" {
		ringFlag = defaultKeyringPath()
	}

	switch {
	case genFlag:
		cmdGenerate(identFlag, pubkeyFlag, seckeyFlag, noPassFlag, quietFlag)
	case signFlag:
		cmdSign(seckeyFlag, msgFlag, sigFlag, embeddedFlag, outFlag)
	case verifyFlag:
		cmdVerify(pubkeyFlag, msgFlag, sigFlag, embeddedFlag)
	case encryptFlag:
		cmdEncrypt(pubkeyFlag, seckeyFlag, ringFlag, identFlag, msgFlag, outFlag, v1CompatFlag, binaryFlag, flagPassed("p"), flagPassed("s"))
	case decryptFlag:
		cmdDecrypt(pubkeyFlag, seckeyFlag, msgFlag, outFlag, flagPassed("p"))
	default:
		flag.Usage()
		exit(1)
	}
}

func flagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func cmdGenerate(ident, pubPath, secPath string, noPass, quiet bool) {
	pub, sec, err := reop.Generate(ident)
	if err != nil {
		errorf("generating keypair: %v", err)
	}
	defer sec.Zero()

	password := ""
	if !noPass {
		p, err := readPassphrase("passphrase", true)
		if err != nil {
			errorf("reading passphrase: %v", err)
		}
		password = p
	}

	wrapped, err := reop.WrapSecretKey(sec, password)
	if err != nil {
		errorf("wrapping secret key: %v", err)
	}
	if err := os.WriteFile(secPath, []byte(wrapped), 0600); err != nil {
		errorf("writing %s: %v", secPath, err)
	}
	if err := os.WriteFile(pubPath, []byte(reop.EncodePublicKey(pub)), 0644); err != nil {
		errorf("writing %s: %v", pubPath, err)
	}
	if !quiet {
		printf("keypair generated and written to %s and %s", secPath, pubPath)
	}
}

// resolveSecretKey reads and unwraps the secret key at secPath, only
// prompting for a passphrase when the key actually requires one.
func resolveSecretKey(secPath string) *reop.SecretKey {
	secText, err := os.ReadFile(secPath)
	if err != nil {
		errorf("reading %s: %v", secPath, err)
	}
	needsPass, err := reop.SecretKeyNeedsPassphrase(string(secText))
	if err != nil {
		errorf("parsing %s: %v", secPath, err)
	}
	password := ""
	if needsPass {
		password, err = readPassphrase("passphrase", false)
		if err != nil {
			errorf("reading passphrase: %v", err)
		}
	}
	sec, err := reop.UnwrapSecretKey(string(secText), password)
	if err != nil {
		errorf("unwrapping %s: %v", secPath, err)
	}
	return sec
}

func cmdSign(secPath, msgPath, sigPath string, embedded bool, outPath string) {
	sec := resolveSecretKey(secPath)
	defer sec.Zero()

	msg := readMessage(msgPath)
	sig := reop.Sign(sec, msg)

	if embedded {
		writeOutput(outPath, []byte(reop.EncodeSignedMessage(sig, msg)))
		return
	}
	if sigPath == "" {
		sigPath = msgPath + ".sig"
	}
	if err := os.WriteFile(sigPath, []byte(reop.EncodeSignature(sig)), 0644); err != nil {
		errorf("writing %s: %v", sigPath, err)
	}
}

func cmdVerify(pubPath, msgPath, sigPath string, embedded bool) {
	pubText, err := os.ReadFile(pubPath)
	if err != nil {
		errorf("reading %s: %v", pubPath, err)
	}
	pub, err := reop.ParsePublicKey(string(pubText))
	if err != nil {
		errorf("parsing %s: %v", pubPath, err)
	}

	var msg []byte
	var sig *reop.Signature
	if embedded {
		text := readMessage(msgPath)
		msg, sig, err = reop.ParseSignedMessage(string(text))
		if err != nil {
			errorf("parsing embedded signature: %v", err)
		}
	} else {
		msg = readMessage(msgPath)
		if sigPath == "" {
			sigPath = msgPath + ".sig"
		}
		sigText, err2 := os.ReadFile(sigPath)
		if err2 != nil {
			errorf("reading %s: %v", sigPath, err2)
		}
		sig, err = reop.ParseSignature(string(sigText))
		if err != nil {
			errorf("parsing %s: %v", sigPath, err)
		}
	}

	switch reop.Verify(pub, msg, sig) {
	case reop.VerifyOK:
		printf("verified")
	case reop.VerifyMismatch:
		errorf("signature key does not match %s", pubPath)
	default:
		errorf("signature verification failed")
	}
}

func cmdEncrypt(pubPath, secPath, ringPath, ident, msgPath, outPath string, v1Compat, binary, havePub, haveSec bool) {
	msg := readMessage(msgPath)

	if !havePub && ident == "" {
		// symmetric encryption: passphrase only, no recipient key
		password, err := readPassphrase("passphrase", true)
		if err != nil {
			errorf("reading passphrase: %v", err)
		}
		if binary {
			out, err := reop.EncryptSymToBinary(msg, password)
			if err != nil {
				errorf("encrypting: %v", err)
			}
			writeOutput(outPath, out)
		} else {
			out, err := reop.EncryptSymToArmor(msg, password)
			if err != nil {
				errorf("encrypting: %v", err)
			}
			writeOutput(outPath, []byte(out))
		}
		return
	}
	if !haveSec {
		errorf("encrypting to a recipient requires -s")
	}

	var pub *reop.PublicKey
	if havePub {
		pubText, err := os.ReadFile(pubPath)
		if err != nil {
			errorf("reading %s: %v", pubPath, err)
		}
		pub, err = reop.ParsePublicKey(string(pubText))
		if err != nil {
			errorf("parsing %s: %v", pubPath, err)
		}
	} else {
		ringText, err := os.ReadFile(ringPath)
		if err != nil {
			errorf("reading %s: %v", ringPath, err)
		}
		pub, err = reop.FindPublicKeyInRing(string(ringText), ident)
		if err != nil {
			errorf("looking up %q in %s: %v", ident, ringPath, err)
		}
	}

	sec := resolveSecretKey(secPath)
	defer sec.Zero()

	if v1Compat {
		warningf("v1-compatible envelope carries no identifier")
		if binary {
			out, err := reop.EncryptPubToBinaryV1Compat(pub, sec, msg)
			if err != nil {
				errorf("encrypting: %v", err)
			}
			writeOutput(outPath, out)
		} else {
			out, err := reop.EncryptPubToArmorV1Compat(pub, sec, msg)
			if err != nil {
				errorf("encrypting: %v", err)
			}
			writeOutput(outPath, []byte(out))
		}
		return
	}

	if binary {
		out, err := reop.EncryptPubToBinary(pub, sec, msg)
		if err != nil {
			errorf("encrypting: %v", err)
		}
		writeOutput(outPath, out)
	} else {
		out, err := reop.EncryptPubToArmor(pub, sec, msg)
		if err != nil {
			errorf("encrypting: %v", err)
		}
		writeOutput(outPath, []byte(out))
	}
}

func cmdDecrypt(pubPath, secPath, msgPath, outPath string, havePub bool) {
	data := readMessage(msgPath)

	kind, err := reop.PeekKind(data)
	if err != nil {
		errorf("decrypting: %v", err)
	}

	var pub *reop.PublicKey
	var sec *reop.SecretKey
	var password string

	switch kind {
	case reop.KindSym:
		password, err = readPassphrase("passphrase", false)
		if err != nil {
			errorf("reading passphrase: %v", err)
		}

	default:
		if havePub {
			pubText, err := os.ReadFile(pubPath)
			if err != nil {
				errorf("reading %s: %v", pubPath, err)
			}
			pub, err = reop.ParsePublicKey(string(pubText))
			if err != nil {
				errorf("parsing %s: %v", pubPath, err)
			}
		}

		sec = resolveSecretKey(secPath)
		defer sec.Zero()
	}

	result, err := reop.Decrypt(data, password, pub, sec)
	if err != nil {
		errorf("decrypting: %v", err)
	}
	switch result.Kind {
	case reop.KindLegacyEnc, reop.KindLegacyEph:
		warningf("message used a legacy envelope format")
	}
	writeOutput(outPath, result.Plaintext)
}

func readMessage(path string) []byte {
	if path == "" || path == "-" {
		data, err := readAllStdin()
		if err != nil {
			errorf("reading standard input: %v", err)
		}
		return data
	}
	data, err := readFileCapped(path)
	if err != nil {
		errorf("reading %s: %v", path, err)
	}
	return data
}

func writeOutput(path string, data []byte) {
	if path == "" || path == "-" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		errorf("writing %s: %v", path, err)
	}
}
