package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/term"
)

// l is a logger with no prefixes, matched by hand in printf/errorf below.
var l = log.New(os.Stderr, "", 0)

func printf(format string, v ...interface{}) {
	l.Printf("reop: "+format, v...)
}

func errorf(format string, v ...interface{}) {
	l.Printf("reop: error: "+format, v...)
	exit(1)
}

func warningf(format string, v ...interface{}) {
	l.Printf("reop: warning: "+format, v...)
}

var testOnlyPanicInsteadOfExit bool
var testOnlyDidExit bool

func exit(code int) {
	if testOnlyPanicInsteadOfExit {
		testOnlyDidExit = true
		panic(code)
	}
	os.Exit(code)
}

// readPassphrase reads a passphrase with no terminal echo, checking
// $REOP_PASSPHRASE first so scripted use never has to touch a terminal.
// confirm reprompts once and requires the two entries to match, for key
// generation and wrapping.
func readPassphrase(prompt string, confirm bool) (string, error) {
	if env, ok := os.LookupEnv("REOP_PASSPHRASE"); ok {
		return env, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("standard input is not a terminal, and REOP_PASSPHRASE is not set")
	}

	fmt.Fprintf(os.Stderr, "%s: ", prompt)
	pass, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	if !confirm {
		return string(pass), nil
	}

	fmt.Fprintf(os.Stderr, "confirm %s: ", prompt)
	again, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	if string(pass) != string(again) {
		return "", fmt.Errorf("passphrases did not match")
	}
	return string(pass), nil
}
