package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Default key and ring locations, all relative to $HOME/.reop.
func defaultSecretKeyPath() string {
	return filepath.Join(homeDir(), ".reop", "seckey")
}

func defaultPublicKeyPath() string {
	return filepath.Join(homeDir(), ".reop", "pubkey")
}

func defaultKeyringPath() string {
	return filepath.Join(homeDir(), ".reop", "pubkeyring")
}

func homeDir() string {
	h, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return h
}

// maxFileSize caps how much a single message or ciphertext input (read
// through readMessage) the CLI will read into memory; key, signature and
// keyring files are read with os.ReadFile and are not capped. The core
// cryptographic functions take byte slices and have no opinion on input
// size.
const maxFileSize = 1 << 30

func readFileCapped(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("%s is larger than the %d byte limit", path, maxFileSize)
	}

	buf := make([]byte, info.Size())
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// readAllStdin reads standard input up to maxFileSize+1 bytes, so an
// oversized pipe is caught without buffering the whole thing first.
func readAllStdin() ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(os.Stdin, maxFileSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("standard input is larger than the %d byte limit", maxFileSize)
	}
	return data, nil
}
