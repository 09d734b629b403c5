package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"contract-registry.backend/pkg/crypto"
)

var (
	printfFn       = fmt.Printf
	generateHashFn = crypto.HashPassword
	fatalfFn       = log.Fatalf
)

var errMissingPassword = errors.New("usage: hash-gen PASSWORD")

func resolvePassword(args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", errMissingPassword
	}
	return args[0], nil
}

// main prints an ADMIN_PASSWORD_HASH line ready for the server's .env
func main() {
	password, err := resolvePassword(os.Args[1:])
	if err != nil {
		fatalfFn("%v", err)
		return
	}

	hash, err := generateHashFn(password)
	if err != nil {
		fatalfFn("Failed to hash password: %v", err)
		return
	}

	printfFn("ADMIN_PASSWORD_HASH=%s\n", hash)
}
