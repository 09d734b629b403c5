package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"contract-registry.backend/pkg/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubHashGen(t *testing.T, args []string) (*strings.Builder, *string) {
	t.Helper()
	origArgs, origPrintf, origFatalf, origHash := os.Args, printfFn, fatalfFn, generateHashFn
	t.Cleanup(func() {
		os.Args, printfFn, fatalfFn, generateHashFn = origArgs, origPrintf, origFatalf, origHash
	})

	out := &strings.Builder{}
	fatal := new(string)
	os.Args = append([]string{"hash-gen"}, args...)
	printfFn = func(format string, a ...interface{}) (int, error) {
		return fmt.Fprintf(out, format, a...)
	}
	fatalfFn = func(format string, a ...interface{}) {
		*fatal = fmt.Sprintf(format, a...)
	}
	return out, fatal
}

func TestResolvePassword(t *testing.T) {
	_, err := resolvePassword(nil)
	assert.ErrorIs(t, err, errMissingPassword)

	_, err = resolvePassword([]string{""})
	assert.ErrorIs(t, err, errMissingPassword)

	got, err := resolvePassword([]string{"abc"})
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestMain_PrintsHash(t *testing.T) {
	out, fatal := stubHashGen(t, []string{"my-pass"})

	main()

	assert.Empty(t, *fatal)
	line := strings.TrimSpace(out.String())
	require.True(t, strings.HasPrefix(line, "ADMIN_PASSWORD_HASH="), line)
	assert.True(t, crypto.CheckPassword("my-pass", strings.TrimPrefix(line, "ADMIN_PASSWORD_HASH=")))
}

func TestMain_MissingPassword(t *testing.T) {
	out, fatal := stubHashGen(t, nil)

	main()

	assert.Equal(t, errMissingPassword.Error(), *fatal)
	assert.Empty(t, out.String())
}

func TestMain_HashError(t *testing.T) {
	out, fatal := stubHashGen(t, []string{"my-pass"})
	generateHashFn = func(string) (string, error) {
		return "", errors.New("boom")
	}

	main()

	assert.Equal(t, "Failed to hash password: boom", *fatal)
	assert.Empty(t, out.String())
}
