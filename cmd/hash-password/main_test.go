package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRunHashesEachLine(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("testpassword123\n\nтест123\n")

	require.NoError(t, run([]string{"-cost", "4"}, in, &out, io.Discard))

	hashes := strings.Fields(out.String())
	require.Len(t, hashes, 2, "blank lines are skipped")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashes[0]), []byte("testpassword123")))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashes[1]), []byte("тест123")))

	cost, err := bcrypt.Cost([]byte(hashes[0]))
	require.NoError(t, err)
	assert.Equal(t, 4, cost)
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	err := run([]string{"-rounds", "3"}, strings.NewReader(""), io.Discard, io.Discard)
	assert.Error(t, err)
}
