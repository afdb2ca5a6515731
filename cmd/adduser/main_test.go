package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"fueltrip/internal/auth"
	"fueltrip/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCreatesUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	var stdout, stderr bytes.Buffer
	err := run(
		[]string{"-user", "kate", "-email", "kate@example.com", "-password", "secret123", "-db", dbPath},
		strings.NewReader(""), &stdout, &stderr,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "created successfully")

	db, err := storage.NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	user, err := db.GetUserByEmail("kate@example.com")
	require.NoError(t, err)
	assert.Equal(t, "kate", user.Username)
	assert.True(t, auth.CheckPassword("secret123", user.PasswordHash))
}

func TestRunPromptsForPassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	var stdout, stderr bytes.Buffer
	err := run(
		[]string{"-user", "kate", "-email", "kate@example.com", "-db", dbPath},
		strings.NewReader("frompipe\n"), &stdout, &stderr,
	)
	require.NoError(t, err)

	db, err := storage.NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	user, err := db.GetUserByEmail("kate@example.com")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword("frompipe", user.PasswordHash))
}

func TestRunRejectsDuplicateEmail(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	var stdout, stderr bytes.Buffer
	err := run(
		[]string{"-user", "kate", "-email", "kate@example.com", "-password", "secret123", "-db", dbPath},
		strings.NewReader(""), &stdout, &stderr,
	)
	require.NoError(t, err)

	err = run(
		[]string{"-user", "other", "-email", "kate@example.com", "-password", "secret456", "-db", dbPath},
		strings.NewReader(""), &stdout, &stderr,
	)
	assert.ErrorContains(t, err, "already exists")
}

func TestRunMissingFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-user", "kate"}, strings.NewReader(""), &stdout, &stderr)
	assert.ErrorContains(t, err, "missing required flags")
}

func TestRunEmptyPassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	var stdout, stderr bytes.Buffer
	err := run(
		[]string{"-user", "kate", "-email", "kate@example.com", "-db", dbPath},
		strings.NewReader("   \n"), &stdout, &stderr,
	)
	assert.ErrorContains(t, err, "password cannot be empty")
}
