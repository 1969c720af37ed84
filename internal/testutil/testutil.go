// SPDX-License-Identifier: EPL-2.0

// Package testutil provides small helpers for tests that need to change
// process-global state (working directory, environment) and restore it
// afterwards.
package testutil

import (
	"os"
	"testing"
)

// MustChdir changes the working directory to dir and returns a function
// that restores the previous one. The test fails if the change fails.
func MustChdir(t testing.TB, dir string) func() {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	return func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory %s: %v", prev, err)
		}
	}
}

// MustSetenv sets key to value and returns a function that restores the
// variable to its previous value, or unsets it if it was absent.
func MustSetenv(t testing.TB, key, value string) func() {
	t.Helper()
	prev, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("setenv %s: %v", key, err)
	}
	return func() {
		if had {
			if err := os.Setenv(key, prev); err != nil {
				t.Errorf("restoring env %s: %v", key, err)
			}
			return
		}
		if err := os.Unsetenv(key); err != nil {
			t.Errorf("unsetting env %s: %v", key, err)
		}
	}
}

// MustUnsetenv removes key from the environment and returns a function
// that restores its previous value, if it had one.
func MustUnsetenv(t testing.TB, key string) func() {
	t.Helper()
	prev, had := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unsetenv %s: %v", key, err)
	}
	return func() {
		if had {
			if err := os.Setenv(key, prev); err != nil {
				t.Errorf("restoring env %s: %v", key, err)
			}
		}
	}
}

// MustMkdirAll creates path and any missing parents. The test fails if
// creation fails.
func MustMkdirAll(t testing.TB, path string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(path, perm); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}
