// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"runtime"
	"testing"
)

// homeEnvVar is the variable SetHomeDir manipulates on this platform.
func homeEnvVar() string {
	if runtime.GOOS == "windows" {
		return "USERPROFILE"
	}
	return "HOME"
}

func TestSetHomeDir(t *testing.T) {
	key := homeEnvVar()
	original := os.Getenv(key)
	fakeHome := t.TempDir()

	restore := SetHomeDir(t, fakeHome)

	if got := os.Getenv(key); got != fakeHome {
		t.Errorf("%s = %q after SetHomeDir, want %q", key, got, fakeHome)
	}

	restore()

	if got := os.Getenv(key); got != original {
		t.Errorf("%s = %q after restore, want %q", key, got, original)
	}
}

func TestSetHomeDir_AsCleanup(t *testing.T) {
	key := homeEnvVar()
	original := os.Getenv(key)
	fakeHome := t.TempDir()

	t.Run("redirected", func(t *testing.T) {
		t.Cleanup(SetHomeDir(t, fakeHome))

		if got := os.Getenv(key); got != fakeHome {
			t.Errorf("%s = %q inside subtest, want %q", key, got, fakeHome)
		}
	})

	if got := os.Getenv(key); got != original {
		t.Errorf("%s = %q after subtest cleanup, want %q", key, got, original)
	}
}

func TestMustSetenv_RestoresAbsentVariable(t *testing.T) {
	const key = "FOLIO_TESTUTIL_SCRATCH_VAR"
	os.Unsetenv(key)

	restore := MustSetenv(t, key, "on")
	if got := os.Getenv(key); got != "on" {
		t.Errorf("%s = %q, want %q", key, got, "on")
	}

	restore()
	if _, still := os.LookupEnv(key); still {
		t.Errorf("%s still set after restore", key)
	}
}

func TestMustUnsetenv(t *testing.T) {
	const key = "FOLIO_TESTUTIL_UNSET_VAR"
	t.Setenv(key, "before")

	restore := MustUnsetenv(t, key)
	if _, set := os.LookupEnv(key); set {
		t.Errorf("%s still set after MustUnsetenv", key)
	}

	restore()
	if got := os.Getenv(key); got != "before" {
		t.Errorf("%s = %q after restore, want %q", key, got, "before")
	}
}
