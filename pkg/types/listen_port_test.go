// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestListenPortValidate(t *testing.T) {
	t.Parallel()

	// Zero is the auto-select default used by "folio serve".
	for _, p := range []ListenPort{0, 1, 3000, 8080, 65535} {
		if err := p.Validate(); err != nil {
			t.Errorf("ListenPort(%d).Validate() error: %v", p, err)
		}
	}

	for _, p := range []ListenPort{-1, -100, 65536, 100000} {
		err := p.Validate()
		if err == nil {
			t.Errorf("ListenPort(%d).Validate() = nil, want error", p)
			continue
		}
		if !errors.Is(err, ErrInvalidListenPort) {
			t.Errorf("error %v does not wrap ErrInvalidListenPort", err)
		}
		var portErr *InvalidListenPortError
		if !errors.As(err, &portErr) {
			t.Errorf("error type %T, want *InvalidListenPortError", err)
		} else if portErr.Value != p {
			t.Errorf("error carries port %d, want %d", portErr.Value, p)
		}
	}
}

func TestListenPortString(t *testing.T) {
	t.Parallel()

	tests := map[ListenPort]string{
		0:     "0",
		3000:  "3000",
		8080:  "8080",
		65535: "65535",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("ListenPort(%d).String() = %q, want %q", p, got, want)
		}
	}
}
