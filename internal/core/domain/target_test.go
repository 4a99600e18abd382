// internal/core/domain/target_test.go
package domain

import (
	"errors"
	"testing"

	"webenum/internal/testutil"
)

func TestNewTarget(t *testing.T) {
	target, err := NewTarget("  Example.COM.  ")

	testutil.AssertNoError(t, err, "valid target")
	testutil.AssertEqual(t, target.Root, "example.com", "root normalized")
	testutil.AssertEqual(t, target.String(), "example.com", "string form")
}

func TestTarget_Validate(t *testing.T) {
	tests := []struct {
		name    string
		root    string
		wantErr error
	}{
		{name: "valid domain", root: "example.com"},
		{name: "valid subdomain", root: "test.example.com"},
		{name: "valid domain with hyphen", root: "my-domain.com"},
		{name: "valid ccTLD registrable", root: "example.co.uk"},
		{name: "empty domain", root: "", wantErr: ErrEmptyTarget},
		{name: "whitespace only", root: "   ", wantErr: ErrEmptyTarget},
		{name: "IP address should fail", root: "192.168.1.1", wantErr: ErrInvalidDomain},
		{name: "IPv6 address should fail", root: "2001:db8::1", wantErr: ErrInvalidDomain},
		{name: "invalid characters", root: "invalid_domain.com", wantErr: ErrInvalidDomain},
		{name: "domain starting with hyphen", root: "-invalid.com", wantErr: ErrInvalidDomain},
		{name: "URL instead of domain", root: "https://example.com", wantErr: ErrInvalidDomain},
		{name: "bare TLD", root: "com", wantErr: ErrInvalidDomain},
		{name: "bare public suffix", root: "co.uk", wantErr: ErrInvalidDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTarget(tt.root)
			if tt.wantErr == nil {
				testutil.AssertNoError(t, err, "validation should succeed")
				return
			}
			testutil.AssertTrue(t, errors.Is(err, tt.wantErr), "expected "+tt.wantErr.Error()+", got "+errString(err))
		})
	}
}

func errString(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}
