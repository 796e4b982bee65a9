package storage

import (
	"errors"
	"testing"
)

func TestParseVisibility(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    Visibility
		wantErr bool
	}{
		{raw: "", want: VisibilityVisible},
		{raw: "visible", want: VisibilityVisible},
		{raw: " hidden ", want: VisibilityHidden},
		{raw: "all", want: VisibilityAll},
		{raw: "secret", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseVisibility(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidVisibility) {
				t.Fatalf("ParseVisibility(%q) error = %v, want ErrInvalidVisibility", tc.raw, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseVisibility(%q) = %q, %v, want %q", tc.raw, got, err, tc.want)
		}
	}
}

func TestRoleCapabilities(t *testing.T) {
	t.Parallel()

	has := func(role Role, capability string) bool {
		for _, got := range role.Capabilities() {
			if got == capability {
				return true
			}
		}
		return false
	}
	if has(RoleMember, "project:write") {
		t.Fatal("member should not write projects")
	}
	if !has(RoleAdmin, "team:write") || has(RoleAdmin, "org:admin") {
		t.Fatalf("admin capabilities = %v", RoleAdmin.Capabilities())
	}
	if !has(RoleOwner, "org:admin") {
		t.Fatalf("owner capabilities = %v", RoleOwner.Capabilities())
	}
	if Role("guest").Valid() {
		t.Fatal("unknown role reported valid")
	}
}
