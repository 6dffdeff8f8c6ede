package guard

import (
	"encoding/json"
	"testing"

	"github.com/foodshare/platform/internal/core/domain"
)

func principal(role domain.Role) *domain.Principal {
	return &domain.Principal{ID: "1", Email: "a@b.c", Name: "a", Role: role}
}

func TestDecide_Table(t *testing.T) {
	donor := principal(domain.RoleDonor)
	ngo := principal(domain.RoleNGO)
	admin := principal(domain.RoleAdmin)

	cases := []struct {
		path string
		who  *domain.Principal
		want string
	}{
		{PathLanding, nil, ""},
		{PathLanding, admin, ""},
		{PathLogin, nil, ""},
		{PathLogin, donor, PathDashboard},
		{PathRegister, ngo, PathDashboard},
		{PathDashboard, nil, PathLogin},
		{PathDashboard, ngo, ""},
		{PathProfile, nil, PathLogin},
		{PathProfile, admin, ""},
		{PathPostFood, nil, PathLogin},
		{PathPostFood, ngo, PathLogin},
		{PathPostFood, donor, ""},
		{PathBrowseFood, admin, PathLogin},
		{PathBrowseFood, donor, PathLogin},
		{PathBrowseFood, ngo, ""},
		{"/unlisted", nil, ""},
	}

	for _, tc := range cases {
		got := Decide(AccessFor(tc.path), tc.who)
		if got.Redirect != tc.want {
			role := "anonymous"
			if tc.who != nil {
				role = tc.who.Role.String()
			}
			t.Errorf("%s as %s: expected redirect %q, got %q", tc.path, role, tc.want, got.Redirect)
		}
	}
}

func TestDashboardFor(t *testing.T) {
	cases := map[domain.Role]Dashboard{
		domain.RoleDonor: DashboardDonor,
		domain.RoleNGO:   DashboardNGO,
		domain.RoleAdmin: DashboardAdmin,
	}
	for role, want := range cases {
		got, d := DashboardFor(principal(role))
		if got != want || !d.Allowed() {
			t.Fatalf("role %v: expected %v, got %v (%+v)", role, want, got, d)
		}
	}

	if _, d := DashboardFor(nil); d.Redirect != PathLogin {
		t.Fatalf("anonymous dashboard should redirect to login, got %q", d.Redirect)
	}
}

func TestDashboardFor_CorruptRoleFallsBackToLanding(t *testing.T) {
	var p domain.Principal
	if err := json.Unmarshal([]byte(`{"id":"1","email":"a@b.c","name":"a","role":"superuser"}`), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	got, d := DashboardFor(&p)
	if got != DashboardNone || d.Redirect != PathLanding {
		t.Fatalf("expected landing redirect, got %v %+v", got, d)
	}
}
