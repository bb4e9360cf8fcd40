package appview

import (
	"testing"

	"github.com/HarvestHub/HH-Backend/internal/auth"
)

// TestDefaultView covers the role→landing-screen mapping, including the
// dashboard fallback for unset and unknown roles.
func TestDefaultView(t *testing.T) {
	cases := []struct {
		role auth.Role
		want View
	}{
		{auth.RoleFarmer, ViewDashboard},
		{auth.RoleBuyer, ViewBrowseProduce},
		{auth.RoleSeller, ViewManageListings},
		{"", ViewDashboard},
		{"ADMIN", ViewDashboard},
	}
	for _, tc := range cases {
		if got := DefaultView(tc.role); got != tc.want {
			t.Errorf("DefaultView(%q) = %q, want %q", tc.role, got, tc.want)
		}
	}
}

// TestNavItems verifies the fixed menu per role: five farmer screens, one
// each for buyer and seller.
func TestNavItems(t *testing.T) {
	farmer := NavItems(auth.RoleFarmer)
	if len(farmer) != 5 {
		t.Errorf("farmer menu has %d items, want 5", len(farmer))
	}
	for _, v := range farmer {
		if v == ViewBrowseProduce || v == ViewManageListings {
			t.Errorf("farmer menu contains %q", v)
		}
	}

	if got := NavItems(auth.RoleBuyer); len(got) != 1 || got[0] != ViewBrowseProduce {
		t.Errorf("buyer menu = %v, want [BROWSE_PRODUCE]", got)
	}
	if got := NavItems(auth.RoleSeller); len(got) != 1 || got[0] != ViewManageListings {
		t.Errorf("seller menu = %v, want [MANAGE_LISTINGS]", got)
	}
}

// TestMachine_RoleChange verifies the default view is applied exactly once
// per role change, not on every announcement.
func TestMachine_RoleChange(t *testing.T) {
	m := NewMachine()
	if m.Current() != ViewDashboard {
		t.Fatalf("fresh machine at %q, want DASHBOARD", m.Current())
	}

	if got := m.SetRole(auth.RoleBuyer); got != ViewBrowseProduce {
		t.Errorf("SetRole(BUYER) = %q, want BROWSE_PRODUCE", got)
	}

	// The user navigates away; re-announcing the same role must not yank
	// them back to the default.
	if !m.Navigate(ViewVoiceAssistant) {
		t.Fatal("Navigate(VOICE_ASSISTANT) rejected")
	}
	if got := m.SetRole(auth.RoleBuyer); got != ViewVoiceAssistant {
		t.Errorf("repeated SetRole moved the view to %q", got)
	}

	// An actual role change applies the new default.
	if got := m.SetRole(auth.RoleSeller); got != ViewManageListings {
		t.Errorf("SetRole(SELLER) = %q, want MANAGE_LISTINGS", got)
	}
}

// TestMachine_Navigate verifies free navigation within the enum and
// rejection of unknown views; the machine does not block out-of-role views.
func TestMachine_Navigate(t *testing.T) {
	m := NewMachine()
	m.SetRole(auth.RoleBuyer)

	// Out of the buyer menu, but still a legal destination.
	if !m.Navigate(ViewFertilizerStore) {
		t.Error("Navigate to an out-of-role view was rejected")
	}
	if m.Current() != ViewFertilizerStore {
		t.Errorf("current = %q, want FERTILIZER_STORE", m.Current())
	}

	if m.Navigate("SETTINGS") {
		t.Error("Navigate accepted an unknown view")
	}
	if m.Current() != ViewFertilizerStore {
		t.Errorf("rejected Navigate moved the view to %q", m.Current())
	}
}
