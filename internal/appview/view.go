// Package appview models which screen the client shows for a given role and
// the fixed navigation surface each role gets. The machine only supplies
// defaults and menus; it does not stop a caller from driving to an
// out-of-role view, matching the original client.
package appview

import "github.com/HarvestHub/HH-Backend/internal/auth"

type View string

const (
	ViewDashboard       View = "DASHBOARD"
	ViewCropAnalysis    View = "CROP_ANALYSIS"
	ViewVoiceAssistant  View = "VOICE_ASSISTANT"
	ViewMarketplace     View = "MARKETPLACE"
	ViewFertilizerStore View = "FERTILIZER_STORE"
	ViewBrowseProduce   View = "BROWSE_PRODUCE"
	ViewManageListings  View = "MANAGE_LISTINGS"
)

var allViews = map[View]struct{}{
	ViewDashboard:       {},
	ViewCropAnalysis:    {},
	ViewVoiceAssistant:  {},
	ViewMarketplace:     {},
	ViewFertilizerStore: {},
	ViewBrowseProduce:   {},
	ViewManageListings:  {},
}

func (v View) Valid() bool {
	_, ok := allViews[v]
	return ok
}

// DefaultView is the screen a role lands on. Unknown or unset roles land on
// the dashboard.
func DefaultView(role auth.Role) View {
	switch role {
	case auth.RoleFarmer:
		return ViewDashboard
	case auth.RoleBuyer:
		return ViewBrowseProduce
	case auth.RoleSeller:
		return ViewManageListings
	default:
		return ViewDashboard
	}
}

// NavItems is the fixed menu per role. Farmers get the full advisory and
// selling surface; buyers and sellers each get their single screen.
func NavItems(role auth.Role) []View {
	switch role {
	case auth.RoleBuyer:
		return []View{ViewBrowseProduce}
	case auth.RoleSeller:
		return []View{ViewManageListings}
	default:
		return []View{
			ViewDashboard,
			ViewCropAnalysis,
			ViewVoiceAssistant,
			ViewMarketplace,
			ViewFertilizerStore,
		}
	}
}

// Machine tracks the current view and the last role it applied a default
// for. A fresh machine shows the dashboard.
type Machine struct {
	current  View
	lastRole auth.Role
}

func NewMachine() *Machine {
	return &Machine{current: ViewDashboard}
}

func (m *Machine) Current() View { return m.current }

// SetRole applies the role's default view, but only when the role actually
// changed since the last call. Re-announcing the same role leaves whatever
// view the user navigated to untouched.
func (m *Machine) SetRole(role auth.Role) View {
	if role == "" || role == m.lastRole {
		return m.current
	}
	m.current = DefaultView(role)
	m.lastRole = role
	return m.current
}

// Navigate moves to v if it names a known view. It does not check v against
// the role's menu: out-of-role navigation is possible here just as it is in
// the client.
func (m *Machine) Navigate(v View) bool {
	if !v.Valid() {
		return false
	}
	m.current = v
	return true
}
