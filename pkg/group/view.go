package group

import (
	"fmt"
	"strings"
	"time"
)

// ViewModel is the pure projection of a group at a given instant. The Discord
// layer turns it into an embed; tests compare it directly. Identical
// (group, now) pairs always produce identical view models.
type ViewModel struct {
	Title       string
	Description string
	Status      Status
	StatusLabel string
	Color       int
	Total       int
	Joined      int
	StartUnix   int64
	Countdown   string
	Roles       []RoleView
	Closed      bool
}

// RoleView is one role section of the view: header, progress bar and the
// participant ids in join order.
type RoleView struct {
	Name     string
	Emoji    string
	Filled   int
	Capacity int
	Bar      string
	Members  []string
}

// Project maps a group's current state to its user-facing summary.
// It is deterministic and free of side effects.
func Project(g *Group, now time.Time) ViewModel {
	status := g.DeriveStatus(now)

	vm := ViewModel{
		Title:       g.Title,
		Description: g.Description,
		Status:      status,
		StatusLabel: status.Label(),
		Color:       status.Color(),
		Total:       g.TotalCapacity,
		Joined:      g.MemberCount(),
		StartUnix:   g.StartTime.Unix(),
		Countdown:   countdown(g.StartTime, now),
		Closed:      g.Closed,
	}

	for _, name := range g.Roles.Order {
		spec := g.Roles.Specs[name]
		members := g.Members[name]
		vm.Roles = append(vm.Roles, RoleView{
			Name:     spec.Name,
			Emoji:    RoleEmoji(spec.Name),
			Filled:   len(members),
			Capacity: spec.Capacity,
			Bar:      ProgressBar(len(members), spec.Capacity),
			Members:  append([]string(nil), members...),
		})
	}
	return vm
}

// RoleEmoji picks the decorative emoji for a role by substring match on the
// lowercased name.
func RoleEmoji(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "tank"):
		return "🛡️"
	case strings.Contains(n, "heal"):
		return "💚"
	case strings.Contains(n, "dps"):
		return "⚔️"
	case strings.Contains(n, "arc"):
		return "🏹"
	case strings.Contains(n, "debuff"):
		return "🌀"
	case strings.Contains(n, "suporte"):
		return "✨"
	default:
		return "🔹"
	}
}

// ProgressBar renders a filled/empty dot bar, e.g. "🟢🟢⚪".
func ProgressBar(current, total int) string {
	if current > total {
		current = total
	}
	return strings.Repeat("🟢", current) + strings.Repeat("⚪", max(total-current, 0))
}

// countdown renders the human-readable remaining time until start.
func countdown(start, now time.Time) string {
	diff := start.Sub(now)
	if diff <= 0 {
		return "já começou"
	}

	diff = diff.Round(time.Minute)
	days := int(diff / (24 * time.Hour))
	hours := int(diff % (24 * time.Hour) / time.Hour)
	minutes := int(diff % time.Hour / time.Minute)

	switch {
	case days > 0:
		return fmt.Sprintf("em %dd %dh %dmin", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("em %dh %dmin", hours, minutes)
	default:
		return fmt.Sprintf("em %dmin", minutes)
	}
}
