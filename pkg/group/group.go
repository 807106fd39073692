package group

import (
	"fmt"
	"time"
)

// Status is the derived lifecycle state of a group. It is never stored;
// Derive recomputes it from the closed flag, the start time and the clock.
type Status int

const (
	StatusOpen Status = iota
	StatusStartingSoon
	StatusStarted
	StatusClosed
)

// StartingSoonWindow is how long before the start time a group is considered
// about to begin (and gets its one-time ping).
const StartingSoonWindow = 10 * time.Minute

// Label returns the user-facing status text.
func (s Status) Label() string {
	switch s {
	case StatusClosed:
		return "Encerrado"
	case StatusStarted:
		return "Iniciado"
	case StatusStartingSoon:
		return "Começando em breve"
	default:
		return "Aberto"
	}
}

// Color returns the embed color associated with the status.
func (s Status) Color() int {
	switch s {
	case StatusClosed:
		return 0xe74c3c
	case StatusStarted:
		return 0x2ecc71
	case StatusStartingSoon:
		return 0xf1c40f
	default:
		return 0x3498db
	}
}

// Group is a scheduled guild activity with role quotas and a roster.
// The ID is the Discord message id of the event post, assigned by the
// presentation layer after the embed is first sent.
type Group struct {
	ID            string              `json:"id"`
	ChannelID     string              `json:"channel_id"`
	Title         string              `json:"title"`
	Description   string              `json:"description,omitempty"`
	StartTime     time.Time           `json:"start_time"`
	TotalCapacity int                 `json:"total_capacity"`
	Roles         RoleTable           `json:"roles"`
	Members       map[string][]string `json:"members"`
	CreatorID     string              `json:"creator_id"`
	Closed        bool                `json:"closed"`
	Pinged        bool                `json:"pinged"`
}

// Params carries the validated inputs of a creation request.
type Params struct {
	ChannelID    string
	Title        string
	Description  string
	TotalPlayers int
	RoleSpec     string
	Date         string
	Time         string
	CreatorID    string
}

// New validates the creation inputs and allocates a Group with an empty
// member list for every role. The returned group has no ID yet; the caller
// assigns it once the presentation layer provides one.
//
// Validation order matters for error reporting: role spec first, then the
// capacity sum against the declared total, then the schedule.
func New(p Params, now time.Time) (*Group, error) {
	roles, total, err := ParseRoles(p.RoleSpec)
	if err != nil {
		return nil, NewValidationError("classes", "nenhuma classe válida no formato 'N Nome'")
	}
	if total != p.TotalPlayers {
		return nil, NewValidationError("jogadores",
			fmt.Sprintf("a soma das classes (%d) difere do total de jogadores (%d)", total, p.TotalPlayers))
	}

	start, err := ParseSchedule(p.Date, p.Time, now, true)
	if err != nil {
		return nil, err
	}

	g := &Group{
		ChannelID:     p.ChannelID,
		Title:         p.Title,
		Description:   p.Description,
		StartTime:     start,
		TotalCapacity: total,
		Roles:         roles,
		Members:       make(map[string][]string, len(roles.Order)),
		CreatorID:     p.CreatorID,
	}
	for _, name := range roles.Order {
		g.Members[name] = []string{}
	}
	return g, nil
}

// DeriveStatus computes the lifecycle status of the group at the given time.
func (g *Group) DeriveStatus(now time.Time) Status {
	switch {
	case g.Closed:
		return StatusClosed
	case !now.Before(g.StartTime):
		return StatusStarted
	case g.StartTime.Sub(now) <= StartingSoonWindow:
		return StatusStartingSoon
	default:
		return StatusOpen
	}
}

// MemberCount returns the total number of joined participants.
func (g *Group) MemberCount() int {
	n := 0
	for _, list := range g.Members {
		n += len(list)
	}
	return n
}

// RoleOf returns the role the user currently occupies, or "" when absent.
func (g *Group) RoleOf(userID string) string {
	for _, name := range g.Roles.Order {
		for _, id := range g.Members[name] {
			if id == userID {
				return name
			}
		}
	}
	return ""
}

// Clone returns a deep copy of the group. Snapshots handed to the renderer
// and the sweeper are clones, so holders never observe later mutations.
func (g *Group) Clone() *Group {
	cp := *g
	cp.Roles = RoleTable{
		Order: append([]string(nil), g.Roles.Order...),
		Specs: make(map[string]RoleSpec, len(g.Roles.Specs)),
	}
	for name, spec := range g.Roles.Specs {
		cp.Roles.Specs[name] = spec
	}
	cp.Members = make(map[string][]string, len(g.Members))
	for name, list := range g.Members {
		cp.Members[name] = append([]string(nil), list...)
	}
	return &cp
}
