package group

import (
	"fmt"
	"sync"
	"time"

	"github.com/hevertonluis504-cpu/Albion-bot/pkg/log"
)

// Snapshotter is the durable storage a Store persists to. Implementations are
// opaque key-value stores of full group records; pkg/storage provides the
// SQLite one.
type Snapshotter interface {
	SaveGroups(groups []*Group) error
	LoadGroups() ([]*Group, error)
}

// Store is the authoritative in-memory registry of active groups. All
// mutations happen under its lock and are followed by a best-effort persist:
// storage failures are logged and never fail the operation, the in-memory
// state stays the source of truth.
type Store struct {
	mu      sync.Mutex
	groups  map[string]*Group
	backend Snapshotter
}

// NewStore creates a Store persisting to backend. A nil backend keeps the
// store purely in-memory (used by tests).
func NewStore(backend Snapshotter) *Store {
	return &Store{
		groups:  make(map[string]*Group),
		backend: backend,
	}
}

// Load populates the store from the backend. Called once at process start.
func (s *Store) Load() error {
	if s.backend == nil {
		return nil
	}
	groups, err := s.backend.LoadGroups()
	if err != nil {
		return fmt.Errorf("load groups: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range groups {
		if g.ID == "" {
			continue
		}
		s.groups[g.ID] = g
	}
	return nil
}

// Insert registers a freshly created group under its assigned id.
func (s *Store) Insert(g *Group) error {
	if g.ID == "" {
		return fmt.Errorf("group has no id")
	}
	s.mu.Lock()
	s.groups[g.ID] = g.Clone()
	s.mu.Unlock()
	s.persist()
	return nil
}

// Get returns a snapshot of the group, or ErrGroupNotFound.
func (s *Store) Get(id string) (*Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[id]
	if !ok {
		return nil, ErrGroupNotFound
	}
	return g.Clone(), nil
}

// Join adds the user to the named role of the group, enforcing one role per
// user and per-role capacity. Returns a post-mutation snapshot.
func (s *Store) Join(id, userID, roleName string) (*Group, error) {
	snap, err := s.mutate(id, func(g *Group) error {
		return g.Join(userID, roleName)
	})
	if err != nil {
		return nil, err
	}
	s.persist()
	return snap, nil
}

// Leave removes the user from the group, whatever role they hold.
func (s *Store) Leave(id, userID string) (*Group, error) {
	snap, err := s.mutate(id, func(g *Group) error {
		return g.Leave(userID)
	})
	if err != nil {
		return nil, err
	}
	s.persist()
	return snap, nil
}

// Close terminally closes the group. Creator-only, one-way.
func (s *Store) Close(id, requesterID string) (*Group, error) {
	snap, err := s.mutate(id, func(g *Group) error {
		if g.CreatorID != requesterID {
			return ErrNotCreator
		}
		g.Closed = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.persist()
	return snap, nil
}

// EditRequest is the full set of field replacements collected by the edit
// dialog. All fields are applied together after re-validation.
type EditRequest struct {
	Title        string
	Description  string
	TotalPlayers int
	RoleSpec     string
	Date         string
	Time         string
}

// Edit replaces the group's mutable fields. Creator-only. It re-runs the same
// validation as creation and prunes each role's member list to its new
// capacity, keeping the earliest joiners and dropping the overflow. Members
// of roles absent from the new table are dropped entirely.
func (s *Store) Edit(id, requesterID string, req EditRequest, now time.Time) (*Group, error) {
	snap, err := s.mutate(id, func(g *Group) error {
		if g.CreatorID != requesterID {
			return ErrNotCreator
		}
		if g.Closed {
			return ErrAlreadyClosed
		}

		roles, total, parseErr := ParseRoles(req.RoleSpec)
		if parseErr != nil {
			return NewValidationError("classes", "nenhuma classe válida no formato 'N Nome'")
		}
		if total != req.TotalPlayers {
			return NewValidationError("jogadores",
				fmt.Sprintf("a soma das classes (%d) difere do total de jogadores (%d)", total, req.TotalPlayers))
		}
		start, schedErr := ParseSchedule(req.Date, req.Time, now, true)
		if schedErr != nil {
			return schedErr
		}

		members := make(map[string][]string, len(roles.Order))
		for _, name := range roles.Order {
			kept := g.Members[name]
			if limit := roles.Capacity(name); len(kept) > limit {
				kept = kept[:limit]
			}
			members[name] = append([]string(nil), kept...)
		}

		g.Title = req.Title
		g.Description = req.Description
		g.StartTime = start
		g.TotalCapacity = total
		g.Roles = roles
		g.Members = members
		// The schedule may have moved out of (or back into) the ping window.
		g.Pinged = false
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.persist()
	return snap, nil
}

// ClaimStartingSoonPing atomically checks whether the group just entered the
// starting-soon window without having been pinged, and if so marks it pinged.
// Returns the snapshot and true exactly once per group per schedule.
func (s *Store) ClaimStartingSoonPing(id string, now time.Time) (*Group, bool) {
	var claimed bool
	snap, err := s.mutate(id, func(g *Group) error {
		if g.Pinged || g.DeriveStatus(now) != StatusStartingSoon {
			return nil
		}
		g.Pinged = true
		claimed = true
		return nil
	})
	if err != nil || !claimed {
		return nil, false
	}
	s.persist()
	return snap, true
}

// Remove deletes a group from the store (retention policy, external layer).
func (s *Store) Remove(id string) {
	s.mu.Lock()
	delete(s.groups, id)
	s.mu.Unlock()
	s.persist()
}

// Snapshots returns clones of every stored group, for the sweep to iterate
// without holding the lock.
func (s *Store) Snapshots() []*Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Group, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, g.Clone())
	}
	return out
}

// Len returns the number of stored groups.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.groups)
}

// mutate runs fn on the live group under the lock and returns a snapshot of
// the result. The group is only mutated when fn returns nil.
func (s *Store) mutate(id string, fn func(*Group) error) (*Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[id]
	if !ok {
		return nil, ErrGroupNotFound
	}
	if err := fn(g); err != nil {
		return nil, err
	}
	return g.Clone(), nil
}

// persist writes the full group set to the backend. Failures are logged and
// swallowed: in-memory state remains authoritative until the next attempt.
func (s *Store) persist() {
	if s.backend == nil {
		return
	}
	s.mu.Lock()
	groups := make([]*Group, 0, len(s.groups))
	for _, g := range s.groups {
		groups = append(groups, g.Clone())
	}
	s.mu.Unlock()

	if err := s.backend.SaveGroups(groups); err != nil {
		log.ErrorLogger().Error("Failed to persist groups", "count", len(groups), "err", err)
	}
}
