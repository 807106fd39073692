package group

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeBackend records persisted snapshots in memory and can be told to fail.
type fakeBackend struct {
	mu     sync.Mutex
	saved  [][]*Group
	seed   []*Group
	failOn bool
}

func (f *fakeBackend) SaveGroups(groups []*Group) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn {
		return fmt.Errorf("disk on fire")
	}
	f.saved = append(f.saved, groups)
	return nil
}

func (f *fakeBackend) LoadGroups() ([]*Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seed, nil
}

func (f *fakeBackend) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

func insertTestGroup(t *testing.T, s *Store, id string) *Group {
	t.Helper()
	g := mustNew(t, testParams())
	g.ID = id
	if err := s.Insert(g); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	return g
}

func TestStoreInsertAndGet(t *testing.T) {
	s := NewStore(nil)
	insertTestGroup(t, s, "msg-1")

	got, err := s.Get("msg-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "Avalonian Dungeon" {
		t.Fatalf("unexpected group: %+v", got)
	}

	if _, err := s.Get("missing"); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestStoreGetReturnsSnapshot(t *testing.T) {
	s := NewStore(nil)
	insertTestGroup(t, s, "msg-1")

	snap, _ := s.Get("msg-1")
	snap.Members["Tank"] = append(snap.Members["Tank"], "intruder")

	fresh, _ := s.Get("msg-1")
	if len(fresh.Members["Tank"]) != 0 {
		t.Fatal("mutating a snapshot must not affect the store")
	}
}

func TestStoreJoinLeaveClose(t *testing.T) {
	s := NewStore(nil)
	insertTestGroup(t, s, "msg-1")

	snap, err := s.Join("msg-1", "alice", "Tank")
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if snap.RoleOf("alice") != "Tank" {
		t.Fatal("snapshot missing the join")
	}

	if _, err := s.Close("msg-1", "someone-else"); !errors.Is(err, ErrNotCreator) {
		t.Fatalf("expected ErrNotCreator, got %v", err)
	}
	closed, err := s.Close("msg-1", "creator")
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if !closed.Closed {
		t.Fatal("snapshot must reflect closed state")
	}

	if _, err := s.Join("msg-1", "bob", "Healer"); !errors.Is(err, ErrAlreadyClosed) {
		t.Fatalf("expected ErrAlreadyClosed after close, got %v", err)
	}
	if _, err := s.Leave("msg-1", "alice"); !errors.Is(err, ErrAlreadyClosed) {
		t.Fatalf("expected ErrAlreadyClosed after close, got %v", err)
	}
	// State unchanged by the rejected operations.
	final, _ := s.Get("msg-1")
	if final.RoleOf("alice") != "Tank" {
		t.Fatal("roster changed after rejected operations")
	}
}

func TestStoreEdit(t *testing.T) {
	s := NewStore(nil)
	insertTestGroup(t, s, "msg-1")
	for i, join := range []struct{ user, role string }{
		{"u1", "Healer"}, {"u2", "Healer"}, {"u3", "DPS"},
	} {
		if _, err := s.Join("msg-1", join.user, join.role); err != nil {
			t.Fatalf("join %d failed: %v", i, err)
		}
	}

	req := EditRequest{
		Title:        "Avalonian Dungeon T8",
		Description:  "Nova descrição",
		TotalPlayers: 3,
		RoleSpec:     "1 Tank, 1 Healer, 1 DPS",
		Date:         "11/05/2024",
		Time:         "21:00",
	}

	if _, err := s.Edit("msg-1", "someone-else", req, testNow); !errors.Is(err, ErrNotCreator) {
		t.Fatalf("expected ErrNotCreator, got %v", err)
	}

	snap, err := s.Edit("msg-1", "creator", req, testNow)
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if snap.Title != "Avalonian Dungeon T8" || snap.TotalCapacity != 3 {
		t.Fatalf("edit not applied: %+v", snap)
	}
	// Healer shrank from 2 to 1: the earliest joiner stays, the later one is dropped.
	if len(snap.Members["Healer"]) != 1 || snap.Members["Healer"][0] != "u1" {
		t.Fatalf("expected pruning to keep earliest joiner u1, got %v", snap.Members["Healer"])
	}
	if snap.Members["DPS"][0] != "u3" {
		t.Fatalf("unrelated role lost members: %v", snap.Members["DPS"])
	}
}

func TestStoreEditRevalidates(t *testing.T) {
	s := NewStore(nil)
	insertTestGroup(t, s, "msg-1")

	bad := EditRequest{
		Title:        "x",
		TotalPlayers: 10, // does not match the spec below
		RoleSpec:     "1 Tank",
		Date:         "11/05/2024",
		Time:         "21:00",
	}
	var verr *ValidationError
	if _, err := s.Edit("msg-1", "creator", bad, testNow); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	// Rejected edit leaves the group untouched.
	g, _ := s.Get("msg-1")
	if g.Title != "Avalonian Dungeon" {
		t.Fatal("group mutated by a rejected edit")
	}
}

func TestStoreClaimStartingSoonPing(t *testing.T) {
	s := NewStore(nil)
	g := insertTestGroup(t, s, "msg-1")

	before := g.StartTime.Add(-time.Hour)
	if _, ok := s.ClaimStartingSoonPing("msg-1", before); ok {
		t.Fatal("ping claimed outside the window")
	}

	within := g.StartTime.Add(-5 * time.Minute)
	snap, ok := s.ClaimStartingSoonPing("msg-1", within)
	if !ok {
		t.Fatal("expected to claim the ping inside the window")
	}
	if !snap.Pinged {
		t.Fatal("snapshot must carry the pinged flag")
	}

	// A second tick inside the window must not re-notify.
	if _, ok := s.ClaimStartingSoonPing("msg-1", within.Add(time.Minute)); ok {
		t.Fatal("ping claimed twice")
	}
}

func TestStorePersistsAfterMutations(t *testing.T) {
	backend := &fakeBackend{}
	s := NewStore(backend)
	insertTestGroup(t, s, "msg-1")

	if _, err := s.Join("msg-1", "alice", "Tank"); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if _, err := s.Close("msg-1", "creator"); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	// insert + join + close
	if backend.saveCount() != 3 {
		t.Fatalf("expected 3 persists, got %d", backend.saveCount())
	}
}

func TestStoreToleratesPersistFailure(t *testing.T) {
	backend := &fakeBackend{failOn: true}
	s := NewStore(backend)
	insertTestGroup(t, s, "msg-1")

	if _, err := s.Join("msg-1", "alice", "Tank"); err != nil {
		t.Fatalf("join must succeed despite persist failure, got %v", err)
	}
	g, _ := s.Get("msg-1")
	if g.RoleOf("alice") != "Tank" {
		t.Fatal("in-memory state must remain authoritative")
	}
}

func TestStoreLoad(t *testing.T) {
	seedOK := mustNew(t, testParams())
	seedOK.ID = "msg-1"
	seedNoID := mustNew(t, testParams())

	backend := &fakeBackend{seed: []*Group{seedOK, seedNoID}}
	s := NewStore(backend)
	if err := s.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 loaded group (entry without id skipped), got %d", s.Len())
	}
	if _, err := s.Get("msg-1"); err != nil {
		t.Fatalf("loaded group missing: %v", err)
	}
}
