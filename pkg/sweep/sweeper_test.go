package sweep

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hevertonluis504-cpu/Albion-bot/pkg/group"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, group.BrazilZone)

type fakePresenter struct {
	mu          sync.Mutex
	updates     []string
	announces   []string
	failFor     map[string]bool
	lastUpdated map[string]*group.Group
}

func (f *fakePresenter) UpdatePanel(g *group.Group, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[g.ID] {
		return errors.New("unreachable panel")
	}
	f.updates = append(f.updates, g.ID)
	if f.lastUpdated == nil {
		f.lastUpdated = make(map[string]*group.Group)
	}
	f.lastUpdated[g.ID] = g
	return nil
}

func (f *fakePresenter) AnnounceStartingSoon(g *group.Group) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.announces = append(f.announces, g.ID)
	return nil
}

func seedGroup(t *testing.T, store *group.Store, id, date, hour string) {
	t.Helper()
	g, err := group.New(group.Params{
		ChannelID:    "chan",
		Title:        "Avalon " + id,
		TotalPlayers: 1,
		RoleSpec:     "1 Tank",
		Date:         date,
		Time:         hour,
		CreatorID:    "creator",
	}, testNow)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	g.ID = id
	if err := store.Insert(g); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
}

func TestSweepOncePingsWithinWindowExactlyOnce(t *testing.T) {
	store := group.NewStore(nil)
	presenter := &fakePresenter{}
	sw := New(store, presenter, time.Second)

	// g-soon começa em 2h; g-far no dia seguinte.
	seedGroup(t, store, "g-soon", "10/03/2025", "14:00")
	seedGroup(t, store, "g-far", "11/03/2025", "20:00")

	sw.SweepOnce(testNow)
	if len(presenter.announces) != 0 {
		t.Fatalf("no announcement expected outside the window, got %v", presenter.announces)
	}

	inWindow := time.Date(2025, 3, 10, 13, 55, 0, 0, group.BrazilZone)
	sw.SweepOnce(inWindow)
	if len(presenter.announces) != 1 || presenter.announces[0] != "g-soon" {
		t.Fatalf("expected single announcement for g-soon, got %v", presenter.announces)
	}

	sw.SweepOnce(inWindow.Add(time.Minute))
	if len(presenter.announces) != 1 {
		t.Fatalf("announcement must be one-shot, got %v", presenter.announces)
	}
}

func TestSweepOncePanelReflectsClaimedPing(t *testing.T) {
	store := group.NewStore(nil)
	presenter := &fakePresenter{}
	sw := New(store, presenter, time.Second)

	seedGroup(t, store, "g-soon", "10/03/2025", "14:00")

	inWindow := time.Date(2025, 3, 10, 13, 55, 0, 0, group.BrazilZone)
	sw.SweepOnce(inWindow)

	updated := presenter.lastUpdated["g-soon"]
	if updated == nil {
		t.Fatal("expected panel update for g-soon")
	}
	if !updated.Pinged {
		t.Fatal("panel update must carry the snapshot taken after the ping claim")
	}
}

func TestSweepOnceSkipsClosedGroups(t *testing.T) {
	store := group.NewStore(nil)
	presenter := &fakePresenter{}
	sw := New(store, presenter, time.Second)

	seedGroup(t, store, "g-open", "11/03/2025", "20:00")
	seedGroup(t, store, "g-closed", "11/03/2025", "20:00")
	if _, err := store.Close("g-closed", "creator"); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	sw.SweepOnce(testNow)
	if len(presenter.updates) != 1 || presenter.updates[0] != "g-open" {
		t.Fatalf("closed groups must be skipped, got %v", presenter.updates)
	}
}

func TestSweepOnceIsolatesFailures(t *testing.T) {
	store := group.NewStore(nil)
	presenter := &fakePresenter{failFor: map[string]bool{"g-bad": true}}
	sw := New(store, presenter, time.Second)

	seedGroup(t, store, "g-bad", "11/03/2025", "20:00")
	seedGroup(t, store, "g-ok", "11/03/2025", "21:00")

	sw.SweepOnce(testNow)

	found := false
	for _, id := range presenter.updates {
		if id == "g-ok" {
			found = true
		}
	}
	if !found {
		t.Fatalf("failure in one group must not block the others, got %v", presenter.updates)
	}
}
