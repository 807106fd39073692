package group

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testParams() Params {
	return Params{
		ChannelID:    "chan-1",
		Title:        "Avalonian Dungeon",
		Description:  "Trazer comida e poções",
		TotalPlayers: 5,
		RoleSpec:     "1 Tank, 2 Healer, 2 DPS",
		Date:         "10/05/2024",
		Time:         "20:30",
		CreatorID:    "creator",
	}
}

func mustNew(t *testing.T, p Params) *Group {
	t.Helper()
	g, err := New(p, testNow)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g
}

func TestNewValid(t *testing.T) {
	g := mustNew(t, testParams())
	if g.TotalCapacity != 5 {
		t.Fatalf("expected total capacity 5, got %d", g.TotalCapacity)
	}
	for _, name := range g.Roles.Order {
		list, ok := g.Members[name]
		if !ok {
			t.Fatalf("role %q has no member list", name)
		}
		if len(list) != 0 {
			t.Fatalf("role %q should start empty", name)
		}
	}
	if g.Closed || g.Pinged {
		t.Fatal("flags must start unset")
	}
}

func TestNewCapacityMismatch(t *testing.T) {
	p := testParams()
	p.TotalPlayers = 4
	_, err := New(p, testNow)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestNewBadRoleSpec(t *testing.T) {
	p := testParams()
	p.RoleSpec = "Tank e Healer"
	var verr *ValidationError
	if _, err := New(p, testNow); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for spec without valid clauses, got %v", err)
	}
}

func TestNewPastSchedule(t *testing.T) {
	p := testParams()
	p.Date = "30/04/2024"
	if _, err := New(p, testNow); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("expected ErrInvalidSchedule, got %v", err)
	}
}

func TestDeriveStatus(t *testing.T) {
	g := mustNew(t, testParams())
	start := g.StartTime

	cases := []struct {
		name   string
		now    time.Time
		closed bool
		want   Status
	}{
		{"open", start.Add(-time.Hour), false, StatusOpen},
		{"boundary of the ping window", start.Add(-StartingSoonWindow), false, StatusStartingSoon},
		{"inside the ping window", start.Add(-time.Minute), false, StatusStartingSoon},
		{"at start", start, false, StatusStarted},
		{"after start", start.Add(time.Hour), false, StatusStarted},
		{"closed wins over everything", start.Add(-time.Hour), true, StatusClosed},
	}
	for _, c := range cases {
		g.Closed = c.closed
		if got := g.DeriveStatus(c.now); got != c.want {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestStatusLabels(t *testing.T) {
	want := map[Status]string{
		StatusOpen:         "Aberto",
		StatusStartingSoon: "Começando em breve",
		StatusStarted:      "Iniciado",
		StatusClosed:       "Encerrado",
	}
	for status, label := range want {
		if status.Label() != label {
			t.Errorf("status %v: expected label %q, got %q", status, label, status.Label())
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := mustNew(t, testParams())
	if err := g.Join("user-1", "Tank"); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	cp := g.Clone()
	if err := g.Join("user-2", "Healer"); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if cp.MemberCount() != 1 {
		t.Fatalf("clone observed a later mutation: %d members", cp.MemberCount())
	}
}
