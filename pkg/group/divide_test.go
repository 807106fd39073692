package group

import (
	"errors"
	"testing"
)

func TestDivide(t *testing.T) {
	cases := []struct {
		total, count    int
		share, leftover int
	}{
		{100, 3, 33, 1},
		{10, 5, 2, 0},
		{7, 10, 0, 7},
		{1000000, 7, 142857, 1},
	}
	for _, c := range cases {
		share, leftover, err := Divide(c.total, c.count)
		if err != nil {
			t.Errorf("Divide(%d, %d): unexpected error %v", c.total, c.count, err)
			continue
		}
		if share != c.share || leftover != c.leftover {
			t.Errorf("Divide(%d, %d): expected (%d, %d), got (%d, %d)",
				c.total, c.count, c.share, c.leftover, share, leftover)
		}
	}
}

func TestDivideInvalidCount(t *testing.T) {
	for _, count := range []int{0, -1, -100} {
		if _, _, err := Divide(100, count); !errors.Is(err, ErrInvalidParticipants) {
			t.Errorf("Divide(100, %d): expected ErrInvalidParticipants, got %v", count, err)
		}
	}
}

func TestEffectiveParticipants(t *testing.T) {
	cases := []struct {
		explicit, mentioned, want int
	}{
		{5, 0, 5},
		{0, 4, 4},
		{3, 7, 7}, // both given: the larger wins
		{7, 3, 7},
	}
	for _, c := range cases {
		if got := EffectiveParticipants(c.explicit, c.mentioned); got != c.want {
			t.Errorf("EffectiveParticipants(%d, %d): expected %d, got %d",
				c.explicit, c.mentioned, c.want, got)
		}
	}
}
