package group

import (
	"regexp"
	"strconv"
	"strings"
)

// RoleSpec is a named, capacity-limited slot category inside a group.
type RoleSpec struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// RoleTable maps role names to their specs, preserving declaration order.
type RoleTable struct {
	Order []string            `json:"order"`
	Specs map[string]RoleSpec `json:"specs"`
}

// clausePattern matches a single role clause: a positive integer, whitespace,
// then the role name (which may contain spaces and punctuation).
var clausePattern = regexp.MustCompile(`^(\d+)\s+(.+)$`)

// ParseRoles turns a free-text spec such as "1 Tank, 2 Healer, 3 DPS" into a
// role table and the sum of all capacities. Clauses that do not match the
// expected pattern are silently skipped. A duplicate role name replaces the
// earlier occurrence (last one wins) without contributing a second table
// entry. An input yielding zero valid roles returns ErrNoValidRoles.
func ParseRoles(input string) (RoleTable, int, error) {
	table := RoleTable{Specs: make(map[string]RoleSpec)}
	total := 0

	for _, clause := range strings.Split(input, ",") {
		m := clausePattern.FindStringSubmatch(strings.TrimSpace(clause))
		if m == nil {
			continue
		}
		qty, err := strconv.Atoi(m[1])
		if err != nil || qty <= 0 {
			continue
		}
		name := strings.TrimSpace(m[2])

		if prev, ok := table.Specs[name]; ok {
			total -= prev.Capacity
		} else {
			table.Order = append(table.Order, name)
		}
		table.Specs[name] = RoleSpec{Name: name, Capacity: qty}
		total += qty
	}

	if len(table.Specs) == 0 {
		return RoleTable{}, 0, ErrNoValidRoles
	}
	return table, total, nil
}

// Has reports whether the table contains the named role.
func (t RoleTable) Has(name string) bool {
	_, ok := t.Specs[name]
	return ok
}

// Capacity returns the capacity of the named role, or 0 when absent.
func (t RoleTable) Capacity(name string) int {
	return t.Specs[name].Capacity
}
