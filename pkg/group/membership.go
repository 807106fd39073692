package group

// Join places the user in the named role, moving them from any role they
// already occupy. Switching roles is just a join on the new role.
//
// Validation happens before any mutation: a join that fails because the group
// is closed, the role is unknown, or the role is full leaves the user's
// current membership untouched. (The original implementation evicted first
// and checked capacity after, so a failed join dropped the user from their
// previous role; that was judged unintended and is deliberately not kept.)
func (g *Group) Join(userID, roleName string) error {
	if g.Closed {
		return ErrAlreadyClosed
	}
	if !g.Roles.Has(roleName) {
		return ErrUnknownRole
	}

	current := g.RoleOf(userID)
	if current == roleName {
		return nil
	}

	// The user's own slot does not count against the target role.
	if len(g.Members[roleName]) >= g.Roles.Capacity(roleName) {
		return ErrRoleFull
	}

	if current != "" {
		g.removeFrom(current, userID)
	}
	g.Members[roleName] = append(g.Members[roleName], userID)
	return nil
}

// Leave removes the user from whichever role list contains them.
// A leave for a non-member or on a closed group is a no-op error
// only in the closed case.
func (g *Group) Leave(userID string) error {
	if g.Closed {
		return ErrAlreadyClosed
	}
	if current := g.RoleOf(userID); current != "" {
		g.removeFrom(current, userID)
	}
	return nil
}

func (g *Group) removeFrom(roleName, userID string) {
	list := g.Members[roleName]
	for i, id := range list {
		if id == userID {
			g.Members[roleName] = append(list[:i], list[i+1:]...)
			return
		}
	}
}
