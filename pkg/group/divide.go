package group

// Divide splits a loot amount evenly among participants using integer floor
// division, returning each share and the remainder left over.
// A non-positive participant count is a hard input error.
func Divide(totalAmount, participantCount int) (share, remainder int, err error) {
	if participantCount <= 0 {
		return 0, 0, ErrInvalidParticipants
	}
	return totalAmount / participantCount, totalAmount % participantCount, nil
}

// EffectiveParticipants resolves the participant count for a division request
// where the count may be given explicitly, inferred from mentioned users, or
// both. When both are present the larger of the two wins. This is the
// documented (if surprising) policy of the original command, kept on purpose.
func EffectiveParticipants(explicit, mentioned int) int {
	return max(explicit, mentioned)
}
