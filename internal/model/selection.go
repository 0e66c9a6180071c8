package model

import "fmt"

// Selection is the persisted ordered pair of chosen players. Either slot may
// be empty; the pair never holds more than two ids.
type Selection struct {
	Player1 *PlayerID `json:"player1"`
	Player2 *PlayerID `json:"player2"`
}

// Size returns the number of occupied slots.
func (s *Selection) Size() int {
	n := 0
	if s.Player1 != nil {
		n++
	}
	if s.Player2 != nil {
		n++
	}
	return n
}

// Contains reports whether the id occupies either slot.
func (s *Selection) Contains(id PlayerID) bool {
	if s.Player1 != nil && *s.Player1 == id {
		return true
	}
	if s.Player2 != nil && *s.Player2 == id {
		return true
	}
	return false
}

// IDs returns the occupied slots in order.
func (s *Selection) IDs() []PlayerID {
	ids := make([]PlayerID, 0, 2)
	if s.Player1 != nil {
		ids = append(ids, *s.Player1)
	}
	if s.Player2 != nil {
		ids = append(ids, *s.Player2)
	}
	return ids
}

// Add places the id in the first free slot. It returns ErrSelectionFull when
// both slots are taken and is a no-op for an id already present.
func (s *Selection) Add(id PlayerID) error {
	if s.Contains(id) {
		return nil
	}
	switch {
	case s.Player1 == nil:
		s.Player1 = &id
	case s.Player2 == nil:
		s.Player2 = &id
	default:
		return ErrSelectionFull
	}
	return nil
}

// Remove clears the slot holding the id, compacting the survivor into slot 1
// so the pair stays in selection order.
func (s *Selection) Remove(id PlayerID) {
	if s.Player1 != nil && *s.Player1 == id {
		s.Player1 = s.Player2
		s.Player2 = nil
		return
	}
	if s.Player2 != nil && *s.Player2 == id {
		s.Player2 = nil
	}
}

// IsReady reports whether both slots are occupied, the precondition for
// starting a match.
func (s *Selection) IsReady() bool {
	return s.Size() == 2
}

// MatchKey encodes the pair as "<id1>-<id2>" for the lastMatch record. It
// panics if the selection is not ready; callers check IsReady first.
func (s *Selection) MatchKey() string {
	if !s.IsReady() {
		panic("model: MatchKey on incomplete selection")
	}
	return fmt.Sprintf("%s-%s", *s.Player1, *s.Player2)
}

// SelectionOf builds a ready selection from two ids.
func SelectionOf(p1, p2 PlayerID) Selection {
	return Selection{Player1: &p1, Player2: &p2}
}
