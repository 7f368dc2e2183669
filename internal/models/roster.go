package models

// Roster is the ordered list of participants a front end collects before settling.
// Stores hand out copies; mutate a Roster only through the store that owns it.
type Roster struct {
	// ID is the unique identifier for the roster (UUID, or a caller-chosen key
	// such as a chat channel).
	ID string

	// Participants in insertion order.
	Participants []Participant

	// CreatedAt is the Unix timestamp when the roster was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last add/remove/clear.
	UpdatedAt int64
}

// Clone returns a deep copy of the roster.
func (r *Roster) Clone() *Roster {
	if r == nil {
		return nil
	}
	c := *r
	c.Participants = append([]Participant(nil), r.Participants...)
	return &c
}
