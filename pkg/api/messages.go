// Package api defines the equalsplit.v1 RPC contract: message types, the JSON
// codec, and Connect handler and client constructors.
//
// Amounts travel as decimal strings so that no precision is lost on the wire.
// Request amounts are parsed permissively: blank or non-numeric input counts
// as zero.
package api

// Participant is one person and what they paid.
type Participant struct {
	Name string `json:"name"`
	Paid string `json:"paid,omitempty"`
}

// Balance is a participant's position against the equal share.
type Balance struct {
	Name string `json:"name"`
	Paid string `json:"paid"`
	// Net is positive when the participant is owed money.
	Net string `json:"net"`
}

// Transfer is one payment from a debtor to a creditor.
type Transfer struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
	// Display is the transfer rounded to two decimals, e.g. "Bob pays Alice AED 40.00".
	Display string `json:"display"`
}

// Roster is a participant list held by the server.
type Roster struct {
	ID           string        `json:"id"`
	Participants []Participant `json:"participants"`
	CreatedAt    int64         `json:"created_at"`
	UpdatedAt    int64         `json:"updated_at"`
}

// SettleRequest asks for a one-shot settlement of the given participants.
type SettleRequest struct {
	Participants []Participant `json:"participants"`
}

// SettleResponse carries the totals, each balance and the transfers in the
// order they were generated.
type SettleResponse struct {
	Currency  string     `json:"currency"`
	Total     string     `json:"total"`
	Share     string     `json:"share"`
	Balances  []Balance  `json:"balances"`
	Transfers []Transfer `json:"transfers"`
}

// CreateRosterRequest starts an empty roster; the server assigns its ID.
type CreateRosterRequest struct{}

// CreateRosterResponse returns the new roster.
type CreateRosterResponse struct {
	Roster *Roster `json:"roster"`
}

// GetRosterRequest looks up a roster by ID.
type GetRosterRequest struct {
	RosterID string `json:"roster_id"`
}

// GetRosterResponse returns the roster.
type GetRosterResponse struct {
	Roster *Roster `json:"roster"`
}

// AddParticipantRequest appends a participant to a roster.
// Paid is parsed permissively; blank or non-numeric counts as zero.
type AddParticipantRequest struct {
	RosterID string `json:"roster_id"`
	Name     string `json:"name"`
	Paid     string `json:"paid,omitempty"`
}

// AddParticipantResponse returns the roster after the add.
type AddParticipantResponse struct {
	Roster *Roster `json:"roster"`
}

// RemoveParticipantRequest removes the participant at a 0-based position.
type RemoveParticipantRequest struct {
	RosterID string `json:"roster_id"`
	Index    int32  `json:"index"`
}

// RemoveParticipantResponse returns the roster after the removal.
type RemoveParticipantResponse struct {
	Roster *Roster `json:"roster"`
}

// SettleRosterRequest settles a roster's current participants.
// The reply is a SettleResponse.
type SettleRosterRequest struct {
	RosterID string `json:"roster_id"`
}

// DeleteRosterRequest removes a roster.
type DeleteRosterRequest struct {
	RosterID string `json:"roster_id"`
}

// DeleteRosterResponse is empty.
type DeleteRosterResponse struct{}
