// Package models defines the core domain models for equalsplit.
//
// # Models
//
//   - Participant: a person in the group and the amount they have paid
//   - Transfer: one payment from a debtor to a creditor that settles the group
//   - Roster: the ordered participant list a front end builds up before settling
//
// Participants are identified by display name only. Names are not required to
// be unique; list order is insertion order and only decides which pairs the
// settlement matches first.
//
// # Money
//
// Amounts are shopspring/decimal values so that sums and differences are
// exact. Rendering always uses two decimal places; arithmetic never rounds.
//
// # Input policy
//
//  1. Blank names are rejected (ErrBlankName)
//  2. Non-numeric or empty amounts count as zero (see ParseAmount)
//  3. Negative amounts are rejected (ErrNegativeAmount)
package models
