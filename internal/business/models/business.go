package models

import (
	"strings"
	"time"
)

// State is the legal state of a business.
type State string

const (
	StateActive     State = "ACTIVE"
	StateHistorical State = "HISTORICAL"
)

func (s State) IsValid() bool {
	return s == StateActive || s == StateHistorical
}

// ParseState normalises a state string; the second return is false for unknown values.
func ParseState(s string) (State, bool) {
	st := State(strings.ToUpper(strings.TrimSpace(s)))
	return st, st.IsValid()
}

// Business is the aggregate root for a registered legal entity.
//
// Invariants:
//   - Identifier is unique and never changes
//   - State is ACTIVE or HISTORICAL; HISTORICAL is terminal unless a restoration or put-back-on completes
//   - StateFilingID, when set, references the filing that produced the current State
//   - Rows are never hard-deleted
type Business struct {
	ID            int64      `json:"-"`
	Identifier    string     `json:"identifier"`
	LegalName     string     `json:"legalName"`
	LegalType     LegalType  `json:"legalType"`
	State         State      `json:"state"`
	AdminFreeze   bool       `json:"adminFreeze"`
	FoundingDate  time.Time  `json:"foundingDate"`
	LastARDate    *time.Time `json:"lastArDate,omitempty"`
	LastARYear    int        `json:"lastArYear,omitempty"`
	StateFilingID *int64     `json:"stateFilingId,omitempty"`
	// InDissolution is raised by the involuntary dissolution batch while the business is
	// moving through its dissolution stages.
	InDissolution bool      `json:"inDissolution"`
	LastModified  time.Time `json:"lastModified"`
}

// goodStandingGrace is how long after the last annual report (or founding) a
// business stays in good standing.
var goodStandingGrace = struct{ years, months, days int }{1, 2, 1}

// GoodStanding reports whether the business is current on its annual reports.
// Firms and non-active businesses are always in good standing.
func (b *Business) GoodStanding(now time.Time) bool {
	if b.LegalType.IsFirm() || b.State != StateActive {
		return true
	}
	anchor := b.FoundingDate
	if b.LastARDate != nil {
		anchor = *b.LastARDate
	}
	cutoff := anchor.AddDate(goodStandingGrace.years, goodStandingGrace.months, goodStandingGrace.days)
	return cutoff.After(now)
}

func (b *Business) IsActive() bool {
	return b.State == StateActive
}

// ApplyStateFiling moves the business to state as the effect of the given filing.
func (b *Business) ApplyStateFiling(state State, filingID int64, now time.Time) {
	b.State = state
	id := filingID
	b.StateFilingID = &id
	b.LastModified = now
}

// ApplyAnnualReport records an annual report as of arDate.
func (b *Business) ApplyAnnualReport(arDate time.Time, now time.Time) {
	d := arDate
	b.LastARDate = &d
	b.LastARYear = arDate.Year()
	b.LastModified = now
}

// IsTempIdentifier reports whether identifier names a registration bootstrap.
func IsTempIdentifier(identifier string) bool {
	return strings.HasPrefix(identifier, "T")
}

// RegistrationBootstrap is the placeholder ("temp business") used before a
// new-entity filing completes.
type RegistrationBootstrap struct {
	Identifier   string    `json:"identifier"`
	AccountID    string    `json:"accountId,omitempty"`
	LastModified time.Time `json:"lastModified"`
}
