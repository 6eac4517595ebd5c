// Package authz decides which filings a caller may make against a business.
//
// The rule table (internal/rules) declares what exists; the blockers here decide
// what is currently possible. Everything in this package except Service is pure:
// callers build a DecisionContext and get the same answer for the same input.
package authz

import (
	"encoding/json"
	"slices"
	"time"

	bmodels "lear/internal/business/models"
	fmodels "lear/internal/filing/models"
	"lear/internal/rules"
	"lear/pkg/requestcontext"
)

// Role is a realm role carried in the bearer token.
type Role string

const (
	RoleStaff      Role = "staff"
	RoleSystem     Role = "system"
	RoleColin      Role = "colin"
	RolePublicUser Role = "public_user"
	RoleBasic      Role = "basic"
)

// CallerContext is the caller identity as seen by the decision engine.
type CallerContext struct {
	Username string
	Roles    []Role
}

// CallerFrom converts the request identity into a CallerContext.
func CallerFrom(id requestcontext.Identity) CallerContext {
	roles := make([]Role, 0, len(id.Roles))
	for _, r := range id.Roles {
		roles = append(roles, Role(r))
	}
	return CallerContext{Username: id.Username, Roles: roles}
}

func (c CallerContext) Has(r Role) bool {
	return slices.Contains(c.Roles, r)
}

func (c CallerContext) IsStaff() bool {
	return c.Has(RoleStaff)
}

// IsInternal reports service accounts (system, colin) that never act through the resolver.
func (c CallerContext) IsInternal() bool {
	return !c.IsStaff() && (c.Has(RoleSystem) || c.Has(RoleColin))
}

// CanSee applies role visibility: staff see every entry, internal accounts none,
// everyone else only public entries.
func (c CallerContext) CanSee(e rules.Entry) bool {
	switch {
	case c.IsStaff():
		return true
	case c.IsInternal():
		return false
	default:
		return e.AllowPublic
	}
}

// BusinessFacts are the filings of a business the blockers need.
type BusinessFacts struct {
	// OpenFilings are the business's filings in non-terminal statuses.
	OpenFilings []*fmodels.Filing
	// StateFiling is the filing that produced the business's current state.
	StateFiling *rules.FilingRef
	// CompletedFilings are the refs of completed and corrected filings.
	CompletedFilings []rules.FilingRef
}

// DecisionContext is the single input to every blocker and resolver call.
type DecisionContext struct {
	Business  *bmodels.Business
	State     bmodels.State
	LegalType bmodels.LegalType
	Caller    CallerContext
	// Candidate is the filing being (re)submitted, when there is one.
	Candidate *fmodels.Filing
	Facts     BusinessFacts
	Now       time.Time
}

// NewDecisionContext derives state and legal type from business when present.
func NewDecisionContext(b *bmodels.Business, lt bmodels.LegalType, caller CallerContext, facts BusinessFacts, now time.Time) DecisionContext {
	dc := DecisionContext{
		Business:  b,
		State:     bmodels.StateActive,
		LegalType: lt,
		Caller:    caller,
		Facts:     facts,
		Now:       now,
	}
	if b != nil {
		dc.State = b.State
		dc.LegalType = b.LegalType
	}
	return dc
}

// AllowedFilingDescriptor is one allowed filing as offered to the UI and used for invoicing.
type AllowedFilingDescriptor struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	DisplayName string `json:"displayName"`
	FeeCode     string `json:"feeCode,omitempty"`
}

// AllowedName is an element of the legacy projection: a bare filing name, or a
// composite name with its sub-types.
type AllowedName struct {
	Name     string
	SubTypes []string
}

// MarshalJSON renders "name" or {"name": ["sub", ...]}.
func (a AllowedName) MarshalJSON() ([]byte, error) {
	if len(a.SubTypes) == 0 {
		return json.Marshal(a.Name)
	}
	return json.Marshal(map[string][]string{a.Name: a.SubTypes})
}

// AllowableActions is the UI view of what the caller can do with a business.
type AllowableActions struct {
	Filing  FilingActions `json:"filing"`
	ViewAll bool          `json:"viewAll"`
}

type FilingActions struct {
	FilingTypes          []AllowedFilingDescriptor `json:"filingTypes"`
	FilingSubmissionLink string                    `json:"filingSubmissionLink"`
}
