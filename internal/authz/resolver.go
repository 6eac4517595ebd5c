package authz

import (
	bmodels "lear/internal/business/models"
	"lear/internal/rules"
)

// GetAllowedFilings returns the filings the caller may start, in rule-table order.
//
// Without a business only new-entity filings are offered. With a business every
// entry applicable to its legal type and state is offered when none of its
// blockers fire. An unknown legal type yields an empty list.
func GetAllowedFilings(dc DecisionContext) []AllowedFilingDescriptor {
	out := []AllowedFilingDescriptor{}
	if !dc.LegalType.IsKnown() || dc.Caller.IsInternal() {
		return out
	}
	for _, e := range rules.ForState(dc.State, dc.LegalType) {
		if !offered(dc, e) {
			continue
		}
		out = append(out, describe(e, dc.LegalType))
	}
	return out
}

// IsAllowed answers GetAllowedFilings for a single filing type. A candidate that
// is not in an editable status is never allowed: it has already been submitted.
// A composite type without a sub-type is allowed when any of its sub-types is.
func IsAllowed(dc DecisionContext, filingType rules.FilingType, subType string) bool {
	if dc.Candidate != nil && !dc.Candidate.Status.IsResubmittable() {
		return false
	}
	if !dc.LegalType.IsKnown() {
		return false
	}
	if subType == "" && rules.IsComposite(filingType) {
		for _, sub := range rules.SubTypes(filingType) {
			if IsAllowed(dc, filingType, sub) {
				return true
			}
		}
		return false
	}
	e, ok := rules.Lookup(filingType, subType, dc.LegalType)
	if !ok || !e.AppliesIn(dc.State) {
		return false
	}
	return offered(dc, e)
}

// Reason explains why filingType is not allowed, for logs and audit.
func Reason(dc DecisionContext, filingType rules.FilingType, subType string) string {
	if dc.Candidate != nil && !dc.Candidate.Status.IsResubmittable() {
		return "filing already submitted"
	}
	e, ok := rules.Lookup(filingType, subType, dc.LegalType)
	switch {
	case !ok:
		return "filing type not available for legal type"
	case !e.AppliesIn(dc.State):
		return "filing type not available in business state"
	case !dc.Caller.CanSee(e):
		return "role not permitted"
	case dc.Business == nil && !e.NewEntity:
		return "business required"
	case dc.Business != nil && e.NewEntityOnly:
		return "business already exists"
	}
	if id, blocked := Blocked(dc, e); blocked {
		return "blocked by " + string(id)
	}
	return ""
}

// GetAllowed is the legacy projection: bare names, or composite names with their
// sub-types, for every entry visible to the caller. Blockers are not evaluated.
func GetAllowed(state bmodels.State, legalType bmodels.LegalType, caller CallerContext) []AllowedName {
	out := []AllowedName{}
	if !legalType.IsKnown() || caller.IsInternal() {
		return out
	}
	entries := rules.ForState(state, legalType)
	for _, ft := range rules.FilingTypes() {
		var (
			found bool
			subs  []string
		)
		for _, e := range entries {
			if e.FilingType != ft || !caller.CanSee(e) {
				continue
			}
			found = true
			if e.SubType != "" {
				subs = append(subs, e.SubType)
			}
		}
		if found {
			out = append(out, AllowedName{Name: string(ft), SubTypes: subs})
		}
	}
	return out
}

func offered(dc DecisionContext, e rules.Entry) bool {
	if !dc.Caller.CanSee(e) {
		return false
	}
	if dc.Business == nil {
		return e.NewEntity
	}
	if e.NewEntityOnly {
		return false
	}
	_, blocked := Blocked(dc, e)
	return !blocked
}

func describe(e rules.Entry, lt bmodels.LegalType) AllowedFilingDescriptor {
	return AllowedFilingDescriptor{
		Name:        string(e.FilingType),
		Type:        e.SubType,
		DisplayName: e.NameFor(lt),
		FeeCode:     e.FeeCode(lt),
	}
}
