package rules

import (
	bmodels "lear/internal/business/models"
)

var (
	index       = make(map[Key]Entry, len(table))
	filingTypes []FilingType
)

func init() {
	seen := make(map[FilingType]struct{})
	for _, e := range table {
		if _, dup := index[e.Key()]; dup {
			panic("rules: duplicate entry " + e.Ref().String())
		}
		index[e.Key()] = e
		if _, ok := seen[e.FilingType]; !ok {
			seen[e.FilingType] = struct{}{}
			filingTypes = append(filingTypes, e.FilingType)
		}
	}
}

// Lookup returns the entry for (filingType, subType) when it applies to legalType.
// It never panics; unknown combinations return false.
func Lookup(filingType FilingType, subType string, legalType bmodels.LegalType) (Entry, bool) {
	e, ok := index[Key{FilingType: filingType, SubType: subType}]
	if !ok || !e.AppliesTo(legalType) {
		return Entry{}, false
	}
	return e, true
}

// Get returns the entry regardless of legal type.
func Get(filingType FilingType, subType string) (Entry, bool) {
	e, ok := index[Key{FilingType: filingType, SubType: subType}]
	return e, ok
}

// Entries returns a copy of the table in canonical order.
func Entries() []Entry {
	out := make([]Entry, len(table))
	copy(out, table)
	return out
}

// ForState returns entries applicable to state and legalType, in canonical order.
func ForState(state bmodels.State, legalType bmodels.LegalType) []Entry {
	var out []Entry
	for _, e := range table {
		if e.AppliesIn(state) && e.AppliesTo(legalType) {
			out = append(out, e)
		}
	}
	return out
}

// FilingTypes lists the distinct filing types in canonical order.
func FilingTypes() []FilingType {
	out := make([]FilingType, len(filingTypes))
	copy(out, filingTypes)
	return out
}

// SubTypes lists the declared sub-types of filingType in canonical order.
func SubTypes(filingType FilingType) []string {
	var out []string
	for _, e := range table {
		if e.FilingType == filingType && e.SubType != "" {
			out = append(out, e.SubType)
		}
	}
	return out
}

// IsComposite reports whether filingType is declared with sub-types.
func IsComposite(filingType FilingType) bool {
	return len(SubTypes(filingType)) > 0
}

// FeeCode resolves the fee code for a filing; "" when not billable or unknown.
func FeeCode(filingType FilingType, subType string, legalType bmodels.LegalType) string {
	e, ok := Lookup(filingType, subType, legalType)
	if !ok {
		return ""
	}
	return e.FeeCode(legalType)
}

// IsNewEntity reports whether filingType starts a new business.
func IsNewEntity(filingType FilingType) bool {
	for _, e := range table {
		if e.FilingType == filingType && e.NewEntityOnly {
			return true
		}
	}
	return filingType == AmalgamationApplication
}

// RequiresReview reports whether filingType goes through staff review.
func RequiresReview(filingType FilingType) bool {
	for _, e := range table {
		if e.FilingType == filingType && e.RequiresReview {
			return true
		}
	}
	return false
}
