// Package rules holds the static filing rule table: which filing types apply to
// which legal types and business states, their fee codes, and the blockers each
// entry opts into. The table is data only; evaluation lives in internal/authz.
package rules

import (
	"strings"

	bmodels "lear/internal/business/models"
)

// FilingType is the top-level filing key (the filing JSON section name).
type FilingType string

const (
	AdminFreeze              FilingType = "adminFreeze"
	AgmExtension             FilingType = "agmExtension"
	AgmLocationChange        FilingType = "agmLocationChange"
	Alteration               FilingType = "alteration"
	AmalgamationApplication  FilingType = "amalgamationApplication"
	AnnualReport             FilingType = "annualReport"
	ChangeOfAddress          FilingType = "changeOfAddress"
	ChangeOfDirectors        FilingType = "changeOfDirectors"
	ChangeOfRegistration     FilingType = "changeOfRegistration"
	ConsentContinuationOut   FilingType = "consentContinuationOut"
	ContinuationIn           FilingType = "continuationIn"
	ContinuationOut          FilingType = "continuationOut"
	Conversion               FilingType = "conversion"
	Correction               FilingType = "correction"
	CourtOrder               FilingType = "courtOrder"
	Dissolution              FilingType = "dissolution"
	IncorporationApplication FilingType = "incorporationApplication"
	NoticeOfWithdrawal       FilingType = "noticeOfWithdrawal"
	PutBackOff               FilingType = "putBackOff"
	PutBackOn                FilingType = "putBackOn"
	RegistrarsNotation       FilingType = "registrarsNotation"
	RegistrarsOrder          FilingType = "registrarsOrder"
	Registration             FilingType = "registration"
	Restoration              FilingType = "restoration"
	SpecialResolution        FilingType = "specialResolution"
	Transition               FilingType = "transition"
)

// Sub-types of composite filing types.
const (
	DissolutionVoluntary      = "voluntary"
	DissolutionAdministrative = "administrative"

	AmalgamationRegular    = "regular"
	AmalgamationVertical   = "vertical"
	AmalgamationHorizontal = "horizontal"

	RestorationFull             = "fullRestoration"
	RestorationLimited          = "limitedRestoration"
	RestorationLimitedExtension = "limitedRestorationExtension"
	RestorationLimitedToFull    = "limitedRestorationToFull"
)

// NoFee is the fee code for filings that are recorded with the payment system at no charge.
const NoFee = "NOFEE"

// BlockerID names a blocker predicate an entry opts into.
type BlockerID string

const (
	BlockAdminFreeze            BlockerID = "adminFreeze"
	BlockPendingFiling          BlockerID = "pendingFiling"
	BlockInDissolution          BlockerID = "inDissolution"
	BlockNotInGoodStanding      BlockerID = "notInGoodStanding"
	BlockStateFiling            BlockerID = "stateFiling"
	BlockCompletedFilings       BlockerID = "completedFilings"
	BlockFutureEffective        BlockerID = "futureEffective"
	BlockAmalgamatingDissolving BlockerID = "amalgamatingWithPendingDissolution"
)

// FilingRef identifies a filing type with an optional sub-type, written "type" or "type.subType".
type FilingRef struct {
	Type    FilingType
	SubType string
}

// ParseFilingRef parses "restoration.limitedRestoration" style references.
func ParseFilingRef(s string) FilingRef {
	t, sub, _ := strings.Cut(s, ".")
	return FilingRef{Type: FilingType(t), SubType: sub}
}

func (r FilingRef) String() string {
	if r.SubType == "" {
		return string(r.Type)
	}
	return string(r.Type) + "." + r.SubType
}

// Matches reports whether other satisfies r. A ref without sub-type matches any sub-type.
func (r FilingRef) Matches(other FilingRef) bool {
	if r.Type != other.Type {
		return false
	}
	return r.SubType == "" || r.SubType == other.SubType
}

// Key indexes the table.
type Key struct {
	FilingType FilingType
	SubType    string
}

// Entry is one declarative rule.
type Entry struct {
	FilingType  FilingType
	SubType     string
	DisplayName string
	// DisplayNames overrides DisplayName per legal type.
	DisplayNames map[bmodels.LegalType]string
	LegalTypes   []bmodels.LegalType
	States       []bmodels.State
	FeeCodes     map[bmodels.LegalType]string
	Blockers     []BlockerID
	// ValidStateFilings: the business's state filing must match one of these.
	ValidStateFilings []FilingRef
	// InvalidStateFilings: the business's state filing must match none of these.
	InvalidStateFilings []FilingRef
	// CompletedFilings must all exist as completed filings on the business.
	CompletedFilings []FilingRef
	AllowPublic      bool
	// NewEntity entries start a business; they are offered when no business exists.
	NewEntity bool
	// NewEntityOnly entries are never offered against an existing business.
	NewEntityOnly bool
	// RequiresReview routes non-staff submissions through staff review before payment.
	RequiresReview bool
}

func (e Entry) Key() Key {
	return Key{FilingType: e.FilingType, SubType: e.SubType}
}

func (e Entry) Ref() FilingRef {
	return FilingRef{Type: e.FilingType, SubType: e.SubType}
}

// AppliesTo reports legal-type membership.
func (e Entry) AppliesTo(lt bmodels.LegalType) bool {
	for _, t := range e.LegalTypes {
		if t == lt {
			return true
		}
	}
	return false
}

// AppliesIn reports business-state membership.
func (e Entry) AppliesIn(s bmodels.State) bool {
	for _, st := range e.States {
		if st == s {
			return true
		}
	}
	return false
}

// HasBlocker reports whether the entry opts into id.
func (e Entry) HasBlocker(id BlockerID) bool {
	for _, b := range e.Blockers {
		if b == id {
			return true
		}
	}
	return false
}

// FeeCode returns the fee code for lt, or "" when the entry is not billable for it.
func (e Entry) FeeCode(lt bmodels.LegalType) string {
	return e.FeeCodes[lt]
}

// NameFor returns the display name for lt.
func (e Entry) NameFor(lt bmodels.LegalType) string {
	if n, ok := e.DisplayNames[lt]; ok {
		return n
	}
	return e.DisplayName
}
