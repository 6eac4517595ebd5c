package authz

import (
	fmodels "lear/internal/filing/models"
	"lear/internal/rules"
)

// Blocker is a named predicate that removes an entry from the allowed set.
// Blockers never error: missing facts make them permissive unless the entry
// requires the fact to be present.
type Blocker interface {
	ID() rules.BlockerID
	Blocks(dc DecisionContext, e rules.Entry) bool
}

var blockers = map[rules.BlockerID]Blocker{}

func register(b Blocker) {
	blockers[b.ID()] = b
}

func init() {
	register(AdminFreezeBlocker{})
	register(PendingFilingBlocker{})
	register(InDissolutionBlocker{})
	register(GoodStandingBlocker{})
	register(StateFilingBlocker{})
	register(CompletedFilingBlocker{})
	register(FutureEffectiveBlocker{})
	register(AmalgamatingDissolutionBlocker{})
}

// BlockerFor returns the registered blocker for id.
func BlockerFor(id rules.BlockerID) (Blocker, bool) {
	b, ok := blockers[id]
	return b, ok
}

// Blocked evaluates e against dc and returns the first blocker that suppresses it.
// The admin-freeze gate applies to every entry, whether or not it declares it.
func Blocked(dc DecisionContext, e rules.Entry) (rules.BlockerID, bool) {
	if (AdminFreezeBlocker{}).Blocks(dc, e) {
		return rules.BlockAdminFreeze, true
	}
	for _, id := range e.Blockers {
		b, ok := blockers[id]
		if !ok {
			return id, true
		}
		if b.Blocks(dc, e) {
			return id, true
		}
	}
	return "", false
}

// -----------------------------------------------------------------------------
// Admin freeze
// -----------------------------------------------------------------------------

// freezeExempt are the filings staff use to act on a frozen business.
var freezeExempt = []rules.FilingRef{
	{Type: rules.AdminFreeze},
	{Type: rules.CourtOrder},
	{Type: rules.RegistrarsNotation},
	{Type: rules.RegistrarsOrder},
	{Type: rules.Dissolution, SubType: rules.DissolutionAdministrative},
	{Type: rules.PutBackOff},
	{Type: rules.Transition},
}

type AdminFreezeBlocker struct{}

func (AdminFreezeBlocker) ID() rules.BlockerID { return rules.BlockAdminFreeze }

func (AdminFreezeBlocker) Blocks(dc DecisionContext, e rules.Entry) bool {
	if dc.Business == nil || !dc.Business.AdminFreeze {
		return false
	}
	return !matchesAny(freezeExempt, e.Ref())
}

// -----------------------------------------------------------------------------
// Pending filings
// -----------------------------------------------------------------------------

// PendingFilingBlocker blocks while the business has an unfinished filing.
// Alteration and correction may run alongside each other. The candidate being
// resubmitted does not block itself.
type PendingFilingBlocker struct{}

func (PendingFilingBlocker) ID() rules.BlockerID { return rules.BlockPendingFiling }

func (PendingFilingBlocker) Blocks(dc DecisionContext, e rules.Entry) bool {
	for _, f := range dc.Facts.OpenFilings {
		if !f.Status.IsBlocking() {
			continue
		}
		if isCandidate(dc, f) && f.Status.IsResubmittable() {
			continue
		}
		if concurrentAllowed(e.FilingType, f.FilingType) {
			continue
		}
		return true
	}
	return false
}

func concurrentAllowed(entry, pending rules.FilingType) bool {
	pair := func(t rules.FilingType) bool { return t == rules.Alteration || t == rules.Correction }
	return pair(entry) && pair(pending)
}

func isCandidate(dc DecisionContext, f *fmodels.Filing) bool {
	return dc.Candidate != nil && dc.Candidate.ID != 0 && dc.Candidate.ID == f.ID
}

// -----------------------------------------------------------------------------
// Business condition
// -----------------------------------------------------------------------------

type InDissolutionBlocker struct{}

func (InDissolutionBlocker) ID() rules.BlockerID { return rules.BlockInDissolution }

func (InDissolutionBlocker) Blocks(dc DecisionContext, _ rules.Entry) bool {
	return dc.Business != nil && dc.Business.InDissolution
}

type GoodStandingBlocker struct{}

func (GoodStandingBlocker) ID() rules.BlockerID { return rules.BlockNotInGoodStanding }

func (GoodStandingBlocker) Blocks(dc DecisionContext, _ rules.Entry) bool {
	return dc.Business != nil && !dc.Business.GoodStanding(dc.Now)
}

// -----------------------------------------------------------------------------
// Filing history
// -----------------------------------------------------------------------------

// StateFilingBlocker compares the filing that produced the current state against
// the entry's allow-list or deny-list. An allow-list requires a state filing.
type StateFilingBlocker struct{}

func (StateFilingBlocker) ID() rules.BlockerID { return rules.BlockStateFiling }

func (StateFilingBlocker) Blocks(dc DecisionContext, e rules.Entry) bool {
	sf := dc.Facts.StateFiling
	if len(e.ValidStateFilings) > 0 {
		if sf == nil || !matchesAny(e.ValidStateFilings, *sf) {
			return true
		}
	}
	return sf != nil && matchesAny(e.InvalidStateFilings, *sf)
}

// CompletedFilingBlocker requires every prerequisite to have completed.
type CompletedFilingBlocker struct{}

func (CompletedFilingBlocker) ID() rules.BlockerID { return rules.BlockCompletedFilings }

func (CompletedFilingBlocker) Blocks(dc DecisionContext, e rules.Entry) bool {
	for _, req := range e.CompletedFilings {
		if !matchedBy(req, dc.Facts.CompletedFilings) {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// Future-effective filings
// -----------------------------------------------------------------------------

// FutureEffectiveBlocker blocks while a paid filing is waiting for its effective
// date. For a notice of withdrawal the condition is inverted: staff may withdraw
// only when such a filing exists and no other notice already targets it. A
// candidate notice must name one of those filings.
type FutureEffectiveBlocker struct{}

func (FutureEffectiveBlocker) ID() rules.BlockerID { return rules.BlockFutureEffective }

func (FutureEffectiveBlocker) Blocks(dc DecisionContext, e rules.Entry) bool {
	if e.FilingType == rules.NoticeOfWithdrawal {
		if !dc.Caller.IsStaff() {
			return true
		}
		eligible := Withdrawable(dc)
		if c := dc.Candidate; c != nil && c.WithdrawnFilingID != nil {
			for _, f := range eligible {
				if f.ID == *c.WithdrawnFilingID {
					return false
				}
			}
			return true
		}
		return len(eligible) == 0
	}
	for _, f := range dc.Facts.OpenFilings {
		if f.Status == fmodels.StatusPaid && f.IsFutureEffective(dc.Now) {
			return true
		}
	}
	return false
}

// Withdrawable lists the paid future-effective filings a notice of withdrawal may
// target. A filing already targeted by another notice is excluded; the target of
// the candidate notice itself stays eligible.
func Withdrawable(dc DecisionContext) []*fmodels.Filing {
	var out []*fmodels.Filing
	for _, f := range dc.Facts.OpenFilings {
		if f.Status != fmodels.StatusPaid || !f.IsFutureEffective(dc.Now) || f.IsNoticeOfWithdrawal() {
			continue
		}
		if f.WithdrawalPending && !targetedByCandidate(dc, f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func targetedByCandidate(dc DecisionContext, f *fmodels.Filing) bool {
	c := dc.Candidate
	return c != nil && c.WithdrawnFilingID != nil && *c.WithdrawnFilingID == f.ID
}

// AmalgamatingDissolutionBlocker keeps a business with a scheduled dissolution out
// of amalgamations.
type AmalgamatingDissolutionBlocker struct{}

func (AmalgamatingDissolutionBlocker) ID() rules.BlockerID {
	return rules.BlockAmalgamatingDissolving
}

func (AmalgamatingDissolutionBlocker) Blocks(dc DecisionContext, _ rules.Entry) bool {
	for _, f := range dc.Facts.OpenFilings {
		if f.FilingType != rules.Dissolution {
			continue
		}
		if (f.Status == fmodels.StatusPending || f.Status == fmodels.StatusPaid) && f.IsFutureEffective(dc.Now) {
			return true
		}
	}
	return false
}

func matchesAny(refs []rules.FilingRef, ref rules.FilingRef) bool {
	for _, r := range refs {
		if r.Matches(ref) {
			return true
		}
	}
	return false
}

func matchedBy(req rules.FilingRef, have []rules.FilingRef) bool {
	for _, h := range have {
		if req.Matches(h) {
			return true
		}
	}
	return false
}
