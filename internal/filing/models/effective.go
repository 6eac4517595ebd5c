package models

import (
	"time"
	_ "time/tzdata"

	bmodels "lear/internal/business/models"
	"lear/internal/rules"
)

// Pacific is the legislation time zone; effective dates are computed in it.
var Pacific = mustLoad("America/Vancouver")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// NextBusinessDayMidnight returns 00:00 Pacific of the next weekday after now.
func NextBusinessDayMidnight(now time.Time) time.Time {
	local := now.In(Pacific)
	next := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, Pacific)
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// allowsFutureEffective lists filing types that honour a requested effective date.
var allowsFutureEffective = map[rules.FilingType]bool{
	rules.IncorporationApplication: true,
	rules.AmalgamationApplication:  true,
	rules.ContinuationIn:           true,
	rules.Registration:             true,
	rules.Dissolution:              true,
	rules.Alteration:               true,
}

// EffectiveDate computes when a submitted filing takes legal effect.
func EffectiveDate(filingType rules.FilingType, legalType bmodels.LegalType, h Header, now time.Time) time.Time {
	if filingType == rules.ChangeOfAddress && !legalType.IsCoop() {
		return NextBusinessDayMidnight(now).UTC()
	}
	if allowsFutureEffective[filingType] {
		if t, ok := RequestedEffectiveDate(h); ok && t.After(now) {
			return t.UTC()
		}
	}
	return now.UTC()
}

// RequestedEffectiveDate returns the caller-requested future effective date, if any.
func RequestedEffectiveDate(h Header) (time.Time, bool) {
	if t, ok := ParseDate(h.FutureEffectiveDate); ok {
		return t, true
	}
	return ParseDate(h.EffectiveDate)
}
