// Package fees turns a filing document into the fee lines sent to the payment system.
package fees

import (
	"time"

	bmodels "lear/internal/business/models"
	fmodels "lear/internal/filing/models"
	"lear/internal/rules"
	dErrors "lear/pkg/domain-errors"
)

// Fee codes that are not carried by a single rule entry.
const (
	FreeDirectorChangeCorp = "BCFDR"
	FreeDirectorChangeCoop = "OTFDR"
	SpecialResolution      = "SPRLN"
	Affidavit              = "AFDVT"
)

// FilingTypeCode is one billable line of an invoice.
type FilingTypeCode struct {
	FilingTypeCode  string `json:"filingTypeCode"`
	Priority        bool   `json:"priority,omitempty"`
	WaiveFees       bool   `json:"waiveFees,omitempty"`
	FutureEffective bool   `json:"futureEffective,omitempty"`
}

// futureEffectiveTypes are flagged when the header asks for a future effective date.
var futureEffectiveTypes = map[rules.FilingType]bool{
	rules.IncorporationApplication: true,
	rules.AmalgamationApplication:  true,
	rules.Alteration:               true,
	rules.ContinuationIn:           true,
}

// freeDirectorActions are the only director changes that do not attract a fee.
var freeDirectorActions = map[string]bool{
	"nameChanged":    true,
	"addressChanged": true,
}

// GetFilingTypes returns one fee line per billable section of doc, in rule-table order.
//
// A correction anywhere in the document bills as a correction only. A cooperative
// voluntary dissolution also bills the special resolution and affidavit. Address and
// director changes nested in an annual report are never priority.
func GetFilingTypes(legalType bmodels.LegalType, doc fmodels.Document, now time.Time) ([]FilingTypeCode, error) {
	h, err := doc.Header()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid filing header")
	}

	if doc.Has(string(rules.Correction)) {
		code := rules.FeeCode(rules.Correction, "", legalType)
		if code == "" {
			return nil, invalidFor(rules.Correction, "", legalType)
		}
		return []FilingTypeCode{{FilingTypeCode: code, Priority: h.Priority, WaiveFees: h.WaiveFees}}, nil
	}

	future := false
	if t, ok := fmodels.RequestedEffectiveDate(h); ok && t.After(now) {
		future = true
	}
	inAnnualReport := doc.Has(string(rules.AnnualReport))

	var (
		out             []FilingTypeCode
		resolutionAdded bool
	)
	for _, ft := range rules.FilingTypes() {
		if !doc.Has(string(ft)) {
			continue
		}
		if ft == rules.SpecialResolution && resolutionAdded {
			continue
		}
		sub := doc.SubType(ft)
		if sub == "" && rules.IsComposite(ft) {
			return nil, dErrors.New(dErrors.CodeBadRequest, "missing sub-type for "+string(ft))
		}
		code := rules.FeeCode(ft, sub, legalType)
		if code == "" {
			return nil, invalidFor(ft, sub, legalType)
		}
		if ft == rules.ChangeOfDirectors && freeDirectorChange(doc) {
			code = freeDirectorCode(legalType)
		}

		line := FilingTypeCode{
			FilingTypeCode:  code,
			Priority:        h.Priority,
			WaiveFees:       h.WaiveFees,
			FutureEffective: future && futureEffectiveTypes[ft],
		}
		if inAnnualReport && (ft == rules.ChangeOfAddress || ft == rules.ChangeOfDirectors) {
			line.Priority = false
		}
		out = append(out, line)

		if ft == rules.Dissolution && sub == rules.DissolutionVoluntary && legalType.IsCoop() {
			for _, extra := range []string{SpecialResolution, Affidavit} {
				out = append(out, FilingTypeCode{FilingTypeCode: extra, Priority: h.Priority, WaiveFees: h.WaiveFees})
			}
			resolutionAdded = true
		}
	}

	if len(out) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "no filing types found in filing")
	}
	return out, nil
}

// freeDirectorChange reports whether every director's actions are name or address changes.
func freeDirectorChange(doc fmodels.Document) bool {
	section, _ := doc.Section(string(rules.ChangeOfDirectors))
	directors, _ := section["directors"].([]any)
	for _, d := range directors {
		director, _ := d.(map[string]any)
		actions, _ := director["actions"].([]any)
		for _, a := range actions {
			name, _ := a.(string)
			if !freeDirectorActions[name] {
				return false
			}
		}
	}
	return true
}

func freeDirectorCode(lt bmodels.LegalType) string {
	if lt.IsCoop() {
		return FreeDirectorChangeCoop
	}
	return FreeDirectorChangeCorp
}

func invalidFor(ft rules.FilingType, sub string, lt bmodels.LegalType) error {
	ref := rules.FilingRef{Type: ft, SubType: sub}
	return dErrors.New(dErrors.CodeBadRequest, ref.String()+" is not available for legal type "+string(lt))
}
