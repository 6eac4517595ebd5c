package models

import (
	"encoding/json"
	"time"

	bmodels "lear/internal/business/models"
	"lear/internal/rules"
)

// Document is the filing JSON as submitted: {"filing": {"header": {...}, "<type>": {...}}}.
type Document map[string]any

// Header is the typed view of filing.header.
type Header struct {
	Name                string  `json:"name" validate:"required"`
	Date                string  `json:"date,omitempty"`
	CertifiedBy         string  `json:"certifiedBy,omitempty"`
	Email               string  `json:"email,omitempty" validate:"omitempty,email"`
	Priority            bool    `json:"priority,omitempty"`
	WaiveFees           bool    `json:"waiveFees,omitempty"`
	EffectiveDate       string  `json:"effectiveDate,omitempty"`
	FutureEffectiveDate string  `json:"futureEffectiveDate,omitempty"`
	FolioNumber         string  `json:"folioNumber,omitempty" validate:"max=50"`
	Source              string  `json:"source,omitempty" validate:"omitempty,oneof=LEAR COLIN"`
	ColinIDs            []int64 `json:"colinIds,omitempty"`
	AccountID           string  `json:"accountId,omitempty"`
}

// Root returns the "filing" object, or nil.
func (d Document) Root() map[string]any {
	m, _ := d["filing"].(map[string]any)
	return m
}

// Header decodes filing.header. A missing header decodes to the zero value.
func (d Document) Header() (Header, error) {
	var h Header
	raw, ok := d.Root()["header"]
	if !ok {
		return h, nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return h, err
	}
	err = json.Unmarshal(b, &h)
	return h, err
}

// Section returns filing.<name> as an object.
func (d Document) Section(name string) (map[string]any, bool) {
	m, ok := d.Root()[name].(map[string]any)
	return m, ok
}

// Has reports whether filing.<name> is present.
func (d Document) Has(name string) bool {
	_, ok := d.Root()[name]
	return ok
}

// String reads a string at filing.<path...>; "" when absent.
func (d Document) String(path ...string) string {
	var cur any = d.Root()
	for _, p := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = m[p]
	}
	s, _ := cur.(string)
	return s
}

// Int reads an integer at filing.<path...>. JSON numbers decode as float64.
func (d Document) Int(path ...string) (int64, bool) {
	var cur any = d.Root()
	for _, p := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return 0, false
		}
		cur = m[p]
	}
	switch v := cur.(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	}
	return 0, false
}

// Bool reads a boolean at filing.<path...>.
func (d Document) Bool(path ...string) bool {
	var cur any = d.Root()
	for _, p := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return false
		}
		cur = m[p]
	}
	b, _ := cur.(bool)
	return b
}

// LegalType returns the legal type declared in the document: filing.business.legalType,
// then the nameRequest block of a new-entity section.
func (d Document) LegalType(filingType rules.FilingType) bmodels.LegalType {
	if lt := d.String("business", "legalType"); lt != "" {
		return bmodels.LegalType(lt)
	}
	return bmodels.LegalType(d.String(string(filingType), "nameRequest", "legalType"))
}

// SubType derives the sub-type of composite filings from their section.
func (d Document) SubType(filingType rules.FilingType) string {
	switch filingType {
	case rules.Dissolution:
		return d.String(string(filingType), "dissolutionType")
	case rules.AmalgamationApplication, rules.Restoration:
		return d.String(string(filingType), "type")
	}
	return ""
}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, Pacific); err == nil {
		return t, true
	}
	return time.Time{}, false
}
