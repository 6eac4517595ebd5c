// Package validation checks a filing document before it is submitted.
//
// Structural rules are struct tags checked by go-playground/validator; the few
// rules that need the business or the name request service are plain code.
package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	bmodels "lear/internal/business/models"
	fmodels "lear/internal/filing/models"
	"lear/internal/filing/ports"
	"lear/internal/rules"
	dErrors "lear/pkg/domain-errors"
	"lear/pkg/requestcontext"
)

// Input is everything a validation run looks at.
type Input struct {
	FilingType rules.FilingType
	SubType    string
	LegalType  bmodels.LegalType
	Business   *bmodels.Business
	Document   fmodels.Document
}

type annualReport struct {
	AnnualReportDate string `json:"annualReportDate" validate:"required,datetime=2006-01-02"`
}

type changeOfAddress struct {
	Offices map[string]any `json:"offices" validate:"required"`
}

type officer struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type director struct {
	Officer officer  `json:"officer"`
	Actions []string `json:"actions" validate:"dive,oneof=appointed ceased nameChanged addressChanged"`
}

type changeOfDirectors struct {
	Directors []director `json:"directors" validate:"required,min=1,dive"`
}

type dissolution struct {
	DissolutionType string `json:"dissolutionType" validate:"required,oneof=voluntary administrative"`
}

type nameRequest struct {
	LegalType string `json:"legalType" validate:"required"`
	NrNumber  string `json:"nrNumber,omitempty" validate:"omitempty,startswith=NR"`
}

type newEntity struct {
	NameRequest nameRequest `json:"nameRequest"`
}

type amalgamation struct {
	Type        string      `json:"type" validate:"required,oneof=regular vertical horizontal"`
	NameRequest nameRequest `json:"nameRequest"`
}

type restoration struct {
	Type string `json:"type" validate:"required,oneof=fullRestoration limitedRestoration limitedRestorationExtension limitedRestorationToFull"`
}

type noticeOfWithdrawal struct {
	FilingID int64 `json:"filingId" validate:"required,gt=0"`
}

type correction struct {
	CorrectedFilingID int64  `json:"correctedFilingId" validate:"required,gt=0"`
	Comment           string `json:"comment" validate:"required,max=4096"`
}

type courtOrder struct {
	FileNumber string `json:"fileNumber" validate:"required,max=20"`
}

type registrarsOrder struct {
	OrderDetails string `json:"orderDetails" validate:"required,max=2000"`
}

// sections maps a filing type to the shape its section must decode into.
var sections = map[rules.FilingType]func() any{
	rules.AnnualReport:             func() any { return &annualReport{} },
	rules.ChangeOfAddress:          func() any { return &changeOfAddress{} },
	rules.ChangeOfDirectors:        func() any { return &changeOfDirectors{} },
	rules.Dissolution:              func() any { return &dissolution{} },
	rules.IncorporationApplication: func() any { return &newEntity{} },
	rules.ContinuationIn:           func() any { return &newEntity{} },
	rules.Registration:             func() any { return &newEntity{} },
	rules.AmalgamationApplication:  func() any { return &amalgamation{} },
	rules.Restoration:              func() any { return &restoration{} },
	rules.NoticeOfWithdrawal:       func() any { return &noticeOfWithdrawal{} },
	rules.Correction:               func() any { return &correction{} },
	rules.CourtOrder:               func() any { return &courtOrder{} },
	rules.RegistrarsNotation:       func() any { return &registrarsOrder{} },
	rules.RegistrarsOrder:          func() any { return &registrarsOrder{} },
}

// consumableNameStates are the name request states a new entity may use.
var consumableNameStates = map[string]bool{
	"APPROVED":    true,
	"CONDITIONAL": true,
}

// Validator runs the document checks.
type Validator struct {
	validate *validator.Validate
	names    ports.NameRequestReader
}

type Option func(*Validator)

// WithNameRequests enables name request checks for new-entity filings.
func WithNameRequests(r ports.NameRequestReader) Option {
	return func(v *Validator) {
		v.names = r
	}
}

func New(opts ...Option) *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v := &Validator{validate: validate}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate returns a CodeValidation error listing every failed rule, or nil.
func (v *Validator) Validate(ctx context.Context, in Input) error {
	var details []dErrors.Detail

	h, err := in.Document.Header()
	if err != nil {
		return dErrors.WithDetails(dErrors.CodeValidation, "invalid filing",
			dErrors.Detail{Error: "header is malformed", Path: "/filing/header"})
	}
	details = append(details, v.check(h, "/filing/header")...)

	section, ok := in.Document.Section(string(in.FilingType))
	if !ok {
		details = append(details, dErrors.Detail{
			Error: fmt.Sprintf("%s section is required", in.FilingType),
			Path:  "/filing/" + string(in.FilingType),
		})
	} else if shape, ok := sections[in.FilingType]; ok {
		target := shape()
		path := "/filing/" + string(in.FilingType)
		if err := decode(section, target); err != nil {
			details = append(details, dErrors.Detail{Error: "section is malformed", Path: path})
		} else {
			details = append(details, v.check(target, path)...)
			details = append(details, v.business(ctx, in, target, path)...)
		}
	}

	if len(details) > 0 {
		return dErrors.WithDetails(dErrors.CodeValidation, "invalid filing", details...)
	}
	return nil
}

// business applies the rules that depend on the business or an upstream service.
func (v *Validator) business(ctx context.Context, in Input, section any, path string) []dErrors.Detail {
	now := requestcontext.Now(ctx)
	switch s := section.(type) {
	case *annualReport:
		arDate, err := time.ParseInLocation(time.DateOnly, s.AnnualReportDate, fmodels.Pacific)
		if err != nil {
			return nil
		}
		if arDate.After(now) {
			return []dErrors.Detail{{Error: "annual report date cannot be in the future", Path: path + "/annualReportDate"}}
		}
		if b := in.Business; b != nil && b.LastARYear >= arDate.Year() {
			return []dErrors.Detail{{Error: fmt.Sprintf("annual report for %d already filed", arDate.Year()), Path: path + "/annualReportDate"}}
		}
	case *newEntity:
		return v.nameRequest(ctx, s.NameRequest, in.LegalType, path+"/nameRequest")
	case *amalgamation:
		return v.nameRequest(ctx, s.NameRequest, in.LegalType, path+"/nameRequest")
	}
	return nil
}

func (v *Validator) nameRequest(ctx context.Context, nr nameRequest, lt bmodels.LegalType, path string) []dErrors.Detail {
	if nr.LegalType != "" && !bmodels.LegalType(nr.LegalType).IsKnown() {
		return []dErrors.Detail{{Error: "unknown legal type " + nr.LegalType, Path: path + "/legalType"}}
	}
	if v.names == nil || nr.NrNumber == "" {
		return nil
	}
	got, err := v.names.Get(ctx, nr.NrNumber, requestcontext.Caller(ctx).Token)
	if err != nil {
		return []dErrors.Detail{{Error: "name request " + nr.NrNumber + " could not be verified", Path: path + "/nrNumber"}}
	}
	if !consumableNameStates[got.State] {
		return []dErrors.Detail{{Error: fmt.Sprintf("name request %s is %s", nr.NrNumber, got.State), Path: path + "/nrNumber"}}
	}
	if got.LegalType != "" && lt != "" && got.LegalType != lt {
		return []dErrors.Detail{{Error: fmt.Sprintf("name request is for %s, not %s", got.LegalType, lt), Path: path + "/legalType"}}
	}
	return nil
}

func (v *Validator) check(target any, path string) []dErrors.Detail {
	err := v.validate.Struct(target)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []dErrors.Detail{{Error: err.Error(), Path: path}}
	}
	details := make([]dErrors.Detail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, dErrors.Detail{
			Error: message(fe),
			Path:  path + "/" + fieldPath(fe.Namespace()),
		})
	}
	return details
}

// fieldPath drops the root struct name and turns the namespace into a JSON pointer.
func fieldPath(ns string) string {
	_, rest, _ := strings.Cut(ns, ".")
	rest = strings.NewReplacer("[", "/", "]", "", ".", "/").Replace(rest)
	return rest
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "datetime":
		return fe.Field() + " must be a date in YYYY-MM-DD format"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "min":
		return fe.Field() + " must have at least " + fe.Param() + " entries"
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func decode(section map[string]any, target any) error {
	b, err := json.Marshal(section)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, target)
}
