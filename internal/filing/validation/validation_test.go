package validation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	bmodels "lear/internal/business/models"
	fmodels "lear/internal/filing/models"
	"lear/internal/filing/mocks"
	"lear/internal/filing/ports"
	"lear/internal/rules"
	dErrors "lear/pkg/domain-errors"
	"lear/pkg/requestcontext"
)

var now = time.Date(2026, 5, 15, 18, 0, 0, 0, time.UTC)

func ctx() context.Context {
	return requestcontext.WithTime(context.Background(), now)
}

func doc(name string, section map[string]any) fmodels.Document {
	root := map[string]any{"header": map[string]any{"name": name}}
	if section != nil {
		root[name] = section
	}
	return fmodels.Document{"filing": root}
}

func details(t *testing.T, err error) []dErrors.Detail {
	t.Helper()
	require.Error(t, err)
	de, ok := dErrors.As(err)
	require.True(t, ok)
	assert.Equal(t, dErrors.CodeValidation, de.Code)
	return de.Details
}

func TestValidateSections(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		in        Input
		wantPaths []string
	}{
		{
			name: "valid annual report",
			in: Input{FilingType: rules.AnnualReport, LegalType: bmodels.LegalTypeBC,
				Document: doc("annualReport", map[string]any{"annualReportDate": "2026-04-30"})},
		},
		{
			name: "annual report date format",
			in: Input{FilingType: rules.AnnualReport, LegalType: bmodels.LegalTypeBC,
				Document: doc("annualReport", map[string]any{"annualReportDate": "30/04/2026"})},
			wantPaths: []string{"/filing/annualReport/annualReportDate"},
		},
		{
			name: "missing section",
			in: Input{FilingType: rules.ChangeOfAddress, LegalType: bmodels.LegalTypeBC,
				Document: doc("changeOfAddress", nil)},
			wantPaths: []string{"/filing/changeOfAddress"},
		},
		{
			name: "director without a last name",
			in: Input{FilingType: rules.ChangeOfDirectors, LegalType: bmodels.LegalTypeBC,
				Document: doc("changeOfDirectors", map[string]any{"directors": []any{
					map[string]any{"officer": map[string]any{"firstName": "Jo", "lastName": "Ng"}, "actions": []any{"appointed"}},
					map[string]any{"officer": map[string]any{"firstName": "Al"}, "actions": []any{"ceased"}},
				}})},
			wantPaths: []string{"/filing/changeOfDirectors/directors/1/officer/lastName"},
		},
		{
			name: "unknown director action",
			in: Input{FilingType: rules.ChangeOfDirectors, LegalType: bmodels.LegalTypeBC,
				Document: doc("changeOfDirectors", map[string]any{"directors": []any{
					map[string]any{"officer": map[string]any{"firstName": "Jo", "lastName": "Ng"}, "actions": []any{"promoted"}},
				}})},
			wantPaths: []string{"/filing/changeOfDirectors/directors/0/actions/0"},
		},
		{
			name: "dissolution type",
			in: Input{FilingType: rules.Dissolution, LegalType: bmodels.LegalTypeBC,
				Document: doc("dissolution", map[string]any{"dissolutionType": "hostile"})},
			wantPaths: []string{"/filing/dissolution/dissolutionType"},
		},
		{
			name: "notice of withdrawal needs a target",
			in: Input{FilingType: rules.NoticeOfWithdrawal, LegalType: bmodels.LegalTypeBC,
				Document: doc("noticeOfWithdrawal", map[string]any{})},
			wantPaths: []string{"/filing/noticeOfWithdrawal/filingId"},
		},
		{
			name: "correction fields",
			in: Input{FilingType: rules.Correction, LegalType: bmodels.LegalTypeBC,
				Document: doc("correction", map[string]any{})},
			wantPaths: []string{"/filing/correction/correctedFilingId", "/filing/correction/comment"},
		},
		{
			name: "new entity legal type",
			in: Input{FilingType: rules.IncorporationApplication, LegalType: bmodels.LegalTypeBEN,
				Document: doc("incorporationApplication", map[string]any{"nameRequest": map[string]any{}})},
			wantPaths: []string{"/filing/incorporationApplication/nameRequest/legalType"},
		},
		{
			name: "types without section rules only need the section",
			in: Input{FilingType: rules.Transition, LegalType: bmodels.LegalTypeBC,
				Document: doc("transition", map[string]any{})},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx(), tt.in)
			if len(tt.wantPaths) == 0 {
				require.NoError(t, err)
				return
			}
			var paths []string
			for _, d := range details(t, err) {
				paths = append(paths, d.Path)
			}
			assert.ElementsMatch(t, tt.wantPaths, paths)
		})
	}
}

func TestValidateHeader(t *testing.T) {
	v := New()
	d := fmodels.Document{"filing": map[string]any{
		"header":          map[string]any{"email": "not-an-email"},
		"changeOfAddress": map[string]any{"offices": map[string]any{}},
	}}

	got := details(t, v.Validate(ctx(), Input{FilingType: rules.ChangeOfAddress, LegalType: bmodels.LegalTypeBC, Document: d}))
	assert.ElementsMatch(t, []dErrors.Detail{
		{Error: "name is required", Path: "/filing/header/name"},
		{Error: "email must be a valid email address", Path: "/filing/header/email"},
	}, got)
}

func TestValidateAnnualReportRules(t *testing.T) {
	v := New()

	t.Run("future date", func(t *testing.T) {
		got := details(t, v.Validate(ctx(), Input{FilingType: rules.AnnualReport, LegalType: bmodels.LegalTypeBC,
			Document: doc("annualReport", map[string]any{"annualReportDate": "2026-12-31"})}))
		assert.Equal(t, "annual report date cannot be in the future", got[0].Error)
	})

	t.Run("year already filed", func(t *testing.T) {
		b := &bmodels.Business{Identifier: "BC1234567", LegalType: bmodels.LegalTypeBC, LastARYear: 2026}
		got := details(t, v.Validate(ctx(), Input{FilingType: rules.AnnualReport, LegalType: bmodels.LegalTypeBC, Business: b,
			Document: doc("annualReport", map[string]any{"annualReportDate": "2026-01-31"})}))
		assert.Equal(t, "annual report for 2026 already filed", got[0].Error)
	})
}

func TestValidateNameRequest(t *testing.T) {
	incorporation := func(nr string) Input {
		return Input{FilingType: rules.IncorporationApplication, LegalType: bmodels.LegalTypeBEN,
			Document: doc("incorporationApplication", map[string]any{
				"nameRequest": map[string]any{"legalType": "BEN", "nrNumber": nr},
			})}
	}

	t.Run("approved", func(t *testing.T) {
		names := mocks.NewMockNameRequestReader(gomock.NewController(t))
		names.EXPECT().Get(gomock.Any(), "NR 1234567", gomock.Any()).
			Return(&ports.NameRequest{Number: "NR 1234567", State: "APPROVED", LegalType: bmodels.LegalTypeBEN}, nil)

		require.NoError(t, New(WithNameRequests(names)).Validate(ctx(), incorporation("NR 1234567")))
	})

	t.Run("expired", func(t *testing.T) {
		names := mocks.NewMockNameRequestReader(gomock.NewController(t))
		names.EXPECT().Get(gomock.Any(), "NR 1234567", gomock.Any()).
			Return(&ports.NameRequest{Number: "NR 1234567", State: "EXPIRED"}, nil)

		got := details(t, New(WithNameRequests(names)).Validate(ctx(), incorporation("NR 1234567")))
		assert.Equal(t, "name request NR 1234567 is EXPIRED", got[0].Error)
	})

	t.Run("legal type mismatch", func(t *testing.T) {
		names := mocks.NewMockNameRequestReader(gomock.NewController(t))
		names.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&ports.NameRequest{State: "CONDITIONAL", LegalType: bmodels.LegalTypeBC}, nil)

		got := details(t, New(WithNameRequests(names)).Validate(ctx(), incorporation("NR 1234567")))
		assert.Equal(t, "/filing/incorporationApplication/nameRequest/legalType", got[0].Path)
	})

	t.Run("lookup failure", func(t *testing.T) {
		names := mocks.NewMockNameRequestReader(gomock.NewController(t))
		names.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("namex down"))

		got := details(t, New(WithNameRequests(names)).Validate(ctx(), incorporation("NR 1234567")))
		assert.Equal(t, "name request NR 1234567 could not be verified", got[0].Error)
	})

	t.Run("no number skips the lookup", func(t *testing.T) {
		names := mocks.NewMockNameRequestReader(gomock.NewController(t))
		require.NoError(t, New(WithNameRequests(names)).Validate(ctx(), incorporation("")))
	})
}
