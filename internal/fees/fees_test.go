package fees

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bmodels "lear/internal/business/models"
	fmodels "lear/internal/filing/models"
	dErrors "lear/pkg/domain-errors"
)

var now = time.Date(2026, 5, 15, 18, 0, 0, 0, time.UTC)

func doc(header map[string]any, sections map[string]any) fmodels.Document {
	root := map[string]any{"header": header}
	for k, v := range sections {
		root[k] = v
	}
	return fmodels.Document{"filing": root}
}

func directors(actions ...[]any) map[string]any {
	list := make([]any, 0, len(actions))
	for _, a := range actions {
		list = append(list, map[string]any{"officer": map[string]any{"firstName": "Jo"}, "actions": a})
	}
	return map[string]any{"directors": list}
}

func TestGetFilingTypes(t *testing.T) {
	tests := []struct {
		name      string
		legalType bmodels.LegalType
		doc       fmodels.Document
		want      []FilingTypeCode
	}{
		{
			name:      "single filing",
			legalType: bmodels.LegalTypeBC,
			doc:       doc(map[string]any{"name": "changeOfAddress"}, map[string]any{"changeOfAddress": map[string]any{}}),
			want:      []FilingTypeCode{{FilingTypeCode: "BCADD"}},
		},
		{
			name:      "annual report forces nested changes off priority",
			legalType: bmodels.LegalTypeBC,
			doc: doc(map[string]any{"name": "annualReport", "priority": true}, map[string]any{
				"annualReport":      map[string]any{"annualReportDate": "2026-04-30"},
				"changeOfAddress":   map[string]any{},
				"changeOfDirectors": directors([]any{"appointed"}),
			}),
			want: []FilingTypeCode{
				{FilingTypeCode: "BCANN", Priority: true},
				{FilingTypeCode: "BCADD"},
				{FilingTypeCode: "BCCDR"},
			},
		},
		{
			name:      "name and address director changes are free",
			legalType: bmodels.LegalTypeBC,
			doc: doc(map[string]any{"name": "changeOfDirectors", "priority": true}, map[string]any{
				"changeOfDirectors": directors([]any{"nameChanged"}, []any{"addressChanged", "nameChanged"}, []any{}),
			}),
			want: []FilingTypeCode{{FilingTypeCode: FreeDirectorChangeCorp, Priority: true}},
		},
		{
			name:      "free director change for a cooperative",
			legalType: bmodels.LegalTypeCOOP,
			doc: doc(map[string]any{"name": "changeOfDirectors"}, map[string]any{
				"changeOfDirectors": directors([]any{"addressChanged"}),
			}),
			want: []FilingTypeCode{{FilingTypeCode: FreeDirectorChangeCoop}},
		},
		{
			name:      "ceased director is billable",
			legalType: bmodels.LegalTypeCOOP,
			doc: doc(map[string]any{"name": "changeOfDirectors"}, map[string]any{
				"changeOfDirectors": directors([]any{"nameChanged"}, []any{"ceased"}),
			}),
			want: []FilingTypeCode{{FilingTypeCode: "OTCDR"}},
		},
		{
			name:      "correction short-circuits",
			legalType: bmodels.LegalTypeBC,
			doc: doc(map[string]any{"name": "correction", "waiveFees": true}, map[string]any{
				"correction":      map[string]any{"correctedFilingId": 12},
				"changeOfAddress": map[string]any{},
			}),
			want: []FilingTypeCode{{FilingTypeCode: "CRCTN", WaiveFees: true}},
		},
		{
			name:      "firm correction",
			legalType: bmodels.LegalTypeSP,
			doc:       doc(map[string]any{"name": "correction"}, map[string]any{"correction": map[string]any{}}),
			want:      []FilingTypeCode{{FilingTypeCode: "FMCORR"}},
		},
		{
			name:      "cooperative voluntary dissolution",
			legalType: bmodels.LegalTypeCOOP,
			doc: doc(map[string]any{"name": "dissolution"}, map[string]any{
				"dissolution":       map[string]any{"dissolutionType": "voluntary"},
				"specialResolution": map[string]any{"resolution": "wind up"},
			}),
			want: []FilingTypeCode{
				{FilingTypeCode: "DIS_VOL"},
				{FilingTypeCode: SpecialResolution},
				{FilingTypeCode: Affidavit},
			},
		},
		{
			name:      "corporate voluntary dissolution",
			legalType: bmodels.LegalTypeBC,
			doc: doc(map[string]any{"name": "dissolution"}, map[string]any{
				"dissolution": map[string]any{"dissolutionType": "voluntary"},
			}),
			want: []FilingTypeCode{{FilingTypeCode: "DIS_VOL"}},
		},
		{
			name:      "future-effective incorporation",
			legalType: bmodels.LegalTypeBEN,
			doc: doc(map[string]any{"name": "incorporationApplication", "futureEffectiveDate": now.Add(48 * time.Hour).Format(time.RFC3339)}, map[string]any{
				"incorporationApplication": map[string]any{"nameRequest": map[string]any{"legalType": "BEN"}},
			}),
			want: []FilingTypeCode{{FilingTypeCode: "BCINC", FutureEffective: true}},
		},
		{
			name:      "past effective date is not future-effective",
			legalType: bmodels.LegalTypeBEN,
			doc: doc(map[string]any{"name": "incorporationApplication", "effectiveDate": now.Add(-time.Hour).Format(time.RFC3339)}, map[string]any{
				"incorporationApplication": map[string]any{},
			}),
			want: []FilingTypeCode{{FilingTypeCode: "BCINC"}},
		},
		{
			name:      "future date on a type without future effect",
			legalType: bmodels.LegalTypeBC,
			doc: doc(map[string]any{"name": "changeOfAddress", "futureEffectiveDate": now.Add(48 * time.Hour).Format(time.RFC3339)}, map[string]any{
				"changeOfAddress": map[string]any{},
			}),
			want: []FilingTypeCode{{FilingTypeCode: "BCADD"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetFilingTypes(tt.legalType, tt.doc, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetFilingTypesErrors(t *testing.T) {
	t.Run("composite without sub-type", func(t *testing.T) {
		_, err := GetFilingTypes(bmodels.LegalTypeBC, doc(map[string]any{"name": "dissolution"}, map[string]any{
			"dissolution": map[string]any{},
		}), now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("filing type not offered for legal type", func(t *testing.T) {
		_, err := GetFilingTypes(bmodels.LegalTypeSP, doc(map[string]any{"name": "annualReport"}, map[string]any{
			"annualReport": map[string]any{},
		}), now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "annualReport is not available for legal type SP")
	})

	t.Run("no sections", func(t *testing.T) {
		_, err := GetFilingTypes(bmodels.LegalTypeBC, doc(map[string]any{"name": "annualReport"}, nil), now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}
