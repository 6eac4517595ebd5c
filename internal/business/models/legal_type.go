package models

// LegalType is the corporate form of a business.
type LegalType string

const (
	LegalTypeBC   LegalType = "BC"   // BC limited company
	LegalTypeBEN  LegalType = "BEN"  // BC benefit company
	LegalTypeULC  LegalType = "ULC"  // BC unlimited liability company
	LegalTypeCC   LegalType = "CC"   // BC community contribution company
	LegalTypeC    LegalType = "C"    // continued-in limited company
	LegalTypeCBEN LegalType = "CBEN" // continued-in benefit company
	LegalTypeCUL  LegalType = "CUL"  // continued-in unlimited liability company
	LegalTypeCCC  LegalType = "CCC"  // continued-in community contribution company
	LegalTypeCOOP LegalType = "CP"
	LegalTypeSP   LegalType = "SP" // sole proprietorship
	LegalTypeGP   LegalType = "GP" // general partnership

	// Unlimited liability forms created under pre-1897 acts.
	LegalTypeCO1860 LegalType = "CO_1860"
	LegalTypeCO1862 LegalType = "CO_1862"
	LegalTypeCO1878 LegalType = "CO_1878"
	LegalTypeCO1890 LegalType = "CO_1890"
	LegalTypeCO1897 LegalType = "CO_1897"
)

var (
	// Corporations are the BC Business Corporations Act forms, including continued-in variants.
	Corporations = []LegalType{
		LegalTypeBC, LegalTypeBEN, LegalTypeULC, LegalTypeCC,
		LegalTypeC, LegalTypeCBEN, LegalTypeCUL, LegalTypeCCC,
	}
	Firms      = []LegalType{LegalTypeSP, LegalTypeGP}
	LegacyULCs = []LegalType{
		LegalTypeCO1860, LegalTypeCO1862, LegalTypeCO1878, LegalTypeCO1890, LegalTypeCO1897,
	}
)

var known = func() map[LegalType]struct{} {
	m := make(map[LegalType]struct{})
	for _, group := range [][]LegalType{Corporations, Firms, LegacyULCs, {LegalTypeCOOP}} {
		for _, lt := range group {
			m[lt] = struct{}{}
		}
	}
	return m
}()

// IsKnown reports whether lt is one of the supported forms.
func (lt LegalType) IsKnown() bool {
	_, ok := known[lt]
	return ok
}

func (lt LegalType) IsFirm() bool {
	return lt == LegalTypeSP || lt == LegalTypeGP
}

func (lt LegalType) IsCoop() bool {
	return lt == LegalTypeCOOP
}

// IsULCFamily covers current and historical unlimited liability forms.
func (lt LegalType) IsULCFamily() bool {
	switch lt {
	case LegalTypeULC, LegalTypeCUL,
		LegalTypeCO1860, LegalTypeCO1862, LegalTypeCO1878, LegalTypeCO1890, LegalTypeCO1897:
		return true
	}
	return false
}

// IsCorporation reports BC Business Corporations Act forms (not legacy, coop or firm).
func (lt LegalType) IsCorporation() bool {
	for _, c := range Corporations {
		if c == lt {
			return true
		}
	}
	return false
}
