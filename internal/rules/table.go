package rules

import (
	bmodels "lear/internal/business/models"
)

var (
	active     = []bmodels.State{bmodels.StateActive}
	historical = []bmodels.State{bmodels.StateHistorical}
	anyState   = []bmodels.State{bmodels.StateActive, bmodels.StateHistorical}

	corps  = bmodels.Corporations
	coop   = []bmodels.LegalType{bmodels.LegalTypeCOOP}
	firms  = bmodels.Firms
	legacy = bmodels.LegacyULCs

	newCorps     = []bmodels.LegalType{bmodels.LegalTypeBC, bmodels.LegalTypeBEN, bmodels.LegalTypeULC, bmodels.LegalTypeCC}
	continuedIn  = []bmodels.LegalType{bmodels.LegalTypeC, bmodels.LegalTypeCBEN, bmodels.LegalTypeCUL, bmodels.LegalTypeCCC}
	corpsAndCoop = union(corps, coop)
	allLive      = union(corps, coop, firms)
	everyLegal   = union(corps, coop, firms, legacy)
	corpsLegacy  = union(corps, legacy)

	// standard blockers for routine filings
	routine = []BlockerID{BlockAdminFreeze, BlockPendingFiling, BlockInDissolution, BlockFutureEffective}
	// structural filings additionally require good standing
	structural = []BlockerID{BlockAdminFreeze, BlockPendingFiling, BlockInDissolution, BlockNotInGoodStanding, BlockFutureEffective}
)

// table is declared in canonical order. Allowed-filings output follows this order.
var table = []Entry{
	{
		FilingType: AdminFreeze, DisplayName: "Admin Freeze",
		LegalTypes: everyLegal, States: active,
		FeeCodes: codes(fee(NoFee, everyLegal)),
	},
	{
		FilingType: AgmExtension, DisplayName: "Request for AGM Extension",
		LegalTypes: corps, States: active, AllowPublic: true,
		FeeCodes: codes(fee("AGMDT", corps)),
		Blockers: routine,
	},
	{
		FilingType: AgmLocationChange, DisplayName: "AGM Location Change",
		LegalTypes: corps, States: active, AllowPublic: true,
		FeeCodes: codes(fee("AGMLC", corps)),
		Blockers: routine,
	},
	{
		FilingType: Alteration, DisplayName: "Alteration",
		LegalTypes: corpsLegacy, States: active, AllowPublic: true,
		FeeCodes: codes(fee("ALTER", corpsLegacy)),
		Blockers: structural,
	},
	{
		FilingType: AmalgamationApplication, SubType: AmalgamationRegular,
		DisplayName: "Amalgamation Application (Regular)",
		LegalTypes:  corps, States: active, AllowPublic: true, NewEntity: true,
		FeeCodes: codes(fee("AMALR", corps)),
		Blockers: with(routine, BlockAmalgamatingDissolving),
	},
	{
		FilingType: AmalgamationApplication, SubType: AmalgamationVertical,
		DisplayName: "Amalgamation Application Short-form (Vertical)",
		LegalTypes:  corps, States: active, AllowPublic: true, NewEntity: true,
		FeeCodes: codes(fee("AMALV", corps)),
		Blockers: with(routine, BlockAmalgamatingDissolving),
	},
	{
		FilingType: AmalgamationApplication, SubType: AmalgamationHorizontal,
		DisplayName: "Amalgamation Application Short-form (Horizontal)",
		LegalTypes:  corps, States: active, AllowPublic: true, NewEntity: true,
		FeeCodes: codes(fee("AMALH", corps)),
		Blockers: with(routine, BlockAmalgamatingDissolving),
	},
	{
		FilingType: AnnualReport, DisplayName: "Annual Report",
		LegalTypes: corpsAndCoop, States: active, AllowPublic: true,
		FeeCodes: codes(fee("BCANN", corps), fee("OTANN", coop)),
		Blockers: routine,
	},
	{
		FilingType: ChangeOfAddress, DisplayName: "Address Change",
		LegalTypes: corpsAndCoop, States: active, AllowPublic: true,
		FeeCodes: codes(fee("BCADD", corps), fee("OTADD", coop)),
		Blockers: routine,
	},
	{
		FilingType: ChangeOfDirectors, DisplayName: "Director Change",
		LegalTypes: corpsAndCoop, States: active, AllowPublic: true,
		FeeCodes: codes(fee("BCCDR", corps), fee("OTCDR", coop)),
		Blockers: routine,
	},
	{
		FilingType: ChangeOfRegistration, DisplayName: "Change of Registration",
		DisplayNames: map[bmodels.LegalType]string{
			bmodels.LegalTypeSP: "Change of Registration Application - Sole Proprietorship",
			bmodels.LegalTypeGP: "Change of Registration Application - General Partnership",
		},
		LegalTypes: firms, States: active, AllowPublic: true,
		FeeCodes: codes(fee("FMCHANGE", firms)),
		Blockers: []BlockerID{BlockAdminFreeze, BlockPendingFiling, BlockFutureEffective},
	},
	{
		FilingType: ConsentContinuationOut, DisplayName: "6-Month Consent to Continue Out",
		LegalTypes: corps, States: active,
		FeeCodes: codes(fee("CONTO", corps)),
		Blockers: structural,
	},
	{
		FilingType: ContinuationIn, DisplayName: "Continuation Application",
		LegalTypes: continuedIn, States: active, AllowPublic: true,
		NewEntity: true, NewEntityOnly: true, RequiresReview: true,
		FeeCodes: codes(fee("CONTI", continuedIn)),
	},
	{
		FilingType: ContinuationOut, DisplayName: "Continuation Out",
		LegalTypes: corps, States: active,
		FeeCodes:         codes(fee("COUTI", corps)),
		Blockers:         with(routine, BlockCompletedFilings),
		CompletedFilings: []FilingRef{{Type: ConsentContinuationOut}},
	},
	{
		FilingType: Conversion, DisplayName: "Record Conversion",
		LegalTypes: firms, States: active,
		FeeCodes: codes(fee("FMCONV", firms)),
		Blockers: []BlockerID{BlockAdminFreeze, BlockPendingFiling},
	},
	{
		FilingType: Correction, DisplayName: "Register Correction Application",
		LegalTypes: everyLegal, States: active,
		FeeCodes: codes(fee("CRCTN", union(corps, coop, legacy)), fee("FMCORR", firms)),
		Blockers: []BlockerID{BlockAdminFreeze, BlockPendingFiling, BlockInDissolution, BlockNotInGoodStanding},
	},
	{
		FilingType: CourtOrder, DisplayName: "Court Order",
		LegalTypes: everyLegal, States: anyState,
		FeeCodes: codes(fee("COURT", everyLegal)),
	},
	{
		FilingType: Dissolution, SubType: DissolutionVoluntary, DisplayName: "Voluntary Dissolution",
		DisplayNames: map[bmodels.LegalType]string{
			bmodels.LegalTypeSP: "Statement of Dissolution",
			bmodels.LegalTypeGP: "Statement of Dissolution",
		},
		LegalTypes: allLive, States: active, AllowPublic: true,
		FeeCodes: codes(fee("DIS_VOL", allLive)),
		Blockers: routine,
	},
	{
		FilingType: Dissolution, SubType: DissolutionAdministrative, DisplayName: "Administrative Dissolution",
		LegalTypes: corpsAndCoop, States: active,
		FeeCodes: codes(fee("DIS_ADM", corpsAndCoop)),
	},
	{
		FilingType: IncorporationApplication, DisplayName: "Incorporation Application",
		DisplayNames: map[bmodels.LegalType]string{
			bmodels.LegalTypeBEN:  "BC Benefit Company Incorporation Application",
			bmodels.LegalTypeULC:  "BC Unlimited Liability Company Incorporation Application",
			bmodels.LegalTypeCC:   "BC Community Contribution Company Incorporation Application",
			bmodels.LegalTypeCOOP: "Cooperative Association Incorporation Application",
		},
		LegalTypes: union(newCorps, coop), States: active, AllowPublic: true,
		NewEntity: true, NewEntityOnly: true,
		FeeCodes: codes(fee("BCINC", newCorps), fee("OTINC", coop)),
	},
	{
		FilingType: NoticeOfWithdrawal, DisplayName: "Notice of Withdrawal",
		LegalTypes: allLive, States: active, NewEntity: true,
		FeeCodes: codes(fee("NWITH", allLive)),
		Blockers: []BlockerID{BlockAdminFreeze, BlockFutureEffective},
	},
	{
		FilingType: PutBackOff, DisplayName: "Correction - Put Back Off",
		LegalTypes: corps, States: active,
		FeeCodes: codes(fee(NoFee, corps)),
	},
	{
		FilingType: PutBackOn, DisplayName: "Correction - Put Back On",
		LegalTypes: corps, States: historical,
		FeeCodes: codes(fee(NoFee, corps)),
	},
	{
		FilingType: RegistrarsNotation, DisplayName: "Registrar's Notation",
		LegalTypes: everyLegal, States: anyState,
		FeeCodes: codes(fee(NoFee, everyLegal)),
	},
	{
		FilingType: RegistrarsOrder, DisplayName: "Registrar's Order",
		LegalTypes: everyLegal, States: anyState,
		FeeCodes: codes(fee(NoFee, everyLegal)),
	},
	{
		FilingType: Registration, DisplayName: "Registration",
		DisplayNames: map[bmodels.LegalType]string{
			bmodels.LegalTypeSP: "BC Sole Proprietorship Registration",
			bmodels.LegalTypeGP: "BC General Partnership Registration",
		},
		LegalTypes: firms, States: active, AllowPublic: true,
		NewEntity: true, NewEntityOnly: true,
		FeeCodes: codes(fee("FRREG", firms)),
	},
	{
		FilingType: Restoration, SubType: RestorationFull, DisplayName: "Full Restoration Application",
		LegalTypes: corps, States: historical,
		FeeCodes: codes(fee("RESTF", corps)),
		Blockers: []BlockerID{BlockStateFiling},
		InvalidStateFilings: []FilingRef{
			{Type: ContinuationIn}, {Type: ContinuationOut},
		},
	},
	{
		FilingType: Restoration, SubType: RestorationLimited, DisplayName: "Limited Restoration Application",
		LegalTypes: corps, States: historical,
		FeeCodes: codes(fee("RESTL", corps)),
		Blockers: []BlockerID{BlockStateFiling},
		InvalidStateFilings: []FilingRef{
			{Type: ContinuationIn}, {Type: ContinuationOut},
		},
	},
	{
		FilingType: Restoration, SubType: RestorationLimitedExtension, DisplayName: "Limited Restoration Extension Application",
		LegalTypes: corps, States: active,
		FeeCodes: codes(fee("RESXL", corps)),
		Blockers: []BlockerID{BlockAdminFreeze, BlockPendingFiling, BlockStateFiling},
		ValidStateFilings: []FilingRef{
			{Type: Restoration, SubType: RestorationLimited},
			{Type: Restoration, SubType: RestorationLimitedExtension},
		},
	},
	{
		FilingType: Restoration, SubType: RestorationLimitedToFull, DisplayName: "Conversion to Full Restoration Application",
		LegalTypes: corps, States: active,
		FeeCodes: codes(fee("RESXF", corps)),
		Blockers: []BlockerID{BlockAdminFreeze, BlockPendingFiling, BlockStateFiling},
		ValidStateFilings: []FilingRef{
			{Type: Restoration, SubType: RestorationLimited},
			{Type: Restoration, SubType: RestorationLimitedExtension},
		},
	},
	{
		FilingType: SpecialResolution, DisplayName: "Special Resolution",
		LegalTypes: coop, States: active, AllowPublic: true,
		FeeCodes: codes(fee("SPRLN", coop)),
		Blockers: routine,
	},
	{
		FilingType: Transition, DisplayName: "Transition Application",
		LegalTypes: corpsLegacy, States: active,
		FeeCodes: codes(fee("TRANS", corpsLegacy)),
		Blockers: []BlockerID{BlockPendingFiling},
	},
}

type feePair struct {
	code  string
	types []bmodels.LegalType
}

func fee(code string, types []bmodels.LegalType) feePair {
	return feePair{code: code, types: types}
}

func codes(pairs ...feePair) map[bmodels.LegalType]string {
	m := make(map[bmodels.LegalType]string)
	for _, p := range pairs {
		for _, lt := range p.types {
			m[lt] = p.code
		}
	}
	return m
}

func union(groups ...[]bmodels.LegalType) []bmodels.LegalType {
	var out []bmodels.LegalType
	seen := make(map[bmodels.LegalType]struct{})
	for _, g := range groups {
		for _, lt := range g {
			if _, ok := seen[lt]; ok {
				continue
			}
			seen[lt] = struct{}{}
			out = append(out, lt)
		}
	}
	return out
}

func with(base []BlockerID, extra ...BlockerID) []BlockerID {
	out := make([]BlockerID, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}
