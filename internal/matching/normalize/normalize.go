// Package normalize maps free-form profile and job attributes to a small
// canonical vocabulary. Every function is total: no input panics, unknown
// non-empty strings pass through (folded) so callers can tell a mismatch
// from missing data, and absent input yields the zero value.
package normalize

import "strings"

// Canonical driver types.
const (
	DriverTypeCompany       = "company"
	DriverTypeOwnerOperator = "owner-operator"
	DriverTypeLease         = "lease"
	DriverTypeStudent       = "student"
)

// Canonical license classes.
const (
	LicenseClassA      = "a"
	LicenseClassB      = "b"
	LicenseClassC      = "c"
	LicenseClassPermit = "permit"
)

// Canonical route types.
const (
	RouteOTR       = "otr"
	RouteLocal     = "local"
	RouteRegional  = "regional"
	RouteDedicated = "dedicated"
	RouteLTL       = "ltl"
)

// Canonical team preferences.
const (
	TeamSolo = "solo"
	TeamTeam = "team"
	TeamBoth = "both"
)

// Canonical freight types.
const (
	FreightBox          = "box"
	FreightFlatbed      = "flatbed"
	FreightTanker       = "tanker"
	FreightRefrigerated = "refrigerated"
	FreightCarHauler    = "car_hauler"
	FreightDump         = "dump"
	FreightHopper       = "hopper"
	FreightLowboy       = "lowboy"
	FreightLivestock    = "livestock"
	FreightIntermodal   = "intermodal"
	FreightOversized    = "oversized"
)

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var driverTypeSynonyms = map[string]string{
	"company":          DriverTypeCompany,
	"company driver":   DriverTypeCompany,
	"employee":         DriverTypeCompany,
	"owner-operator":   DriverTypeOwnerOperator,
	"owner operator":   DriverTypeOwnerOperator,
	"owner_operator":   DriverTypeOwnerOperator,
	"owner op":         DriverTypeOwnerOperator,
	"o/o":              DriverTypeOwnerOperator,
	"lease":            DriverTypeLease,
	"lease operator":   DriverTypeLease,
	"lease purchase":   DriverTypeLease,
	"lease-purchase":   DriverTypeLease,
	"student":          DriverTypeStudent,
	"student driver":   DriverTypeStudent,
	"trainee":          DriverTypeStudent,
	"recent graduate":  DriverTypeStudent,
}

// DriverType maps a free-form driver type to its canonical value.
func DriverType(s string) string {
	f := fold(s)
	if f == "" {
		return ""
	}
	if canonical, ok := driverTypeSynonyms[f]; ok {
		return canonical
	}
	return f
}

var licenseClassSynonyms = map[string]string{
	"a":        LicenseClassA,
	"class a":  LicenseClassA,
	"cdl a":    LicenseClassA,
	"cdl-a":    LicenseClassA,
	"b":        LicenseClassB,
	"class b":  LicenseClassB,
	"cdl b":    LicenseClassB,
	"cdl-b":    LicenseClassB,
	"c":        LicenseClassC,
	"class c":  LicenseClassC,
	"cdl c":    LicenseClassC,
	"permit":   LicenseClassPermit,
	"cdl permit": LicenseClassPermit,
	"learners permit": LicenseClassPermit,
	"learner's permit": LicenseClassPermit,
}

// LicenseClass maps a free-form license class to its canonical value.
func LicenseClass(s string) string {
	f := fold(s)
	if f == "" {
		return ""
	}
	if canonical, ok := licenseClassSynonyms[f]; ok {
		return canonical
	}
	return f
}

var experienceOrdinals = map[string]int{
	"none":              0,
	"no experience":     0,
	"0":                 0,
	"<1":                1,
	"< 1 year":          1,
	"less than 1 year":  1,
	"less than a year":  1,
	"0-1":               1,
	"0-1 years":         1,
	"1-3":               2,
	"1-3 years":         2,
	"1 to 3 years":      2,
	"3-5":               3,
	"3-5 years":         3,
	"3 to 5 years":      3,
	"5+":                4,
	"5+ years":          4,
	"5 or more years":   4,
	"more than 5 years": 4,
}

// Experience maps a free-form experience bucket to an ordinal:
// none=0, <1yr=1, 1-3yr=2, 3-5yr=3, 5+yr=4. Unknown input returns -1.
func Experience(s string) int {
	f := fold(s)
	if f == "" {
		return -1
	}
	if ord, ok := experienceOrdinals[f]; ok {
		return ord
	}
	return -1
}

// ExperienceFromYears converts a numeric years-of-experience value to the
// same ordinal scale. Negative input (unknown) returns -1.
func ExperienceFromYears(years int) int {
	switch {
	case years < 0:
		return -1
	case years == 0:
		return 0
	case years < 3:
		return 2
	case years < 5:
		return 3
	default:
		return 4
	}
}

var routeSynonyms = map[string]string{
	"otr":            RouteOTR,
	"over the road":  RouteOTR,
	"over-the-road":  RouteOTR,
	"long haul":      RouteOTR,
	"local":          RouteLocal,
	"home daily":     RouteLocal,
	"regional":       RouteRegional,
	"dedicated":      RouteDedicated,
	"dedicated lane": RouteDedicated,
	"ltl":            RouteLTL,
	"less than truckload": RouteLTL,
	"less-than-truckload": RouteLTL,
}

// RouteType maps a free-form route type to its canonical value.
func RouteType(s string) string {
	f := fold(s)
	if f == "" {
		return ""
	}
	if canonical, ok := routeSynonyms[f]; ok {
		return canonical
	}
	return f
}

var freightSynonyms = map[string]string{
	"box":           FreightBox,
	"box truck":     FreightBox,
	"dry van":       FreightBox,
	"dryvan":        FreightBox,
	"van":           FreightBox,
	"flatbed":       FreightFlatbed,
	"flat bed":      FreightFlatbed,
	"step deck":     FreightFlatbed,
	"tanker":        FreightTanker,
	"tank":          FreightTanker,
	"liquid":        FreightTanker,
	"reefer":        FreightRefrigerated,
	"refrigerated":  FreightRefrigerated,
	"temp controlled": FreightRefrigerated,
	"car hauler":    FreightCarHauler,
	"car_hauler":    FreightCarHauler,
	"auto hauler":   FreightCarHauler,
	"car carrier":   FreightCarHauler,
	"dump":          FreightDump,
	"dump truck":    FreightDump,
	"end dump":      FreightDump,
	"hopper":        FreightHopper,
	"hopper bottom": FreightHopper,
	"grain":         FreightHopper,
	"lowboy":        FreightLowboy,
	"low boy":       FreightLowboy,
	"rgn":           FreightLowboy,
	"livestock":     FreightLivestock,
	"cattle":        FreightLivestock,
	"intermodal":    FreightIntermodal,
	"container":     FreightIntermodal,
	"oversized":     FreightOversized,
	"oversize":      FreightOversized,
	"heavy haul":    FreightOversized,
}

// FreightType maps a free-form freight/hauler category to its canonical value.
func FreightType(s string) string {
	f := fold(s)
	if f == "" {
		return ""
	}
	if canonical, ok := freightSynonyms[f]; ok {
		return canonical
	}
	return f
}

var teamSynonyms = map[string]string{
	"solo":   TeamSolo,
	"team":   TeamTeam,
	"both":   TeamBoth,
	"either": TeamBoth,
	"any":    TeamBoth,
	"solo or team": TeamBoth,
}

// TeamPreference maps a free-form solo/team preference to its canonical value.
func TeamPreference(s string) string {
	f := fold(s)
	if f == "" {
		return ""
	}
	if canonical, ok := teamSynonyms[f]; ok {
		return canonical
	}
	return f
}
