package domain

import "strings"

// Country is one row of the in-process country reference table.
type Country struct {
	Name   string
	Alpha2 string
	Alpha3 string
}

// countries covers the markets the directory currently serves.
// Extended as producers onboard from new regions.
var countries = []Country{
	{"United States", "US", "USA"},
	{"Canada", "CA", "CAN"},
	{"Mexico", "MX", "MEX"},
	{"United Kingdom", "GB", "GBR"},
	{"Ireland", "IE", "IRL"},
	{"France", "FR", "FRA"},
	{"Germany", "DE", "DEU"},
	{"Spain", "ES", "ESP"},
	{"Portugal", "PT", "PRT"},
	{"Italy", "IT", "ITA"},
	{"Netherlands", "NL", "NLD"},
	{"Belgium", "BE", "BEL"},
	{"Switzerland", "CH", "CHE"},
	{"Austria", "AT", "AUT"},
	{"Denmark", "DK", "DNK"},
	{"Sweden", "SE", "SWE"},
	{"Norway", "NO", "NOR"},
	{"Finland", "FI", "FIN"},
	{"Poland", "PL", "POL"},
	{"Greece", "GR", "GRC"},
	{"Australia", "AU", "AUS"},
	{"New Zealand", "NZ", "NZL"},
	{"Japan", "JP", "JPN"},
	{"South Korea", "KR", "KOR"},
	{"China", "CN", "CHN"},
	{"India", "IN", "IND"},
	{"Brazil", "BR", "BRA"},
	{"Argentina", "AR", "ARG"},
	{"Chile", "CL", "CHL"},
	{"Peru", "PE", "PER"},
	{"Colombia", "CO", "COL"},
	{"Costa Rica", "CR", "CRI"},
	{"South Africa", "ZA", "ZAF"},
	{"Kenya", "KE", "KEN"},
	{"Morocco", "MA", "MAR"},
	{"Israel", "IL", "ISR"},
	{"Turkey", "TR", "TUR"},
}

// ResolveCountry resolves a free-form country hint. Resolution is
// sequential first-match: exact name, then alpha-3, then alpha-2, all
// case-insensitive. A miss returns ok=false, never an error; the
// caller drops the hint silently.
func ResolveCountry(hint string) (Country, bool) {
	return resolveCountryIn(countries, hint)
}

func resolveCountryIn(table []Country, hint string) (Country, bool) {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return Country{}, false
	}
	for _, c := range table {
		if strings.EqualFold(c.Name, hint) {
			return c, true
		}
	}
	for _, c := range table {
		if strings.EqualFold(c.Alpha3, hint) {
			return c, true
		}
	}
	for _, c := range table {
		if strings.EqualFold(c.Alpha2, hint) {
			return c, true
		}
	}
	return Country{}, false
}
