package dataprocessing

import (
	"strings"

	"aadhaarcli/internal/config"
)

// stateAliases maps normalized source spellings onto official state and union
// territory names. The table covers renames (Orissa, Uttaranchal,
// Pondicherry), the merged Dadra/Daman UT, ampersand variants and the
// misspellings observed in delivered exports.
var stateAliases = map[string]string{
	"andaman & nicobar islands":   "Andaman and Nicobar Islands",
	"andaman and nicobar islands": "Andaman and Nicobar Islands",

	"andhra pradesh": "Andhra Pradesh",

	"arunachal pradesh": "Arunachal Pradesh",

	"assam": "Assam",

	"bihar": "Bihar",

	"chandigarh": "Chandigarh",

	"chhattisgarh": "Chhattisgarh",
	"chhatisgarh":  "Chhattisgarh",

	"dadra & nagar haveli":                         "Dadra and Nagar Haveli and Daman and Diu",
	"dadra and nagar haveli":                       "Dadra and Nagar Haveli and Daman and Diu",
	"dadra and nagar haveli and daman and diu":     "Dadra and Nagar Haveli and Daman and Diu",
	"the dadra and nagar haveli and daman and diu": "Dadra and Nagar Haveli and Daman and Diu",
	"daman & diu":                                  "Dadra and Nagar Haveli and Daman and Diu",
	"daman and diu":                                "Dadra and Nagar Haveli and Daman and Diu",

	"delhi": "Delhi",

	"goa": "Goa",

	"gujarat": "Gujarat",

	"haryana": "Haryana",

	"himachal pradesh": "Himachal Pradesh",

	"jammu & kashmir":   "Jammu and Kashmir",
	"jammu and kashmir": "Jammu and Kashmir",

	"jharkhand": "Jharkhand",

	"karnataka": "Karnataka",

	"kerala": "Kerala",

	"ladakh": "Ladakh",

	"lakshadweep": "Lakshadweep",

	"madhya pradesh": "Madhya Pradesh",

	"maharashtra": "Maharashtra",

	"manipur": "Manipur",

	"meghalaya": "Meghalaya",

	"mizoram": "Mizoram",

	"nagaland": "Nagaland",

	"odisha": "Odisha",
	"orissa": "Odisha",

	"puducherry":  "Puducherry",
	"pondicherry": "Puducherry",

	"punjab": "Punjab",

	"rajasthan": "Rajasthan",

	"sikkim": "Sikkim",

	"tamil nadu": "Tamil Nadu",
	"tamilnadu":  "Tamil Nadu",

	"telangana": "Telangana",

	"tripura": "Tripura",

	"uttar pradesh": "Uttar Pradesh",

	"uttarakhand": "Uttarakhand",
	"uttaranchal": "Uttarakhand",

	"west bengal":  "West Bengal",
	"west  bengal": "West Bengal",
	"west bangal":  "West Bengal",
	"west bengli":  "West Bengal",
	"westbengal":   "West Bengal",
}

// invalidStates are entries observed in the raw data that are not states at
// all (city names, bare numbers). They resolve to nothing rather than being
// treated as unseen spellings.
var invalidStates = map[string]struct{}{
	"100000":               {},
	"balanagar":            {},
	"nagpur":               {},
	"jaipur":               {},
	"madanapalle":          {},
	"raja annamalai puram": {},
}

// ResolveState maps a raw state value onto its official name. The second
// return is false when the value is empty, a known non-state entry, or a
// spelling absent from the alias table.
func ResolveState(raw string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return "", false
	}
	if _, bad := invalidStates[key]; bad {
		return "", false
	}
	canonical, ok := stateAliases[key]
	return canonical, ok
}

// IsCanonicalState reports whether name is one of the official state and
// union territory names.
func IsCanonicalState(name string) bool {
	for _, s := range config.CanonicalStates {
		if s == name {
			return true
		}
	}
	return false
}
