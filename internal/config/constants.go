package config

// Application constants for the Aadhaar dataset processor.
const (
	// Application Info
	AppName    = "Aadhaar Dataset Processor"
	AppVendor  = "UIDAI Open Data"
	EnvPrefix  = "AADHAAR"
	ConfigFile = "config.yaml"

	// File Paths (relative to executable)
	DefaultDataDir    = "data"
	DefaultLogsDir    = "logs"
	DefaultInputDir   = "data/raw"
	DefaultCleanedDir = "data/cleaned"

	// Output naming
	CleaningReportFile = "cleaning_report.txt"
	PartFilePattern    = "*_cleaned_part*.csv"

	// ExcelMaxRows is the maximum number of rows an Excel sheet can hold.
	// Cleaned output is split into parts so every part opens in Excel.
	// The limit includes the header row.
	ExcelMaxRows = 1048576

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// DefaultDateFormats is the ordered list of date layouts probed when parsing
// raw dates. The first layout that parses wins. DD-MM-YYYY leads because it is
// the format the upstream portal exports.
var DefaultDateFormats = []string{
	"02-01-2006",
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	"02-Jan-2006",
}

// CanonicalStates is the official 36-entry set of Indian states and union
// territories that every resolved state name must belong to.
var CanonicalStates = []string{
	"Andaman and Nicobar Islands",
	"Andhra Pradesh",
	"Arunachal Pradesh",
	"Assam",
	"Bihar",
	"Chandigarh",
	"Chhattisgarh",
	"Dadra and Nagar Haveli and Daman and Diu",
	"Delhi",
	"Goa",
	"Gujarat",
	"Haryana",
	"Himachal Pradesh",
	"Jammu and Kashmir",
	"Jharkhand",
	"Karnataka",
	"Kerala",
	"Ladakh",
	"Lakshadweep",
	"Madhya Pradesh",
	"Maharashtra",
	"Manipur",
	"Meghalaya",
	"Mizoram",
	"Nagaland",
	"Odisha",
	"Puducherry",
	"Punjab",
	"Rajasthan",
	"Sikkim",
	"Tamil Nadu",
	"Telangana",
	"Tripura",
	"Uttar Pradesh",
	"Uttarakhand",
	"West Bengal",
}
