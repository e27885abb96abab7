package weather

// baseline holds long-term reference climate values for a region.
type baseline struct {
	TempC       float64
	RainfallMM  float64
	HumidityPct float64
}

// defaultBaseline is used when a region has no entry in the table.
var defaultBaseline = baseline{TempC: 25.0, RainfallMM: 1000, HumidityPct: 65}

// regionBaselines maps region names to reference climate values used by the
// simulated weather source. Values are indicative long-term averages for
// Indian states.
var regionBaselines = map[string]baseline{
	"Andhra Pradesh":    {28.5, 850, 68},
	"Arunachal Pradesh": {22.2, 2100, 75},
	"Assam":             {23.1, 1800, 76},
	"Bihar":             {26.2, 1050, 56},
	"Chhattisgarh":      {26.0, 1200, 59},
	"Delhi":             {25.5, 700, 45},
	"Goa":               {27.4, 2200, 74},
	"Gujarat":           {27.8, 750, 48},
	"Haryana":           {24.2, 950, 47},
	"Himachal Pradesh":  {21.0, 1100, 50},
	"Jharkhand":         {23.4, 1350, 62},
	"Jammu and Kashmir": {9.5, 650, 52},
	"Karnataka":         {23.7, 850, 68},
	"Kerala":            {26.8, 1800, 80},
	"Madhya Pradesh":    {25.2, 1200, 52},
	"Maharashtra":       {26.7, 2400, 67},
	"Manipur":           {20.4, 1300, 74},
	"Meghalaya":         {17.9, 2800, 81},
	"Mizoram":           {22.9, 2000, 77},
	"Nagaland":          {18.3, 1200, 74},
	"Odisha":            {26.4, 1450, 72},
	"Puducherry":        {28.1, 1200, 75},
	"Punjab":            {24.2, 950, 47},
	"Sikkim":            {7.5, 1100, 73},
	"Tamil Nadu":        {27.9, 1250, 72},
	"Telangana":         {26.1, 800, 60},
	"Tripura":           {25.2, 2100, 75},
	"Uttar Pradesh":     {25.8, 1000, 52},
	"Uttarakhand":       {18.0, 1300, 56},
	"West Bengal":       {25.8, 1550, 74},
}

func baselineFor(region string) baseline {
	if b, ok := regionBaselines[region]; ok {
		return b
	}
	return defaultBaseline
}
