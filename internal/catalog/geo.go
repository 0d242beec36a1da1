package catalog

import "github.com/AngelCh415/stratis/internal/models"

// RegionCenters are [lng, lat] marker positions.
var RegionCenters = map[models.RegionID][2]float64{
	models.RegionNorthAmerica: {-95, 40},
	models.RegionEurope:       {15, 50},
	models.RegionUK:           {-2, 54},
	models.RegionMiddleEast:   {45, 25},
	models.RegionAPAC:         {105, 20},
	models.RegionLATAM:        {-60, -15},
}

type country struct {
	name   string
	region models.RegionID
}

var countries = map[string]country{
	"840": {"United States", models.RegionNorthAmerica},
	"124": {"Canada", models.RegionNorthAmerica},
	"484": {"Mexico", models.RegionNorthAmerica},

	"276": {"Germany", models.RegionEurope},
	"250": {"France", models.RegionEurope},
	"380": {"Italy", models.RegionEurope},
	"724": {"Spain", models.RegionEurope},
	"528": {"Netherlands", models.RegionEurope},
	"056": {"Belgium", models.RegionEurope},
	"756": {"Switzerland", models.RegionEurope},
	"040": {"Austria", models.RegionEurope},
	"616": {"Poland", models.RegionEurope},
	"752": {"Sweden", models.RegionEurope},
	"578": {"Norway", models.RegionEurope},
	"208": {"Denmark", models.RegionEurope},
	"246": {"Finland", models.RegionEurope},
	"620": {"Portugal", models.RegionEurope},
	"300": {"Greece", models.RegionEurope},
	"642": {"Romania", models.RegionEurope},
	"203": {"Czech Republic", models.RegionEurope},

	"826": {"United Kingdom", models.RegionUK},
	"372": {"Ireland", models.RegionUK},

	"682": {"Saudi Arabia", models.RegionMiddleEast},
	"784": {"United Arab Emirates", models.RegionMiddleEast},
	"634": {"Qatar", models.RegionMiddleEast},
	"414": {"Kuwait", models.RegionMiddleEast},
	"512": {"Oman", models.RegionMiddleEast},
	"048": {"Bahrain", models.RegionMiddleEast},
	"400": {"Jordan", models.RegionMiddleEast},
	"422": {"Lebanon", models.RegionMiddleEast},
	"376": {"Israel", models.RegionMiddleEast},
	"818": {"Egypt", models.RegionMiddleEast},
	"792": {"Turkey", models.RegionMiddleEast},

	"156": {"China", models.RegionAPAC},
	"392": {"Japan", models.RegionAPAC},
	"410": {"South Korea", models.RegionAPAC},
	"356": {"India", models.RegionAPAC},
	"036": {"Australia", models.RegionAPAC},
	"554": {"New Zealand", models.RegionAPAC},
	"360": {"Indonesia", models.RegionAPAC},
	"764": {"Thailand", models.RegionAPAC},
	"704": {"Vietnam", models.RegionAPAC},
	"608": {"Philippines", models.RegionAPAC},
	"458": {"Malaysia", models.RegionAPAC},
	"702": {"Singapore", models.RegionAPAC},

	"076": {"Brazil", models.RegionLATAM},
	"032": {"Argentina", models.RegionLATAM},
	"152": {"Chile", models.RegionLATAM},
	"170": {"Colombia", models.RegionLATAM},
	"604": {"Peru", models.RegionLATAM},
}

// CountryRegions maps ISO 3166-1 numeric codes to their region.
var CountryRegions = func() map[string]models.RegionID {
	m := make(map[string]models.RegionID, len(countries))
	for code, c := range countries {
		m[code] = c.region
	}
	return m
}()

// CountryName falls back to the code itself.
func CountryName(code string) string {
	if c, ok := countries[code]; ok {
		return c.name
	}
	return code
}
