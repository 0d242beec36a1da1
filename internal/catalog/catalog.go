package catalog

import (
	"errors"
	"fmt"

	"github.com/AngelCh415/stratis/internal/models"
)

var (
	ErrUnknownChannel = errors.New("catalog: channel has no profile")
	ErrUnknownRegion  = errors.New("catalog: region has no multiplier")
	ErrCountryRegion  = errors.New("catalog: country outside campaign region")
)

var Regions = []models.RegionID{
	models.RegionNorthAmerica, models.RegionEurope, models.RegionUK,
	models.RegionMiddleEast, models.RegionAPAC, models.RegionLATAM,
}

var Channels = []models.ChannelID{
	models.ChannelInstagram, models.ChannelFacebook, models.ChannelTikTok,
	models.ChannelGoogleSearch, models.ChannelTTD,
}

var RegionLabels = map[models.RegionID]string{
	models.RegionNorthAmerica: "North America",
	models.RegionEurope:       "Europe",
	models.RegionUK:           "United Kingdom",
	models.RegionMiddleEast:   "Middle East",
	models.RegionAPAC:         "Asia Pacific",
	models.RegionLATAM:        "Latin America",
}

var ChannelLabels = map[models.ChannelID]string{
	models.ChannelInstagram:    "Instagram",
	models.ChannelFacebook:     "Facebook",
	models.ChannelTikTok:       "TikTok",
	models.ChannelGoogleSearch: "Google Search",
	models.ChannelTTD:          "The Trade Desk",
}

type Range [2]float64

type ChannelProfile struct {
	BaseSpend            float64
	CPMRange             Range
	CTRRange             Range // percent
	CVRRange             Range // percent
	CPCRange             Range
	VideoViewRate        float64
	VideoCompletionRate  float64
	EngagementMultiplier float64
	Volatility           float64
}

var ChannelProfiles = map[models.ChannelID]ChannelProfile{
	models.ChannelGoogleSearch: {BaseSpend: 1200, CPMRange: Range{15, 30}, CTRRange: Range{4, 8}, CVRRange: Range{6, 10}, CPCRange: Range{2, 5}, VideoViewRate: 0, VideoCompletionRate: 0, EngagementMultiplier: 0.5, Volatility: 0.15},
	models.ChannelFacebook:     {BaseSpend: 1000, CPMRange: Range{8, 18}, CTRRange: Range{1.2, 2.5}, CVRRange: Range{2.5, 5}, CPCRange: Range{0.8, 2.5}, VideoViewRate: 0.3, VideoCompletionRate: 0.25, EngagementMultiplier: 1.2, Volatility: 0.12},
	models.ChannelInstagram:    {BaseSpend: 900, CPMRange: Range{8, 20}, CTRRange: Range{1, 2.2}, CVRRange: Range{2.5, 4.5}, CPCRange: Range{1, 3}, VideoViewRate: 0.4, VideoCompletionRate: 0.3, EngagementMultiplier: 1.5, Volatility: 0.1},
	models.ChannelTikTok:       {BaseSpend: 700, CPMRange: Range{5, 15}, CTRRange: Range{0.8, 2}, CVRRange: Range{1.5, 3.5}, CPCRange: Range{0.5, 2}, VideoViewRate: 0.8, VideoCompletionRate: 0.15, EngagementMultiplier: 2.0, Volatility: 0.25},
	models.ChannelTTD:          {BaseSpend: 1500, CPMRange: Range{5, 15}, CTRRange: Range{0.3, 1}, CVRRange: Range{1, 2.5}, CPCRange: Range{1, 4}, VideoViewRate: 0.2, VideoCompletionRate: 0.2, EngagementMultiplier: 0.3, Volatility: 0.08},
}

var RegionMultipliers = map[models.RegionID]float64{
	models.RegionNorthAmerica: 1.4,
	models.RegionEurope:       1.2,
	models.RegionUK:           0.8,
	models.RegionMiddleEast:   0.6,
	models.RegionAPAC:         1.0,
	models.RegionLATAM:        0.5,
}

func Profile(ch models.ChannelID) (ChannelProfile, error) {
	p, ok := ChannelProfiles[ch]
	if !ok {
		return ChannelProfile{}, fmt.Errorf("%w: %q", ErrUnknownChannel, ch)
	}
	return p, nil
}

func RegionMultiplier(r models.RegionID) (float64, error) {
	m, ok := RegionMultipliers[r]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRegion, r)
	}
	return m, nil
}

// Validate checks that every campaign, event and country references known
// catalog entries.
func Validate(defs []CampaignDef, events []Event) error {
	seen := map[string]struct{}{}
	for _, c := range defs {
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("catalog: duplicate campaign %q", c.ID)
		}
		seen[c.ID] = struct{}{}
		if _, err := RegionMultiplier(c.Region); err != nil {
			return fmt.Errorf("campaign %s: %w", c.ID, err)
		}
		if len(c.Channels) == 0 {
			return fmt.Errorf("catalog: campaign %q has no channels", c.ID)
		}
		for _, ch := range c.Channels {
			if _, err := Profile(ch); err != nil {
				return fmt.Errorf("campaign %s: %w", c.ID, err)
			}
		}
		for _, code := range c.Countries {
			if CountryRegions[code] != c.Region {
				return fmt.Errorf("campaign %s: %w: %s", c.ID, ErrCountryRegion, code)
			}
		}
	}
	for _, e := range events {
		for _, r := range e.Regions {
			if _, err := RegionMultiplier(r); err != nil {
				return fmt.Errorf("event %s: %w", e.Name, err)
			}
		}
	}
	return nil
}
