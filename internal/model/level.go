package model

// CampaignLevel is one tier of the level scale. A user holds a tier only
// when both minimums are satisfied.
type CampaignLevel struct {
	Name         string `json:"name"`
	MinReferrals int    `json:"min_referrals"`
	MinEarned    int    `json:"min_earned"`
}

// LevelScale is ordered from highest tier to lowest. The lowest tier has
// zero minimums so every user holds at least Novice.
var LevelScale = []CampaignLevel{
	{Name: "Guru", MinReferrals: 100, MinEarned: 10000},
	{Name: "Master", MinReferrals: 75, MinEarned: 7500},
	{Name: "Pro", MinReferrals: 50, MinEarned: 5000},
	{Name: "Amateur", MinReferrals: 20, MinEarned: 2000},
	{Name: "Novice", MinReferrals: 0, MinEarned: 0},
}

// CalcLevel returns the first tier, from highest to lowest, whose referral
// and lifetime-earned minimums are both satisfied.
func CalcLevel(referrals, totalEarned int) string {
	for _, lvl := range LevelScale {
		if referrals >= lvl.MinReferrals && totalEarned >= lvl.MinEarned {
			return lvl.Name
		}
	}

	return LevelScale[len(LevelScale)-1].Name
}
