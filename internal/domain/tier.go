package domain

// Tier is a gamification label derived from accumulated points.
type Tier string

const (
	TierBronze   Tier = "Bronze"
	TierSilver   Tier = "Silver"
	TierGold     Tier = "Gold"
	TierPlatinum Tier = "Platinum"
)

// Tiers in ascending order.
var Tiers = []Tier{TierBronze, TierSilver, TierGold, TierPlatinum}

// Minimum points for each tier above Bronze.
const (
	SilverThreshold   = 250
	GoldThreshold     = 750
	PlatinumThreshold = 1500
)

// TierForPoints derives the tier of a points counter.
func TierForPoints(points int) Tier {
	switch {
	case points >= PlatinumThreshold:
		return TierPlatinum
	case points >= GoldThreshold:
		return TierGold
	case points >= SilverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

// Rank is the position of t in Tiers, or -1 for unknown tiers.
func (t Tier) Rank() int {
	for i, tier := range Tiers {
		if tier == t {
			return i
		}
	}
	return -1
}

// Unlocks reports whether a user at tier t may claim something gated at required.
func (t Tier) Unlocks(required Tier) bool {
	return t.Rank() >= required.Rank() && required.Rank() >= 0
}

// Perk is a reward unlocked by reaching a tier.
type Perk struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tier        Tier   `json:"tier"`
}

// Perks is the catalog shown on the dashboard.
var Perks = []Perk{
	{ID: 1, Title: "Free .xyz Domain", Description: "Get a free .xyz domain for a year, sponsored by XYZ.", Tier: TierSilver},
	{ID: 2, Title: "Exclusive REvamp T-Shirt", Description: "Show off your community pride with a branded T-shirt.", Tier: TierGold},
	{ID: 3, Title: "1-on-1 Mentorship Session", Description: "Get career advice from an industry expert.", Tier: TierGold},
	{ID: 4, Title: "Guaranteed Internship Interview", Description: "An interview with one of our partner companies.", Tier: TierPlatinum},
}
