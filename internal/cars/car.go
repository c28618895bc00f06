// Package cars holds the vehicle model, the lookup source, and the
// purchase-recommendation heuristic.
package cars

import "time"

// Recommendation is the purchase verdict for an evaluated car.
type Recommendation string

const (
	GoodInvestment Recommendation = "GoodInvestment"
	Acceptable     Recommendation = "Acceptable"
	RiskyPurchase  Recommendation = "RiskyPurchase"
)

// Summary returns the one-line reading of the verdict shown to the user.
func (r Recommendation) Summary() string {
	switch r {
	case GoodInvestment:
		return "Good investment: low mileage, no known issues, few previous owners."
	case Acceptable:
		return "Acceptable: moderate mileage, some known issues, a few previous owners, or middle age."
	case RiskyPurchase:
		return "Risky purchase: high mileage, multiple known issues, many previous owners, or older age."
	}
	return "Unknown"
}

// Car is a vehicle record. It serializes to the cars JSON document.
type Car struct {
	RegNumber       string         `json:"regNumber"`
	Brand           string         `json:"brand"`
	Model           string         `json:"model"`
	Year            int            `json:"year"`
	Mileage         int            `json:"mileage"`
	Owners          int            `json:"owners"`
	InsuranceClaims int            `json:"insuranceClaims"`
	KnownIssues     []string       `json:"knownIssues"`
	Recommendation  Recommendation `json:"recommendation"`
	EvaluatedAt     time.Time      `json:"evaluatedAt"`
}

// Age returns the car's age in years as of now.
func (c *Car) Age(now time.Time) int {
	return now.Year() - c.Year
}

// Evaluate applies the recommendation heuristic, records the verdict and
// evaluation time on the car, and returns the verdict.
//
// Tiers, checked in order:
//   - RiskyPurchase: mileage over 200000 km AND more than two known issues
//     AND more than four owners AND older than ten years.
//   - Acceptable: mileage over 150000 km OR more than one known issue OR
//     more than two owners OR older than five years.
//   - GoodInvestment: everything else.
func (c *Car) Evaluate(now time.Time) Recommendation {
	age := c.Age(now)
	switch {
	case c.Mileage > 200000 && len(c.KnownIssues) > 2 && c.Owners > 4 && age > 10:
		c.Recommendation = RiskyPurchase
	case c.Mileage > 150000 || len(c.KnownIssues) > 1 || c.Owners > 2 || age > 5:
		c.Recommendation = Acceptable
	default:
		c.Recommendation = GoodInvestment
	}
	c.EvaluatedAt = now.UTC()
	return c.Recommendation
}
