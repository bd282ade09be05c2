// Package pricing holds the subscription rate formulas: a weekly rate of 0.1%
// of target salary, discounted by commitment length, with a floor.
package pricing

import "fmt"

type Commitment string

const (
	Weekly    Commitment = "weekly"
	Monthly   Commitment = "monthly"
	Quarterly Commitment = "quarterly"
)

const (
	// WeeklyPercentage is the base rate: 0.1% of target salary per week.
	WeeklyPercentage = 0.001

	// MinimumWeekly is the floor in dollars regardless of salary.
	MinimumWeekly = 25.0

	// WeeksPerMonth converts a weekly rate into the advertised monthly one.
	WeeksPerMonth = 4.33
)

var discounts = map[Commitment]float64{
	Weekly:    0,
	Monthly:   0.15,
	Quarterly: 0.25,
}

// Quote is the full pricing breakdown for one target salary and commitment.
type Quote struct {
	TargetSalary  float64    `json:"targetSalary"`
	Commitment    Commitment `json:"commitment"`
	WeeklyRate    float64    `json:"weeklyRate"`
	MonthlyRate   float64    `json:"monthlyRate"`
	AnnualSavings float64    `json:"annualSavings"`
	Message       string     `json:"message"`
}

// Calculate prices a subscription. Unknown commitments fall back to weekly,
// mirroring the marketing endpoint's forgiving behavior.
func Calculate(targetSalary float64, commitment Commitment) Quote {
	discount, ok := discounts[commitment]
	if !ok {
		commitment = Weekly
		discount = 0
	}

	base := targetSalary * WeeklyPercentage
	weekly := base * (1 - discount)
	if weekly < MinimumWeekly {
		weekly = MinimumWeekly
	}

	return Quote{
		TargetSalary:  targetSalary,
		Commitment:    commitment,
		WeeklyRate:    weekly,
		MonthlyRate:   weekly * WeeksPerMonth,
		AnnualSavings: base * discount * 52,
		Message:       fmt.Sprintf("Invest just $%.0f/week to land your $%.0f role", weekly, targetSalary),
	}
}

// WeeklyRate is the undiscounted signup rate used in welcome messaging.
func WeeklyRate(targetSalary float64) float64 {
	return targetSalary * WeeklyPercentage
}
