package market

import (
	"time"

	"github.com/pkg/errors"
)

var ErrInvalidSchedule = errors.New("invalid schedule")

// Schedule fixes the dates a valuation is run against.
type Schedule struct {
	EvaluationDate time.Time
	SettlementDays int
	Maturity       time.Time
	// ExerciseMonths are offsets from settlement for Bermudan exercise.
	ExerciseMonths []int
	Calendar       Calendar
	DayCounter     DayCounter
}

// DefaultSchedule is the one-year contract evaluated on 15 May 2021.
func DefaultSchedule() Schedule {
	return Schedule{
		EvaluationDate: Date(2021, time.May, 15),
		SettlementDays: 2,
		Maturity:       Date(2022, time.May, 17),
		ExerciseMonths: []int{3, 6, 9, 12},
		Calendar:       Target{},
		DayCounter:     Actual365Fixed{},
	}
}

// Environment is the full market context of one valuation. The evaluation
// date travels with it, nothing is kept in package state.
type Environment struct {
	Scenario       Scenario
	EvaluationDate time.Time
	Settlement     time.Time
	Maturity       time.Time
	BermudanDates  []time.Time
	Calendar       Calendar
	DayCounter     DayCounter
	RiskFree       *FlatForward
	Dividend       *FlatForward
	Volatility     *BlackConstantVol
}

// BuildEnvironment anchors curves and vol at the settlement date and lays
// out the exercise schedule. Rates and volatility are taken as given.
func BuildEnvironment(s Scenario, sched Schedule) (*Environment, error) {
	if sched.Calendar == nil {
		sched.Calendar = Target{}
	}
	if sched.DayCounter == nil {
		sched.DayCounter = Actual365Fixed{}
	}
	if sched.SettlementDays < 0 {
		return nil, errors.Wrapf(ErrInvalidSchedule, "negative settlement lag %d", sched.SettlementDays)
	}

	eval := normalize(sched.EvaluationDate)
	settlement := AddDays(eval, sched.SettlementDays)
	maturity := normalize(sched.Maturity)
	if !maturity.After(settlement) {
		return nil, errors.Wrapf(ErrInvalidSchedule, "maturity %s is not after settlement %s",
			maturity.Format("2006-01-02"), settlement.Format("2006-01-02"))
	}

	dates := make([]time.Time, 0, len(sched.ExerciseMonths))
	for _, months := range sched.ExerciseMonths {
		d := Adjust(sched.Calendar, AddMonths(settlement, months))
		if d.Before(settlement) || d.After(maturity) {
			return nil, errors.Wrapf(ErrInvalidSchedule, "exercise date %s outside [%s, %s]",
				d.Format("2006-01-02"), settlement.Format("2006-01-02"), maturity.Format("2006-01-02"))
		}
		if n := len(dates); n > 0 && !d.After(dates[n-1]) {
			return nil, errors.Wrapf(ErrInvalidSchedule, "exercise date %s is not increasing", d.Format("2006-01-02"))
		}
		dates = append(dates, d)
	}

	return &Environment{
		Scenario:       s,
		EvaluationDate: eval,
		Settlement:     settlement,
		Maturity:       maturity,
		BermudanDates:  dates,
		Calendar:       sched.Calendar,
		DayCounter:     sched.DayCounter,
		RiskFree:       NewFlatForward(settlement, s.RiskFreeRate, sched.DayCounter),
		Dividend:       NewFlatForward(settlement, s.DividendYield, sched.DayCounter),
		Volatility:     NewBlackConstantVol(settlement, s.Volatility, sched.DayCounter),
	}, nil
}

// Spot is the quoted underlying price.
func (e *Environment) Spot() float64 { return e.Scenario.Underlying }

// TimeTo is the year fraction from settlement to d.
func (e *Environment) TimeTo(d time.Time) float64 {
	return e.DayCounter.YearFraction(e.Settlement, d)
}
