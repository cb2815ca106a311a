package instruments

import (
	"sort"
	"time"

	"github.com/pkg/errors"
)

var ErrInvalidExercise = errors.New("invalid exercise")

type OptionType int

const (
	Put OptionType = iota
	Call
)

func (t OptionType) String() string {
	if t == Call {
		return "Call"
	}
	return "Put"
}

// PlainVanillaPayoff pays max(S-K, 0) for calls and max(K-S, 0) for puts.
type PlainVanillaPayoff struct {
	Type   OptionType
	Strike float64
}

type ExerciseKind int

const (
	European ExerciseKind = iota
	Bermudan
	American
)

// ExerciseKinds lists the styles in report column order.
var ExerciseKinds = []ExerciseKind{European, Bermudan, American}

func (k ExerciseKind) String() string {
	switch k {
	case European:
		return "European"
	case Bermudan:
		return "Bermudan"
	case American:
		return "American"
	}
	return "Unknown"
}

// Exercise holds the dates on which an option may be exercised. American
// exercise keeps the two ends of its window.
type Exercise struct {
	kind  ExerciseKind
	dates []time.Time
}

func NewEuropeanExercise(expiry time.Time) Exercise {
	return Exercise{kind: European, dates: []time.Time{expiry}}
}

func NewBermudanExercise(dates []time.Time) (Exercise, error) {
	if len(dates) == 0 {
		return Exercise{}, errors.Wrap(ErrInvalidExercise, "bermudan exercise needs at least one date")
	}
	sorted := make([]time.Time, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
	return Exercise{kind: Bermudan, dates: sorted}, nil
}

func NewAmericanExercise(earliest, latest time.Time) (Exercise, error) {
	if latest.Before(earliest) {
		return Exercise{}, errors.Wrapf(ErrInvalidExercise, "american window ends %s before it starts %s",
			latest.Format("2006-01-02"), earliest.Format("2006-01-02"))
	}
	return Exercise{kind: American, dates: []time.Time{earliest, latest}}, nil
}

func (e Exercise) Kind() ExerciseKind { return e.kind }

// Dates returns a copy of the exercise dates.
func (e Exercise) Dates() []time.Time {
	out := make([]time.Time, len(e.dates))
	copy(out, e.dates)
	return out
}

func (e Exercise) LastDate() time.Time {
	if len(e.dates) == 0 {
		return time.Time{}
	}
	return e.dates[len(e.dates)-1]
}

// VanillaOption is a single-asset option with a plain vanilla payoff.
type VanillaOption struct {
	Payoff   PlainVanillaPayoff
	Exercise Exercise
}

func NewVanillaOption(payoff PlainVanillaPayoff, exercise Exercise) VanillaOption {
	return VanillaOption{Payoff: payoff, Exercise: exercise}
}

func (o VanillaOption) IsCall() bool { return o.Payoff.Type == Call }
