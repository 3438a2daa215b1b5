package schedule

import (
	"errors"
	"fmt"
)

// Seat is the index of a competitor in the tournament's competitor list.
type Seat int

// Bye is the seat of the synthetic competitor which pads an odd field to an
// even one. Pairings against it are scheduled but never played. It can not
// collide with a real competitor since those are always non-negative.
const Bye Seat = -1

func (seat Seat) IsBye() bool {
	return seat == Bye
}

// Pairing is a single leg between two seats, the Home seat moving first.
type Pairing struct {
	Home, Away Seat
}

// IsBye reports whether either side of the pairing is the bye.
func (pairing Pairing) IsBye() bool {
	return pairing.Home.IsBye() || pairing.Away.IsBye()
}

// Reverse returns the other leg of the pairing.
func (pairing Pairing) Reverse() Pairing {
	return Pairing{Home: pairing.Away, Away: pairing.Home}
}

// FixtureSet is a batch of pairings in which every competitor appears once.
type FixtureSet []Pairing

// Schedule is the ordered list of fixture sets of a tournament.
type Schedule []FixtureSet

// Pairings returns the total number of pairing slots in the schedule,
// including those against the bye.
func (schedule Schedule) Pairings() int {
	total := 0
	for _, set := range schedule {
		total += len(set)
	}

	return total
}

// Matches returns the number of pairings which will actually be played.
func (schedule Schedule) Matches() int {
	total := 0
	for _, set := range schedule {
		for _, pairing := range set {
			if !pairing.IsBye() {
				total++
			}
		}
	}

	return total
}

var ErrTooFewCompetitors = errors.New("schedule: too few competitors")

// ScheduleError is returned when no schedule can be made for a field.
type ScheduleError struct {
	Competitors int
}

func (err *ScheduleError) Error() string {
	return fmt.Sprintf("schedule: need at least 2 competitors, got %d", err.Competitors)
}

func (err *ScheduleError) Unwrap() error {
	return ErrTooFewCompetitors
}
