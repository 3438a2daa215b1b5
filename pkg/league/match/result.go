package match

import (
	"errors"
	"math"

	"laptudirm.com/x/league/pkg/league/game"
)

// Result represents the result of a single match from the home seat's
// point of view.
type Result int

const (
	Win  Result = +1
	Draw Result = 0
	Loss Result = -1
)

// String returns a string representation of the given Result.
func (result Result) String() string {
	switch result {
	case Win:
		return "1-0"
	case Draw:
		return "1/2-1/2"
	case Loss:
		return "0-1"
	default:
		return "?-?"
	}
}

// ErrNoGames is returned when aggregating a match in which no game was
// recorded.
var ErrNoGames = errors.New("match: no games recorded")

// Summary aggregates the games of a single match.
type Summary struct {
	Games int

	SeatOneWins int
	SeatTwoWins int
	Draws       int
	Forfeits    int

	// Differentials holds seat one's score minus seat two's score for
	// every game, in the order the games were played.
	Differentials []int
}

// Add folds the result of another game into the summary.
func (summary *Summary) Add(result *game.Result) {
	summary.Games++

	switch result.Winner {
	case game.SeatOneWins:
		summary.SeatOneWins++
	case game.SeatTwoWins:
		summary.SeatTwoWins++
	default:
		summary.Draws++
	}

	if result.Forfeit != 0 {
		summary.Forfeits++
	}

	summary.Differentials = append(summary.Differentials, result.Difference)
}

// Result returns the result of the match for seat one.
func (summary Summary) Result() Result {
	switch {
	case summary.SeatOneWins > summary.SeatTwoWins:
		return Win
	case summary.SeatTwoWins > summary.SeatOneWins:
		return Loss
	default:
		return Draw
	}
}

// MeanDifferential returns the mean per-game score differential rounded
// first to three and then to two decimal places, rounding halves to even.
func (summary Summary) MeanDifferential() (float64, error) {
	if len(summary.Differentials) == 0 {
		return 0, ErrNoGames
	}

	total := 0
	for _, difference := range summary.Differentials {
		total += difference
	}

	mean := float64(total) / float64(len(summary.Differentials))
	return roundTo(roundTo(mean, 3), 2), nil
}

// roundTo rounds x to the given number of decimal places, halves to even.
func roundTo(x float64, places int) float64 {
	scale := math.Pow10(places)
	return math.RoundToEven(x*scale) / scale
}

// WinRatio returns the fraction of games won by the given seat.
func (summary Summary) WinRatio(seat game.Seat) (float64, error) {
	if summary.Games == 0 {
		return 0, ErrNoGames
	}

	wins := summary.SeatOneWins
	if seat == game.SeatTwo {
		wins = summary.SeatTwoWins
	}

	return float64(wins) / float64(summary.Games), nil
}
