// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stats

import "math"

// Performance is the game level record of a single competitor.
type Performance struct {
	Player string

	Wins, Draws, Losses int
	Forfeits            int
}

// Games returns the number of games played.
func (performance Performance) Games() int {
	return performance.Wins + performance.Draws + performance.Losses
}

// Elo returns the competitor's elo relative to the field along with its
// p < 0.05 lower and upper bounds.
func (performance Performance) Elo() (muMin, mu, muMax float64) {
	return Elo(performance.Wins, performance.Draws, performance.Losses)
}

// Performances tallies the recorded rows per competitor, in the order the
// competitors were given to NewRecorder.
func (recorder *Recorder) Performances() []Performance {
	performances := make([]Performance, len(recorder.names))
	index := make(map[string]int, len(recorder.names))
	for i, name := range recorder.names {
		performances[i].Player = name
		index[name] = i
	}

	for _, row := range recorder.Rows() {
		i, found := index[row.Player]
		if !found {
			continue
		}

		performance := &performances[i]
		switch {
		case row.Win:
			performance.Wins++
		case row.Loss:
			performance.Losses++
		default:
			performance.Draws++
		}

		if row.Forfeit {
			performance.Forfeits++
		}
	}

	return performances
}

// Elo returns the likely elo of the target player along with its p < 0.05
// lower and upper bounds, called mu, muMin, and muMax respectively.
func Elo(ws, ds, ls int) (muMin float64, mu float64, muMax float64) {
	N := float64(ws + ds + ls) // total number of games

	if N == 0 {
		return 0, 0, 0
	}

	w := float64(ws) / N // measured win probability
	d := float64(ds) / N // measured draw probability
	l := float64(ls) / N // measured loss probability

	// empirical mean of random variable
	mu = w + d/2

	// standard deviation of the random variable
	sigma := math.Sqrt(w*math.Pow(1-mu, 2)+d*math.Pow(0.5-mu, 2)+l*math.Pow(0-mu, 2)) / math.Sqrt(N)

	muMin = mu + phiInv(0.025)*sigma // lower bound
	muMax = mu + phiInv(0.975)*sigma // upper bound

	return clampElo(muMin), clampElo(mu), clampElo(muMax)
}

// EloLimit bounds the reported elo, which is infinite for a competitor
// who won or lost every game.
const EloLimit = 1000

func clampElo(x float64) float64 {
	switch {
	case x <= 0:
		return -EloLimit
	case x >= 1:
		return EloLimit

	default:
		return max(-EloLimit, min(EloLimit, -400*math.Log10(1/x-1)))
	}
}

func phiInv(p float64) float64 {
	return math.Sqrt2 * math.Erfinv(2*p-1)
}
