package match_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"laptudirm.com/x/league/pkg/league/game"
	"laptudirm.com/x/league/pkg/league/game/gametest"
	"laptudirm.com/x/league/pkg/league/match"
	"laptudirm.com/x/league/pkg/league/player"
	"laptudirm.com/x/league/pkg/league/schedule"
	"laptudirm.com/x/league/pkg/league/stats"
)

// scripted returns a NewState which plays the given final scores in order.
func scripted(finals ...[2]int) func() (game.State, error) {
	next := 0
	return func() (game.State, error) {
		final := finals[next%len(finals)]
		next++
		return gametest.NewState(4, final[0], final[1]), nil
	}
}

func TestRunRecordsEveryGame(t *testing.T) {
	recorder := stats.NewRecorder([]string{"Alpha", "Beta"})

	summary, err := match.Run(context.Background(), &match.Config{
		FixtureSet: 1,
		Pairing:    schedule.Pairing{Home: 0, Away: 1},
		Games:      3,
		Players:    [2]game.Chooser{gametest.Random, gametest.Random},
		NewState:   scripted([2]int{10, 4}, [2]int{6, 6}, [2]int{3, 8}),
	}, recorder)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if recorder.Len() != 6 {
		t.Errorf("recorder.Len() = %d; want 6", recorder.Len())
	}

	if summary.Games != 3 || summary.SeatOneWins != 1 || summary.SeatTwoWins != 1 || summary.Draws != 1 {
		t.Errorf("summary = %+v; want 3 games, 1 win each and 1 draw", summary)
	}
	if summary.Result() != match.Draw {
		t.Errorf("Result() = %v; want %v", summary.Result(), match.Draw)
	}

	mean, err := summary.MeanDifferential()
	if err != nil {
		t.Fatalf("MeanDifferential returned error: %v", err)
	}
	if mean != 0.33 {
		t.Errorf("MeanDifferential() = %v; want 0.33", mean)
	}
}

func TestRunForfeitCountsGame(t *testing.T) {
	recorder := stats.NewRecorder([]string{"Alpha", "Beta"})

	summary, err := match.Run(context.Background(), &match.Config{
		Pairing:  schedule.Pairing{Home: 0, Away: 1},
		Games:    2,
		Players:  [2]game.Chooser{gametest.Stalling, gametest.Random},
		NewState: scripted([2]int{5, 0}),
		Options:  game.Options{MoveTimeout: 10 * time.Millisecond},
	}, recorder)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if summary.Forfeits != 2 || summary.SeatTwoWins != 2 {
		t.Errorf("summary = %+v; want 2 forfeits won by seat two", summary)
	}
	if summary.Result() != match.Loss {
		t.Errorf("Result() = %v; want %v", summary.Result(), match.Loss)
	}
	if recorder.Len() != 4 {
		t.Errorf("recorder.Len() = %d; want 4", recorder.Len())
	}
}

func TestRunTimedOutPlayerPlaysAgain(t *testing.T) {
	in, keyboard := io.Pipe()
	defer keyboard.Close()

	human := player.NewHumanPlayer(player.Identity{Name: "Alpha"}, in, nil, 0)
	recorder := stats.NewRecorder([]string{"Alpha", "Beta"})

	summary, err := match.Run(context.Background(), &match.Config{
		Pairing:  schedule.Pairing{Home: 0, Away: 1},
		Games:    3,
		Players:  [2]game.Chooser{human, gametest.Random},
		NewState: scripted([2]int{2, 1}),
		Options:  game.Options{MoveTimeout: 20 * time.Millisecond},
	}, recorder)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if summary.Games != 3 || summary.Forfeits != 3 || summary.SeatTwoWins != 3 {
		t.Errorf("summary = %+v; want 3 games forfeited by seat one", summary)
	}
	if recorder.Len() != 6 {
		t.Errorf("recorder.Len() = %d; want 6", recorder.Len())
	}

	// input typed after the match goes to the next move
	go keyboard.Write([]byte("m0\n"))

	decision, err := human.ChooseAction(context.Background(), gametest.NewState(2, 0, 0))
	if err != nil {
		t.Fatalf("ChooseAction returned error: %v", err)
	}
	if decision.Move.String() != "m0" {
		t.Errorf("move = %s; want m0", decision.Move)
	}
}

func TestMeanDifferentialRounding(t *testing.T) {
	tests := []struct {
		name          string
		differentials []int
		want          float64
	}{
		{"half rounds to even", []int{1, 0, 0, 0, 0, 0, 0, 0}, 0.12},
		{"negative half", []int{-1, 0, 0, 0, 0, 0, 0, 0}, -0.12},
		{"three eighths", []int{3, 0, 0, 0, 0, 0, 0, 0}, 0.38},
		{"thirds", []int{1, 0, 0}, 0.33},
		{"whole", []int{4, 2}, 3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var summary match.Summary
			for _, difference := range test.differentials {
				summary.Add(&game.Result{Winner: game.Draw, Difference: difference})
			}

			mean, err := summary.MeanDifferential()
			if err != nil {
				t.Fatalf("MeanDifferential returned error: %v", err)
			}
			if mean != test.want {
				t.Errorf("MeanDifferential(%v) = %v; want %v", test.differentials, mean, test.want)
			}
		})
	}
}

func TestRunAborts(t *testing.T) {
	tests := []struct {
		name     string
		players  [2]game.Chooser
		newState func() (game.State, error)
	}{
		{
			name:     "player fault",
			players:  [2]game.Chooser{gametest.Random, gametest.Failing(gametest.ErrScripted)},
			newState: scripted([2]int{1, 0}),
		},
		{
			name:    "state fault",
			players: [2]game.Chooser{gametest.Random, gametest.Random},
			newState: func() (game.State, error) {
				return nil, gametest.ErrScripted
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			recorder := stats.NewRecorder([]string{"Alpha", "Beta"})

			summary, err := match.Run(context.Background(), &match.Config{
				FixtureSet: 2,
				Pairing:    schedule.Pairing{Home: 1, Away: 0},
				Games:      2,
				Players:    test.players,
				NewState:   test.newState,
			}, recorder)

			var aborted *match.AbortedError
			if !errors.As(err, &aborted) {
				t.Fatalf("Run error = %v; want *match.AbortedError", err)
			}
			if aborted.FixtureSet != 2 || aborted.Game != 1 {
				t.Errorf("aborted at set %d game %d; want set 2 game 1", aborted.FixtureSet, aborted.Game)
			}
			if !errors.Is(err, gametest.ErrScripted) {
				t.Errorf("Run error = %v; want it to wrap %v", err, gametest.ErrScripted)
			}
			if summary.Games != 0 {
				t.Errorf("summary.Games = %d; want 0", summary.Games)
			}
			if recorder.Len() != 0 {
				t.Errorf("recorder.Len() = %d; want 0", recorder.Len())
			}
		})
	}
}

func TestSummary(t *testing.T) {
	var empty match.Summary
	if _, err := empty.MeanDifferential(); !errors.Is(err, match.ErrNoGames) {
		t.Errorf("empty MeanDifferential error = %v; want %v", err, match.ErrNoGames)
	}
	if _, err := empty.WinRatio(game.SeatOne); !errors.Is(err, match.ErrNoGames) {
		t.Errorf("empty WinRatio error = %v; want %v", err, match.ErrNoGames)
	}

	var summary match.Summary
	for i := 0; i < 7; i++ {
		summary.Add(&game.Result{Winner: game.SeatOneWins, Difference: 3})
	}
	for i := 0; i < 3; i++ {
		summary.Add(&game.Result{Winner: game.SeatTwoWins, Difference: -2})
	}

	if ratio, _ := summary.WinRatio(game.SeatOne); ratio != 0.7 {
		t.Errorf("WinRatio(SeatOne) = %v; want 0.7", ratio)
	}
	if ratio, _ := summary.WinRatio(game.SeatTwo); ratio != 0.3 {
		t.Errorf("WinRatio(SeatTwo) = %v; want 0.3", ratio)
	}
	if mean, _ := summary.MeanDifferential(); mean != 1.5 {
		t.Errorf("MeanDifferential() = %v; want 1.5", mean)
	}
	if summary.Result() != match.Win {
		t.Errorf("Result() = %v; want %v", summary.Result(), match.Win)
	}
}
