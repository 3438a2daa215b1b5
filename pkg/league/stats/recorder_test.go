package stats_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"laptudirm.com/x/league/pkg/league/game"
	"laptudirm.com/x/league/pkg/league/game/gametest"
	"laptudirm.com/x/league/pkg/league/schedule"
	"laptudirm.com/x/league/pkg/league/stats"
)

func play(t *testing.T, state *gametest.State) *game.Result {
	t.Helper()

	players := [2]game.Chooser{gametest.Random, gametest.Random}
	result, err := game.Run(context.Background(), players, state, game.Options{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	return result
}

func TestRecordAppendsBothSeats(t *testing.T) {
	state := gametest.NewState(4, 20, 11)
	state.Features = [2]game.FeatureScores{{8, 2, 0, 0, 1, 0, 9}, {4, 4, 3, 0, 0, 0, 0}}
	state.Meeples = map[int]*game.Placement{
		0: {Feature: game.City},
		1: {Feature: game.Monastery},
		2: {Feature: game.Road},
	}

	recorder := stats.NewRecorder([]string{"Alpha", "Beta", "Gamma"})
	recorder.Record(stats.Key{
		FixtureSet: 3,
		Game:       2,
		Pairing:    schedule.Pairing{Home: 2, Away: 0},
	}, play(t, state))

	rows := recorder.Rows()
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d; want 2", len(rows))
	}

	one, two := rows[0], rows[1]

	if one.Player != "Gamma" || one.Opponent != "Alpha" {
		t.Errorf("row one = %s vs %s; want Gamma vs Alpha", one.Player, one.Opponent)
	}
	if two.Player != "Alpha" || two.Opponent != "Gamma" {
		t.Errorf("row two = %s vs %s; want Alpha vs Gamma", two.Player, two.Opponent)
	}

	if one.Result != game.SeatOneWins || !one.Win || one.Loss || one.Draw {
		t.Errorf("row one result = %d (W%v L%v D%v); want a win", one.Result, one.Win, one.Loss, one.Draw)
	}
	if two.Result != game.SeatTwoWins || two.Win || !two.Loss || two.Draw {
		t.Errorf("row two result = %d (W%v L%v D%v); want a loss", two.Result, two.Win, two.Loss, two.Draw)
	}

	if one.PlayerScore != 20 || one.OpponentScore != 11 {
		t.Errorf("row one scores = %d-%d; want 20-11", one.PlayerScore, one.OpponentScore)
	}
	if two.PlayerScore != 11 || two.OpponentScore != 20 {
		t.Errorf("row two scores = %d-%d; want 11-20", two.PlayerScore, two.OpponentScore)
	}
	if two.Features != state.Features[1] || two.OpponentFeatures != state.Features[0] {
		t.Errorf("row two features = %v / %v; want %v / %v",
			two.Features, two.OpponentFeatures, state.Features[1], state.Features[0])
	}

	if one.MeeplesPlayed != 2 || two.MeeplesPlayed != 1 {
		t.Errorf("meeples = %d, %d; want 2, 1", one.MeeplesPlayed, two.MeeplesPlayed)
	}
	if got := one.MeepleTurns; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("row one meeple turns = %v; want [1 2]", got)
	}
	if got := two.MeepleFeatures; len(got) != 1 || got[0] != game.Monastery {
		t.Errorf("row two meeple features = %v; want [Monastery]", got)
	}

	if one.Turns != 2 || two.Turns != 2 {
		t.Errorf("turns = %d, %d; want 2, 2", one.Turns, two.Turns)
	}
	if one.FixtureSet != 3 || one.Game != 2 || two.FixtureSet != 3 || two.Game != 2 {
		t.Errorf("keys = (%d, %d), (%d, %d); want (3, 2) twice", one.FixtureSet, one.Game, two.FixtureSet, two.Game)
	}
}

func TestRowsAreCopies(t *testing.T) {
	state := gametest.NewState(4, 3, 1)
	state.Meeples = map[int]*game.Placement{0: {Feature: game.City}}

	recorder := stats.NewRecorder([]string{"Alpha", "Beta"})
	recorder.Record(stats.Key{Game: 1, Pairing: schedule.Pairing{Home: 0, Away: 1}}, play(t, state))

	rows := recorder.Rows()
	rows[0].MeepleTurns[0] = 99
	rows[0].MeepleFeatures[0] = game.Farm
	rows[0].Player = "Mallory"

	again := recorder.Rows()[0]
	if again.MeepleTurns[0] != 1 {
		t.Errorf("stored meeple turn = %d; want 1", again.MeepleTurns[0])
	}
	if again.MeepleFeatures[0] != game.City {
		t.Errorf("stored meeple feature = %v; want %v", again.MeepleFeatures[0], game.City)
	}
	if again.Player != "Alpha" {
		t.Errorf("stored player = %s; want Alpha", again.Player)
	}
}

func TestRecordDraw(t *testing.T) {
	recorder := stats.NewRecorder([]string{"Alpha", "Beta"})
	recorder.Record(stats.Key{Game: 1, Pairing: schedule.Pairing{Home: 0, Away: 1}}, play(t, gametest.NewState(2, 5, 5)))

	for i, row := range recorder.Rows() {
		if row.Result != game.Draw || !row.Draw || row.Win || row.Loss {
			t.Errorf("row %d result = %d (W%v L%v D%v); want a draw", i, row.Result, row.Win, row.Loss, row.Draw)
		}
	}
}

func TestRecordForfeit(t *testing.T) {
	players := [2]game.Chooser{gametest.Random, gametest.Stalling}
	result, err := game.Run(context.Background(), players, gametest.NewState(4, 9, 2), game.Options{
		MoveTimeout: 10 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("Run returned no error; want a forfeit")
	}

	recorder := stats.NewRecorder([]string{"Alpha", "Beta"})
	recorder.Record(stats.Key{Game: 1, Pairing: schedule.Pairing{Home: 0, Away: 1}}, result)

	rows := recorder.Rows()
	if rows[0].Forfeit || !rows[1].Forfeit {
		t.Errorf("forfeits = %v, %v; want false, true", rows[0].Forfeit, rows[1].Forfeit)
	}
	if !rows[0].Win || !rows[1].Loss {
		t.Errorf("row results = %d, %d; want seat one to win", rows[0].Result, rows[1].Result)
	}
}

func TestRecorderConcurrent(t *testing.T) {
	const games = 64

	recorder := stats.NewRecorder([]string{"Alpha", "Beta"})
	result := play(t, gametest.NewState(2, 1, 0))

	var wg sync.WaitGroup
	for i := 0; i < games; i++ {
		wg.Add(1)
		go func(number int) {
			defer wg.Done()
			recorder.Record(stats.Key{Game: number, Pairing: schedule.Pairing{Home: 0, Away: 1}}, result)
		}(i + 1)
	}
	wg.Wait()

	if recorder.Len() != 2*games {
		t.Fatalf("Len() = %d; want %d", recorder.Len(), 2*games)
	}

	rows := recorder.Rows()
	for i := 0; i < len(rows); i += 2 {
		if rows[i].Game != rows[i+1].Game || rows[i].Seat != game.SeatOne || rows[i+1].Seat != game.SeatTwo {
			t.Fatalf("rows %d and %d are not a seat one/seat two pair of one game", i, i+1)
		}
	}
}

func TestTable(t *testing.T) {
	state := gametest.NewState(2, 7, 3)
	state.Meeples = map[int]*game.Placement{0: {Feature: game.Farm}}

	recorder := stats.NewRecorder([]string{"Alpha", "Beta"})
	recorder.Record(stats.Key{FixtureSet: 1, Game: 1, Pairing: schedule.Pairing{Home: 1, Away: 0}}, play(t, state))

	header := stats.Header()
	if len(header) != 10+2*int(game.FeatureCategoryN)+6 {
		t.Fatalf("len(Header()) = %d; want %d", len(header), 10+2*int(game.FeatureCategoryN)+6)
	}

	column := make(map[string]int, len(header))
	for i, name := range header {
		column[name] = i
	}

	table := recorder.Table()
	if len(table) != 2 {
		t.Fatalf("len(Table()) = %d; want 2", len(table))
	}

	for i, record := range table {
		if len(record) != len(header) {
			t.Errorf("len(Table()[%d]) = %d; want %d", i, len(record), len(header))
		}
	}

	tests := []struct {
		column string
		row    int
		want   string
	}{
		{"Player", 0, "Beta"},
		{"Opponent", 0, "Alpha"},
		{"Result", 0, "1"},
		{"Result", 1, "2"},
		{"Win", 0, "1"},
		{"Loss", 1, "1"},
		{"PlayerScore", 1, "3"},
		{"MeepleTurns", 0, "[1]"},
		{"MeepleFeatures", 0, "[G]"},
		{"MeepleTurns", 1, "[]"},
		{"Forfeit", 0, "0"},
	}

	for _, test := range tests {
		t.Run(test.column, func(t *testing.T) {
			if got := table[test.row][column[test.column]]; got != test.want {
				t.Errorf("%s of row %d = %q; want %q", test.column, test.row, got, test.want)
			}
		})
	}

	if !strings.HasPrefix(header[10], "CompleteCity") {
		t.Errorf("header[10] = %q; want the first feature column", header[10])
	}
}
