package tournament_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"laptudirm.com/x/league/pkg/league/game"
	"laptudirm.com/x/league/pkg/league/game/gametest"
	"laptudirm.com/x/league/pkg/league/player"
	"laptudirm.com/x/league/pkg/league/schedule"
	"laptudirm.com/x/league/pkg/league/tournament"
)

// broken is a player which fails on its first move.
type broken struct {
	game.Chooser
	identity player.Identity
}

func (p *broken) Name() string             { return p.identity.Name }
func (p *broken) IsAI() bool               { return true }
func (p *broken) Identity() player.Identity { return p.identity }

func init() {
	player.Register("broken", func(config player.Config, identity player.Identity) (player.Player, error) {
		return &broken{Chooser: gametest.Failing(gametest.ErrScripted), identity: identity}, nil
	})
}

func newTournament(t *testing.T, games int, names ...string) *tournament.Tournament {
	t.Helper()

	config := tournament.DefaultConfig()
	config.GamesPerMatch = games
	for _, name := range names {
		kind := player.Random
		if name == "Broken" {
			kind = "broken"
		}
		config.Players = append(config.Players, player.Config{Kind: kind, Name: name})
	}

	tour, err := tournament.NewTournament(config, &player.Factory{})
	if err != nil {
		t.Fatalf("NewTournament returned error: %v", err)
	}

	tour.Out = io.Discard
	return tour
}

func TestSeatOneSweeps(t *testing.T) {
	tour := newTournament(t, 2, "Alpha", "Beta")

	// seat one wins every game by 3
	tour.NewState = func(string) (game.State, error) {
		return gametest.NewState(2, 5, 2), nil
	}

	if err := tour.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	if got := tour.Stats().Len(); got != 8 {
		t.Errorf("Stats().Len() = %d; want 8", got)
	}

	for _, row := range tour.Standings() {
		if row.MatchesPlayed != 2 || row.Points != 5 || row.Wins != 1 || row.Losses != 1 || row.Draws != 0 {
			t.Errorf("%s = %+v; want 2 matches, 5 points, 1 win, 1 loss", row.Player, row)
		}
		if row.PD != 0 {
			t.Errorf("%s PD = %v; want 0", row.Player, row.PD)
		}
		if row.BonusWins != 1 {
			t.Errorf("%s BonusWins = %d; want 1", row.Player, row.BonusWins)
		}
	}
}

func TestOddField(t *testing.T) {
	tour := newTournament(t, 1, "Alpha", "Beta", "Gamma")
	tour.Config.Concurrency = 2

	if err := tour.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	matches := tour.Schedule().Matches()
	if matches != 6 {
		t.Fatalf("Schedule().Matches() = %d; want 6", matches)
	}

	if got := tour.Stats().Len(); got != 2*matches {
		t.Errorf("Stats().Len() = %d; want %d", got, 2*matches)
	}

	points := 0
	for i, row := range tour.Standings() {
		points += row.Points
		if row.MatchesPlayed != 4 {
			t.Errorf("%s played %d matches; want 4", row.Player, row.MatchesPlayed)
		}
		if row.Position != i+1 {
			t.Errorf("%s at index %d has position %d", row.Player, i, row.Position)
		}
	}

	if points < 4*matches || points > 5*matches {
		t.Errorf("total points = %d; want between %d and %d", points, 4*matches, 5*matches)
	}
}

func TestAbortedMatchesAreSkipped(t *testing.T) {
	tour := newTournament(t, 2, "Alpha", "Broken", "Gamma")

	if err := tour.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	if got := len(tour.Aborted()); got != 4 {
		t.Errorf("len(Aborted()) = %d; want 4", got)
	}

	for _, row := range tour.Standings() {
		want := 2
		if row.Player == "Broken" {
			want = 0
		}

		if row.MatchesPlayed != want {
			t.Errorf("%s played %d matches; want %d", row.Player, row.MatchesPlayed, want)
		}
	}

	if got := tour.Stats().Len(); got != 2*2*2 {
		t.Errorf("Stats().Len() = %d; want 8", got)
	}
}

func TestStartCanceled(t *testing.T) {
	tour := newTournament(t, 2, "Alpha", "Beta")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := tour.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Start error = %v; want %v", err, context.Canceled)
	}
}

func TestNewTournamentErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*tournament.Config)
		want   error
	}{
		{"one player", func(c *tournament.Config) {
			c.Players = c.Players[:1]
		}, schedule.ErrTooFewCompetitors},
		{"duplicate names", func(c *tournament.Config) {
			c.Players[1].Name = c.Players[0].Name
		}, tournament.ErrInvalidConfig},
		{"unknown game", func(c *tournament.Config) {
			c.Game = "go"
		}, tournament.ErrInvalidConfig},
		{"no games", func(c *tournament.Config) {
			c.GamesPerMatch = 0
		}, tournament.ErrInvalidConfig},
		{"unknown player kind", func(c *tournament.Config) {
			c.Players[0].Kind = "minimax"
		}, player.ErrUnknownKind},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := tournament.DefaultConfig()
			config.Players = []player.Config{{Name: "Alpha"}, {Name: "Beta"}}
			test.modify(&config)

			if _, err := tournament.NewTournament(config, &player.Factory{}); !errors.Is(err, test.want) {
				t.Errorf("NewTournament error = %v; want %v", err, test.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "league.yaml")
	data := `
event: Test League
game: chess
games-per-match: 4
concurrency: 2
move-timeout: 1500ms
players:
  - name: Alpha
  - name: Beta
    kind: mcts
    time-limit: 1s
    max-depth: 3
openings:
  order: random
output:
  sqlite: true
  s3-bucket: results
`
	if err := os.WriteFile(file, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := tournament.LoadConfig(file)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.Event != "Test League" || config.Game != "chess" || config.GamesPerMatch != 4 || config.Concurrency != 2 {
		t.Errorf("config = %+v; want the values from the file", config)
	}
	if config.MoveTimeout.Milliseconds() != 1500 {
		t.Errorf("MoveTimeout = %s; want 1.5s", config.MoveTimeout)
	}
	if len(config.Players) != 2 || config.Players[1].Kind != player.MCTS || config.Players[1].MaxDepth != 3 {
		t.Errorf("Players = %+v; want Alpha and an mcts Beta", config.Players)
	}
	if !config.Output.CSV || !config.Output.SQLite || config.Output.S3Bucket != "results" {
		t.Errorf("Output = %+v; want csv, sqlite and s3 output", config.Output)
	}
	if config.Openings.Order != "random" {
		t.Errorf("Openings.Order = %q; want random", config.Openings.Order)
	}
}
