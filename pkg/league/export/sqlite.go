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

package export

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
	"laptudirm.com/x/league/pkg/league/stats"
	"laptudirm.com/x/league/pkg/league/table"
)

const DatabaseFile = "league.db"

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Run describes a single tournament run.
type Run struct {
	ID            string
	Event         string
	Game          string
	GamesPerMatch int

	Started, Finished time.Time
}

// SQLite is an SQLite database of tournament runs.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens the database at the given path, creating it and
// migrating it to the latest schema if needed.
func OpenSQLite(path string) (*SQLite, error) {
	logrus.WithField("path", path).Debug("Opening database")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set PRAGMA foreign_keys: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(logrus.StandardLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("run goose migrations: %w", err)
	}

	return nil
}

func (store *SQLite) Close() error {
	return store.db.Close()
}

// Save stores the run along with its standings and statistics in a single
// transaction.
func (store *SQLite) Save(ctx context.Context, run Run, standings []table.Row, rows []stats.Row) (err error) {
	tx, err := store.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, event, game, games_per_match, started_at, finished_at) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Event, run.Game, run.GamesPerMatch, run.Started, run.Finished,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	standing, err := tx.PrepareContext(ctx, `INSERT INTO standings
		(run_id, position, player, matches_played, points, bonus_wins, bonus_losses, wins, losses, draws, pd)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer standing.Close()

	for _, row := range standings {
		if _, err = standing.ExecContext(ctx,
			run.ID, row.Position, row.Player, row.MatchesPlayed, row.Points,
			row.BonusWins, row.BonusLosses, row.Wins, row.Losses, row.Draws, row.PD,
		); err != nil {
			return fmt.Errorf("insert standing of %s: %w", row.Player, err)
		}
	}

	stat, err := tx.PrepareContext(ctx, `INSERT INTO player_stats
		(run_id, fixture_set, game, seat, player, opponent, result, win, loss, draw, forfeit,
		 player_score, opponent_score, features, opponent_features,
		 meeples_played, meeple_turns, meeple_features, turns, avg_turn_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stat.Close()

	for _, row := range rows {
		if _, err = stat.ExecContext(ctx,
			run.ID, row.FixtureSet, row.Game, int(row.Seat), row.Player, row.Opponent,
			int(row.Result), row.Win, row.Loss, row.Draw, row.Forfeit,
			row.PlayerScore, row.OpponentScore,
			join(row.Features[:]), join(row.OpponentFeatures[:]),
			row.MeeplesPlayed, join(row.MeepleTurns), join(row.MeepleFeatures),
			row.Turns, row.AvgTurnTime.Seconds(),
		); err != nil {
			return fmt.Errorf("insert stats of %s: %w", row.Player, err)
		}
	}

	return tx.Commit()
}

// Standings returns the stored standings of the given run in position
// order.
func (store *SQLite) Standings(ctx context.Context, runID string) ([]table.Row, error) {
	rows, err := store.db.QueryContext(ctx, `SELECT position, player, matches_played, points,
		bonus_wins, bonus_losses, wins, losses, draws, pd
		FROM standings WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var standings []table.Row
	for rows.Next() {
		var row table.Row
		if err := rows.Scan(
			&row.Position, &row.Player, &row.MatchesPlayed, &row.Points,
			&row.BonusWins, &row.BonusLosses, &row.Wins, &row.Losses, &row.Draws, &row.PD,
		); err != nil {
			return nil, err
		}

		standings = append(standings, row)
	}

	return standings, rows.Err()
}

// CountStats returns the number of stored statistics rows of the run.
func (store *SQLite) CountStats(ctx context.Context, runID string) (int, error) {
	var count int
	err := store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM player_stats WHERE run_id = ?`, runID,
	).Scan(&count)
	return count, err
}

func join[T any](values []T) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = fmt.Sprint(value)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
