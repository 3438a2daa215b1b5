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

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/league/internal/util"
	"laptudirm.com/x/league/pkg/common"
	"laptudirm.com/x/league/pkg/league/export"
	"laptudirm.com/x/league/pkg/league/player"
	"laptudirm.com/x/league/pkg/league/tournament"
)

// league run
func Run() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run config-file",
		Short: "Run a league described by the given config file",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`run plays a double round robin league between the players
			listed in the given YAML config file. Every pair of players meets
			twice, once in each seat, in a match of games-per-match games.

			A match winner earns 4 points, plus a bonus point for winning at
			least 70% of the games. A winner of at most 55% of the games
			concedes a bonus point to the loser instead. A drawn match earns
			both players 2 points. The table is sorted by points, then points
			differential, then wins after every fixture set.

			The final table and per game statistics are exported to the output
			directory. The LEAGUE_OUTPUT and LEAGUE_S3_BUCKET variables, which
			may be set in a .env file, override the config's output settings.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			config, err := tournament.LoadConfig(args[0])
			if err != nil {
				return err
			}

			overrideConfig(cmd, &config)

			factory := &player.Factory{
				In:  cmd.InOrStdin(),
				Out: cmd.OutOrStdout(),
			}

			tour, err := tournament.NewTournament(config, factory)
			if err != nil {
				return err
			}
			tour.Out = cmd.OutOrStdout()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			started := time.Now()
			if err := tour.Start(ctx); err != nil {
				return err
			}

			if aborted := tour.Aborted(); len(aborted) > 0 {
				logrus.Warnf("%d matches were aborted and not credited", len(aborted))
			}

			if noExport, _ := cmd.Flags().GetBool("no-export"); noExport {
				return nil
			}

			return exportResults(ctx, tour, export.Run{
				ID:            tour.ID(),
				Event:         config.Event,
				Game:          config.Game,
				GamesPerMatch: config.GamesPerMatch,
				Started:       started,
				Finished:      time.Now(),
			})
		},
	}

	cmd.Flags().IntP("games", "g", 0, "Number of games per match")
	cmd.Flags().IntP("concurrency", "c", 0, "Number of matches to play concurrently")
	cmd.Flags().DurationP("move-timeout", "m", 0, "Maximum time for a single move")
	cmd.Flags().StringP("output", "o", "", "Directory to export the results to")
	cmd.Flags().Bool("no-export", false, "Don't export the results")

	return cmd
}

// overrideConfig applies the environment and then the flags on top of the
// config file.
func overrideConfig(cmd *cobra.Command, config *tournament.Config) {
	if output, found := os.LookupEnv("LEAGUE_OUTPUT"); found {
		config.Output.Directory = output
	}

	if bucket, found := os.LookupEnv("LEAGUE_S3_BUCKET"); found {
		config.Output.S3Bucket = bucket
	}

	if cmd.Flag("games").Changed {
		config.GamesPerMatch, _ = cmd.Flags().GetInt("games")
	}

	if cmd.Flag("concurrency").Changed {
		config.Concurrency, _ = cmd.Flags().GetInt("concurrency")
	}

	if cmd.Flag("move-timeout").Changed {
		config.MoveTimeout, _ = cmd.Flags().GetDuration("move-timeout")
	}

	if cmd.Flag("output").Changed {
		config.Output.Directory, _ = cmd.Flags().GetString("output")
	}
}

func exportResults(ctx context.Context, tour *tournament.Tournament, run export.Run) error {
	output := tour.Config.Output
	if output.Directory == "" {
		output.Directory = common.OutputDirectory
	}

	dir := common.RunDirectory(output.Directory, run.ID)
	if err := common.EnsureDirectory(dir); err != nil {
		return err
	}

	var files []string

	if output.CSV {
		if err := util.Working(os.Stderr, "Writing CSV files...", func() (err error) {
			files, err = export.WriteCSV(dir, tour.Standings(), tour.Stats())
			return err
		}); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}

		logrus.Infof("Results written to %s", dir)
	}

	if output.SQLite {
		database := filepath.Join(output.Directory, export.DatabaseFile)
		if err := util.Working(os.Stderr, "Saving to database...", func() error {
			store, err := export.OpenSQLite(database)
			if err != nil {
				return err
			}
			defer store.Close()

			return store.Save(ctx, run, tour.Standings(), tour.Stats().Rows())
		}); err != nil {
			return fmt.Errorf("export sqlite: %w", err)
		}

		logrus.Infof("Results saved to %s", database)
	}

	if output.S3Bucket != "" && len(files) > 0 {
		if err := util.Working(os.Stderr, "Uploading to S3...", func() error {
			uploader, err := export.NewUploader(ctx, output.S3Bucket, output.S3Prefix)
			if err != nil {
				return err
			}

			return uploader.Upload(ctx, run.ID, files)
		}); err != nil {
			return fmt.Errorf("export s3: %w", err)
		}

		logrus.Infof("Results uploaded to s3://%s", output.S3Bucket)
	}

	return nil
}
