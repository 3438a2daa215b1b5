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

package tournament

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"laptudirm.com/x/league/pkg/league/games"
	"laptudirm.com/x/league/pkg/league/player"
)

const (
	DefaultGame          = "ataxx"
	DefaultGamesPerMatch = 10
)

var ErrInvalidConfig = errors.New("invalid tournament config")

type Config struct {
	// Event name, used in reports and exports.
	Event string `yaml:"event"`

	// The game that will be played.
	Game string `yaml:"game"`

	// Number of games played in every match. Seats are fixed for a match.
	GamesPerMatch int `yaml:"games-per-match"`

	// Number of matches of a fixture set played concurrently.
	Concurrency int `yaml:"concurrency"`

	// Maximum time a player may take for a move before it forfeits the
	// game. Zero means no limit.
	MoveTimeout time.Duration `yaml:"move-timeout"`

	// The players participating in the tournament.
	Players []player.Config `yaml:"players"`

	Openings OpeningsConfig `yaml:"openings"`
	Output   OutputConfig   `yaml:"output"`
}

type OpeningsConfig struct {
	File  string `yaml:"file"`
	Order string `yaml:"order"` // sequential (default) or random
}

type OutputConfig struct {
	Directory string `yaml:"directory"`

	CSV    bool `yaml:"csv"`
	SQLite bool `yaml:"sqlite"`

	S3Bucket string `yaml:"s3-bucket"`
	S3Prefix string `yaml:"s3-prefix"`
}

// DefaultConfig returns a config with every optional field set to its
// default value.
func DefaultConfig() Config {
	return Config{
		Event:         "League",
		Game:          DefaultGame,
		GamesPerMatch: DefaultGamesPerMatch,
		Concurrency:   1,
		Output: OutputConfig{
			CSV: true,
		},
	}
}

// LoadConfig reads a YAML tournament config from the given file on top of
// DefaultConfig.
func LoadConfig(file string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(file)
	if err != nil {
		return config, err
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse %s: %w", file, err)
	}

	return config, config.Validate()
}

// Validate checks the config for errors.
func (config *Config) Validate() error {
	if _, err := games.StartPosition(config.Game); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if config.GamesPerMatch < 1 {
		return fmt.Errorf("%w: games-per-match must be positive, got %d", ErrInvalidConfig, config.GamesPerMatch)
	}

	if config.MoveTimeout < 0 {
		return fmt.Errorf("%w: negative move-timeout %s", ErrInvalidConfig, config.MoveTimeout)
	}

	switch config.Openings.Order {
	case "", "sequential", "random":
	default:
		return fmt.Errorf("%w: unknown openings order %q", ErrInvalidConfig, config.Openings.Order)
	}

	return nil
}
