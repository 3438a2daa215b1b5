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

package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"laptudirm.com/x/league/internal/util"
	"laptudirm.com/x/league/pkg/league/game"
)

// Player is a competitor which can choose moves in a game.
type Player interface {
	game.Chooser

	Name() string
	IsAI() bool
	Identity() Identity
}

// Identity is the name and classification of a competitor.
type Identity struct {
	Name     string
	FullName string
	AI       bool

	// FirstPlayer is the value handed out by the factory's Alternator
	// when the player was created.
	FirstPlayer bool
}

func (identity Identity) String() string {
	return identity.Name
}

// Kind identifies a player variant.
type Kind string

const (
	Random   Kind = "random"
	Human    Kind = "human"
	MCTS     Kind = "mcts"
	MCTSRave Kind = "mcts-rave"
	Star1    Kind = "star1"
	Star2_5  Kind = "star2.5"
)

// Config is the configuration of a single player. Which fields are used
// depends on the player's Kind.
type Config struct {
	Kind Kind   `yaml:"kind"`
	Name string `yaml:"name"`

	// Tree search variants.
	TimeLimit time.Duration `yaml:"time-limit"`

	// Expectimax search variants.
	MaxDepth      int `yaml:"max-depth"`
	ProbingFactor int `yaml:"probing-factor"`

	// Interactive variants.
	MaxAttempts int `yaml:"max-attempts"`
}

// Constructor creates a player of a registered Kind.
type Constructor func(config Config, identity Identity) (Player, error)

var ErrUnknownKind = errors.New("player: unknown kind")

var (
	registryMu sync.RWMutex
	registry   = map[Kind]Constructor{}
)

// Register makes a player Kind available to every Factory. Search based
// players live outside this module and register themselves through it.
func Register(kind Kind, constructor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[kind] = constructor
}

// Kinds returns the built-in kinds along with every registered kind.
func Kinds() []Kind {
	registryMu.RLock()
	defer registryMu.RUnlock()

	kinds := []Kind{Random, Human}
	for kind := range registry {
		if kind != Random && kind != Human {
			kinds = append(kinds, kind)
		}
	}

	sort.Slice(kinds, func(i, j int) bool {
		return util.AlphanumCompare(string(kinds[i]), string(kinds[j]))
	})

	return kinds
}

// Registered reports whether a player of the given kind can be created.
func Registered(kind Kind) bool {
	if kind == "" || kind == Random || kind == Human {
		return true
	}

	_, found := registered(kind)
	return found
}

func registered(kind Kind) (Constructor, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	constructor, found := registry[kind]
	return constructor, found
}

// Alternator hands out the "who starts first" flag to newly created
// players: true for the very first one, flipping on every later one.
type Alternator struct {
	calls int
}

// Next returns the flag for the next player.
func (alternator *Alternator) Next() bool {
	first := alternator.calls%2 == 0
	alternator.calls++
	return first
}

// Factory creates players from their configurations.
type Factory struct {
	Alternator Alternator

	// In and Out are used by interactive players.
	In  io.Reader
	Out io.Writer
}

// New creates a new player from the given configuration.
func (factory *Factory) New(config Config) (Player, error) {
	kind := config.Kind
	if kind == "" {
		kind = Random
	}

	identity := Identity{
		Name:        config.Name,
		FirstPlayer: factory.Alternator.Next(),
		AI:          kind != Human,
	}

	switch kind {
	case Random:
		if identity.Name == "" {
			identity.Name = "Random"
		}
		identity.FullName = "Random Player"
		return &RandomPlayer{identity: identity}, nil

	case Human:
		if identity.Name == "" {
			identity.Name = "Human"
		}
		identity.FullName = "Human Player"
		return NewHumanPlayer(identity, factory.In, factory.Out, config.MaxAttempts), nil
	}

	constructor, found := registered(kind)
	if !found {
		return nil, fmt.Errorf("new player %q: %w %s", config.Name, ErrUnknownKind, kind)
	}

	if identity.Name == "" {
		identity.Name = string(kind)
	}

	return constructor(config, identity)
}

// RandomPlayer plays a uniformly random legal move every turn.
type RandomPlayer struct {
	identity Identity
}

func (player *RandomPlayer) ChooseAction(ctx context.Context, state game.State) (game.Decision, error) {
	return game.Decision{Move: state.RandomMove()}, nil
}

func (player *RandomPlayer) Name() string       { return player.identity.Name }
func (player *RandomPlayer) IsAI() bool         { return true }
func (player *RandomPlayer) Identity() Identity { return player.identity }
