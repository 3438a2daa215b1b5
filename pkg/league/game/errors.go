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

package game

import (
	"errors"
	"fmt"
)

var (
	ErrMoveTimeout = errors.New("game: move timeout")
	ErrIllegalMove = errors.New("game: illegal move")
	ErrNoMove      = errors.New("game: player returned no move")
	ErrInvalidTurn = errors.New("game: state reported an invalid turn")
)

// CollaboratorFault is an unexpected failure of a player or of the game
// state. It aborts the game, and with it the match, in progress.
type CollaboratorFault struct {
	Seat Seat // zero if the fault is not attributable to a seat
	Err  error
}

func (fault *CollaboratorFault) Error() string {
	if fault.Seat == 0 {
		return fmt.Sprintf("collaborator fault: %v", fault.Err)
	}

	return fmt.Sprintf("collaborator fault by %s: %v", fault.Seat, fault.Err)
}

func (fault *CollaboratorFault) Unwrap() error {
	return fault.Err
}

// ForfeitError reports that a seat lost a game by forfeit.
type ForfeitError struct {
	Seat Seat
	Err  error
}

func (err *ForfeitError) Error() string {
	return fmt.Sprintf("%s forfeits: %v", err.Seat, err.Err)
}

func (err *ForfeitError) Unwrap() error {
	return err.Err
}
