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

package games

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"laptudirm.com/x/league/pkg/league/game"
)

const AtaxxStartPosition = "x5o/7/7/7/7/7/o5x x 0 1"

const (
	all uint64 = 0x1FFFFFFFFFFFF
	// Files
	fileA uint64 = 0x0040810204081
	fileB uint64 = 0x0081020408102
	fileF uint64 = 0x0810204081020
	fileG uint64 = 0x1020408102040
	// Not Files
	notFileA uint64 = all ^ fileA
	notFileB uint64 = all ^ fileB
	notFileF uint64 = all ^ fileF
	notFileG uint64 = all ^ fileG
	// Stuff
	notFileAB uint64 = notFileA & notFileB
	notFileFG uint64 = notFileF & notFileG
)

// Bitboard is a set of squares of the 7x7 ataxx board.
type Bitboard uint64

func (bb Bitboard) Get(sq Square) bool {
	return bb&(1<<sq) != 0
}

func (bb Bitboard) Count() int {
	return bits.OnesCount64(uint64(bb))
}

// Pop removes and returns the lowest square of the bitboard.
func (bb *Bitboard) Pop() Square {
	sq := Square(bits.TrailingZeros64(uint64(*bb)))
	*bb &= *bb - 1
	return sq
}

// Singles returns the squares adjacent to the squares in bb.
func (bb Bitboard) Singles() Bitboard {
	b := uint64(bb)
	return Bitboard((b<<7 | b>>7 |
		(b<<1|b<<8|b>>6)&notFileA |
		(b>>1|b<<6|b>>8)&notFileG) & all)
}

// Doubles returns the squares at a distance of two from the squares in bb.
func (bb Bitboard) Doubles() Bitboard {
	b := uint64(bb)

	var moves uint64
	moves |= (b << 12) & notFileFG // North North West West
	moves |= (b << 13) & notFileG  // North North West
	moves |= (b << 14)             // North North
	moves |= (b << 15) & notFileA  // North North East
	moves |= (b << 16) & notFileAB // North North East East

	moves |= (b >> 16) & notFileFG // South South West West
	moves |= (b >> 15) & notFileG  // South South West
	moves |= (b >> 14)             // South South
	moves |= (b >> 13) & notFileA  // South South East
	moves |= (b >> 12) & notFileAB // South South East East

	moves |= (b << 9) & notFileAB // East East North
	moves |= (b << 2) & notFileAB // East East
	moves |= (b >> 5) & notFileAB // East East South

	moves |= (b << 5) & notFileFG // West West North
	moves |= (b >> 2) & notFileFG // West West
	moves |= (b >> 9) & notFileFG // West West South

	return Bitboard(moves & all)
}

// Square is a square of the ataxx board, a1 = 0 and g7 = 48.
type Square uint8

func (sq Square) File() uint8 {
	return uint8(sq) % 7
}

func (sq Square) Rank() uint8 {
	return uint8(sq) / 7
}

func (sq Square) String() string {
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// AtaxxMove is a single (From == To) or a double ataxx move.
type AtaxxMove struct {
	From, To Square
}

// NullMove is the pass move, legal only when the side to move is blocked.
var NullMove = AtaxxMove{49, 49}

// ParseAtaxxMove parses a move from its string representation.
func ParseAtaxxMove(movestr string) (AtaxxMove, error) {
	square := func(s string) (Square, error) {
		f, r := s[0]-'a', s[1]-'1'
		if f >= 7 || r >= 7 {
			return 0, fmt.Errorf("ataxx: invalid square %q", s)
		}

		return Square(r*7 + f), nil
	}

	switch len(movestr) {
	case 2:
		to, err := square(movestr)
		return AtaxxMove{to, to}, err

	case 4:
		if movestr == "0000" {
			return NullMove, nil
		}

		from, err := square(movestr[:2])
		if err != nil {
			return AtaxxMove{}, err
		}

		to, err := square(movestr[2:])
		return AtaxxMove{from, to}, err
	}

	return AtaxxMove{}, errors.New("ataxx: failed to parse move string")
}

func (move AtaxxMove) IsSingle() bool {
	return move.From == move.To
}

func (move AtaxxMove) String() string {
	switch {
	case move == NullMove:
		return "0000"
	case move.IsSingle():
		return move.To.String()
	default:
		return move.From.String() + move.To.String()
	}
}

// Ataxx is a game.State of an ataxx game. A seat's score is the number of
// its stones on the board; ataxx has no feature scores.
type Ataxx struct {
	pieces    [2]Bitboard // x, o
	gaps      Bitboard
	turn      int
	first     int
	halfmoves int
	fullmoves int

	moves  []AtaxxMove
	winner game.Winner
	reason string
	over   bool
}

var _ game.State = (*Ataxx)(nil)

// NewAtaxx returns an ataxx game set up with the given FEN. Seat one plays
// the side to move.
func NewAtaxx(fenstr string) (*Ataxx, error) {
	var ataxx Ataxx
	if err := ataxx.setFEN(fenstr); err != nil {
		return nil, err
	}

	ataxx.first = ataxx.turn
	ataxx.generate()
	return &ataxx, nil
}

func (ataxx *Ataxx) setFEN(fenstr string) error {
	fields := strings.Fields(fenstr)
	if len(fields) < 2 {
		return fmt.Errorf("ataxx: invalid fen %q", fenstr)
	}

	sq, file := 42, 0
	for _, c := range fields[0] {
		switch {
		case c == 'x', c == 'o', c == '-':
			if file >= 7 || sq < 0 {
				return fmt.Errorf("ataxx: invalid fen %q", fenstr)
			}

			bb := Bitboard(1) << (sq + file)
			switch c {
			case 'x':
				ataxx.pieces[0] |= bb
			case 'o':
				ataxx.pieces[1] |= bb
			default:
				ataxx.gaps |= bb
			}
			file++

		case c >= '1' && c <= '7':
			file += int(c - '0')

		case c == '/':
			sq, file = sq-7, 0

		default:
			return fmt.Errorf("ataxx: invalid fen %q", fenstr)
		}
	}

	switch fields[1] {
	case "x":
		ataxx.turn = 0
	case "o":
		ataxx.turn = 1
	default:
		return fmt.Errorf("ataxx: invalid side to move %q", fields[1])
	}

	if len(fields) >= 3 {
		ataxx.halfmoves, _ = strconv.Atoi(fields[2])
	}

	if len(fields) >= 4 {
		ataxx.fullmoves, _ = strconv.Atoi(fields[3])
	}

	return nil
}

func (ataxx *Ataxx) empty() Bitboard {
	return Bitboard(all) &^ (ataxx.pieces[0] | ataxx.pieces[1] | ataxx.gaps)
}

func (ataxx *Ataxx) generate() {
	stm, xtm := ataxx.turn, ataxx.turn^1
	empty := ataxx.empty()

	switch {
	case ataxx.halfmoves >= 100:
		ataxx.end(game.Draw, "50-move Rule")
		return

	case ataxx.pieces[stm] == 0:
		ataxx.end(game.WonBy[ataxx.seat(xtm).Index()], "Eradication")
		return

	case ataxx.pieces[xtm] == 0:
		ataxx.end(game.WonBy[ataxx.seat(stm).Index()], "Eradication")
		return
	}

	both := ataxx.pieces[0] | ataxx.pieces[1]
	if (both.Singles()|both.Doubles())&empty == 0 {
		stmN, xtmN := ataxx.pieces[stm].Count(), ataxx.pieces[xtm].Count()
		switch {
		case stmN > xtmN:
			ataxx.end(game.WonBy[ataxx.seat(stm).Index()], "Population Count")
		case xtmN > stmN:
			ataxx.end(game.WonBy[ataxx.seat(xtm).Index()], "Population Count")
		default:
			ataxx.end(game.Draw, "Population Count")
		}
		return
	}

	ataxx.moves = ataxx.moves[:0]

	singles := ataxx.pieces[stm].Singles() & empty
	for singles != 0 {
		to := singles.Pop()
		ataxx.moves = append(ataxx.moves, AtaxxMove{to, to})
	}

	pieces := ataxx.pieces[stm]
	for pieces != 0 {
		from := pieces.Pop()
		doubles := (Bitboard(1) << from).Doubles() & empty
		for doubles != 0 {
			ataxx.moves = append(ataxx.moves, AtaxxMove{from, doubles.Pop()})
		}
	}

	if len(ataxx.moves) == 0 {
		ataxx.moves = append(ataxx.moves, NullMove)
	}
}

func (ataxx *Ataxx) end(winner game.Winner, reason string) {
	ataxx.over = true
	ataxx.winner = winner
	ataxx.reason = reason
	ataxx.moves = nil
}

func (ataxx *Ataxx) seat(side int) game.Seat {
	return seatOf(side, ataxx.first)
}

func (ataxx *Ataxx) side(seat game.Seat) int {
	if seat == game.SeatOne {
		return ataxx.first
	}

	return ataxx.first ^ 1
}

func (ataxx *Ataxx) AvailableMoves() []game.Move {
	moves := make([]game.Move, len(ataxx.moves))
	for i, m := range ataxx.moves {
		moves[i] = m
	}

	return moves
}

func (ataxx *Ataxx) RandomMove() game.Move {
	return pick(ataxx.moves)
}

func (ataxx *Ataxx) Move(m game.Move) error {
	if ataxx.over {
		return fmt.Errorf("ataxx: move %s after game over", m)
	}

	move, ok := m.(AtaxxMove)
	if !ok {
		var err error
		if move, err = ParseAtaxxMove(m.String()); err != nil {
			return err
		}
	}

	legal := false
	for _, candidate := range ataxx.moves {
		if candidate == move {
			legal = true
			break
		}
	}

	if !legal {
		return fmt.Errorf("ataxx: %w %s", game.ErrIllegalMove, move)
	}

	ataxx.makeMove(move)
	ataxx.generate()
	return nil
}

func (ataxx *Ataxx) makeMove(move AtaxxMove) {
	us, them := ataxx.turn, ataxx.turn^1

	if move != NullMove {
		to := Bitboard(1) << move.To
		from := Bitboard(1) << move.From

		// move our piece
		ataxx.pieces[us] ^= to | from

		// flip captured pieces
		captured := ataxx.pieces[them] & to.Singles()
		ataxx.pieces[us] ^= captured
		ataxx.pieces[them] ^= captured

		ataxx.halfmoves++
		if move.IsSingle() {
			ataxx.halfmoves = 0
		}
	}

	ataxx.turn = them
	if ataxx.turn == 0 {
		ataxx.fullmoves++
	}
}

func (ataxx *Ataxx) IsGameOver() bool {
	return ataxx.over
}

func (ataxx *Ataxx) Turn() game.Seat {
	return ataxx.seat(ataxx.turn)
}

func (ataxx *Ataxx) Scores() [2]int {
	return [2]int{
		ataxx.pieces[ataxx.side(game.SeatOne)].Count(),
		ataxx.pieces[ataxx.side(game.SeatTwo)].Count(),
	}
}

func (ataxx *Ataxx) Result() int {
	scores := ataxx.Scores()
	return scores[0] - scores[1]
}

func (ataxx *Ataxx) Winner() game.Winner {
	return ataxx.winner
}

func (ataxx *Ataxx) FeatureScores() [2]game.FeatureScores {
	return [2]game.FeatureScores{}
}

// Reason returns why the game ended, or the empty string if it hasn't.
func (ataxx *Ataxx) Reason() string {
	return ataxx.reason
}

// FEN returns the FEN of the current position.
func (ataxx *Ataxx) FEN() string {
	var fen strings.Builder

	for rank := 6; rank >= 0; rank-- {
		gaps := 0
		for file := 0; file < 7; file++ {
			sq := Square(rank*7 + file)

			var c byte
			switch {
			case ataxx.pieces[0].Get(sq):
				c = 'x'
			case ataxx.pieces[1].Get(sq):
				c = 'o'
			case ataxx.gaps.Get(sq):
				c = '-'
			default:
				gaps++
				continue
			}

			if gaps > 0 {
				fen.WriteString(strconv.Itoa(gaps))
				gaps = 0
			}
			fen.WriteByte(c)
		}

		if gaps > 0 {
			fen.WriteString(strconv.Itoa(gaps))
		}
		if rank > 0 {
			fen.WriteByte('/')
		}
	}

	side := "x"
	if ataxx.turn == 1 {
		side = "o"
	}

	fmt.Fprintf(&fen, " %s %d %d", side, ataxx.halfmoves, ataxx.fullmoves)
	return fen.String()
}
