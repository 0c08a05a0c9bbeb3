// Package positionid implements compact position encoding for boards.
//
// A position ID is an 11-character base64 string that uniquely identifies
// a board position plus the player to move. Both sides' point and bar
// counts are packed 4 bits each into a 64-bit stream.
package positionid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/minigammon/pkg/game"
)

// PositionIDLength is the length of a position ID string.
const PositionIDLength = 11

// Base64 alphabet used for position ID encoding.
const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// ErrInvalidID is returned for strings that are not well-formed position IDs.
var ErrInvalidID = errors.New("invalid position ID")

// nibbles flattens a board into the packed layout: player A's counts on
// points 1..6 and bar, then player B's, then the player to move. The
// final nibble stays zero.
func nibbles(b *game.Board, onRoll game.Player) [16]uint8 {
	var nib [16]uint8
	for n := 1; n <= game.NumPoints; n++ {
		pt := b.Point(n)
		switch pt.Owner {
		case game.PlayerA:
			nib[n-1] = uint8(pt.Count)
		case game.PlayerB:
			nib[7+n-1] = uint8(pt.Count)
		}
	}
	nib[6] = uint8(b.Bar[game.PlayerA])
	nib[13] = uint8(b.Bar[game.PlayerB])
	nib[14] = uint8(onRoll)
	return nib
}

// Encode returns the position ID for a board with the given player to move.
func Encode(b *game.Board, onRoll game.Player) string {
	nib := nibbles(b, onRoll)

	var data [8]uint8
	for i := 0; i < 8; i++ {
		data[i] = nib[2*i] | nib[2*i+1]<<4
	}
	return encodeBase64(data)
}

// Decode reconstructs the board and player to move from a position ID.
// Borne-off checkers are implied: whatever is missing from the points and
// the bar is off.
func Decode(id string) (*game.Board, game.Player, error) {
	if len(id) != PositionIDLength {
		return nil, game.NoPlayer, fmt.Errorf("%w: length %d", ErrInvalidID, len(id))
	}
	data, err := decodeBase64(id)
	if err != nil {
		return nil, game.NoPlayer, err
	}

	var nib [16]uint8
	for i := 0; i < 8; i++ {
		nib[2*i] = data[i] & 0x0f
		nib[2*i+1] = data[i] >> 4
	}
	if nib[14] > 1 || nib[15] != 0 {
		return nil, game.NoPlayer, ErrInvalidID
	}
	onRoll := game.Player(nib[14])

	b := &game.Board{}
	for n := range b.Points {
		b.Points[n] = game.Point{Owner: game.NoPlayer}
	}

	totals := [2]int{}
	for n := 1; n <= game.NumPoints; n++ {
		countA, countB := int(nib[n-1]), int(nib[7+n-1])
		if countA > 0 && countB > 0 {
			return nil, game.NoPlayer, fmt.Errorf("%w: point %d owned by both sides", ErrInvalidID, n)
		}
		if countA > 0 {
			b.Points[n] = game.Point{Owner: game.PlayerA, Count: countA}
		}
		if countB > 0 {
			b.Points[n] = game.Point{Owner: game.PlayerB, Count: countB}
		}
		totals[game.PlayerA] += countA
		totals[game.PlayerB] += countB
	}
	b.Bar[game.PlayerA] = int(nib[6])
	b.Bar[game.PlayerB] = int(nib[13])
	totals[game.PlayerA] += b.Bar[game.PlayerA]
	totals[game.PlayerB] += b.Bar[game.PlayerB]

	for _, p := range []game.Player{game.PlayerA, game.PlayerB} {
		if totals[p] > game.CheckersPerPlayer {
			return nil, game.NoPlayer, fmt.Errorf("%w: player %s has %d checkers", ErrInvalidID, p, totals[p])
		}
		b.Off[p] = game.CheckersPerPlayer - totals[p]
	}
	return b, onRoll, nil
}

// encodeBase64 emits the 64-bit stream MSB-first, 6 bits per character.
func encodeBase64(data [8]uint8) string {
	var out [PositionIDLength]byte
	for i := 0; i < PositionIDLength; i++ {
		v := 0
		for j := 0; j < 6; j++ {
			v <<= 1
			idx := i*6 + j
			if idx < 64 && data[idx/8]&(1<<(7-idx%8)) != 0 {
				v |= 1
			}
		}
		out[i] = base64Chars[v]
	}
	return string(out[:])
}

func decodeBase64(id string) ([8]uint8, error) {
	var data [8]uint8
	for i := 0; i < len(id); i++ {
		v := strings.IndexByte(base64Chars, id[i])
		if v < 0 {
			return data, fmt.Errorf("%w: character %q", ErrInvalidID, id[i])
		}
		for j := 0; j < 6; j++ {
			if v&(1<<(5-j)) == 0 {
				continue
			}
			idx := i*6 + j
			if idx >= 64 {
				return data, fmt.Errorf("%w: trailing bits", ErrInvalidID)
			}
			data[idx/8] |= 1 << (7 - idx%8)
		}
	}
	return data, nil
}
