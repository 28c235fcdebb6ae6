package scoreboarddomain

import (
	"errors"
	"strings"
)

// ErrInvalidPlayer is returned for anything other than the two known players.
var ErrInvalidPlayer = errors.New("invalid player")

// Player identifies one of the two competitors.
type Player string

const (
	PlayerJared Player = "jared"
	PlayerSteve Player = "steve"
)

// Players lists every known player in a stable order.
var Players = []Player{PlayerJared, PlayerSteve}

// ParsePlayer normalises raw input (trimmed, lower-cased) and checks it is a known player.
func ParsePlayer(raw string) (Player, error) {
	p := Player(strings.ToLower(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", ErrInvalidPlayer
	}
	return p, nil
}

// Valid reports whether p is one of the known players.
func (p Player) Valid() bool {
	return p == PlayerJared || p == PlayerSteve
}

// ScoreColumn is the scores table column holding this player's value.
func (p Player) ScoreColumn() string {
	return string(p) + "_score"
}

func (p Player) String() string {
	return string(p)
}
