package scoreboarddomain

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidScore is returned for values that are not integers in [0, MaxScore].
var ErrInvalidScore = errors.New("invalid score")

// MaxScore is the largest storable score (Postgres INT).
const MaxScore = math.MaxInt32

// Score is a validated, non-negative score value.
type Score int32

// NewScore range-checks an integer score.
func NewScore(v int64) (Score, error) {
	if v < 0 || v > MaxScore {
		return 0, ErrInvalidScore
	}
	return Score(v), nil
}

// ParseScore accepts the textual form of a JSON number or numeric string.
// Integral floats such as "5.0" or "1e3" are accepted; fractions, NaN, infinities and blanks are not.
func ParseScore(raw string) (Score, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidScore
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return NewScore(v)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, ErrInvalidScore
	}
	if f < 0 || f > MaxScore {
		return 0, ErrInvalidScore
	}
	return Score(f), nil
}
