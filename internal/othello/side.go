package othello

import "fmt"

// Side identifies one of the two players. X moves first.
type Side int

const (
	X Side = iota
	O
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	return X + O - s
}

// Color returns +1 for X and -1 for O.
func (s Side) Color() int {
	if s == X {
		return 1
	}
	return -1
}

// String returns "x" or "o".
func (s Side) String() string {
	if s == X {
		return "x"
	}
	return "o"
}

// ParseSide parses "x" or "o", case insensitive.
func ParseSide(s string) (Side, error) {
	switch s {
	case "x", "X":
		return X, nil
	case "o", "O":
		return O, nil
	default:
		return X, fmt.Errorf("invalid side: %q", s)
	}
}
