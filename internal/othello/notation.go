package othello

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// PassField is the notation used for a pass.
const PassField = "--"

var ErrInvalidField = errors.New("invalid field")

// FieldToIndex converts a field notation (e.g. "a1", "h8") to an index (0-63).
func FieldToIndex(field string) (int, error) {
	if len(field) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}

	field = strings.ToLower(field)

	if !('a' <= field[0] && field[0] <= 'h' && '1' <= field[1] && field[1] <= '8') {
		return 0, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}

	x := int(field[0] - 'a')
	y := int(field[1] - '1')
	return y*MaxX + x, nil
}

// IndexToField converts an index (0-63) to field notation.
func IndexToField(index int) string {
	if index < 0 || index >= Squares {
		return PassField
	}

	return string([]byte{byte('a' + index%MaxX), byte('1' + index/MaxX)})
}

// FieldToMove converts a field to a single bit move. "--", "ps" and "pa" are
// passes and return 0.
func FieldToMove(field string) (uint64, error) {
	switch strings.ToLower(field) {
	case PassField, "ps", "pa":
		return 0, nil
	}

	index, err := FieldToIndex(field)
	if err != nil {
		return 0, err
	}

	return uint64(1) << index, nil
}

// MoveToField converts a single bit move to field notation. A zero move is a pass.
func MoveToField(move uint64) string {
	if move == 0 {
		return PassField
	}
	return IndexToField(bits.TrailingZeros64(move))
}
