// Package scoring decodes per-arrow scoring strings.
package scoring

const (
	missRune = 'M'
	tenRune  = 'T'
	tenValue = 10
)

// Arrows returns the value of every arrow in s, in order.
func Arrows(s string) ([]int, error) {
	values := make([]int, 0, len(s))
	for i, r := range s {
		v, err := arrowValue(r)
		if err != nil {
			return nil, &DecodeError{Input: s, Position: i, Char: r}
		}
		values = append(values, v)
	}
	return values, nil
}

// Decode returns the total of a scoring string. An empty string is 0.
func Decode(s string) (int, error) {
	values, err := Arrows(s)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, v := range values {
		total += v
	}
	return total, nil
}

func arrowValue(r rune) (int, error) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), nil
	case r == missRune:
		return 0, nil
	case r == tenRune:
		return tenValue, nil
	}
	return 0, ErrInvalidArrow
}
