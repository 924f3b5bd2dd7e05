package parsco

import (
	"strconv"
)

func sign(s *State) int {
	if r, _ := Try(Char('-'))(s); r.Ok() {
		return -1
	}
	return 1
}

// Int parses an optional '-' followed by one or more decimal digits.
// Values that do not fit in an int fail semantically.
func Int() Parser[int] {
	return func(s *State) (int, error) {
		neg, _ := Try(Char('-'))(s)
		digits, err := Many1String(Digit())(s)
		if err != nil {
			return 0, err
		}
		if neg.Ok() {
			digits = "-" + digits
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return 0, s.Fail("error parsing int")
		}
		return n, nil
	}
}

// Double parses an optional '-', digits, a mandatory '.', and digits.
// At least one digit must appear on either side of the point.
func Double() Parser[float64] {
	return func(s *State) (float64, error) {
		mult := float64(sign(s))
		ipart, _ := ManyString(Digit())(s)
		if _, err := Char('.')(s); err != nil {
			return 0, err
		}
		fpart, _ := ManyString(Digit())(s)
		if ipart == "" && fpart == "" {
			return 0, s.Fail("expected double")
		}
		d, err := strconv.ParseFloat(ipart+"."+fpart, 64)
		if err != nil {
			return 0, s.Fail("error parsing double")
		}
		return mult * d, nil
	}
}
