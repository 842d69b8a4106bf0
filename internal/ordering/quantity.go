package ordering

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// A bare integer, not glued to a word character or decimal point on
	// either side ("500ml" and "1.5" must not match).
	bareNumberRe = regexp.MustCompile(`(?:^|[^0-9A-Za-z_.])([0-9]+)(?:[^0-9A-Za-z_.]|$)`)

	// "+2", "x2", "×2" shorthand.
	shorthandRe = regexp.MustCompile(`(?i)(?:^|\s)[+x×]\s?([0-9]+)`)
)

// numberWords maps whole-word Spanish quantities one through ten.
var numberWords = map[string]int{
	"un": 1, "uno": 1, "una": 1,
	"dos": 2, "tres": 3, "cuatro": 4, "cinco": 5,
	"seis": 6, "siete": 7, "ocho": 8, "nueve": 9, "diez": 10,
}

// ExtractQuantity parses a natural-language fragment into a quantity.
// Precedence: bare integer, then +N/xN shorthand, then a number word.
// The second return value is false when the text carries no quantity at
// all; callers choose their own default.
func ExtractQuantity(text string) (int, bool) {
	if m := bareNumberRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}

	if m := shorthandRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}

	for _, tok := range strings.FieldsFunc(strings.ToLower(text), isWordSeparator) {
		if n, ok := numberWords[tok]; ok {
			return n, true
		}
	}

	return 0, false
}

func isWordSeparator(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case r == 'á' || r == 'é' || r == 'í' || r == 'ó' || r == 'ú' || r == 'ñ' || r == 'ü':
		return false
	}
	return true
}
