package usecase

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kassaklap/backend/internal/domain"
)

// unitOfMeasure maps one size-text token to its base unit and the
// multiplier converting into that base unit's smallest form.
type unitOfMeasure struct {
	token      string
	baseUnit   domain.BaseUnit
	multiplier float64
}

// unitsOfMeasure is the static token table. Sorted longest-token-first
// at init so "liter" wins over "l" and "kg" over "k" regardless of
// declaration order. New units only need a row here.
var unitsOfMeasure = []unitOfMeasure{
	{"gram", domain.BaseUnitGram, 1},
	{"gr", domain.BaseUnitGram, 1},
	{"g", domain.BaseUnitGram, 1},
	{"kilogram", domain.BaseUnitGram, 1000},
	{"kilo", domain.BaseUnitGram, 1000},
	{"kg", domain.BaseUnitGram, 1000},
	{"k", domain.BaseUnitGram, 1000},
	{"pond", domain.BaseUnitGram, 500},
	{"milliliter", domain.BaseUnitMilliliter, 1},
	{"mililiter", domain.BaseUnitMilliliter, 1},
	{"ml", domain.BaseUnitMilliliter, 1},
	{"liter", domain.BaseUnitMilliliter, 1000},
	{"l", domain.BaseUnitMilliliter, 1000},
	{"deciliter", domain.BaseUnitMilliliter, 100},
	{"dl", domain.BaseUnitMilliliter, 100},
	{"centiliter", domain.BaseUnitMilliliter, 10},
	{"cl", domain.BaseUnitMilliliter, 10},
}

func init() {
	sort.SliceStable(unitsOfMeasure, func(i, j int) bool {
		return len(unitsOfMeasure[i].token) > len(unitsOfMeasure[j].token)
	})
}

// ParseQuantity scans text left to right for the first decimal number
// followed by an optional whitespace character and a recognized unit
// token. Matching is case-insensitive and both "." and "," act as
// decimal separator. The returned amount is already converted into the
// base unit's smallest form (grams or milliliters). ok is false when
// no number+unit pair is found, which is a normal outcome for sizes
// like "6 stuks".
func ParseQuantity(text string) (domain.ParsedQuantity, bool) {
	lower := strings.ToLower(text)

	for i := 0; i < len(lower); i++ {
		if !startsNumber(lower, i) {
			continue
		}

		numStr, end := scanNumber(lower, i)

		// allow a single whitespace rune between number and unit
		j := end
		if r, size := utf8.DecodeRuneInString(lower[j:]); size > 0 && unicode.IsSpace(r) {
			j += size
		}

		unit, ok := matchUnit(lower[j:])
		if !ok {
			i = end - 1
			continue
		}

		amount, err := parseDecimal(numStr)
		if err != nil {
			i = end - 1
			continue
		}

		return domain.ParsedQuantity{
			Amount:   amount * unit.multiplier,
			BaseUnit: unit.baseUnit,
		}, true
	}

	return domain.ParsedQuantity{}, false
}

// startsNumber reports whether a number begins at position i: a digit,
// or a decimal separator directly followed by a digit (".5 l").
func startsNumber(s string, i int) bool {
	if isDigit(s[i]) {
		return true
	}
	if (s[i] == '.' || s[i] == ',') && i+1 < len(s) && isDigit(s[i+1]) {
		return true
	}
	return false
}

// scanNumber consumes the run of digits and separators starting at i
// and returns it together with the position after the run.
func scanNumber(s string, i int) (string, int) {
	end := i
	for end < len(s) && (isDigit(s[end]) || s[end] == '.' || s[end] == ',') {
		end++
	}
	return s[i:end], end
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// matchUnit tries the unit tokens longest-first as a prefix of the
// remaining (already lowercased) text. There is deliberately no word
// boundary after the token: "500 grams" parses as 500 gram, matching
// how supermarket size strings are written.
func matchUnit(rest string) (unitOfMeasure, bool) {
	for _, u := range unitsOfMeasure {
		if strings.HasPrefix(rest, u.token) {
			return u, true
		}
	}
	return unitOfMeasure{}, false
}

// parseDecimal parses the longest valid decimal prefix of the scanned
// run. Commas count as decimal points, so "1,5" is 1.5 and a second
// separator ends the number ("1.5.2" parses as 1.5).
func parseDecimal(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", ".")
	if i := strings.Index(s, "."); i >= 0 {
		if j := strings.Index(s[i+1:], "."); j >= 0 {
			s = s[:i+1+j]
		}
	}
	s = strings.TrimSuffix(s, ".")
	return strconv.ParseFloat(s, 64)
}
