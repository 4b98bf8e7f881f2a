package gopoly

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// Parsing
// ============================================================

// Parse builds a polynomial from text such as "3x^2 + 2x - 4" or the
// canonical "3x^2+2x-4". Terms are separated by whitespace or by a leading
// sign; a sign standing on its own applies to the next term. Each term has
// the shape [sign][digits][x[^digits]].
//
// Parsing is lenient: terms that do not have that shape are skipped. Terms
// that have the shape but carry an unusable integer fail with
// ErrNumericParse, and negative exponents fail with ErrInvalidExponent.
// Repeated exponents are combined as with AddTerm.
func Parse(text string) (*Poly, error) { return parse(text, false) }

// ParseStrict is like Parse but reports the terms Parse would skip as
// ErrMalformedTerm.
func ParseStrict(text string) (*Poly, error) { return parse(text, true) }

func parse(text string, strict bool) (*Poly, error) {
	p := New()
	for i, raw := range splitTerms(text) {
		t, err := classifyTerm(raw)
		if errors.Is(err, ErrMalformedTerm) && !strict {
			continue
		}
		if err == nil {
			err = p.AddTerm(t.Coefficient, t.Exponent)
		}
		if err != nil {
			return nil, &TermError{Index: i, Text: raw, Err: err}
		}
	}
	return p, nil
}

// splitTerms breaks text into raw term strings. A sign starts a new term
// unless it follows '^'; lone signs are carried onto the next term and
// combined with its own sign.
func splitTerms(text string) []string {
	var (
		out  []string
		sign string
	)
	for _, field := range strings.Fields(text) {
		start := 0
		for k := 1; k <= len(field); k++ {
			if k < len(field) && (!isSign(field[k]) || field[k-1] == '^') {
				continue
			}
			piece := field[start:k]
			start = k
			if piece == "+" || piece == "-" {
				sign += piece
				continue
			}
			out = append(out, joinSign(sign, piece))
			sign = ""
		}
	}
	if sign != "" {
		out = append(out, sign)
	}
	return out
}

// classifyTerm is the single place deciding whether a raw term is usable.
// It returns an error wrapping ErrMalformedTerm for text that is not a term
// at all, and one wrapping ErrNumericParse for a term whose integers are bad.
// The exponent is not range checked here; AddTerm does that.
func classifyTerm(raw string) (Term, error) {
	body := raw
	negative := false
	if body != "" && isSign(body[0]) {
		negative = body[0] == '-'
		body = body[1:]
	}
	if body == "" || isSign(body[0]) {
		return Term{}, ErrMalformedTerm
	}

	x := strings.IndexByte(body, 'x')
	if x < 0 {
		if !isDigits(body) {
			return Term{}, ErrMalformedTerm
		}
		c, err := atoi(body, negative)
		if err != nil {
			return Term{}, err
		}
		return Term{Coefficient: c}, nil
	}

	coef, rest := body[:x], body[x+1:]
	exponent := 1
	switch {
	case rest == "":
	case rest[0] == '^' && len(rest) > 1 && !strings.ContainsRune(rest, 'x'):
		e, err := strconv.Atoi(rest[1:])
		if err != nil {
			return Term{}, fmt.Errorf("%w: exponent %q", ErrNumericParse, rest[1:])
		}
		exponent = e
	default:
		return Term{}, ErrMalformedTerm
	}

	if coef == "" {
		if negative {
			return Term{Coefficient: -1, Exponent: exponent}, nil
		}
		return Term{Coefficient: 1, Exponent: exponent}, nil
	}
	c, err := atoi(coef, negative)
	if err != nil {
		return Term{}, err
	}
	return Term{Coefficient: c, Exponent: exponent}, nil
}

func atoi(digits string, negative bool) (int, error) {
	s := digits
	if negative {
		s = "-" + digits
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: coefficient %q", ErrNumericParse, s)
	}
	return n, nil
}

// joinSign folds the carried lone signs into the piece's own leading sign,
// so "-" then "+4x" gives "-4x" and "-" then "-4x" gives "+4x".
func joinSign(sign, piece string) string {
	if sign == "" {
		return piece
	}
	negative := strings.Count(sign, "-")%2 == 1
	if isSign(piece[0]) {
		negative = negative != (piece[0] == '-')
		piece = piece[1:]
	}
	if negative {
		return "-" + piece
	}
	return "+" + piece
}

func isSign(b byte) bool { return b == '+' || b == '-' }

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
