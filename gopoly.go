// Package gopoly provides sparse single-variable integer polynomials for Go.
//
// Design goals:
//   - Sparse storage: only non-zero terms, highest exponent first
//   - Invariants hold after every exported call (no zero terms, no duplicates)
//   - Canonical, round-trippable text form (String / Parse)
//   - AI/LLM friendly: JSON and MCP-ready APIs
//   - Embeddable in Go services, CLI tools, and agent backends
//
// A Poly is not safe for concurrent mutation; callers that share one across
// goroutines must synchronise access themselves.
package gopoly

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// ============================================================
// Errors
// ============================================================

var (
	// ErrInvalidExponent is returned when a term has a negative exponent.
	ErrInvalidExponent = errors.New("gopoly: invalid exponent")

	// ErrInvalidOperandType is returned by Add when the operand is nil or
	// does not behave like an ordered sparse term sequence.
	ErrInvalidOperandType = errors.New("gopoly: invalid operand type")

	// ErrNumericParse is returned when a term's coefficient or exponent is
	// not a valid integer literal.
	ErrNumericParse = errors.New("gopoly: invalid integer literal")

	// ErrMalformedTerm is reported by ParseStrict for terms that Parse
	// would silently skip.
	ErrMalformedTerm = errors.New("gopoly: malformed term")
)

// TermError describes a term of a textual polynomial that could not be used.
type TermError struct {
	Index int    // zero-based position of the term in the input
	Text  string // the raw term text
	Err   error
}

func (e *TermError) Error() string {
	return fmt.Sprintf("term %d %q: %v", e.Index, e.Text, e.Err)
}

func (e *TermError) Unwrap() error { return e.Err }

// ============================================================
// Term
// ============================================================

// Term is a single coefficient*x^exponent contribution.
type Term struct {
	Coefficient int `json:"coefficient"`
	Exponent    int `json:"exponent"`
}

// TermSequence is anything that can hand out its terms ordered by strictly
// decreasing exponent with no zero coefficients. *Poly implements it.
type TermSequence interface {
	Terms() []Term
}

// ============================================================
// Poly
// ============================================================

// Poly is a polynomial in x with integer coefficients. The zero value is the
// zero polynomial and is ready to use.
type Poly struct {
	// terms is ordered by strictly decreasing exponent.
	terms []Term
}

// New returns the zero polynomial.
func New() *Poly { return &Poly{} }

// FromTerms builds a polynomial by inserting each term in turn, so repeated
// exponents are combined.
func FromTerms(terms ...Term) (*Poly, error) {
	p := New()
	for _, t := range terms {
		if err := p.AddTerm(t.Coefficient, t.Exponent); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// MustParse is like Parse but panics on error. It is meant for literals in
// tests and examples.
func MustParse(text string) *Poly {
	p, err := Parse(text)
	if err != nil {
		panic("gopoly: " + err.Error())
	}
	return p
}

func (p *Poly) IsZero() bool { return len(p.terms) == 0 }
func (p *Poly) Len() int     { return len(p.terms) }

// Terms returns a copy of the terms, highest exponent first.
func (p *Poly) Terms() []Term { return slices.Clone(p.terms) }

// Clone returns an independent copy of p.
func (p *Poly) Clone() *Poly { return &Poly{terms: slices.Clone(p.terms)} }

// AddTerm adds coefficient*x^exponent to p. A term already present at the
// same exponent is combined with it, and dropped if the sum is zero.
func (p *Poly) AddTerm(coefficient, exponent int) error {
	if exponent < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidExponent, exponent)
	}
	if coefficient == 0 {
		return nil
	}
	i := p.search(exponent)
	if i < len(p.terms) && p.terms[i].Exponent == exponent {
		sum := p.terms[i].Coefficient + coefficient
		if sum == 0 {
			p.terms = slices.Delete(p.terms, i, i+1)
			return nil
		}
		p.terms[i].Coefficient = sum
		return nil
	}
	p.terms = slices.Insert(p.terms, i, Term{Coefficient: coefficient, Exponent: exponent})
	return nil
}

// search returns the index of the first term whose exponent is <= exponent.
func (p *Poly) search(exponent int) int {
	return sort.Search(len(p.terms), func(i int) bool {
		return p.terms[i].Exponent <= exponent
	})
}

// RemoveTerm deletes the term at exponent. Removing an absent term is a no-op.
func (p *Poly) RemoveTerm(exponent int) {
	for i, t := range p.terms {
		if t.Exponent < exponent {
			return
		}
		if t.Exponent == exponent {
			p.terms = slices.Delete(p.terms, i, i+1)
			return
		}
	}
}

// Degree returns the highest exponent in p. The zero polynomial reports 0,
// the same as a constant; use IsZero to tell them apart.
func (p *Poly) Degree() int {
	if len(p.terms) == 0 {
		return 0
	}
	return p.terms[0].Exponent
}

// Coefficient returns the coefficient of x^exponent, or 0 if there is none.
func (p *Poly) Coefficient(exponent int) int {
	for _, t := range p.terms {
		if t.Exponent == exponent {
			return t.Coefficient
		}
	}
	return 0
}

// Coefficients returns the non-zero coefficients keyed by exponent.
func (p *Poly) Coefficients() map[int]int {
	out := make(map[int]int, len(p.terms))
	for _, t := range p.terms {
		out[t.Exponent] = t.Coefficient
	}
	return out
}

// Equal reports whether p and other have exactly the same terms.
func (p *Poly) Equal(other TermSequence) bool {
	if other == nil {
		return false
	}
	if q, ok := other.(*Poly); ok {
		if q == nil {
			return false
		}
		return slices.Equal(p.terms, q.terms)
	}
	return slices.Equal(p.terms, other.Terms())
}

// ============================================================
// Evaluation
// ============================================================

// Evaluate returns p(x). Terms are summed from the highest exponent down.
func (p *Poly) Evaluate(x float64) float64 {
	var result float64
	for _, t := range p.terms {
		result += float64(t.Coefficient) * math.Pow(x, float64(t.Exponent))
	}
	return result
}

// ============================================================
// Addition
// ============================================================

// Add returns p + other as a new polynomial. Neither operand is modified and
// the result shares no storage with them.
func (p *Poly) Add(other TermSequence) (*Poly, error) {
	b, err := operandTerms(other)
	if err != nil {
		return nil, err
	}
	a := p.terms
	sum := &Poly{terms: make([]Term, 0, len(a)+len(b))}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Exponent > b[j].Exponent:
			sum.terms = append(sum.terms, a[i])
			i++
		case a[i].Exponent < b[j].Exponent:
			sum.terms = append(sum.terms, b[j])
			j++
		default:
			if c := a[i].Coefficient + b[j].Coefficient; c != 0 {
				sum.terms = append(sum.terms, Term{Coefficient: c, Exponent: a[i].Exponent})
			}
			i++
			j++
		}
	}
	sum.terms = append(sum.terms, a[i:]...)
	sum.terms = append(sum.terms, b[j:]...)
	return sum, nil
}

// operandTerms returns the terms of an Add operand, rejecting nil operands and
// foreign sequences that break the ordering contract.
func operandTerms(other TermSequence) ([]Term, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: nil operand", ErrInvalidOperandType)
	}
	if q, ok := other.(*Poly); ok {
		if q == nil {
			return nil, fmt.Errorf("%w: nil *Poly", ErrInvalidOperandType)
		}
		return q.terms, nil
	}
	terms := other.Terms()
	for k, t := range terms {
		if t.Coefficient == 0 || t.Exponent < 0 {
			return nil, fmt.Errorf("%w: %T has invalid term %+v", ErrInvalidOperandType, other, t)
		}
		if k > 0 && terms[k-1].Exponent <= t.Exponent {
			return nil, fmt.Errorf("%w: %T terms are not in strictly decreasing exponent order", ErrInvalidOperandType, other)
		}
	}
	return terms, nil
}

// ============================================================
// Canonical string form
// ============================================================

// String returns the canonical form, e.g. "3x^2+2x-4". The zero polynomial
// is "0". Parse accepts every string String produces.
func (p *Poly) String() string {
	if len(p.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range p.terms {
		// Magnitude comes from the formatted text; negating math.MinInt overflows.
		digits := strconv.Itoa(t.Coefficient)
		switch {
		case t.Coefficient < 0:
			sb.WriteByte('-')
			digits = digits[1:]
		case i > 0:
			sb.WriteByte('+')
		}
		if digits != "1" || t.Exponent == 0 {
			sb.WriteString(digits)
		}
		if t.Exponent > 0 {
			sb.WriteByte('x')
			if t.Exponent > 1 {
				sb.WriteByte('^')
				sb.WriteString(strconv.Itoa(t.Exponent))
			}
		}
	}
	return sb.String()
}
