package gopoly

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ============================================================
// JSON Serialization
// ============================================================

// polyJSON is the object form of a polynomial:
//
//	{"terms":[{"coefficient":3,"exponent":2},{"coefficient":-1,"exponent":0}]}
type polyJSON struct {
	Terms []Term `json:"terms"`
}

// MarshalJSON encodes p in object form. The zero polynomial has an empty
// terms array.
func (p *Poly) MarshalJSON() ([]byte, error) {
	terms := p.terms
	if terms == nil {
		terms = []Term{}
	}
	return json.Marshal(polyJSON{Terms: terms})
}

// UnmarshalJSON accepts either the object form or a JSON string holding the
// textual form. Object terms are inserted one by one, so unordered or
// repeated exponents are normalised rather than trusted.
func (p *Poly) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		q, err := Parse(text)
		if err != nil {
			return err
		}
		p.terms = q.terms
		return nil
	}

	var raw polyJSON
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("gopoly: decode polynomial: %w", err)
	}
	q, err := FromTerms(raw.Terms...)
	if err != nil {
		return err
	}
	p.terms = q.terms
	return nil
}

// ToJSON returns the object form of p as a string.
func ToJSON(p *Poly) (string, error) {
	b, err := json.Marshal(p)
	return string(b), err
}

// FromJSON decodes a polynomial from either JSON form.
func FromJSON(data []byte) (*Poly, error) {
	p := New()
	if err := p.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return p, nil
}
