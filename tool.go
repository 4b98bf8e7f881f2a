package gopoly

import (
	"encoding/json"
	"fmt"
	"math"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall runs a single stateless tool call. Polynomial params may be
// given as text ("3x^2+1") or in JSON object form. Tools that change a
// polynomial return the changed copy; nothing is kept between calls.
func HandleToolCall(req ToolRequest) ToolResponse {
	getPoly := func(key string) (*Poly, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		switch v.(type) {
		case string, map[string]interface{}:
		default:
			return nil, fmt.Errorf("param %s must be a string or polynomial object", key)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", key, err)
		}
		p, err := FromJSON(b)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", key, err)
		}
		return p, nil
	}
	getNumber := func(key string) (float64, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, fmt.Errorf("missing param: %s", key)
		}
		switch n := v.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case json.Number:
			return n.Float64()
		}
		return 0, fmt.Errorf("param %s must be a number", key)
	}
	getInt := func(key string) (int, error) {
		f, err := getNumber(key)
		if err != nil {
			return 0, err
		}
		if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
			return 0, fmt.Errorf("param %s must be an integer", key)
		}
		return int(f), nil
	}

	respond := func(p *Poly) ToolResponse {
		return ToolResponse{Result: p, String: p.String()}
	}
	fail := func(err error) ToolResponse {
		return ToolResponse{Error: err.Error()}
	}

	switch req.Tool {
	case "parse", "to_string":
		p, err := getPoly("poly")
		if err != nil {
			return fail(err)
		}
		return respond(p)

	case "degree":
		p, err := getPoly("poly")
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: p.Degree(), String: fmt.Sprint(p.Degree())}

	case "is_zero":
		p, err := getPoly("poly")
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: p.IsZero(), String: fmt.Sprint(p.IsZero())}

	case "coefficient":
		p, err := getPoly("poly")
		if err != nil {
			return fail(err)
		}
		e, err := getInt("exponent")
		if err != nil {
			return fail(err)
		}
		c := p.Coefficient(e)
		return ToolResponse{Result: c, String: fmt.Sprint(c)}

	case "evaluate":
		p, err := getPoly("poly")
		if err != nil {
			return fail(err)
		}
		x, err := getNumber("x")
		if err != nil {
			return fail(err)
		}
		v := p.Evaluate(x)
		return ToolResponse{Result: v, String: fmt.Sprint(v)}

	case "add":
		a, err := getPoly("a")
		if err != nil {
			return fail(err)
		}
		b, err := getPoly("b")
		if err != nil {
			return fail(err)
		}
		sum, err := a.Add(b)
		if err != nil {
			return fail(err)
		}
		return respond(sum)

	case "add_term":
		p, err := getPoly("poly")
		if err != nil {
			return fail(err)
		}
		c, err := getInt("coefficient")
		if err != nil {
			return fail(err)
		}
		e, err := getInt("exponent")
		if err != nil {
			return fail(err)
		}
		if err := p.AddTerm(c, e); err != nil {
			return fail(err)
		}
		return respond(p)

	case "remove_term":
		p, err := getPoly("poly")
		if err != nil {
			return fail(err)
		}
		e, err := getInt("exponent")
		if err != nil {
			return fail(err)
		}
		p.RemoveTerm(e)
		return respond(p)

	case "mcp_spec":
		return ToolResponse{Result: MCPToolSpec(), String: "MCP tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ============================================================
// MCP spec
// ============================================================

func MCPToolSpec() string {
	poly := map[string]string{"poly": "polynomial"}
	tools := []map[string]interface{}{
		ts("parse", "Parse text such as \"3x^2 + 2x - 4\" into a polynomial", []string{"poly"}, poly),
		ts("to_string", "Canonical text form of a polynomial", []string{"poly"}, poly),
		ts("degree", "Highest exponent (0 for the zero polynomial)", []string{"poly"}, poly),
		ts("is_zero", "Whether the polynomial has no terms", []string{"poly"}, poly),
		ts("coefficient", "Coefficient of x^exponent", []string{"poly", "exponent"}, map[string]string{"poly": "polynomial", "exponent": "integer"}),
		ts("evaluate", "Evaluate the polynomial at x", []string{"poly", "x"}, map[string]string{"poly": "polynomial", "x": "number"}),
		ts("add", "Sum of two polynomials", []string{"a", "b"}, map[string]string{"a": "polynomial", "b": "polynomial"}),
		ts("add_term", "Add coefficient*x^exponent, combining like terms", []string{"poly", "coefficient", "exponent"}, map[string]string{"poly": "polynomial", "coefficient": "integer", "exponent": "integer"}),
		ts("remove_term", "Remove the term at exponent", []string{"poly", "exponent"}, map[string]string{"poly": "polynomial", "exponent": "integer"}),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

// ts builds one tool entry. The "polynomial" pseudo-type accepts either a
// string or an object with a terms array.
func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		if typ == "polynomial" {
			properties[k] = map[string]interface{}{
				"type": []string{"string", "object"},
			}
			continue
		}
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
