package pipeline

import (
	"encoding/json"
	"math"

	"github.com/rotisserie/eris"

	"github.com/arpriyadarshi/ey-pharma/internal/agent"
)

// NormalizeOutputs serializes each agent summary into JSON the synthesis
// model can consume. Dynamic values are scrubbed first: json.Number
// becomes float64, and non-finite floats collapse to 0 so the payload
// always marshals.
func NormalizeOutputs(outputs agent.Outputs) (map[string]json.RawMessage, error) {
	norm := make(map[string]json.RawMessage, len(outputs))
	for key, v := range outputs {
		data, err := json.Marshal(normalizeValue(v))
		if err != nil {
			return nil, eris.Wrapf(err, "normalize: marshal %s", key)
		}
		norm[key] = data
	}
	return norm, nil
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		return normalizeValue(f)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0.0
		}
		return t
	case float32:
		return normalizeValue(float64(t))
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	default:
		// Typed summaries marshal through their own json tags.
		return v
	}
}
