package bridge

import (
	"fmt"
	"math"

	"github.com/yourusername/nfx-chrome/internal/types"
)

// paramError reports a missing or malformed request parameter
type paramError struct {
	key string
	msg string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid param %q: %s", e.key, e.msg)
}

func intParam(p map[string]interface{}, key string) (int, error) {
	v, ok := p[key]
	if !ok {
		return 0, &paramError{key: key, msg: "missing"}
	}
	f, ok := v.(float64)
	if !ok {
		return 0, &paramError{key: key, msg: fmt.Sprintf("expected number, got %T", v)}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &paramError{key: key, msg: "not finite"}
	}
	return int(math.Round(f)), nil
}

func stringParam(p map[string]interface{}, key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", &paramError{key: key, msg: "missing"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &paramError{key: key, msg: fmt.Sprintf("expected string, got %T", v)}
	}
	return s, nil
}

func boolParam(p map[string]interface{}, key string) (bool, error) {
	v, ok := p[key]
	if !ok {
		return false, &paramError{key: key, msg: "missing"}
	}
	b, ok := v.(bool)
	if !ok {
		return false, &paramError{key: key, msg: fmt.Sprintf("expected bool, got %T", v)}
	}
	return b, nil
}

// edgeParam returns the optional edge param; ok is false when absent
func edgeParam(p map[string]interface{}) (types.Edge, bool, error) {
	v, present := p["edge"]
	if !present || v == nil {
		return types.EdgeNone, false, nil
	}
	name, ok := v.(string)
	if !ok {
		return 0, false, &paramError{key: "edge", msg: fmt.Sprintf("expected string, got %T", v)}
	}
	edge, ok := types.ParseEdge(name)
	if !ok {
		return 0, false, &paramError{key: "edge", msg: fmt.Sprintf("unknown edge %q", name)}
	}
	return edge, true, nil
}
