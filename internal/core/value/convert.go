// If you are AI: This file converts plain Go data into the tagged value model.
// Go maps have no stable order, so their keys are sorted before emission.

package value

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnsupportedValue = errors.New("unsupported value")
	ErrCyclicStructure  = errors.New("cyclic or too deeply nested structure")
)

// MaxDepth bounds the nesting FromGo will follow before giving up.
const MaxDepth = 1000

// FromGo converts v into a Value.
// Supported inputs: nil, bool, integer and float kinds, string, []any,
// []string, map[string]any, map[string]string, Value and fmt.Stringer.
func FromGo(v any) (Value, error) {
	return fromGo(v, 0)
}

// fromGo converts v at the given nesting depth.
func fromGo(v any, depth int) (Value, error) {
	if depth > MaxDepth {
		return nil, ErrCyclicStructure
	}

	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return Text(x), nil
	case int:
		return Number(x), nil
	case int8:
		return Number(x), nil
	case int16:
		return Number(x), nil
	case int32:
		return Number(x), nil
	case int64:
		return Number(x), nil
	case uint:
		return Number(x), nil
	case uint8:
		return Number(x), nil
	case uint16:
		return Number(x), nil
	case uint32:
		return Number(x), nil
	case uint64:
		return Number(x), nil
	case float32:
		return Number(x), nil
	case float64:
		return Number(x), nil
	case []string:
		seq := make(Sequence, len(x))
		for i, s := range x {
			seq[i] = Text(s)
		}
		return seq, nil
	case []any:
		seq := make(Sequence, len(x))
		for i, elem := range x {
			ev, err := fromGo(elem, depth+1)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			seq[i] = ev
		}
		return seq, nil
	case map[string]string:
		m := make(Mapping, 0, len(x))
		for _, key := range sortedKeys(x) {
			m = append(m, Member{Key: key, Value: Text(x[key])})
		}
		return m, nil
	case map[string]any:
		m := make(Mapping, 0, len(x))
		for _, key := range sortedKeys(x) {
			mv, err := fromGo(x[key], depth+1)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			m = append(m, Member{Key: key, Value: mv})
		}
		return m, nil
	case fmt.Stringer:
		return Opaque{Text: x.String()}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

// sortedKeys returns the keys of m in lexicographic order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
