// If you are AI: This file implements the recursive serializer that turns a value tree
// into script-evaluable text. Numbers are quoted and nested nulls become {}.

package jsvar

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"scriptvar/internal/core/value"
)

// Options tunes the serializer. The zero value reproduces the reference output.
type Options struct {
	// StrictNull emits nested nulls as null instead of {}.
	StrictNull bool
	// MaxDepth rejects nesting deeper than this with ErrCyclicStructure.
	// Zero means unlimited.
	MaxDepth int
	// Strict rejects Func, Opaque and foreign Value types with ErrUnsupportedValue
	// instead of coercing them to text. It also rejects mapping keys that would
	// break out of the quoted key or the surrounding script element.
	Strict bool
}

// Serializer converts values to text. It holds no state besides its options
// and is safe for concurrent use.
type Serializer struct {
	opts Options
}

// New creates a serializer with the given options.
func New(opts Options) *Serializer {
	return &Serializer{opts: opts}
}

// Options returns the options the serializer was built with.
func (s *Serializer) Options() Options {
	return s.opts
}

// lenient is the reference serializer used by the package-level helpers.
var lenient = New(Options{})

// Serialize converts v to text with the reference rules. It never fails.
// Cyclic input recurses without bound.
func Serialize(v value.Value) string {
	out, _ := lenient.Serialize(v)
	return out
}

// Serialize converts v to text, reporting failures the options ask for.
func (s *Serializer) Serialize(v value.Value) (string, error) {
	var b strings.Builder
	if err := s.encode(&b, v, 0); err != nil {
		return "", prependPath(err, "$")
	}
	return b.String(), nil
}

// Encode writes the serialized form of v to w.
func (s *Serializer) Encode(w io.Writer, v value.Value) error {
	out, err := s.Serialize(v)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// encode writes v at the given depth. Depth 0 is the top-level argument,
// the only place a null prints as null in the reference rules.
func (s *Serializer) encode(b *strings.Builder, v value.Value, depth int) error {
	if s.opts.MaxDepth > 0 && depth > s.opts.MaxDepth {
		return newError(KindCyclicStructure, fmt.Errorf("%w: depth exceeds %d", ErrCyclicStructure, s.opts.MaxDepth))
	}

	if v == nil {
		v = value.Null{}
	}

	switch x := v.(type) {
	case value.Null:
		if depth == 0 || s.opts.StrictNull {
			b.WriteString("null")
		} else {
			b.WriteString("{}")
		}
	case value.Text:
		b.WriteString(quoteText(string(x)))
	case value.Number:
		b.WriteByte('"')
		b.WriteString(FormatNumber(float64(x)))
		b.WriteByte('"')
	case value.Bool:
		b.WriteString(strconv.FormatBool(bool(x)))
	case value.Undefined:
		b.WriteString("undefined")
	case value.Func:
		if s.opts.Strict {
			return newError(KindUnsupportedValue, fmt.Errorf("%w: func", ErrUnsupportedValue))
		}
		b.WriteString(x.Source)
	case value.Opaque:
		if s.opts.Strict {
			return newError(KindUnsupportedValue, fmt.Errorf("%w: opaque", ErrUnsupportedValue))
		}
		b.WriteString(x.Text)
	case value.Sequence:
		return s.encodeSequence(b, x, depth)
	case value.Mapping:
		return s.encodeMapping(b, x, depth)
	default:
		if s.opts.Strict {
			return newError(KindUnsupportedValue, fmt.Errorf("%w: %T", ErrUnsupportedValue, v))
		}
		fmt.Fprint(b, v)
	}
	return nil
}

// encodeSequence writes elements positionally inside brackets.
func (s *Serializer) encodeSequence(b *strings.Builder, seq value.Sequence, depth int) error {
	b.WriteByte('[')
	for i, elem := range seq {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := s.encode(b, elem, depth+1); err != nil {
			return prependPath(err, "["+strconv.Itoa(i)+"]")
		}
	}
	b.WriteByte(']')
	return nil
}

// encodeMapping writes "key":value members inside braces.
// Keys are quoted as given, without escaping.
func (s *Serializer) encodeMapping(b *strings.Builder, m value.Mapping, depth int) error {
	b.WriteByte('{')
	for i, member := range m {
		if i > 0 {
			b.WriteByte(',')
		}
		if s.opts.Strict && unsafeKey(member.Key) {
			err := newError(KindUnsupportedValue, fmt.Errorf("%w: key %q", ErrUnsupportedValue, member.Key))
			return prependPath(err, "."+member.Key)
		}
		b.WriteByte('"')
		b.WriteString(member.Key)
		b.WriteString(`":`)
		if err := s.encode(b, member.Value, depth+1); err != nil {
			return prependPath(err, "."+member.Key)
		}
	}
	b.WriteByte('}')
	return nil
}

// unsafeKey reports whether a key cannot be written unescaped inside quotes
// in an HTML script element.
func unsafeKey(key string) bool {
	return strings.ContainsAny(key, "\"<\n\r\u2028\u2029")
}
