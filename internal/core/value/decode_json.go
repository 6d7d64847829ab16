// If you are AI: This file decodes JSON text into the tagged value model.
// Object members keep document order, duplicates included.

package value

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/go-json-experiment/json/jsontext"
)

// DecodeJSON reads exactly one JSON value from r.
// Object members keep their order, duplicate names included.
func DecodeJSON(r io.Reader) (Value, error) {
	dec := jsontext.NewDecoder(r, jsontext.AllowDuplicateNames(true))

	v, err := decodeJSONValue(dec, 0)
	if err != nil {
		if err == io.EOF {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("decode json: %w", err)
	}

	// Reject trailing values
	if _, err := dec.ReadToken(); err != io.EOF {
		if err == nil {
			return nil, errors.New("decode json: unexpected data after top-level value")
		}
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

// decodeJSONValue reads one value, recursing into arrays and objects.
func decodeJSONValue(dec *jsontext.Decoder, depth int) (Value, error) {
	if depth > MaxDepth {
		return nil, ErrCyclicStructure
	}

	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}

	switch tok.Kind() {
	case 'n':
		return Null{}, nil
	case 't', 'f':
		return Bool(tok.Bool()), nil
	case '"':
		return Text(tok.String()), nil
	case '0':
		return parseJSONNumber(tok.String())
	case '[':
		seq := Sequence{}
		for {
			k, err := peekKind(dec)
			if err != nil {
				return nil, err
			}
			if k == ']' {
				break
			}
			elem, err := decodeJSONValue(dec, depth+1)
			if err != nil {
				return nil, err
			}
			seq = append(seq, elem)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return seq, nil
	case '{':
		m := Mapping{}
		for {
			k, err := peekKind(dec)
			if err != nil {
				return nil, err
			}
			if k == '}' {
				break
			}
			name, err := dec.ReadToken()
			if err != nil {
				return nil, err
			}
			// The token is invalidated by the next decoder call
			key := name.String()
			member, err := decodeJSONValue(dec, depth+1)
			if err != nil {
				return nil, err
			}
			m = append(m, Member{Key: key, Value: member})
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok.Kind())
	}
}

// parseJSONNumber converts a number literal the way a script engine evaluates it.
// Literals beyond the float64 range become ±Inf.
func parseJSONNumber(raw string) (Value, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, fmt.Errorf("number %q: %w", raw, err)
	}
	return Number(f), nil
}

// peekKind returns the next token kind, surfacing the decoder error when
// nothing valid follows.
func peekKind(dec *jsontext.Decoder) (jsontext.Kind, error) {
	if k := dec.PeekKind(); k != 0 {
		return k, nil
	}
	if _, err := dec.ReadToken(); err != nil {
		if err == io.EOF {
			return 0, io.ErrUnexpectedEOF
		}
		return 0, err
	}
	return 0, io.ErrUnexpectedEOF
}
