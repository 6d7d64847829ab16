// If you are AI: This file defines the tagged value model handed to the serializer.
// Producers build these once; the serializer only reads them.

package value

// Kind identifies the category of a Value.
type Kind uint8

// Value kinds
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindText
	KindSequence
	KindMapping
	KindUndefined
	KindFunc
	KindOpaque
)

var kindNames = [...]string{
	KindNull:      "null",
	KindBool:      "bool",
	KindNumber:    "number",
	KindText:      "text",
	KindSequence:  "sequence",
	KindMapping:   "mapping",
	KindUndefined: "undefined",
	KindFunc:      "func",
	KindOpaque:    "opaque",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is a node of a nested structure.
type Value interface {
	Kind() Kind
}

// Null is the null value.
type Null struct{}

// Bool is a boolean primitive.
type Bool bool

// Number is a numeric primitive.
type Number float64

// Text is a string primitive.
type Text string

// Sequence is an ordered, 0-indexed list of values.
type Sequence []Value

// Mapping is an ordered list of key/value members.
// Member order is the emission order; duplicate keys are kept as given.
type Mapping []Member

// Member is a single key/value entry of a Mapping.
type Member struct {
	Key   string
	Value Value
}

// Undefined is the host's undefined value.
type Undefined struct{}

// Func is a function value. Source is the text it coerces to.
type Func struct {
	Source string
}

// Opaque is any other host primitive. Text is the text it coerces to.
type Opaque struct {
	Text string
}

// Kind implements Value.
func (Null) Kind() Kind { return KindNull }

// Kind implements Value.
func (Bool) Kind() Kind { return KindBool }

// Kind implements Value.
func (Number) Kind() Kind { return KindNumber }

// Kind implements Value.
func (Text) Kind() Kind { return KindText }

// Kind implements Value.
func (Sequence) Kind() Kind { return KindSequence }

// Kind implements Value.
func (Mapping) Kind() Kind { return KindMapping }

// Kind implements Value.
func (Undefined) Kind() Kind { return KindUndefined }

// Kind implements Value.
func (Func) Kind() Kind { return KindFunc }

// Kind implements Value.
func (Opaque) Kind() Kind { return KindOpaque }

// IsContainer reports whether v is a Sequence or a Mapping.
func IsContainer(v Value) bool {
	if v == nil {
		return false
	}
	k := v.Kind()
	return k == KindSequence || k == KindMapping
}

// Get returns the value of the first member with the given key.
func (m Mapping) Get(key string) (Value, bool) {
	for _, member := range m {
		if member.Key == key {
			return member.Value, true
		}
	}
	return nil, false
}

// Keys returns member keys in emission order.
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for _, member := range m {
		keys = append(keys, member.Key)
	}
	return keys
}

// NewMapping builds a Mapping from alternating key/value arguments.
// Values go through FromGo; it panics on an odd argument count, a non-string
// key or an unconvertible value, so it is meant for literals.
func NewMapping(pairs ...any) Mapping {
	if len(pairs)%2 != 0 {
		panic("value: NewMapping needs key/value pairs")
	}
	m := make(Mapping, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic("value: NewMapping key must be a string")
		}
		v, err := FromGo(pairs[i+1])
		if err != nil {
			panic(err)
		}
		m = append(m, Member{Key: key, Value: v})
	}
	return m
}
