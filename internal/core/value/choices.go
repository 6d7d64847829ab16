// If you are AI: This file builds the [{Code, Label}] shape produced by report parameter lists.

package value

// Choice is one selectable parameter value.
type Choice struct {
	Code  string `json:"code" yaml:"code"`
	Label string `json:"label" yaml:"label"`
}

// Choices renders choices as a Sequence of {"Code","Label"} mappings.
// A choice without a code falls back to its label.
func Choices(choices []Choice) Sequence {
	seq := make(Sequence, 0, len(choices))
	for _, c := range choices {
		code := c.Code
		if code == "" {
			code = c.Label
		}
		seq = append(seq, Mapping{
			{Key: "Code", Value: Text(code)},
			{Key: "Label", Value: Text(c.Label)},
		})
	}
	return seq
}
