// If you are AI: This file wraps serialized text in a script element that declares a variable.
// The variable name is not validated here; outer layers call ValidVarName first.

package jsvar

import (
	"scriptvar/internal/core/value"
)

// DefaultVarName is used when no variable name is given.
const DefaultVarName = "config"

const (
	scriptOpen  = `<script type="text/javascript">var `
	scriptClose = `</script>`
)

// Embed serializes v with the reference rules and returns
// <script type="text/javascript">var varName=text</script>.
func Embed(v value.Value, varName string) string {
	return wrap(varName, Serialize(v))
}

// Embed serializes v once with the serializer's options and wraps the result.
func (s *Serializer) Embed(v value.Value, varName string) (string, error) {
	text, err := s.Serialize(v)
	if err != nil {
		return "", err
	}
	return wrap(varName, text), nil
}

// wrap formats the script template.
func wrap(varName, text string) string {
	if varName == "" {
		varName = DefaultVarName
	}
	return scriptOpen + varName + "=" + text + scriptClose
}

// reservedWords cannot be used as variable names.
var reservedWords = map[string]struct{}{
	"break": {}, "case": {}, "catch": {}, "class": {}, "const": {}, "continue": {},
	"debugger": {}, "default": {}, "delete": {}, "do": {}, "else": {}, "enum": {},
	"export": {}, "extends": {}, "false": {}, "finally": {}, "for": {}, "function": {},
	"if": {}, "import": {}, "in": {}, "instanceof": {}, "new": {}, "null": {},
	"return": {}, "super": {}, "switch": {}, "this": {}, "throw": {}, "true": {},
	"try": {}, "typeof": {}, "var": {}, "void": {}, "while": {}, "with": {},
	"let": {}, "static": {}, "yield": {}, "await": {}, "implements": {},
	"interface": {}, "package": {}, "private": {}, "protected": {}, "public": {},
}

// ValidVarName reports whether name is an ASCII identifier usable after var.
func ValidVarName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_' || c == '$':
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	_, reserved := reservedWords[name]
	return !reserved
}
