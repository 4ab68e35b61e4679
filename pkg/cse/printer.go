package cse

import (
	"strconv"
	"strings"
)

// Format renders a final (or Print-ed) value the way the language's
// textual output is expected to read: scalars print bare, tuples print
// parenthesized and comma-separated, recursively. Grounded on
// _examples/original_source/src/cse_machine/machine.py's _format_tuple,
// generalized to cover every Value kind the machine produces.
func Format(v Value) string {
	switch val := v.(type) {
	case IntValue:
		return strconv.FormatInt(int64(val), 10)
	case StringValue:
		return expandEscapes(string(val))
	case BoolValue:
		if val {
			return "true"
		}
		return "false"
	case DummyValue:
		return "dummy"
	case *TupleValue:
		return formatTuple(val)
	case *Closure:
		return "[function]"
	case *EtaValue:
		return "[function]"
	case BuiltinValue:
		return "[function]"
	default:
		return "[unprintable value]"
	}
}

// escapeExpander expands the backslash escapes spec.md §4.7 reserves for
// output time; Unquote (pkg/lexer) already expanded "\'" eagerly, but
// strings.NewReplacer scans left to right in one pass, so re-matching it
// here is harmless.
var escapeExpander = strings.NewReplacer(
	`\n`, "\n",
	`\t`, "\t",
	`\r`, "\r",
	`\"`, `"`,
	`\'`, `'`,
	`\\`, `\`,
)

func expandEscapes(s string) string {
	return escapeExpander.Replace(s)
}

func formatTuple(t *TupleValue) string {
	if len(t.Elements) == 0 {
		return "nil"
	}
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = Format(e)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
