// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractors

import (
	"regexp"
	"strconv"
	"strings"
)

// call is one recognized constructor-style invocation in source text.
type call struct {
	// assignee is the variable name on the left of an assignment,
	// e.g. "researcher" in researcher = Agent(...). Empty when the call
	// is not assigned.
	assignee string

	// receiver is the object a method is called on, e.g. "graph" in
	// graph.add_node(...). Empty for bare constructor calls.
	receiver string

	// positional holds raw positional argument expressions in order.
	positional []string

	// kwargs maps keyword argument names to their raw value expressions.
	kwargs map[string]string

	// keys lists kwarg names in declaration order.
	keys []string

	// offset is the byte offset of the call, for declaration ordering.
	offset int
}

// kwarg returns the unquoted string value of a keyword argument.
func (c call) kwarg(name string) string {
	return unquote(c.kwargs[name])
}

// callPattern builds the regexp locating `name(` invocations, optionally
// preceded by `var =` and/or `receiver.`.
func callPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?:([A-Za-z_]\w*)\s*=\s*)?(?:([A-Za-z_]\w*)\s*\.\s*)?\b` + name + `\s*\(`)
}

// findCalls locates every `name(...)` invocation in src and parses its
// argument list structurally. The source is treated purely as text: strings
// are skipped, brackets balanced, nothing is evaluated. Calls appear in
// textual order.
func findCalls(src, name string) []call {
	re := callPattern(name)
	var calls []call
	for _, m := range re.FindAllStringSubmatchIndex(src, -1) {
		openParen := m[1] - 1 // match ends just past '('
		body, ok := scanBalanced(src, openParen)
		if !ok {
			continue
		}

		c := call{
			kwargs: make(map[string]string),
			offset: m[0],
		}
		if m[2] >= 0 {
			c.assignee = src[m[2]:m[3]]
		}
		if m[4] >= 0 {
			c.receiver = src[m[4]:m[5]]
		}

		for _, arg := range splitArgs(body) {
			key, value, isKwarg := splitKwarg(arg)
			if isKwarg {
				c.kwargs[key] = value
				c.keys = append(c.keys, key)
			} else if arg != "" {
				c.positional = append(c.positional, arg)
			}
		}
		calls = append(calls, c)
	}
	return calls
}

// scanBalanced returns the text between the parenthesis at openIdx and its
// matching close, skipping string literals (single, double, and triple
// quoted, with backslash escapes).
func scanBalanced(src string, openIdx int) (string, bool) {
	depth := 0
	i := openIdx
	for i < len(src) {
		switch src[i] {
		case '(':
			depth++
			i++
		case ')':
			depth--
			if depth == 0 {
				return src[openIdx+1 : i], true
			}
			i++
		case '\'', '"':
			end, ok := skipString(src, i)
			if !ok {
				return "", false
			}
			i = end
		case '#':
			// Comment runs to end of line.
			for i < len(src) && src[i] != '\n' {
				i++
			}
		default:
			i++
		}
	}
	return "", false
}

// skipString advances past the string literal starting at i and returns the
// index just past its closing quote.
func skipString(src string, i int) (int, bool) {
	quote := src[i]
	triple := strings.HasPrefix(src[i:], strings.Repeat(string(quote), 3))
	if triple {
		end := strings.Index(src[i+3:], strings.Repeat(string(quote), 3))
		if end < 0 {
			return 0, false
		}
		return i + 3 + end + 3, true
	}
	j := i + 1
	for j < len(src) {
		if src[j] == '\\' {
			j += 2
			continue
		}
		if src[j] == quote {
			return j + 1, true
		}
		if src[j] == '\n' {
			// Unterminated single-line string; treat the line as opaque.
			return j, true
		}
		j++
	}
	return 0, false
}

// splitArgs splits an argument list on top-level commas, respecting nested
// brackets and string literals.
func splitArgs(body string) []string {
	var (
		args  []string
		depth int
		start int
	)
	i := 0
	for i < len(body) {
		switch body[i] {
		case '(', '[', '{':
			depth++
			i++
		case ')', ']', '}':
			depth--
			i++
		case '\'', '"':
			end, ok := skipString(body, i)
			if !ok {
				i = len(body)
			} else {
				i = end
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(body[start:i]))
				start = i + 1
			}
			i++
		default:
			i++
		}
	}
	if last := strings.TrimSpace(body[start:]); last != "" {
		args = append(args, last)
	}
	return args
}

var kwargPattern = regexp.MustCompile(`^([A-Za-z_]\w*)\s*=\s*(.*)$`)

// splitKwarg separates `key=value` arguments from positional ones. A `==`
// comparison is not a kwarg.
func splitKwarg(arg string) (key, value string, ok bool) {
	m := kwargPattern.FindStringSubmatch(strings.TrimSpace(arg))
	if m == nil || strings.HasPrefix(m[2], "=") {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

// unquote strips Python string literal syntax from a raw expression:
// optional f/r/b prefixes, triple or single quoting, and common escapes.
// Non-string expressions are returned trimmed.
func unquote(raw string) string {
	s := strings.TrimSpace(raw)
	// Strip f/r/b literal prefixes only when a quote actually follows.
	for len(s) > 1 && strings.ContainsRune("frbFRB", rune(s[0])) && (s[1] == '"' || s[1] == '\'' || (len(s) > 2 && strings.ContainsRune("frbFRB", rune(s[1])) && (s[2] == '"' || s[2] == '\''))) {
		s = s[1:]
	}
	for _, q := range []string{`"""`, `'''`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 6 {
			return dedentLiteral(s[3 : len(s)-3])
		}
	}
	for _, q := range []string{`"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2 {
			inner := s[1 : len(s)-1]
			inner = strings.ReplaceAll(inner, `\`+q, q)
			inner = strings.ReplaceAll(inner, `\n`, "\n")
			inner = strings.ReplaceAll(inner, `\\`, `\`)
			return inner
		}
	}
	return strings.TrimSpace(raw)
}

// dedentLiteral trims surrounding blank space from triple-quoted bodies and
// collapses per-line indentation.
func dedentLiteral(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// parseScalar interprets a raw argument expression as a scalar attribute
// value: booleans, integers, floats, or strings. Identifiers and anything
// unrecognized stay strings.
func parseScalar(raw string) any {
	s := strings.TrimSpace(raw)
	switch s {
	case "True", "true":
		return true
	case "False", "false":
		return false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return unquote(s)
}

// listItems splits a raw `[a, b, c]` expression into its unquoted elements.
// Non-list expressions yield a single element.
func listItems(raw string) []string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		var items []string
		for _, part := range splitArgs(s[1 : len(s)-1]) {
			if v := unquote(part); v != "" {
				items = append(items, v)
			}
		}
		return items
	}
	if v := unquote(s); v != "" {
		return []string{v}
	}
	return nil
}
