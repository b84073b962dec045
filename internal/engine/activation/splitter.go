// Package activation implements the activation script language, its
// dependency tracking cache and the profile selector built on top of them.
package activation

import "strings"

// SplitArgs splits args into its top-level comma separated terms. Commas
// nested inside parentheses do not split. Terms are trimmed. The trailing
// term is emitted only when the parentheses balance at the end of args.
func SplitArgs(args string) []string {
	var terms []string
	depth := 0
	start := 0
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				terms = append(terms, strings.TrimSpace(args[start:i]))
				start = i + 1
			}
		}
	}
	if depth == 0 {
		terms = append(terms, strings.TrimSpace(args[start:]))
	}
	return terms
}
