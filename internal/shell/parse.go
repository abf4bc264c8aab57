package shell

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	bracketRe = regexp.MustCompile(`[(){}\[\]<>]`)
	delimRe   = regexp.MustCompile(`[, ;]+`)
)

// Tokenize splits a raw command line on whitespace.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// CheckArgCount returns a usage error when len(args) is not one of the
// allowed counts.
func CheckArgCount(args []string, allowed ...int) error {
	for _, n := range allowed {
		if len(args) == n {
			return nil
		}
	}
	counts := make([]string, len(allowed))
	for i, n := range allowed {
		counts[i] = strconv.Itoa(n)
	}
	return fmt.Errorf("command requires %s argument(s), %d given",
		strings.Join(counts, " or "), len(args))
}

// ParseTuple reads a delimited list spread across args[start:end] (end < 0
// means through the last argument). Brackets are stripped and any run of
// commas, semicolons or spaces separates elements.
func ParseTuple(args []string, start, end int) ([]string, error) {
	if start < 0 || start >= len(args) || (end >= 0 && end > len(args)) {
		return nil, fmt.Errorf("unable to read delimited list, expected as argument number %d", start+1)
	}
	slice := args[start:]
	if end >= 0 {
		slice = args[start:end]
	}

	joined := bracketRe.ReplaceAllString(strings.Join(slice, " "), "")
	var out []string
	for _, tok := range delimRe.Split(joined, -1) {
		if tok != "" {
			out = append(out, tok)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("unable to parse list argument, check syntax")
	}
	return out, nil
}

// ParseFloatTuple parses exactly n numeric values from args[start:].
func ParseFloatTuple(args []string, start, n int) ([]float64, error) {
	toks, err := ParseTuple(args, start, -1)
	if err != nil {
		return nil, err
	}
	if len(toks) != n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(toks))
	}
	vals := make([]float64, n)
	for i, tok := range toks {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse list argument, check syntax")
		}
		vals[i] = v
	}
	return vals, nil
}

// stripQuotes removes one matched pair of surrounding quotes. Mismatched
// pairs are left alone.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
