package extract

import (
	"encoding/json"
	"strings"

	"stixify/internal/metrics"
)

// Recover parses sanitized model output into a JSON value, salvaging what it
// can. The stages run in order, stopping at the first success:
//
//  1. strict parse of the whole text
//  2. if the text looks truncated, append the missing closers and retry once
//  3. collect independently parseable {...} fragments
//
// Fragment salvage runs last because it discards the structure (and therefore
// the relationship context) between fragments; the cheap whole-document repair
// gets the first shot. The boolean is false only when every stage produced
// nothing. Recover never returns an error: the caller turns an empty result
// into policy, not into a failure.
func Recover(text string) (any, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		metrics.RecoveryOutcomes.WithLabelValues("failed").Inc()
		return nil, false
	}

	var v any
	err := json.Unmarshal([]byte(text), &v)
	if err == nil {
		metrics.RecoveryOutcomes.WithLabelValues("strict").Inc()
		return v, true
	}

	if truncated(err) && (text[0] == '{' || text[0] == '[') {
		if repaired, ok := repairTruncated(text); ok {
			metrics.RecoveryOutcomes.WithLabelValues("repair").Inc()
			return repaired, true
		}
	}

	if frags := salvageFragments(text); len(frags) > 0 {
		metrics.RecoveryOutcomes.WithLabelValues("salvage").Inc()
		return frags, true
	}

	metrics.RecoveryOutcomes.WithLabelValues("failed").Inc()
	return nil, false
}

// truncated reports whether the parse error indicates the document simply
// stopped early, the one failure mode bracket repair can fix.
func truncated(err error) bool {
	return strings.Contains(err.Error(), "unexpected end of JSON input")
}

// repairTruncated walks the text tracking string and escape state, stacking
// unmatched openers, and appends the exact closing tokens the text is missing.
// One strict re-parse decides whether the repair worked. Brackets inside string
// literals do not count; that is the whole reason this is a character walk and
// not a pair of strings.Count calls.
func repairTruncated(text string) (any, bool) {
	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(stack) == 0 && !inString {
		return nil, false
	}

	var b strings.Builder
	b.WriteString(text)
	if inString {
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			b.WriteByte('}')
		} else {
			b.WriteByte(']')
		}
	}

	var v any
	if err := json.Unmarshal([]byte(b.String()), &v); err != nil {
		return nil, false
	}
	return v, true
}

// salvageFragments scans for maximal balanced {...} spans, again tracking
// string and escape state so braces inside literals are ignored, and keeps
// every span that parses on its own. Fragments that fail to parse are dropped
// silently. The result slice preserves source order.
func salvageFragments(text string) []any {
	var out []any
	depth := 0
	start := -1
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start >= 0 {
				var v any
				if err := json.Unmarshal([]byte(text[start:i+1]), &v); err == nil {
					out = append(out, v)
				}
				start = -1
			}
		}
	}
	return out
}
