package extract

import "strings"

// Sanitize reduces a raw model completion to the substring most likely to be a
// JSON document. It strips markdown code fences, trims whitespace, and drops
// any prose before the first '{' or '['. It never fails; when no JSON start
// token exists the cleaned text is returned as-is and the recovery parser is
// left to reject it.
func Sanitize(raw string) string {
	text := stripFences(raw)
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	if text[0] == '{' || text[0] == '[' {
		return text
	}
	if idx := strings.IndexAny(text, "{["); idx >= 0 {
		return text[idx:]
	}
	return text
}

// stripFences removes triple-backtick fence markers, optionally tagged "json",
// wherever they appear on a line. Fence-only lines are dropped entirely;
// markers glued to content are cut out of the line.
func stripFences(raw string) string {
	if !strings.Contains(raw, "```") {
		return raw
	}
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "```" || trimmed == "```json" {
			continue
		}
		if rest, ok := strings.CutPrefix(trimmed, "```json"); ok {
			trimmed = rest
		} else if rest, ok := strings.CutPrefix(trimmed, "```"); ok {
			trimmed = rest
		}
		trimmed = strings.TrimSuffix(trimmed, "```")
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n")
}
