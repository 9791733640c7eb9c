// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package seed

import (
	"strings"

	"github.com/pdiddy/cms-seeder/internal/logging"
	"github.com/pdiddy/cms-seeder/pkg/types"
)

const (
	sectionPrefix = "## "
	fence         = "```"
	jsonFence     = "```json"
)

// section returns the text between the first "## <name>" heading line and
// the next "## " heading or the end of the document. The name must match
// exactly; a missing section yields "".
func section(lines []string, name string) string {
	heading := sectionPrefix + name
	start := -1
	for i, line := range lines {
		if strings.TrimRight(line, " \t") == heading {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return ""
	}

	end := len(lines)
	for i := start; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], sectionPrefix) {
			end = i
			break
		}
	}
	return strings.Join(lines[start:end], "\n")
}

// parseKeyValues reads "key: value" lines after removing fenced code.
// Keys are trimmed and lowercased, values trimmed. Lines without a colon and
// lines starting with '#' are ignored; later keys overwrite earlier ones.
func parseKeyValues(text string) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(stripFences(text), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		out[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return out
}

// stripFences removes every ```...``` span, pairing delimiters left to right.
// An unpaired opening delimiter is left in place.
func stripFences(text string) string {
	for {
		start := strings.Index(text, fence)
		if start < 0 {
			return text
		}
		end := strings.Index(text[start+len(fence):], fence)
		if end < 0 {
			return text
		}
		text = text[:start] + text[start+len(fence)+end+len(fence):]
	}
}

// jsonFenceBody returns the trimmed contents of the first ```json fence.
func jsonFenceBody(text string) (string, bool) {
	start := strings.Index(text, jsonFence)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(jsonFence):]
	end := strings.Index(rest, fence)
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// jsonSection decodes the first ```json fence of a section. A missing
// section or fence yields {}; malformed JSON is logged and yields {}.
func jsonSection(lines []string, name string, log logging.Logger) types.Value {
	body, ok := jsonFenceBody(section(lines, name))
	if !ok {
		return types.EmptyObject()
	}
	v, err := types.ParseValue([]byte(body))
	if err != nil {
		log.Error("Failed to parse JSON in "+name, "error", err)
		return types.EmptyObject()
	}
	return v
}
