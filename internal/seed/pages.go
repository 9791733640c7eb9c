// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package seed

import (
	"strings"

	"github.com/pdiddy/cms-seeder/internal/logging"
	"github.com/pdiddy/cms-seeder/pkg/types"
)

const (
	pagePrefix   = "### PAGE:"
	blockPrefix  = "**BLOCK "
	blockSuffix  = "**"
	rulePrefix   = "---"
	contentLabel = "CONTENT:"
	stylingLabel = "STYLING:"
)

// extractPages finds every "### PAGE:" heading followed by a blank line and
// an untagged fence of page metadata. A page's blocks are read from the
// lines after that fence up to the next page heading or "---" rule.
func extractPages(lines []string, log logging.Logger) []types.Page {
	pages := []types.Page{}
	for i := 0; i < len(lines); i++ {
		name, ok := pageHeading(lines[i])
		if !ok {
			continue
		}
		header, next, ok := fencedBody(lines, i+1)
		if !ok {
			log.Warn("Skipping page without a metadata block: " + name)
			continue
		}

		end := pageEnd(lines, next)
		pages = append(pages, types.Page{
			Name:     name,
			Metadata: parseKeyValues(strings.Join(header, "\n")),
			Blocks:   extractBlocks(lines[next:end], log),
		})
		i = next - 1
	}
	return pages
}

func pageHeading(line string) (string, bool) {
	if !strings.HasPrefix(line, pagePrefix) {
		return "", false
	}
	return strings.TrimSpace(line[len(pagePrefix):]), true
}

// pageEnd returns the index of the first line at or after from that starts
// another page or is a horizontal rule, or len(lines).
func pageEnd(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], pagePrefix) || strings.HasPrefix(lines[i], rulePrefix) {
			return i
		}
	}
	return len(lines)
}

// fencedBody expects lines[at] to be blank and lines[at+1] to open an
// untagged fence. It returns the lines inside the fence and the index just
// past the closing delimiter.
func fencedBody(lines []string, at int) ([]string, int, bool) {
	if at+1 >= len(lines) {
		return nil, 0, false
	}
	if strings.TrimSpace(lines[at]) != "" || strings.TrimRight(lines[at+1], " \t") != fence {
		return nil, 0, false
	}
	for i := at + 2; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], fence) {
			return lines[at+2 : i], i + 1, true
		}
	}
	return nil, 0, false
}

func extractBlocks(region []string, log logging.Logger) []types.Block {
	blocks := []types.Block{}
	for i := 0; i < len(region); i++ {
		name, ok := blockMarker(region[i])
		if !ok {
			continue
		}
		body, next, ok := fencedBody(region, i+1)
		if !ok {
			log.Warn("Skipping block without a fenced body: " + name)
			continue
		}
		blocks = append(blocks, parseBlock(name, body, log))
		i = next - 1
	}
	return blocks
}

// blockMarker matches "**BLOCK <digits>: <name>**". The number is not used.
func blockMarker(line string) (string, bool) {
	line = strings.TrimRight(line, " \t")
	if !strings.HasPrefix(line, blockPrefix) || !strings.HasSuffix(line, blockSuffix) {
		return "", false
	}
	rest := line[len(blockPrefix) : len(line)-len(blockSuffix)]

	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits == 0 || !strings.HasPrefix(rest[digits:], ": ") {
		return "", false
	}
	return strings.TrimSpace(rest[digits+2:]), true
}

// parseBlock splits a block body into metadata lines, the CONTENT: object
// and the STYLING: object. Metadata is read from the lines before the first
// label. Each object that fails to parse is replaced by {} with a warning.
func parseBlock(name string, body []string, log logging.Logger) types.Block {
	contentAt := labelIndex(body, contentLabel)
	stylingAt := labelIndex(body, stylingLabel)

	metaEnd := len(body)
	for _, at := range []int{contentAt, stylingAt} {
		if at >= 0 && at < metaEnd {
			metaEnd = at
		}
	}

	return types.Block{
		Name:     name,
		Metadata: parseKeyValues(strings.Join(body[:metaEnd], "\n")),
		Content:  decodeObject(labelText(body, contentAt, stylingAt, contentLabel), "content", name, log),
		Styling:  decodeObject(labelText(body, stylingAt, contentAt, stylingLabel), "styling", name, log),
	}
}

func labelIndex(body []string, label string) int {
	for i, line := range body {
		if strings.HasPrefix(strings.TrimSpace(line), label) {
			return i
		}
	}
	return -1
}

// labelText returns the text following the label on line at, up to the
// other label's line when it comes later, or the end of the body.
func labelText(body []string, at, other int, label string) string {
	if at < 0 {
		return ""
	}
	end := len(body)
	if other > at {
		end = other
	}
	first := strings.TrimPrefix(strings.TrimSpace(body[at]), label)
	parts := append([]string{first}, body[at+1:end]...)
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func decodeObject(text, field, block string, log logging.Logger) types.Value {
	if text == "" {
		return types.EmptyObject()
	}
	v, err := types.ParseValue([]byte(text))
	if err != nil {
		log.Warn("Failed to parse "+field+" JSON for block: "+block, "error", err)
		return types.EmptyObject()
	}
	if v.Kind() != types.KindObject {
		log.Warn("Expected a JSON object for "+field+" of block: "+block, "kind", v.Kind())
		return types.EmptyObject()
	}
	return v
}
