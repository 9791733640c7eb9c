// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package seed parses markdown seed documents into a types.Document.
//
// A seed document is plain markdown with a few literal markers:
//
//	## METADATA            key: value lines
//	## GLOBAL STYLES       a ```json fence
//	## SETTINGS            a ```json fence
//	### PAGE: <name>       blank line, then a ``` fence of key: value lines
//	**BLOCK <n>: <name>**  blank line, then a ``` fence holding key: value
//	                       lines, a CONTENT: JSON object and a STYLING: JSON object
//
// The parser scans lines for these markers; it never fails on malformed JSON,
// substituting an empty object and logging instead.
package seed

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/cms-seeder/internal/logging"
	"github.com/pdiddy/cms-seeder/pkg/types"
)

const (
	sectionMetadata     = "METADATA"
	sectionGlobalStyles = "GLOBAL STYLES"
	sectionSettings     = "SETTINGS"
)

// ErrSeedNotFound is returned by ParseFile when the seed file does not exist.
var ErrSeedNotFound = errors.New("seed file not found")

// ParseFile reads and parses the seed document at path.
func ParseFile(path string, log logging.Logger) (*types.Document, error) {
	log = logging.OrNoOp(log)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSeedNotFound, path)
		}
		return nil, fmt.Errorf("reading seed file %s: %w", path, err)
	}
	log.Info("Reading file: " + path)

	doc, err := Parse(string(data), log)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	log.Success(fmt.Sprintf("Parsed %d pages from markdown", len(doc.Pages)))
	return doc, nil
}

// Parse converts seed text into a Document. Parsing is a pure function of
// text: the only side effects are warnings written to log. Missing sections
// yield empty values; the only error is input that is not valid UTF-8.
func Parse(text string, log logging.Logger) (*types.Document, error) {
	if !utf8.ValidString(text) {
		return nil, errors.New("seed document is not valid UTF-8")
	}
	log = logging.OrNoOp(log)

	lines := splitLines(text)
	return &types.Document{
		Metadata:     parseKeyValues(section(lines, sectionMetadata)),
		GlobalStyles: jsonSection(lines, sectionGlobalStyles, log),
		Settings:     jsonSection(lines, sectionSettings, log),
		Pages:        extractPages(lines, log),
	}, nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}
