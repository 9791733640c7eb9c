// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Document is the parsed form of a seed file. It is produced once per run by
// the seed parser and is not modified afterwards.
type Document struct {
	// Metadata holds the key/value lines of the METADATA section. Keys are
	// lowercased (e.g. "client_name", "contact_email").
	Metadata map[string]string `json:"metadata" yaml:"metadata"`

	// GlobalStyles is the JSON fence of the GLOBAL STYLES section, or an
	// empty object when the section or fence is missing or malformed.
	GlobalStyles Value `json:"globalStyles" yaml:"globalStyles"`

	// Settings is the JSON fence of the SETTINGS section, with the same
	// fallback as GlobalStyles.
	Settings Value `json:"settings" yaml:"settings"`

	// Pages lists pages in document order.
	Pages []Page `json:"pages" yaml:"pages"`
}

// BlockCount returns the number of blocks across all pages.
func (d Document) BlockCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Blocks)
	}
	return n
}

// Page is a single "### PAGE:" entry.
type Page struct {
	// Name is the text after "### PAGE:". It is used for logging only; the
	// CMS title comes from Metadata["title"].
	Name string `json:"name" yaml:"name"`

	// Metadata holds the page's fenced key/value lines: title, slug, path,
	// template, meta_title, meta_description, meta_keywords, visible.
	Metadata map[string]string `json:"metadata" yaml:"metadata"`

	// Blocks lists content blocks in document order. Document order is not
	// the display order; that comes from each block's "order" metadata.
	Blocks []Block `json:"blocks" yaml:"blocks"`
}

// Block is a single "**BLOCK n: name**" entry inside a page.
type Block struct {
	Name string `json:"name" yaml:"name"`

	// Metadata holds the key/value lines preceding the CONTENT: label:
	// block_type, order, visible.
	Metadata map[string]string `json:"metadata" yaml:"metadata"`

	Content Value `json:"content" yaml:"content"`
	Styling Value `json:"styling" yaml:"styling"`
}
