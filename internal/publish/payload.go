// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/cms-seeder/pkg/types"
)

const (
	defaultClientName = "Unnamed Client"
	defaultPageTitle  = "Untitled Page"
	defaultPagePath   = "/"
	defaultTemplate   = "default"
	defaultBlockType  = "unknown"
)

// envelope wraps every request body as {"data": {...}}.
type envelope struct {
	Data any `json:"data"`
}

type applicationData struct {
	Name         string      `json:"name"`
	Domain       string      `json:"domain"`
	Subdomain    string      `json:"subdomain"`
	Description  string      `json:"description"`
	ContactEmail string      `json:"contactEmail"`
	Active       bool        `json:"active"`
	GlobalStyles types.Value `json:"globalStyles"`
	Settings     types.Value `json:"settings"`
}

type pageData struct {
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Path            string `json:"path"`
	Template        string `json:"template"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	MetaKeywords    string `json:"metaKeywords"`
	Visible         bool   `json:"visible"`
	Application     int    `json:"application"`
}

type blockData struct {
	BlockType string      `json:"blockType"`
	Content   types.Value `json:"content"`
	Styling   types.Value `json:"styling"`
	Order     int         `json:"order"`
	Visible   bool        `json:"visible"`
	Page      int         `json:"page"`
}

func applicationPayload(doc *types.Document) applicationData {
	m := doc.Metadata
	return applicationData{
		Name:         lookup(m, "client_name", defaultClientName),
		Domain:       lookup(m, "domain", ""),
		Subdomain:    lookup(m, "subdomain", ""),
		Description:  lookup(m, "description", ""),
		ContactEmail: lookup(m, "contact_email", ""),
		Active:       parseBool(m, "active"),
		GlobalStyles: objectOrEmpty(doc.GlobalStyles),
		Settings:     objectOrEmpty(doc.Settings),
	}
}

func pagePayload(page types.Page, applicationID int) pageData {
	m := page.Metadata
	return pageData{
		Title:           pageTitle(page),
		Slug:            lookup(m, "slug", ""),
		Path:            lookup(m, "path", defaultPagePath),
		Template:        lookup(m, "template", defaultTemplate),
		MetaTitle:       lookup(m, "meta_title", ""),
		MetaDescription: lookup(m, "meta_description", ""),
		MetaKeywords:    lookup(m, "meta_keywords", ""),
		Visible:         parseBool(m, "visible"),
		Application:     applicationID,
	}
}

func blockPayload(block types.Block, pageID int) (blockData, error) {
	m := block.Metadata
	order, err := parseOrder(m)
	if err != nil {
		return blockData{}, err
	}
	return blockData{
		BlockType: blockType(block),
		Content:   objectOrEmpty(block.Content),
		Styling:   objectOrEmpty(block.Styling),
		Order:     order,
		Visible:   parseBool(m, "visible"),
		Page:      pageID,
	}, nil
}

func pageTitle(page types.Page) string {
	return lookup(page.Metadata, "title", defaultPageTitle)
}

func blockType(block types.Block) string {
	return lookup(block.Metadata, "block_type", defaultBlockType)
}

// lookup returns m[key], or def when the key is absent. A present but empty
// value is returned as is.
func lookup(m map[string]string, key, def string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return def
}

// parseBool is true when the value, defaulting to "true" when absent, equals
// "true" in any letter case. "false", "no", "1" and "" are all false.
func parseBool(m map[string]string, key string) bool {
	return strings.ToLower(lookup(m, key, "true")) == "true"
}

func parseOrder(m map[string]string) (int, error) {
	raw := lookup(m, "order", "0")
	order, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid block order %q: %w", raw, err)
	}
	return order, nil
}

// objectOrEmpty turns a zero Value (null) into {}.
func objectOrEmpty(v types.Value) types.Value {
	if v.Kind() == types.KindNull {
		return types.EmptyObject()
	}
	return v
}
