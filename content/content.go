// Package content turns raw homepage HTML into a compact markdown digest
// used as LLM prompt context. Two stages: readability extracts the main
// content, html-to-markdown renders it.
package content

import (
	"fmt"
	nurl "net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	readability "github.com/go-shiori/go-readability"
)

// minContentLength is the minimum readability TextContent length (in
// characters) for the extraction to be considered successful. Below that
// the algorithm likely missed the main content and the raw HTML is used.
const minContentLength = 50

// Renderer converts page HTML to markdown. The converter is created once
// and reused across requests (goroutine-safe).
type Renderer struct {
	conv *converter.Converter
}

// NewRenderer initialises a Renderer with a pre-configured converter:
// the base plugin strips script/style/head noise, commonmark renders
// standard markdown.
func NewRenderer() *Renderer {
	return &Renderer{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
	}
}

// Markdown runs the two-stage pipeline on rawHTML. When readability fails
// or extracts too little, the raw HTML is converted as-is so the caller
// still gets something usable.
func (r *Renderer) Markdown(rawHTML string, sourceURL string) (string, error) {
	htmlContent := rawHTML

	if parsed, err := nurl.Parse(sourceURL); err == nil {
		article, err := readability.FromReader(strings.NewReader(rawHTML), parsed)
		if err == nil && len(strings.TrimSpace(article.TextContent)) >= minContentLength {
			htmlContent = article.Content
		}
	}

	md, err := r.conv.ConvertString(htmlContent, converter.WithDomain(sourceURL))
	if err != nil {
		return "", fmt.Errorf("content: markdown conversion: %w", err)
	}
	return strings.TrimSpace(md), nil
}
