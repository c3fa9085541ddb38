package markdown

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// The engine never enables html.WithUnsafe: raw HTML blocks are replaced by a
// comment and links with dangerous schemes lose their href.
var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

var (
	rawHTMLOmittedRegex  = regexp.MustCompile(`<!-- raw HTML omitted -->\n?`)
	externalLinkRegex    = regexp.MustCompile(`<a href="(https?://[^"]+)"`)
	figureParagraphRegex = regexp.MustCompile(`(?is)<p>\s*(<figure>[\s\S]*?</figure>)\s*</p>`)
	imageTagRegex        = regexp.MustCompile(`(?is)<img\s+src="([^"]*)"\s+alt="([^"]*)"([^>]*)/>`)
)

// Render converts a markdown body into HTML that is safe to embed in a page.
func Render(markdownText string) string {
	text := strings.TrimSpace(markdownText)
	if text == "" {
		return ""
	}

	var out bytes.Buffer
	if err := markdownEngine.Convert([]byte(text), &out); err != nil {
		return "<p>" + template.HTMLEscapeString(text) + "</p>"
	}

	html := out.String()
	html = rawHTMLOmittedRegex.ReplaceAllString(html, "")
	html = rewriteExternalLinks(html)
	html = rewriteImages(html)
	return html
}

// RenderHTML is Render typed for html/template consumers.
func RenderHTML(markdownText string) template.HTML {
	return template.HTML(Render(markdownText)) //nolint:gosec // output of the safe engine
}

func rewriteExternalLinks(html string) string {
	return externalLinkRegex.ReplaceAllString(html, `<a target="_blank" rel="noopener noreferrer" href="$1"`)
}

// rewriteImages turns images whose alt text starts with "!" into captioned
// figures, e.g. ![!Hexagon tiles in a shower](/img/hex.jpg).
func rewriteImages(html string) string {
	processed := imageTagRegex.ReplaceAllStringFunc(html, func(tag string) string {
		match := imageTagRegex.FindStringSubmatch(tag)
		if len(match) < 3 {
			return tag
		}
		src, alt := match[1], match[2]
		if !strings.HasPrefix(alt, "!") {
			return tag
		}
		caption := strings.TrimSpace(strings.TrimPrefix(alt, "!"))
		return `<figure><img src="` + src + `" alt="` + caption + `" /><figcaption>` + caption + `</figcaption></figure>`
	})
	return figureParagraphRegex.ReplaceAllString(processed, "$1")
}
