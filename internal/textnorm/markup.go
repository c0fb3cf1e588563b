package textnorm

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// markupTagRegex detects text pasted from job boards with its HTML still attached.
var markupTagRegex = regexp.MustCompile(`(?i)</?(?:html|body|div|p|br|span|ul|ol|li|h[1-6]|strong|em|b|i|a|table|tr|td)\b[^>]*>`)

// blockSelectors are elements whose boundaries must separate words.
const blockSelectors = "br, p, div, li, tr, td, h1, h2, h3, h4, h5, h6"

// StripMarkup returns the visible text of an HTML fragment. Plain text, or markup that
// fails to parse, is returned unchanged.
func StripMarkup(text string) string {
	if !markupTagRegex.MatchString(text) {
		return text
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml("\n")
	})

	return doc.Text()
}
