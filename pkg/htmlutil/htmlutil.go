package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText returns the printable text of the selection with surrounding
// whitespace trimmed and inner runs of whitespace collapsed.
func CleanText(sel *goquery.Selection) string {
	var text strings.Builder
	for _, n := range sel.Nodes {
		text.WriteString(GetText(n))
	}
	cleaned := removeNonPrintable(text.String())
	cleaned = strings.Trim(cleaned, " \t\n")
	return innerWhitespace.ReplaceAllString(cleaned, " ")
}

// FindScript returns the text of the first <script> whose contents contain
// `marker`, and false if there is none.
func FindScript(doc *goquery.Document, marker string) (string, bool) {
	for _, script := range doc.Find("script").Nodes {
		text := GetText(script)
		if strings.Contains(text, marker) {
			return text, true
		}
	}
	return "", false
}
