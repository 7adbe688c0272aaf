package htmlutil

import (
	"bytes"

	"github.com/jquatier/chipsandguac/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// CollapsedText concatenates every text node under sel, trims the edges and
// squeezes internal whitespace runs to single spaces. Display names on
// server-rendered pages tend to be padded with layout whitespace.
func CollapsedText(sel *goquery.Selection) string {
	var buffer bytes.Buffer
	for _, node := range sel.Nodes {
		getTextRecursive(node, &buffer)
	}
	return textutil.CollapseWhitespace(buffer.String())
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
