package chipsandguac

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// actionToken pulls the anti-forgery token out of the hidden verification
// field most order pages render. ok is false when the page carries no token
// field at all, which is distinct from the document failing to parse.
func actionToken(page []byte) (token string, ok bool, err error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", false, err
	}
	field := doc.Find("input[name='__RequestVerificationToken']")
	if field.Length() == 0 {
		return "", false, nil
	}
	return field.First().AttrOr("value", ""), true, nil
}

// requireActionToken is actionToken for pages that must carry one. Tokens
// are scoped to a single page render, so callers fetch a fresh page right
// before every guarded POST.
func requireActionToken(page []byte) (string, error) {
	token, ok, err := actionToken(page)
	if err != nil {
		return "", err
	}
	if !ok || token == "" {
		return "", fmt.Errorf("could not find action token")
	}
	return token, nil
}
