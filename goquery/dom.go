package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// The helpers in this file are thin wrappers over goquery. They carry no
// extraction policy, so the engine reads as a list of rules.

// directChildren returns the element children of sel in document order.
// Text and comment nodes are skipped.
func directChildren(sel *goquery.Selection) []*goquery.Selection {
	var children []*goquery.Selection
	sel.Children().Each(func(_ int, child *goquery.Selection) {
		children = append(children, child)
	})
	return children
}

// firstMatch returns the first descendant of sel matching selector.
func firstMatch(sel *goquery.Selection, selector string) (*goquery.Selection, bool) {
	match := sel.Find(selector).First()
	if match.Length() == 0 {
		return nil, false
	}
	return match, true
}

// selfOrDescendants returns sel itself when it matches selector, followed by
// all matching descendants, in document order.
func selfOrDescendants(sel *goquery.Selection, selector string) *goquery.Selection {
	return sel.Filter(selector).AddSelection(sel.Find(selector))
}

// attr returns the value of the named attribute of the first node in sel.
func attr(sel *goquery.Selection, name string) (string, bool) {
	return sel.Attr(name)
}

// firstAttr returns the named attribute of the first node in sel that has it.
func firstAttr(sel *goquery.Selection, name string) string {
	var value string
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr(name)
		if ok {
			value = v
			return false
		}
		return true
	})
	return value
}

// textContent returns the entity-decoded text of sel and its descendants.
// Whitespace is preserved.
func textContent(sel *goquery.Selection) string {
	return sel.Text()
}

// joinedText returns the trimmed text of every node in sel joined by a
// single space, skipping nodes with no text.
func joinedText(sel *goquery.Selection) string {
	var parts []string
	sel.Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}

// tagName returns the lowercase element name of the first node in sel.
func tagName(sel *goquery.Selection) string {
	return strings.ToLower(goquery.NodeName(sel))
}

// outerMarkup serializes the first node in sel, including its own tag.
// Returns an empty string if serialization fails.
func outerMarkup(sel *goquery.Selection) string {
	html, err := goquery.OuterHtml(sel)
	if err != nil {
		return ""
	}
	return html
}

// removeMatching returns a detached deep copy of sel with every descendant
// matching selector removed. The original tree is not modified.
func removeMatching(sel *goquery.Selection, selector string) *goquery.Selection {
	clone := sel.Clone()
	clone.Find(selector).Remove()
	return clone
}
