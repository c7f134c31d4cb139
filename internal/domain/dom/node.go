// Package dom models one capture of a page's interactive element tree.
//
// A capture is built from the flat raw table returned by the in-page snapshot
// script (see ConstructTree) and is immutable afterwards except for the IsNew
// flag, which the caller sets when diffing against a previous capture.
package dom

import (
	"fmt"
	"strings"
)

// Node is either *ElementNode or *TextNode. The set of implementations is
// closed; traversal code switches on the concrete type.
type Node interface {
	// Visible reports whether the page script judged the node visible.
	Visible() bool

	node()
}

// TextNode is a visible-text leaf. It never carries children and never
// appears in a selector map.
type TextNode struct {
	Text      string
	IsVisible bool

	// Parent is a back-reference for upward traversal only; the tree owns
	// its nodes top-down through Children.
	Parent *ElementNode
}

func (t *TextNode) Visible() bool { return t.IsVisible }
func (t *TextNode) node()         {}

// HasHighlightedAncestor reports whether any ancestor carries a highlight
// index. Such text is already rendered as part of the ancestor's listing
// entry and must not be repeated.
func (t *TextNode) HasHighlightedAncestor() bool {
	for p := t.Parent; p != nil; p = p.Parent {
		if p.HighlightIndex != nil {
			return true
		}
	}
	return false
}

// ElementNode is one element of the captured tree.
type ElementNode struct {
	TagName    string
	XPath      string
	Attributes Attributes
	Children   []Node

	IsVisible     bool
	IsInteractive bool
	IsTopElement  bool
	IsInViewport  bool
	ShadowRoot    bool

	// HighlightIndex is present iff the element is part of the capture's
	// interactive surface. It is unique within one capture and carries no
	// meaning across captures.
	HighlightIndex *int

	ViewportCoordinates *CoordinateSet
	PageCoordinates     *CoordinateSet
	ViewportInfo        *ViewportInfo

	// IsNew is set by the caller after diffing this capture's clickable
	// hash set against the previous one. Never set during construction.
	IsNew bool

	Parent *ElementNode
}

func (e *ElementNode) Visible() bool { return e.IsVisible }
func (e *ElementNode) node()         {}

// CoordinateSet is a rectangle in either viewport or page space.
type CoordinateSet struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ViewportInfo is the viewport size at capture time.
type ViewportInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SelectorMap indexes a capture's interactive elements by highlight index.
// It is rebuilt from scratch on every capture and must never be merged with
// a map from another capture.
type SelectorMap map[int]*ElementNode

// DOMState is the result of one capture: the tree plus its selector map.
type DOMState struct {
	Root        *ElementNode
	SelectorMap SelectorMap
}

// ClickableElementsToString renders the capture's indexed element listing.
func (s DOMState) ClickableElementsToString(includeAttributes []string) string {
	if s.Root == nil {
		return ""
	}
	return s.Root.ClickableElementsToString(includeAttributes)
}

// ParentBranchPath returns the tag names from the root down to (and
// including) this element.
func (e *ElementNode) ParentBranchPath() []string {
	var rev []string
	for n := e; n != nil; n = n.Parent {
		rev = append(rev, n.TagName)
	}
	path := make([]string, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		path = append(path, rev[i])
	}
	return path
}

// TextTillNextClickable aggregates the text of descendant text nodes,
// stopping at any descendant element that carries its own highlight index.
// maxDepth < 0 means unlimited.
func (e *ElementNode) TextTillNextClickable(maxDepth int) string {
	var parts []string

	var walk func(n Node, depth int)
	walk = func(n Node, depth int) {
		if maxDepth >= 0 && depth > maxDepth {
			return
		}
		switch v := n.(type) {
		case *TextNode:
			if s := strings.TrimSpace(v.Text); s != "" {
				parts = append(parts, s)
			}
		case *ElementNode:
			// A highlighted descendant starts its own listing entry.
			if v != e && v.HighlightIndex != nil {
				return
			}
			for _, c := range v.Children {
				walk(c, depth+1)
			}
		}
	}
	walk(e, 0)

	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// ClickableElementsToString renders the subtree as the indexed listing shown
// to the decision-maker: one "[i]<tag ...>text</tag>" line per highlighted
// element, prefixed with "*" when the element is new since the previous
// capture, with visible free text interleaved. Only attribute keys named in
// includeAttributes are rendered.
func (e *ElementNode) ClickableElementsToString(includeAttributes []string) string {
	var sb strings.Builder

	var walk func(n Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case *ElementNode:
			if v.HighlightIndex != nil {
				marker := ""
				if v.IsNew {
					marker = "*"
				}
				sb.WriteString(fmt.Sprintf("%s[%d]<%s%s>%s</%s>\n",
					marker, *v.HighlightIndex, v.TagName,
					v.attributeText(includeAttributes),
					v.TextTillNextClickable(-1), v.TagName))
			}
			for _, c := range v.Children {
				walk(c)
			}
		case *TextNode:
			if v.IsVisible && !v.HasHighlightedAncestor() {
				if s := strings.TrimSpace(v.Text); s != "" {
					sb.WriteString(s)
					sb.WriteString("\n")
				}
			}
		}
	}
	walk(e)

	return strings.TrimRight(sb.String(), "\n")
}

func (e *ElementNode) attributeText(includeAttributes []string) string {
	if len(includeAttributes) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, key := range includeAttributes {
		if val, ok := e.Attributes.Get(key); ok && val != "" {
			sb.WriteString(fmt.Sprintf(" %s=%q", key, val))
		}
	}
	return sb.String()
}
