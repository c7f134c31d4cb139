package history

import "pagepilot/internal/domain/dom"

// DOMHistoryElement is a detached, serializable snapshot of one element's
// fingerprint-relevant fields. It outlives the tree it was taken from and is
// only ever used as the query side of a lookup against a fresh capture. It
// carries no text content and no children.
type DOMHistoryElement struct {
	TagName                string             `json:"tagName"`
	XPath                  string             `json:"xpath"`
	HighlightIndex         *int               `json:"highlightIndex"`
	EntireParentBranchPath []string           `json:"entireParentBranchPath"`
	Attributes             dom.Attributes     `json:"attributes"`
	ShadowRoot             bool               `json:"shadowRoot"`
	CSSSelector            string             `json:"cssSelector,omitempty"`
	PageCoordinates        *dom.CoordinateSet `json:"pageCoordinates,omitempty"`
	ViewportCoordinates    *dom.CoordinateSet `json:"viewportCoordinates,omitempty"`
	ViewportInfo           *dom.ViewportInfo  `json:"viewportInfo,omitempty"`
}

// NewRecord captures an element into a history record. Every field is
// copied; the record shares nothing with the live tree.
func NewRecord(el *dom.ElementNode) *DOMHistoryElement {
	rec := &DOMHistoryElement{
		TagName:                el.TagName,
		XPath:                  el.XPath,
		EntireParentBranchPath: el.ParentBranchPath(),
		Attributes:             el.Attributes.Clone(),
		ShadowRoot:             el.ShadowRoot,
	}
	if el.HighlightIndex != nil {
		idx := *el.HighlightIndex
		rec.HighlightIndex = &idx
	}
	if el.PageCoordinates != nil {
		c := *el.PageCoordinates
		rec.PageCoordinates = &c
	}
	if el.ViewportCoordinates != nil {
		c := *el.ViewportCoordinates
		rec.ViewportCoordinates = &c
	}
	if el.ViewportInfo != nil {
		v := *el.ViewportInfo
		rec.ViewportInfo = &v
	}
	return rec
}

// Hash fingerprints the record the same way HashElement fingerprints a live
// element, so the two sides are directly comparable.
func (r *DOMHistoryElement) Hash() HashedDOMElement {
	return HashedDOMElement{
		BranchPathHash: hashBranchPath(r.EntireParentBranchPath),
		AttributesHash: hashAttributes(r.Attributes),
		XPathHash:      hashString(r.XPath),
	}
}

// FindInTree searches root pre-order depth-first for the element matching
// the record's fingerprint. Only elements that carry a highlight index are
// tested — anything ever recorded was interactive. Returns the first full
// match; (nil, false) means the element no longer exists in this capture and
// the caller decides the fallback.
func FindInTree(record *DOMHistoryElement, root *dom.ElementNode) (*dom.ElementNode, bool) {
	target := record.Hash()

	var found *dom.ElementNode
	var walk func(n dom.Node) bool
	walk = func(n dom.Node) bool {
		el, ok := n.(*dom.ElementNode)
		if !ok {
			return false
		}
		if el.HighlightIndex != nil && HashElement(el).Equal(target) {
			found = el
			return true
		}
		for _, c := range el.Children {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(root)

	return found, found != nil
}

// ElementsMatch is the pairwise form of FindInTree's comparison, for callers
// that already hold a candidate.
func ElementsMatch(record *DOMHistoryElement, el *dom.ElementNode) bool {
	return record.Hash().Equal(HashElement(el))
}

// ClickableHashSet fingerprints every highlighted element under root and
// returns the set of composite hash strings. Diffing two captures' sets is
// how callers decide which elements are new.
func ClickableHashSet(root *dom.ElementNode) map[string]struct{} {
	elements := dom.ClickableElements(root)
	set := make(map[string]struct{}, len(elements))
	for _, el := range elements {
		set[HashElement(el).Composite()] = struct{}{}
	}
	return set
}

// MarkNew flags every highlighted element under root whose fingerprint is
// absent from previous, the hash set of the prior capture. A nil previous
// (first capture) marks nothing.
func MarkNew(root *dom.ElementNode, previous map[string]struct{}) {
	if previous == nil {
		return
	}
	for _, el := range dom.ClickableElements(root) {
		if _, ok := previous[HashElement(el).Composite()]; !ok {
			el.IsNew = true
		}
	}
}
