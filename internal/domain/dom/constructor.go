package dom

import (
	"errors"
	"fmt"
)

// ErrMalformedSnapshot means the raw table has no usable root: the declared
// rootId is absent or resolves to a text record. The capture is unusable and
// the caller should re-capture or abort the step.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// ConstructTree converts a raw snapshot table into a typed, parent-linked
// tree and the capture's selector map.
//
// Child ids listed by a parent but absent from the table are dropped
// silently: transient re-renders during capture can legitimately lose nodes,
// and a usable partial tree beats failing the whole capture.
func ConstructTree(snap *RawSnapshot) (*ElementNode, SelectorMap, error) {
	if snap == nil {
		return nil, nil, fmt.Errorf("%w: nil snapshot", ErrMalformedSnapshot)
	}

	rawRoot, ok := snap.Map[snap.RootID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: root id %q not in table", ErrMalformedSnapshot, snap.RootID)
	}
	if rawRoot.IsText() {
		return nil, nil, fmt.Errorf("%w: root id %q is a text node", ErrMalformedSnapshot, snap.RootID)
	}

	// Pass 1: one typed node per record.
	nodes := make(map[NodeID]Node, len(snap.Map))
	selectorMap := make(SelectorMap)
	for id, raw := range snap.Map {
		if raw.IsText() {
			nodes[id] = &TextNode{
				Text:      raw.Text,
				IsVisible: raw.IsVisible,
			}
			continue
		}
		el := &ElementNode{
			TagName:             raw.TagName,
			XPath:               raw.XPath,
			Attributes:          raw.Attributes,
			IsVisible:           raw.IsVisible,
			IsInteractive:       raw.IsInteractive,
			IsTopElement:        raw.IsTopElement,
			IsInViewport:        raw.IsInViewport,
			ShadowRoot:          raw.ShadowRoot,
			HighlightIndex:      raw.HighlightIndex,
			ViewportCoordinates: raw.ViewportCoordinates,
			PageCoordinates:     raw.PageCoordinates,
			ViewportInfo:        raw.Viewport,
		}
		nodes[id] = el
		if el.HighlightIndex != nil {
			selectorMap[*el.HighlightIndex] = el
		}
	}

	// Pass 2: wire children in declared order and set back-references.
	for id, raw := range snap.Map {
		if raw.IsText() {
			continue
		}
		parent := nodes[id].(*ElementNode)
		for _, childID := range raw.Children {
			child, ok := nodes[childID]
			if !ok {
				// Dangling reference, tolerated.
				continue
			}
			switch c := child.(type) {
			case *ElementNode:
				c.Parent = parent
			case *TextNode:
				c.Parent = parent
			}
			parent.Children = append(parent.Children, child)
		}
	}

	root := nodes[snap.RootID].(*ElementNode)
	return root, selectorMap, nil
}
