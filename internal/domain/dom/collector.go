package dom

// ClickableElements returns every element under root (root included) that
// carries a highlight index, in pre-order depth-first order. It works on any
// subtree, not just a capture root, so callers can scope it to a container.
func ClickableElements(root *ElementNode) []*ElementNode {
	var out []*ElementNode

	var walk func(n Node)
	walk = func(n Node) {
		el, ok := n.(*ElementNode)
		if !ok {
			return
		}
		if el.HighlightIndex != nil {
			out = append(out, el)
		}
		for _, c := range el.Children {
			walk(c)
		}
	}
	walk(root)

	return out
}
