package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// formSnapshot builds a form with nested text and a highlighted element
// inside a highlighted element's subtree:
//
//	body
//	├── "Sign in to continue"        (bare text)
//	└── form
//	    ├── [0] button
//	    │   ├── "Submit"
//	    │   └── span ── "now"
//	    └── div
//	        ├── "fine print"
//	        └── [1] a ── "Help"
func formSnapshot() *RawSnapshot {
	return &RawSnapshot{
		RootID: "root",
		Map: map[NodeID]RawNode{
			"root": {TagName: "body", XPath: "/html/body", IsVisible: true, Children: []NodeID{"t0", "form"}},
			"t0":   {Type: "TEXT_NODE", Text: "Sign in to continue", IsVisible: true},
			"form": {TagName: "form", XPath: "/html/body/form", IsVisible: true, Children: []NodeID{"btn", "div"}},
			"btn": {
				TagName: "button", XPath: "/html/body/form/button",
				Attributes:     Attributes{{Key: "type", Value: "submit"}},
				IsVisible:      true,
				IsInteractive:  true,
				HighlightIndex: intPtr(0),
				Children:       []NodeID{"t1", "span"},
			},
			"t1":   {Type: "TEXT_NODE", Text: "Submit", IsVisible: true},
			"span": {TagName: "span", XPath: "/html/body/form/button/span", IsVisible: true, Children: []NodeID{"t2"}},
			"t2":   {Type: "TEXT_NODE", Text: "now", IsVisible: true},
			"div":  {TagName: "div", XPath: "/html/body/form/div", IsVisible: true, Children: []NodeID{"t3", "a"}},
			"t3":   {Type: "TEXT_NODE", Text: "fine print", IsVisible: true},
			"a": {
				TagName: "a", XPath: "/html/body/form/div/a",
				Attributes:     Attributes{{Key: "href", Value: "/help"}},
				IsVisible:      true,
				IsInteractive:  true,
				HighlightIndex: intPtr(1),
				Children:       []NodeID{"t4"},
			},
			"t4": {Type: "TEXT_NODE", Text: "Help", IsVisible: true},
		},
	}
}

func TestParentBranchPath(t *testing.T) {
	root, selectorMap, err := ConstructTree(formSnapshot())
	require.NoError(t, err)

	assert.Equal(t, []string{"body"}, root.ParentBranchPath())
	assert.Equal(t, []string{"body", "form", "button"}, selectorMap[0].ParentBranchPath())
	assert.Equal(t, []string{"body", "form", "div", "a"}, selectorMap[1].ParentBranchPath())
}

func TestTextTillNextClickable(t *testing.T) {
	root, selectorMap, err := ConstructTree(formSnapshot())
	require.NoError(t, err)

	// Aggregates across non-highlighted descendants.
	assert.Equal(t, "Submit\nnow", selectorMap[0].TextTillNextClickable(-1))

	// Stops at highlighted descendants: the link's "Help" belongs to the
	// link, not to the body.
	bodyText := root.TextTillNextClickable(-1)
	assert.Contains(t, bodyText, "Sign in to continue")
	assert.Contains(t, bodyText, "fine print")
	assert.NotContains(t, bodyText, "Submit")
	assert.NotContains(t, bodyText, "Help")
}

func TestTextTillNextClickable_MaxDepth(t *testing.T) {
	_, selectorMap, err := ConstructTree(formSnapshot())
	require.NoError(t, err)

	// Depth 1 reaches the direct text child but not the span's text.
	assert.Equal(t, "Submit", selectorMap[0].TextTillNextClickable(1))
}

func TestClickableElementsToString(t *testing.T) {
	root, _, err := ConstructTree(formSnapshot())
	require.NoError(t, err)

	listing := root.ClickableElementsToString([]string{"type", "href"})

	assert.Contains(t, listing, `[0]<button type="submit">Submit`)
	assert.Contains(t, listing, `[1]<a href="/help">Help</a>`)
	assert.Contains(t, listing, "Sign in to continue")
	// Text under a highlighted element is not repeated as a bare line.
	assert.NotContains(t, listing, "\nnow\n")
}

func TestDOMStateClickableElementsToString(t *testing.T) {
	root, selectorMap, err := ConstructTree(formSnapshot())
	require.NoError(t, err)

	state := DOMState{Root: root, SelectorMap: selectorMap}
	assert.Equal(t, root.ClickableElementsToString(nil), state.ClickableElementsToString(nil))
	assert.Equal(t, "", DOMState{}.ClickableElementsToString(nil))
}

func TestClickableElementsToString_NewMarker(t *testing.T) {
	root, selectorMap, err := ConstructTree(formSnapshot())
	require.NoError(t, err)

	selectorMap[1].IsNew = true
	listing := root.ClickableElementsToString(nil)

	assert.Contains(t, listing, "*[1]<a>")
	assert.Contains(t, listing, "[0]<button>")
	assert.NotContains(t, listing, "*[0]")
}

func TestClickableElementsToString_InvisibleTextSkipped(t *testing.T) {
	snap := formSnapshot()
	node := snap.Map["t3"]
	node.IsVisible = false
	snap.Map["t3"] = node

	root, _, err := ConstructTree(snap)
	require.NoError(t, err)

	assert.NotContains(t, root.ClickableElementsToString(nil), "fine print")
}
