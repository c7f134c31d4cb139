package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

// bodyButtonSnapshot is the canonical two-node capture: a body with one
// highlighted button.
func bodyButtonSnapshot() *RawSnapshot {
	return &RawSnapshot{
		RootID: "0",
		Map: map[NodeID]RawNode{
			"0": {
				TagName:   "body",
				XPath:     "/html/body",
				IsVisible: true,
				Children:  []NodeID{"1"},
			},
			"1": {
				TagName:        "button",
				XPath:          "/html/body/button",
				Attributes:     Attributes{{Key: "id", Value: "go"}},
				IsVisible:      true,
				IsInteractive:  true,
				HighlightIndex: intPtr(0),
			},
		},
	}
}

func TestConstructTree(t *testing.T) {
	root, selectorMap, err := ConstructTree(bodyButtonSnapshot())
	require.NoError(t, err)
	require.NotNil(t, root)

	assert.Equal(t, "body", root.TagName)
	assert.Nil(t, root.Parent)
	require.Len(t, root.Children, 1)

	button, ok := root.Children[0].(*ElementNode)
	require.True(t, ok)
	assert.Equal(t, "button", button.TagName)
	assert.Equal(t, "/html/body/button", button.XPath)
	assert.Same(t, root, button.Parent)

	id, ok := button.Attributes.Get("id")
	require.True(t, ok)
	assert.Equal(t, "go", id)

	require.Len(t, selectorMap, 1)
	assert.Same(t, button, selectorMap[0])
}

func TestConstructTree_MissingRoot(t *testing.T) {
	snap := bodyButtonSnapshot()
	snap.RootID = "99"

	_, _, err := ConstructTree(snap)
	assert.ErrorIs(t, err, ErrMalformedSnapshot)
}

func TestConstructTree_TextRoot(t *testing.T) {
	snap := &RawSnapshot{
		RootID: "0",
		Map: map[NodeID]RawNode{
			"0": {Type: "TEXT_NODE", Text: "hello", IsVisible: true},
		},
	}

	_, _, err := ConstructTree(snap)
	assert.ErrorIs(t, err, ErrMalformedSnapshot)
}

func TestConstructTree_NilSnapshot(t *testing.T) {
	_, _, err := ConstructTree(nil)
	assert.ErrorIs(t, err, ErrMalformedSnapshot)
}

func TestConstructTree_DanglingChildSkipped(t *testing.T) {
	snap := bodyButtonSnapshot()
	node := snap.Map["0"]
	node.Children = []NodeID{"1", "404"}
	snap.Map["0"] = node

	root, selectorMap, err := ConstructTree(snap)
	require.NoError(t, err)

	// The dangling id is simply absent from the realized children.
	assert.Len(t, root.Children, 1)
	assert.Len(t, selectorMap, 1)
}

func TestConstructTree_TextChildren(t *testing.T) {
	snap := &RawSnapshot{
		RootID: "0",
		Map: map[NodeID]RawNode{
			"0": {TagName: "body", XPath: "/html/body", IsVisible: true, Children: []NodeID{"1", "2"}},
			"1": {Type: "TEXT_NODE", Text: "Welcome", IsVisible: true},
			"2": {
				TagName:        "a",
				XPath:          "/html/body/a",
				Attributes:     Attributes{{Key: "href", Value: "/next"}},
				IsVisible:      true,
				IsInteractive:  true,
				HighlightIndex: intPtr(3),
				Children:       []NodeID{"3"},
			},
			"3": {Type: "TEXT_NODE", Text: "Next page", IsVisible: true},
		},
	}

	root, selectorMap, err := ConstructTree(snap)
	require.NoError(t, err)
	require.Len(t, root.Children, 2)

	text, ok := root.Children[0].(*TextNode)
	require.True(t, ok)
	assert.Equal(t, "Welcome", text.Text)
	assert.Same(t, root, text.Parent)
	assert.False(t, text.HasHighlightedAncestor())

	link, ok := root.Children[1].(*ElementNode)
	require.True(t, ok)
	require.Len(t, link.Children, 1)
	linkText := link.Children[0].(*TextNode)
	assert.True(t, linkText.HasHighlightedAncestor())

	// Text nodes never enter the selector map.
	require.Len(t, selectorMap, 1)
	assert.Same(t, link, selectorMap[3])
}

func TestConstructTree_ParentChildConsistency(t *testing.T) {
	snap := &RawSnapshot{
		RootID: "0",
		Map: map[NodeID]RawNode{
			"0": {TagName: "body", XPath: "/html/body", Children: []NodeID{"1"}},
			"1": {TagName: "div", XPath: "/html/body/div", Children: []NodeID{"2", "3"}},
			"2": {TagName: "span", XPath: "/html/body/div/span"},
			"3": {TagName: "input", XPath: "/html/body/div/input", IsInteractive: true, HighlightIndex: intPtr(0)},
		},
	}

	root, _, err := ConstructTree(snap)
	require.NoError(t, err)

	var verify func(el *ElementNode)
	verify = func(el *ElementNode) {
		for _, child := range el.Children {
			switch c := child.(type) {
			case *ElementNode:
				assert.Same(t, el, c.Parent)
				verify(c)
			case *TextNode:
				assert.Same(t, el, c.Parent)
			}
		}
	}
	verify(root)
}

func TestDecodeSnapshot(t *testing.T) {
	data := []byte(`{
		"rootId": "0",
		"map": {
			"0": {"tagName": "body", "xpath": "/html/body", "attributes": {}, "children": ["1"], "isVisible": true},
			"1": {"tagName": "button", "xpath": "/html/body/button", "attributes": {"id": "go"}, "children": [], "isVisible": true, "isInteractive": true, "highlightIndex": 0}
		}
	}`)

	snap, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, NodeID("0"), snap.RootID)
	require.Len(t, snap.Map, 2)

	button := snap.Map["1"]
	require.NotNil(t, button.HighlightIndex)
	assert.Equal(t, 0, *button.HighlightIndex)

	root, selectorMap, err := ConstructTree(snap)
	require.NoError(t, err)
	assert.Equal(t, "body", root.TagName)
	assert.Equal(t, "button", selectorMap[0].TagName)
}

func TestDecodeSnapshot_Invalid(t *testing.T) {
	_, err := DecodeSnapshot([]byte(`{"rootId": 12`))
	assert.Error(t, err)
}

func TestDefaultCaptureOptions(t *testing.T) {
	opts := DefaultCaptureOptions()

	assert.True(t, opts.HighlightElements)
	assert.Equal(t, -1, opts.FocusHighlightIndex)
	assert.Equal(t, 0, opts.ViewportExpansion)
	assert.False(t, opts.DebugMode)
}
