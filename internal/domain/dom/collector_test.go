package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClickableElements_PreOrder(t *testing.T) {
	root, _, err := ConstructTree(formSnapshot())
	require.NoError(t, err)

	elements := ClickableElements(root)

	require.Len(t, elements, 2)
	assert.Equal(t, "button", elements[0].TagName)
	assert.Equal(t, "a", elements[1].TagName)
}

func TestClickableElements_Subtree(t *testing.T) {
	root, _, err := ConstructTree(formSnapshot())
	require.NoError(t, err)

	form := root.Children[1].(*ElementNode)
	div := form.Children[1].(*ElementNode)

	// Collecting from an arbitrary container only sees its own subtree.
	elements := ClickableElements(div)
	require.Len(t, elements, 1)
	assert.Equal(t, "a", elements[0].TagName)
}

func TestClickableElements_RootIncluded(t *testing.T) {
	root, selectorMap, err := ConstructTree(bodyButtonSnapshot())
	require.NoError(t, err)

	elements := ClickableElements(selectorMap[0])
	require.Len(t, elements, 1)
	assert.Same(t, selectorMap[0], elements[0])

	assert.Len(t, ClickableElements(root), 1)
}

func TestClickableElements_NoneHighlighted(t *testing.T) {
	snap := &RawSnapshot{
		RootID: "0",
		Map: map[NodeID]RawNode{
			"0": {TagName: "body", XPath: "/html/body", Children: []NodeID{"1"}},
			"1": {TagName: "p", XPath: "/html/body/p"},
		},
	}
	root, _, err := ConstructTree(snap)
	require.NoError(t, err)

	assert.Empty(t, ClickableElements(root))
}
