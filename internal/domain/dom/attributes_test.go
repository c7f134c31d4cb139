package dom

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributes_OrderPreservedThroughJSON(t *testing.T) {
	// Deliberately non-alphabetical: a map-based decode would reorder.
	data := []byte(`{"type":"submit","class":"btn primary","id":"go","aria-label":"Go"}`)

	var attrs Attributes
	require.NoError(t, json.Unmarshal(data, &attrs))

	require.Len(t, attrs, 4)
	assert.Equal(t, "type", attrs[0].Key)
	assert.Equal(t, "class", attrs[1].Key)
	assert.Equal(t, "id", attrs[2].Key)
	assert.Equal(t, "aria-label", attrs[3].Key)

	out, err := json.Marshal(attrs)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(out))
	// JSONEq ignores order; the raw bytes must match too.
	assert.Equal(t, string(data), string(out))
}

func TestAttributes_GetSet(t *testing.T) {
	attrs := Attributes{{Key: "id", Value: "go"}}

	val, ok := attrs.Get("id")
	assert.True(t, ok)
	assert.Equal(t, "go", val)

	_, ok = attrs.Get("class")
	assert.False(t, ok)

	attrs.Set("class", "btn")
	attrs.Set("id", "stop")

	require.Len(t, attrs, 2)
	val, _ = attrs.Get("id")
	assert.Equal(t, "stop", val)
	assert.Equal(t, "id", attrs[0].Key, "Set must not reorder existing keys")
}

func TestAttributes_Clone(t *testing.T) {
	attrs := Attributes{{Key: "id", Value: "go"}}
	clone := attrs.Clone()

	clone.Set("id", "changed")
	val, _ := attrs.Get("id")
	assert.Equal(t, "go", val)

	assert.Nil(t, Attributes(nil).Clone())
}

func TestAttributes_UnmarshalEdgeCases(t *testing.T) {
	var attrs Attributes

	require.NoError(t, json.Unmarshal([]byte(`{}`), &attrs))
	assert.Empty(t, attrs)

	require.NoError(t, json.Unmarshal([]byte(`null`), &attrs))
	assert.Nil(t, attrs)

	assert.Error(t, json.Unmarshal([]byte(`["id"]`), &attrs))
	assert.Error(t, json.Unmarshal([]byte(`{"id": 5}`), &attrs))
}
