package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlocks_Scan(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  Blocks
	}{
		{name: "json array bytes", value: []byte(`["first","second"]`), want: Blocks{"first", "second"}},
		{name: "json array string", value: `["only"]`, want: Blocks{"only"}},
		{name: "nil", value: nil, want: Blocks{}},
		{name: "json null", value: "null", want: Blocks{}},
		{name: "legacy plain text", value: "About us", want: Blocks{"About us"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Blocks
			require.NoError(t, b.Scan(tt.value))
			assert.Equal(t, tt.want, b)
		})
	}
}

func TestBlocks_ScanUnsupportedType(t *testing.T) {
	var b Blocks
	assert.Error(t, b.Scan(42))
}

func TestBlocks_NilValueAndJSON(t *testing.T) {
	var b Blocks

	v, err := b.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	data, err := json.Marshal(struct {
		Text Blocks `json:"text"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":[]}`, string(data))
}

func TestIDList_Scan(t *testing.T) {
	var l IDList
	require.NoError(t, l.Scan([]byte(`[3,1,2]`)))
	assert.Equal(t, IDList{3, 1, 2}, l)

	assert.Error(t, l.Scan(`["a"]`))
}

func TestImages_ValueKeepsKeyButJSONHidesIt(t *testing.T) {
	images := Images{{ID: "a1", URL: "/uploads/a1.png", Key: "a1.png"}}

	v, err := images.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a1","url":"/uploads/a1.png","key":"a1.png"}]`, v.(string))

	var scanned Images
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, images, scanned)

	data, err := json.Marshal(scanned)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a1","url":"/uploads/a1.png"}]`, string(data))
}

func TestNullImage(t *testing.T) {
	var n NullImage
	require.NoError(t, n.Scan(nil))
	assert.False(t, n.Valid)

	v, err := n.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, n.Scan(`{"id":"x","url":"https://cdn/x.jpg","key":"products/x.jpg"}`))
	assert.True(t, n.Valid)
	assert.Equal(t, "products/x.jpg", n.Image.Key)

	data, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"x","url":"https://cdn/x.jpg"}`, string(data))
}

func TestContact_MarshalJSONFlattensFields(t *testing.T) {
	c := Contact{
		ID:     7,
		Fields: ContactFields{"phone": "+15550000000", "email": "shop@example.com"},
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, float64(7), out["id"])
	assert.Equal(t, "+15550000000", out["phone"])
	assert.Equal(t, "shop@example.com", out["email"])
}

func TestContactFields_Scan(t *testing.T) {
	var f ContactFields
	require.NoError(t, f.Scan([]byte(`{"phone":"1"}`)))
	assert.Equal(t, ContactFields{"phone": "1"}, f)

	require.NoError(t, f.Scan(nil))
	assert.Empty(t, f)
}

func TestBlocks_UnmarshalJSON(t *testing.T) {
	var body struct {
		Description Blocks `json:"description"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"description":["a"," ","b "]}`), &body))
	assert.Equal(t, Blocks{"a", "b"}, body.Description)

	require.NoError(t, json.Unmarshal([]byte(`{"description":"plain text"}`), &body))
	assert.Equal(t, Blocks{"plain text"}, body.Description)

	assert.Error(t, json.Unmarshal([]byte(`{"description":42}`), &body))
}
