package utils

import (
	"testing"

	"github.com/fatih/structs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagged struct {
	A string `json:"a"`
	B string `json:"b,omitempty"`
	C string `json:"-"`
	D string
}

func TestFieldTagNames(t *testing.T) {
	names := FieldTagNames(structs.New(tagged{}).Fields(), "json")
	assert.Equal(t, []string{"a", "b"}, names)
	assert.Empty(t, FieldTagNames(structs.New(tagged{}).Fields(), "yaml"))
}

func TestParseIDList(t *testing.T) {
	ids, err := ParseIDList("1, 2,,3")
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3}, ids)

	ids, err = ParseIDList("3,1,3,2,1")
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 1, 2}, ids)

	ids, err = ParseIDList("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = ParseIDList("1,x")
	assert.Error(t, err)
	_, err = ParseIDList("0")
	assert.Error(t, err)
}
