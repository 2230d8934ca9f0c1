package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDropdown_Default(t *testing.T) {
	d := NewDropdown()
	assert.Equal(t, "", d.Value())
	assert.Equal(t, DefaultOption, d.Label())
	assert.Empty(t, d.Options())
}

func TestDropdown_PopulateKeepsSelection(t *testing.T) {
	d := NewDropdown()
	d.Populate([]string{"111", "222", "333"})
	assert.True(t, d.Select("222"))

	d.Populate([]string{"333", "222"})
	assert.Equal(t, "222", d.Value())
	assert.Equal(t, []string{"333", "222"}, d.Options())
}

func TestDropdown_PopulateResetsMissingSelection(t *testing.T) {
	d := NewDropdown()
	d.Populate([]string{"111", "222"})
	assert.True(t, d.Select("111"))

	d.Populate([]string{"333"})
	assert.Equal(t, "", d.Value())
	assert.Equal(t, DefaultOption, d.Label())
}

func TestDropdown_PopulateEmptyIsNoop(t *testing.T) {
	d := NewDropdown()
	d.Populate([]string{"111", "222"})
	d.Select("222")

	d.Populate(nil)
	d.Populate([]string{})
	assert.Equal(t, []string{"111", "222"}, d.Options())
	assert.Equal(t, "222", d.Value())
}

func TestDropdown_Select(t *testing.T) {
	d := NewDropdown()
	d.Populate([]string{"111"})
	assert.False(t, d.Select("999"))
	assert.Equal(t, "", d.Value())
	assert.True(t, d.Select("111"))
	assert.True(t, d.Select(""))
	assert.Equal(t, "", d.Value())
}

func TestDropdown_Cycle(t *testing.T) {
	d := NewDropdown()
	d.Populate([]string{"111", "222"})

	d.Next()
	assert.Equal(t, "111", d.Value())
	d.Next()
	assert.Equal(t, "222", d.Value())
	d.Next()
	assert.Equal(t, "", d.Value())
	d.Prev()
	assert.Equal(t, "222", d.Value())
}

func TestDropdown_CycleEmpty(t *testing.T) {
	d := NewDropdown()
	d.Next()
	d.Prev()
	assert.Equal(t, "", d.Value())
}
