package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirmModalTitle(t *testing.T) {
	m := NewConfirmModal()
	m.SetCount(1)
	assert.Equal(t, "Delete 1 selected movie?", m.Title())

	m.SetCount(3)
	assert.Equal(t, "Delete 3 selected movies?", m.Title())
	assert.Contains(t, m.View(), "cancel")
}
