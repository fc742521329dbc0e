package core

import (
	"testing"

	"github.com/huangsam/decider/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildView(t *testing.T) {
	m := newTestMatrix()
	c := m.AddCriterion("Cost", 7)
	o1 := m.AddOption("A") // added after the criterion, so unrated
	m.AddOption("B")
	m.SetRating("id_3", c, 0)

	view := BuildView(m)
	assert.True(t, view.Ready)
	assert.Equal(t, []schema.CriterionView{{ID: c, Name: "Cost", Weight: 7}}, view.Criteria)
	require.Len(t, view.Rows, 2)

	assert.Equal(t, o1, view.Rows[0].OptionID)
	assert.Equal(t, []schema.CellView{{CriterionID: c, Value: 5, Stored: false}}, view.Rows[0].Cells)
	assert.Equal(t, []schema.CellView{{CriterionID: c, Value: 0, Stored: true}}, view.Rows[1].Cells)
}

func TestBuildViewNotReady(t *testing.T) {
	m := newTestMatrix()
	m.AddOption("A")
	view := BuildView(m)
	assert.False(t, view.Ready)
	assert.Len(t, view.Rows, 1)
	assert.Empty(t, view.Rows[0].Cells)
	assert.Empty(t, view.Criteria)
}
