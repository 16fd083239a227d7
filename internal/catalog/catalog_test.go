package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanByID(t *testing.T) {
	plan := PlanByID("growth")
	require.NotNil(t, plan)
	assert.Equal(t, 150, plan.Credits)
	assert.Equal(t, 129, plan.Price)
	assert.True(t, plan.Popular)

	assert.Nil(t, PlanByID("platinum"))
}

func TestStyleByID(t *testing.T) {
	style := StyleByID("oil_painting")
	require.NotNil(t, style)
	assert.Equal(t, "Oil Painting", style.Label)

	assert.Nil(t, StyleByID("baroque"))
}

func TestCuratedExamplesIsACopy(t *testing.T) {
	first := CuratedExamples()
	first[0].Likes = 0
	first[0].Prompt = "mutated"

	second := CuratedExamples()
	assert.Equal(t, 124, second[0].Likes, "catalog must not observe caller mutations")
	assert.NotEqual(t, "mutated", second[0].Prompt)
}

func TestIsCurated(t *testing.T) {
	for _, img := range CuratedExamples() {
		assert.True(t, IsCurated(img.ID))
	}
	assert.False(t, IsCurated("b2a1d0ee-0000-0000-0000-000000000000"))
	assert.False(t, IsCurated(""))
}
