package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	"amanah_backend/internals/testutil"
)

func TestProgramBelongsToCategory(t *testing.T) {
	s, err := schema.Parse(&ProgramModel{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	rel, ok := s.Relationships.Relations["Category"]
	require.True(t, ok)
	assert.Equal(t, schema.BelongsTo, rel.Type)

	c := rel.ParseConstraint()
	require.NotNil(t, c)
	assert.Equal(t, "programs", c.Schema.Table)
	assert.Equal(t, "program_categories", c.ReferenceSchema.Table)
}

func TestCategoryRowsAcceptPrograms(t *testing.T) {
	db := testutil.NewDB(t, &ProgramCategoryModel{}, &ProgramModel{})

	cat := ProgramCategoryModel{ProgramCategoryName: "Water", ProgramCategorySlug: "water"}
	require.NoError(t, db.Create(&cat).Error)
	p := ProgramModel{ProgramName: "Wells", ProgramSlug: "wells", ProgramCategoryID: &cat.ID, ProgramIsActive: true}
	require.NoError(t, db.Create(&p).Error)

	var got ProgramModel
	require.NoError(t, db.Preload("Category").First(&got, "program_id = ?", p.ProgramID).Error)
	require.NotNil(t, got.Category)
	assert.Equal(t, "water", got.Category.ProgramCategorySlug)

	// programs still reference the category
	assert.Error(t, db.Delete(&ProgramCategoryModel{}, "program_category_id = ?", cat.ID).Error)
}
