package services

import (
	"testing"

	"github.com/farellandr/techfesia/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagLifecycle(t *testing.T) {
	db := newTestDB(t)

	tag, err := CreateTag(db, "ai", "Artificial intelligence")
	require.NoError(t, err)
	assert.Equal(t, "ai", tag.Name)

	_, err = CreateTag(db, "ai", "again")
	assert.ErrorIs(t, err, ErrTagExists)

	tag, err = UpdateTag(db, "ai", "Machine learning")
	require.NoError(t, err)
	assert.Equal(t, "Machine learning", tag.Description)

	_, err = UpdateTag(db, "web", "nope")
	assert.ErrorIs(t, err, ErrTagNotFound)

	mustCreateTag(t, db, "web")
	tags, err := ListTags(db)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "Machine learning", tags[0].Description)

	require.NoError(t, DeleteTag(db, "ai"))
	assert.ErrorIs(t, DeleteTag(db, "ai"), ErrTagNotFoundOnDelete)
}

func TestDeleteTagInUse(t *testing.T) {
	db := newTestDB(t)
	mustCreateTag(t, db, "ai")

	req := teamRequest("Tagged")
	req.PublicID = strPtr("tagged")
	req.Tags = names("ai")
	_, err := CreateEvent(db, req)
	require.NoError(t, err)

	assert.ErrorIs(t, DeleteTag(db, "ai"), ErrTagInUse)

	_, err = UpdateEvent(db, "tagged", teamRequest("Tagged"))
	require.NoError(t, err)
	assert.NoError(t, DeleteTag(db, "ai"))
}

func TestCategoryLifecycle(t *testing.T) {
	db := newTestDB(t)

	_, err := CreateCategory(db, "coding", "Programming")
	require.NoError(t, err)

	_, err = CreateCategory(db, "coding", "again")
	assert.ErrorIs(t, err, ErrCategoryExists)

	category, err := UpdateCategory(db, "coding", "Competitive programming")
	require.NoError(t, err)
	assert.Equal(t, "Competitive programming", category.Description)

	_, err = UpdateCategory(db, "music", "")
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	assert.ErrorIs(t, DeleteCategory(db, "music"), ErrCategoryNotFoundOnDelete)
	require.NoError(t, DeleteCategory(db, "coding"))

	categories, err := ListCategories(db)
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestDeleteCategoryInUse(t *testing.T) {
	db := newTestDB(t)
	mustCreateCategory(t, db, "coding")

	req := soloRequest("Categorized")
	req.Category = names("coding")
	_, err := CreateEvent(db, req)
	require.NoError(t, err)

	assert.ErrorIs(t, DeleteCategory(db, "coding"), ErrCategoryInUse)
}

func TestDeleteDefaultCategory(t *testing.T) {
	db := newTestDB(t)

	// Rejected before the existence check, so even a missing row reports it.
	assert.ErrorIs(t, DeleteCategory(db, models.DefaultCategoryName), ErrDefaultCategory)

	_, err := EnsureDefaultCategory(db)
	require.NoError(t, err)
	assert.ErrorIs(t, DeleteCategory(db, models.DefaultCategoryName), ErrDefaultCategory)
}
