package repository

import (
	"context"
	"testing"

	"taskboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelRenameRoundTrip(t *testing.T) {
	repo := NewLabelRepository(freshDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, "urgent")
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, "critical")
	require.NoError(t, err)
	require.NotNil(t, updated)

	labels, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, models.Label{ID: created.ID, Name: "critical"}, labels[0])
}

func TestLabelValidation(t *testing.T) {
	repo := NewLabelRepository(freshDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "")
	assert.ErrorIs(t, err, models.ErrInvalidLabelData)

	created, err := repo.Create(ctx, "bug")
	require.NoError(t, err)
	_, err = repo.Update(ctx, created.ID, " ")
	assert.ErrorIs(t, err, models.ErrInvalidLabelData)
}

func TestLabelMissingIDs(t *testing.T) {
	repo := NewLabelRepository(freshDB(t))
	ctx := context.Background()

	updated, err := repo.Update(ctx, 777, "ghost")
	assert.NoError(t, err)
	assert.Nil(t, updated)

	assert.NoError(t, repo.Delete(ctx, 777))

	_, err = repo.Get(ctx, 777)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteLabelKeepsTaskReferences(t *testing.T) {
	db := freshDB(t)
	labels := NewLabelRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	label, err := labels.Create(ctx, "frontend")
	require.NoError(t, err)
	task, err := tasks.Create(ctx, models.TaskInput{Title: "css", Status: models.StatusToDo, Labels: []int64{int64(label.ID)}})
	require.NoError(t, err)

	require.NoError(t, labels.Delete(ctx, label.ID))

	got, err := tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{int64(label.ID)}, got.Labels)
}
