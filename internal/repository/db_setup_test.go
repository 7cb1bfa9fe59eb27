package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteAllTableThenRecreate(t *testing.T) {
	db := freshDB(t)
	ctx := context.Background()
	t.Cleanup(func() {
		require.NoError(t, CreateTableIfNotExists(ctx, db))
	})

	require.NoError(t, DeleteAllTable(ctx, db))

	var n int
	err := db.QueryRowContext(ctx,
		"SELECT count(*) FROM information_schema.tables WHERE table_name IN ('users', 'tasks', 'labels')").Scan(&n)
	require.NoError(t, err)
	assert.Zero(t, n)

	// dropping twice is harmless
	require.NoError(t, DeleteAllTable(ctx, db))

	require.NoError(t, CreateTableIfNotExists(ctx, db))
	err = db.QueryRowContext(ctx,
		"SELECT count(*) FROM information_schema.tables WHERE table_name IN ('users', 'tasks', 'labels')").Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
