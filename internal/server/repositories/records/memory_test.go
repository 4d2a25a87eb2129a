package records

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_CRUD(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	var ids []string
	for _, site := range []string{"a.com", "b.com", "c.com"} {
		r, err := repo.Create(ctx, &models.Record{OwnerID: "u1", Site: site, Username: "alice", Ciphertext: "ct-" + site})
		require.NoError(t, err)
		ids = append(ids, r.ID)
	}
	_, err := repo.Create(ctx, &models.Record{OwnerID: "u2", Site: "x.com"})
	require.NoError(t, err)

	list, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, m := range list {
		assert.Equal(t, ids[i], m.ID)
	}

	user := "bob"
	ct := "ct-new"
	meta, err := repo.Update(ctx, "u1", ids[1], models.RecordPatch{Username: &user, Ciphertext: &ct})
	require.NoError(t, err)
	assert.Equal(t, "bob", meta.Username)
	assert.Equal(t, "b.com", meta.Site)

	got, err := repo.Get(ctx, "u1", ids[1])
	require.NoError(t, err)
	assert.Equal(t, "ct-new", got.Ciphertext)

	dump, err := repo.Dump(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, dump, 3)

	require.NoError(t, repo.Delete(ctx, "u1", ids[0]))
	assert.ErrorIs(t, repo.Delete(ctx, "u1", ids[0]), common.ErrNotFound)
}

func TestMemory_OwnershipScoped(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	r, err := repo.Create(ctx, &models.Record{OwnerID: "u1", Site: "a.com", Ciphertext: "ct"})
	require.NoError(t, err)

	_, err = repo.Get(ctx, "u2", r.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	site := "evil.com"
	_, err = repo.Update(ctx, "u2", r.ID, models.RecordPatch{Site: &site})
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "u2", r.ID), common.ErrNotFound)

	list, err := repo.ListByOwner(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	r, err := repo.Create(ctx, &models.Record{OwnerID: "u1", Site: "a.com", Ciphertext: "ct"})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "u1", r.ID)
	require.NoError(t, err)
	got.Ciphertext = "changed"

	again, err := repo.Get(ctx, "u1", r.ID)
	require.NoError(t, err)
	assert.Equal(t, "ct", again.Ciphertext)
}
