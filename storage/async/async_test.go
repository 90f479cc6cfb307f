package async

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/docvault/core"
	"github.com/poiesic/docvault/storage"
	badgerstore "github.com/poiesic/docvault/storage/badger"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	inner, backend, err := badgerstore.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	repo, err := New(inner, WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(repo.Release)
	return repo
}

func TestAsyncCreateRetrieve(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	doc := &core.Document{ID: "x1", Kind: "note", Fields: map[string]core.Value{
		"title": core.String("hello"),
	}}

	stored, err := repo.Create(ctx, doc).Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x1", stored.ID)

	got, err := repo.Retrieve(ctx, "x1").Wait(ctx)
	require.NoError(t, err)
	assert.True(t, doc.Equal(got))
}

func TestAsyncErrorsPropagate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Retrieve(ctx, "missing").Wait(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = repo.Delete(ctx, "missing").Wait(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAsyncDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &core.Document{ID: "x1", Kind: "note"}).Wait(ctx)
	require.NoError(t, err)

	_, err = repo.Delete(ctx, "x1").Wait(ctx)
	require.NoError(t, err)

	_, err = repo.Retrieve(ctx, "x1").Wait(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAsyncList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	results := make([]*Result[*core.Document], 0, 5)
	for i := 1; i <= 5; i++ {
		doc := &core.Document{ID: fmt.Sprintf("r%d", i), Kind: "note"}
		results = append(results, repo.Create(ctx, doc))
	}
	for _, res := range results {
		_, err := res.Wait(ctx)
		require.NoError(t, err)
	}

	docs, err := repo.List(ctx, "r2", 2).Wait(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "r3", docs[0].ID)
	assert.Equal(t, "r4", docs[1].ID)
}

func TestAsyncConcurrentPuts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	const n = 50
	results := make([]*Result[*core.Document], 0, n)
	for i := 0; i < n; i++ {
		doc := &core.Document{ID: fmt.Sprintf("doc-%03d", i), Kind: "note", Fields: map[string]core.Value{
			"index": core.Int(int64(i)),
		}}
		results = append(results, repo.Create(ctx, doc))
	}
	for _, res := range results {
		_, err := res.Wait(ctx)
		require.NoError(t, err)
	}

	docs, err := repo.List(ctx, "", n).Wait(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, n)
}

func TestResultWaitHonorsContext(t *testing.T) {
	// A future nobody completes must not block a cancelled waiter.
	res := newResult[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := res.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResultDone(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	res := repo.Create(ctx, &core.Document{ID: "x1", Kind: "note"})
	<-res.Done()

	got, err := res.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x1", got.ID)
}

func TestReleasedPoolRefusesWork(t *testing.T) {
	inner, backend, err := badgerstore.NewMemoryStore()
	require.NoError(t, err)
	defer backend.Close()

	repo, err := New(inner, WithPoolSize(1))
	require.NoError(t, err)
	repo.Release()

	_, err = repo.Create(context.Background(), &core.Document{ID: "x1", Kind: "note"}).Wait(context.Background())
	assert.Error(t, err)
}
