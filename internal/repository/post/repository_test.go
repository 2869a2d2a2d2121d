package post_repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpost-service/internal/custom_errors"
	"inkpost-service/internal/logger"
	"inkpost-service/internal/model"
	"inkpost-service/internal/repository/post/memory"
)

func newRepo() *memory.PostRepository {
	return memory.NewPostRepository(logger.New("test"))
}

func seedPost(t *testing.T, repo *memory.PostRepository, ownerID int64, title, content string) *model.Post {
	t.Helper()
	post, err := repo.Create(context.Background(), &model.Post{
		OwnerID:   ownerID,
		Title:     title,
		Content:   content,
		Published: true,
	})
	require.NoError(t, err)
	return post
}

func TestPostRepository_ListVisible(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()

	first := seedPost(t, repo, 1, "First", "alpha")
	second := seedPost(t, repo, 1, "Second", "beta")
	third := seedPost(t, repo, 2, "Third", "gamma")

	t.Run("OrderedByIDAscending", func(t *testing.T) {
		posts, err := repo.ListVisible(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.Equal(t, first.ID, posts[0].ID)
		assert.Equal(t, second.ID, posts[1].ID)
		assert.Equal(t, third.ID, posts[2].ID)
	})

	t.Run("SkipAndLimit", func(t *testing.T) {
		posts, err := repo.ListVisible(ctx, 1, 1)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, second.ID, posts[0].ID)
	})

	t.Run("SkipPastEnd", func(t *testing.T) {
		posts, err := repo.ListVisible(ctx, 10, 10)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("ExcludesDeleted", func(t *testing.T) {
		_, err := repo.SoftDelete(ctx, second.ID)
		require.NoError(t, err)

		posts, err := repo.ListVisible(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		for _, post := range posts {
			assert.NotEqual(t, second.ID, post.ID)
		}
	})
}

func TestPostRepository_Search(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()

	hiTitle := seedPost(t, repo, 1, "Hello there", "nothing special")
	hiContent := seedPost(t, repo, 1, "Unrelated", "well HELLO world")
	seedPost(t, repo, 1, "Other", "no match here")

	t.Run("CaseInsensitiveTitleOrContent", func(t *testing.T) {
		posts, err := repo.Search(ctx, "hello", 0, 10)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, hiTitle.ID, posts[0].ID)
		assert.Equal(t, hiContent.ID, posts[1].ID)
	})

	t.Run("ExcludesDeleted", func(t *testing.T) {
		_, err := repo.SoftDelete(ctx, hiTitle.ID)
		require.NoError(t, err)

		posts, err := repo.Search(ctx, "hello", 0, 10)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, hiContent.ID, posts[0].ID)
	})
}

func TestPostRepository_ListByOwner(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()

	mine := seedPost(t, repo, 1, "Mine", "content")
	seedPost(t, repo, 2, "Theirs", "content")

	posts, err := repo.ListByOwner(ctx, 1, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, mine.ID, posts[0].ID)

	_, err = repo.SoftDelete(ctx, mine.ID)
	require.NoError(t, err)

	posts, err = repo.ListByOwner(ctx, 1, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepository_SoftDelete(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()

	post := seedPost(t, repo, 1, "Doomed", "content")

	deleted, err := repo.SoftDelete(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, deleted.DeletedAt.Valid)

	// Second delete reports not-found: a soft-deleted post is
	// indistinguishable from an absent one.
	_, err = repo.SoftDelete(ctx, post.ID)
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)

	_, err = repo.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)

	_, err = repo.SoftDelete(ctx, 9999)
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
}
