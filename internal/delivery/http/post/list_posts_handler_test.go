package post_http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"inkpost-service/internal/custom_errors"
	post_http "inkpost-service/internal/delivery/http/post"
	"inkpost-service/internal/model"
	mockpost "inkpost-service/mocks/post"
)

func TestListPostsHandler_ListPosts(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockPostService := new(mockpost.Service)
		handler := post_http.NewListPostsHandler(mockPostService)

		mockPostService.On("ListVisible", mock.Anything, 0, 0).Return([]*model.PostDetailed{
			{Post: &model.Post{ID: 1, OwnerID: 7, Title: "First"}},
			{Post: &model.Post{ID: 2, OwnerID: 8, Title: "Second"}},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		rec := httptest.NewRecorder()

		handler.ListPosts(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"title":"First"`)
		assert.Contains(t, rec.Body.String(), `"title":"Second"`)
		mockPostService.AssertExpectations(t)
	})

	t.Run("PaginationPassedThrough", func(t *testing.T) {
		mockPostService := new(mockpost.Service)
		handler := post_http.NewListPostsHandler(mockPostService)

		mockPostService.On("ListVisible", mock.Anything, 20, 5).Return([]*model.PostDetailed{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/posts?skip=20&limit=5", nil)
		rec := httptest.NewRecorder()

		handler.ListPosts(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
		mockPostService.AssertExpectations(t)
	})

	t.Run("MalformedPaginationFallsBackToZero", func(t *testing.T) {
		mockPostService := new(mockpost.Service)
		handler := post_http.NewListPostsHandler(mockPostService)

		mockPostService.On("ListVisible", mock.Anything, 0, 0).Return([]*model.PostDetailed{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/posts?skip=abc&limit=xyz", nil)
		rec := httptest.NewRecorder()

		handler.ListPosts(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		mockPostService.AssertExpectations(t)
	})

	t.Run("NilResultSerializesAsEmptyArray", func(t *testing.T) {
		mockPostService := new(mockpost.Service)
		handler := post_http.NewListPostsHandler(mockPostService)

		mockPostService.On("ListVisible", mock.Anything, 0, 0).Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		rec := httptest.NewRecorder()

		handler.ListPosts(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("ServiceError", func(t *testing.T) {
		mockPostService := new(mockpost.Service)
		handler := post_http.NewListPostsHandler(mockPostService)

		mockPostService.On("ListVisible", mock.Anything, 0, 0).Return(nil, custom_errors.ErrDatabaseQuery)

		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		rec := httptest.NewRecorder()

		handler.ListPosts(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
