package post_http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"inkpost-service/internal/logger"
	post_service "inkpost-service/internal/service/post"
)

var validate = validator.New()

// MediaStorage is the slice of object storage the media endpoints need.
type MediaStorage interface {
	Upload(ctx context.Context, folder, filename, contentType string, body []byte) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

type PostHTTPService struct {
	postService post_service.Service
	log         *logger.Logger

	createPostHandler  *CreatePostHandler
	listPostsHandler   *ListPostsHandler
	searchPostsHandler *SearchPostsHandler
	userPostsHandler   *UserPostsHandler
	deletePostHandler  *DeletePostHandler
	uploadMediaHandler *UploadMediaHandler
	deleteMediaHandler *DeleteMediaHandler
}

func NewPostHTTPService(postService post_service.Service, storage MediaStorage, log *logger.Logger) *PostHTTPService {
	return &PostHTTPService{
		postService:        postService,
		log:                log,
		createPostHandler:  NewCreatePostHandler(postService, validate),
		listPostsHandler:   NewListPostsHandler(postService),
		searchPostsHandler: NewSearchPostsHandler(postService),
		userPostsHandler:   NewUserPostsHandler(postService),
		deletePostHandler:  NewDeletePostHandler(postService, validate),
		uploadMediaHandler: NewUploadMediaHandler(storage),
		deleteMediaHandler: NewDeleteMediaHandler(storage),
	}
}

func (s *PostHTTPService) CreatePost(w http.ResponseWriter, r *http.Request) {
	s.createPostHandler.CreatePost(w, r)
}

func (s *PostHTTPService) ListPosts(w http.ResponseWriter, r *http.Request) {
	s.listPostsHandler.ListPosts(w, r)
}

func (s *PostHTTPService) SearchPosts(w http.ResponseWriter, r *http.Request) {
	s.searchPostsHandler.SearchPosts(w, r)
}

func (s *PostHTTPService) UserPosts(w http.ResponseWriter, r *http.Request) {
	s.userPostsHandler.UserPosts(w, r)
}

func (s *PostHTTPService) DeletePost(w http.ResponseWriter, r *http.Request) {
	s.deletePostHandler.DeletePost(w, r)
}

func (s *PostHTTPService) UploadMedia(w http.ResponseWriter, r *http.Request) {
	s.uploadMediaHandler.UploadMedia(w, r)
}

func (s *PostHTTPService) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	s.deleteMediaHandler.DeleteMedia(w, r)
}

// pagination pulls skip/limit from the query string. Malformed or missing
// values fall back to zero; the service clamps them to its own bounds.
func pagination(r *http.Request) (int, int) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return skip, limit
}
