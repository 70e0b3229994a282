package api

import (
	"net/http"

	"github.com/phrazzld/juicebox-api/internal/api/shared"
	"github.com/phrazzld/juicebox-api/internal/domain"
	"github.com/phrazzld/juicebox-api/internal/service"
)

// PostHandler handles the /api/posts and /api/tags endpoints.
type PostHandler struct {
	posts service.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// ListPosts handles GET /api/posts.
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListPosts(r.Context(), requesterFromRequest(r))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load posts")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]any{"posts": posts})
}

// CreatePost handles POST /api/posts. The requester becomes the author.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	authorID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreatePostRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	post, err := h.posts.CreatePost(r.Context(), domain.NewPost{
		AuthorID: authorID,
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create post")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, post)
}

// GetPost handles GET /api/posts/{postID}.
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "postID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	post, err := h.posts.GetPost(r.Context(), id, requesterFromRequest(r))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load post")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, post)
}

// UpdatePost handles PATCH /api/posts/{postID}. Only the author may update.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	id, err := getPathID(r, "postID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdatePostRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	post, err := h.posts.UpdatePost(r.Context(), requesterID, id, req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update post")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, post)
}

// ListTags handles GET /api/tags.
func (h *PostHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.posts.ListTags(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load tags")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]any{"tags": tags})
}

// ListPostsByTag handles GET /api/tags/{tagName}/posts.
func (h *PostHandler) ListPostsByTag(w http.ResponseWriter, r *http.Request) {
	tagName, err := getPathString(r, "tagName")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	posts, err := h.posts.ListPostsByTag(r.Context(), tagName, requesterFromRequest(r))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load posts")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]any{"posts": posts})
}
