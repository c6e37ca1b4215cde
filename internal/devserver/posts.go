package devserver

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/api"
)

const maxPostLength = 1000

type contentBody struct {
	Content string `json:"content"`
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r, defaultLimit)
	if !ok {
		return
	}
	posts := s.store.postsWhere(func(*post) bool { return true })
	writeJSON(w, http.StatusOK, s.postPage(posts, page))
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	var req contentBody
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		writeError(w, http.StatusBadRequest, "Post content is required")
		return
	}
	if utf8.RuneCountInString(req.Content) > maxPostLength {
		writeError(w, http.StatusBadRequest, "Post content must be 1000 characters or less")
		return
	}

	c, _ := callerFrom(r)
	p := s.store.createPost(c.UserID, content, s.now())
	logFrom(r).Debug("post created", "post_id", p.ID, "user_id", c.UserID)

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Post created successfully",
		"post": api.Post{
			ID:        p.ID,
			UserID:    p.UserID,
			Content:   p.Content,
			CreatedAt: p.CreatedAt,
		},
	})
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	p, ok := s.store.post(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"post": s.postView(p)})
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	p, ok := s.store.post(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	c, _ := callerFrom(r)
	if p.UserID != c.UserID {
		writeError(w, http.StatusForbidden, "You can only delete your own posts")
		return
	}

	s.store.deletePost(id)
	writeJSON(w, http.StatusOK, api.Message{Message: "Post deleted successfully"})
}
