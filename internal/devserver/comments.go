package devserver

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/api"
)

const maxCommentLength = 500

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	var req contentBody
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		writeError(w, http.StatusBadRequest, "Comment content is required")
		return
	}
	if utf8.RuneCountInString(req.Content) > maxCommentLength {
		writeError(w, http.StatusBadRequest, "Comment must be 500 characters or less")
		return
	}

	postID, ok := idParam(r, "postId")
	if !ok {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}

	c, _ := callerFrom(r)
	cm, err := s.store.createComment(postID, c.UserID, content, s.now())
	if errors.Is(err, errNotFound) {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error while creating comment")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Comment created successfully",
		"comment": api.Comment{
			ID:        cm.ID,
			PostID:    cm.PostID,
			UserID:    cm.UserID,
			Content:   cm.Content,
			CreatedAt: cm.CreatedAt,
		},
	})
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r, defaultCommentLimit)
	if !ok {
		return
	}
	postID, ok := idParam(r, "postId")
	if !ok {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if _, ok := s.store.post(postID); !ok {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}

	all := s.store.postComments(postID)
	out := api.CommentPage{
		Comments:   make([]api.Comment, 0, page.Limit),
		Pagination: api.NewPagination(page.Limit, page.Offset, len(all)),
	}
	for _, c := range window(all, page.Offset, page.Limit) {
		out.Comments = append(out.Comments, s.commentView(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getComment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Comment not found")
		return
	}
	c, ok := s.store.comment(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Comment not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"comment": s.commentView(c)})
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Comment not found")
		return
	}
	cm, ok := s.store.comment(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Comment not found")
		return
	}
	c, _ := callerFrom(r)
	if cm.UserID != c.UserID {
		writeError(w, http.StatusForbidden, "You can only delete your own comments")
		return
	}

	s.store.deleteComment(id)
	writeJSON(w, http.StatusOK, api.Message{Message: "Comment deleted successfully"})
}
