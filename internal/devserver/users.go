package devserver

import (
	"net/http"
	"strings"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/api"
)

func (s *Server) searchUsers(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if len(query) < 2 {
		writeError(w, http.StatusBadRequest, "Search query must be at least 2 characters")
		return
	}

	found := s.store.searchUsers(query, searchLimit)
	users := make([]api.UserSummary, 0, len(found))
	for _, u := range found {
		users = append(users, s.userSummary(u, true))
	}
	writeJSON(w, http.StatusOK, api.SearchResult{Users: users, Count: len(users)})
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r, defaultLimit)
	if !ok {
		return
	}

	all := s.store.allUsers()
	out := api.UserPage{
		Users:      make([]api.UserSummary, 0, page.Limit),
		Pagination: api.NewPagination(page.Limit, page.Offset, len(all)),
	}
	for _, u := range window(all, page.Offset, page.Limit) {
		out.Users = append(out.Users, s.userSummary(u, false))
	}
	writeJSON(w, http.StatusOK, out)
}

// userProfile reports isFollowing only to authenticated callers.
func (s *Server) userProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := s.target(w, r)
	if !ok {
		return
	}

	profile := api.UserProfile{UserSummary: s.userSummary(u, true)}
	if c, ok := callerFrom(r); ok {
		following := s.store.isFollowing(c.UserID, u.ID)
		profile.IsFollowing = &following
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": profile})
}

func (s *Server) userPosts(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r, defaultLimit)
	if !ok {
		return
	}
	u, ok := s.target(w, r)
	if !ok {
		return
	}
	posts := s.store.postsWhere(func(p *post) bool { return p.UserID == u.ID })
	writeJSON(w, http.StatusOK, s.postPage(posts, page))
}
