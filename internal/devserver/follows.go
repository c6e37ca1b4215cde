package devserver

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/api"
)

// target resolves the {username} path parameter, writing a 404 when the
// user does not exist.
func (s *Server) target(w http.ResponseWriter, r *http.Request) (*user, bool) {
	u, ok := s.store.userByName(chi.URLParam(r, "username"))
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return nil, false
	}
	return u, true
}

func (s *Server) followUser(w http.ResponseWriter, r *http.Request) {
	c, _ := callerFrom(r)
	u, ok := s.target(w, r)
	if !ok {
		return
	}
	if u.ID == c.UserID {
		writeError(w, http.StatusBadRequest, "You cannot follow yourself")
		return
	}

	f, created := s.store.addFollow(c.UserID, u.ID, s.now())
	if !created {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("You are already following %s", u.Username))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": fmt.Sprintf("You are now following %s", u.Username),
		"follow": map[string]any{
			"username":   u.Username,
			"followedAt": f.CreatedAt,
		},
	})
}

func (s *Server) unfollowUser(w http.ResponseWriter, r *http.Request) {
	c, _ := callerFrom(r)
	u, ok := s.target(w, r)
	if !ok {
		return
	}
	if !s.store.removeFollow(c.UserID, u.ID) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("You are not following %s", u.Username))
		return
	}
	writeJSON(w, http.StatusOK, api.Message{Message: fmt.Sprintf("You unfollowed %s", u.Username)})
}

// followEntries renders edges as rows naming the user on the other end.
func (s *Server) followEntries(edges []follow, other func(follow) int64) []api.FollowEntry {
	out := make([]api.FollowEntry, 0, len(edges))
	for _, f := range edges {
		u, ok := s.store.userByID(other(f))
		if !ok {
			continue
		}
		out = append(out, api.FollowEntry{
			UserID:     u.ID,
			Username:   u.Username,
			FollowedAt: f.CreatedAt,
		})
	}
	return out
}

func (s *Server) listFollowing(w http.ResponseWriter, r *http.Request) {
	c, _ := callerFrom(r)
	edges := s.store.followEdges(func(f follow) bool { return f.FollowerID == c.UserID })
	entries := s.followEntries(edges, func(f follow) int64 { return f.FollowingID })
	writeJSON(w, http.StatusOK, map[string]any{
		"following": entries,
		"count":     len(entries),
	})
}

func (s *Server) listFollowers(w http.ResponseWriter, r *http.Request) {
	c, _ := callerFrom(r)
	edges := s.store.followEdges(func(f follow) bool { return f.FollowingID == c.UserID })
	entries := s.followEntries(edges, func(f follow) int64 { return f.FollowerID })
	writeJSON(w, http.StatusOK, map[string]any{
		"followers": entries,
		"count":     len(entries),
	})
}

func (s *Server) followingFeed(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r, defaultLimit)
	if !ok {
		return
	}
	c, _ := callerFrom(r)

	followed := make(map[int64]bool)
	for _, f := range s.store.followEdges(func(f follow) bool { return f.FollowerID == c.UserID }) {
		followed[f.FollowingID] = true
	}
	posts := s.store.postsWhere(func(p *post) bool { return followed[p.UserID] })
	writeJSON(w, http.StatusOK, s.postPage(posts, page))
}

func (s *Server) checkFollowing(w http.ResponseWriter, r *http.Request) {
	c, _ := callerFrom(r)
	u, ok := s.target(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, api.FollowStatus{
		IsFollowing: s.store.isFollowing(c.UserID, u.ID),
		Username:    u.Username,
	})
}
