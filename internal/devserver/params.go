package devserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/api"
)

const (
	defaultLimit        = 20
	defaultCommentLimit = 50
	maxLimit            = 100
	searchLimit         = 20

	msgLimitRange = "Limit must be between 1 and 100"
)

// queryInt parses a leading integer the way a lenient form parser would:
// "12abc" is 12, anything without leading digits falls back to def, and
// so does zero.
func queryInt(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil || n == 0 {
		return def
	}
	return n
}

// parsePage reads limit and offset from the query. It writes a 400 and
// reports false when the limit is out of range.
func parsePage(w http.ResponseWriter, r *http.Request, def int) (api.Page, bool) {
	q := r.URL.Query()
	page := api.Page{
		Limit:  queryInt(q.Get("limit"), def),
		Offset: queryInt(q.Get("offset"), 0),
	}
	if page.Limit < 1 || page.Limit > maxLimit {
		writeError(w, http.StatusBadRequest, msgLimitRange)
		return api.Page{}, false
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	return page, true
}

// idParam parses a numeric path parameter.
func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func (s *Server) author(userID int64) *api.Author {
	a := &api.Author{UserID: userID}
	if u, ok := s.store.userByID(userID); ok {
		a.Username = u.Username
	}
	return a
}

func (s *Server) postView(p *post) api.Post {
	return api.Post{
		ID:           p.ID,
		Content:      p.Content,
		CreatedAt:    p.CreatedAt,
		Author:       s.author(p.UserID),
		CommentCount: s.store.commentCount(p.ID),
	}
}

func (s *Server) commentView(c *comment) api.Comment {
	return api.Comment{
		ID:        c.ID,
		PostID:    c.PostID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		Author:    s.author(c.UserID),
	}
}

// postPage renders one page of posts with its pagination envelope.
func (s *Server) postPage(posts []*post, page api.Page) api.PostPage {
	out := api.PostPage{
		Posts:      make([]api.Post, 0, page.Limit),
		Pagination: api.NewPagination(page.Limit, page.Offset, len(posts)),
	}
	for _, p := range window(posts, page.Offset, page.Limit) {
		out.Posts = append(out.Posts, s.postView(p))
	}
	return out
}

func (s *Server) userSummary(u *user, withFollowing bool) api.UserSummary {
	st := s.store.stats(u.ID)
	summary := api.UserSummary{
		UserID:    u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		Stats:     api.Stats{Followers: st.Followers, Posts: st.Posts},
	}
	if withFollowing {
		following := st.Following
		summary.Stats.Following = &following
	}
	return summary
}
