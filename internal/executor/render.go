package executor

import (
	"fmt"
	"strings"
	"time"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/api"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/commands"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/output"
)

// Timestamp layouts.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"
)

const (
	bannerRule  = "═══════════════════════════════════════════════════"
	profileRule = "═══════════════════════════════════"
	listRule    = "─────────────────────────────────────────────────────────────"
	titleRule   = "═══════════════════"
)

func (e *Executor) date(t time.Time) string {
	return t.In(e.location).Format(DateLayout)
}

func (e *Executor) dateTime(t time.Time) string {
	return t.In(e.location).Format(DateTimeLayout)
}

// title renders "═══ TEXT ═══".
func title(format string, args ...any) string {
	return titleRule + " " + fmt.Sprintf(format, args...) + " " + titleRule
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// pageFlags reads --limit and --offset. A non-numeric limit falls back to
// def; an explicit out-of-range value is rejected.
func pageFlags(inv *invocation, def int) (api.Page, error) {
	limit := inv.cmd.Flags.Int("limit", def)
	offset := inv.cmd.Flags.Int("offset", 0)

	if limit < commands.MinLimit || limit > commands.MaxLimit {
		return api.Page{}, invalid("Limit must be between %d and %d", commands.MinLimit, commands.MaxLimit)
	}
	if offset < 0 {
		return api.Page{}, invalid("Offset must be 0 or greater")
	}
	return api.Page{Limit: limit, Offset: offset}, nil
}

// trimAt strips a leading "@" from a username.
func trimAt(username string) string {
	return strings.TrimPrefix(username, "@")
}

// pageFooter renders the rule and either the next-page hint or end.
func pageFooter(b *batch, hint output.PageHint, hasMore bool, end string) {
	b.info(listRule)
	if hasMore {
		b.info("%s", hint.Showing())
		b.info("%s", hint.More())
		return
	}
	b.info("%s", end)
}

// postList renders a page of posts with their authors.
func (e *Executor) postList(b *batch, posts []api.Post, offset int) {
	for i, post := range posts {
		b.info("[%d] @%s · %s", offset+i+1, post.AuthorName(), e.dateTime(post.CreatedAt))
		b.response("    %s", post.Content)
		b.info("    ID: %d | %d %s", post.ID, post.CommentCount, plural(post.CommentCount, "comment", "comments"))
		b.blank()
	}
}

func (e *Executor) commentList(b *batch, comments []api.Comment, offset int) {
	for i, c := range comments {
		b.info("[%d] @%s · %s", offset+i+1, c.AuthorName(), e.dateTime(c.CreatedAt))
		b.response("    %s", c.Content)
		b.info("    Comment ID: %d", c.ID)
		b.blank()
	}
}

func statValue(n *int) string {
	if n == nil {
		return "0"
	}
	return fmt.Sprint(*n)
}
