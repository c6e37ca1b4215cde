package executor

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/api"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/commands"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/output"
)

func (e *Executor) post(ctx context.Context, inv *invocation) error {
	content := strings.Join(inv.cmd.Args, " ")
	if strings.TrimSpace(content) == "" {
		return inv.usage()
	}
	if utf8.RuneCountInString(content) > commands.MaxPostLength {
		return invalid("Post content must be %d characters or less", commands.MaxPostLength)
	}

	post, err := call(ctx, e, inv, "Creating post...", func(ctx context.Context) (*api.Post, error) {
		return e.backend.CreatePost(ctx, content)
	})
	if err != nil {
		return err
	}

	b := inv.out
	b.blank()
	b.success("✓ Post created successfully!")
	b.info("  Post ID: %d", post.ID)
	b.blank()
	return nil
}

func (e *Executor) feed(ctx context.Context, inv *invocation) error {
	page, err := pageFlags(inv, commands.DefaultLimit)
	if err != nil {
		return err
	}

	res, err := call(ctx, e, inv, "Loading feed...", func(ctx context.Context) (*api.PostPage, error) {
		return e.backend.GetFeed(ctx, page)
	})
	if err != nil {
		return err
	}

	b := inv.out
	b.blank()
	if len(res.Posts) == 0 {
		b.info("No posts found. Be the first to post!")
		b.info(`Use: post "Your message here"`)
		b.blank()
		return nil
	}

	b.info("%s", title("FEED (%d total posts)", res.Pagination.Total))
	b.blank()
	e.postList(b, res.Posts, page.Offset)
	pageFooter(b, output.PageHint{
		Command: commands.Feed,
		Limit:   page.Limit,
		Offset:  page.Offset,
		Count:   len(res.Posts),
		Total:   res.Pagination.Total,
	}, res.Pagination.HasMore, "End of feed")
	b.blank()
	return nil
}

func (e *Executor) viewPost(ctx context.Context, inv *invocation) error {
	id := inv.cmd.Args[0]

	post, err := call(ctx, e, inv, "Loading post "+id+"...", func(ctx context.Context) (*api.Post, error) {
		return e.backend.GetPost(ctx, id)
	})
	if err != nil {
		return err
	}

	b := inv.out
	b.blank()
	b.info(profileRule)
	b.info("  @%s · %s", post.AuthorName(), e.dateTime(post.CreatedAt))
	b.blank()
	b.response("  %s", post.Content)
	b.blank()
	b.info("  ID: %d | %d %s", post.ID, post.CommentCount, plural(post.CommentCount, "comment", "comments"))
	b.info(profileRule)
	b.blank()
	b.info("Use: comments %d to view comments", post.ID)
	b.blank()
	return nil
}

func (e *Executor) deletePost(ctx context.Context, inv *invocation) error {
	id := inv.cmd.Args[0]

	if _, err := call(ctx, e, inv, "Deleting post "+id+"...", func(ctx context.Context) (*api.Message, error) {
		return e.backend.DeletePost(ctx, id)
	}); err != nil {
		return err
	}

	b := inv.out
	b.blank()
	b.success("✓ Post deleted successfully!")
	b.blank()
	return nil
}
