package executor

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/api"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/commands"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/output"
)

func (e *Executor) comment(ctx context.Context, inv *invocation) error {
	postID := inv.cmd.Args[0]
	content := strings.Join(inv.cmd.Args[1:], " ")
	if strings.TrimSpace(content) == "" {
		return inv.usage()
	}
	if utf8.RuneCountInString(content) > commands.MaxCommentLength {
		return invalid("Comment must be %d characters or less", commands.MaxCommentLength)
	}

	c, err := call(ctx, e, inv, "Creating comment...", func(ctx context.Context) (*api.Comment, error) {
		return e.backend.CreateComment(ctx, postID, content)
	})
	if err != nil {
		return err
	}

	b := inv.out
	b.blank()
	b.success("✓ Comment added successfully!")
	b.info("  Comment ID: %d", c.ID)
	b.blank()
	b.info("Use: comments %s to view all comments", postID)
	b.blank()
	return nil
}

func (e *Executor) comments(ctx context.Context, inv *invocation) error {
	postID := inv.cmd.Args[0]

	page, err := pageFlags(inv, commands.DefaultCommentLimit)
	if err != nil {
		return err
	}

	res, err := call(ctx, e, inv, "Loading comments...", func(ctx context.Context) (*api.CommentPage, error) {
		return e.backend.GetPostComments(ctx, postID, page)
	})
	if err != nil {
		return err
	}

	b := inv.out
	b.blank()
	if len(res.Comments) == 0 {
		if page.Offset == 0 {
			b.info("No comments yet")
			b.info("Be the first to comment!")
			b.info(`Use: comment %s "Your comment"`, postID)
		} else {
			b.info("No more comments")
		}
		b.blank()
		return nil
	}

	b.info("%s", title("COMMENTS (%d)", res.Pagination.Total))
	b.blank()
	e.commentList(b, res.Comments, page.Offset)
	pageFooter(b, output.PageHint{
		Command: commands.Comments + " " + postID,
		Limit:   page.Limit,
		Offset:  page.Offset,
		Count:   len(res.Comments),
		Total:   res.Pagination.Total,
	}, res.Pagination.HasMore, "End of comments")
	b.blank()
	return nil
}

func (e *Executor) viewComment(ctx context.Context, inv *invocation) error {
	id := inv.cmd.Args[0]

	c, err := call(ctx, e, inv, "Loading comment "+id+"...", func(ctx context.Context) (*api.Comment, error) {
		return e.backend.GetComment(ctx, id)
	})
	if err != nil {
		return err
	}

	b := inv.out
	b.blank()
	b.info(profileRule)
	b.info("  @%s · %s", c.AuthorName(), e.dateTime(c.CreatedAt))
	b.blank()
	b.response("  %s", c.Content)
	b.blank()
	b.info("  Comment ID: %d | Post ID: %d", c.ID, c.PostID)
	b.info(profileRule)
	b.blank()
	return nil
}

func (e *Executor) deleteComment(ctx context.Context, inv *invocation) error {
	id := inv.cmd.Args[0]

	if _, err := call(ctx, e, inv, "Deleting comment "+id+"...", func(ctx context.Context) (*api.Message, error) {
		return e.backend.DeleteComment(ctx, id)
	}); err != nil {
		return err
	}

	b := inv.out
	b.blank()
	b.success("✓ Comment deleted successfully!")
	b.blank()
	return nil
}
