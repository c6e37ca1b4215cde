package executor

import (
	"context"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/api"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/commands"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/output"
)

func (e *Executor) follow(ctx context.Context, inv *invocation) error {
	username := trimAt(inv.cmd.Args[0])

	res, err := call(ctx, e, inv, "Following "+username+"...", func(ctx context.Context) (*api.Message, error) {
		return e.backend.FollowUser(ctx, username)
	})
	if err != nil {
		return err
	}

	b := inv.out
	b.blank()
	b.success("✓ %s", res.Message)
	b.blank()
	return nil
}

func (e *Executor) unfollow(ctx context.Context, inv *invocation) error {
	username := trimAt(inv.cmd.Args[0])

	res, err := call(ctx, e, inv, "Unfollowing "+username+"...", func(ctx context.Context) (*api.Message, error) {
		return e.backend.UnfollowUser(ctx, username)
	})
	if err != nil {
		return err
	}

	b := inv.out
	b.blank()
	b.success("✓ %s", res.Message)
	b.blank()
	return nil
}

func (e *Executor) following(ctx context.Context, inv *invocation) error {
	list, err := call(ctx, e, inv, "Loading following list...", e.backend.GetFollowing)
	if err != nil {
		return err
	}

	b := inv.out
	b.blank()
	if list.Count == 0 {
		b.info("You are not following anyone yet")
		b.info("Use: follow <username> to follow someone")
		b.blank()
		return nil
	}

	b.info("%s", title("FOLLOWING (%d)", list.Count))
	b.blank()
	e.followList(b, list.Entries, "Following since")
	b.info(listRule)
	b.blank()
	return nil
}

func (e *Executor) followers(ctx context.Context, inv *invocation) error {
	list, err := call(ctx, e, inv, "Loading followers...", e.backend.GetFollowers)
	if err != nil {
		return err
	}

	b := inv.out
	b.blank()
	if list.Count == 0 {
		b.info("You have no followers yet")
		b.info("Share your posts to attract followers!")
		b.blank()
		return nil
	}

	b.info("%s", title("FOLLOWERS (%d)", list.Count))
	b.blank()
	e.followList(b, list.Entries, "Following you since")
	b.info(listRule)
	b.blank()
	return nil
}

func (e *Executor) followList(b *batch, entries []api.FollowEntry, since string) {
	for i, entry := range entries {
		b.response("[%d] @%s", i+1, entry.Username)
		b.info("    %s: %s", since, e.date(entry.FollowedAt))
		b.blank()
	}
}

func (e *Executor) isFollowing(ctx context.Context, inv *invocation) error {
	username := trimAt(inv.cmd.Args[0])

	status, err := call(ctx, e, inv, "Checking @"+username+"...", func(ctx context.Context) (*api.FollowStatus, error) {
		return e.backend.CheckFollowing(ctx, username)
	})
	if err != nil {
		return err
	}

	name := status.Username
	if name == "" {
		name = username
	}

	b := inv.out
	b.blank()
	if status.IsFollowing {
		b.success("✓ You are following @%s", name)
	} else {
		b.info("You are not following @%s", name)
		b.info("Use: follow %s to follow", name)
	}
	b.blank()
	return nil
}

func (e *Executor) myFeed(ctx context.Context, inv *invocation) error {
	page, err := pageFlags(inv, commands.DefaultLimit)
	if err != nil {
		return err
	}

	res, err := call(ctx, e, inv, "Loading your personalized feed...", func(ctx context.Context) (*api.PostPage, error) {
		return e.backend.GetFollowingFeed(ctx, page)
	})
	if err != nil {
		return err
	}

	b := inv.out
	b.blank()
	if len(res.Posts) == 0 {
		if page.Offset == 0 {
			b.info("Your feed is empty")
			b.info("Follow users to see their posts here!")
			b.info("Use: follow <username>")
		} else {
			b.info("No more posts in your feed")
		}
		b.blank()
		return nil
	}

	b.info("%s", title("MY FEED (%d posts)", res.Pagination.Total))
	b.blank()
	e.postList(b, res.Posts, page.Offset)
	pageFooter(b, output.PageHint{
		Command: commands.MyFeed,
		Limit:   page.Limit,
		Offset:  page.Offset,
		Count:   len(res.Posts),
		Total:   res.Pagination.Total,
	}, res.Pagination.HasMore, "End of feed")
	b.blank()
	return nil
}
