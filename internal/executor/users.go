package executor

import (
	"context"
	"strings"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/api"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/commands"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/output"
)

func (e *Executor) search(ctx context.Context, inv *invocation) error {
	query := strings.Join(inv.cmd.Args, " ")
	if len([]rune(strings.TrimSpace(query))) < commands.MinSearchLength {
		return inv.usage()
	}

	res, err := call(ctx, e, inv, `Searching for users matching "`+query+`"...`, func(ctx context.Context) (*api.SearchResult, error) {
		return e.backend.SearchUsers(ctx, query)
	})
	if err != nil {
		return err
	}

	b := inv.out
	b.blank()
	if res.Count == 0 {
		b.info(`No users found matching "%s"`, query)
		b.blank()
		return nil
	}

	b.info("%s", title("SEARCH RESULTS (%d)", res.Count))
	b.blank()
	for i, user := range res.Users {
		b.response("[%d] @%s", i+1, user.Username)
		b.info("    Posts: %d | Followers: %d | Following: %s", user.Stats.Posts, user.Stats.Followers, statValue(user.Stats.Following))
		b.info("    Member since: %s", e.date(user.CreatedAt))
		b.blank()
	}
	b.info(listRule)
	b.info("Use: view-user <username> to see full profile")
	b.blank()
	return nil
}

func (e *Executor) viewUser(ctx context.Context, inv *invocation) error {
	username := trimAt(inv.cmd.Args[0])

	profile, err := call(ctx, e, inv, "Loading profile for @"+username+"...", func(ctx context.Context) (*api.UserProfile, error) {
		return e.backend.GetUserProfile(ctx, username)
	})
	if err != nil {
		return err
	}

	b := inv.out
	b.blank()
	b.info(bannerRule)
	b.response("  Username: @%s", profile.Username)
	b.info("  User ID: %d", profile.UserID)
	b.blank()
	b.info("  STATS:")
	b.response("    Posts: %d", profile.Stats.Posts)
	b.response("    Followers: %d", profile.Stats.Followers)
	b.response("    Following: %s", statValue(profile.Stats.Following))
	b.blank()
	b.info("  Member since: %s", e.date(profile.CreatedAt))

	if e.session.Authenticated() && profile.IsFollowing != nil {
		b.blank()
		if *profile.IsFollowing {
			b.success("  ✓ You are following this user")
		} else {
			b.info("  Use: follow %s to follow", profile.Username)
		}
	}

	b.info(bannerRule)
	b.blank()
	b.info("Use: user-posts %s to see their posts", profile.Username)
	b.blank()
	return nil
}

func (e *Executor) userPosts(ctx context.Context, inv *invocation) error {
	username := trimAt(inv.cmd.Args[0])

	page, err := pageFlags(inv, commands.DefaultLimit)
	if err != nil {
		return err
	}

	res, err := call(ctx, e, inv, "Loading posts from @"+username+"...", func(ctx context.Context) (*api.PostPage, error) {
		return e.backend.GetUserPosts(ctx, username, page)
	})
	if err != nil {
		return err
	}

	b := inv.out
	b.blank()
	if len(res.Posts) == 0 {
		if page.Offset == 0 {
			b.info("@%s hasn't posted anything yet", username)
		} else {
			b.info("No more posts")
		}
		b.blank()
		return nil
	}

	b.info("%s", title("@%s'S POSTS (%d)", strings.ToUpper(username), res.Pagination.Total))
	b.blank()
	for i, post := range res.Posts {
		b.info("[%d] %s", page.Offset+i+1, e.dateTime(post.CreatedAt))
		b.response("    %s", post.Content)
		b.info("    ID: %d", post.ID)
		b.blank()
	}
	pageFooter(b, output.PageHint{
		Command: commands.UserPosts + " " + username,
		Limit:   page.Limit,
		Offset:  page.Offset,
		Count:   len(res.Posts),
		Total:   res.Pagination.Total,
	}, res.Pagination.HasMore, "End of posts")
	b.blank()
	return nil
}

func (e *Executor) users(ctx context.Context, inv *invocation) error {
	page, err := pageFlags(inv, commands.DefaultLimit)
	if err != nil {
		return err
	}

	res, err := call(ctx, e, inv, "Loading users...", func(ctx context.Context) (*api.UserPage, error) {
		return e.backend.GetAllUsers(ctx, page)
	})
	if err != nil {
		return err
	}

	b := inv.out
	b.blank()
	if len(res.Users) == 0 {
		b.info("No users found")
		b.blank()
		return nil
	}

	b.info("%s", title("ALL USERS (%d)", res.Pagination.Total))
	b.blank()
	for i, user := range res.Users {
		b.response("[%d] @%s", page.Offset+i+1, user.Username)
		b.info("    Posts: %d | Followers: %d", user.Stats.Posts, user.Stats.Followers)
		b.info("    Joined: %s", e.date(user.CreatedAt))
		b.blank()
	}
	pageFooter(b, output.PageHint{
		Command: commands.Users,
		Limit:   page.Limit,
		Offset:  page.Offset,
		Count:   len(res.Users),
		Total:   res.Pagination.Total,
	}, res.Pagination.HasMore, "End of users list")
	b.blank()
	return nil
}
