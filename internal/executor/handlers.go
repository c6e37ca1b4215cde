package executor

import (
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/commands"
)

// bindHandlers returns the handler of every built-in command.
func (e *Executor) bindHandlers() map[string]handler {
	return map[string]handler{
		commands.Help:     {run: e.help},
		commands.Clear:    {run: e.clear},
		commands.Register: {run: e.register, fallback: "Registration failed"},
		commands.Login:    {run: e.login, fallback: "Login failed"},
		commands.Logout:   {run: e.logout},
		commands.Profile:  {run: e.profile, fallback: "Failed to fetch profile"},
		commands.Whoami:   {run: e.whoami},
		commands.Theme:    {run: e.theme},
		commands.History:  {run: e.history},

		commands.Post:       {run: e.post, fallback: "Failed to create post"},
		commands.Feed:       {run: e.feed, fallback: "Failed to load feed"},
		commands.ViewPost:   {run: e.viewPost, fallback: "Failed to load post"},
		commands.DeletePost: {run: e.deletePost, fallback: "Failed to delete post"},

		commands.Follow:      {run: e.follow, fallback: "Failed to follow user"},
		commands.Unfollow:    {run: e.unfollow, fallback: "Failed to unfollow user"},
		commands.Following:   {run: e.following, fallback: "Failed to load following list"},
		commands.Followers:   {run: e.followers, fallback: "Failed to load followers"},
		commands.IsFollowing: {run: e.isFollowing, fallback: "Failed to check follow status"},
		commands.MyFeed:      {run: e.myFeed, fallback: "Failed to load feed"},

		commands.Search:    {run: e.search, fallback: "Failed to search users"},
		commands.ViewUser:  {run: e.viewUser, fallback: "Failed to load user profile"},
		commands.UserPosts: {run: e.userPosts, fallback: "Failed to load user posts"},
		commands.Users:     {run: e.users, fallback: "Failed to load users"},

		commands.Comment:       {run: e.comment, fallback: "Failed to create comment"},
		commands.Comments:      {run: e.comments, fallback: "Failed to load comments"},
		commands.ViewComment:   {run: e.viewComment, fallback: "Failed to load comment"},
		commands.DeleteComment: {run: e.deleteComment, fallback: "Failed to delete comment"},
	}
}
