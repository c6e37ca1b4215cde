package commands

// Command names.
const (
	Help          = "help"
	Clear         = "clear"
	Register      = "register"
	Login         = "login"
	Logout        = "logout"
	Profile       = "profile"
	Whoami        = "whoami"
	Post          = "post"
	Feed          = "feed"
	ViewPost      = "view-post"
	DeletePost    = "delete-post"
	Follow        = "follow"
	Unfollow      = "unfollow"
	Following     = "following"
	Followers     = "followers"
	IsFollowing   = "is-following"
	MyFeed        = "my-feed"
	Search        = "search"
	ViewUser      = "view-user"
	UserPosts     = "user-posts"
	Users         = "users"
	Comment       = "comment"
	Comments      = "comments"
	ViewComment   = "view-comment"
	DeleteComment = "delete-comment"
	Theme         = "theme"
	History       = "history"
)

// Pagination defaults and bounds shared by list commands.
const (
	DefaultLimit        = 20
	DefaultCommentLimit = 50
	MinLimit            = 1
	MaxLimit            = 100
)

// Content limits enforced before a backend call.
const (
	MaxPostLength    = 1000
	MaxCommentLength = 500
	MinSearchLength  = 2
)

func pageFlags(limit string) []FlagSpec {
	return []FlagSpec{
		{Name: "limit", Default: limit},
		{Name: "offset", Default: "0"},
	}
}

func builtinSpecs() []Spec {
	return []Spec{
		{
			Name:    Help,
			Summary: "Show available commands",
			Usage:   "Usage: help [command]",
		},
		{
			Name:    Clear,
			Summary: "Clear terminal screen",
			Usage:   "Usage: clear",
		},
		{
			Name:    Register,
			Summary: "Register a new account: register --username <user> --email <email> --password <pass>",
			Usage:   "Usage: register --username <user> --email <email> --password <pass>",
			Flags: []FlagSpec{
				{Name: "username", Required: true},
				{Name: "email", Required: true},
				{Name: "password", Required: true},
			},
		},
		{
			Name:    Login,
			Summary: "Login to your account: login --username <user> --password <pass>",
			Usage:   "Usage: login --username <user> --password <pass>",
			Flags: []FlagSpec{
				{Name: "username", Required: true},
				{Name: "password", Required: true},
			},
		},
		{
			Name:        Logout,
			Summary:     "Logout from your account",
			Usage:       "Usage: logout",
			Auth:        AuthRequired,
			AuthMessage: "You are not logged in",
		},
		{
			Name:        Profile,
			Summary:     "View your profile",
			Usage:       "Usage: profile",
			Auth:        AuthRequired,
			AuthMessage: "You must be logged in to view your profile",
		},
		{
			Name:    Whoami,
			Summary: "Show current logged in user",
			Usage:   "Usage: whoami",
		},
		{
			Name:        Post,
			Summary:     `Create a post: post "Your message here"`,
			Usage:       `Usage: post "Your message here"`,
			Auth:        AuthRequired,
			AuthMessage: "You must be logged in to create posts",
			MinArgs:     1,
		},
		{
			Name:    Feed,
			Summary: "View feed: feed [--limit 20] [--offset 0]",
			Usage:   "Usage: feed [--limit 20] [--offset 0]",
			Auth:    AuthOptional,
			Flags:   pageFlags("20"),
		},
		{
			Name:    ViewPost,
			Summary: "View a single post: view-post <post-id>",
			Usage:   "Usage: view-post <post-id>",
			Auth:    AuthOptional,
			MinArgs: 1,
		},
		{
			Name:        DeletePost,
			Summary:     "Delete your post: delete-post <post-id>",
			Usage:       "Usage: delete-post <post-id>",
			Auth:        AuthRequired,
			AuthMessage: "You must be logged in to delete posts",
			MinArgs:     1,
		},
		{
			Name:        Follow,
			Summary:     "Follow a user: follow <username>",
			Usage:       "Usage: follow <username>",
			Auth:        AuthRequired,
			AuthMessage: "You must be logged in to follow users",
			MinArgs:     1,
		},
		{
			Name:        Unfollow,
			Summary:     "Unfollow a user: unfollow <username>",
			Usage:       "Usage: unfollow <username>",
			Auth:        AuthRequired,
			AuthMessage: "You must be logged in to unfollow users",
			MinArgs:     1,
		},
		{
			Name:        Following,
			Summary:     "View users you are following",
			Usage:       "Usage: following",
			Auth:        AuthRequired,
			AuthMessage: "You must be logged in to view following list",
		},
		{
			Name:        Followers,
			Summary:     "View your followers",
			Usage:       "Usage: followers",
			Auth:        AuthRequired,
			AuthMessage: "You must be logged in to view followers",
		},
		{
			Name:        IsFollowing,
			Summary:     "Check whether you follow a user: is-following <username>",
			Usage:       "Usage: is-following <username>",
			Auth:        AuthRequired,
			AuthMessage: "You must be logged in to check follow status",
			MinArgs:     1,
		},
		{
			Name:        MyFeed,
			Summary:     "View posts from users you follow: my-feed [--limit 20] [--offset 0]",
			Usage:       "Usage: my-feed [--limit 20] [--offset 0]",
			Auth:        AuthRequired,
			AuthMessage: "You must be logged in to view your personalized feed",
			Flags:       pageFlags("20"),
		},
		{
			Name:    Search,
			Summary: "Search users: search <query>",
			Usage:   "Usage: search <query> (minimum 2 characters)",
			MinArgs: 1,
		},
		{
			Name:    ViewUser,
			Summary: "View user profile: view-user <username>",
			Usage:   "Usage: view-user <username>",
			Auth:    AuthOptional,
			MinArgs: 1,
		},
		{
			Name:    UserPosts,
			Summary: "View user posts: user-posts <username> [--limit 20] [--offset 0]",
			Usage:   "Usage: user-posts <username> [--limit 20] [--offset 0]",
			Auth:    AuthOptional,
			MinArgs: 1,
			Flags:   pageFlags("20"),
		},
		{
			Name:    Users,
			Summary: "List all users: users [--limit 20] [--offset 0]",
			Usage:   "Usage: users [--limit 20] [--offset 0]",
			Auth:    AuthOptional,
			Flags:   pageFlags("20"),
		},
		{
			Name:        Comment,
			Summary:     `Comment on a post: comment <post-id> "Your comment here"`,
			Usage:       `Usage: comment <post-id> "Your comment here"`,
			Auth:        AuthRequired,
			AuthMessage: "You must be logged in to comment",
			MinArgs:     2,
		},
		{
			Name:    Comments,
			Summary: "View post comments: comments <post-id> [--limit 50] [--offset 0]",
			Usage:   "Usage: comments <post-id> [--limit 50] [--offset 0]",
			Auth:    AuthOptional,
			MinArgs: 1,
			Flags:   pageFlags("50"),
		},
		{
			Name:    ViewComment,
			Summary: "View a single comment: view-comment <comment-id>",
			Usage:   "Usage: view-comment <comment-id>",
			Auth:    AuthOptional,
			MinArgs: 1,
		},
		{
			Name:        DeleteComment,
			Summary:     "Delete your comment: delete-comment <comment-id>",
			Usage:       "Usage: delete-comment <comment-id>",
			Auth:        AuthRequired,
			AuthMessage: "You must be logged in to delete comments",
			MinArgs:     1,
		},
		{
			Name:    Theme,
			Summary: "Change color theme: theme [terminal|htb|github]",
			Usage:   "Usage: theme [terminal|htb|github]",
		},
		{
			Name:    History,
			Summary: "Show commands entered this session: history [--limit 20]",
			Usage:   "Usage: history [--limit 20]",
			Flags:   []FlagSpec{{Name: "limit", Default: "20"}},
		},
	}
}
