package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/api"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/secrets"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/session"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/theme"
)

func (e *Executor) help(_ context.Context, inv *invocation) error {
	b := inv.out

	if len(inv.cmd.Args) > 0 {
		spec, ok := e.registry.Lookup(strings.ToLower(inv.cmd.Args[0]))
		if !ok {
			return invalid("Command not found: %s", inv.cmd.Args[0])
		}
		b.blank()
		b.info("%s - %s", spec.Name, spec.Summary)
		b.response("%s", spec.Usage)
		b.blank()
		return nil
	}

	b.info("Available commands:")
	b.blank()
	for _, spec := range e.registry.All() {
		b.response("  %-15s - %s", spec.Name, spec.Summary)
	}
	b.blank()
	return nil
}

func (e *Executor) clear(_ context.Context, inv *invocation) error {
	inv.cleared = true
	return nil
}

func (e *Executor) register(ctx context.Context, inv *invocation) error {
	username, _ := inv.cmd.Flags.String("username")
	email, _ := inv.cmd.Flags.String("email")
	password, _ := inv.cmd.Flags.String("password")

	res, err := call(ctx, e, inv, "Creating account...", func(ctx context.Context) (*api.AuthResult, error) {
		return e.backend.Register(ctx, username, email, password)
	})
	if err != nil {
		return err
	}

	e.authenticate(ctx, res)

	b := inv.out
	b.blank()
	b.success("✓ Account created successfully!")
	b.success("✓ Welcome, %s!", res.User.Username)
	b.blank()
	return nil
}

func (e *Executor) login(ctx context.Context, inv *invocation) error {
	username, _ := inv.cmd.Flags.String("username")
	password, _ := inv.cmd.Flags.String("password")

	res, err := call(ctx, e, inv, "Authenticating...", func(ctx context.Context) (*api.AuthResult, error) {
		return e.backend.Login(ctx, username, password)
	})
	if err != nil {
		return err
	}

	e.authenticate(ctx, res)

	b := inv.out
	b.blank()
	b.success("✓ Login successful!")
	b.success("✓ Welcome back, %s!", res.User.Username)
	b.blank()
	return nil
}

// authenticate makes the result's user the session identity. A failure to
// persist it is logged; the terminal stays logged in.
func (e *Executor) authenticate(ctx context.Context, res *api.AuthResult) {
	id := session.Identity{
		UserID:   res.User.ID,
		Username: res.User.Username,
		Email:    res.User.Email,
		Token:    res.Token,
	}
	if err := e.session.Set(ctx, id); err != nil {
		e.logger.Warn("failed to persist identity", "username", id.Username, "token", secrets.MaskToken(id.Token), "error", err)
	}
}

func (e *Executor) logout(ctx context.Context, inv *invocation) error {
	name := e.session.Username()
	if err := e.session.Clear(ctx); err != nil {
		e.logger.Warn("failed to clear identity", "error", err)
	}
	inv.out.success("Goodbye, %s!", name)
	return nil
}

func (e *Executor) profile(ctx context.Context, inv *invocation) error {
	user, err := call(ctx, e, inv, "Fetching profile...", e.backend.GetProfile)
	if err != nil {
		return err
	}

	b := inv.out
	b.blank()
	b.info(profileRule)
	b.response("  Username: %s", user.Username)
	b.response("  Email: %s", user.Email)
	b.response("  User ID: %d", user.ID)
	b.response("  Member since: %s", e.date(user.CreatedAt))
	b.info(profileRule)
	b.blank()
	return nil
}

func (e *Executor) whoami(_ context.Context, inv *invocation) error {
	if name := e.session.Username(); name != "" {
		inv.out.success("You are logged in as: %s", name)
		return nil
	}
	inv.out.info("You are not logged in")
	inv.out.info(`Use "login" or "register" to get started`)
	return nil
}

func (e *Executor) theme(_ context.Context, inv *invocation) error {
	b := inv.out

	if len(inv.cmd.Args) == 0 {
		next := theme.Next(e.themes.Theme())
		if err := e.themes.SetTheme(next.Name); err != nil {
			e.logger.Warn("failed to save theme", "theme", next.Name, "error", err)
		}
		b.blank()
		b.success("✓ Theme changed to: %s", next.DisplayName)
		b.info("Use: theme [%s] to set a specific theme", strings.Join(themeNames(), "|"))
		b.blank()
		return nil
	}

	requested, ok := theme.Lookup(strings.ToLower(inv.cmd.Args[0]))
	if !ok {
		b.error("Invalid theme. Available themes:")
		for _, t := range theme.All() {
			b.info("  • %s - %s", t.Name, t.Description)
		}
		b.blank()
		b.info("Use: theme (without arguments) to cycle through themes")
		return nil
	}

	if err := e.themes.SetTheme(requested.Name); err != nil {
		e.logger.Warn("failed to save theme", "theme", requested.Name, "error", err)
	}
	b.blank()
	b.success("✓ Theme changed to: %s", requested.DisplayName)
	b.blank()
	return nil
}

func themeNames() []string {
	all := theme.All()
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = t.Name
	}
	return names
}

func (e *Executor) history(_ context.Context, inv *invocation) error {
	limit := inv.cmd.Flags.Int("limit", 20)
	if limit < 1 {
		return invalid("Limit must be 1 or greater")
	}

	entries := e.session.History().Entries()
	// The line that invoked this command is already recorded.
	if n := len(entries); n > 0 {
		entries = entries[:n-1]
	}

	b := inv.out
	b.blank()
	if len(entries) == 0 {
		b.info("No commands in history")
		b.blank()
		return nil
	}

	start := 0
	if len(entries) > limit {
		start = len(entries) - limit
	}
	width := len(fmt.Sprint(len(entries)))
	for i := start; i < len(entries); i++ {
		b.response("  %*d  %s", width, i+1, secrets.MaskCommandLine(entries[i]))
	}
	b.blank()
	return nil
}
