// Package parser turns a raw terminal line into a command name, positional
// arguments and named flags.
//
// The grammar is intentionally forgiving. Tokens are separated by whitespace,
// double-quoted runs are kept together, and anything that starts with "--" is
// a flag. Malformed flags never produce an error: they degrade to a boolean
// flag or to a literal positional argument.
//
//	post "hello world" --x=1     -> name=post args=[hello world] flags={x:1}
//	feed --limit 5 --offset 10   -> name=feed flags={limit:5 offset:10}
//	login --username bob --debug -> flags={username:bob debug:true}
package parser

import (
	"regexp"
	"strings"
)

// FlagPrefix marks a token as a named flag.
const FlagPrefix = "--"

// tokenPattern matches a run of non-space, non-quote characters and complete
// double-quoted sections, so `"a b"c` stays a single token.
var tokenPattern = regexp.MustCompile(`(?:[^\s"]+|"[^"]*")+`)

// ParsedCommand is the result of tokenizing one input line.
type ParsedCommand struct {
	// Raw is the line as submitted, untrimmed.
	Raw string
	// Name is the lowercased command name. It is empty when Empty is true.
	Name string
	// Empty reports that the line held only whitespace.
	Empty bool
	// Args are the positional arguments in input order.
	Args []string
	// Flags maps flag names to their values.
	Flags Flags
}

// Tokenize splits raw into a ParsedCommand. It never fails.
func Tokenize(raw string) ParsedCommand {
	cmd := ParsedCommand{
		Raw:   raw,
		Args:  []string{},
		Flags: Flags{},
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		cmd.Empty = true
		return cmd
	}

	parts := tokenPattern.FindAllString(trimmed, -1)
	if len(parts) == 0 {
		// Only stray quote characters.
		cmd.Empty = true
		return cmd
	}

	cmd.Name = strings.ToLower(parts[0])

	for i := 1; i < len(parts); i++ {
		part := parts[i]

		if !strings.HasPrefix(part, FlagPrefix) {
			cmd.Args = append(cmd.Args, stripQuotes(part))
			continue
		}

		key, value := splitFlag(strings.TrimPrefix(part, FlagPrefix))
		if value != "" {
			cmd.Flags[key] = StringFlag(stripQuotes(value))
			continue
		}

		if i+1 < len(parts) && !strings.HasPrefix(parts[i+1], FlagPrefix) {
			cmd.Flags[key] = StringFlag(stripQuotes(parts[i+1]))
			i++
			continue
		}

		cmd.Flags[key] = BoolFlag()
	}

	return cmd
}

// splitFlag splits "key=value" at the first '='. Text after a second '=' is
// dropped, so "a=b=c" yields ("a", "b").
func splitFlag(s string) (string, string) {
	fields := strings.Split(s, "=")
	if len(fields) < 2 {
		return fields[0], ""
	}
	return fields[0], fields[1]
}

// stripQuotes removes at most one leading and one trailing double quote.
func stripQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}
