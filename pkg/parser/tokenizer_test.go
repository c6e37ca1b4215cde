package parser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_Empty(t *testing.T) {
	inputs := []string{"", " ", "\t", "   \t  \n"}
	for _, in := range inputs {
		cmd := Tokenize(in)
		assert.True(t, cmd.Empty, "input %q", in)
		assert.Empty(t, cmd.Name)
		assert.Empty(t, cmd.Args)
		assert.Empty(t, cmd.Flags)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		args  []string
		flags Flags
	}{
		{
			name:  "quoted positional and equals flag",
			input: `post "hello world" --x=1`,
			want:  "post",
			args:  []string{"hello world"},
			flags: Flags{"x": StringFlag("1")},
		},
		{
			name:  "single positional",
			input: "follow alice",
			want:  "follow",
			args:  []string{"alice"},
			flags: Flags{},
		},
		{
			name:  "name is lowercased",
			input: "  FEED  ",
			want:  "feed",
			args:  []string{},
			flags: Flags{},
		},
		{
			name:  "flag consumes next token",
			input: "feed --limit 5 --offset 10",
			want:  "feed",
			args:  []string{},
			flags: Flags{"limit": StringFlag("5"), "offset": StringFlag("10")},
		},
		{
			name:  "flag followed by flag is boolean",
			input: "login --username --password secret1",
			want:  "login",
			args:  []string{},
			flags: Flags{"username": BoolFlag(), "password": StringFlag("secret1")},
		},
		{
			name:  "trailing flag is boolean",
			input: "feed --verbose",
			want:  "feed",
			args:  []string{},
			flags: Flags{"verbose": BoolFlag()},
		},
		{
			name:  "quoted flag value",
			input: `register --username "bob" --password="abc 123"`,
			want:  "register",
			args:  []string{},
			flags: Flags{"username": StringFlag("bob"), "password": StringFlag("abc 123")},
		},
		{
			name:  "empty equals value falls back to next token",
			input: "feed --limit= 7",
			want:  "feed",
			args:  []string{},
			flags: Flags{"limit": StringFlag("7")},
		},
		{
			name:  "second equals is dropped",
			input: "feed --a=b=c",
			want:  "feed",
			args:  []string{},
			flags: Flags{"a": StringFlag("b")},
		},
		{
			name:  "mixed args and flags",
			input: `comments 12 --limit 3 extra`,
			want:  "comments",
			args:  []string{"12", "extra"},
			flags: Flags{"limit": StringFlag("3")},
		},
		{
			name:  "quote glued to word stays one token",
			input: `post say"hi there"`,
			want:  "post",
			args:  []string{`say"hi there`},
			flags: Flags{},
		},
		{
			name:  "unterminated quote splits on whitespace",
			input: `post "hello world`,
			want:  "post",
			args:  []string{"hello", "world"},
			flags: Flags{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Tokenize(tt.input)
			require.False(t, cmd.Empty)
			assert.Equal(t, tt.want, cmd.Name)
			assert.Equal(t, tt.args, cmd.Args)
			assert.Equal(t, tt.flags, cmd.Flags)
			assert.Equal(t, tt.input, cmd.Raw)
		})
	}
}

func TestTokenize_OnlyQuotes(t *testing.T) {
	cmd := Tokenize(`"`)
	assert.True(t, cmd.Empty)
}

func TestFlags_Accessors(t *testing.T) {
	flags := Tokenize("feed --limit 12abc --offset abc --all --zero 0 --neg -3").Flags

	assert.Equal(t, 12, flags.Int("limit", 20))
	assert.Equal(t, 0, flags.Int("offset", 0))
	assert.Equal(t, 20, flags.Int("all", 20))
	assert.Equal(t, 0, flags.Int("zero", 20))
	assert.Equal(t, 5, flags.Int("missing", 5))

	assert.True(t, flags.Bool("all"))
	assert.False(t, flags.Bool("missing"))
	assert.True(t, flags.Has("offset"))

	v, ok := flags.String("limit")
	assert.True(t, ok)
	assert.Equal(t, "12abc", v)

	_, ok = flags.String("all")
	assert.False(t, ok)

	assert.Equal(t, map[string]any{
		"limit":  "12abc",
		"offset": "abc",
		"all":    true,
		"zero":   "0",
		"neg":    "-3",
	}, flags.Map())
}

func TestFlags_NegativeValueIsNotAFlag(t *testing.T) {
	flags := Tokenize("feed --offset -3").Flags
	assert.Equal(t, -3, flags.Int("offset", 0))
}

func TestFlags_IntSaturates(t *testing.T) {
	flags := Tokenize("feed --limit 99999999999999999999 --offset -99999999999999999999x --page +99999999999999999999").Flags

	assert.Equal(t, math.MaxInt, flags.Int("limit", 20))
	assert.Equal(t, math.MinInt, flags.Int("offset", 0))
	assert.Equal(t, math.MaxInt, flags.Int("page", 1))
}
