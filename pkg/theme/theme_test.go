package theme

import (
	"bytes"
	"testing"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_Cycles(t *testing.T) {
	assert.Equal(t, HTB, Next(Terminal).Name)
	assert.Equal(t, GitHub, Next(HTB).Name)
	assert.Equal(t, Terminal, Next(GitHub).Name)
	assert.Equal(t, Terminal, Next("unknown").Name)
}

func TestLookup(t *testing.T) {
	th, ok := Lookup(HTB)
	require.True(t, ok)
	assert.Equal(t, "Hack The Box", th.DisplayName)

	_, ok = Lookup("neon")
	assert.False(t, ok)

	assert.Equal(t, Default, Get("neon").Name)
	assert.Equal(t, "GitHub Dark", Get(GitHub).DisplayName)
}

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{Terminal, HTB, GitHub}, []string{all[0].Name, all[1].Name, all[2].Name})

	all[0].Name = "changed"
	assert.Equal(t, Terminal, All()[0].Name, "All returns a copy")
}

func TestStyle(t *testing.T) {
	th := Get(GitHub)
	assert.Equal(t, th.Error, th.Style(output.CategoryError).GetForeground())
	assert.Equal(t, th.Success, th.Style(output.CategorySuccess).GetForeground())
	assert.Equal(t, th.Foreground, th.Style(output.CategoryResponse).GetForeground())
	assert.True(t, th.Style(output.CategoryCommand).GetBold())
}

func TestFormatConfig_Plain(t *testing.T) {
	var buf bytes.Buffer
	err := output.NewTextFormatter().Format(&buf, []output.Line{output.Error("✗ nope")}, Get(HTB).FormatConfig(false))
	require.NoError(t, err)
	assert.Equal(t, "✗ nope\n", buf.String())
}

func TestFormatConfig_StylesEveryCategory(t *testing.T) {
	cfg := Get(Terminal).FormatConfig(true)
	assert.Len(t, cfg.Styles, 5)
	assert.Contains(t, cfg.Styles[output.CategoryInfo].Sprint("x"), "x")
}
