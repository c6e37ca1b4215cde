package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var sample = []Line{
	Command("guest@social-terminal:~$ feed"),
	Info("Loading feed..."),
	Response("[1] @neo · 2024-05-01 10:00"),
	Error("✗ Failed to load feed"),
}

func TestManager_Formats(t *testing.T) {
	m := NewManager()
	assert.Equal(t, []string{"json", "text", "yaml"}, m.Formats())

	_, err := m.GetFormatter("TEXT")
	assert.NoError(t, err)

	_, err = m.GetFormatter("table")
	assert.Error(t, err)

	var buf bytes.Buffer
	assert.Error(t, m.Format(&buf, sample, "xml"))
}

func TestManager_TextPlain(t *testing.T) {
	m := NewManager()
	m.SetConfig(NewFormatConfig().WithColors(false))

	var buf bytes.Buffer
	require.NoError(t, m.Format(&buf, sample, ""))

	want := strings.Join([]string{
		"guest@social-terminal:~$ feed",
		"Loading feed...",
		"[1] @neo · 2024-05-01 10:00",
		"✗ Failed to load feed",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

type bracketStyle struct{}

func (bracketStyle) Sprint(a ...any) string {
	return "[" + a[0].(string) + "]"
}

func TestTextFormatter_Styles(t *testing.T) {
	f := NewTextFormatter()
	config := NewFormatConfig().WithStyle(CategoryError, bracketStyle{})

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, []Line{Error("boom"), Response("")}, config))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "[boom]", lines[0])
	assert.Equal(t, "", lines[1], "empty lines are not styled")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, sample, nil))

	var doc struct {
		Lines []Line `json:"lines"`
		Errors int   `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, sample, doc.Lines)
	assert.Equal(t, 1, doc.Errors)
}

func TestJSONFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, nil, NewFormatConfig().WithPretty(false)))
	assert.Equal(t, `{"lines":[],"errors":0}`+"\n", buf.String())
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter().Format(&buf, sample, nil))
	assert.Contains(t, buf.String(), "category: error")

	var doc struct {
		Lines  []Line `yaml:"lines"`
		Errors int    `yaml:"errors"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, sample, doc.Lines)
	assert.Equal(t, 1, doc.Errors)
}
