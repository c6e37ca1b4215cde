package output

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_Text(t *testing.T) {
	for _, cat := range []Category{CategoryResponse, CategoryCommand, CategoryError, CategorySuccess, CategoryInfo} {
		text, err := cat.MarshalText()
		require.NoError(t, err)

		var back Category
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, cat, back)
		assert.Equal(t, string(text), cat.String())
	}

	_, err := Category(42).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "Category(42)", Category(42).String())

	var c Category
	assert.Error(t, c.UnmarshalText([]byte("loud")))
}

func TestLine_JSON(t *testing.T) {
	data, err := json.Marshal(Success("✓ Welcome, %s!", "bob"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":"✓ Welcome, bob!","category":"success"}`, string(data))
}

func TestLineConstructors(t *testing.T) {
	assert.Equal(t, Line{Content: "100%", Category: CategoryInfo}, Info("%s", "100%"))
	assert.Equal(t, Line{Content: "100%", Category: CategoryInfo}, Info("%d%%", 100))
	assert.Equal(t, Line{Content: "Type \"help\"", Category: CategoryInfo}, Info(`Type "help"`))
	assert.Equal(t, Line{Content: "x", Category: CategoryCommand}, Command("x"))
	assert.Equal(t, CategoryError, Error("Post %s", "not found").Category)
	assert.Equal(t, "Post not found", Error("Post %s", "not found").Content)
	assert.Equal(t, CategoryResponse, Response("").Category)
}

func TestHasErrors(t *testing.T) {
	assert.False(t, HasErrors(nil))
	assert.False(t, HasErrors([]Line{Info("a"), Success("b")}))
	assert.True(t, HasErrors([]Line{Info("a"), Error("b")}))
}

func TestLog(t *testing.T) {
	log := NewLog()
	assert.Equal(t, 0, log.Len())

	log.Append(Info("one"), Info("two"))
	log.Append(Error("three"))
	assert.Equal(t, 3, log.Len())

	lines := log.Lines()
	assert.Equal(t, "three", lines[2].Content)

	// Lines returns a copy.
	lines[0].Content = "changed"
	assert.Equal(t, "one", log.Lines()[0].Content)

	log.Clear()
	assert.Equal(t, 0, log.Len())
	assert.Empty(t, log.Lines())
}

func TestLog_ConcurrentReaders(t *testing.T) {
	log := NewLog()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = log.Lines()
				_ = log.Len()
			}
		}()
	}
	for j := 0; j < 100; j++ {
		log.Append(Response("line"))
	}
	wg.Wait()
	assert.Equal(t, 100, log.Len())
}
