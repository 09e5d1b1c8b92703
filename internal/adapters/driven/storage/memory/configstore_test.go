package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("search.focus_intent", "select"))
	require.NoError(t, store.Set("search.focus_intent", "center"))

	val, ok := store.Get("search.focus_intent")
	assert.True(t, ok)
	assert.Equal(t, "center", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("display.limit", int64(15))
	_ = store.Set("search.fuzzy_threshold", 0.4)
	_ = store.Set("watch.enabled", true)
	_ = store.Set("paths", []any{"a.pprof", 3, "b.folded"})

	assert.Equal(t, 15, store.GetInt("display.limit"))
	assert.InDelta(t, 0.4, store.GetFloat("search.fuzzy_threshold"), 1e-9)
	assert.True(t, store.GetBool("watch.enabled"))
	assert.Equal(t, []string{"a.pprof", "b.folded"}, store.GetStringSlice("paths"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("int", 2)
	_ = store.Set("int64", int64(3))
	_ = store.Set("float32", float32(0.5))
	_ = store.Set("string", "0.3")

	assert.Equal(t, 2.0, store.GetFloat("int"))
	assert.Equal(t, 3.0, store.GetFloat("int64"))
	assert.Equal(t, 0.5, store.GetFloat("float32"))
	assert.Equal(t, 0.0, store.GetFloat("string"))
	assert.Equal(t, 0.0, store.GetFloat("missing"))
}

func TestConfigStore_WrongTypes(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("key", 42)

	assert.Empty(t, store.GetString("key"))
	assert.False(t, store.GetBool("key"))
	assert.Nil(t, store.GetStringSlice("key"))

	_ = store.Set("str", "value")
	assert.Equal(t, 0, store.GetInt("str"))
}

func TestConfigStore_SaveLoad_NoOp(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("display.limit", 5)

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())
	assert.Equal(t, 5, store.GetInt("display.limit"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("display.limit", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("display.limit")
		}()
	}
	wg.Wait()

	_, ok := store.Get("display.limit")
	assert.True(t, ok)
}
