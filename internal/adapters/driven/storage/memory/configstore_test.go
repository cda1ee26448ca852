package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(map[string]any{"api.addr": ":9000"})
	assert.Equal(t, ":9000", store.GetString("api.addr"))
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("executable.path", "/opt/manager"))

	val, ok := store.Get("executable.path")
	assert.True(t, ok)
	assert.Equal(t, "/opt/manager", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_GetString_WrongType(t *testing.T) {
	store := NewConfigStore(map[string]any{"history.keep": 10})
	assert.Equal(t, "", store.GetString("history.keep"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_Numbers(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"a": 3,
		"b": int64(7),
		"c": 2.5,
		"d": "nine",
	})

	assert.Equal(t, 3, store.GetInt("a"))
	assert.Equal(t, 7, store.GetInt("b"))
	assert.Equal(t, 2, store.GetInt("c"))
	assert.Equal(t, 0, store.GetInt("d"))

	f, ok := store.GetFloat("c")
	assert.True(t, ok)
	assert.InDelta(t, 2.5, f, 0.0001)

	_, ok = store.GetFloat("d")
	assert.False(t, ok)
}

func TestConfigStore_GetBool(t *testing.T) {
	store := NewConfigStore(map[string]any{"history.enabled": true, "x": "true"})
	assert.True(t, store.GetBool("history.enabled"))
	assert.False(t, store.GetBool("x"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_GetDuration(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"stream.drives_interval": "10s",
		"invocation.timeout":     2 * time.Minute,
		"bad":                    "soon",
	})

	d, ok := store.GetDuration("stream.drives_interval")
	assert.True(t, ok)
	assert.Equal(t, 10*time.Second, d)

	d, ok = store.GetDuration("invocation.timeout")
	assert.True(t, ok)
	assert.Equal(t, 2*time.Minute, d)

	_, ok = store.GetDuration("bad")
	assert.False(t, ok)
	_, ok = store.GetDuration("missing")
	assert.False(t, ok)
}

func TestConfigStore_SaveLoadAreNoOps(t *testing.T) {
	store := NewConfigStore(map[string]any{"k": "v"})
	require.NoError(t, store.Save())
	require.NoError(t, store.Load())
	assert.Equal(t, "v", store.GetString("k"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key.%d", n)
			_ = store.Set(key, n)
			_ = store.GetInt(key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		assert.Equal(t, i, store.GetInt(fmt.Sprintf("key.%d", i)))
	}
}
