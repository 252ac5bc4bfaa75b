package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLMap_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewTTLMap(time.Minute, 0)
	m.now = func() time.Time { return now }

	m.Set("suggestion:dam", "darn")
	value, ok := m.Get("suggestion:dam")
	assert.True(t, ok)
	assert.Equal(t, "darn", value)

	now = now.Add(2 * time.Minute)
	_, ok = m.Get("suggestion:dam")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestTTLMap_Delete(t *testing.T) {
	m := NewTTLMap(time.Minute, 0)
	m.Set("a", "1")
	m.Delete("a")
	_, ok := m.Get("a")
	assert.False(t, ok)
}

func TestTTLMap_Sweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewTTLMap(time.Minute, 0)
	m.now = func() time.Time { return now }

	m.Set("suggestion:dam", "darn")
	m.Set("suggestion:crap", "junk")
	now = now.Add(30 * time.Second)
	m.Set("suggestion:heck", "gosh")

	now = now.Add(45 * time.Second)
	assert.Equal(t, 2, m.Sweep())
	assert.Equal(t, 1, m.Len())
	value, ok := m.Get("suggestion:heck")
	assert.True(t, ok)
	assert.Equal(t, "gosh", value)
}

func TestTTLMap_MaxEntries(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewTTLMap(time.Minute, 2)
	m.now = func() time.Time { return now }

	m.Set("a", "1")
	now = now.Add(time.Second)
	m.Set("b", "2")
	now = now.Add(time.Second)
	m.Set("c", "3")

	assert.Equal(t, 2, m.Len())
	_, ok := m.Get("a")
	assert.False(t, ok, "entry closest to expiry is evicted")
	_, ok = m.Get("c")
	assert.True(t, ok)

	m.Set("b", "updated")
	assert.Equal(t, 2, m.Len(), "overwriting a key does not evict")

	now = now.Add(2 * time.Minute)
	m.Set("d", "4")
	assert.Equal(t, 1, m.Len(), "expired entries are swept before evicting")
}
