package scanner

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncMapLoadStore(t *testing.T) {
	sm := NewSyncMap[string, int]()

	_, ok := sm.Load("missing")
	assert.False(t, ok)
	assert.Zero(t, sm.Len())

	sm.Store("a", 1)
	sm.Store("b", 2)
	sm.Store("a", 3) // overwrite

	v, ok := sm.Load("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, sm.Len())
}

func TestSyncMapConcurrentWrites(t *testing.T) {
	sm := NewSyncMap[string, int]()

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sm.Store(fmt.Sprintf("key-%d", n), n)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 64, sm.Len())
	v, ok := sm.Load("key-42")
	assert.True(t, ok)
	assert.Equal(t, 42, v)
}
