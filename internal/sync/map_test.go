package sync

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap_StoreLoad(t *testing.T) {
	m := NewMap[string, int]()
	m.Store("a", 1)

	v, ok := m.Load("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = m.Load("missing")
	assert.False(t, ok)
}

func TestMap_LoadAndDelete(t *testing.T) {
	m := NewMap[string, int]()
	m.Store("a", 1)

	v, loaded := m.LoadAndDelete("a")
	assert.True(t, loaded)
	assert.Equal(t, 1, v)

	_, loaded = m.LoadAndDelete("a")
	assert.False(t, loaded)
	assert.Equal(t, 0, m.Len())
}

func TestMap_RangeStopsEarly(t *testing.T) {
	m := NewMap[int, int]()
	for i := 0; i < 10; i++ {
		m.Store(i, i)
	}

	seen := 0
	m.Range(func(_, _ int) bool {
		seen++
		return seen < 3
	})
	assert.Equal(t, 3, seen)
}

func TestMap_Drain(t *testing.T) {
	m := NewMap[string, int]()
	m.Store("a", 1)
	m.Store("b", 2)

	assert.ElementsMatch(t, []int{1, 2}, m.Drain())
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Drain())
}

func TestMap_Concurrent(t *testing.T) {
	m := NewMap[string, int]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i)
			m.Store(key, i)
			_, _ = m.Load(key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, m.Len())
}
