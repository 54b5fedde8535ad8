package wordpool

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPool_FIFO(t *testing.T) {
	t.Parallel()

	pool := New(DefaultMinThreshold, setupTestLogger())
	words := []string{"Cat", "Dog", "Elephant", "Tiger", "Lion"}

	pool.AddWords("animals", words)
	require.Equal(t, len(words), pool.PoolSize("animals"))

	polled := make([]string, 0, len(words))
	for range words {
		w, ok := pool.PollWord("animals")
		require.True(t, ok)
		polled = append(polled, w)
	}

	assert.Equal(t, words, polled)
	assert.True(t, pool.IsEmpty("animals"))

	_, ok := pool.PollWord("animals")
	assert.False(t, ok)
}

func TestPool_FIFOAcrossBatches(t *testing.T) {
	t.Parallel()

	pool := New(DefaultMinThreshold, setupTestLogger())
	pool.AddWords("food", []string{"Pizza", "Soup"})
	pool.AddWord("food", "Bread")
	pool.AddWords("food", []string{"Tea"})

	var got []string
	for {
		w, ok := pool.PollWord("food")
		if !ok {
			break
		}
		got = append(got, w)
	}
	assert.Equal(t, []string{"Pizza", "Soup", "Bread", "Tea"}, got)
}

func TestPool_LongQueueCompaction(t *testing.T) {
	t.Parallel()

	pool := New(DefaultMinThreshold, setupTestLogger())
	for i := 0; i < 200; i++ {
		pool.AddWord("numbers", fmt.Sprintf("w%03d", i))
	}
	for i := 0; i < 150; i++ {
		w, ok := pool.PollWord("numbers")
		require.True(t, ok)
		require.Equal(t, fmt.Sprintf("w%03d", i), w)
	}
	pool.AddWord("numbers", "tail")

	assert.Equal(t, 51, pool.PoolSize("numbers"))
	w, ok := pool.PollWord("numbers")
	require.True(t, ok)
	assert.Equal(t, "w150", w)
}

func TestPool_UnknownTheme(t *testing.T) {
	t.Parallel()

	pool := New(DefaultMinThreshold, setupTestLogger())

	w, ok := pool.PollWord("unknown")
	assert.False(t, ok)
	assert.Empty(t, w)
	assert.Equal(t, 0, pool.PoolSize("unknown"))
	assert.True(t, pool.IsEmpty("unknown"))
	assert.True(t, pool.NeedsRefill("unknown"))
}

func TestPool_ThemesAreCaseSensitive(t *testing.T) {
	t.Parallel()

	pool := New(DefaultMinThreshold, setupTestLogger())
	pool.AddWord("Animals", "Cat")

	assert.Equal(t, 1, pool.PoolSize("Animals"))
	assert.Equal(t, 0, pool.PoolSize("animals"))
}

func TestPool_EmptyInputsAreNoOps(t *testing.T) {
	t.Parallel()

	pool := New(DefaultMinThreshold, setupTestLogger())

	pool.AddWords("animals", nil)
	pool.AddWords("animals", []string{})
	pool.AddWord("animals", "")
	pool.AddWord("animals", "   ")

	assert.Equal(t, 0, pool.PoolSize("animals"))
	assert.Empty(t, pool.Sizes(), "no-op adds should not create a queue")
}

func TestPool_NeedsRefill(t *testing.T) {
	t.Parallel()

	pool := New(3, setupTestLogger())
	assert.Equal(t, 3, pool.MinThreshold())

	pool.AddWords("sport", []string{"Football", "Tennis"})
	assert.True(t, pool.NeedsRefill("sport"), "size 2 is below threshold 3")

	pool.AddWord("sport", "Chess")
	assert.False(t, pool.NeedsRefill("sport"), "exactly at threshold does not need refill")

	pool.AddWord("sport", "Golf")
	assert.False(t, pool.NeedsRefill("sport"))
}

func TestPool_Clear(t *testing.T) {
	t.Parallel()

	pool := New(DefaultMinThreshold, setupTestLogger())
	pool.AddWords("a", []string{"1", "2"})
	pool.AddWords("b", []string{"3"})

	pool.ClearPool("a")
	assert.Equal(t, 0, pool.PoolSize("a"))
	assert.Equal(t, 1, pool.PoolSize("b"))

	pool.ClearPool("missing")

	pool.AddWord("a", "4")
	pool.ClearAllPools()
	assert.Equal(t, map[string]int{"a": 0, "b": 0}, pool.Sizes())

	pool.AddWord("b", "5")
	w, ok := pool.PollWord("b")
	require.True(t, ok)
	assert.Equal(t, "5", w)
}

func TestPool_ConcurrentAddWord(t *testing.T) {
	t.Parallel()

	const (
		goroutines = 10
		perRoutine = 100
	)

	pool := New(DefaultMinThreshold, setupTestLogger())

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perRoutine; i++ {
				pool.AddWord("animals", fmt.Sprintf("word-%d-%d", g, i))
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, goroutines*perRoutine, pool.PoolSize("animals"))
}

func TestPool_ConcurrentPollNeverDuplicates(t *testing.T) {
	t.Parallel()

	const total = 1000

	pool := New(DefaultMinThreshold, setupTestLogger())
	expected := make([]string, 0, total)
	for i := 0; i < total; i++ {
		expected = append(expected, fmt.Sprintf("word-%04d", i))
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		polled []string
	)

	// Writers and readers run at the same time on the same theme.
	for chunk := 0; chunk < 10; chunk++ {
		wg.Add(1)
		go func(chunk int) {
			defer wg.Done()
			pool.AddWords("animals", expected[chunk*100:(chunk+1)*100])
		}(chunk)
	}
	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if w, ok := pool.PollWord("animals"); ok {
					mu.Lock()
					polled = append(polled, w)
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	// Drain whatever readers did not get to.
	for {
		w, ok := pool.PollWord("animals")
		if !ok {
			break
		}
		polled = append(polled, w)
	}

	sort.Strings(polled)
	assert.Equal(t, expected, polled, "every word must be served exactly once")
}

func TestPool_ConcurrentThemesAreIndependent(t *testing.T) {
	t.Parallel()

	pool := New(DefaultMinThreshold, setupTestLogger())

	var wg sync.WaitGroup
	themes := []string{"animals", "food", "sport", "cities"}
	for _, theme := range themes {
		wg.Add(1)
		go func(theme string) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				pool.AddWord(theme, fmt.Sprintf("%s-%d", theme, i))
			}
		}(theme)
	}
	wg.Wait()

	for _, theme := range themes {
		assert.Equal(t, 50, pool.PoolSize(theme))
		w, ok := pool.PollWord(theme)
		require.True(t, ok)
		assert.Equal(t, theme+"-0", w)
	}
}
