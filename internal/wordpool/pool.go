package wordpool

import (
	"log/slog"
	"strings"
	"sync"
)

// DefaultMinThreshold is the pool size below which a theme needs a refill.
const DefaultMinThreshold = 5

// themeQueue is the FIFO buffer for a single theme.
type themeQueue struct {
	mu    sync.Mutex
	words []string
	head  int
}

func (q *themeQueue) push(words ...string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.words = append(q.words, words...)
	return len(q.words) - q.head
}

func (q *themeQueue) pop() (string, int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head >= len(q.words) {
		return "", 0, false
	}
	word := q.words[q.head]
	q.words[q.head] = ""
	q.head++

	// Reclaim the consumed prefix once it dominates the backing array.
	if q.head == len(q.words) {
		q.words = q.words[:0]
		q.head = 0
	} else if q.head > 32 && q.head*2 > len(q.words) {
		q.words = append(q.words[:0], q.words[q.head:]...)
		q.head = 0
	}
	return word, len(q.words) - q.head, true
}

func (q *themeQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.words) - q.head
}

func (q *themeQueue) clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	removed := len(q.words) - q.head
	q.words = nil
	q.head = 0
	return removed
}

// Pool is a concurrent collection of per-theme word queues. Queues are created lazily
// on first write and live for the lifetime of the Pool.
type Pool struct {
	minThreshold int
	logger       *slog.Logger

	// queues maps theme -> *themeQueue
	queues sync.Map
}

// New creates an empty Pool. A theme needs a refill when its size drops strictly
// below minThreshold.
func New(minThreshold int, logger *slog.Logger) *Pool {
	if logger == nil {
		logger = slog.Default()
	}
	if minThreshold < 0 {
		minThreshold = 0
	}
	return &Pool{
		minThreshold: minThreshold,
		logger:       logger.With("component", "word_pool"),
	}
}

func (p *Pool) queue(theme string) (*themeQueue, bool) {
	q, ok := p.queues.Load(theme)
	if !ok {
		return nil, false
	}
	return q.(*themeQueue), true
}

func (p *Pool) queueOrCreate(theme string) *themeQueue {
	if q, ok := p.queue(theme); ok {
		return q
	}
	q, loaded := p.queues.LoadOrStore(theme, &themeQueue{})
	if !loaded {
		p.logger.Debug("created word pool", "theme", theme)
	}
	return q.(*themeQueue)
}

// PollWord removes and returns the oldest word for theme. ok is false if the theme
// has no pool or its pool is empty. PollWord never blocks on other themes.
func (p *Pool) PollWord(theme string) (word string, ok bool) {
	q, exists := p.queue(theme)
	if !exists {
		p.logger.Debug("word pool is empty or does not exist", "theme", theme)
		return "", false
	}

	word, remaining, ok := q.pop()
	if !ok {
		p.logger.Debug("word pool is empty or does not exist", "theme", theme)
		return "", false
	}

	p.logger.Debug("polled word from pool", "theme", theme, "remaining", remaining)
	return word, true
}

// AddWords appends words to the theme's queue in order, creating the queue if needed.
// An empty slice is a no-op.
func (p *Pool) AddWords(theme string, words []string) {
	if len(words) == 0 {
		p.logger.Warn("attempted to add empty word list", "theme", theme)
		return
	}

	size := p.queueOrCreate(theme).push(words...)
	p.logger.Info("added words to pool",
		"theme", theme,
		"added", len(words),
		"pool_size", size)
}

// AddWord appends a single word. A blank word is a no-op.
func (p *Pool) AddWord(theme, word string) {
	if strings.TrimSpace(word) == "" {
		p.logger.Warn("attempted to add empty word", "theme", theme)
		return
	}

	size := p.queueOrCreate(theme).push(word)
	p.logger.Debug("added word to pool", "theme", theme, "pool_size", size)
}

// PoolSize returns the number of words buffered for theme, 0 if the theme is unknown.
func (p *Pool) PoolSize(theme string) int {
	q, ok := p.queue(theme)
	if !ok {
		return 0
	}
	return q.size()
}

// NeedsRefill reports whether the theme's pool is strictly below the minimum threshold.
func (p *Pool) NeedsRefill(theme string) bool {
	size := p.PoolSize(theme)
	needs := size < p.minThreshold
	if needs {
		p.logger.Debug("word pool needs refill",
			"theme", theme,
			"pool_size", size,
			"min_threshold", p.minThreshold)
	}
	return needs
}

// IsEmpty reports whether the theme has no buffered words.
func (p *Pool) IsEmpty(theme string) bool {
	return p.PoolSize(theme) == 0
}

// ClearPool discards all buffered words for theme.
func (p *Pool) ClearPool(theme string) {
	q, ok := p.queue(theme)
	if !ok {
		return
	}
	removed := q.clear()
	p.logger.Info("cleared word pool", "theme", theme, "removed", removed)
}

// ClearAllPools discards the buffered words of every theme.
func (p *Pool) ClearAllPools() {
	total := 0
	p.queues.Range(func(_, v any) bool {
		total += v.(*themeQueue).clear()
		return true
	})
	p.logger.Info("cleared all word pools", "removed", total)
}

// MinThreshold returns the configured refill threshold.
func (p *Pool) MinThreshold() int {
	return p.minThreshold
}

// Sizes returns a point-in-time view of the pool size of every known theme.
func (p *Pool) Sizes() map[string]int {
	sizes := make(map[string]int)
	p.queues.Range(func(k, v any) bool {
		sizes[k.(string)] = v.(*themeQueue).size()
		return true
	})
	return sizes
}
