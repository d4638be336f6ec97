// Package cache keeps the verdicts produced during one session. Entries
// expire after a TTL and the oldest entry is evicted once the history is
// full. Nothing is written to disk.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
	"time"

	"threatscope/models"
)

type entry struct {
	verdict    models.Verdict
	seq        uint64
	expiration time.Time
}

type History struct {
	data       map[string]entry
	mutex      sync.RWMutex
	ttl        time.Duration
	maxSize    int
	seq        uint64
	cleanupInt time.Duration
	stopChan   chan struct{}
	closeOnce  sync.Once
	now        func() time.Time
}

func NewHistory(ttl time.Duration, maxSize int) *History {
	if maxSize <= 0 {
		maxSize = 1
	}
	h := &History{
		data:       make(map[string]entry),
		ttl:        ttl,
		maxSize:    maxSize,
		cleanupInt: ttl / 2,
		stopChan:   make(chan struct{}),
		now:        time.Now,
	}

	if h.cleanupInt > 0 {
		go h.cleanupExpiredEntries()
	}

	return h
}

// Key identifies an input independent of surrounding whitespace.
func Key(mode models.Mode, input string) string {
	sum := sha256.Sum256([]byte(mode.String() + "\x00" + strings.TrimSpace(input)))
	return hex.EncodeToString(sum[:8])
}

// Add records a verdict, replacing an earlier one for the same input.
func (h *History) Add(v models.Verdict) string {
	key := Key(v.Mode, v.Input)

	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, exists := h.data[key]; !exists && len(h.data) >= h.maxSize {
		h.evictOldestEntry()
	}

	h.seq++
	h.data[key] = entry{
		verdict:    v,
		seq:        h.seq,
		expiration: h.now().Add(h.ttl),
	}
	return key
}

// Lookup returns the last verdict recorded for this input, if still live.
func (h *History) Lookup(mode models.Mode, input string) (models.Verdict, bool) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	e, exists := h.data[Key(mode, input)]
	if !exists || h.now().After(e.expiration) {
		return models.Verdict{}, false
	}
	return e.verdict, true
}

// Recent returns up to n live verdicts, newest first. n <= 0 means all.
func (h *History) Recent(n int) []models.Verdict {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	now := h.now()
	live := make([]entry, 0, len(h.data))
	for _, e := range h.data {
		if now.Before(e.expiration) {
			live = append(live, e)
		}
	}
	sort.Slice(live, func(i, j int) bool { return live[i].seq > live[j].seq })

	if n > 0 && len(live) > n {
		live = live[:n]
	}
	out := make([]models.Verdict, len(live))
	for i, e := range live {
		out[i] = e.verdict
	}
	return out
}

func (h *History) Len() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.data)
}

// Stats counts live verdicts by classification.
func (h *History) Stats() (total, malicious int) {
	for _, v := range h.Recent(0) {
		total++
		if v.Result.IsMalicious {
			malicious++
		}
	}
	return total, malicious
}

func (h *History) Clear() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.data = make(map[string]entry)
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (h *History) Close() {
	h.closeOnce.Do(func() {
		close(h.stopChan)
	})
	h.Clear()
}

func (h *History) evictOldestEntry() {
	var oldestKey string
	var oldestSeq uint64

	for key, e := range h.data {
		if oldestKey == "" || e.seq < oldestSeq {
			oldestKey = key
			oldestSeq = e.seq
		}
	}

	if oldestKey != "" {
		delete(h.data, oldestKey)
	}
}

func (h *History) cleanupExpiredEntries() {
	ticker := time.NewTicker(h.cleanupInt)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.removeExpiredEntries()
		case <-h.stopChan:
			return
		}
	}
}

func (h *History) removeExpiredEntries() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	now := h.now()
	for key, e := range h.data {
		if now.After(e.expiration) {
			delete(h.data, key)
		}
	}
}
