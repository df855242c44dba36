package experience

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/rs/zerolog"
)

var (
	// ErrBufferClosed is returned when operations are attempted on a closed buffer
	ErrBufferClosed = errors.New("experience buffer is closed")
)

// DefaultBufferCapacity is used when a non-positive capacity is requested
const DefaultBufferCapacity = 10000

// Buffer is a thread-safe circular buffer of experiences. When full, the
// oldest experience is overwritten.
type Buffer struct {
	mu       sync.RWMutex
	buffer   []*Experience
	capacity int
	size     int
	head     int // Write position
	tail     int // Read position
	closed   bool

	totalAdded   int64
	totalDropped int64

	logger zerolog.Logger
}

// NewBuffer creates a new experience buffer with the specified capacity
func NewBuffer(capacity int, logger zerolog.Logger) *Buffer {
	if capacity <= 0 {
		capacity = DefaultBufferCapacity
	}

	return &Buffer{
		buffer:   make([]*Experience, capacity),
		capacity: capacity,
		logger:   logger.With().Str("component", "experience_buffer").Logger(),
	}
}

// Add adds an experience to the buffer
func (b *Buffer) Add(exp *Experience) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBufferClosed
	}
	b.push(exp)
	return nil
}

// AddBatch adds multiple experiences to the buffer
func (b *Buffer) AddBatch(experiences []*Experience) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBufferClosed
	}
	for _, exp := range experiences {
		b.push(exp)
	}

	if len(experiences) > 0 {
		b.logger.Debug().
			Int("batch_size", len(experiences)).
			Int64("total_added", b.totalAdded).
			Msg("Added batch of experiences")
	}
	return nil
}

// push must be called with the write lock held.
func (b *Buffer) push(exp *Experience) {
	if b.size >= b.capacity {
		b.tail = (b.tail + 1) % b.capacity
		b.totalDropped++
	} else {
		b.size++
	}
	b.buffer[b.head] = exp
	b.head = (b.head + 1) % b.capacity
	b.totalAdded++
}

// Get removes and returns up to n of the oldest experiences
func (b *Buffer) Get(n int) []*Experience {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n > b.size {
		n = b.size
	}

	result := make([]*Experience, n)
	for i := 0; i < n; i++ {
		result[i] = b.buffer[b.tail]
		b.buffer[b.tail] = nil
		b.tail = (b.tail + 1) % b.capacity
		b.size--
	}
	return result
}

// GetAll removes and returns every experience, oldest first
func (b *Buffer) GetAll() []*Experience {
	b.mu.Lock()
	size := b.size
	b.mu.Unlock()
	return b.Get(size)
}

// Sample returns n experiences drawn uniformly with replacement. The buffer
// is left unchanged.
func (b *Buffer) Sample(n int, rng *rand.Rand) []*Experience {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.size == 0 || n <= 0 {
		return []*Experience{}
	}

	result := make([]*Experience, n)
	for i := range result {
		idx := (b.tail + rng.Intn(b.size)) % b.capacity
		result[i] = b.buffer[idx]
	}
	return result
}

// GetLatest returns the n most recent experiences, oldest first
func (b *Buffer) GetLatest(n int) []*Experience {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n > b.size {
		n = b.size
	}

	result := make([]*Experience, n)
	for i := 0; i < n; i++ {
		idx := (b.head - n + i + b.capacity) % b.capacity
		result[i] = b.buffer[idx]
	}
	return result
}

// Size returns the current number of experiences in the buffer
func (b *Buffer) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}

// Capacity returns the maximum capacity of the buffer
func (b *Buffer) Capacity() int {
	return b.capacity
}

// IsFull returns true if the buffer is at capacity
func (b *Buffer) IsFull() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size >= b.capacity
}

// Clear removes all experiences from the buffer
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.size = 0
	b.head = 0
	b.tail = 0
	b.buffer = make([]*Experience, b.capacity)

	b.logger.Debug().Msg("Buffer cleared")
}

// Close rejects further writes. Reads keep working.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	b.logger.Info().
		Int64("total_added", b.totalAdded).
		Int64("total_dropped", b.totalDropped).
		Msg("Buffer closed")
	return nil
}

// Stats returns buffer statistics
func (b *Buffer) Stats() BufferStats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return BufferStats{
		CurrentSize:    b.size,
		Capacity:       b.capacity,
		TotalAdded:     b.totalAdded,
		TotalDropped:   b.totalDropped,
		UtilizationPct: float64(b.size) / float64(b.capacity) * 100,
	}
}

// BufferStats contains buffer statistics
type BufferStats struct {
	CurrentSize    int
	Capacity       int
	TotalAdded     int64
	TotalDropped   int64
	UtilizationPct float64
}
