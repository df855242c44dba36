package experience

import (
	"fmt"
	"sync"
	"testing"

	"github.com/mitchelldurbincs/counterair/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestExperience(id string, action int) *Experience {
	return &Experience{
		ExperienceID: id,
		GameID:       "test-game",
		Action:       action,
		State:        make([]float32, ObservationSize),
		NextState:    make([]float32, ObservationSize),
		ActionMask:   make([]bool, 13),
	}
}

func actions(experiences []*Experience) []int {
	out := make([]int, len(experiences))
	for i, exp := range experiences {
		out[i] = exp.Action
	}
	return out
}

func TestBuffer_Creation(t *testing.T) {
	buffer := NewBuffer(100, zerolog.Nop())

	assert.Equal(t, 100, buffer.Capacity())
	assert.Equal(t, 0, buffer.Size())
	assert.False(t, buffer.IsFull())

	assert.Equal(t, DefaultBufferCapacity, NewBuffer(0, zerolog.Nop()).Capacity())
	assert.Equal(t, DefaultBufferCapacity, NewBuffer(-5, zerolog.Nop()).Capacity())
}

func TestBuffer_AddAndGet(t *testing.T) {
	buffer := NewBuffer(10, zerolog.Nop())
	for i := 0; i < 5; i++ {
		require.NoError(t, buffer.Add(createTestExperience(fmt.Sprint(i), i)))
	}
	assert.Equal(t, 5, buffer.Size())

	assert.Equal(t, []int{0, 1, 2}, actions(buffer.Get(3)))
	assert.Equal(t, 2, buffer.Size())

	assert.Equal(t, []int{3, 4}, actions(buffer.Get(10)))
	assert.Equal(t, 0, buffer.Size())
	assert.Empty(t, buffer.Get(1))
}

func TestBuffer_OverwritesOldest(t *testing.T) {
	buffer := NewBuffer(3, zerolog.Nop())
	for i := 0; i < 5; i++ {
		require.NoError(t, buffer.Add(createTestExperience(fmt.Sprint(i), i)))
	}

	assert.True(t, buffer.IsFull())
	stats := buffer.Stats()
	assert.Equal(t, int64(5), stats.TotalAdded)
	assert.Equal(t, int64(2), stats.TotalDropped)
	assert.Equal(t, 100.0, stats.UtilizationPct)

	assert.Equal(t, []int{2, 3, 4}, actions(buffer.GetAll()))
}

func TestBuffer_AddBatch(t *testing.T) {
	buffer := NewBuffer(4, zerolog.Nop())
	batch := make([]*Experience, 6)
	for i := range batch {
		batch[i] = createTestExperience(fmt.Sprint(i), i)
	}

	require.NoError(t, buffer.AddBatch(batch))
	require.NoError(t, buffer.AddBatch(nil))

	assert.Equal(t, 4, buffer.Size())
	assert.Equal(t, []int{2, 3, 4, 5}, actions(buffer.GetAll()))
}

func TestBuffer_GetLatest(t *testing.T) {
	buffer := NewBuffer(4, zerolog.Nop())
	for i := 0; i < 6; i++ {
		require.NoError(t, buffer.Add(createTestExperience(fmt.Sprint(i), i)))
	}

	tests := []struct {
		n    int
		want []int
	}{
		{1, []int{5}},
		{3, []int{3, 4, 5}},
		{10, []int{2, 3, 4, 5}},
		{0, []int{}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			assert.Equal(t, tt.want, actions(buffer.GetLatest(tt.n)))
		})
	}
	assert.Equal(t, 4, buffer.Size(), "GetLatest must not consume")
}

func TestBuffer_Sample(t *testing.T) {
	buffer := NewBuffer(10, zerolog.Nop())
	rng := testutil.NewTestRNG(3)

	assert.Empty(t, buffer.Sample(5, rng))

	for i := 0; i < 4; i++ {
		require.NoError(t, buffer.Add(createTestExperience(fmt.Sprint(i), i)))
	}

	sample := buffer.Sample(200, rng)
	require.Len(t, sample, 200)
	seen := make(map[int]bool)
	for _, exp := range sample {
		require.NotNil(t, exp)
		assert.GreaterOrEqual(t, exp.Action, 0)
		assert.Less(t, exp.Action, 4)
		seen[exp.Action] = true
	}
	assert.Len(t, seen, 4)
	assert.Equal(t, 4, buffer.Size())

	again := buffer.Sample(200, testutil.NewTestRNG(3))
	first := buffer.Sample(200, testutil.NewTestRNG(3))
	assert.Equal(t, actions(first), actions(again))
}

func TestBuffer_Clear(t *testing.T) {
	buffer := NewBuffer(5, zerolog.Nop())
	for i := 0; i < 3; i++ {
		require.NoError(t, buffer.Add(createTestExperience(fmt.Sprint(i), i)))
	}

	buffer.Clear()
	assert.Equal(t, 0, buffer.Size())

	require.NoError(t, buffer.Add(createTestExperience("x", 9)))
	assert.Equal(t, []int{9}, actions(buffer.GetAll()))
}

func TestBuffer_Close(t *testing.T) {
	buffer := NewBuffer(5, zerolog.Nop())
	require.NoError(t, buffer.Add(createTestExperience("a", 1)))

	require.NoError(t, buffer.Close())
	require.NoError(t, buffer.Close())

	assert.ErrorIs(t, buffer.Add(createTestExperience("b", 2)), ErrBufferClosed)
	assert.ErrorIs(t, buffer.AddBatch([]*Experience{createTestExperience("c", 3)}), ErrBufferClosed)
	assert.Equal(t, []int{1}, actions(buffer.GetAll()))
}

func TestBuffer_Concurrent(t *testing.T) {
	buffer := NewBuffer(1000, zerolog.Nop())

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = buffer.Add(createTestExperience(fmt.Sprintf("%d-%d", w, i), i))
			}
		}(w)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_ = buffer.GetLatest(10)
			_ = buffer.Stats()
		}
	}()
	wg.Wait()

	assert.Equal(t, 400, buffer.Size())
	assert.Equal(t, int64(400), buffer.Stats().TotalAdded)
}
