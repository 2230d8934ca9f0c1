package executor

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocks_AcquireRelease(t *testing.T) {
	var released []Control
	locks := NewLocks(func(c Control) { released = append(released, c) })

	token, ok := locks.Acquire(ControlPhones)
	require.True(t, ok)
	assert.Equal(t, ControlPhones, token.Control())
	assert.True(t, locks.Busy(ControlPhones))
	assert.False(t, locks.Busy(ControlRecords))

	_, ok = locks.Acquire(ControlPhones)
	assert.False(t, ok)

	other, ok := locks.Acquire(ControlRecords)
	require.True(t, ok)
	assert.Equal(t, 2, locks.Held())

	token.Release()
	token.Release()
	assert.False(t, locks.Busy(ControlPhones))
	assert.Equal(t, []Control{ControlPhones}, released)

	other.Release()
	assert.Zero(t, locks.Held())
	assert.Equal(t, []Control{ControlPhones, ControlRecords}, released)
}

func TestLocks_ConcurrentAcquire(t *testing.T) {
	locks := NewLocks(nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := locks.Acquire(ControlVoice); ok {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, granted)
}

func TestToken_ConcurrentRelease(t *testing.T) {
	count := 0
	var mu sync.Mutex
	locks := NewLocks(func(Control) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	token, ok := locks.Acquire(ControlQuickSMS)
	require.True(t, ok)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token.Release()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, count)
}
