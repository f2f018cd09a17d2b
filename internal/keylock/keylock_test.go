package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockSerializesSameKey(t *testing.T) {
	l := Default()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("lot|Milk")
			v := counter
			counter = v + 1
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestLockMultipleKeysInEitherOrder(t *testing.T) {
	l := New(4)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			l.Lock("a", "b", "a")()
		}()
		go func() {
			defer wg.Done()
			l.Lock("b", "a")()
		}()
	}
	wg.Wait()
}

func TestNewClampsPower(t *testing.T) {
	assert.Len(t, New(1).stripes, 16)
	assert.Len(t, New(12).stripes, 1024)
}
