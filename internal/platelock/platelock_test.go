package platelock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyed_SerializesSamePlate(t *testing.T) {
	k := New()

	var counter int
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			k.Lock("P123ABC")
			counter++
			k.Unlock("P123ABC")
		}()
	}

	wg.Wait()
	assert.Equal(t, 100, counter)
	assert.Equal(t, 0, k.Len(), "entries must be released after use")
}

func TestKeyed_IndependentPlatesDoNotBlock(t *testing.T) {
	k := New()

	k.Lock("AAA111")

	done := make(chan struct{})
	go func() {
		k.Lock("BBB222")
		k.Unlock("BBB222")
		close(done)
	}()

	<-done // would deadlock if plates shared a lock
	k.Unlock("AAA111")
	assert.Equal(t, 0, k.Len())
}
