package service

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSessionLocks(t *testing.T) {
	locks := newSessionLocks()
	id := uuid.New()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock(id)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Zero(t, locks.size(), "записи освобожденных блокировок должны удаляться")
}

func TestSessionLocksIndependentSessions(t *testing.T) {
	locks := newSessionLocks()

	unlockA := locks.lock(uuid.New())
	done := make(chan struct{})
	go func() {
		unlockB := locks.lock(uuid.New())
		unlockB()
		close(done)
	}()
	<-done
	unlockA()
	assert.Zero(t, locks.size())
}
