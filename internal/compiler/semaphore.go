package compiler

// semaphore bounds the number of files compiled at once.
type semaphore struct {
	x chan struct{}
}

func newSemaphore(v int) *semaphore {
	return &semaphore{
		x: make(chan struct{}, v),
	}
}

func (self *semaphore) Lock() {
	self.x <- struct{}{}
}

func (self *semaphore) Unlock() {
	<-self.x
}
