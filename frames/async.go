package frames

import (
	"image"
	"sync"
)

const defaultBufSize = 16

// Async hands frames to a Processor on a separate goroutine so PNG encoding
// does not hold up the animation loop. Images must not be modified after
// they are passed to ProcessFrame.
type Async struct {
	wg sync.WaitGroup // ensures the worker has drained
	ch chan frame

	mu  sync.RWMutex
	err error
}

// Async implements the Processor interface.
var _ Processor = &Async{}

type frame struct {
	n   int
	img image.Image
}

// NewAsync starts a worker feeding p. A bufSize of 0 uses a default.
func NewAsync(p Processor, bufSize int) *Async {
	if bufSize <= 0 {
		bufSize = defaultBufSize
	}
	a := &Async{ch: make(chan frame, bufSize)}
	a.start(p)
	return a
}

func (a *Async) start(p Processor) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.worker(p)
	}()
}

// ProcessFrame queues a frame. It returns the first error the worker has
// reported so far, if any.
func (a *Async) ProcessFrame(n int, img image.Image) error {
	a.ch <- frame{n: n, img: img}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.err
}

// Close waits for every queued frame to be processed.
func (a *Async) Close() error {
	close(a.ch)
	a.wg.Wait()
	return a.err
}

// worker keeps draining the channel after a failure so senders never block.
func (a *Async) worker(p Processor) {
	var failed bool
	for f := range a.ch {
		if failed {
			continue
		}
		if err := p.ProcessFrame(f.n, f.img); err != nil {
			failed = true
			a.mu.Lock()
			a.err = err
			a.mu.Unlock()
		}
	}
}
