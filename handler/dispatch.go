package handler

import (
	"sync"
	"time"

	"github.com/philipp01105/twyg/core"
)

// AsyncConfig holds the queueing options shared by the async handlers.
type AsyncConfig struct {
	BufferSize     int
	OverflowPolicy map[core.Level]OverflowPolicy
	BlockTimeout   time.Duration
	DrainTimeout   time.Duration
}

func (c *AsyncConfig) applyDefaults() {
	if c.BufferSize <= 0 {
		c.BufferSize = 1000
	}
	if c.OverflowPolicy == nil {
		c.OverflowPolicy = DefaultLevelPolicy()
	}
	if c.BlockTimeout == 0 {
		c.BlockTimeout = 100 * time.Millisecond
	}
	if c.DrainTimeout == 0 {
		c.DrainTimeout = 5 * time.Second
	}
}

// dispatcher owns the bounded queue of an async handler and the
// background goroutine that drains it through write.
type dispatcher struct {
	queue          chan *core.Entry
	wg             sync.WaitGroup
	overflowPolicy map[core.Level]OverflowPolicy
	blockTimeout   time.Duration
	drainTimeout   time.Duration
	timers         sync.Pool // stopped *time.Timer for Block waits
	stats          *Stats
	closed         chan struct{}
	closeOnce      sync.Once

	// mu is held shared by enqueue from the closed check until its send
	// completes, and exclusively by close while it sets stopped, so no
	// entry can reach the queue after the final drain.
	mu      sync.RWMutex
	stopped bool
	write          func(*core.Entry) error
}

func newDispatcher(cfg AsyncConfig, stats *Stats, write func(*core.Entry) error) *dispatcher {
	cfg.applyDefaults()
	d := &dispatcher{
		queue:          make(chan *core.Entry, cfg.BufferSize),
		overflowPolicy: cfg.OverflowPolicy,
		blockTimeout:   cfg.BlockTimeout,
		drainTimeout:   cfg.DrainTimeout,
		stats:          stats,
		closed:         make(chan struct{}),
		write:          write,
	}
	d.timers.New = func() interface{} { return NewStoppedTimer() }

	d.wg.Add(1)
	go d.process()
	return d
}

// writeNow writes entry on the caller's goroutine and recycles it.
func (d *dispatcher) writeNow(entry *core.Entry) error {
	err := d.write(entry)
	core.PutEntry(entry)
	return err
}

// drop counts and recycles an entry that will never be written.
func (d *dispatcher) drop(entry *core.Entry) {
	d.stats.IncrementDropped(entry.Level)
	core.PutEntry(entry)
}

// enqueue hands entry to the background goroutine according to the
// overflow policy of its level. Ownership of entry passes to the
// dispatcher.
func (d *dispatcher) enqueue(entry *core.Entry) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return d.writeNow(entry)
	}

	policy, ok := d.overflowPolicy[entry.Level]
	if !ok {
		policy = DropNewest // Default if not specified
	}

	select {
	case d.queue <- entry:
		return nil
	default:
	}

	switch policy {
	case Block:
		t := d.timers.Get().(*time.Timer)
		t.Reset(d.blockTimeout)
		defer func() {
			stopTimer(t)
			d.timers.Put(t)
		}()
		select {
		case d.queue <- entry:
			return nil
		case <-t.C:
			// Timeout - fall back to synchronous write
			d.stats.IncrementBlocked()
			return d.writeNow(entry)
		}

	case DropOldest:
		select {
		case old := <-d.queue:
			d.drop(old)
		default:
		}
		select {
		case d.queue <- entry:
		default:
			// Still full, drop this one
			d.drop(entry)
		}
		return nil

	default:
		d.drop(entry)
		return nil
	}
}

// process handles async log processing. Write errors do not stop the
// loop; the entry is discarded and the next one is written.
func (d *dispatcher) process() {
	defer d.wg.Done()

	for {
		select {
		case entry := <-d.queue:
			_ = d.writeNow(entry)
		case <-d.closed:
			// Drain remaining entries with timeout
			deadline := time.NewTimer(d.drainTimeout)
			defer deadline.Stop()
			for {
				select {
				case entry := <-d.queue:
					_ = d.writeNow(entry)
				case <-deadline.C:
					return
				default:
					return
				}
			}
		}
	}
}

// close stops accepting queued entries and waits for the drain. Entries
// still queued when the drain timeout expires are counted as dropped.
// Entries handled afterwards are written synchronously.
func (d *dispatcher) close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.stopped = true
		d.mu.Unlock()

		close(d.closed)
		d.wg.Wait()

		for {
			select {
			case entry := <-d.queue:
				d.drop(entry)
			default:
				return
			}
		}
	})
}
