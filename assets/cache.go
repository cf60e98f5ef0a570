package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"strconv"
	"sync"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// FrameCache keeps decoded frames for a window that starts at the visible
// frame and reaches window frames ahead of it. Frames outside the window are
// released on Seek. Prefetches run in the background with at most maxFetches
// in flight; concurrent requests for one frame share a single fetch.
type FrameCache struct {
	frames *Frames
	window int
	debug  bool

	ctx    context.Context
	cancel context.CancelFunc
	sem    *semaphore.Weighted
	group  singleflight.Group
	wg     sync.WaitGroup

	mu      sync.Mutex
	current int
	images  map[int]image.Image
	fetches map[int]int
	// gens is bumped by Evict so a load that started before the eviction
	// does not store its stale result.
	gens map[int]uint64
}

func NewFrameCache(frames *Frames, window, maxFetches int, debug bool) *FrameCache {
	if maxFetches < 1 {
		maxFetches = 1
	}
	if window < 0 {
		window = 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &FrameCache{
		frames:  frames,
		window:  window,
		debug:   debug,
		ctx:     ctx,
		cancel:  cancel,
		sem:     semaphore.NewWeighted(int64(maxFetches)),
		images:  make(map[int]image.Image),
		fetches: make(map[int]int),
		gens:    make(map[int]uint64),
	}
}

// Seek moves the window to start at frame and releases every frame outside
// it.
func (c *FrameCache) Seek(frame int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = frame
	for i := range c.images {
		if !c.inWindowLocked(i) {
			delete(c.images, i)
		}
	}
}

// Prefetch starts a background fetch of frame unless it is cached. Errors
// are dropped; the frame is fetched again when it is displayed.
func (c *FrameCache) Prefetch(frame int) {
	if c.Cached(frame) || c.ctx.Err() != nil {
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.sem.Acquire(c.ctx, 1); err != nil {
			return
		}
		defer c.sem.Release(1)

		if _, err := c.load(c.ctx, frame); err != nil && c.debug {
			log.Printf("frames: prefetch %d: %v", frame, err)
		}
	}()
}

// Frame returns the decoded frame, fetching it synchronously on a miss.
func (c *FrameCache) Frame(ctx context.Context, frame int) (image.Image, error) {
	if img, ok := c.get(frame); ok {
		return img, nil
	}
	return c.load(ctx, frame)
}

// Cached reports whether frame is decoded and in memory.
func (c *FrameCache) Cached(frame int) bool {
	_, ok := c.get(frame)
	return ok
}

// Resident reports how many decoded frames are held.
func (c *FrameCache) Resident() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.images)
}

// Fetches reports how many times frame was fetched from the source.
func (c *FrameCache) Fetches(frame int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches[frame]
}

// Evict drops the frame stored under asset name, including the result of a
// fetch still in flight. It reports whether name belongs to the sequence.
func (c *FrameCache) Evict(name string) bool {
	frame, ok := c.frames.Index(name)
	if !ok {
		return false
	}
	c.mu.Lock()
	delete(c.images, frame)
	c.gens[frame]++
	c.mu.Unlock()
	c.group.Forget(strconv.Itoa(frame))
	return true
}

// Wait blocks until every prefetch started so far has finished.
func (c *FrameCache) Wait() {
	c.wg.Wait()
}

// Close cancels pending prefetches and waits for running ones.
func (c *FrameCache) Close() {
	c.cancel()
	c.wg.Wait()
}

func (c *FrameCache) get(frame int) (image.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	img, ok := c.images[frame]
	return img, ok
}

func (c *FrameCache) inWindowLocked(frame int) bool {
	return frame >= c.current && frame <= c.current+c.window
}

func (c *FrameCache) load(ctx context.Context, frame int) (image.Image, error) {
	v, err, _ := c.group.Do(strconv.Itoa(frame), func() (any, error) {
		c.mu.Lock()
		if img, ok := c.images[frame]; ok {
			c.mu.Unlock()
			return img, nil
		}
		c.fetches[frame]++
		gen := c.gens[frame]
		c.mu.Unlock()

		img, err := c.frames.Decode(ctx, frame)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.gens[frame] == gen && c.inWindowLocked(frame) {
			c.images[frame] = img
		}
		c.mu.Unlock()
		return img, nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("frames: load %d: %w", frame, err)
	}
	return v.(image.Image), nil
}
