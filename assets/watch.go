package assets

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchQuiet is how long a frame file must go without events before it is
// reported. Renderers write a large PNG in several chunks.
const watchQuiet = 100 * time.Millisecond

// Watcher reports frame images that were rewritten on disk, so a sequence
// can be re-rendered while the player is open. A path is reported once its
// writes have settled.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 64),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run(newSettler(watchQuiet))
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run(s *settler) {
	timer := time.NewTimer(s.quiet)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isFrameFile(event.Name) {
				continue
			}
			now := time.Now()
			s.touch(event.Name, now)
			if wait, ok := s.next(now); ok {
				timer.Reset(wait)
			}
		case <-timer.C:
			now := time.Now()
			for _, name := range s.settled(now) {
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
			}
			if wait, ok := s.next(now); ok {
				timer.Reset(wait)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// settler holds paths until no event has touched them for quiet.
type settler struct {
	quiet   time.Duration
	pending map[string]time.Time
}

func newSettler(quiet time.Duration) *settler {
	return &settler{quiet: quiet, pending: make(map[string]time.Time)}
}

func (s *settler) touch(path string, now time.Time) {
	s.pending[path] = now
}

// settled removes and returns, sorted, the paths quiet since now-quiet.
func (s *settler) settled(now time.Time) []string {
	var out []string
	for path, last := range s.pending {
		if now.Sub(last) >= s.quiet {
			out = append(out, path)
			delete(s.pending, path)
		}
	}
	slices.Sort(out)
	return out
}

// next reports how long until the earliest pending path settles.
func (s *settler) next(now time.Time) (time.Duration, bool) {
	var (
		wait  time.Duration
		found bool
	)
	for _, last := range s.pending {
		d := last.Add(s.quiet).Sub(now)
		if !found || d < wait {
			wait, found = d, true
		}
	}
	if wait < 0 {
		wait = 0
	}
	return wait, found
}

func isFrameFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
