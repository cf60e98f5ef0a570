package player

// Fetcher warms a frame ahead of display. Prefetch must not block the caller
// and its failures are not reported back.
type Fetcher interface {
	// Seek tells the fetcher which frame is visible. Frames behind it may be
	// released.
	Seek(frame int)
	Prefetch(frame int)
}

// Preloader tracks which frames have had a fetch issued during the current
// run and asks the Fetcher for the next few frames whenever the visible frame
// changes.
type Preloader struct {
	fetcher Fetcher
	total   int
	ahead   int
	issued  map[int]struct{}
}

func NewPreloader(fetcher Fetcher, total, ahead int) *Preloader {
	return &Preloader{
		fetcher: fetcher,
		total:   total,
		ahead:   ahead,
		issued:  make(map[int]struct{}),
	}
}

// Observe moves the fetcher to frame and schedules fetches for frame+1 ..
// frame+ahead that are inside the sequence and not already issued. It
// returns the frames scheduled by this call in ascending order.
func (p *Preloader) Observe(frame int) []int {
	if p.fetcher != nil {
		p.fetcher.Seek(frame)
	}
	var scheduled []int
	for i := frame + 1; i <= frame+p.ahead && i < p.total; i++ {
		if i < 0 {
			continue
		}
		if _, ok := p.issued[i]; ok {
			continue
		}
		p.issued[i] = struct{}{}
		scheduled = append(scheduled, i)
		if p.fetcher != nil {
			p.fetcher.Prefetch(i)
		}
	}
	return scheduled
}

// Issued reports whether a fetch for frame was issued this run.
func (p *Preloader) Issued(frame int) bool {
	_, ok := p.issued[frame]
	return ok
}

func (p *Preloader) Len() int {
	return len(p.issued)
}

// Reset forgets every issued frame.
func (p *Preloader) Reset() {
	clear(p.issued)
}
