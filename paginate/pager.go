package paginate

import (
	"go.uber.org/zap"

	"leaf/content"
)

// DefaultFillThreshold is the page fill ratio past which a page is closed
// even if more content would technically fit. Without it a nearly full page
// keeps starving short trailing blocks into awkward leftovers.
const DefaultFillThreshold = 0.95

// Pager is the pagination algorithm. It has no persistent state: every
// Paginate call is an independent, deterministic pass.
type Pager struct {
	measurer  Measurer
	width     int
	threshold float64
	wpm       int
	log       *zap.Logger
}

// NewPager returns a pager measuring against the given content width.
// wordsPerMinute feeds per-page reading time estimates.
func NewPager(m Measurer, width, wordsPerMinute int, fillThreshold float64, log *zap.Logger) *Pager {
	if fillThreshold <= 0 || fillThreshold > 1 {
		fillThreshold = DefaultFillThreshold
	}
	if wordsPerMinute <= 0 {
		wordsPerMinute = 238
	}
	return &Pager{
		measurer:  m,
		width:     width,
		threshold: fillThreshold,
		wpm:       wordsPerMinute,
		log:       log,
	}
}

// Paginate walks blocks in order and greedily bin-packs them into pages of
// at most maxPageHeight. Non-paragraph blocks are never split; paragraphs
// that do not fit the remaining space are fragmented at the largest word
// prefix that does. For fixed inputs and a fixed measurer the output is
// exactly reproducible.
func (p *Pager) Paginate(blocks []*content.Block, maxPageHeight int) []*Page {
	pass := &paginationPass{
		Pager:   p,
		maxH:    maxPageHeight,
		heights: make(map[string]int, len(blocks)),
	}
	return pass.run(blocks)
}

// paginationPass carries per-pass state: the page under construction and
// the measurement cache. Measured heights are viewport-dependent, so the
// cache never outlives the pass.
type paginationPass struct {
	*Pager
	maxH    int
	heights map[string]int

	pages []*Page
	cur   *Page
}

func (p *paginationPass) run(blocks []*content.Block) []*Page {
	p.cur = &Page{}
	queue := make([]*content.Block, len(blocks))
	copy(queue, blocks)

	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]

		h, err := p.measure(b)
		if err != nil {
			p.log.Warn("Unable to measure block, skipping it", zap.String("block", b.ID), zap.Error(err))
			continue
		}

		remaining := p.maxH - p.cur.Height
		if h <= remaining {
			p.place(b, h)
			continue
		}

		if !b.Kind.IsSplittable() || b.Words < 2 {
			if len(p.cur.Blocks) == 0 {
				// taller than a whole page - gets a page of its own
				p.place(b, h)
				p.close()
				continue
			}
			p.close()
			queue = prepend(queue, b)
			continue
		}

		fit := p.fitWords(b, remaining)
		if fit == 0 {
			if len(p.cur.Blocks) == 0 {
				// not even one word fits an empty page, keep the block whole
				p.place(b, h)
				p.close()
				continue
			}
			p.close()
			queue = prepend(queue, b)
			continue
		}
		if fit >= b.Words {
			p.place(b, h)
			continue
		}

		head := b.Fragment(0, fit)
		rest := b.Fragment(fit, b.Words-fit)
		hh, err := p.measure(head)
		if err != nil {
			// measurement just succeeded for the whole block, a prefix
			// failing means the measurer is unstable - keep the block whole
			p.log.Warn("Fragment measurement failed, keeping block whole", zap.String("block", b.ID), zap.Error(err))
			p.close()
			queue = prepend(queue, b)
			continue
		}
		p.place(head, hh)
		p.close()
		queue = prepend(queue, rest)
	}

	if len(p.cur.Blocks) > 0 {
		p.close()
	}
	return p.pages
}

func (p *paginationPass) place(b *content.Block, h int) {
	p.cur.Blocks = append(p.cur.Blocks, b)
	p.cur.Height += h
	p.cur.Words += b.Words
	if float64(p.cur.Height) >= p.threshold*float64(p.maxH) {
		p.close()
	}
}

func (p *paginationPass) close() {
	if len(p.cur.Blocks) == 0 {
		return
	}
	p.cur.ReadingMinutes = float64(p.cur.Words) / float64(p.wpm)
	p.pages = append(p.pages, p.cur)
	p.cur = &Page{}
}

func (p *paginationPass) measure(b *content.Block) (int, error) {
	if h, ok := p.heights[b.ID]; ok {
		return h, nil
	}
	h, err := p.measurer.BlockHeight(b, p.width)
	if err != nil {
		return 0, err
	}
	if h < 1 {
		h = 1
	}
	p.heights[b.ID] = h
	return h, nil
}

// fitWords binary-searches the largest word-count prefix of a paragraph
// whose measured height fits the remaining space. Returns 0 when nothing
// fits.
func (p *paginationPass) fitWords(b *content.Block, remaining int) int {
	if remaining <= 0 {
		return 0
	}
	lo, hi := 1, b.Words
	best := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		h, err := p.measure(b.Fragment(0, mid))
		if err != nil {
			return 0
		}
		if h <= remaining {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return best
}

func prepend(queue []*content.Block, b *content.Block) []*content.Block {
	out := make([]*content.Block, 0, len(queue)+1)
	out = append(out, b)
	return append(out, queue...)
}
