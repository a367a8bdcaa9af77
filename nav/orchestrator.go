package nav

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"leaf/common"
	"leaf/content"
	"leaf/paginate"
	"leaf/reading"
)

// Renderer is the drawing collaborator: it receives a built book and a
// target locator and puts the page on the display surface. The core never
// draws anything itself.
type Renderer interface {
	RenderPage(book *paginate.Book, loc reading.Locator)
	RenderError(msg string)
}

// Options collects the pagination and resize tuning knobs.
type Options struct {
	PagesPerChapter int
	TitleScanPages  int
	TitleMaxLen     int
	WordsPerMinute  int
	FillThreshold   float64
	MinHeightDelta  int           // viewport height deltas below this are noise
	ResizeDebounce  time.Duration // quiet period before repaginating
	SettleDelay     time.Duration // resize events ignored this long after a repagination
}

// Orchestrator wires the pagination engine, the reading-state coordinator,
// the navigation controller and the renderer together. It owns the current
// Book reference; everyone else receives it through render calls and must
// not cache it across rebuilds.
type Orchestrator struct {
	blocks   []*content.Block
	measurer paginate.Measurer
	coord    *reading.Coordinator
	renderer Renderer
	chrome   Chrome
	ctrl     *Controller
	clock    reading.Clock
	log      *zap.Logger
	opts     Options

	bookTitle string
	linkText  func() string

	book          *paginate.Book
	width, height int

	// resize handling
	resize             *reading.Debouncer
	pendingW, pendingH int
	repaginating       bool // reentrancy guard
	settleUntil        time.Time
}

func NewOrchestrator(
	blocks []*content.Block,
	bookTitle string,
	measurer paginate.Measurer,
	coord *reading.Coordinator,
	renderer Renderer,
	bus *reading.Bus,
	clock reading.Clock,
	opts Options,
	log *zap.Logger,
) *Orchestrator {
	o := &Orchestrator{
		blocks:    blocks,
		bookTitle: bookTitle,
		measurer:  measurer,
		coord:     coord,
		renderer:  renderer,
		clock:     clock,
		log:       log,
		opts:      opts,
	}
	o.ctrl = NewController(o.apply, bus, log)
	o.resize = reading.NewDebouncer(clock, opts.ResizeDebounce, o.commitResize)
	bus.Subscribe(func(e reading.Event) {
		if _, ok := e.(reading.BusyChanged); ok {
			o.pushChrome()
		}
	})
	return o
}

// SetRenderer attaches the drawing collaborator. Must be called before
// Load; separate from construction because the renderer usually needs the
// orchestrator first.
func (o *Orchestrator) SetRenderer(r Renderer) {
	o.renderer = r
}

// SetChrome attaches the UI chrome; it receives a fresh Context after every
// state change.
func (o *Orchestrator) SetChrome(ch Chrome) {
	o.chrome = ch
}

func (o *Orchestrator) pushChrome() {
	if o.chrome != nil {
		o.chrome.Render(o.Context())
	}
}

// Controller exposes the navigation controller for the UI chrome.
func (o *Orchestrator) Controller() *Controller {
	return o.ctrl
}

// Book returns the current paginated structure. The reference is replaced
// wholesale on every rebuild.
func (o *Orchestrator) Book() *paginate.Book {
	return o.book
}

// SetLinkSource lets the orchestrator include the current shareable address
// in navigation contexts.
func (o *Orchestrator) SetLinkSource(fn func() string) {
	o.linkText = fn
}

// Load paginates the content for the initial viewport, resolves the initial
// position and renders it.
func (o *Orchestrator) Load(width, height int) error {
	o.width, o.height = width, height
	o.rebuild()
	if o.book == nil || o.book.PageCount == 0 {
		o.renderer.RenderError("book has no paginated content")
		return fmt.Errorf("pagination produced no pages")
	}
	o.coord.DetermineInitialState()
	loc := o.coord.ValidateState(o.book)
	o.renderer.RenderPage(o.book, loc)
	o.pushChrome()
	return nil
}

// Context assembles the transient navigation context for the current render.
func (o *Orchestrator) Context() Context {
	loc := o.coord.CurrentState()
	info := o.book.NavigationInfo(loc.Chapter, loc.Page)
	ctx := Context{
		Loc:         loc,
		GlobalIndex: info.GlobalIndex,
		PageCount:   info.PageCount,
		Percent:     info.Percent,
		HasPrev:     info.HasPrev,
		HasNext:     info.HasNext,
		Busy:        o.ctrl.Busy(),
		BookTitle:   o.bookTitle,
	}
	if o.book != nil && loc.Chapter < len(o.book.Chapters) {
		ctx.ChapterTitle = o.book.Chapters[loc.Chapter].Title
	}
	if o.linkText != nil {
		ctx.Link = o.linkText()
	}
	return ctx
}

// Resize feeds a viewport-size change through the stability filter. Changes
// are debounced; sub-threshold height jitter, events during a repagination
// and events inside the settle window are rejected outright, not queued.
func (o *Orchestrator) Resize(width, height int) {
	if o.repaginating {
		o.log.Debug("Resize during repagination rejected")
		return
	}
	if o.clock.Now().Before(o.settleUntil) {
		o.log.Debug("Resize inside settle window rejected")
		return
	}
	dh := height - o.height
	if dh < 0 {
		dh = -dh
	}
	if width == o.width && dh < o.opts.MinHeightDelta {
		return
	}
	o.pendingW, o.pendingH = width, height
	o.resize.Trigger()
}

// Shutdown flushes pending persistence. Call on visibility loss or exit.
func (o *Orchestrator) Shutdown() {
	o.resize.Cancel()
	o.coord.Flush()
}

// apply executes one validated navigation action. The busy lock is already
// held by the controller; releasing it here, success or failure, is the
// hard guarantee that keeps transitions serialized.
func (o *Orchestrator) apply(a common.NavAction) {
	defer o.ctrl.Release()

	if o.book == nil || o.book.PageCount == 0 {
		o.renderer.RenderError("no paginated content to navigate")
		return
	}
	cur := o.coord.CurrentState()
	gi := o.book.GlobalIndex(cur.Chapter, cur.Page)
	if gi < 0 {
		// stale locator - should have been validated after the last rebuild
		cur = reading.Clamp(cur, o.book)
		gi = o.book.GlobalIndex(cur.Chapter, cur.Page)
	}

	target := gi
	switch a {
	case common.NavActionPrev:
		target = gi - 1
	case common.NavActionNext:
		target = gi + 1
	case common.NavActionHome:
		target = 0
	case common.NavActionEnd:
		target = o.book.PageCount - 1
	}
	if target < 0 {
		target = 0
	}
	if target >= o.book.PageCount {
		target = o.book.PageCount - 1
	}
	if target == gi {
		return
	}

	chapter, page, ok := o.book.FindPageByGlobalIndex(target)
	if !ok {
		o.log.Warn("Navigation target not found, clamping", zap.Int("target", target))
		chapter, page = 0, 0
	}
	loc := reading.Locator{Chapter: chapter, Page: page}
	o.coord.UpdateState(loc, reading.UpdateOptions{})
	o.renderer.RenderPage(o.book, loc)
	o.pushChrome()
}

// commitResize performs the guarded repagination: capture an anchor for the
// visible page, rebuild, relocate the anchor in the new book and move the
// position there without a visual jump.
func (o *Orchestrator) commitResize() {
	if o.repaginating {
		return
	}
	o.repaginating = true
	defer func() {
		o.repaginating = false
		o.settleUntil = o.clock.Now().Add(o.opts.SettleDelay)
	}()

	cur := o.coord.CurrentState()
	var anchor paginate.Anchor
	if o.book != nil {
		anchor = paginate.AnchorFor(o.book.Page(cur.Chapter, cur.Page))
	}

	o.width, o.height = o.pendingW, o.pendingH
	o.rebuild()
	if o.book == nil || o.book.PageCount == 0 {
		o.renderer.RenderError("book has no paginated content at this viewport size")
		return
	}

	loc := reading.Clamp(cur, o.book)
	if chapter, page, ok := o.book.FindPageForAnchor(anchor); ok {
		loc = reading.Locator{Chapter: chapter, Page: page}
	} else if !anchor.IsZero() {
		o.log.Warn("Anchor block not found after repagination, clamping previous position", zap.String("block", anchor.BlockID))
	}
	o.coord.UpdateState(loc, reading.UpdateOptions{})
	o.renderer.RenderPage(o.book, loc)
	o.pushChrome()
}

func (o *Orchestrator) rebuild() {
	pager := paginate.NewPager(o.measurer, o.width, o.opts.WordsPerMinute, o.opts.FillThreshold, o.log)
	pages := pager.Paginate(o.blocks, o.height)
	o.book = paginate.BuildChapters(pages, paginate.BuildOptions{
		PagesPerChapter: o.opts.PagesPerChapter,
		TitleScanPages:  o.opts.TitleScanPages,
		TitleMaxLen:     o.opts.TitleMaxLen,
	})
	o.log.Debug("Book paginated",
		zap.Int("width", o.width),
		zap.Int("height", o.height),
		zap.Int("pages", o.book.PageCount),
		zap.Int("chapters", len(o.book.Chapters)))
}
