package reading

import (
	"time"

	"go.uber.org/zap"

	"leaf/paginate"
	"leaf/progress"
)

// UpdateOptions tunes a single UpdateState call.
type UpdateOptions struct {
	SkipLink  bool // leave the shareable address alone
	SkipStore bool // do not schedule a durable write
	Immediate bool // write through instead of debouncing
}

// Coordinator owns the single canonical reading position and is its only
// mutation API. It arbitrates between three competing sources - the
// shareable link, the durable progress record and runtime updates - and
// keeps all three channels agreeing with the active position.
type Coordinator struct {
	bookID string
	title  string

	link  LinkChannel
	store progress.Store
	bus   *Bus
	clock Clock
	log   *zap.Logger

	cur           Locator
	lastPersisted *Locator
	writer        *Debouncer
}

func NewCoordinator(bookID, title string, link LinkChannel, store progress.Store, bus *Bus, clock Clock, writeDelay time.Duration, log *zap.Logger) *Coordinator {
	c := &Coordinator{
		bookID: bookID,
		title:  title,
		link:   link,
		store:  store,
		bus:    bus,
		clock:  clock,
		log:    log,
	}
	c.writer = NewDebouncer(clock, writeDelay, c.persist)
	return c
}

// DetermineInitialState resolves the session's starting position by strict
// priority: link locator (matching book, non-default), then stored progress
// record, then start of book. Whichever source wins, the other two channels
// are synchronized immediately so they never disagree with the active
// position.
func (c *Coordinator) DetermineInitialState() Locator {
	loc, source := c.resolveInitial()
	c.cur = loc
	c.log.Debug("Initial reading position resolved", zap.String("source", source), zap.Int("chapter", loc.Chapter), zap.Int("page", loc.Page))

	c.link.Set(EncodeLink(c.bookID, c.title, loc))
	c.persist()
	c.bus.Publish(LocatorChanged{Loc: loc})
	return loc
}

func (c *Coordinator) resolveInitial() (Locator, string) {
	if raw := c.link.Current(); raw != "" {
		l, err := ParseLink(raw)
		switch {
		case err != nil:
			c.log.Warn("Ignoring malformed shareable link", zap.String("link", raw), zap.Error(err))
		case l.BookID != c.bookID:
			c.log.Debug("Shareable link is for a different book, ignoring", zap.String("link", raw))
		case !l.Loc.IsZero():
			return l.Loc, "link"
		}
	}
	rec, err := c.store.Load(c.bookID)
	if err != nil {
		c.log.Warn("Unable to load progress record", zap.String("book", c.bookID), zap.Error(err))
	} else if rec.Valid() {
		return Locator{Chapter: rec.Chapter, Page: rec.Page}, "store"
	}
	return Locator{}, "default"
}

// CurrentState returns the canonical position.
func (c *Coordinator) CurrentState() Locator {
	return c.cur
}

// UpdateState validates and applies a new position. Unless suppressed, the
// shareable address is rewritten immediately and a durable write is
// scheduled behind the debouncer. Writes identical to the last persisted
// value are skipped.
func (c *Coordinator) UpdateState(loc Locator, opts UpdateOptions) {
	if !loc.Wellformed() {
		c.log.Warn("Rejecting malformed locator update", zap.Int("chapter", loc.Chapter), zap.Int("page", loc.Page))
		return
	}
	changed := loc != c.cur
	c.cur = loc
	if !opts.SkipLink {
		c.link.Set(EncodeLink(c.bookID, c.title, loc))
	}
	if !opts.SkipStore {
		if opts.Immediate {
			c.persist()
		} else {
			c.writer.Trigger()
		}
	}
	if changed {
		c.bus.Publish(LocatorChanged{Loc: loc})
	}
}

// ValidateState reconciles the raw position with a freshly built book,
// clamping both indices into range. Used after every rebuild - no component
// may carry a locator across rebuilds unvalidated.
func (c *Coordinator) ValidateState(book *paginate.Book) Locator {
	clamped := Clamp(c.cur, book)
	if clamped != c.cur {
		c.log.Warn("Reading position out of range after rebuild, clamping",
			zap.Int("chapter", c.cur.Chapter), zap.Int("page", c.cur.Page),
			zap.Int("clampedChapter", clamped.Chapter), zap.Int("clampedPage", clamped.Page))
		c.UpdateState(clamped, UpdateOptions{})
	}
	return clamped
}

// Flush writes any pending position eagerly. Call when the session is about
// to end; losing the last position to an unexpired debounce timer is the
// one durability failure readers actually notice.
func (c *Coordinator) Flush() {
	c.writer.Flush()
}

func (c *Coordinator) persist() {
	if c.lastPersisted != nil && *c.lastPersisted == c.cur {
		return
	}
	rec := &progress.Record{
		Version:   progress.RecordVersion,
		BookID:    c.bookID,
		Chapter:   c.cur.Chapter,
		Page:      c.cur.Page,
		Timestamp: c.clock.Now().Unix(),
		Title:     c.title,
	}
	if err := c.store.Save(rec); err != nil {
		// best-effort durability: the session keeps working in memory
		c.log.Warn("Unable to persist reading position", zap.String("book", c.bookID), zap.Error(err))
		return
	}
	saved := c.cur
	c.lastPersisted = &saved
}
