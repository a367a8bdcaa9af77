package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"leaf/config"
	"leaf/content"
	"leaf/nav"
	"leaf/paginate"
	"leaf/progress"
	"leaf/reading"
)

// loopClock is a reading.Clock whose timers fire on the bubbletea event
// loop instead of a background goroutine, keeping coordinator and
// orchestrator state single-threaded without locks.
type loopClock struct {
	send func(tea.Msg)
}

func (c *loopClock) Now() time.Time {
	return time.Now()
}

func (c *loopClock) AfterFunc(d time.Duration, fn func()) reading.Timer {
	return time.AfterFunc(d, func() {
		c.send(callbackMsg{fn: fn})
	})
}

// Run wires the whole reader together and blocks until the session ends:
// blocks -> pager -> chapters, coordinator over link+store, orchestrator,
// navigation controller and the terminal program.
func Run(ctx context.Context, cfg *config.Config, book *content.Content, store progress.Store, initialLink string, log *zap.Logger) error {
	bus := reading.NewBus()
	link := reading.NewMemoryLink(initialLink)
	clock := &loopClock{}

	coord := reading.NewCoordinator(
		book.BookID, book.Title, link, store, bus, clock,
		time.Duration(cfg.Storage.FlushDebounceMs)*time.Millisecond, log)

	orch := nav.NewOrchestrator(
		book.Blocks, book.Title,
		paginate.NewTextMeasurer(),
		coord, nil, bus, clock,
		nav.Options{
			PagesPerChapter: cfg.Reader.PagesPerChapter,
			TitleScanPages:  cfg.Reader.TitleScanPages,
			TitleMaxLen:     cfg.Reader.TitleMaxLength,
			WordsPerMinute:  cfg.Reader.WordsPerMinute,
			FillThreshold:   cfg.Reader.FillThreshold,
			MinHeightDelta:  cfg.Viewport.MinHeightDelta,
			ResizeDebounce:  time.Duration(cfg.Viewport.ResizeDebounceMs) * time.Millisecond,
			SettleDelay:     time.Duration(cfg.Viewport.SettleMs) * time.Millisecond,
		}, log)

	model := NewModel(orch, log)
	orch.SetRenderer(model)
	orch.SetChrome(model)
	orch.SetLinkSource(link.Current)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	clock.send = p.Send

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("reader terminated abnormally: %w", err)
	}
	// the quit path flushes through Shutdown, this covers cancellation
	orch.Shutdown()
	return nil
}
