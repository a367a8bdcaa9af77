// Package ui is the terminal reader: a bubbletea program that implements
// the renderer and chrome collaborator contracts. It draws pages and status
// chrome and forwards key presses as navigation actions - pagination and
// position logic stay in the core packages.
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"leaf/common"
	"leaf/nav"
	"leaf/paginate"
	"leaf/reading"
)

const (
	hPadding   = 2 // columns of padding on each side of the page
	chromeRows = 3 // status bar, key hints, separator
)

// callbackMsg routes a deferred function back onto the program's event
// loop, keeping every piece of reader state single-threaded.
type callbackMsg struct {
	fn func()
}

// Model is the bubbletea model for the reader. It implements nav.Renderer
// and nav.Chrome; it owns no pagination or position state of its own.
type Model struct {
	orch *nav.Orchestrator
	ctrl *nav.Controller
	log  *zap.Logger

	width, height int
	ready         bool
	quitting      bool

	page   string      // rendered page content
	errMsg string      // explicit error state, shown instead of a page
	navCtx nav.Context // last context pushed by the controller side
}

func NewModel(orch *nav.Orchestrator, log *zap.Logger) *Model {
	return &Model{
		orch: orch,
		ctrl: orch.Controller(),
		log:  log,
	}
}

// RenderPage implements nav.Renderer.
func (m *Model) RenderPage(book *paginate.Book, loc reading.Locator) {
	pg := book.Page(loc.Chapter, loc.Page)
	if pg == nil {
		m.errMsg = "requested page does not exist"
		return
	}
	m.errMsg = ""
	m.page = m.renderBlocks(pg)
}

// RenderError implements nav.Renderer.
func (m *Model) RenderError(msg string) {
	m.errMsg = msg
}

// Render implements nav.Chrome: store the fresh context for the next View.
func (m *Model) Render(ctx nav.Context) {
	m.navCtx = ctx
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case callbackMsg:
		msg.fn()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cw, ch := m.contentSize()
		if !m.ready {
			m.ready = true
			if err := m.orch.Load(cw, ch); err != nil {
				m.log.Warn("Initial load failed", zap.Error(err))
			}
		} else {
			m.orch.Resize(cw, ch)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			m.orch.Shutdown()
			return m, tea.Quit
		case "left", "h", "pgup":
			m.ctrl.OnAction(common.NavActionPrev)
		case "right", "l", " ", "pgdown":
			m.ctrl.OnAction(common.NavActionNext)
		case "g", "home":
			m.ctrl.OnAction(common.NavActionHome)
		case "G", "end":
			m.ctrl.OnAction(common.NavActionEnd)
		}
	}
	return m, nil
}

func (m *Model) View() string {
	if !m.ready || m.quitting {
		return ""
	}
	if m.errMsg != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styleError.Render("⚠ "+m.errMsg))
	}

	content := m.page
	pad := strings.Repeat(" ", hPadding)
	var sb strings.Builder
	for _, line := range strings.Split(content, "\n") {
		sb.WriteString(pad)
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	body := sb.String()
	_, ch := m.contentSize()
	if gap := ch - strings.Count(body, "\n"); gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + m.statusBar()
}

func (m *Model) contentSize() (w, h int) {
	w = m.width - 2*hPadding
	if w < 10 {
		w = 10
	}
	h = m.height - chromeRows
	if h < 3 {
		h = 3
	}
	return w, h
}

// statusBar renders the chrome from the last pushed navigation context.
func (m *Model) statusBar() string {
	ctx := m.navCtx

	left := ctx.BookTitle
	if ctx.ChapterTitle != "" {
		left += " · " + ctx.ChapterTitle
	}
	right := fmt.Sprintf("page %d/%d · %.0f%%", ctx.GlobalIndex+1, ctx.PageCount, ctx.Percent)
	if ctx.Busy {
		right += " …"
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	style := styleStatus
	if ctx.Busy {
		style = styleStatusBusy
	}

	hints := m.keyHints(ctx)
	link := styleLink.Render(ctx.Link)
	return style.Width(m.width).Render(bar) + "\n" + hints + "  " + link
}

func (m *Model) keyHints(ctx nav.Context) string {
	hint := func(key, label string, enabled bool) string {
		s := key + " " + label
		if !enabled || ctx.Busy {
			return styleDisabledKey.Render(s)
		}
		return styleKeyHint.Render(s)
	}
	return strings.Join([]string{
		hint("←", "prev", ctx.HasPrev),
		hint("→", "next", ctx.HasNext),
		hint("g", "start", ctx.HasPrev),
		hint("G", "end", ctx.HasNext),
		styleKeyHint.Render("q quit"),
	}, "  ")
}

// renderBlocks draws a page's blocks with the same wrapping rules the
// measurer used, so drawn height never exceeds measured height.
func (m *Model) renderBlocks(pg *paginate.Page) string {
	cw, _ := m.contentSize()
	meas := paginate.NewTextMeasurer()

	var sb strings.Builder
	for _, b := range pg.Blocks {
		switch b.Kind {
		case common.BlockKindHeading:
			for _, line := range paginate.WrapText(b.Text, cw) {
				sb.WriteString(styleHeading.Render(line))
				sb.WriteByte('\n')
			}
			sb.WriteString("\n")
		case common.BlockKindQuote, common.BlockKindList, common.BlockKindFact:
			w := cw - meas.QuoteIndent
			if w < 1 {
				w = 1
			}
			indent := strings.Repeat(" ", meas.QuoteIndent/2)
			style := styleQuote
			if b.Kind == common.BlockKindList {
				style = styleList
			} else if b.Kind == common.BlockKindFact {
				style = styleFact
			}
			for _, line := range paginate.WrapText(b.Text, w) {
				sb.WriteString(indent)
				sb.WriteString(style.Render(line))
				sb.WriteByte('\n')
			}
		case common.BlockKindImage:
			sb.WriteString(styleImage.Render(fmt.Sprintf(" %s %dx%d ", b.Text, b.ImageWidth, b.ImageHeight)))
			sb.WriteByte('\n')
		default:
			for _, line := range paginate.WrapText(b.Text, cw) {
				sb.WriteString(line)
				sb.WriteByte('\n')
			}
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
