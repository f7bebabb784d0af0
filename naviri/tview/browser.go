package tview

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/boolean-maybe/naviri/config"
	nav "github.com/boolean-maybe/naviri/naviri"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	pageMain = "main"
	pageHelp = "help"
)

// Options configures a Browser.
type Options struct {
	Settings config.Settings
	// Fetcher supplies documentation; normally a *nav.Cache.
	Fetcher nav.Fetcher
	// RCPath is shown on the help screen.
	RCPath string
}

// Browser is the whole terminal interface: tab bar, address field, document
// view, status line, search field and help screen.
//
// All fields are touched only from the tview event goroutine. Fetches run on
// their own goroutines and come back through QueueUpdateDraw.
type Browser struct {
	app    *tview.Application
	ctx    context.Context
	cancel context.CancelFunc

	keymap *nav.Keymap
	tabs   *nav.Tabs

	root     *tview.Pages
	tabBar   *TabBar
	address  *tview.InputField
	goButton *tview.Button
	doc      *DocView
	bottom   *tview.Flex
	status   *tview.TextView
	search   *tview.InputField
	help     *tview.TextView

	// searchWord is shared by all tabs, like a browser's find bar.
	searchWord string
}

// NewBrowser builds the interface. The key tables of the settings are
// resolved here; an invalid table is an error.
func NewBrowser(ctx context.Context, app *tview.Application, opts Options) (*Browser, error) {
	keymap, err := nav.NewKeymap(opts.Settings.Keys, NormalizeKey)
	if err != nil {
		return nil, fmt.Errorf("key bindings: %w", err)
	}
	theme := NewTheme(opts.Settings.Tags)

	ctx, cancel := context.WithCancel(ctx)
	b := &Browser{
		app:    app,
		ctx:    ctx,
		cancel: cancel,
		keymap: keymap,
	}
	b.tabs = nav.NewTabs(func() *nav.Session {
		return nav.NewSession(opts.Fetcher, nav.SessionOptions{
			Context:    ctx,
			HistoryMax: opts.Settings.HistorySize,
		})
	})

	b.tabBar = NewTabBar().SetHandlers(
		func(i int) { b.switchTab(i) },
		func(i int) { b.closeTab(i) },
		func() { b.run(nav.CommandNewTab) },
	)

	b.address = tview.NewInputField().SetLabel("Topic: ")
	b.address.SetFieldBackgroundColor(tcell.ColorDefault)
	b.address.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if c, ok := b.keymap.Lookup(nav.WidgetAddress, KeyName(event)); ok {
			b.run(c)
			return nil
		}
		return event
	})
	b.goButton = tview.NewButton("Go").SetSelectedFunc(func() { b.run(nav.CommandGo) })

	b.doc = NewDocView(theme).
		SetKeyHandler(func(name string) bool {
			c, ok := b.keymap.Lookup(nav.WidgetDocument, name)
			if ok {
				b.run(c)
			}
			return ok
		}).
		SetMouseHandler(b.click)
	b.doc.SetSession(b.tabs.Active())

	b.status = tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	b.search = tview.NewInputField().SetLabel("Search: ")
	b.search.SetChangedFunc(func(text string) {
		b.tabs.Active().HighlightWord(text)
	})
	b.search.SetDoneFunc(b.searchDone)

	b.bottom = tview.NewFlex().AddItem(b.status, 0, 1, false)

	addressRow := tview.NewFlex().
		AddItem(b.address, 0, 1, true).
		AddItem(b.goButton, 4, 0, false)

	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.tabBar, 1, 0, false).
		AddItem(addressRow, 1, 0, true).
		AddItem(b.doc, 0, 1, false).
		AddItem(b.bottom, 1, 0, false)

	b.help = tview.NewTextView().SetText(helpText(keymap, opts.RCPath))
	b.help.SetBorder(true).SetTitle(" Help ")
	b.help.SetDoneFunc(func(tcell.Key) {
		b.root.HidePage(pageHelp)
		b.app.SetFocus(b.doc)
	})

	b.root = tview.NewPages().
		AddPage(pageMain, main, true, true).
		AddPage(pageHelp, b.help, true, false)

	app.SetInputCapture(b.captureGlobal)
	b.refresh(true)
	return b, nil
}

// Run shows the interface until the user quits.
func (b *Browser) Run() error {
	defer b.cancel()
	return b.app.SetRoot(b.root, true).EnableMouse(true).SetFocus(b.address).Run()
}

// Open navigates to topic, in a new tab if newTab is set.
func (b *Browser) Open(topic string, newTab bool) {
	s, req := b.tabs.Open(topic, newTab)
	b.doc.SetSession(b.tabs.Active())
	b.load(s, req)
}

func (b *Browser) captureGlobal(event *tcell.EventKey) *tcell.EventKey {
	if b.app.GetFocus() == b.search {
		return event
	}
	if name, _ := b.root.GetFrontPage(); name == pageHelp {
		return event
	}
	if c, ok := b.keymap.Lookup(nav.WidgetGlobal, KeyName(event)); ok {
		b.run(c)
		return nil
	}
	return event
}

// load shows the loading state at once and fetches in the background.
func (b *Browser) load(s *nav.Session, req *nav.Request) {
	if req == nil {
		return
	}
	b.refresh(true)

	go func() {
		text, err := req.Run()
		b.app.QueueUpdateDraw(func() {
			if !s.Complete(req, text, err) {
				slog.Debug("Dropped stale result", "topic", req.Topic)
				return
			}
			if s != b.tabs.Active() {
				b.refresh(false)
				return
			}
			s.ScrollToCursor(b.doc.PageHeight())
			b.refresh(true)
			if b.app.GetFocus() != b.search {
				b.app.SetFocus(b.doc)
			}
		})
	}()
}

// click handles a mouse button on the document at offset.
func (b *Browser) click(button string, offset int) bool {
	c, ok := b.keymap.Lookup(nav.WidgetDocument, button)
	if !ok {
		return false
	}
	switch c {
	case nav.CommandFollow, nav.CommandFollowNewTab:
		b.tabs.Active().SetCursor(offset)
	}
	b.run(c)
	return true
}

// run executes a command against the active tab.
func (b *Browser) run(c nav.Command) {
	s := b.tabs.Active()
	page := b.doc.PageHeight()

	switch c {
	case nav.CommandGo:
		b.Open(b.address.GetText(), false)
	case nav.CommandFollow, nav.CommandFollowNewTab:
		if topic, ok := s.WordAtCursor(); ok {
			b.Open(topic, c == nav.CommandFollowNewTab)
		}
	case nav.CommandBack:
		b.load(s, s.Back())
	case nav.CommandForward:
		b.load(s, s.Forward())
	case nav.CommandReload:
		b.load(s, s.Reload())
	case nav.CommandSearch:
		b.showSearch()
	case nav.CommandSearchNext:
		if b.searchWord == "" {
			b.showSearch()
			return
		}
		s.SearchNext(b.searchWord)
		s.ScrollToCursor(page)
	case nav.CommandSearchPrev:
		if b.searchWord != "" {
			s.SearchPrev(b.searchWord)
			s.ScrollToCursor(page)
		}
	case nav.CommandNewTab:
		b.tabs.New()
		b.doc.SetSession(b.tabs.Active())
		b.app.SetFocus(b.address)
		b.refresh(true)
	case nav.CommandCloseTab:
		if b.tabs.CloseActive() {
			b.doc.SetSession(b.tabs.Active())
			b.refresh(true)
		}
	case nav.CommandNextTab:
		b.tabs.Cycle(1)
		b.switchTab(b.tabs.ActiveIndex())
	case nav.CommandPrevTab:
		b.tabs.Cycle(-1)
		b.switchTab(b.tabs.ActiveIndex())
	case nav.CommandFocusAddress:
		b.app.SetFocus(b.address)
	case nav.CommandFocusDocument:
		b.app.SetFocus(b.doc)
	case nav.CommandCursorLeft:
		s.MoveCursor(-1)
		s.ScrollToCursor(page)
	case nav.CommandCursorRight:
		s.MoveCursor(1)
		s.ScrollToCursor(page)
	case nav.CommandCursorUp:
		s.MoveCursorLines(-1)
		s.ScrollToCursor(page)
	case nav.CommandCursorDown:
		s.MoveCursorLines(1)
		s.ScrollToCursor(page)
	case nav.CommandPageUp:
		s.ScrollBy(-page, page)
		s.MoveCursorLines(-page)
		s.ScrollToCursor(page)
	case nav.CommandPageDown:
		s.ScrollBy(page, page)
		s.MoveCursorLines(page)
		s.ScrollToCursor(page)
	case nav.CommandTop:
		s.SetCursor(0)
		s.ScrollToCursor(page)
	case nav.CommandBottom:
		s.SetCursor(s.Document().Len())
		s.ScrollToCursor(page)
	case nav.CommandHelp:
		b.root.ShowPage(pageHelp)
		b.app.SetFocus(b.help)
	case nav.CommandQuit:
		b.cancel()
		b.app.Stop()
		return
	}
	b.refresh(false)
}

func (b *Browser) switchTab(i int) {
	b.tabs.SetActive(i)
	b.doc.SetSession(b.tabs.Active())
	b.refresh(true)
}

func (b *Browser) closeTab(i int) {
	if b.tabs.Close(i) {
		b.doc.SetSession(b.tabs.Active())
		b.refresh(true)
	}
}

func (b *Browser) showSearch() {
	b.tabs.Active().SetStatus("Type the string to search")
	b.search.SetText("")
	b.bottom.Clear().AddItem(b.search, 0, 1, true)
	b.app.SetFocus(b.search)
}

func (b *Browser) searchDone(key tcell.Key) {
	s := b.tabs.Active()
	s.SetStatus("")
	if key == tcell.KeyEnter {
		b.searchWord = b.search.GetText()
		s.SearchNext(b.searchWord)
		s.ScrollToCursor(b.doc.PageHeight())
	}
	b.bottom.Clear().AddItem(b.status, 0, 1, false)
	b.app.SetFocus(b.doc)
	b.refresh(false)
}

// refresh brings the tab bar and status line up to date with the active
// tab, and the address field too when syncAddress is set.
func (b *Browser) refresh(syncAddress bool) {
	titles := make([]string, b.tabs.Len())
	for i := range titles {
		titles[i] = b.tabs.Title(i)
	}
	b.tabBar.SetTabs(titles, b.tabs.ActiveIndex())

	s := b.tabs.Active()
	if syncAddress {
		b.address.SetText(s.Topic())
	}
	b.status.SetText(statusLine(s))
}

// statusLine renders the session status with back/forward indicators.
func statusLine(s *nav.Session) string {
	arrow := func(enabled bool, glyph string) string {
		if enabled {
			return "[white]" + glyph + "[-]"
		}
		return "[gray]" + glyph + "[-]"
	}
	return fmt.Sprintf("%s%s %s", arrow(s.CanGoBack(), "◀"), arrow(s.CanGoForward(), "▶"), tview.Escape(s.Status()))
}
