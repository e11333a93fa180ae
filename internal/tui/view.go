package tui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/cellscribe/internal/awareness"
	"github.com/dshills/cellscribe/internal/live"
)

// View paints one shared text onto a terminal screen. It implements the
// broadcaster surface the typing replay publishes to, so cursor and
// selection state render in step with the edits.
type View struct {
	mu     sync.Mutex
	screen tcell.Screen
	text   *live.Text
	title  string

	cursor   int
	selStart int
	selEnd   int
	hasSel   bool
}

// NewView binds a view to an initialized screen. The view subscribes to the
// text and redraws on every change.
func NewView(screen tcell.Screen, text *live.Text, title string) *View {
	v := &View{screen: screen, text: text, title: title}
	text.Observe(func(live.Change) {
		v.Redraw()
	})
	v.Redraw()
	return v
}

// Open creates a view on a fresh terminal screen.
func Open(text *live.Text, title string) (*View, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	return NewView(screen, text, title), nil
}

// Cursor places a collapsed cursor at the given rune offset.
func (v *View) Cursor(at int) {
	v.mu.Lock()
	v.cursor = at
	v.hasSel = false
	v.mu.Unlock()
	v.Redraw()
}

// Selection highlights the range from head to anchor.
func (v *View) Selection(head, anchor int) {
	v.mu.Lock()
	v.cursor = head
	v.selStart, v.selEnd = head, anchor
	if v.selStart > v.selEnd {
		v.selStart, v.selEnd = v.selEnd, v.selStart
	}
	v.hasSel = v.selStart != v.selEnd
	v.mu.Unlock()
	v.Redraw()
}

// SetLocalStateField renders published cursor state, so a View can stand in
// wherever awareness updates are delivered. Fields other than the cursor
// field are ignored; a nil value clears the cursor.
func (v *View) SetLocalStateField(field string, value any) error {
	if field != "cursors" {
		return nil
	}
	descs, ok := value.([]awareness.CursorDescriptor)
	if !ok || len(descs) == 0 {
		v.mu.Lock()
		v.hasSel = false
		v.mu.Unlock()
		v.Redraw()
		return nil
	}
	d := descs[0]
	if d.Empty {
		v.Cursor(d.Head.Item)
	} else {
		v.Selection(d.Head.Item, d.Anchor.Item)
	}
	return nil
}

// Close shuts the screen down.
func (v *View) Close() {
	v.screen.Fini()
}

// Redraw repaints the whole view: a title row, then the text with the
// selection reversed and the terminal cursor at the broadcast offset.
func (v *View) Redraw() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.screen.Clear()
	width, height := v.screen.Size()
	if width == 0 || height == 0 {
		v.screen.Show()
		return
	}

	titleStyle := tcell.StyleDefault.Bold(true)
	for i, r := range []rune(v.title) {
		if i >= width {
			break
		}
		v.screen.SetContent(i, 0, r, nil, titleStyle)
	}

	selStyle := tcell.StyleDefault.Reverse(true)
	x, y := 0, 1
	for i, r := range []rune(v.text.String()) {
		if i == v.cursor && !v.hasSel {
			v.screen.ShowCursor(x, y)
		}
		if r == '\n' {
			x, y = 0, y+1
			if y >= height {
				break
			}
			continue
		}
		if x < width && y < height {
			style := tcell.StyleDefault
			if v.hasSel && i >= v.selStart && i < v.selEnd {
				style = selStyle
			}
			v.screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
	if v.cursor >= v.text.Len() && !v.hasSel {
		v.screen.ShowCursor(x, y)
	}
	if v.hasSel {
		v.screen.HideCursor()
	}

	v.screen.Show()
}
