package appstate

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/regionshot/internal/editor"
)

// ProgramTitle is the default window title.
const ProgramTitle = "RegionShot"

// AppState drives an editor session in a shiny window.
type AppState struct {
	Session *editor.Session
	Title   string

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState for sess.
func New(sess *editor.Session, opts ...Option) *AppState {
	a := &AppState{Session: sess, Title: ProgramTitle}
	for _, o := range opts {
		o(a)
	}
	return a
}

// wakeEvent is sent to the window when deferred session work is due.
type wakeEvent struct{}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

func (a *AppState) Main(s screen.Screen) {
	sess := a.Session
	canvas := sess.Snapshot().Size()
	width, height := canvas.X, canvas.Y
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: a.Title})
	if err != nil {
		log.Printf("new window: %v", err)
		sess.Cancel()
		return
	}
	defer w.Release()
	defer a.notifyClose()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	defer close(paintCh)

	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	var wake *time.Timer
	defer func() {
		if wake != nil {
			wake.Stop()
		}
	}()
	schedule := func() {
		if wake != nil {
			wake.Stop()
			wake = nil
		}
		if at, ok := sess.NextWake(); ok {
			wake = time.AfterFunc(time.Until(at), func() { w.Send(wakeEvent{}) })
		}
	}

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPaint()
				sess.Cancel()
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil {
				if dropCount < frameDropThreshold {
					paintCancel()
					dropCount++
				}
			}
			paintMu.Unlock()
			st := paintState{frame: sess.Snapshot(), width: width, height: height}
			select {
			case paintCh <- st:
			default:
				<-paintCh
				paintCh <- st
			}
		case wakeEvent:
			if sess.Tick(time.Now()) {
				w.Send(paint.Event{})
			}
			schedule()
		case mouse.Event:
			e = toCanvas(e, image.Pt(width, height), canvas)
			if sess.HandleMouse(e) {
				w.Send(paint.Event{})
			}
			schedule()
		case key.Event:
			if sess.HandleKey(e) {
				w.Send(paint.Event{})
			}
			schedule()
		case error:
			log.Printf("window: %v", e)
		}
		if sess.Done() {
			stopPaint()
			return
		}
	}
}
