// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

var errQuit = errors.New("quit")

var (
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleSticky = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x64, 0xff, 0xda)).Background(tcell.ColorNavy).Bold(true)
)

// runTerm shows the scenes in the terminal. Each cell
// displays two pixels using a half block.
func runTerm(ctx context.Context, a *app) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "term")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "term")
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.Clear()
	cols, rows := screen.Size()
	a.resizeSurface(cols, rows*2)

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	present := func(dt time.Duration) error {
	drain:
		for {
			select {
			case ev := <-events:
				if err := handleTermEvent(screen, a, ev); err != nil {
					return err
				}
			default:
				break drain
			}
		}
		a.mix = a.ctrl.Step(dt)
		drawTerm(screen, a)
		screen.Show()
		return nil
	}
	err = a.loop.Run(ctx, present)
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func handleTermEvent(screen tcell.Screen, a *app, ev tcell.Event) error {
	step := a.cfg.Viewer.ScrollStep
	switch ev := ev.(type) {
	case *tcell.EventResize:
		screen.Sync()
		cols, rows := ev.Size()
		a.resizeSurface(cols, rows*2)
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return errQuit
		case tcell.KeyDown:
			a.scrollBy(step)
		case tcell.KeyUp:
			a.scrollBy(-step)
		case tcell.KeyPgDn:
			a.scrollBy(a.page.ViewportHeight())
		case tcell.KeyPgUp:
			a.scrollBy(-a.page.ViewportHeight())
		case tcell.KeyHome:
			a.scrollTo(0)
		case tcell.KeyEnd:
			a.scrollTo(a.page.MaxScroll())
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return errQuit
			case 'j', ' ':
				a.scrollBy(step)
			case 'k':
				a.scrollBy(-step)
			case '1', '2', '3', '4', '5', '6', '7', '8', '9':
				a.jumpTo(int(ev.Rune() - '1'))
			}
		}
	case *tcell.EventMouse:
		switch b := ev.Buttons(); {
		case b&tcell.WheelDown != 0:
			a.scrollBy(step)
		case b&tcell.WheelUp != 0:
			a.scrollBy(-step)
		}
	}
	return nil
}

func drawTerm(screen tcell.Screen, a *app) {
	img := a.compose()
	b := img.Bounds()
	for y := 0; y+1 < b.Dy(); y += 2 {
		for x := range b.Dx() {
			top := img.RGBAAt(x, y)
			bot := img.RGBAAt(x, y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			screen.SetContent(x, y/2, '▀', nil, style)
		}
	}

	h := a.header
	if h.Hidden() {
		return
	}
	style := styleStatus
	if h.Sticky() {
		style = styleSticky
	}
	status := fmt.Sprintf(" scroll %.0f/%.0f  progress %.2f  q: quit ", a.page.ScrollY(), a.page.MaxScroll(), a.ctrl.Progress())
	for i, r := range []rune(status) {
		if i >= b.Dx() {
			break
		}
		screen.SetContent(i, 0, r, nil, style)
	}
	klog.V(4).Infof("term: drew %dx%d cells", b.Dx(), b.Dy()/2)
}
