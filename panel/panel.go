// Package panel simulates the game board in a terminal: a text OLED, three
// lights and keyboard keys standing in for the buttons.
package panel

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/reflex/constant"
	"github.com/lixenwraith/reflex/peripheral"
)

var (
	frameStyle  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	oledStyle   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	legendStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	lightOff    = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)

	lightOn = [peripheral.LightCount]tcell.Style{
		peripheral.LightGreen: tcell.StyleDefault.Foreground(tcell.ColorGreen),
		peripheral.LightRed:   tcell.StyleDefault.Foreground(tcell.ColorRed),
		peripheral.LightBlue:  tcell.StyleDefault.Foreground(tcell.ColorBlue),
	}
)

const (
	glyphLightOn  = '●'
	glyphLightOff = '○'

	// lightsRow is the first row below the OLED frame
	lightsRow = constant.OLEDRows + 3
	legendRow = lightsRow + 2

	legend = "[a] green  [b] red  [space] yellow  [q] quit"
)

// Panel implements the Visual, Input and Display capabilities on a tcell screen.
// Terminals report no key release, so a key reads as pressed for hold after it is typed.
type Panel struct {
	mu     sync.Mutex
	screen tcell.Screen
	clock  peripheral.Clock
	hold   time.Duration

	lights    [peripheral.LightCount]bool
	lines     [constant.OLEDRows]string
	pressedAt [peripheral.ButtonCount]time.Time

	quit     chan struct{}
	quitOnce sync.Once
}

// New creates a panel on an initialized screen and draws the empty board
func New(screen tcell.Screen, clock peripheral.Clock, hold time.Duration) *Panel {
	p := &Panel{
		screen: screen,
		clock:  clock,
		hold:   hold,
		quit:   make(chan struct{}),
	}

	p.mu.Lock()
	p.draw()
	p.mu.Unlock()

	return p
}

// SetLight switches one light glyph
func (p *Panel) SetLight(light peripheral.Light, on bool) {
	if light < 0 || light >= peripheral.LightCount {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.lights[light] == on {
		return
	}
	p.lights[light] = on
	p.draw()
}

// Render replaces the OLED content with two lines, rows outside the panel are dropped
func (p *Panel) Render(line1 string, row1 int, line2 string, row2 int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lines = [constant.OLEDRows]string{}
	p.setLine(row1, line1)
	p.setLine(row2, line2)
	p.draw()
}

// Pressed reports whether button's key was typed within the hold duration
func (p *Panel) Pressed(button peripheral.Button) bool {
	if button < 0 || button >= peripheral.ButtonCount {
		return false
	}

	now := p.clock.Now()

	p.mu.Lock()
	defer p.mu.Unlock()

	at := p.pressedAt[button]
	return !at.IsZero() && now.Sub(at) < p.hold
}

// Quit is closed when the player asks to leave
func (p *Panel) Quit() <-chan struct{} {
	return p.quit
}

// Run pumps screen events until the screen is finalized or the player quits
func (p *Panel) Run() {
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return
		}
		if !p.HandleEvent(ev) {
			return
		}
	}
}

// HandleEvent applies one screen event, returns false once the player quits
func (p *Panel) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuitKey(ev) {
			p.quitOnce.Do(func() { close(p.quit) })
			return false
		}
		if button, ok := keyButton(ev); ok {
			now := p.clock.Now()
			p.mu.Lock()
			p.pressedAt[button] = now
			p.mu.Unlock()
		}

	case *tcell.EventResize:
		p.mu.Lock()
		p.screen.Sync()
		p.draw()
		p.mu.Unlock()
	}

	return true
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

func keyButton(ev *tcell.EventKey) (peripheral.Button, bool) {
	if ev.Key() == tcell.KeyEnter {
		return peripheral.ButtonJoystick, true
	}
	if ev.Key() != tcell.KeyRune {
		return 0, false
	}

	switch ev.Rune() {
	case 'a', 'A':
		return peripheral.ButtonA, true
	case 'b', 'B':
		return peripheral.ButtonB, true
	case ' ', 'j', 'J':
		return peripheral.ButtonJoystick, true
	}
	return 0, false
}

func (p *Panel) setLine(row int, text string) {
	if row < 0 || row >= constant.OLEDRows {
		return
	}
	p.lines[row] = text
}

// draw repaints the whole board, caller holds mu
func (p *Panel) draw() {
	p.screen.Clear()

	p.drawFrame(0, 0, constant.OLEDColumns+2, constant.OLEDRows+2)

	width := constant.OLEDColumns - constant.OLEDMarginX
	for row, text := range p.lines {
		x := 1 + constant.OLEDMarginX
		for i, r := range []rune(text) {
			if i >= width {
				break
			}
			p.screen.SetContent(x+i, row+1, r, nil, oledStyle)
		}
	}

	for l := peripheral.Light(0); l < peripheral.LightCount; l++ {
		glyph, style := glyphLightOff, lightOff
		if p.lights[l] {
			glyph, style = glyphLightOn, lightOn[l]
		}
		p.screen.SetContent(LightColumn(l), lightsRow, glyph, nil, style)
	}

	for i, r := range legend {
		p.screen.SetContent(i, legendRow, r, nil, legendStyle)
	}

	p.screen.Show()
}

func (p *Panel) drawFrame(x, y, w, h int) {
	for i := x + 1; i < x+w-1; i++ {
		p.screen.SetContent(i, y, '─', nil, frameStyle)
		p.screen.SetContent(i, y+h-1, '─', nil, frameStyle)
	}
	for j := y + 1; j < y+h-1; j++ {
		p.screen.SetContent(x, j, '│', nil, frameStyle)
		p.screen.SetContent(x+w-1, j, '│', nil, frameStyle)
	}
	p.screen.SetContent(x, y, '┌', nil, frameStyle)
	p.screen.SetContent(x+w-1, y, '┐', nil, frameStyle)
	p.screen.SetContent(x, y+h-1, '└', nil, frameStyle)
	p.screen.SetContent(x+w-1, y+h-1, '┘', nil, frameStyle)
}

// LightColumn returns the screen column of a light glyph
func LightColumn(l peripheral.Light) int {
	return 4 + int(l)*6
}

// LightsRow returns the screen row of the light glyphs
func LightsRow() int {
	return lightsRow
}
