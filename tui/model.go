package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-calc/calc"
	"go-calc/config"
	"go-calc/debug"
	"go-calc/gallery"
	"go-calc/keypad"
	"go-calc/midi"
	"go-calc/theme"
	"go-calc/widgets"
)

// Layout constants, in terminal cells
const (
	padX          = 2
	padY          = 1
	historyHeight = 6
	pressedFor    = 150 * time.Millisecond
)

// footerKeys is the always-visible hint line
var footerKeys = []widgets.KeyBinding{
	{Key: "^o", Desc: "add"},
	{Key: "^g", Desc: "next"},
	{Key: "^x", Desc: "del"},
	{Key: "?", Desc: "keys"},
}

// keyHelp is the full list shown when ? is pressed
var keyHelp = []widgets.KeySection{
	{Title: "Calculator", Keys: []widgets.KeyBinding{
		{Key: "0-9 . ,", Desc: "digits"},
		{Key: "+ - * x /", Desc: "operators"},
		{Key: "( )", Desc: "grouping"},
		{Key: "enter =", Desc: "evaluate"},
		{Key: "backspace", Desc: "delete last"},
		{Key: "esc ctrl+l", Desc: "clear"},
	}},
	{Title: "History", Keys: []widgets.KeyBinding{
		{Key: "up down", Desc: "browse"},
		{Key: "click", Desc: "recall entry"},
	}},
	{Title: "Wallpaper", Keys: []widgets.KeyBinding{
		{Key: "ctrl+o", Desc: "add image"},
		{Key: "ctrl+g", Desc: "next image"},
		{Key: "ctrl+x", Desc: "delete image"},
		{Key: "ctrl+n", Desc: "no image"},
	}},
	{Keys: []widgets.KeyBinding{
		{Key: "?", Desc: "toggle keys"},
		{Key: "ctrl+c", Desc: "quit"},
	}},
}

// layoutBounds holds the rows where clickable regions start
type layoutBounds struct {
	historyTop int
	keypadTop  int
}

// Options wires the model to its collaborators. Everything except Gallery and
// Cache may be nil.
type Options struct {
	Config    *config.Config
	Gallery   *gallery.Gallery
	Cache     *theme.Cache
	Persister *gallery.Persister
	DeviceMgr *midi.DeviceManager
	Fallback  theme.Palette // palette used when no wallpaper is selected
}

type Model struct {
	State     calc.State
	Theme     *theme.Theme
	Gallery   *gallery.Gallery
	Cache     *theme.Cache
	Persister *gallery.Persister
	DeviceMgr *midi.DeviceManager

	fallback   theme.Palette
	showClock  bool
	now        time.Time
	histSel    int // -1 when not browsing history
	pressed    string
	prompting  bool
	showHelp   bool
	prompt     string
	notice     string
	quitting   bool
	controller midi.Controller // current Launchpad (may be nil)
	lastPad    *midi.PadEvent
	pending    string // image id whose palette is being extracted
}

type tickMsg time.Time

type releaseMsg struct{ label string }

// paletteMsg carries an extraction result for image ID
type paletteMsg struct {
	ID      string
	Palette theme.Palette
	Err     error
}

type DeviceEventMsg midi.DeviceEvent

type PadMsg struct {
	ControllerID string
	Pad          midi.PadEvent
}

type padsClosedMsg struct{ id string }

func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	fallback := opts.Fallback
	if fallback == (theme.Palette{}) {
		fallback = theme.DefaultPalette()
	}
	return Model{
		State:     calc.NewState(cfg.UI.MaxHistory),
		Theme:     theme.New(fallback),
		Gallery:   opts.Gallery,
		Cache:     opts.Cache,
		Persister: opts.Persister,
		DeviceMgr: opts.DeviceMgr,
		fallback:  fallback,
		showClock: cfg.UI.Clock,
		now:       time.Now(),
		histSel:   -1,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func release(label string) tea.Cmd {
	return tea.Tick(pressedFor, func(time.Time) tea.Msg {
		return releaseMsg{label: label}
	})
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func ListenForPads(c midi.Controller) tea.Cmd {
	return func() tea.Msg {
		pad, ok := <-c.PadEvents()
		if !ok {
			return padsClosedMsg{id: c.ID()}
		}
		return PadMsg{ControllerID: c.ID(), Pad: pad}
	}
}

// extractPalette runs off the UI loop; the cache collapses repeat requests
// for the same image into one extraction.
func extractPalette(cache *theme.Cache, img gallery.Image) tea.Cmd {
	return func() tea.Msg {
		data, err := img.Bytes()
		if err != nil {
			return paletteMsg{ID: img.ID, Err: fmt.Errorf("%w: %v", theme.ErrDecode, err)}
		}
		p, err := cache.Get(context.Background(), img.ID, data)
		return paletteMsg{ID: img.ID, Palette: p, Err: err}
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick(), m.initialPalette()}
	if m.DeviceMgr != nil {
		cmds = append(cmds, ListenForDevices(m.DeviceMgr))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.updateKey(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.click(msg.X, msg.Y)

	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()

	case releaseMsg:
		if m.pressed == msg.label {
			m.pressed = ""
		}

	case paletteMsg:
		return m.applyPalette(msg), nil

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		var cmd tea.Cmd
		switch event.Type {
		case midi.DeviceConnected:
			if m.controller == nil {
				m.controller = event.Controller
				m.lastPad = nil
				m.paintPads()
				cmd = ListenForPads(event.Controller)
			}
		case midi.DeviceDisconnected:
			if m.controller != nil && m.controller.ID() == event.ID {
				m.controller = nil
				m.lastPad = nil
				// another pad plugged in meanwhile takes over
				if next := m.launchpad(); next != nil && next.ID() != event.ID {
					debug.Log("midi", "switching to %s", next.ID())
					m.controller = next
					m.paintPads()
					cmd = ListenForPads(next)
				}
			}
		}
		return m, tea.Batch(cmd, ListenForDevices(m.DeviceMgr))

	case PadMsg:
		if m.controller == nil || m.controller.ID() != msg.ControllerID {
			return m, nil
		}
		var cmd tea.Cmd
		if key, ok := keypad.FromPad(msg.Pad.Row, msg.Pad.Col); ok {
			m = m.dispatch(keypad.Action(key))
			m.pressed = key.Label
			cmd = release(key.Label)
			if err := m.controller.SetLEDBatch(midi.PressUpdates(m.Theme, m.lastPad, msg.Pad.Row, msg.Pad.Col)); err != nil {
				debug.Log("midi", "led update: %v", err)
			}
			pad := msg.Pad
			m.lastPad = &pad
		}
		return m, tea.Batch(cmd, ListenForPads(m.controller))

	case padsClosedMsg:
		debug.Log("midi", "%s: pad stream closed", msg.id)
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c":
		m.quitting = true
		if m.Persister != nil {
			m.Persister.Close()
			debug.Log("store", "closed after %d writes", m.Persister.Saves())
			if err := m.Persister.Err(); err != nil {
				debug.Log("store", "last write failed: %v", err)
			}
		}
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "ctrl+o":
		m.prompting = true
		m.prompt = ""
		m.notice = ""
		return m, nil

	case "ctrl+g":
		if m.Gallery != nil {
			m.Gallery.Next()
		}
		cmd := m.selectionChanged()
		return m, cmd

	case "ctrl+x":
		if m.Gallery != nil {
			if img, ok := m.Gallery.Selected(); ok {
				m.Gallery.Delete(img.ID)
				if m.Cache != nil {
					m.Cache.Forget(img.ID)
					debug.Log("palette", "%d palettes cached", m.Cache.Len())
				}
				debug.Log("gallery", "deleted %s", img.ID)
			}
		}
		cmd := m.selectionChanged()
		return m, cmd

	case "ctrl+n":
		if m.Gallery != nil {
			m.Gallery.Select("")
		}
		cmd := m.selectionChanged()
		return m, cmd

	case "up":
		if len(m.State.History) == 0 {
			return m, nil
		}
		if m.histSel < 0 {
			m.histSel = len(m.State.History) - 1
		} else if m.histSel > 0 {
			m.histSel--
		}
		m.State = calc.Reduce(m.State, calc.SelectHistory(m.histSel))
		return m, nil

	case "down":
		if m.histSel < 0 {
			return m, nil
		}
		if m.histSel+1 >= len(m.State.History) {
			m.histSel = -1
			return m, nil
		}
		m.histSel++
		m.State = calc.Reduce(m.State, calc.SelectHistory(m.histSel))
		return m, nil
	}

	if action, ok := keypad.FromKeyMsg(key); ok {
		m = m.dispatch(action)
		if label := pressedLabel(action); label != "" {
			m.pressed = label
			return m, release(label)
		}
		return m, nil
	}

	// typed or pasted text
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 {
		m = m.dispatch(calc.Literal(m.State.Expr + string(msg.Runes)))
	}
	return m, nil
}

// pressedLabel finds the keypad key a keyboard action corresponds to
func pressedLabel(a calc.Action) string {
	for _, k := range keypad.Keys() {
		if keypad.Action(k) == a {
			return k.Label
		}
		if a.Kind == calc.ActionAppend && keypad.Action(k).Kind == calc.ActionAppend && calc.ToGlyph(a.Text) == k.Label {
			return k.Label
		}
	}
	return ""
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.prompting = false
		return m.updateKey(msg)

	case tea.KeyEsc:
		m.prompting = false
		m.prompt = ""
		return m, nil

	case tea.KeyEnter:
		m.prompting = false
		path := strings.TrimSpace(m.prompt)
		m.prompt = ""
		if path == "" {
			return m, nil
		}
		img, err := gallery.FromFile(path)
		if err != nil {
			debug.Log("gallery", "add %s: %v", path, err)
			m.notice = err.Error()
			return m, nil
		}
		if m.Gallery != nil {
			m.Gallery.Add(img)
			debug.Log("gallery", "added %s (%s)", img.ID, img.MimeType())
		}
		m.notice = ""
		cmd := m.selectionChanged()
		return m, cmd

	case tea.KeyBackspace:
		r := []rune(m.prompt)
		if len(r) > 0 {
			m.prompt = string(r[:len(r)-1])
		}

	case tea.KeyRunes, tea.KeySpace:
		m.prompt += string(msg.Runes)
	}
	return m, nil
}

// dispatch runs an action through the reducer
func (m Model) dispatch(a calc.Action) Model {
	m.State = calc.Reduce(m.State, a)
	if a.Kind != calc.ActionSelectHistory {
		m.histSel = -1
	}

	var evalErr *calc.EvalError
	switch {
	case errors.As(m.State.Err, &evalErr):
		debug.Log("calc", "%s: %v", a.Kind, evalErr)
	case a.Kind == calc.ActionCalculate:
		debug.Log("calc", "= %s", m.State.Result)
	}
	return m
}

// initialPalette starts extraction for the wallpaper selected at startup.
// NewModel already themes with the fallback, so there is nothing to apply
// when no image is selected.
func (m Model) initialPalette() tea.Cmd {
	if m.Gallery == nil || m.Cache == nil {
		return nil
	}
	img, ok := m.Gallery.Selected()
	if !ok {
		return nil
	}
	return extractPalette(m.Cache, img)
}

// selectionChanged re-themes for the current selection. A selected image
// schedules exactly one extraction; otherwise the fallback applies at once.
func (m *Model) selectionChanged() tea.Cmd {
	if m.Gallery == nil {
		return nil
	}
	img, ok := m.Gallery.Selected()
	if !ok {
		m.pending = ""
		m.setPalette(m.fallback)
		return nil
	}
	if m.Cache == nil || m.pending == img.ID {
		return nil
	}
	m.pending = img.ID
	return extractPalette(m.Cache, img)
}

func (m Model) applyPalette(msg paletteMsg) Model {
	img, ok := m.Gallery.Selected()
	if !ok || img.ID != msg.ID {
		debug.Log("palette", "discarding stale palette for %s", msg.ID)
		return m
	}
	m.pending = ""
	if msg.Err != nil {
		debug.Log("palette", "using fallback palette for %s: %v", msg.ID, msg.Err)
		m.setPalette(m.fallback)
		return m
	}
	m.setPalette(msg.Palette)
	return m
}

func (m *Model) setPalette(p theme.Palette) {
	if m.Theme != nil && m.Theme.Palette == p {
		return
	}
	m.Theme = theme.New(p)
	m.paintPads()
}

func (m Model) launchpad() midi.Controller {
	if m.DeviceMgr == nil {
		return nil
	}
	return m.DeviceMgr.GetLaunchpad()
}

func (m *Model) paintPads() {
	if m.controller == nil {
		return
	}
	if err := midi.PaintKeypad(m.controller, m.Theme); err != nil {
		debug.Log("midi", "paint keypad: %v", err)
	}
}

func (m Model) layout() layoutBounds {
	y := padY
	if m.showClock {
		y++
	}
	b := layoutBounds{historyTop: y}
	y += historyHeight
	y += 3 // divider, input, status
	y++    // spacer
	b.keypadTop = y
	return b
}

func (m Model) click(x, y int) (tea.Model, tea.Cmd) {
	b := m.layout()
	x -= padX

	if y >= b.historyTop && y < b.historyTop+historyHeight {
		if i, ok := widgets.HistoryHitTest(y-b.historyTop, len(m.State.History), historyHeight, m.histSel); ok {
			m = m.dispatch(calc.SelectHistory(i))
			m.histSel = i
		}
		return m, nil
	}

	if key, ok := widgets.KeypadHitTest(x, y-b.keypadTop); ok {
		m = m.dispatch(keypad.Action(key))
		m.pressed = key.Label
		return m, release(key.Label)
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	th := m.Theme
	width := widgets.KeypadWidth()

	dimStyle := lipgloss.NewStyle().Foreground(th.Muted())
	noticeStyle := lipgloss.NewStyle().Foreground(th.Warning())

	var rows []string
	if m.showClock {
		rows = append(rows, widgets.RenderClock(th, m.now, width))
	}
	rows = append(rows,
		widgets.RenderHistory(th, m.State.History, m.histSel, historyHeight, width),
		widgets.RenderDivider(th, width),
		widgets.RenderInput(th, m.State, width),
		widgets.RenderStatus(th, m.State, width),
		"",
		widgets.RenderKeypad(th, m.pressed),
		"",
		m.galleryLine(),
	)

	switch {
	case m.prompting:
		rows = append(rows, "image: "+m.prompt+string(th.Symbols.Cursor))
	case m.notice != "":
		rows = append(rows, noticeStyle.Render(m.notice))
	}

	status := ""
	if m.controller != nil {
		status += "  LP:X"
	}
	if debug.Enabled() {
		status += "  log"
	}
	rows = append(rows, dimStyle.Render(widgets.RenderShortHelp(footerKeys)+status))

	if m.showHelp {
		rows = append(rows,
			"",
			widgets.RenderKeyHelp(keyHelp),
			"",
			widgets.RenderPaletteLegend(th.Palette),
		)
	}

	frame := lipgloss.NewStyle().
		Background(th.BG()).
		Foreground(th.FG()).
		Padding(padY, padX)
	return frame.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) galleryLine() string {
	th := m.Theme
	name := "default"
	if !th.Palette.IsDefault() {
		name = "custom"
	}
	if m.Gallery == nil || m.Gallery.Len() == 0 {
		return widgets.RenderPalette(th.Palette) + " " + name
	}
	img, ok := m.Gallery.Selected()
	if !ok {
		return fmt.Sprintf("%s %s (%d images)", widgets.RenderPalette(th.Palette), name, m.Gallery.Len())
	}
	pos := 0
	for i, other := range m.Gallery.Images() {
		if other.ID == img.ID {
			pos = i + 1
		}
	}
	return fmt.Sprintf("%s %c %s %d/%d", widgets.RenderPalette(th.Palette), th.Symbols.Image, img.Label(), pos, m.Gallery.Len())
}
