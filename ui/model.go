// Package ui is the interactive invitation form: text fields, option
// selects, the color picker overlay, background upload and a live preview.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/drake/einvite/export"
	"github.com/drake/einvite/invite"
	"github.com/drake/einvite/render"
	"github.com/drake/einvite/ui/components/picker"
	"github.com/drake/einvite/ui/components/status"
	"github.com/drake/einvite/ui/style"
)

// Screen geometry, in cells.
const (
	formTop      = 2 // title, blank line
	formWidth    = 48
	labelWidth   = 10
	overlayLeft  = 4
	chooserWidth = 32
)

const keyHints = "tab move · ctrl+p color · ctrl+o upload · ctrl+s download · ctrl+t raster · ctrl+c quit"

// imageTypes are offered in the upload browser.
var imageTypes = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"}

// AssetLister lists the background names offered by the chooser.
type AssetLister interface {
	Names() []string
}

// Options configures the form.
type Options struct {
	State      invite.State
	Assets     AssetLister
	Rasterizer *render.Rasterizer
	Exporter   *export.Exporter
	Logger     *zap.Logger

	// Notice is shown as an error in the status bar at start.
	Notice string
	// StartDir is where the upload browser opens. Defaults to the working
	// directory.
	StartDir string
}

// Model is the Bubble Tea model for the form.
type Model struct {
	state invite.State

	// Widgets
	fields   textFields
	focus    control
	colors   ColorPicker
	chooser  *picker.Model[backgroundItem]
	choosing bool
	files    filepicker.Model
	browsing bool
	status   status.Bar
	styles   style.Styles

	assets     AssetLister
	rasterizer *render.Rasterizer
	exporter   *export.Exporter
	log        *zap.Logger
	startDir   string

	uploadSeq uint64

	showThumb   bool
	thumbGen    uint64
	thumbCancel context.CancelFunc
	thumb       [][]render.Cell

	width    int
	height   int
	mounted  bool
	quitting bool
}

// NewModel creates the form model.
func NewModel(opts Options) Model {
	styles := style.DefaultStyles()
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	startDir := opts.StartDir
	if startDir == "" {
		startDir, _ = os.Getwd()
	}

	files := filepicker.New()
	files.AllowedTypes = imageTypes
	files.AutoHeight = true
	files.CurrentDirectory = startDir

	m := Model{
		state:      opts.State,
		fields:     newTextFields(opts.State),
		colors:     NewColorPicker(styles),
		chooser:    picker.New[backgroundItem](picker.Config{MaxVisible: 6, Header: "Background: "}, styles),
		files:      files,
		status:     status.New(styles),
		styles:     styles,
		assets:     opts.Assets,
		rasterizer: opts.Rasterizer,
		exporter:   opts.Exporter,
		log:        log,
		startDir:   startDir,
	}
	m.chooser.SetWidth(chooserWidth)
	m.status.SetHints(keyHints)
	if opts.Notice != "" {
		m.status.SetText(opts.Notice, status.LevelError)
	}
	m.setFocus(ctrlNames)
	return m
}

// State returns the current form state.
func (m Model) State() invite.State {
	return m.state
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.mounted = true
		m.fields.setWidth(formWidth - labelWidth - 4)
		m.status.SetWidth(msg.Width)
		var cmd tea.Cmd
		m.files, cmd = m.files.Update(msg)
		thumb := m.refreshThumbnail()
		return m, tea.Batch(cmd, thumb)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case backgroundReadMsg:
		switch {
		case errors.Is(msg.err, invite.ErrNoFile):
		case msg.err != nil:
			m.status.SetText(msg.err.Error(), status.LevelError)
			m.log.Warn("read background", zap.String("path", msg.path), zap.Error(msg.err))
		default:
			if msg.seq != m.uploadSeq {
				m.log.Debug("upload finished after a newer one started",
					zap.Uint64("seq", msg.seq), zap.Uint64("latest", m.uploadSeq))
			}
			m.state.SetBackground(msg.bg)
			m.status.SetText("background: "+filepath.Base(msg.path), status.LevelInfo)
			thumb := m.refreshThumbnail()
			return m, thumb
		}
		return m, nil

	case exportDoneMsg:
		switch {
		case errors.Is(msg.err, export.ErrNoSurface):
			// Nothing mounted yet; the request is dropped.
		case msg.err != nil:
			m.status.SetText(msg.err.Error(), status.LevelError)
		default:
			m.status.SetText("saved "+msg.path, status.LevelSuccess)
		}
		return m, nil

	case thumbnailMsg:
		if msg.gen != m.thumbGen {
			return m, nil
		}
		if msg.err != nil {
			m.thumb = nil
			m.status.SetText(msg.err.Error(), status.LevelError)
			m.log.Warn("render thumbnail", zap.Error(msg.err))
			return m, nil
		}
		m.thumb = msg.cells
		return m, nil

	case clipboardReadMsg:
		if msg.err != nil {
			m.log.Debug("clipboard read", zap.Error(msg.err))
			return m, nil
		}
		c, err := colorful.Hex(strings.TrimSpace(msg.text))
		if err != nil {
			return m, nil
		}
		m.state.SetColor(c.Hex())
		m.colors.SetHex(c.Hex())
		thumb := m.refreshThumbnail()
		return m, thumb

	case clipboardWriteMsg:
		if msg.err != nil {
			m.status.SetText(msg.err.Error(), status.LevelError)
			return m, nil
		}
		m.status.SetText("copied "+msg.hex, status.LevelInfo)
		return m, nil
	}

	// Directory listings and cursor blinks belong to the widgets.
	var cmds []tea.Cmd
	if m.browsing {
		var cmd tea.Cmd
		m.files, cmd = m.files.Update(msg)
		cmds = append(cmds, cmd)
	}
	if ti := m.fields.get(m.focus); ti != nil {
		var cmd tea.Cmd
		*ti, cmd = ti.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.colors.Close()
		m.cancelThumbnail()
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case m.browsing:
		return m.handleBrowseKey(msg)
	case m.choosing:
		return m.handleChooserKey(msg)
	case m.colors.Visible():
		return m.handleColorKey(msg)
	}

	switch key {
	case "tab", "down":
		m.setFocus(m.focus.next())
		return m, nil
	case "shift+tab", "up":
		m.setFocus(m.focus.prev())
		return m, nil
	case "ctrl+p":
		return m.activate(ctrlColor)
	case "ctrl+o":
		return m.activate(ctrlUpload)
	case "ctrl+b":
		return m.activate(ctrlBundled)
	case "ctrl+r":
		return m.activate(ctrlReset)
	case "ctrl+s":
		return m.activate(ctrlDownload)
	case "ctrl+t":
		m.showThumb = !m.showThumb
		m.thumb = nil
		if !m.showThumb {
			m.cancelThumbnail()
		}
		thumb := m.refreshThumbnail()
		return m, thumb
	}

	c := m.focus
	switch {
	case c.isText():
		ti := m.fields.get(c)
		before := ti.Value()
		var cmd tea.Cmd
		*ti, cmd = ti.Update(msg)
		if ti.Value() == before {
			return m, cmd
		}
		apply(&m.state, c, ti.Value())
		thumb := m.refreshThumbnail()
		return m, tea.Batch(cmd, thumb)

	case c.isSelect():
		delta := 0
		switch key {
		case "left", "h":
			delta = -1
		case "right", "l", "enter", " ":
			delta = 1
		}
		if delta == 0 {
			return m, nil
		}
		m.cycleSelect(c, delta)
		thumb := m.refreshThumbnail()
		return m, thumb

	case c.isButton():
		if key == "enter" || key == " " {
			return m.activate(c)
		}
	}
	return m, nil
}

func (m Model) handleColorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+p":
		m.colors.Close()
		return m, nil
	case "esc":
		if !m.colors.Editing() {
			m.colors.Close()
			return m, nil
		}
	}

	var picked string
	var cmd tea.Cmd
	m.colors, picked, cmd = m.colors.Update(msg)
	if picked == "" {
		return m, cmd
	}
	m.state.SetColor(picked)
	thumb := m.refreshThumbnail()
	return m, tea.Batch(cmd, thumb)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.browsing = false
		return m, nil
	}

	var cmd tea.Cmd
	m.files, cmd = m.files.Update(msg)

	if ok, path := m.files.DidSelectFile(msg); ok {
		m.browsing = false
		m.uploadSeq++
		m.log.Debug("upload", zap.Uint64("seq", m.uploadSeq), zap.String("path", path))
		return m, tea.Batch(cmd, readBackgroundCmd(m.uploadSeq, path))
	}
	if ok, path := m.files.DidSelectDisabledFile(msg); ok {
		m.status.SetText(filepath.Base(path)+" is not an image", status.LevelError)
	}
	return m, cmd
}

func (m Model) handleChooserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.choosing = false

	case tea.KeyUp:
		m.chooser.SelectUp()

	case tea.KeyDown:
		m.chooser.SelectDown()

	case tea.KeyEnter, tea.KeyTab:
		m.choosing = false
		if item, ok := m.chooser.Selected(); ok {
			m.state.SetBackground(invite.AssetBackground(string(item)))
			m.status.SetText("background: "+string(item), status.LevelInfo)
			thumb := m.refreshThumbnail()
			return m, thumb
		}

	case tea.KeyRunes:
		m.chooser.Filter(m.chooser.Query() + string(msg.Runes))

	case tea.KeySpace:
		m.chooser.Filter(m.chooser.Query() + " ")

	case tea.KeyBackspace:
		if q := []rune(m.chooser.Query()); len(q) > 0 {
			m.chooser.Filter(string(q[:len(q)-1]))
		}
	}
	return m, nil
}

// handleMouse hit-tests pointer presses. While the color picker listens, a
// press outside it closes the picker and then acts on whatever is under it.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || tea.MouseEvent(msg).IsWheel() {
		return m, nil
	}

	if m.colors.Listening() {
		r := m.colorPickerRect()
		if r.Contains(msg.X, msg.Y) {
			i, ok := m.colors.SwatchAt(msg.X-r.X, msg.Y-r.Y)
			if !ok {
				return m, nil
			}
			m.state.SetColor(m.colors.Choose(i))
			thumb := m.refreshThumbnail()
			return m, thumb
		}
		m.colors.Close()
	}

	if m.browsing || m.choosing {
		return m, nil
	}

	c, ok := controlAt(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	m.setFocus(c)
	switch {
	case c.isButton():
		return m.activate(c)
	case c.isSelect():
		m.cycleSelect(c, 1)
		thumb := m.refreshThumbnail()
		return m, thumb
	}
	return m, nil
}

// activate runs a button.
func (m Model) activate(c control) (tea.Model, tea.Cmd) {
	m.setFocus(c)
	switch c {
	case ctrlColor:
		if m.colors.Visible() {
			m.colors.Close()
		} else {
			m.colors.Open(m.state.Color)
		}

	case ctrlUpload:
		m.browsing = true
		m.files.CurrentDirectory = m.startDir
		return m, m.files.Init()

	case ctrlBundled:
		if m.assets == nil {
			return m, nil
		}
		names := m.assets.Names()
		items := make([]backgroundItem, len(names))
		for i, n := range names {
			items[i] = backgroundItem(n)
		}
		m.chooser.SetItems(items)
		m.choosing = true

	case ctrlReset:
		m.state.ResetBackground()
		m.status.SetText("background removed", status.LevelInfo)
		thumb := m.refreshThumbnail()
		return m, thumb

	case ctrlDownload:
		if m.exporter == nil {
			return m, nil
		}
		return m, exportCmd(m.exporter, m.surface())
	}
	return m, nil
}

// surface is what Download captures. It stays nil until the first window
// size arrives and the preview has been laid out.
func (m Model) surface() export.Surface {
	if !m.mounted || m.rasterizer == nil {
		return nil
	}
	return m.rasterizer.Surface(render.Layout(m.state))
}

func (m *Model) setFocus(c control) {
	m.focus = c
	m.fields.focus(c)
}

func (m *Model) cycleSelect(c control, delta int) {
	switch c {
	case ctrlFont:
		m.state.SetFont(cycle(invite.Fonts, m.state.Font, delta))
	case ctrlAlign:
		m.state.SetAlignment(cycle(invite.Alignments, m.state.Align, delta))
	}
}

// refreshThumbnail starts a raster of the current state when the thumbnail
// is shown. The raster it supersedes is canceled and only the newest result
// is kept.
func (m *Model) refreshThumbnail() tea.Cmd {
	if !m.showThumb || !m.mounted || m.rasterizer == nil {
		return nil
	}
	m.cancelThumbnail()
	ctx, cancel := context.WithCancel(context.Background())
	m.thumbCancel = cancel
	m.thumbGen++
	cols, rows := thumbnailSize(m.previewWidth(), m.previewHeight()-1)
	return thumbnailCmd(ctx, m.rasterizer, render.Layout(m.state), m.thumbGen, cols, rows)
}

func (m *Model) cancelThumbnail() {
	if m.thumbCancel != nil {
		m.thumbCancel()
		m.thumbCancel = nil
	}
}

func (m Model) colorPickerRect() Rect {
	return Rect{
		X: overlayLeft,
		Y: formTop + int(ctrlColor) + 1,
		W: m.colors.Width(),
		H: m.colors.Height(),
	}
}

// controlAt maps a screen cell to the form row under it.
func controlAt(x, y int) (control, bool) {
	row := y - formTop
	if x < 0 || x >= formWidth || row < 0 || row >= int(numControls) {
		return 0, false
	}
	return control(row), true
}

func (m Model) previewWidth() int {
	return max(m.width-formWidth-1, 10)
}

func (m Model) previewHeight() int {
	return max(m.height-formTop-2, 3)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.mounted {
		return "Loading..."
	}

	var right string
	if m.browsing {
		right = m.styles.Label.Render("Select a background image (esc to cancel)") + "\n" + m.files.View()
	} else {
		right = m.viewPreview()
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewForm(), " ", right)

	screen := strings.Join([]string{
		m.styles.Title.Render("Customize Your Wedding Invitation"),
		"",
		clipLines(body, m.height-formTop-1),
	}, "\n")
	screen = padLines(screen, m.height-1)

	if m.colors.Visible() {
		r := m.colorPickerRect()
		screen = placeOverlay(r.X, r.Y, m.colors.View(), screen)
	}
	if m.choosing {
		screen = placeOverlay(overlayLeft, formTop+int(ctrlBundled)+1, m.chooser.View(), screen)
	}

	return screen + "\n" + m.status.View()
}

func (m Model) viewForm() string {
	lines := make([]string, numControls)
	for c := range numControls {
		lines[c] = ansi.Truncate(m.viewControl(c), formWidth, "…")
	}
	return m.styles.Form.Width(formWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) viewControl(c control) string {
	marker, label := "  ", m.styles.Label
	if c == m.focus {
		marker, label = "▸ ", m.styles.LabelFocused
	}
	head := marker + label.Render(fmt.Sprintf("%-*s", labelWidth, c.label())) + " "

	switch c {
	case ctrlFont:
		row := head + m.styles.Value.Render("‹ "+m.state.Font.Label()+" ›")
		if !m.state.Font.Known() {
			row += " " + m.styles.Muted.Render("(custom)")
		}
		return row
	case ctrlAlign:
		return head + m.styles.Value.Render("‹ "+m.state.Align.Label()+" ›")
	case ctrlColor:
		swatch := lipgloss.NewStyle().Foreground(textColor(m.state.Color)).Render("■")
		return head + swatch + " " + m.state.Color + " " + m.button(c, "Pick Color")
	case ctrlUpload:
		return head + m.button(c, "Upload…") + " " + m.styles.Muted.Render(m.state.Background.Label())
	case ctrlBundled:
		return head + m.button(c, "Bundled…")
	case ctrlReset:
		return head + m.button(c, "Reset")
	case ctrlDownload:
		return head + m.button(c, "Download")
	}
	return head + m.fields.get(c).View()
}

func (m Model) button(c control, text string) string {
	if c == m.focus {
		return m.styles.ButtonFocus.Render(text)
	}
	return m.styles.Button.Render(text)
}

func (m Model) viewPreview() string {
	p := render.Layout(m.state)
	w, h := m.previewWidth(), m.previewHeight()

	var body string
	if m.showThumb && m.thumb != nil {
		body = renderThumbnail(m.thumb)
	} else {
		body = renderText(p, w, h-1, m.styles)
	}
	return body + "\n" + m.styles.Muted.Render(ansi.Truncate(previewCaption(p), w, "…"))
}
