package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/matzehuels/wordsphere/pkg/cloud"
	"github.com/matzehuels/wordsphere/pkg/render"
	"github.com/matzehuels/wordsphere/pkg/scene"
)

// Viewer styles
var (
	viewerBarStyle   = lipgloss.NewStyle().Foreground(colorGray)
	viewerHintStyle  = lipgloss.NewStyle().Foreground(colorDim)
	viewerErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	// statusLines is the number of rows below the cloud.
	statusLines = 2

	// dragCellX and dragCellY convert a pointer move of one cell into the
	// camera's drag units, roughly one cell in pixels.
	dragCellX = 8.0
	dragCellY = 16.0

	// keyOrbitStep is the drag distance of one arrow key press.
	keyOrbitStep = 24.0

	zoomIn  = 0.9
	zoomOut = 1 / zoomIn
)

// =============================================================================
// Messages
// =============================================================================

// frameMsg advances the animation. It carries the tick's wall time.
type frameMsg time.Time

// analyzedMsg delivers the result of an analysis request.
type analyzedMsg struct {
	words []cloud.WordItem
	err   error
}

// AnalyzeFunc fetches words for the viewer's URL. refresh bypasses caches.
type AnalyzeFunc func(ctx context.Context, refresh bool) ([]cloud.WordItem, error)

// =============================================================================
// CloudModel - Interactive animated word cloud
// =============================================================================

// CloudModelOptions configures NewCloudModel.
type CloudModelOptions struct {
	// URL is shown in the status bar. Re-analysis needs both URL and Analyze.
	URL     string
	Analyze AnalyzeFunc

	// Words is the initial word list; nil with an Analyze func starts a fetch.
	Words []cloud.WordItem

	Layout    cloud.Options
	Scene     *scene.Scene
	FPS       int
	Context   context.Context
	StartTime time.Time
}

// CloudModel is the bubbletea model for the animated word cloud.
type CloudModel struct {
	ctx     context.Context
	url     string
	analyze AnalyzeFunc
	layout  cloud.Options

	Scene     *scene.Scene
	Words     []cloud.WordItem
	SessionID string

	ShowPanel bool
	Loading   bool
	Err       error

	width, height int
	interval      time.Duration
	start         time.Time

	lastX, lastY int
}

// NewCloudModel creates a viewer. Without a scene a default one is used.
func NewCloudModel(opts CloudModelOptions) CloudModel {
	if opts.Scene == nil {
		opts.Scene = scene.New()
	}
	if opts.Layout == (cloud.Options{}) {
		opts.Layout = cloud.DefaultOptions()
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.StartTime.IsZero() {
		opts.StartTime = time.Now()
	}

	m := CloudModel{
		ctx:      opts.Context,
		url:      opts.URL,
		analyze:  opts.Analyze,
		layout:   opts.Layout,
		Scene:    opts.Scene,
		width:    80,
		height:   24,
		interval: time.Second / time.Duration(opts.FPS),
		start:    opts.StartTime,
	}
	if opts.Words != nil {
		m = m.load(opts.Words)
	} else if m.canAnalyze() {
		m.Loading = true
	}
	return m
}

func (m CloudModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick()}
	if m.Loading {
		cmds = append(cmds, m.fetch(false))
	}
	return tea.Batch(cmds...)
}

func (m CloudModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.Scene.Tick(time.Time(msg).Sub(m.start))
		return m, m.tick()

	case analyzedMsg:
		m.Loading = false
		m.Err = msg.err
		if msg.err == nil {
			m = m.load(msg.words)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

func (m CloudModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cam := m.Scene.Camera
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.ShowPanel {
			m.ShowPanel = false
			return m, nil
		}
		return m, tea.Quit
	case "k":
		m.ShowPanel = !m.ShowPanel
	case "a":
		if m.canAnalyze() && !m.Loading {
			m.Loading = true
			m.Err = nil
			return m, m.fetch(true)
		}
	case "+", "=":
		cam.Zoom(zoomIn)
	case "-", "_":
		cam.Zoom(zoomOut)
	case "left":
		orbit(cam, -keyOrbitStep, 0)
	case "right":
		orbit(cam, keyOrbitStep, 0)
	case "up":
		orbit(cam, 0, -keyOrbitStep)
	case "down":
		orbit(cam, 0, keyOrbitStep)
	}
	return m, nil
}

// handleMouse maps a left-button drag onto the orbit camera and the wheel onto
// zoom. The camera is a pointer, so m does not need to be returned.
func (m *CloudModel) handleMouse(msg tea.MouseMsg) {
	cam := m.Scene.Camera
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		cam.Zoom(zoomIn)
	case msg.Button == tea.MouseButtonWheelDown:
		cam.Zoom(zoomOut)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		cam.BeginDrag()
		m.lastX, m.lastY = msg.X, msg.Y
	case msg.Action == tea.MouseActionMotion && cam.Dragging():
		cam.Drag(float64(msg.X-m.lastX)*dragCellX, float64(msg.Y-m.lastY)*dragCellY)
		m.lastX, m.lastY = msg.X, msg.Y
	case msg.Action == tea.MouseActionRelease:
		cam.EndDrag()
	}
}

// orbit applies a one-shot drag, leaving auto-rotation as it was.
func orbit(cam *scene.OrbitCamera, dx, dy float64) {
	wasDragging := cam.Dragging()
	cam.BeginDrag()
	cam.Drag(dx, dy)
	if !wasDragging {
		cam.EndDrag()
	}
}

func (m CloudModel) View() string {
	var b strings.Builder

	b.WriteString(m.body())
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	return b.String()
}

// body renders the cloud area, with the keyword panel on the right when open.
func (m CloudModel) body() string {
	w, h := m.width, max(m.height-statusLines, 1)

	var panel string
	if m.ShowPanel {
		panel = m.panel(h)
		w = max(w-lipgloss.Width(panel), 1)
	}

	var content string
	switch {
	case m.Loading:
		content = lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, viewerHintStyle.Render("Analyzing..."))
	case len(m.Words) == 0:
		content = lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, viewerHintStyle.Render(m.emptyHint()))
	default:
		term := render.Terminal{Width: w, Height: h}
		content = term.Render(m.Scene.Frame(term.Viewport()))
	}

	if panel == "" {
		return content
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
}

// panel renders the keyword list, trimmed to fit h rows.
func (m CloudModel) panel(h int) string {
	if len(m.Words) == 0 {
		return lipgloss.NewStyle().Padding(0, 1).Render(viewerHintStyle.Render("No keywords"))
	}
	// Border and header take four rows, the overflow note one more.
	rows := max(h-5, 1)
	words := m.Words
	more := 0
	if len(words) > rows {
		more = len(words) - rows
		words = words[:rows]
	}
	out := wordTable(words, -1)
	if more > 0 {
		out += "\n" + viewerHintStyle.Render(fmt.Sprintf("  … %d more", more))
	}
	return out
}

func (m CloudModel) emptyHint() string {
	if m.canAnalyze() {
		return "No keywords yet. Press a to analyze " + m.url
	}
	return "No words loaded. Run: wordsphere view words.json or --url <article>"
}

func (m CloudModel) statusBar() string {
	parts := []string{StyleTitle.Render(appName)}
	if m.url != "" {
		parts = append(parts, viewerBarStyle.Render(m.url))
	}
	parts = append(parts, viewerBarStyle.Render(fmt.Sprintf("%d words", len(m.Words))))
	if m.SessionID != "" {
		parts = append(parts, viewerHintStyle.Render(m.SessionID[:8]))
	}
	if m.Err != nil {
		parts = append(parts, viewerErrorStyle.Render(m.Err.Error()))
	}
	line := strings.Join(parts, viewerHintStyle.Render(" · "))

	keys := "drag/arrows orbit  +/- zoom  k keywords  q quit"
	if m.canAnalyze() {
		keys = "drag/arrows orbit  +/- zoom  k keywords  a re-analyze  q quit"
	}
	return line + "\n" + viewerHintStyle.Render(keys)
}

// load lays out words and swaps them into the scene under a new session.
func (m CloudModel) load(words []cloud.WordItem) CloudModel {
	snap := cloud.NewSnapshot(words, m.layout)
	m.Scene.Load(snap.Words)
	m.Words = words
	m.SessionID = uuid.NewString()
	return m
}

func (m CloudModel) canAnalyze() bool {
	return m.analyze != nil && m.url != ""
}

func (m CloudModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m CloudModel) fetch(refresh bool) tea.Cmd {
	analyze, ctx := m.analyze, m.ctx
	return func() tea.Msg {
		words, err := analyze(ctx, refresh)
		return analyzedMsg{words: words, err: err}
	}
}
