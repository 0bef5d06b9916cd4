package cli

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/wordsphere/pkg/cloud"
	"github.com/matzehuels/wordsphere/pkg/scene"
)

var tuiWords = []cloud.WordItem{
	{Word: "sphere", Weight: 0.9},
	{Word: "layout", Weight: 0.5},
	{Word: "camera", Weight: 0.1},
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m CloudModel, msg tea.Msg) (CloudModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	cm, ok := next.(CloudModel)
	if !ok {
		t.Fatalf("Update returned %T, want CloudModel", next)
	}
	return cm, cmd
}

// fakeAnalyzer records calls and returns fixed words.
type fakeAnalyzer struct {
	words     []cloud.WordItem
	err       error
	calls     int
	refreshes []bool
}

func (f *fakeAnalyzer) analyze(ctx context.Context, refresh bool) ([]cloud.WordItem, error) {
	f.calls++
	f.refreshes = append(f.refreshes, refresh)
	return f.words, f.err
}

func TestCloudModelLoadsWords(t *testing.T) {
	m := NewCloudModel(CloudModelOptions{Words: tuiWords})

	if m.Scene.Len() != len(tuiWords) {
		t.Errorf("Scene.Len() = %d, want %d", m.Scene.Len(), len(tuiWords))
	}
	if m.SessionID == "" {
		t.Error("SessionID not set")
	}
	if m.Loading {
		t.Error("Loading = true with words supplied")
	}
}

func TestCloudModelAnalyzesOnStart(t *testing.T) {
	fa := &fakeAnalyzer{words: tuiWords}
	m := NewCloudModel(CloudModelOptions{URL: "https://example.com/a", Analyze: fa.analyze})

	if !m.Loading {
		t.Fatal("Loading = false, want true before the first analysis")
	}
	if !strings.Contains(m.View(), "Analyzing...") {
		t.Error("View() missing loading state")
	}

	msg := m.fetch(false)()
	m, _ = update(t, m, msg)
	if m.Loading {
		t.Error("Loading still true after analyzedMsg")
	}
	if m.Scene.Len() != len(tuiWords) {
		t.Errorf("Scene.Len() = %d, want %d", m.Scene.Len(), len(tuiWords))
	}
	if fa.calls != 1 || fa.refreshes[0] {
		t.Errorf("analyzer calls = %d refresh = %v, want one non-refresh call", fa.calls, fa.refreshes)
	}
}

func TestCloudModelReanalyze(t *testing.T) {
	fa := &fakeAnalyzer{words: tuiWords[:2]}
	m := NewCloudModel(CloudModelOptions{
		URL:     "https://example.com/a",
		Analyze: fa.analyze,
		Words:   tuiWords,
	})
	cam := m.Scene.Camera
	session := m.SessionID

	m, cmd := update(t, m, keyMsg("a"))
	if !m.Loading || cmd == nil {
		t.Fatal("a should start a refresh analysis")
	}
	m, _ = update(t, m, cmd())

	if fa.calls != 1 || !fa.refreshes[0] {
		t.Errorf("analyzer calls = %d refresh = %v, want one refresh call", fa.calls, fa.refreshes)
	}
	if m.Scene.Len() != 2 {
		t.Errorf("Scene.Len() = %d, want 2", m.Scene.Len())
	}
	if m.SessionID == session {
		t.Error("re-analysis should start a new session")
	}
	if m.Scene.Camera != cam {
		t.Error("re-analysis replaced the camera")
	}
}

func TestCloudModelReanalyzeWithoutURL(t *testing.T) {
	m := NewCloudModel(CloudModelOptions{Words: tuiWords})
	m, cmd := update(t, m, keyMsg("a"))
	if m.Loading || cmd != nil {
		t.Error("a without a URL should do nothing")
	}
}

func TestCloudModelAnalyzeError(t *testing.T) {
	fa := &fakeAnalyzer{err: errors.New("service unavailable")}
	m := NewCloudModel(CloudModelOptions{URL: "https://example.com/a", Analyze: fa.analyze, Words: tuiWords})

	_, cmd := update(t, m, keyMsg("a"))
	m, _ = update(t, m, cmd())

	if m.Err == nil {
		t.Fatal("Err not set")
	}
	if len(m.Words) != len(tuiWords) {
		t.Error("failed analysis should keep the previous words")
	}
	if !strings.Contains(m.View(), "service unavailable") {
		t.Error("View() should show the error")
	}
}

func TestCloudModelKeywordPanel(t *testing.T) {
	m := NewCloudModel(CloudModelOptions{Words: tuiWords})

	m, _ = update(t, m, keyMsg("k"))
	if !m.ShowPanel {
		t.Fatal("k should open the keyword panel")
	}
	view := m.View()
	for _, want := range []string{"sphere", "0.9000", "camera", "0.1000"} {
		if !strings.Contains(view, want) {
			t.Errorf("panel missing %q", want)
		}
	}

	m, cmd := update(t, m, keyMsg("esc"))
	if m.ShowPanel {
		t.Error("esc should close the panel")
	}
	if cmd != nil {
		t.Error("esc with the panel open should not quit")
	}
}

func TestCloudModelQuit(t *testing.T) {
	m := NewCloudModel(CloudModelOptions{Words: tuiWords})
	_, cmd := update(t, m, keyMsg("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestCloudModelFrameTicksScene(t *testing.T) {
	start := time.Unix(1000, 0)
	m := NewCloudModel(CloudModelOptions{Words: tuiWords, StartTime: start})
	azimuth := m.Scene.Camera.Azimuth
	spin := m.Scene.Primitives[0].RotationY

	m, cmd := update(t, m, frameMsg(start.Add(time.Second)))
	if cmd == nil {
		t.Error("frame should schedule the next frame")
	}
	if m.Scene.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", m.Scene.Frames())
	}
	if m.Scene.Primitives[0].RotationY == spin {
		t.Error("frame did not spin the words")
	}
	if m.Scene.Camera.Azimuth == azimuth {
		t.Error("frame did not auto-rotate the camera")
	}
}

func TestCloudModelMouseDrag(t *testing.T) {
	m := NewCloudModel(CloudModelOptions{Words: tuiWords})
	cam := m.Scene.Camera
	azimuth := cam.Azimuth

	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !cam.Dragging() {
		t.Fatal("press should begin a drag")
	}

	// Auto-rotation is paused mid-drag.
	m, _ = update(t, m, frameMsg(time.Now()))
	if cam.Azimuth != azimuth {
		t.Error("camera auto-rotated during a drag")
	}

	m, _ = update(t, m, tea.MouseMsg{X: 14, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if cam.Azimuth == azimuth {
		t.Error("motion did not orbit the camera")
	}

	update(t, m, tea.MouseMsg{X: 14, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if cam.Dragging() {
		t.Error("release should end the drag")
	}
}

func TestCloudModelZoomAndArrows(t *testing.T) {
	cam := scene.NewOrbitCamera()
	m := NewCloudModel(CloudModelOptions{Words: tuiWords, Scene: scene.New(scene.WithCamera(cam))})
	distance := cam.Distance

	m, _ = update(t, m, keyMsg("+"))
	if !(cam.Distance < distance) {
		t.Errorf("+ should zoom in: %v -> %v", distance, cam.Distance)
	}
	m, _ = update(t, m, keyMsg("-"))
	m, _ = update(t, m, keyMsg("-"))
	if !(cam.Distance > distance) {
		t.Errorf("- should zoom out: %v -> %v", distance, cam.Distance)
	}

	azimuth := cam.Azimuth
	update(t, m, keyMsg("left"))
	if cam.Azimuth == azimuth {
		t.Error("left arrow did not orbit")
	}
	if cam.Dragging() {
		t.Error("arrow key left a drag active")
	}
}

func TestCloudModelEmptyState(t *testing.T) {
	m := NewCloudModel(CloudModelOptions{})
	if !strings.Contains(m.View(), "No words loaded") {
		t.Error("View() missing empty-state hint")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", m.width, m.height)
	}
}
