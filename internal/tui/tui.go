// Package tui provides a Bubble Tea terminal user interface for tunesort.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/tunesort/internal/config"
	"github.com/handiism/tunesort/internal/organize"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	playlistStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogs is the number of log lines kept on screen.
const maxLogs = 10

var errCancelled = errors.New("cancelled by user")

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateScanning
	StateWriting
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   organize.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	playlists []string
	songs     int
	err       error

	// Run context
	ctx    context.Context
	cancel context.CancelFunc

	// Manager reference
	manager *organize.Manager
	events  chan organize.ProgressEvent

	// Progress
	scanned, scanTotal int
	written, total     int32

	// Options
	rename  bool
	dump    bool
	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model with settings as the base
// configuration.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = settings.MusicDir
	ti.SetValue(settings.MusicDir)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		events:    make(chan organize.ProgressEvent, 64),
		rename:    settings.RenameFiles,
		dump:      settings.WriteSongs,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one event from the manager.
	ProgressMsg struct {
		Event organize.ProgressEvent
	}

	// ScanDoneMsg is sent when the library and definitions are loaded.
	ScanDoneMsg struct {
		Songs int
		Err   error
	}

	// WriteDoneMsg is sent when all playlists are written.
	WriteDoneMsg struct {
		Playlists []string
		Written   int32
		Total     int32
		Err       error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateScanning || m.state == StateWriting {
				m.cancel()
				m.state = StateError
				m.err = errCancelled
			}
			return m, nil

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.state = StateScanning
				m.manager = m.newManager()
				return m, tea.Batch(m.initialize(), m.waitForEvent(), m.spinner.Tick, m.tickProgress())
			}

		case "alt+r":
			if m.state == StateInput {
				m.rename = !m.rename
			}
			return m, nil

		case "alt+s":
			if m.state == StateInput {
				m.dump = !m.dump
			}
			return m, nil

		case "alt+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}
			return m, nil

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new run
				m.cancel()
				m.state = StateInput
				m.logs = nil
				m.playlists = nil
				m.songs = 0
				m.err = nil
				m.scanned, m.scanTotal = 0, 0
				m.written, m.total = 0, 0
				m.manager = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.events = make(chan organize.ProgressEvent, 64)
				m.textInput.Focus()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, m.waitForEvent())
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == organize.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case ScanDoneMsg:
		switch {
		case m.state != StateScanning:
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.songs = msg.Songs
			m.state = StateWriting
			cmds = append(cmds, m.writePlaylists())
		}

	case WriteDoneMsg:
		m.written = msg.Written
		m.total = msg.Total
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errCancelled
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.playlists = msg.Playlists
			m.state = StateComplete
		}

	case TickMsg:
		if m.state != StateScanning && m.state != StateWriting {
			break
		}
		if m.manager != nil && m.state == StateScanning {
			m.scanned, m.scanTotal = m.manager.GetScanProgress()
		}
		if m.manager != nil && m.state == StateWriting {
			m.written, m.total = m.manager.GetProgress()
			var percent float64
			if m.total > 0 {
				percent = float64(m.written) / float64(m.total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent))
		}
		cmds = append(cmds, m.tickProgress())

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent delivers the next manager event.
func (m Model) waitForEvent() tea.Cmd {
	events, ctx := m.events, m.ctx
	return func() tea.Msg {
		select {
		case e := <-events:
			return ProgressMsg{Event: e}
		case <-ctx.Done():
			return nil
		}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♪ tunesort"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Sorted playlists from your tags"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateScanning:
		b.WriteString(m.viewScanning())
	case StateWriting:
		b.WriteString(m.viewWriting())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Music directory:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Rename files to canonical names (alt+r)\n", checkbox(m.rename)))
	b.WriteString(fmt.Sprintf("  %s Write %s (alt+s)\n", checkbox(m.dump), m.settings.SongsFile))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (alt+v)\n", checkbox(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Playlists: %s → %s (%s)",
		m.settings.PlaylistsFile, m.settings.PlaylistDir, m.settings.PlaylistFormat)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Reading tags..."))
	if m.scanTotal > 0 {
		b.WriteString(infoStyle.Render(fmt.Sprintf(" %d/%d files", m.scanned, m.scanTotal)))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewWriting() string {
	var b strings.Builder

	b.WriteString(successStyle.Render(fmt.Sprintf("Library: %d songs", m.songs)))
	b.WriteString("\n\n")

	var percent float64
	if m.total > 0 {
		percent = float64(m.written) / float64(m.total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Playlists: %d/%d", m.written, m.total)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	var list strings.Builder
	for _, p := range m.playlists {
		list.WriteString(playlistStyle.Render("  ♪ " + p))
		list.WriteString("\n")
	}

	box := boxStyle.Render(fmt.Sprintf(
		"✓ Playlists written!\n\n"+
			"Songs: %d\n"+
			"Playlists: %d\n\n%s",
		m.songs,
		len(m.playlists),
		strings.TrimRight(list.String(), "\n"),
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case organize.LevelError:
			style = errorStyle
			prefix = "✗"
		case organize.LevelWarning:
			style = warningStyle
			prefix = "!"
		case organize.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case organize.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • alt+r: rename • alt+s: songs dump • alt+v: verbose • esc: quit"
	case StateScanning, StateWriting:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new run • q: quit"
	}
	return ""
}

// runSettings applies the on-screen options to a copy of the settings.
func (m Model) runSettings() *config.Settings {
	settings := *m.settings
	settings.MusicDir = strings.TrimSpace(m.textInput.Value())
	settings.RenameFiles = m.rename
	settings.WriteSongs = m.dump
	return &settings
}

// newManager creates a manager that forwards its events to the model.
func (m Model) newManager() *organize.Manager {
	ctx, events := m.ctx, m.events
	return organize.NewManager(m.runSettings(), organize.Options{}, func(event organize.ProgressEvent) {
		select {
		case events <- event:
		case <-ctx.Done():
		}
	})
}

// initialize scans the library and writes the dump.
func (m Model) initialize() tea.Cmd {
	manager, ctx := m.manager, m.ctx

	return func() tea.Msg {
		if err := manager.Initialize(ctx); err != nil {
			return ScanDoneMsg{Err: err}
		}
		if err := manager.WriteSongs(); err != nil {
			return ScanDoneMsg{Err: err}
		}

		return ScanDoneMsg{Songs: len(manager.Songs())}
	}
}

// writePlaylists writes all playlists in the background.
func (m Model) writePlaylists() tea.Cmd {
	manager, ctx := m.manager, m.ctx

	return func() tea.Msg {
		if manager == nil {
			return WriteDoneMsg{Err: organize.ErrNotInitialized}
		}

		err := manager.GeneratePlaylists(ctx)
		written, total := manager.GetProgress()

		var names []string
		for _, res := range manager.Results() {
			names = append(names, fmt.Sprintf("%s (%d tracks)", res.Definition.Name, len(res.Songs)))
		}

		return WriteDoneMsg{
			Playlists: names,
			Written:   written,
			Total:     total,
			Err:       err,
		}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
