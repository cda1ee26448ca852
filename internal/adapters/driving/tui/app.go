package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/drivegate/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/drivegate/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/drivegate/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/drivegate/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/drivegate/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/drivegate/internal/core/domain"
)

// DefaultInterval matches the drives stream of the HTTP API.
const DefaultInterval = 10 * time.Second

// App is the drive watcher following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports    *Ports
	ctx      context.Context
	interval time.Duration

	styles  *styles.Styles
	keymap  *keymap.KeyMap
	drives  *list.DriveList
	bar     *status.Bar
	spinner spinner.Model
	help    help.Model

	// loading is true while a detect invocation is in flight.
	loading bool

	// pollSeq invalidates timers scheduled before a manual refresh.
	pollSeq int

	// health is the panel content for the selected drive; empty when closed.
	health      string
	healthDrive string

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the watcher. A non-positive interval uses DefaultInterval.
func NewApp(ports *Ports, interval time.Duration) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Title

	return &App{
		ports:    ports,
		ctx:      context.Background(),
		interval: interval,
		styles:   s,
		keymap:   km,
		drives:   list.NewDriveList(s),
		bar:      status.NewBar(s, km),
		spinner:  sp,
		help:     help.New(),
	}, nil
}

// WithContext sets the context passed to the drive service.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("drivegate - drive watch"),
		a.spinner.Tick,
		a.refresh(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.bar.SetWidth(msg.Width)
		a.help.Width = msg.Width
		a.drives.SetHeight(msg.Height - 6)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.DrivesLoaded:
		a.loading = false
		if msg.Err != nil {
			a.bar.SetState(status.StateError)
			a.bar.SetMessage(msg.Err.Error())
		} else {
			a.drives.SetDrives(msg.Drives)
			a.bar.SetLoaded(len(msg.Drives), msg.At)
		}
		return a, a.schedulePoll()

	case messages.PollDue:
		if msg.Seq != a.pollSeq || a.loading {
			return a, nil
		}
		return a, a.refresh()

	case messages.HealthLoaded:
		if msg.Drive != a.healthDrive {
			return a, nil
		}
		if msg.Err != nil {
			a.health = a.styles.Error.Render(msg.Err.Error())
		} else {
			a.health = msg.Record
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keymap.Help):
		a.help.ShowAll = !a.help.ShowAll
	case key.Matches(msg, a.keymap.Up):
		a.drives.MoveUp()
	case key.Matches(msg, a.keymap.Down):
		a.drives.MoveDown()
	case key.Matches(msg, a.keymap.Refresh):
		if !a.loading {
			return a, a.refresh()
		}
	case key.Matches(msg, a.keymap.Health):
		if d := a.drives.SelectedDrive(); d != nil {
			a.healthDrive = d.DriveName
			a.health = a.styles.Muted.Render("Loading health...")
			return a, a.loadHealth(d.DriveName)
		}
	case key.Matches(msg, a.keymap.Back):
		a.health = ""
		a.healthDrive = ""
	}
	return a, nil
}

// refresh starts a detect invocation and restarts the poll chain.
func (a *App) refresh() tea.Cmd {
	a.loading = true
	a.pollSeq++
	a.bar.SetState(status.StateLoading)

	ctx, drives := a.ctx, a.ports.Drives
	return func() tea.Msg {
		result, err := drives.Detect(ctx)
		if err != nil {
			return messages.DrivesLoaded{Err: err}
		}
		records, err := DecodeDrives(result.Payload)
		return messages.DrivesLoaded{Drives: records, At: time.Now(), Err: err}
	}
}

func (a *App) schedulePoll() tea.Cmd {
	seq := a.pollSeq
	return tea.Tick(a.interval, func(time.Time) tea.Msg {
		return messages.PollDue{Seq: seq}
	})
}

func (a *App) loadHealth(drive string) tea.Cmd {
	ctx, drives := a.ctx, a.ports.Drives
	return func() tea.Msg {
		result, err := drives.Health(ctx, drive)
		if err != nil {
			return messages.HealthLoaded{Drive: drive, Err: err}
		}
		raw, err := json.Marshal(result.Payload)
		if err != nil {
			return messages.HealthLoaded{Drive: drive, Err: err}
		}
		var out bytes.Buffer
		if err := json.Indent(&out, raw, "", "  "); err != nil {
			return messages.HealthLoaded{Drive: drive, Err: err}
		}
		return messages.HealthLoaded{Drive: drive, Record: out.String()}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("drivegate"))
	b.WriteString(a.styles.Muted.Render(fmt.Sprintf("  polling every %s", a.interval)))
	b.WriteString("\n\n")
	b.WriteString(a.drives.View())
	b.WriteString("\n")

	if a.healthDrive != "" {
		b.WriteString("\n")
		b.WriteString(a.styles.Header.Render("Health: " + a.healthDrive))
		b.WriteString("\n")
		b.WriteString(a.styles.Panel.Render(a.health))
		b.WriteString("\n")
	}

	if a.help.ShowAll {
		b.WriteString("\n")
		b.WriteString(a.help.View(a.keymap))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.bar.View(a.spinner.View()))
	return b.String()
}

// DecodeDrives reads drive records from a detect payload. A single document
// is treated as a one-drive list.
func DecodeDrives(p domain.Payload) ([]domain.DriveRecord, error) {
	switch p.Kind() {
	case domain.PayloadList:
		records := make([]domain.DriveRecord, 0, p.Len())
		if err := p.Decode(&records); err != nil {
			return nil, fmt.Errorf("decoding drives: %w", err)
		}
		return records, nil
	case domain.PayloadDocument:
		var record domain.DriveRecord
		if err := p.Decode(&record); err != nil {
			return nil, fmt.Errorf("decoding drive: %w", err)
		}
		return []domain.DriveRecord{record}, nil
	default:
		return []domain.DriveRecord{}, nil
	}
}
