package tui

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drivegate/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/drivegate/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/drivegate/internal/core/domain"
)

// mockDriveService is a mock implementation of driving.DriveService.
type mockDriveService struct {
	detect    domain.Payload
	detectErr error
	health    domain.Payload
	healthErr error
	drive     string
}

func (m *mockDriveService) Invoke(context.Context, domain.Capability, []string) (*domain.InvocationResult, error) {
	return nil, errors.New("not used")
}

func (m *mockDriveService) Detect(context.Context) (*domain.InvocationResult, error) {
	if m.detectErr != nil {
		return nil, m.detectErr
	}
	return &domain.InvocationResult{Payload: m.detect}, nil
}

func (m *mockDriveService) Scan(context.Context, string) (*domain.InvocationResult, error) {
	return nil, errors.New("not used")
}

func (m *mockDriveService) Repair(context.Context, string, bool) (*domain.InvocationResult, error) {
	return nil, errors.New("not used")
}

func (m *mockDriveService) Clone(context.Context, domain.CloneRequest) (*domain.InvocationResult, error) {
	return nil, errors.New("not used")
}

func (m *mockDriveService) Partition(context.Context, domain.PartitionRequest) (*domain.InvocationResult, error) {
	return nil, errors.New("not used")
}

func (m *mockDriveService) Logs(context.Context) (*domain.InvocationResult, error) {
	return nil, errors.New("not used")
}

func (m *mockDriveService) Health(_ context.Context, drive string) (*domain.InvocationResult, error) {
	m.drive = drive
	if m.healthErr != nil {
		return nil, m.healthErr
	}
	return &domain.InvocationResult{Payload: m.health}, nil
}

func (m *mockDriveService) Recommend(context.Context, domain.DriveRecord) (*domain.Recommendation, error) {
	return nil, errors.New("not used")
}

func twoDrives() domain.Payload {
	return domain.ListPayload([]json.RawMessage{
		json.RawMessage(`{"driveName":"sda","overallHealth":95,"temperature":35,"smartStatus":"OK"}`),
		json.RawMessage(`{"driveName":"sdb","overallHealth":70,"temperature":40,"smartStatus":"FAILING"}`),
	})
}

func newTestApp(t *testing.T, drives *mockDriveService) *App {
	t.Helper()
	app, err := NewApp(&Ports{Drives: drives}, time.Second)
	require.NoError(t, err)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return app
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{}, 0)

	assert.ErrorIs(t, err, ErrMissingDriveService)
	assert.Nil(t, app)
}

func TestNewApp_DefaultInterval(t *testing.T) {
	app, err := NewApp(&Ports{Drives: &mockDriveService{}}, 0)

	require.NoError(t, err)
	assert.Equal(t, DefaultInterval, app.interval)
}

func TestApp_Init(t *testing.T) {
	app := newTestApp(t, &mockDriveService{detect: twoDrives()})

	cmd := app.Init()

	assert.NotNil(t, cmd)
	assert.True(t, app.loading)
	assert.Equal(t, status.StateLoading, app.bar.State())
}

func TestApp_RefreshLoadsDrives(t *testing.T) {
	app := newTestApp(t, &mockDriveService{detect: twoDrives()})

	msg := app.refresh()()
	loaded, ok := msg.(messages.DrivesLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	require.Len(t, loaded.Drives, 2)

	_, cmd := app.Update(loaded)

	assert.NotNil(t, cmd, "a poll is scheduled after each load")
	assert.False(t, app.loading)
	assert.Equal(t, 2, app.bar.DriveCount())
	view := app.View()
	assert.Contains(t, view, "sda")
	assert.Contains(t, view, "sdb")
}

func TestApp_RefreshFailureShowsError(t *testing.T) {
	app := newTestApp(t, &mockDriveService{detectErr: errors.New("process launch failed")})

	msg := app.refresh()()
	app.Update(msg)

	assert.Equal(t, status.StateError, app.bar.State())
	assert.Contains(t, app.View(), "process launch failed")
}

func TestApp_StalePollIgnored(t *testing.T) {
	app := newTestApp(t, &mockDriveService{detect: twoDrives()})
	app.Update(app.refresh()())

	stale := messages.PollDue{Seq: app.pollSeq - 1}
	_, cmd := app.Update(stale)
	assert.Nil(t, cmd)

	current := messages.PollDue{Seq: app.pollSeq}
	_, cmd = app.Update(current)
	assert.NotNil(t, cmd)
	assert.True(t, app.loading)
}

func TestApp_NavigationAndHealth(t *testing.T) {
	drives := &mockDriveService{
		detect: twoDrives(),
		health: domain.DocumentPayload(json.RawMessage(`{"driveName":"sdb","overallHealth":70}`)),
	}
	app := newTestApp(t, drives)
	app.Update(app.refresh()())

	app.Update(keyRunes("j"))
	require.Equal(t, "sdb", app.drives.SelectedDrive().DriveName)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, "sdb", drives.drive)
	view := app.View()
	assert.Contains(t, view, "Health: sdb")
	assert.Contains(t, view, `"overallHealth": 70`)

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, app.View(), "Health: sdb")
}

func TestApp_HealthFailureShownInPanel(t *testing.T) {
	drives := &mockDriveService{detect: twoDrives(), healthErr: errors.New("health: empty output")}
	app := newTestApp(t, drives)
	app.Update(app.refresh()())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app.Update(cmd())

	assert.Contains(t, app.View(), "health: empty output")
}

func TestApp_Quit(t *testing.T) {
	app := newTestApp(t, &mockDriveService{})

	_, cmd := app.Update(keyRunes("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_HelpToggle(t *testing.T) {
	app := newTestApp(t, &mockDriveService{})

	app.Update(keyRunes("?"))

	assert.True(t, app.help.ShowAll)
}

func TestDecodeDrives(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		records, err := DecodeDrives(twoDrives())
		require.NoError(t, err)
		assert.Equal(t, "sdb", records[1].DriveName)
		assert.Equal(t, "FAILING", records[1].SmartStatus)
	})

	t.Run("single document", func(t *testing.T) {
		records, err := DecodeDrives(domain.DocumentPayload(json.RawMessage(`{"driveName":"sda"}`)))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "sda", records[0].DriveName)
	})

	t.Run("empty", func(t *testing.T) {
		records, err := DecodeDrives(domain.EmptyPayload())
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("wrong shape", func(t *testing.T) {
		_, err := DecodeDrives(domain.ListPayload([]json.RawMessage{json.RawMessage(`"sda"`)}))
		assert.Error(t, err)
	})
}
