package list

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

func testDrives() []domain.DriveRecord {
	return []domain.DriveRecord{
		{DriveName: "sda", OverallHealth: 95, Temperature: 35, SmartStatus: "OK"},
		{DriveName: "sdb", OverallHealth: 70, Temperature: 40, SmartStatus: "FAILING"},
		{DriveName: "sdc", OverallHealth: 90, Temperature: 55, SmartStatus: "OK"},
	}
}

func TestDriveList_Empty(t *testing.T) {
	l := NewDriveList(nil)

	assert.Nil(t, l.SelectedDrive())
	assert.Contains(t, l.View(), "No drives detected")
}

func TestDriveList_View(t *testing.T) {
	l := NewDriveList(nil)
	l.SetDrives(testDrives())

	view := l.View()

	assert.Contains(t, view, "DRIVE")
	assert.Contains(t, view, "sda")
	assert.Contains(t, view, "FAILING")
	assert.Contains(t, view, "> sda")
}

func TestDriveList_Navigation(t *testing.T) {
	l := NewDriveList(nil)
	l.SetDrives(testDrives())

	l.MoveUp()
	assert.Equal(t, 0, l.Selected())

	l.MoveDown()
	l.MoveDown()
	l.MoveDown()
	assert.Equal(t, 2, l.Selected())

	require.NotNil(t, l.SelectedDrive())
	assert.Equal(t, "sdc", l.SelectedDrive().DriveName)
}

func TestDriveList_SetDrivesKeepsSelection(t *testing.T) {
	l := NewDriveList(nil)
	l.SetDrives(testDrives())
	l.MoveDown() // sdb

	reordered := []domain.DriveRecord{
		{DriveName: "sdc"},
		{DriveName: "sdb"},
	}
	l.SetDrives(reordered)

	assert.Equal(t, 1, l.Selected())
	assert.Equal(t, "sdb", l.SelectedDrive().DriveName)

	l.SetDrives([]domain.DriveRecord{{DriveName: "sdz"}})
	assert.Equal(t, 0, l.Selected())
}

func TestDriveList_WindowFollowsSelection(t *testing.T) {
	l := NewDriveList(nil)
	l.SetHeight(2) // header plus one row
	l.SetDrives(testDrives())
	l.MoveDown()
	l.MoveDown()

	view := l.View()

	assert.Equal(t, 2, len(strings.Split(view, "\n")))
	assert.Contains(t, view, "sdc")
	assert.NotContains(t, view, "sda")
}
