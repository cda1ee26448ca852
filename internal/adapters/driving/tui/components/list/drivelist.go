// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/drivegate/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/drivegate/internal/core/domain"
)

// DriveList displays detected drives with a movable selection.
type DriveList struct {
	drives   []domain.DriveRecord
	selected int
	styles   *styles.Styles
	height   int
}

// NewDriveList creates a new drive list component.
func NewDriveList(s *styles.Styles) *DriveList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &DriveList{styles: s, height: 10}
}

// View renders one row per drive, coloured by health.
func (l *DriveList) View() string {
	if len(l.drives) == 0 {
		return l.styles.Muted.Render("No drives detected")
	}

	lines := make([]string, 0, len(l.drives)+1)
	lines = append(lines, l.styles.Header.Render(fmt.Sprintf(
		"  %-12s %8s %8s %7s %7s  %s", "DRIVE", "HEALTH", "TEMP", "READ", "WRITE", "SMART")))

	start, end := l.window()
	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(i))
	}
	return strings.Join(lines, "\n")
}

// window returns the visible range keeping the selection on screen.
func (l *DriveList) window() (int, int) {
	visible := l.height - 1
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.drives) {
		end = len(l.drives)
	}
	return start, end
}

func (l *DriveList) renderRow(i int) string {
	d := l.drives[i]
	row := fmt.Sprintf("%-12s %7.1f%% %6.1f°C %7d %7d  %s",
		d.DriveName, d.OverallHealth, d.Temperature, d.ReadErrorCount, d.WriteErrorCount, d.SmartStatus)

	if i == l.selected {
		return l.styles.Selected.Render("> " + row)
	}
	return "  " + l.styles.ForDrive(d).Render(row)
}

// SetDrives replaces the list, keeping the selection on the same drive name
// when it is still present.
func (l *DriveList) SetDrives(drives []domain.DriveRecord) {
	current := ""
	if d := l.SelectedDrive(); d != nil {
		current = d.DriveName
	}

	l.drives = drives
	l.selected = 0
	for i := range drives {
		if drives[i].DriveName == current {
			l.selected = i
			break
		}
	}
}

// Drives returns the current drives.
func (l *DriveList) Drives() []domain.DriveRecord {
	return l.drives
}

// Selected returns the index of the selected drive.
func (l *DriveList) Selected() int {
	return l.selected
}

// SelectedDrive returns the selected drive, or nil when the list is empty.
func (l *DriveList) SelectedDrive() *domain.DriveRecord {
	if l.selected < 0 || l.selected >= len(l.drives) {
		return nil
	}
	return &l.drives[l.selected]
}

// MoveUp moves the selection up.
func (l *DriveList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the selection down.
func (l *DriveList) MoveDown() {
	if l.selected < len(l.drives)-1 {
		l.selected++
	}
}

// SetHeight sets the number of rows available, header included.
func (l *DriveList) SetHeight(height int) {
	l.height = height
}
