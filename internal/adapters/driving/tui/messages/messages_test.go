package messages

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

func TestDrivesLoaded(t *testing.T) {
	now := time.Now()
	msg := DrivesLoaded{
		Drives: []domain.DriveRecord{{DriveName: "sda"}},
		At:     now,
	}

	assert.Len(t, msg.Drives, 1)
	assert.Equal(t, now, msg.At)
	assert.NoError(t, msg.Err)
}

func TestHealthLoaded_WithError(t *testing.T) {
	msg := HealthLoaded{Drive: "sdb", Err: errors.New("process execution failed")}

	assert.Equal(t, "sdb", msg.Drive)
	assert.Empty(t, msg.Record)
	assert.Error(t, msg.Err)
}
