package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewInvoiceID(t *testing.T) {
	ts := time.Date(2025, 8, 28, 14, 30, 5, 0, time.Local)
	assert.Equal(t, "250828-143005", NewInvoiceID(ts))

	// single-digit fields are zero padded
	ts = time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)
	assert.Equal(t, "260102-030405", NewInvoiceID(ts))
}

func TestDefaultSettingsID(t *testing.T) {
	assert.Equal(t, int64(SettingsID), DefaultSettings().ID)
	assert.Equal(t, 30, DefaultSettings().SyncInterval)
}
