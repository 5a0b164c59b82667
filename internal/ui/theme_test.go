package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		got    string
		marker string
	}{
		{FormatStatusOK("saved"), "[OK]"},
		{FormatStatusWarn("saved"), "[WARN]"},
		{FormatStatusFail("saved"), "[FAIL]"},
	}

	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			assert.Contains(t, tt.got, tt.marker)
			assert.Contains(t, tt.got, "saved")
		})
	}
}

func TestFormatFooter(t *testing.T) {
	footer := FormatFooter(FormatKeybinding("Space", "Toggle"), FormatKeybinding("Esc", "Exit"))
	assert.Contains(t, footer, "Space")
	assert.Contains(t, footer, "Toggle")
	assert.Contains(t, footer, "Esc")
}
