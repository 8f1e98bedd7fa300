package schedule

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes float64
		want    string
	}{
		{0, "0:00"},
		{5.5, "5:30"},
		{6.43, "6:26"},
		{59.999, "60:00"},
		{75.25, "75:15"},
		{-1, "-"},
		{math.NaN(), "-"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.minutes), "FormatDuration(%v)", tt.minutes)
	}
}

func TestFormatFixed(t *testing.T) {
	assert.Equal(t, "6.8", FormatSpeed(6.8, 1))
	assert.Equal(t, "8.0", FormatSpeed(8, 1))
	assert.Equal(t, "6.58", FormatSpeed(6.5777, 2))
	assert.Equal(t, "7", FormatSpeed(7.2, 0))
	assert.Equal(t, "0.75", FormatDistance(0.75, 2))
	assert.Equal(t, "0.250", FormatDistance(0.25, 3))
	assert.Equal(t, "-", FormatDistance(math.Inf(1), 2))
}

func TestRows_Simple(t *testing.T) {
	r, err := DefaultBuilder().BuildSimple(3.25, 0.75, 8.0, 7.0)
	require.NoError(t, err)

	rows := r.Rows(DefaultFormatOptions)
	require.Len(t, rows, 5)

	assert.Equal(t, Row{Label: "Interval 1", Role: RoleWork, Speed: "8.0", Distance: "0.75", Duration: "5:38"}, rows[0])
	assert.Equal(t, "Interval 5", rows[4].Label)
	assert.Equal(t, "6.6", rows[4].Speed)
	assert.Equal(t, "0.25", rows[4].Distance)
}

func TestRows_Tempo(t *testing.T) {
	r, err := DefaultBuilder().BuildTempo(2.5, 0.5, 9.0, 7.5)
	require.NoError(t, err)

	rows := r.Rows(DefaultFormatOptions)
	labels := make([]string, len(rows))
	for i, row := range rows {
		labels[i] = row.Label
	}
	assert.Equal(t, []string{"Work 1", "Rest 1", "Work 2", "Rest 2", "Work 3"}, labels)
	assert.Equal(t, RoleRest, rows[1].Role)
	assert.Equal(t, "6.5", rows[1].Speed)
}
