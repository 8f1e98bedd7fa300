package pacing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countEqual(values []float64, target float64) int {
	n := 0
	for _, v := range values {
		if math.Abs(v-target) <= Epsilon {
			n++
		}
	}
	return n
}

func onGrid(v float64) bool {
	return math.Abs(v*stepsPerUnit-math.Round(v*stepsPerUnit)) <= 1e-6
}

func TestSolve_FourIntervals(t *testing.T) {
	got, err := Solve(4, 10.0, 8.0)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, 10.0, got[0])
	assert.Equal(t, 1, countEqual(got, 10.0))
	assert.GreaterOrEqual(t, Mean(got)+Epsilon, 8.0)
	for _, v := range got {
		assert.True(t, onGrid(v), "%v is not a multiple of %v", v, Step)
	}
	assert.InDeltaSlice(t, []float64{10.0, 7.4, 7.3, 7.3}, got, 1e-9)
}

func TestSolve_FiveIntervals(t *testing.T) {
	got, err := Solve(5, 8.0, 7.0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{8.0, 6.8, 6.8, 6.7, 6.7}, got, 1e-9)
}

func TestSolve_SingleInterval(t *testing.T) {
	tests := []struct {
		name    string
		max     float64
		avg     float64
		want    float64
		wantErr error
	}{
		{name: "average below max", max: 8.04, avg: 7.0, want: 8.0},
		{name: "average equals max", max: 8.0, avg: 8.0, want: 8.0},
		{name: "rounds half up", max: 8.05, avg: 8.0, want: 8.1},
		{name: "average above max", max: 8.0, avg: 8.1, wantErr: ErrAverageExceedsMax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Solve(1, tt.max, tt.avg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.InDelta(t, tt.want, got[0], 1e-9)
		})
	}
}

func TestSolve_DefaultsAverageToMax(t *testing.T) {
	for _, avg := range []float64{0, -3, math.NaN(), math.Inf(1)} {
		got, err := Solve(1, 9.0, avg)
		require.NoError(t, err)
		assert.Equal(t, []float64{9.0}, got)
	}

	// Two intervals cannot both average the max
	_, err := Solve(2, 9.0, 0)
	assert.ErrorIs(t, err, ErrTargetAverageTooHigh)
}

func TestSolve_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		max     float64
		avg     float64
		wantErr error
	}{
		{"zero count", 0, 10, 8, ErrInvalidCount},
		{"negative count", -2, 10, 8, ErrInvalidCount},
		{"NaN max", 3, math.NaN(), 8, ErrInvalidMagnitude},
		{"infinite max", 3, math.Inf(1), 8, ErrInvalidMagnitude},
		{"zero max", 3, 0, 8, ErrInvalidMagnitude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Solve(tt.count, tt.max, tt.avg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSolve_BestAchievableBoundary(t *testing.T) {
	tests := []struct {
		count int
		max   float64
	}{
		{2, 10.0},
		{4, 10.0},
		{6, 7.5},
		{10, 12.3},
	}

	for _, tt := range tests {
		best := BestAchievableAverage(tt.count, tt.max)

		got, err := Solve(tt.count, tt.max, best)
		require.NoError(t, err, "count=%d max=%v avg=%v", tt.count, tt.max, best)
		assert.Equal(t, 1, countEqual(got, tt.max))
		assert.GreaterOrEqual(t, Mean(got)+Epsilon, best)

		_, err = Solve(tt.count, tt.max, best+0.01)
		assert.ErrorIs(t, err, ErrTargetAverageTooHigh)
	}
}

func TestSolve_LowTargetClampsToStep(t *testing.T) {
	got, err := Solve(3, 8.0, 0.01)
	require.NoError(t, err)
	for _, v := range got[1:] {
		assert.Greater(t, v, 0.0)
	}
	assert.Equal(t, 1, countEqual(got, 8.0))
}

func TestSolve_OffGridMaxCanDropBelowTarget(t *testing.T) {
	// 9.84 rounds down to 9.8, losing enough to miss an average of 6.0053
	_, err := Solve(4, 9.84, 6.0053)
	assert.ErrorIs(t, err, ErrAverageDroppedBelowTarget)
}

func TestSolve_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		count := 2 + rng.Intn(30)
		maxSpeed := Quantize(3 + rng.Float64()*12)
		best := BestAchievableAverage(count, maxSpeed)
		avg := 1 + rng.Float64()*(best-1)

		got, err := Solve(count, maxSpeed, avg)
		require.NoError(t, err, "count=%d max=%v avg=%v", count, maxSpeed, avg)
		require.Len(t, got, count)
		require.Equal(t, 1, countEqual(got, Quantize(maxSpeed)), "values %v", got)
		require.GreaterOrEqual(t, Mean(got)+Epsilon, avg)
		for _, v := range got {
			require.True(t, onGrid(v), "%v is off grid", v)
			require.LessOrEqual(t, v, maxSpeed+Epsilon)
		}

		again, err := Solve(count, maxSpeed, avg)
		require.NoError(t, err)
		require.Equal(t, got, again)
	}
}

func TestRepairDuplicateMax(t *testing.T) {
	values := []float64{10.0, 10.0, 9.9, 10.0}
	repairDuplicateMax(values)
	assert.InDeltaSlice(t, []float64{10.0, 9.9, 9.9, 9.9}, values, 1e-9)

	single := []float64{5.0}
	repairDuplicateMax(single)
	assert.Equal(t, []float64{5.0}, single)
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in      float64
		want    int
		wantErr bool
	}{
		{4, 4, false},
		{4 + 1e-12, 4, false},
		{1, 1, false},
		{0, 0, true},
		{0.4, 0, true},
		{-3, 0, true},
		{2.5, 0, true},
		{3.0001, 0, true},
		{math.NaN(), 0, true},
		{math.Inf(1), 0, true},
	}

	for _, tt := range tests {
		got, err := ParseCount(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidCount, "ParseCount(%v)", tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		in, want, wantDown float64
	}{
		{7.25, 7.3, 7.2},
		{7.3, 7.3, 7.3},
		{0.15, 0.2, 0.1},
		{6.69999999999, 6.7, 6.7},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Quantize(tt.in), 1e-9, "Quantize(%v)", tt.in)
		assert.InDelta(t, tt.wantDown, QuantizeDown(tt.in), 1e-9, "QuantizeDown(%v)", tt.in)
	}
}
