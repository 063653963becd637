package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantCloses(v float64, n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = v
	}
	return closes
}

func rampCloses(start, step float64, n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + step*float64(i)
	}
	return closes
}

func TestCalculateRSISeries_InsufficientHistory(t *testing.T) {
	_, err := CalculateRSISeries(constantCloses(100, 14), 14)
	require.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestCalculateRSISeries_WarmupIsNaN(t *testing.T) {
	rsi, err := CalculateRSISeries(rampCloses(100, 1, 30), 14)
	require.NoError(t, err)
	require.Len(t, rsi, 30)
	for i := 0; i < 14; i++ {
		assert.True(t, math.IsNaN(rsi[i]), "index %d should be NaN", i)
	}
	assert.False(t, math.IsNaN(rsi[14]))
}

func TestCalculateRSISeries_Extremes(t *testing.T) {
	up, err := CalculateRSISeries(rampCloses(100, 1, 30), 14)
	require.NoError(t, err)
	assert.Equal(t, 100.0, up[29], "all gains should read 100")

	down, err := CalculateRSISeries(rampCloses(100, -1, 30), 14)
	require.NoError(t, err)
	assert.Equal(t, 0.0, down[29], "all losses should read 0")
}

func TestCalculateRSISeries_Midrange(t *testing.T) {
	// Alternating gains and losses of equal size settle near 50.
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i%2)
	}
	rsi, err := CalculateRSISeries(closes, 14)
	require.NoError(t, err)
	assert.InDelta(t, 50, rsi[39], 5)
}

func TestCalculateEMASeries_SeededWithSMA(t *testing.T) {
	ema, err := CalculateEMASeries(rampCloses(1, 1, 25), 20)
	require.NoError(t, err)
	for i := 0; i < 19; i++ {
		assert.True(t, math.IsNaN(ema[i]), "index %d should be NaN", i)
	}
	// SMA of 1..20 is 10.5.
	assert.InDelta(t, 10.5, ema[19], 1e-9)
	assert.Greater(t, ema[24], ema[19])
}

func TestCalculateEMASeries_InsufficientHistory(t *testing.T) {
	_, err := CalculateEMASeries(constantCloses(100, 19), 20)
	require.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestCalculateMACDHistogram_FlatSeriesIsZero(t *testing.T) {
	hist, err := CalculateMACDHistogram(constantCloses(100, 60))
	require.NoError(t, err)
	require.Len(t, hist, 60)
	assert.InDelta(t, 0, hist[59], 1e-9)
}

func TestCalculateMACDHistogram_InsufficientHistory(t *testing.T) {
	_, err := CalculateMACDHistogram(constantCloses(100, 33))
	require.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestCalculateMACDHistogram_WarmupIsNaN(t *testing.T) {
	hist, err := CalculateMACDHistogram(constantCloses(100, 60))
	require.NoError(t, err)
	for i := 0; i < 25; i++ {
		assert.True(t, math.IsNaN(hist[i]), "index %d should be NaN", i)
	}
	assert.False(t, math.IsNaN(hist[33]))
}

func TestComputeOscillators(t *testing.T) {
	set, err := ComputeOscillators(constantCloses(100, 60), 14)
	require.NoError(t, err)

	rsi, ema20, macdHist, ok := set.Latest()
	require.True(t, ok)
	assert.Equal(t, 100.0, rsi) // no losses at all
	assert.InDelta(t, 100.0, ema20, 1e-9)
	assert.InDelta(t, 0, macdHist, 1e-9)
}

func TestComputeOscillators_TooShortForMACD(t *testing.T) {
	_, err := ComputeOscillators(constantCloses(100, 30), 14)
	require.ErrorIs(t, err, ErrInsufficientHistory)
}
