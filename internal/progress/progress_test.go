package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nhle/novel-forge/internal/model"
)

func TestCountdown(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline string
		want     string
	}{
		{"no deadline", "", "N/A"},
		{"unparsable", "next tuesday", "Invalid Date"},
		{"overdue", "2026-03-07", "3 days OVERDUE"},
		{"due today", "2026-03-10", "DUE TODAY"},
		{"one day", "2026-03-11", "1 day left"},
		{"several days", "2026-03-24", "14 days left"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Countdown(tt.deadline, today))
		})
	}
}

func TestCountdownIgnoresTimeOfDay(t *testing.T) {
	// Late evening on the day before the deadline is still a full day out.
	today := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	require.Equal(t, "1 day left", Countdown("2026-03-11", today))
}

func TestWordDelta(t *testing.T) {
	require.Equal(t, 320, WordDelta(4820, 4500))
	require.Equal(t, -150, WordDelta(4350, 4500))
	require.Equal(t, 0, WordDelta(4500, 4500))
}

func TestTotalWordCount(t *testing.T) {
	chapters := []model.Chapter{
		{WordCount: 4820},
		{WordCount: 5210},
		{WordCount: 0},
	}
	require.Equal(t, 10030, TotalWordCount(chapters))
	require.Equal(t, 0, TotalWordCount(nil))
}

func TestFraction(t *testing.T) {
	require.InDelta(t, 0.5, Fraction(40000, 80000), 1e-9)
	require.Equal(t, 1.0, Fraction(90000, 80000))
	require.Equal(t, 0.0, Fraction(40000, 0))
	require.Equal(t, 0.0, Fraction(40000, -1))
}
