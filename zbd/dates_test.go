package zbd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw      string
		expected time.Time
		ok       bool
	}{
		{"01.09.2025", time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), true},
		{"1.9.2025", time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), true},
		{"15.09.25", time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC), true},
		{"01.09.2025\n06:00", time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), true},
		{"станом на 03.09.2025 ранок", time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC), true},
		{"-", time.Time{}, false},
		{"", time.Time{}, false},
		{"текст без дати", time.Time{}, false},
		{"31.02.2025", time.Time{}, false}, // неіснуючий день
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			parsed, ok := ParseDate(tt.raw)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.True(t, parsed.Equal(tt.expected), "got %v", parsed)
			}
		})
	}
}

func TestMonthFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		month    time.Month
		ok       bool
	}{
		{"ЖБД вересень 2025.docx", time.September, true},
		{"жбд_за_вересня.docx", time.September, true},
		{"ЖБД ЛИСТОПАД.docx", time.November, true},
		{"report.docx", 0, false},
	}

	for _, tt := range tests {
		month, ok := MonthFromFilename(tt.filename)
		assert.Equal(t, tt.ok, ok, tt.filename)
		if ok {
			assert.Equal(t, tt.month, month, tt.filename)
		}
	}
}

func TestPeriodBounds(t *testing.T) {
	p := Period{Year: 2025, Month: time.September}

	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), p.FirstDay())
	assert.Equal(t, time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC), p.LastDay())
	assert.True(t, p.Contains(p.Day(15)))
	assert.False(t, p.Contains(time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)))

	feb := Period{Year: 2024, Month: time.February}
	assert.Equal(t, 29, feb.LastDay().Day()) // високосний рік
}
