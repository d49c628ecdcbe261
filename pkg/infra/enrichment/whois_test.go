package enrichment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"1995-08-14T04:00:00Z", time.Date(1995, 8, 14, 4, 0, 0, 0, time.UTC), true},
		{"2021-03-02 10:11:12", time.Date(2021, 3, 2, 10, 11, 12, 0, time.UTC), true},
		{"2021-03-02", time.Date(2021, 3, 2, 0, 0, 0, 0, time.UTC), true},
		{"02-Mar-2021", time.Date(2021, 3, 2, 0, 0, 0, 0, time.UTC), true},
		{"2021.03.02", time.Date(2021, 3, 2, 0, 0, 0, 0, time.UTC), true},
		{" ", time.Time{}, false},
		{"last tuesday", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v", got)
			}
		})
	}
}

func TestDays(t *testing.T) {
	assert.Equal(t, 0, days(23*time.Hour))
	assert.Equal(t, 1, days(25*time.Hour))
	assert.Equal(t, -2, days(-50*time.Hour))
}
