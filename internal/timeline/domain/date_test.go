package domain_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weddingplan/planner/internal/timeline/domain"
)

func mustDate(t *testing.T, text string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(text)
	require.NoError(t, err)
	return d
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.Date
	}{
		{"zero padded", "01/01/25", domain.NewDate(2025, time.January, 1)},
		{"unpadded day and month", "5/3/25", domain.NewDate(2025, time.March, 5)},
		{"leap day", "29/02/24", domain.NewDate(2024, time.February, 29)},
		{"two digit year maps to 2000s", "31/12/99", domain.NewDate(2099, time.December, 31)},
		{"year zero", "15/06/00", domain.NewDate(2000, time.June, 15)},
		{"surrounding whitespace", " 10/10/30 ", domain.NewDate(2030, time.October, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"01-01-25",
		"01/01",
		"01/01/25/01",
		"01/01/2025",
		"01/01/5",
		"aa/01/25",
		"+1/01/25",
		"001/01/25",
		"32/01/25",
		"00/01/25",
		"29/02/25",
		"31/04/25",
		"01/13/25",
		"01/00/25",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := domain.ParseDate(input)
			require.Error(t, err)

			var formatErr *domain.FormatError
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, input, formatErr.Input)
			assert.ErrorIs(t, err, domain.ErrInvalidDateFormat)
		})
	}
}

func TestFormatDate_RoundTrip(t *testing.T) {
	for _, s := range []string{"01/01/25", "10/01/25", "29/02/24", "31/12/99", "01/01/00", "28/02/25"} {
		t.Run(s, func(t *testing.T) {
			assert.Equal(t, s, domain.FormatDate(mustDate(t, s)))
		})
	}
}

func TestFormatDate_PadsFields(t *testing.T) {
	assert.Equal(t, "05/03/25", domain.FormatDate(domain.NewDate(2025, time.March, 5)))
	assert.Equal(t, "05/03/25", domain.FormatDate(mustDate(t, "5/3/25")))
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"same day", "01/01/25", "01/01/25", 0},
		{"forward", "01/01/25", "10/01/25", 9},
		{"backward", "10/01/25", "01/01/25", -9},
		{"across month end", "25/01/25", "05/02/25", 11},
		{"across leap february", "28/02/24", "01/03/24", 2},
		{"across year end", "31/12/24", "01/01/25", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.DaysBetween(mustDate(t, tt.a), mustDate(t, tt.b)))
		})
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		name  string
		start string
		n     int
		want  string
	}{
		{"zero", "15/01/25", 0, "15/01/25"},
		{"month rollover", "26/01/25", 9, "04/02/25"},
		{"year rollover", "31/12/24", 1, "01/01/25"},
		{"negative into leap day", "01/03/24", -1, "29/02/24"},
		{"negative across year", "01/01/25", -1, "31/12/24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.AddDays(mustDate(t, tt.start), tt.n)
			assert.Equal(t, tt.want, domain.FormatDate(got))
		})
	}
}

func TestDateOf_DropsClockAndZone(t *testing.T) {
	zone := time.FixedZone("UTC+11", 11*60*60)
	d := domain.DateOf(time.Date(2025, time.January, 1, 23, 59, 0, 0, zone))

	assert.True(t, d.Equal(domain.NewDate(2025, time.January, 1)))
	assert.Equal(t, 0, d.Time().Hour())
}

func TestDate_ISO(t *testing.T) {
	d := mustDate(t, "04/02/25")
	assert.Equal(t, "2025-02-04", d.ISO())
}

func TestDate_Text(t *testing.T) {
	t.Run("json uses dd/mm/yy", func(t *testing.T) {
		payload, err := json.Marshal(struct {
			On domain.Date `json:"on"`
		}{On: mustDate(t, "09/11/26")})
		require.NoError(t, err)
		assert.JSONEq(t, `{"on":"09/11/26"}`, string(payload))
	})

	t.Run("decode", func(t *testing.T) {
		var v struct {
			On domain.Date `json:"on"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"on":"09/11/26"}`), &v))
		assert.Equal(t, "09/11/26", v.On.String())
	})

	t.Run("empty is zero", func(t *testing.T) {
		var d domain.Date
		require.NoError(t, d.UnmarshalText(nil))
		assert.True(t, d.IsZero())
		assert.Equal(t, "", d.String())
	})

	t.Run("bad text", func(t *testing.T) {
		var d domain.Date
		err := d.UnmarshalText([]byte("2026-11-09"))
		assert.ErrorIs(t, err, domain.ErrInvalidDateFormat)
	})
}
