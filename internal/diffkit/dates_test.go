package diffkit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDates_LongForm(t *testing.T) {
	dates := ExtractDates("This agreement commences on January 15, 2024 and ends on March 1, 2025.")

	require.Len(t, dates, 2)
	assert.Equal(t, "2024-01-15", dates[0].Format("2006-01-02"))
	assert.Equal(t, "2025-03-01", dates[1].Format("2006-01-02"))
}

func TestExtractDates_ISO(t *testing.T) {
	dates := ExtractDates("Effective 2024-06-30.")

	require.Len(t, dates, 1)
	assert.Equal(t, "2024-06-30", dates[0].Format("2006-01-02"))
}

func TestExtractDates_Ordinal(t *testing.T) {
	dates := ExtractDates("Signed on March 3rd, 2024.")

	require.Len(t, dates, 1)
	assert.Equal(t, "2024-03-03", dates[0].Format("2006-01-02"))
}

func TestExtractDates_DayFirst(t *testing.T) {
	dates := ExtractDates("Terminates on 12 December 2024.")

	require.Len(t, dates, 1)
	assert.Equal(t, "2024-12-12", dates[0].Format("2006-01-02"))
}

func TestExtractDates_NoDates(t *testing.T) {
	assert.Empty(t, ExtractDates("No temporal references here."))
}

func TestExtractDates_Deduplicates(t *testing.T) {
	dates := ExtractDates("Due January 15, 2024. Paid 2024-01-15.")
	assert.Len(t, dates, 1)
}

func TestCompareDates(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}

	findings := CompareDates(
		[]time.Time{day("2024-01-15"), day("2024-06-30")},
		[]time.Time{day("2024-06-30"), day("2024-12-01")},
	)

	assert.Equal(t, []string{"2024-12-01"}, findings.Added)
	assert.Equal(t, []string{"2024-01-15"}, findings.Removed)
	assert.Equal(t, []string{"2024-06-30"}, findings.Common)
}

func TestCompareDateReferences(t *testing.T) {
	findings := CompareDateReferences(
		"Due on January 15, 2024.",
		"Due on February 20, 2024.",
	)

	assert.Equal(t, []string{"2024-02-20"}, findings.Added)
	assert.Equal(t, []string{"2024-01-15"}, findings.Removed)
	assert.Empty(t, findings.Common)
}
