package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ForEntryArrayMultipliesEntriesByWidth(t *testing.T) {
	f := ForEntryArray(1024, 32)

	assert.EqualValues(t, 1024, f.Entries)
	assert.EqualValues(t, 32, f.EntrySize)
	assert.EqualValues(t, 1024*32, f.TotalBytes)
}

func Test_ForEntryArrayZeroEntries(t *testing.T) {
	f := ForEntryArray(0, 64)

	assert.EqualValues(t, 0, f.TotalBytes)
}

func Test_FootprintStringIncludesEntryCount(t *testing.T) {
	f := ForEntryArray(10, 16)

	assert.Contains(t, f.String(), "10")
}
