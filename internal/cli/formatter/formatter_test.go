package formatter

import (
	"strings"
	"testing"

	"github.com/emirirr/terapi/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{59, "00:59"},
		{60, "01:00"},
		{125, "02:05"},
		{3599, "59:59"},
		{5400, "90:00"},
		{-3, "00:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatClock(tc.seconds), "seconds=%d", tc.seconds)
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{90, "1m 30s"},
		{3600, "1h"},
		{4320, "1h 12m"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatSeconds(tc.seconds), "seconds=%d", tc.seconds)
	}
}

func TestRenderProgress_Bounds(t *testing.T) {
	assert.Contains(t, RenderProgress(-10, 8), "  0%")
	assert.Contains(t, RenderProgress(250, 8), "100%")

	full := RenderProgress(100, 4)
	assert.Contains(t, full, strings.Repeat(filledBlock, 4))
	assert.NotContains(t, full, emptyBlock)

	empty := RenderProgress(0, 4)
	assert.Contains(t, empty, strings.Repeat(emptyBlock, 4))
}

func TestRenderTable_PadsShortRows(t *testing.T) {
	out := RenderTable(
		[]string{"ID", "NAME", "ROLE"},
		[][]string{{"1", "Ada"}},
		[]ColumnAlignment{AlignRight})
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Ada")
}

func TestRenderTable_EmptyHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil, nil))
}

func TestStatusPill(t *testing.T) {
	assert.Contains(t, StatusPill(domain.StatusCompleted), "Completed")
	assert.Contains(t, StatusPill(domain.StatusStopped), "Stopped")
}
