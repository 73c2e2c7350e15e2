package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var today = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func TestAnnotate_PayoutTags(t *testing.T) {
	tags := Annotate(Input{Visible: map[string]any{
		"dt_acerto":    "2025-01-14",
		"dt_guy_pago":  "2025-01-15",
		"dt_guy_dpago": "2025-01-20",
	}}, today)

	assert.Equal(t, TagPast, tags.Payout["dt_acerto"])
	assert.Equal(t, TagToday, tags.Payout["dt_guy_pago"])
	assert.Equal(t, TagNone, tags.Payout["dt_guy_dpago"])
}

func TestAnnotate_HiddenOrInvalidFieldsHaveNoTag(t *testing.T) {
	tags := Annotate(Input{Visible: map[string]any{
		"dt_acerto": "-",
	}}, today)

	assert.Equal(t, TagNone, tags.Payout["dt_acerto"])
	assert.Equal(t, TagNone, tags.Payout["dt_guy_pago"])
}

func TestAnnotate_Highlight(t *testing.T) {
	assert.True(t, Annotate(Input{Delivered: "2025-01-10"}, today).Highlight)
	assert.False(t, Annotate(Input{Delivered: "2025-01-10", Billed: "2025-01-12"}, today).Highlight)
	assert.False(t, Annotate(Input{}, today).Highlight)
}

func TestApply(t *testing.T) {
	row := map[string]any{"loc": 1}
	Annotate(Input{
		Visible:   map[string]any{"dt_acerto": "2025-01-01"},
		Delivered: "2025-01-10",
	}, today).Apply(row)

	assert.Equal(t, "past", row["status_dt_acerto"])
	assert.Equal(t, "", row["status_dt_guy_pago"])
	assert.Equal(t, true, row["highlight"])
	assert.Len(t, row, 1+len(Keys()))
}
