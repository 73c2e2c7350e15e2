package deadline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xfinance/internal/platform/logger"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func requireDays(t *testing.T, res Result, want int) {
	t.Helper()
	require.NotNil(t, res.Days, "expected %d days, got absent (rule %s)", want, res.Rule)
	assert.Equal(t, want, *res.Days)
}

func TestEvaluate_InspectionOnly(t *testing.T) {
	res := Evaluate(Record{Inspection: "2025-01-10"}, day("2025-01-15"))
	requireDays(t, res, 5)
	assert.False(t, res.Persist)
	assert.Equal(t, RuleNotDelivered, res.Rule)
}

func TestEvaluate_BilledNotPaidIgnoresDelivery(t *testing.T) {
	today := day("2025-01-10")

	for _, delivered := range []any{nil, "2025-01-03", "-"} {
		res := Evaluate(Record{Billed: "2025-01-01", Delivered: delivered, Inspection: "2024-12-01"}, today)
		requireDays(t, res, 9)
		assert.False(t, res.Persist)
		assert.Equal(t, RuleBilledNotPaid, res.Rule)
	}
}

func TestEvaluate_BilledInFutureIsAbsent(t *testing.T) {
	res := Evaluate(Record{Billed: "2025-02-01"}, day("2025-01-10"))
	assert.Nil(t, res.Days)
	assert.False(t, res.Persist)
}

func TestEvaluate_PaidAndDeliveredPersists(t *testing.T) {
	res := Evaluate(Record{
		Inspection: "2025-01-01",
		Delivered:  "2025-01-05",
		Paid:       "2025-01-08",
	}, day("2025-03-01"))

	requireDays(t, res, 4)
	assert.True(t, res.Persist)
	assert.Equal(t, RuleFinalized, res.Rule)
}

func TestEvaluate_DeliveredBeforeInspectionIsAbsent(t *testing.T) {
	res := Evaluate(Record{
		Inspection: "2025-01-10",
		Delivered:  "2025-01-05",
		Billed:     "2025-01-06",
		Paid:       "2025-01-08",
	}, day("2025-03-01"))

	assert.Nil(t, res.Days)
	assert.False(t, res.Persist)
}

func TestEvaluate_StoredValueIsFinalOncePaid(t *testing.T) {
	rec := Record{
		Inspection: "2025-01-01",
		Delivered:  "2025-01-05",
		Billed:     "2025-01-06",
		Paid:       "2025-01-08",
		Stored:     int64(7),
	}

	for i := 0; i < 3; i++ {
		res := Evaluate(rec, day("2025-06-01"))
		requireDays(t, res, 7)
		assert.False(t, res.Persist)
		assert.Equal(t, RuleStoredFinal, res.Rule)
	}
}

func TestEvaluate_StoredValueIgnoredWhileUnpaid(t *testing.T) {
	res := Evaluate(Record{Inspection: "2025-01-10", Stored: int64(99)}, day("2025-01-15"))
	requireDays(t, res, 5)
}

func TestEvaluate_PaidNotDeliveredIsAbsent(t *testing.T) {
	res := Evaluate(Record{Inspection: "2025-01-01", Paid: "2025-01-08"}, day("2025-02-01"))
	assert.Nil(t, res.Days)
	assert.Equal(t, RulePaidNotDelivered, res.Rule)
}

func TestEvaluate_DeliveredAwaitingBilling(t *testing.T) {
	res := Evaluate(Record{Inspection: "2025-01-01", Delivered: "2025-01-05"}, day("2025-02-01"))
	assert.Nil(t, res.Days)
	assert.False(t, res.Persist)
	assert.Equal(t, RuleAwaitingBilling, res.Rule)
}

func TestEvaluate_NothingParsable(t *testing.T) {
	res := Evaluate(Record{Inspection: "lixo", Delivered: "0000-00-00", Billed: "None", Paid: ""}, day("2025-02-01"))
	assert.Nil(t, res.Days)
	assert.False(t, res.Persist)
}

func TestEvaluate_AcceptsNativeTimes(t *testing.T) {
	insp := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	res := Evaluate(Record{Inspection: insp}, time.Date(2025, 1, 15, 23, 59, 0, 0, time.UTC))
	requireDays(t, res, 5)
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   any
		want string
		ok   bool
	}{
		{"2025-01-10", "2025-01-10", true},
		{"2025-01-10 13:45:00", "2025-01-10", true},
		{"2025-01-10T13:45:00-03:00", "2025-01-10", true},
		{"10/01/2025", "2025-01-10", true},
		{"10/01/25", "2025-01-10", true},
		{[]byte("2025-01-10"), "2025-01-10", true},
		{" 2025-01-10 ", "2025-01-10", true},
		{"", "", false},
		{"-", "", false},
		{"None", "", false},
		{"null", "", false},
		{"0000-00-00", "", false},
		{"31/02/2025", "", false},
		{"amanhã", "", false},
		{42, "", false},
		{nil, "", false},
		{time.Time{}, "", false},
	}

	for _, c := range cases {
		got, ok := ParseDate(c.in)
		assert.Equal(t, c.ok, ok, "input %v", c.in)
		if c.ok {
			assert.Equal(t, c.want, got.Format("2006-01-02"), "input %v", c.in)
		}
	}
}

func TestParseStored(t *testing.T) {
	n, ok := ParseStored(int64(5))
	assert.True(t, ok)
	assert.Equal(t, 5, n)

	n, ok = ParseStored("12")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = ParseStored(nil)
	assert.False(t, ok)
	_, ok = ParseStored("x")
	assert.False(t, ok)
	_, ok = ParseStored(2.5)
	assert.False(t, ok)
}

// -------------------------
// Enricher
// -------------------------

type testStore struct {
	saved map[int64]int
	err   error
}

func (s *testStore) SaveDeadline(ctx context.Context, id int64, days int) error {
	if s.err != nil {
		return s.err
	}
	if s.saved == nil {
		s.saved = map[int64]int{}
	}
	s.saved[id] = days
	return nil
}

func finalizedRecord() Record {
	return Record{ID: 42, Inspection: "2025-01-01", Delivered: "2025-01-05", Paid: "2025-01-08"}
}

func TestEnricher_PersistsWhenSync(t *testing.T) {
	store := &testStore{}
	e := NewEnricher(store, ModeSync, logger.NewNop())

	res := e.Enrich(context.Background(), finalizedRecord(), day("2025-03-01"))
	requireDays(t, res, 4)
	assert.Equal(t, map[int64]int{42: 4}, store.saved)
}

func TestEnricher_DoesNotWriteWhenOff(t *testing.T) {
	store := &testStore{}
	e := NewEnricher(store, ModeOff, logger.NewNop())

	res := e.Enrich(context.Background(), finalizedRecord(), day("2025-03-01"))
	requireDays(t, res, 4)
	assert.Empty(t, store.saved)
}

func TestEnricher_StoreFailureIsSwallowed(t *testing.T) {
	store := &testStore{err: errors.New("deadlock")}
	e := NewEnricher(store, ModeSync, logger.NewNop())

	res := e.Enrich(context.Background(), finalizedRecord(), day("2025-03-01"))
	requireDays(t, res, 4)
	assert.True(t, res.Persist)
}

func TestEnricher_NonPersistingRuleNeverWrites(t *testing.T) {
	store := &testStore{}
	e := NewEnricher(store, ModeSync, logger.NewNop())

	e.Enrich(context.Background(), Record{ID: 1, Inspection: "2025-01-10"}, day("2025-01-15"))
	assert.Empty(t, store.saved)
}

func TestEnricher_NilStoreIsOff(t *testing.T) {
	e := NewEnricher(nil, ModeSync, nil)
	res := e.Enrich(context.Background(), finalizedRecord(), day("2025-03-01"))
	requireDays(t, res, 4)
}
