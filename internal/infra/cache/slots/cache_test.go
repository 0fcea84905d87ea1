package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	testHash  = "appointments:slots:biz-1:2026-03-02"
	testGen   = "appointments:slots-gen:biz-1:2026-03-02"
	testField = "p-1:svc-1"
	testEntry = `{"durationMinutes":30,"slots":[{"time":"09:00","available":true},{"time":"09:30","available":false,"reason":"Already booked"}]}`
)

var testKey = Key{BusinessID: "biz-1", ProviderID: "p-1", ServiceID: "svc-1", Date: "2026-03-02"}

type countingMetrics struct {
	ops map[string]int
}

func (m *countingMetrics) IncCacheOperation(operation, result string) {
	if m.ops == nil {
		m.ops = map[string]int{}
	}
	m.ops[operation+":"+result]++
}

func TestGet_Hit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	metrics := &countingMetrics{}
	cache := NewCache(client, 5*time.Minute, metrics)

	mock.ExpectHGet(testHash, testField).SetVal(testEntry)

	slots, found, err := cache.Get(context.Background(), testKey)

	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []domain.TimeSlot{
		{Time: "09:00", Available: true},
		{Time: "09:30", Available: false, Reason: domain.ReasonAlreadyBooked},
	}, slots)
	assert.Equal(t, 1, metrics.ops["get:hit"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_Miss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, time.Minute, nil)

	mock.ExpectHGet(testHash, testField).RedisNil()

	slots, found, err := cache.Get(context.Background(), testKey)

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, slots)
}

func TestGet_Errors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, time.Minute, nil)

	mock.ExpectHGet(testHash, testField).SetErr(errors.New("connection reset"))
	_, _, err := cache.Get(context.Background(), testKey)
	assert.ErrorIs(t, err, ErrCacheUnavailable)

	mock.ExpectHGet(testHash, testField).SetVal("not json")
	_, _, err = cache.Get(context.Background(), testKey)
	assert.ErrorIs(t, err, ErrCorruptedEntry)
}

var testSlots = []domain.TimeSlot{
	{Time: "09:00", Available: true},
	{Time: "09:30", Available: false, Reason: domain.ReasonAlreadyBooked},
}

func TestGeneration(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, 5*time.Minute, nil)

	mock.ExpectGet(testGen).RedisNil()
	gen, err := cache.Generation(context.Background(), "biz-1", "2026-03-02")
	require.NoError(t, err)
	assert.Zero(t, gen)

	mock.ExpectGet(testGen).SetVal("7")
	gen, err = cache.Generation(context.Background(), "biz-1", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, int64(7), gen)

	mock.ExpectGet(testGen).SetErr(errors.New("connection reset"))
	_, err = cache.Generation(context.Background(), "biz-1", "2026-03-02")
	assert.ErrorIs(t, err, ErrCacheUnavailable)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPut(t *testing.T) {
	client, mock := redismock.NewClientMock()
	metrics := &countingMetrics{}
	cache := NewCache(client, 5*time.Minute, metrics)

	mock.ExpectEvalSha(putScript.Hash(), []string{testGen, testHash}, "3", testField, testEntry, int64(300)).SetVal(int64(1))

	err := cache.Put(context.Background(), testKey, 3, 30, testSlots)

	require.NoError(t, err)
	assert.Equal(t, 1, metrics.ops["put:ok"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPut_SkippedAfterConcurrentBooking(t *testing.T) {
	client, mock := redismock.NewClientMock()
	metrics := &countingMetrics{}
	cache := NewCache(client, 5*time.Minute, metrics)
	ctx := context.Background()

	// Промах: читатель берет поколение до загрузки бронирований
	mock.ExpectGet(testGen).RedisNil()
	gen, err := cache.Generation(ctx, "biz-1", "2026-03-02")
	require.NoError(t, err)

	// Между чтением бронирований и Put фиксируется новое бронирование
	mock.ExpectIncr(testGen).SetVal(1)
	mock.ExpectExpire(testGen, generationTTL).SetVal(true)
	mock.ExpectHGetAll(testHash).SetVal(map[string]string{})
	require.NoError(t, cache.ApplyBooking(ctx, domain.Booking{BusinessID: "biz-1", ProviderID: "p-1", Date: "2026-03-02"},
		func(slots []domain.TimeSlot, _ int) []domain.TimeSlot { return slots }))

	// Скрипт видит поколение 1 вместо 0 и ничего не пишет
	mock.ExpectEvalSha(putScript.Hash(), []string{testGen, testHash}, "0", testField, testEntry, int64(300)).SetVal(int64(0))
	require.NoError(t, cache.Put(ctx, testKey, gen, 30, testSlots))

	assert.Equal(t, 1, metrics.ops["put:stale"])
	assert.Zero(t, metrics.ops["put:ok"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPut_Error(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, 5*time.Minute, nil)

	mock.ExpectEvalSha(putScript.Hash(), []string{testGen, testHash}, "0", testField, testEntry, int64(300)).
		SetErr(errors.New("connection reset"))

	assert.ErrorIs(t, cache.Put(context.Background(), testKey, 0, 30, testSlots), ErrCacheUnavailable)
}

func TestApplyBooking_PatchesOnlyProviderFields(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, 5*time.Minute, nil)

	mock.ExpectIncr(testGen).SetVal(4)
	mock.ExpectExpire(testGen, generationTTL).SetVal(true)
	mock.ExpectHGetAll(testHash).SetVal(map[string]string{
		testField:   testEntry,
		"p-2:svc-1": testEntry,
	})
	mock.ExpectHSet(testHash, testField,
		`{"durationMinutes":30,"slots":[{"time":"09:00","available":false,"reason":"Recently booked"},{"time":"09:30","available":false,"reason":"Already booked"}]}`,
	).SetVal(0)

	var gotDuration int
	patch := func(slots []domain.TimeSlot, durationMinutes int) []domain.TimeSlot {
		gotDuration = durationMinutes
		slots[0].Available = false
		slots[0].Reason = domain.ReasonRecentlyBooked
		return slots
	}

	err := cache.ApplyBooking(context.Background(), domain.Booking{BusinessID: "biz-1", ProviderID: "p-1", Date: "2026-03-02"}, patch)

	require.NoError(t, err)
	assert.Equal(t, 30, gotDuration)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyBooking_DropsCorruptedField(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, 5*time.Minute, nil)

	mock.ExpectIncr(testGen).SetVal(1)
	mock.ExpectExpire(testGen, generationTTL).SetVal(true)
	mock.ExpectHGetAll(testHash).SetVal(map[string]string{testField: "{broken"})
	mock.ExpectHDel(testHash, testField).SetVal(1)

	err := cache.ApplyBooking(context.Background(), domain.Booking{BusinessID: "biz-1", ProviderID: "p-1", Date: "2026-03-02"},
		func(slots []domain.TimeSlot, _ int) []domain.TimeSlot {
			t.Fatal("patch must not run for corrupted entries")
			return slots
		})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, 5*time.Minute, nil)

	mock.ExpectIncr(testGen).SetVal(2)
	mock.ExpectExpire(testGen, generationTTL).SetVal(true)
	mock.ExpectIncr("appointments:slots-gen:biz-1:2026-03-09").SetVal(1)
	mock.ExpectExpire("appointments:slots-gen:biz-1:2026-03-09", generationTTL).SetVal(true)
	mock.ExpectDel(testHash, "appointments:slots:biz-1:2026-03-09").SetVal(2)

	require.NoError(t, cache.Invalidate(context.Background(), "biz-1", "2026-03-02", "2026-03-09"))
	require.NoError(t, cache.Invalidate(context.Background(), "biz-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoop(t *testing.T) {
	var store Store = Noop{}

	_, found, err := store.Get(context.Background(), testKey)
	assert.NoError(t, err)
	assert.False(t, found)
	gen, err := store.Generation(context.Background(), "biz-1", "2026-03-02")
	assert.NoError(t, err)
	assert.Zero(t, gen)
	assert.NoError(t, store.Put(context.Background(), testKey, gen, 30, nil))
	assert.NoError(t, store.Invalidate(context.Background(), "biz-1", "2026-03-02"))
}
