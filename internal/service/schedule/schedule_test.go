package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func admitted(t *testing.T, start string, duration int) *domain.Booking {
	t.Helper()
	return &domain.Booking{
		StartTime:       mustTime(t, start),
		DurationMinutes: duration,
		Status:          domain.StatusAccepted,
	}
}

func TestGenerateSlots(t *testing.T) {
	t.Run("regular grid", func(t *testing.T) {
		marks, err := GenerateSlots(domain.TimeRange{
			Start:           mustTime(t, "09:00"),
			End:             mustTime(t, "10:00"),
			IntervalMinutes: 30,
		})
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"09:00", "09:30"}, marks)
	})

	t.Run("last mark strictly before end", func(t *testing.T) {
		marks, err := GenerateSlots(domain.TimeRange{
			Start:           mustTime(t, "09:00"),
			End:             mustTime(t, "10:00"),
			IntervalMinutes: 45,
		})
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"09:00", "09:45"}, marks)
	})

	t.Run("start >= end yields no slots, no error", func(t *testing.T) {
		marks, err := GenerateSlots(domain.TimeRange{
			Start:           mustTime(t, "14:00"),
			End:             mustTime(t, "12:00"),
			IntervalMinutes: 30,
		})
		require.NoError(t, err)
		assert.Empty(t, marks)
	})

	t.Run("non-positive interval fails instead of looping", func(t *testing.T) {
		_, err := GenerateSlots(domain.TimeRange{
			Start:           mustTime(t, "09:00"),
			End:             mustTime(t, "10:00"),
			IntervalMinutes: 0,
		})
		require.ErrorIs(t, err, ErrInvalidInterval)

		_, err = GenerateSlots(domain.TimeRange{
			Start:           mustTime(t, "09:00"),
			End:             mustTime(t, "10:00"),
			IntervalMinutes: -15,
		})
		require.ErrorIs(t, err, ErrInvalidInterval)
	})
}

func TestBlockedMarks(t *testing.T) {
	t.Run("booking extended by buffer", func(t *testing.T) {
		marks := BlockedMarks([]*domain.Booking{admitted(t, "09:00", 30)}, nil, 15)

		// Занято от 09:00 до 09:45 с шагом 15 минут
		assert.Len(t, marks, 3)
		assert.Contains(t, marks, types.TimeString("09:00"))
		assert.Contains(t, marks, types.TimeString("09:15"))
		assert.Contains(t, marks, types.TimeString("09:30"))
		assert.NotContains(t, marks, types.TimeString("09:45"))
	})

	t.Run("pending bookings do not occupy the grid", func(t *testing.T) {
		pending := admitted(t, "09:00", 30)
		pending.Status = domain.StatusPending

		marks := BlockedMarks([]*domain.Booking{pending}, nil, 0)
		assert.Empty(t, marks)
	})

	t.Run("arranged bookings occupy the grid", func(t *testing.T) {
		b := admitted(t, "10:00", 60)
		b.Status = domain.StatusArranged

		marks := BlockedMarks([]*domain.Booking{b}, nil, 0)
		assert.Contains(t, marks, types.TimeString("10:45"))
		assert.NotContains(t, marks, types.TimeString("11:00"))
	})

	t.Run("explicit block", func(t *testing.T) {
		blocks := []domain.TimeBlock{{
			ID:    "lunch",
			Title: "Lunch",
			Start: mustTime(t, "12:00"),
			End:   mustTime(t, "13:00"),
		}}

		marks := BlockedMarks(nil, blocks, 0)
		assert.Len(t, marks, 4)
		assert.Contains(t, marks, types.TimeString("12:00"))
		assert.Contains(t, marks, types.TimeString("12:45"))
		assert.NotContains(t, marks, types.TimeString("13:00"))
	})

	t.Run("inverted block blocks nothing", func(t *testing.T) {
		blocks := []domain.TimeBlock{{
			Start: mustTime(t, "15:00"),
			End:   mustTime(t, "14:00"),
		}}
		assert.Empty(t, BlockedMarks(nil, blocks, 0))
	})

	t.Run("walk clamps at midnight", func(t *testing.T) {
		marks := BlockedMarks([]*domain.Booking{admitted(t, "23:30", 60)}, nil, 0)
		assert.Contains(t, marks, types.TimeString("23:45"))
		assert.Len(t, marks, 2)
	})
}

func TestAvailableSlots(t *testing.T) {
	rule := func(ranges ...domain.TimeRange) *domain.AvailabilityRule {
		return &domain.AvailabilityRule{Ranges: ranges}
	}

	t.Run("empty morning range", func(t *testing.T) {
		slots, err := AvailableSlots(rule(domain.TimeRange{
			Start:           mustTime(t, "09:00"),
			End:             mustTime(t, "10:00"),
			IntervalMinutes: 30,
		}), nil, 0)
		require.NoError(t, err)

		assert.Equal(t, []domain.AvailableSlot{
			{StartTime: "09:00", MaxDurationMinutes: 30},
			{StartTime: "09:30", MaxDurationMinutes: 30},
		}, slots)
	})

	t.Run("buffer-extended occupancy empties the hour", func(t *testing.T) {
		slots, err := AvailableSlots(rule(domain.TimeRange{
			Start:           mustTime(t, "09:00"),
			End:             mustTime(t, "10:00"),
			IntervalMinutes: 30,
		}), []*domain.Booking{admitted(t, "09:00", 30)}, 15)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("slot with buffer must fit inside its range", func(t *testing.T) {
		slots, err := AvailableSlots(rule(domain.TimeRange{
			Start:           mustTime(t, "09:00"),
			End:             mustTime(t, "10:00"),
			IntervalMinutes: 30,
		}), nil, 15)
		require.NoError(t, err)

		// 09:30 + 30 + 15 = 10:15 выходит за конец диапазона
		assert.Equal(t, []domain.AvailableSlot{
			{StartTime: "09:00", MaxDurationMinutes: 30},
		}, slots)
	})

	t.Run("overlapping ranges keep the maximum duration", func(t *testing.T) {
		slots, err := AvailableSlots(rule(
			domain.TimeRange{Start: mustTime(t, "09:00"), End: mustTime(t, "11:00"), IntervalMinutes: 30},
			domain.TimeRange{Start: mustTime(t, "09:00"), End: mustTime(t, "11:00"), IntervalMinutes: 60},
		), nil, 0)
		require.NoError(t, err)

		assert.Equal(t, []domain.AvailableSlot{
			{StartTime: "09:00", MaxDurationMinutes: 60},
			{StartTime: "09:30", MaxDurationMinutes: 30},
			{StartTime: "10:00", MaxDurationMinutes: 60},
			{StartTime: "10:30", MaxDurationMinutes: 30},
		}, slots)
	})

	t.Run("returned marks are never blocked", func(t *testing.T) {
		r := rule(
			domain.TimeRange{Start: mustTime(t, "08:00"), End: mustTime(t, "18:00"), IntervalMinutes: 30},
		)
		r.Blocks = []domain.TimeBlock{
			{Start: mustTime(t, "12:00"), End: mustTime(t, "13:00"), Title: "Lunch"},
		}
		bookings := []*domain.Booking{
			admitted(t, "09:00", 60),
			admitted(t, "15:30", 30),
		}

		slots, err := AvailableSlots(r, bookings, 15)
		require.NoError(t, err)
		require.NotEmpty(t, slots)

		blocked := BlockedMarks(bookings, r.Blocks, 15)
		for _, s := range slots {
			assert.NotContains(t, blocked, s.StartTime)
		}
	})

	t.Run("nil rule resolves to no slots", func(t *testing.T) {
		slots, err := AvailableSlots(nil, nil, 0)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("invalid interval propagates", func(t *testing.T) {
		_, err := AvailableSlots(rule(domain.TimeRange{
			Start:           mustTime(t, "09:00"),
			End:             mustTime(t, "10:00"),
			IntervalMinutes: -1,
		}), nil, 0)
		require.ErrorIs(t, err, ErrInvalidInterval)
	})
}

func TestFilterPast(t *testing.T) {
	slots := []domain.AvailableSlot{
		{StartTime: "09:00", MaxDurationMinutes: 30},
		{StartTime: "09:30", MaxDurationMinutes: 30},
		{StartTime: "10:00", MaxDurationMinutes: 30},
	}

	now := time.Date(2025, 11, 3, 9, 30, 45, 0, time.UTC)

	// Метка, совпадающая с текущей минутой, тоже отбрасывается
	filtered := FilterPast(slots, now)
	assert.Equal(t, []domain.AvailableSlot{
		{StartTime: "10:00", MaxDurationMinutes: 30},
	}, filtered)
}

func TestHasOpenSlots(t *testing.T) {
	rule := &domain.AvailabilityRule{
		Ranges: []domain.TimeRange{
			{Start: "09:00", End: "10:00", IntervalMinutes: 30},
		},
	}

	morning := time.Date(2025, 11, 3, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 11, 3, 20, 0, 0, 0, time.UTC)

	open, err := HasOpenSlots(rule, nil, 0, morning)
	require.NoError(t, err)
	assert.True(t, open)

	open, err = HasOpenSlots(rule, nil, 0, evening)
	require.NoError(t, err)
	assert.False(t, open)
}

func TestCopyForward(t *testing.T) {
	monday := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	lastMonday := monday.AddDate(0, 0, -7)

	workday := []domain.TimeRange{
		{Start: "09:00", End: "17:00", IntervalMinutes: 60},
	}

	rules := map[string]*domain.AvailabilityRule{
		lastMonday.Format(domain.DateFormat): {Ranges: workday},
	}

	t.Run("fills empty day from prior week", func(t *testing.T) {
		patch := CopyForward(rules, monday, 7, 7)

		require.Contains(t, patch, monday.Format(domain.DateFormat))
		assert.Equal(t, workday, patch[monday.Format(domain.DateFormat)])
		// Остальные дни окна не имеют образца неделю назад
		assert.Len(t, patch, 1)
	})

	t.Run("never overwrites a day with ranges", func(t *testing.T) {
		withRule := map[string]*domain.AvailabilityRule{
			lastMonday.Format(domain.DateFormat): {Ranges: workday},
			monday.Format(domain.DateFormat): {Ranges: []domain.TimeRange{
				{Start: "10:00", End: "12:00", IntervalMinutes: 30},
			}},
		}

		patch := CopyForward(withRule, monday, 7, 7)
		assert.NotContains(t, patch, monday.Format(domain.DateFormat))
	})

	t.Run("idempotent", func(t *testing.T) {
		first := CopyForward(rules, monday, 7, 7)

		// Применяем патч и запускаем повторно
		applied := map[string]*domain.AvailabilityRule{
			lastMonday.Format(domain.DateFormat): rules[lastMonday.Format(domain.DateFormat)],
		}
		for day, ranges := range first {
			applied[day] = &domain.AvailabilityRule{Ranges: ranges}
		}

		second := CopyForward(applied, monday, 7, 7)
		assert.Empty(t, second)
	})

	t.Run("day with empty range list is treated as empty", func(t *testing.T) {
		withEmpty := map[string]*domain.AvailabilityRule{
			lastMonday.Format(domain.DateFormat): {Ranges: workday},
			monday.Format(domain.DateFormat):     {Ranges: nil},
		}

		patch := CopyForward(withEmpty, monday, 7, 7)
		assert.Contains(t, patch, monday.Format(domain.DateFormat))
	})
}
