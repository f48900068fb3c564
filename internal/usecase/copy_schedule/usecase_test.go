package copy_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

type stubAvailabilityRepo struct {
	rules    map[string]*domain.AvailabilityRule
	upserted []*domain.AvailabilityRule
}

func newStubAvailabilityRepo(rules ...*domain.AvailabilityRule) *stubAvailabilityRepo {
	r := &stubAvailabilityRepo{rules: make(map[string]*domain.AvailabilityRule)}
	for _, rule := range rules {
		r.rules[rule.Date.Format(domain.DateFormat)] = rule
	}
	return r
}

func (r *stubAvailabilityRepo) GetByOwnerAndDateRange(_ context.Context, ownerID int64, from, to time.Time) ([]*domain.AvailabilityRule, error) {
	var out []*domain.AvailabilityRule
	for _, rule := range r.rules {
		if rule.OwnerID != ownerID {
			continue
		}
		if rule.Date.Before(from) || rule.Date.After(to) {
			continue
		}
		out = append(out, rule)
	}
	return out, nil
}

func (r *stubAvailabilityRepo) Upsert(_ context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	r.upserted = append(r.upserted, rule)
	r.rules[rule.Date.Format(domain.DateFormat)] = rule
	return rule, nil
}

type stubTxManager struct{}

func (stubTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func ruleWithRanges(ownerID int64, date time.Time) *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		OwnerID: ownerID,
		Date:    date,
		Ranges: []domain.TimeRange{
			{Start: "09:00", End: "12:00", IntervalMinutes: 30},
		},
	}
}

func newTestUseCase(repo *stubAvailabilityRepo, now time.Time) *UseCase {
	uc := NewUseCase(repo, stubTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestCopySchedule_FillsEmptyDays(t *testing.T) {
	// Понедельник; образец - тот же день прошлой недели
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	lastMonday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	repo := newStubAvailabilityRepo(ruleWithRanges(10, lastMonday))

	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), Request{OwnerID: 10, Days: 7, OffsetDays: 7})
	require.NoError(t, err)

	// Заполняется только понедельник: у остальных дней окна нет образца
	require.Equal(t, []string{"2025-06-09"}, resp.CopiedDays)
	require.Len(t, repo.upserted, 1)
	assert.Equal(t, []domain.TimeRange{{Start: "09:00", End: "12:00", IntervalMinutes: 30}}, repo.upserted[0].Ranges)
}

func TestCopySchedule_DoesNotOverwriteConfiguredDay(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	lastMonday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	configured := &domain.AvailabilityRule{
		OwnerID: 10,
		Date:    monday,
		Ranges: []domain.TimeRange{
			{Start: "14:00", End: "18:00", IntervalMinutes: 60},
		},
	}

	repo := newStubAvailabilityRepo(ruleWithRanges(10, lastMonday), configured)

	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), Request{OwnerID: 10, Days: 7, OffsetDays: 7})
	require.NoError(t, err)

	assert.Empty(t, resp.CopiedDays)
	assert.Empty(t, repo.upserted)
}

func TestCopySchedule_PreservesBlocksOfEmptyDay(t *testing.T) {
	// День без диапазонов, но с блоками: диапазоны копируются, блоки остаются
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	lastMonday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	blockedOnly := &domain.AvailabilityRule{
		OwnerID: 10,
		Date:    monday,
		Blocks: []domain.TimeBlock{
			{ID: "b1", Title: "Lunch", Start: "13:00", End: "14:00"},
		},
	}

	repo := newStubAvailabilityRepo(ruleWithRanges(10, lastMonday), blockedOnly)

	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), Request{OwnerID: 10, Days: 7, OffsetDays: 7})
	require.NoError(t, err)

	require.Equal(t, []string{"2025-06-09"}, resp.CopiedDays)
	require.Len(t, repo.upserted, 1)
	assert.Len(t, repo.upserted[0].Ranges, 1)
	require.Len(t, repo.upserted[0].Blocks, 1)
	assert.Equal(t, "Lunch", repo.upserted[0].Blocks[0].Title)
}

func TestCopySchedule_Idempotent(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	lastMonday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	repo := newStubAvailabilityRepo(ruleWithRanges(10, lastMonday))

	uc := newTestUseCase(repo, now)

	first, err := uc.Execute(context.Background(), Request{OwnerID: 10, Days: 7, OffsetDays: 7})
	require.NoError(t, err)
	require.Len(t, first.CopiedDays, 1)

	second, err := uc.Execute(context.Background(), Request{OwnerID: 10, Days: 7, OffsetDays: 7})
	require.NoError(t, err)
	assert.Empty(t, second.CopiedDays)
}

func TestCopySchedule_DefaultsApplied(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	repo := newStubAvailabilityRepo()

	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), Request{OwnerID: 10})
	require.NoError(t, err)
	assert.Empty(t, resp.CopiedDays)
}

func TestCopySchedule_NegativeWindowRejected(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(newStubAvailabilityRepo(), now)

	_, err := uc.Execute(context.Background(), Request{OwnerID: 10, Days: -1})
	assert.ErrorIs(t, err, ErrValidation)
}
