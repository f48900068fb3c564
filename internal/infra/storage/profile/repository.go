package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MeetingService/pkg/psqlbuilder"
)

// Repository репозиторий профилей владельцев календаря
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория профилей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByOwnerID получает профиль владельца календаря
func (r *Repository) GetByOwnerID(ctx context.Context, ownerID int64) (*domain.OwnerProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"owner_id",
		"display_name",
		"buffer_minutes",
		"offered_durations",
		"public_slug",
		"created_at",
		"updated_at",
	).
		From("owner_profiles").
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.OwnerProfile
	var durations []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.OwnerID,
		&p.DisplayName,
		&p.BufferMinutes,
		&durations,
		&p.PublicSlug,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerID - scan profile: %v", ErrScanRow, err)
	}

	if len(durations) > 0 {
		if err := json.Unmarshal(durations, &p.OfferedDurations); err != nil {
			return nil, fmt.Errorf("%w: GetByOwnerID - decode durations: %v", ErrScanRow, err)
		}
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// Upsert создает или обновляет профиль владельца
func (r *Repository) Upsert(ctx context.Context, p *domain.OwnerProfile) (*domain.OwnerProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	durations, err := json.Marshal(p.OfferedDurations)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert: %v", ErrEncodeDurations, err)
	}

	query, args, err := psqlbuilder.Insert("owner_profiles").
		Columns("owner_id", "display_name", "buffer_minutes", "offered_durations", "public_slug").
		Values(p.OwnerID, p.DisplayName, p.BufferMinutes, durations, p.PublicSlug).
		Suffix(`ON CONFLICT (owner_id) DO UPDATE
			SET display_name = EXCLUDED.display_name,
			    buffer_minutes = EXCLUDED.buffer_minutes,
			    offered_durations = EXCLUDED.offered_durations,
			    updated_at = NOW()
			RETURNING public_slug, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	// При конфликте public_slug не перезаписывается, поэтому возвращаем
	// сохраненное значение: slug выдается один раз и дальше не меняется
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.PublicSlug, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}
