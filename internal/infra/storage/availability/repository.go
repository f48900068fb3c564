package availability

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MeetingService/pkg/psqlbuilder"
)

var ruleColumns = []string{
	"id",
	"owner_id",
	"rule_date",
	"ranges",
	"blocks",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с правилами доступности.
// Диапазоны и блоки хранятся в отдельных JSONB-колонках ranges и blocks.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил доступности
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByOwnerAndDate получает правило доступности владельца на дату
func (r *Repository) GetByOwnerAndDate(ctx context.Context, ownerID int64, date time.Time) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		Where(squirrel.Eq{"owner_id": ownerID, "rule_date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerAndDate - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	rule, err := scanRule(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerAndDate - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// GetByOwnerAndDateRange получает правила владельца за период [from, to]
func (r *Repository) GetByOwnerAndDateRange(ctx context.Context, ownerID int64, from, to time.Time) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.GtOrEq{"rule_date": from}).
		Where(squirrel.LtOrEq{"rule_date": to}).
		OrderBy("rule_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerAndDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerAndDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.AvailabilityRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByOwnerAndDateRange - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerAndDateRange - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// Upsert создает или полностью заменяет правило владельца на дату
func (r *Repository) Upsert(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	ranges, err := json.Marshal(rule.Ranges)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - ranges: %v", ErrEncodeRule, err)
	}
	blocks, err := json.Marshal(rule.Blocks)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - blocks: %v", ErrEncodeRule, err)
	}

	query, args, err := psqlbuilder.Insert("availability_rules").
		Columns("owner_id", "rule_date", "ranges", "blocks").
		Values(rule.OwnerID, rule.Date, ranges, blocks).
		Suffix(`ON CONFLICT (owner_id, rule_date) DO UPDATE
			SET ranges = EXCLUDED.ranges, blocks = EXCLUDED.blocks, updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// scanRule сканирует одну строку в правило доступности
func scanRule(scan func(dest ...interface{}) error) (*domain.AvailabilityRule, error) {
	var rule domain.AvailabilityRule
	var ranges, blocks []byte
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&rule.ID,
		&rule.OwnerID,
		&rule.Date,
		&ranges,
		&blocks,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(ranges) > 0 {
		if err := json.Unmarshal(ranges, &rule.Ranges); err != nil {
			return nil, err
		}
	}
	if len(blocks) > 0 {
		if err := json.Unmarshal(blocks, &rule.Blocks); err != nil {
			return nil, err
		}
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}
