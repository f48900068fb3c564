package profile

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

func TestUpsert_ReturnsStoredSlugOnConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	now := time.Now()

	// Повторный Upsert существующего профиля: public_slug в DO UPDATE не
	// входит, поэтому БД возвращает ранее сохраненный slug, а не свежий
	mock.ExpectQuery(`(?s)INSERT INTO owner_profiles.*ON CONFLICT \(owner_id\) DO UPDATE.*RETURNING public_slug, created_at, updated_at`).
		WillReturnRows(sqlmock.NewRows([]string{"public_slug", "created_at", "updated_at"}).
			AddRow("stored-slug", now, now))

	p := &domain.OwnerProfile{
		OwnerID:          7,
		DisplayName:      "Owner",
		BufferMinutes:    15,
		OfferedDurations: []int{30, 60},
		PublicSlug:       "freshly-minted-slug",
	}

	saved, err := repo.Upsert(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, "stored-slug", saved.PublicSlug)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_InsertKeepsMintedSlug(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	now := time.Now()

	// Первая вставка: конфликта нет, RETURNING отдает только что записанный slug
	mock.ExpectQuery(`(?s)INSERT INTO owner_profiles.*RETURNING public_slug, created_at, updated_at`).
		WillReturnRows(sqlmock.NewRows([]string{"public_slug", "created_at", "updated_at"}).
			AddRow("freshly-minted-slug", now, now))

	p := &domain.OwnerProfile{
		OwnerID:          7,
		DisplayName:      "Owner",
		BufferMinutes:    0,
		OfferedDurations: []int{30},
		PublicSlug:       "freshly-minted-slug",
	}

	saved, err := repo.Upsert(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, "freshly-minted-slug", saved.PublicSlug)
	require.NoError(t, mock.ExpectationsWereMet())
}
