package stats_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"ms-content/internal/models"
	"ms-content/internal/stats"
)

func setupService(t *testing.T) (*stats.Service, *bun.DB) {
	t.Helper()
	sqldb, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	ctx := context.Background()

	for _, model := range []any{
		(*models.Bonus)(nil), (*models.Campaign)(nil), (*models.SiteReview)(nil),
	} {
		_, err = bunDB.NewCreateTable().Model(model).Exec(ctx)
		require.NoError(t, err)
	}
	return stats.NewService(bunDB), bunDB
}

func insertBonus(t *testing.T, bunDB *bun.DB, bonusType string, clicks int64, approved bool) {
	t.Helper()
	now := time.Now()
	b := &models.Bonus{
		ID:         uuid.New().String(),
		Slug:       uuid.New().String(),
		Title:      "Bonus",
		BonusType:  bonusType,
		IsActive:   true,
		IsApproved: approved,
		ClickCount: clicks,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	_, err := bunDB.NewInsert().Model(b).Exec(context.Background())
	require.NoError(t, err)
}

func TestOverview(t *testing.T) {
	svc, bunDB := setupService(t)
	defer bunDB.Close()

	insertBonus(t, bunDB, "welcome", 10, true)
	insertBonus(t, bunDB, "welcome", 5, true)
	insertBonus(t, bunDB, "cashback", 0, false)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, overview.TotalBonuses)
	assert.Equal(t, 2, overview.ActiveBonuses)
	assert.Equal(t, 1, overview.PendingBonuses)
	assert.Equal(t, 15, overview.TotalClicks)
	assert.Equal(t, 0, overview.PendingReviews)
}

func TestClicksByType(t *testing.T) {
	svc, bunDB := setupService(t)
	defer bunDB.Close()

	insertBonus(t, bunDB, "welcome", 10, true)
	insertBonus(t, bunDB, "welcome", 5, true)
	insertBonus(t, bunDB, "cashback", 40, true)

	metrics, err := svc.ClicksByType(context.Background())
	require.NoError(t, err)
	require.Len(t, metrics, 2)

	assert.Equal(t, "cashback", metrics[0].BonusType)
	assert.Equal(t, 40, metrics[0].TotalClicks)
	assert.Equal(t, "welcome", metrics[1].BonusType)
	assert.Equal(t, 2, metrics[1].BonusCount)
	assert.Equal(t, 15, metrics[1].TotalClicks)
}

func TestTopBonusesSkipsUnclicked(t *testing.T) {
	svc, bunDB := setupService(t)
	defer bunDB.Close()

	insertBonus(t, bunDB, "welcome", 10, true)
	insertBonus(t, bunDB, "cashback", 0, true)

	top, err := svc.TopBonuses(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 10, top[0].ClickCount)
}
