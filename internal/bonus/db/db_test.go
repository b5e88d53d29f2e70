package db_test

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

	"ms-content/internal/bonus/db"
	"ms-content/internal/content"
	"ms-content/internal/models"
)

func setupTestDB(t *testing.T) (*db.DB, *bun.DB) {
	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}
	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = bunDB.NewCreateTable().Model((*models.Bonus)(nil)).Exec(context.Background())
	if err != nil {
		t.Fatalf("Failed to create bonuses table: %v", err)
	}
	return db.New(bunDB), bunDB
}

func insertBonus(t *testing.T, d *db.DB, mutate func(*models.Bonus)) *models.Bonus {
	t.Helper()
	now := time.Now()
	b := &models.Bonus{
		ID:         uuid.New().String(),
		Slug:       uuid.New().String(),
		Title:      "Deneme Bonusu",
		IsActive:   true,
		IsApproved: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if mutate != nil {
		mutate(b)
	}
	require.NoError(t, d.Insert(context.Background(), b))
	return b
}

func TestListExcludesUnapprovedByDefault(t *testing.T) {
	d, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()

	approved := insertBonus(t, d, nil)
	pending := insertBonus(t, d, func(b *models.Bonus) { b.IsApproved = false })

	rows, err := d.List(ctx, models.BonusFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, approved.ID, rows[0].ID)

	// Explicitly asking for unapproved rows flips the gate.
	notApproved := false
	rows, err = d.List(ctx, models.BonusFilter{Approved: &notApproved})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, pending.ID, rows[0].ID)
}

func TestListDefaultOrder(t *testing.T) {
	d, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	older := insertBonus(t, d, func(b *models.Bonus) {
		b.Priority = 5
		b.CreatedAt = base
	})
	newer := insertBonus(t, d, func(b *models.Bonus) {
		b.Priority = 5
		b.CreatedAt = base.Add(10 * time.Minute)
	})
	lowPriority := insertBonus(t, d, func(b *models.Bonus) {
		b.Priority = 1
		b.CreatedAt = base.Add(20 * time.Minute)
	})
	featured := insertBonus(t, d, func(b *models.Bonus) {
		b.IsFeatured = true
		b.Priority = 0
		b.CreatedAt = base
	})

	rows, err := d.List(ctx, models.BonusFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// Featured leads regardless of priority; priority ties break on
	// created_at descending.
	assert.Equal(t, featured.ID, rows[0].ID)
	assert.Equal(t, newer.ID, rows[1].ID)
	assert.Equal(t, older.ID, rows[2].ID)
	assert.Equal(t, lowPriority.ID, rows[3].ID)
}

func TestListFilters(t *testing.T) {
	d, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()

	match := insertBonus(t, d, func(b *models.Bonus) {
		b.Title = "Hoşgeldin Bonusu"
		b.Slug = "hosgeldin-bonusu"
		b.BonusType = "welcome"
		b.Amount = 500
	})
	insertBonus(t, d, func(b *models.Bonus) {
		b.Title = "Kayıp Bonusu"
		b.Slug = "kayip-bonusu"
		b.BonusType = "cashback"
		b.Amount = 50
	})

	rows, err := d.List(ctx, models.BonusFilter{Query: "hosgeldin"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, match.ID, rows[0].ID)

	rows, err = d.List(ctx, models.BonusFilter{BonusType: "welcome"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	minAmount := 100.0
	rows, err = d.List(ctx, models.BonusFilter{MinAmount: &minAmount})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, match.ID, rows[0].ID)

	maxAmount := 100.0
	rows, err = d.List(ctx, models.BonusFilter{MaxAmount: &maxAmount})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "kayip-bonusu", rows[0].Slug)
}

func TestListPublicDropsExpired(t *testing.T) {
	d, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()
	now := time.Now()

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	insertBonus(t, d, func(b *models.Bonus) { b.Slug = "expired"; b.EndDate = &past })
	insertBonus(t, d, func(b *models.Bonus) { b.Slug = "running"; b.EndDate = &future })
	insertBonus(t, d, func(b *models.Bonus) { b.Slug = "open-ended" })

	rows, err := d.ListPublic(ctx, models.BonusFilter{}, now)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.NotEqual(t, "expired", row.Slug)
	}
}

func TestPublicBySlug(t *testing.T) {
	d, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()
	now := time.Now()

	b := insertBonus(t, d, func(b *models.Bonus) { b.Slug = "deneme-bonusu" })

	got, err := d.PublicBySlug(ctx, "deneme-bonusu", now)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = d.PublicBySlug(ctx, "missing", now)
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestPublicBySlugHonorsModerationGate(t *testing.T) {
	d, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()
	now := time.Now()
	past := now.Add(-time.Hour)

	// Rows the listing hides must be just as invisible on the detail read.
	insertBonus(t, d, func(b *models.Bonus) { b.Slug = "pending"; b.IsApproved = false })
	insertBonus(t, d, func(b *models.Bonus) { b.Slug = "disabled"; b.IsActive = false })
	insertBonus(t, d, func(b *models.Bonus) { b.Slug = "expired"; b.EndDate = &past })

	for _, slug := range []string{"pending", "disabled", "expired"} {
		_, err := d.PublicBySlug(ctx, slug, now)
		assert.ErrorIs(t, err, content.ErrNotFound, slug)
	}
}

func TestPendingPagination(t *testing.T) {
	d, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 30; i++ {
		offset := time.Duration(i) * time.Minute
		insertBonus(t, d, func(b *models.Bonus) {
			b.IsApproved = false
			b.CreatedAt = base.Add(offset)
		})
	}

	page1, total, err := d.Pending(ctx, 1, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(30), total)
	require.Len(t, page1, 25)

	page2, _, err := d.Pending(ctx, 2, 25)
	require.NoError(t, err)
	require.Len(t, page2, 5)

	// Oldest submission first.
	assert.True(t, page1[0].CreatedAt.Before(page1[24].CreatedAt))
}

func TestIncrementClicks(t *testing.T) {
	d, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()

	b := insertBonus(t, d, nil)

	require.NoError(t, d.IncrementClicks(ctx, b.ID))
	require.NoError(t, d.IncrementClicks(ctx, b.ID))

	got, err := d.ByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ClickCount)

	assert.ErrorIs(t, d.IncrementClicks(ctx, "missing"), content.ErrNotFound)
}
