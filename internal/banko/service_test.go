package banko_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"ms-content/internal/banko"
	"ms-content/internal/banko/db"
	"ms-content/internal/content"
	"ms-content/internal/models"
)

func setupService(t *testing.T) (*banko.Service, *bun.DB) {
	t.Helper()
	sqldb, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	ctx := context.Background()

	_, err = bunDB.NewCreateTable().Model((*models.BankoCoupon)(nil)).Exec(ctx)
	require.NoError(t, err)
	_, err = bunDB.NewCreateTable().Model((*models.BankoMatch)(nil)).Exec(ctx)
	require.NoError(t, err)

	return banko.NewService(db.New(bunDB)), bunDB
}

func sampleMatches() []models.BankoMatchInput {
	kickoff := time.Now().Add(3 * time.Hour)
	return []models.BankoMatchInput{
		{HomeTeam: "Galatasaray", AwayTeam: "Rizespor", League: "Süper Lig", Prediction: "MS 1", Odds: 1.45, MatchTime: kickoff},
		{HomeTeam: "Liverpool", AwayTeam: "Everton", League: "Premier League", Prediction: "2.5 Üst", Odds: 1.60, MatchTime: kickoff},
	}
}

func TestCreateValidation(t *testing.T) {
	svc, bunDB := setupService(t)
	defer bunDB.Close()
	ctx := context.Background()

	_, err := svc.Create(ctx, models.BankoCouponCreateRequest{CouponDate: time.Now(), Matches: sampleMatches()})
	assert.ErrorIs(t, err, content.ErrValidation)

	_, err = svc.Create(ctx, models.BankoCouponCreateRequest{Title: "Günün Bankosu", CouponDate: time.Now()})
	assert.ErrorIs(t, err, content.ErrValidation)

	badOdds := sampleMatches()
	badOdds[0].Odds = 0.95
	_, err = svc.Create(ctx, models.BankoCouponCreateRequest{
		Title: "Günün Bankosu", CouponDate: time.Now(), Matches: badOdds,
	})
	assert.ErrorIs(t, err, content.ErrValidation)
}

func TestTotalOddsIsProduct(t *testing.T) {
	svc, bunDB := setupService(t)
	defer bunDB.Close()
	ctx := context.Background()

	created, err := svc.Create(ctx, models.BankoCouponCreateRequest{
		Title:      "Günün Bankosu",
		CouponDate: time.Now(),
		Matches:    sampleMatches(),
	})
	require.NoError(t, err)
	assert.Equal(t, "gunun-bankosu", created.Slug)
	assert.InDelta(t, 1.45*1.60, created.TotalOdds(), 0.0001)

	// Reload through the relation and check positions survived.
	loaded, err := svc.GetBySlug(ctx, created.Slug)
	require.NoError(t, err)
	require.Len(t, loaded.Matches, 2)
	assert.Equal(t, 1, loaded.Matches[0].Position)
	assert.Equal(t, "Galatasaray", loaded.Matches[0].HomeTeam)
	assert.InDelta(t, 1.45*1.60, loaded.TotalOdds(), 0.0001)

	empty := models.BankoCoupon{}
	assert.Equal(t, 0.0, empty.TotalOdds())
}

func TestMatchReplacement(t *testing.T) {
	svc, bunDB := setupService(t)
	defer bunDB.Close()
	ctx := context.Background()

	created, err := svc.Create(ctx, models.BankoCouponCreateRequest{
		Title:      "Akşam Kuponu",
		CouponDate: time.Now(),
		Matches:    sampleMatches(),
	})
	require.NoError(t, err)

	replacement := []models.BankoMatchInput{
		{HomeTeam: "Fenerbahçe", AwayTeam: "Beşiktaş", Prediction: "KG Var", Odds: 1.80},
	}
	updated, err := svc.Update(ctx, created.ID, models.BankoCouponUpdateRequest{Matches: &replacement})
	require.NoError(t, err)
	require.Len(t, updated.Matches, 1)
	assert.Equal(t, "Fenerbahçe", updated.Matches[0].HomeTeam)

	// The old matches are really gone from storage.
	loaded, err := svc.GetBySlug(ctx, created.Slug)
	require.NoError(t, err)
	require.Len(t, loaded.Matches, 1)

	// Emptying the slip is refused.
	var none []models.BankoMatchInput
	_, err = svc.Update(ctx, created.ID, models.BankoCouponUpdateRequest{Matches: &none})
	assert.ErrorIs(t, err, content.ErrValidation)
}

func TestInactiveCouponHiddenBySlug(t *testing.T) {
	svc, bunDB := setupService(t)
	defer bunDB.Close()
	ctx := context.Background()

	created, err := svc.Create(ctx, models.BankoCouponCreateRequest{
		Title:      "Arşiv Kuponu",
		CouponDate: time.Now(),
		Matches:    sampleMatches(),
	})
	require.NoError(t, err)

	_, err = svc.GetBySlug(ctx, created.Slug)
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(ctx, created.ID, models.BankoCouponUpdateRequest{IsActive: &inactive})
	require.NoError(t, err)

	// Deactivating the slip takes the public detail page with it.
	_, err = svc.GetBySlug(ctx, created.Slug)
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestTodayFiltersByDate(t *testing.T) {
	svc, bunDB := setupService(t)
	defer bunDB.Close()
	ctx := context.Background()

	_, err := svc.Create(ctx, models.BankoCouponCreateRequest{
		Title:      "Bugünün Kuponu",
		CouponDate: time.Now(),
		Matches:    sampleMatches(),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, models.BankoCouponCreateRequest{
		Title:      "Dünün Kuponu",
		CouponDate: time.Now().AddDate(0, 0, -1),
		Matches:    sampleMatches(),
	})
	require.NoError(t, err)

	today, err := svc.Today(ctx)
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, "Bugünün Kuponu", today[0].Title)
}

func TestDeleteRemovesMatches(t *testing.T) {
	svc, bunDB := setupService(t)
	defer bunDB.Close()
	ctx := context.Background()

	created, err := svc.Create(ctx, models.BankoCouponCreateRequest{
		Title:      "Silinecek Kupon",
		CouponDate: time.Now(),
		Matches:    sampleMatches(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), content.ErrNotFound)

	count, err := bunDB.NewSelect().Model((*models.BankoMatch)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
