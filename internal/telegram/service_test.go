package telegram_test

import (
	"bytes"
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"ms-content/internal/content"
	"ms-content/internal/models"
	"ms-content/internal/telegram"
	"ms-content/internal/telegram/db"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47}

func setupService(t *testing.T) (*telegram.Service, *bun.DB) {
	t.Helper()
	sqldb, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = bunDB.NewCreateTable().Model((*models.TelegramGroup)(nil)).Exec(context.Background())
	require.NoError(t, err)

	return telegram.NewService(db.New(bunDB)), bunDB
}

func TestCreateValidatesInviteURL(t *testing.T) {
	svc, bunDB := setupService(t)
	defer bunDB.Close()
	ctx := context.Background()

	_, err := svc.Create(ctx, models.TelegramGroupCreateRequest{
		Name:      "Bahis Sohbet",
		InviteURL: "https://example.com/spam",
	})
	assert.ErrorIs(t, err, content.ErrValidation)

	created, err := svc.Create(ctx, models.TelegramGroupCreateRequest{
		Name:      "Bahis Sohbet",
		InviteURL: "https://t.me/bahissohbet",
	})
	require.NoError(t, err)
	assert.Equal(t, "bahis-sohbet", created.Slug)
}

func TestInviteQR(t *testing.T) {
	svc, bunDB := setupService(t)
	defer bunDB.Close()
	ctx := context.Background()

	created, err := svc.Create(ctx, models.TelegramGroupCreateRequest{
		Name:      "Günlük Kuponlar",
		InviteURL: "https://t.me/gunlukkuponlar",
	})
	require.NoError(t, err)

	png, err := svc.InviteQR(ctx, created.Slug, 256)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))

	// Out-of-range sizes fall back instead of failing.
	png, err = svc.InviteQR(ctx, created.Slug, 9999)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))

	_, err = svc.InviteQR(ctx, "missing", 256)
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestListOrdersByMembership(t *testing.T) {
	svc, bunDB := setupService(t)
	defer bunDB.Close()
	ctx := context.Background()

	small, err := svc.Create(ctx, models.TelegramGroupCreateRequest{
		Name: "Küçük Grup", InviteURL: "https://t.me/kucuk", MemberCount: 100,
	})
	require.NoError(t, err)
	big, err := svc.Create(ctx, models.TelegramGroupCreateRequest{
		Name: "Büyük Grup", InviteURL: "https://t.me/buyuk", MemberCount: 5000,
	})
	require.NoError(t, err)

	groups, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, big.ID, groups[0].ID)
	assert.Equal(t, small.ID, groups[1].ID)

	// Deactivated groups drop off the public list.
	inactive := false
	_, err = svc.Update(ctx, big.ID, models.TelegramGroupUpdateRequest{IsActive: &inactive})
	require.NoError(t, err)

	groups, err = svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, small.ID, groups[0].ID)

	// The detail page and its QR go dark with the group; the slug must not
	// keep serving a deactivated invite link.
	_, err = svc.GetBySlug(ctx, big.Slug)
	assert.ErrorIs(t, err, content.ErrNotFound)
	_, err = svc.InviteQR(ctx, big.Slug, 256)
	assert.ErrorIs(t, err, content.ErrNotFound)
}
