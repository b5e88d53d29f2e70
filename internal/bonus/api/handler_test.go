package api_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"ms-content/internal/bonus"
	"ms-content/internal/bonus/api"
	"ms-content/internal/bonus/db"
	"ms-content/internal/logger"
	"ms-content/internal/models"
)

type noopPublisher struct{}

func (noopPublisher) PublishBonusEvent(topic, action string, b models.Bonus) error { return nil }

func setupRouter(t *testing.T) (*chi.Mux, *bun.DB) {
	t.Helper()
	sqldb, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = bunDB.NewCreateTable().Model((*models.Bonus)(nil)).Exec(context.Background())
	require.NoError(t, err)

	svc := bonus.NewService(db.New(bunDB), noopPublisher{}, nil, "content.bonus.events")
	handler := api.NewHandler(svc, logger.NewLogger(), 25)

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		handler.RegisterPublicRoutes(r)
	})
	router.Route("/api/admin", func(r chi.Router) {
		handler.RegisterAdminRoutes(r)
	})
	return router, bunDB
}

func doJSON(t *testing.T, router *chi.Mux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestBonusLifecycle(t *testing.T) {
	router, bunDB := setupRouter(t)
	defer bunDB.Close()

	// Create via the admin surface.
	rec := doJSON(t, router, http.MethodPost, "/api/admin/bonuses", models.BonusCreateRequest{
		Title:     "Deneme Bonusu 100",
		BonusType: "trial",
		Amount:    100,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Bonus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "deneme-bonusu-100", created.Slug)
	assert.True(t, created.IsActive)
	assert.False(t, created.IsFeatured)
	assert.Equal(t, int64(0), created.Priority)

	// Public read by slug.
	rec = doJSON(t, router, http.MethodGet, "/api/bonuses/deneme-bonusu-100", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// A second bonus, then feature the first one.
	rec = doJSON(t, router, http.MethodPost, "/api/admin/bonuses", models.BonusCreateRequest{
		Title: "Hoşgeldin Bonusu",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var second models.Bonus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&second))
	assert.Equal(t, "hosgeldin-bonusu", second.Slug)

	featured := true
	rec = doJSON(t, router, http.MethodPatch, "/api/admin/bonuses/"+created.ID,
		models.BonusUpdateRequest{IsFeatured: &featured})
	require.Equal(t, http.StatusOK, rec.Code)

	// Featured item leads the public listing.
	rec = doJSON(t, router, http.MethodGet, "/api/bonuses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []models.Bonus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	require.Len(t, listed, 2)
	assert.Equal(t, created.ID, listed[0].ID)

	// Delete, then the listing no longer carries it.
	rec = doJSON(t, router, http.MethodDelete, "/api/admin/bonuses/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/bonuses", nil)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	require.Len(t, listed, 1)
	assert.Equal(t, second.ID, listed[0].ID)

	rec = doJSON(t, router, http.MethodGet, "/api/bonuses/deneme-bonusu-100", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBonusModerationFlow(t *testing.T) {
	router, bunDB := setupRouter(t)
	defer bunDB.Close()

	rec := doJSON(t, router, http.MethodPost, "/api/admin/bonuses", models.BonusCreateRequest{
		Title:             "Marka Özel Bonusu",
		SubmitForApproval: true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var pending models.Bonus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&pending))
	assert.False(t, pending.IsApproved)

	// Invisible on the public surface while pending — the listing and the
	// detail read alike. Slugs derive from titles, so the by-slug route must
	// not leak what the listing hides.
	rec = doJSON(t, router, http.MethodGet, "/api/bonuses", nil)
	var listed []models.Bonus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	assert.Empty(t, listed)

	rec = doJSON(t, router, http.MethodGet, "/api/bonuses/"+pending.Slug, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Shows up in the moderation queue.
	rec = doJSON(t, router, http.MethodGet, "/api/admin/bonuses/pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items      []models.Bonus `json:"items"`
		TotalCount int64          `json:"totalCount"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	assert.Equal(t, int64(1), page.TotalCount)

	// Approve in bulk; a ghost id lands in skipped.
	rec = doJSON(t, router, http.MethodPatch, "/api/admin/bonuses/bulk", models.BulkModerationRequest{
		Action: models.BulkActionApprove,
		IDs:    []string{pending.ID, "ghost"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var result models.BulkModerationResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, []string{pending.ID}, result.Succeeded)
	assert.Equal(t, []string{"ghost"}, result.Skipped)

	// Now publicly visible, by listing and by slug.
	rec = doJSON(t, router, http.MethodGet, "/api/bonuses", nil)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	require.Len(t, listed, 1)

	rec = doJSON(t, router, http.MethodGet, "/api/bonuses/"+pending.Slug, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBonusDetailHidesInactiveAndExpired(t *testing.T) {
	router, bunDB := setupRouter(t)
	defer bunDB.Close()

	rec := doJSON(t, router, http.MethodPost, "/api/admin/bonuses", models.BonusCreateRequest{
		Title: "Kapanan Bonus",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var b models.Bonus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&b))

	inactive := false
	rec = doJSON(t, router, http.MethodPatch, "/api/admin/bonuses/"+b.ID,
		models.BonusUpdateRequest{IsActive: &inactive})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/bonuses/"+b.Slug, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Reactivate but let it expire: still hidden.
	active := true
	past := time.Now().Add(-time.Hour)
	rec = doJSON(t, router, http.MethodPatch, "/api/admin/bonuses/"+b.ID,
		models.BonusUpdateRequest{IsActive: &active, EndDate: &past})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/bonuses/"+b.Slug, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBonusReorderEndpoint(t *testing.T) {
	router, bunDB := setupRouter(t)
	defer bunDB.Close()

	var ids []string
	for i := 0; i < 3; i++ {
		rec := doJSON(t, router, http.MethodPost, "/api/admin/bonuses", models.BonusCreateRequest{
			Title: fmt.Sprintf("Bonus %d", i),
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		var b models.Bonus
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&b))
		ids = append(ids, b.ID)
	}

	// Reverse the order.
	reversed := []string{ids[2], ids[1], ids[0]}
	rec := doJSON(t, router, http.MethodPost, "/api/admin/bonuses/reorder",
		models.ReorderRequest{OrderedIDs: reversed})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/bonuses", nil)
	var listed []models.Bonus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	require.Len(t, listed, 3)
	for i, id := range reversed {
		assert.Equal(t, id, listed[i].ID)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/admin/bonuses/reorder",
		models.ReorderRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBonusClickEndpoint(t *testing.T) {
	router, bunDB := setupRouter(t)
	defer bunDB.Close()

	rec := doJSON(t, router, http.MethodPost, "/api/admin/bonuses", models.BonusCreateRequest{
		Title: "CTA Bonusu",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var b models.Bonus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&b))

	rec = doJSON(t, router, http.MethodPost, "/api/bonuses/"+b.ID+"/click", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/bonuses/ghost/click", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
