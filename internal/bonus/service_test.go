package bonus_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ms-content/internal/bonus"
	"ms-content/internal/content"
	"ms-content/internal/models"
)

// MockDBLayer is a mock implementation of the bonus DBLayer interface.
type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) List(ctx context.Context, filter models.BonusFilter) ([]models.Bonus, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bonus), args.Error(1)
}

func (m *MockDBLayer) ListPublic(ctx context.Context, filter models.BonusFilter, now time.Time) ([]models.Bonus, error) {
	args := m.Called(ctx, filter, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bonus), args.Error(1)
}

func (m *MockDBLayer) ByID(ctx context.Context, id string) (*models.Bonus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bonus), args.Error(1)
}

func (m *MockDBLayer) PublicBySlug(ctx context.Context, slug string, now time.Time) (*models.Bonus, error) {
	args := m.Called(ctx, slug, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bonus), args.Error(1)
}

func (m *MockDBLayer) SlugTaken(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockDBLayer) Insert(ctx context.Context, b *models.Bonus) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockDBLayer) UpdateColumns(ctx context.Context, id string, b *models.Bonus, columns ...string) error {
	args := m.Called(ctx, id, b, columns)
	return args.Error(0)
}

func (m *MockDBLayer) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDBLayer) Pending(ctx context.Context, page, pageSize int) ([]models.Bonus, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Bonus), args.Get(1).(int64), args.Error(2)
}

func (m *MockDBLayer) BulkSetApproved(ctx context.Context, ids []string, approved bool) ([]string, []string, error) {
	args := m.Called(ctx, ids, approved)
	if args.Get(0) == nil && args.Error(2) != nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]string), args.Get(1).([]string), args.Error(2)
}

func (m *MockDBLayer) Reorder(ctx context.Context, orderedIDs []string, featured *bool) error {
	args := m.Called(ctx, orderedIDs, featured)
	return args.Error(0)
}

func (m *MockDBLayer) IncrementClicks(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher records lifecycle events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishBonusEvent(topic, action string, b models.Bonus) error {
	args := m.Called(topic, action, b)
	return args.Error(0)
}

func newService(db *MockDBLayer, events *MockPublisher) *bonus.Service {
	return bonus.NewService(db, events, nil, "content.bonus.events")
}

func TestCreateDefaults(t *testing.T) {
	mockDB := new(MockDBLayer)
	mockEvents := new(MockPublisher)
	svc := newService(mockDB, mockEvents)

	mockDB.On("SlugTaken", mock.Anything, "deneme-bonusu-100").Return(false, nil)
	mockDB.On("Insert", mock.Anything, mock.MatchedBy(func(b *models.Bonus) bool {
		return b.Slug == "deneme-bonusu-100" &&
			b.IsActive && !b.IsFeatured && b.IsApproved && b.Priority == 0
	})).Return(nil)
	mockEvents.On("PublishBonusEvent", "content.bonus.events", "created", mock.Anything).Return(nil)

	created, err := svc.Create(context.Background(), models.BonusCreateRequest{Title: "Deneme Bonusu 100"})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "deneme-bonusu-100", created.Slug)
	assert.True(t, created.IsActive)
	assert.False(t, created.IsFeatured)
	assert.True(t, created.IsApproved)
	assert.Equal(t, int64(0), created.Priority)
	mockDB.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestCreateSubmitForApproval(t *testing.T) {
	mockDB := new(MockDBLayer)
	mockEvents := new(MockPublisher)
	svc := newService(mockDB, mockEvents)

	mockDB.On("SlugTaken", mock.Anything, mock.Anything).Return(false, nil)
	mockDB.On("Insert", mock.Anything, mock.Anything).Return(nil)
	mockEvents.On("PublishBonusEvent", mock.Anything, "created", mock.Anything).Return(nil)

	created, err := svc.Create(context.Background(), models.BonusCreateRequest{
		Title:             "Marka Bonusu",
		SubmitForApproval: true,
	})
	require.NoError(t, err)
	assert.False(t, created.IsApproved)
}

func TestCreateValidation(t *testing.T) {
	svc := newService(new(MockDBLayer), new(MockPublisher))

	_, err := svc.Create(context.Background(), models.BonusCreateRequest{})
	assert.ErrorIs(t, err, content.ErrValidation)

	_, err = svc.Create(context.Background(), models.BonusCreateRequest{Title: "X", Amount: -1})
	assert.ErrorIs(t, err, content.ErrValidation)
}

func TestCreateSlugCollision(t *testing.T) {
	mockDB := new(MockDBLayer)
	mockEvents := new(MockPublisher)
	svc := newService(mockDB, mockEvents)

	// First candidate taken, suffixed one free.
	mockDB.On("SlugTaken", mock.Anything, "deneme-bonusu").Return(true, nil)
	mockDB.On("SlugTaken", mock.Anything, "deneme-bonusu-2").Return(false, nil)
	mockDB.On("Insert", mock.Anything, mock.Anything).Return(nil)
	mockEvents.On("PublishBonusEvent", mock.Anything, "created", mock.Anything).Return(nil)

	created, err := svc.Create(context.Background(), models.BonusCreateRequest{Title: "Deneme Bonusu"})
	require.NoError(t, err)
	assert.Equal(t, "deneme-bonusu-2", created.Slug)
}

func TestUpdateAppliesOnlySuppliedFields(t *testing.T) {
	mockDB := new(MockDBLayer)
	mockEvents := new(MockPublisher)
	svc := newService(mockDB, mockEvents)

	existing := &models.Bonus{
		ID:         "b1",
		Slug:       "deneme-bonusu",
		Title:      "Deneme Bonusu",
		IsActive:   true,
		IsApproved: true,
	}
	mockDB.On("ByID", mock.Anything, "b1").Return(existing, nil)
	mockDB.On("UpdateColumns", mock.Anything, "b1", mock.Anything,
		[]string{"is_featured", "updated_at"}).Return(nil)
	mockEvents.On("PublishBonusEvent", mock.Anything, "updated", mock.Anything).Return(nil)

	featured := true
	updated, err := svc.Update(context.Background(), "b1", models.BonusUpdateRequest{IsFeatured: &featured})
	require.NoError(t, err)

	assert.True(t, updated.IsFeatured)
	// Slug is immutable even though the record changed.
	assert.Equal(t, "deneme-bonusu", updated.Slug)
	mockDB.AssertExpectations(t)
}

func TestUpdatePublishesApprovedTransition(t *testing.T) {
	mockDB := new(MockDBLayer)
	mockEvents := new(MockPublisher)
	svc := newService(mockDB, mockEvents)

	existing := &models.Bonus{ID: "b1", IsApproved: false}
	mockDB.On("ByID", mock.Anything, "b1").Return(existing, nil)
	mockDB.On("UpdateColumns", mock.Anything, "b1", mock.Anything, mock.Anything).Return(nil)
	mockEvents.On("PublishBonusEvent", mock.Anything, "approved", mock.Anything).Return(nil)

	approved := true
	_, err := svc.Update(context.Background(), "b1", models.BonusUpdateRequest{IsApproved: &approved})
	require.NoError(t, err)
	mockEvents.AssertExpectations(t)
}

func TestUpdateNotFound(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := newService(mockDB, new(MockPublisher))

	mockDB.On("ByID", mock.Anything, "ghost").Return(nil, content.ErrNotFound)

	title := "X"
	_, err := svc.Update(context.Background(), "ghost", models.BonusUpdateRequest{Title: &title})
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestBulkModerate(t *testing.T) {
	mockDB := new(MockDBLayer)
	mockEvents := new(MockPublisher)
	svc := newService(mockDB, mockEvents)

	mockDB.On("BulkSetApproved", mock.Anything, []string{"a", "ghost"}, true).
		Return([]string{"a"}, []string{"ghost"}, nil)
	mockDB.On("ByID", mock.Anything, "a").Return(&models.Bonus{ID: "a", IsApproved: true}, nil)
	mockEvents.On("PublishBonusEvent", mock.Anything, "approved", mock.Anything).Return(nil)

	result, err := svc.BulkModerate(context.Background(), models.BulkModerationRequest{
		Action: models.BulkActionApprove,
		IDs:    []string{"a", "ghost"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, result.Succeeded)
	assert.Equal(t, []string{"ghost"}, result.Skipped)
}

func TestBulkModerateRejectsUnknownAction(t *testing.T) {
	svc := newService(new(MockDBLayer), new(MockPublisher))

	_, err := svc.BulkModerate(context.Background(), models.BulkModerationRequest{
		Action: "promote",
		IDs:    []string{"a"},
	})
	assert.ErrorIs(t, err, content.ErrValidation)
}

func TestReorderValidation(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := newService(mockDB, new(MockPublisher))

	err := svc.Reorder(context.Background(), models.ReorderRequest{})
	assert.ErrorIs(t, err, content.ErrValidation)

	mockDB.On("Reorder", mock.Anything, []string{"a", "b"}, (*bool)(nil)).Return(nil)
	err = svc.Reorder(context.Background(), models.ReorderRequest{OrderedIDs: []string{"a", "b"}})
	assert.NoError(t, err)
}

func TestDeletePublishesEvent(t *testing.T) {
	mockDB := new(MockDBLayer)
	mockEvents := new(MockPublisher)
	svc := newService(mockDB, mockEvents)

	mockDB.On("ByID", mock.Anything, "b1").Return(&models.Bonus{ID: "b1"}, nil)
	mockDB.On("Delete", mock.Anything, "b1").Return(nil)
	mockEvents.On("PublishBonusEvent", mock.Anything, "deleted", mock.Anything).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), "b1"))
	mockEvents.AssertExpectations(t)

	mockDB.On("ByID", mock.Anything, "ghost").Return(nil, content.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "ghost"), content.ErrNotFound)
}

func TestKafkaFailureDoesNotFailCreate(t *testing.T) {
	mockDB := new(MockDBLayer)
	mockEvents := new(MockPublisher)
	svc := newService(mockDB, mockEvents)

	mockDB.On("SlugTaken", mock.Anything, mock.Anything).Return(false, nil)
	mockDB.On("Insert", mock.Anything, mock.Anything).Return(nil)
	mockEvents.On("PublishBonusEvent", mock.Anything, "created", mock.Anything).
		Return(errors.New("broker down"))

	_, err := svc.Create(context.Background(), models.BonusCreateRequest{Title: "Deneme"})
	assert.NoError(t, err)
}

func TestExpiryClassification(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	expired := models.Bonus{IsActive: true, EndDate: &past}
	running := models.Bonus{EndDate: &future}
	openEnded := models.Bonus{}

	assert.True(t, expired.IsExpired(now))
	assert.False(t, running.IsExpired(now))
	assert.False(t, openEnded.IsExpired(now))
}
