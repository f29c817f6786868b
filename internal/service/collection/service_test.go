package collection

import (
	"context"
	"testing"
	"time"

	"ecorecycle_backend/internal/repository"
	"ecorecycle_backend/internal/service"
	"ecorecycle_backend/internal/testdb"
	"ecorecycle_backend/models"
	"ecorecycle_backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*Service, repository.CollectionRepository, utils.Session) {
	t.Helper()
	db := testdb.New(t)
	users := repository.NewUserRepository(db)
	u := models.User{Name: "Asha", Email: "asha@example.com", Password: "x", UserType: models.RoleIndividual}
	require.NoError(t, users.Create(context.Background(), &u))

	repo := repository.NewCollectionRepository(db)
	svc := NewService(repo)
	svc.now = func() time.Time { return now }
	return svc, repo, utils.Session{UserID: u.ID, Role: u.UserType}
}

func TestParseView(t *testing.T) {
	v, err := ParseView("")
	require.NoError(t, err)
	assert.Equal(t, ViewAll, v)

	v, err = ParseView("Upcoming")
	require.NoError(t, err)
	assert.Equal(t, ViewUpcoming, v)

	_, err = ParseView("later")
	assert.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestScheduleRequiresFutureDate(t *testing.T) {
	svc, _, sess := setup(t)
	ctx := context.Background()

	_, err := svc.Schedule(ctx, sess, ScheduleInput{Type: "one-time", Address: "12 Hill Rd", Date: now.Add(-time.Hour)})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	c, err := svc.Schedule(ctx, sess, ScheduleInput{Type: "one-time", Address: "12 Hill Rd", Date: now.Add(24 * time.Hour), WasteType: "paper", Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, models.CollectionScheduled, c.Status)
	assert.Equal(t, sess.UserID, c.UserID)
}

func TestListViews(t *testing.T) {
	svc, repo, sess := setup(t)
	ctx := context.Background()

	mk := func(offset time.Duration, status models.CollectionStatus) {
		c := models.Collection{UserID: sess.UserID, Date: now.Add(offset), Status: status}
		require.NoError(t, repo.Create(ctx, &c))
	}
	mk(48*time.Hour, models.CollectionScheduled)
	mk(72*time.Hour, models.CollectionCancelled)
	mk(-48*time.Hour, models.CollectionCompleted)

	all, err := svc.List(ctx, sess, ViewAll)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].Date.After(all[1].Date))

	upcoming, err := svc.List(ctx, sess, ViewUpcoming)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, models.CollectionScheduled, upcoming[0].Status)

	past, err := svc.List(ctx, sess, ViewPast)
	require.NoError(t, err)
	assert.Len(t, past, 2)

	stranger, err := svc.List(ctx, utils.Session{UserID: "someone-else", Role: models.RoleIndividual}, ViewAll)
	require.NoError(t, err)
	assert.Empty(t, stranger)
}

func TestCancel(t *testing.T) {
	svc, repo, sess := setup(t)
	ctx := context.Background()

	c := models.Collection{UserID: sess.UserID, Date: now.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, &c))

	_, err := svc.Cancel(ctx, sess, "not-an-id")
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	_, err = svc.Cancel(ctx, sess, "6f1c2a4e-8b7d-4c3e-9a10-2b3c4d5e6f70")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Cancel(ctx, utils.Session{UserID: "6f1c2a4e-8b7d-4c3e-9a10-2b3c4d5e6f71", Role: models.RoleIndividual}, c.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)

	cancelled, err := svc.Cancel(ctx, sess, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CollectionCancelled, cancelled.Status)

	_, err = svc.Cancel(ctx, sess, c.ID)
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestUpdateStatusOnlyCancels(t *testing.T) {
	svc, repo, sess := setup(t)
	ctx := context.Background()

	c := models.Collection{UserID: sess.UserID, Date: now.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, &c))

	_, err := svc.UpdateStatus(ctx, sess, c.ID, "COMPLETED")
	assert.ErrorIs(t, err, repository.ErrInvalidInput)
	_, err = svc.UpdateStatus(ctx, sess, c.ID, "gone")
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	updated, err := svc.UpdateStatus(ctx, sess, c.ID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, models.CollectionCancelled, updated.Status)
}
