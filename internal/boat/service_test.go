package boat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fisherfans/fisherfans-backend/internal/auth"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/apperror"
)

// memRepository is an in-memory Repository.
type memRepository struct {
	boats map[string]*Boat
}

func newMemRepository(boats ...*Boat) *memRepository {
	r := &memRepository{boats: make(map[string]*Boat)}
	for _, b := range boats {
		r.boats[b.ID] = b
	}
	return r
}

func (r *memRepository) Create(_ context.Context, b *Boat) error {
	b.ID = "boat-new"
	cp := *b
	r.boats[b.ID] = &cp
	return nil
}

func (r *memRepository) GetByID(_ context.Context, id string) (*Boat, error) {
	b, ok := r.boats[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memRepository) List(_ context.Context, f Filter) ([]*Boat, int, error) {
	var out []*Boat
	for _, b := range r.boats {
		if f.OwnerID == "" || b.OwnerID == f.OwnerID {
			out = append(out, b)
		}
	}
	return out, len(out), nil
}

func (r *memRepository) Update(_ context.Context, b *Boat) error {
	cp := *b
	r.boats[b.ID] = &cp
	return nil
}

func (r *memRepository) Delete(_ context.Context, id string) error {
	delete(r.boats, id)
	return nil
}

func (r *memRepository) CountByOwner(_ context.Context, ownerID string) (int, error) {
	n := 0
	for _, b := range r.boats {
		if b.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *memRepository) SetPhotoURL(_ context.Context, id string, url string) error {
	r.boats[id].PhotoURL = &url
	return nil
}

var _ Repository = (*memRepository)(nil)

type tripCapacityFunc func(ctx context.Context, boatID string) (int, error)

func (f tripCapacityFunc) MaxTripPassengers(ctx context.Context, boatID string) (int, error) {
	return f(ctx, boatID)
}

func noTrips() TripCapacity {
	return tripCapacityFunc(func(context.Context, string) (int, error) { return 0, nil })
}

// fileRecorder is a FileRemover that records the URLs it was asked to delete.
type fileRecorder struct {
	removed []string
}

func (f *fileRecorder) DeleteByURL(_ context.Context, url string) error {
	f.removed = append(f.removed, url)
	return nil
}

func license() *string {
	l := "LIC-1"
	return &l
}

var (
	skipper  = auth.Actor{UserID: "skipper", Role: auth.RoleUser, BoatLicense: license()}
	landsman = auth.Actor{UserID: "landsman", Role: auth.RoleUser}
	admin    = auth.Actor{UserID: "admin", Role: auth.RoleAdmin}
)

func validCreate() CreateRequest {
	return CreateRequest{
		Name:        "Sea Breeze",
		NbPassenger: 6,
		NbSeat:      4,
		Motor:       MotorDiesel,
		License:     LicenseCoastal,
		BoatType:    TypeCabin,
		Equipment:   []Equipment{EquipmentRadio, EquipmentGPS},
	}
}

func boatFixture() *Boat {
	return &Boat{
		ID:          "boat-1",
		OwnerID:     "skipper",
		Name:        "Sea Breeze",
		NbPassenger: 6,
		Motor:       MotorDiesel,
		License:     LicenseCoastal,
		BoatType:    TypeCabin,
		Equipment:   []Equipment{EquipmentGPS},
	}
}

func TestService_Create(t *testing.T) {
	repo := newMemRepository()
	svc := NewService(repo, noTrips(), &fileRecorder{}, auth.NewPolicy())
	ctx := context.Background()

	b, err := svc.Create(ctx, skipper, validCreate())
	require.NoError(t, err)
	assert.Equal(t, "skipper", b.OwnerID)
	assert.ElementsMatch(t, []Equipment{EquipmentGPS, EquipmentRadio}, b.Equipment)

	_, err = svc.Create(ctx, landsman, validCreate())
	assert.ErrorIs(t, err, auth.ErrBoatLicenseNeeded)

	bad := validCreate()
	bad.Equipment = []Equipment{"SONAR"}
	_, err = svc.Create(ctx, skipper, bad)
	assert.ErrorIs(t, err, ErrInvalidEquipment)

	bad = validCreate()
	bad.NbPassenger = 0
	_, err = svc.Create(ctx, skipper, bad)
	assert.ErrorIs(t, err, ErrInvalidPassengers)

	bad = validCreate()
	bad.Motor = "STEAM"
	_, err = svc.Create(ctx, skipper, bad)
	assert.ErrorIs(t, err, ErrInvalidMotor)
}

func TestService_GetAndDelete_Permissions(t *testing.T) {
	repo := newMemRepository(boatFixture())
	svc := NewService(repo, noTrips(), &fileRecorder{}, auth.NewPolicy())
	ctx := context.Background()

	_, err := svc.GetByID(ctx, landsman, "boat-1")
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = svc.GetByID(ctx, landsman, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByID(ctx, admin, "boat-1")
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, landsman, "boat-1"), auth.ErrForbidden)
	assert.NoError(t, svc.Delete(ctx, skipper, "boat-1"))
	_, err = svc.GetByID(ctx, skipper, "boat-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_List_Scoped(t *testing.T) {
	other := boatFixture()
	other.ID, other.OwnerID = "boat-2", "someone"
	repo := newMemRepository(boatFixture(), other)
	svc := NewService(repo, noTrips(), &fileRecorder{}, auth.NewPolicy())
	ctx := context.Background()

	boats, total, err := svc.List(ctx, skipper, Filter{OwnerID: "someone"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "skipper", boats[0].OwnerID)

	_, total, err = svc.List(ctx, admin, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("equipment replaced and other fields untouched", func(t *testing.T) {
		repo := newMemRepository(boatFixture())
		svc := NewService(repo, noTrips(), &fileRecorder{}, auth.NewPolicy())

		eq := []Equipment{EquipmentLadder, EquipmentRadio}
		b, err := svc.Update(ctx, skipper, "boat-1", UpdateRequest{Equipment: &eq})
		require.NoError(t, err)
		assert.ElementsMatch(t, eq, b.Equipment)
		assert.Equal(t, "Sea Breeze", b.Name)

		empty := []Equipment{}
		b, err = svc.Update(ctx, skipper, "boat-1", UpdateRequest{Equipment: &empty})
		require.NoError(t, err)
		assert.Empty(t, b.Equipment)
	})

	t.Run("capacity cannot drop below a bound trip", func(t *testing.T) {
		repo := newMemRepository(boatFixture())
		trips := tripCapacityFunc(func(context.Context, string) (int, error) { return 5, nil })
		svc := NewService(repo, trips, &fileRecorder{}, auth.NewPolicy())

		four := 4
		_, err := svc.Update(ctx, skipper, "boat-1", UpdateRequest{NbPassenger: &four})
		assert.ErrorIs(t, err, ErrCapacityBelowTrips)
		assert.Equal(t, apperror.KindCapacityExceeded, apperror.KindOf(err))
		assert.Contains(t, err.Error(), "4")
		assert.Contains(t, err.Error(), "5")

		five := 5
		_, err = svc.Update(ctx, skipper, "boat-1", UpdateRequest{NbPassenger: &five})
		assert.NoError(t, err)
	})

	t.Run("foreign boat forbidden", func(t *testing.T) {
		repo := newMemRepository(boatFixture())
		svc := NewService(repo, noTrips(), &fileRecorder{}, auth.NewPolicy())

		name := "Mine now"
		_, err := svc.Update(ctx, landsman, "boat-1", UpdateRequest{Name: &name})
		assert.ErrorIs(t, err, auth.ErrForbidden)
	})
}

func TestService_SetPhoto(t *testing.T) {
	repo := newMemRepository(boatFixture())
	files := &fileRecorder{}
	svc := NewService(repo, noTrips(), files, auth.NewPolicy())
	ctx := context.Background()

	assert.ErrorIs(t, svc.SetPhoto(ctx, landsman, "boat-1", "/v1/files/x"), auth.ErrForbidden)
	require.NoError(t, svc.SetPhoto(ctx, skipper, "boat-1", "/v1/files/x"))
	assert.Equal(t, "/v1/files/x", *repo.boats["boat-1"].PhotoURL)
	assert.Empty(t, files.removed)

	require.NoError(t, svc.SetPhoto(ctx, skipper, "boat-1", "/v1/files/y"))
	assert.Equal(t, "/v1/files/y", *repo.boats["boat-1"].PhotoURL)
	assert.Equal(t, []string{"/v1/files/x"}, files.removed, "the replaced photo is deleted")

	require.NoError(t, svc.SetPhoto(ctx, skipper, "boat-1", "/v1/files/y"))
	assert.Len(t, files.removed, 1)
}

func TestService_Delete_RemovesPhoto(t *testing.T) {
	b := boatFixture()
	photo := "/v1/files/p"
	b.PhotoURL = &photo
	files := &fileRecorder{}
	svc := NewService(newMemRepository(b), noTrips(), files, auth.NewPolicy())

	require.NoError(t, svc.Delete(context.Background(), skipper, "boat-1"))
	assert.Equal(t, []string{photo}, files.removed)
}
