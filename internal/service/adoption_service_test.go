package service

import (
	"context"
	"errors"
	"testing"

	"weeskitten/internal/apperror"
	"weeskitten/internal/model"
	"weeskitten/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	events []string
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, event string, _ any) error {
	n.events = append(n.events, event)
	return n.err
}

// failingCatRepo fails every status update, as a broken cats table would.
type failingCatRepo struct {
	repository.CatRepository
}

func (failingCatRepo) UpdateStatus(context.Context, uint, string) error {
	return errors.New("cats: disk I/O error")
}

func seedCat(t *testing.T, r repos, name, status string) *model.Cat {
	t.Helper()
	cat := &model.Cat{Name: name, Status: status, ImageURL: "/img/" + name + ".jpg"}
	require.NoError(t, r.cats.Create(context.Background(), cat))
	return cat
}

func validRequest(catID uint) CreateAdoptionRequest {
	return CreateAdoptionRequest{
		CatID:         catID,
		Name:          "Jan",
		Email:         "jan@example.nl",
		HouseholdType: model.HouseholdHouse,
		HasGarden:     true,
		Motivation:    "Ik heb een grote tuin",
	}
}

func TestAdoptionCreate(t *testing.T) {
	r := newRepos(t)
	n := &recordingNotifier{}
	svc := NewAdoptionService(r.adoptions, r.cats, r.audits, r.tx, n)
	cat := seedCat(t, r, "Minoes", model.CatStatusAvailable)

	req, err := svc.Create(context.Background(), validRequest(cat.ID))
	require.NoError(t, err)

	assert.NotZero(t, req.ID)
	assert.Equal(t, model.AdoptionStatusPending, req.Status)
	assert.Equal(t, cat.ID, req.CatID)
	assert.Equal(t, "Minoes", req.CatName)
	assert.Equal(t, []string{"adoption_request.created"}, n.events)

	stored, err := svc.Get(context.Background(), req.ID)
	require.NoError(t, err)
	assert.True(t, stored.HasGarden)
	assert.Equal(t, model.AdoptionStatusPending, stored.Status)
}

func TestAdoptionCreateUnknownCat(t *testing.T) {
	r := newRepos(t)
	svc := NewAdoptionService(r.adoptions, r.cats, r.audits, r.tx, nil)

	_, err := svc.Create(context.Background(), validRequest(404))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.Zero(t, countRows(t, r.db, &model.AdoptionRequest{}))
}

func TestAdoptionCreateValidation(t *testing.T) {
	r := newRepos(t)
	svc := NewAdoptionService(r.adoptions, r.cats, r.audits, r.tx, nil)
	cat := seedCat(t, r, "Minoes", model.CatStatusAvailable)

	for name, mutate := range map[string]func(*CreateAdoptionRequest){
		"no cat":        func(r *CreateAdoptionRequest) { r.CatID = 0 },
		"no name":       func(r *CreateAdoptionRequest) { r.Name = "  " },
		"no email":      func(r *CreateAdoptionRequest) { r.Email = "" },
		"no motivation": func(r *CreateAdoptionRequest) { r.Motivation = "" },
	} {
		t.Run(name, func(t *testing.T) {
			req := validRequest(cat.ID)
			mutate(&req)
			_, err := svc.Create(context.Background(), req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperror.ErrValidation))
			assert.Equal(t, "Cat, name, email and motivation are required", err.Error())
		})
	}
	assert.Zero(t, countRows(t, r.db, &model.AdoptionRequest{}))
}

func TestAdoptionCreateForAdoptedCatIsAccepted(t *testing.T) {
	r := newRepos(t)
	svc := NewAdoptionService(r.adoptions, r.cats, r.audits, r.tx, nil)
	cat := seedCat(t, r, "Tijger", model.CatStatusAdopted)

	req, err := svc.Create(context.Background(), validRequest(cat.ID))
	require.NoError(t, err)
	assert.Equal(t, model.AdoptionStatusPending, req.Status)
}

func TestAdoptionCreateSurvivesNotifierFailure(t *testing.T) {
	r := newRepos(t)
	svc := NewAdoptionService(r.adoptions, r.cats, r.audits, r.tx, &recordingNotifier{err: errors.New("smtp down")})
	cat := seedCat(t, r, "Minoes", model.CatStatusAvailable)

	_, err := svc.Create(context.Background(), validRequest(cat.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 1, countRows(t, r.db, &model.AdoptionRequest{}))
}

func TestAdoptionDeleteIsIdempotent(t *testing.T) {
	r := newRepos(t)
	svc := NewAdoptionService(r.adoptions, r.cats, r.audits, r.tx, nil)
	cat := seedCat(t, r, "Minoes", model.CatStatusAvailable)
	req, err := svc.Create(context.Background(), validRequest(cat.ID))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), testAdmin, req.ID))
	require.NoError(t, svc.Delete(context.Background(), testAdmin, req.ID))

	_, err = svc.Get(context.Background(), req.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestTransitionUpdatesCat(t *testing.T) {
	tests := []struct {
		status    string
		catBefore string
		catAfter  string
	}{
		{model.AdoptionStatusApproved, model.CatStatusAvailable, model.CatStatusAdopted},
		{model.AdoptionStatusCompleted, model.CatStatusReserved, model.CatStatusAdopted},
		{model.AdoptionStatusRejected, model.CatStatusAdopted, model.CatStatusAvailable},
		{model.AdoptionStatusPending, model.CatStatusReserved, model.CatStatusReserved},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			r := newRepos(t)
			svc := NewAdoptionService(r.adoptions, r.cats, r.audits, r.tx, nil)
			cat := seedCat(t, r, "Minoes", tt.catBefore)
			req, err := svc.Create(context.Background(), validRequest(cat.ID))
			require.NoError(t, err)

			notes := "gesprek gehad"
			updated, err := svc.Transition(context.Background(), testAdmin, req.ID, TransitionRequest{Status: tt.status, AdminNotes: notes})
			require.NoError(t, err)
			assert.Equal(t, tt.status, updated.Status)
			assert.Equal(t, "gesprek gehad", updated.AdminNotes)

			got, err := r.cats.FindByID(context.Background(), cat.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.catAfter, got.Status)

			logs, total, err := r.audits.List(context.Background(), 1, 10, model.ActionTransitionAdoptionRequest)
			require.NoError(t, err)
			require.EqualValues(t, 1, total)
			assert.Equal(t, "admin", logs[0].Actor)
			assert.Contains(t, logs[0].Details, `"to":"`+tt.status+`"`)
		})
	}
}

func TestTransitionRollsBackWhenCatUpdateFails(t *testing.T) {
	r := newRepos(t)
	cat := seedCat(t, r, "Minoes", model.CatStatusAvailable)
	req, err := NewAdoptionService(r.adoptions, r.cats, r.audits, r.tx, nil).Create(context.Background(), validRequest(cat.ID))
	require.NoError(t, err)

	svc := NewAdoptionService(r.adoptions, failingCatRepo{r.cats}, r.audits, r.tx, nil)
	_, err = svc.Transition(context.Background(), testAdmin, req.ID, TransitionRequest{Status: model.AdoptionStatusApproved})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInternal))
	assert.Equal(t, "Failed to update adoption request", err.Error())

	stored, err := r.adoptions.FindByID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AdoptionStatusPending, stored.Status)

	got, err := r.cats.FindByID(context.Background(), cat.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CatStatusAvailable, got.Status)
	assert.Zero(t, countRows(t, r.db, &model.AuditLog{}))
}

func TestTransitionErrors(t *testing.T) {
	r := newRepos(t)
	svc := NewAdoptionService(r.adoptions, r.cats, r.audits, r.tx, nil)
	cat := seedCat(t, r, "Minoes", model.CatStatusAvailable)
	req, err := svc.Create(context.Background(), validRequest(cat.ID))
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), testAdmin, req.ID, TransitionRequest{Status: "archived"})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Equal(t, "Invalid status", err.Error())

	_, err = svc.Transition(context.Background(), testAdmin, 9999, TransitionRequest{Status: model.AdoptionStatusApproved})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	got, err := r.cats.FindByID(context.Background(), cat.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CatStatusAvailable, got.Status)
}

func TestTransitionsAreUnordered(t *testing.T) {
	r := newRepos(t)
	svc := NewAdoptionService(r.adoptions, r.cats, r.audits, r.tx, nil)
	cat := seedCat(t, r, "Minoes", model.CatStatusAvailable)
	req, err := svc.Create(context.Background(), validRequest(cat.ID))
	require.NoError(t, err)

	for _, status := range []string{
		model.AdoptionStatusCompleted,
		model.AdoptionStatusPending,
		model.AdoptionStatusRejected,
		model.AdoptionStatusApproved,
	} {
		_, err := svc.Transition(context.Background(), testAdmin, req.ID, TransitionRequest{Status: status})
		require.NoError(t, err, status)
	}

	got, err := r.cats.FindByID(context.Background(), cat.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CatStatusAdopted, got.Status)
}

func TestListByEmailRequiresEmail(t *testing.T) {
	r := newRepos(t)
	svc := NewAdoptionService(r.adoptions, r.cats, r.audits, r.tx, nil)

	_, err := svc.ListByEmail(context.Background(), " ")
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}
