package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newApplicationFixture() (*MockApplicationRepo, *MockJobRepo, *MockUserRepo, *FakeNotifier, domain.ApplicationUsecase) {
	appRepo := new(MockApplicationRepo)
	jobRepo := new(MockJobRepo)
	userRepo := new(MockUserRepo)
	notifier := NewFakeNotifier()
	uc := usecase.NewApplicationUsecase(appRepo, jobRepo, userRepo, notifier)
	return appRepo, jobRepo, userRepo, notifier, uc
}

func TestApply(t *testing.T) {
	job := &domain.Job{ID: "job1", EmployerID: "emp1", Title: "Backend Engineer"}
	employer := &domain.User{ID: "emp1", Email: "hr@acme.test", FirstName: "Hanna", LastName: "Resources"}
	candidate := &domain.User{ID: "cand1", Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"}

	t.Run("Should require a resume", func(t *testing.T) {
		appRepo, _, _, _, uc := newApplicationFixture()

		_, err := uc.Apply(context.Background(), "cand1", &domain.ApplyInput{JobID: "job1"})
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
		appRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Should return NotFound when the job does not exist", func(t *testing.T) {
		_, jobRepo, _, _, uc := newApplicationFixture()

		jobRepo.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

		_, err := uc.Apply(context.Background(), "cand1", &domain.ApplyInput{
			JobID:     "ghost",
			ResumeURL: "https://cdn.test/cv.pdf",
		})
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
	})

	t.Run("Should translate the unique violation into Conflict", func(t *testing.T) {
		appRepo, jobRepo, _, _, uc := newApplicationFixture()

		jobRepo.On("GetByID", mock.Anything, "job1").Return(job, nil)
		appRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Application")).
			Return(domain.ErrDuplicate)

		_, err := uc.Apply(context.Background(), "cand1", &domain.ApplyInput{
			JobID:     "job1",
			ResumeURL: "https://cdn.test/cv.pdf",
		})
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, appErrorCode(t, err))
		assert.Contains(t, err.Error(), "Already applied")
	})

	t.Run("Should create a pending application and notify the employer", func(t *testing.T) {
		appRepo, jobRepo, userRepo, notifier, uc := newApplicationFixture()

		jobRepo.On("GetByID", mock.Anything, "job1").Return(job, nil)
		appRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil)
		userRepo.On("GetByID", mock.Anything, "emp1").Return(employer, nil)
		userRepo.On("GetByID", mock.Anything, "cand1").Return(candidate, nil)

		app, err := uc.Apply(context.Background(), "cand1", &domain.ApplyInput{
			JobID:       "job1",
			CoverLetter: "I would love to join.",
			ResumeURL:   "https://cdn.test/cv.pdf",
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, app.ID)
		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
		assert.Equal(t, "cand1", app.CandidateID)
		assert.NotNil(t, app.Job)

		call := waitForNotification(t, notifier, "new-application")
		assert.Equal(t, "hr@acme.test", call.To)
	})

	t.Run("Should succeed even when the notifier fails", func(t *testing.T) {
		appRepo, jobRepo, userRepo, notifier, uc := newApplicationFixture()
		notifier.Err = assert.AnError

		jobRepo.On("GetByID", mock.Anything, "job1").Return(job, nil)
		appRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil)
		userRepo.On("GetByID", mock.Anything, "emp1").Return(employer, nil)
		userRepo.On("GetByID", mock.Anything, "cand1").Return(candidate, nil)

		_, err := uc.Apply(context.Background(), "cand1", &domain.ApplyInput{
			JobID:     "job1",
			ResumeURL: "https://cdn.test/cv.pdf",
		})
		assert.NoError(t, err)
		waitForNotification(t, notifier, "new-application")
	})
}

func TestListByJob(t *testing.T) {
	job := &domain.Job{ID: "job1", EmployerID: "emp1"}

	t.Run("Should return NotFound for a missing job", func(t *testing.T) {
		_, jobRepo, _, _, uc := newApplicationFixture()

		jobRepo.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

		_, err := uc.ListByJob(context.Background(), "emp1", "ghost")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
	})

	t.Run("Should block an employer who does not own the job", func(t *testing.T) {
		appRepo, jobRepo, _, _, uc := newApplicationFixture()

		jobRepo.On("GetByID", mock.Anything, "job1").Return(job, nil)

		_, err := uc.ListByJob(context.Background(), "other-emp", "job1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appErrorCode(t, err))
		appRepo.AssertNotCalled(t, "FetchByJob")
	})

	t.Run("Should return an empty slice instead of nil", func(t *testing.T) {
		appRepo, jobRepo, _, _, uc := newApplicationFixture()

		jobRepo.On("GetByID", mock.Anything, "job1").Return(job, nil)
		appRepo.On("FetchByJob", mock.Anything, "job1").Return(nil, nil)

		apps, err := uc.ListByJob(context.Background(), "emp1", "job1")
		assert.NoError(t, err)
		assert.NotNil(t, apps)
		assert.Empty(t, apps)
	})
}

func TestUpdateStatus(t *testing.T) {
	job := &domain.Job{ID: "job1", EmployerID: "emp1", Title: "Backend Engineer"}
	app := &domain.Application{ID: "app1", JobID: "job1", CandidateID: "cand1", Status: domain.ApplicationStatusPending}
	candidate := &domain.User{ID: "cand1", Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"}

	t.Run("Should reject an unknown status value", func(t *testing.T) {
		appRepo, _, _, _, uc := newApplicationFixture()

		_, err := uc.UpdateStatus(context.Background(), "emp1", "app1", "SHORTLISTED")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
		appRepo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("Should return NotFound for a missing application", func(t *testing.T) {
		appRepo, _, _, _, uc := newApplicationFixture()

		appRepo.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

		_, err := uc.UpdateStatus(context.Background(), "emp1", "ghost", domain.ApplicationStatusReviewed)
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
	})

	t.Run("Should block an employer who does not own the job", func(t *testing.T) {
		appRepo, jobRepo, _, _, uc := newApplicationFixture()

		appRepo.On("GetByID", mock.Anything, "app1").Return(app, nil)
		jobRepo.On("GetByID", mock.Anything, "job1").Return(job, nil)

		_, err := uc.UpdateStatus(context.Background(), "intruder", "app1", domain.ApplicationStatusAccepted)
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appErrorCode(t, err))
		appRepo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("Should update the status and notify the candidate", func(t *testing.T) {
		appRepo, jobRepo, userRepo, notifier, uc := newApplicationFixture()

		pending := &domain.Application{ID: "app1", JobID: "job1", CandidateID: "cand1", Status: domain.ApplicationStatusPending}
		appRepo.On("GetByID", mock.Anything, "app1").Return(pending, nil)
		jobRepo.On("GetByID", mock.Anything, "job1").Return(job, nil)
		appRepo.On("UpdateStatus", mock.Anything, "app1", domain.ApplicationStatusAccepted).Return(nil)
		userRepo.On("GetByID", mock.Anything, "cand1").Return(candidate, nil)

		updated, err := uc.UpdateStatus(context.Background(), "emp1", "app1", domain.ApplicationStatusAccepted)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusAccepted, updated.Status)

		call := waitForNotification(t, notifier, "status-change")
		assert.Equal(t, "ada@example.com", call.To)
	})
}

func TestWithdraw(t *testing.T) {
	t.Run("Should return NotFound for a missing application", func(t *testing.T) {
		appRepo, _, _, _, uc := newApplicationFixture()

		appRepo.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

		err := uc.Withdraw(context.Background(), "cand1", "ghost")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
	})

	t.Run("Should block a candidate who does not own the application", func(t *testing.T) {
		appRepo, _, _, _, uc := newApplicationFixture()

		appRepo.On("GetByID", mock.Anything, "app1").
			Return(&domain.Application{ID: "app1", CandidateID: "cand1"}, nil)

		err := uc.Withdraw(context.Background(), "intruder", "app1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appErrorCode(t, err))
		appRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("Should allow withdrawal from any status", func(t *testing.T) {
		appRepo, _, _, _, uc := newApplicationFixture()

		appRepo.On("GetByID", mock.Anything, "app1").
			Return(&domain.Application{ID: "app1", CandidateID: "cand1", Status: domain.ApplicationStatusAccepted, AppliedDate: time.Now()}, nil)
		appRepo.On("Delete", mock.Anything, "app1").Return(nil)

		err := uc.Withdraw(context.Background(), "cand1", "app1")
		assert.NoError(t, err)
		appRepo.AssertExpectations(t)
	})
}
