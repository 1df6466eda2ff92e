package handler

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/jobhive/jobboard-api/internal/core/domain"
	"github.com/jobhive/jobboard-api/internal/core/ports"
)

type stubJobService struct {
	createFn func(ctx context.Context, owner domain.Identity, input ports.CreateJobInput) (*domain.Job, error)
	updateFn func(ctx context.Context, caller domain.Identity, jobID string, input ports.UpdateJobInput) (*domain.Job, error)
	deleteFn func(ctx context.Context, caller domain.Identity, jobID string) error
	getFn    func(ctx context.Context, id, slug string) (*domain.Job, error)
	listFn   func(ctx context.Context) ([]*domain.Job, error)
}

func (s *stubJobService) Create(ctx context.Context, owner domain.Identity, input ports.CreateJobInput) (*domain.Job, error) {
	return s.createFn(ctx, owner, input)
}

func (s *stubJobService) Update(ctx context.Context, caller domain.Identity, jobID string, input ports.UpdateJobInput) (*domain.Job, error) {
	return s.updateFn(ctx, caller, jobID, input)
}

func (s *stubJobService) Delete(ctx context.Context, caller domain.Identity, jobID string) error {
	return s.deleteFn(ctx, caller, jobID)
}

func (s *stubJobService) Get(ctx context.Context, id, slug string) (*domain.Job, error) {
	return s.getFn(ctx, id, slug)
}

func (s *stubJobService) List(ctx context.Context) ([]*domain.Job, error) {
	return s.listFn(ctx)
}

type stubSearchService struct {
	findNearFn func(ctx context.Context, zipOrAddress string, radiusKm float64) ([]*domain.Job, error)
}

func (s *stubSearchService) FindNear(ctx context.Context, zipOrAddress string, radiusKm float64) ([]*domain.Job, error) {
	return s.findNearFn(ctx, zipOrAddress, radiusKm)
}

type stubStatsService struct {
	topicStatsFn func(ctx context.Context, topic string) (*domain.TopicStats, error)
}

func (s *stubStatsService) TopicStats(ctx context.Context, topic string) (*domain.TopicStats, error) {
	return s.topicStatsFn(ctx, topic)
}

type stubApplicationService struct {
	applyFn func(ctx context.Context, jobID string, applicant domain.Identity, resume ports.ResumeUpload) (*domain.Application, error)
}

func (s *stubApplicationService) Apply(ctx context.Context, jobID string, applicant domain.Identity, resume ports.ResumeUpload) (*domain.Application, error) {
	return s.applyFn(ctx, jobID, applicant, resume)
}

func sampleJob() *domain.Job {
	return &domain.Job{
		ID:       "j1",
		Title:    "Backend Engineer",
		Slug:     "backend-engineer",
		Company:  "Acme",
		Topic:    "go",
		Salary:   90000,
		Address:  "5 Main St",
		GeoPoint: domain.NewGeoPoint(-73.0, 40.0),
		OwnerID:  "emp1",
		Active:   true,
	}
}

func TestJobHandler_Create_MapsInput(t *testing.T) {
	var got ports.CreateJobInput
	jobs := &stubJobService{
		createFn: func(ctx context.Context, owner domain.Identity, input ports.CreateJobInput) (*domain.Job, error) {
			if owner.UserID != "emp1" || owner.Role != domain.RoleEmployer {
				t.Fatalf("unexpected owner identity: %+v", owner)
			}
			got = input
			return sampleJob(), nil
		},
	}
	h := NewJobHandler(jobs, nil, nil, nil)

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/job/new",
		`{"title":"Backend Engineer","description":"Build services","company":"Acme","topic":"go","salary":90000,"address":"5 Main St"}`)
	c.Set("user_id", "emp1")
	c.Set("role", domain.RoleEmployer)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.Address != "5 Main St" || got.Salary != 90000 {
		t.Fatalf("unexpected input forwarded: %+v", got)
	}
}

func TestJobHandler_Create_Unauthenticated(t *testing.T) {
	jobs := &stubJobService{
		createFn: func(ctx context.Context, owner domain.Identity, input ports.CreateJobInput) (*domain.Job, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}
	h := NewJobHandler(jobs, nil, nil, nil)

	c, _ := newTestContext(t, http.MethodPost, "/api/v1/job/new", `{}`)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestJobHandler_Update_SalaryPointer(t *testing.T) {
	var got ports.UpdateJobInput
	jobs := &stubJobService{
		updateFn: func(ctx context.Context, caller domain.Identity, jobID string, input ports.UpdateJobInput) (*domain.Job, error) {
			got = input
			return sampleJob(), nil
		},
	}
	h := NewJobHandler(jobs, nil, nil, nil)

	c, _ := newTestContext(t, http.MethodPut, "/api/v1/job/j1", `{"salary":120000}`)
	c.SetParamNames("id")
	c.SetParamValues("j1")
	c.Set("user_id", "emp1")
	c.Set("role", domain.RoleEmployer)

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !got.SetSalary || got.Salary != 120000 {
		t.Fatalf("salary update not forwarded: %+v", got)
	}
	if got.Title != "" || got.Active != nil {
		t.Fatalf("absent fields must stay zero: %+v", got)
	}
}

func TestJobHandler_FindNear_InvalidDistance(t *testing.T) {
	search := &stubSearchService{
		findNearFn: func(ctx context.Context, zipOrAddress string, radiusKm float64) ([]*domain.Job, error) {
			t.Fatal("search should not be called")
			return nil, nil
		},
	}
	h := NewJobHandler(nil, search, nil, nil)

	for _, distance := range []string{"abc", "0", "-3"} {
		c, _ := newTestContext(t, http.MethodGet, "/api/v1/jobs/10001/"+distance, "")
		c.SetParamNames("zipcode", "distance")
		c.SetParamValues("10001", distance)

		err := h.FindNear(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("distance %q: expected 400, got %v", distance, err)
		}
	}
}

func TestJobHandler_FindNear_Success(t *testing.T) {
	search := &stubSearchService{
		findNearFn: func(ctx context.Context, zipOrAddress string, radiusKm float64) ([]*domain.Job, error) {
			if zipOrAddress != "10001" || radiusKm != 25 {
				t.Fatalf("unexpected search args: %q %v", zipOrAddress, radiusKm)
			}
			return []*domain.Job{sampleJob()}, nil
		},
	}
	h := NewJobHandler(nil, search, nil, nil)

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/jobs/10001/25", "")
	c.SetParamNames("zipcode", "distance")
	c.SetParamValues("10001", "25")

	if err := h.FindNear(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestJobHandler_TopicStats_NoMatch(t *testing.T) {
	stats := &stubStatsService{
		topicStatsFn: func(ctx context.Context, topic string) (*domain.TopicStats, error) {
			return nil, domain.ErrNoMatchingTopic
		},
	}
	h := NewJobHandler(nil, nil, stats, nil)

	c, _ := newTestContext(t, http.MethodGet, "/api/v1/stats/cobol", "")
	c.SetParamNames("topic")
	c.SetParamValues("cobol")

	if err := h.TopicStats(c); !errors.Is(err, domain.ErrNoMatchingTopic) {
		t.Fatalf("expected ErrNoMatchingTopic, got %v", err)
	}
}

func newApplyContext(t *testing.T, withFile bool) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if withFile {
		part, err := mw.CreateFormFile("resume", "cv.pdf")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte("%PDF-1.4 resume body")); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/job/j1/apply", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("j1")
	c.Set("user_id", "u1")
	c.Set("role", domain.RoleUser)
	return c, rec
}

func TestJobHandler_Apply_Success(t *testing.T) {
	apps := &stubApplicationService{
		applyFn: func(ctx context.Context, jobID string, applicant domain.Identity, resume ports.ResumeUpload) (*domain.Application, error) {
			if jobID != "j1" || applicant.UserID != "u1" {
				t.Fatalf("unexpected apply args: %q %+v", jobID, applicant)
			}
			if resume.Filename != "cv.pdf" || resume.Size == 0 {
				t.Fatalf("unexpected upload: %+v", resume)
			}
			return &domain.Application{ID: "a1", UserID: applicant.UserID}, nil
		},
	}
	h := NewJobHandler(nil, nil, nil, apps)

	c, rec := newApplyContext(t, true)

	if err := h.Apply(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestJobHandler_Apply_MissingFile(t *testing.T) {
	apps := &stubApplicationService{
		applyFn: func(ctx context.Context, jobID string, applicant domain.Identity, resume ports.ResumeUpload) (*domain.Application, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}
	h := NewJobHandler(nil, nil, nil, apps)

	c, _ := newApplyContext(t, false)

	if err := h.Apply(c); !errors.Is(err, domain.ErrInvalidAttachment) {
		t.Fatalf("expected ErrInvalidAttachment, got %v", err)
	}
}

func TestJobHandler_Apply_Duplicate(t *testing.T) {
	apps := &stubApplicationService{
		applyFn: func(ctx context.Context, jobID string, applicant domain.Identity, resume ports.ResumeUpload) (*domain.Application, error) {
			return nil, domain.ErrDuplicateApplication
		},
	}
	h := NewJobHandler(nil, nil, nil, apps)

	c, _ := newApplyContext(t, true)

	if err := h.Apply(c); !errors.Is(err, domain.ErrDuplicateApplication) {
		t.Fatalf("expected ErrDuplicateApplication, got %v", err)
	}
}
