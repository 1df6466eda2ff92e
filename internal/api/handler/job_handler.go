package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jobhive/jobboard-api/internal/api/metrics"
	"github.com/jobhive/jobboard-api/internal/core/domain"
	"github.com/jobhive/jobboard-api/internal/core/ports"
)

// JobHandler handles job posting CRUD, radius search, topic stats and the
// apply workflow.
type JobHandler struct {
	jobs         ports.JobService
	search       ports.SearchService
	stats        ports.StatsService
	applications ports.ApplicationService
}

func NewJobHandler(jobs ports.JobService, search ports.SearchService, stats ports.StatsService, applications ports.ApplicationService) *JobHandler {
	return &JobHandler{jobs: jobs, search: search, stats: stats, applications: applications}
}

// List handles GET /api/v1/jobs — public.
//
// @Summary      List all jobs
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  successEnvelope
// @Router       /api/v1/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	jobs, err := h.jobs.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successEnvelope{Success: true, Data: toJobListResponse(jobs)})
}

// Get handles GET /api/v1/job/:id/:slug — public.
//
// @Summary      Get a job by id and slug
// @Tags         jobs
// @Produce      json
// @Param        id    path      string  true  "Job id"
// @Param        slug  path      string  true  "Job slug"
// @Success      200   {object}  successEnvelope
// @Failure      404   {object}  errorEnvelope
// @Router       /api/v1/job/{id}/{slug} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.jobs.Get(c.Request().Context(), c.Param("id"), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successEnvelope{Success: true, Data: toJobResponse(job)})
}

// Create handles POST /api/v1/job/new — roles employer, admin.
//
// @Summary      Post a new job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createJobRequest  true  "Job details; coordinates are derived from address server-side"
// @Success      201   {object}  successEnvelope
// @Failure      401   {object}  errorEnvelope
// @Failure      403   {object}  errorEnvelope
// @Failure      422   {object}  errorEnvelope
// @Router       /api/v1/job/new [post]
func (h *JobHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	job, err := h.jobs.Create(c.Request().Context(), identity, toCreateJobInput(req))
	if err != nil {
		return err
	}
	metrics.JobsCreatedTotal.WithLabelValues(job.Topic).Inc()

	return c.JSON(http.StatusCreated, successEnvelope{Success: true, Data: toJobResponse(job)})
}

// Update handles PUT /api/v1/job/:id — roles employer, admin; owner only.
//
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string            true  "Job id"
// @Param        body  body      updateJobRequest  true  "Fields to change"
// @Success      200   {object}  successEnvelope
// @Failure      403   {object}  errorEnvelope
// @Failure      404   {object}  errorEnvelope
// @Router       /api/v1/job/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	job, err := h.jobs.Update(c.Request().Context(), identity, c.Param("id"), toUpdateJobInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successEnvelope{Success: true, Data: toJobResponse(job)})
}

// Delete handles DELETE /api/v1/job/:id — roles employer, admin; owner only.
//
// @Summary      Delete a job
// @Tags         jobs
// @Produce      json
// @Security     CookieAuth
// @Param        id  path      string  true  "Job id"
// @Success      200  {object}  successEnvelope
// @Failure      403  {object}  errorEnvelope
// @Failure      404  {object}  errorEnvelope
// @Router       /api/v1/job/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.jobs.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successEnvelope{Success: true, Data: "job deleted"})
}

// FindNear handles GET /api/v1/jobs/:zipcode/:distance — public. Distance
// is interpreted as kilometres.
//
// @Summary      Find jobs near a location
// @Tags         jobs
// @Produce      json
// @Param        zipcode   path      string  true  "Postal code or address"
// @Param        distance  path      number  true  "Search radius in kilometres"
// @Success      200       {object}  successEnvelope
// @Failure      400       {object}  errorEnvelope
// @Failure      422       {object}  errorEnvelope
// @Router       /api/v1/jobs/{zipcode}/{distance} [get]
func (h *JobHandler) FindNear(c echo.Context) error {
	radiusKm, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil || radiusKm <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "distance must be a positive number of kilometres")
	}

	jobs, err := h.search.FindNear(c.Request().Context(), c.Param("zipcode"), radiusKm)
	if err != nil {
		if errors.Is(err, domain.ErrGeocodeFailed) {
			metrics.RadiusSearchesTotal.WithLabelValues("geocode_failed").Inc()
		}
		return err
	}
	metrics.RadiusSearchesTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, successEnvelope{Success: true, Data: toJobListResponse(jobs)})
}

// TopicStats handles GET /api/v1/stats/:topic — public.
//
// @Summary      Salary statistics for a topic
// @Tags         jobs
// @Produce      json
// @Param        topic  path      string  true  "Topic tag, matched case-insensitively"
// @Success      200    {object}  successEnvelope
// @Failure      404    {object}  errorEnvelope
// @Router       /api/v1/stats/{topic} [get]
func (h *JobHandler) TopicStats(c echo.Context) error {
	stats, err := h.stats.TopicStats(c.Request().Context(), c.Param("topic"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successEnvelope{Success: true, Data: toTopicStatsResponse(stats)})
}

// Apply handles PUT /api/v1/job/:id/apply — role user; multipart upload
// with the resume under the "resume" field.
//
// @Summary      Apply to a job
// @Tags         jobs
// @Accept       multipart/form-data
// @Produce      json
// @Security     CookieAuth
// @Param        id      path      string  true  "Job id"
// @Param        resume  formData  file    true  "Resume file (pdf, doc or docx)"
// @Success      201     {object}  successEnvelope
// @Failure      400     {object}  errorEnvelope
// @Failure      404     {object}  errorEnvelope
// @Failure      409     {object}  errorEnvelope
// @Router       /api/v1/job/{id}/apply [put]
func (h *JobHandler) Apply(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("resume")
	if err != nil {
		metrics.ApplicationsTotal.WithLabelValues("rejected").Inc()
		return domain.ErrInvalidAttachment
	}

	upload := ports.ResumeUpload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}

	jobID := c.Param("id")
	app, err := h.applications.Apply(c.Request().Context(), jobID, identity, upload)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateApplication):
			metrics.ApplicationsTotal.WithLabelValues("duplicate").Inc()
		default:
			metrics.ApplicationsTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}
	metrics.ApplicationsTotal.WithLabelValues("accepted").Inc()

	return c.JSON(http.StatusCreated, successEnvelope{Success: true, Data: toApplicationResponse(jobID, app)})
}
