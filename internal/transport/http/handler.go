package httptransport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"job-funnel-service/internal/auth"
	"job-funnel-service/internal/entity"
	"job-funnel-service/internal/logging"
	"job-funnel-service/internal/service"
)

type Handler struct {
	jobs     *service.JobService
	users    *service.UserService
	funnel   *service.FunnelService
	boundary *auth.Boundary
	oauth    OAuthProvider
	log      logging.Logger

	frontendOrigin string
	cookieSecure   bool
}

// Deps groups what the handlers need. OAuth may be nil when Google login is not configured.
type Deps struct {
	Jobs     *service.JobService
	Users    *service.UserService
	Funnel   *service.FunnelService
	Boundary *auth.Boundary
	OAuth    OAuthProvider
	Log      logging.Logger

	FrontendOrigin string
	CookieSecure   bool
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		jobs:           d.Jobs,
		users:          d.Users,
		funnel:         d.Funnel,
		boundary:       d.Boundary,
		oauth:          d.OAuth,
		log:            d.Log,
		frontendOrigin: d.FrontendOrigin,
		cookieSecure:   d.CookieSecure,
	}
}

type createUserDTO struct {
	Email       string  `json:"email"`
	Name        *string `json:"name"`
	Provider    *string `json:"provider"`
	ProviderSub *string `json:"provider_sub"`
}

type createJobDTO struct {
	StageID  *int64  `json:"stage_id"`
	Company  string  `json:"company"`
	Position string  `json:"position"`
	Source   *string `json:"source"`
	Salary   *string `json:"salary"`
	Stack    *string `json:"stack"`
	Notes    *string `json:"notes"`
	Priority *string `json:"priority"`

	stageTimestampsDTO
}

// updateJobDTO: absent field = keep, null = clear (optional text only).
type updateJobDTO struct {
	StageID  *int64                  `json:"stage_id"`
	Company  entity.Optional[string] `json:"company" swaggertype:"string"`
	Position entity.Optional[string] `json:"position" swaggertype:"string"`
	Source   entity.Optional[string] `json:"source" swaggertype:"string"`
	Salary   entity.Optional[string] `json:"salary" swaggertype:"string"`
	Stack    entity.Optional[string] `json:"stack" swaggertype:"string"`
	Notes    entity.Optional[string] `json:"notes" swaggertype:"string"`
	Priority entity.Optional[string] `json:"priority" swaggertype:"string"`

	stageTimestampsDTO
}

// ListStages godoc
// @Summary List pipeline stages
// @Tags stages
// @Produce json
// @Success 200 {array} entity.Stage
// @Router /stages [get]
func (h *Handler) ListStages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.funnel.ListStages())
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param request body createUserDTO true "user payload"
// @Success 201 {object} entity.User
// @Failure 400 {object} apiError
// @Failure 409 {object} apiError
// @Failure 422 {object} apiError
// @Router /users [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto createUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	u, err := h.users.CreateUser(r.Context(), service.CreateUserRequest{
		Email:       dto.Email,
		Name:        dto.Name,
		Provider:    dto.Provider,
		ProviderSub: dto.ProviderSub,
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, u)
}

// Me godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} entity.User
// @Failure 401 {object} apiError
// @Router /me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r))
}

// ListJobs godoc
// @Summary List own jobs, most recently updated first
// @Tags jobs
// @Produce json
// @Param stage_id query int false "only jobs currently at this stage"
// @Success 200 {array} entity.Job
// @Failure 400 {object} apiError
// @Failure 401 {object} apiError
// @Router /jobs [get]
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	var stageID *int64
	if raw := r.URL.Query().Get("stage_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "invalid stage_id")
			return
		}
		stageID = &id
	}

	jobs, err := h.jobs.ListJobs(r.Context(), currentUser(r).ID, stageID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	if jobs == nil {
		jobs = []entity.Job{}
	}

	writeJSON(w, http.StatusOK, jobs)
}

// CreateJob godoc
// @Summary Create a job application
// @Description Starts at stage_id or the first stage. applied_at and the stage's own timestamp are stamped unless supplied. Timestamps are RFC 3339; values without an offset are read as UTC.
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body createJobDTO true "job payload"
// @Success 201 {object} entity.Job
// @Failure 400 {object} apiError
// @Failure 401 {object} apiError
// @Failure 422 {object} apiError
// @Router /jobs [post]
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var dto createJobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	job, err := h.jobs.CreateJob(r.Context(), currentUser(r).ID, service.CreateJobRequest{
		StageID:    dto.StageID,
		Company:    dto.Company,
		Position:   dto.Position,
		Source:     dto.Source,
		Salary:     dto.Salary,
		Stack:      dto.Stack,
		Notes:      dto.Notes,
		Priority:   dto.Priority,
		Timestamps: dto.toEntity(),
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, job)
}

// GetJob godoc
// @Summary Get own job by id
// @Tags jobs
// @Produce json
// @Param id path int true "job id"
// @Success 200 {object} entity.Job
// @Failure 400 {object} apiError
// @Failure 403 {object} apiError
// @Failure 404 {object} apiError
// @Router /jobs/{id} [get]
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	job, err := h.jobs.GetJob(r.Context(), currentUser(r).ID, id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// UpdateJob godoc
// @Summary Partially update own job
// @Description Moving to a stage stamps that stage's timestamp once, or uses the explicit value sent for it. null clears optional text fields.
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path int true "job id"
// @Param request body updateJobDTO true "fields to change"
// @Success 200 {object} entity.Job
// @Failure 400 {object} apiError
// @Failure 403 {object} apiError
// @Failure 404 {object} apiError
// @Failure 422 {object} apiError
// @Router /jobs/{id} [patch]
func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	var dto updateJobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	job, err := h.jobs.UpdateJob(r.Context(), currentUser(r).ID, id, service.UpdateJobRequest{
		StageID:    dto.StageID,
		Company:    dto.Company,
		Position:   dto.Position,
		Source:     dto.Source,
		Salary:     dto.Salary,
		Stack:      dto.Stack,
		Notes:      dto.Notes,
		Priority:   dto.Priority,
		Timestamps: dto.toEntity(),
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// Metrics godoc
// @Summary Funnel metrics for the current user
// @Tags metrics
// @Produce json
// @Success 200 {object} entity.Metrics
// @Failure 401 {object} apiError
// @Router /metrics [get]
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.funnel.GetMetrics(r.Context(), currentUser(r).ID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, m)
}

func jobID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeErr(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
