package httptransport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"job-funnel-service/internal/auth"
	"job-funnel-service/internal/entity"
	"job-funnel-service/internal/funnel"
	"job-funnel-service/internal/logging"
	"job-funnel-service/internal/service"
	httptransport "job-funnel-service/internal/transport/http"
)

// ---- fakes ----

type memJobs struct {
	jobs   map[int64]*entity.Job
	nextID int64
}

func (r *memJobs) Insert(ctx context.Context, job *entity.Job) (*entity.Job, error) {
	r.nextID++
	job.ID = r.nextID
	cp := *job
	r.jobs[job.ID] = &cp
	return job, nil
}

func (r *memJobs) GetByID(ctx context.Context, id int64) (*entity.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (r *memJobs) LockByID(ctx context.Context, id int64) (*entity.Job, error) {
	return r.GetByID(ctx, id)
}

func (r *memJobs) ListByOwner(ctx context.Context, userID int64, stageID *int64) ([]entity.Job, error) {
	var out []entity.Job
	for _, j := range r.jobs {
		if j.UserID == userID && (stageID == nil || j.StageID == *stageID) {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *memJobs) Update(ctx context.Context, job *entity.Job) error {
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

type memUsers struct {
	users  map[int64]*entity.User
	nextID int64
}

func (r *memUsers) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	for _, x := range r.users {
		if x.Email == u.Email {
			return nil, entity.ErrConflict
		}
	}
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.users[u.ID] = &cp
	return u, nil
}

func (r *memUsers) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUsers) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *memUsers) UpdateIdentity(ctx context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

type inlineTx struct{}

func (inlineTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fakeOAuth struct {
	profile entity.Profile
	err     error
}

func (f *fakeOAuth) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (f *fakeOAuth) Exchange(ctx context.Context, code string) (entity.Profile, error) {
	return f.profile, f.err
}

// ---- helpers ----

type testEnv struct {
	router   http.Handler
	jobs     *memJobs
	users    *memUsers
	boundary *auth.Boundary
}

const frontend = "http://localhost:5173"

func newTestEnv(t *testing.T, oauth httptransport.OAuthProvider) *testEnv {
	t.Helper()

	catalog, err := funnel.NewCatalog([]entity.Stage{
		{ID: 1, Name: entity.StageApplied, OrderIndex: 1},
		{ID: 2, Name: entity.StageHRResponse, OrderIndex: 2},
		{ID: 3, Name: entity.StageScreening, OrderIndex: 3},
		{ID: 4, Name: entity.StageTechInterview, OrderIndex: 4},
		{ID: 5, Name: entity.StageHomework, OrderIndex: 5},
		{ID: 6, Name: entity.StageFinal, OrderIndex: 6},
		{ID: 7, Name: entity.StageOffer, OrderIndex: 7, IsTerminal: true},
		{ID: 8, Name: entity.StageRejected, OrderIndex: 8, IsTerminal: true},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	log := logging.Nop()
	jobs := &memJobs{jobs: map[int64]*entity.Job{}}
	users := &memUsers{users: map[int64]*entity.User{
		1: {ID: 1, Email: "ann@example.com"},
		2: {ID: 2, Email: "bob@example.com"},
	}, nextID: 2}

	userSvc := service.NewUserService(users, inlineTx{}, log)
	boundary := auth.NewBoundary(auth.NewSessions("test-secret", time.Hour), auth.NewMemoryRevocationStore(), userSvc, true)

	h := httptransport.NewHandler(httptransport.Deps{
		Jobs:           service.NewJobService(jobs, inlineTx{}, catalog, log, nil),
		Users:          userSvc,
		Funnel:         service.NewFunnelService(jobs, catalog),
		Boundary:       boundary,
		OAuth:          oauth,
		Log:            log,
		FrontendOrigin: frontend,
	})

	return &testEnv{router: httptransport.Routes(h), jobs: jobs, users: users, boundary: boundary}
}

func (e *testEnv) do(t *testing.T, method, path, body string, userID int64) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if userID != 0 {
		req.Header.Set(auth.DevUserHeader, strconv.FormatInt(userID, 10))
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) createJob(t *testing.T, userID int64, body string) entity.Job {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/jobs", body, userID)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d, body=%s", rr.Code, rr.Body.String())
	}
	var j entity.Job
	if err := json.Unmarshal(rr.Body.Bytes(), &j); err != nil {
		t.Fatalf("invalid json: %v, body=%s", err, rr.Body.String())
	}
	return j
}

func messageOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil {
		t.Fatalf("invalid error body: %v, body=%s", err, rr.Body.String())
	}
	return e.Message
}

// ---- tests ----

func TestHTTP_Health(t *testing.T) {
	env := newTestEnv(t, nil)
	rr := env.do(t, http.MethodGet, "/health", "", 0)
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("unexpected health: %d %q", rr.Code, rr.Body.String())
	}
}

func TestHTTP_Stages_Public(t *testing.T) {
	env := newTestEnv(t, nil)
	rr := env.do(t, http.MethodGet, "/stages", "", 0)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var stages []entity.Stage
	if err := json.Unmarshal(rr.Body.Bytes(), &stages); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(stages) != 8 || stages[0].Name != entity.StageApplied || !stages[7].IsTerminal {
		t.Fatalf("unexpected stages: %+v", stages)
	}
}

func TestHTTP_ProtectedRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t, nil)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/me"},
		{http.MethodGet, "/jobs"},
		{http.MethodPost, "/jobs"},
		{http.MethodGet, "/jobs/1"},
		{http.MethodPatch, "/jobs/1"},
		{http.MethodGet, "/metrics"},
	} {
		rr := env.do(t, tc.method, tc.path, "", 0)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, rr.Code)
		}
	}

	rr := env.do(t, http.MethodGet, "/me", "", 99)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user id: expected 401, got %d", rr.Code)
	}
}

func TestHTTP_CreateUser(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, http.MethodPost, "/users", `{"email":"cara@example.com","name":"Cara"}`, 0)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d, body=%s", rr.Code, rr.Body.String())
	}

	rr = env.do(t, http.MethodPost, "/users", `{"email":"ann@example.com"}`, 0)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}

	rr = env.do(t, http.MethodPost, "/users", `{"email":`, 0)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHTTP_CreateAndGetJob(t *testing.T) {
	env := newTestEnv(t, nil)

	job := env.createJob(t, 1, `{"company":"Acme","position":"Backend","stage_id":3}`)
	if job.StageID != 3 || job.AppliedAt == nil || job.ScreeningAt == nil {
		t.Fatalf("unexpected job: %+v", job)
	}

	rr := env.do(t, http.MethodGet, "/jobs/"+strconv.FormatInt(job.ID, 10), "", 1)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", rr.Code, rr.Body.String())
	}

	var got map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	// числа в map[string]any становятся float64
	if got["stage_id"] != float64(3) || got["company"] != "Acme" {
		t.Fatalf("unexpected body: %v", got)
	}
	if _, ok := got["hr_response_at"]; !ok {
		t.Fatalf("timestamps must be flat fields: %v", got)
	}
}

func TestHTTP_CreateJob_Errors(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, http.MethodPost, "/jobs", `{"company":"Acme","position":"Backend","stage_id":42}`, 1)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown stage: expected 400, got %d", rr.Code)
	}
	rr = env.do(t, http.MethodPost, "/jobs", `{"position":"Backend"}`, 1)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing company: expected 422, got %d", rr.Code)
	}
	rr = env.do(t, http.MethodPost, "/jobs", `{"company":"`+strings.Repeat("a", 200)+`","position":"Backend"}`, 1)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("long company: expected 422, got %d", rr.Code)
	}
	rr = env.do(t, http.MethodPost, "/jobs", `not json`, 1)
	if rr.Code != http.StatusBadRequest || messageOf(t, rr) != "invalid json" {
		t.Fatalf("bad json: expected 400, got %d", rr.Code)
	}
	if len(env.jobs.jobs) != 0 {
		t.Fatalf("nothing must be stored")
	}
}

func TestHTTP_CreateJob_Timestamps(t *testing.T) {
	env := newTestEnv(t, nil)

	// без смещения читается как UTC
	job := env.createJob(t, 1, `{"company":"Acme","position":"Backend","applied_at":"2026-01-01T10:00:00"}`)
	if job.AppliedAt == nil || !job.AppliedAt.Equal(time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("naive applied_at: got %v", job.AppliedAt)
	}

	job = env.createJob(t, 1, `{"company":"Acme","position":"Backend","applied_at":"2026-01-01T10:00:00+03:00","hr_response_at":null}`)
	if job.AppliedAt == nil || !job.AppliedAt.Equal(time.Date(2026, 1, 1, 7, 0, 0, 0, time.UTC)) {
		t.Fatalf("offset applied_at: got %v", job.AppliedAt)
	}
	if job.HRResponseAt != nil {
		t.Fatalf("hr_response_at must stay empty, got %v", job.HRResponseAt)
	}

	rr := env.do(t, http.MethodPost, "/jobs", `{"company":"Acme","position":"Backend","applied_at":"yesterday"}`, 1)
	if rr.Code != http.StatusBadRequest || messageOf(t, rr) != "invalid json" {
		t.Fatalf("bad timestamp: expected 400, got %d", rr.Code)
	}
}

func TestHTTP_GetJob_NotFoundAndForbidden(t *testing.T) {
	env := newTestEnv(t, nil)
	job := env.createJob(t, 1, `{"company":"Acme","position":"Backend"}`)
	path := "/jobs/" + strconv.FormatInt(job.ID, 10)

	if rr := env.do(t, http.MethodGet, path, "", 2); rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	if rr := env.do(t, http.MethodGet, "/jobs/999", "", 1); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if rr := env.do(t, http.MethodGet, "/jobs/abc", "", 1); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHTTP_UpdateJob(t *testing.T) {
	env := newTestEnv(t, nil)
	job := env.createJob(t, 1, `{"company":"Acme","position":"Backend","notes":"ping recruiter"}`)
	path := "/jobs/" + strconv.FormatInt(job.ID, 10)

	rr := env.do(t, http.MethodPatch, path, `{"stage_id":2,"notes":null}`, 1)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", rr.Code, rr.Body.String())
	}
	var got entity.Job
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.StageID != 2 || got.HRResponseAt == nil || got.Notes != nil || got.Company != "Acme" {
		t.Fatalf("unexpected job after patch: %+v", got)
	}

	rr = env.do(t, http.MethodPatch, path, `{"stage_id":7,"offer_at":"2026-01-05T09:00:00Z"}`, 1)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.OfferAt == nil || !got.OfferAt.Equal(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected explicit offer_at, got %v", got.OfferAt)
	}
}

func TestHTTP_UpdateJob_ErrorPrecedence(t *testing.T) {
	env := newTestEnv(t, nil)
	job := env.createJob(t, 1, `{"company":"Acme","position":"Backend"}`)
	path := "/jobs/" + strconv.FormatInt(job.ID, 10)

	cases := []struct {
		name   string
		path   string
		body   string
		userID int64
		want   int
	}{
		{"missing job", "/jobs/999", `{"stage_id":42}`, 1, http.StatusNotFound},
		{"foreign job with bad stage", path, `{"stage_id":42}`, 2, http.StatusForbidden},
		{"bad stage", path, `{"stage_id":42}`, 1, http.StatusBadRequest},
		{"null company", path, `{"company":null}`, 1, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := env.do(t, http.MethodPatch, tc.path, tc.body, tc.userID)
			if rr.Code != tc.want {
				t.Fatalf("expected %d, got %d, body=%s", tc.want, rr.Code, rr.Body.String())
			}
		})
	}

	if env.jobs.jobs[job.ID].StageID != 1 {
		t.Fatalf("failed updates must not change the job")
	}
}

func TestHTTP_ListJobsAndMetrics(t *testing.T) {
	env := newTestEnv(t, nil)
	env.createJob(t, 1, `{"company":"A","position":"P"}`)
	env.createJob(t, 1, `{"company":"B","position":"P","stage_id":2}`)
	env.createJob(t, 2, `{"company":"C","position":"P"}`)

	rr := env.do(t, http.MethodGet, "/jobs?stage_id=2", "", 1)
	var jobs []entity.Job
	if err := json.Unmarshal(rr.Body.Bytes(), &jobs); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Company != "B" {
		t.Fatalf("unexpected filtered jobs: %+v", jobs)
	}

	if rr := env.do(t, http.MethodGet, "/jobs?stage_id=x", "", 1); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad stage_id, got %d", rr.Code)
	}

	rr = env.do(t, http.MethodGet, "/metrics", "", 1)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var m entity.Metrics
	if err := json.Unmarshal(rr.Body.Bytes(), &m); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if m.StageProgress[0].Count != 2 || m.StageProgress[1].Count != 1 {
		t.Fatalf("unexpected progress: %+v", m.StageProgress)
	}
	if m.Conversions[0].Rate == nil || *m.Conversions[0].Rate != 0.5 {
		t.Fatalf("expected Applied->HR Response = 0.5, got %v", m.Conversions[0].Rate)
	}
	if len(m.Conversions) != 6 {
		t.Fatalf("expected 6 conversions, got %d", len(m.Conversions))
	}
}

func TestHTTP_EmptyListIsArray(t *testing.T) {
	env := newTestEnv(t, nil)
	rr := env.do(t, http.MethodGet, "/jobs", "", 1)
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("expected [], got %s", rr.Body.String())
	}
}

func TestHTTP_SessionLifecycle(t *testing.T) {
	env := newTestEnv(t, nil)
	token, _, err := env.boundary.StartSession(1)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	withCookie := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)
		return rr
	}

	if rr := withCookie(http.MethodGet, "/me"); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr := withCookie(http.MethodPost, "/auth/logout"); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr := withCookie(http.MethodGet, "/me"); rr.Code != http.StatusUnauthorized {
		t.Fatalf("revoked session: expected 401, got %d", rr.Code)
	}
}

func TestHTTP_GoogleLogin(t *testing.T) {
	if rr := newTestEnv(t, nil).do(t, http.MethodGet, "/auth/google/login", "", 0); rr.Code != http.StatusInternalServerError {
		t.Fatalf("unconfigured: expected 500, got %d", rr.Code)
	}

	env := newTestEnv(t, &fakeOAuth{})
	rr := env.do(t, http.MethodGet, "/auth/google/login", "", 0)
	if rr.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rr.Code)
	}
	var state string
	for _, c := range rr.Result().Cookies() {
		if c.Name == "oauth_state" {
			state = c.Value
		}
	}
	if state == "" || !strings.HasSuffix(rr.Header().Get("Location"), "state="+state) {
		t.Fatalf("state cookie and redirect must agree: cookie=%q location=%q", state, rr.Header().Get("Location"))
	}
}

func TestHTTP_GoogleCallback(t *testing.T) {
	callback := func(env *testEnv, cookieState, queryState string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=c&state="+queryState, nil)
		if cookieState != "" {
			req.AddCookie(&http.Cookie{Name: "oauth_state", Value: cookieState})
		}
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("links existing account", func(t *testing.T) {
		env := newTestEnv(t, &fakeOAuth{profile: entity.Profile{
			Provider: "google", Subject: "g-1", Email: "ann@example.com", Name: "Ann",
		}})

		rr := callback(env, "s1", "s1")
		if rr.Code != http.StatusFound || rr.Header().Get("Location") != frontend {
			t.Fatalf("expected redirect to frontend, got %d %q", rr.Code, rr.Header().Get("Location"))
		}
		var session *http.Cookie
		for _, c := range rr.Result().Cookies() {
			if c.Name == auth.SessionCookie {
				session = c
			}
		}
		if session == nil || session.Value == "" || !session.HttpOnly {
			t.Fatalf("expected http-only session cookie, got %+v", session)
		}
		if len(env.users.users) != 2 {
			t.Fatalf("existing email must not create a user, got %d users", len(env.users.users))
		}
		if p := env.users.users[1].Provider; p == nil || *p != "google" {
			t.Fatalf("expected provider linked, got %v", p)
		}
	})

	t.Run("state mismatch", func(t *testing.T) {
		env := newTestEnv(t, &fakeOAuth{})
		if rr := callback(env, "s1", "s2"); rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
		if rr := callback(env, "", "s2"); rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("missing email", func(t *testing.T) {
		env := newTestEnv(t, &fakeOAuth{err: auth.ErrMissingEmail})
		rr := callback(env, "s1", "s1")
		if rr.Code != http.StatusBadRequest || messageOf(t, rr) != "Google profile missing email." {
			t.Fatalf("expected 400, got %d %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("exchange failure", func(t *testing.T) {
		env := newTestEnv(t, &fakeOAuth{err: errors.New("invalid_grant")})
		if rr := callback(env, "s1", "s1"); rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})
}

func TestHTTP_CORSPreflight(t *testing.T) {
	env := newTestEnv(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/jobs", nil)
	req.Header.Set("Origin", frontend)
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	if rr.Header().Get("Access-Control-Allow-Origin") != frontend {
		t.Fatalf("expected allow-origin %s, got %q", frontend, rr.Header().Get("Access-Control-Allow-Origin"))
	}
	if rr.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatalf("expected credentials allowed")
	}
}
