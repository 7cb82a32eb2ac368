package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpage/announcements-backend/internal/announcement"
	annhttp "github.com/classpage/announcements-backend/internal/announcement/http"
)

type memoryRepository struct {
	items   map[string]*announcement.Announcement
	listErr error
}

func (r *memoryRepository) Create(_ context.Context, a *announcement.Announcement) error {
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC()
	cp := *a
	r.items[a.ID] = &cp
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*announcement.Announcement, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, announcement.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memoryRepository) List(_ context.Context) ([]*announcement.Announcement, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*announcement.Announcement, 0, len(r.items))
	for _, a := range r.items {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memoryRepository) UpdateFields(_ context.Context, id string, fields announcement.UpdateFields) error {
	a, ok := r.items[id]
	if !ok {
		return announcement.ErrNotFound
	}
	if fields.Message != nil {
		a.Message = *fields.Message
	}
	if fields.StartDate != nil {
		if *fields.StartDate == "" {
			a.StartDate = nil
		} else {
			v := *fields.StartDate
			a.StartDate = &v
		}
	}
	if fields.ExpirationDate != nil {
		a.ExpirationDate = *fields.ExpirationDate
	}
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return announcement.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type staticDirectory struct {
	known map[string]bool
}

func (d *staticDirectory) Exists(_ context.Context, identifier string) (bool, error) {
	return d.known[identifier], nil
}

func newTestRouter(repo *memoryRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	dir := &staticDirectory{known: map[string]bool{"teacher@example.com": true}}
	svc := announcement.NewService(repo, dir, announcement.WithNowFunc(func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}))

	engine := gin.New()
	annhttp.RegisterRoutes(engine.Group("/v1"), annhttp.NewHandler(svc))
	return engine
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{items: map[string]*announcement.Announcement{}}
}

func seed(repo *memoryRepository, message string, start *string, expiration string) string {
	id := uuid.NewString()
	repo.items[id] = &announcement.Announcement{
		ID:             id,
		Message:        message,
		StartDate:      start,
		ExpirationDate: expiration,
		CreatedBy:      "teacher@example.com",
		CreatedAt:      time.Now().UTC(),
	}
	return id
}

func doJSON(t *testing.T, engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestGetActive(t *testing.T) {
	repo := newMemoryRepository()
	seed(repo, "visible", nil, "2025-07-01")
	seed(repo, "expired", nil, "2025-06-01")
	engine := newTestRouter(repo)

	rec := doJSON(t, engine, http.MethodGet, "/v1/announcements/active", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []annhttp.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "visible", items[0].Message)
}

func TestGetActive_StorageFailure(t *testing.T) {
	repo := newMemoryRepository()
	repo.listErr = errors.New("db down")
	engine := newTestRouter(repo)

	rec := doJSON(t, engine, http.MethodGet, "/v1/announcements/active", "")

	// The public endpoint degrades to an empty list instead of erroring.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestListAll(t *testing.T) {
	repo := newMemoryRepository()
	seed(repo, "first", nil, "2025-01-01")
	engine := newTestRouter(repo)

	t.Run("requires username", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodGet, "/v1/announcements/all", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "username is required", errorMessage(t, rec))
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodGet, "/v1/announcements/all?username=stranger@example.com", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "unauthorized", errorMessage(t, rec))
	})

	t.Run("known user gets everything", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodGet, "/v1/announcements/all?username=teacher@example.com", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var items []annhttp.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
		assert.Len(t, items, 1)
	})
}

func TestCreate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := newMemoryRepository()
		engine := newTestRouter(repo)

		rec := doJSON(t, engine, http.MethodPost, "/v1/announcements",
			`{"message":"Exam week","start_date":"2025-06-20","expiration_date":"2025-06-27","created_by":"teacher@example.com"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var created annhttp.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Exam week", created.Message)
		require.NotNil(t, created.StartDate)
		assert.Equal(t, "2025-06-20", *created.StartDate)
		assert.Equal(t, "2025-06-27", created.ExpirationDate)
	})

	t.Run("missing required fields", func(t *testing.T) {
		engine := newTestRouter(newMemoryRepository())

		rec := doJSON(t, engine, http.MethodPost, "/v1/announcements", `{"message":"no expiration"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid request body", errorMessage(t, rec))
	})

	t.Run("bad date", func(t *testing.T) {
		engine := newTestRouter(newMemoryRepository())

		rec := doJSON(t, engine, http.MethodPost, "/v1/announcements",
			`{"message":"m","expiration_date":"tomorrow","created_by":"teacher@example.com"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid date format", errorMessage(t, rec))
	})

	t.Run("inverted window", func(t *testing.T) {
		engine := newTestRouter(newMemoryRepository())

		rec := doJSON(t, engine, http.MethodPost, "/v1/announcements",
			`{"message":"m","start_date":"2025-07-01","expiration_date":"2025-06-01","created_by":"teacher@example.com"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "start date must be before expiration date", errorMessage(t, rec))
	})

	t.Run("unknown creator", func(t *testing.T) {
		engine := newTestRouter(newMemoryRepository())

		rec := doJSON(t, engine, http.MethodPost, "/v1/announcements",
			`{"message":"m","expiration_date":"2025-07-01","created_by":"stranger@example.com"}`)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		repo := newMemoryRepository()
		id := seed(repo, "before", nil, "2025-07-01")
		engine := newTestRouter(repo)

		rec := doJSON(t, engine, http.MethodPatch,
			"/v1/announcements/"+id+"?username=teacher@example.com",
			`{"message":"after"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var updated annhttp.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, "after", updated.Message)
		assert.Equal(t, "2025-07-01", updated.ExpirationDate)
	})

	t.Run("unknown id", func(t *testing.T) {
		engine := newTestRouter(newMemoryRepository())

		rec := doJSON(t, engine, http.MethodPatch,
			"/v1/announcements/"+uuid.NewString()+"?username=teacher@example.com",
			`{"message":"after"}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "announcement not found", errorMessage(t, rec))
	})

	t.Run("malformed id", func(t *testing.T) {
		engine := newTestRouter(newMemoryRepository())

		rec := doJSON(t, engine, http.MethodPatch,
			"/v1/announcements/abc?username=teacher@example.com",
			`{"message":"after"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid announcement ID", errorMessage(t, rec))
	})

	t.Run("requires username", func(t *testing.T) {
		repo := newMemoryRepository()
		id := seed(repo, "before", nil, "2025-07-01")
		engine := newTestRouter(repo)

		rec := doJSON(t, engine, http.MethodPatch, "/v1/announcements/"+id, `{"message":"after"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "username is required", errorMessage(t, rec))
	})
}

func TestDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := newMemoryRepository()
		id := seed(repo, "doomed", nil, "2025-07-01")
		engine := newTestRouter(repo)

		rec := doJSON(t, engine, http.MethodDelete,
			"/v1/announcements/"+id+"?username=teacher@example.com", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"announcement deleted successfully"}`, rec.Body.String())
		assert.Empty(t, repo.items)
	})

	t.Run("unknown id", func(t *testing.T) {
		engine := newTestRouter(newMemoryRepository())

		rec := doJSON(t, engine, http.MethodDelete,
			"/v1/announcements/"+uuid.NewString()+"?username=teacher@example.com", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := newMemoryRepository()
		id := seed(repo, "kept", nil, "2025-07-01")
		engine := newTestRouter(repo)

		rec := doJSON(t, engine, http.MethodDelete,
			"/v1/announcements/"+id+"?username=stranger@example.com", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, repo.items, id)
	})
}
