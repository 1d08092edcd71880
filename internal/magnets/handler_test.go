package magnets_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shellac-studio/shellac/internal/magnets"
	"github.com/shellac-studio/shellac/pkg/pagination"
)

type mockSystem struct {
	listFn   func(ctx context.Context, page pagination.PageRequest, filters magnets.Filters) (*pagination.PageResult[magnets.SessionEvent], error)
	findFn   func(ctx context.Context, id uuid.UUID) (*magnets.SessionEvent, error)
	anchorFn func(ctx context.Context, cmd magnets.CreateCommand) (*magnets.SessionEvent, error)
}

func (m *mockSystem) Handler() *magnets.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters magnets.Filters) (*pagination.PageResult[magnets.SessionEvent], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*magnets.SessionEvent, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Anchor(ctx context.Context, cmd magnets.CreateCommand) (*magnets.SessionEvent, error) {
	return m.anchorFn(ctx, cmd)
}

func newTestHandler(sys *mockSystem) *magnets.Handler {
	return magnets.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
}

func setupMux(h *magnets.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+group.Prefix+route.Pattern, route.Handler)
	}
	return mux
}

func sampleEvent() magnets.SessionEvent {
	date, _ := magnets.ParseDate("1962-03-15")
	return magnets.SessionEvent{
		ID:               uuid.MustParse("650e8400-e29b-41d4-a716-446655440001"),
		Title:            "Del-Tones Session",
		Date:             date,
		Client:           "Atlantic",
		SourceArtifactID: uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		CreatedAt:        time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func postCreate(t *testing.T, mux *http.ServeMux, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/magnets/create", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandlerCreate(t *testing.T) {
	se := sampleEvent()

	t.Run("anchors asset into session event", func(t *testing.T) {
		var captured magnets.CreateCommand
		sys := &mockSystem{
			anchorFn: func(_ context.Context, cmd magnets.CreateCommand) (*magnets.SessionEvent, error) {
				captured = cmd
				return &se, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := postCreate(t, mux, magnets.CreateRequest{
			AssetID: se.SourceArtifactID.String(),
			Title:   "Del-Tones Session",
			Date:    "1962-03-15",
			Client:  "Atlantic",
		})

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}

		var got magnets.SessionEvent
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.ID != se.ID {
			t.Errorf("id = %v, want %v", got.ID, se.ID)
		}
		if got.Date.String() != "1962-03-15" {
			t.Errorf("date = %s, want 1962-03-15", got.Date)
		}

		if captured.AssetID != se.SourceArtifactID {
			t.Errorf("asset id = %v, want %v", captured.AssetID, se.SourceArtifactID)
		}
		if captured.Title != "Del-Tones Session" {
			t.Errorf("title = %q", captured.Title)
		}
	})

	t.Run("validation failures return 400", func(t *testing.T) {
		sys := &mockSystem{
			anchorFn: func(_ context.Context, cmd magnets.CreateCommand) (*magnets.SessionEvent, error) {
				if err := cmd.Validate(); err != nil {
					return nil, err
				}
				return &se, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		tests := []struct {
			name string
			req  magnets.CreateRequest
		}{
			{"missing asset id", magnets.CreateRequest{Title: "x", Date: "1962-03-15"}},
			{"malformed asset id", magnets.CreateRequest{AssetID: "nope", Title: "x", Date: "1962-03-15"}},
			{"missing title", magnets.CreateRequest{AssetID: uuid.New().String(), Date: "1962-03-15"}},
			{"missing date", magnets.CreateRequest{AssetID: uuid.New().String(), Title: "x"}},
			{"malformed date", magnets.CreateRequest{AssetID: uuid.New().String(), Title: "x", Date: "03/15/1962"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := postCreate(t, mux, tt.req)
				if rec.Code != http.StatusBadRequest {
					t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
				}

				var body map[string]string
				if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if body["error"] == "" {
					t.Error("expected error message in body")
				}
			})
		}
	})

	t.Run("anchor conflict returns 409", func(t *testing.T) {
		for _, conflictErr := range []error{magnets.ErrAlreadyAnchored, magnets.ErrInvalidState} {
			sys := &mockSystem{
				anchorFn: func(_ context.Context, _ magnets.CreateCommand) (*magnets.SessionEvent, error) {
					return nil, conflictErr
				},
			}
			mux := setupMux(newTestHandler(sys))

			rec := postCreate(t, mux, magnets.CreateRequest{
				AssetID: uuid.New().String(),
				Title:   "Del-Tones Session",
				Date:    "1962-03-15",
			})

			if rec.Code != http.StatusConflict {
				t.Errorf("%v: status = %d, want 409", conflictErr, rec.Code)
			}
		}
	})

	t.Run("missing asset returns 404", func(t *testing.T) {
		sys := &mockSystem{
			anchorFn: func(_ context.Context, _ magnets.CreateCommand) (*magnets.SessionEvent, error) {
				return nil, magnets.ErrAssetNotFound
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := postCreate(t, mux, magnets.CreateRequest{
			AssetID: uuid.New().String(),
			Title:   "Del-Tones Session",
			Date:    "1962-03-15",
		})

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerList(t *testing.T) {
	se := sampleEvent()

	t.Run("returns paginated list", func(t *testing.T) {
		sys := &mockSystem{
			listFn: func(_ context.Context, _ pagination.PageRequest, _ magnets.Filters) (*pagination.PageResult[magnets.SessionEvent], error) {
				result := pagination.NewPageResult([]magnets.SessionEvent{se}, 1, 1, 20)
				return &result, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/magnets", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var result pagination.PageResult[magnets.SessionEvent]
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if result.Total != 1 || len(result.Data) != 1 {
			t.Fatalf("result = %+v, want one event", result)
		}
		if result.Data[0].ID != se.ID {
			t.Errorf("id = %v, want %v", result.Data[0].ID, se.ID)
		}
	})

	t.Run("passes client filter", func(t *testing.T) {
		var captured magnets.Filters
		sys := &mockSystem{
			listFn: func(_ context.Context, _ pagination.PageRequest, f magnets.Filters) (*pagination.PageResult[magnets.SessionEvent], error) {
				captured = f
				result := pagination.NewPageResult([]magnets.SessionEvent{}, 0, 1, 20)
				return &result, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/magnets?client=Atlantic", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if captured.Client == nil || *captured.Client != "Atlantic" {
			t.Errorf("client filter = %v, want Atlantic", captured.Client)
		}
	})
}

func TestHandlerFind(t *testing.T) {
	se := sampleEvent()

	t.Run("returns session event by id", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(_ context.Context, id uuid.UUID) (*magnets.SessionEvent, error) {
				if id != se.ID {
					return nil, magnets.ErrNotFound
				}
				return &se, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/magnets/"+se.ID.String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("invalid uuid returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/magnets/not-a-uuid", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("not found returns 404", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(_ context.Context, _ uuid.UUID) (*magnets.SessionEvent, error) {
				return nil, magnets.ErrNotFound
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/magnets/"+uuid.New().String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}
