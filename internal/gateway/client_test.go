package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/flightdesk/internal/apperr"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/patch"
	"github.com/Domenick1991/flightdesk/internal/session"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context, id string) (*session.Session, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockStore) Commit(ctx context.Context, s *session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStore) Renew(ctx context.Context, s *session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *MockStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := &MockStore{}
	return NewClient(srv.URL, 5*time.Second, store, zap.NewNop()), store
}

func signedIn(token string) context.Context {
	return session.NewContext(context.Background(), &session.Session{ID: "s1", Token: token})
}

func TestResourcePaths(t *testing.T) {
	want := map[Resource]string{
		Airline:     "Airlines",
		Destination: "Destinations",
		Flight:      "Flights",
		Passenger:   "Passengers",
		Pilot:       "Pilots",
		PlaneTicket: "PlaneTickets",
		TravelClass: "TravelClasses",
		User:        "Users",
	}
	for r, p := range want {
		got, err := r.Path()
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := Resource("Booking").Path()
	assert.ErrorIs(t, err, ErrUnknownResource)
}

func TestParseResource(t *testing.T) {
	for _, name := range []string{"airline", "Airlines", "AIRLINES"} {
		r, err := ParseResource(name)
		require.NoError(t, err)
		assert.Equal(t, Airline, r)
	}
	_, err := ParseResource("bookings")
	assert.ErrorIs(t, err, ErrUnknownResource)
}

func TestList_NoContentBecomesEmptyPage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/Airlines", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("pageSize"))
		w.WriteHeader(http.StatusNoContent)
	})

	page, err := List[domain.Airline](signedIn("t"), client, Airline, 1, 10, nil)
	require.NoError(t, err)

	want := &domain.Page[domain.Airline]{Data: []domain.Airline{}, PageNumber: 1, PageSize: 10}
	if diff := cmp.Diff(want, page); diff != "" {
		t.Errorf("empty page mismatch (-want +got):\n%s", diff)
	}
	encoded, err := json.Marshal(page)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"data":[]`)
}

func TestList_DecodesEnvelopeAndSendsToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "Zagreb", r.URL.Query().Get("name"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":[{"id":2,"city":"Zagreb","airport":"ZAG"}],"pageNumber":1,"pageSize":5,"totalCount":1,"lastPage":1}`)
	})

	page, err := List[domain.Destination](signedIn("tok"), client, Destination, 1, 5, map[string]string{"name": "Zagreb"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Destination{{ID: 2, City: "Zagreb", Airport: "ZAG"}}, page.Data)
	assert.Equal(t, 1, page.TotalCount)
}

func TestList_UnexpectedStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	page, err := List[domain.Airline](signedIn("t"), client, Airline, 0, 10, nil)
	assert.Nil(t, page)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.Status)
}

func TestGetAndCreate(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/Pilots/4":
			_, _ = io.WriteString(w, `{"id":4,"firstName":"Ivo","lastName":"Horvat","uniquePersonalId":"1","flyingHours":10}`)
		case r.Method == http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/Pilots":
			var p domain.Pilot
			_ = json.NewDecoder(r.Body).Decode(&p)
			p.ID = 11
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(p)
		}
	})
	ctx := signedIn("t")

	pilot, err := Get[domain.Pilot](ctx, client, Pilot, 4)
	require.NoError(t, err)
	assert.Equal(t, "Horvat", pilot.LastName)

	_, err = Get[domain.Pilot](ctx, client, Pilot, 5)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	created, err := Create(ctx, client, Pilot, &domain.Pilot{FirstName: "Ana", LastName: "Kos", UniquePersonalID: "2"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)
}

func TestMutations(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/Airlines/1":
			w.WriteHeader(http.StatusNoContent)
		case "/api/v1/Airlines/5":
			w.WriteHeader(http.StatusConflict)
		case "/api/v1/Flights/3":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"id":3}`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})
	ctx := signedIn("t")

	ok, err := client.Delete(ctx, Airline, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.Delete(ctx, Airline, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = client.Update(ctx, Airline, 5, domain.Airline{ID: 5, Name: "X"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = client.Patch(ctx, Flight, 3, patch.Document{{Op: patch.Remove, Path: "/pilotId"}})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = client.Delete(ctx, Airline, 9)
	var statusErr *StatusError
	assert.ErrorAs(t, err, &statusErr)
}

func TestSignInAndOut(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `"issued-token"`)
	})

	s := &session.Session{ID: "s1"}
	ctx := session.NewContext(context.Background(), s)

	store.On("Renew", ctx, s).Run(func(args mock.Arguments) {
		args.Get(1).(*session.Session).ID = "s2"
	}).Return(nil).Once()
	store.On("Commit", ctx, s).Return(nil).Twice()

	require.NoError(t, client.SignIn(ctx, "admin", "secret"))
	assert.Equal(t, "s2", s.ID)
	assert.Equal(t, "issued-token", s.Token)
	assert.Equal(t, "admin", s.UserName)
	assert.Equal(t, "issued-token", session.TokenFrom(ctx))

	require.NoError(t, client.SignOut(ctx))
	assert.False(t, s.SignedIn())
	store.AssertExpectations(t)

	err := client.SignIn(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestSignIn_NeedsSession(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	err := client.SignIn(context.Background(), "admin", "secret")
	assert.ErrorIs(t, err, session.ErrNoSession)
}
