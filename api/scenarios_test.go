package api

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/Domenick1991/flightdesk/internal/apperr"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/repository"
	"github.com/Domenick1991/flightdesk/internal/service/resource"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run the full stack below the router against a mocked pool.

func newPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func storeBacked[T any](pool pgxmock.PgxPoolIface, desc repository.Descriptor[T], path string) *ResourceHandler[T] {
	svc := resource.NewService(repository.NewRepository(pool, desc), desc, 50)
	return NewResourceHandler[T](desc.Name, path, svc, 10)
}

func TestScenario_EmptyListIsNoContent(t *testing.T) {
	pool := newPool(t)
	router := newTestRouter(nil, storeBacked(pool, repository.Airlines(), "Airlines"))

	pool.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM airlines`)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	pool.ExpectQuery(regexp.QuoteMeta(`SELECT id, name FROM airlines ORDER BY name, id LIMIT $1 OFFSET $2`)).
		WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}))

	w := do(t, router, http.MethodGet, "/api/v1/Airlines?page=1&pageSize=10", "", bearer(t))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestScenario_ReferencedAirlineIsNotDeleted(t *testing.T) {
	pool := newPool(t)
	router := newTestRouter(nil, storeBacked(pool, repository.Airlines(), "Airlines"))

	pool.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.Serializable})
	pool.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM airlines WHERE id = $1)`)).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	pool.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM flights WHERE airline_id = $1)`)).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	pool.ExpectRollback()

	w := do(t, router, http.MethodDelete, "/api/v1/Airlines/5", "", bearer(t, domain.RoleAdmin))

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, errorBody(t, w).ResponseMessage, "Airline")
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestScenario_ReplaceIDMismatchSkipsStore(t *testing.T) {
	pool := newPool(t)
	router := newTestRouter(nil, storeBacked(pool, repository.Passengers(), "Passengers"))

	body := `{"id":9,"firstName":"Ana","lastName":"Kovač","uniquePersonalId":"0101990335001","passportNumber":"P123"}`
	w := do(t, router, http.MethodPut, "/api/v1/Passengers/7", body, bearer(t, domain.RoleAdmin))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorBody(t, w).ResponseMessage, apperr.MsgBadRequest)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestScenario_PatchFlightDepartureDate(t *testing.T) {
	pool := newPool(t)
	router := newTestRouter(nil, storeBacked(pool, repository.Flights(), "Flights"))

	pool.ExpectQuery(regexp.QuoteMeta(`SELECT id, departure_date, departure_time, airline_id, destination_id, pilot_id FROM flights WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "departure_date", "departure_time", "airline_id", "destination_id", "pilot_id"}).
			AddRow(int64(3), domain.NewDate(2022, 11, 20), "08:15", int64(1), int64(2), int64(4)))
	pool.ExpectExec(regexp.QuoteMeta(`UPDATE flights SET departure_date = $1, departure_time = $2, airline_id = $3, destination_id = $4, pilot_id = $5 WHERE id = $6`)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	body := `[{"op":"replace","path":"/DepartureDate","value":"2022-12-01"}]`
	w := do(t, router, http.MethodPatch, "/api/v1/Flights/3", body, bearer(t, domain.RoleAdmin))

	require.Equal(t, http.StatusOK, w.Code)
	var flight domain.Flight
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &flight))
	assert.Equal(t, "2022-12-01", flight.DepartureDate.String())
	assert.Equal(t, "08:15", flight.DepartureTime)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestScenario_DuplicateKeyOnCreate(t *testing.T) {
	pool := newPool(t)
	router := newTestRouter(nil, storeBacked(pool, repository.Airlines(), "Airlines"))

	pool.ExpectQuery(regexp.QuoteMeta(`INSERT INTO airlines (name) VALUES ($1) RETURNING id`)).
		WithArgs(pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: `duplicate key value violates unique constraint "airlines_name_key"`})

	w := do(t, router, http.MethodPost, "/api/v1/Airlines", `{"name":"KLM"}`, bearer(t, domain.RoleAdmin))

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperr.Response{ResponseCode: http.StatusConflict, ResponseMessage: "Conflict: Duplicate key violation."}, errorBody(t, w))
}
