package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	var validationErrs validator.ValidationErrors
	{
		v := validator.New()
		err := v.Struct(struct {
			Name string `validate:"required"`
		}{})
		errors.As(err, &validationErrs)
	}

	testCases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"validator errors", validationErrs, http.StatusBadRequest, MsgValidationFailed},
		{"schema validation", Validation("op is required"), http.StatusBadRequest, MsgValidationFailed},
		{"bad argument", BadArgument("id mismatch"), http.StatusBadRequest, "Bad Request. id mismatch"},
		{"invalid operation", InvalidOperation("test failed"), http.StatusBadRequest, "Bad Request. test failed"},
		{"json syntax", &json.SyntaxError{Offset: 1}, http.StatusBadRequest, "Bad Request. "},
		{"unauthorized", fmt.Errorf("token: %w", ErrUnauthorized), http.StatusUnauthorized, MsgUnauthorized},
		{"unique violation", Store(&pgconn.PgError{Code: "23505", Message: "duplicate key"}), http.StatusConflict, MsgDuplicateKey},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, http.StatusConflict, MsgForeignKey},
		{"other pg error", &pgconn.PgError{Code: "42P01", Message: `relation "x" does not exist`}, http.StatusInternalServerError, `Database error: relation "x" does not exist`},
		{"store error", Store(errors.New("conn refused")), http.StatusInternalServerError, "Database error: conn refused"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, MsgInternalError},
		{"nil", nil, http.StatusInternalServerError, MsgInternalError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := Classify(tc.err)
			assert.Equal(t, tc.code, resp.ResponseCode)
			if tc.name == "json syntax" {
				assert.Contains(t, resp.ResponseMessage, tc.message)
				return
			}
			assert.Equal(t, tc.message, resp.ResponseMessage)
		})
	}
}

func TestClassify_ValidationWinsOverArgument(t *testing.T) {
	err := errors.Join(BadArgument("x"), Validation("y"))
	assert.Equal(t, MsgValidationFailed, Classify(err).ResponseMessage)
}
