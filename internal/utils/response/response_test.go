package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aanand-mishra/patients-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rr, http.StatusCreated, Msg("patient created successfully")))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"patient created successfully"}`, rr.Body.String())
}

func TestGeneralErrorOmitsFields(t *testing.T) {
	rr := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rr, http.StatusNotFound, GeneralError(errors.New("Patient not found"))))

	assert.JSONEq(t, `{"status":"error","error":"Patient not found"}`, rr.Body.String())
}

func TestValidationError(t *testing.T) {
	errs := types.ValidationErrors{
		{Field: "age", Message: "field age must be greater than 0 and less than 120"},
		{Field: "gender", Message: "field gender must be one of: male, female"},
	}
	resp := ValidationError(errs)

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "field age must be greater than 0 and less than 120, field gender must be one of: male, female", resp.Error)
	assert.Len(t, resp.Fields, 2)
}

func TestTypeError(t *testing.T) {
	resp := TypeError("age", "int")

	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "age", resp.Fields[0].Field)
	assert.Equal(t, "field age must be a valid int", resp.Error)
}
