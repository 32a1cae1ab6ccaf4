// Package patient contains all HTTP handlers related to the Patient resource.
//
// Every handler is built by a factory that receives its dependencies and
// returns the http.HandlerFunc the router registers:
//
//	router.HandleFunc("POST /create", patient.New(guard))
//
// All record access goes through *storage.Guard, which loads the complete
// mapping for each request and, for mutations, saves it back.
package patient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aanand-mishra/patients-api/internal/storage"
	"github.com/aanand-mishra/patients-api/internal/types"
	"github.com/aanand-mishra/patients-api/internal/utils/response"
)

// Messages returned to clients.
const (
	msgHome      = "Patient Management System API"
	msgAbout     = "A fully functional API to manage your patient records"
	msgCreated   = "patient created successfully"
	msgUpdated   = "patient updated successfully"
	msgDeleted   = "Successfully deleted patient"
	msgNotFound  = "Patient not found"
	msgInvalidID = "Invalid Patient ID"
	msgEmptyBody = "request body is empty"
	msgTrailing  = "request body must contain a single JSON value"
	msgStorage   = "storage unavailable"
)

// Home handles GET /
func Home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, response.Msg(msgHome))
	}
}

// About handles GET /about
func About() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, response.Msg(msgAbout))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// View handles GET /view
// Returns the full mapping, keyed by patient id, in stored order:
//
//	{ "P001": { "name": "Nitish", ..., "bmi": 26.12, "final_verdict": "Normal" } }
//
// ─────────────────────────────────────────────────────────────────────────────
func View(guard *storage.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("viewing all patients")

		var records *types.Records
		err := guard.View(r.Context(), func(rs *types.Records) error {
			records = rs
			return nil
		})
		if err != nil {
			writeError(w, err, msgNotFound)
			return
		}

		response.WriteJSON(w, http.StatusOK, records)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /patient/{id}
// Returns the stored record (without the id) or 404.
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(guard *storage.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a patient", slog.String("id", id))

		var record types.Record
		err := guard.View(r.Context(), func(rs *types.Records) error {
			var ok bool
			if record, ok = rs.Get(id); !ok {
				return types.ErrPatientNotFound
			}
			return nil
		})
		if err != nil {
			writeError(w, err, msgNotFound)
			return
		}

		response.WriteJSON(w, http.StatusOK, record)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Sort handles GET /sort?sort_by={height|weight|bmi}&order_by={asc|desc}
// Returns every record as a JSON array ordered by the requested field.
// Both query values are checked before storage is touched.
// ─────────────────────────────────────────────────────────────────────────────
func Sort(guard *storage.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		field, err := types.ParseSortField(q.Get("sort_by"))
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		order, err := types.ParseSortOrder(q.Get("order_by"))
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		slog.Info("sorting patients",
			slog.String("sort_by", string(field)),
			slog.String("order_by", string(order)))

		var sorted []types.Record
		err = guard.View(r.Context(), func(rs *types.Records) error {
			sorted = types.SortRecords(rs.Values(), field, order)
			return nil
		})
		if err != nil {
			writeError(w, err, msgNotFound)
			return
		}

		response.WriteJSON(w, http.StatusOK, sorted)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /create
//
// Request body (JSON):
//
//	{ "id": "P001", "name": "Nitish", "city": "delhi", "age": 30,
//	  "gender": "male", "height": 1.75, "weight": 80 }
//
// Responses:
//
//	201 Created     : { "message": "patient created successfully" }
//	400 Bad Request : empty/malformed body, or the id already exists
//	422 Unprocessable: one or more fields failed validation
//	500 Internal    : storage unavailable
//
// ─────────────────────────────────────────────────────────────────────────────
func New(guard *storage.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a patient")

		var p types.Patient
		if !decodeBody(w, r, &p) {
			return
		}

		if err := p.Validate(); err != nil {
			writeError(w, err, msgInvalidID)
			return
		}

		err := guard.Update(r.Context(), func(rs *types.Records) error {
			if rs.Has(p.ID) {
				return types.ErrPatientExists
			}
			rs.Set(p.ID, p.Record())
			return nil
		})
		if err != nil {
			writeError(w, err, msgInvalidID)
			return
		}

		slog.Info("patient created", slog.String("id", p.ID))
		response.WriteJSON(w, http.StatusCreated, response.Msg(msgCreated))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /edit/{id}
//
// The body carries any subset of name, city, age, gender, height and
// weight. Provided fields overwrite the stored ones, the merged patient is
// validated as a whole, and BMI and verdict are recomputed.
//
// Responses:
//
//	201 Created     : { "message": "patient updated successfully" }
//	404 Not Found   : no patient with that id
//	422 Unprocessable: a provided field, or the merged record, is invalid
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(guard *storage.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		var u types.PatientUpdate
		if !decodeBody(w, r, &u) {
			return
		}

		slog.Info("updating a patient",
			slog.String("id", id),
			slog.String("fields", strings.Join(u.Fields(), ",")))

		if err := u.Validate(); err != nil {
			writeError(w, err, msgInvalidID)
			return
		}

		err := guard.Update(r.Context(), func(rs *types.Records) error {
			existing, ok := rs.Get(id)
			if !ok {
				return types.ErrPatientNotFound
			}

			merged := u.Apply(existing.Patient(id))
			if err := merged.Validate(); err != nil {
				return err
			}

			rs.Set(id, merged.Record())
			return nil
		})
		if err != nil {
			writeError(w, err, msgInvalidID)
			return
		}

		slog.Info("patient updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusCreated, response.Msg(msgUpdated))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /delete/{id}
// ─────────────────────────────────────────────────────────────────────────────
func Delete(guard *storage.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a patient", slog.String("id", id))

		err := guard.Update(r.Context(), func(rs *types.Records) error {
			if !rs.Delete(id) {
				return types.ErrPatientNotFound
			}
			return nil
		})
		if err != nil {
			writeError(w, err, msgInvalidID)
			return
		}

		slog.Info("patient deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, response.Msg(msgDeleted))
	}
}

// decodeBody decodes the request body into v. On failure it writes the
// error response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(v)
	if err == nil {
		var extra json.RawMessage
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New(msgTrailing)))
			return false
		}
		return true
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New(msgEmptyBody)))
	case errors.As(err, &typeErr) && typeErr.Field != "":
		response.WriteJSON(w, http.StatusUnprocessableEntity,
			response.TypeError(typeErr.Field, typeName(typeErr)))
	default:
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
	}
	return false
}

func typeName(err *json.UnmarshalTypeError) string {
	if err.Type == nil {
		return "value"
	}
	return err.Type.String()
}

// writeError maps an operation error onto its HTTP status. notFound is the
// message sent for types.ErrPatientNotFound.
func writeError(w http.ResponseWriter, err error, notFound string) {
	var verrs types.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		response.WriteJSON(w, http.StatusUnprocessableEntity, response.ValidationError(verrs))
	case errors.Is(err, types.ErrPatientNotFound):
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(errors.New(notFound)))
	case errors.Is(err, types.ErrPatientExists):
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		slog.Warn("request abandoned", slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusServiceUnavailable, response.GeneralError(err))
	default:
		slog.Error("storage failure", slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errors.New(msgStorage)))
	}
}
