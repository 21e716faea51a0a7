package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/piwi3910/FilmCut/internal/model"
	"github.com/piwi3910/FilmCut/internal/parser"
)

type errorResponse struct {
	Error       string             `json:"error"`
	Field       string             `json:"field,omitempty"`
	Unplaceable []string           `json:"unplaceable,omitempty"`
	Lines       []parser.LineError `json:"lines,omitempty"`
}

// errBadRequest marks request bodies that are not valid JSON at all.
var errBadRequest = errors.New("malformed JSON")

// errTooLarge marks request bodies over the configured size limit.
var errTooLarge = errors.New("request body too large")

// errUnprocessable wraps input that decodes but cannot be used.
type errUnprocessable struct {
	msg   string
	lines []parser.LineError
}

func (e *errUnprocessable) Error() string { return e.msg }

func decode(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var (
			syntax *json.SyntaxError
			tooBig *http.MaxBytesError
		)
		switch {
		case errors.As(err, &tooBig):
			return errTooLarge
		case errors.As(err, &syntax), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return errBadRequest
		default:
			return &errUnprocessable{msg: "invalid data: " + err.Error()}
		}
	}
	return nil
}

// statusFor maps an error to its HTTP status and response body.
func statusFor(err error) (int, errorResponse) {
	resp := errorResponse{Error: err.Error()}

	var (
		unprocessable *errUnprocessable
		invalidPiece  *model.InvalidPieceSpecError
		invalidOpts   *model.InvalidOptionsError
		unplaceable   *model.UnplaceablePieceError
		pinConflict   *model.PinConflictError
	)
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, resp
	case errors.Is(err, errTooLarge):
		return http.StatusRequestEntityTooLarge, resp
	case errors.As(err, &unprocessable):
		resp.Lines = unprocessable.lines
		return http.StatusUnprocessableEntity, resp
	case errors.As(err, &invalidPiece):
		return http.StatusUnprocessableEntity, resp
	case errors.As(err, &invalidOpts):
		resp.Field = invalidOpts.Field
		return http.StatusUnprocessableEntity, resp
	case errors.As(err, &unplaceable):
		resp.Unplaceable = unplaceable.InstanceIDs()
		return http.StatusUnprocessableEntity, resp
	case errors.As(err, &pinConflict):
		return http.StatusConflict, resp
	default:
		return http.StatusInternalServerError, resp
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
