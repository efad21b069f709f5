package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/timkene/EKO-FITNESS/app/shared/domainerr"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// RespondError writes err as a structured JSON error body. Domain errors keep
// their kind and map to the kind's status; anything else is a 500.
func RespondError(w http.ResponseWriter, err error) {
	var de *domainerr.Error
	if errors.As(err, &de) {
		RespondJSON(w, domainerr.HTTPStatus(de.Kind), errorBody{
			Error: errorDetail{Kind: string(de.Kind), Message: de.Message},
		})
		return
	}
	RespondJSON(w, http.StatusInternalServerError, errorBody{
		Error: errorDetail{Kind: "Internal", Message: "internal server error"},
	})
}

// RespondBadRequest writes a 400 with the given message.
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusBadRequest, errorBody{
		Error: errorDetail{Kind: "BadRequest", Message: message},
	})
}
