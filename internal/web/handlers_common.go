package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// maxJSONBody caps request bodies other than CSV imports. Saved projects are
// the largest documents accepted here.
const maxJSONBody = 8 << 20

// projectID returns the {id} route parameter.
func projectID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// dayParam returns the {day} route parameter, percent-decoded when the
// router left it escaped.
func dayParam(r *http.Request) string {
	raw := chi.URLParam(r, "day")
	if day, err := url.PathUnescape(raw); err == nil {
		return day
	}
	return raw
}

// intParam parses a required integer route parameter.
func intParam(r *http.Request, name string) (int, error) {
	v := chi.URLParam(r, name)
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, badRequest{msg: fmt.Sprintf("%s must be an integer: %q", name, v)}
	}
	return n, nil
}

// decodeJSON decodes the request body into v. An empty body leaves v as is
// when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return badRequest{msg: "invalid request body: " + err.Error()}
	}
	return nil
}
