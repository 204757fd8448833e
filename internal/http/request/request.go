// Package request parses path and query parameters shared by the handlers.
package request

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spycats/internal/agency"
)

// ID parses the named chi URL parameter as a UUID. Unparseable ids cannot
// exist, so they are reported as not found.
func ID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s %q: %w", name, raw, agency.ErrNotFound)
	}

	return id, nil
}

// Page reads skip and limit from the query string.
func Page(r *http.Request) (agency.Page, error) {
	page := agency.Page{Limit: agency.DefaultPageLimit}
	q := r.URL.Query()

	if s := q.Get("skip"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return page, fmt.Errorf("%w: skip must be a non-negative integer", agency.ErrValidation)
		}

		page.Offset = n
	}

	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > agency.MaxPageLimit {
			return page, fmt.Errorf("%w: limit must be between 1 and %d", agency.ErrValidation, agency.MaxPageLimit)
		}

		page.Limit = n
	}

	return page, nil
}
