package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/poliexam/paperforge/internal/registry"
)

// resourceHooks customize the generic CRUD handlers per resource.
type resourceHooks[T any] struct {
	// beforeSave normalizes a decoded record before it is stored; a non-nil
	// error rejects the save with a 400.
	beforeSave func(*T) error
	// afterWrite runs after a successful save or delete.
	afterWrite func(r *http.Request)
	// list overrides the plain store listing, e.g. to serve from cache.
	list func(r *http.Request) ([]T, error)
}

// mountResource registers list/get/save/delete routes for one registry
// resource under /api/{name}.
func mountResource[T any](mux *http.ServeMux, name string, store registry.Store[T], hooks resourceHooks[T]) {
	mux.HandleFunc("GET /api/"+name, func(w http.ResponseWriter, r *http.Request) {
		var items []T
		var err error
		if hooks.list != nil {
			items, err = hooks.list(r)
		} else {
			items, err = store.List(r.Context())
		}
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if items == nil {
			items = []T{}
		}
		writeJSON(w, http.StatusOK, items)
	})

	mux.HandleFunc("POST /api/"+name, func(w http.ResponseWriter, r *http.Request) {
		var item T
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
			return
		}
		if hooks.beforeSave != nil {
			if err := hooks.beforeSave(&item); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		saved, err := store.Save(r.Context(), item)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if hooks.afterWrite != nil {
			hooks.afterWrite(r)
		}
		writeJSON(w, http.StatusOK, saved)
	})

	mux.HandleFunc("GET /api/"+name+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		item, err := store.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	})

	mux.HandleFunc("DELETE /api/"+name+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(r.Context(), r.PathValue("id")); err != nil {
			writeStoreError(w, err)
			return
		}
		if hooks.afterWrite != nil {
			hooks.afterWrite(r)
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
