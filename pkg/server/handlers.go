package server

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/robert-malhotra/stac-go/pkg/search"
	"github.com/robert-malhotra/stac-go/pkg/stac"
)

// conformanceClasses are the OGC conformance URIs this boundary claims,
// matching the classes spec.md §6 says a SearchClient recognizes (core,
// ogcapi-features, item-search, and the GeoJSON response class). The list is
// static: the filter classes are included whatever ItemSource the Handlers
// serves.
var conformanceClasses = []string{
	"https://api.stacspec.org/v1.0.0/core",
	"https://api.stacspec.org/v1.0.0/ogcapi-features",
	"https://api.stacspec.org/v1.0.0/item-search",
	"https://api.stacspec.org/v1.0.0/item-search#filter",
	"https://api.stacspec.org/v1.0.0/ogcapi-features#filter",
	"http://www.opengis.net/spec/ogcapi-features-3/1.0/conf/filter",
	"http://www.opengis.net/spec/cql2/1.0/conf/cql2-text",
	"http://www.opengis.net/spec/cql2/1.0/conf/cql2-json",
	"https://geojson.org",
}

// Handlers implements the HTTP STAC API surface spec.md §6 says a
// SearchClient consumes: a Catalog-shaped landing page, /conformance, and
// GET|POST /search. Full collection/item browsing endpoints are left to
// the host application, since spec.md §1 scopes the complete API server
// out of the core.
type Handlers struct {
	baseURL string
	title   string
	source  ItemSource
	logger  *slog.Logger
}

// LandingPage serves GET /: a Catalog-shaped document carrying conformsTo
// and a search link, per spec.md §6.
func (h *Handlers) LandingPage(w http.ResponseWriter, r *http.Request) {
	catalog := stac.NewCatalog("stac-go", h.title)
	catalog.Title = h.title
	if _, err := catalog.SetField("conformsTo", conformanceClasses); err != nil {
		WriteInternalError(w, "building landing page")
		return
	}
	catalog.SetLinks([]*stac.Link{
		stac.NewLink(h.baseURL+"/", stac.RelSelf),
		stac.NewLink(h.baseURL+"/conformance", "conformance"),
		withMethod(stac.NewLink(h.baseURL+"/search", "search"), http.MethodGet),
		withMethod(stac.NewLink(h.baseURL+"/search", "search"), http.MethodPost),
	})
	WriteJSON(w, http.StatusOK, catalog)
}

func withMethod(link *stac.Link, method string) *stac.Link {
	link.Method = method
	return link
}

// Conformance serves GET /conformance.
func (h *Handlers) Conformance(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"conformsTo": conformanceClasses})
}

// Health serves GET /health for readiness probes.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Search serves GET|POST /search, parsing the request per spec.md §4.6's
// GET<->POST parameter conversion, running it through the configured
// ItemSource, and returning an ItemCollection.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	var params *search.Params
	var err error

	switch r.Method {
	case http.MethodGet:
		params, err = search.FromQuery(r.URL.Query())
	case http.MethodPost:
		var body []byte
		body, err = io.ReadAll(r.Body)
		if err == nil {
			params, err = search.FromJSON(body)
		}
	default:
		WriteError(w, http.StatusMethodNotAllowed, ErrCodeBadRequest, "method not allowed")
		return
	}
	if err != nil {
		WriteInvalidParameter(w, err.Error())
		return
	}

	items, err := h.source.Search(r.Context(), params)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "search failed", slog.String("error", err.Error()))
		WriteInternalError(w, "search failed")
		return
	}

	fc := stac.NewItemCollection(items)
	WriteGeoJSON(w, http.StatusOK, fc)
}
