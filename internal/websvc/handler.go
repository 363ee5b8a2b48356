package websvc

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/AdguardTeam/golibs/httphdr"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/ipregion/regiond/internal/region"
	"github.com/ipregion/regiond/internal/rgdhttp"
)

// regionResponse describes the response of the GET /v1/region HTTP API.
type regionResponse struct {
	IP     string `json:"ip"`
	Region string `json:"region"`
}

// errorResponse describes an error response of the HTTP API.
type errorResponse struct {
	Error string `json:"error"`
}

// serveRegion handles the GET /v1/region endpoint.  The ip query parameter is
// required.  Addresses that do not belong to any published range, including
// syntactically invalid ones, produce a not-found response rather than an
// error.
func (svc *Service) serveRegion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogutil.MustLoggerFromContext(ctx)

	ip := r.URL.Query().Get("ip")
	if ip == "" {
		writeJSON(w, r, http.StatusBadRequest, &errorResponse{
			Error: "no ip query parameter",
		})

		return
	}

	name, ok := svc.resolver.ResolveRegion(ctx, ip)
	if !ok {
		writeJSON(w, r, http.StatusNotFound, &errorResponse{
			Error: "no matching range",
		})

		return
	}

	l.DebugContext(ctx, "resolved", "ip", ip, "region", name)

	writeJSON(w, r, http.StatusOK, &regionResponse{
		IP:     ip,
		Region: name,
	})
}

// serveRegions handles the GET /v1/regions endpoint.  It lists the
// user-selectable regions with their matchmaking endpoints, keyed by display
// name.
func (svc *Service) serveRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, region.Selectable())
}

// writeJSON writes v as the JSON response body along with the given status
// code.
func writeJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	w.Header().Set(httphdr.ContentType, rgdhttp.HdrValApplicationJSON)
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		ctx := r.Context()
		l := slogutil.MustLoggerFromContext(ctx)
		l.DebugContext(ctx, "writing response", slogutil.KeyError, err)
	}
}

// serveHealthCheck handles the GET /health-check endpoint.
func serveHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(httphdr.ContentType, rgdhttp.HdrValTextPlain)
	w.WriteHeader(http.StatusOK)

	_, err := io.WriteString(w, "OK\n")
	if err != nil {
		ctx := r.Context()
		l := slogutil.MustLoggerFromContext(ctx)
		l.DebugContext(ctx, "writing health-check response", slogutil.KeyError, err)
	}
}
