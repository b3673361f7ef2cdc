package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"example.com/footprint/internal/api"
	"example.com/footprint/internal/auth"
	httptransport "example.com/footprint/internal/transport/http"
)

// newHTTPHandler chains CORS, request logging and authentication around the API router.
func newHTTPHandler(handler *api.Handler, tokens auth.Config, corsOrigin string, log *zap.Logger) http.Handler {
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	authMiddleware := auth.NewMiddleware(tokens, func(r *http.Request) bool {
		return api.PublicPath(r.URL.Path)
	})

	return httptransport.CORS(corsOrigin)(
		httptransport.RequestLogger(log, router)(
			authMiddleware.Wrap(router),
		),
	)
}
