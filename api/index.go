package handler

import (
	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	"hotel/transport/http/response"
	"net/http"
	"sync"
)

var (
	once    sync.Once
	handler http.Handler
	initErr error
)

// Handler is the serverless entry point. The service is built once per instance so the
// booking ledger survives between invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		server, err := di.InitializeService()
		if err != nil {
			initErr = err

			return
		}

		handler = server.Handler()
	})

	if initErr != nil {
		response.WithError(w, initErr)

		return
	}

	handler.ServeHTTP(w, r)
}
