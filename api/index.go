package handler

import (
	"micelio/config"
	"micelio/di"
	"micelio/shared/logger"
	"net/http"
	"sync"
)

var (
	once    sync.Once
	handler http.Handler
)

// Handler serves every request of a serverless invocation through the same
// router as cmd/app. The graph is built on the first call and reused while
// the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		server, _ := di.InitializeService()
		handler = server.Handler()
	})

	r.RequestURI = r.URL.String()

	handler.ServeHTTP(w, r)
}
