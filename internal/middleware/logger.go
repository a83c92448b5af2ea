package middleware

import (
	"net/http"

	logrusmw "github.com/chi-middleware/logrus-logger"
	"github.com/sirupsen/logrus"
)

// Logger logs one line per request through log.
func Logger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return logrusmw.Logger("router", log)
}
