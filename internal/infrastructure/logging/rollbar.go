package logging

import (
	"net/http"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
	"go.uber.org/zap"
)

// Reporter forwards server errors to an error tracker.
type Reporter interface {
	Report(r *http.Request, err error, extras map[string]any)
}

// NopReporter drops reports.
type NopReporter struct{}

func (NopReporter) Report(*http.Request, error, map[string]any) {}

// RollbarReporter sends errors to Rollbar and logs them locally.
type RollbarReporter struct {
	logger *zap.Logger
}

func NewRollbarReporter(token, env, version string, logger *zap.Logger) *RollbarReporter {
	rollbar.SetToken(token)
	rollbar.SetEnvironment(env)
	rollbar.SetCodeVersion(version)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarReporter{logger: logger}
}

// Report attaches the authenticated user, when present in extras under
// "uid", as the Rollbar person.
func (r *RollbarReporter) Report(req *http.Request, err error, extras map[string]any) {
	if uid, ok := extras["uid"].(string); ok && uid != "" {
		email, _ := extras["email"].(string)
		rollbar.SetPerson(uid, "", email)
	} else {
		rollbar.ClearPerson()
	}
	if req != nil {
		rollbar.Error(req, err, extras)
	} else {
		rollbar.Error(err, extras)
	}
	r.logger.Error("reported error", zap.Error(err), zap.Any("extras", extras))
}

// Close flushes pending reports.
func (r *RollbarReporter) Close() {
	rollbar.Close()
}
