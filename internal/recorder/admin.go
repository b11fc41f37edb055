package recorder

import (
	"fmt"
	"net/http"

	"github.com/tailscale/tailsql/server/tailsql"
	"tailscale.com/tsweb"

	"github.com/banshee-data/velocity.hud/internal/httputil"
)

// AttachAdminRoutes mounts live SQL and a session listing under /debug/ on
// mux.
func (r *Recorder) AttachAdminRoutes(mux *http.ServeMux) error {
	debug := tsweb.Debugger(mux)

	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		return fmt.Errorf("failed to create tailsql server: %w", err)
	}
	tsql.SetDB("sqlite://"+r.path, r.db, &tailsql.DBOptions{
		Label: "HUD recorder",
	})
	debug.Handle("tailsql/", "SQL live debugging", tsql.NewMux())

	debug.Handle("sessions", "Recorded driving sessions", httputil.JSONHandler(func(req *http.Request) (any, error) {
		sessions, err := r.Sessions(req.Context())
		if sessions == nil {
			sessions = []Session{}
		}
		return sessions, err
	}))
	debug.HandleSilent("recorder-stats", httputil.JSONHandler(func(*http.Request) (any, error) {
		return r.Stats(), nil
	}))
	return nil
}
