package metrics

import (
	"context"
	"net"
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// HTTPServer exposes /metrics on its own port, away from the API listener
type HTTPServer struct {
	srv *http.Server
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// NewHTTPServer binds the metrics listener and starts serving in the background
func NewHTTPServer(port string) (*HTTPServer, error) {
	srv := &http.Server{Addr: ":" + port}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv.Handler = mux

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen on %s", srv.Addr)
	}

	logrus.Infof("Starting metrics server at %s", srv.Addr)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("metrics server stopped")
		}
	}()

	return &HTTPServer{srv: srv}, nil
}
