package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/avismetric/metric/pkg/config"
	"github.com/avismetric/metric/pkg/events"
	"github.com/avismetric/metric/pkg/utils/netaddr"
)

var (
	conf      config.Config
	hub       *events.EventHub
	completed = newActivityRecorder()
	rejected  = newActivityRecorder()
)

// statsWindow is how far back /stats counts.
const statsWindow = time.Minute

func newActivityRecorder() *TimeSeriesRecorder {
	return NewTimeSeriesRecorderWithMaxAge(statsWindow)
}

// NewRouter installs c and h as the daemon state and returns the HTTP
// routes serving them.
func NewRouter(c config.Config, h *events.EventHub) *gin.Engine {
	conf = c
	hub = h
	completed = newActivityRecorder()
	rejected = newActivityRecorder()
	return setupRoutes()
}

func setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), ginLogger(logrus.StandardLogger(), func() bool {
		return conf.LogRequests()
	}))
	router.GET("/config", getConfig)
	router.GET("/kinds", getKinds)
	router.GET("/kinds/:kind/units", getUnits)
	router.GET("/kinds/:kind/defaults", getDefaults)
	router.POST("/convert", convert)
	router.GET("/events", streamEvents)
	router.GET("/stats", getStats)
	router.GET("/version", getVersion)

	return router
}

// Run serves the HTTP API until SIGINT or SIGTERM. A non-empty listen
// overrides the configured address.
func Run(configPath string, listen string) error {
	c, err := config.NewFile(configPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to parse config during startup")
	}
	if listen != "" {
		c.SetListen(listen)
	}
	logrus.WithFields(c.LogrusFields()).Infof("config loaded")

	router := NewRouter(c, events.NewEventHub())

	reporter := NewStatsReporter()
	if err := reporter.Reschedule(c.StatsReport()); err != nil {
		return pkgerrors.Wrapf(err, "failed to schedule stats report")
	}
	defer reporter.Stop()

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			if err := reloadConfig(c, listen, reporter); err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			logrus.Infof("config reloaded")
		}
	}()

	network, address, err := netaddr.Parse(c.Listen())
	if err != nil {
		return err
	}

	if network == "unix" {
		removeStaleSocket(address)
	}

	l, err := net.Listen(network, address)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to listen on %s", c.Listen())
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigc:
		logrus.Infof("caught signal \"%s\": shutting down.", sig)
	case err := <-serverErr:
		return pkgerrors.Wrapf(err, "http server failed")
	}

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(ctx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	logrus.Info("exiting")
	return nil
}

// reloadConfig re-reads c from its file. The listen override stays in place
// since the server keeps listening on it.
func reloadConfig(c config.Config, listen string, reporter *StatsReporter) error {
	if err := c.Load(); err != nil {
		return err
	}
	if listen != "" {
		c.SetListen(listen)
	}
	if err := reporter.Reschedule(c.StatsReport()); err != nil {
		return pkgerrors.Wrapf(err, "failed to reschedule stats report")
	}
	return nil
}

func removeStaleSocket(path string) {
	fi, err := os.Stat(path)
	if err != nil || fi.Mode()&os.ModeSocket == 0 {
		return
	}
	logrus.Debugf("removing stale socket %s", path)
	if err := os.Remove(path); err != nil {
		logrus.Warnf("failed to remove stale socket %s: %v", path, err)
	}
}
