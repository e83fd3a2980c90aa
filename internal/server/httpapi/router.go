// Package httpapi is the backend's HTTP surface: the registration listing,
// résumé download links, health and metrics, on a gin router.
package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/resumebook/internal/logging"
)

const (
	HealthPath   = "/healthz"
	MetricsPath  = "/metrics"
	FilterPath   = "/registration/filter"
	DownloadPath = "/s3/download/user/:ids"
)

type RouterConfig struct {
	Registrations RegistrationFilterer
	Downloads     DownloadResolver
	Logger        logging.Logger
	JWTSecret     []byte

	// Gatherer and Registerer are nil when metrics are disabled.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	r := gin.New()
	// Split the ids segment before unescaping it.
	r.UseRawPath = true
	r.UnescapePathValues = false

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(AccessLog(cfg.Logger))

	if cfg.Registerer != nil {
		m, err := NewMetrics(cfg.Registerer)
		if err != nil {
			return nil, err
		}
		r.Use(m.Handler())
		if cfg.Gatherer != nil {
			r.GET(MetricsPath, gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
		}
	}

	h := &handlers{
		registrations: cfg.Registrations,
		downloads:     cfg.Downloads,
		logger:        cfg.Logger.With("module", "http"),
	}

	r.GET(HealthPath, h.healthz)

	api := r.Group("/", Auth(cfg.JWTSecret))
	api.POST(FilterPath, h.filterRegistrations)
	api.GET(DownloadPath, h.downloadResumes)

	return r, nil
}
