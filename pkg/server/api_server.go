package server

import (
	"fmt"

	"github.com/NeuralTrust/TrustScan/pkg/config"
	"github.com/NeuralTrust/TrustScan/pkg/infra/prometheus"
	"github.com/NeuralTrust/TrustScan/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	APIServerDI struct {
		Config  *config.Config
		Logger  *logrus.Logger
		Routers []router.ServerRouter
	}
	APIServer struct {
		*BaseServer
	}
)

func NewAPIServer(di APIServerDI) *APIServer {
	if di.Config.Metrics.Enabled {
		prometheus.Initialize(prometheus.MetricsConfig{
			EnableLatency:    di.Config.Metrics.EnableLatency,
			EnableEnrichment: di.Config.Metrics.EnableEnrichment,
		})
	}

	s := &APIServer{
		BaseServer: NewBaseServer(di.Config, di.Logger).WithRouters(di.Routers...),
	}
	s.BaseServer.setupMetricsEndpoint()
	return s
}

func (s *APIServer) Run() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("Starting scan API server")
	return s.Router.Listen(addr)
}

func (s *APIServer) Shutdown() error {
	s.shutdownMetrics()
	return s.Router.Shutdown()
}
