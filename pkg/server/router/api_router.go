package router

import (
	handlers "github.com/NeuralTrust/TrustScan/pkg/handlers/http"
	"github.com/NeuralTrust/TrustScan/pkg/server/middleware"
	"github.com/gofiber/fiber/v2"
)

const (
	HealthPath  = "/health"
	VersionPath = "/version"
)

// RouteLimits are applied per endpoint on top of the global middlewares.
type RouteLimits struct {
	Predict  middleware.Middleware
	Batch    middleware.Middleware
	Features middleware.Middleware
}

type apiRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    handlers.HandlerTransport
	limits              RouteLimits
}

func NewAPIRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport handlers.HandlerTransport,
	limits RouteLimits,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
		limits:              limits,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	handlerTransport, ok := r.handlerTransport.GetTransport().(*handlers.HandlerTransportDTO)
	if !ok {
		return ErrInvalidHandlerTransport
	}

	if r.middlewareTransport != nil && r.middlewareTransport.GetMiddlewares() != nil {
		router.Use(r.middlewareTransport.GetMiddlewares()...)
	}

	router.Get(HealthPath, handlerTransport.HealthHandler.Handle)
	router.Get(VersionPath, handlerTransport.GetVersionHandler.Handle)

	v1 := router.Group("/api/v1")
	{
		predict := v1.Group("/predict")
		{
			predict.Post("", withLimit(r.limits.Predict, handlerTransport.PredictHandler)...)
			predict.Post("/batch", withLimit(r.limits.Batch, handlerTransport.BatchPredictHandler)...)
		}

		v1.Get("/features", withLimit(r.limits.Features, handlerTransport.FeaturesHandler)...)
		v1.Get("/model/info", handlerTransport.ModelInfoHandler.Handle)
	}
	return nil
}

func withLimit(limit middleware.Middleware, handler handlers.Handler) []fiber.Handler {
	if limit == nil {
		return []fiber.Handler{handler.Handle}
	}
	return []fiber.Handler{limit.Middleware(), handler.Handle}
}
