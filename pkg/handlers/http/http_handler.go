package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport interface {
	GetTransport() interface{}
}

type HandlerTransportDTO struct {
	// Scoring
	PredictHandler      Handler
	BatchPredictHandler Handler
	FeaturesHandler     Handler

	// Introspection
	ModelInfoHandler  Handler
	HealthHandler     Handler
	GetVersionHandler Handler
}

func (t *HandlerTransportDTO) GetTransport() interface{} {
	return t
}
