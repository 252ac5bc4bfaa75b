package router

import (
	"errors"

	handlers "github.com/NeuralTrust/SafePrompt/pkg/handlers/http"
	"github.com/NeuralTrust/SafePrompt/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

var ErrInvalidHandlerTransport = errors.New("invalid handler transport")

const swaggerFile = "./docs/swagger.json"

type apiRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    handlers.HandlerTransport
	docsURL             string
}

func NewAPIRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport handlers.HandlerTransport,
	docsURL string,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
		docsURL:             docsURL,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	t := r.handlerTransport
	if t.CheckPIIHandler == nil || t.ProcessHandler == nil || t.GenerateAudioHandler == nil {
		return ErrInvalidHandlerTransport
	}

	for _, m := range r.middlewares() {
		router.Use(m.Middleware())
	}

	router.Static("/swagger.json", swaggerFile)
	router.Get("/docs/*", swagger.New(swagger.Config{
		URL: r.docsURL,
	}))

	if t.GetVersionHandler != nil {
		router.Get("/version", t.GetVersionHandler.Handle)
	}

	router.Post("/check_pii", t.CheckPIIHandler.Handle)
	router.Post("/process", t.ProcessHandler.Handle)
	router.Post("/generate_audio", t.GenerateAudioHandler.Handle)
	if t.GetAudioHandler != nil {
		router.Get("/audio/:name", t.GetAudioHandler.Handle)
	}
	return nil
}

// middlewares returns the configured middlewares in execution order.
func (r *apiRouter) middlewares() []middleware.Middleware {
	if r.middlewareTransport == nil {
		return nil
	}
	ordered := []middleware.Middleware{
		r.middlewareTransport.PanicRecoverMiddleware,
		r.middlewareTransport.RequestIDMiddleware,
		r.middlewareTransport.CORSMiddleware,
		r.middlewareTransport.MetricsMiddleware,
	}
	out := make([]middleware.Middleware, 0, len(ordered))
	for _, m := range ordered {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}
