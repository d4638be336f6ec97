// Package mockserver is a local stand-in for the threat classifier. It
// serves the same POST /analyze contract with a lexical heuristic instead
// of a trained model.
package mockserver

import (
	"log"
	"net"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"

	"threatscope/models"
)

// Messages returned in the error field.
const (
	NoInputMessage    = "No input provided"
	NotLoadedMessage  = "Model not loaded. Please train the model first."
	unknownThreatText = "Unknown"
)

type Options struct {
	// Untrained makes every analysis answer with the not-loaded error.
	Untrained bool
	// Latency delays every answer, for exercising client timeouts.
	Latency time.Duration
	// AccessLog enables fiber's request logger.
	AccessLog bool
}

type Server struct {
	app  *fiber.App
	opts Options
}

type analyzeBody struct {
	InputText string `json:"input_text"`
	InputType string `json:"input_type"`
}

func New(opts Options) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "threatscope-mock",
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
	})

	s := &Server{app: app, opts: opts}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.app.Use(recover.New())
	if s.opts.AccessLog {
		s.app.Use(logger.New())
	}

	s.app.Post(models.AnalyzePath, s.handleAnalyze)
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "trained": !s.opts.Untrained})
	})
}

// App exposes the fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	log.Printf("mock classifier listening on %s", addr)
	return s.app.Listen(addr)
}

// Serve runs on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleAnalyze(c *fiber.Ctx) error {
	var body analyzeBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	if body.InputText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": NoInputMessage})
	}

	// only "email" takes the email branch; anything else is scored as a URL
	mode := models.ModeURL
	if strings.EqualFold(body.InputType, models.ModeEmail.String()) {
		mode = models.ModeEmail
	}

	if s.opts.Latency > 0 {
		time.Sleep(s.opts.Latency)
	}

	if s.opts.Untrained {
		return c.JSON(fiber.Map{
			"error":          NotLoadedMessage,
			"security_score": 0,
			"threat_level":   unknownThreatText,
			"is_malicious":   false,
		})
	}

	return c.JSON(Classify(body.InputText, mode))
}
