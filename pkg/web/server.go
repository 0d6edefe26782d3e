// Package web provides the live tuning and monitoring dashboard. It reads
// engine snapshots and pushes them to browsers; nothing here sits on the
// frame-processing path.
package web

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/clearway/go-clearway/internal/log"
	"github.com/clearway/go-clearway/internal/protocol"
	"github.com/clearway/go-clearway/pkg/avoidance"
	"github.com/clearway/go-clearway/pkg/hub"
	"github.com/clearway/go-clearway/pkg/route"
)

// Server is the dashboard HTTP/websocket server.
type Server struct {
	app  *fiber.App
	port int

	sessionID string
	engine    *avoidance.Engine
	progress  *route.Progress

	statusHub *hub.Hub

	// OnPosition is invoked with each position report from the host app
	// (latitude/longitude plus compass heading in degrees).
	OnPosition func(pos route.Waypoint, headingDeg float64)
}

// NewServer creates the dashboard server. progress may be nil when no route
// is loaded.
func NewServer(port int, engine *avoidance.Engine, progress *route.Progress) *Server {
	s := &Server{
		port:      port,
		sessionID: uuid.NewString(),
		engine:    engine,
		progress:  progress,
		statusHub: hub.New("status"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "ClearWay Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/tuning", s.handleGetTuning)
	api.Post("/tuning", s.handleSetTuning)
	api.Get("/route", s.handleRoute)
	api.Post("/position", s.handlePosition)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/status", websocket.New(s.handleStatusWS))

	s.app = app
	return s
}

// Start runs the hub loop and serves HTTP. Blocking.
func (s *Server) Start() error {
	go s.statusHub.Run()
	log.Info("dashboard listening", "port", s.port, "session", s.sessionID)
	return s.app.Listen(fmt.Sprintf(":%d", s.port))
}

// Shutdown stops the HTTP server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// PushSnapshot broadcasts an engine snapshot to dashboard clients.
// Safe to call from the frame goroutine; broadcast never blocks.
func (s *Server) PushSnapshot(snap avoidance.Snapshot) {
	msg, err := protocol.NewMessage(protocol.TypeStatus, snap)
	if err != nil {
		return
	}
	payload, err := msg.Bytes()
	if err != nil {
		return
	}
	s.statusHub.Broadcast(payload)
}

// PushBearing broadcasts a target-bearing update.
func (s *Server) PushBearing(bearingDeg float64, waypointsLeft int) {
	msg, err := protocol.NewMessage(protocol.TypeBearing, protocol.BearingData{
		BearingDegrees: bearingDeg,
		WaypointsLeft:  waypointsLeft,
	})
	if err != nil {
		return
	}
	payload, err := msg.Bytes()
	if err != nil {
		return
	}
	s.statusHub.Broadcast(payload)
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"session_id": s.sessionID,
		"engine":     s.engine.Snapshot(),
		"clients":    s.statusHub.ClientCount(),
	})
}

func (s *Server) handleGetTuning(c *fiber.Ctx) error {
	return c.JSON(s.engine.GetTuningParams())
}

func (s *Server) handleSetTuning(c *fiber.Ctx) error {
	var params avoidance.TuningParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := s.engine.SetTuningParams(params); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	log.Info("tuning updated via dashboard")
	return c.JSON(s.engine.GetTuningParams())
}

func (s *Server) handleRoute(c *fiber.Ctx) error {
	if s.progress == nil {
		return c.JSON(fiber.Map{"loaded": false})
	}
	target, active := s.progress.Target()
	return c.JSON(fiber.Map{
		"loaded":    true,
		"active":    active,
		"target":    target,
		"remaining": s.progress.Remaining(),
	})
}

func (s *Server) handlePosition(c *fiber.Ctx) error {
	var body struct {
		Lat        float64 `json:"lat"`
		Lon        float64 `json:"lon"`
		HeadingDeg float64 `json:"heading_deg"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if s.OnPosition != nil {
		s.OnPosition(route.Waypoint{Lat: body.Lat, Lon: body.Lon}, body.HeadingDeg)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleStatusWS(conn *websocket.Conn) {
	client := hub.NewClient(s.statusHub, conn)
	client.Run()
}
