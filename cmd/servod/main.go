package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/clearway/go-clearway/internal/log"
	"github.com/clearway/go-clearway/pkg/guidance"
	"github.com/clearway/go-clearway/pkg/servo"
)

// servod is the remote actuator daemon. It terminates the wireless hop from
// the guidance unit and turns received angle strings into compass pointer
// movements. One channel drives the servo; traffic on the other is logged
// so both can be observed during calibration walks.
func main() {
	port := flag.Int("port", 9200, "Listen port")
	serialDev := flag.String("serial", "", "Servo controller serial device (dry run when empty)")
	baud := flag.Int("baud", 115200, "Serial baud rate")
	driveChannel := flag.String("drive", guidance.ChannelAvoidance, "Channel that drives the servo (avoidance or bearing)")
	logLevel := flag.String("log", "info", "Log level")
	flag.Parse()

	log.Init(*logLevel)

	var driver servo.Driver
	if *serialDev != "" {
		sd, err := servo.OpenSerialDriver(*serialDev, *baud)
		if err != nil {
			fmt.Fprintf(os.Stderr, "servo driver: %v\n", err)
			os.Exit(1)
		}
		defer sd.Close()
		driver = sd
	} else {
		log.Warn("no serial device given, running dry")
		driver = &servo.MockDriver{}
	}

	compass := servo.NewCompass(driver)

	// A single worker owns the servo; rotations are timed sleeps and must
	// not overlap. Stale targets are dropped in favor of the newest.
	targets := make(chan []byte, 1)
	go func() {
		for payload := range targets {
			// Malformed payloads hold the previous position.
			_ = compass.HandlePayload(payload)
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:               "ClearWay Actuator",
		DisableStartupMessage: true,
	})

	app.Use("/channel", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/channel/:name", websocket.New(func(conn *websocket.Conn) {
		name := conn.Params("name")
		log.Info("guidance unit connected", "channel", name)
		defer log.Info("guidance unit disconnected", "channel", name)

		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}

			if name != *driveChannel {
				deg, err := guidance.DecodeAngle(payload)
				if err != nil {
					log.Warn("malformed payload", "channel", name, "error", err)
					continue
				}
				log.Debug("channel update", "channel", name, "angle_deg", deg)
				continue
			}

			// Replace any queued target with the freshest one.
			select {
			case targets <- payload:
			default:
				select {
				case <-targets:
				default:
				}
				targets <- payload
			}
		}
	}))

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Info("shutting down")
		app.Shutdown()
	}()

	log.Info("actuator daemon listening", "port", *port, "drive_channel", *driveChannel)
	if err := app.Listen(fmt.Sprintf(":%d", *port)); err != nil {
		fmt.Fprintf(os.Stderr, "listen: %v\n", err)
		os.Exit(1)
	}
}
