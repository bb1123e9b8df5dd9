// Command atx-power-switch lets a momentary ATX-style push button control an
// AT-style motherboard's power supply: a short press powers on, holding the
// button powers off. It samples the button GPIO on a fixed wake period and
// drives the ATX power-on line.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timali/ATXPowerSwitch/internal/gpio"
	"github.com/timali/ATXPowerSwitch/internal/logic"
	"github.com/timali/ATXPowerSwitch/internal/mqtt"
	"github.com/timali/ATXPowerSwitch/internal/status"
	"github.com/timali/ATXPowerSwitch/internal/watchdog"
	"github.com/timali/ATXPowerSwitch/internal/web"
)

const (
	// defaultPeriod mirrors the classic 2x18 ms watchdog tick of the
	// original single-chip builds. The wake period is also the debounce
	// window: one sample per cycle is trusted.
	defaultPeriod = 36 * time.Millisecond

	// defaultHold is how long the button must be held to power off.
	defaultHold = 500 * time.Millisecond
)

func main() {
	period := flag.Duration("period", defaultPeriod, "Wake cycle period (doubles as the debounce window)")
	hold := flag.Duration("hold", defaultHold, "How long the button must be held to power off")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", `MQTT broker address ("off" disables telemetry)`)
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	pinButton := flag.Int("pin-button", gpio.DefaultPinButton, "BCM pin number for the power button")
	pinSupply := flag.Int("pin-supply", gpio.DefaultPinSupply, "BCM pin number for the ATX power-on line")
	printState := flag.Bool("print-state", false, "Print current button state and exit")
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable)")

	flag.Parse()

	if err := run(*period, *hold, *broker, *heartbeat, *pinButton, *pinSupply, *printState, *httpAddr); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(period, hold time.Duration, broker string, heartbeat time.Duration, pinButton, pinSupply int, printState bool, httpAddr string) error {
	threshold := logic.HoldThreshold(hold, period)
	if threshold == 0 {
		return fmt.Errorf("hold %v must be at least one wake period (%v)", hold, period)
	}

	// Initialize GPIO
	device, err := gpio.NewRealDevice(pinButton, pinSupply)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer device.Close()

	// Print state mode
	if printState {
		pressed, err := device.ReadButton()
		if err != nil {
			return fmt.Errorf("read button: %w", err)
		}
		fmt.Printf("Button: %s\n", buttonString(pressed))
		return nil
	}

	// The supply starts off at every daemon start, whatever it was doing
	// before the last restart.
	if err := device.SetSupplyEnabled(false); err != nil {
		return fmt.Errorf("disable supply: %w", err)
	}

	// Liveness timer (systemd watchdog when configured)
	wd, err := watchdog.Detect()
	if err != nil {
		return fmt.Errorf("detect watchdog: %w", err)
	}

	// Telemetry is optional; the control path never depends on it.
	var publisher mqtt.Publisher
	var mqttStatus mqtt.ConnectionStatus
	if broker != "off" {
		real := mqtt.NewRealPublisher(broker)
		publisher = real
		mqttStatus = real
		defer publisher.Close()
	} else {
		broker = ""
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		PeriodMs:   period.Milliseconds(),
		HoldMs:     hold.Milliseconds(),
		HoldCycles: threshold,
		WatchdogMs: wd.Interval().Milliseconds(),
		Broker:     broker,
		HTTPAddr:   httpAddr,
		PinButton:  pinButton,
		PinSupply:  pinSupply,
	})

	// Publish startup event with full status snapshot
	if publisher != nil {
		snap := tracker.Snapshot()
		startupEvent := mqtt.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
		}
		if err := publisher.PublishSystem(startupEvent); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		} else {
			log.Printf("published startup event")
		}
	}

	// Start HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	if err := watchdog.NotifyReady(); err != nil {
		log.Printf("notify ready: %v", err)
	}

	log.Printf("started: period=%v hold=%v (%d cycles) watchdog=%v broker=%s",
		period, hold, threshold, wd.Interval(), broker)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(device, publisher, mqttStatus, wd, tracker, threshold, heartbeat, time.Now, ticker.C, sigCh)
}

func runLoop(device gpio.Device, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, wd watchdog.Refresher, tracker *status.Tracker, threshold uint, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	ctrl := logic.NewController(threshold)
	lastHeartbeat := now()

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			if publisher != nil {
				event := mqtt.SystemEvent{
					Timestamp: now(),
					Event:     "SHUTDOWN",
					Reason:    signalName(s),
					Retained:  true,
				}
				if tracker != nil {
					if mqttStatus != nil {
						tracker.SetMQTTConnected(mqttStatus.IsConnected())
					}
					snap := tracker.Snapshot()
					event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName(s))
				}
				if err := publisher.PublishSystem(event); err != nil {
					log.Printf("failed to publish shutdown event: %v", err)
				} else {
					log.Printf("published shutdown event")
				}
			}
			// The deferred device.Close releases the supply line, so an
			// exiting daemon always leaves the supply off.
			return nil

		case <-tick:
			// Liveness first, unconditionally, before anything that
			// could stall.
			if err := wd.Refresh(); err != nil {
				log.Printf("watchdog refresh error: %v", err)
			}

			pressed, err := device.ReadButton()
			if err != nil {
				log.Printf("gpio read error: %v", err)
				continue
			}

			events := ctrl.Process(pressed)

			// Redrive the output every cycle so the line always mirrors
			// the commanded state. SetSupplyEnabled is idempotent.
			if err := device.SetSupplyEnabled(ctrl.SupplyOn()); err != nil {
				log.Printf("gpio write error: %v", err)
			}

			t := now()
			for _, event := range events {
				if event.Type == logic.EventPowerOff {
					log.Printf("event: %s (held %d cycles)", event.Type, event.HeldCycles)
				} else {
					log.Printf("event: %s", event.Type)
				}
				if publisher != nil {
					if err := publisher.Publish(mqtt.PowerEvent{At: t, Event: event}); err != nil {
						log.Printf("publish error: %v", err)
						// Don't crash on publish failure
					}
				}
			}

			// Update status tracker for HTTP consumers
			if tracker != nil {
				tracker.Update(ctrl.Supply(), ctrl.Armed(), ctrl.HoldCycles(), ctrl.EventCountsSnapshot())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}

			// Check for heartbeat
			if heartbeat > 0 && t.Sub(lastHeartbeat) >= heartbeat {
				lastHeartbeat = t
				if publisher != nil && tracker != nil {
					snap := tracker.Snapshot()
					log.Printf("heartbeat: uptime=%v supply=%s on=%d off=%d",
						snap.Uptime().Truncate(time.Second), snap.Supply,
						snap.Counts.PowerOn, snap.Counts.PowerOff)
					hbEvent := mqtt.SystemEvent{
						Timestamp:  t,
						Event:      "HEARTBEAT",
						RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
					}
					if err := publisher.PublishSystem(hbEvent); err != nil {
						log.Printf("heartbeat publish error: %v", err)
					}
				}
			}
		}
	}
}

func buttonString(pressed bool) string {
	if pressed {
		return "PRESSED"
	}
	return "RELEASED"
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}
