// cmd/octolok/main.go
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/octolok/internal/config"
	"github.com/tamzrod/octolok/internal/hardware"
	"github.com/tamzrod/octolok/internal/interlock"
	"github.com/tamzrod/octolok/internal/logger"
	"github.com/tamzrod/octolok/internal/poller"
	"github.com/tamzrod/octolok/internal/publish"
	"github.com/tamzrod/octolok/internal/transport"
	"github.com/tamzrod/octolok/internal/writer"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: octolok <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Relay electronics
	// --------------------

	hw, closeHW, err := hardware.Build(cfg.Hardware)
	if err != nil {
		zl.Fatal("hardware build failed", zap.String("driver", cfg.Hardware.Driver), zap.Error(err))
	}
	defer closeHW()

	// --------------------
	// Line transport
	// --------------------

	port, err := transport.OpenSerial(ctx, transport.SerialConfig{
		Address:  cfg.Serial.Port,
		BaudRate: cfg.Serial.BaudRate,
		DataBits: cfg.Serial.DataBits,
		StopBits: cfg.Serial.StopBits,
		Parity:   cfg.Serial.Parity,
		Timeout:  time.Duration(cfg.Serial.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		zl.Fatal("serial open failed", zap.String("port", cfg.Serial.Port), zap.Error(err))
	}
	defer port.Close()

	line := transport.NewLine(port)

	var out interlock.Replier = line
	if cfg.MQTT != nil {
		pub, err := publish.Connect(publish.Config{
			Broker:      cfg.MQTT.Broker,
			ClientID:    cfg.MQTT.ClientID,
			TopicPrefix: cfg.MQTT.TopicPrefix,
			QoS:         cfg.MQTT.QoS,
		}, zl.Named("mqtt"))
		if err != nil {
			zl.Fatal("mqtt connect failed", zap.String("broker", cfg.MQTT.Broker), zap.Error(err))
		}
		defer pub.Close()
		out = interlock.Tee(zl.Named("tee"), line, pub)
	}

	// --------------------
	// Status mirror (optional)
	// --------------------

	var (
		mirror  *writer.Mirror
		samples chan poller.Sample
		actions chan interlock.Action
	)
	if cfg.Mirror != nil {
		sw, closeMirror, err := writer.Build(*cfg.Mirror)
		if err != nil {
			zl.Fatal("status mirror build failed", zap.String("endpoint", cfg.Mirror.Endpoint), zap.Error(err))
		}
		defer closeMirror()

		mirror = writer.NewMirror(sw, zl.Named("mirror"))
		samples = make(chan poller.Sample, 1)
		actions = make(chan interlock.Action, 8)
	}

	// --------------------
	// Core: register, classifier, dispatcher, receiver, edge poller
	// --------------------

	reg := interlock.NewPendingRegister()
	cls := interlock.NewClassifier(hw, reg, zl.Named("classifier"))

	d, err := interlock.NewDispatcher(interlock.Config{
		Hardware: hw,
		Register: reg,
		Mask:     cls,
		Out:      out,
		Logger:   zl.Named("dispatcher"),
		Observer: func(a interlock.Action, reply string) {
			if actions == nil {
				return
			}
			// the mirror never holds up the dispatcher
			select {
			case actions <- a:
			default:
			}
		},
	})
	if err != nil {
		zl.Fatal("dispatcher build failed", zap.Error(err))
	}

	rx := interlock.NewReceiver(line, reg, zl.Named("receiver"))

	p, err := poller.Build(cfg.Poll, hw, cls)
	if err != nil {
		zl.Fatal("poller build failed", zap.Error(err))
	}

	zl.Info("octolok started",
		zap.String("serial", cfg.Serial.Port),
		zap.String("driver", cfg.Hardware.Driver),
		zap.Int("poll_ms", cfg.Poll.IntervalMs),
		zap.Bool("mirror", mirror != nil),
		zap.Bool("mqtt", cfg.MQTT != nil),
	)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = d.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := rx.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			zl.Error("serial receiver stopped", zap.Error(err))
			stop()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		p.Run(ctx, samples)
	}()

	if mirror != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mirror.Run(ctx, samples, actions)
		}()
	}

	<-ctx.Done()
	wg.Wait()

	zl.Info("octolok stopped", zap.Uint64("overwritten_actions", reg.Overwritten()))
}
