package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/smukkama/temp-monitor/internal/bus"
	"github.com/smukkama/temp-monitor/internal/database"
	"github.com/smukkama/temp-monitor/internal/monitor"
	"github.com/smukkama/temp-monitor/internal/protocol"
	"github.com/smukkama/temp-monitor/internal/queue"
	"github.com/smukkama/temp-monitor/internal/state"
	"github.com/smukkama/temp-monitor/internal/threshold"
	"github.com/smukkama/temp-monitor/pkg/config"
)

// service wires one Monitor per sensor to the alert pipeline. Observers on
// each sensor's bus publish fired alerts to Kafka, log them to Postgres and
// print them to the console; a panicking observer never blocks the others.
type service struct {
	cfg           *config.Config
	db            *database.DB
	alertProducer *queue.Producer
	latestStore   *state.LatestReadingStore
	evaluators    map[string]*monitor.Monitor
	sensorNames   map[string]string
}

func newService(cfg *config.Config, db *database.DB, alertProducer *queue.Producer, latestStore *state.LatestReadingStore) *service {
	return &service{
		cfg:           cfg,
		db:            db,
		alertProducer: alertProducer,
		latestStore:   latestStore,
		evaluators:    make(map[string]*monitor.Monitor),
		sensorNames:   make(map[string]string),
	}
}

// handleReading feeds one decoded reading through the sensor's evaluator
func (s *service) handleReading(ctx context.Context, reading *protocol.ReadingMessage) error {
	s.sensorNames[reading.SensorID] = reading.SensorName

	if err := s.latestStore.Set(ctx, reading); err != nil {
		log.Printf("Failed to update latest reading: %v", err)
	}

	eval, err := s.evaluatorFor(ctx, reading.SensorID)
	if err != nil {
		return fmt.Errorf("failed to build evaluator: %w", err)
	}

	if _, err := eval.IngestSample(reading.Temperature); err != nil {
		return fmt.Errorf("sample rejected: %w", err)
	}

	return nil
}

// evaluatorFor returns the sensor's Monitor, creating it on first sight with
// thresholds from the database or the configured default
func (s *service) evaluatorFor(ctx context.Context, sensorID string) (*monitor.Monitor, error) {
	if eval, ok := s.evaluators[sensorID]; ok {
		return eval, nil
	}

	thresholds, err := s.loadThresholds(sensorID)
	if err != nil {
		return nil, err
	}

	alertBus := bus.NewAlertBus()
	s.subscribeObservers(ctx, alertBus, sensorID)

	eval := monitor.New(alertBus, thresholds...)
	s.evaluators[sensorID] = eval

	fmt.Printf("Evaluator created for sensor %s with %d threshold(s)\n", sensorID, len(thresholds))
	return eval, nil
}

func (s *service) loadThresholds(sensorID string) ([]*threshold.Threshold, error) {
	configs, err := s.db.GetActiveThresholds(sensorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load thresholds: %w", err)
	}

	var thresholds []*threshold.Threshold
	for _, c := range configs {
		direction, err := threshold.ParseDirection(c.Direction)
		if err != nil {
			log.Printf("Skipping threshold %d: %v", c.ID, err)
			continue
		}
		t, err := threshold.New(c.TargetCelsius, c.Margin, direction)
		if err != nil {
			log.Printf("Skipping threshold %d: %v", c.ID, err)
			continue
		}
		thresholds = append(thresholds, t)
	}

	// Fall back to the configured default so the evaluator never runs empty
	if len(thresholds) == 0 {
		direction, err := threshold.ParseDirection(s.cfg.Monitor.DefaultDirection)
		if err != nil {
			return nil, err
		}
		t, err := threshold.New(s.cfg.Monitor.DefaultTarget, s.cfg.Monitor.DefaultMargin, direction)
		if err != nil {
			return nil, err
		}
		thresholds = append(thresholds, t)
	}

	return thresholds, nil
}

func (s *service) subscribeObservers(ctx context.Context, alertBus *bus.AlertBus, sensorID string) {
	// Console observer
	alertBus.Subscribe(func(a monitor.Alert) {
		fmt.Printf("🚨 ALERT: sensor=%s value=%.2f°C threshold=%s\n", sensorID, a.Value, a.Threshold)
	})

	// Kafka observer: publish the external payload to the alerts topic
	alertBus.Subscribe(func(a monitor.Alert) {
		notification := protocol.NewAlertNotification(sensorID, s.sensorNames[sensorID], a)
		data, err := protocol.EncodeAlertNotification(notification)
		if err != nil {
			log.Printf("Failed to encode alert: %v", err)
			return
		}
		if err := s.alertProducer.Publish(ctx, sensorID, data); err != nil {
			log.Printf("Failed to publish alert: %v", err)
		}
	})

	// Database observer: append to the alert log
	alertBus.Subscribe(func(a monitor.Alert) {
		notification := protocol.NewAlertNotification(sensorID, s.sensorNames[sensorID], a)
		alertLog := &database.AlertLog{
			AlertID:       notification.AlertID,
			SensorID:      sensorID,
			ValueCelsius:  a.Value,
			TargetCelsius: a.Threshold.Target(),
			Margin:        a.Threshold.Margin(),
			Direction:     string(a.Direction),
			FiredAt:       a.At,
		}
		if err := s.db.InsertAlertLog(alertLog); err != nil {
			log.Printf("Failed to insert alert log: %v", err)
		}
	})
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Println("Starting Monitor Service...")

	// Connect to database
	db, err := database.Connect(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	fmt.Println("Connected to database")

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	fmt.Println("Connected to Redis")

	// Latest-reading store (live status surface)
	latestStore := state.NewLatestReadingStore(redisClient, cfg.Monitor.LatestReadingTTL)

	// Create alerts topic (may already exist)
	if err := queue.CreateTopic(
		cfg.Kafka.Brokers,
		cfg.Kafka.TopicAlerts,
		1, // single partition keeps alert order global
		1, // replication factor
	); err != nil {
		fmt.Printf("Note: Topic creation failed (may already exist): %v\n", err)
	}

	// Create alert producer
	alertProducer := queue.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicAlerts)
	defer alertProducer.Close()
	fmt.Println("Alert producer initialized")

	// Create consumer for readings
	consumer := queue.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicReadings, "monitor-group")
	defer consumer.Close()
	fmt.Println("Kafka consumer initialized")

	svc := newService(cfg, db, alertProducer, latestStore)

	fmt.Println("\n✓ Monitor Service is running")
	fmt.Println("✓ Press Ctrl+C to stop")

	// Start consuming and evaluating
	go func() {
		for {
			msg, err := consumer.Consume(ctx)
			if err != nil {
				log.Printf("Failed to consume message: %v\n", err)
				continue
			}

			// Decode reading message
			reading, err := protocol.DecodeReadingMessage(msg.Value)
			if err != nil {
				log.Printf("Failed to decode message: %v\n", err)
				consumer.Commit(ctx, msg)
				continue
			}

			// Evaluate reading; a rejected sample is logged and skipped
			if err := svc.handleReading(ctx, reading); err != nil {
				log.Printf("Failed to evaluate reading: %v\n", err)
			}

			// Commit offset
			if err := consumer.Commit(ctx, msg); err != nil {
				log.Printf("Failed to commit offset: %v\n", err)
			}
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nShutting down gracefully...")
}
