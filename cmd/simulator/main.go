package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/smukkama/temp-monitor/internal/protocol"
	"github.com/smukkama/temp-monitor/internal/queue"
	"github.com/smukkama/temp-monitor/internal/source"
	"github.com/smukkama/temp-monitor/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	sensorID := uuid.NewString()

	fmt.Println("Starting Sensor Simulator...")
	fmt.Printf("Sensor: %s (%s)\n", cfg.Simulator.SensorName, sensorID)
	fmt.Printf("Base temperature: %.1f°C, step: %.1f, interval: %s\n",
		cfg.Simulator.BaseTemp, cfg.Simulator.Step, cfg.Simulator.Interval)

	// Create readings topic (may already exist)
	if err := queue.CreateTopic(
		cfg.Kafka.Brokers,
		cfg.Kafka.TopicReadings,
		cfg.Kafka.NumPartitions,
		1, // replication factor
	); err != nil {
		fmt.Printf("Note: Topic creation failed (may already exist): %v\n", err)
	}

	// Create readings producer
	producer := queue.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicReadings)
	defer producer.Close()
	fmt.Println("Kafka producer initialized")

	seed := cfg.Simulator.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sensor := source.NewSimulated(cfg.Simulator.BaseTemp, cfg.Simulator.Step, seed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Poll the simulated sensor and publish each reading
	poller := source.NewPoller(sensor, cfg.Simulator.Interval, func(temp float64) {
		reading := &protocol.ReadingMessage{
			SensorID:    sensorID,
			SensorName:  cfg.Simulator.SensorName,
			Temperature: temp,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
			ReceivedAt:  time.Now().UTC(),
		}

		data, err := protocol.EncodeReadingMessage(reading)
		if err != nil {
			log.Printf("Failed to encode reading: %v", err)
			return
		}

		if err := producer.Publish(ctx, sensorID, data); err != nil {
			log.Printf("Failed to publish reading: %v", err)
			return
		}

		fmt.Printf("→ Published reading: %.2f°C\n", temp)
	})
	poller.Start(ctx)

	fmt.Println("\n✓ Sensor Simulator is running")
	fmt.Println("✓ Press Ctrl+C to stop")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nShutting down gracefully...")
	poller.Stop()
}
