package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/codecourt/judge-engine/config"
	kafkalib "github.com/codecourt/judge-engine/kafka"
	"github.com/codecourt/judge-engine/metrics"
	"github.com/codecourt/judge-engine/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	judgingService, err := service.NewJudgingService(cfg)
	if err != nil {
		log.Fatalf("failed to create judging service: %v", err)
	}
	defer judgingService.Close()

	consumer, err := kafkalib.NewConsumer(cfg)
	if err != nil {
		log.Fatalf("failed to create Kafka consumer: %v", err)
	}
	defer consumer.Close()

	producer, err := kafkalib.NewProducer(cfg)
	if err != nil {
		log.Fatalf("failed to create Kafka producer: %v", err)
	}
	defer producer.Close()

	metrics.RegisterServiceInfo("judge-engine", "dev", "", "")

	mux := http.NewServeMux()
	metrics.SetupMetricsEndpoint(mux)
	go func() {
		if err := http.ListenAndServe(":9090", mux); err != nil {
			log.Printf("metrics server stopped: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go judgingService.ProcessSubmissions(ctx, consumer, producer)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	log.Printf("received signal %v, shutting down", sig)
}
