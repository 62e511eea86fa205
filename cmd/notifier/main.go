package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/oksasatya/employee-hierarchy-api/config"
	"github.com/oksasatya/employee-hierarchy-api/internal/infrastructure/messaging"
	"github.com/oksasatya/employee-hierarchy-api/pkg/helpers"
	"github.com/oksasatya/employee-hierarchy-api/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-notifier", cfg.Env)
	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; notifier disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmployeeQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if err := helpers.DeclareQueue(ch, cfg.RabbitMQEmployeeQueue); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEmployeeQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	notifier := messaging.NewNotifier(
		mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender),
		cfg.CompanyName,
		logger,
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			s := messaging.Settle(notifier.Handle(ctx, msg.Body), msg.Redelivered)
			if s.Ack {
				_ = msg.Ack(false)
				continue
			}
			if s.Delay > 0 {
				select {
				case <-ctx.Done():
				case <-time.After(s.Delay):
				}
			}
			_ = msg.Nack(false, s.Requeue)
		}
		close(done)
	}()

	logger.Infof("notifier listening on queue=%s", cfg.RabbitMQEmployeeQueue)
	<-stop
	logger.Info("shutting down...")
	cancel()
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
