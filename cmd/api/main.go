package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/panchhi-sarees/storefront-api/internal/config"
	"github.com/panchhi-sarees/storefront-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/panchhi-sarees/storefront-api/internal/infrastructure/jwt"
	"github.com/panchhi-sarees/storefront-api/internal/infrastructure/mail"
	rzp "github.com/panchhi-sarees/storefront-api/internal/infrastructure/razorpay"
	redisinfra "github.com/panchhi-sarees/storefront-api/internal/infrastructure/redis"
	s3infra "github.com/panchhi-sarees/storefront-api/internal/infrastructure/s3"
	"github.com/panchhi-sarees/storefront-api/internal/infrastructure/sns"
	transporthttp "github.com/panchhi-sarees/storefront-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional — graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// S3 image store for product photos.
	s3Client := s3infra.NewClient(cfg)
	imageStore := s3infra.NewImageStore(s3Client, cfg.S3BucketName, cfg.AWSRegion)

	// SMTP mailer for signup codes and order notifications.
	mailer := mail.NewMailer(cfg)

	// SNS SMS sender (optional — graceful fallback).
	var smsSender sns.SMSSender
	if cfg.SNSEnabled {
		if sender, err := sns.NewSender(cfg); err == nil {
			smsSender = sender
		} else {
			log.Printf("WARN: SNS sender not available: %v", err)
		}
	}

	// Redis-backed signup code limiter. A nil limiter allows everything.
	var sendLimiter *redisinfra.SendLimiter
	if rc := redisinfra.NewClient(cfg); rc != nil {
		sendLimiter = redisinfra.NewSendLimiter(rc, cfg.OTPSendWindow, cfg.OTPSendMax)
	} else {
		log.Println("WARN: Redis not configured, signup code limiter disabled")
	}

	deps := &transporthttp.Deps{
		CustomerRepo: dynamo.NewCustomerRepo(dynamoClient, cfg.DynamoTables.Customers),
		AdminRepo:    dynamo.NewAdminRepo(dynamoClient, cfg.DynamoTables.Admins),
		SignupRepo:   dynamo.NewSignupRepo(dynamoClient, cfg.DynamoTables.Signups),
		ProductRepo:  dynamo.NewProductRepo(dynamoClient, cfg.DynamoTables.Products),
		OrderRepo:    dynamo.NewOrderRepo(dynamoClient, cfg.DynamoTables.Orders),
		ImageStore:   imageStore,
		Mailer:       mailer,
		SMSSender:    smsSender,
		JWTProvider:  jwtProvider,
		SendLimiter:  sendLimiter,
		Gateway:      rzp.NewGateway(cfg),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
