package config

import (
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type (
	Bootstrap struct {
		Router         *chi.Mux
		MongoClient    *mongo.Client
		Redis          *redis.Client
		RabbitMQ       *amqp.Connection
		Logger         *zap.Logger
		DriverConfig   *DriverConfig
		InternalConfig *InternalConfig
	}

	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Logger   Logger
	}

	InternalConfig struct {
		App            App
		PaymentGateway PaymentGateway
		Calendar       Calendar
		PaymentWorker  PaymentWorker
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}

	App struct {
		Env             string
		Port            string
		Version         string
		BaseUrl         string
		EndpointPrefix  string
		MaxRequests     int
		ShutdownTimeout int
		RequestTimeout  int
	}
	PaymentGateway struct {
		BaseUrl    string
		SecretKey  string
		SuccessUrl string
		CancelUrl  string
		// MaxRequestsPerSecond throttles outbound session creation.
		MaxRequestsPerSecond int
	}
	Calendar struct {
		FreeBusyUrl string
		// TimeoutInSeconds bounds the busy-interval lookup so a slow calendar
		// degrades availability checks instead of stalling them.
		TimeoutInSeconds int
	}
	PaymentWorker struct {
		IntervalInSeconds int
		BatchSize         int
		MaxAttempts       int
		// DrainQuotaPerMinute caps confirmations applied per fixed window.
		DrainQuotaPerMinute int
	}
)
