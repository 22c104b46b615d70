package config

import (
	"lessonbook-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "lessonbook"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:             utils.GetEnvString("APP_ENV", "development"),
			Port:            utils.GetEnvString("APP_PORT", ":8080"),
			Version:         utils.GetEnvString("APP_VERSION", "v1"),
			BaseUrl:         utils.GetEnvString("APP_BASE_URL", "http://localhost:8080"),
			EndpointPrefix:  utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:     utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeout: utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestTimeout:  utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
		},
		PaymentGateway: PaymentGateway{
			BaseUrl:              utils.GetEnvString("STRIPE_BASE_URL", "https://api.stripe.com"),
			SecretKey:            utils.GetEnvString("STRIPE_SECRET_KEY", ""),
			SuccessUrl:           utils.GetEnvString("STRIPE_SUCCESS_URL", "http://localhost:8080/student/success"),
			CancelUrl:            utils.GetEnvString("STRIPE_CANCEL_URL", "http://localhost:8080/student"),
			MaxRequestsPerSecond: utils.GetEnvInt("STRIPE_MAX_REQUESTS_PER_SECOND", 5),
		},
		Calendar: Calendar{
			FreeBusyUrl:      utils.GetEnvString("CALENDAR_FREEBUSY_URL", "https://www.googleapis.com/calendar/v3/freeBusy"),
			TimeoutInSeconds: utils.GetEnvInt("CALENDAR_TIMEOUT_IN_SECONDS", 5),
		},
		PaymentWorker: PaymentWorker{
			IntervalInSeconds:   utils.GetEnvInt("PAYMENT_WORKER_INTERVAL_IN_SECONDS", 5),
			BatchSize:           utils.GetEnvInt("PAYMENT_WORKER_BATCH_SIZE", 10),
			MaxAttempts:         utils.GetEnvInt("PAYMENT_WORKER_MAX_ATTEMPTS", 5),
			DrainQuotaPerMinute: utils.GetEnvInt("PAYMENT_WORKER_DRAIN_QUOTA_PER_MINUTE", 120),
		},
	}
}
