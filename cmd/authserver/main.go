package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"authsdk/cfg"
	"authsdk/pkg/cache"
	"authsdk/pkg/idgen"
	"authsdk/pkg/logger"
	"authsdk/pkg/oauth2"
	"authsdk/pkg/passkey"

	_ "authsdk/api" // swagger docs

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func main() {
	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// Otel
	// ============
	shutdownOtel, err := initOtel(context.Background(), &config.Observability, zlogger)
	if err != nil {
		log.Printf("WARNING: failed to initialize OpenTelemetry: %v", err)
		log.Fatal()
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOtel(ctx); err != nil {
				log.Printf("failed to shutdown OpenTelemetry: %v", err)
			}
		}()
	}

	// ============
	// Cache
	// ============
	redisAddr := config.Redis.Host + ":" + config.Redis.Port
	store := cache.NewRedisCache(redisAddr, config.Redis.Password)

	// ============
	// Oauth2
	// ============
	oauth2mgr, err := oauth2.NewManager(context.Background(), &config.OAuth2, store, zlogger)
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// Passkey
	// ============
	passkeyHandler, err := passkey.NewHandler(passkey.DefaultConfig(), passkey.NewInMemoryStorage(), oauth2mgr.Sessions())
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// Request IDs
	// ============
	requestIDs, err := idgen.NewSnowflakeGenerator(1)
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// HTTP
	// ============
	r := gin.Default()
	r.Use(otelgin.Middleware(config.Observability.ServiceName))
	r.Use(RequestLoggerMiddleware(zlogger, requestIDs))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := r.Group("/auth")
	{
		auth.GET("/login/:provider", oauth2.AuthHandler(oauth2mgr))
		auth.GET("/callback/:provider", oauth2.CallbackHandler(oauth2mgr))
	}

	protected := r.Group("/auth")
	protected.Use(oauth2.AuthMiddleware(oauth2mgr))
	{
		protected.GET("/me", oauth2.MeHandler(oauth2mgr))
		protected.GET("/refresh", oauth2.RefreshTokenHandler(oauth2mgr))
		protected.GET("/logout", oauth2.LogoutHandler(oauth2mgr))
	}

	passkeyHandler.RegisterRoutes(r)

	if err := r.Run(config.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// RequestLoggerMiddleware assigns a request ID and logs the request with
// trace correlation when a span is active
func RequestLoggerMiddleware(log logger.Logger, ids idgen.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := ids.RequestID()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		fields := []logger.Field{
			{Key: "request_id", Value: requestID},
			{Key: "method", Value: c.Request.Method},
			{Key: "path", Value: c.Request.URL.Path},
		}

		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			fields = append(fields,
				logger.Field{Key: "trace_id", Value: span.SpanContext().TraceID().String()},
				logger.Field{Key: "span_id", Value: span.SpanContext().SpanID().String()},
			)
		}

		log.Info("incoming request", fields...)

		c.Next()

		log.Info("request completed",
			append(fields, logger.Field{Key: "status", Value: c.Writer.Status()})...)
	}
}

// initOtel initializes OpenTelemetry tracer and meter with OTLP exporter
func initOtel(ctx context.Context, config *cfg.ObservabilityConfig, log logger.Logger) (func(context.Context) error, error) {
	conn, err := grpc.NewClient(
		config.OTLPEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to collector: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	metricExporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.DeploymentEnvironment(config.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	mp := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(metricExporter)),
		metric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	log.Info("OpenTelemetry initialized - sending to OTLP collector",
		logger.Field{Key: "otlp_endpoint", Value: config.OTLPEndpoint},
	)

	shutdown := func(ctx context.Context) error {
		var errs []error

		if err := tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown failed: %w", err))
		}

		if err := mp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown failed: %w", err))
		}

		if len(errs) > 0 {
			return fmt.Errorf("otel shutdown errors: %v", errs)
		}
		return nil
	}

	return shutdown, nil
}
