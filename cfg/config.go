package cfg

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type OAuth2Config struct {
	Facebook          ProviderConfig
	Github            ProviderConfig
	Google            ProviderConfig
	StateTTLMinutes   int
	SessionTTLMinutes int
}

type ObservabilityConfig struct {
	ServiceName  string
	Environment  string
	OTLPEndpoint string
}

type Config struct {
	AppEnv        string
	ListenAddr    string
	Redis         RedisConfig
	OAuth2        OAuth2Config
	Observability ObservabilityConfig
}

func Load() (*Config, error) {
	var errs []error

	err := godotenv.Load()
	if err != nil {
		return nil, errors.New("failed load cfg: " + err.Error())
	}

	appEnv := mustEnv("APP_ENV", &errs)
	listenAddr := envOrDefault("LISTEN_ADDR", ":8080")

	redisHost := mustEnv("REDIS_HOST", &errs)
	redisPort := mustEnv("REDIS_PORT", &errs)
	redisPassword := mustEnv("REDIS_PASSWORD", &errs)

	facebookClientID := os.Getenv("FACEBOOK_CLIENT_ID")
	facebookClientSecret := os.Getenv("FACEBOOK_CLIENT_SECRET")
	facebookRedirectURL := os.Getenv("FACEBOOK_REDIRECT_URL")

	githubClientID := os.Getenv("GITHUB_CLIENT_ID")
	githubClientSecret := os.Getenv("GITHUB_CLIENT_SECRET")
	githubRedirectURL := os.Getenv("GITHUB_REDIRECT_URL")

	googleClientID := os.Getenv("GOOGLE_CLIENT_ID")
	googleClientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	googleRedirectURL := os.Getenv("GOOGLE_REDIRECT_URL")

	stateTTLMinutes, err := strconv.Atoi(envOrDefault("STATE_TTL_MINUTES", "10"))
	if err != nil {
		errs = append(errs, errors.New("conversion failed env: "+"STATE_TTL_MINUTES"))
	}

	sessionTTLMinutes, err := strconv.Atoi(envOrDefault("SESSION_TTL_MINUTES", "1440"))
	if err != nil {
		errs = append(errs, errors.New("conversion failed env: "+"SESSION_TTL_MINUTES"))
	}

	serviceName := envOrDefault("OTEL_SERVICE_NAME", "authserver")
	otlpEndpoint := envOrDefault("OTLP_ENDPOINT", "localhost:4317")

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:     appEnv,
		ListenAddr: listenAddr,
		Redis: RedisConfig{
			Host:     redisHost,
			Port:     redisPort,
			Password: redisPassword,
		},
		OAuth2: OAuth2Config{
			Facebook: ProviderConfig{
				ClientID:     facebookClientID,
				ClientSecret: facebookClientSecret,
				RedirectURL:  facebookRedirectURL,
			},
			Github: ProviderConfig{
				ClientID:     githubClientID,
				ClientSecret: githubClientSecret,
				RedirectURL:  githubRedirectURL,
			},
			Google: ProviderConfig{
				ClientID:     googleClientID,
				ClientSecret: googleClientSecret,
				RedirectURL:  googleRedirectURL,
			},
			StateTTLMinutes:   stateTTLMinutes,
			SessionTTLMinutes: sessionTTLMinutes,
		},
		Observability: ObservabilityConfig{
			ServiceName:  serviceName,
			Environment:  appEnv,
			OTLPEndpoint: otlpEndpoint,
		},
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}

func envOrDefault(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	return value
}
