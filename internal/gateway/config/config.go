package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	MetricsAddr string
	Env         string
	Blob        BlobConfig
	DatabaseDSN string
	LLM         LLMConfig
}

type BlobConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type LLMConfig struct {
	OpenRouterKey   string
	OpenRouterModel string
	GeminiKey       string
	GeminiModel     string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8080", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:        *port,
		MetricsAddr: firstNonEmpty(strings.TrimSpace(os.Getenv("METRICS_ADDR")), ":9090"),
		Env:         env,
		Blob:        loadBlobConfig(env),
		DatabaseDSN: strings.TrimSpace(os.Getenv("DATABASE_DSN")),
		LLM: LLMConfig{
			OpenRouterKey:   firstNonEmpty(strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")), strings.TrimSpace(os.Getenv("DEEPSEEK_API_KEY"))),
			OpenRouterModel: firstNonEmpty(strings.TrimSpace(os.Getenv("OPENROUTER_MODEL")), "deepseek/deepseek-chat:free"),
			GeminiKey:       strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
			GeminiModel:     firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_MODEL")), "gemini-2.0-flash"),
		},
	}, nil
}

func loadBlobConfig(env string) BlobConfig {
	endpoint := resolveBlobEndpoint(env)
	return BlobConfig{
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("BLOB_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("BLOB_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("BLOB_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("BLOB_S3_BUCKET")), "stixify-documents"),
		UseSSL:    resolveBlobUseSSL(env),
	}
}

func resolveBlobEndpoint(env string) string {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return firstNonEmpty(strings.TrimSpace(os.Getenv("BLOB_MINIO_ENDPOINT")), "minio:9000")
	}
	return strings.TrimSpace(os.Getenv("BLOB_S3_ENDPOINT"))
}

func resolveBlobUseSSL(env string) bool {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return false
	}
	raw := strings.TrimSpace(os.Getenv("BLOB_S3_USE_SSL"))
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
