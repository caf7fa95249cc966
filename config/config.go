package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServicePort      string
	MetricsPort      string
	Environment      string
	JWTSecret        string
	MongoDBConfig    MongoDBConfig
	KafkaConfig      KafkaConfig
	TracingConfig    TracingConfig
	SMTPConfig       SMTPConfig
	DefaultProject   string
	ProjectRedirects map[string]string
}

type MongoDBConfig struct {
	DBHost string
	DBPort string
	DBName string
}

type KafkaConfig struct {
	BrokerAddress   string
	UserTopic       string
	ProductTopic    string
	BrokerPartition int
}

type TracingConfig struct {
	CollectorHost string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort: os.Getenv("SERVICE_PORT"),
		MetricsPort: os.Getenv("METRICS_PORT"),
		Environment: os.Getenv("ENVIRONMENT"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		MongoDBConfig: MongoDBConfig{
			DBHost: os.Getenv("DB_HOST"),
			DBPort: os.Getenv("DB_PORT"),
			DBName: os.Getenv("DB_NAME"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			UserTopic:     os.Getenv("BROKER_USER_TOPIC"),
			ProductTopic:  os.Getenv("BROKER_PRODUCT_TOPIC"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		SMTPConfig: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Sender:   os.Getenv("SMTP_SENDER"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		DefaultProject:   os.Getenv("DEFAULT_PROJECT"),
		ProjectRedirects: parseProjectRedirects(os.Getenv("PROJECT_REDIRECTS")),
	}

	brokerPartition, err := strconv.Atoi(os.Getenv("BROKER_PARTITION"))
	if err == nil {
		conf.KafkaConfig.BrokerPartition = brokerPartition
	}

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err == nil {
		conf.SMTPConfig.Port = smtpPort
	}

	if conf.DefaultProject == "" {
		conf.DefaultProject = "storefront"
	}

	return &conf
}

// parseProjectRedirects reads a "project=url" comma separated list. The
// login flow looks up the redirect target for the requested project here,
// so every authorized project needs an entry.
func parseProjectRedirects(raw string) map[string]string {
	redirects := map[string]string{
		"storefront": "/home",
		"admin":      "/admin/dashboard",
	}

	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}

		project := strings.TrimSpace(parts[0])
		url := strings.TrimSpace(parts[1])
		if project == "" || url == "" {
			continue
		}

		redirects[project] = url
	}

	return redirects
}
