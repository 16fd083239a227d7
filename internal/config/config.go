package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`
	JWTSecret          string `envconfig:"SUPABASE_JWT_SECRET" required:"true"`

	// GeminiAPIKey is the minimum required variable for the generation
	// workflow. It may also hold a Secret Manager resource name
	// (projects/.../secrets/.../versions/...), in which case the real key
	// is resolved at startup.
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY" required:"true"`

	// Object storage for generated image payloads.
	S3URL       string `envconfig:"SUPABASE_S3_URL" required:"true"`
	S3Bucket    string `envconfig:"SUPABASE_S3_BUCKET" required:"true"`
	S3Region    string `envconfig:"SUPABASE_S3_REGION" required:"true"`
	S3AccessKey string `envconfig:"SUPABASE_S3_ACCESS_KEY" required:"true"`
	S3SecretKey string `envconfig:"SUPABASE_S3_SECRET_KEY" required:"true"`

	// Pub/Sub settings. When GCPProjectID is empty, generation-completed
	// event publishing is disabled.
	GCPProjectID        string `envconfig:"GCP_PROJECT_ID"`
	GenerationDoneTopic string `envconfig:"GENERATION_DONE_TOPIC" default:"generation_completed"`

	// AdminEmail receives the admin role and seed credits at first login.
	AdminEmail string `envconfig:"ADMIN_EMAIL"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
