package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Debug                    bool   `envconfig:"debug"`
	Port                     int    `envconfig:"port" default:"5000"`
	Env                      string `envconfig:"env"`
	PostgresHost             string `envconfig:"postgres_host"`
	PostgresPort             int    `envconfig:"postgres_port"`
	PostgresUser             string `envconfig:"postgres_user"`
	PostgresPassword         string `envconfig:"postgres_password"`
	PostgresDB               string `envconfig:"postgres_db"`
	JWTSecret                string `envconfig:"jwt_secret"`
	GoogleClientID           string `envconfig:"google_client_id"`
	GoogleClientSecret       string `envconfig:"google_client_secret"`
	GoogleRedirectURL        string `envconfig:"google_redirect_url"`
	DashboardURL             string `envconfig:"dashboard_url"`
	MailgunApiKey            string `envconfig:"mg_public_api_key"`
	MgDomain                 string `envconfig:"mg_domain"`
	MgEmailFrom              string `envconfig:"email_from"`
	AwsRegion                string `envconfig:"aws_region"`
	AwsAccessKeyID           string `envconfig:"aws_access_key_id"`
	AwsSecretAccessKey       string `envconfig:"aws_secret_access_key"`
	AwsBucket                string `envconfig:"aws_bucket"`
	FirebaseCredentialsFile  string `envconfig:"firebase_credentials_file"`
	AccessControlAllowOrigin string `envconfig:"access_control_allow_origin"`
}

func Load() (*Config, error) {
	env := os.Getenv("GIN_MODE")
	if env != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	err := envconfig.Process("adminpanel", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
