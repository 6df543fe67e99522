// Package repository opens the settings store selected in configuration.
// Each backend lives in its own subpackage.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ignite/email-domain-filter/internal/config"
	"github.com/ignite/email-domain-filter/internal/repository/dynamo"
	"github.com/ignite/email-domain-filter/internal/repository/memory"
	"github.com/ignite/email-domain-filter/internal/repository/postgres"
	redisstore "github.com/ignite/email-domain-filter/internal/repository/redis"
	"github.com/ignite/email-domain-filter/internal/repository/s3store"
	"github.com/ignite/email-domain-filter/internal/service/settings"
	backend "github.com/redis/go-redis/v9"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// ErrUnknownBackend is returned for a settings.backend value Open does not know.
var ErrUnknownBackend = errors.New("unknown settings backend")

// Store is an opened settings repository plus the function that releases
// its connections.
type Store struct {
	Repo    settings.Repository
	Backend string
	close   func() error
}

// Close releases the backend's connections.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open builds the repository named by cfg.Backend. Connections are lazy;
// use settings.Service.Ping to verify them.
func Open(ctx context.Context, cfg config.SettingsConfig) (*Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return &Store{Repo: memory.NewSettingsRepo(), Backend: "memory"}, nil

	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, errors.New("settings.database_url is required for the postgres backend")
		}
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("opening postgres: %w", err)
		}
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(2)
		return &Store{Repo: postgres.NewSettingsRepo(db), Backend: cfg.Backend, close: db.Close}, nil

	case "redis":
		if cfg.RedisURL == "" {
			return nil, errors.New("settings.redis_url is required for the redis backend")
		}
		var client *backend.Client
		opts, err := backend.ParseURL(cfg.RedisURL)
		if err != nil {
			client = backend.NewClient(&backend.Options{Addr: cfg.RedisURL})
		} else {
			client = backend.NewClient(opts)
		}
		return &Store{
			Repo:    redisstore.NewSettingsRepo(client, cfg.RedisHashKey),
			Backend: cfg.Backend,
			close:   client.Close,
		}, nil

	case "dynamodb":
		if cfg.DynamoDBTable == "" {
			return nil, errors.New("settings.dynamodb_table is required for the dynamodb backend")
		}
		awsCfg, err := loadAWSConfig(ctx, cfg.AWSRegion, cfg.GetAWSProfile())
		if err != nil {
			return nil, err
		}
		return &Store{
			Repo:    dynamo.NewSettingsRepo(dynamodb.NewFromConfig(awsCfg), cfg.DynamoDBTable),
			Backend: cfg.Backend,
		}, nil

	case "s3":
		if cfg.S3Bucket == "" {
			return nil, errors.New("settings.s3_bucket is required for the s3 backend")
		}
		awsCfg, err := loadAWSConfig(ctx, cfg.AWSRegion, cfg.GetAWSProfile())
		if err != nil {
			return nil, err
		}
		return &Store{
			Repo:    s3store.NewSettingsRepo(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Prefix),
			Backend: cfg.Backend,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}

func loadAWSConfig(ctx context.Context, region, profile string) (aws.Config, error) {
	var cfg aws.Config
	var err error

	if profile != "" {
		cfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(region),
			awsconfig.WithSharedConfigProfile(profile),
		)
	} else {
		cfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(region),
		)
	}
	if err != nil {
		return aws.Config{}, fmt.Errorf("loading AWS config: %w", err)
	}
	return cfg, nil
}
