package health

import (
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
	healthMongo "github.com/hellofresh/health-go/v5/checks/mongo"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/trendprints/storefront/internal/config"
)

const (
	componentName    = "trendprints-storefront"
	componentVersion = "1.0.0"
)

// storeCheck probes the document store selected by the storage driver.
func storeCheck(cfg *config.Config) health.Config {

	if cfg.Storage.Driver == config.DriverPostgres {
		return health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		}
	}

	return health.Config{
		Name:      "database",
		Timeout:   3 * time.Second,
		SkipOnErr: false,
		Check: healthMongo.New(healthMongo.Config{
			DSN:         cfg.Mongo.URI,
			TimeoutPing: 2 * time.Second,
		}),
	}
}

func NewHealthHandler(cfg *config.Config) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    componentName,
			Version: componentVersion,
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			storeCheck(cfg),
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
