//go:build integration

// Package containerrunner manages the shared Neo4j container used by the
// integration tests.
package containerrunner

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/neo4j/neo4j-go-driver/v6/neo4j"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/neo4j/graph-agent/internal/config"
)

var (
	container testcontainers.Container
	driver    neo4j.Driver
	once      sync.Once
)

// Start initializes the shared container and driver. Safe to call from any
// number of test packages; the work happens once.
func Start(ctx context.Context) {
	once.Do(func() {
		startOnce(ctx)
	})
}

// GetDriver returns the driver bound to the shared container.
func GetDriver() neo4j.Driver {
	if driver == nil {
		log.Fatal("driver is not initialized")
	}
	return driver
}

func startOnce(ctx context.Context) {
	ctr, boltURI, err := createNeo4jContainer(ctx)
	if err != nil {
		log.Fatalf("failed to start shared neo4j container: %v", err)
	}
	container = ctr

	username := config.GetEnvWithDefault("NEO4J_USERNAME", "neo4j")
	password := config.GetEnvWithDefault("NEO4J_PASSWORD", "password")

	drv, err := neo4j.NewDriver(boltURI, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		_ = ctr.Terminate(ctx)
		log.Fatalf("failed to create driver: %v", err)
	}
	driver = drv

	if err := waitForConnectivity(ctx, ctr); err != nil {
		Close(ctx)
		log.Fatalf("failed to verify connectivity: %v", err)
	}
}

// Close cleans up the shared container and driver.
func Close(ctx context.Context) {
	if driver != nil {
		if err := driver.Close(ctx); err != nil {
			log.Printf("Warning: failed to close driver: %v", err)
		}
	}
	if container != nil {
		if err := container.Terminate(ctx); err != nil {
			log.Printf("Warning: failed to terminate container: %v", err)
		}
	}
}

func createNeo4jContainer(ctx context.Context) (testcontainers.Container, string, error) {
	req := testcontainers.ContainerRequest{
		Image:        config.GetEnvWithDefault("NEO4J_IMAGE", "neo4j:5.24.2-community"),
		ExposedPorts: []string{"7687/tcp"},
		Env: map[string]string{
			"NEO4J_AUTH": fmt.Sprintf("%s/%s",
				config.GetEnvWithDefault("NEO4J_USERNAME", "neo4j"),
				config.GetEnvWithDefault("NEO4J_PASSWORD", "password")),
			"NEO4JLABS_PLUGINS": config.GetEnvWithDefault("NEO4JLABS_PLUGINS", `["apoc"]`),
		},
		WaitingFor: wait.ForListeningPort("7687/tcp").WithStartupTimeout(119 * time.Second),
	}

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, "", err
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		_ = ctr.Terminate(ctx)
		return nil, "", err
	}

	port, err := ctr.MappedPort(ctx, "7687/tcp")
	if err != nil {
		_ = ctr.Terminate(ctx)
		return nil, "", err
	}

	return ctr, fmt.Sprintf("bolt://%s:%s", host, port.Port()), nil
}

// waitForConnectivity waits for Neo4j connectivity with exponential backoff.
func waitForConnectivity(ctx context.Context, ctr testcontainers.Container) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	backoff := 100 * time.Millisecond
	maxBackoff := 2 * time.Second

	var lastErr error
	for {
		err := driver.VerifyConnectivity(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}

		time.Sleep(backoff)
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	var logs string
	if ctr != nil {
		rc, err := ctr.Logs(context.Background())
		if err == nil && rc != nil {
			b, rerr := io.ReadAll(rc)
			_ = rc.Close()
			if rerr == nil {
				logs = string(b)
			}
		}
	}

	if logs != "" {
		return fmt.Errorf("neo4j connectivity not ready: %v\ncontainer logs:\n%s", lastErr, logs)
	}
	return fmt.Errorf("neo4j connectivity not ready: %v", lastErr)
}
