// This file is a helper for running tests with testcontainers.
// It is used by the integration tests and by the standalone testcontainers runner.
// Expects environment variables to be loaded from .env files.
//

package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

type TestContainers struct {
	Network        *testcontainers.DockerNetwork
	DBContainer    testcontainers.Container
	RedisContainer testcontainers.Container
	AppContainer   testcontainers.Container
}

func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.AppContainer != nil {
		if err := tc.AppContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate app: %v", err)
		}
	}
	if tc.RedisContainer != nil {
		if err := tc.RedisContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate Redis: %v", err)
		}
	}
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate MariaDB: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

func CreateAllTestContainers(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	testContainers := &TestContainers{}

	// Create a network
	nw, err := network.New(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to create network")
	}
	testContainers.Network = nw
	networkName := nw.Name

	// Create and start the Database container
	dbNetworkName := os.Getenv("DB_HOST")
	tcpDbPort, err := nat.NewPort("tcp", os.Getenv("DB_PORT"))
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to create DB port")
	}
	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("DB_IMAGE"),
			ExposedPorts: []string{string(tcpDbPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": os.Getenv("DB_ROOT_PASSWORD"),
				"MYSQL_DATABASE":      os.Getenv("DB_DATABASE"),
				"MYSQL_USER":          os.Getenv("DB_USER"),
				"MYSQL_PASSWORD":      os.Getenv("DB_PASSWORD"),
			},
			WaitingFor: wait.ForListeningPort(tcpDbPort).WithStartupTimeout(60 * time.Second),
			Networks:   []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {dbNetworkName},
			},
		},
		Started: true,
	})
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start Database")
	}
	testContainers.DBContainer = dbContainer

	// Initialize the database
	dbHost, _ := dbContainer.Host(ctx)
	dbPort, _ := dbContainer.MappedPort(ctx, tcpDbPort)
	if err := performMySqlDBInit(t, testContainers, dbHost, dbPort); err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to initialize database")
	}

	// Create and start the Redis container
	redisNetworkName := "redis"
	tcpRedisPort, err := nat.NewPort("tcp", "6379")
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to create Redis port")
	}
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("REDIS_IMAGE"),
			ExposedPorts: []string{string(tcpRedisPort)},
			WaitingFor:   wait.ForListeningPort(tcpRedisPort).WithStartupTimeout(30 * time.Second),
			Networks:     []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {redisNetworkName},
			},
		},
		Started: true,
	})
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start Redis")
	}
	testContainers.RedisContainer = redisContainer

	redisHost, _ := redisContainer.Host(ctx)
	redisPort, _ := redisContainer.MappedPort(ctx, tcpRedisPort)
	logMessage(t, "REDIS_ADDR=%s:%s", redisHost, redisPort.Port())

	imageName := "author-clock-test:latest"

	// Check if image exists
	imageExists, err := imageExists(ctx, imageName)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to check if image exists")
	}

	appPortNumber := os.Getenv("PORT")
	tcpAppPort, err := nat.NewPort("tcp", appPortNumber)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to create app port")
	}

	// Create app container request (we add to it later)
	appContainerRequest := testcontainers.ContainerRequest{
		ExposedPorts: []string{string(tcpAppPort)},
		Env: map[string]string{
			"DB_TYPE":             "mariadb",
			"DB_HOST":             dbNetworkName,
			"DB_PORT":             os.Getenv("DB_PORT"),
			"DB_DATABASE":         os.Getenv("DB_DATABASE"),
			"DB_USER":             os.Getenv("DB_USER"),
			"DB_PASSWORD":         os.Getenv("DB_PASSWORD"),
			"DB_CONNECTION_LIMIT": os.Getenv("DB_CONNECTION_LIMIT"),
			"REDIS_ADDR":          fmt.Sprintf("%s:6379", redisNetworkName),
			"PORT":                appPortNumber,
		},
		WaitingFor: wait.ForHTTP("/metrics").WithPort(tcpAppPort).WithStartupTimeout(30 * time.Second),
		Networks:   []string{networkName},
	}

	if !imageExists {
		resourceReaperSessionID := uuid.New().String()
		buildArgs := map[string]*string{
			"RESOURCE_REAPER_SESSION_ID": &resourceReaperSessionID,
		}

		buildContext := os.Getenv("TESTCONTAINERS_BUILD_CONTEXT")
		if buildContext == "" {
			buildContext = "../.."
		}

		logMessage(t, "Image %s does not exist, building...", imageName)
		imageNameParts := strings.Split(imageName, ":")
		appContainerRequest.FromDockerfile = testcontainers.FromDockerfile{
			Context:       buildContext,
			Dockerfile:    "Dockerfile",
			Repo:          imageNameParts[0],
			Tag:           imageNameParts[1],
			KeepImage:     true, // Keep the image so we can reuse it
			BuildArgs:     buildArgs,
			PrintBuildLog: true,
		}
	} else {
		// Reuse the existing image
		logMessage(t, "Image %s exists, reusing...", imageName)
		appContainerRequest.Image = imageName
	}

	// Create and start the app container
	appContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: appContainerRequest,
		Started:          true,
	})
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start author-clock")
	}
	testContainers.AppContainer = appContainer

	// Log the localhost and mapped ports for test processes
	appHost, _ := appContainer.Host(ctx)
	appPort, _ := appContainer.MappedPort(ctx, tcpAppPort)
	logMessage(t, "BASE_URL=%s:%s", appHost, appPort.Port())

	logMessage(t, "author-clock testcontainer started successfully")
	return testContainers, nil
}

// AppBaseURL returns the host-mapped base URL of the running app container.
func (tc *TestContainers) AppBaseURL(ctx context.Context) (string, error) {
	if tc.AppContainer == nil {
		return "", fmt.Errorf("app container is not running")
	}
	tcpAppPort, err := nat.NewPort("tcp", os.Getenv("PORT"))
	if err != nil {
		return "", err
	}
	host, err := tc.AppContainer.Host(ctx)
	if err != nil {
		return "", err
	}
	mapped, err := tc.AppContainer.MappedPort(ctx, tcpAppPort)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("http://%s:%s", host, mapped.Port()), nil
}

func performMySqlDBInit(t *testing.T, testContainers *TestContainers, dbHost string, dbPort nat.Port) error {
	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/", os.Getenv("DB_ROOT_PASSWORD"), dbHost, dbPort.Port()))
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to connect to MariaDB for setup")
	}
	defer db.Close()

	// Wait for connection to be really ready
	for i := 0; i < 30; i++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "MariaDB not ready after 30 seconds")
	}

	_, err = db.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", os.Getenv("DB_DATABASE")))
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, fmt.Sprintf("Failed to create %s", os.Getenv("DB_DATABASE")))
	}
	_, err = db.Exec(fmt.Sprintf("CREATE USER IF NOT EXISTS '%s'@'%%' IDENTIFIED BY '%s'", os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD")))
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, fmt.Sprintf("Failed to create user %s", os.Getenv("DB_USER")))
	}
	_, err = db.Exec(fmt.Sprintf("GRANT ALL PRIVILEGES ON %s.* TO '%s'@'%%'", os.Getenv("DB_DATABASE"), os.Getenv("DB_USER")))
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, fmt.Sprintf("Failed to grant privileges for %s", os.Getenv("DB_DATABASE")))
	}
	_, err = db.Exec("FLUSH PRIVILEGES")
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, fmt.Sprintf("Failed to flush privileges for %s", os.Getenv("DB_DATABASE")))
	}

	return nil
}

func imageExists(ctx context.Context, imageName string) (bool, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false, err
	}
	defer cli.Close()

	images, err := cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, err
	}

	for _, image := range images {
		for _, tag := range image.RepoTags {
			if tag == imageName {
				return true, nil
			}
		}
	}

	return false, nil
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
