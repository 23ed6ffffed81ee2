package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwise/go-tripgraph/pkg/config"
)

// clearConnectionEnv keeps inherited NEO4J_* variables from leaking
// into Load during a test run.
func clearConnectionEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"NEO4J_URI", "NEO4J_USER", "NEO4J_PASSWORD", "NEO4J_DATABASE"} {
		t.Setenv(key, "")
	}
}

func writeCredentials(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCredentialsFile(t *testing.T) {
	path := writeCredentials(t, `# connection settings
URI = bolt://localhost:7687
USERNAME=neo4j
PASSWORD=s3cr=et
this line has no separator
PASSWORD=final

  DATABASE  =  trips
`)

	creds, err := config.ParseCredentialsFile(path)
	require.NoError(t, err)

	assert.Equal(t, "bolt://localhost:7687", creds["URI"])
	assert.Equal(t, "neo4j", creds["USERNAME"])
	assert.Equal(t, "final", creds["PASSWORD"], "a repeated key keeps its last value")
	assert.Equal(t, "trips", creds["DATABASE"])
	assert.NotContains(t, creds, "this line has no separator")
}

func TestParseCredentialsFileValueKeepsSeparators(t *testing.T) {
	path := writeCredentials(t, "PASSWORD=a=b=c\n")

	creds, err := config.ParseCredentialsFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a=b=c", creds["PASSWORD"])
}

func TestParseCredentialsFileMissing(t *testing.T) {
	_, err := config.ParseCredentialsFile(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read credentials file")
}

func TestLoadDefaults(t *testing.T) {
	clearConnectionEnv(t)
	path := writeCredentials(t, `URI=bolt://localhost:7687
USERNAME=neo4j
PASSWORD=password
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bolt://localhost:7687", cfg.Database.URI)
	assert.Equal(t, "neo4j", cfg.Database.Username)
	assert.Equal(t, "password", cfg.Database.Password)
	assert.Empty(t, cfg.Database.Database)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ".", cfg.Data.Dir)
	assert.Equal(t, "users.csv", cfg.Data.TravellersFile)
	assert.Equal(t, "hotels.csv", cfg.Data.HotelsFile)
	assert.Equal(t, "reviews.csv", cfg.Data.ReviewsFile)
	assert.Equal(t, "visa.csv", cfg.Data.VisaFile)
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	clearConnectionEnv(t)
	path := writeCredentials(t, `URI=bolt://localhost:7687
USERNAME=neo4j
PASSWORD=password
TIMEOUT=30
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	clearConnectionEnv(t)
	_, err := config.Load(filepath.Join(t.TempDir(), "config.txt"))
	require.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearConnectionEnv(t)
	path := writeCredentials(t, `URI=bolt://file:7687
USERNAME=fileuser
PASSWORD=filepass
DATABASE=filedb
`)

	t.Setenv("NEO4J_URI", "neo4j://env:7687")
	t.Setenv("NEO4J_USER", "envuser")
	t.Setenv("NEO4J_PASSWORD", "envpass")
	t.Setenv("NEO4J_DATABASE", "envdb")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "neo4j://env:7687", cfg.Database.URI)
	assert.Equal(t, "envuser", cfg.Database.Username)
	assert.Equal(t, "envpass", cfg.Database.Password)
	assert.Equal(t, "envdb", cfg.Database.Database)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{
			name: "complete",
			cfg: config.Config{Database: config.DatabaseConfig{
				URI: "bolt://localhost:7687", Username: "neo4j", Password: "password",
			}},
		},
		{
			name:    "missing uri",
			cfg:     config.Config{Database: config.DatabaseConfig{Username: "neo4j", Password: "password"}},
			wantErr: "URI is required",
		},
		{
			name:    "missing username",
			cfg:     config.Config{Database: config.DatabaseConfig{URI: "bolt://localhost:7687", Password: "password"}},
			wantErr: "USERNAME is required",
		},
		{
			name:    "missing password",
			cfg:     config.Config{Database: config.DatabaseConfig{URI: "bolt://localhost:7687", Username: "neo4j"}},
			wantErr: "PASSWORD is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDataConfigPaths(t *testing.T) {
	data := config.DataConfig{
		Dir:            "/srv/data",
		TravellersFile: "users.csv",
		HotelsFile:     "hotels.csv",
		ReviewsFile:    "reviews.csv",
		VisaFile:       "visa.csv",
	}

	assert.Equal(t, filepath.Join("/srv/data", "users.csv"), data.TravellersPath())
	assert.Equal(t, filepath.Join("/srv/data", "hotels.csv"), data.HotelsPath())
	assert.Equal(t, filepath.Join("/srv/data", "reviews.csv"), data.ReviewsPath())
	assert.Equal(t, filepath.Join("/srv/data", "visa.csv"), data.VisaPath())
}
