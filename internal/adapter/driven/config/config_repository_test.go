package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigFile_TOML(t *testing.T) {
	path := writeTempConfig(t, "accounts.toml", `
collection_period_days = 14

[[accounts]]
name = "prod"
region = "us-east-1"
aws_access_key_id = "AKIAPROD"
aws_secret_access_key = "secret1"

[[accounts]]
name = "staging"
region = "eu-west-1"
aws_access_key_id = "AKIASTG"
aws_secret_access_key = "secret2"
`)

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)
	require.Len(t, cfg.Accounts, 2)

	assert.Equal(t, 14, cfg.CollectionPeriodDays)
	assert.Equal(t, "prod", cfg.Accounts[0].Name)
	assert.Equal(t, "us-east-1", cfg.Accounts[0].Region)
	assert.Equal(t, "AKIAPROD", cfg.Accounts[0].AccessKeyID)
	assert.Equal(t, "secret1", cfg.Accounts[0].SecretAccessKey)
	assert.Equal(t, "staging", cfg.Accounts[1].Name)
}

func TestLoadConfigFile_YAML(t *testing.T) {
	path := writeTempConfig(t, "accounts.yaml", `
accounts:
  - name: prod
    region: us-east-1
    aws_access_key_id: AKIAPROD
    aws_secret_access_key: secret1
`)

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)
	require.Len(t, cfg.Accounts, 1)
	assert.Equal(t, "prod", cfg.Accounts[0].Name)
	assert.Zero(t, cfg.CollectionPeriodDays)
}

func TestLoadConfigFile_JSON(t *testing.T) {
	path := writeTempConfig(t, "accounts.json", `{
  "accounts": [
    {
      "name": "prod",
      "region": "us-east-1",
      "aws_access_key_id": "AKIAPROD",
      "aws_secret_access_key": "secret1"
    }
  ]
}`)

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)
	require.Len(t, cfg.Accounts, 1)
	assert.Equal(t, "us-east-1", cfg.Accounts[0].Region)
}

func TestLoadConfigFile_UnsupportedExtension(t *testing.T) {
	path := writeTempConfig(t, "accounts.ini", "[prod]\nregion = us-east-1\n")

	_, err := NewConfigRepository().LoadConfigFile(path)
	assert.ErrorContains(t, err, "unsupported config file format")
}

func TestLoadConfigFile_MissingFile(t *testing.T) {
	_, err := NewConfigRepository().LoadConfigFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorContains(t, err, "error accessing config file")
}

func TestLoadConfigFile_Directory(t *testing.T) {
	_, err := NewConfigRepository().LoadConfigFile(t.TempDir())
	assert.ErrorContains(t, err, "not a file")
}

func TestLoadConfigFile_DuplicateSectionName(t *testing.T) {
	path := writeTempConfig(t, "accounts.toml", `
[[accounts]]
name = "prod"
region = "us-east-1"
aws_access_key_id = "AKIAPROD"
aws_secret_access_key = "secret1"

[[accounts]]
name = "prod"
region = "eu-west-1"
aws_access_key_id = "AKIAPROD2"
aws_secret_access_key = "secret2"
`)

	_, err := NewConfigRepository().LoadConfigFile(path)
	assert.ErrorContains(t, err, `duplicate account section name "prod"`)
}

func TestLoadConfigFile_IncompleteSection(t *testing.T) {
	path := writeTempConfig(t, "accounts.toml", `
[[accounts]]
name = "prod"
region = "us-east-1"
`)

	_, err := NewConfigRepository().LoadConfigFile(path)
	assert.ErrorContains(t, err, "missing name, region, or credentials")
}
