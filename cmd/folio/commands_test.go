package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/folioworks/folio/pkg/config"
	"github.com/folioworks/folio/pkg/infra/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLegacyWebhooks = `[
  {
    "id": "0d6f7f4e-1b7a-4c39-8a0e-5b8a8d6c2f10",
    "userId": "owner-1",
    "url": "https://hooks.example.com/a",
    "events": ["blog.created"],
    "secret": "abc123",
    "createdAt": 1730541600000
  },
  {
    "id": "not-a-uuid",
    "userId": "owner-1",
    "url": "https://hooks.example.com/b",
    "events": ["blog.created"],
    "secret": "x"
  }
]`

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// The config loader keeps global state, so every command shares one
// workspace and runs in sequence.
func TestCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))

	contentRoot := filepath.Join(dir, "content")
	writeFile(t, filepath.Join(contentRoot, "blog", "rate-limits.md"), `---
title: Sliding window rate limits
description: Counting requests per client over a moving window
tags: [go, redis]
category: engineering
---
Notes on a sliding window limiter.
`)
	writeFile(t, filepath.Join(contentRoot, "projects", "folio.json"),
		`{"id":"project:folio","title":"Folio","description":"Site backend","url":"/projects/folio"}`)

	configDir := filepath.Join(dir, "config")
	writeFile(t, filepath.Join(configDir, "config.yaml"), strings.Join([]string{
		"server:",
		"  secret_key: cli-secret",
		"database:",
		"  driver: sqlite",
		"  path: " + filepath.Join(dir, "folio.db"),
		"content:",
		"  root: " + contentRoot,
	}, "\n"))

	legacy := filepath.Join(dir, "webhooks.json")
	writeFile(t, legacy, sampleLegacyWebhooks)

	t.Run("search prints ranked matches", func(t *testing.T) {
		out, err := execute(t, "search", "--config", configDir, "--limit", "5", "rate", "limits")
		require.NoError(t, err)
		assert.Contains(t, out, "Sliding window rate limits")
		assert.Contains(t, out, "/blog/rate-limits")
		assert.NotContains(t, out, "Folio")
	})

	t.Run("search reports no matches", func(t *testing.T) {
		out, err := execute(t, "search", "--config", configDir, "zzzzqqqq")
		require.NoError(t, err)
		assert.Contains(t, out, `no matches for "zzzzqqqq" in 2 items`)
	})

	t.Run("token is signed with the configured secret", func(t *testing.T) {
		out, err := execute(t, "token", "--config", configDir, "--owner", "site-admin")
		require.NoError(t, err)

		claims, err := jwt.NewJwtManager(&config.ServerConfig{SecretKey: "cli-secret"}).DecodeToken(strings.TrimSpace(out))
		require.NoError(t, err)
		assert.Equal(t, "site-admin", claims.OwnerID())
	})

	t.Run("import-webhooks reports each record", func(t *testing.T) {
		out, err := execute(t, "import-webhooks", "--config", configDir, "--file", legacy)
		require.NoError(t, err)
		assert.Contains(t, out, "imported: 1")
		assert.Contains(t, out, "invalid:  1")

		out, err = execute(t, "import-webhooks", "--config", configDir, "--file", legacy)
		require.NoError(t, err)
		assert.Contains(t, out, "imported: 0")
		assert.Contains(t, out, "skipped:  1")
	})

	t.Run("migrate lists applied migrations", func(t *testing.T) {
		out, err := execute(t, "migrate", "--config", configDir)
		require.NoError(t, err)
		assert.Contains(t, out, "applied 20250301_create_webhooks")
	})

	t.Run("import-webhooks needs a readable file", func(t *testing.T) {
		_, err := execute(t, "import-webhooks", "--config", configDir, "--file", filepath.Join(dir, "nope.json"))
		assert.Error(t, err)
	})
}
