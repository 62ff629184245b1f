package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewpaige1/promptdec-api/auth"
)

func TestTokenCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET_KEY", "cli-secret")
	t.Setenv("CONFIG_FILE", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"token", "--subject", "github|7", "--nickname", "octo"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())

	claims, err := auth.ParseToken(strings.TrimSpace(out.String()), "cli-secret", "promptdec", "promptdec-api")
	require.NoError(t, err)
	assert.Equal(t, "github|7", claims.Subject)
	assert.Equal(t, "octo", claims.Nickname)
}

func TestMigrateCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DATABASE_URL", "sqlite://"+filepath.Join(dir, "cli.db"))
	t.Setenv("CONFIG_FILE", "")

	rootCmd.SetArgs([]string{"migrate"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.FileExists(t, filepath.Join(dir, "cli.db"))
}
