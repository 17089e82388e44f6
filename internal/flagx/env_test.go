package flagx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}

func TestLoadDotEnv_LoadsWithoutOverriding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SKILLSWAP_TEST_A=from-file\nSKILLSWAP_TEST_B=from-file\n"), 0o600))

	t.Setenv("SKILLSWAP_TEST_B", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("SKILLSWAP_TEST_A") })

	require.NoError(t, LoadDotEnv(path))

	assert.Equal(t, "from-file", os.Getenv("SKILLSWAP_TEST_A"))
	assert.Equal(t, "from-env", os.Getenv("SKILLSWAP_TEST_B"))
}

func TestEnvString(t *testing.T) {
	dst := "default"

	EnvString(&dst, "SKILLSWAP_TEST_UNSET_VAR")
	assert.Equal(t, "default", dst)

	t.Setenv("SKILLSWAP_TEST_BLANK", "   ")
	EnvString(&dst, "SKILLSWAP_TEST_BLANK")
	assert.Equal(t, "default", dst)

	t.Setenv("SKILLSWAP_TEST_SET", " http://api:8080 ")
	EnvString(&dst, "SKILLSWAP_TEST_SET")
	assert.Equal(t, "http://api:8080", dst)
}
