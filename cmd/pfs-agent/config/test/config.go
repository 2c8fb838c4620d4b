package configtest

import (
	"bufio"
	"os"
	"strings"
	"testing"

	"github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config"
	"github.com/stretchr/testify/require"
)

func fromFile(t testing.TB, path string) *config.Config {
	var p config.Prm

	c, err := config.New(p,
		config.WithConfigFile(path),
	)
	require.NoError(t, err)

	return c
}

func forEachFile(t testing.TB, paths []string, f func(*config.Config)) {
	for i := range paths {
		f(fromFile(t, paths[i]))
	}
}

// ForEachFileType passes configs read from next files:
//   - `<pref>.yaml`;
//   - `<pref>.json`.
func ForEachFileType(t testing.TB, pref string, f func(*config.Config)) {
	forEachFile(t, []string{
		pref + ".yaml",
		pref + ".json",
	}, f)
}

// ForEnvFileType sets ENV variables from `<pref>.env` file (KEY=VALUE
// lines, `#` comments) for the test duration and passes config built
// from them only.
func ForEnvFileType(t *testing.T, pref string, f func(*config.Config)) {
	loadEnv(t, pref+".env")
	f(EmptyConfig(t))
}

// EmptyConfig returns config without any values and sections.
func EmptyConfig(t testing.TB) *config.Config {
	var p config.Prm

	c, err := config.New(p)
	require.NoError(t, err)

	return c
}

func loadEnv(t *testing.T, path string) {
	f, err := os.Open(path)
	require.NoError(t, err, "can't open .env file")

	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		k, v, ok := strings.Cut(line, "=")
		require.True(t, ok, "invalid .env line %q", line)

		t.Setenv(strings.TrimSpace(k), strings.Trim(strings.TrimSpace(v), `"`))
	}
	require.NoError(t, scanner.Err())
}
