package logger

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l := NewZapLogger(path, true)

	l.Info("auth", "user logged in", map[string]interface{}{"email": "a@x.com"})
	l.Error("auth", "login failed", map[string]interface{}{"error": errors.New("db down")})
	l.Debug("auth", "not written to file", nil)
	_ = l.Sync()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}

	require.Len(t, entries, 2)
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "user logged in", entries[0]["message"])
	assert.Equal(t, "auth", entries[0]["module"])
	assert.Equal(t, "ERROR", entries[1]["level"])
	assert.Equal(t, "db down", entries[1]["error"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Warn("any", "dropped", nil)
	assert.NoError(t, l.Sync())
}
