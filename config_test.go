package meshin

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOptionsValidate(t *testing.T) {
	o := DefaultOptions()
	assert.NoError(t, o.Validate())
	assert.Equal(t, DefaultMaxKeyLength, o.MaxKeyLength)
	assert.Equal(t, InMemory, o.StoreType)
}

func TestLoadOptionsYAML(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "meshin.yaml")
	data := `
store_type: redis
redis:
  address: "localhost:6380"
max_key_length: 64
locale: de
retry:
  max_retries: 2
  base_delay: 10ms
`
	assert.NoError(t, os.WriteFile(p, []byte(data), 0o644))

	o, err := LoadOptions(p)
	assert.NoError(t, err)
	assert.Equal(t, Redis, o.StoreType)
	assert.Equal(t, "localhost:6380", o.Redis.Address)
	assert.Equal(t, 64, o.MaxKeyLength)
	assert.Equal(t, "de", o.Locale)
	assert.Equal(t, uint64(2), o.Retry.MaxRetries)
	assert.Equal(t, 10*time.Millisecond, o.Retry.BaseDelay)
	// Untouched fields keep defaults.
	assert.Equal(t, DefaultPatternCacheSize, o.PatternCacheSize)
}

func TestLoadOptionsJSONAndEnv(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "meshin.json")
	assert.NoError(t, os.WriteFile(p, []byte(`{"store_type":"inmemory","http_address":":9000"}`), 0o644))

	t.Setenv("MESHIN_HTTP_ADDRESS", ":9100")
	t.Setenv("MESHIN_MAX_KEY_LENGTH", "32")
	o, err := LoadOptions(p)
	assert.NoError(t, err)
	assert.Equal(t, ":9100", o.HTTPAddress)
	assert.Equal(t, 32, o.MaxKeyLength)
}

func TestLoadOptionsErrors(t *testing.T) {
	dir := t.TempDir()

	p := filepath.Join(dir, "meshin.toml")
	assert.NoError(t, os.WriteFile(p, []byte(`x=1`), 0o644))
	_, err := LoadOptions(p)
	assert.Error(t, err)

	p = filepath.Join(dir, "redis.json")
	assert.NoError(t, os.WriteFile(p, []byte(`{"store_type":"redis"}`), 0o644))
	_, err = LoadOptions(p)
	assert.Error(t, err, "redis store without redis section")

	p = filepath.Join(dir, "bad.json")
	assert.NoError(t, os.WriteFile(p, []byte(`{"store_type":"cassandra"}`), 0o644))
	_, err = LoadOptions(p)
	assert.Error(t, err)

	_, err = LoadOptions(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
