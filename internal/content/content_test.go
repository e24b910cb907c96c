package content

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lunarai-web/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultContent(t *testing.T) {
	site := Default()
	require.NoError(t, Validate(site))

	assert.Equal(t, "LunarAI", site.Brand.Name)
	assert.Len(t, site.Nav, 4)
	assert.Len(t, site.Hero.Stats, 3)
	assert.Len(t, site.Solutions, 4)
	assert.Len(t, site.Services, 4)
	assert.Len(t, site.Team, 3)
	assert.Equal(t, 4*time.Second, site.Loading.Total())

	// Footer service links use the exact offering names
	var labels []string
	for _, l := range site.Footer.ServiceLinks {
		labels = append(labels, l.Label)
	}
	assert.Equal(t, domain.OfferedServices, labels)
}

func TestLoadEmptyPath(t *testing.T) {
	site, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), site)
}

func TestLoadOverridesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
brand:
  name: LunarAI Labs
hero:
  stats:
    - value: "42"
      label: Clients
loading:
  hold: 1s
  fade: 250ms
`), 0o600))

	site, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "LunarAI Labs", site.Brand.Name)
	assert.Equal(t, "Launching businesses into the AI stratosphere", site.Brand.Tagline, "unset fields keep defaults")
	assert.Equal(t, []domain.Stat{{Value: "42", Label: "Clients"}}, site.Hero.Stats)
	assert.Equal(t, "AI Stratosphere", site.Hero.Highlight)
	assert.Equal(t, time.Second, site.Loading.Hold)
	assert.Equal(t, 250*time.Millisecond, site.Loading.Fade)
	assert.Len(t, site.Services, 4)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "brnd:\n  name: x\n"},
		{"malformed", "brand: [\n"},
		{"no services", "services: []\n"},
		{"duplicate service id", "services:\n  - id: a\n    title: A\n  - id: a\n    title: B\n"},
		{"negative timing", "loading:\n  hold: -1s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "site.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadingScreenJSON(t *testing.T) {
	raw, err := json.Marshal(Default().Loading)
	require.NoError(t, err)
	assert.JSONEq(t, `{"holdMs":3200,"fadeMs":800,"totalMs":4000}`, string(raw))
}
