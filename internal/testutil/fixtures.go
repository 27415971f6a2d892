package testutil

import (
	"embed"
	"encoding/json"

	"github.com/vdev-tools/vdev/internal/integration"
	"github.com/vdev-tools/vdev/internal/state"
)

//go:embed fixtures/*.yaml fixtures/*.json
var fixturesFS embed.FS

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// LoadIntegrationFixture parses an integration config fixture.
func LoadIntegrationFixture(name string) (*integration.Config, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	return integration.YAMLParser{}.Parse(data)
}

// LoadRecordFixture loads an active-environment record fixture.
func LoadRecordFixture(name string) (*state.Record, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	var rec state.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ValidIntegration returns the kafka integration fixture.
func ValidIntegration() (*integration.Config, error) {
	return LoadIntegrationFixture("valid_integration.yaml")
}

// MinimalIntegration returns an integration fixture with no environments.
func MinimalIntegration() (*integration.Config, error) {
	return LoadIntegrationFixture("minimal_integration.yaml")
}

// ValidRecord returns the kafka state record fixture.
func ValidRecord() (*state.Record, error) {
	return LoadRecordFixture("valid_state_record.json")
}
