// Package testutil provides test fixtures and utilities.
//
// Integration configs and state records are embedded using go:embed:
//
//	fixtures/valid_integration.yaml
//	fixtures/minimal_integration.yaml
//	fixtures/invalid_integration.yaml
//	fixtures/valid_state_record.json
//
// Helper functions parse them into typed values:
//
//	cfg, err := testutil.ValidIntegration()
//	rec, err := testutil.ValidRecord()
//	_, err = testutil.LoadIntegrationFixture("invalid_integration.yaml") // fails
//
// NewTestEnv builds a throwaway repository and state directory and installs
// an App using them as app.Default:
//
//	env := testutil.NewTestEnv(t)
//	defer env.Cleanup()
//	env.AddIntegrationFixture("kafka", "valid_integration.yaml")
//	env.Activate("kafka", "3.5.1")
package testutil
