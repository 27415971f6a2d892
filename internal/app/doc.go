// Package app provides the application context for vdev.
//
// The App struct holds the dependencies shared by every command:
//
//	type App struct {
//	    Paths   *config.Paths       // Config, state and repository directories
//	    Loader  *integration.Loader // Integration configuration loader
//	    Store   state.Store         // Active environment records
//	    History *audit.Logger       // Activation events
//	}
//
// Use New with functional options:
//
//	// Production usage
//	a := app.New()
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithPaths(config.NewPaths(cfgDir, stateDir, repo)),
//	    app.WithStore(state.NewMemoryStore(nil)),
//	)
package app
