// Package tui provides the interactive environment picker for vdev.
//
// The picker lists the environments of one or more integrations, grouped
// by integration when more than one is shown:
//
//	options := tui.OptionsFor("kafka", cfg, active, ok)
//	result, err := tui.RunPicker("kafka", options)
//	switch result.Action {
//	case tui.ActionSelect:
//	    // Activate result.Option.Environment
//	case tui.ActionDeactivate:
//	    // Clear result.Option.Integration
//	case tui.ActionQuit, tui.ActionNone:
//	    // Nothing to do
//	}
//
// Navigation uses j/k or the arrow keys; group headers are skipped. The
// cursor starts on the active environment.
package tui
