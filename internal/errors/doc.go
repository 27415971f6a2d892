// Package errors provides typed errors with exit codes for vdev.
//
// # Error Types
//
// VdevError wraps an error with an exit code:
//
//	type VdevError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess             = 0  // Success
//	ExitGeneralError        = 1  // General/unknown errors, invalid input
//	ExitIntegrationNotFound = 2  // No configuration source for the integration
//	ExitParseError          = 3  // Configuration source exists but is malformed
//	ExitStateReadError      = 4  // Active-environment record unreadable
//	ExitEnvironmentNotFound = 5  // Environment not declared by the integration
//	ExitStateWriteError     = 6  // Active-environment record could not be written
//	ExitConfigError         = 7  // vdev settings error
//
// # Error Constructors
//
//	errors.IntegrationNotFound("api")
//	errors.ParseError("api", err)
//	errors.StateReadError("api", err)
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
