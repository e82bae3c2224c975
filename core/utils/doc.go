// Package utils provides common utility functions for the sync service.
// It includes helper functions for extracting typed values from the loosely
// typed JSON payloads returned by the remote systems.
package utils
