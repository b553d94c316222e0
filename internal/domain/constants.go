package domain

import "time"

// File permission constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Deadline constants
const (
	// DefaultCommandTimeout is the deadline for one command generation call
	DefaultCommandTimeout = 30 * time.Second
	// DefaultScriptTimeout is the deadline for one script generation call
	DefaultScriptTimeout = 60 * time.Second
	// DefaultHTTPClientTimeout caps a single backend HTTP exchange
	DefaultHTTPClientTimeout = 90 * time.Second
)

// History constants
const (
	// DefaultMaxHistoryItems bounds the history store
	DefaultMaxHistoryItems = 50
	// DefaultHistoryDisplayLimit is how many entries the CLI lists
	DefaultHistoryDisplayLimit = 10
)

// Model constants
const (
	// DefaultMaxTokens is the default generation budget per request
	DefaultMaxTokens = 1024
)

// TimestampFormat is the standard timestamp format for persisted records.
const TimestampFormat = time.RFC3339
