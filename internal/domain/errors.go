package domain

import "errors"

// Backend errors - 儲存後端層錯誤
var (
	// ErrNotFound indicates the requested path does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists indicates the target path already exists
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrPermissionDenied indicates insufficient permissions
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotDirectory indicates expected a directory but got a file
	ErrNotDirectory = errors.New("not a directory")

	// ErrNotFile indicates expected a file but got a directory
	ErrNotFile = errors.New("not a file")

	// ErrTimeout indicates operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrProtocol indicates a remote-backend failure (unexpected status,
	// transport error, undecodable body)
	ErrProtocol = errors.New("remote protocol error")
)

// Routing errors - 路由層錯誤
var (
	// ErrUnknownEndpoint indicates a remote path references an endpoint
	// name absent from the registry
	ErrUnknownEndpoint = errors.New("unknown endpoint")

	// ErrCrossBackend indicates a copy/move spanning two different backends
	ErrCrossBackend = errors.New("cross-backend operation unsupported")

	// ErrNoAccessibleRoot indicates no fallback root candidate could be listed
	ErrNoAccessibleRoot = errors.New("no accessible root")
)

// Config errors - 設定檔錯誤
var (
	// ErrConfigNotFound indicates config file not found
	ErrConfigNotFound = errors.New("config file not found")

	// ErrConfigInvalid indicates config file is malformed
	ErrConfigInvalid = errors.New("invalid config")

	// ErrInvalidProfile indicates a malformed endpoint profile
	ErrInvalidProfile = errors.New("invalid endpoint profile")
)
