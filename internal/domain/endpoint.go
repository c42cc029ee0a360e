package domain

import (
	"fmt"
	"net"
	"strconv"
)

// EndpointProfile describes a named remote storage endpoint.
// Profiles are owned by the endpoint registry; they are created and removed
// through the settings surface and persisted in the endpoints file.
type EndpointProfile struct {
	// Name is the unique identifier used in remote path strings
	Name string `mapstructure:"name"`

	// Host of the remote session server
	Host string `mapstructure:"host"`

	// Port of the remote session server
	Port int `mapstructure:"port"`

	// Username for authentication
	Username string `mapstructure:"username"`

	// Credential is the secret presented with each session.
	// It must never be written to logs; see logger.Sanitizer.
	Credential string `mapstructure:"credential"`
}

// Validate checks if the profile is complete enough to dial
func (p EndpointProfile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidProfile)
	}
	if p.Host == "" {
		return fmt.Errorf("%w: %s has no host", ErrInvalidProfile, p.Name)
	}
	if p.Port <= 0 || p.Port > 65535 {
		return fmt.Errorf("%w: %s has invalid port %d", ErrInvalidProfile, p.Name, p.Port)
	}
	return nil
}

// Address returns the host:port dial address
func (p EndpointProfile) Address() string {
	return net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
}
