package entities

import "fmt"

// ConfigurationError reports a missing or invalid configuration value.
// It is raised before any network call.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid configuration %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("please set the env var %s", e.Key)
}

// RemoteAPIError reports a non-success response, or an API-reported error,
// from one of the third-party services.
type RemoteAPIError struct {
	Service    string // "github" or "google-drive"
	Operation  string // e.g. "list repositories", "delete repository"
	Resource   string // e.g. "my-org/my-repo"
	StatusCode int
	Payload    string // raw response body or errors payload
}

func (e *RemoteAPIError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Service, e.Operation)
	if e.Resource != "" {
		msg += " " + e.Resource
	}
	return fmt.Sprintf("%s: responded %d: %s", msg, e.StatusCode, e.Payload)
}

// LocalToolError reports a failure of a local tool: the clone, the archive
// encoder or the filesystem.
type LocalToolError struct {
	Tool string
	Path string
	Err  error
}

func (e *LocalToolError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s failed on %s: %v", e.Tool, e.Path, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *LocalToolError) Unwrap() error { return e.Err }
