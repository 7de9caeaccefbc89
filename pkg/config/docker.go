package config

import (
	"os"
	"sync"
)

// dockerHostAlias reaches the host machine from inside a container.
const dockerHostAlias = "host.docker.internal"

var (
	dockerOnce  sync.Once
	inContainer bool

	// dockerMarker exists in every Docker container.
	dockerMarker = "/.dockerenv"
)

// IsRunningInDocker reports whether the process runs inside a Docker container.
// The result is computed once.
func IsRunningInDocker() bool {
	dockerOnce.Do(func() {
		_, err := os.Stat(dockerMarker)
		inContainer = err == nil
	})
	return inContainer
}

// ResolveHostForDocker rewrites loopback datasource hosts to the Docker host alias
// when running in a container, so a database on the developer's machine stays reachable.
func ResolveHostForDocker(host string) string {
	if IsRunningInDocker() && isLoopback(host) {
		return dockerHostAlias
	}
	return host
}

func isLoopback(host string) bool {
	switch host {
	case "localhost", "127.0.0.1", "::1":
		return true
	default:
		return false
	}
}
