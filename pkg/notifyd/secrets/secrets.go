// Package secrets wraps the OS keyring under notifyd's service name. It
// supplies the keyring tier of the notifier credential chain (OS keyring,
// then environment variable, then .env file, then whatever literal value
// is already sitting in the parsed config), which config.Load applies;
// this package does not resolve the other tiers. It also backs the
// "notifyd secrets set/delete" CLI command.
package secrets

import (
	"github.com/zalando/go-keyring"
)

// keyringService namespaces notifyd's entries in the OS keyring so they
// don't collide with other applications' secrets under the same names.
const keyringService = "notifyd"

// Store saves a secret under name in the OS keyring.
func Store(name, value string) error {
	return keyring.Set(keyringService, name, value)
}

// Delete removes a secret from the OS keyring. Returns an error if no such
// entry exists.
func Delete(name string) error {
	return keyring.Delete(keyringService, name)
}

// GetKeyring retrieves a secret from the OS keyring, or "" if absent or the
// keyring backend is unavailable.
func GetKeyring(name string) string {
	val, err := keyring.Get(keyringService, name)
	if err != nil {
		return ""
	}
	return val
}
