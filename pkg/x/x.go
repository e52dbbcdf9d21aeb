package x

import (
	"fmt"
	"os"
	"os/user"
)

// Fine, I'll do it myself...
func Ternary[T any](condition bool, trueValue, falseValue T) T {
	if condition {
		return trueValue
	}
	return falseValue
}

// GetUserHomeDir returns the home directory of the invoking user. Under sudo
// it resolves SUDO_USER's home so files don't end up owned by root's.
func GetUserHomeDir() (string, error) {
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" {
		u, err := user.Lookup(sudoUser)
		if err == nil && u.HomeDir != "" {
			return u.HomeDir, nil
		}
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home, nil
	}
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return u.HomeDir, nil
}
