package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Load resolves a secret value. When file is set it takes precedence over the
// inline value. The returned secret is always trimmed. An error is returned
// when neither source contains a usable secret.
func Load(name, file, inline string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "secret"
	}

	file = strings.TrimSpace(file)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		inline = string(data)
	}

	secret := strings.TrimSpace(inline)
	if secret == "" {
		if file != "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}
