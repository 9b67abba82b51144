package commands

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// requireConfig checks that each key is set to a non-empty string.
func requireConfig(config map[string]any, keys ...string) error {
	el := errors.NewErrorList()
	for _, key := range keys {
		v, ok := config[key].(string)
		if !ok || v == "" {
			el.Add(fmt.Errorf("%s is required", key))
		}
	}
	return el.Err()
}

// expandRequired expands the config value at key and rejects an empty
// result with a message for the user.
func expandRequired(req *Request, key string, missing string) (string, error) {
	v, err := req.Expand(key)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", NewUserError(missing)
	}
	return v, nil
}
