package generators

import (
	"errors"
	"fmt"
)

func stringParam(params map[string]interface{}, key string) (string, error) {
	if params == nil {
		return "", fmt.Errorf("missing '%s' param", key)
	}
	raw, ok := params[key]
	if !ok {
		return "", fmt.Errorf("missing '%s' param", key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("'%s' must be a string", key)
	}
	return s, nil
}

func int64Param(params map[string]interface{}, key string) (int64, error) {
	if params == nil {
		return 0, fmt.Errorf("missing '%s' param", key)
	}
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("missing '%s' param", key)
	}
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint64:
		return int64(v), nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("'%s' must be an integer", key)
	}
}

func stringSliceParam(params map[string]interface{}, key string) ([]string, error) {
	if params == nil {
		return nil, fmt.Errorf("missing '%s' param", key)
	}
	raw, ok := params[key]
	if !ok {
		return nil, fmt.Errorf("missing '%s' param", key)
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("'%s' must be a list", key)
	}
	if len(list) == 0 {
		return nil, errors.New("'" + key + "' cannot be empty")
	}
	out := make([]string, len(list))
	for i, item := range list {
		switch v := item.(type) {
		case string:
			out[i] = v
		default:
			out[i] = fmt.Sprintf("%v", v)
		}
	}
	return out, nil
}
