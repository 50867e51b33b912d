package config

// String returns the first non-empty value, in precedence order.
func String(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Strings returns the first non-empty slice, in precedence order.
func Strings(values ...[]string) []string {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	return nil
}

// Int returns the first non-zero value, in precedence order.
func Int(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
