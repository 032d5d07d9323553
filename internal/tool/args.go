package tool

// Argument extraction helpers. Tool arguments arrive as map[string]any
// (decoded JSON or values built by the dispatch engine), so numeric values
// may be float64 or int depending on the producer.

func stringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func stringArgDefault(args map[string]any, key, def string) string {
	if s, ok := stringArg(args, key); ok {
		return s
	}
	return def
}

func boolArg(args map[string]any, key string) bool {
	v, ok := args[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func intArgDefault(args map[string]any, key string, def int) int {
	v, ok := args[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}
