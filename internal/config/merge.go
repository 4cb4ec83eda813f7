package config

import "strings"

// Merge applies overlay onto base and returns the result, bound to base's path.
// Nested sections merge key by key with overlay winning; keys only present in
// base are preserved. Lists and scalars from overlay replace base values.
func Merge(base, overlay *Config) *Config {
	if base == nil {
		return overlay
	}
	result := &Config{Values: mergeMaps(base.Values, nil), path: base.path}
	if overlay == nil {
		return result
	}
	result.Values = mergeMaps(result.Values, overlay.Values)
	return result
}

func mergeMaps(base, overlay map[string]any) map[string]any {
	result := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		if m, ok := v.(map[string]any); ok {
			v = mergeMaps(m, nil)
		}
		result[k] = v
	}
	for k, v := range overlay {
		overlayMap, overlayIsMap := v.(map[string]any)
		baseMap, baseIsMap := result[k].(map[string]any)
		if overlayIsMap && baseIsMap {
			result[k] = mergeMaps(baseMap, overlayMap)
			continue
		}
		if overlayIsMap {
			v = mergeMaps(overlayMap, nil)
		}
		result[k] = v // overlay wins
	}
	return result
}

func lookup(values map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	var cur any = values
	for _, part := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
