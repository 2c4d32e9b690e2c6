package storage

import (
	"path"
	"strings"
)

// DefaultPrefix is the object key prefix when the config sets none.
const DefaultPrefix = "workout-map"

// objectKey maps a flat-store key onto an object key: <prefix>/<key>.json
func objectKey(prefix, key string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return path.Join(prefix, key+".json")
}
