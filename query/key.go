package query

import (
	"encoding/json"
	"fmt"
)

// Key derives a cache key from an operation name and its full parameter set.
// Two operations differing in any parameter (page number included) get
// distinct keys, so their results are cached independently.
func Key(op string, params any) string {
	if params == nil {
		return op
	}
	raw, err := json.Marshal(params)
	if err != nil {
		// Parameter structs are plain data; a marshal failure is a
		// programming error.
		panic(fmt.Sprintf("could not derive cache key for %s: %s", op, err))
	}
	return op + "?" + string(raw)
}
