package helpers

import (
	"encoding/json"
	"io"
)

// DecodeStrict decodes JSON from r into dst, rejecting any key that does not
// map to a field of dst. Update endpoints use this so a payload carrying a
// non-updatable field (posterId, courseId, ...) fails instead of being
// silently ignored.
func DecodeStrict(r io.Reader, dst interface{}) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
