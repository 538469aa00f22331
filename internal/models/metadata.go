package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// EmptyMetadata returns the canonical empty JSON object stored when a
// caller supplies no metadata.
func EmptyMetadata() datatypes.JSON {
	return datatypes.JSON([]byte("{}"))
}

// MetadataFromMap serializes caller-supplied metadata. A nil map becomes
// the empty object rather than SQL NULL.
func MetadataFromMap(m map[string]interface{}) datatypes.JSON {
	if len(m) == 0 {
		return EmptyMetadata()
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return EmptyMetadata()
	}
	return datatypes.JSON(raw)
}

// MetadataToMap decodes a stored metadata column. Malformed or empty
// values decode to an empty map, never an error.
func MetadataToMap(j datatypes.JSON) map[string]interface{} {
	out := map[string]interface{}{}
	if len(j) == 0 {
		return out
	}
	if err := json.Unmarshal(j, &out); err != nil {
		return map[string]interface{}{}
	}
	return out
}
