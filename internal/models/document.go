package models

import "strings"

// IDField is the reserved identifier key of every stored document.
const IDField = "_id"

// Document is an open record whose fields are stored as supplied by the client.
type Document map[string]interface{}

// String returns the value at key when it is a string.
func (d Document) String(key string) (string, bool) {
	if d == nil {
		return "", false
	}
	raw, ok := d[key]
	if !ok {
		return "", false
	}
	value, ok := raw.(string)
	return value, ok
}

// Has reports whether key is present, regardless of its value.
func (d Document) Has(key string) bool {
	if d == nil {
		return false
	}
	_, ok := d[key]
	return ok
}

// WithoutReserved returns a shallow copy with the identifier and any operator
// keys removed so a client body can never rewrite _id or inject update operators.
func (d Document) WithoutReserved() Document {
	out := make(Document, len(d))
	for key, value := range d {
		if key == IDField || strings.HasPrefix(key, "$") {
			continue
		}
		out[key] = value
	}
	return out
}

// NestedKey returns the first top-level key containing a path separator.
// Such keys would address nested fields inside a $set update.
func (d Document) NestedKey() (string, bool) {
	for key := range d {
		if strings.Contains(key, ".") {
			return key, true
		}
	}
	return "", false
}

// InsertResult reports the identifier generated by the store.
type InsertResult struct {
	InsertedID string `json:"insertedId"`
}

// UpdateResult reports the outcome of a field-level update.
type UpdateResult struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

// DeleteResult reports how many documents were removed.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
