package model

import "encoding/json"

// JSONObject is the generic document type used for the opaque blob fields
// (cargo, equipment, game state, world snapshot). The server stores and
// returns these byte-for-byte as parsed JSON without interpreting them,
// with one narrow exception: the admin hull/fuel patch path writes into the
// nested "ship" object via SetShipField.
type JSONObject map[string]any

// DecodeObject parses stored JSON text into a JSONObject.
//
// This is an explicit decode-with-fallback contract: empty or malformed
// input yields an empty object rather than an error, so a corrupt blob
// never fails the request that reads it.
func DecodeObject(data []byte) JSONObject {
	if len(data) == 0 {
		return JSONObject{}
	}
	var obj JSONObject
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return JSONObject{}
	}
	return obj
}

// Encode serializes the object as JSON text. A nil object encodes as "{}".
func (o JSONObject) Encode() []byte {
	if o == nil {
		return []byte("{}")
	}
	data, err := json.Marshal(o)
	if err != nil {
		return []byte("{}")
	}
	return data
}

// SetShipField sets a single field on the nested "ship" object, creating it
// if missing. Every other key in the document is left untouched.
func (o JSONObject) SetShipField(field string, value int) {
	ship, ok := o["ship"].(map[string]any)
	if !ok {
		// A JSON-decoded ship arrives as map[string]any; anything else
		// (absent, null, wrong type) is replaced by a fresh object
		ship = map[string]any{}
		o["ship"] = ship
	}
	ship[field] = value
}

// Clone returns a deep copy via a JSON round trip, so callers can hand out
// documents without sharing mutable state
func (o JSONObject) Clone() JSONObject {
	return DecodeObject(o.Encode())
}
