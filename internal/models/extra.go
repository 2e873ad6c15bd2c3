package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// Documents are loosely schematized. Fields without a typed counterpart
// are kept in an inline bson.M so they survive a round trip through the
// API; the helpers below merge them in and out of the JSON form.

func marshalWithExtra(known interface{}, extra bson.M) ([]byte, error) {
	data, err := json.Marshal(known)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	fields := map[string]json.RawMessage{}
	if err = json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for key, value := range extra {
		if _, ok := fields[key]; ok {
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding field '%s'", key)
		}
		fields[key] = raw
	}
	return json.Marshal(fields)
}

// splitExtra returns the fields of the JSON object in data that are not
// named in known. Numbers keep their integer form where they have one.
func splitExtra(data []byte, known []string) (bson.M, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	for _, key := range known {
		delete(fields, key)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	extra := bson.M{}
	for key, value := range fields {
		if key == "" || strings.HasPrefix(key, "$") {
			return nil, errors.Errorf("invalid field name '%s'", key)
		}
		extra[key] = plainNumbers(value)
	}
	return extra, nil
}

func plainNumbers(v interface{}) interface{} {
	switch v := v.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		f, _ := v.Float64()
		return f
	case map[string]interface{}:
		for key, elem := range v {
			v[key] = plainNumbers(elem)
		}
		return v
	case []interface{}:
		for i, elem := range v {
			v[i] = plainNumbers(elem)
		}
		return v
	default:
		return v
	}
}
