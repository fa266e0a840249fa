// Package record reads and writes polyhedron records: JSON objects holding
// at least a "vertices" array and, after featurization, one or more
// face_feature_set_<n> fields.  Edits go through gjson/sjson on the raw
// document so key order and every unrelated field survive untouched.
package record

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/turtacn/PolyGraph-Intelligence/pkg/types/graph"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// VerticesField holds the input vertex coordinates.
const VerticesField = "vertices"

var prettyOptions = &pretty.Options{Width: 80, Prefix: "", Indent: "    ", SortKeys: false}

// Record is one JSON object with its original key order.
type Record struct {
	raw []byte
}

// Parse validates data as a JSON object.
func Parse(data []byte) (*Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, pkgerrors.New(pkgerrors.ErrCodeRecordCorrupt, "record is not valid JSON")
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, pkgerrors.New(pkgerrors.ErrCodeRecordCorrupt, "record is not a JSON object")
	}
	return &Record{raw: append([]byte(nil), data...)}, nil
}

// New returns an empty record.
func New() *Record {
	return &Record{raw: []byte("{}")}
}

// NewWithVertices returns a record holding only vertices.
func NewWithVertices(vertices [][3]float64) (*Record, error) {
	r := New()
	if err := r.Set(VerticesField, vertices); err != nil {
		return nil, err
	}
	return r, nil
}

// Bytes renders the record with four-space indentation.  The output is a
// pure function of the key order and values.
func (r *Record) Bytes() []byte {
	return pretty.PrettyOptions(r.raw, prettyOptions)
}

// Keys lists the top-level keys in document order.
func (r *Record) Keys() []string {
	var keys []string
	gjson.ParseBytes(r.raw).ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	return keys
}

// Has reports whether the top-level field exists.
func (r *Record) Has(field string) bool {
	return gjson.GetBytes(r.raw, escape(field)).Exists()
}

// Field returns the raw JSON of a top-level field.
func (r *Record) Field(field string) (json.RawMessage, bool) {
	res := gjson.GetBytes(r.raw, escape(field))
	if !res.Exists() {
		return nil, false
	}
	return json.RawMessage(res.Raw), true
}

// Decode unmarshals a top-level field into v.
func (r *Record) Decode(field string, v any) error {
	raw, ok := r.Field(field)
	if !ok {
		return pkgerrors.Newf(pkgerrors.ErrCodeNotFound, "record has no %q field", field)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeRecordCorrupt, "failed to decode record field").WithDetail(field)
	}
	return nil
}

// DecodeInto unmarshals the whole document into v.
func (r *Record) DecodeInto(v any) error {
	if err := json.Unmarshal(r.raw, v); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeRecordCorrupt, "failed to decode record")
	}
	return nil
}

// Set adds or replaces a top-level field.  A replaced field keeps its place;
// a new field is appended.
func (r *Record) Set(field string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeSerialization, "failed to encode record field").WithDetail(field)
	}
	out, err := sjson.SetRawBytes(r.raw, escape(field), data)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeSerialization, "failed to set record field").WithDetail(field)
	}
	r.raw = out
	return nil
}

// Vertices decodes the vertex coordinates.
func (r *Record) Vertices() ([][3]float64, error) {
	var rows [][]float64
	if err := r.Decode(VerticesField, &rows); err != nil {
		if pkgerrors.IsCode(err, pkgerrors.ErrCodeNotFound) {
			return nil, pkgerrors.New(pkgerrors.ErrCodeRecordCorrupt, "record has no vertices")
		}
		return nil, err
	}
	out := make([][3]float64, len(rows))
	for i, row := range rows {
		if len(row) != 3 {
			return nil, pkgerrors.Newf(pkgerrors.ErrCodeRecordCorrupt, "vertex %d has %d coordinates", i, len(row))
		}
		out[i] = [3]float64{row[0], row[1], row[2]}
	}
	return out, nil
}

// GraphRecord decodes a stored feature set.
func (r *Record) GraphRecord(field string) (*graph.GraphRecord, error) {
	var g graph.GraphRecord
	if err := r.Decode(field, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// SetGraphRecord stores g under field, replacing any previous value.
func (r *Record) SetGraphRecord(field string, g *graph.GraphRecord) error {
	return r.Set(field, g)
}

// FeatureValue returns key of the feature set object stored under field.
func (r *Record) FeatureValue(field, key string) (json.RawMessage, error) {
	set := gjson.GetBytes(r.raw, escape(field))
	if !set.Exists() {
		return nil, pkgerrors.Newf(pkgerrors.ErrCodeNotFound, "record has no %q field", field)
	}
	if !set.IsObject() {
		return nil, pkgerrors.Newf(pkgerrors.ErrCodeRecordCorrupt, "field %q is not an object", field)
	}
	v := set.Get(escape(key))
	if !v.Exists() {
		return nil, pkgerrors.Newf(pkgerrors.ErrCodeNotFound, "feature set %q has no %q value", field, key)
	}
	return json.RawMessage(v.Raw), nil
}

// escape quotes the gjson/sjson path metacharacters of a literal key.
func escape(key string) string {
	if !strings.ContainsAny(key, `.*?|#@\!:`) {
		return key
	}
	var b strings.Builder
	for _, c := range key {
		if strings.ContainsRune(`.*?|#@\!:`, c) {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

//Personal.AI order the ending
