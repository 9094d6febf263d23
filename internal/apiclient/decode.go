package apiclient

import (
	"fmt"

	"github.com/valyala/fastjson"

	"github.com/muurk/logconsole/internal/model"
)

var parserPool fastjson.ParserPool

// ToAny converts a parsed JSON value into the same shapes encoding/json
// produces for an interface{} target.
func ToAny(v *fastjson.Value) any {
	if v == nil {
		return nil
	}
	switch v.Type() {
	case fastjson.TypeObject:
		obj, _ := v.Object()
		out := make(map[string]any, obj.Len())
		obj.Visit(func(key []byte, val *fastjson.Value) {
			out[string(key)] = ToAny(val)
		})
		return out
	case fastjson.TypeArray:
		arr, _ := v.Array()
		out := make([]any, len(arr))
		for i, val := range arr {
			out[i] = ToAny(val)
		}
		return out
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNumber:
		return v.GetFloat64()
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	default:
		return nil
	}
}

// DecodeRecord converts a search hit of the form
// {"index": "...", "message": {...}} into a Record.
func DecodeRecord(v *fastjson.Value) (model.Record, bool) {
	msg := v.Get("message")
	if msg == nil || msg.Type() != fastjson.TypeObject {
		return model.Record{}, false
	}
	fields, _ := ToAny(msg).(map[string]any)
	id, _ := fields[model.IDField].(string)
	return model.Record{
		Index:  string(v.GetStringBytes("index")),
		ID:     id,
		Fields: fields,
	}, true
}

// DecodeSearchResult parses a universal search response body.
func DecodeSearchResult(body []byte) (model.SearchResult, error) {
	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return model.SearchResult{}, NewParseError("invalid search response", err)
	}

	result := model.SearchResult{
		Query:        string(v.GetStringBytes("query")),
		TotalResults: v.GetInt("total_results"),
	}
	for _, hit := range v.GetArray("messages") {
		if rec, ok := DecodeRecord(hit); ok {
			result.Records = append(result.Records, rec)
		}
	}
	return result, nil
}

// DecodeFieldTypes parses the field type listing. Entries look like
// {"name": "source", "type": {"type": "string", ...}}.
func DecodeFieldTypes(body []byte) (model.FieldTypes, error) {
	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return model.FieldTypes{}, NewParseError("invalid field types response", err)
	}
	if v.Type() != fastjson.TypeArray {
		return model.FieldTypes{}, NewParseError("invalid field types response", fmt.Errorf("expected array, got %s", v.Type()))
	}

	var out model.FieldTypes
	for _, entry := range v.GetArray() {
		name := string(entry.GetStringBytes("name"))
		if name == "" {
			continue
		}
		typ := model.FieldType(entry.GetStringBytes("type", "type"))
		if typ == "" {
			typ = model.FieldTypeUnknown
		}
		out.Fields = append(out.Fields, model.FieldDescriptor{Name: name, Type: typ})
	}
	return out, nil
}
