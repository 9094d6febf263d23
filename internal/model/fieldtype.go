package model

// FieldType is the semantic type of a message field, used to choose how
// a value is rendered.
type FieldType string

const (
	FieldTypeUnknown  FieldType = "unknown"
	FieldTypeString   FieldType = "string"
	FieldTypeLong     FieldType = "long"
	FieldTypeInt      FieldType = "int"
	FieldTypeDouble   FieldType = "double"
	FieldTypeFloat    FieldType = "float"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeDate     FieldType = "date"
	FieldTypeIP       FieldType = "ip"
	FieldTypeGeoPoint FieldType = "geo-point"
)

// Short returns a compact label for table headers.
func (t FieldType) Short() string {
	switch t {
	case FieldTypeString:
		return "str"
	case FieldTypeLong, FieldTypeInt:
		return "int"
	case FieldTypeDouble, FieldTypeFloat:
		return "num"
	case FieldTypeBoolean:
		return "bool"
	case FieldTypeDate:
		return "date"
	case FieldTypeIP:
		return "ip"
	case FieldTypeGeoPoint:
		return "geo"
	default:
		return "?"
	}
}

// FieldDescriptor describes one field known to the field type registry.
type FieldDescriptor struct {
	Name string
	Type FieldType
}
