package grammar

// Format identifies one of the semantic text formats a grammar can assign.
// The set mirrors the classic syntax-definition taxonomy; styles are mapped
// onto these identifiers by the consumer.
type Format int8

const (
	// Inherit is the zero value: use the enclosing context's default format.
	Inherit Format = iota
	Normal
	VisualWhitespace
	Keyword
	DataType
	Decimal
	BaseN
	Float
	Char
	String
	Comment
	Alert
	Error
	Function
	RegionMarker
	Others
)

// NumFormats counts the concrete formats, Inherit excluded.
const NumFormats = int(Others)

var formatNames = [...]string{
	Inherit:          "Inherit",
	Normal:           "Normal",
	VisualWhitespace: "VisualWhitespace",
	Keyword:          "Keyword",
	DataType:         "DataType",
	Decimal:          "Decimal",
	BaseN:            "BaseN",
	Float:            "Float",
	Char:             "Char",
	String:           "String",
	Comment:          "Comment",
	Alert:            "Alert",
	Error:            "Error",
	Function:         "Function",
	RegionMarker:     "RegionMarker",
	Others:           "Others",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "InvalidFormat"
	}
	return formatNames[f]
}
