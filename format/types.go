package format

type (
	// Kind identifies the element type of a column or a typed slice.
	Kind uint8
	// CompressionType identifies the transport compression applied to an encoded data unit.
	CompressionType uint8
)

// Char is a UTF-16 code unit. Only the low byte is kept on the wire.
type Char uint16

const (
	KindInvalid Kind = iota // KindInvalid marks a value that is not a supported typed slice.
	KindUint8               // KindUint8 is an unsigned 8-bit integer (FITS 'B').
	KindInt8                // KindInt8 is a signed 8-bit integer.
	KindBool                // KindBool is a logical value (FITS 'L').
	KindChar                // KindChar is a character stored as one byte (FITS 'A').
	KindInt16               // KindInt16 is a 16-bit integer (FITS 'I').
	KindInt32               // KindInt32 is a 32-bit integer (FITS 'J').
	KindInt64               // KindInt64 is a 64-bit integer (FITS 'K').
	KindFloat32             // KindFloat32 is an IEEE-754 single (FITS 'E').
	KindFloat64             // KindFloat64 is an IEEE-754 double (FITS 'D').

	numKinds = int(KindFloat64) + 1
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// NumKinds is the number of valid kinds, KindInvalid excluded.
const NumKinds = numKinds - 1

// sizes is the wire width of every kind, indexed by Kind.
var sizes = [numKinds]int{
	KindInvalid: 0,
	KindUint8:   1,
	KindInt8:    1,
	KindBool:    1,
	KindChar:    1,
	KindInt16:   2,
	KindInt32:   4,
	KindInt64:   8,
	KindFloat32: 4,
	KindFloat64: 8,
}

var kindNames = [numKinds]string{
	KindInvalid: "Invalid",
	KindUint8:   "Uint8",
	KindInt8:    "Int8",
	KindBool:    "Bool",
	KindChar:    "Char",
	KindInt16:   "Int16",
	KindInt32:   "Int32",
	KindInt64:   "Int64",
	KindFloat32: "Float32",
	KindFloat64: "Float64",
}

// Kinds lists every valid kind in declaration order.
var Kinds = [NumKinds]Kind{
	KindUint8, KindInt8, KindBool, KindChar, KindInt16, KindInt32, KindInt64, KindFloat32, KindFloat64,
}

// Size returns the number of bytes one element of kind k occupies on the wire.
// It returns 0 for KindInvalid and unknown kinds.
func Size(k Kind) int {
	if int(k) >= numKinds {
		return 0
	}

	return sizes[k]
}

// Size returns the wire width of the kind in bytes.
func (k Kind) Size() int {
	return Size(k)
}

// Valid reports whether k is one of the supported element kinds.
func (k Kind) Valid() bool {
	return k > KindInvalid && int(k) < numKinds
}

// String returns the name of the kind, "Unknown" outside the enumeration.
func (k Kind) String() string {
	if int(k) >= numKinds {
		return "Unknown"
	}

	return kindNames[k]
}

// ParseKind maps a kind name, as returned by Kind.String, back to the kind.
// Matching is exact; KindInvalid is returned for unknown names.
func ParseKind(name string) Kind {
	for _, k := range Kinds {
		if kindNames[k] == name {
			return k
		}
	}

	return KindInvalid
}

// KindOf returns the element kind of a one-dimensional typed slice.
//
// Parameters:
//   - v: a []uint8, []int8, []bool, []Char, []int16, []int32, []int64, []float32 or []float64
//
// Returns:
//   - Kind: the element kind, or KindInvalid for any other value
func KindOf(v any) Kind {
	switch v.(type) {
	case []uint8:
		return KindUint8
	case []int8:
		return KindInt8
	case []bool:
		return KindBool
	case []Char:
		return KindChar
	case []int16:
		return KindInt16
	case []int32:
		return KindInt32
	case []int64:
		return KindInt64
	case []float32:
		return KindFloat32
	case []float64:
		return KindFloat64
	default:
		return KindInvalid
	}
}

// SliceLen returns the length of a typed slice, or -1 if v is not one.
func SliceLen(v any) int {
	switch s := v.(type) {
	case []uint8:
		return len(s)
	case []int8:
		return len(s)
	case []bool:
		return len(s)
	case []Char:
		return len(s)
	case []int16:
		return len(s)
	case []int32:
		return len(s)
	case []int64:
		return len(s)
	case []float32:
		return len(s)
	case []float64:
		return len(s)
	default:
		return -1
	}
}

// MakeSlice allocates a zeroed typed slice of kind k with n elements.
// It returns nil for an invalid kind.
func MakeSlice(k Kind, n int) any {
	switch k {
	case KindUint8:
		return make([]uint8, n)
	case KindInt8:
		return make([]int8, n)
	case KindBool:
		return make([]bool, n)
	case KindChar:
		return make([]Char, n)
	case KindInt16:
		return make([]int16, n)
	case KindInt32:
		return make([]int32, n)
	case KindInt64:
		return make([]int64, n)
	case KindFloat32:
		return make([]float32, n)
	case KindFloat64:
		return make([]float64, n)
	default:
		return nil
	}
}

// Chars converts a string into a Char slice, one code unit per byte of s.
func Chars(s string) []Char {
	out := make([]Char, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = Char(s[i])
	}

	return out
}

// CharString converts a Char slice back to a string keeping the low byte of every unit.
func CharString(cs []Char) string {
	b := make([]byte, len(cs))
	for i, c := range cs {
		b[i] = byte(c)
	}

	return string(b)
}

// String returns the name used in configuration files.
func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a case-sensitive compression name ("None", "Zstd", "S2", "LZ4")
// to its type. The empty string maps to CompressionNone.
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "", "None", "none":
		return CompressionNone, true
	case "Zstd", "zstd":
		return CompressionZstd, true
	case "S2", "s2":
		return CompressionS2, true
	case "LZ4", "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
