package scene

import (
	"github.com/bgrewell/jps-kit/pkg/cursor"
	"github.com/bgrewell/jps-kit/pkg/jpserr"
)

// valueCodec encodes/decodes one inline property value of a given
// class name. String values are handled separately since they need
// pool access.
type valueCodec struct {
	encode func(c *cursor.Cursor, v any) error
	decode func(c *cursor.Cursor) (any, error)
}

var valueCodecs = map[string]valueCodec{
	"Boolean": {
		encode: func(c *cursor.Cursor, v any) error { return c.WriteBool(v.(bool)) },
		decode: func(c *cursor.Cursor) (any, error) { return c.ReadBool() },
	},
	"Integer": {
		encode: func(c *cursor.Cursor, v any) error { return c.WriteI32(v.(int32)) },
		decode: func(c *cursor.Cursor) (any, error) { return c.ReadI32() },
	},
	"Unsigned Integer": {
		encode: func(c *cursor.Cursor, v any) error { return c.WriteU32(v.(uint32)) },
		decode: func(c *cursor.Cursor) (any, error) { return c.ReadU32() },
	},
	"Short": {
		encode: func(c *cursor.Cursor, v any) error { return c.WriteU16JPS(uint16(v.(int16)), cursor.FillerCD) },
		decode: func(c *cursor.Cursor) (any, error) {
			v, err := c.ReadU16JPS()
			return int16(v), err
		},
	},
	"Unsigned Short": {
		encode: func(c *cursor.Cursor, v any) error { return c.WriteU16JPS(v.(uint16), cursor.FillerCD) },
		decode: func(c *cursor.Cursor) (any, error) { return c.ReadU16JPS() },
	},
	"Float": {
		encode: func(c *cursor.Cursor, v any) error { return c.WriteF32(v.(float32)) },
		decode: func(c *cursor.Cursor) (any, error) { return c.ReadF32() },
	},
	"Point2": {
		encode: func(c *cursor.Cursor, v any) error { return writeFloats(c, v.([2]float32)[:]) },
		decode: func(c *cursor.Cursor) (any, error) {
			fs, err := readFloats(c, 2)
			if err != nil {
				return nil, err
			}
			return [2]float32{fs[0], fs[1]}, nil
		},
	},
	"Point3": {
		encode: func(c *cursor.Cursor, v any) error { return writeFloats(c, v.([3]float32)[:]) },
		decode: func(c *cursor.Cursor) (any, error) {
			fs, err := readFloats(c, 3)
			if err != nil {
				return nil, err
			}
			return [3]float32{fs[0], fs[1], fs[2]}, nil
		},
	},
	"Matrix3": {
		encode: func(c *cursor.Cursor, v any) error { return writeFloats(c, v.([9]float32)[:]) },
		decode: func(c *cursor.Cursor) (any, error) {
			fs, err := readFloats(c, 9)
			if err != nil {
				return nil, err
			}
			var m [9]float32
			copy(m[:], fs)
			return m, nil
		},
	},
	"Color (RGB)": {
		encode: func(c *cursor.Cursor, v any) error { return writeFloats(c, v.([3]float32)[:]) },
		decode: func(c *cursor.Cursor) (any, error) {
			fs, err := readFloats(c, 3)
			if err != nil {
				return nil, err
			}
			return [3]float32{fs[0], fs[1], fs[2]}, nil
		},
	},
	"Color (RGBA)": {
		encode: func(c *cursor.Cursor, v any) error { return writeFloats(c, v.([4]float32)[:]) },
		decode: func(c *cursor.Cursor) (any, error) {
			fs, err := readFloats(c, 4)
			if err != nil {
				return nil, err
			}
			return [4]float32{fs[0], fs[1], fs[2], fs[3]}, nil
		},
	},
	"Entity Pointer": {
		encode: func(c *cursor.Cursor, v any) error { return c.WriteU32(v.(uint32)) },
		decode: func(c *cursor.Cursor) (any, error) { return c.ReadU32() },
	},
}

func writeFloats(c *cursor.Cursor, fs []float32) error {
	for _, f := range fs {
		if err := c.WriteF32(f); err != nil {
			return err
		}
	}
	return nil
}

func readFloats(c *cursor.Cursor, n int) ([]float32, error) {
	fs := make([]float32, n)
	for i := range fs {
		v, err := c.ReadF32()
		if err != nil {
			return nil, err
		}
		fs[i] = v
	}
	return fs, nil
}

// isStringClass reports whether className's values live in the string
// pool rather than being encoded inline.
func isStringClass(className string) bool {
	return className == "String"
}

// knownPropertyClass reports whether className is one of the 13
// recognized property value types (String included).
func knownPropertyClass(className string) bool {
	if isStringClass(className) {
		return true
	}
	_, ok := valueCodecs[className]
	return ok
}

func requireKnownClass(className string) error {
	if !knownPropertyClass(className) {
		return &jpserr.UnknownPropertyType{Name: className}
	}
	return nil
}

// normalizeJSONValue converts a value decoded by encoding/json (float64
// for every number, []any for every array) back into the concrete Go
// type the className's codec expects.
func normalizeJSONValue(className string, raw any) (any, error) {
	if isStringClass(className) {
		s, _ := raw.(string)
		return s, nil
	}
	switch className {
	case "Boolean":
		b, _ := raw.(bool)
		return b, nil
	case "Integer":
		return int32(raw.(float64)), nil
	case "Unsigned Integer", "Entity Pointer":
		return uint32(raw.(float64)), nil
	case "Short":
		return int16(raw.(float64)), nil
	case "Unsigned Short":
		return uint16(raw.(float64)), nil
	case "Float":
		return float32(raw.(float64)), nil
	case "Point2":
		fs, err := floatArray(raw, 2)
		if err != nil {
			return nil, err
		}
		return [2]float32{fs[0], fs[1]}, nil
	case "Point3", "Color (RGB)":
		fs, err := floatArray(raw, 3)
		if err != nil {
			return nil, err
		}
		return [3]float32{fs[0], fs[1], fs[2]}, nil
	case "Color (RGBA)":
		fs, err := floatArray(raw, 4)
		if err != nil {
			return nil, err
		}
		return [4]float32{fs[0], fs[1], fs[2], fs[3]}, nil
	case "Matrix3":
		fs, err := floatArray(raw, 9)
		if err != nil {
			return nil, err
		}
		var m [9]float32
		copy(m[:], fs)
		return m, nil
	default:
		return nil, &jpserr.UnknownPropertyType{Name: className}
	}
}

func floatArray(raw any, n int) ([]float32, error) {
	arr, ok := raw.([]any)
	if !ok || len(arr) != n {
		return nil, &jpserr.BadEncoding{Context: "property value array"}
	}
	out := make([]float32, n)
	for i, v := range arr {
		f, ok := v.(float64)
		if !ok {
			return nil, &jpserr.BadEncoding{Context: "property value array"}
		}
		out[i] = float32(f)
	}
	return out, nil
}
