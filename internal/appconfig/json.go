package appconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Parse decodes a single JSON value, keeping object key order.
// Numbers are kept as json.Number.
func Parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("invalid character after top-level value at offset %d", dec.InputOffset())
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := NewObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key at offset %d is not a string", dec.InputOffset())
			}
			val, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q at offset %d", delim, dec.InputOffset())
	}
}

// Indent serializes v as JSON with one level of indent per nesting depth,
// the same layout JSON.stringify(v, null, indent) produces.
func Indent(v any, indent string) (string, error) {
	var sb strings.Builder
	if err := writeValue(&sb, v, indent, ""); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeValue(sb *strings.Builder, v any, indent, prefix string) error {
	switch val := v.(type) {
	case nil:
		sb.WriteString("null")
	case bool:
		sb.WriteString(strconv.FormatBool(val))
	case string:
		return writeString(sb, val)
	case json.Number:
		f, err := val.Float64()
		if err != nil && !isRangeError(err) {
			return fmt.Errorf("invalid number %q: %w", val, err)
		}
		sb.WriteString(formatNumber(f))
	case float64:
		sb.WriteString(formatNumber(val))
	case int:
		sb.WriteString(strconv.Itoa(val))
	case []any:
		if len(val) == 0 {
			sb.WriteString("[]")
			return nil
		}
		inner := prefix + indent
		sb.WriteString("[\n")
		for i, item := range val {
			sb.WriteString(inner)
			if err := writeValue(sb, item, indent, inner); err != nil {
				return err
			}
			if i < len(val)-1 {
				sb.WriteByte(',')
			}
			sb.WriteByte('\n')
		}
		sb.WriteString(prefix)
		sb.WriteByte(']')
	case *Object:
		if val == nil || val.Len() == 0 {
			sb.WriteString("{}")
			return nil
		}
		inner := prefix + indent
		sb.WriteString("{\n")
		for i, k := range val.keys {
			sb.WriteString(inner)
			if err := writeString(sb, k); err != nil {
				return err
			}
			sb.WriteString(": ")
			if err := writeValue(sb, val.values[k], indent, inner); err != nil {
				return err
			}
			if i < len(val.keys)-1 {
				sb.WriteByte(',')
			}
			sb.WriteByte('\n')
		}
		sb.WriteString(prefix)
		sb.WriteByte('}')
	default:
		return fmt.Errorf("unsupported JSON value of type %T", v)
	}
	return nil
}

func writeString(sb *strings.Builder, s string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	sb.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return nil
}

func isRangeError(err error) bool {
	var numErr *strconv.NumError
	return errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange)
}

// formatNumber renders f the way ECMAScript Number#toString does.
// Non-finite values serialize as null, like JSON.stringify.
func formatNumber(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "null"
	}
	if f == 0 {
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, float64, int:
		return "number"
	case []any:
		return "array"
	case *Object:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
