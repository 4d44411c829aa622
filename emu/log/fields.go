package log

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

type FieldType int

const (
	FieldTypeUnknown FieldType = iota
	FieldTypeBool
	FieldTypeString
	FieldTypeHex8
	FieldTypeHex16
	FieldTypeHex32
	FieldTypeHex64
	FieldTypeInt
	FieldTypeUint
	FieldTypeError
	FieldTypeDuration
	FieldTypeStringer
	FieldTypeBlob
)

// ZField is a typed log field. Its textual value is only built when the entry
// is emitted.
type ZField struct {
	Type FieldType
	Key  string

	// Only one of these is populated, depending on Type.
	String    string
	Integer   uint64
	Duration  time.Duration
	Error     error
	Interface any
	Boolean   bool
	Blob      []byte
}

// Value returns the textual value of f.
func (f *ZField) Value() string {
	return string(f.appendValue(nil))
}

func (f *ZField) appendValue(dst []byte) []byte {
	switch f.Type {
	case FieldTypeBool:
		return strconv.AppendBool(dst, f.Boolean)
	case FieldTypeString:
		return append(dst, f.String...)
	case FieldTypeUint:
		return strconv.AppendUint(dst, f.Integer, 10)
	case FieldTypeInt:
		return strconv.AppendInt(dst, int64(f.Integer), 10)
	case FieldTypeHex8:
		return appendHex(dst, f.Integer, 2)
	case FieldTypeHex16:
		return appendHex(dst, f.Integer, 4)
	case FieldTypeHex32:
		return appendHex(dst, f.Integer, 8)
	case FieldTypeHex64:
		return appendHex(dst, f.Integer, 16)
	case FieldTypeError:
		if f.Error == nil {
			return append(dst, "<nil>"...)
		}
		return append(dst, f.Error.Error()...)
	case FieldTypeDuration:
		return append(dst, f.Duration.String()...)
	case FieldTypeStringer:
		s, ok := f.Interface.(fmt.Stringer)
		if !ok || s == nil {
			return append(dst, "<nil>"...)
		}
		return append(dst, s.String()...)
	case FieldTypeBlob:
		return append(dst, hex.Dump(f.Blob)...)
	}
	return dst
}

// appendHex appends v in lowercase hexadecimal, zero-padded to width digits.
func appendHex(dst []byte, v uint64, width int) []byte {
	var buf [16]byte
	digits := strconv.AppendUint(buf[:0], v, 16)
	for range width - len(digits) {
		dst = append(dst, '0')
	}
	return append(dst, digits...)
}
