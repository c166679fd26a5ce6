package log

import (
	"fmt"
	"time"
)

// EntryZ is the chained, allocation-light logging entry used everywhere in
// this codebase in place of the printf-style Entry: fields are appended to
// a fixed-size buffer and only formatted into logrus fields when End() is
// reached, so a disabled module (see Module.Enabled) never allocates.
type EntryZ struct {
	mod   Module
	lvl   Level
	msg   string
	zfbuf [16]ZField
	zfidx int
}

func NewEntryZ() *EntryZ {
	return &EntryZ{}
}

func (e *EntryZ) push(f ZField) *EntryZ {
	if e == nil {
		return nil
	}
	if e.zfidx < len(e.zfbuf) {
		e.zfbuf[e.zfidx] = f
		e.zfidx++
	}
	return e
}

func (e *EntryZ) Bool(key string, v bool) *EntryZ {
	return e.push(ZField{Type: FieldTypeBool, Key: key, Boolean: v})
}

func (e *EntryZ) String(key, v string) *EntryZ {
	return e.push(ZField{Type: FieldTypeString, Key: key, String: v})
}

func (e *EntryZ) Hex8(key string, v uint8) *EntryZ {
	return e.push(ZField{Type: FieldTypeHex8, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Hex16(key string, v uint16) *EntryZ {
	return e.push(ZField{Type: FieldTypeHex16, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Hex32(key string, v uint32) *EntryZ {
	return e.push(ZField{Type: FieldTypeHex32, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Hex64(key string, v uint64) *EntryZ {
	return e.push(ZField{Type: FieldTypeHex64, Key: key, Integer: v})
}

func (e *EntryZ) Uint8(key string, v uint8) *EntryZ {
	return e.push(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Uint16(key string, v uint16) *EntryZ {
	return e.push(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Uint32(key string, v uint32) *EntryZ {
	return e.push(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Uint(key string, v uint64) *EntryZ {
	return e.push(ZField{Type: FieldTypeUint, Key: key, Integer: v})
}

func (e *EntryZ) Int(key string, v int64) *EntryZ {
	return e.push(ZField{Type: FieldTypeInt, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Err(key string, v error) *EntryZ {
	return e.push(ZField{Type: FieldTypeError, Key: key, Error: v})
}

func (e *EntryZ) Duration(key string, v time.Duration) *EntryZ {
	return e.push(ZField{Type: FieldTypeDuration, Key: key, Duration: v})
}

func (e *EntryZ) Stringer(key string, v fmt.Stringer) *EntryZ {
	return e.push(ZField{Type: FieldTypeStringer, Key: key, Interface: v})
}

func (e *EntryZ) Blob(key string, v []byte) *EntryZ {
	return e.push(ZField{Type: FieldTypeBlob, Key: key, Blob: v})
}

// LogContext lets a component (e.g. the scheduler) attach ambient fields,
// such as the current raster line, to every log entry without threading
// them through every call site.
type LogContext interface {
	AddLogContext(e *EntryZ)
}

var contexts []LogContext

func RegisterLogContext(c LogContext) {
	contexts = append(contexts, c)
}

// End formats the entry and hands it to the plain Entry machinery, which
// owns the actual logrus call.
func (e *EntryZ) End() {
	if e == nil {
		return
	}
	entry := Entry{mod: e.mod}
	fields := make(Fields, e.zfidx)
	for _, f := range e.zfbuf[:e.zfidx] {
		fields[f.Key] = f.Value()
	}
	entry = entry.WithFields(fields)
	switch e.lvl {
	case DebugLevel:
		entry.Debug(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	case WarnLevel:
		entry.Warn(e.msg)
	case ErrorLevel:
		entry.Error(e.msg)
	case FatalLevel:
		entry.Fatal(e.msg)
	case PanicLevel:
		entry.Panic(e.msg)
	}
}
