// Package zapbridge lets code written against go.uber.org/zap log
// through a twyg handler.
//
//	core := zapbridge.NewCore(h, level, "svc")
//	zl := zap.New(core, zap.AddCaller())
//
// Zap levels fold onto twyg's five levels: DPanic, Panic and Fatal render
// as ERROR. The zap logger name becomes the target. Fields keep their
// order; namespaces prefix later keys with "<namespace>.".
package zapbridge

import (
	"path/filepath"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/twyg/core"
	"github.com/philipp01105/twyg/handler"
)

type zapCore struct {
	handler handler.Handler
	level   *core.LevelVar
	target  string
	fields  []core.Field
	prefix  string
}

// NewCore returns a zapcore.Core writing to h. Entries below level are
// dropped; a nil level means Info. target is used when the zap logger
// has no name.
func NewCore(h handler.Handler, level *core.LevelVar, target string) zapcore.Core {
	if level == nil {
		level = core.NewLevelVar(core.InfoLevel)
	}
	return &zapCore{handler: h, level: level, target: target}
}

// Level converts a zap level to a twyg level.
func Level(l zapcore.Level) core.Level {
	switch {
	case l < zapcore.InfoLevel:
		return core.DebugLevel
	case l == zapcore.InfoLevel:
		return core.InfoLevel
	case l == zapcore.WarnLevel:
		return core.WarnLevel
	default:
		return core.ErrorLevel
	}
}

func (c *zapCore) Enabled(l zapcore.Level) bool {
	return Level(l) >= c.level.Level()
}

func (c *zapCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	enc := &fieldEncoder{fields: append([]core.Field(nil), c.fields...), prefix: c.prefix}
	for i := range fields {
		fields[i].AddTo(enc)
	}
	clone.fields = enc.fields
	clone.prefix = enc.prefix
	return &clone
}

func (c *zapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *zapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	entry := core.GetEntry()
	target := ent.LoggerName
	if target == "" {
		target = c.target
	}
	entry.Reset(ent.Time, Level(ent.Level), target, ent.Message, callerInfo(ent.Caller), c.fields)

	enc := &fieldEncoder{fields: entry.Fields, prefix: c.prefix}
	for i := range fields {
		fields[i].AddTo(enc)
	}
	entry.Fields = enc.fields

	err := c.handler.Handle(entry)
	if handler.CanRecycle(c.handler) {
		core.PutEntry(entry)
	}
	return err
}

// Sync is a no-op; handlers flush on Close.
func (c *zapCore) Sync() error {
	return nil
}

func callerInfo(ec zapcore.EntryCaller) core.CallerInfo {
	if !ec.Defined {
		return core.CallerInfo{}
	}
	return core.CallerInfo{
		File:      ec.File,
		ShortFile: filepath.Base(ec.File),
		Line:      ec.Line,
		Function:  ec.Function,
		Defined:   true,
	}
}

// fieldEncoder collects zap fields as core fields.
type fieldEncoder struct {
	fields []core.Field
	prefix string
}

func (e *fieldEncoder) key(k string) string {
	if e.prefix == "" {
		return k
	}
	return e.prefix + "." + k
}

func (e *fieldEncoder) add(f core.Field) {
	e.fields = append(e.fields, f)
}

func (e *fieldEncoder) AddArray(key string, v zapcore.ArrayMarshaler) error {
	arr := &arrayEncoder{}
	err := v.MarshalLogArray(arr)
	e.add(core.Any(e.key(key), arr.elems))
	return err
}

func (e *fieldEncoder) AddObject(key string, v zapcore.ObjectMarshaler) error {
	nested := &fieldEncoder{prefix: e.key(key)}
	err := v.MarshalLogObject(nested)
	e.fields = append(e.fields, nested.fields...)
	return err
}

func (e *fieldEncoder) AddBinary(key string, v []byte) { e.add(core.Any(e.key(key), v)) }
func (e *fieldEncoder) AddByteString(key string, v []byte) {
	e.add(core.String(e.key(key), string(v)))
}
func (e *fieldEncoder) AddBool(key string, v bool)             { e.add(core.Bool(e.key(key), v)) }
func (e *fieldEncoder) AddComplex128(key string, v complex128) { e.add(core.Any(e.key(key), v)) }
func (e *fieldEncoder) AddComplex64(key string, v complex64)   { e.add(core.Any(e.key(key), v)) }
func (e *fieldEncoder) AddDuration(key string, v time.Duration) {
	e.add(core.Duration(e.key(key), v))
}
func (e *fieldEncoder) AddFloat64(key string, v float64) { e.add(core.Float64(e.key(key), v)) }
func (e *fieldEncoder) AddFloat32(key string, v float32) {
	e.add(core.Float64(e.key(key), float64(v)))
}
func (e *fieldEncoder) AddInt(key string, v int)        { e.add(core.Int(e.key(key), v)) }
func (e *fieldEncoder) AddInt64(key string, v int64)    { e.add(core.Int64(e.key(key), v)) }
func (e *fieldEncoder) AddInt32(key string, v int32)    { e.add(core.Int64(e.key(key), int64(v))) }
func (e *fieldEncoder) AddInt16(key string, v int16)    { e.add(core.Int64(e.key(key), int64(v))) }
func (e *fieldEncoder) AddInt8(key string, v int8)      { e.add(core.Int64(e.key(key), int64(v))) }
func (e *fieldEncoder) AddString(key, v string)         { e.add(core.String(e.key(key), v)) }
func (e *fieldEncoder) AddTime(key string, v time.Time) { e.add(core.Time(e.key(key), v)) }
func (e *fieldEncoder) AddUint(key string, v uint)      { e.add(core.Uint64(e.key(key), uint64(v))) }
func (e *fieldEncoder) AddUint64(key string, v uint64)  { e.add(core.Uint64(e.key(key), v)) }
func (e *fieldEncoder) AddUint32(key string, v uint32)  { e.add(core.Uint64(e.key(key), uint64(v))) }
func (e *fieldEncoder) AddUint16(key string, v uint16)  { e.add(core.Uint64(e.key(key), uint64(v))) }
func (e *fieldEncoder) AddUint8(key string, v uint8)    { e.add(core.Uint64(e.key(key), uint64(v))) }
func (e *fieldEncoder) AddUintptr(key string, v uintptr) {
	e.add(core.Uint64(e.key(key), uint64(v)))
}

func (e *fieldEncoder) AddReflected(key string, v interface{}) error {
	e.add(core.Any(e.key(key), v))
	return nil
}

func (e *fieldEncoder) OpenNamespace(key string) {
	e.prefix = e.key(key)
}

// arrayEncoder collects array elements into a slice rendered with %v.
type arrayEncoder struct {
	elems []interface{}
}

func (a *arrayEncoder) AppendBool(v bool)              { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendByteString(v []byte)      { a.elems = append(a.elems, string(v)) }
func (a *arrayEncoder) AppendComplex128(v complex128)  { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendComplex64(v complex64)    { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendFloat64(v float64)        { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendFloat32(v float32)        { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendInt(v int)                { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendInt64(v int64)            { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendInt32(v int32)            { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendInt16(v int16)            { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendInt8(v int8)              { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendString(v string)          { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendUint(v uint)              { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendUint64(v uint64)          { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendUint32(v uint32)          { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendUint16(v uint16)          { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendUint8(v uint8)            { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendUintptr(v uintptr)        { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendDuration(v time.Duration) { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendTime(v time.Time)         { a.elems = append(a.elems, v) }

func (a *arrayEncoder) AppendReflected(v interface{}) error {
	a.elems = append(a.elems, v)
	return nil
}

func (a *arrayEncoder) AppendArray(v zapcore.ArrayMarshaler) error {
	inner := &arrayEncoder{}
	err := v.MarshalLogArray(inner)
	a.elems = append(a.elems, inner.elems)
	return err
}

func (a *arrayEncoder) AppendObject(v zapcore.ObjectMarshaler) error {
	m := zapcore.NewMapObjectEncoder()
	err := v.MarshalLogObject(m)
	a.elems = append(a.elems, m.Fields)
	return err
}
