package core

import (
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Entry represents a single log record: who logged what, where, and with
// which attributes. Fields are kept in insertion order.
type Entry struct {
	Time    time.Time
	Level   Level
	Target  string
	Message string
	Fields  []Field
	Caller  CallerInfo
}

// CallerInfo locates the call site of a record. Defined is false when the
// record carries no caller data at all.
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

var entryPool = sync.Pool{
	New: func() any {
		return &Entry{Fields: make([]Field, 0, 8)}
	},
}

// GetEntry takes a cleared Entry stamped with the current time from the
// pool. Hand it back with PutEntry once the handler is done with it.
func GetEntry() *Entry {
	e := entryPool.Get().(*Entry)
	e.clear()
	e.Time = time.Now()
	return e
}

// Reset copies the given values into e, reusing its Fields backing array.
func (e *Entry) Reset(t time.Time, level Level, target, msg string, caller CallerInfo, fields ...[]Field) {
	e.Time = t
	e.Level = level
	e.Target = target
	e.Message = msg
	e.Caller = caller
	e.Fields = e.Fields[:0]
	for _, fs := range fields {
		e.Fields = append(e.Fields, fs...)
	}
}

// PutEntry recycles e. It must not be used afterwards.
func PutEntry(e *Entry) {
	if e == nil {
		return
	}
	e.clear()
	entryPool.Put(e)
}

// clear drops references held by e but keeps the Fields capacity.
func (e *Entry) clear() {
	e.Target = ""
	e.Message = ""
	e.Caller = CallerInfo{}
	e.Fields = e.Fields[:0]
}

// GetCaller describes the frame skip levels up the stack, counted the
// way runtime.Caller counts them from inside GetCaller: 1 is the
// function that called GetCaller.
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return CallerInfo{}
	}
	var function string
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = fn.Name()
	}
	return newCallerInfo(file, line, function)
}

// CallerFromPC resolves a program counter, as recorded by log/slog, into
// caller information. A zero pc yields an undefined CallerInfo.
func CallerFromPC(pc uintptr) CallerInfo {
	if pc == 0 {
		return CallerInfo{}
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.File == "" {
		return CallerInfo{}
	}
	return newCallerInfo(frame.File, frame.Line, frame.Function)
}

func newCallerInfo(file string, line int, function string) CallerInfo {
	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  function,
		Defined:   true,
	}
}
