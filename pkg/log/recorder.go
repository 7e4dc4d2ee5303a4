// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"fmt"
	"sync"
)

// Level is the severity of a recorded message.
type Level int

// Levels of recorded messages.
const (
	LevelWarn Level = iota
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Message is a single message kept by Recorder.
type Message struct {
	Level Level
	Text  string
}

// Recorder is a Logger keeping messages in memory and optionally forwarding
// them to another Logger. Fatalf is recorded and forwarded but does not exit
// unless the forward logger does.
type Recorder struct {
	Forward Logger

	locker   sync.Mutex
	messages []Message
}

var _ Logger = (*Recorder)(nil)

func (r *Recorder) record(level Level, format string, args []interface{}) {
	r.locker.Lock()
	r.messages = append(r.messages, Message{Level: level, Text: fmt.Sprintf(format, args...)})
	r.locker.Unlock()
}

// Warnf implements Logger.
func (r *Recorder) Warnf(format string, args ...interface{}) {
	r.record(LevelWarn, format, args)
	if r.Forward != nil {
		r.Forward.Warnf(format, args...)
	}
}

// Errorf implements Logger.
func (r *Recorder) Errorf(format string, args ...interface{}) {
	r.record(LevelError, format, args)
	if r.Forward != nil {
		r.Forward.Errorf(format, args...)
	}
}

// Fatalf implements Logger.
func (r *Recorder) Fatalf(format string, args ...interface{}) {
	r.record(LevelFatal, format, args)
	if r.Forward != nil {
		r.Forward.Fatalf(format, args...)
	}
}

// Messages returns a copy of the recorded messages.
func (r *Recorder) Messages() []Message {
	r.locker.Lock()
	defer r.locker.Unlock()
	return append([]Message(nil), r.messages...)
}

// Count returns the number of recorded messages of the given level.
func (r *Recorder) Count(level Level) int {
	r.locker.Lock()
	defer r.locker.Unlock()
	n := 0
	for _, m := range r.messages {
		if m.Level == level {
			n++
		}
	}
	return n
}

// Reset drops every recorded message.
func (r *Recorder) Reset() {
	r.locker.Lock()
	r.messages = nil
	r.locker.Unlock()
}
