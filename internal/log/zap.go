package log

import "go.uber.org/zap"

// --- ZapLogger: forwards events to a structured process logger ---

// ZapLogger records events in memory and writes each one to a zap logger
// at debug level.
type ZapLogger struct {
	MemoryLogger
	z *zap.Logger
}

func NewZapLogger(z *zap.Logger) *ZapLogger {
	if z == nil {
		z = zap.NewNop()
	}
	return &ZapLogger{z: z}
}

func (l *ZapLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fields := []zap.Field{
		zap.Int("seq", l.seq),
		zap.Int("round", event.Round),
		zap.String("actor", event.Actor),
		zap.Stringer("type", event.Type),
	}
	if event.Card != "" {
		fields = append(fields, zap.String("card", event.Card))
	}
	l.z.Debug(event.Details, fields...)
}
