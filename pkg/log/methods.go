package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

func (b *BaseLogger) clone() *BaseLogger {
	nb := &BaseLogger{
		level:     b.level,
		fields:    make(Fields, len(b.fields)),
		formatter: b.formatter,
		outputs:   b.outputs,
	}
	for k, v := range b.fields {
		nb.fields[k] = v
	}
	nb.slogLogger = slog.New(newBridgeHandler(nb))
	return nb
}

func (b *BaseLogger) log(level Level, msg string, fields []Field) {
	if level < b.level {
		return
	}
	attrs := attrsFromMap(b.fields)
	attrs = append(attrs, attrsFromFieldSlice(fields)...)
	b.slogLogger.LogAttrs(context.Background(), toSlogLevel(level), msg, attrs...)
	if level == FatalLevel {
		os.Exit(1)
	}
}

func (b *BaseLogger) Debug(msg string, fields ...Field) { b.log(DebugLevel, msg, fields) }
func (b *BaseLogger) Info(msg string, fields ...Field)  { b.log(InfoLevel, msg, fields) }
func (b *BaseLogger) Warn(msg string, fields ...Field)  { b.log(WarnLevel, msg, fields) }
func (b *BaseLogger) Error(msg string, fields ...Field) { b.log(ErrorLevel, msg, fields) }
func (b *BaseLogger) Fatal(msg string, fields ...Field) { b.log(FatalLevel, msg, fields) }

func (b *BaseLogger) Debugf(msg string, args ...interface{}) { b.log(DebugLevel, fmt.Sprintf(msg, args...), nil) }
func (b *BaseLogger) Infof(msg string, args ...interface{})  { b.log(InfoLevel, fmt.Sprintf(msg, args...), nil) }
func (b *BaseLogger) Warnf(msg string, args ...interface{})  { b.log(WarnLevel, fmt.Sprintf(msg, args...), nil) }
func (b *BaseLogger) Errorf(msg string, args ...interface{}) { b.log(ErrorLevel, fmt.Sprintf(msg, args...), nil) }
func (b *BaseLogger) Fatalf(msg string, args ...interface{}) { b.log(FatalLevel, fmt.Sprintf(msg, args...), nil) }

func (b *BaseLogger) WithField(key string, value interface{}) Logger {
	nb := b.clone()
	nb.fields[key] = value
	return nb
}

func (b *BaseLogger) WithFields(fields Fields) Logger {
	nb := b.clone()
	for k, v := range fields {
		nb.fields[k] = v
	}
	return nb
}

func (b *BaseLogger) WithError(err error) Logger {
	if err == nil {
		return b
	}
	return b.WithField("error", err.Error())
}

func (b *BaseLogger) With(fields ...Field) Logger {
	nb := b.clone()
	for _, f := range fields {
		nb.fields[f.Key] = f.Value
	}
	return nb
}

func (b *BaseLogger) WithContext(ctx context.Context) Logger {
	extracted := ContextExtractor(ctx)
	if len(extracted) == 0 {
		return b
	}
	return b.WithFields(extracted)
}

func (b *BaseLogger) WithComponent(component string) Logger {
	return b.WithField(ComponentKey, component)
}

func (b *BaseLogger) SetLevel(level Level) { b.level = level }
func (b *BaseLogger) GetLevel() Level      { return b.level }
