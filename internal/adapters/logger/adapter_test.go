package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingLogger captures invocations for assertions.
type recordingLogger struct {
	level  string
	msg    string
	err    error
	fields map[string]any
}

func (r *recordingLogger) Info(_ context.Context, msg string, fields map[string]any) {
	r.level, r.msg, r.fields = "info", msg, fields
}

func (r *recordingLogger) Debug(_ context.Context, msg string, fields map[string]any) {
	r.level, r.msg, r.fields = "debug", msg, fields
}

func (r *recordingLogger) Warn(_ context.Context, msg string, fields map[string]any) {
	r.level, r.msg, r.fields = "warn", msg, fields
}

func (r *recordingLogger) Error(_ context.Context, msg string, err error, fields map[string]any) {
	r.level, r.msg, r.err, r.fields = "error", msg, err, fields
}

func TestZapAdapter_ForwardsAllLevels(t *testing.T) {
	ctx := context.Background()
	fields := map[string]any{"unit": "app.core"}

	tests := []struct {
		name string
		call func(a *ZapAdapter)
		want string
	}{
		{
			name: "info",
			call: func(a *ZapAdapter) { a.Info(ctx, "m", fields) },
			want: "info",
		},
		{
			name: "debug",
			call: func(a *ZapAdapter) { a.Debug(ctx, "m", fields) },
			want: "debug",
		},
		{
			name: "warn",
			call: func(a *ZapAdapter) { a.Warn(ctx, "m", fields) },
			want: "warn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingLogger{}
			tt.call(NewZapAdapter(rec))

			assert.Equal(t, tt.want, rec.level)
			assert.Equal(t, "m", rec.msg)
			assert.Equal(t, fields, rec.fields)
		})
	}
}

func TestZapAdapter_ForwardsError(t *testing.T) {
	rec := &recordingLogger{}
	cause := errors.New("boom")

	NewZapAdapter(rec).Error(context.Background(), "failed", cause, nil)

	assert.Equal(t, "error", rec.level)
	assert.Equal(t, "failed", rec.msg)
	assert.Equal(t, cause, rec.err)
}
