package command

import (
	"context"
	"time"

	"github.com/macromate/go-macromate/access"
	"github.com/macromate/go-macromate/pkg/types"
)

func safeClock(clock types.Clock) types.Clock {
	if clock != nil {
		return clock
	}
	return types.SystemClock{}
}

func safeLogger(logger types.Logger) types.Logger {
	if logger != nil {
		return logger
	}
	return types.NopLogger{}
}

func safeHooks(hooks types.Hooks) types.Hooks {
	return hooks
}

func safeActivitySink(sink types.ActivitySink) types.ActivitySink {
	return sink
}

func safeGuard(g access.Guard) access.Guard {
	return access.Ensure(g)
}

func now(clock types.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now()
}

func logActivity(ctx context.Context, sink types.ActivitySink, record types.ActivityRecord) {
	if sink == nil {
		return
	}
	_ = sink.Log(ctx, record)
}

func emitActivityHook(ctx context.Context, hooks types.Hooks, record types.ActivityRecord) {
	if hooks.AfterActivity == nil {
		return
	}
	hooks.AfterActivity(ctx, record)
}

func emitProfileHook(ctx context.Context, hooks types.Hooks, event types.ProfileEvent) {
	if hooks.AfterProfileChange == nil {
		return
	}
	hooks.AfterProfileChange(ctx, event)
}

func emitMacrosHook(ctx context.Context, hooks types.Hooks, event types.MacroEvent) {
	if hooks.AfterMacrosCalculated == nil {
		return
	}
	hooks.AfterMacrosCalculated(ctx, event)
}

func emitIntakeHook(ctx context.Context, hooks types.Hooks, event types.IntakeEvent) {
	if hooks.AfterIntakeChange == nil {
		return
	}
	hooks.AfterIntakeChange(ctx, event)
}

func emitSettingHook(ctx context.Context, hooks types.Hooks, event types.SettingEvent) {
	if hooks.AfterSettingChange == nil {
		return
	}
	hooks.AfterSettingChange(ctx, event)
}

// record logs the activity and fires the activity hook, in that order.
func record(ctx context.Context, sink types.ActivitySink, hooks types.Hooks, rec types.ActivityRecord) {
	logActivity(ctx, sink, rec)
	emitActivityHook(ctx, hooks, rec)
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
