package devtools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Hook returns a go-redis hook that logs every command the client sends.
// Commands sent in a pipeline are logged between a begin and an exec marker;
// the exec marker carries the round trip time.
func (t *Tracker) Hook() redis.Hook {
	return commandHook{tracker: t}
}

type commandHook struct {
	tracker *Tracker
}

func (commandHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h commandHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		h.tracker.record(ctx, Entry{Kind: EntryCommand, Command: commandLine(cmd), Duration: time.Since(start)})
		return err
	}
}

func (h commandHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		if len(cmds) == 0 {
			return next(ctx, cmds)
		}
		h.tracker.record(ctx, Entry{Kind: EntryPipelineBegin})
		start := time.Now()
		err := next(ctx, cmds)
		elapsed := time.Since(start)
		for _, cmd := range cmds {
			h.tracker.record(ctx, Entry{Kind: EntryCommand, Command: commandLine(cmd)})
		}
		h.tracker.record(ctx, Entry{Kind: EntryPipelineExec, Duration: elapsed})
		return err
	}
}

func commandLine(cmd redis.Cmder) string {
	args := cmd.Args()
	if len(args) == 0 {
		return cmd.Name()
	}
	var b strings.Builder
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, arg)
	}
	return b.String()
}
