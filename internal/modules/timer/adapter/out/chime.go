package out

import (
	"context"
	"os/exec"
	"runtime"

	"github.com/rs/zerolog/log"

	timerout "focusflow/internal/modules/timer/port/out"
)

// ExecChime plays the completion cue through an external player. Playback is
// fire-and-forget: a blocked or missing player is logged and ignored.
type ExecChime struct {
	command []string
}

// NewExecChime uses the configured command, or a platform default player
// when none is set.
func NewExecChime(command []string) timerout.Chime {
	if len(command) == 0 {
		switch runtime.GOOS {
		case "darwin":
			command = []string{"afplay", "/System/Library/Sounds/Glass.aiff"}
		case "linux":
			command = []string{"paplay", "/usr/share/sounds/freedesktop/stereo/complete.oga"}
		}
	}
	return &ExecChime{command: command}
}

func (c *ExecChime) Play(_ context.Context) {
	if len(c.command) == 0 {
		return
	}
	cmd := exec.Command(c.command[0], c.command[1:]...)
	if err := cmd.Start(); err != nil {
		log.Warn().Err(err).Str("player", c.command[0]).Msg("completion chime failed")
		return
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Warn().Err(err).Str("player", c.command[0]).Msg("completion chime exited with error")
		}
	}()
}
