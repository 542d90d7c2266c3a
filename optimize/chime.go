package optimize

import (
	"os/exec"

	"github.com/pkg/errors"
)

const (
	// DefaultPlayer is the system sound-playing utility.
	DefaultPlayer = "afplay"

	defaultSuccessSound = "/System/Library/Sounds/Glass.aiff"
	defaultFailureSound = "/System/Library/Sounds/Basso.aiff"
)

// SoundChime plays a system sound through an external player binary.
type SoundChime struct {
	Player       string
	SuccessSound string
	FailureSound string
}

func (c *SoundChime) Play(success bool) error {
	player := c.Player
	if player == "" {
		player = DefaultPlayer
	}
	sound := c.FailureSound
	if sound == "" {
		sound = defaultFailureSound
	}
	if success {
		sound = c.SuccessSound
		if sound == "" {
			sound = defaultSuccessSound
		}
	}
	if err := exec.Command(player, sound).Run(); err != nil {
		return errors.Wrapf(err, "unable to play %s", sound)
	}
	return nil
}
