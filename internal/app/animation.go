package app

import (
	"context"
	"time"

	"github.com/HailXD/Tarot-Draw/internal/domain"
)

// minFrameInterval keeps the ticker valid when the configured duration is
// shorter than one millisecond per step.
const minFrameInterval = time.Millisecond

// runAnimation publishes one frame per tick and adopts the target order on
// the last step. It owns no state of its own: every write happens under the
// session lock after re-checking ctx, so a cancelled run leaves no trace.
func (s *TarotService) runAnimation(ctx context.Context, sess *Session, anim *domain.Animator) {
	interval := max(domain.FrameInterval(s.opts.AnimationDuration, anim.Steps()), minFrameInterval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for step, frame := range anim.Frames() {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		sess.mu.Lock()
		if ctx.Err() != nil {
			sess.mu.Unlock()
			return
		}
		ev := Event{Type: EventFrame, Step: step, Steps: anim.Steps()}
		if sess.showDeck {
			ev.Cards = frame
		}
		if step == anim.Steps() {
			sess.order = anim.Target()
			sess.stopAnimationLocked()
		} else {
			sess.frame = frame
			sess.step = step
		}
		sess.publishLocked(ev)
		sess.mu.Unlock()
	}
}
