package sokoban

import (
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
	puzzle "github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

// demoStepsPerSecond is the replay speed of the demo mode.
const demoStepsPerSecond = 6

// Demo plays the stored solution of every level that has one.
// Completions are never reported, so demo runs do not count as progress.
type Demo struct {
	*Game
	plan []puzzle.Step
	next int
}

// NewDemo creates a demo over env.Pack.
func NewDemo(env registry.Env) *Demo {
	env.AutoAdvance = true
	return &Demo{Game: New(env)}
}

// ID returns the game identifier.
func (d *Demo) ID() string {
	return "demo"
}

// Title returns the display name.
func (d *Demo) Title() string {
	return "Solution Demo"
}

// Reset starts the demo at cfg.LevelID or the first solvable level.
func (d *Demo) Reset(cfg core.RuntimeConfig) {
	d.Game.Reset(cfg)
	d.seek(d.index)
}

// seek loads the first level at or after i that has a readable solution.
func (d *Demo) seek(i int) {
	for ; i < d.pack.Len(); i++ {
		lvl, _ := d.pack.At(i)
		sol, ok := lvl.Solution()
		if !ok {
			continue
		}
		plan, err := puzzle.ParseMoves(sol)
		if err != nil {
			d.logger.Warn("skipping unreadable solution", "level", lvl.ID, "err", err)
			continue
		}
		d.loadLevel(i)
		d.plan = plan
		d.next = 0
		return
	}
	d.done = true
}

// Step plays the next solution step every few ticks. Only pause, confirm
// (skip ahead) and restart are honored.
func (d *Demo) Step(in core.InputFrame) core.StepResult {
	d.tick++

	for _, a := range in.Actions {
		switch {
		case a == core.ActionPause:
			d.paused = !d.paused
		case d.paused || d.done:
		case a == core.ActionConfirm:
			d.seek(d.index + 1)
		case a == core.ActionRestart:
			d.seek(d.index)
		}
	}

	if d.paused || d.done {
		return core.StepResult{State: d.State()}
	}

	if d.state.Solved() {
		d.solvedTicks++
		if d.solvedTicks >= autoAdvanceSeconds*d.tickRate {
			d.seek(d.index + 1)
		}
		return core.StepResult{State: d.State()}
	}

	every := uint64(core.Max(1, d.tickRate/demoStepsPerSecond))
	if d.tick%every == 0 {
		if d.next >= len(d.plan) {
			// The stored solution ran out without solving the level.
			d.logger.Warn("stored solution does not solve level", "level", d.level.ID)
			d.seek(d.index + 1)
		} else {
			ev := puzzle.AttemptMove(d.state, d.level.Puzzle, d.plan[d.next].Dir)
			d.last = &ev
			if ev.Outcome.Succeeded() {
				d.steps = append(d.steps, puzzle.StepFromEvent(ev))
			}
			d.next++
		}
	}

	return core.StepResult{State: d.State()}
}
