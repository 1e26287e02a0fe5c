package game

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/daruma/internal/config"
	"chosenoffset.com/daruma/internal/voice"
)

func assertInitialRound(t *testing.T, c *Controller) {
	t.Helper()
	assert.Equal(t, FacingAway, c.Daruma.Facing)
	assert.Equal(t, 0.0, c.Daruma.TurnTimer)
	assert.False(t, c.GameOver)
	assert.False(t, c.Win)
	assert.Equal(t, 50.0, c.Player.X)
	assert.Equal(t, 300.0, c.Player.Y)
	assert.False(t, c.Player.Caught)
	assert.False(t, c.Player.Moving)
}

func TestNewControllerInitialState(t *testing.T) {
	c := newTestController(testConfig(), nil, nil)

	assertInitialRound(t, c)
	assert.Equal(t, 650.0, c.GoalX)
	assert.NotEqual(t, uuid.Nil, c.RoundID)
}

func TestNoCatchWhileAway(t *testing.T) {
	c := newTestController(testConfig(), nil, nil)

	for i := 0; i < 60*30 && !c.GameOver; i++ {
		away := c.Daruma.Facing == FacingAway
		c.Tick(Input{Up: i%2 == 0, Down: i%2 == 1}, tick)

		if away && c.Daruma.Facing == FacingAway && c.Player.Moving {
			require.False(t, c.GameOver, "caught on tick %d while the Daruma was away", i)
		}
	}
}

func TestCaughtWhenMovingWhileWatched(t *testing.T) {
	c := newTestController(testConfig(), nil, nil)

	// Idle until the Daruma turns around
	for c.Daruma.Facing == FacingAway {
		c.Tick(Input{}, tick)
	}
	require.False(t, c.GameOver, "standing still is never caught")

	c.Tick(Input{Left: true}, tick)

	assert.True(t, c.GameOver)
	assert.False(t, c.Win)
	assert.True(t, c.Player.Caught)
}

func TestIdlePlayerNeverLoses(t *testing.T) {
	c := newTestController(testConfig(), nil, nil)

	transitions := 0
	prev := c.Daruma.Facing
	for i := 0; i < 60*120; i++ {
		c.Tick(Input{}, tick)
		if c.Daruma.Facing != prev {
			transitions++
			prev = c.Daruma.Facing
		}
		require.False(t, c.GameOver)
	}

	assert.Greater(t, transitions, 20, "the Daruma keeps cycling")
}

func TestWinDuringLongAwayPhase(t *testing.T) {
	c := newTestController(testConfig(), nil, nil)
	c.Daruma.AwayDuration = 1000

	ticks := 0
	for !c.GameOver {
		c.Tick(Input{Right: true}, tick)
		ticks++
		require.Equal(t, FacingAway, c.Daruma.Facing)
		require.Less(t, ticks, 1000)
	}

	assert.True(t, c.Win)
	assert.True(t, c.GameOver)
	assert.False(t, c.Player.Caught)
	// (650 - 30 - 50) / 5 steps to touch the goal
	assert.Equal(t, 114, ticks)
}

func TestCaughtOnTheTickTheDarumaIsWatching(t *testing.T) {
	c := newTestController(testConfig(), nil, nil)

	for i := 0; i < 10; i++ {
		c.Tick(Input{}, tick)
	}

	// Force TOWARD at tick N
	c.Daruma.Facing = FacingToward
	c.Daruma.TurnTimer = 0
	c.Daruma.TowardDuration = 100

	c.Tick(Input{Right: true}, tick)

	assert.True(t, c.GameOver)
	assert.False(t, c.Win)
	assert.True(t, c.Player.Caught)
}

func TestCatchBeatsWinOnTheSameTick(t *testing.T) {
	c := newTestController(testConfig(), nil, nil)
	c.Player.X = c.GoalX - c.Player.Width - 1
	c.Daruma.Facing = FacingToward
	c.Daruma.TowardDuration = 100

	c.Tick(Input{Right: true}, tick)

	require.True(t, c.Player.CheckGoal(c.GoalX))
	assert.True(t, c.GameOver)
	assert.False(t, c.Win, "catch is evaluated before the goal")
}

func TestChecksAreIdempotentAfterGameOver(t *testing.T) {
	t.Run("after a loss", func(t *testing.T) {
		c := newTestController(testConfig(), nil, nil)
		c.Daruma.Facing = FacingToward
		c.Daruma.TowardDuration = 100
		c.Tick(Input{Right: true}, tick)
		require.True(t, c.GameOver)

		// Even at the goal a lost round stays lost
		c.Player.X = c.GoalX
		for i := 0; i < 3; i++ {
			assert.False(t, c.CheckWin())
			assert.False(t, c.CheckCaught())
		}
		assert.True(t, c.GameOver)
		assert.False(t, c.Win)
	})

	t.Run("after a win", func(t *testing.T) {
		c := newTestController(testConfig(), nil, nil)
		c.Player.X = c.GoalX
		require.True(t, c.CheckWin())

		c.Daruma.Facing = FacingToward
		c.Player.Moving = true
		for i := 0; i < 3; i++ {
			assert.False(t, c.CheckCaught())
			assert.False(t, c.CheckWin())
		}
		assert.True(t, c.Win)
		assert.False(t, c.Player.Caught)
	})
}

func TestStateFrozenAfterGameOver(t *testing.T) {
	c := newTestController(testConfig(), nil, nil)
	c.Daruma.Facing = FacingToward
	c.Daruma.TowardDuration = 100
	c.Tick(Input{Right: true}, tick)
	require.True(t, c.GameOver)

	x, timer := c.Player.X, c.Daruma.TurnTimer
	for i := 0; i < 120; i++ {
		c.Tick(Input{Right: true, Down: true}, tick)
	}

	assert.Equal(t, x, c.Player.X)
	assert.Equal(t, timer, c.Daruma.TurnTimer)
	assert.Equal(t, FacingToward, c.Daruma.Facing)
}

func TestRestartOnlyAfterGameOver(t *testing.T) {
	c := newTestController(testConfig(), nil, nil)
	c.Tick(Input{Right: true}, tick)
	round := c.RoundID

	c.Tick(Input{Restart: true}, tick)
	assert.Equal(t, round, c.RoundID, "restart is ignored mid-round")
	assert.Equal(t, 55.0, c.Player.X)

	c.Daruma.Facing = FacingToward
	c.Daruma.TowardDuration = 100
	c.Tick(Input{Right: true}, tick)
	require.True(t, c.GameOver)

	c.Tick(Input{Restart: true}, tick)
	assert.NotEqual(t, round, c.RoundID)
	assertInitialRound(t, c)
}

func TestResetRoundTrip(t *testing.T) {
	c := newTestController(testConfig(), nil, nil)
	oldPlayer, oldDaruma := c.Player, c.Daruma

	c.Player.X = 400
	c.Daruma.Facing = FacingToward
	c.Tick(Input{Right: true}, tick)
	require.True(t, c.GameOver)

	c.Reset()

	assertInitialRound(t, c)
	assert.NotSame(t, oldPlayer, c.Player)
	assert.NotSame(t, oldDaruma, c.Daruma)
}

func TestResetStopsVoice(t *testing.T) {
	cfg := config.DefaultConfig()
	provider := &fakeProvider{clips: []voice.Clip{{Name: "voice_1", Duration: 2 * time.Second}}}
	c := newTestController(cfg, provider, nil)
	require.Len(t, provider.plays, 1)

	c.Reset()

	assert.True(t, provider.plays[0].stopped, "old round's clip is silenced")
	assert.Len(t, provider.plays, 2, "new round starts its own clip")
	assert.False(t, provider.plays[1].stopped)
}

func TestGameOverStopsVoice(t *testing.T) {
	cfg := config.DefaultConfig()
	provider := &fakeProvider{clips: []voice.Clip{{Name: "voice_1", Duration: 30 * time.Second}}}
	c := newTestController(cfg, provider, nil)

	for !c.GameOver {
		c.Tick(Input{Right: true}, tick)
	}

	assert.True(t, c.Win)
	assert.True(t, provider.last().stopped)
}

func TestVoiceDisabledIgnoresProvider(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Voice.Enabled = false
	provider := &fakeProvider{clips: []voice.Clip{{Name: "voice_1", Duration: 2 * time.Second}}}

	c := newTestController(cfg, provider, nil)

	assert.Empty(t, provider.plays)
	assert.True(t, cfg.Daruma.Away.Contains(c.Daruma.AwayDuration))
}

func TestEmptyPoolFallsBackToTimerRange(t *testing.T) {
	cfg := config.DefaultConfig()
	c := newTestController(cfg, voice.Silent{}, nil)

	for trial := 0; trial < 100; trial++ {
		require.True(t, cfg.Daruma.Away.Contains(c.Daruma.AwayDuration), "trial %d: %g", trial, c.Daruma.AwayDuration)
		c.Reset()
	}
}

func TestSeededControllersAgree(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = 99

	a := NewController(cfg, nil, WithLogger(quietLogger))
	b := NewController(cfg, nil, WithLogger(quietLogger))

	assert.Equal(t, a.Daruma.AwayDuration, b.Daruma.AwayDuration)
	assert.Equal(t, a.Daruma.TowardDuration, b.Daruma.TowardDuration)
}
