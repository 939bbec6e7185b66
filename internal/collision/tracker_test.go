package collision

import (
	"testing"

	"github.com/nimo-project/nimo/errs"
	"github.com/stretchr/testify/require"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker()

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Empty(t, tracker.ChannelNames())
}

func TestTracker_TrackChannel_Success(t *testing.T) {
	tracker := NewTracker()

	err := tracker.TrackChannel("sensors.cpu", 0x1234567890abcdef)
	require.NoError(t, err)
	require.Equal(t, 1, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Equal(t, []string{"sensors.cpu"}, tracker.ChannelNames())

	err = tracker.TrackChannel("sensors.mem", 0xfedcba0987654321)
	require.NoError(t, err)
	require.Equal(t, 2, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Equal(t, []string{"sensors.cpu", "sensors.mem"}, tracker.ChannelNames())
}

func TestTracker_TrackChannel_EmptyName(t *testing.T) {
	tracker := NewTracker()

	err := tracker.TrackChannel("", 0x1234567890abcdef)

	require.ErrorIs(t, err, errs.ErrInvalidChannelName)
	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
}

func TestTracker_TrackChannel_Collision(t *testing.T) {
	tracker := NewTracker()

	err := tracker.TrackChannel("sensors.cpu", 0x1234567890abcdef)
	require.NoError(t, err)
	require.False(t, tracker.HasCollision())

	// Same hash, different name: not an error, collision flag set instead.
	err = tracker.TrackChannel("sensors.cpu.idle", 0x1234567890abcdef)
	require.NoError(t, err)
	require.True(t, tracker.HasCollision())
	require.Equal(t, 2, tracker.Count())
	require.Equal(t, []string{"sensors.cpu", "sensors.cpu.idle"}, tracker.ChannelNames())
}

func TestTracker_TrackChannel_Duplicate(t *testing.T) {
	tracker := NewTracker()

	err := tracker.TrackChannel("sensors.cpu", 0x1234567890abcdef)
	require.NoError(t, err)

	err = tracker.TrackChannel("sensors.cpu", 0x1234567890abcdef)
	require.ErrorIs(t, err, errs.ErrChannelAlreadyRegistered)
	require.False(t, tracker.HasCollision())
	require.Equal(t, 1, tracker.Count())
}

func TestTracker_TrackID_Success(t *testing.T) {
	tracker := NewTracker()

	err := tracker.TrackID(0x1111111111111111)
	require.NoError(t, err)

	err = tracker.TrackID(0x2222222222222222)
	require.NoError(t, err)
}

func TestTracker_TrackID_Collision(t *testing.T) {
	tracker := NewTracker()

	err := tracker.TrackID(0x1234567890abcdef)
	require.NoError(t, err)

	err = tracker.TrackID(0x1234567890abcdef)
	require.ErrorIs(t, err, errs.ErrHashCollision)
}

func TestTracker_ChannelNames_PreservesOrder(t *testing.T) {
	tracker := NewTracker()

	channels := []struct {
		name string
		hash uint64
	}{
		{"sensors.cpu", 0x0001},
		{"sensors.mem", 0x0002},
		{"sensors.disk", 0x0003},
		{"sensors.net", 0x0004},
	}

	for _, c := range channels {
		err := tracker.TrackChannel(c.name, c.hash)
		require.NoError(t, err)
	}

	names := tracker.ChannelNames()
	require.Equal(t, 4, len(names))
	require.Equal(t, "sensors.cpu", names[0])
	require.Equal(t, "sensors.mem", names[1])
	require.Equal(t, "sensors.disk", names[2])
	require.Equal(t, "sensors.net", names[3])
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker()

	_ = tracker.TrackChannel("sensors.cpu", 0x1234567890abcdef)
	_ = tracker.TrackChannel("sensors.mem", 0xfedcba0987654321)
	require.Equal(t, 2, tracker.Count())

	tracker.Reset()

	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Empty(t, tracker.ChannelNames())

	err := tracker.TrackChannel("sensors.disk", 0x1111111111111111)
	require.NoError(t, err)
	require.Equal(t, 1, tracker.Count())
	require.Equal(t, []string{"sensors.disk"}, tracker.ChannelNames())
}

func TestTracker_Reset_PreservesCapacity(t *testing.T) {
	tracker := NewTracker()

	for i := 0; i < 100; i++ {
		_ = tracker.TrackChannel("channel", uint64(i))
	}

	initialCap := cap(tracker.channelNamesList)

	tracker.Reset()

	require.Equal(t, 0, len(tracker.channelNamesList))
	require.GreaterOrEqual(t, cap(tracker.channelNamesList), initialCap)
}

func TestTracker_HasCollision_AfterCollision(t *testing.T) {
	tracker := NewTracker()

	_ = tracker.TrackChannel("sensors.cpu", 0x1234567890abcdef)
	require.False(t, tracker.HasCollision())

	_ = tracker.TrackChannel("sensors.cpu.idle", 0x1234567890abcdef)
	require.True(t, tracker.HasCollision())

	_ = tracker.TrackChannel("sensors.mem", 0xfedcba0987654321)
	require.True(t, tracker.HasCollision())
}

func TestTracker_MultipleCollisions(t *testing.T) {
	tracker := NewTracker()

	err := tracker.TrackChannel("channel1", 0x0001)
	require.NoError(t, err)

	err = tracker.TrackChannel("channel2", 0x0001)
	require.NoError(t, err)
	require.True(t, tracker.HasCollision())

	err = tracker.TrackChannel("channel3", 0x0002)
	require.NoError(t, err)
	err = tracker.TrackChannel("channel4", 0x0002)
	require.NoError(t, err)
	require.True(t, tracker.HasCollision())

	require.Equal(t, 4, tracker.Count())
}
