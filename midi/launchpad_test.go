package midi

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
)

type recorder struct {
	mu   sync.Mutex
	msgs []gomidi.Message
}

func (r *recorder) send(msg gomidi.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

func TestNoteMapping(t *testing.T) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 9; col++ {
			r, c := noteToRowCol(rowColToNote(row, col))
			assert.Equal(t, row, r)
			assert.Equal(t, col, c)
		}
	}
	assert.Equal(t, uint8(11), rowColToNote(0, 0))
	assert.Equal(t, uint8(88), rowColToNote(7, 7))
	assert.Equal(t, uint8(93), rowColToNote(8, 2))

	r, c := noteToRowCol(5)
	assert.Equal(t, -1, r)
	assert.Equal(t, -1, c)

	r, c = ccToRowCol(98)
	assert.Equal(t, 8, r)
	assert.Equal(t, 7, c)
	r, _ = ccToRowCol(10)
	assert.Equal(t, -1, r)
}

func TestMapRGBToLaunchpad(t *testing.T) {
	assert.Equal(t, uint8(0), mapRGBToLaunchpad([3]uint8{0, 0, 0}))
	assert.Equal(t, uint8(5), mapRGBToLaunchpad([3]uint8{250, 5, 5}))
	assert.Equal(t, uint8(3), mapRGBToLaunchpad([3]uint8{255, 255, 255}))
	assert.Equal(t, uint8(21), mapRGBToLaunchpad([3]uint8{10, 250, 10}))
}

func TestLaunchpadInit(t *testing.T) {
	rec := &recorder{}
	newLaunchpad("lp", rec.send)

	require.Len(t, rec.msgs, 3)
	assert.Equal(t, gomidi.SysEx(sysexProgrammerMode), rec.msgs[0])
	assert.Equal(t, gomidi.SysEx(sysexLEDFeedback), rec.msgs[2])
}

func TestLaunchpadHandle(t *testing.T) {
	lp := newLaunchpad("lp", nil)

	lp.handle(gomidi.NoteOn(0, 23, 100))
	lp.handle(gomidi.NoteOn(0, 24, 0)) // release
	lp.handle(gomidi.ControlChange(0, 91, 127))
	lp.handle(gomidi.ControlChange(0, 91, 0))

	require.Len(t, lp.padChan, 2)
	assert.Equal(t, PadEvent{Row: 1, Col: 2, Velocity: 100}, <-lp.PadEvents())
	assert.Equal(t, PadEvent{Row: 8, Col: 0, Velocity: 127}, <-lp.PadEvents())
}

func TestLaunchpadLEDs(t *testing.T) {
	rec := &recorder{}
	lp := newLaunchpad("lp", rec.send)
	rec.msgs = nil

	require.NoError(t, lp.SetLEDRGB(0, 0, [3]uint8{255, 0, 0}, ChannelStatic))
	require.NoError(t, lp.SetLEDBatch([]LEDUpdate{{Row: 1, Col: 1, Color: [3]uint8{0, 255, 0}, Channel: ChannelPulse}}))

	require.Len(t, rec.msgs, 2)
	assert.Equal(t, gomidi.NoteOn(0, 11, 5), rec.msgs[0])
	assert.Equal(t, gomidi.NoteOn(ChannelPulse, 22, 21), rec.msgs[1])
}

func TestLaunchpadClose(t *testing.T) {
	rec := &recorder{}
	lp := newLaunchpad("lp", rec.send)
	rec.msgs = nil

	require.NoError(t, lp.Close())
	require.NoError(t, lp.Close())

	// 9x9 minus the missing corner, then back to live mode
	require.Len(t, rec.msgs, 81)
	assert.Equal(t, gomidi.SysEx(sysexLiveMode), rec.msgs[80])

	_, open := <-lp.PadEvents()
	assert.False(t, open)
}

func TestWithoutOutput(t *testing.T) {
	lp := newLaunchpad("lp", nil)
	assert.NoError(t, lp.SetLEDRGB(0, 0, [3]uint8{1, 2, 3}, 0))
	assert.NoError(t, lp.ClearLEDs())
	assert.NoError(t, lp.Close())
}
