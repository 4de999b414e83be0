package midi

import (
	"context"
	"strings"
	"sync"
	"time"

	"go-calc/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// DeviceEvent is emitted when controllers connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// portScanTimeout guards against CoreMIDI hanging on port enumeration
const portScanTimeout = 3 * time.Second

// portPair is a Launchpad input and its matching output (which may be nil)
type portPair struct {
	id  string
	in  drivers.In
	out drivers.Out
}

// DeviceManager handles hot-plug detection of Launchpads
type DeviceManager struct {
	controllers map[string]Controller
	mu          sync.RWMutex
	events      chan DeviceEvent
	pollRate    time.Duration

	// swapped in tests
	ports func() ([]drivers.In, []drivers.Out)
	open  func(p portPair) (Controller, error)
}

// NewDeviceManager creates a new device manager
func NewDeviceManager() *DeviceManager {
	return &DeviceManager{
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		pollRate:    time.Second,
		ports: func() ([]drivers.In, []drivers.Out) {
			return gomidi.GetInPorts(), gomidi.GetOutPorts()
		},
		open: func(p portPair) (Controller, error) {
			return NewLaunchpadController(p.id, p.in, p.out)
		},
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// GetLaunchpad returns the first connected Launchpad (or nil)
func (dm *DeviceManager) GetLaunchpad() Controller {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	for _, c := range dm.controllers {
		return c
	}
	return nil
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan(ctx)
		}
	}
}

func (dm *DeviceManager) scan(ctx context.Context) {
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		ins, outs := dm.ports()
		ch <- portsResult{inPorts: ins, outPorts: outs}
	}()

	select {
	case result := <-ch:
		dm.sync(ctx, launchpadPorts(result.inPorts, result.outPorts))
	case <-time.After(portScanTimeout):
		// CoreMIDI is hung - skip this scan
		// User needs to run: sudo killall coreaudiod midiserver
		debug.LogEvery(30, "midi", "port scan timed out")
	case <-ctx.Done():
	}
}

// launchpadPorts pairs every Launchpad input with the output of the same name
func launchpadPorts(ins []drivers.In, outs []drivers.Out) []portPair {
	var pairs []portPair
	for _, in := range ins {
		name := in.String()
		if !isLaunchpad(name) {
			continue
		}
		p := portPair{id: name, in: in}
		for _, out := range outs {
			if strings.EqualFold(out.String(), name) {
				p.out = out
				break
			}
		}
		pairs = append(pairs, p)
	}
	return pairs
}

// sync opens newly seen devices and closes the ones that went away
func (dm *DeviceManager) sync(ctx context.Context, seen []portPair) {
	var events []DeviceEvent
	seenIDs := make(map[string]bool, len(seen))

	dm.mu.Lock()
	for _, p := range seen {
		seenIDs[p.id] = true
		if _, exists := dm.controllers[p.id]; exists {
			continue
		}
		c, err := dm.open(p)
		if err != nil {
			debug.Log("midi", "open %s: %v", p.id, err)
			continue
		}
		debug.Log("midi", "connected %s", p.id)
		dm.controllers[p.id] = c
		events = append(events, DeviceEvent{Type: DeviceConnected, Controller: c, ID: p.id})
	}

	for id, c := range dm.controllers {
		if seenIDs[id] {
			continue
		}
		debug.Log("midi", "disconnected %s", id)
		c.Close()
		delete(dm.controllers, id)
		events = append(events, DeviceEvent{Type: DeviceDisconnected, ID: id})
	}
	dm.mu.Unlock()

	for _, ev := range events {
		select {
		case dm.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

func isLaunchpad(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "launchpad") && strings.Contains(name, "midi")
}
