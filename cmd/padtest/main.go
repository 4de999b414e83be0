// padtest checks that a Launchpad X is visible and can show the calculator
// keypad, without starting the full UI.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-calc/config"
	"go-calc/midi"
	"go-calc/theme"
)

// portTimeout guards against CoreMIDI hanging on port enumeration
const portTimeout = 3 * time.Second

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "list":
		err = listPorts()
	case "detect":
		err = detectLaunchpad()
	case "leds":
		err = showKeypad()
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Launchpad test commands")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list    - List all MIDI ports")
	fmt.Println("  detect  - Find Launchpad X")
	fmt.Println("  leds    - Light the keypad in the configured palette")
}

func ports() ([]drivers.In, []drivers.Out, error) {
	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{ins: gomidi.GetInPorts(), outs: gomidi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		return r.ins, r.outs, nil
	case <-time.After(portTimeout):
		return nil, nil, fmt.Errorf("timed out listing ports (CoreMIDI hung? try: sudo killall coreaudiod midiserver)")
	}
}

func listPorts() error {
	ins, outs, err := ports()
	if err != nil {
		return err
	}
	fmt.Println("=== MIDI Input Ports ===")
	for i, p := range ins {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, p := range outs {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
	return nil
}

func isLaunchpad(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "launchpad") && strings.Contains(name, "midi")
}

func findLaunchpad() (drivers.In, drivers.Out, error) {
	ins, outs, err := ports()
	if err != nil {
		return nil, nil, err
	}
	var in drivers.In
	var out drivers.Out
	for _, p := range ins {
		if isLaunchpad(p.String()) {
			in = p
			break
		}
	}
	for _, p := range outs {
		if isLaunchpad(p.String()) {
			out = p
			break
		}
	}
	return in, out, nil
}

func detectLaunchpad() error {
	fmt.Println("Looking for Launchpad X...")
	in, out, err := findLaunchpad()
	if err != nil {
		return err
	}
	if in != nil {
		fmt.Printf("Found input: %s\n", in.String())
	}
	if out != nil {
		fmt.Printf("Found output: %s\n", out.String())
	}
	if in == nil || out == nil {
		fmt.Println("\nLaunchpad X not found")
		return nil
	}
	fmt.Println("\nLaunchpad X detected!")
	return nil
}

// showKeypad paints the keypad using the configured palette file, or the
// default colors
func showKeypad() error {
	in, out, err := findLaunchpad()
	if err != nil {
		return err
	}
	if out == nil {
		return fmt.Errorf("no Launchpad output port found")
	}

	palette := theme.DefaultPalette()
	if cfg, err := config.Load(); err == nil && cfg.PaletteFile != "" {
		ramp, err := theme.LoadGPL(cfg.PaletteFile)
		if err != nil {
			return fmt.Errorf("palette file: %w", err)
		}
		palette = ramp.Palette()
	}

	lp, err := midi.NewLaunchpadController(out.String(), in, out)
	if err != nil {
		return err
	}
	defer lp.Close()

	if err := midi.PaintKeypad(lp, theme.New(palette)); err != nil {
		return err
	}

	fmt.Printf("Keypad lit (bg %s, fg %s). Press pads to test, Enter to clear...\n",
		palette.Background.Hex(), palette.Foreground.Hex())
	go func() {
		for pad := range lp.PadEvents() {
			fmt.Printf("  pad %d,%d velocity %d\n", pad.Row, pad.Col, pad.Velocity)
		}
	}()
	fmt.Scanln()
	return nil
}
