package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-calc/config"
	"go-calc/debug"
	"go-calc/gallery"
	"go-calc/midi"
	"go-calc/theme"
	"go-calc/tui"
)

// loadTimeout bounds the one startup read of the gallery store
const loadTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		// a broken config file should not keep the calculator from starting
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	if cfg.Debug || os.Getenv("GOCALC_DEBUG") == "1" {
		if err := debug.Enable(); err != nil {
			fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	fallback := theme.DefaultPalette()
	if cfg.PaletteFile != "" {
		ramp, err := theme.LoadGPL(cfg.PaletteFile)
		if err != nil {
			debug.Log("tui", "palette file %s: %v", cfg.PaletteFile, err)
		} else {
			fallback = ramp.Palette()
		}
	}

	store, snap := openGallery(cfg)
	if store != nil {
		defer store.Close()
	}

	var persister *gallery.Persister
	var gal *gallery.Gallery
	if store != nil {
		persister = gallery.NewPersister(store)
		defer persister.Close()
		gal = gallery.NewGallery(snap, persister)
	} else {
		gal = gallery.NewGallery(snap, nil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var deviceMgr *midi.DeviceManager
	if cfg.Launchpad.Enabled {
		// handles hot-plug
		deviceMgr = midi.NewDeviceManager()
		go deviceMgr.Run(ctx)
	}

	m := tui.NewModel(tui.Options{
		Config:    cfg,
		Gallery:   gal,
		Cache:     theme.NewCache(),
		Persister: persister,
		DeviceMgr: deviceMgr,
		Fallback:  fallback,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	_, err = p.Run()
	if persister != nil {
		persister.Close()
		if saveErr := persister.Err(); saveErr != nil {
			fmt.Fprintf(os.Stderr, "gallery not saved: %v\n", saveErr)
		}
	}
	return err
}

// openGallery reads the stored gallery. Storage failures are logged and the
// session continues with an empty, unsaved gallery.
func openGallery(cfg *config.Config) (gallery.Store, gallery.Snapshot) {
	empty := gallery.Snapshot{Version: gallery.SnapshotVersion}

	dir, err := cfg.StorageDir()
	if err != nil {
		debug.Log("store", "storage dir: %v", err)
		return nil, empty
	}
	store, err := gallery.Open(string(cfg.Storage.Backend), dir)
	if err != nil {
		debug.Log("store", "open %s store in %s: %v", cfg.Storage.Backend, dir, err)
		return nil, empty
	}

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	snap, err := store.Load(ctx)
	if err != nil {
		debug.Log("store", "load: %v", err)
		// keep the store so this session's changes still overwrite the bad data
		return store, empty
	}
	debug.Log("gallery", "loaded %d images, selected=%q", len(snap.Images), snap.Selected)
	return store, snap
}
