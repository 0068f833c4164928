package device

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/jupiterrider/purego-sdl3/sdl"
)

type openJoystick struct {
	joystick *sdl.Joystick
	name     string
}

// SDLPoller enumerates joysticks through the SDL3 joystick API. Hot-plug
// events keep the open-device set current; slots keep their enumeration
// order and a removed device leaves an empty slot until its removal event
// is processed.
//
// Start, Poll and Stop must all be called from the same goroutine, locked
// to an OS thread (SDL requirement). The sampling loop provides that.
type SDLPoller struct {
	joysticks map[sdl.JoystickID]*openJoystick
	order     []sdl.JoystickID
}

func NewSDLPoller() *SDLPoller {
	return &SDLPoller{joysticks: make(map[sdl.JoystickID]*openJoystick)}
}

// Start initializes the SDL joystick subsystem and opens already-connected
// devices.
func (p *SDLPoller) Start() error {
	if !sdl.Init(sdl.InitJoystick) {
		return fmt.Errorf("sdl init: %s", sdl.GetError())
	}
	slog.Info("SDL3 joystick subsystem initialized")
	for _, id := range sdl.GetJoysticks() {
		p.open(id)
	}
	return nil
}

// Stop closes all opened joysticks and shuts SDL down.
func (p *SDLPoller) Stop() {
	for id, info := range p.joysticks {
		sdl.CloseJoystick(info.joystick)
		delete(p.joysticks, id)
	}
	p.order = nil
	sdl.Quit()
}

// Poll pumps pending hot-plug events and reports every tracked slot.
func (p *SDLPoller) Poll() []Source {
	p.processEvents()

	out := make([]Source, 0, len(p.order))
	for _, id := range p.order {
		info := p.joysticks[id]
		if info == nil || !sdl.JoystickConnected(info.joystick) {
			// Mid-removal gap: keep the slot, report it empty.
			out = append(out, Source{})
			continue
		}
		n := sdl.GetNumJoystickAxes(info.joystick)
		axes := make([]float64, n)
		for i := int32(0); i < n; i++ {
			axes[i] = normalizeRaw(sdl.GetJoystickAxis(info.joystick, i))
		}
		out = append(out, Source{Identifier: info.name, Axes: axes})
	}
	return out
}

func (p *SDLPoller) processEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			p.open(event.JDevice().Which)
		case sdl.EventJoystickRemoved:
			p.remove(event.JDevice().Which)
		}
	}
}

func (p *SDLPoller) open(instanceID sdl.JoystickID) {
	if _, exists := p.joysticks[instanceID]; exists {
		return
	}
	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		slog.Warn("failed to open joystick", "id", instanceID, "error", sdl.GetError())
		return
	}
	id := sdl.GetJoystickID(js)
	name := sdl.GetJoystickName(js)
	p.joysticks[id] = &openJoystick{joystick: js, name: name}
	p.order = append(p.order, id)
	slog.Info("joystick connected",
		"name", name,
		"id", id,
		"axes", sdl.GetNumJoystickAxes(js))
}

func (p *SDLPoller) remove(instanceID sdl.JoystickID) {
	info, exists := p.joysticks[instanceID]
	if !exists {
		return
	}
	slog.Info("joystick disconnected", "name", info.name, "id", instanceID)
	sdl.CloseJoystick(info.joystick)
	delete(p.joysticks, instanceID)
	for i, id := range p.order {
		if id == instanceID {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// normalizeRaw converts SDL's raw int16 axis value to -1..1.
func normalizeRaw(raw int16) float64 {
	v := float64(raw) / math.MaxInt16
	if v < -1.0 {
		v = -1.0
	}
	return v
}
