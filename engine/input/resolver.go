// Package input turns raw pointer, touch, keyboard, VR trigger and UI button events into
// locomotion intents. It owns the transient pointer and key state; it never moves the rig itself.
package input

import (
	"github.com/Carmen-Shannon/oxy-nav/common"
	"github.com/Carmen-Shannon/oxy-nav/engine/collision"
	"github.com/Carmen-Shannon/oxy-nav/engine/locomotion"
	"github.com/Carmen-Shannon/oxy-nav/engine/presenter"
	"github.com/Carmen-Shannon/oxy-nav/engine/session"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Picker builds world rays through window pixels.
type Picker interface {
	ScreenRay(x, y float32) (collision.Ray, bool)
}

// ReticleSource reports the controller reticle of the last presented frame.
type ReticleSource interface {
	Reticle() presenter.Reticle
}

// Resolver maps raw input to intents. Handlers must be called from a single goroutine
// (the tick goroutine, when fed through a Queue).
type Resolver interface {
	// Resolve dispatches ev to the matching handler.
	//
	// Parameters:
	//   - ev: the raw event
	//
	// Returns:
	//   - []locomotion.Intent: intents produced by the event, possibly none
	Resolve(ev Event) []locomotion.Intent

	PointerDown(x, y float32, kind PointerKind, overUI bool) []locomotion.Intent
	PointerMove(x, y float32) []locomotion.Intent
	PointerUp(x, y float32, overUI bool) []locomotion.Intent
	KeyDown(key int) []locomotion.Intent
	KeyUp(key int) []locomotion.Intent
	SelectEnd() []locomotion.Intent
	ActivateLocation(label string) []locomotion.Intent

	// ReleaseAll drops any held keys and pointer press. It returns a stopping Walk if keys were held.
	ReleaseAll() []locomotion.Intent

	// Locations returns the preset locations in display order.
	Locations() []locomotion.NamedLocation

	// Dragging reports whether the current press has moved past the tap threshold.
	Dragging() bool

	// Held returns the currently held walk directions.
	Held() locomotion.Direction
}

type pointerState struct {
	pressed  bool
	dragging bool
	consumed bool
	kind     PointerKind
	downX    float32
	downY    float32
	lastX    float32
	lastY    float32
}

type resolverImpl struct {
	picker  Picker
	set     *collision.Set
	probe   collision.Probe
	session session.Session
	reticle ReticleSource

	locations []locomotion.NamedLocation
	byLabel   map[string]int

	tapThreshold    float32
	lookSensitivity float32

	pointer pointerState
	keys    map[int]bool
	held    locomotion.Direction

	log *zap.Logger
}

var _ Resolver = &resolverImpl{}

var keyDirections = map[int]locomotion.Direction{
	common.KeyW:     locomotion.DirForward,
	common.KeyUp:    locomotion.DirForward,
	common.KeyS:     locomotion.DirBack,
	common.KeyDown:  locomotion.DirBack,
	common.KeyA:     locomotion.DirLeft,
	common.KeyLeft:  locomotion.DirLeft,
	common.KeyD:     locomotion.DirRight,
	common.KeyRight: locomotion.DirRight,
}

// NewResolver creates a Resolver.
// Without a picker, taps produce nothing; without a session, the resolver behaves as on a desktop.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Resolver: the resolver
func NewResolver(options ...ResolverBuilderOption) Resolver {
	r := &resolverImpl{
		session:         session.Desktop{},
		byLabel:         map[string]int{},
		tapThreshold:    DefaultTapThreshold,
		lookSensitivity: DefaultLookSensitivity,
		keys:            map[int]bool{},
		log:             zap.NewNop(),
	}
	for _, opt := range options {
		opt(r)
	}
	if r.probe == nil {
		r.probe = collision.NewProbe(r.set)
	}
	return r
}

func (r *resolverImpl) Resolve(ev Event) []locomotion.Intent {
	switch e := ev.(type) {
	case PointerDown:
		return r.PointerDown(e.X, e.Y, e.Kind, e.OverUI)
	case PointerMove:
		return r.PointerMove(e.X, e.Y)
	case PointerUp:
		return r.PointerUp(e.X, e.Y, e.OverUI)
	case KeyDown:
		return r.KeyDown(e.Key)
	case KeyUp:
		return r.KeyUp(e.Key)
	case SelectEnd:
		return r.SelectEnd()
	case LocationActivated:
		return r.ActivateLocation(e.Label)
	case FocusLost:
		return r.ReleaseAll()
	default:
		return nil
	}
}

func (r *resolverImpl) PointerDown(x, y float32, kind PointerKind, overUI bool) []locomotion.Intent {
	if overUI || r.session.Immersive() {
		return nil
	}
	r.pointer = pointerState{
		pressed: true,
		kind:    kind,
		downX:   x,
		downY:   y,
		lastX:   x,
		lastY:   y,
	}
	return nil
}

func (r *resolverImpl) PointerMove(x, y float32) []locomotion.Intent {
	if !r.pointer.pressed || r.session.Immersive() {
		return nil
	}
	dx := x - r.pointer.lastX
	dy := y - r.pointer.lastY
	r.pointer.lastX = x
	r.pointer.lastY = y
	if common.PixelDistance(r.pointer.downX, r.pointer.downY, x, y) >= r.tapThreshold {
		r.pointer.dragging = true
	}
	if dx == 0 && dy == 0 {
		return nil
	}
	return []locomotion.Intent{locomotion.Look{
		DeltaYaw:   -dx * r.lookSensitivity,
		DeltaPitch: -dy * r.lookSensitivity,
	}}
}

func (r *resolverImpl) PointerUp(x, y float32, overUI bool) []locomotion.Intent {
	p := r.pointer
	r.pointer = pointerState{}
	if !p.pressed || p.consumed || overUI || r.session.Immersive() {
		return nil
	}
	if common.PixelDistance(p.downX, p.downY, x, y) >= r.tapThreshold {
		return nil
	}
	return r.pick(x, y)
}

func (r *resolverImpl) KeyDown(key int) []locomotion.Intent {
	if r.session.Immersive() {
		return nil
	}
	if idx, ok := common.DigitIndex(key); ok {
		if idx < len(r.locations) {
			return r.ActivateLocation(r.locations[idx].Label)
		}
		return nil
	}
	if _, ok := keyDirections[key]; !ok {
		return nil
	}
	r.keys[key] = true
	return r.syncHeld()
}

func (r *resolverImpl) KeyUp(key int) []locomotion.Intent {
	if _, ok := keyDirections[key]; !ok || !r.keys[key] {
		return nil
	}
	// Releases are honoured in any session so a key held when going immersive still stops the rig.
	delete(r.keys, key)
	return r.syncHeld()
}

func (r *resolverImpl) SelectEnd() []locomotion.Intent {
	if !r.session.Immersive() || r.reticle == nil {
		return nil
	}
	ret := r.reticle.Reticle()
	if !ret.Visible {
		return nil
	}
	return []locomotion.Intent{locomotion.Teleport{
		Target: r.floorAt(ret.Position),
		Source: locomotion.SourceController,
	}}
}

func (r *resolverImpl) ActivateLocation(label string) []locomotion.Intent {
	if r.pointer.pressed {
		r.pointer.consumed = true
	}
	if r.session.Immersive() {
		return nil
	}
	idx, ok := r.byLabel[label]
	if !ok {
		r.log.Warn("unknown location", zap.String("label", label))
		return nil
	}
	loc := r.locations[idx]
	return []locomotion.Intent{locomotion.Teleport{
		Target: loc.Position,
		Source: locomotion.SourceLocation,
		Label:  loc.Label,
	}}
}

func (r *resolverImpl) ReleaseAll() []locomotion.Intent {
	r.pointer = pointerState{}
	if len(r.keys) == 0 && r.held == 0 {
		return nil
	}
	clear(r.keys)
	r.held = 0
	return []locomotion.Intent{locomotion.Walk{}}
}

func (r *resolverImpl) Locations() []locomotion.NamedLocation {
	return append([]locomotion.NamedLocation(nil), r.locations...)
}

func (r *resolverImpl) Dragging() bool {
	return r.pointer.dragging
}

func (r *resolverImpl) Held() locomotion.Direction {
	return r.held
}

// syncHeld recomputes the held mask and emits a Walk when it changed.
func (r *resolverImpl) syncHeld() []locomotion.Intent {
	var mask locomotion.Direction
	for key := range r.keys {
		mask |= keyDirections[key]
	}
	if mask == r.held {
		return nil
	}
	r.held = mask
	return []locomotion.Intent{locomotion.Walk{Directions: mask}}
}

func (r *resolverImpl) pick(x, y float32) []locomotion.Intent {
	if r.picker == nil {
		return nil
	}
	ray, ok := r.picker.ScreenRay(x, y)
	if !ok {
		return nil
	}
	hit, ok := r.set.Cast(ray)
	if !ok {
		r.log.Debug("tap missed", zap.Float32("x", x), zap.Float32("y", y))
		return nil
	}
	return []locomotion.Intent{locomotion.Teleport{
		Target: r.floorAt(hit.Point),
		Source: locomotion.SourcePointer,
	}}
}

func (r *resolverImpl) floorAt(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{p.X(), r.probe.ResolveFloorHeight(p.X(), p.Z(), p.Y()), p.Z()}
}
