// Package viewer is the navigation context: it owns the event queue, the rig controller, the
// intent resolver, the camera and the presenter, and advances them in a fixed order once per tick.
// Input callbacks and the render loop talk to it from other goroutines through Post and Frame.
package viewer

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-nav/engine/camera"
	"github.com/Carmen-Shannon/oxy-nav/engine/collision"
	"github.com/Carmen-Shannon/oxy-nav/engine/config"
	"github.com/Carmen-Shannon/oxy-nav/engine/input"
	"github.com/Carmen-Shannon/oxy-nav/engine/locomotion"
	"github.com/Carmen-Shannon/oxy-nav/engine/presenter"
	"github.com/Carmen-Shannon/oxy-nav/engine/session"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Frame is an immutable snapshot of one tick, safe to hand to the render goroutine.
type Frame struct {
	// Tick counts completed ticks, starting at 1 for the first.
	Tick uint64

	State     locomotion.RigState
	Eye       mgl32.Vec3
	Forward   mgl32.Vec3
	Immersive bool

	View       mgl32.Mat4
	Projection mgl32.Mat4

	Reticle presenter.Reticle
	Marker  presenter.Marker

	// WorldLoaded is false until the loader has published the collision surfaces.
	WorldLoaded bool
}

// Viewer is the context object tying input, locomotion and presentation together.
type Viewer interface {
	// Post enqueues a raw input event for the next tick. Safe from any goroutine.
	//
	// Parameters:
	//   - ev: the raw event (nil is ignored)
	Post(ev input.Event)

	// Tick drains queued events, resolves them into intents, applies the intents, steps the rig,
	// refreshes the camera and presenter, then publishes a new Frame. When the session has turned
	// immersive since the previous tick, held desktop keys and presses are released first.
	// Must be called from a single goroutine.
	//
	// Parameters:
	//   - dt: seconds since the previous tick, drives the marker pulse
	Tick(dt float32)

	// Frame returns the snapshot published by the last Tick.
	//
	// Returns:
	//   - Frame: the latest frame
	Frame() Frame

	// Resize updates the camera viewport used for pointer picking and projection.
	//
	// Parameters:
	//   - width, height: the new framebuffer size in pixels
	Resize(width, height int)

	// Locations returns the preset locations in display order.
	//
	// Returns:
	//   - []locomotion.NamedLocation: the location table
	Locations() []locomotion.NamedLocation

	// LocationCallback returns the function a UI button for label should call when pressed.
	// The UI must not also forward that click as a pointer event.
	//
	// Parameters:
	//   - label: the location label
	//
	// Returns:
	//   - func(): posts the activation when called
	LocationCallback(label string) func()

	// Surfaces returns the collision set the loader publishes into.
	Surfaces() *collision.Set

	// Controller returns the rig controller.
	Controller() locomotion.Controller

	// Camera returns the first-person camera.
	Camera() camera.Camera

	// Session returns the session the viewer queries each tick.
	Session() session.Session
}

type viewerImpl struct {
	cfg     *config.Config
	session session.Session
	set     *collision.Set
	log     *zap.Logger

	queue      *input.Queue
	controller locomotion.Controller
	resolver   input.Resolver
	presenter  presenter.Presenter
	camera     camera.Camera

	tickMu       sync.Mutex
	ticks        uint64
	elapsed      float32
	wasImmersive bool

	frame atomic.Pointer[Frame]
}

var _ Viewer = &viewerImpl{}

// rigViewpoint feeds the camera from the controller, dropping the eye offset in immersive sessions.
type rigViewpoint struct {
	controller locomotion.Controller
	session    session.Session
}

func (r rigViewpoint) Eye() (mgl32.Vec3, mgl32.Vec3) {
	return r.controller.EyePosition(r.session.Immersive()), r.controller.Forward()
}

// NewViewer builds the navigation context from its configuration.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Viewer: the viewer, with an initial Frame already published
func NewViewer(options ...ViewerBuilderOption) Viewer {
	v := &viewerImpl{
		cfg:     config.Default(),
		session: session.Desktop{},
		log:     zap.NewNop(),
		queue:   input.NewQueue(),
	}
	for _, opt := range options {
		opt(v)
	}
	if v.set == nil {
		v.set = collision.NewSet()
	}

	nav := v.cfg.Navigation
	probe := collision.NewProbe(v.set, collision.WithSlack(nav.ProbeSlack))
	start := v.cfg.Start

	v.controller = locomotion.NewController(
		locomotion.WithSeekSmoothing(nav.SeekSmoothing),
		locomotion.WithFloorSmoothing(nav.FloorSmoothing),
		locomotion.WithArriveEpsilon(nav.ArriveEpsilon),
		locomotion.WithWalkSpeed(nav.WalkSpeed),
		locomotion.WithEyeHeight(nav.EyeHeight),
		locomotion.WithPitch(nav.PitchEnabled, nav.PitchLimit),
		locomotion.WithStart(mgl32.Vec3(start.Position), start.Yaw),
		locomotion.WithProbe(probe),
		locomotion.WithLogger(v.log.Named("locomotion")),
	)

	v.camera = camera.NewCamera(
		camera.WithViewport(v.cfg.Window.Width, v.cfg.Window.Height),
		camera.WithViewpoint(rigViewpoint{controller: v.controller, session: v.session}),
	)

	v.presenter = presenter.NewPresenter(v.set,
		presenter.WithPulse(v.cfg.Marker.PulseSpeed, v.cfg.Marker.PulseAmplitude),
	)

	locations := make([]locomotion.NamedLocation, 0, len(v.cfg.Locations))
	for _, loc := range v.cfg.Locations {
		locations = append(locations, locomotion.NamedLocation{Label: loc.Label, Position: mgl32.Vec3(loc.Position)})
	}

	v.resolver = input.NewResolver(
		input.WithPicker(v.camera),
		input.WithSurfaces(v.set),
		input.WithProbe(probe),
		input.WithSession(v.session),
		input.WithReticle(v.presenter),
		input.WithLocations(locations...),
		input.WithTapThreshold(nav.TapThreshold),
		input.WithLookSensitivity(nav.LookSensitivity),
		input.WithLogger(v.log.Named("input")),
	)

	v.publish()
	return v
}

func (v *viewerImpl) Post(ev input.Event) {
	v.queue.Push(ev)
}

func (v *viewerImpl) Tick(dt float32) {
	v.tickMu.Lock()
	defer v.tickMu.Unlock()

	immersive := v.session.Immersive()
	if immersive && !v.wasImmersive {
		for _, intent := range v.resolver.ReleaseAll() {
			v.controller.Apply(intent)
		}
		v.log.Debug("immersive session started; desktop input released")
	}
	v.wasImmersive = immersive

	for _, ev := range v.queue.Drain() {
		for _, intent := range v.resolver.Resolve(ev) {
			v.logIntent(intent)
			v.controller.Apply(intent)
		}
	}
	v.controller.Step()
	v.camera.Update()

	if dt > 0 {
		v.elapsed += dt
	}
	v.presenter.Update(v.controller.State(), v.session, v.elapsed)

	v.ticks++
	v.publish()
}

func (v *viewerImpl) Frame() Frame {
	return *v.frame.Load()
}

func (v *viewerImpl) Resize(width, height int) {
	v.camera.SetViewport(width, height)
}

func (v *viewerImpl) Locations() []locomotion.NamedLocation {
	return v.resolver.Locations()
}

func (v *viewerImpl) LocationCallback(label string) func() {
	return func() {
		v.Post(input.LocationActivated{Label: label})
	}
}

func (v *viewerImpl) Surfaces() *collision.Set {
	return v.set
}

func (v *viewerImpl) Controller() locomotion.Controller {
	return v.controller
}

func (v *viewerImpl) Camera() camera.Camera {
	return v.camera
}

func (v *viewerImpl) Session() session.Session {
	return v.session
}

func (v *viewerImpl) publish() {
	immersive := v.session.Immersive()
	v.frame.Store(&Frame{
		Tick:        v.ticks,
		State:       v.controller.State(),
		Eye:         v.controller.EyePosition(immersive),
		Forward:     v.controller.Forward(),
		Immersive:   immersive,
		View:        v.camera.ViewMatrix(),
		Projection:  v.camera.ProjectionMatrix(),
		Reticle:     v.presenter.Reticle(),
		Marker:      v.presenter.Marker(),
		WorldLoaded: v.set.Loaded(),
	})
}

func (v *viewerImpl) logIntent(intent locomotion.Intent) {
	tp, ok := intent.(locomotion.Teleport)
	if !ok {
		return
	}
	fields := []zap.Field{
		zap.Stringer("source", tp.Source),
		zap.Float32("x", tp.Target.X()),
		zap.Float32("y", tp.Target.Y()),
		zap.Float32("z", tp.Target.Z()),
	}
	if tp.Label != "" {
		fields = append(fields, zap.String("label", tp.Label))
	}
	v.log.Info("teleport", fields...)
}
