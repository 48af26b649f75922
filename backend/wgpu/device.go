package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/transform3d"
	"github.com/gogpu/transform3d/render"
)

// Backend errors.
var (
	// ErrNoBackend is returned when no usable HAL backend is available.
	ErrNoBackend = errors.New("wgpu: no HAL backend available")

	// ErrNoAdapter is returned when no GPU adapter is found.
	ErrNoAdapter = errors.New("wgpu: no GPU adapters found")

	// ErrNotImplemented is returned by operations pending wgpu render
	// pass support.
	ErrNotImplemented = errors.New("wgpu: not implemented")

	// ErrDeviceClosed is returned when using a closed device.
	ErrDeviceClosed = errors.New("wgpu: device has been closed")
)

// Device implements render.Device on gogpu/wgpu.
//
// Device is not safe for concurrent use, matching the frame-synchronous
// model of the transform stage.
type Device struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shader *quadShader

	// externalDevice is true when the HAL device came from a shared
	// provider; shared resources are not destroyed on Close.
	externalDevice bool
	closed         bool
}

// New opens a GPU device. When handle exposes HAL types (the
// gpucontext HalProvider pattern: HalDevice() any, HalQueue() any), the
// shared device is used; otherwise the package opens its own Vulkan
// instance and picks a discrete or integrated adapter.
func New(handle render.DeviceHandle) (*Device, error) {
	d := &Device{}

	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	if hp, ok := handle.(halProvider); ok {
		device, dok := hp.HalDevice().(hal.Device)
		queue, qok := hp.HalQueue().(hal.Queue)
		if dok && qok && device != nil && queue != nil {
			d.device = device
			d.queue = queue
			d.externalDevice = true
		}
	}

	if d.device == nil {
		if err := d.openOwnDevice(); err != nil {
			d.Close()
			return nil, err
		}
	}

	shader, err := newQuadShader(d.device)
	if err != nil {
		d.Close()
		return nil, err
	}
	d.shader = shader
	return d, nil
}

// openOwnDevice creates a private instance and opens the first usable
// adapter, preferring discrete and integrated GPUs.
func (d *Device) openOwnDevice() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return ErrNoBackend
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("wgpu: create instance: %w", err)
	}
	d.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return ErrNoAdapter
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("wgpu: open device: %w", err)
	}
	d.device = openDev.Device
	d.queue = openDev.Queue
	transform3d.Logger().Debug("wgpu: GPU device opened", "adapter", selected.Info.Name)
	return nil
}

// NewTarget creates an off-screen render target.
func (d *Device) NewTarget(label string) render.Target {
	return &target{dev: d, label: label}
}

// NewTexture creates a texture with the given descriptor.
func (d *Device) NewTexture(desc render.TextureDescriptor) (render.Texture, error) {
	if d.closed {
		return nil, ErrDeviceClosed
	}
	return createTexture(d.device, desc, renderUsage)
}

// NewVertexBuffer creates a vertex buffer with the given vertex count.
// The CPU copy is always available; Upload stages it for the draw path.
func (d *Device) NewVertexBuffer(vertexCount int) render.VertexBuffer {
	return &vertexBuffer{verts: make([]render.Vertex, vertexCount)}
}

// BuildMipmaps rebuilds the mip chain of dst from src.
//
// TODO(render-pass): encode the per-level blit once hal render pass
// wiring lands; until then callers skip the frame.
func (d *Device) BuildMipmaps(src, dst render.Texture) error {
	return ErrNotImplemented
}

// DefaultEffect returns the passthrough quad effect backed by the
// compiled shader module.
func (d *Device) DefaultEffect() render.Effect {
	return &Effect{params: render.NewPassthroughEffect(), shader: d.shader}
}

// Close releases the device's resources. Shared devices from a
// provider are left alive; only privately opened ones are destroyed.
func (d *Device) Close() {
	if d.closed {
		return
	}
	d.closed = true
	if d.shader != nil {
		d.shader.destroy(d.device)
		d.shader = nil
	}
	if !d.externalDevice && d.device != nil {
		d.device.Destroy()
	}
	d.device = nil
	d.queue = nil
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}

// Ensure Device implements render.Device.
var _ render.Device = (*Device)(nil)

// vertexBuffer is the CPU-side staging for the quad's four vertices.
type vertexBuffer struct {
	verts []render.Vertex
}

func (b *vertexBuffer) Len() int                { return len(b.verts) }
func (b *vertexBuffer) At(i int) *render.Vertex { return &b.verts[i] }
func (b *vertexBuffer) Destroy()                { b.verts = nil }

// Upload stages the CPU copy for the draw path.
//
// TODO(render-pass): copy into a hal.Buffer once the draw path exists;
// the CPU copy is complete and nothing consumes it yet, so this
// currently succeeds as a no-op.
func (b *vertexBuffer) Upload() error { return nil }

// Ensure vertexBuffer implements render.VertexBuffer.
var _ render.VertexBuffer = (*vertexBuffer)(nil)

// Effect is a shading program with named texture parameters, backed by
// the compiled quad shader.
type Effect struct {
	params *render.PassthroughEffect
	shader *quadShader
}

// SetTexture binds a texture to the named parameter.
func (e *Effect) SetTexture(name string, tex render.Texture) {
	e.params.SetTexture(name, tex)
}

// Texture returns the texture bound to the named parameter, or nil.
func (e *Effect) Texture(name string) render.Texture {
	return e.params.Texture(name)
}

// Ensure Effect implements render.Effect.
var _ render.Effect = (*Effect)(nil)
