package wgpu

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// quadShaderWGSL is the passthrough quad program: positions arrive
// pre-transformed on the CPU side as clip-space coordinates, the
// fragment stage samples the bound image and modulates by the vertex
// color.
const quadShaderWGSL = `
struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) color: vec4<f32>,
    @location(2) uv: vec2<f32>,
};

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec4<f32>,
    @location(1) uv: vec2<f32>,
};

struct Uniforms {
    view_proj: mat4x4<f32>,
};

@group(0) @binding(0) var<uniform> uniforms: Uniforms;
@group(0) @binding(1) var image: texture_2d<f32>;
@group(0) @binding(2) var image_sampler: sampler;

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.position = uniforms.view_proj * vec4<f32>(in.position, 1.0);
    out.color = in.color;
    out.uv = in.uv;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return textureSample(image, image_sampler, in.uv) * in.color;
}
`

// quadShader holds the compiled shader module shared by the quad and
// sprite draws.
type quadShader struct {
	module hal.ShaderModule
}

// newQuadShader compiles the WGSL source to SPIR-V through naga and
// creates the HAL shader module.
func newQuadShader(device hal.Device) (*quadShader, error) {
	spirvBytes, err := naga.Compile(quadShaderWGSL)
	if err != nil {
		return nil, fmt.Errorf("wgpu: compile quad shader: %w", err)
	}

	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "transform3d: quad shader",
		Source: hal.ShaderSource{
			SPIRV: spirvCode,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create quad shader module: %w", err)
	}

	return &quadShader{module: module}, nil
}

// destroy releases the shader module.
func (s *quadShader) destroy(device hal.Device) {
	if s.module != nil {
		device.DestroyShaderModule(s.module)
		s.module = nil
	}
}
