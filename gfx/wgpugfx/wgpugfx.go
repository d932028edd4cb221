// Package wgpugfx draws through WebGPU. Programs are WGSL modules with vs_main
// and fs_main entry points and a single uniform struct of mat4 fields at
// @group(0) @binding(0); each field name is a uniform location.
package wgpugfx

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/levelwalk/gfx"
)

const (
	// uniformBlockSize is one draw's slice of the uniform ring. It matches the
	// default minUniformBufferOffsetAlignment, so at most four mat4 fit.
	uniformBlockSize = 256
	maxUniformSlots  = uniformBlockSize / 64
	// maxDrawsPerFrame bounds the uniform ring; further draws are dropped.
	maxDrawsPerFrame = 64

	depthFormat = wgpu.TextureFormatDepth24Plus
)

var errNoFrame = errors.New("wgpugfx: no frame in progress")

type program struct {
	label     string
	modules   []*wgpu.ShaderModule
	layout    *wgpu.BindGroupLayout
	pipelines map[gfx.PrimitiveKind]*wgpu.RenderPipeline

	slots     []string
	values    []mgl32.Mat4
	ring      *wgpu.Buffer
	bindGroup *wgpu.BindGroup
	ringNext  int
}

// Graphics implements gfx.Context on a WebGPU surface.
type Graphics struct {
	surface *wgpu.Surface
	adapter *wgpu.Adapter
	device  *wgpu.Device
	queue   *wgpu.Queue
	config  wgpu.SurfaceConfiguration

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	programs map[gfx.ProgramHandle]*program
	buffers  map[gfx.BufferHandle]*wgpu.Buffer
	next     uint32

	frameTexture *wgpu.Texture
	frameView    *wgpu.TextureView
	encoder      *wgpu.CommandEncoder
	pass         *wgpu.RenderPassEncoder
	dropped      int
}

// New opens a device for the surface described by desc, typically
// wgpuglfw.GetSurfaceDescriptor of the window.
func New(desc *wgpu.SurfaceDescriptor, width, height int) (*Graphics, error) {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	surface := instance.CreateSurface(desc)
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Level Device",
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}

	caps := surface.GetCapabilities(adapter)
	g := &Graphics{
		surface: surface,
		adapter: adapter,
		device:  device,
		queue:   device.GetQueue(),
		config: wgpu.SurfaceConfiguration{
			Usage:       wgpu.TextureUsageRenderAttachment,
			Format:      caps.Formats[0],
			PresentMode: wgpu.PresentModeFifo, // vsync paces the frame loop
			AlphaMode:   caps.AlphaModes[0],
		},
		programs: make(map[gfx.ProgramHandle]*program),
		buffers:  make(map[gfx.BufferHandle]*wgpu.Buffer),
	}
	if err := g.resize(width, height); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Graphics) handle() uint32 {
	g.next++
	return g.next
}

func (g *Graphics) resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if uint32(width) == g.config.Width && uint32(height) == g.config.Height {
		return nil
	}
	g.config.Width = uint32(width)
	g.config.Height = uint32(height)
	g.surface.Configure(g.adapter, g.device, &g.config)

	if g.depthView != nil {
		g.depthView.Release()
		g.depthTexture.Release()
	}
	tex, err := g.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return err
	}
	g.depthTexture, g.depthView = tex, view
	return nil
}

func (g *Graphics) CompileProgram(vertexSource, fragmentSource string) (gfx.ProgramHandle, error) {
	slots, err := uniformSlots(vertexSource)
	if err != nil {
		return 0, &gfx.CompileError{Stage: "vertex", Log: err.Error()}
	}

	id := gfx.ProgramHandle(g.handle())
	p := &program{
		label:     fmt.Sprintf("program %d", id),
		pipelines: make(map[gfx.PrimitiveKind]*wgpu.RenderPipeline),
		slots:     slots,
		values:    make([]mgl32.Mat4, len(slots)),
	}

	vs, err := g.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          p.label + " vertex",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: vertexSource},
	})
	if err != nil {
		return 0, &gfx.CompileError{Stage: "vertex", Log: err.Error()}
	}
	p.modules = append(p.modules, vs)
	fs := vs
	if fragmentSource != vertexSource {
		fs, err = g.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
			Label:          p.label + " fragment",
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: fragmentSource},
		})
		if err != nil {
			p.release()
			return 0, &gfx.CompileError{Stage: "fragment", Log: err.Error()}
		}
		p.modules = append(p.modules, fs)
	}

	if err := g.buildPipelines(p, vs, fs); err != nil {
		p.release()
		return 0, &gfx.CompileError{Stage: "pipeline", Log: err.Error()}
	}
	g.programs[id] = p
	return id, nil
}

func (g *Graphics) buildPipelines(p *program, vs, fs *wgpu.ShaderModule) error {
	var err error
	p.layout, err = g.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: p.label + " uniforms",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:             wgpu.BufferBindingTypeUniform,
				HasDynamicOffset: true,
				MinBindingSize:   uint64(len(p.slots) * 64),
			},
		}},
	})
	if err != nil {
		return err
	}
	layout, err := g.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.label,
		BindGroupLayouts: []*wgpu.BindGroupLayout{p.layout},
	})
	if err != nil {
		return err
	}
	defer layout.Release()

	p.ring, err = g.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: p.label + " uniform ring",
		Size:  uniformBlockSize * maxDrawsPerFrame,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	p.bindGroup, err = g.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  p.label + " uniforms",
		Layout: p.layout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  p.ring,
			Offset:  0,
			Size:    uint64(len(p.slots) * 64),
		}},
	})
	if err != nil {
		return err
	}

	for _, kind := range []gfx.PrimitiveKind{gfx.TriangleList, gfx.TriangleStrip} {
		pipeline, err := g.device.CreateRenderPipeline(g.pipelineDescriptor(p.label, layout, vs, fs, kind))
		if err != nil {
			return fmt.Errorf("%s pipeline: %w", kind, err)
		}
		p.pipelines[kind] = pipeline
	}
	return nil
}

func (g *Graphics) pipelineDescriptor(label string, layout *wgpu.PipelineLayout, vs, fs *wgpu.ShaderModule, kind gfx.PrimitiveKind) *wgpu.RenderPipelineDescriptor {
	primitive := wgpu.PrimitiveState{
		Topology:  wgpu.PrimitiveTopologyTriangleList,
		FrontFace: wgpu.FrontFaceCCW,
		CullMode:  wgpu.CullModeNone,
	}
	if kind == gfx.TriangleStrip {
		primitive.Topology = wgpu.PrimitiveTopologyTriangleStrip
		primitive.StripIndexFormat = wgpu.IndexFormatUint16
	}

	return &wgpu.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("%s %s", label, kind),
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    g.config.Format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: primitive,
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}
}

func vertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: gfx.VertexStride * 4,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{ShaderLocation: 0, Offset: 0, Format: wgpu.VertexFormatFloat32x3},
			{ShaderLocation: 1, Offset: 12, Format: wgpu.VertexFormatFloat32x3},
		},
	}
}

func (g *Graphics) UniformLocation(p gfx.ProgramHandle, name string) (gfx.UniformLocation, error) {
	prog, ok := g.programs[p]
	if !ok {
		return -1, fmt.Errorf("wgpugfx: unknown program %d", p)
	}
	return slotOf(prog.slots, name)
}

func (g *Graphics) UploadVertexBuffer(data []float32) (gfx.BufferHandle, error) {
	if len(data) == 0 || len(data)%gfx.VertexStride != 0 {
		return gfx.NoBuffer, fmt.Errorf("wgpugfx: vertex data length %d", len(data))
	}
	return g.upload("Vertex Buffer", wgpu.ToBytes(data), wgpu.BufferUsageVertex)
}

func (g *Graphics) UploadIndexBuffer(data []uint16) (gfx.BufferHandle, error) {
	if len(data) == 0 {
		return gfx.NoBuffer, errors.New("wgpugfx: empty index data")
	}
	return g.upload("Index Buffer", wgpu.ToBytes(padIndices(data)), wgpu.BufferUsageIndex)
}

func (g *Graphics) upload(label string, contents []byte, usage wgpu.BufferUsage) (gfx.BufferHandle, error) {
	buf, err := g.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: contents,
		Usage:    usage,
	})
	if err != nil {
		return gfx.NoBuffer, err
	}
	id := gfx.BufferHandle(g.handle())
	g.buffers[id] = buf
	return id, nil
}

func (g *Graphics) BeginFrame(width, height int) error {
	if g.pass != nil {
		return errors.New("wgpugfx: previous frame not ended")
	}
	if width <= 0 || height <= 0 {
		// minimised; the frame is skipped and draws are ignored
		return nil
	}
	if err := g.resize(width, height); err != nil {
		return err
	}

	tex, err := g.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return err
	}
	encoder, err := g.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		tex.Release()
		return err
	}

	g.frameTexture, g.frameView, g.encoder = tex, view, encoder
	g.pass = encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            g.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})
	for _, p := range g.programs {
		p.ringNext = 0
	}
	g.dropped = 0
	return nil
}

func (g *Graphics) SetUniformMatrix4(p gfx.ProgramHandle, loc gfx.UniformLocation, m mgl32.Mat4) {
	prog, ok := g.programs[p]
	if !ok || loc < 0 || int(loc) >= len(prog.values) {
		return
	}
	prog.values[loc] = m
}

// Draw snapshots the program's current uniforms into the next ring block so
// each draw in the pass sees the values set just before it.
func (g *Graphics) Draw(call gfx.DrawCall) {
	if g.pass == nil || call.Count <= 0 {
		return
	}
	prog, ok := g.programs[call.Program]
	vertices, vok := g.buffers[call.Vertices]
	if !ok || !vok {
		return
	}
	if prog.ringNext >= maxDrawsPerFrame {
		g.dropped++
		return
	}

	offset := uint32(prog.ringNext * uniformBlockSize)
	prog.ringNext++
	g.queue.WriteBuffer(prog.ring, uint64(offset), packUniforms(prog.values))

	g.pass.SetPipeline(prog.pipelines[call.Kind])
	g.pass.SetBindGroup(0, prog.bindGroup, []uint32{offset})
	g.pass.SetVertexBuffer(0, vertices, 0, wgpu.WholeSize)

	if call.Indices == gfx.NoBuffer {
		g.pass.Draw(uint32(call.Count), 1, 0, 0)
		return
	}
	indices, ok := g.buffers[call.Indices]
	if !ok {
		return
	}
	g.pass.SetIndexBuffer(indices, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	g.pass.DrawIndexed(uint32(call.Count), 1, 0, 0, 0)
}

func (g *Graphics) EndFrame() error {
	if g.pass == nil {
		return nil
	}
	g.pass.End()
	g.pass.Release()
	g.pass = nil

	defer func() {
		g.encoder.Release()
		g.frameView.Release()
		g.frameTexture.Release()
		g.encoder, g.frameView, g.frameTexture = nil, nil, nil
	}()

	cmd, err := g.encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer cmd.Release()
	g.queue.Submit(cmd)
	g.surface.Present()

	if g.dropped > 0 {
		return fmt.Errorf("wgpugfx: dropped %d draws over the per-frame limit of %d", g.dropped, maxDrawsPerFrame)
	}
	return nil
}

// Release frees every GPU object created through g.
func (g *Graphics) Release() {
	for _, p := range g.programs {
		p.release()
	}
	for _, b := range g.buffers {
		b.Release()
	}
	g.programs = nil
	g.buffers = nil
	if g.depthView != nil {
		g.depthView.Release()
		g.depthTexture.Release()
	}
	g.queue.Release()
	g.device.Release()
	g.adapter.Release()
	g.surface.Release()
}

func (p *program) release() {
	for _, pl := range p.pipelines {
		pl.Release()
	}
	if p.bindGroup != nil {
		p.bindGroup.Release()
	}
	if p.ring != nil {
		p.ring.Release()
	}
	if p.layout != nil {
		p.layout.Release()
	}
	for _, m := range p.modules {
		m.Release()
	}
}
