package emu

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/veandco/go-sdl2/sdl"

	"c64/input"
	"c64/vic"
)

const vertexShaderSource = `
#version 330 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
out vec2 TexCoord;
void main() {
    gl_Position = vec4(aPos, 0.0, 1.0);
    TexCoord = aTexCoord;
}
` + "\x00"

const fragmentShaderSource = `
#version 330 core
out vec4 FragColor;
in vec2 TexCoord;
uniform sampler2D ourTexture;
void main() {
    FragColor = texture(ourTexture, TexCoord);
}
` + "\x00"

// palette is the canonical 16-entry VIC-II RGB palette (Pepto-ish
// values), indexed by the 4-bit color codes stored in the chunky
// framebuffer.
var palette = [16][3]uint8{
	{0x00, 0x00, 0x00}, {0xff, 0xff, 0xff}, {0x81, 0x33, 0x38}, {0x75, 0xce, 0xc8},
	{0x8e, 0x3c, 0x97}, {0x56, 0xac, 0x4d}, {0x2e, 0x2c, 0x9b}, {0xed, 0xf1, 0x71},
	{0x8e, 0x50, 0x29}, {0x55, 0x38, 0x00}, {0xc4, 0x6c, 0x71}, {0x4a, 0x4a, 0x4a},
	{0x7b, 0x7b, 0x7b}, {0xa9, 0xff, 0x9f}, {0x70, 0x6d, 0xeb}, {0xb2, 0xb2, 0xb2},
}

// Window is a GL-blit SDL2 host window: one fullscreen textured quad,
// uploaded fresh every frame from a chunky, palette-indexed pixel buffer.
type Window struct {
	win     *sdl.Window
	glctx   sdl.GLContext
	texture uint32
	rgba    []uint8 // scratch RGBA conversion buffer
}

// NewWindow opens an SDL2+OpenGL window scale times the VIC's native
// visible resolution.
func NewWindow(title string, scale int) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_JOYSTICK); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	w, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(vic.DisplayX*scale), int32(vic.DisplayY*scale),
		sdl.WINDOW_OPENGL|sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	ctx, err := w.GLCreateContext()
	if err != nil {
		return nil, fmt.Errorf("gl context: %w", err)
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	vert, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	frag, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.UseProgram(prog)

	vertices := []float32{
		-1, 1, 0, 0,
		-1, -1, 0, 1,
		1, -1, 1, 1,
		-1, 1, 0, 0,
		1, -1, 1, 1,
		1, 1, 1, 0,
	}
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)

	return &Window{
		win: w, glctx: ctx, texture: texture,
		rgba: make([]uint8, vic.DisplayX*vic.DisplayY*4),
	}, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		return 0, fmt.Errorf("shader compilation failed")
	}
	return shader, nil
}

// Present uploads fb (one 4-bit VIC color index per pixel) as an RGBA
// texture and draws it to the window.
func (w *Window) Present(fb []uint8) {
	for i, idx := range fb {
		c := palette[idx&0x0f]
		w.rgba[i*4], w.rgba[i*4+1], w.rgba[i*4+2], w.rgba[i*4+3] = c[0], c[1], c[2], 0xff
	}
	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(vic.DisplayX), int32(vic.DisplayY), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&w.rgba[0]))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	w.win.GLSwap()
}

// PumpEvents drains the SDL event queue, feeding key/joystick events into
// mailbox, and reports whether the host requested to quit.
func (w *Window) PumpEvents(mailbox *input.Mailbox) bool {
	for {
		ev := sdl.PollEvent()
		if ev == nil {
			return false
		}
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			return true
		case *sdl.KeyboardEvent:
			mailbox.HandleKey(e.Keysym.Scancode, e.State == sdl.PRESSED)
		}
	}
}

func (w *Window) Close() {
	sdl.GLDeleteContext(w.glctx)
	w.win.Destroy()
	sdl.Quit()
}
