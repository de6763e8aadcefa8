// Package glrender draws scenes into a GLFW window with OpenGL 3.3 and
// reads each frame back as an image.
//
// All calls must be made from the main goroutine.
package glrender

import (
	"fmt"
	"image"
	"runtime"
	"strings"

	"github.com/gmlewis/giftwrap/outline"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

// Config describes the window.
type Config struct {
	Width, Height int
	Title         string
	// Samples is the number of multisample anti-aliasing samples.
	Samples int
}

// DefaultConfig is a 900x900 window with 8x MSAA.
var DefaultConfig = Config{
	Width:   900,
	Height:  900,
	Title:   "ConvexHull",
	Samples: 8,
}

// Window is an OpenGL renderer backed by a visible window.
type Window struct {
	cfg Config
	win *glfw.Window

	program  uint32
	colorLoc int32
	vao, vbo uint32

	data []float32
}

// New opens a centered, non-resizable window and compiles the shaders.
func New(cfg Config) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "glfw.Init")
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, cfg.Samples)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "glfw.CreateWindow")
	}
	if monitor := glfw.GetPrimaryMonitor(); monitor != nil {
		if mode := monitor.GetVideoMode(); mode != nil {
			win.SetPos((mode.Width-cfg.Width)/2, (mode.Height-cfg.Height)/2)
		}
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, errors.Wrap(err, "gl.Init")
	}

	w := &Window{cfg: cfg, win: win}

	fbw, fbh := win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	gl.Enable(gl.MULTISAMPLE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	w.program, err = newProgram(vertexShader, fragmentShader)
	if err != nil {
		w.Close()
		return nil, err
	}
	w.colorLoc = gl.GetUniformLocation(w.program, gl.Str("color\x00"))

	gl.GenVertexArrays(1, &w.vao)
	gl.GenBuffers(1, &w.vbo)

	return w, nil
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

// Render draws sc, presents it and returns the presented pixels.
func (w *Window) Render(sc outline.Scene) (image.Image, error) {
	w.draw(sc)
	w.win.SwapBuffers()
	glfw.PollEvents()
	return w.readPixels()
}

// Hold keeps redrawing sc until the window is closed.
func (w *Window) Hold(sc outline.Scene) {
	for !w.win.ShouldClose() {
		w.draw(sc)
		w.win.SwapBuffers()
		glfw.WaitEventsTimeout(0.1)
	}
}

// Close releases GL objects and the window.
func (w *Window) Close() error {
	if w.vbo != 0 {
		gl.DeleteBuffers(1, &w.vbo)
	}
	if w.vao != 0 {
		gl.DeleteVertexArrays(1, &w.vao)
	}
	if w.program != 0 {
		gl.DeleteProgram(w.program)
	}
	w.win.Destroy()
	glfw.Terminate()
	return nil
}

// draw uploads every strip of the scene into one buffer and issues one
// triangle-strip draw per polygon, setting the color uniform per batch.
func (w *Window) draw(sc outline.Scene) {
	w.data = w.data[:0]
	for _, b := range sc.Batches {
		for _, strip := range b.Strips {
			w.data = strip.AppendFloat32s(w.data)
		}
	}

	gl.ClearColor(sc.Clear[0], sc.Clear[1], sc.Clear[2], sc.Clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if len(w.data) == 0 {
		return
	}

	gl.UseProgram(w.program)
	gl.BindVertexArray(w.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(w.data)*4, gl.Ptr(w.data), gl.STREAM_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	var first int32
	for _, b := range sc.Batches {
		gl.Uniform4f(w.colorLoc, b.Color[0], b.Color[1], b.Color[2], b.Color[3])
		for _, strip := range b.Strips {
			count := int32(len(strip))
			gl.DrawArrays(gl.TRIANGLE_STRIP, first, count)
			first += count
		}
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// readPixels copies the front buffer into an image, flipping it so row 0
// is the top of the window.
func (w *Window) readPixels() (image.Image, error) {
	fbw, fbh := w.win.GetFramebufferSize()
	buf := make([]uint8, 4*fbw*fbh)

	gl.PixelStorei(gl.PACK_ALIGNMENT, 4)
	gl.ReadBuffer(gl.FRONT)
	gl.ReadPixels(0, 0, int32(fbw), int32(fbh), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(buf))
	if e := gl.GetError(); e != gl.NO_ERROR {
		return nil, errors.Errorf("glReadPixels: error 0x%x", e)
	}

	img := image.NewRGBA(image.Rect(0, 0, fbw, fbh))
	flipRows(img.Pix, buf, 4*fbw, fbh)
	return img, nil
}

// flipRows copies src into dst in reverse row order and makes every pixel
// opaque, since blending leaves partial alpha in the framebuffer.
func flipRows(dst, src []uint8, stride, rows int) {
	for y := 0; y < rows; y++ {
		copy(dst[y*stride:(y+1)*stride], src[(rows-1-y)*stride:(rows-y)*stride])
	}
	for i := 3; i < len(dst); i += 4 {
		dst[i] = 0xff
	}
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("unable to link program: %v", log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("unable to compile shader %v: %v", source, log)
	}

	return shader, nil
}

const vertexShader = `#version 330 core
layout (location = 0) in vec2 pos;

uniform vec4 color;

out vec4 inColor;

void main() {
  gl_Position = vec4(pos, 0.0, 1.0);
  inColor = color;
}
`

const fragmentShader = `#version 330 core
in vec4 inColor;
out vec4 FragColor;

void main() {
  FragColor = inColor;
}
`
