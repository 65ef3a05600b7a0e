package render

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Scene vertex shader: interleaved pos/normal/uv/color, MVP split so the
// normal matrix can be computed on the CPU.
const sceneVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aUV;
layout(location = 3) in vec4 aColor;

uniform mat4 uProjection;
uniform mat4 uView;
uniform mat4 uModel;
uniform mat3 uNormal;

flat out vec3 vNormal; // flat shading: one normal per face
out vec2 vUV;
out vec4 vColor;

void main() {
    vNormal = normalize(uNormal * aNormal);
    vUV = aUV;
    vColor = aColor;
    gl_Position = uProjection * uView * uModel * vec4(aPos, 1.0);
}
` + "\x00"

// Scene fragment shader: vertex colour, optional texture, ambient plus a
// single two-sided directional light.
const sceneFragSrc = `#version 410 core

uniform sampler2D uTex;
uniform int uTextured;
uniform float uAmbient;
uniform vec3 uLightDir;

flat in vec3 vNormal;
in vec2 vUV;
in vec4 vColor;
out vec4 FragColor;

void main() {
    vec4 base = vColor;
    if (uTextured != 0) {
        base *= texture(uTex, vUV);
    }
    float diffuse = abs(dot(vNormal, -uLightDir));
    float light = clamp(uAmbient + (1.0 - uAmbient) * diffuse * 0.8, 0.0, 1.0);
    FragColor = vec4(base.rgb * light, base.a);
}
` + "\x00"

// Overlay vertex shader: pixel-space quads inside the current viewport,
// origin bottom-left.
const overlayVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aUV;

uniform vec2 uResolution;

out vec2 vUV;

void main() {
    vec2 ndc = (aPos / uResolution) * 2.0 - 1.0;
    gl_Position = vec4(ndc, 0.0, 1.0);
    vUV = aUV;
}
` + "\x00"

const overlayFragSrc = `#version 410 core

uniform sampler2D uTex;

in vec2 vUV;
out vec4 FragColor;

void main() {
    vec4 t = texture(uTex, vUV);
    if (t.a < 0.01) discard;
    FragColor = t;
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, fmt.Errorf("fragment: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}

func uniform(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}

// checkGL returns the pending GL error, if any, tagged with what.
func checkGL(what string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: gl error 0x%04x", what, code)
	}
	return nil
}
