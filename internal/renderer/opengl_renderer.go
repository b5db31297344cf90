package renderer

import (
	"fmt"

	"Gopher3DSky/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// gpuMesh holds the GL objects uploaded for one Mesh.
type gpuMesh struct {
	VAO, VBO, NBO, EBO uint32
	Count              int32
	Indexed            bool
}

type meshDraw struct {
	mesh  *Mesh
	model mgl32.Mat4
}

type skyDraw struct {
	sky   *Sky
	model mgl32.Mat4
}

// OpenGLRenderer draws a Scene with a sky dome and lit meshes. All methods must
// be called on the thread that owns the GL context.
type OpenGLRenderer struct {
	ToneMapping    ToneMapping
	FrustumCulling bool

	width, height int32
	exposure      float32

	skyShader    Shader
	meshShader   Shader
	skyUniforms  *UniformCache
	meshUniforms *UniformCache

	cubeVAO, cubeVBO uint32
	meshes           map[*Mesh]*gpuMesh

	// Reused between frames
	meshDraws []meshDraw
	skyDraws  []skyDraw
}

func NewOpenGLRenderer(width, height int) *OpenGLRenderer {
	return &OpenGLRenderer{
		ToneMapping:    ACESFilmicToneMapping,
		FrustumCulling: true,
		width:          int32(width),
		height:         int32(height),
		exposure:       1,
		meshes:         make(map[*Mesh]*gpuMesh),
	}
}

// Init compiles shaders and uploads static geometry. gl.Init must already have
// succeeded on the current context.
func (rend *OpenGLRenderer) Init() error {
	rend.skyShader = InitSkyShader()
	if err := rend.skyShader.Compile(); err != nil {
		return fmt.Errorf("renderer init: %w", err)
	}
	rend.meshShader = InitMeshShader()
	if err := rend.meshShader.Compile(); err != nil {
		rend.skyShader.Delete()
		return fmt.Errorf("renderer init: %w", err)
	}
	rend.skyUniforms = NewUniformCache(rend.skyShader.Program())
	rend.meshUniforms = NewUniformCache(rend.meshShader.Program())

	rend.initCube()

	gl.Enable(gl.DEPTH_TEST)
	gl.Viewport(0, 0, rend.width, rend.height)
	logger.Log.Info("OpenGL renderer initialized",
		zap.Int32("width", rend.width),
		zap.Int32("height", rend.height))
	return nil
}

// initCube uploads a unit cube seen from inside, used for the sky dome.
func (rend *OpenGLRenderer) initCube() {
	vertices := []float32{
		-1, 1, -1, -1, -1, -1, 1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1, -1,
		-1, -1, 1, -1, -1, -1, -1, 1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1,
		1, -1, -1, 1, -1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, 1, -1, -1,
		-1, -1, 1, -1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, 1, -1, -1, 1,
		-1, 1, -1, 1, 1, -1, 1, 1, 1, 1, 1, 1, -1, 1, 1, -1, 1, -1,
		-1, -1, -1, -1, -1, 1, 1, -1, -1, 1, -1, -1, -1, -1, 1, 1, -1, 1,
	}
	gl.GenVertexArrays(1, &rend.cubeVAO)
	gl.GenBuffers(1, &rend.cubeVBO)
	gl.BindVertexArray(rend.cubeVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, rend.cubeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
}

func (rend *OpenGLRenderer) SetToneMappingExposure(exposure float32) {
	rend.exposure = exposure
}

func (rend *OpenGLRenderer) ToneMappingExposure() float32 {
	return rend.exposure
}

// Resize updates the viewport to match the framebuffer size.
func (rend *OpenGLRenderer) Resize(width, height int) {
	rend.width, rend.height = int32(width), int32(height)
	gl.Viewport(0, 0, rend.width, rend.height)
}

func (rend *OpenGLRenderer) Render(scene *Scene, camera *Camera) {
	bg := scene.Background
	gl.ClearColor(bg.X(), bg.Y(), bg.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	rend.collect(scene)
	viewProjection := camera.GetViewProjection()

	sunDirection := mgl32.Vec3{0, 1, 0}
	if len(rend.skyDraws) > 0 {
		if s := rend.skyDraws[0].sky.Uniforms.Vec3(UniformSunPosition); s.Len() > 0 {
			sunDirection = s.Normalize()
		}
	}

	if len(rend.meshDraws) > 0 {
		var frustum Frustum
		if rend.FrustumCulling {
			frustum = camera.CalculateFrustum()
		}
		rend.meshShader.Use()
		rend.meshUniforms.SetMat4("viewProjection", viewProjection)
		rend.meshUniforms.SetVec3("sunDirection", sunDirection)
		// Fade direct light as the sun reaches the horizon
		rend.meshUniforms.SetFloat("sunIntensity", mgl32.Clamp(sunDirection.Y()*4, 0, 1))
		rend.setToneMapping(rend.meshUniforms)

		for _, d := range rend.meshDraws {
			if rend.FrustumCulling && !rend.visible(&frustum, d) {
				continue
			}
			rend.drawMesh(d)
		}
	}

	if len(rend.skyDraws) > 0 {
		gl.DepthMask(false)
		gl.DepthFunc(gl.LEQUAL)
		// The camera sits inside the cube
		gl.Disable(gl.CULL_FACE)

		rend.skyShader.Use()
		rend.skyUniforms.SetMat4("viewProjection", viewProjection)
		rend.skyUniforms.SetVec3("cameraPosition", camera.Position)
		rend.setToneMapping(rend.skyUniforms)

		gl.BindVertexArray(rend.cubeVAO)
		for _, d := range rend.skyDraws {
			rend.skyUniforms.SetMat4("model", d.model)
			rend.skyUniforms.Upload(d.sky.Uniforms)
			gl.DrawArrays(gl.TRIANGLES, 0, 36)
		}
		gl.BindVertexArray(0)

		gl.DepthMask(true)
		gl.DepthFunc(gl.LESS)
	}
}

func (rend *OpenGLRenderer) setToneMapping(uc *UniformCache) {
	uc.SetFloat("toneMappingExposure", rend.exposure)
	if loc := uc.GetLocation("toneMapping"); loc != -1 {
		gl.Uniform1i(loc, int32(rend.ToneMapping))
	}
}

// collect flattens the visible part of the scene graph into draw lists.
func (rend *OpenGLRenderer) collect(scene *Scene) {
	rend.meshDraws = rend.meshDraws[:0]
	rend.skyDraws = rend.skyDraws[:0]

	var walk func(n *Node, parent mgl32.Mat4)
	walk = func(n *Node, parent mgl32.Mat4) {
		if !n.Visible {
			return
		}
		world := parent.Mul4(n.LocalMatrix())
		if n.Sky != nil {
			rend.skyDraws = append(rend.skyDraws, skyDraw{sky: n.Sky, model: world})
		}
		for _, m := range n.Meshes {
			rend.meshDraws = append(rend.meshDraws, meshDraw{mesh: m, model: world})
		}
		for _, c := range n.children {
			walk(c, world)
		}
	}
	walk(scene.Root, mgl32.Ident4())
}

func (rend *OpenGLRenderer) visible(f *Frustum, d meshDraw) bool {
	center := d.model.Mul4x1(d.mesh.BoundsCenter.Vec4(1)).Vec3()
	// Scale the radius by the largest axis scale of the model matrix
	sx := d.model.Col(0).Vec3().Len()
	sy := d.model.Col(1).Vec3().Len()
	sz := d.model.Col(2).Vec3().Len()
	scale := sx
	if sy > scale {
		scale = sy
	}
	if sz > scale {
		scale = sz
	}
	return f.IntersectsSphere(center, d.mesh.BoundsRadius*scale)
}

func (rend *OpenGLRenderer) drawMesh(d meshDraw) {
	gm, ok := rend.meshes[d.mesh]
	if !ok {
		gm = rend.upload(d.mesh)
		rend.meshes[d.mesh] = gm
	}
	if gm.Count == 0 {
		return
	}
	rend.meshUniforms.SetMat4("model", d.model)
	rend.meshUniforms.SetVec3("diffuseColor", d.mesh.Color)

	gl.BindVertexArray(gm.VAO)
	if gm.Indexed {
		gl.DrawElements(gl.TRIANGLES, gm.Count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, gm.Count)
	}
	gl.BindVertexArray(0)
}

func (rend *OpenGLRenderer) upload(m *Mesh) *gpuMesh {
	gm := &gpuMesh{}
	if len(m.Positions) == 0 {
		return gm
	}
	if len(m.Normals) != len(m.Positions) {
		m.Normals = RecalculateNormals(m.Positions, m.triangleIndices())
	}
	gl.GenVertexArrays(1, &gm.VAO)
	gl.BindVertexArray(gm.VAO)

	gl.GenBuffers(1, &gm.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Positions)*4, gl.Ptr(m.Positions), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &gm.NBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.NBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Normals)*4, gl.Ptr(m.Normals), gl.STATIC_DRAW)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)

	if len(m.Indices) > 0 {
		gl.GenBuffers(1, &gm.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
		gm.Indexed = true
		gm.Count = int32(len(m.Indices))
	} else {
		gm.Count = int32(m.VertexCount())
	}
	gl.BindVertexArray(0)

	logger.Log.Debug("Mesh uploaded",
		zap.String("mesh", m.Name),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("indices", len(m.Indices)))
	return gm
}

func (rend *OpenGLRenderer) Cleanup() {
	for m, gm := range rend.meshes {
		gl.DeleteBuffers(1, &gm.VBO)
		gl.DeleteBuffers(1, &gm.NBO)
		if gm.Indexed {
			gl.DeleteBuffers(1, &gm.EBO)
		}
		gl.DeleteVertexArrays(1, &gm.VAO)
		delete(rend.meshes, m)
	}
	gl.DeleteBuffers(1, &rend.cubeVBO)
	gl.DeleteVertexArrays(1, &rend.cubeVAO)
	rend.skyShader.Delete()
	rend.meshShader.Delete()
}
