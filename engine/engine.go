// Package engine wires the subsystems into a runnable application: the
// window, input and events, the Vulkan renderer with its render graph,
// the asset manager and the UI plugin.
package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spaghettifunk/pixelui/engine/assets"
	"github.com/spaghettifunk/pixelui/engine/assets/loaders"
	"github.com/spaghettifunk/pixelui/engine/core"
	"github.com/spaghettifunk/pixelui/engine/platform"
	"github.com/spaghettifunk/pixelui/engine/renderer"
	"github.com/spaghettifunk/pixelui/engine/renderer/metadata"
	"github.com/spaghettifunk/pixelui/engine/renderer/vulkan"
	"github.com/spaghettifunk/pixelui/ui"
	"github.com/spaghettifunk/pixelui/widget"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// targetFrameSeconds caps the frame rate when a frame finishes early.
const targetFrameSeconds = 1.0 / 60.0

// statsIntervalNs is how often the frame loop reports FPS and average
// frame time, in clock nanoseconds.
const statsIntervalNs = 5e9

// suspendedSleepMs throttles the loop while the window is minimized.
const suspendedSleepMs = 100

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	isSuspended  bool

	platform     *platform.Platform
	assetManager *assets.AssetManager

	backend  *vulkan.Backend
	vkctx    *vulkan.VulkanContext
	renderer *renderer.Renderer
	uiPlugin *ui.Plugin

	slots       renderer.Slots
	colorTarget metadata.TextureID
	depthTarget metadata.TextureID

	width  uint32
	height uint32

	clock    *core.Clock
	lastTime float64
}

// New builds an engine around a game description. Nothing touches the
// window or GPU until Initialize.
func New(g *Game) (*Engine, error) {
	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
		platform:     platform.New(),
		assetManager: am,
		uiPlugin:     ui.NewPlugin(),
		isRunning:    true,
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
	}, nil
}

// UIPlugin exposes the plugin so the game can spawn sessions.
func (e *Engine) UIPlugin() *ui.Plugin {
	return e.uiPlugin
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageBooting
	cfg := e.gameInstance.ApplicationConfig
	core.LogSetLevel(cfg.LogLevel)

	if err := core.InputInitialize(); err != nil {
		return err
	}
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onQuit)
	core.EventRegister(core.EVENT_CODE_RESIZED, e.onResized)

	if err := e.platform.Startup(cfg.Name, cfg.StartPosX, cfg.StartPosY, cfg.StartWidth, cfg.StartHeight); err != nil {
		return err
	}

	e.currentStage = EngineStageInitializing
	vkctx, err := vulkan.NewVulkanContext(cfg.Name, e.platform.RequiredVulkanExtensions(), e.width, e.height)
	if err != nil {
		return err
	}
	e.vkctx = vkctx

	backend, err := vulkan.NewBackend(vkctx)
	if err != nil {
		return err
	}
	e.backend = backend
	e.renderer = renderer.New(backend)

	e.renderer.Graph.AddNode(&scenePassNode{})
	if err := e.createRenderTargets(); err != nil {
		return err
	}

	if err := e.uiPlugin.Setup(e.renderer); err != nil {
		return err
	}
	e.uiPlugin.SetFrame(ui.FrameParams{
		Width:  e.width,
		Height: e.height,
		Scale:  e.platform.ContentScale(),
	})

	e.assetManager.RegisterLoader(ui.StylesheetExtension, &loaders.StylesheetLoader{})
	e.assetManager.RegisterLoader(".fnt", &loaders.FontLoader{})
	e.assetManager.RegisterLoader(".spv", &loaders.ShaderLoader{})
	e.assetManager.RegisterLoader(".png", &loaders.ImageLoader{})
	e.assetManager.Subscribe(ui.StylesheetExtension, func(path string, asset interface{}) {
		if style, ok := asset.(*widget.Style); ok {
			e.uiPlugin.ApplyStylesheet(style)
		}
	})

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	assetsDir := cfg.AssetsDir
	if assetsDir == "" {
		assetsDir = filepath.Join(wd, "assets")
	}
	if err := e.assetManager.Initialize(assetsDir); err != nil {
		return err
	}
	if cfg.StylesheetPath != "" {
		asset, err := e.assetManager.LoadAsset(cfg.StylesheetPath)
		if err != nil {
			return err
		}
		if style, ok := asset.(*widget.Style); ok {
			e.uiPlugin.ApplyStylesheet(style)
		}
	}

	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// createRenderTargets allocates the offscreen color and depth textures
// the graph renders into, sized to the current framebuffer.
func (e *Engine) createRenderTargets() error {
	color, err := e.backend.CreateTexture(metadata.TextureDescriptor{
		Size:   metadata.Extent3D{Width: e.width, Height: e.height, Depth: 1},
		Format: metadata.TextureFormatBGRA8UnormSrgb,
	})
	if err != nil {
		return fmt.Errorf("color target: %w", err)
	}
	depth, err := e.backend.CreateTexture(metadata.TextureDescriptor{
		Size:   metadata.Extent3D{Width: e.width, Height: e.height, Depth: 1},
		Format: metadata.TextureFormatDepth32Float,
	})
	if err != nil {
		e.backend.RemoveTexture(color)
		return fmt.Errorf("depth target: %w", err)
	}

	e.colorTarget = color
	e.depthTarget = depth
	e.slots = renderer.Slots{
		renderer.SlotColorAttachment: color,
		renderer.SlotDepth:           depth,
	}
	return nil
}

func (e *Engine) destroyRenderTargets() {
	e.backend.RemoveTexture(e.colorTarget)
	e.backend.RemoveTexture(e.depthTarget)
}

// Run drives the frame loop until the window closes or a quit event
// fires.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return core.ErrNotInitialized
	}
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()
	statsDeadline := e.lastTime + statsIntervalNs

	for e.isRunning {
		e.platform.PumpMessages()
		if e.platform.ShouldClose() {
			e.isRunning = false
			break
		}
		if e.isSuspended {
			e.platform.Sleep(suspendedSleepMs)
			continue
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := (currentTime - e.lastTime) / 1e9

		e.uiPlugin.Update(delta)

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("game update failed: %v", err)
				e.isRunning = false
				break
			}
		}

		if err := e.renderer.DrawFrame(e.slots); err != nil {
			core.LogError("frame draw failed: %v", err)
			e.isRunning = false
			break
		}

		e.clock.Update()
		frameSeconds := (e.clock.Elapsed() - currentTime) / 1e9
		core.MetricsUpdate(frameSeconds)
		if currentTime >= statsDeadline {
			fps, frameMS := core.MetricsFrame()
			core.LogDebug("frame stats: %.0f fps, %.2f ms avg", fps, frameMS)
			statsDeadline = currentTime + statsIntervalNs
		}
		if remaining := targetFrameSeconds - frameSeconds; remaining > 0 {
			e.platform.Sleep(int64(remaining*1000) - 1)
		}

		core.InputUpdate(delta)
		e.lastTime = currentTime
	}

	return e.Shutdown()
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	core.LogInfo("shutting down")

	if err := e.assetManager.Close(); err != nil {
		core.LogWarn(err.Error())
	}
	if e.backend != nil {
		e.destroyRenderTargets()
		e.backend.Shutdown()
	}
	if e.vkctx != nil {
		e.vkctx.Destroy()
	}
	if err := core.EventSystemShutdown(); err != nil {
		return err
	}
	if err := core.InputShutdown(); err != nil {
		return err
	}
	return e.platform.Shutdown()
}

// GetFramebufferSize returns the width and height (in this order) of the
// application framebuffer.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onQuit(context core.EventContext) bool {
	core.LogInfo("application quit requested, shutting down")
	e.isRunning = false
	return true
}

func (e *Engine) onResized(context core.EventContext) bool {
	resize, ok := context.Data.(core.ResizeEvent)
	if !ok {
		return false
	}
	width, height := resize.Width, resize.Height
	if width == e.width && height == e.height {
		return false
	}
	e.width, e.height = width, height

	if width == 0 || height == 0 {
		core.LogInfo("window minimized, suspending")
		e.isSuspended = true
		return false
	}
	if e.isSuspended {
		core.LogInfo("window restored, resuming")
		e.isSuspended = false
	}

	e.destroyRenderTargets()
	if err := e.createRenderTargets(); err != nil {
		core.LogError("resize failed: %v", err)
		e.isRunning = false
		return false
	}
	if e.gameInstance.FnOnResize != nil {
		e.gameInstance.FnOnResize(width, height)
	}
	return false
}

// scenePassNode clears the color and depth targets each frame. A full
// application would draw its world here; the UI pass loads whatever this
// leaves behind.
type scenePassNode struct{}

func (n *scenePassNode) Name() string {
	return renderer.MainPassNodeName
}

func (n *scenePassNode) Execute(ctx renderer.ResourceContext, slots renderer.Slots) error {
	encoder, err := ctx.BeginPass(metadata.PassDescriptor{
		ColorAttachments: []metadata.ColorAttachment{{
			Slot:    renderer.SlotColorAttachment,
			Load:    metadata.LoadOpClear,
			Store:   true,
			ClearTo: [4]float32{0.05, 0.05, 0.08, 1.0},
		}},
		DepthStencil: &metadata.DepthStencilAttachment{
			Slot:       renderer.SlotDepth,
			Load:       metadata.LoadOpClear,
			Store:      true,
			ClearDepth: 1.0,
		},
	}, slots)
	if err != nil {
		return err
	}
	return encoder.End()
}
