package engine

// Game describes the application hosted by the engine: its configuration
// plus the hooks the frame loop calls into.
type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnOnResize        OnResize
}

type Initialize func(engine *Engine) error
type Update func(deltaTime float64) error
type OnResize func(width uint32, height uint32) error
