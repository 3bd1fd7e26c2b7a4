package main

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/smasonuk/viewrig"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

const (
	pickTolerance     = 24
	transparencyStep  = 0.1
	gridExtent        = 12
	backgroundShading = 28
)

var palette = []color.RGBA{
	{R: 220, G: 80, B: 70, A: 255},
	{R: 80, G: 180, B: 100, A: 255},
	{R: 70, G: 130, B: 220, A: 255},
	{R: 230, G: 190, B: 70, A: 255},
	{R: 170, G: 100, B: 210, A: 255},
	{R: 210, G: 210, B: 210, A: 255},
}

// poseRecord is the clipboard form of the camera pose.
type poseRecord struct {
	Mode        string    `yaml:"mode"`
	Position    []float64 `yaml:"position,flow"`
	Orientation []float64 `yaml:"orientation,flow"` // w, x, y, z
	Focus       []float64 `yaml:"focus,omitempty,flow"`
}

type Game struct {
	rig       *viewrig.Rig
	scene     *viewrig.Scene
	selection *viewrig.Selection
	projector *viewrig.Projector
	panel     *objectPanel
	mouse     *mouseTracker

	configPath string
	watcher    *viewrig.Watcher
	clipboard  bool

	lastMode   viewrig.Mode
	colorIndex int
	status     string
}

func NewGame(opts viewrig.Options, configPath string) *Game {
	log.Println("Initializing scene...")

	g := &Game{
		configPath: configPath,
		mouse:      &mouseTracker{},
	}

	start := viewrig.NewPose(mgl64.Vec3{0, 6, 18}, mgl64.Vec3{0, 0, 0})
	g.rig = viewrig.NewRig(start, viewrig.WithOptions(opts))
	g.lastMode = g.rig.Mode()
	g.scene = demoScene()
	g.selection = viewrig.NewSelection(g.rig)
	g.projector = viewrig.NewProjector(opts.FieldOfView, screenWidth, screenHeight)
	g.panel = newObjectPanel(g.scene, g.selection)

	w, err := viewrig.NewWatcher(configPath)
	if err != nil {
		log.Printf("Config reload disabled: %v", err)
	} else {
		g.watcher = w
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable: %v", err)
	} else {
		g.clipboard = true
	}

	log.Println("Initialization Complete.")
	return g
}

func demoScene() *viewrig.Scene {
	s := viewrig.NewScene()
	add := func(name string, x, y, z, size float64, c int) {
		s.Add(viewrig.NewSceneObject(name, mgl64.Vec3{x, y, z}, size, palette[c]))
	}
	add("Crate", 0, 0.5, 0, 1, 0)
	add("Crate Small", 2, 0.25, 1.5, 0.5, 0)
	add("Pillar", -4, 2, -3, 1.5, 5)
	add("Tower", 6, 3, -6, 2, 2)
	add("Beacon", -7, 0.5, 5, 1, 3)
	add("Block", 3, 1, 6, 2, 1)
	add("Marker", 0, 0.25, -9, 0.5, 4)
	return s
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("Closing config watcher: %v", err)
		}
	}
}

func (g *Game) Update() error {
	g.pollConfig()

	typing := g.panel.Update()
	in := g.mouse.sample(g.panel.Contains(ebiten.CursorPosition()))
	if at, ok := g.mouse.click(); ok && !in.PointerOverUI {
		g.pick(at)
	}
	if !typing {
		g.handleKeys()
	}

	g.rig.Update(in)
	if mode := g.rig.Mode(); mode != g.lastMode {
		log.Printf("Camera %s -> %s", g.lastMode, mode)
		g.lastMode = mode
	}
	return nil
}

func (g *Game) pick(at image.Point) {
	obj, ok := g.projector.Pick(g.rig.Pose(), g.scene.Objects(), float64(at.X), float64(at.Y), pickTolerance)
	if !ok {
		return
	}
	g.selection.Toggle(obj)
}

func (g *Game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.selection.Clear()
	case inpututil.IsKeyJustPressed(ebiten.KeyA) && ebiten.IsKeyPressed(ebiten.KeyControl):
		g.selection.SelectAll(g.scene.Objects())
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.selection.Apply(func(o *viewrig.SceneObject) { o.SetVisible(!o.Visible) })
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.colorIndex = (g.colorIndex + 1) % len(palette)
		g.selection.Apply(func(o *viewrig.SceneObject) { o.SetColor(palette[g.colorIndex]) })
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		g.selection.Apply(func(o *viewrig.SceneObject) { o.SetTransparency(alpha(o) - transparencyStep) })
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		g.selection.Apply(func(o *viewrig.SceneObject) { o.SetTransparency(alpha(o) + transparencyStep) })
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.copyPose()
	}
}

func alpha(o *viewrig.SceneObject) float64 {
	return float64(o.Color.A) / 255
}

func (g *Game) pollConfig() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case _, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reloadConfig()
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("Config watch: %v", err)
		default:
			return
		}
	}
}

// reloadConfig applies the config file on disk. A broken file is logged
// and the current options stay in effect.
func (g *Game) reloadConfig() {
	cfg, err := viewrig.LoadConfig(g.configPath)
	if err != nil {
		log.Printf("Reload %s: %v", g.configPath, err)
		return
	}
	opts, err := cfg.Options()
	if err != nil {
		log.Printf("Reload %s: %v", g.configPath, err)
		return
	}
	g.rig.SetOptions(opts)
	g.projector.FieldOfView = opts.FieldOfView
	log.Printf("Reloaded %s", g.configPath)
	g.status = "config reloaded"
}

func (g *Game) copyPose() {
	pose := g.rig.Pose()
	q := pose.Orientation
	rec := poseRecord{
		Mode:        g.rig.Mode().String(),
		Position:    pose.Position[:],
		Orientation: []float64{q.W, q.V[0], q.V[1], q.V[2]},
	}
	if g.rig.HasFocus() {
		focus := g.rig.FocusPoint()
		rec.Focus = focus[:]
	}

	data, err := yaml.Marshal(rec)
	if err != nil {
		log.Printf("Encoding pose: %v", err)
		return
	}
	if !g.clipboard {
		log.Printf("Pose:\n%s", data)
		g.status = "pose logged"
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.status = "pose copied"
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: backgroundShading, G: backgroundShading, B: backgroundShading + 6, A: 255})

	pose := g.rig.Pose()
	drawGrid(screen, g.projector, pose, gridExtent)
	for _, obj := range g.scene.SortedByDistance(pose.Position) {
		if !obj.Visible {
			continue
		}
		drawObject(screen, g.projector, pose, obj)
	}
	if g.rig.Mode() != viewrig.ModeFree {
		drawFocusMark(screen, g.projector, pose, g.rig.FocusPoint())
	}

	g.panel.Draw(screen)

	info := fmt.Sprintf("FPS: %0.2f  mode: %s  selected: %d\n%s", ebiten.ActualFPS(), g.rig.Mode(), g.selection.Len(), pose)
	if g.status != "" {
		info += "\n" + g.status
	}
	ebitenutil.DebugPrintAt(screen, info, panelWidth+panelPadding, panelPadding)
	ebitenutil.DebugPrintAt(screen, "RMB look  MMB pan  LMB orbit/pick  wheel zoom  Esc clear  Ctrl+A all  H hide  C color  [ ] alpha  P copy pose",
		panelWidth+panelPadding, screenHeight-rowHeight)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
