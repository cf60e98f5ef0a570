package main

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/flipbook/assets"
	"github.com/milk9111/flipbook/common"
	"github.com/milk9111/flipbook/config"
	"github.com/milk9111/flipbook/player"
)

type Game struct {
	debug   bool
	now     func() time.Time
	player  *player.Player
	overlay *Overlay
	cache   *assets.FrameCache
	watcher *assets.Watcher
	dirSrc  *assets.DirSource

	// buttonClicked is set by overlay handlers during ui.Update so the same
	// click is not also delivered to the main area.
	buttonClicked bool

	texture      *ebiten.Image
	textureFrame int
	textureDirty bool
	failed       map[int]bool
}

// NewGame wires the player to its assets. Audio that fails to load leaves
// the player silent.
func NewGame(cfg *config.Config, greeting string, debug bool) (*Game, error) {
	src, err := assets.NewSource(cfg.AssetRoot)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	frames := &assets.Frames{Source: src, Pattern: cfg.FramePattern, Total: cfg.TotalFrames}
	cache := assets.NewFrameCache(frames, cfg.PreloadAhead, cfg.MaxFetches, debug)

	var track player.Track
	if cfg.Audio != "" {
		audioPlayer, err := assets.LoadLoopingTrack(context.Background(), src, cfg.Audio)
		if err != nil {
			log.Printf("game: load audio %s: %v", cfg.Audio, err)
		} else {
			track = audioPlayer
		}
	}

	var clock player.Clock
	switch cfg.Clock {
	case config.ClockInterval:
		clock = player.NewIntervalClock(common.TPS, cfg.FPS)
	default:
		clock = player.NewDriftClock(cfg.FrameInterval())
	}

	p, err := player.New(player.Options{
		TotalFrames:  cfg.TotalFrames,
		GateFrame:    cfg.GateFrame,
		PreloadAhead: cfg.PreloadAhead,
		Clock:        clock,
		Fetcher:      cache,
		Track:        track,
		Volume:       cfg.Volume,
	})
	if err != nil {
		cache.Close()
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		debug:        debug,
		now:          time.Now,
		player:       p,
		cache:        cache,
		textureFrame: -1,
		failed:       make(map[int]bool),
	}
	g.overlay = NewOverlay(greeting, g.onMuteButton, g.onRestartButton)

	if dir, ok := src.(*assets.DirSource); ok && cfg.Watch {
		g.dirSrc = dir
		g.startWatcher(frames)
	}

	p.Mount(g.now())
	return g, nil
}

func (g *Game) startWatcher(frames *assets.Frames) {
	first, err := frames.Path(0)
	if err != nil {
		return
	}
	dir := g.dirSrc.Path(first)
	w, err := assets.NewWatcher(filepath.Dir(dir))
	if err != nil {
		log.Printf("game: watch frames: %v", err)
		return
	}
	g.watcher = w
}

func (g *Game) onMuteButton() {
	g.buttonClicked = true
	g.player.OnMuteToggle()
}

func (g *Game) onRestartButton() {
	g.buttonClicked = true
	g.player.OnRestart(g.now())
}

func (g *Game) Update() error {
	now := g.now()
	g.drainWatcher()

	g.buttonClicked = false
	g.overlay.UI.Update()

	if g.readClick().reachesMainArea() {
		g.player.OnMainAreaClick(now)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.player.OnMuteToggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.player.OnRestart(now)
	}

	if g.player.Update(now) {
		g.textureDirty = true
	}
	g.overlay.Sync(g.player)
	return nil
}

func (g *Game) readClick() click {
	return click{
		buttonHandled: g.buttonClicked,
		keyPressed:    inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		touchReleased: len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0,
		mouseReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		overControls:  g.overlay.OverControls(),
	}
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case file := <-g.watcher.Events:
			name, ok := g.dirSrc.Name(file)
			if !ok || !g.cache.Evict(name) {
				continue
			}
			if g.debug {
				log.Printf("game: frame %s changed on disk", name)
			}
			g.textureDirty = true
		case err := <-g.watcher.Errors:
			log.Printf("game: watch frames: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if img := g.frameTexture(); img != nil {
		b := img.Bounds()
		scale, x, y := common.Fit(float64(b.Dx()), float64(b.Dy()), common.BaseWidth, common.BaseHeight)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x, y)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
	}

	g.overlay.UI.Draw(screen)

	if g.debug {
		seq := g.player.Sequencer()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frame: %d/%d  Gate: %d  State: %s  Cached: %d  FPS: %.2f",
			seq.Frame(), seq.TotalFrames()-1, seq.GateFrame(), seq.State(), g.cache.Resident(), ebiten.ActualFPS()))
	}
}

// frameTexture returns the GPU image for the current frame, converting the
// decoded frame when the frame changed. A frame that fails to load keeps the
// previous texture on screen.
func (g *Game) frameTexture() *ebiten.Image {
	frame := g.player.Frame()
	if !g.textureDirty && frame == g.textureFrame && g.texture != nil {
		return g.texture
	}
	if g.failed[frame] && !g.textureDirty {
		return g.texture
	}

	img, err := g.cache.Frame(context.Background(), frame)
	if err != nil {
		g.failed[frame] = true
		g.textureDirty = false
		log.Printf("game: frame %d: %v", frame, err)
		return g.texture
	}
	delete(g.failed, frame)

	if g.texture != nil {
		g.texture.Deallocate()
	}
	g.texture = ebiten.NewImageFromImage(img)
	g.textureFrame = frame
	g.textureDirty = false
	return g.texture
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close releases the player, the watcher and in-flight fetches.
func (g *Game) Close() {
	g.player.Close()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.cache.Close()
}
