package main

import (
	"image"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/flipbook/player"
)

const continueHint = "Click anywhere to continue"

// Overlay is the control layer drawn over the frames: the greeting, the
// continue hint, and the mute and restart buttons.
type Overlay struct {
	UI *ebitenui.UI

	greeting *widget.Text
	hint     *widget.Text
	muteBtn  *widget.Button
	restart  *widget.Button
}

// NewOverlay builds the overlay. onMute and onRestart run from ui.Update
// when their button is clicked.
func NewOverlay(greeting string, onMute, onRestart func()) *Overlay {
	// Buttons use colored nine-slices so no theme assets are needed.
	btnImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 160}),
		Hover:   imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 200}),
		Pressed: imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 220}),
	}

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	o := &Overlay{}

	o.greeting = widget.NewText(
		widget.TextOpts.Text(greeting, &face, white),
	)
	if greeting == "" {
		o.greeting.GetWidget().Visibility = widget.Visibility_Hide
	}

	o.hint = widget.NewText(
		widget.TextOpts.Text(continueHint, &face, white),
	)
	o.hint.GetWidget().Visibility = widget.Visibility_Hide

	o.muteBtn = widget.NewButton(
		widget.ButtonOpts.Image(btnImg),
		widget.ButtonOpts.Text(player.MuteLabel, &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(96, 32)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onMute()
		}),
	)

	o.restart = widget.NewButton(
		widget.ButtonOpts.Image(btnImg),
		widget.ButtonOpts.Text(player.RestartLabel, &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(96, 32)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onRestart()
		}),
	)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(anchored(widget.AnchorLayoutPositionCenter, widget.AnchorLayoutPositionStart,
		&widget.Insets{Top: 24}, o.greeting))
	root.AddChild(anchored(widget.AnchorLayoutPositionCenter, widget.AnchorLayoutPositionEnd,
		&widget.Insets{Bottom: 64}, o.hint))
	root.AddChild(anchored(widget.AnchorLayoutPositionEnd, widget.AnchorLayoutPositionEnd,
		&widget.Insets{Right: 16, Bottom: 16}, o.muteBtn, o.restart))

	o.UI = &ebitenui.UI{Container: root}
	return o
}

// anchored lays children out in a padded horizontal row pinned to one spot
// of the root anchor layout.
func anchored(h, v widget.AnchorLayoutPosition, padding *widget.Insets, children ...widget.PreferredSizeLocateableWidget) *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(padding),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: h, VerticalPosition: v}),
		),
	)
	for _, child := range children {
		row.AddChild(child)
	}
	return row
}

// Sync copies player state into the widgets.
func (o *Overlay) Sync(p *player.Player) {
	if text := o.muteBtn.Text(); text != nil {
		text.Label = p.MuteLabel()
	}
	if p.ShowContinueHint() {
		o.hint.GetWidget().Visibility = widget.Visibility_Show
	} else {
		o.hint.GetWidget().Visibility = widget.Visibility_Hide
	}
}

// OverControls reports whether the cursor is on one of the buttons.
func (o *Overlay) OverControls() bool {
	pt := image.Pt(ebiten.CursorPosition())
	return pt.In(o.muteBtn.GetWidget().Rect) || pt.In(o.restart.GetWidget().Rect)
}
