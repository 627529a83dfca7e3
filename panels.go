package roomdesigner

import (
	"context"
	"fmt"

	"github.com/phanxgames/roomdesigner/catalog"
)

// ItemSwatches are the colors offered for the selected item.
var ItemSwatches = []Color{
	MustParseColor("#FFFFFF"),
	MustParseColor("#8B4513"),
	MustParseColor("#808080"),
	MustParseColor("#000000"),
}

// WallSwatches are the colors offered for the walls.
var WallSwatches = []Color{
	MustParseColor("#FFFFFF"),
	MustParseColor("#F5F5DC"),
	MustParseColor("#D3D3D3"),
	MustParseColor("#ADD8E6"),
	MustParseColor("#FFDAB9"),
}

// CatalogPanel lists catalog products and adds the chosen one to the room.
type CatalogPanel struct {
	provider catalog.Provider
	products []catalog.Product
	category string
	open     bool
	onChoose func(catalog.Product)
}

// NewCatalogPanel creates a closed panel over provider. onChoose runs for
// every chosen product.
func NewCatalogPanel(provider catalog.Provider, onChoose func(catalog.Product)) *CatalogPanel {
	return &CatalogPanel{provider: provider, onChoose: onChoose}
}

// Refresh reloads the product list from the provider.
func (c *CatalogPanel) Refresh(ctx context.Context) error {
	products, err := c.provider.Products(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}
	c.products = products
	return nil
}

// Toggle opens or closes the panel.
func (c *CatalogPanel) Toggle() {
	c.open = !c.open
}

// Close closes the panel.
func (c *CatalogPanel) Close() {
	c.open = false
}

// IsOpen reports whether the panel is open.
func (c *CatalogPanel) IsOpen() bool {
	return c.open
}

// Categories returns the categories present in the loaded products.
func (c *CatalogPanel) Categories() []string {
	return catalog.Categories(c.products)
}

// SetCategory filters the listed products. "" or "all" lists everything.
func (c *CatalogPanel) SetCategory(category string) {
	c.category = category
}

// Category returns the active filter.
func (c *CatalogPanel) Category() string {
	return c.category
}

// Products returns the listed products.
func (c *CatalogPanel) Products() []catalog.Product {
	return catalog.InCategory(c.products, c.category)
}

// Choose adds the i-th listed product and closes the panel. Returns false
// if i is out of range.
func (c *CatalogPanel) Choose(i int) bool {
	list := c.Products()
	if i < 0 || i >= len(list) {
		return false
	}
	if c.onChoose != nil {
		c.onChoose(list[i])
	}
	c.open = false
	return true
}

// ChooseID is like Choose but selects by product id.
func (c *CatalogPanel) ChooseID(id int) bool {
	for i, p := range c.Products() {
		if p.ID == id {
			return c.Choose(i)
		}
	}
	return false
}

// RoomEditor is the part of the designer the settings panel drives.
type RoomEditor interface {
	Room() RoomConfig
	SetRoomWidth(w float64)
	SetRoomLength(l float64)
	SetRoomHeight(h float64)
	SetWallColor(c Color)
}

// SettingsPanel edits the room dimensions and wall color.
type SettingsPanel struct {
	editor RoomEditor
	open   bool
}

// NewSettingsPanel creates a closed panel over editor.
func NewSettingsPanel(editor RoomEditor) *SettingsPanel {
	return &SettingsPanel{editor: editor}
}

// Toggle opens or closes the panel.
func (s *SettingsPanel) Toggle() {
	s.open = !s.open
}

// IsOpen reports whether the panel is open.
func (s *SettingsPanel) IsOpen() bool {
	return s.open
}

// StepWidth moves the width slider by steps increments.
func (s *SettingsPanel) StepWidth(steps int) {
	s.editor.SetRoomWidth(snapToStep(s.editor.Room().Width + float64(steps)*RoomSliderStep))
}

// StepLength moves the length slider by steps increments.
func (s *SettingsPanel) StepLength(steps int) {
	s.editor.SetRoomLength(snapToStep(s.editor.Room().Length + float64(steps)*RoomSliderStep))
}

// StepHeight moves the height slider by steps increments.
func (s *SettingsPanel) StepHeight(steps int) {
	s.editor.SetRoomHeight(snapToStep(s.editor.Room().Height + float64(steps)*RoomSliderStep))
}

// SetWallColor sets the wall color.
func (s *SettingsPanel) SetWallColor(c Color) {
	s.editor.SetWallColor(c)
}
