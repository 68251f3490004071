package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	_ "github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

func TestMenuListsVariants(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig())

	if len(m.items) < 2 {
		t.Fatalf("menu has %d items, want at least 2", len(m.items))
	}
	if m.items[0].GameID != "flappy" || m.items[1].GameID != "flappy-crossing" {
		t.Errorf("items = %+v", m.items)
	}
}

func TestMenuSelect(t *testing.T) {
	var model tea.Model = NewMenuModel(core.DefaultConfig())

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp}) // clamps at the top
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m := model.(MenuModel)
	if m.Selected() == nil || m.Selected().GameID != "flappy-crossing" {
		t.Fatalf("Selected() = %+v, want flappy-crossing", m.Selected())
	}
	if cmd == nil {
		t.Error("select should quit the menu program")
	}
}

func TestMenuQuitAndResize(t *testing.T) {
	var model tea.Model = NewMenuModel(core.DefaultConfig())

	model, _ = model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if cfg := model.(MenuModel).Config(); cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("Config() = %+v", cfg)
	}

	model, _ = model.Update(runeKey("q"))
	m := model.(MenuModel)
	if !m.IsQuitting() || m.Selected() != nil {
		t.Error("q should quit without a selection")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}
