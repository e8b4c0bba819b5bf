package ui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/einvite/export"
	"github.com/drake/einvite/invite"
	"github.com/drake/einvite/render"
)

// backgroundReadMsg carries a finished upload read.
type backgroundReadMsg struct {
	seq  uint64
	path string
	bg   invite.Background
	err  error
}

// exportDoneMsg carries the result of a Download.
type exportDoneMsg struct {
	path string
	err  error
}

// thumbnailMsg carries a rasterized preview reduced to terminal cells.
type thumbnailMsg struct {
	gen   uint64
	cells [][]render.Cell
	err   error
}

// clipboardReadMsg carries text pasted into the color picker.
type clipboardReadMsg struct {
	text string
	err  error
}

// clipboardWriteMsg reports a copied color.
type clipboardWriteMsg struct {
	hex string
	err error
}

func readBackgroundCmd(seq uint64, path string) tea.Cmd {
	return func() tea.Msg {
		bg, err := invite.ReadBackground(context.Background(), path)
		return backgroundReadMsg{seq: seq, path: path, bg: bg, err: err}
	}
}

// exportCmd captures s and writes it. s is nil until the preview is mounted.
func exportCmd(e *export.Exporter, s export.Surface) tea.Cmd {
	return func() tea.Msg {
		path, err := e.Export(context.Background(), s)
		return exportDoneMsg{path: path, err: err}
	}
}

func thumbnailCmd(ctx context.Context, r *render.Rasterizer, p render.Preview, gen uint64, cols, rows int) tea.Cmd {
	return func() tea.Msg {
		img, err := r.Draw(ctx, p)
		if err != nil {
			return thumbnailMsg{gen: gen, err: err}
		}
		return thumbnailMsg{gen: gen, cells: render.Thumbnail(img, cols, rows, matte)}
	}
}

func copyCmd(hex string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(hex); err != nil {
			return clipboardWriteMsg{hex: hex, err: fmt.Errorf("copy: %w", err)}
		}
		return clipboardWriteMsg{hex: hex}
	}
}

func pasteCmd() tea.Msg {
	text, err := clipboard.ReadAll()
	return clipboardReadMsg{text: text, err: err}
}
