// Package headless implements the renderer port as a command queue. The
// process does not paint anything itself; an embedding shell (a webview or a
// remote client) drains the queue, performs the real rendering, and reports
// paint and settle events back over the driving API.
package headless

import (
	"context"
	"log/slog"
	"sync"

	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Renderer = (*Renderer)(nil)

// CommandKind identifies a queued render command.
type CommandKind string

const (
	CommandDisplay       CommandKind = "display"
	CommandDrawOverlay   CommandKind = "draw_overlay"
	CommandRemoveOverlay CommandKind = "remove_overlay"
	CommandInjectStyle   CommandKind = "inject_style"
)

// Command is one instruction for the embedding shell.
type Command struct {
	Seq     uint64         `json:"seq"`
	Kind    CommandKind    `json:"kind"`
	Target  string         `json:"target,omitempty"`
	Locator domain.Locator `json:"locator,omitempty"`
	Color   string         `json:"color,omitempty"`
	StyleID string         `json:"styleId,omitempty"`
	CSS     string         `json:"css,omitempty"`
}

// Renderer implements driven.Renderer by queuing commands and replaying
// shell-reported events to subscribers.
type Renderer struct {
	mu       sync.Mutex
	logger   *slog.Logger
	seq      uint64
	queue    []Command
	overlays map[domain.Locator]driven.OverlayClickHandler
	viewport domain.Viewport
	painted  []driven.SectionPaintedHandler
	settled  []driven.LocationSettledHandler
}

// NewRenderer creates a headless renderer with the given initial viewport
func NewRenderer(viewport domain.Viewport, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		logger:   logger,
		overlays: make(map[domain.Locator]driven.OverlayClickHandler),
		viewport: viewport,
	}
}

// Display queues a navigation command
func (r *Renderer) Display(ctx context.Context, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.push(Command{Kind: CommandDisplay, Target: target})
	return nil
}

// DrawOverlay queues an overlay draw and records its click handler
func (r *Renderer) DrawOverlay(locator domain.Locator, color string, onClick driven.OverlayClickHandler) error {
	r.mu.Lock()
	r.overlays[locator] = onClick
	r.mu.Unlock()
	r.push(Command{Kind: CommandDrawOverlay, Locator: locator, Color: color})
	return nil
}

// RemoveOverlay queues an overlay removal
func (r *Renderer) RemoveOverlay(locator domain.Locator) error {
	r.mu.Lock()
	delete(r.overlays, locator)
	r.mu.Unlock()
	r.push(Command{Kind: CommandRemoveOverlay, Locator: locator})
	return nil
}

// InjectStyle queues a stylesheet install
func (r *Renderer) InjectStyle(id, css string) error {
	r.push(Command{Kind: CommandInjectStyle, StyleID: id, CSS: css})
	return nil
}

// OnSectionPainted registers a handler for section paint events
func (r *Renderer) OnSectionPainted(fn driven.SectionPaintedHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.painted = append(r.painted, fn)
}

// OnLocationSettled registers a handler for settled-location events
func (r *Renderer) OnLocationSettled(fn driven.LocationSettledHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settled = append(r.settled, fn)
}

// Viewport returns the current visible area
func (r *Renderer) Viewport() domain.Viewport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewport
}

// SetViewport records a viewport change reported by the shell
func (r *Renderer) SetViewport(vp domain.Viewport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewport = vp
}

// ReportSectionPainted delivers a shell-reported paint event
func (r *Renderer) ReportSectionPainted(sectionRef string) {
	r.mu.Lock()
	handlers := append([]driven.SectionPaintedHandler(nil), r.painted...)
	r.mu.Unlock()
	for _, fn := range handlers {
		fn(sectionRef)
	}
}

// ReportLocationSettled delivers a shell-reported settle event
func (r *Renderer) ReportLocationSettled(sectionRef string, locator domain.Locator) {
	r.mu.Lock()
	handlers := append([]driven.LocationSettledHandler(nil), r.settled...)
	r.mu.Unlock()
	for _, fn := range handlers {
		fn(sectionRef, locator)
	}
}

// ReportOverlayClick delivers a shell-reported overlay click. Clicks on
// locators with no live overlay are dropped.
func (r *Renderer) ReportOverlayClick(locator domain.Locator) bool {
	r.mu.Lock()
	onClick, ok := r.overlays[locator]
	r.mu.Unlock()
	if !ok || onClick == nil {
		r.logger.Debug("click on unknown overlay", "locator", locator)
		return false
	}
	onClick(locator)
	return true
}

// Drain returns queued commands after seq and the new cursor. The shell
// polls with its last seen cursor.
func (r *Renderer) Drain(after uint64) ([]Command, uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Command
	for _, cmd := range r.queue {
		if cmd.Seq > after {
			out = append(out, cmd)
		}
	}
	// Consumed commands are dropped from the queue.
	r.queue = append([]Command(nil), out...)
	return out, r.seq
}

func (r *Renderer) push(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	cmd.Seq = r.seq
	r.queue = append(r.queue, cmd)
}
