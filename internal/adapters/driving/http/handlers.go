package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/kelvinzhao/epuber-core/internal/adapters/driven/headless"
	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse represents a simple status response
type StatusResponse struct {
	Status string `json:"status"`
}

// Health endpoints

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unavailable")
			return
		}
	}
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Library endpoints

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.libraryService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list books")
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request) {
	var book domain.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.libraryService.Add(r.Context(), &book); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "id, title, and path are required")
		default:
			writeError(w, http.StatusInternalServerError, "failed to add book")
		}
		return
	}

	writeJSON(w, http.StatusCreated, &book)
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	book, err := s.libraryService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "book not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get book")
		}
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) handleRemoveBook(w http.ResponseWriter, r *http.Request) {
	if err := s.libraryService.Remove(r.Context(), r.PathValue("id")); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "book not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to remove book")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLibraryOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.libraryService.Overview(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build overview")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// Reader lifecycle endpoints

// OpenBookRequest selects the book to open.
type OpenBookRequest struct {
	BookID string `json:"bookId"`
}

// OpenBookResponse describes the opened book.
type OpenBookResponse struct {
	BookID string `json:"bookId"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
}

func (s *Server) handleOpenBook(w http.ResponseWriter, r *http.Request) {
	var req OpenBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	open, err := s.readerService.Open(r.Context(), req.BookID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "book not found")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusUnprocessableEntity, "book file could not be opened")
		default:
			writeError(w, http.StatusInternalServerError, "failed to open book")
		}
		return
	}

	writeJSON(w, http.StatusOK, OpenBookResponse{
		BookID: open.BookID,
		Title:  open.Doc.Title(),
		Author: open.Doc.Author(),
	})
}

func (s *Server) handleCloseBook(w http.ResponseWriter, r *http.Request) {
	if err := s.readerService.Close(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to close book")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCurrentBook(w http.ResponseWriter, r *http.Request) {
	open, err := s.readerService.Current()
	if err != nil {
		writeError(w, http.StatusNotFound, "no open book")
		return
	}
	writeJSON(w, http.StatusOK, OpenBookResponse{
		BookID: open.BookID,
		Title:  open.Doc.Title(),
		Author: open.Doc.Author(),
	})
}

// DisplayRequest names a navigation target, either a section ref or a
// locator string.
type DisplayRequest struct {
	Target string `json:"target"`
}

func (s *Server) handleDisplay(w http.ResponseWriter, r *http.Request) {
	var req DisplayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Target == "" {
		writeError(w, http.StatusBadRequest, "target is required")
		return
	}

	if err := s.readerService.Display(r.Context(), req.Target); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "no open book")
		default:
			writeError(w, http.StatusInternalServerError, "failed to navigate")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SpineEntry is one spine item of the open book.
type SpineEntry struct {
	Ref   string `json:"ref"`
	Index int    `json:"index"`
}

// ContentsEntry is one table-of-contents row of the open book.
type ContentsEntry struct {
	Title      string `json:"title"`
	SectionRef string `json:"sectionRef"`
	Depth      int    `json:"depth"`
}

// ContentsResponse is the open book's navigation structure.
type ContentsResponse struct {
	Title  string          `json:"title"`
	Author string          `json:"author,omitempty"`
	Spine  []SpineEntry    `json:"spine"`
	TOC    []ContentsEntry `json:"toc"`
}

func (s *Server) handleTOC(w http.ResponseWriter, r *http.Request) {
	open, err := s.readerService.Current()
	if err != nil {
		writeError(w, http.StatusNotFound, "no open book")
		return
	}

	resp := ContentsResponse{
		Title:  open.Doc.Title(),
		Author: open.Doc.Author(),
		Spine:  make([]SpineEntry, 0, len(open.Doc.Spine())),
		TOC:    make([]ContentsEntry, 0, len(open.Doc.TOC())),
	}
	for _, item := range open.Doc.Spine() {
		resp.Spine = append(resp.Spine, SpineEntry{Ref: item.Ref, Index: item.Index})
	}
	for _, entry := range open.Doc.TOC() {
		resp.TOC = append(resp.TOC, ContentsEntry{
			Title:      entry.Title,
			SectionRef: entry.SectionRef,
			Depth:      entry.Depth,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRestoreState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"state": string(s.positionService.State())})
}

// Annotation endpoints

func (s *Server) handleListAnnotations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.annotationService.List())
}

func (s *Server) handleCreateAnnotation(w http.ResponseWriter, r *http.Request) {
	var h domain.Highlight
	if err := json.NewDecoder(r.Body).Decode(&h); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.annotationService.Create(r.Context(), h)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid highlight")
		default:
			writeError(w, http.StatusInternalServerError, "failed to save highlight")
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateAnnotation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid highlight id")
		return
	}

	var patch domain.HighlightPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := s.annotationService.Update(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "highlight not found")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid patch")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update highlight")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteAnnotation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid highlight id")
		return
	}

	// Deleting an unknown highlight is a no-op, not an error.
	if err := s.annotationService.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete highlight")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Overlay endpoints

func (s *Server) handleOverlayState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.overlayService.State())
}

// SelectionRequest reports a completed text selection from the shell.
type SelectionRequest struct {
	AnchorSection string       `json:"anchorSection"`
	FocusSection  string       `json:"focusSection"`
	Start         int          `json:"start"`
	End           int          `json:"end"`
	Text          string       `json:"text"`
	At            domain.Point `json:"at"`
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sel := domain.Selection{
		AnchorSection: req.AnchorSection,
		FocusSection:  req.FocusSection,
		Start:         req.Start,
		End:           req.End,
		Text:          req.Text,
	}

	if err := s.overlayService.HandleSelection(sel, req.At); err != nil {
		switch {
		case errors.Is(err, domain.ErrCrossSection):
			writeError(w, http.StatusUnprocessableEntity, "selection spans sections")
		case errors.Is(err, domain.ErrNotConfigured):
			writeError(w, http.StatusConflict, "no open book")
		default:
			writeError(w, http.StatusInternalServerError, "failed to handle selection")
		}
		return
	}

	writeJSON(w, http.StatusOK, s.overlayService.State())
}

// OverlayClickRequest reports a click on a drawn overlay.
type OverlayClickRequest struct {
	Locator domain.Locator `json:"locator"`
	At      domain.Point   `json:"at"`
}

func (s *Server) handleOverlayClick(w http.ResponseWriter, r *http.Request) {
	var req OverlayClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.overlayService.HandleOverlayClick(req.Locator, req.At)
	writeJSON(w, http.StatusOK, s.overlayService.State())
}

func (s *Server) handleOverlayDismiss(w http.ResponseWriter, r *http.Request) {
	s.overlayService.Dismiss()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SetTabRequest selects the active side panel tab.
type SetTabRequest struct {
	Tab driving.PanelTab `json:"tab"`
}

func (s *Server) handleSetActiveTab(w http.ResponseWriter, r *http.Request) {
	var req SetTabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Tab {
	case driving.TabContents, driving.TabHighlights, driving.TabSummary, driving.TabChat:
	default:
		writeError(w, http.StatusBadRequest, "unknown tab")
		return
	}

	s.overlayService.SetActiveTab(req.Tab)
	writeJSON(w, http.StatusOK, s.overlayService.State())
}

// FocusRequest names the highlight the panel has focused.
type FocusRequest struct {
	HighlightID int64 `json:"highlightId"`
}

func (s *Server) handleFocusHighlight(w http.ResponseWriter, r *http.Request) {
	var req FocusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.overlayService.FocusHighlight(req.HighlightID)
	writeJSON(w, http.StatusOK, s.overlayService.State())
}

// Reading time endpoints

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.sessionService.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleSessionFlush(w http.ResponseWriter, r *http.Request) {
	if err := s.sessionService.Flush(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to flush session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Summary endpoints

func (s *Server) handleListSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.summaryService.Summaries(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "no open book")
		default:
			writeError(w, http.StatusInternalServerError, "failed to load summaries")
		}
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// SummaryRequest names the chapter to act on.
type SummaryRequest struct {
	SectionRef string `json:"sectionRef"`
}

// SummaryResponse carries a generated summary in markdown and rendered HTML.
type SummaryResponse struct {
	SectionRef string `json:"sectionRef"`
	Summary    string `json:"summary"`
	HTML       string `json:"html"`
}

func (s *Server) handleGenerateSummary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	summary, err := s.summaryService.Generate(r.Context(), req.SectionRef)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCancelled):
			writeJSON(w, http.StatusOK, map[string]bool{"cancelled": true})
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "chapter not found")
		case errors.Is(err, domain.ErrContentTooShort):
			writeError(w, http.StatusUnprocessableEntity, "chapter too short to summarize")
		case errors.Is(err, domain.ErrNotConfigured):
			writeError(w, http.StatusConflict, "ai backend not configured")
		case errors.Is(err, domain.ErrServiceUnavailable):
			writeError(w, http.StatusBadGateway, "ai backend unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "failed to generate summary")
		}
		return
	}

	html, err := s.summaryService.RenderHTML(summary)
	if err != nil {
		// The markdown is still usable without the rendered form
		html = ""
	}

	writeJSON(w, http.StatusOK, SummaryResponse{
		SectionRef: req.SectionRef,
		Summary:    summary,
		HTML:       html,
	})
}

func (s *Server) handleCancelSummary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.summaryService.Cancel(req.SectionRef)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSummaryGenerating(w http.ResponseWriter, r *http.Request) {
	sectionRef := r.URL.Query().Get("sectionRef")
	if sectionRef == "" {
		writeError(w, http.StatusBadRequest, "sectionRef is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"generating": s.summaryService.Generating(sectionRef)})
}

// Chat endpoints

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.chatService.History(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "no open book")
		default:
			writeError(w, http.StatusInternalServerError, "failed to load history")
		}
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// ChatSendRequest carries the user's message.
type ChatSendRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleChatSend(w http.ResponseWriter, r *http.Request) {
	var req ChatSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	reply, err := s.chatService.Send(r.Context(), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCancelled):
			writeJSON(w, http.StatusOK, map[string]bool{"cancelled": true})
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "no open book")
		case errors.Is(err, domain.ErrNotConfigured):
			writeError(w, http.StatusConflict, "ai backend not configured")
		case errors.Is(err, domain.ErrServiceUnavailable):
			writeError(w, http.StatusBadGateway, "ai backend unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "failed to send message")
		}
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handleChatCancel(w http.ResponseWriter, r *http.Request) {
	s.chatService.Cancel()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChatClear(w http.ResponseWriter, r *http.Request) {
	if err := s.chatService.ClearHistory(r.Context()); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "no open book")
		default:
			writeError(w, http.StatusInternalServerError, "failed to clear history")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListPins(w http.ResponseWriter, r *http.Request) {
	pinned, err := s.chatService.Pinned(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load pinned messages")
		return
	}
	writeJSON(w, http.StatusOK, pinned)
}

func (s *Server) handlePinMessage(w http.ResponseWriter, r *http.Request) {
	var msg domain.ChatMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.chatService.Pin(r.Context(), msg); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "message must name its book")
		default:
			writeError(w, http.StatusInternalServerError, "failed to pin message")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (s *Server) handleUnpinMessage(w http.ResponseWriter, r *http.Request) {
	bookID := r.URL.Query().Get("bookId")
	timestamp, err := strconv.ParseInt(r.URL.Query().Get("timestamp"), 10, 64)
	if bookID == "" || err != nil {
		writeError(w, http.StatusBadRequest, "bookId and timestamp are required")
		return
	}

	if err := s.chatService.Unpin(r.Context(), bookID, timestamp); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "pinned message not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to unpin message")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Settings endpoints

func (s *Server) handleGetAISettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settingsService.GetAISettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load ai settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateAISettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.AISettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.settingsService.UpdateAISettings(r.Context(), &settings); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "base url and model are required")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update ai settings")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTestAIConnection(w http.ResponseWriter, r *http.Request) {
	var settings domain.AISettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.settingsService.TestAIConnection(r.Context(), &settings); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNotConfigured):
			writeError(w, http.StatusBadRequest, "base url and model are required")
		default:
			writeError(w, http.StatusBadGateway, "ai backend unreachable")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetReaderSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settingsService.GetReaderSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load reader settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateReaderSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.ReaderSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.settingsService.UpdateReaderSettings(r.Context(), &settings); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update reader settings")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Theme endpoints

// ThemeResponse reports the active theme.
type ThemeResponse struct {
	Theme domain.Theme `json:"theme"`
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ThemeResponse{Theme: s.themeService.Current()})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.themeService.Set(r.Context(), req.Theme); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "unknown theme")
		default:
			writeError(w, http.StatusInternalServerError, "failed to set theme")
		}
		return
	}

	writeJSON(w, http.StatusOK, ThemeResponse{Theme: s.themeService.Current()})
}

// Shell-facing renderer endpoints

// RendererCommandsResponse is a batch of pending render commands.
type RendererCommandsResponse struct {
	Commands []headless.Command `json:"commands"`
	Cursor   uint64             `json:"cursor"`
}

func (s *Server) handleRendererCommands(w http.ResponseWriter, r *http.Request) {
	after, _ := strconv.ParseUint(r.URL.Query().Get("after"), 10, 64)
	cmds, cursor := s.renderer.Drain(after)
	if cmds == nil {
		cmds = []headless.Command{}
	}
	writeJSON(w, http.StatusOK, RendererCommandsResponse{Commands: cmds, Cursor: cursor})
}

// SectionPaintedRequest reports a finished section paint.
type SectionPaintedRequest struct {
	SectionRef string `json:"sectionRef"`
}

func (s *Server) handleSectionPainted(w http.ResponseWriter, r *http.Request) {
	var req SectionPaintedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SectionRef == "" {
		writeError(w, http.StatusBadRequest, "sectionRef is required")
		return
	}

	s.renderer.ReportSectionPainted(req.SectionRef)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// LocationSettledRequest reports the visible location coming to rest.
type LocationSettledRequest struct {
	SectionRef string         `json:"sectionRef"`
	Locator    domain.Locator `json:"locator"`
}

func (s *Server) handleLocationSettled(w http.ResponseWriter, r *http.Request) {
	var req LocationSettledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SectionRef == "" {
		writeError(w, http.StatusBadRequest, "sectionRef is required")
		return
	}

	s.renderer.ReportLocationSettled(req.SectionRef, req.Locator)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSetViewport(w http.ResponseWriter, r *http.Request) {
	var vp domain.Viewport
	if err := json.NewDecoder(r.Body).Decode(&vp); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		writeError(w, http.StatusBadRequest, "width and height must be positive")
		return
	}

	s.renderer.SetViewport(vp)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
