package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelvinzhao/epuber-core/internal/adapters/driven/headless"
	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven/mocks"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driving"
)

// Mock services for testing

type mockLibraryService struct {
	listFn     func(ctx context.Context) ([]*domain.Book, error)
	getFn      func(ctx context.Context, id string) (*domain.Book, error)
	addFn      func(ctx context.Context, book *domain.Book) error
	removeFn   func(ctx context.Context, id string) error
	overviewFn func(ctx context.Context) (*driving.LibraryOverview, error)
}

func (m *mockLibraryService) List(ctx context.Context) ([]*domain.Book, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockLibraryService) Get(ctx context.Context, id string) (*domain.Book, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockLibraryService) Add(ctx context.Context, book *domain.Book) error {
	if m.addFn != nil {
		return m.addFn(ctx, book)
	}
	return errors.New("not implemented")
}

func (m *mockLibraryService) Remove(ctx context.Context, id string) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockLibraryService) Overview(ctx context.Context) (*driving.LibraryOverview, error) {
	if m.overviewFn != nil {
		return m.overviewFn(ctx)
	}
	return nil, errors.New("not implemented")
}

type mockReaderService struct {
	openFn    func(ctx context.Context, bookID string) (*driving.OpenBook, error)
	closeFn   func(ctx context.Context) error
	currentFn func() (*driving.OpenBook, error)
	displayFn func(ctx context.Context, target string) error
}

func (m *mockReaderService) Open(ctx context.Context, bookID string) (*driving.OpenBook, error) {
	if m.openFn != nil {
		return m.openFn(ctx, bookID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockReaderService) Close(ctx context.Context) error {
	if m.closeFn != nil {
		return m.closeFn(ctx)
	}
	return nil
}

func (m *mockReaderService) Current() (*driving.OpenBook, error) {
	if m.currentFn != nil {
		return m.currentFn()
	}
	return nil, domain.ErrNotFound
}

func (m *mockReaderService) Display(ctx context.Context, target string) error {
	if m.displayFn != nil {
		return m.displayFn(ctx, target)
	}
	return errors.New("not implemented")
}

type mockAnnotationService struct {
	listFn   func() []domain.Highlight
	createFn func(ctx context.Context, h domain.Highlight) (*domain.Highlight, error)
	updateFn func(ctx context.Context, id int64, patch domain.HighlightPatch) (*domain.Highlight, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockAnnotationService) Load(ctx context.Context, bookID string) error { return nil }

func (m *mockAnnotationService) List() []domain.Highlight {
	if m.listFn != nil {
		return m.listFn()
	}
	return nil
}

func (m *mockAnnotationService) Create(ctx context.Context, h domain.Highlight) (*domain.Highlight, error) {
	if m.createFn != nil {
		return m.createFn(ctx, h)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAnnotationService) Update(ctx context.Context, id int64, patch domain.HighlightPatch) (*domain.Highlight, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAnnotationService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockAnnotationService) Get(id int64) (*domain.Highlight, error) {
	return nil, domain.ErrNotFound
}

func (m *mockAnnotationService) FindByLocator(locator domain.Locator) (*domain.Highlight, error) {
	return nil, domain.ErrNotFound
}

func (m *mockAnnotationService) Clear() {}

type mockOverlayService struct {
	state             driving.OverlayState
	handleSelectionFn func(sel domain.Selection, at domain.Point) error
	clicked           []domain.Locator
	dismissed         bool
	activeTab         driving.PanelTab
	focusedID         int64
}

func (m *mockOverlayService) Reconcile(h *domain.Highlight)          {}
func (m *mockOverlayService) ClearOverlay(locator domain.Locator)    {}
func (m *mockOverlayService) SetCodec(codec driven.LocatorCodec)     {}
func (m *mockOverlayService) HandleSectionPainted(sectionRef string) {}
func (m *mockOverlayService) Dismiss()                               { m.dismissed = true }
func (m *mockOverlayService) SetActiveTab(tab driving.PanelTab)      { m.activeTab = tab }
func (m *mockOverlayService) FocusHighlight(id int64)                { m.focusedID = id }
func (m *mockOverlayService) State() driving.OverlayState            { return m.state }

func (m *mockOverlayService) HandleSelection(sel domain.Selection, at domain.Point) error {
	if m.handleSelectionFn != nil {
		return m.handleSelectionFn(sel, at)
	}
	return nil
}

func (m *mockOverlayService) HandleOverlayClick(locator domain.Locator, at domain.Point) {
	m.clicked = append(m.clicked, locator)
}

type mockPositionService struct {
	state driving.RestoreState
}

func (m *mockPositionService) Restore(ctx context.Context, bookID string, doc driven.Document) error {
	return nil
}
func (m *mockPositionService) HandleSectionPainted(ctx context.Context, sectionRef string) {}
func (m *mockPositionService) HandleLocationSettled(ctx context.Context, sectionRef string, locator domain.Locator) {
}
func (m *mockPositionService) State() driving.RestoreState { return m.state }
func (m *mockPositionService) Reset()                      {}

type mockSessionService struct {
	flushFn func(ctx context.Context) error
	statsFn func(ctx context.Context) (*driving.ReadingStats, error)
}

func (m *mockSessionService) Start()       {}
func (m *mockSessionService) Active() bool { return false }

func (m *mockSessionService) Flush(ctx context.Context) error {
	if m.flushFn != nil {
		return m.flushFn(ctx)
	}
	return nil
}

func (m *mockSessionService) Stats(ctx context.Context) (*driving.ReadingStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return nil, errors.New("not implemented")
}

type mockThemeService struct {
	current domain.Theme
	setFn   func(ctx context.Context, theme domain.Theme) error
}

func (m *mockThemeService) Current() domain.Theme { return m.current }

func (m *mockThemeService) Set(ctx context.Context, theme domain.Theme) error {
	if m.setFn != nil {
		return m.setFn(ctx, theme)
	}
	m.current = theme
	return nil
}

func (m *mockThemeService) HandleSectionPainted(sectionRef string) {}

type mockSummaryService struct {
	summariesFn func(ctx context.Context) (map[string]string, error)
	generateFn  func(ctx context.Context, sectionRef string) (string, error)
	generating  bool
	cancelled   []string
}

func (m *mockSummaryService) SetDocument(bookID string, doc driven.Document) {}

func (m *mockSummaryService) Summaries(ctx context.Context) (map[string]string, error) {
	if m.summariesFn != nil {
		return m.summariesFn(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSummaryService) Generate(ctx context.Context, sectionRef string) (string, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, sectionRef)
	}
	return "", errors.New("not implemented")
}

func (m *mockSummaryService) Cancel(sectionRef string) {
	m.cancelled = append(m.cancelled, sectionRef)
}

func (m *mockSummaryService) Generating(sectionRef string) bool { return m.generating }

func (m *mockSummaryService) RenderHTML(summary string) (string, error) {
	return "<p>" + summary + "</p>\n", nil
}

type mockChatService struct {
	historyFn func(ctx context.Context) ([]domain.ChatMessage, error)
	sendFn    func(ctx context.Context, content string) (*domain.ChatMessage, error)
	unpinFn   func(ctx context.Context, bookID string, timestamp int64) error
	cancelled bool
}

func (m *mockChatService) SetBook(bookID, title, author string) {}

func (m *mockChatService) History(ctx context.Context) ([]domain.ChatMessage, error) {
	if m.historyFn != nil {
		return m.historyFn(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockChatService) Send(ctx context.Context, content string) (*domain.ChatMessage, error) {
	if m.sendFn != nil {
		return m.sendFn(ctx, content)
	}
	return nil, errors.New("not implemented")
}

func (m *mockChatService) Cancel() { m.cancelled = true }

func (m *mockChatService) ClearHistory(ctx context.Context) error { return nil }

func (m *mockChatService) Pin(ctx context.Context, msg domain.ChatMessage) error {
	if msg.BookID == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

func (m *mockChatService) Unpin(ctx context.Context, bookID string, timestamp int64) error {
	if m.unpinFn != nil {
		return m.unpinFn(ctx, bookID, timestamp)
	}
	return nil
}

func (m *mockChatService) Pinned(ctx context.Context) ([]domain.ChatMessage, error) {
	return nil, nil
}

type mockHTTPSettingsService struct {
	getAIFn    func(ctx context.Context) (*domain.AISettings, error)
	updateAIFn func(ctx context.Context, settings *domain.AISettings) error
}

func (m *mockHTTPSettingsService) GetAISettings(ctx context.Context) (*domain.AISettings, error) {
	if m.getAIFn != nil {
		return m.getAIFn(ctx)
	}
	return &domain.AISettings{}, nil
}

func (m *mockHTTPSettingsService) UpdateAISettings(ctx context.Context, settings *domain.AISettings) error {
	if m.updateAIFn != nil {
		return m.updateAIFn(ctx, settings)
	}
	return nil
}

func (m *mockHTTPSettingsService) TestAIConnection(ctx context.Context, settings *domain.AISettings) error {
	return nil
}

func (m *mockHTTPSettingsService) GetReaderSettings(ctx context.Context) (*domain.ReaderSettings, error) {
	s := domain.DefaultReaderSettings()
	return &s, nil
}

func (m *mockHTTPSettingsService) UpdateReaderSettings(ctx context.Context, settings *domain.ReaderSettings) error {
	return nil
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(v))
	return &buf
}

func TestHealthHandler(t *testing.T) {
	server := &Server{version: "test"}

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()

	server.handleHealth(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestVersionHandler(t *testing.T) {
	server := &Server{version: "1.2.3"}

	req := httptest.NewRequest("GET", "/version", nil)
	rr := httptest.NewRecorder()

	server.handleVersion(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "1.2.3", resp["version"])
}

func TestListBooksHandler(t *testing.T) {
	server := &Server{
		libraryService: &mockLibraryService{
			listFn: func(ctx context.Context) ([]*domain.Book, error) {
				return []*domain.Book{
					{ID: "b1", Title: "First", Path: "/books/first.epub"},
					{ID: "b2", Title: "Second", Path: "/books/second.epub"},
				}, nil
			},
		},
	}

	req := httptest.NewRequest("GET", "/api/v1/books", nil)
	rr := httptest.NewRecorder()

	server.handleListBooks(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var books []*domain.Book
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&books))
	require.Len(t, books, 2)
	assert.Equal(t, "b1", books[0].ID)
}

func TestAddBookHandler_InvalidInput(t *testing.T) {
	server := &Server{
		libraryService: &mockLibraryService{
			addFn: func(ctx context.Context, book *domain.Book) error {
				return domain.ErrInvalidInput
			},
		},
	}

	req := httptest.NewRequest("POST", "/api/v1/books", jsonBody(t, domain.Book{Title: "no id"}))
	rr := httptest.NewRecorder()

	server.handleAddBook(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetBookHandler_NotFound(t *testing.T) {
	server := &Server{
		libraryService: &mockLibraryService{
			getFn: func(ctx context.Context, id string) (*domain.Book, error) {
				return nil, domain.ErrNotFound
			},
		},
	}

	req := httptest.NewRequest("GET", "/api/v1/books/missing", nil)
	req.SetPathValue("id", "missing")
	rr := httptest.NewRecorder()

	server.handleGetBook(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestOpenBookHandler(t *testing.T) {
	doc := mocks.NewMockDocument("Dune", "ch01.xhtml", "ch02.xhtml")
	doc.DocAuthor = "Frank Herbert"

	var openedID string
	server := &Server{
		readerService: &mockReaderService{
			openFn: func(ctx context.Context, bookID string) (*driving.OpenBook, error) {
				openedID = bookID
				return &driving.OpenBook{BookID: bookID, Doc: doc}, nil
			},
		},
	}

	req := httptest.NewRequest("POST", "/api/v1/reader/open", jsonBody(t, OpenBookRequest{BookID: "b1"}))
	rr := httptest.NewRecorder()

	server.handleOpenBook(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "b1", openedID)

	var resp OpenBookResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Dune", resp.Title)
	assert.Equal(t, "Frank Herbert", resp.Author)
}

func TestOpenBookHandler_NotFound(t *testing.T) {
	server := &Server{
		readerService: &mockReaderService{
			openFn: func(ctx context.Context, bookID string) (*driving.OpenBook, error) {
				return nil, domain.ErrNotFound
			},
		},
	}

	req := httptest.NewRequest("POST", "/api/v1/reader/open", jsonBody(t, OpenBookRequest{BookID: "nope"}))
	rr := httptest.NewRecorder()

	server.handleOpenBook(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTOCHandler(t *testing.T) {
	doc := mocks.NewMockDocument("Dune", "ch01.xhtml", "ch02.xhtml")
	doc.Contents = []driven.TOCEntry{
		{Title: "Chapter One", SectionRef: "ch01.xhtml", Depth: 0},
		{Title: "Chapter Two", SectionRef: "ch02.xhtml", Depth: 0},
	}

	server := &Server{
		readerService: &mockReaderService{
			currentFn: func() (*driving.OpenBook, error) {
				return &driving.OpenBook{BookID: "b1", Doc: doc}, nil
			},
		},
	}

	req := httptest.NewRequest("GET", "/api/v1/reader/toc", nil)
	rr := httptest.NewRecorder()

	server.handleTOC(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp ContentsResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.Spine, 2)
	require.Len(t, resp.TOC, 2)
	assert.Equal(t, "ch01.xhtml", resp.Spine[0].Ref)
	assert.Equal(t, "Chapter One", resp.TOC[0].Title)
}

func TestCreateAnnotationHandler(t *testing.T) {
	server := &Server{
		annotationService: &mockAnnotationService{
			createFn: func(ctx context.Context, h domain.Highlight) (*domain.Highlight, error) {
				h.ID = 42
				return &h, nil
			},
		},
	}

	body := jsonBody(t, domain.Highlight{
		Locator: "span(ch01.xhtml!5-10)",
		Text:    "quote",
	})
	req := httptest.NewRequest("POST", "/api/v1/annotations", body)
	rr := httptest.NewRecorder()

	server.handleCreateAnnotation(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var created domain.Highlight
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	assert.Equal(t, int64(42), created.ID)
}

func TestUpdateAnnotationHandler_BadID(t *testing.T) {
	server := &Server{annotationService: &mockAnnotationService{}}

	req := httptest.NewRequest("PATCH", "/api/v1/annotations/abc", jsonBody(t, domain.HighlightPatch{}))
	req.SetPathValue("id", "abc")
	rr := httptest.NewRecorder()

	server.handleUpdateAnnotation(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeleteAnnotationHandler(t *testing.T) {
	var deleted int64
	server := &Server{
		annotationService: &mockAnnotationService{
			deleteFn: func(ctx context.Context, id int64) error {
				deleted = id
				return nil
			},
		},
	}

	req := httptest.NewRequest("DELETE", "/api/v1/annotations/7", nil)
	req.SetPathValue("id", "7")
	rr := httptest.NewRecorder()

	server.handleDeleteAnnotation(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(7), deleted)
}

func TestSelectionHandler_CrossSection(t *testing.T) {
	server := &Server{
		overlayService: &mockOverlayService{
			handleSelectionFn: func(sel domain.Selection, at domain.Point) error {
				return domain.ErrCrossSection
			},
		},
	}

	body := jsonBody(t, SelectionRequest{
		AnchorSection: "ch01.xhtml",
		FocusSection:  "ch02.xhtml",
		Start:         5,
		End:           10,
		Text:          "spans",
	})
	req := httptest.NewRequest("POST", "/api/v1/overlay/selection", body)
	rr := httptest.NewRecorder()

	server.handleSelection(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestOverlayClickHandler(t *testing.T) {
	overlay := &mockOverlayService{}
	server := &Server{overlayService: overlay}

	body := jsonBody(t, OverlayClickRequest{
		Locator: "span(ch01.xhtml!5-10)",
		At:      domain.Point{X: 100, Y: 200},
	})
	req := httptest.NewRequest("POST", "/api/v1/overlay/click", body)
	rr := httptest.NewRecorder()

	server.handleOverlayClick(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, overlay.clicked, 1)
	assert.Equal(t, domain.Locator("span(ch01.xhtml!5-10)"), overlay.clicked[0])
}

func TestSetActiveTabHandler_UnknownTab(t *testing.T) {
	server := &Server{overlayService: &mockOverlayService{}}

	req := httptest.NewRequest("PUT", "/api/v1/overlay/tab", jsonBody(t, SetTabRequest{Tab: "bogus"}))
	rr := httptest.NewRecorder()

	server.handleSetActiveTab(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStatsHandler(t *testing.T) {
	server := &Server{
		sessionService: &mockSessionService{
			statsFn: func(ctx context.Context) (*driving.ReadingStats, error) {
				return &driving.ReadingStats{
					Daily:        domain.DailyMinutes{"2026-02-01": 30},
					TotalMinutes: 120,
				}, nil
			},
		},
	}

	req := httptest.NewRequest("GET", "/api/v1/stats", nil)
	rr := httptest.NewRecorder()

	server.handleStats(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var stats driving.ReadingStats
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&stats))
	assert.Equal(t, 120, stats.TotalMinutes)
	assert.Equal(t, 30, stats.Daily["2026-02-01"])
}

func TestGenerateSummaryHandler(t *testing.T) {
	server := &Server{
		summaryService: &mockSummaryService{
			generateFn: func(ctx context.Context, sectionRef string) (string, error) {
				return "a short summary", nil
			},
		},
	}

	body := jsonBody(t, SummaryRequest{SectionRef: "ch01.xhtml"})
	req := httptest.NewRequest("POST", "/api/v1/summaries/generate", body)
	rr := httptest.NewRecorder()

	server.handleGenerateSummary(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp SummaryResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "a short summary", resp.Summary)
	assert.Contains(t, resp.HTML, "a short summary")
}

func TestGenerateSummaryHandler_TooShort(t *testing.T) {
	server := &Server{
		summaryService: &mockSummaryService{
			generateFn: func(ctx context.Context, sectionRef string) (string, error) {
				return "", domain.ErrContentTooShort
			},
		},
	}

	body := jsonBody(t, SummaryRequest{SectionRef: "ch01.xhtml"})
	req := httptest.NewRequest("POST", "/api/v1/summaries/generate", body)
	rr := httptest.NewRecorder()

	server.handleGenerateSummary(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestGenerateSummaryHandler_Cancelled(t *testing.T) {
	server := &Server{
		summaryService: &mockSummaryService{
			generateFn: func(ctx context.Context, sectionRef string) (string, error) {
				return "", domain.ErrCancelled
			},
		},
	}

	body := jsonBody(t, SummaryRequest{SectionRef: "ch01.xhtml"})
	req := httptest.NewRequest("POST", "/api/v1/summaries/generate", body)
	rr := httptest.NewRecorder()

	server.handleGenerateSummary(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]bool
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp["cancelled"])
}

func TestChatSendHandler(t *testing.T) {
	server := &Server{
		chatService: &mockChatService{
			sendFn: func(ctx context.Context, content string) (*domain.ChatMessage, error) {
				return &domain.ChatMessage{
					Role:    domain.RoleAssistant,
					Content: "reply to " + content,
					BookID:  "b1",
				}, nil
			},
		},
	}

	req := httptest.NewRequest("POST", "/api/v1/chat/send", jsonBody(t, ChatSendRequest{Content: "hello"}))
	rr := httptest.NewRecorder()

	server.handleChatSend(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var reply domain.ChatMessage
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&reply))
	assert.Equal(t, domain.RoleAssistant, reply.Role)
	assert.Equal(t, "reply to hello", reply.Content)
}

func TestChatSendHandler_NotConfigured(t *testing.T) {
	server := &Server{
		chatService: &mockChatService{
			sendFn: func(ctx context.Context, content string) (*domain.ChatMessage, error) {
				return nil, domain.ErrNotConfigured
			},
		},
	}

	req := httptest.NewRequest("POST", "/api/v1/chat/send", jsonBody(t, ChatSendRequest{Content: "hello"}))
	rr := httptest.NewRecorder()

	server.handleChatSend(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestUnpinHandler_MissingParams(t *testing.T) {
	server := &Server{chatService: &mockChatService{}}

	req := httptest.NewRequest("DELETE", "/api/v1/chat/pins", nil)
	rr := httptest.NewRecorder()

	server.handleUnpinMessage(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSetThemeHandler(t *testing.T) {
	theme := &mockThemeService{current: domain.ThemeLight}
	server := &Server{themeService: theme}

	req := httptest.NewRequest("PUT", "/api/v1/theme", jsonBody(t, ThemeResponse{Theme: domain.ThemeDark}))
	rr := httptest.NewRecorder()

	server.handleSetTheme(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp ThemeResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, domain.ThemeDark, resp.Theme)
}

func TestSetThemeHandler_Unknown(t *testing.T) {
	server := &Server{
		themeService: &mockThemeService{
			setFn: func(ctx context.Context, theme domain.Theme) error {
				return domain.ErrInvalidInput
			},
		},
	}

	req := httptest.NewRequest("PUT", "/api/v1/theme", jsonBody(t, ThemeResponse{Theme: "sepia"}))
	rr := httptest.NewRecorder()

	server.handleSetTheme(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetAISettingsHandler(t *testing.T) {
	server := &Server{
		settingsService: &mockHTTPSettingsService{
			getAIFn: func(ctx context.Context) (*domain.AISettings, error) {
				return &domain.AISettings{BaseURL: "https://api.example.com", APIKey: "********", Model: "gpt-4"}, nil
			},
		},
	}

	req := httptest.NewRequest("GET", "/api/v1/settings/ai", nil)
	rr := httptest.NewRecorder()

	server.handleGetAISettings(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var settings domain.AISettings
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&settings))
	assert.Equal(t, "********", settings.APIKey)
}

func TestRestoreStateHandler(t *testing.T) {
	server := &Server{positionService: &mockPositionService{state: driving.RestoreStable}}

	req := httptest.NewRequest("GET", "/api/v1/reader/position", nil)
	rr := httptest.NewRecorder()

	server.handleRestoreState(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "stable", resp["state"])
}

func TestRendererCommandsHandler(t *testing.T) {
	renderer := headless.NewRenderer(domain.Viewport{Width: 1000, Height: 800}, nil)
	require.NoError(t, renderer.Display(context.Background(), "ch01.xhtml"))

	server := &Server{renderer: renderer}

	req := httptest.NewRequest("GET", "/api/v1/renderer/commands", nil)
	rr := httptest.NewRecorder()

	server.handleRendererCommands(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp RendererCommandsResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.Commands, 1)
	assert.Equal(t, headless.CommandDisplay, resp.Commands[0].Kind)
	assert.Equal(t, "ch01.xhtml", resp.Commands[0].Target)
	assert.Equal(t, uint64(1), resp.Cursor)
}

func TestSectionPaintedHandler(t *testing.T) {
	renderer := headless.NewRenderer(domain.Viewport{Width: 1000, Height: 800}, nil)

	var painted string
	renderer.OnSectionPainted(func(sectionRef string) { painted = sectionRef })

	server := &Server{renderer: renderer}

	body := jsonBody(t, SectionPaintedRequest{SectionRef: "ch02.xhtml"})
	req := httptest.NewRequest("POST", "/api/v1/renderer/events/painted", body)
	rr := httptest.NewRecorder()

	server.handleSectionPainted(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ch02.xhtml", painted)
}

func TestSetViewportHandler_Invalid(t *testing.T) {
	renderer := headless.NewRenderer(domain.Viewport{Width: 1000, Height: 800}, nil)
	server := &Server{renderer: renderer}

	req := httptest.NewRequest("PUT", "/api/v1/renderer/viewport", jsonBody(t, domain.Viewport{Width: -1, Height: 0}))
	rr := httptest.NewRecorder()

	server.handleSetViewport(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
