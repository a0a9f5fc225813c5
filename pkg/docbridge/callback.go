package docbridge

import (
	"context"
	"log/slog"
)

// Status is the document lifecycle code the editor reports on each callback.
type Status int

// Lifecycle status codes as the editor emits them.
const (
	StatusNotFound    Status = 0 // document unknown to the editor
	StatusEditing     Status = 1 // document is being edited
	StatusPendingSave Status = 2 // co-editing checkpoint, content not final
	StatusSaveError   Status = 3 // editor-side saving error
	StatusClosed      Status = 4 // closed with no changes
	StatusMustSave    Status = 6 // final save, content is ready to persist
	StatusSaveFailed  Status = 7 // final save failed on the editor side
)

func (s Status) String() string {
	switch s {
	case StatusNotFound:
		return "not-found"
	case StatusEditing:
		return "editing"
	case StatusPendingSave:
		return "pending-save"
	case StatusSaveError:
		return "save-error"
	case StatusClosed:
		return "closed"
	case StatusMustSave:
		return "must-save"
	case StatusSaveFailed:
		return "save-failed"
	}
	return "unknown"
}

// CallbackEvent is one lifecycle notification from the editor. It is
// transient and self-contained: FileID and DownloadURL are recovered from the
// callback URL's query parameters, SessionKey and Users from the body.
type CallbackEvent struct {
	Status      Status
	FileID      string
	DownloadURL string
	SessionKey  string
	Users       []string
}

// CallbackHandler interprets lifecycle events and drives save-on-commit.
// It holds no per-session state; every event is handled independently.
type CallbackHandler struct {
	saver  *Saver
	logger *slog.Logger
}

// NewCallbackHandler creates a CallbackHandler.
func NewCallbackHandler(saver *Saver, logger *slog.Logger) *CallbackHandler {
	return &CallbackHandler{
		saver:  saver,
		logger: logger.With(slog.String("component", "callback")),
	}
}

// Handle dispatches one event. It never returns an error: the editor
// protocol requires an immediate success acknowledgment regardless of
// downstream save outcome, so failures are logged for operators only.
func (h *CallbackHandler) Handle(ctx context.Context, ev CallbackEvent) {
	switch ev.Status {
	case StatusNotFound:
		h.onNotFound(ev)
	case StatusEditing:
		h.onEditing(ev)
	case StatusPendingSave:
		h.onPendingSave(ev)
	case StatusSaveError:
		h.onSaveError(ev)
	case StatusClosed:
		h.onClosed(ev)
	case StatusMustSave:
		h.onMustSave(ctx, ev)
	case StatusSaveFailed:
		h.onSaveFailed(ev)
	default:
		h.logger.Warn("unrecognized callback status",
			slog.Int("status", int(ev.Status)),
			slog.String("file_id", ev.FileID),
		)
	}
}

func (h *CallbackHandler) onNotFound(ev CallbackEvent) {
	h.logger.Warn("editor reports document not found", slog.String("file_id", ev.FileID))
}

func (h *CallbackHandler) onEditing(ev CallbackEvent) {
	h.logger.Info("document being edited",
		slog.String("file_id", ev.FileID),
		slog.String("session_key", ev.SessionKey),
		slog.Any("users", ev.Users),
	)
}

// onPendingSave is a co-editing checkpoint. The content is interim and must
// not be persisted as if it were final; the next must-save carries it.
func (h *CallbackHandler) onPendingSave(ev CallbackEvent) {
	h.logger.Info("interim save checkpoint, skipping persist",
		slog.String("file_id", ev.FileID),
		slog.String("session_key", ev.SessionKey),
	)
}

func (h *CallbackHandler) onSaveError(ev CallbackEvent) {
	h.logger.Error("editor reports saving error", slog.String("file_id", ev.FileID))
}

func (h *CallbackHandler) onClosed(ev CallbackEvent) {
	h.logger.Info("document closed without changes", slog.String("file_id", ev.FileID))
}

// onMustSave is the single durable-commit trigger.
func (h *CallbackHandler) onMustSave(ctx context.Context, ev CallbackEvent) {
	if ev.DownloadURL == "" {
		h.logger.Error("final save without download url", slog.String("file_id", ev.FileID))
		return
	}

	location, err := h.saver.Save(ctx, ev.DownloadURL, ev.FileID)
	if err != nil {
		h.logger.Error("save pipeline failed",
			slog.String("file_id", ev.FileID),
			slog.String("download_url", ev.DownloadURL),
			slog.String("error", err.Error()),
		)
		return
	}

	h.logger.Info("document saved",
		slog.String("file_id", ev.FileID),
		slog.String("location", location),
	)
}

func (h *CallbackHandler) onSaveFailed(ev CallbackEvent) {
	h.logger.Error("editor reports force-save failure", slog.String("file_id", ev.FileID))
}
