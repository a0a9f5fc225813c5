package docbridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/docbridge/docbridge/pkg/docbridge/storage"
	"github.com/docbridge/docbridge/pkg/docbridge/token"
)

// BuilderConfig holds the immutable settings the Builder needs. It is
// constructed once at startup and passed in; the builder never reads globals.
type BuilderConfig struct {
	// DocumentServerURL is the editor service origin handed back to clients.
	DocumentServerURL string

	// CallbackBaseURL is this service's callback endpoint. The resolved
	// document URL and file id are appended as query parameters so the
	// stateless callback handler can recover them later.
	CallbackBaseURL string

	// UsePresignedURLs selects presigned over direct document URLs. Direct
	// URLs require a publicly readable bucket.
	UsePresignedURLs bool

	// PresignExpiry bounds presigned document URLs. Zero uses the store's
	// configured default.
	PresignExpiry time.Duration

	// DefaultLang is used when a request does not specify a language.
	DefaultLang string

	// DefaultPermissions is the server-level permission layer, sitting
	// between per-request overrides and the hardcoded fallbacks.
	DefaultPermissions *PermissionOverrides

	// Autosave and Forcesave set the editor customization flags.
	Autosave  bool
	Forcesave bool
}

// Builder derives the full editor configuration for a document. It is
// read-only with respect to storage; concurrent Build calls are independent.
type Builder struct {
	store  storage.Gateway
	tokens *token.Issuer
	cfg    BuilderConfig
	logger *slog.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(store storage.Gateway, tokens *token.Issuer, cfg BuilderConfig, logger *slog.Logger) *Builder {
	return &Builder{
		store:  store,
		tokens: tokens,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "builder")),
	}
}

// Build assembles the configuration object for one editing session.
// It fails with ErrDocumentNotFound when a presigned URL is requested for a
// document that does not exist, and with storage errors when the store
// misbehaves; both gate whether the editor session can start at all.
func (b *Builder) Build(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	if req.FileID == "" {
		return nil, ErrMissingFileID
	}

	mode := req.Mode
	if mode == "" {
		mode = ModeEdit
	}
	lang := req.Lang
	if lang == "" {
		lang = b.cfg.DefaultLang
	}

	docURL, err := b.resolveDocumentURL(ctx, req.FileID)
	if err != nil {
		return nil, err
	}

	callbackURL, err := b.callbackURL(docURL, req.FileID)
	if err != nil {
		return nil, err
	}

	cfg := &EditorConfig{
		DocumentType: DocumentType(req.FileID),
		Document: Document{
			FileType:    FileExtension(req.FileID),
			Key:         NewSessionKey(),
			Title:       path.Base(req.FileID),
			URL:         docURL,
			Permissions: ResolvePermissions(req.Permissions, b.cfg.DefaultPermissions, mode),
		},
		Editor: EditorSettings{
			Mode:        mode,
			Lang:        lang,
			CallbackURL: callbackURL,
			User: EditorUser{
				ID:   req.UserID,
				Name: req.UserName,
			},
			Customization: Customization{
				Autosave:  b.cfg.Autosave,
				Forcesave: b.cfg.Forcesave,
			},
		},
	}

	result := &BuildResult{
		Config:            cfg,
		DocumentServerURL: b.cfg.DocumentServerURL,
	}

	if b.tokens.Enabled() {
		tok, err := b.signConfig(cfg)
		if err != nil {
			// Issuance failures are swallowed: the session proceeds untokened.
			b.logger.Warn("token issuance failed",
				slog.String("file_id", req.FileID),
				slog.String("error", err.Error()),
			)
		} else {
			result.Token = tok
		}
	}

	return result, nil
}

// resolveDocumentURL picks the URL the editor downloads the document from:
// presigned or direct against the store when it is enabled, otherwise a path
// under the document-server origin.
func (b *Builder) resolveDocumentURL(ctx context.Context, fileID string) (string, error) {
	if !b.store.Enabled() {
		return fmt.Sprintf("%s/files/%s",
			strings.TrimRight(b.cfg.DocumentServerURL, "/"), fileID), nil
	}

	if b.cfg.UsePresignedURLs {
		u, err := b.store.PresignedURL(ctx, fileID, b.cfg.PresignExpiry)
		if err != nil {
			if errors.Is(err, storage.ErrObjectNotFound) {
				return "", fmt.Errorf("%w: %s", ErrDocumentNotFound, fileID)
			}
			return "", err
		}
		return u, nil
	}

	return b.store.DirectURL(fileID), nil
}

// callbackURL embeds the resolved document URL and the file id as query
// parameters on the callback base URL. This is the only session state the
// service keeps, and it lives in the URL, not on the server.
func (b *Builder) callbackURL(docURL, fileID string) (string, error) {
	u, err := url.Parse(b.cfg.CallbackBaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid callback base url: %w", err)
	}
	q := u.Query()
	q.Set("fileUrl", docURL)
	q.Set("fileId", fileID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// signConfig signs the entire assembled configuration, not a minimal claim
// set, so the editor can verify every field it was handed.
func (b *Builder) signConfig(cfg *EditorConfig) (string, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config for signing: %w", err)
	}
	var claims map[string]any
	if err := json.Unmarshal(raw, &claims); err != nil {
		return "", fmt.Errorf("failed to build claims: %w", err)
	}
	return b.tokens.Issue(claims)
}
