package web

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"slack-archiver/internal/adapters/slackapi"
	"slack-archiver/internal/domain"
	"slack-archiver/internal/usecases"
	"slack-archiver/pkg/log"
)

// Archiver retrieves and stores one conversation.
type Archiver interface {
	Execute(ctx context.Context, creds domain.Credentials, permalink string, flags domain.FeatureFlags) (*usecases.ArchiveResult, error)
}

// VerifyFunc checks a session against auth.test.
type VerifyFunc func(ctx context.Context, creds domain.Credentials) (*slackapi.Identity, error)

// FlagSource supplies the default feature flags.
type FlagSource interface {
	Flags() domain.FeatureFlags
}

// Handlers contains the HTTP handlers of the archive API.
type Handlers struct {
	archive  Archiver
	verify   VerifyFunc
	defaults domain.Credentials
	profile  FlagSource
	timeout  time.Duration
}

// NewHandlers creates a new Handlers instance. defaults is used when a
// request carries no credentials of its own.
func NewHandlers(archive Archiver, verify VerifyFunc, defaults domain.Credentials, profile FlagSource, timeout time.Duration) *Handlers {
	return &Handlers{
		archive:  archive,
		verify:   verify,
		defaults: defaults,
		profile:  profile,
		timeout:  timeout,
	}
}

// credentialsRequest is the session part shared by every request body.
type credentialsRequest struct {
	Token  string `json:"token"`
	Cookie string `json:"cookie"`
}

type archiveRequest struct {
	credentialsRequest
	URL   string               `json:"url"`
	Flags *domain.FeatureFlags `json:"flags"`
}

type archiveResponse struct {
	Location string                      `json:"location"`
	Cached   bool                        `json:"cached"`
	Document *domain.ComponentsAggregate `json:"document"`
}

type errorResponse struct {
	Error string `json:"error"`
	Class string `json:"class,omitempty"`
}

// credentials fills missing values from the configured session.
// Token and cookie fall back together so a request never mixes two sessions.
func (h *Handlers) credentials(req credentialsRequest) domain.Credentials {
	if req.Token == "" && req.Cookie == "" {
		return h.defaults
	}
	return domain.Credentials{Token: req.Token, Cookie: req.Cookie}
}

// ArchiveConversation handles POST /api/conversations.
func (h *Handlers) ArchiveConversation(c *fiber.Ctx) error {
	var req archiveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "request body must be a JSON object")
	}
	if strings.TrimSpace(req.URL) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "url is required")
	}

	flags := h.profile.Flags()
	if req.Flags != nil {
		flags = *req.Flags
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	result, err := h.archive.Execute(ctx, h.credentials(req.credentialsRequest), req.URL, flags)
	if err != nil {
		log.GlobalErrorCtx(ctx, "archive conversation failed", "flags", flags.String(), "error", err)
		return h.renderError(c, err)
	}

	return c.JSON(archiveResponse{
		Location: result.Location,
		Cached:   result.Cached,
		Document: result.Aggregate,
	})
}

// AuthTest handles POST /api/auth/test.
func (h *Handlers) AuthTest(c *fiber.Ctx) error {
	var req credentialsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "request body must be a JSON object")
		}
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	identity, err := h.verify(ctx, h.credentials(req))
	if err != nil {
		log.GlobalWarnCtx(ctx, "credential check failed", "error", err)
		return h.renderError(c, err)
	}

	return c.JSON(identity)
}

// Health handles GET /healthz.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// renderError maps the error class to a status code.
func (h *Handlers) renderError(c *fiber.Ctx, err error) error {
	class := usecases.ErrorClass(err)
	return c.Status(statusFor(class)).JSON(errorResponse{
		Error: usecases.Describe(err),
		Class: class,
	})
}

func statusFor(class string) int {
	switch class {
	case usecases.ClassInput:
		return fiber.StatusBadRequest
	case usecases.ClassTransport, usecases.ClassRemote:
		return fiber.StatusBadGateway
	case usecases.ClassTimeout:
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders errors returned by handlers and by fiber itself as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}

	return c.Status(code).JSON(errorResponse{Error: msg})
}
