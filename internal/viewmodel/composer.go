package viewmodel

import (
	"context"
	"sync"

	"github.com/anonto42/picgram/backend/internal/metrics"
	"github.com/anonto42/picgram/backend/internal/models"
	"go.uber.org/zap"
)

// ComposerView is what the create-post screen renders
type ComposerView struct {
	Caption    string `json:"caption"`
	ImageURL   string `json:"image_url"`
	Submitting bool   `json:"submitting"`
	CanSubmit  bool   `json:"can_submit"`
}

// Composer owns the new-post form
type Composer struct {
	mu sync.Mutex

	publisher PostPublisher
	nav       Navigator
	logger    *zap.Logger

	caption    string
	image      string
	submitting bool
}

func NewComposer(publisher PostPublisher, nav Navigator, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{publisher: publisher, nav: nav, logger: logger}
}

func (c *Composer) SetCaption(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.caption = text
}

// SelectImage stores a displayable image handle supplied by the device picker
func (c *Composer) SelectImage(handle string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.image = handle
}

func (c *Composer) RemoveImage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.image = ""
}

// Submit publishes the draft. Without an image, or while a submission is
// already running, it does nothing. Once started the publish runs to
// completion even if ctx is cancelled. Publisher failures are logged only.
func (c *Composer) Submit(ctx context.Context) bool {
	c.mu.Lock()
	if c.image == "" || c.submitting {
		c.mu.Unlock()
		return false
	}
	c.submitting = true
	draft := models.PostDraft{Caption: c.caption, ImageURL: c.image}
	c.mu.Unlock()

	err := c.publisher.PublishPost(context.WithoutCancel(ctx), draft)

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		c.mu.Unlock()
		metrics.CollaboratorFailed("composer")
		c.logger.Error("error creating post", zap.Error(err))
		return false
	}
	c.caption = ""
	c.image = ""
	c.mu.Unlock()

	c.nav.RedirectTo(RouteHome)
	return true
}

func (c *Composer) View() ComposerView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ComposerView{
		Caption:    c.caption,
		ImageURL:   c.image,
		Submitting: c.submitting,
		CanSubmit:  c.image != "" && !c.submitting,
	}
}
