package viewmodel

import (
	"strings"
	"sync"
	"time"

	"github.com/anonto42/picgram/backend/internal/metrics"
	"github.com/anonto42/picgram/backend/internal/models"
)

// DefaultHeartBurst is how long the heart overlay stays up after a like
const DefaultHeartBurst = time.Second

// PostState is a point-in-time copy of a PostInteraction
type PostState struct {
	PostID       string           `json:"post_id"`
	Liked        bool             `json:"liked"`
	Saved        bool             `json:"saved"`
	LikeCount    int              `json:"like_count"`
	Comments     []models.Comment `json:"comments"`
	DraftComment string           `json:"draft_comment"`
	HeartBurst   bool             `json:"heart_burst"`
}

// PostInteraction owns the like, save and comment state of one displayed post.
// The only count delta it tracks is the current session's like toggle.
type PostInteraction struct {
	mu sync.Mutex

	postID      string
	currentUser string

	likeCount  int
	liked      bool
	saved      bool
	comments   []models.Comment
	draft      string
	heartBurst bool
	burstGen   uint64

	burstFor  time.Duration
	afterFunc func(time.Duration, func())
}

// PostOption customises a PostInteraction
type PostOption func(*PostInteraction)

// WithHeartBurst overrides how long the heart burst stays raised
func WithHeartBurst(d time.Duration) PostOption {
	return func(p *PostInteraction) {
		if d > 0 {
			p.burstFor = d
		}
	}
}

// WithTimer replaces time.AfterFunc for scheduling the heart burst reset
func WithTimer(afterFunc func(time.Duration, func())) PostOption {
	return func(p *PostInteraction) { p.afterFunc = afterFunc }
}

// NewPostInteraction builds the interaction state of post as seen by currentUser
func NewPostInteraction(post models.Post, currentUser string, opts ...PostOption) *PostInteraction {
	p := &PostInteraction{
		postID:      post.ID,
		currentUser: currentUser,
		likeCount:   post.LikeCount,
		liked:       post.Liked,
		saved:       post.Saved,
		comments:    append([]models.Comment(nil), post.Comments...),
		burstFor:    DefaultHeartBurst,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	if p.likeCount < 0 {
		p.likeCount = 0
	}
	// a liked post counts at least its viewer's like
	if p.liked && p.likeCount < 1 {
		p.likeCount = 1
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ToggleLike flips the like and moves the count by exactly one
func (p *PostInteraction) ToggleLike() PostState {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.liked {
		p.liked = false
		p.likeCount--
	} else {
		p.like()
	}
	metrics.LikeToggled(p.liked)
	return p.stateLocked()
}

// DoubleTapLike likes the post if it is not liked yet and is a no-op otherwise
func (p *PostInteraction) DoubleTapLike() PostState {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.liked {
		p.like()
		metrics.LikeToggled(true)
	}
	return p.stateLocked()
}

func (p *PostInteraction) like() {
	p.liked = true
	p.likeCount++
	p.heartBurst = true
	p.burstGen++
	gen := p.burstGen
	p.afterFunc(p.burstFor, func() { p.clearHeartBurst(gen) })
}

// clearHeartBurst lowers the burst unless a newer like restarted it
func (p *PostInteraction) clearHeartBurst(gen uint64) {
	p.mu.Lock()
	if p.burstGen == gen {
		p.heartBurst = false
	}
	p.mu.Unlock()
}

func (p *PostInteraction) ToggleSave() PostState {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.saved = !p.saved
	return p.stateLocked()
}

// SetDraft stores the text currently typed in the comment box
func (p *PostInteraction) SetDraft(text string) PostState {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.draft = text
	return p.stateLocked()
}

// SubmitComment appends the trimmed text as a comment by the current user.
// Blank text is ignored and reported as false.
func (p *PostInteraction) SubmitComment(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.comments = append(p.comments, models.Comment{Username: p.currentUser, Text: text})
	p.draft = ""
	metrics.CommentSubmitted()
	return true
}

func (p *PostInteraction) State() PostState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

func (p *PostInteraction) stateLocked() PostState {
	return PostState{
		PostID:       p.postID,
		Liked:        p.liked,
		Saved:        p.saved,
		LikeCount:    p.likeCount,
		Comments:     append([]models.Comment{}, p.comments...),
		DraftComment: p.draft,
		HeartBurst:   p.heartBurst,
	}
}
