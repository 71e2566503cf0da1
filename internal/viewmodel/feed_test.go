package viewmodel

import (
	"context"
	"testing"

	"github.com/anonto42/picgram/backend/internal/models"
)

func TestCheckAuthenticationRedirectsAnonymousViewers(t *testing.T) {
	nav := &recordingNav{}
	f := NewFeed(staticAuth(false), nav, &stubPosts{}, &stubStories{}, nil)

	if f.CheckAuthentication(context.Background()) {
		t.Fatal("CheckAuthentication() = true, want false")
	}
	if nav.last() != RouteAuth {
		t.Fatalf("redirect = %q, want %q", nav.last(), RouteAuth)
	}
	if f.View().Authenticated {
		t.Fatal("view reports authenticated")
	}
}

func TestCheckAuthenticationAllowsSignedInViewers(t *testing.T) {
	nav := &recordingNav{}
	f := NewFeed(staticAuth(true), nav, &stubPosts{}, &stubStories{}, nil)
	if !f.CheckAuthentication(context.Background()) || nav.last() != "" {
		t.Fatal("signed-in viewer was redirected")
	}
}

func TestFeedIsLoadingUntilPostsArrive(t *testing.T) {
	posts := &stubPosts{posts: []models.Post{{ID: "1"}, {ID: "2"}}}
	f := NewFeed(staticAuth(true), &recordingNav{}, posts, &stubStories{}, nil)

	if loading, list := f.Snapshot(); !loading || list != nil {
		t.Fatalf("Snapshot() before load = %v, %v; want loading with no posts", loading, list)
	}
	if _, ok := f.Post("1"); ok {
		t.Fatal("Post() resolved before loading")
	}

	f.LoadPosts(context.Background())
	loading, list := f.Snapshot()
	if loading || len(list) != 2 || list[0].ID != "1" || list[1].ID != "2" {
		t.Fatalf("Snapshot() = %v, %+v; want both posts in order", loading, list)
	}
	if !f.Loaded() {
		t.Fatal("Loaded() = false after a successful load")
	}
}

func TestLoadPostsFailureKeepsPreviousList(t *testing.T) {
	posts := &stubPosts{posts: []models.Post{{ID: "1"}}}
	f := NewFeed(staticAuth(true), &recordingNav{}, posts, &stubStories{}, nil)
	f.LoadPosts(context.Background())

	posts.posts, posts.err = nil, errBackend
	f.LoadPosts(context.Background())
	loading, list := f.Snapshot()
	if loading || len(list) != 1 {
		t.Fatalf("Snapshot() = %v, %+v; want previous post kept", loading, list)
	}
}

func TestFirstLoadFailureLeavesFeedUnloaded(t *testing.T) {
	f := NewFeed(staticAuth(true), &recordingNav{}, &stubPosts{err: errBackend}, &stubStories{}, nil)
	f.LoadPosts(context.Background())
	if f.Loaded() {
		t.Fatal("Loaded() = true after a failed first load")
	}
	if loading, _ := f.Snapshot(); loading {
		t.Fatal("loading still set after a failed load")
	}
}

func TestMarkStoryViewed(t *testing.T) {
	stories := &stubStories{stories: []models.Story{{ID: "1"}, {ID: "2", Viewed: true}}}
	f := NewFeed(staticAuth(true), &recordingNav{}, &stubPosts{}, stories, nil)
	f.LoadStories(context.Background())

	if !f.MarkStoryViewed("1") {
		t.Fatal("MarkStoryViewed(1) = false")
	}
	if f.MarkStoryViewed("9") {
		t.Fatal("MarkStoryViewed(9) = true for an unknown story")
	}
	for _, s := range f.View().Stories {
		if !s.Viewed {
			t.Fatalf("story %s not viewed", s.ID)
		}
	}

	stories.err = errBackend
	f.LoadStories(context.Background())
	if len(f.View().Stories) != 2 {
		t.Fatal("failed LoadStories dropped the carousel")
	}
}
