package fixtures

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anonto42/picgram/backend/internal/models"
	"github.com/anonto42/picgram/backend/internal/repositories"
	"github.com/anonto42/picgram/backend/internal/viewmodel"
)

var viewer = models.Viewer{UserID: 1, Username: "user_profile"}

func TestDirectorySearchMatchesUsernameAndName(t *testing.T) {
	cases := []struct {
		query string
		want  []string
	}{
		{"trav", []string{"2"}},
		{"PHOTO", []string{"1"}},
		{"coach", []string{"4"}},
		{"nobody", nil},
	}
	for _, tc := range cases {
		got, err := Directory{}.SearchUsers(context.Background(), tc.query)
		if err != nil {
			t.Fatalf("SearchUsers(%q) error = %v", tc.query, err)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("SearchUsers(%q) = %+v, want ids %v", tc.query, got, tc.want)
		}
		for i := range got {
			if got[i].ID != tc.want[i] {
				t.Fatalf("SearchUsers(%q)[%d] = %s, want %s", tc.query, i, got[i].ID, tc.want[i])
			}
		}
	}
}

func TestPostsAreCopies(t *testing.T) {
	p := NewProvider(0, 0)
	first, err := p.PostFetcher(viewer).FetchPosts(context.Background())
	if err != nil {
		t.Fatalf("FetchPosts() error = %v", err)
	}
	first[0].Comments[0].Text = "edited"
	first[0].LikeCount = -1

	second, _ := p.PostFetcher(viewer).FetchPosts(context.Background())
	if second[0].Comments[0].Text == "edited" || second[0].LikeCount == -1 {
		t.Fatal("mutating fetched posts changed the fixtures")
	}
}

func TestPublishedPostsLeadTheFeed(t *testing.T) {
	p := NewProvider(0, 0)
	draft := models.PostDraft{Caption: "Sunset", ImageURL: "blob:sunset"}
	if err := p.PostPublisher(viewer).PublishPost(context.Background(), draft); err != nil {
		t.Fatalf("PublishPost() error = %v", err)
	}

	posts, _ := p.PostFetcher(viewer).FetchPosts(context.Background())
	if len(posts) != len(feedPosts)+1 {
		t.Fatalf("feed has %d posts, want %d", len(posts), len(feedPosts)+1)
	}
	if posts[0].Username != "user_profile" || posts[0].Caption != "Sunset" || posts[0].ID == "" {
		t.Fatalf("first post = %+v, want the published draft", posts[0])
	}
}

type routeRecorder struct{ route string }

func (r *routeRecorder) RedirectTo(route string) { r.route = route }

func TestComposerPublishSurvivesRequestTimeout(t *testing.T) {
	p := NewProvider(0, 50*time.Millisecond)
	nav := &routeRecorder{}
	c := viewmodel.NewComposer(p.PostPublisher(viewer), nav, nil)
	c.SetCaption("Late upload")
	c.SelectImage("blob:late")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if !c.Submit(ctx) {
		t.Fatal("Submit() = false after the request context expired")
	}

	posts, _ := p.PostFetcher(viewer).FetchPosts(context.Background())
	if posts[0].Caption != "Late upload" || nav.route != viewmodel.RouteHome {
		t.Fatalf("first post = %+v, redirect = %q, want the published draft and a home redirect", posts[0], nav.route)
	}
}

func TestLatencyHonoursCancellation(t *testing.T) {
	p := NewProvider(time.Hour, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.NotificationFetcher(viewer).FetchNotifications(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("FetchNotifications() error = %v, want context.Canceled", err)
	}
}

func TestRecentSearchesSeed(t *testing.T) {
	recent := NewProvider(0, 0).RecentSearches(viewer)
	if len(recent) != len(recentSeed) || recent[0].ID != Users[recentSeed[0]].ID {
		t.Fatalf("recent = %+v", recent)
	}
}

func TestAccounts(t *testing.T) {
	a, err := NewAccounts()
	if err != nil {
		t.Fatalf("NewAccounts() error = %v", err)
	}
	ctx := context.Background()

	demo, err := a.GetUserByEmail(ctx, DemoEmail)
	if err != nil || demo.Username != "user_profile" {
		t.Fatalf("demo account = %+v, %v", demo, err)
	}
	if _, err := a.GetUserByEmail(ctx, "nobody@picgram.app"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("missing email error = %v, want ErrNotFound", err)
	}
	if err := a.CreateUser(ctx, &models.User{Email: DemoEmail}); err == nil {
		t.Fatal("CreateUser() with a taken email succeeded")
	}

	demo.FirebaseUID = "uid-1"
	if err := a.UpdateUser(ctx, demo); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	linked, err := a.GetUserByFirebaseUID(ctx, "uid-1")
	if err != nil || linked.ID != demo.ID {
		t.Fatalf("GetUserByFirebaseUID() = %+v, %v", linked, err)
	}
	if _, err := a.GetUserByFirebaseUID(ctx, ""); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatal("empty firebase uid matched an account")
	}
}
