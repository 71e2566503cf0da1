package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/picgram/backend/internal/models"
	"github.com/anonto42/picgram/backend/internal/viewmodel"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUsers struct {
	UserRepository
	users map[uint]models.User
}

func (f fakeUsers) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (f fakeUsers) GetUsersByIDs(_ context.Context, ids []uint) (map[uint]models.User, error) {
	out := make(map[uint]models.User)
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (f fakeUsers) SearchUsers(_ context.Context, query string, _ int) ([]models.User, error) {
	var out []models.User
	for _, id := range []uint{1, 2, 3} {
		if u, ok := f.users[id]; ok && u.Username != "" && query != "" && u.Username[0] == query[0] {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakePosts struct {
	docs    []models.PostDocument
	created []models.PostDocument
}

func (f *fakePosts) CreatePost(_ context.Context, post *models.PostDocument) error {
	f.created = append(f.created, *post)
	return nil
}

func (f *fakePosts) GetRecentPosts(context.Context, int64) ([]models.PostDocument, error) {
	return f.docs, nil
}

func (f *fakePosts) GetPostsByUserID(_ context.Context, userID string, _ int64) ([]models.PostDocument, error) {
	var out []models.PostDocument
	for _, d := range f.docs {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakePosts) CountPostsByUserID(ctx context.Context, userID string) (int64, error) {
	posts, _ := f.GetPostsByUserID(ctx, userID, 0)
	return int64(len(posts)), nil
}

type fakeComments map[string][]models.CommentRecord

func (f fakeComments) GetCommentsByPostIDs(context.Context, []string) (map[string][]models.CommentRecord, error) {
	return f, nil
}

type fakeIDSet map[string]bool

func (f fakeIDSet) GetLikedPostIDs(context.Context, uint, []string) (map[string]bool, error) {
	return f, nil
}

func (f fakeIDSet) GetSavedPostIDs(context.Context, uint, []string) (map[string]bool, error) {
	return f, nil
}

type fakeFollows map[uint]bool

func (f fakeFollows) GetFollowedAmong(context.Context, uint, []uint) (map[uint]bool, error) {
	return f, nil
}

func (f fakeFollows) GetFollowersCount(context.Context, uint) (int64, error) { return 12, nil }

func (f fakeFollows) GetFollowingCount(context.Context, uint) (int64, error) {
	return int64(len(f)), nil
}

type fakeNotifications struct {
	records []models.NotificationRecord
}

func (f *fakeNotifications) GetByRecipientID(context.Context, uint, int) ([]models.NotificationRecord, error) {
	return f.records, nil
}

func (f *fakeNotifications) MarkAsRead(_ context.Context, recipientID, notificationID uint) error {
	for i := range f.records {
		if f.records[i].ID == notificationID && f.records[i].RecipientID == recipientID {
			f.records[i].IsRead = true
		}
	}
	return nil
}

func (f *fakeNotifications) MarkAllAsRead(_ context.Context, recipientID uint) error {
	for i := range f.records {
		if f.records[i].RecipientID == recipientID {
			f.records[i].IsRead = true
		}
	}
	return nil
}

type fakeStories struct {
	docs []models.StoryDocument
	seen map[string]bool
}

func (f fakeStories) GetActiveStories(context.Context) ([]models.StoryDocument, error) {
	return f.docs, nil
}

func (f fakeStories) GetSeenStoryIDs(context.Context, uint, []string) (map[string]bool, error) {
	return f.seen, nil
}

func (f fakeStories) DeleteExpiredStories(context.Context) (int64, error) { return 0, nil }

func newTestProvider() (*Provider, primitive.ObjectID) {
	postID := primitive.NewObjectID()
	storyID := primitive.NewObjectID()
	users := fakeUsers{users: map[uint]models.User{
		1: {ID: 1, Username: "user_profile", Name: "Alex Johnson", AvatarURL: "a1"},
		2: {ID: 2, Username: "jane_doe", AvatarURL: "a2"},
		3: {ID: 3, Username: "john_smith", AvatarURL: "a3"},
	}}
	return &Provider{
		Users: users,
		Posts: &fakePosts{docs: []models.PostDocument{{
			ID:         postID,
			UserID:     "2",
			Caption:    "Beach day",
			ImageURLs:  []string{"img-1", "img-2"},
			LikesCount: 243,
			CreatedAt:  time.Now().Add(-3 * time.Hour),
		}}},
		Comments:   fakeComments{postID.Hex(): {{UserID: 3, Content: "Looks amazing!"}}},
		Likes:      fakeIDSet{postID.Hex(): true},
		SavedPosts: fakeIDSet{},
		Follows:    fakeFollows{2: true},
		Notifications: &fakeNotifications{records: []models.NotificationRecord{
			{ID: 7, Type: "like", ActorID: 2, RecipientID: 1, Message: "liked your photo", CreatedAt: time.Now()},
			{ID: 8, Type: "follow", ActorID: 3, RecipientID: 1, Message: "started following you", CreatedAt: time.Now()},
		}},
		Stories: fakeStories{
			docs: []models.StoryDocument{{ID: storyID, UserID: "3"}},
			seen: map[string]bool{storyID.Hex(): true},
		},
	}, postID
}

var testViewer = models.Viewer{UserID: 1, Username: "user_profile"}

func TestFeedSourceEnrichesPosts(t *testing.T) {
	p, postID := newTestProvider()
	posts, err := p.PostFetcher(testViewer).FetchPosts(context.Background())
	if err != nil {
		t.Fatalf("FetchPosts() error = %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("FetchPosts() returned %d posts, want 1", len(posts))
	}
	got := posts[0]
	if got.ID != postID.Hex() || got.Username != "jane_doe" || got.ImageURL != "img-1" || got.LikeCount != 243 {
		t.Fatalf("post = %+v", got)
	}
	if !got.Liked || got.Saved {
		t.Fatalf("viewer state liked=%v saved=%v, want liked only", got.Liked, got.Saved)
	}
	if len(got.Comments) != 1 || got.Comments[0].Username != "john_smith" {
		t.Fatalf("comments = %+v, want one by john_smith", got.Comments)
	}
	if got.Timestamp != "3 hours ago" {
		t.Fatalf("timestamp = %q, want 3 hours ago", got.Timestamp)
	}
}

func TestStorySourceMarksSeen(t *testing.T) {
	p, _ := newTestProvider()
	stories, err := p.StoryFetcher(testViewer).FetchStories(context.Background())
	if err != nil {
		t.Fatalf("FetchStories() error = %v", err)
	}
	if len(stories) != 1 || stories[0].Username != "john_smith" || !stories[0].Viewed {
		t.Fatalf("stories = %+v", stories)
	}
}

func TestNotificationSourceResolvesActors(t *testing.T) {
	p, _ := newTestProvider()
	list, err := p.NotificationFetcher(testViewer).FetchNotifications(context.Background())
	if err != nil {
		t.Fatalf("FetchNotifications() error = %v", err)
	}
	n := list[0]
	if n.ID != "7" || n.Type != models.NotificationLike || n.Username != "jane_doe" || n.Read {
		t.Fatalf("notification = %+v", n)
	}
}

func TestNotificationReadFlagsPersistAcrossReload(t *testing.T) {
	p, _ := newTestProvider()
	feed := viewmodel.NewNotificationFeed(p.NotificationFetcher(testViewer), nil)
	ctx := context.Background()

	feed.Load(ctx)
	feed.MarkRead(ctx, "7")
	if n := feed.UnreadCount(); n != 1 {
		t.Fatalf("UnreadCount() = %d after MarkRead, want 1", n)
	}

	fresh := viewmodel.NewNotificationFeed(p.NotificationFetcher(testViewer), nil)
	fresh.Load(ctx)
	if n := fresh.UnreadCount(); n != 1 {
		t.Fatalf("stored UnreadCount() = %d, want 1", n)
	}

	feed.MarkAllRead(ctx)
	fresh.Load(ctx)
	if n := fresh.UnreadCount(); n != 0 {
		t.Fatalf("stored UnreadCount() = %d after MarkAllRead, want 0", n)
	}
}

func TestSearchSourceSetsFollowState(t *testing.T) {
	p, _ := newTestProvider()
	results, err := p.UserSearcher(testViewer).SearchUsers(context.Background(), "j")
	if err != nil {
		t.Fatalf("SearchUsers() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %+v, want jane_doe and john_smith", results)
	}
	if !results[0].IsFollowing || results[1].IsFollowing {
		t.Fatalf("follow state = %v/%v, want jane followed only", results[0].IsFollowing, results[1].IsFollowing)
	}
}

func TestPublisherStoresDocument(t *testing.T) {
	p, _ := newTestProvider()
	draft := models.PostDraft{Caption: "Sunset", ImageURL: "img-9"}
	if err := p.PostPublisher(testViewer).PublishPost(context.Background(), draft); err != nil {
		t.Fatalf("PublishPost() error = %v", err)
	}
	created := p.Posts.(*fakePosts).created
	if len(created) != 1 || created[0].UserID != "1" || created[0].CoverImage() != "img-9" {
		t.Fatalf("created = %+v", created)
	}
}

func TestProfileSourceCounts(t *testing.T) {
	p, _ := newTestProvider()
	summary, posts, err := p.ProfileFetcher(testViewer).FetchProfile(context.Background())
	if err != nil {
		t.Fatalf("FetchProfile() error = %v", err)
	}
	if summary.Username != "user_profile" || summary.Followers != 12 || summary.Following != 1 || summary.PostsCount != 0 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(posts) != 0 {
		t.Fatalf("posts = %+v, want none", posts)
	}
	if p.RecentSearches(testViewer) != nil {
		t.Fatal("RecentSearches() should start empty")
	}
}
