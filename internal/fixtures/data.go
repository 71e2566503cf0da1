package fixtures

import "github.com/anonto42/picgram/backend/internal/models"

func avatar(seed string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + seed
}

var feedPosts = []models.Post{
	{
		ID:        "1",
		AuthorID:  "jane_doe",
		Username:  "jane_doe",
		AvatarURL: avatar("jane"),
		ImageURL:  "https://images.unsplash.com/photo-1513694203232-719a280e022f?w=800&q=80",
		Caption:   "Enjoying a beautiful day at the beach! 🏖️ #summer #vacation",
		LikeCount: 243,
		Comments: []models.Comment{
			{Username: "john_smith", Text: "Looks amazing!"},
			{Username: "travel_lover", Text: "Which beach is this?"},
		},
		Timestamp: "3h ago",
	},
	{
		ID:        "2",
		AuthorID:  "food_enthusiast",
		Username:  "food_enthusiast",
		AvatarURL: avatar("food"),
		ImageURL:  "https://images.unsplash.com/photo-1565299624946-b28f40a0ae38?w=800&q=80",
		Caption:   "Homemade pizza night! 🍕 #foodie #homecooking",
		LikeCount: 187,
		Comments: []models.Comment{
			{Username: "chef_mike", Text: "Recipe please!"},
		},
		Timestamp: "5h ago",
	},
	{
		ID:        "3",
		AuthorID:  "travel_addict",
		Username:  "travel_addict",
		AvatarURL: avatar("travel"),
		ImageURL:  "https://images.unsplash.com/photo-1519681393784-d120267933ba?w=800&q=80",
		Caption:   "Mountain views that take your breath away ⛰️ #hiking #adventure",
		LikeCount: 432,
		Comments: []models.Comment{
			{Username: "mountain_lover", Text: "Where is this?"},
			{Username: "photo_pro", Text: "Great composition!"},
		},
		Timestamp: "1d ago",
	},
}

var stories = []models.Story{
	{ID: "1", Username: "user1", AvatarURL: avatar("user1"), Viewed: false},
	{ID: "2", Username: "user2", AvatarURL: avatar("user2"), Viewed: true},
	{ID: "3", Username: "user3", AvatarURL: avatar("user3"), Viewed: false},
	{ID: "4", Username: "user4", AvatarURL: avatar("user4"), Viewed: true},
	{ID: "5", Username: "user5", AvatarURL: avatar("user5"), Viewed: false},
	{ID: "6", Username: "user6", AvatarURL: avatar("user6"), Viewed: true},
	{ID: "7", Username: "user7", AvatarURL: avatar("user7"), Viewed: false},
	{ID: "8", Username: "user8", AvatarURL: avatar("user8"), Viewed: true},
}

var notifications = []models.Notification{
	{ID: "1", Type: models.NotificationLike, Username: "jane_doe", AvatarURL: avatar("jane"), Content: "liked your photo", Timestamp: "2m ago"},
	{ID: "2", Type: models.NotificationComment, Username: "photo_enthusiast", AvatarURL: avatar("photo"), Content: "commented: 'Amazing shot! What camera did you use?'", Timestamp: "15m ago"},
	{ID: "3", Type: models.NotificationFollow, Username: "travel_addict", AvatarURL: avatar("travel"), Content: "started following you", Timestamp: "1h ago", Read: true},
	{ID: "4", Type: models.NotificationMention, Username: "mountain_lover", AvatarURL: avatar("mountain"), Content: "mentioned you in a comment", Timestamp: "3h ago", Read: true},
	{ID: "5", Type: models.NotificationLike, Username: "food_enthusiast", AvatarURL: avatar("food"), Content: "liked your comment", Timestamp: "5h ago", Read: true},
}

// Users is the fixed directory the search screen looks through
var Users = []models.SearchableUser{
	{ID: "1", Username: "photography_lover", Name: "Alex Photography", AvatarURL: avatar("alex")},
	{ID: "2", Username: "travel_addict", Name: "Travel Enthusiast", AvatarURL: avatar("travel"), IsFollowing: true},
	{ID: "3", Username: "food_explorer", Name: "Foodie Adventures", AvatarURL: avatar("food")},
	{ID: "4", Username: "fitness_guru", Name: "Fitness Coach", AvatarURL: avatar("fitness")},
	{ID: "5", Username: "art_creator", Name: "Creative Artist", AvatarURL: avatar("art"), IsFollowing: true},
}

var profileSummary = models.ProfileSummary{
	Username:   "user_profile",
	Name:       "Alex Johnson",
	AvatarURL:  avatar("alex"),
	Bio:        "Photography enthusiast | Travel lover | Food explorer",
	PostsCount: 42,
	Followers:  1024,
	Following:  315,
}

var profilePosts = []models.ProfilePost{
	{ID: "1", ImageURL: "https://images.unsplash.com/photo-1513694203232-719a280e022f?w=500&q=80", Caption: "Beach day! 🏖️", LikeCount: 120},
	{ID: "2", ImageURL: "https://images.unsplash.com/photo-1565299624946-b28f40a0ae38?w=500&q=80", Caption: "Dinner time 🍕", LikeCount: 89},
	{ID: "3", ImageURL: "https://images.unsplash.com/photo-1519681393784-d120267933ba?w=500&q=80", Caption: "Mountain views ⛰️", LikeCount: 210},
	{ID: "4", ImageURL: "https://images.unsplash.com/photo-1579546929518-9e396f3cc809?w=500&q=80", Caption: "Abstract art", LikeCount: 56},
	{ID: "5", ImageURL: "https://images.unsplash.com/photo-1682685797661-9e0c87f59c60?w=500&q=80", Caption: "City lights", LikeCount: 178},
	{ID: "6", ImageURL: "https://images.unsplash.com/photo-1501854140801-50d01698950b?w=500&q=80", Caption: "Nature walk", LikeCount: 145},
}

// recentSeed mirrors the recent searches a fresh search screen starts with
var recentSeed = []int{1, 4, 0}
