package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"kovan/messaging"
	"kovan/models"
	"kovan/storage"
	"kovan/store"
	"kovan/validation"
)

const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 100
)

type PostService struct {
	deps     Deps
	posts    *store.Collection
	users    *UserService
	hashtags *HashtagService
	notes    *NotificationService
}

func NewPostService(d Deps, users *UserService, hashtags *HashtagService, notes *NotificationService) *PostService {
	d = d.withDefaults()
	return &PostService{
		deps:     d,
		posts:    d.collection(PostsCollection),
		users:    users,
		hashtags: hashtags,
		notes:    notes,
	}
}

// FeedQuery is the query behind the home feed: active posts, newest first.
func FeedQuery(limit int) store.Query {
	return store.Query{
		Where:     []store.Filter{store.Where("isActive", store.OpEqual, true)},
		OrderBy:   "createdAt",
		Direction: store.Desc,
		Limit:     clampLimit(limit, DefaultFeedLimit, MaxFeedLimit),
	}
}

func (s *PostService) Feed(ctx context.Context, limit int) ([]models.Post, error) {
	return s.find(ctx, FeedQuery(limit))
}

func (s *PostService) ByUser(ctx context.Context, userID string, limit int) ([]models.Post, error) {
	return s.find(ctx, store.Query{
		Where:     []store.Filter{store.Where("authorId", store.OpEqual, userID)},
		OrderBy:   "createdAt",
		Direction: store.Desc,
		Limit:     clampLimit(limit, DefaultFeedLimit, MaxFeedLimit),
	})
}

func (s *PostService) ByHashtag(ctx context.Context, tag string, limit int) ([]models.Post, error) {
	return s.find(ctx, store.Query{
		Where:     []store.Filter{store.Where("hashtags", store.OpArrayContains, "#"+Slug(tag))},
		OrderBy:   "createdAt",
		Direction: store.Desc,
		Limit:     clampLimit(limit, DefaultFeedLimit, MaxFeedLimit),
	})
}

func (s *PostService) find(ctx context.Context, q store.Query) ([]models.Post, error) {
	docs, err := s.posts.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.Post](docs)
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	if err := s.posts.Get(ctx, id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// PostInput is the compose form. Tags is the raw comma separated field.
type PostInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    string   `json:"tags"`
	Media   []string `json:"media"`
}

// Create validates input, snapshots the author's display fields onto the
// post, bumps the author's post counter and the hashtag counters.
func (s *PostService) Create(ctx context.Context, authorID string, in PostInput) (*models.Post, error) {
	valid, err := validation.ValidatePost(in.Title, in.Content, in.Tags)
	if err != nil {
		return nil, err
	}
	author, err := s.users.Get(ctx, authorID)
	if err != nil {
		return nil, err
	}

	media := in.Media
	if media == nil {
		media = []string{}
	}
	post := models.Post{
		AuthorID: authorID,
		AuthorInfo: models.AuthorInfo{
			Name:       author.Name,
			Title:      author.Headline,
			AvatarURL:  author.AvatarURL,
			IsVerified: author.IsVerified,
		},
		Title:            valid.Title,
		Content:          valid.Content,
		Tags:             valid.Tags,
		Hashtags:         ExtractHashtags(valid.Content, valid.Tags),
		Media:            media,
		IsActive:         true,
		TitleLowercase:   strings.ToLower(valid.Title),
		ContentLowercase: strings.ToLower(valid.Content),
	}
	doc, err := s.posts.Create(ctx, post)
	if err != nil {
		log.Printf("[CreatePost] insert failed: %v", err)
		return nil, err
	}
	if err := store.Decode(doc, &post); err != nil {
		return nil, err
	}

	if err := s.users.IncrementStat(ctx, authorID, "posts", 1); err != nil {
		log.Printf("[CreatePost] author counter for %s failed: %v", authorID, err)
	}
	if err := s.hashtags.Record(ctx, post.Hashtags); err != nil {
		log.Printf("[CreatePost] hashtag counters failed: %v", err)
	}
	s.deps.publish(messaging.PostCreated, map[string]interface{}{
		"postId":   post.ID,
		"authorId": authorID,
		"hashtags": post.Hashtags,
	})
	return &post, nil
}

// ownPost loads id and checks that userID wrote it.
func (s *PostService) ownPost(ctx context.Context, userID, id string) (*models.Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != userID {
		return nil, ErrForbidden
	}
	return p, nil
}

// Update re-validates and rewrites the editable fields. Author only. Tags
// the post did not carry before are counted.
func (s *PostService) Update(ctx context.Context, userID, id string, in PostInput) (*models.Post, error) {
	current, err := s.ownPost(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	valid, err := validation.ValidatePost(in.Title, in.Content, in.Tags)
	if err != nil {
		return nil, err
	}
	hashtags := ExtractHashtags(valid.Content, valid.Tags)
	fields := map[string]interface{}{
		"title":            valid.Title,
		"content":          valid.Content,
		"tags":             valid.Tags,
		"hashtags":         hashtags,
		"titleLowercase":   strings.ToLower(valid.Title),
		"contentLowercase": strings.ToLower(valid.Content),
	}
	if in.Media != nil {
		fields["media"] = in.Media
	}
	if err := s.posts.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	if added := newTags(current.Hashtags, hashtags); len(added) > 0 {
		if err := s.hashtags.Record(ctx, added); err != nil {
			log.Printf("[UpdatePost] hashtag counters failed: %v", err)
		}
	}
	return s.Get(ctx, id)
}

func newTags(before, after []string) []string {
	had := make(map[string]bool, len(before))
	for _, t := range before {
		had[t] = true
	}
	var out []string
	for _, t := range after {
		if !had[t] {
			out = append(out, t)
		}
	}
	return out
}

// Delete removes a post with its comments and likes, then its uploaded
// images. Author only.
func (s *PostService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.ownPost(ctx, userID, id); err != nil {
		return err
	}
	err := s.deps.Store.RunInTransaction(ctx, func(ctx context.Context, tx store.Store) error {
		posts := s.posts.In(tx)
		for _, sub := range []string{CommentsCollection, LikesCollection} {
			children := posts.Sub(id, sub)
			docs, err := children.Find(ctx, store.Query{})
			if err != nil {
				return err
			}
			for _, d := range docs {
				if err := children.Remove(ctx, d.ID()); err != nil {
					return err
				}
			}
		}
		return posts.Remove(ctx, id)
	})
	if err != nil {
		return err
	}
	if err := s.users.IncrementStat(ctx, userID, "posts", -1); err != nil {
		log.Printf("[DeletePost] author counter for %s failed: %v", userID, err)
	}
	s.removeImages(ctx, id)
	s.deps.publish(messaging.PostDeleted, map[string]string{"postId": id, "authorId": userID})
	return nil
}

// removeImages deletes the objects under posts/{id}/. Failures are logged.
func (s *PostService) removeImages(ctx context.Context, postID string) {
	objects, err := s.deps.Blob.List(ctx, storage.PostImagePrefix(postID))
	if err != nil {
		log.Printf("[DeletePost] list images of %s failed: %v", postID, err)
		return
	}
	for _, o := range objects {
		if err := s.deps.Blob.Delete(ctx, o.Path); err != nil && !errors.Is(err, storage.ErrNotFound) {
			log.Printf("[DeletePost] delete %s failed: %v", o.Path, err)
		}
	}
}

// LikeState is the committed like state of a post for one user.
type LikeState struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

// ToggleLike flips the user's like and the post's like counter in one
// transaction and returns the committed state.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID string) (*LikeState, error) {
	state := &LikeState{}
	var post models.Post
	err := s.deps.Store.RunInTransaction(ctx, func(ctx context.Context, tx store.Store) error {
		posts := s.posts.In(tx)
		likes := posts.Sub(postID, LikesCollection)
		if err := posts.Get(ctx, postID, &post); err != nil {
			return err
		}

		_, err := likes.Document(ctx, userID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			if _, err := likes.Set(ctx, userID, models.Like{UserID: userID, LikedAt: s.deps.Now()}); err != nil {
				return err
			}
			if err := posts.IncrementField(ctx, postID, "engagement.likes", 1); err != nil {
				return err
			}
			state.Liked = true
		case err != nil:
			return err
		default:
			if err := likes.Remove(ctx, userID); err != nil {
				return err
			}
			if err := posts.IncrementField(ctx, postID, "engagement.likes", -1); err != nil {
				return err
			}
		}

		doc, err := posts.Document(ctx, postID)
		if err != nil {
			return err
		}
		state.Likes = int(doc.Int("engagement.likes"))
		return nil
	})
	if err != nil {
		log.Printf("[ToggleLike] post %s user %s: %v", postID, userID, err)
		return nil, err
	}

	s.deps.publish(messaging.PostLiked, map[string]interface{}{
		"postId": postID, "userId": userID, "liked": state.Liked, "likes": state.Likes,
	})
	if state.Liked {
		if liker, err := s.users.Get(ctx, userID); err == nil {
			s.notes.notifyQuietly(ctx, models.Notification{
				UserID:        post.AuthorID,
				Type:          models.NotificationLike,
				Actor:         actorOf(liker),
				Action:        "gönderini beğendi",
				TargetID:      postID,
				TargetPreview: preview(post.Content),
			})
		}
	}
	return state, nil
}

func (s *PostService) HasLiked(ctx context.Context, userID, postID string) (bool, error) {
	_, err := s.posts.Sub(postID, LikesCollection).Document(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *PostService) IncrementViews(ctx context.Context, postID string) error {
	return s.posts.IncrementField(ctx, postID, "engagement.views", 1)
}

// AddImage uploads an image for a post and appends its URL to media.
// Author only.
func (s *PostService) AddImage(ctx context.Context, userID, postID string, f Upload) (string, error) {
	post, err := s.ownPost(ctx, userID, postID)
	if err != nil {
		return "", err
	}
	if err := validation.ValidateImage(f.ContentType, f.Size); err != nil {
		return "", err
	}
	url, err := s.deps.Blob.Upload(ctx, storage.PostImagePath(postID, f.Name, s.deps.Now()), f.Body)
	if err != nil {
		return "", err
	}
	media := append(append([]string{}, post.Media...), url)
	if err := s.posts.Update(ctx, postID, map[string]interface{}{"media": media}); err != nil {
		return "", err
	}
	return url, nil
}

func preview(text string) string {
	r := []rune(text)
	if len(r) > 80 {
		return string(r[:80]) + "..."
	}
	return text
}
