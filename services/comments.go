package services

import (
	"context"

	"kovan/messaging"
	"kovan/models"
	"kovan/store"
	"kovan/validation"
)

func (s *PostService) comments(postID string) *store.Collection {
	return s.posts.Sub(postID, CommentsCollection)
}

// CommentsQuery lists a post's comments oldest first.
func CommentsQuery() store.Query {
	return store.Query{OrderBy: "createdAt", Direction: store.Asc}
}

func (s *PostService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	if _, err := s.posts.Document(ctx, postID); err != nil {
		return nil, err
	}
	docs, err := s.comments(postID).Find(ctx, CommentsQuery())
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.Comment](docs)
}

// AddComment stores a comment and bumps the post's comment counter in the
// same transaction.
func (s *PostService) AddComment(ctx context.Context, userID, postID, text string) (*models.Comment, error) {
	text, err := validation.ValidateComment(text)
	if err != nil {
		return nil, err
	}
	author, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		PostID:     postID,
		AuthorID:   userID,
		AuthorInfo: models.AuthorInfo{Name: author.Name, AvatarURL: author.AvatarURL},
		Text:       text,
	}
	var post models.Post
	err = s.deps.Store.RunInTransaction(ctx, func(ctx context.Context, tx store.Store) error {
		posts := s.posts.In(tx)
		if err := posts.Get(ctx, postID, &post); err != nil {
			return err
		}
		doc, err := s.comments(postID).In(tx).Create(ctx, comment)
		if err != nil {
			return err
		}
		if err := store.Decode(doc, &comment); err != nil {
			return err
		}
		return posts.IncrementField(ctx, postID, "engagement.comments", 1)
	})
	if err != nil {
		return nil, err
	}

	s.deps.publish(messaging.CommentCreated, map[string]string{
		"postId": postID, "commentId": comment.ID, "authorId": userID,
	})
	s.notes.notifyQuietly(ctx, models.Notification{
		UserID:        post.AuthorID,
		Type:          models.NotificationComment,
		Actor:         actorOf(author),
		Action:        "gönderine yorum yaptı",
		TargetID:      postID,
		TargetPreview: preview(text),
	})
	return &comment, nil
}

// DeleteComment removes a comment and decrements the post's comment counter
// in the same transaction. The comment author and the post author may
// delete.
func (s *PostService) DeleteComment(ctx context.Context, userID, postID, commentID string) error {
	return s.deps.Store.RunInTransaction(ctx, func(ctx context.Context, tx store.Store) error {
		posts := s.posts.In(tx)
		comments := s.comments(postID).In(tx)

		var post models.Post
		if err := posts.Get(ctx, postID, &post); err != nil {
			return err
		}
		var comment models.Comment
		if err := comments.Get(ctx, commentID, &comment); err != nil {
			return err
		}
		if comment.AuthorID != userID && post.AuthorID != userID {
			return ErrForbidden
		}
		if err := comments.Remove(ctx, commentID); err != nil {
			return err
		}
		return posts.IncrementField(ctx, postID, "engagement.comments", -1)
	})
}

// LikeComment adds one like to a comment and returns the new count.
func (s *PostService) LikeComment(ctx context.Context, postID, commentID string) (int, error) {
	comments := s.comments(postID)
	if err := comments.IncrementField(ctx, commentID, "likes", 1); err != nil {
		return 0, err
	}
	doc, err := comments.Document(ctx, commentID)
	if err != nil {
		return 0, err
	}
	return int(doc.Int("likes")), nil
}
