package service

import (
	"context"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
	apperrors "vidtube/pkg/errors"
	"vidtube/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CommentService struct {
	comments *repository.CommentRepository
	log      *logger.Logger
}

func NewCommentService(comments *repository.CommentRepository, log *logger.Logger) *CommentService {
	return &CommentService{comments: comments, log: log}
}

// ListComments returns one page of a video's comments with author profiles
func (s *CommentService) ListComments(ctx context.Context, videoIDRaw string, page domain.Page) ([]domain.CommentWithAuthor, error) {
	videoID, err := parseObjectID(videoIDRaw, "video id")
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByVideo(ctx, videoID, page)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list comments", err)
	}
	return comments, nil
}

// AddComment creates a comment on a video by the authenticated caller
func (s *CommentService) AddComment(ctx context.Context, videoIDRaw string, authorID primitive.ObjectID, content string) (*domain.Comment, error) {
	videoID, err := parseObjectID(videoIDRaw, "video id")
	if err != nil {
		return nil, err
	}
	if err := requireNonBlank(content, "comment text"); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		Content: content,
		Video:   videoID,
		Owner:   authorID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.NewInternalError("failed to create comment", err)
	}
	return comment, nil
}

// UpdateComment sets new comment text; only the author may update
func (s *CommentService) UpdateComment(ctx context.Context, commentIDRaw string, callerID primitive.ObjectID, content string) (*domain.Comment, error) {
	commentID, err := parseObjectID(commentIDRaw, "comment id")
	if err != nil {
		return nil, err
	}
	if err := requireNonBlank(content, "comment text"); err != nil {
		return nil, err
	}

	if err := s.authorizeCommentOwner(ctx, commentID, callerID); err != nil {
		return nil, err
	}

	updated, err := s.comments.UpdateContent(ctx, commentID, content)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update comment", err)
	}
	if updated == nil {
		return nil, apperrors.NewNotFoundError("comment not found")
	}
	return updated, nil
}

// DeleteComment removes a comment; only the author may delete. Likes on
// the comment are intentionally orphaned.
func (s *CommentService) DeleteComment(ctx context.Context, commentIDRaw string, callerID primitive.ObjectID) error {
	commentID, err := parseObjectID(commentIDRaw, "comment id")
	if err != nil {
		return err
	}

	if err := s.authorizeCommentOwner(ctx, commentID, callerID); err != nil {
		return err
	}

	deleted, err := s.comments.Delete(ctx, commentID)
	if err != nil {
		return apperrors.NewInternalError("failed to delete comment", err)
	}
	if !deleted {
		return apperrors.NewNotFoundError("comment not found")
	}
	return nil
}

func (s *CommentService) authorizeCommentOwner(ctx context.Context, commentID, callerID primitive.ObjectID) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return apperrors.NewInternalError("failed to get comment", err)
	}
	if comment == nil {
		return apperrors.NewNotFoundError("comment not found")
	}
	if comment.Owner != callerID {
		return apperrors.NewAuthorizationError("only the comment author can modify it")
	}
	return nil
}
