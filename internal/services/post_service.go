package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"inkspot_backend/internal/logger"
	"inkspot_backend/internal/models"
	"inkspot_backend/internal/repositories"
	"inkspot_backend/internal/services/dto"
	"inkspot_backend/pkg/apperrors"
)

type PostService interface {
	Create(db *gorm.DB, artistID string, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	Get(db *gorm.DB, viewerID, postID string) (*dto.PostResponse, error)
	Delete(db *gorm.DB, artistID, postID string) error

	// Feed - общая лента, новые первыми
	Feed(db *gorm.DB, viewerID string, page, pageSize int) (*dto.PostListResponse, error)
	// FollowedFeed - лента только из подписок клиента
	FollowedFeed(db *gorm.DB, viewerID string) (*dto.PostListResponse, error)
	ArtistPosts(db *gorm.DB, viewerID, artistID string) (*dto.PostListResponse, error)

	ToggleLike(db *gorm.DB, userID, postID string) (*dto.LikeResponse, error)
	AddComment(db *gorm.DB, userID, postID string, req *dto.AddCommentRequest) (*dto.PostResponse, error)
}

type postService struct {
	postRepo repositories.PostRepository
	userRepo repositories.UserRepository
}

func NewPostService(postRepo repositories.PostRepository, userRepo repositories.UserRepository) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

func (s *postService) Create(db *gorm.DB, artistID string, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	artist, err := s.userRepo.FindByID(db, artistID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if artist.Role != models.UserRoleArtist {
		return nil, apperrors.NewForbiddenError("only artists can publish posts")
	}

	post := &models.Post{
		ArtistID: artistID,
		// Денормализованный снимок автора для ленты
		ArtistName:  artist.FullName,
		StudioName:  artist.StudioName,
		City:        artist.City,
		ImageURL:    req.ImageURL,
		Title:       req.Title,
		Description: req.Description,
		Likes:       []string{},
		Comments:    []models.PostComment{},
	}

	if err := s.postRepo.Create(db, post); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("post created", "post_id", post.ID, "artist_id", artistID)
	return buildPostResponse(post, artistID), nil
}

func (s *postService) Get(db *gorm.DB, viewerID, postID string) (*dto.PostResponse, error) {
	post, err := s.findPost(db, postID)
	if err != nil {
		return nil, err
	}
	return buildPostResponse(post, viewerID), nil
}

func (s *postService) Delete(db *gorm.DB, artistID, postID string) error {
	post, err := s.findPost(db, postID)
	if err != nil {
		return err
	}
	if post.ArtistID != artistID {
		return apperrors.NewForbiddenError("only the author can delete a post")
	}

	if err := s.postRepo.Delete(db, post.ID); err != nil {
		return apperrors.InternalError(err)
	}
	logger.Info("post deleted", "post_id", postID, "artist_id", artistID)
	return nil
}

func (s *postService) Feed(db *gorm.DB, viewerID string, page, pageSize int) (*dto.PostListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	posts, total, err := s.postRepo.FindAll(db, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.PostListResponse{
		Posts:    buildPostList(posts, viewerID),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	return resp, nil
}

func (s *postService) FollowedFeed(db *gorm.DB, viewerID string) (*dto.PostListResponse, error) {
	viewer, err := s.userRepo.FindByID(db, viewerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.PostListResponse{Posts: []*dto.PostResponse{}}
	if len(viewer.FollowedArtists) == 0 {
		return resp, nil
	}

	posts, err := s.postRepo.FindByArtists(db, viewer.FollowedArtists)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp.Posts = buildPostList(posts, viewerID)
	resp.Total = int64(len(resp.Posts))
	return resp, nil
}

func (s *postService) ArtistPosts(db *gorm.DB, viewerID, artistID string) (*dto.PostListResponse, error) {
	posts, err := s.postRepo.FindByArtist(db, artistID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := &dto.PostListResponse{
		Posts: buildPostList(posts, viewerID),
		Total: int64(len(posts)),
	}
	return resp, nil
}

func (s *postService) ToggleLike(db *gorm.DB, userID, postID string) (*dto.LikeResponse, error) {
	post, err := s.findPost(db, postID)
	if err != nil {
		return nil, err
	}

	liked := post.ToggleLike(userID)
	if err := s.postRepo.Save(db, post); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LikeResponse{
		Liked:     liked,
		LikeCount: len(post.Likes),
	}, nil
}

func (s *postService) AddComment(db *gorm.DB, userID, postID string, req *dto.AddCommentRequest) (*dto.PostResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	post, err := s.findPost(db, postID)
	if err != nil {
		return nil, err
	}

	post.Comments = append(post.Comments, models.PostComment{
		UserID:    userID,
		UserName:  user.FullName,
		Text:      req.Text,
		CreatedAt: time.Now(),
	})

	if err := s.postRepo.Save(db, post); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildPostResponse(post, userID), nil
}

func (s *postService) findPost(db *gorm.DB, postID string) (*models.Post, error) {
	post, err := s.postRepo.FindByID(db, postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return post, nil
}

func buildPostList(posts []models.Post, viewerID string) []*dto.PostResponse {
	out := make([]*dto.PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, buildPostResponse(&posts[i], viewerID))
	}
	return out
}

func buildPostResponse(post *models.Post, viewerID string) *dto.PostResponse {
	comments := make([]*dto.CommentResponse, 0, len(post.Comments))
	for i := range post.Comments {
		c := &post.Comments[i]
		comments = append(comments, &dto.CommentResponse{
			UserID:    c.UserID,
			UserName:  c.UserName,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}

	return &dto.PostResponse{
		ID:          post.ID,
		ArtistID:    post.ArtistID,
		ArtistName:  post.ArtistName,
		StudioName:  post.StudioName,
		City:        post.City,
		ImageURL:    post.ImageURL,
		Title:       post.Title,
		Description: post.Description,
		LikeCount:   len(post.Likes),
		Liked:       post.IsLikedBy(viewerID),
		Comments:    comments,
		CreatedAt:   post.CreatedAt,
	}
}
