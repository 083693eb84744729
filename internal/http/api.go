package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"microblog/internal/domain"
	"microblog/internal/repository"
	"microblog/internal/service"
	"microblog/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	graph     service.GraphService
	content   service.ContentService
	feed      service.FeedService
	storage   storage.Service
	bucket    string
	keyPrefix string
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *logrus.Logger
}

func NewHandler(
	users service.UserService,
	graph service.GraphService,
	content service.ContentService,
	feed service.FeedService,
	store storage.Service,
	bucket, keyPrefix string,
	jwtSecret string,
	tokenTTL time.Duration,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		users:     users,
		graph:     graph,
		content:   content,
		feed:      feed,
		storage:   store,
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.POST("/users", h.signup)
		api.POST("/login", h.login)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		authed := api.Group("", h.requireAuth())
		{
			authed.GET("/users/:id", h.getUser)
			authed.DELETE("/account", h.deleteMe)
			authed.POST("/users/:id/follow", h.follow)
			authed.DELETE("/users/:id/follow", h.unfollow)
			authed.GET("/users/:id/followers", h.listFollowers)
			authed.GET("/users/:id/following", h.listFollowing)

			authed.GET("/posts", h.listPosts)
			authed.POST("/posts", h.createPost)
			authed.GET("/posts/:id", h.getPost)
			authed.DELETE("/posts/:id", h.deletePost)
			authed.POST("/posts/:id/comments", h.createComment)

			authed.POST("/posts/:id/attachments", h.uploadAttachment)
			authed.GET("/posts/:id/attachments", h.listAttachments)

			authed.GET("/feed", h.getFeed)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// writeError maps domain errors onto status codes. Anything unrecognized
// is a storage-level failure: logged in full, surfaced opaquely.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserAlreadyExists), errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

type signupRequest struct {
	Name            string `json:"name"`
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password did not match confirmation"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Name, req.Username, req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": user.ID})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	token, err := h.issueToken(user.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userToResponse(user),
	})
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	followers, err := h.graph.Followers(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	following, err := h.graph.Following(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := userToResponse(user)
	resp.Followers = idsOrEmpty(followers)
	resp.Following = idsOrEmpty(following)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) deleteMe(c *gin.Context) {
	id := currentUserID(c)
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) follow(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.graph.Follow(c.Request.Context(), currentUserID(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) unfollow(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.graph.Unfollow(c.Request.Context(), currentUserID(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listFollowers(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ids, err := h.graph.Followers(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"followers": idsOrEmpty(ids)})
}

func (h *Handler) listFollowing(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ids, err := h.graph.Following(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": idsOrEmpty(ids)})
}

type createPostRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

func (h *Handler) createPost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.content.CreatePost(c.Request.Context(), currentUserID(c), req.Title, req.Body)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": post.ID})
}

func (h *Handler) listPosts(c *gin.Context) {
	posts, err := h.content.ListPosts(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]PostResponse, len(posts))
	for i := range posts {
		resp[i] = postToResponse(posts[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var opts service.GetPostOptions
	for _, expand := range strings.Split(c.Query("with"), ",") {
		switch strings.TrimSpace(expand) {
		case "author":
			opts.WithAuthor = true
		case "comments":
			opts.WithComments = true
		}
	}

	post, err := h.content.GetPost(c.Request.Context(), id, opts)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, postToResponse(*post))
}

func (h *Handler) deletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.content.DeletePost(c.Request.Context(), id, currentUserID(c)); err != nil {
		h.writeError(c, err)
		return
	}

	resp := gin.H{"deleted": id}
	if h.storage != nil && h.bucket != "" {
		if err := h.storage.DeletePrefix(c.Request.Context(), h.bucket, h.attachmentPrefix(id)); err != nil {
			h.logger.Warnf("delete attachments for post %d: %v", id, err)
			resp["warnings"] = []string{fmt.Sprintf("delete attachments: %v", err)}
		}
	}
	c.JSON(http.StatusOK, resp)
}

type createCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

func (h *Handler) createComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.content.CreateComment(c.Request.Context(), currentUserID(c), id, req.Body)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": comment.ID})
}

func (h *Handler) getFeed(c *gin.Context) {
	posts, err := h.feed.FeedFor(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]PostResponse, len(posts))
	for i := range posts {
		resp[i] = postToResponse(posts[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) uploadAttachment(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "storage service not configured"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	post, err := h.content.GetPost(c.Request.Context(), id, service.GetPostOptions{})
	if err != nil {
		h.writeError(c, err)
		return
	}
	if post.AuthorID != currentUserID(c) {
		h.writeError(c, fmt.Errorf("%w: post %d belongs to another user", service.ErrForbidden, id))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer file.Close()

	key := fmt.Sprintf("%s/%s-%s", h.attachmentPrefix(id), uuid.NewString(), fileHeader.Filename)
	location, err := h.storage.Upload(c.Request.Context(), file, storage.UploadOptions{
		Bucket:      h.bucket,
		Key:         key,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"location": location})
}

func (h *Handler) listAttachments(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "storage service not configured"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	objects, err := h.storage.ListObjects(c.Request.Context(), h.bucket, h.attachmentPrefix(id))
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]StorageObjectResponse, len(objects))
	for i := range objects {
		resp[i] = objectToResponse(objects[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) attachmentPrefix(postID int64) string {
	if h.keyPrefix == "" {
		return fmt.Sprintf("post-%d", postID)
	}
	return fmt.Sprintf("%s/post-%d", h.keyPrefix, postID)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

type UserResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	Followers []int64 `json:"followers,omitempty"`
	Following []int64 `json:"following,omitempty"`
}

type AuthorResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type PostResponse struct {
	ID        int64             `json:"id"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	AuthorID  int64             `json:"author_id"`
	Author    *AuthorResponse   `json:"author,omitempty"`
	Comments  []CommentResponse `json:"comments,omitempty"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
}

type CommentResponse struct {
	ID        int64  `json:"id"`
	Body      string `json:"body"`
	AuthorID  int64  `json:"author_id"`
	PostID    int64  `json:"post_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type StorageObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified,omitempty"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

func postToResponse(post domain.Post) PostResponse {
	resp := PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Body:      post.Body,
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt.Format(time.RFC3339),
		UpdatedAt: post.UpdatedAt.Format(time.RFC3339),
	}
	if post.Author != nil {
		resp.Author = &AuthorResponse{
			ID:       post.Author.ID,
			Name:     post.Author.Name,
			Username: post.Author.Username,
		}
	}
	if len(post.Comments) > 0 {
		resp.Comments = make([]CommentResponse, len(post.Comments))
		for i, comment := range post.Comments {
			resp.Comments[i] = CommentResponse{
				ID:        comment.ID,
				Body:      comment.Body,
				AuthorID:  comment.AuthorID,
				PostID:    comment.PostID,
				CreatedAt: comment.CreatedAt.Format(time.RFC3339),
				UpdatedAt: comment.UpdatedAt.Format(time.RFC3339),
			}
		}
	}
	return resp
}

func objectToResponse(obj storage.ObjectInfo) StorageObjectResponse {
	resp := StorageObjectResponse{
		Key:  obj.Key,
		Size: obj.Size,
	}
	if obj.LastModified != nil && !obj.LastModified.IsZero() {
		v := obj.LastModified.Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}

func idsOrEmpty(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
