package controllers

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"pulse/middleware"
	"pulse/models"
	"pulse/services"
	"pulse/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const accessDeniedPath = "/posts/access-denied"

type PostController struct {
	postService    *services.PostService
	commentService *services.CommentService
	userService    *services.UserService
	storage        storage.Storage
}

func NewPostController(db *gorm.DB, store storage.Storage) *PostController {
	return &PostController{
		postService:    services.NewPostService(db),
		commentService: services.NewCommentService(db),
		userService:    services.NewUserService(db),
		storage:        store,
	}
}

// saveImage stores an uploaded attachment under posts/ and returns the
// storage key. A nil file header means no attachment was sent.
func (pc *PostController) saveImage(c *gin.Context, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	key := "posts/" + uuid.New().String() + filepath.Ext(header.Filename)
	contentType := header.Header.Get("Content-Type")
	if err := pc.storage.Write(c.Request.Context(), key, file, header.Size, contentType); err != nil {
		return "", err
	}
	return key, nil
}

// Detail serves a single post with its comments and the global post
// counter shown on the detail page.
func (pc *PostController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	post, err := pc.postService.GetPost(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comments, err := pc.commentService.GetPostComments(post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	counter, err := pc.postService.CountPosts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count posts"})
		return
	}

	data := gin.H{
		"post":     post,
		"comments": comments,
		"counter":  counter,
	}
	if post.Image != "" {
		if url, err := pc.storage.GetURL(c.Request.Context(), post.Image, 15*time.Minute); err == nil {
			data["image_url"] = url
		} else {
			log.Printf("image url for %s: %v", post.Image, err)
		}
	}

	c.JSON(http.StatusOK, data)
}

// CreateForm backs the create-post page for an authenticated viewer; the
// form itself is rendered by the presentation layer.
func (pc *PostController) CreateForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"is_edit": false})
}

// Create stores a new post and sends the author to their profile.
func (pc *PostController) Create(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req models.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var imageKey string
	if header, err := c.FormFile("image"); err == nil {
		imageKey, err = pc.saveImage(c, header)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
	}

	if _, err := pc.postService.CreatePost(userID, &req, imageKey); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	author, err := pc.userService.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve author"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/profile/"+author.Username)
}

// EditForm loads the post for the edit page. Non-authors are sent to the
// access-denied page instead of receiving a hard failure.
func (pc *PostController) EditForm(c *gin.Context) {
	post, ok := pc.loadOwnPost(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post, "is_edit": true})
}

// Edit mutates the post and sends the author back to the post detail page.
func (pc *PostController) Edit(c *gin.Context) {
	post, ok := pc.loadOwnPost(c)
	if !ok {
		return
	}

	var req models.UpdatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var imageKey string
	if header, err := c.FormFile("image"); err == nil {
		imageKey, err = pc.saveImage(c, header)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
	}

	if err := pc.postService.UpdatePost(post, &req, imageKey); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/posts/%d", post.ID))
}

// loadOwnPost resolves the post from the route and enforces the author-only
// rule shared by the edit handlers. It writes the response on failure.
func (pc *PostController) loadOwnPost(c *gin.Context) (*models.Post, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return nil, false
	}

	post, err := pc.postService.GetPost(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return nil, false
	}

	userID := middleware.CurrentUserID(c)
	if post.AuthorID == nil || *post.AuthorID != userID {
		c.Redirect(http.StatusFound, accessDeniedPath)
		c.Abort()
		return nil, false
	}

	return post, true
}

// AccessDenied renders the dedicated denial page. It deliberately answers
// 200, not 403.
func (pc *PostController) AccessDenied(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "You can only edit your own posts"})
}

// AddComment attaches a comment to a post and returns to the detail page.
// An invalid form still redirects back without saving anything.
func (pc *PostController) AddComment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	post, err := pc.postService.GetPost(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	detailPath := fmt.Sprintf("/posts/%d", post.ID)

	var req models.CreateCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusSeeOther, detailPath)
		return
	}

	userID := middleware.CurrentUserID(c)
	if _, err := pc.commentService.AddComment(post.ID, userID, req.Text); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	c.Redirect(http.StatusSeeOther, detailPath)
}
