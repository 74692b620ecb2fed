package controllers

import (
	"errors"
	"log"
	"net/http"

	"pulse/config"
	"pulse/middleware"
	"pulse/services"
	"pulse/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProfileController struct {
	postService   *services.PostService
	followService *services.FollowService
	userService   *services.UserService
	cfg           *config.Config
}

func NewProfileController(db *gorm.DB, cfg *config.Config) *ProfileController {
	return &ProfileController{
		postService:   services.NewPostService(db),
		followService: services.NewFollowService(db),
		userService:   services.NewUserService(db),
		cfg:           cfg,
	}
}

// Show serves an author's profile: their paginated posts, post count, and
// whether the viewer follows them. Anonymous viewers get following=false.
func (pc *ProfileController) Show(c *gin.Context) {
	author, posts, count, err := pc.postService.ProfileFeed(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	following := false
	if viewerID := middleware.CurrentUserID(c); viewerID != 0 {
		following, err = pc.followService.IsFollowing(viewerID, author.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check follow status"})
			return
		}
	}

	page := utils.Paginate(posts, c.Query("page"), pc.cfg.PostsPerPage)
	c.JSON(http.StatusOK, gin.H{
		"author":    author,
		"page_obj":  page,
		"count":     count,
		"following": following,
	})
}

// Follow subscribes the viewer to the target author and returns to the
// profile. Self-follows and already-followed authors redirect back with no
// state change.
func (pc *ProfileController) Follow(c *gin.Context) {
	username := c.Param("username")
	profilePath := "/profile/" + username

	author, err := pc.userService.GetUserByUsername(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	viewerID := middleware.CurrentUserID(c)
	if err := pc.followService.Follow(viewerID, author); err != nil {
		switch {
		case errors.Is(err, services.ErrSelfFollow), errors.Is(err, services.ErrAlreadyFollowed):
			// Silent no-op, back to the profile.
		default:
			log.Printf("follow %s failed: %v", username, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
			return
		}
	}

	c.Redirect(http.StatusSeeOther, profilePath)
}

// Unfollow removes the viewer's subscription to the target author.
// Removing a subscription that does not exist is not an error.
func (pc *ProfileController) Unfollow(c *gin.Context) {
	username := c.Param("username")

	viewerID := middleware.CurrentUserID(c)
	if err := pc.followService.Unfollow(viewerID, username); err != nil {
		log.Printf("unfollow %s failed: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/profile/"+username)
}
