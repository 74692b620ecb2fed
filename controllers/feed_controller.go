package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"pulse/cache"
	"pulse/config"
	"pulse/middleware"
	"pulse/services"
	"pulse/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// indexCacheKeyPrefix keys the cached global feed pages.
const indexCacheKeyPrefix = "index_page"

type FeedController struct {
	postService *services.PostService
	cache       cache.PageCache
	cfg         *config.Config
}

func NewFeedController(db *gorm.DB, pageCache cache.PageCache, cfg *config.Config) *FeedController {
	return &FeedController{
		postService: services.NewPostService(db),
		cache:       pageCache,
		cfg:         cfg,
	}
}

// Index serves the global feed. The rendered page body is cached for the
// configured TTL; a post created inside that window stays invisible here
// until the entry expires. Racing fills of the same key compute the same
// value, so no coordination is needed.
func (fc *FeedController) Index(c *gin.Context) {
	ctx := c.Request.Context()
	key := fmt.Sprintf("%s:p%s", indexCacheKeyPrefix, c.DefaultQuery("page", "1"))

	if body, hit, err := fc.cache.Get(ctx, key); err != nil {
		log.Printf("page cache get failed: %v", err)
	} else if hit {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	posts, err := fc.postService.GlobalFeed()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	page := utils.Paginate(posts, c.Query("page"), fc.cfg.PostsPerPage)
	body, err := json.Marshal(gin.H{"page_obj": page})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render feed"})
		return
	}

	if err := fc.cache.SetWithTTL(ctx, key, body, fc.cfg.IndexCacheTTL); err != nil {
		log.Printf("page cache set failed: %v", err)
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// GroupPosts serves the feed for a group page. An unknown slug is a 404.
func (fc *FeedController) GroupPosts(c *gin.Context) {
	group, posts, err := fc.postService.GroupFeed(c.Param("slug"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	page := utils.Paginate(posts, c.Query("page"), fc.cfg.PostsPerPage)
	c.JSON(http.StatusOK, gin.H{
		"group":    group,
		"page_obj": page,
	})
}

// FollowIndex serves the authenticated viewer's following feed.
func (fc *FeedController) FollowIndex(c *gin.Context) {
	viewerID := middleware.CurrentUserID(c)

	posts, err := fc.postService.FollowingFeed(viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	page := utils.Paginate(posts, c.Query("page"), fc.cfg.PostsPerPage)
	c.JSON(http.StatusOK, gin.H{"page_obj": page})
}
