package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/anonto42/social-admin/backend/internal/models"
)

const (
	statsPath       = "/api/stats"
	postsPath       = "/api/posts"
	searchPostsPath = "/api/posts/search"
	commentsPath    = "/api/comments"
	sessionsPath    = "/api/sessions"
)

// ListPostsParams filters GET /api/posts; zero values use the server defaults
type ListPostsParams struct {
	Search string
	Page   int
	Limit  int
}

func (c *Client) Stats(ctx context.Context) (*models.DashboardStats, error) {
	res, err := c.send(c.r(ctx).SetResult(&models.DashboardStats{}),
		http.MethodGet, statsPath, "Failed to fetch dashboard stats")
	if err != nil {
		return nil, err
	}
	return res.Result().(*models.DashboardStats), nil
}

func (c *Client) ListPosts(ctx context.Context, params ListPostsParams) ([]models.PostRow, error) {
	req := c.r(ctx).SetResult(&[]models.PostRow{})
	if params.Search != "" {
		req.SetQueryParam("search", params.Search)
	}
	if params.Page > 0 {
		req.SetQueryParam("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(params.Limit))
	}

	res, err := c.send(req, http.MethodGet, postsPath, "Failed to fetch posts")
	if err != nil {
		return nil, err
	}
	return *res.Result().(*[]models.PostRow), nil
}

// SearchPosts matches q against field (id, title, topic, subTopic); an empty field searches all text columns
func (c *Client) SearchPosts(ctx context.Context, q, field string) ([]models.PostRow, error) {
	req := c.r(ctx).
		SetQueryParam("q", q).
		SetResult(&[]models.PostRow{})
	if field != "" {
		req.SetQueryParam("field", field)
	}

	res, err := c.send(req, http.MethodGet, searchPostsPath, "Failed to search posts")
	if err != nil {
		return nil, err
	}
	return *res.Result().(*[]models.PostRow), nil
}

func (c *Client) DeletePost(ctx context.Context, id uint) error {
	_, err := c.send(c.r(ctx), http.MethodDelete, postsPath+"/"+strconv.FormatUint(uint64(id), 10), "Failed to delete post")
	return err
}

// ListComments never fails: errors are notified and an empty list is returned
func (c *Client) ListComments(ctx context.Context) []models.CommentRow {
	res, err := c.send(c.r(ctx).SetResult(&[]models.CommentRow{}),
		http.MethodGet, commentsPath, "Failed to fetch comments")
	if err != nil {
		return []models.CommentRow{}
	}
	return *res.Result().(*[]models.CommentRow)
}

func (c *Client) DeleteComment(ctx context.Context, id uint) error {
	_, err := c.send(c.r(ctx), http.MethodDelete, commentsPath+"/"+strconv.FormatUint(uint64(id), 10), "Failed to delete comment")
	return err
}

func (c *Client) ListSessions(ctx context.Context, limit int) ([]models.SessionRow, error) {
	req := c.r(ctx).SetResult(&[]models.SessionRow{})
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	res, err := c.send(req, http.MethodGet, sessionsPath, "Failed to fetch sessions")
	if err != nil {
		return nil, err
	}
	return *res.Result().(*[]models.SessionRow), nil
}
