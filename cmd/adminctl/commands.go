package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/anonto42/social-admin/backend/pkg/client"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

var (
	apiURLFlag = &cli.StringFlag{
		Name:    "api-url",
		Aliases: []string{"u"},
		Usage:   "The base URL of the admin API",
		Value:   client.DefaultBaseURL,
		Sources: cli.EnvVars("API_URL"),
	}
	emailFlag = &cli.StringFlag{
		Name:    "email",
		Aliases: []string{"e"},
		Usage:   "Admin email used to open a session before the command runs",
		Sources: cli.EnvVars("ADMIN_EMAIL"),
	}
	passwordFlag = &cli.StringFlag{
		Name:    "password",
		Aliases: []string{"p"},
		Usage:   "Admin password used to open a session before the command runs",
		Sources: cli.EnvVars("ADMIN_PASSWORD"),
	}
)

// api is the client shared by the subcommands; set up in Before
var api *client.Client

var cmd = &cli.Command{
	Name:  "adminctl",
	Usage: "Moderate the social app from the command line",
	Flags: []cli.Flag{apiURLFlag, emailFlag, passwordFlag},
	Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
		var err error
		api, err = client.New(c.String(apiURLFlag.Name))
		if err != nil {
			return ctx, err
		}

		email, password := c.String(emailFlag.Name), c.String(passwordFlag.Name)
		if email == "" || password == "" {
			return ctx, nil
		}
		if _, err := api.Login(ctx, email, password); err != nil {
			return ctx, errors.Wrap(err, "login")
		}
		return ctx, nil
	},
	After: func(ctx context.Context, c *cli.Command) error {
		if api == nil {
			return nil
		}
		return api.Close()
	},
	Commands: []*cli.Command{
		pingCmd,
		verifyCmd,
		statsCmd,
		postsCmd,
		searchCmd,
		deletePostCmd,
		commentsCmd,
		deleteCommentCmd,
		sessionsCmd,
	},
}

var pingCmd = &cli.Command{
	Name:  "ping",
	Usage: "Check that the API is reachable",
	Action: func(ctx context.Context, c *cli.Command) error {
		if err := api.Ping(ctx); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

var verifyCmd = &cli.Command{
	Name:  "verify",
	Usage: "Print the identity of the current session",
	Action: func(ctx context.Context, c *cli.Command) error {
		claims, err := api.Verify(ctx)
		if err != nil {
			return err
		}
		return printJSON(claims)
	},
}

var statsCmd = &cli.Command{
	Name:  "stats",
	Usage: "Print the dashboard statistics",
	Action: func(ctx context.Context, c *cli.Command) error {
		stats, err := api.Stats(ctx)
		if err != nil {
			return err
		}
		if len(stats.Unavailable) > 0 {
			logrus.Warnf("metrics reported as zero: %v", stats.Unavailable)
		}
		return printJSON(stats)
	},
}

var postsCmd = &cli.Command{
	Name:  "posts",
	Usage: "List posts, newest first",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Filter by title"},
		&cli.IntFlag{Name: "page", Value: 1},
		&cli.IntFlag{Name: "limit", Value: 10},
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		posts, err := api.ListPosts(ctx, client.ListPostsParams{
			Search: c.String("search"),
			Page:   int(c.Int("page")),
			Limit:  int(c.Int("limit")),
		})
		if err != nil {
			return err
		}
		return printJSON(posts)
	},
}

var searchCmd = &cli.Command{
	Name:      "search",
	Usage:     "Search posts by id, title, topic or sub-topic",
	ArgsUsage: "<query>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "field",
			Aliases: []string{"f"},
			Usage:   "One of id, title, topic, subTopic, all",
			Value:   "all",
		},
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		q := c.Args().First()
		if q == "" {
			return errors.New("search query is required")
		}
		posts, err := api.SearchPosts(ctx, q, c.String("field"))
		if err != nil {
			return err
		}
		return printJSON(posts)
	},
}

var deletePostCmd = &cli.Command{
	Name:      "delete-post",
	Usage:     "Delete a post with its comments and reports",
	ArgsUsage: "<id>",
	Action: func(ctx context.Context, c *cli.Command) error {
		id, err := idArg(c)
		if err != nil {
			return err
		}
		if err := api.DeletePost(ctx, id); err != nil {
			return err
		}
		fmt.Printf("post %d deleted\n", id)
		return nil
	},
}

var commentsCmd = &cli.Command{
	Name:  "comments",
	Usage: "List the newest comments",
	Action: func(ctx context.Context, c *cli.Command) error {
		return printJSON(api.ListComments(ctx))
	},
}

var deleteCommentCmd = &cli.Command{
	Name:      "delete-comment",
	Usage:     "Delete a comment with its reactions and reports",
	ArgsUsage: "<id>",
	Action: func(ctx context.Context, c *cli.Command) error {
		id, err := idArg(c)
		if err != nil {
			return err
		}
		if err := api.DeleteComment(ctx, id); err != nil {
			return err
		}
		fmt.Printf("comment %d deleted\n", id)
		return nil
	},
}

var sessionsCmd = &cli.Command{
	Name:  "sessions",
	Usage: "List the most recent user sessions",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "limit", Value: 50},
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		sessions, err := api.ListSessions(ctx, int(c.Int("limit")))
		if err != nil {
			return err
		}
		return printJSON(sessions)
	},
}

func idArg(c *cli.Command) (uint, error) {
	raw := c.Args().First()
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
