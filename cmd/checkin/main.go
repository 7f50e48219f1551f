package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/cppla/dailycheckin/client"
)

func main() {
	app := &cli.App{
		Name:  "checkin",
		Usage: "daily check-in tracker client",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Value:   "http://localhost:8080",
				Usage:   "check-in API base URL",
				EnvVars: []string{"CHECKIN_SERVER"},
			},
			&cli.StringFlag{
				Name:     "user",
				Usage:    "user id",
				EnvVars:  []string{"CHECKIN_USER"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "bearer token, when the server requires one",
				EnvVars: []string{"CHECKIN_TOKEN"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 10 * time.Second,
				Usage: "request timeout",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable ANSI colours",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "print the check-in heatmap and streaks",
				Action: show,
			},
			{
				Name:   "checkin",
				Usage:  "check in for today, then print the heatmap",
				Action: checkIn,
			},
		},
		DefaultCommand: "show",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newTracker(c *cli.Context) *client.Tracker {
	api := client.New(c.String("server"), c.String("token"))
	api.HTTPClient.Timeout = c.Duration("timeout")
	return client.NewTracker(api, c.String("user"), nil)
}

func render(c *cli.Context, t *client.Tracker) error {
	opts := client.RenderOptions{Color: !c.Bool("no-color") && client.IsTerminal(os.Stdout)}
	return client.Render(os.Stdout, t.Snapshot(), opts)
}

func show(c *cli.Context) error {
	t := newTracker(c)
	// a load failure is shown in the view rather than aborting
	_ = t.Load(c.Context)
	if err := render(c, t); err != nil {
		return err
	}
	if t.Snapshot().Error != "" {
		return cli.Exit("", 1)
	}
	return nil
}

func checkIn(c *cli.Context) error {
	t := newTracker(c)
	if err := t.Load(c.Context); err != nil {
		_ = render(c, t)
		return cli.Exit("", 1)
	}

	err := t.CheckIn(c.Context)
	if rerr := render(c, t); rerr != nil {
		return rerr
	}
	switch {
	case err == nil, errors.Is(err, client.ErrAlreadyCheckedIn):
		return nil
	default:
		return cli.Exit("", 1)
	}
}
