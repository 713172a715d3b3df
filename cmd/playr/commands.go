// Command definitions for the playr CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"playr/internal/config"
	"playr/internal/domain"
)

// tickInterval is how often the play loop polls for track completion.
const tickInterval = 500 * time.Millisecond

func addCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add audio files to the library",
		ArgsUsage: "<file>...",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return fmt.Errorf("no files given")
			}

			application, err := buildApplication(cmd)
			if err != nil {
				return err
			}
			defer application.Shutdown()

			for _, path := range cmd.Args().Slice() {
				track, err := application.Library().AddTrack(path)
				if err != nil {
					return fmt.Errorf("failed to add %q: %w", path, err)
				}
				fmt.Printf("added #%d  %s - %s\n", track.ID, track.Artist, track.Title)
			}
			return nil
		},
	}
}

func tracksCommand() *cli.Command {
	return &cli.Command{
		Name:  "tracks",
		Usage: "List all tracks in the library",
		Action: func(_ context.Context, cmd *cli.Command) error {
			application, err := buildApplication(cmd)
			if err != nil {
				return err
			}
			defer application.Shutdown()

			tracks, err := application.Library().Tracks()
			if err != nil {
				return err
			}
			for _, t := range tracks {
				fmt.Printf("#%-4d %-30s %-20s plays:%d\n", t.ID, t.Title, t.Artist, t.PlayCount)
			}
			return nil
		},
	}
}

func removeCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "Remove a track from the library",
		ArgsUsage: "<track-id>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			id, err := trackIDArg(cmd, 0)
			if err != nil {
				return err
			}

			application, err := buildApplication(cmd)
			if err != nil {
				return err
			}
			defer application.Shutdown()

			return application.Library().DeleteTrack(id)
		},
	}
}

func playlistCommand() *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create a named playlist",
				ArgsUsage: "<name>",
				Action: func(_ context.Context, cmd *cli.Command) error {
					name := cmd.Args().First()
					if name == "" {
						return fmt.Errorf("playlist name required")
					}

					application, err := buildApplication(cmd)
					if err != nil {
						return err
					}
					defer application.Shutdown()

					pl, err := application.Library().CreatePlaylist(name)
					if err != nil {
						return err
					}
					fmt.Printf("created playlist #%d %q\n", pl.ID, pl.Name)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a playlist (tracks are kept)",
				ArgsUsage: "<playlist-id>",
				Action: func(_ context.Context, cmd *cli.Command) error {
					id, err := trackIDArg(cmd, 0)
					if err != nil {
						return err
					}

					application, err := buildApplication(cmd)
					if err != nil {
						return err
					}
					defer application.Shutdown()

					return application.Library().DeletePlaylist(id)
				},
			},
			{
				Name:  "list",
				Usage: "List all playlists",
				Action: func(_ context.Context, cmd *cli.Command) error {
					application, err := buildApplication(cmd)
					if err != nil {
						return err
					}
					defer application.Shutdown()

					playlists, err := application.Library().Playlists()
					if err != nil {
						return err
					}
					for _, pl := range playlists {
						fmt.Printf("#%-4d %s\n", pl.ID, pl.Name)
					}
					return nil
				},
			},
			{
				Name:      "tracks",
				Usage:     "List a playlist's tracks in order",
				ArgsUsage: "<playlist-id>",
				Action: func(_ context.Context, cmd *cli.Command) error {
					id, err := trackIDArg(cmd, 0)
					if err != nil {
						return err
					}

					application, err := buildApplication(cmd)
					if err != nil {
						return err
					}
					defer application.Shutdown()

					tracks, err := application.Library().PlaylistTracks(id)
					if err != nil {
						return err
					}
					for i, t := range tracks {
						fmt.Printf("%2d. #%-4d %s - %s\n", i+1, t.ID, t.Artist, t.Title)
					}
					return nil
				},
			},
			{
				Name:      "add",
				Usage:     "Append a track to a playlist",
				ArgsUsage: "<playlist-id> <track-id>",
				Action: func(_ context.Context, cmd *cli.Command) error {
					playlistID, err := trackIDArg(cmd, 0)
					if err != nil {
						return err
					}
					trackID, err := trackIDArg(cmd, 1)
					if err != nil {
						return err
					}

					application, err := buildApplication(cmd)
					if err != nil {
						return err
					}
					defer application.Shutdown()

					return application.Library().AddTrackToPlaylist(playlistID, trackID)
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove a track from a playlist",
				ArgsUsage: "<playlist-id> <track-id>",
				Action: func(_ context.Context, cmd *cli.Command) error {
					playlistID, err := trackIDArg(cmd, 0)
					if err != nil {
						return err
					}
					trackID, err := trackIDArg(cmd, 1)
					if err != nil {
						return err
					}

					application, err := buildApplication(cmd)
					if err != nil {
						return err
					}
					defer application.Shutdown()

					return application.Library().RemoveTrackFromPlaylist(playlistID, trackID)
				},
			},
		},
	}
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Play the library or a playlist until interrupted",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "playlist",
				Aliases: []string{"p"},
				Usage:   "Playlist ID to play (library when omitted)",
			},
			&cli.BoolFlag{
				Name:  "shuffle",
				Usage: "Enable shuffle mode",
			},
			&cli.BoolFlag{
				Name:  "repeat",
				Usage: "Enable repeat mode",
			},
			&cli.Float64Flag{
				Name:  "volume",
				Usage: "Playback volume (0.0 to 1.0)",
				Value: -1,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			application, err := buildApplication(cmd)
			if err != nil {
				return err
			}
			defer application.Shutdown()

			var tracks []domain.Track
			playlistID := int64(cmd.Int("playlist"))
			if playlistID > 0 {
				tracks, err = application.Library().PlaylistTracks(playlistID)
			} else {
				tracks, err = application.Library().Tracks()
			}
			if err != nil {
				return err
			}
			if len(tracks) == 0 {
				return domain.ErrQueueEmpty
			}
			application.Session().SetLastPlaylist(playlistID)

			if cmd.Bool("shuffle") != application.Session().Shuffle() {
				application.Session().ToggleShuffle()
			}
			if cmd.Bool("repeat") != application.Session().Repeat() {
				application.Session().ToggleRepeat()
			}
			if v := cmd.Float64("volume"); v >= 0 {
				application.Session().SetVolume(v)
				if err := application.Playback().SetVolume(v); err != nil {
					return err
				}
			}

			// Resume at the last played track when it is still queued.
			start := 0
			if lastID := application.Session().State().LastTrackID; lastID > 0 {
				for i, t := range tracks {
					if t.ID == lastID {
						start = i
						break
					}
				}
			}

			application.Queue().SetQueue(tracks, start)
			if err := application.Queue().PlayCurrent(); err != nil {
				return err
			}

			if current, ok := application.Queue().Current(); ok {
				fmt.Printf("playing #%d  %s - %s\n", current.ID, current.Artist, current.Title)
			}

			// The engine pushes no completion notification, so the loop
			// polls on a fixed tick until interrupted.
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sig)

			ticker := time.NewTicker(tickInterval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					application.Queue().Tick()
				case <-sig:
					fmt.Println("\nstopping")
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		},
	}
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration helpers",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write an example config file",
				Action: func(_ context.Context, cmd *cli.Command) error {
					path := cmd.String("config")
					if _, err := os.Stat(path); err == nil {
						return fmt.Errorf("%s already exists", path)
					}
					if err := config.WriteExample(path); err != nil {
						return err
					}
					fmt.Printf("wrote %s\n", path)
					return nil
				},
			},
		},
	}
}

// trackIDArg parses the positional argument at i as a numeric ID.
func trackIDArg(cmd *cli.Command, i int) (int64, error) {
	arg := cmd.Args().Get(i)
	if arg == "" {
		return 0, fmt.Errorf("missing ID argument")
	}
	var id int64
	if _, err := fmt.Sscanf(arg, "%d", &id); err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID %q", arg)
	}
	return id, nil
}
