// Package main provides the manifest generator CLI for the Stillframe gallery.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/stillframe/stillframe-server/internal/generator"
	"github.com/stillframe/stillframe-server/internal/logger"
	"github.com/stillframe/stillframe-server/internal/manifest"
	"github.com/stillframe/stillframe-server/internal/scanner"
)

func main() {
	// Load .env before flag defaults are computed so the env fallbacks
	// see it. Ignore errors; the file is optional.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		photosDir   string
		thumbSuffix string
		fullSuffix  string
		meta        manifest.Metadata
		logLevel    string
		strict      bool
		watch       bool
	)

	cmd := &cobra.Command{
		Use:   "manifest [output-path]",
		Short: "Generate the gallery manifest from a photo directory",
		Long: `Scans a photo directory, probes PNG/JPEG headers for dimensions,
merges thumbnail/full variants into photo entries, and writes the manifest
JSON consumed by the gallery renderer.

Each flag falls back to an environment variable of matching intent
(e.g. --photos-dir to GALLERY_PHOTOS_DIR).`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := generator.DefaultOutputName
			if len(args) > 0 {
				output = args[0]
			}

			log := logger.New(logger.Config{
				Level:  logger.ParseLevel(logLevel),
				Writer: cmd.ErrOrStderr(),
			})

			opts := generator.Options{
				PhotosDir:        photosDir,
				OutputPath:       output,
				ThumbnailSuffix:  thumbSuffix,
				FullSuffix:       fullSuffix,
				Metadata:         meta,
				StrictCollisions: strict,
			}
			g := generator.New(opts, log)

			if watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				return g.Watch(ctx)
			}

			_, err := g.Run(cmd.Context())
			return err
		},
	}

	cmd.Flags().StringVar(&photosDir, "photos-dir", envOr("GALLERY_PHOTOS_DIR", "photos"), "photo directory to scan")
	cmd.Flags().StringVar(&thumbSuffix, "thumbnail-suffix", envOr("GALLERY_THUMBNAIL_SUFFIX", scanner.DefaultThumbnailSuffix), "file name marker for thumbnail renditions")
	cmd.Flags().StringVar(&fullSuffix, "full-suffix", envOr("GALLERY_FULL_SUFFIX", scanner.DefaultFullSuffix), "file name marker for full renditions")
	cmd.Flags().StringVar(&meta.DownloadArchive, "archive", envOr("GALLERY_ARCHIVE", ""), "path or URL of the download archive")
	cmd.Flags().StringVar(&meta.HeroEyebrow, "hero-eyebrow", envOr("GALLERY_HERO_EYEBROW", ""), "hero eyebrow text")
	cmd.Flags().StringVar(&meta.HeroTitle, "hero-title", envOr("GALLERY_HERO_TITLE", ""), "hero title")
	cmd.Flags().StringVar(&meta.HeroSubtitle, "hero-subtitle", envOr("GALLERY_HERO_SUBTITLE", ""), "hero subtitle")
	cmd.Flags().StringVar(&meta.HeroImage, "hero-image", envOr("GALLERY_HERO_IMAGE", ""), "path or URL of the hero image")
	cmd.Flags().StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&strict, "strict-collisions", false, "treat role collisions on one photo key as errors instead of warnings")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep running and regenerate when the photo directory changes")

	return cmd
}

// envOr returns the environment value for key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
