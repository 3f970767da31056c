package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhrbek/facetone/internal/config"
	"github.com/mhrbek/facetone/internal/faceapi"
	"github.com/mhrbek/facetone/internal/pipeline"
)

var toneCmd = &cobra.Command{
	Use:   "tone <image-url>",
	Short: "Estimate the skin tone for a single image URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runTone,
}

func init() {
	rootCmd.AddCommand(toneCmd)
}

// newPipeline wires the face API client and the pipeline from configuration.
func newPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	if cfg.FaceAPI.URL == "" {
		return nil, errors.New("FACE_API_URL environment variable is required")
	}
	if cfg.FaceAPI.Key == "" {
		return nil, errors.New("FACE_API_KEY environment variable is required")
	}

	client, err := faceapi.NewClient(cfg.FaceAPI.URL, cfg.FaceAPI.Key,
		time.Duration(cfg.FaceAPI.TimeoutSeconds)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("creating face API client: %w", err)
	}

	return pipeline.New(client, cfg), nil
}

func runTone(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	result, err := p.Estimate(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("estimating skin tone: %w", err)
	}

	fmt.Printf("hue: %.1f  saturation: %.1f  lightness: %.1f  (%s)\n",
		result.H, result.S, result.L, result.Hex())
	return nil
}
