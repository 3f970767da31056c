package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "facetone",
	Short: "Estimate a person's skin tone from a photograph",
	Long: `Facetone combines remote face-landmark detection with direct pixel
sampling to estimate a single representative skin tone for the person
in a photo. It samples the forehead and both cheeks at offsets derived
from the detected face geometry and averages the colors in HSL.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
