package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/mhdservices/qrtool/internal/composer"
	"github.com/mhdservices/qrtool/internal/handlers"
	"github.com/mhdservices/qrtool/internal/logo"
)

var version = "v1.0.0"

func main() {
	root := &cobra.Command{
		Use:   "qrtool",
		Short: "Render QR codes with optional centered logos",
	}

	// --- generate command ----------------------------------------------------
	var (
		text      string
		fill      string
		bg        string
		logoFile  string
		logoScale float64
		out       string
	)
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a QR code and save it as PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(text, fill, bg, logoFile, logoScale, out)
		},
	}
	generateCmd.Flags().StringVarP(&text, "text", "t", "", "Text or URL to encode")
	generateCmd.Flags().StringVar(&fill, "fill", "black", "Module color (named or hex)")
	generateCmd.Flags().StringVar(&bg, "bg", "white", "Background color (named or hex)")
	generateCmd.Flags().StringVar(&logoFile, "logo", "", "Optional center logo image (png, jpeg, gif or svg)")
	generateCmd.Flags().Float64Var(&logoScale, "logo-scale", composer.MaxLogoScale, "Logo size as percent of QR width (10-25)")
	generateCmd.Flags().StringVarP(&out, "out", "o", "qr_code.png", "Output PNG path")
	root.AddCommand(generateCmd)

	// --- serve command -------------------------------------------------------
	var logoDir string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the QR preview API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(logoDir)
		},
	}
	serveCmd.Flags().StringVar(&logoDir, "logo-dir", "", "Directory logo files may be loaded from")
	root.AddCommand(serveCmd)

	// --- version command -----------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("qrtool %s\n", version)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// runGenerate composes a QR code and writes it to disk. A logo failure
// does not discard the QR: the un-logoed image is still saved and the
// logo error is reported afterwards.
func runGenerate(text, fill, bg, logoFile string, logoScale float64, out string) error {
	req, err := composer.NewEncodingRequest(text, fill, bg)
	if err != nil {
		return err
	}

	var overlay *composer.LogoOverlay
	var logoErr error
	if logoFile != "" {
		if logoScale < composer.MinLogoScale || logoScale > composer.MaxLogoScale {
			return fmt.Errorf("%w: logo scale %.1f outside %d-%d",
				composer.ErrInput, logoScale, composer.MinLogoScale, composer.MaxLogoScale)
		}
		if src, err := logo.Load(logoFile); err != nil {
			logoErr = err
		} else {
			overlay = &composer.LogoOverlay{Source: src, Scale: logoScale}
		}
	}

	img, err := composer.Compose(req, overlay)
	if err != nil {
		if !errors.Is(err, composer.ErrLogo) || img == nil {
			return err
		}
		logoErr = err
	}

	path, err := composer.SavePNG(img, out)
	if err != nil {
		return err
	}
	log.Printf("QR code saved as %s", path)

	if logoErr != nil {
		return fmt.Errorf("saved without logo: %w", logoErr)
	}
	return nil
}

// runServe starts the gin API. The listen address comes from the PORT
// environment variable, defaulting to :8080.
func runServe(logoDir string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	h := handlers.New(logoDir)
	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCodeHandler)
	}

	addr := getAddr()
	log.Printf("qrtool listening on %s", addr)
	return r.Run(addr)
}

func getAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}
