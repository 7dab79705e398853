package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"memeinator/internal/bot"
	"memeinator/internal/config"
	"memeinator/internal/export"
	"memeinator/internal/files"
	"memeinator/internal/handlers"
	"memeinator/internal/image"
	"memeinator/internal/services"
	"memeinator/internal/share"
	"memeinator/internal/storage"
)

func main() {
	logger := log.Default()
	cfg := config.Load(logger)

	assets, err := files.NewAssetLoader(
		cfg.AssetsDir,
		cfg.Fonts.Regular,
		cfg.Fonts.Bold,
		cfg.Fonts.Italic,
		cfg.Fonts.BoldItalic,
	).Load()
	if err != nil {
		logger.Fatal(err)
	}

	var fonts *image.FontSet
	if assets.HasFonts() {
		fonts, err = image.NewFontSet(assets.FontRegular, assets.FontBold, assets.FontItalic, assets.FontBoldItalic)
		if err != nil {
			logger.Fatal(err)
		}
	}

	palette, err := cfg.SwatchPalette()
	if err != nil {
		logger.Fatal(err)
	}

	compositor, err := image.NewCompositor(fonts, palette)
	if err != nil {
		logger.Fatal(err)
	}

	pictures := files.NewPictureStore(cfg.PicturesDir)
	memeService := services.NewMemeService(
		compositor,
		export.NewExporter(),
		pictures,
		cfg.ShareBaseURL,
		logger,
	)

	botService, err := bot.NewTelegramBot(cfg.BotToken, logger, cfg.MaxFileSize)
	if err != nil {
		logger.Fatal(err)
	}

	fileManager, err := files.NewTelegramFileManager(botService, cfg.TempDir, cfg.MaxFileSize)
	if err != nil {
		logger.Fatal(err)
	}

	handler := handlers.NewHandler(
		memeService,
		botService,
		fileManager,
		storage.NewSessionStore(),
		cfg.TempDir,
		cfg.PreviewSize,
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.ShareAddr != "" {
		go func() {
			if err := share.NewServer(pictures, logger).ListenAndServe(ctx, cfg.ShareAddr); err != nil {
				logger.Printf("Error running share server: %v", err)
			}
		}()
	}

	go func() {
		if err := botService.Start(ctx, handler.HandleUpdate); err != nil {
			logger.Printf("Error starting bot: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nShutting down...")
}
