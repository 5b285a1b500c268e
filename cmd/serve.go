package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/lightpack/internal/db"
	"github.com/ziadkadry99/lightpack/internal/live"
	"github.com/ziadkadry99/lightpack/internal/server"
	"github.com/ziadkadry99/lightpack/internal/theme"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the built site with live widget sessions",
	Long: `Serves the built site. Every open page connects back over a websocket and
runs as a live session: widget events and scroll positions are applied on the
server and the changed fragments are sent back. Theme preferences are stored
per browser in SQLite.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "override server port")
	serveCmd.Flags().String("dir", "", "override site directory (defaults to output_dir)")
	serveCmd.Flags().Bool("open", false, "open browser automatically")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetInt("port"); v != 0 {
		cfg.Server.Port = v
	}
	siteDir := cfg.OutputDir
	if v, _ := cmd.Flags().GetString("dir"); v != "" {
		siteDir = v
	}
	if _, err := os.Stat(siteDir); os.IsNotExist(err) {
		return fmt.Errorf("site directory not found at %s\nRun `lightpack build` first", siteDir)
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	srv := server.New(server.Config{
		Port:     cfg.Server.Port,
		SiteDir:  siteDir,
		AllowAll: cfg.Server.AllowAllOrigins,
	}, theme.NewSQLStore(database), live.NewHandler(siteDir, cfg.TOC, log), log)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("Shutdown failed", zap.Error(err))
		}
	}()

	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	fmt.Fprintf(os.Stderr, "lightpack %s serving %s at %s\n", Version, siteDir, url)
	if open, _ := cmd.Flags().GetBool("open"); open {
		go openBrowser(url)
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
