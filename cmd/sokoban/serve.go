package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

var (
	flagHost    string
	flagPort    int
	flagHostKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Sokoban SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the level select. Progress
is stored per SSH user name in the server's database; best runs are
shared on the progress board.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses server.host_key_path from config, generating it if missing

Examples:
  sokoban serve                          # Listen on the configured address
  sokoban serve --port 2222              # Listen on port 2222
  sokoban serve --host-key ./my_host_key # Use specific host key
  sokoban serve --db ./progress.db       # Use specific database

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHost, "host", "", "Listen host (default from config)")
	serveCmd.Flags().IntVar(&flagPort, "port", 0, "Listen port (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := newApp(appOptions{requireStore: true})
	if err != nil {
		return err
	}
	defer a.Close()

	srvCfg := a.cfg.Server
	if flagHost != "" {
		srvCfg.Host = flagHost
	}
	if flagPort != 0 {
		srvCfg.Port = flagPort
	}
	if flagHostKey != "" {
		srvCfg.HostKeyPath = flagHostKey
	}

	opts := a.uiOptions("")
	if !registry.Exists(opts.Mode) {
		return fmt.Errorf("unknown mode %q", opts.Mode)
	}

	server, err := tui.NewSSHServer(srvCfg, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Starting Sokoban SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %d\n", srvCfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
