package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/asteroids-pilot/internal/platform/tui"
	"github.com/vovakirdan/asteroids-pilot/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagServeEnv    string
	flagServeFrames string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH viewing server",
	Long: `Start an SSH server where every connection watches its own episode of
the pilot playing. Finished episodes are recorded in the shared database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.pilot/host_key

Examples:
  pilot serve                           # Listen on :23234 with auto-generated key
  pilot serve --ssh :2222               # Listen on port 2222
  pilot serve --preset swarm            # Busier simulator for every viewer
  pilot serve --env replay --frames ./frames

Viewers connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagServeEnv, "env", "asteroids", "Environment every session watches")
	serveCmd.Flags().StringVar(&flagServeFrames, "frames", "", "Frame directory for the replay environment")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, pcfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srvCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		EnvID:       flagServeEnv,
		Env:         registry.Options{Config: cfg, FramesDir: flagServeFrames},
		Pilot:       pcfg,
		TickRate:    flagFPS,
	}

	server, err := tui.NewSSHServer(srvCfg, logger.WithPrefix("pilot-ssh"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting pilot SSH server on %s\n", srvCfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(srvCfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
