package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/runner/mcp"
)

type mcpOptions struct {
	Transport   string
	HTTPHost    string
	HTTPPort    int
	HTTPPath    string
	HTTPTLSCert string
	HTTPTLSKey  string
}

func addMCP(topLevel *cobra.Command) {
	mo := &mcpOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes notes, buckets and focus history to
assistants through the Model Context Protocol.`,
		Example: `
nova mcp
nova mcp --transport stdio
nova mcp --http-port 0
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				runner, err := mo.runner(cmd, s)
				if err != nil {
					return err
				}
				return runner.Do(cmd.Context())
			})
		},
	}

	cmd.Flags().StringVar(&mo.Transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&mo.HTTPHost, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&mo.HTTPPort, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&mo.HTTPPath, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&mo.HTTPTLSCert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&mo.HTTPTLSKey, "http-tls-key", "", "TLS private key file for HTTPS")

	topLevel.AddCommand(cmd)
}

func (mo *mcpOptions) runner(cmd *cobra.Command, s *session) (*mcp.Runner, error) {
	path := strings.TrimSpace(mo.HTTPPath)
	if path == "" {
		path = "/mcp"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	runner := &mcp.Runner{
		App:              s.App,
		Name:             "nova",
		Version:          "dev",
		HTTPEndpointPath: path,
		HTTPServerCert:   strings.TrimSpace(mo.HTTPTLSCert),
		HTTPServerKey:    strings.TrimSpace(mo.HTTPTLSKey),
	}

	switch strings.ToLower(strings.TrimSpace(mo.Transport)) {
	case "", string(mcp.TransportHTTP):
		host := strings.TrimSpace(mo.HTTPHost)
		if host == "" {
			host = "127.0.0.1"
		}
		port := mo.HTTPPort
		if port < 0 || port > 65535 {
			return nil, fmt.Errorf("invalid http-port %d", port)
		}

		addr := net.JoinHostPort(host, strconv.Itoa(port))
		runner.Transport = mcp.TransportHTTP
		runner.HTTPListenAddr = addr
		runner.OnHTTPListening = func(a net.Addr) {
			tcpAddr, ok := a.(*net.TCPAddr)
			if !ok {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s%s\n", addr, path)
				return
			}

			displayHost := host
			if displayHost == "" || displayHost == "0.0.0.0" || displayHost == "::" {
				if tcpAddr.IP != nil && !tcpAddr.IP.IsUnspecified() {
					displayHost = tcpAddr.IP.String()
				} else {
					displayHost = "127.0.0.1"
				}
			}

			if strings.Contains(displayHost, ":") && !strings.HasPrefix(displayHost, "[") {
				displayHost = "[" + displayHost + "]"
			}

			scheme := "http"
			if runner.HTTPServerCert != "" && runner.HTTPServerKey != "" {
				scheme = "https"
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(),
				"MCP HTTP server listening on %s://%s:%d%s\n",
				scheme,
				displayHost,
				tcpAddr.Port,
				path,
			)
		}
	case string(mcp.TransportStdio):
		runner.Transport = mcp.TransportStdio
	default:
		return nil, fmt.Errorf("unsupported transport %q (expected http or stdio)", mo.Transport)
	}
	return runner, nil
}
