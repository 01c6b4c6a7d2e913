package commands

import (
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/ringo/pkg/commands/options"
	"tableflip.dev/ringo/pkg/runner/mcp"
)

type mcpOptions struct {
	Transport string
	Host      string
	Port      int
	Path      string
	TLSCert   string
	TLSKey    string
}

func addMCP(topLevel *cobra.Command) {
	co := &options.ConfigOptions{}
	mo := &mcpOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes the bubble layout, the contact book, and
the call report through the Model Context Protocol.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(co)
			if err != nil {
				return err
			}

			runner := mcp.Runner{
				Service:          svc,
				Name:             "ringo",
				Version:          "dev",
				HTTPEndpointPath: endpointPath(mo.Path),
				HTTPServerCert:   strings.TrimSpace(mo.TLSCert),
				HTTPServerKey:    strings.TrimSpace(mo.TLSKey),
			}

			switch strings.ToLower(strings.TrimSpace(mo.Transport)) {
			case "", string(mcp.TransportHTTP):
				if err := mo.configureHTTP(&runner, cmd.OutOrStdout()); err != nil {
					return err
				}
			case string(mcp.TransportStdio):
				runner.Transport = mcp.TransportStdio
			default:
				return fmt.Errorf("unsupported transport %q (expected http or stdio)", mo.Transport)
			}

			return runner.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&mo.Transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&mo.Host, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&mo.Port, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&mo.Path, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&mo.TLSCert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&mo.TLSKey, "http-tls-key", "", "TLS private key file for HTTPS")

	options.AddConfigArgs(cmd, co)
	topLevel.AddCommand(cmd)
}

func endpointPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/mcp"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// configureHTTP fills in the runner's HTTP transport fields and installs the
// listen announcement callback.
func (mo *mcpOptions) configureHTTP(runner *mcp.Runner, out io.Writer) error {
	host := strings.TrimSpace(mo.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	if mo.Port < 0 || mo.Port > 65535 {
		return fmt.Errorf("invalid http-port %d", mo.Port)
	}

	runner.Transport = mcp.TransportHTTP
	runner.HTTPListenAddr = net.JoinHostPort(host, strconv.Itoa(mo.Port))

	scheme := "http"
	if runner.HTTPServerCert != "" && runner.HTTPServerKey != "" {
		scheme = "https"
	}
	listenAddr := runner.HTTPListenAddr
	path := runner.HTTPEndpointPath
	runner.OnHTTPListening = func(a net.Addr) {
		tcpAddr, ok := a.(*net.TCPAddr)
		if !ok {
			fmt.Fprintf(out, "MCP HTTP server listening on %s%s\n", listenAddr, path)
			return
		}
		fmt.Fprintf(out, "MCP HTTP server listening on %s://%s:%d%s\n",
			scheme, displayHost(host, tcpAddr), tcpAddr.Port, path)
	}
	return nil
}

// displayHost picks a dialable host for the startup banner. Listening on an
// unspecified address still needs a concrete host in the printed URL.
func displayHost(requested string, addr *net.TCPAddr) string {
	host := requested
	if host == "" || host == "0.0.0.0" || host == "::" {
		if addr.IP != nil && !addr.IP.IsUnspecified() {
			host = addr.IP.String()
		} else {
			host = "127.0.0.1"
		}
	}
	if strings.Contains(host, ":") && !strings.HasPrefix(host, "[") {
		host = "[" + host + "]"
	}
	return host
}
