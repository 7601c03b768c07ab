package server

import (
	"fmt"
	"net"

	"github.com/camerarecorder/camera-streaming-daemon/internal/config"
	"github.com/camerarecorder/camera-streaming-daemon/internal/logging"
	"github.com/camerarecorder/camera-streaming-daemon/internal/registry"
	"github.com/camerarecorder/camera-streaming-daemon/internal/rtsp"
)

// Listen opens the UDP socket the daemon reads MAVLink datagrams on
// and returns a Server wired to it. cfg.MAVLink.Port governs the bind
// port; the daemon listens on all interfaces.
func Listen(cfg *config.Config, reg *registry.Registry, uriBuilder rtsp.URIBuilder, logger *logging.Logger) (*Server, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf(":%d", cfg.MAVLink.Port))
	if err != nil {
		return nil, fmt.Errorf("server: resolve listen port %d: %w", cfg.MAVLink.Port, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("server: listen udp :%d: %w", cfg.MAVLink.Port, err)
	}
	return New(cfg, conn, reg, uriBuilder, logger), nil
}
