package server

import (
	"net"
	"time"
)

// UDPSocket is the transport collaborator spec.md §1 names: something
// that can exchange UDP datagrams. *net.UDPConn satisfies it directly;
// tests substitute an in-memory fake.
type UDPSocket interface {
	ReadFromUDP(b []byte) (int, *net.UDPAddr, error)
	WriteToUDP(b []byte, addr *net.UDPAddr) (int, error)
	SetReadDeadline(t time.Time) error
	Close() error
}
