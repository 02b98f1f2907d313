// Package phv adapts a decoded gopacket.Packet to the key.PHV interface the
// KeyBuilder depends on, so the engine can be driven by real Ethernet/
// IPv4/IPv6/TCP/UDP traffic in tests instead of only hand-built byte slices.
// The engine itself never imports gopacket outside of this package.
package phv

import (
	"encoding/binary"
	"net"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"

	"github.com/yanet-platform/matchtable/key"
)

// Field IDs for the small registry of well-known header fields this
// adapter understands.
const (
	FieldEthDst key.FieldID = iota
	FieldEthSrc
	FieldVLANID
	FieldIPv4Src
	FieldIPv4Dst
	FieldIPv6Src
	FieldIPv6Dst
	FieldIPProto
	FieldL4SrcPort
	FieldL4DstPort

	FieldEthernetValid
	FieldVLANValid
	FieldIPv4Valid
	FieldIPv6Valid
	FieldTCPValid
	FieldUDPValid
)

// Packet wraps a decoded gopacket.Packet and satisfies key.PHV.
type Packet struct {
	pkt gopacket.Packet
}

// New returns a Packet view over an already-decoded gopacket.Packet.
func New(pkt gopacket.Packet) *Packet {
	return &Packet{pkt: pkt}
}

func (p *Packet) ethernet() *layers.Ethernet {
	l, _ := p.pkt.Layer(layers.LayerTypeEthernet).(*layers.Ethernet)
	return l
}

func (p *Packet) dot1q() *layers.Dot1Q {
	l, _ := p.pkt.Layer(layers.LayerTypeDot1Q).(*layers.Dot1Q)
	return l
}

func (p *Packet) ipv4() *layers.IPv4 {
	l, _ := p.pkt.Layer(layers.LayerTypeIPv4).(*layers.IPv4)
	return l
}

func (p *Packet) ipv6() *layers.IPv6 {
	l, _ := p.pkt.Layer(layers.LayerTypeIPv6).(*layers.IPv6)
	return l
}

func (p *Packet) tcp() *layers.TCP {
	l, _ := p.pkt.Layer(layers.LayerTypeTCP).(*layers.TCP)
	return l
}

func (p *Packet) udp() *layers.UDP {
	l, _ := p.pkt.Layer(layers.LayerTypeUDP).(*layers.UDP)
	return l
}

// Valid implements key.PHV.
func (p *Packet) Valid(field key.FieldID) bool {
	switch field {
	case FieldEthernetValid, FieldEthDst, FieldEthSrc:
		return p.ethernet() != nil
	case FieldVLANValid, FieldVLANID:
		return p.dot1q() != nil
	case FieldIPv4Valid, FieldIPv4Src, FieldIPv4Dst:
		return p.ipv4() != nil
	case FieldIPv6Valid, FieldIPv6Src, FieldIPv6Dst:
		return p.ipv6() != nil
	case FieldTCPValid:
		return p.tcp() != nil
	case FieldUDPValid:
		return p.udp() != nil
	case FieldIPProto:
		return p.ipv4() != nil || p.ipv6() != nil
	case FieldL4SrcPort, FieldL4DstPort:
		return p.tcp() != nil || p.udp() != nil
	default:
		return false
	}
}

// Bytes implements key.PHV. It returns the field's raw value, or a
// zero-length value when the owning header is absent. KeyBuilder appends
// the result without consulting Valid, so a field whose header is absent
// yields a short key and Build reports an error.
func (p *Packet) Bytes(field key.FieldID) []byte {
	switch field {
	case FieldEthDst:
		if l := p.ethernet(); l != nil {
			return hwAddrBytes(l.DstMAC)
		}
	case FieldEthSrc:
		if l := p.ethernet(); l != nil {
			return hwAddrBytes(l.SrcMAC)
		}
	case FieldVLANID:
		if l := p.dot1q(); l != nil {
			return be16(l.VLANIdentifier)
		}
	case FieldIPv4Src:
		if l := p.ipv4(); l != nil {
			return l.SrcIP.To4()
		}
	case FieldIPv4Dst:
		if l := p.ipv4(); l != nil {
			return l.DstIP.To4()
		}
	case FieldIPv6Src:
		if l := p.ipv6(); l != nil {
			return l.SrcIP.To16()
		}
	case FieldIPv6Dst:
		if l := p.ipv6(); l != nil {
			return l.DstIP.To16()
		}
	case FieldIPProto:
		if l := p.ipv4(); l != nil {
			return []byte{byte(l.Protocol)}
		}
		if l := p.ipv6(); l != nil {
			return []byte{byte(l.NextHeader)}
		}
	case FieldL4SrcPort:
		if l := p.tcp(); l != nil {
			return be16(uint16(l.SrcPort))
		}
		if l := p.udp(); l != nil {
			return be16(uint16(l.SrcPort))
		}
	case FieldL4DstPort:
		if l := p.tcp(); l != nil {
			return be16(uint16(l.DstPort))
		}
		if l := p.udp(); l != nil {
			return be16(uint16(l.DstPort))
		}
	}
	return nil
}

func hwAddrBytes(a net.HardwareAddr) []byte {
	return []byte(a)
}

func be16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}
