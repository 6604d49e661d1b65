package inspect

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"errors"
	"math/big"
	"net"
	"time"

	"github.com/quic-go/quic-go"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/scenekit/internal/core/observability/log"
)

const quicNextProto = "scenekit-inspect"

// startQUIC binds the QUIC listener and launches its accept loop. Each
// accepted stream receives one JSON snapshot and is closed; clients poll by
// opening a new stream.
func (s *Server) startQUIC(ctx context.Context, g *errgroup.Group) error {
	listener, err := quic.ListenAddr(s.cfg.QUICAddr, generateTLSConfig(), &quic.Config{
		MaxIdleTimeout: 30 * time.Second,
	})
	if err != nil {
		return err
	}
	s.quicListener = listener

	g.Go(func() error {
		for {
			conn, err := listener.Accept(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, quic.ErrServerClosed) {
					return nil
				}
				return err
			}
			go s.handleQUICConn(ctx, conn)
		}
	})
	return nil
}

func (s *Server) closeQUIC() {
	if s.quicListener != nil {
		_ = s.quicListener.Close()
	}
}

func (s *Server) handleQUICConn(ctx context.Context, conn *quic.Conn) {
	defer func() {
		_ = conn.CloseWithError(0, "done")
	}()

	stream, err := conn.AcceptStream(ctx)
	if err != nil {
		s.logger.Debug("quic stream accept failed", log.Error(err))
		return
	}
	defer func() {
		_ = stream.Close()
	}()

	if err = json.NewEncoder(stream).Encode(Capture(s.tree)); err != nil {
		s.logger.Debug("quic snapshot write failed", log.Error(err))
		return
	}
	s.logger.Debug("quic snapshot served",
		log.String("remote_addr", conn.RemoteAddr().String()))
}

// generateTLSConfig generates a self-signed TLS config. The inspector is a
// loopback debugging tool; clients are expected to skip verification.
func generateTLSConfig() *tls.Config {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			Organization: []string{"scenekit"},
		},
		NotBefore:   time.Now(),
		NotAfter:    time.Now().Add(365 * 24 * time.Hour),
		KeyUsage:    x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses: []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
		DNSNames:    []string{"localhost"},
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		panic(err)
	}

	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})

	tlsCert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		panic(err)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{tlsCert},
		NextProtos:   []string{quicNextProto},
		MinVersion:   tls.VersionTLS13,
	}
}
