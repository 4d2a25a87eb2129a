package client

import (
	"crypto/tls"
	"fmt"

	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// TransportCredentials picks the channel security for a dial. Without TLS
// the connection is plaintext, and master keys cross the wire in the clear.
// With TLS and no caFile the system roots verify the server.
func TransportCredentials(useTLS bool, caFile string) (credentials.TransportCredentials, error) {
	if !useTLS {
		return insecure.NewCredentials(), nil
	}
	if caFile == "" {
		return credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12}), nil
	}
	creds, err := credentials.NewClientTLSFromFile(caFile, "")
	if err != nil {
		return nil, fmt.Errorf("load tls ca %s: %w", caFile, err)
	}
	return creds, nil
}
