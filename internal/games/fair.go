package games

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// Round is the provably-fair commitment for one settled bet. The
// server seed comes from a CSPRNG, and the published commitment is a
// real digest over seed material plus the nonce, so the client can
// verify the round after the seed is revealed.
type Round struct {
	ID         string `json:"id"`
	ServerSeed string `json:"server_seed"`
	Commitment string `json:"commitment"`
}

// NewRound issues a round for the given client seed and nonce
func NewRound(clientSeed string, nonce int) (*Round, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate server seed: %w", err)
	}
	serverSeed := hex.EncodeToString(buf)

	return &Round{
		ID:         uuid.New().String(),
		ServerSeed: serverSeed,
		Commitment: Commit(serverSeed, clientSeed, nonce),
	}, nil
}

// Commit digests the combined seed material
func Commit(serverSeed, clientSeed string, nonce int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s%s%d", serverSeed, clientSeed, nonce)))
	return hex.EncodeToString(sum[:])
}
